package utils

import (
	"time"

	"agenda-backend/apperrors"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// CombineDateTime interprets a civil date and wall-clock time in loc.
//
// time.Date normalizes wall-clock values that fall inside a DST
// spring-forward gap, so a combined value whose components no longer match
// the inputs names a time that does not exist in loc and is rejected.
// Ambiguous times (fall-back overlap) resolve to the zone's first reading.
func CombineDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, apperrors.Validation("invalid date %q: expected %s", dateStr, DateLayout)
	}

	clock, err := time.Parse(TimeLayout, timeStr)
	if err != nil {
		return time.Time{}, apperrors.Validation("invalid time %q: expected %s", timeStr, TimeLayout)
	}

	t := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
	if t.Day() != date.Day() || t.Hour() != clock.Hour() || t.Minute() != clock.Minute() {
		return time.Time{}, &apperrors.TimezoneError{
			Msg: dateStr + " " + timeStr + " does not exist in " + loc.String(),
		}
	}
	return t, nil
}
