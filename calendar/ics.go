package calendar

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"agenda-backend/apperrors"
	"agenda-backend/models"
)

// ICSCalendar publishes appointments into a local .ics file. It is the
// offline counterpart of the Google backend: same event shape, same fixed
// reminder policy, but the resulting calendar can be imported anywhere.
type ICSCalendar struct {
	path string
	loc  *time.Location
}

func NewICSCalendar(path string, loc *time.Location) *ICSCalendar {
	return &ICSCalendar{path: path, loc: loc}
}

func (c *ICSCalendar) Publish(_ context.Context, appt models.AppointmentDescriptor) error {
	cal, err := c.load()
	if err != nil {
		return &apperrors.PublishError{Err: err}
	}

	event := cal.AddEvent(uuid.NewString())
	event.SetCreatedTime(time.Now())
	event.SetDtStampTime(time.Now())
	event.SetStartAt(appt.Start)
	event.SetEndAt(appt.End)
	event.SetSummary(eventSummary(appt))
	event.SetDescription(eventDescription(appt))

	soon := event.AddAlarm()
	soon.SetAction(ical.ActionDisplay)
	soon.SetTrigger("-PT1H")

	dayBefore := event.AddAlarm()
	dayBefore.SetAction(ical.ActionDisplay)
	dayBefore.SetTrigger("-PT24H")

	if err := c.save(cal); err != nil {
		return &apperrors.PublishError{Err: err}
	}
	return nil
}

func (c *ICSCalendar) ListUpcoming(_ context.Context, max int) ([]AgendaEvent, error) {
	cal, err := c.load()
	if err != nil {
		return nil, &apperrors.PublishError{Err: err}
	}

	now := time.Now()
	var events []AgendaEvent
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil || start.Before(now) {
			continue
		}

		summary := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary = p.Value
		}
		events = append(events, AgendaEvent{Summary: summary, Start: start.In(c.loc)})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	if len(events) > max {
		events = events[:max]
	}
	return events, nil
}

func (c *ICSCalendar) load() (*ical.Calendar, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ical.NewCalendar(), nil
		}
		return nil, err
	}
	return ical.ParseCalendar(bytes.NewReader(data))
}

func (c *ICSCalendar) save(cal *ical.Calendar) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".agenda-*.ics")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(cal.Serialize()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, c.path)
}
