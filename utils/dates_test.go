package utils

import (
	"errors"
	"testing"
	"time"

	"agenda-backend/apperrors"
)

func TestCombineDateTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	got, err := CombineDateTime("2024-03-10", "14:00", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, time.March, 10, 14, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got.Location() != loc {
		t.Errorf("result must stay in the given zone")
	}
}

func TestCombineDateTimeBadInput(t *testing.T) {
	loc := time.UTC

	for _, tc := range [][2]string{
		{"10/03/2024", "14:00"},
		{"2024-03-10", "14h"},
		{"", "14:00"},
		{"2024-03-10", ""},
	} {
		_, err := CombineDateTime(tc[0], tc[1], loc)
		var verr *apperrors.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("(%q, %q): expected ValidationError, got %v", tc[0], tc[1], err)
		}
	}
}

func TestCombineDateTimeDSTGap(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// Clocks jump from 02:00 to 03:00 on 2024-03-10.
	_, err = CombineDateTime("2024-03-10", "02:30", loc)
	var tzErr *apperrors.TimezoneError
	if !errors.As(err, &tzErr) {
		t.Fatalf("expected TimezoneError for a nonexistent local time, got %v", err)
	}

	// The surrounding times exist.
	if _, err := CombineDateTime("2024-03-10", "01:30", loc); err != nil {
		t.Errorf("01:30 exists: %v", err)
	}
	if _, err := CombineDateTime("2024-03-10", "03:30", loc); err != nil {
		t.Errorf("03:30 exists: %v", err)
	}
}
