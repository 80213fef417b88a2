package calendar

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"agenda-backend/apperrors"
	"agenda-backend/models"
)

func testDescriptor(start time.Time) models.AppointmentDescriptor {
	return models.AppointmentDescriptor{
		ClientName:       "Ana",
		Summary:          "Manicure, Pedicure",
		Start:            start,
		End:              start.Add(90 * time.Minute),
		TotalPrice:       decimal.NewFromInt(70),
		TotalDurationMin: 90,
	}
}

func TestICSPublishWritesEventWithReminders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.ics")
	cal := NewICSCalendar(path, time.UTC)

	start := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
	if err := cal.Publish(context.Background(), testDescriptor(start)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read ics: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "Manicure") || !strings.Contains(text, "Ana") {
		t.Errorf("event summary missing: %s", text)
	}
	if !strings.Contains(text, "Valor Total: R$ 70.00") {
		t.Errorf("price missing from description: %s", text)
	}
	if strings.Count(text, "BEGIN:VALARM") != 2 {
		t.Errorf("expected the two fixed reminders: %s", text)
	}
	if !strings.Contains(text, "-PT1H") || !strings.Contains(text, "-PT24H") {
		t.Errorf("reminder lead times missing: %s", text)
	}
}

func TestICSPublishAppendsAndListsUpcoming(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.ics")
	cal := NewICSCalendar(path, time.UTC)

	first := testDescriptor(time.Now().Add(24 * time.Hour).Truncate(time.Minute))
	second := testDescriptor(time.Now().Add(72 * time.Hour).Truncate(time.Minute))
	second.ClientName = "Bia"

	if err := cal.Publish(context.Background(), first); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := cal.Publish(context.Background(), second); err != nil {
		t.Fatalf("publish: %v", err)
	}

	events, err := cal.ListUpcoming(context.Background(), 15)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 upcoming events, got %d", len(events))
	}
	if !events[0].Start.Before(events[1].Start) {
		t.Errorf("events must be ordered by start time")
	}
	if !strings.Contains(events[1].Summary, "Bia") {
		t.Errorf("unexpected order or summary: %+v", events)
	}

	limited, err := cal.ListUpcoming(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("max must cap the result, got %d", len(limited))
	}
}

func TestICSListUpcomingReportsPublishErrorOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.ics")
	if err := os.WriteFile(path, []byte("this is not a calendar\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	cal := NewICSCalendar(path, time.UTC)

	_, err := cal.ListUpcoming(context.Background(), 15)
	var perr *apperrors.PublishError
	if !errors.As(err, &perr) {
		t.Fatalf("unreadable calendar must surface as PublishError, got %v", err)
	}
}
