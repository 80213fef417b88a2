package calendar

import (
	"context"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"agenda-backend/apperrors"
	"agenda-backend/models"
)

// GoogleCalendar publishes appointments as events on a Google calendar
// owned by a service account.
type GoogleCalendar struct {
	svc        *gcal.Service
	calendarID string
	timezone   string
	loc        *time.Location
}

func NewGoogleCalendar(ctx context.Context, calendarID, timezone, credentialsFile string) (*GoogleCalendar, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}

	return &GoogleCalendar{
		svc:        svc,
		calendarID: calendarID,
		timezone:   timezone,
		loc:        loc,
	}, nil
}

func (g *GoogleCalendar) Publish(ctx context.Context, appt models.AppointmentDescriptor) error {
	event := &gcal.Event{
		Summary:     eventSummary(appt),
		Description: eventDescription(appt),
		Start: &gcal.EventDateTime{
			DateTime: appt.Start.Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: appt.End.Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "popup", Minutes: reminderSoonMin},
				{Method: "popup", Minutes: reminderDayBeforeMin},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	if _, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do(); err != nil {
		return &apperrors.PublishError{Err: err}
	}
	return nil
}

func (g *GoogleCalendar) ListUpcoming(ctx context.Context, max int) ([]AgendaEvent, error) {
	now := time.Now().In(g.loc)
	result, err := g.svc.Events.List(g.calendarID).
		TimeMin(now.Format(time.RFC3339)).
		MaxResults(int64(max)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &apperrors.PublishError{Err: err}
	}

	events := make([]AgendaEvent, 0, len(result.Items))
	for _, item := range result.Items {
		if item.Start == nil {
			continue
		}

		// All-day events carry only a date.
		var start time.Time
		if item.Start.DateTime != "" {
			start, err = time.Parse(time.RFC3339, item.Start.DateTime)
			if err != nil {
				continue
			}
			start = start.In(g.loc)
		} else {
			start, err = time.ParseInLocation("2006-01-02", item.Start.Date, g.loc)
			if err != nil {
				continue
			}
		}

		events = append(events, AgendaEvent{Summary: item.Summary, Start: start})
	}
	return events, nil
}
