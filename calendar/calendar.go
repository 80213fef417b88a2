package calendar

import (
	"context"
	"fmt"
	"time"

	"agenda-backend/models"
)

// Reminder lead times before the event start, in minutes. This policy is
// fixed: one popup an hour before and one the day before.
const (
	reminderSoonMin      = 60
	reminderDayBeforeMin = 1440
)

// Publisher creates one external calendar event per confirmed appointment.
// Publish is at most once per user confirmation: failures propagate to the
// caller and are never retried here.
type Publisher interface {
	Publish(ctx context.Context, appt models.AppointmentDescriptor) error
}

// AgendaReader lists upcoming events for the operator's agenda view.
type AgendaReader interface {
	ListUpcoming(ctx context.Context, max int) ([]AgendaEvent, error)
}

type AgendaEvent struct {
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
}

func eventSummary(appt models.AppointmentDescriptor) string {
	return fmt.Sprintf("💅 %s - %s", appt.Summary, appt.ClientName)
}

func eventDescription(appt models.AppointmentDescriptor) string {
	return fmt.Sprintf("Serviços: %s\nValor Total: R$ %s", appt.Summary, appt.TotalPrice.StringFixed(2))
}
