package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentRequest carries a client's booking form input. Date and Time
// are civil values interpreted in the application's fixed timezone.
type AppointmentRequest struct {
	ClientName   string   `json:"clientName"`
	ServiceNames []string `json:"serviceNames"`
	Date         string   `json:"date"` // 2006-01-02
	Time         string   `json:"time"` // 15:04
}

// AppointmentDescriptor is the computed booking result: a priced, timed
// appointment ready to be published to the external calendar.
type AppointmentDescriptor struct {
	ClientName       string          `json:"clientName"`
	Summary          string          `json:"summary"`
	Start            time.Time       `json:"start"`
	End              time.Time       `json:"end"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	TotalDurationMin int             `json:"totalDurationMin"`
}
