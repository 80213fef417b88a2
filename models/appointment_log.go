package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentLogEntry is one row of the local, append-only audit log of
// confirmed appointments. Entries are written only after a successful
// calendar publish and are never mutated or deleted.
type AppointmentLogEntry struct {
	ClientName string          `json:"clientName"`
	Summary    string          `json:"summary"`
	Start      time.Time       `json:"start"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}
