// services/booking_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"agenda-backend/apperrors"
	"agenda-backend/calendar"
	"agenda-backend/logger"
	"agenda-backend/models"
	"agenda-backend/store"
	"agenda-backend/utils"
)

// BookingService turns a client's selection into a priced, timed
// appointment and drives the publish/log flow for confirmed bookings.
type BookingService struct {
	catalog   *CatalogService
	publisher calendar.Publisher
	logStore  store.LogStore // optional; nil disables the audit log

	loc                *time.Location
	defaultDurationMin int

	log *logger.Logger
}

func NewBookingService(catalog *CatalogService, publisher calendar.Publisher, logStore store.LogStore, loc *time.Location, defaultDurationMin int, log *logger.Logger) *BookingService {
	return &BookingService{
		catalog:            catalog,
		publisher:          publisher,
		logStore:           logStore,
		loc:                loc,
		defaultDurationMin: defaultDurationMin,
		log:                log,
	}
}

// Compose resolves the selected services against the catalog and produces
// the appointment descriptor. It is a pure computation: no store, publisher
// or log access, and identical inputs yield identical results.
//
// Selecting a name that is not in the catalog is rejected outright; it
// never silently degrades into a zero-price, zero-duration appointment.
func (s *BookingService) Compose(catalog models.Catalog, req models.AppointmentRequest) (models.AppointmentDescriptor, error) {
	client := strings.TrimSpace(req.ClientName)
	if client == "" {
		return models.AppointmentDescriptor{}, apperrors.Validation("client name is required")
	}
	if len(req.ServiceNames) == 0 {
		return models.AppointmentDescriptor{}, apperrors.Validation("select at least one service")
	}

	// The selection is a set: a name repeated in the request counts once.
	totalPrice := decimal.Zero
	totalDuration := 0
	seen := make(map[string]bool, len(req.ServiceNames))
	selected := make([]string, 0, len(req.ServiceNames))
	for _, name := range req.ServiceNames {
		if seen[name] {
			continue
		}
		seen[name] = true

		rec, ok := catalog.FindByName(name)
		if !ok {
			return models.AppointmentDescriptor{}, apperrors.Validation("unknown service: %q", name)
		}
		selected = append(selected, name)
		totalPrice = totalPrice.Add(rec.Price)
		if catalog.HasDurations {
			totalDuration += rec.DurationMin
		} else {
			totalDuration += s.defaultDurationMin
		}
	}

	start, err := utils.CombineDateTime(req.Date, req.Time, s.loc)
	if err != nil {
		return models.AppointmentDescriptor{}, err
	}

	return models.AppointmentDescriptor{
		ClientName:       client,
		Summary:          strings.Join(selected, ", "),
		Start:            start,
		End:              start.Add(time.Duration(totalDuration) * time.Minute),
		TotalPrice:       totalPrice,
		TotalDurationMin: totalDuration,
	}, nil
}

// Preview loads the current catalog and composes the appointment without
// publishing it, so the client can see price and duration before
// confirming.
func (s *BookingService) Preview(ctx context.Context, req models.AppointmentRequest) (models.AppointmentDescriptor, error) {
	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return models.AppointmentDescriptor{}, err
	}
	return s.Compose(catalog, req)
}

// Book composes the appointment from a fresh catalog read, publishes it to
// the external calendar (at most once, no retry) and appends the audit log
// entry. A publish failure propagates and skips the log; a log failure
// after a successful publish propagates too but does not undo the publish.
func (s *BookingService) Book(ctx context.Context, req models.AppointmentRequest) (models.AppointmentDescriptor, error) {
	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return models.AppointmentDescriptor{}, err
	}

	appt, err := s.Compose(catalog, req)
	if err != nil {
		return models.AppointmentDescriptor{}, err
	}

	if err := s.publisher.Publish(ctx, appt); err != nil {
		return models.AppointmentDescriptor{}, err
	}
	s.log.Info("appointment published",
		"client", appt.ClientName,
		"start", appt.Start,
		"total", appt.TotalPrice.String(),
	)

	if s.logStore != nil {
		entry := models.AppointmentLogEntry{
			ClientName: appt.ClientName,
			Summary:    appt.Summary,
			Start:      appt.Start,
			TotalPrice: appt.TotalPrice,
		}
		if err := s.logStore.Append(ctx, entry); err != nil {
			// The calendar event exists at this point; surface the log
			// failure without pretending the publish failed.
			return appt, fmt.Errorf("appointment published but not logged: %w", err)
		}
	}

	return appt, nil
}
