package store

import (
	"context"

	"agenda-backend/models"
)

// CatalogStore persists the service catalog as a whole: reads return every
// row and writes replace every row. There are no per-row updates.
//
// ReadAll returns apperrors.ErrStoreNotFound when the catalog has not been
// created yet; callers treat that as an empty catalog, not a failure.
// WriteAll must leave the previously persisted state intact when it fails.
type CatalogStore interface {
	ReadAll(ctx context.Context) (models.Catalog, error)
	WriteAll(ctx context.Context, catalog models.Catalog) error
}

// LogStore appends confirmed appointments to the local audit log.
type LogStore interface {
	Append(ctx context.Context, entry models.AppointmentLogEntry) error
}
