// services/catalog_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agenda-backend/apperrors"
	"agenda-backend/logger"
	"agenda-backend/models"
	"agenda-backend/store"
)

// CatalogService owns the in-memory catalog for the duration of one
// request and enforces catalog-level invariants before delegating to the
// store. Every mutation re-reads the catalog fresh, applies the change and
// rewrites the whole backing store; concurrent sessions are not coordinated
// (last write wins).
type CatalogService struct {
	store store.CatalogStore

	// hasDurations selects the schema used when a catalog is created from
	// scratch; an existing store's own columns take precedence.
	hasDurations bool

	log *logger.Logger
}

func NewCatalogService(st store.CatalogStore, hasDurations bool, log *logger.Logger) *CatalogService {
	return &CatalogService{store: st, hasDurations: hasDurations, log: log}
}

// Load reads the full catalog. A store with no catalog yet yields an empty
// catalog, not an error.
func (s *CatalogService) Load(ctx context.Context) (models.Catalog, error) {
	catalog, err := s.store.ReadAll(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrStoreNotFound) {
			return models.Catalog{HasDurations: s.hasDurations}, nil
		}
		return models.Catalog{}, err
	}

	catalog.AssignIdentities()
	return catalog, nil
}

// Add appends a new service and persists the updated catalog.
func (s *CatalogService) Add(ctx context.Context, name string, price decimal.Decimal, durationMin int) (models.Catalog, error) {
	catalog, err := s.Load(ctx)
	if err != nil {
		return models.Catalog{}, err
	}

	name = strings.TrimSpace(name)
	if err := s.validateRecord(catalog, -1, name, price, durationMin); err != nil {
		return models.Catalog{}, err
	}

	rec := models.ServiceRecord{Name: name, Price: price}
	if catalog.HasDurations {
		rec.DurationMin = durationMin
	}
	catalog.Records = append(catalog.Records, rec)

	if err := s.store.WriteAll(ctx, catalog); err != nil {
		return models.Catalog{}, err
	}

	catalog.AssignIdentities()
	s.log.Info("service added", "name", name, "price", price.String())
	return catalog, nil
}

// Update replaces the fields of the record id resolves to. Identities shift
// after any mutation, so callers must re-resolve against the returned
// catalog.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, name string, price decimal.Decimal, durationMin int) (models.Catalog, error) {
	catalog, err := s.Load(ctx)
	if err != nil {
		return models.Catalog{}, err
	}

	idx := catalog.IndexOf(id)
	if idx < 0 {
		return models.Catalog{}, apperrors.NotFound("service %s not found", id)
	}

	name = strings.TrimSpace(name)
	if err := s.validateRecord(catalog, idx, name, price, durationMin); err != nil {
		return models.Catalog{}, err
	}

	catalog.Records[idx].Name = name
	catalog.Records[idx].Price = price
	if catalog.HasDurations {
		catalog.Records[idx].DurationMin = durationMin
	}

	if err := s.store.WriteAll(ctx, catalog); err != nil {
		return models.Catalog{}, err
	}

	catalog.AssignIdentities()
	s.log.Info("service updated", "name", name)
	return catalog, nil
}

// Remove deletes the record id resolves to and persists the remaining
// catalog in its original order.
func (s *CatalogService) Remove(ctx context.Context, id uuid.UUID) (models.Catalog, error) {
	catalog, err := s.Load(ctx)
	if err != nil {
		return models.Catalog{}, err
	}

	idx := catalog.IndexOf(id)
	if idx < 0 {
		return models.Catalog{}, apperrors.NotFound("service %s not found", id)
	}

	name := catalog.Records[idx].Name
	catalog.Records = append(catalog.Records[:idx], catalog.Records[idx+1:]...)

	if err := s.store.WriteAll(ctx, catalog); err != nil {
		return models.Catalog{}, err
	}

	catalog.AssignIdentities()
	s.log.Info("service removed", "name", name)
	return catalog, nil
}

// MigrateDurations is the explicit one-time transform from the
// default-duration schema to the explicit-duration schema: every record is
// stamped with durationMin and the store is rewritten with the duration
// column.
func (s *CatalogService) MigrateDurations(ctx context.Context, durationMin int) (models.Catalog, error) {
	if durationMin <= 0 {
		return models.Catalog{}, apperrors.Validation("migration duration must be positive, got %d", durationMin)
	}

	catalog, err := s.Load(ctx)
	if err != nil {
		return models.Catalog{}, err
	}
	if catalog.HasDurations {
		return models.Catalog{}, apperrors.Validation("catalog already carries explicit durations")
	}

	catalog.HasDurations = true
	for i := range catalog.Records {
		catalog.Records[i].DurationMin = durationMin
	}

	if err := s.store.WriteAll(ctx, catalog); err != nil {
		return models.Catalog{}, err
	}

	catalog.AssignIdentities()
	s.log.Info("catalog migrated to explicit durations", "durationMin", durationMin)
	return catalog, nil
}

func (s *CatalogService) validateRecord(catalog models.Catalog, selfIdx int, name string, price decimal.Decimal, durationMin int) error {
	if name == "" {
		return apperrors.Validation("service name is required")
	}
	if price.Sign() <= 0 {
		return apperrors.Validation("service price must be greater than zero")
	}
	if catalog.HasDurations && durationMin <= 0 {
		return apperrors.Validation("service duration must be a positive number of minutes")
	}
	for i, rec := range catalog.Records {
		if i != selfIdx && rec.Name == name {
			return apperrors.Validation("a service named %q already exists", name)
		}
	}
	return nil
}
