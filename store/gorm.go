package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"agenda-backend/apperrors"
	"agenda-backend/models"
)

// catalogRow is the SQL shape of one catalog record. Position preserves
// insertion order; Duration is NULL for default-duration catalogs.
type catalogRow struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	Position    int             `gorm:"not null;index"`
	Name        string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DurationMin *int
}

func (catalogRow) TableName() string { return "catalog_rows" }

// catalogMeta is a single-row table recording that a catalog exists and
// which schema it uses. Without it an empty catalog would be
// indistinguishable from no catalog at all, and the schema choice would
// be lost whenever the last record is removed.
type catalogMeta struct {
	ID           uint `gorm:"primaryKey"`
	HasDurations bool `gorm:"not null"`
	UpdatedAt    time.Time
}

func (catalogMeta) TableName() string { return "catalog_meta" }

const catalogMetaID = 1

type appointmentLogRow struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	ClientName string          `gorm:"not null"`
	Summary    string          `gorm:"not null"`
	StartsAt   time.Time       `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time
}

func (appointmentLogRow) TableName() string { return "appointment_log_entries" }

// AutoMigrate creates the catalog and log tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&catalogMeta{}, &catalogRow{}, &appointmentLogRow{})
}

// GormCatalogStore keeps the catalog in a SQL table with the same
// replace-everything semantics as the file backends: every write rewrites
// the table in one transaction.
type GormCatalogStore struct {
	db *gorm.DB
}

func NewGormCatalogStore(db *gorm.DB) *GormCatalogStore {
	return &GormCatalogStore{db: db}
}

func (s *GormCatalogStore) ReadAll(ctx context.Context) (models.Catalog, error) {
	var meta catalogMeta
	if err := s.db.WithContext(ctx).First(&meta, catalogMetaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Catalog{}, apperrors.ErrStoreNotFound
		}
		return models.Catalog{}, &apperrors.StoreError{Op: "read", Err: err}
	}

	var rows []catalogRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return models.Catalog{}, &apperrors.StoreError{Op: "read", Err: err}
	}

	catalog := models.Catalog{HasDurations: meta.HasDurations}
	for _, row := range rows {
		rec := models.ServiceRecord{Name: row.Name, Price: row.Price}
		if row.DurationMin != nil {
			rec.DurationMin = *row.DurationMin
		}
		catalog.Records = append(catalog.Records, rec)
	}
	return catalog, nil
}

func (s *GormCatalogStore) WriteAll(ctx context.Context, catalog models.Catalog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meta := catalogMeta{ID: catalogMetaID, HasDurations: catalog.HasDurations}
		if err := tx.Save(&meta).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&catalogRow{}).Error; err != nil {
			return err
		}
		for i, rec := range catalog.Records {
			row := catalogRow{Position: i, Name: rec.Name, Price: rec.Price}
			if catalog.HasDurations {
				d := rec.DurationMin
				row.DurationMin = &d
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &apperrors.StoreError{Op: "write", Err: err}
	}
	return nil
}

// GormLogStore appends confirmed appointments to a SQL table.
type GormLogStore struct {
	db *gorm.DB
}

func NewGormLogStore(db *gorm.DB) *GormLogStore {
	return &GormLogStore{db: db}
}

func (s *GormLogStore) Append(ctx context.Context, entry models.AppointmentLogEntry) error {
	row := appointmentLogRow{
		ClientName: entry.ClientName,
		Summary:    entry.Summary,
		StartsAt:   entry.Start,
		TotalPrice: entry.TotalPrice,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return &apperrors.StoreError{Op: "write", Err: err}
	}
	return nil
}
