package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// catalogNamespace seeds the deterministic record identifiers derived at
// load time.
var catalogNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("agenda:catalog"))

// ServiceRecord is one row of the service catalog.
//
// The persisted row format carries only name, price and (optionally)
// duration, so IDs are not stored: they are derived from position and name
// when the catalog is loaded. Identities shift after any mutation and must
// be re-resolved by callers, never cached across calls.
type ServiceRecord struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	DurationMin int             `json:"durationMin,omitempty"`
}

// Catalog is the ordered set of offered services. Insertion order is
// preserved, row removal does not reorder the remaining rows, and the whole
// catalog is the unit of persistence (read-all / replace-all).
//
// HasDurations distinguishes the two supported schemas: catalogs that carry
// an explicit per-service duration column and catalogs that rely on a
// uniform default duration applied at composition time.
type Catalog struct {
	Records      []ServiceRecord `json:"records"`
	HasDurations bool            `json:"hasDurations"`
}

// AssignIdentities recomputes the derived ID of every record.
func (c *Catalog) AssignIdentities() {
	for i := range c.Records {
		c.Records[i].ID = uuid.NewSHA1(catalogNamespace, []byte(fmt.Sprintf("%d:%s", i, c.Records[i].Name)))
	}
}

// IndexOf resolves a record identity to its current position, or -1.
func (c *Catalog) IndexOf(id uuid.UUID) int {
	for i := range c.Records {
		if c.Records[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByName returns the first record with the given name (case-sensitive).
func (c *Catalog) FindByName(name string) (ServiceRecord, bool) {
	for _, rec := range c.Records {
		if rec.Name == name {
			return rec, true
		}
	}
	return ServiceRecord{}, false
}
