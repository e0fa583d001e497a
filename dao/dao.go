// Package dao defines the persistence contract of spec §4.5: a
// dialect-independent interface every catalog store must satisfy, plus
// the relational schema-shape constants (table and column names) a
// concrete implementation binds to. dao/sqlshape is the reference
// implementation exercising this contract against MySQL.
package dao

import (
	"context"

	"github.com/google/uuid"

	"github.com/Jelloman/cheap-sub008/catalog"
	"github.com/Jelloman/cheap-sub008/factory"
)

// CatalogDAO is the four-operation persistence contract of spec §4.5.
// Every operation is atomic: a failure rolls back every change the
// operation attempted.
type CatalogDAO interface {
	// Save upserts definition rows first, instance rows second, and
	// property values last (spec §4.5 save protocol).
	Save(ctx context.Context, c *catalog.Catalog) error

	// Load streams rows back into factory registration order —
	// definitions before the instances that reference them, canonicalized
	// through f — so that reference-before-definition cannot occur
	// (spec §4.5 load protocol).
	Load(ctx context.Context, f *factory.Factory, id uuid.UUID) (*catalog.Catalog, error)

	// Exists reports whether a catalog row for id is present.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Delete removes a catalog and everything owned by it.
	Delete(ctx context.Context, id uuid.UUID) error
}
