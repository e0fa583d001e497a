// Package hierarchy implements the five collection variants of spec
// §4.2 (EntityList, EntitySet, EntityDirectory, EntityTree, AspectMap)
// behind one polymorphic Hierarchy interface, grounded on the
// teacher's pattern of a tagged sum of collection kinds dispatched by a
// two-letter type code (spec §9: "modeled as a tagged sum with
// operations dispatched on the variant, plus a common trait/interface
// covering name, type, iteration, count").
package hierarchy

import (
	"github.com/google/uuid"

	"github.com/Jelloman/cheap-sub008/cheaperr"
)

// Kind identifies which of the five variants a Hierarchy is.
type Kind uint8

const (
	EntityListKind Kind = iota
	EntitySetKind
	EntityDirectoryKind
	EntityTreeKind
	AspectMapKind
)

var kindCodes = [...]string{
	EntityListKind:      "EL",
	EntitySetKind:       "ES",
	EntityDirectoryKind: "ED",
	EntityTreeKind:      "ET",
	AspectMapKind:       "AM",
}

var kindNames = [...]string{
	EntityListKind:      "EntityList",
	EntitySetKind:       "EntitySet",
	EntityDirectoryKind: "EntityDirectory",
	EntityTreeKind:      "EntityTree",
	AspectMapKind:       "AspectMap",
}

func (k Kind) Code() string { return kindCodes[k] }
func (k Kind) String() string { return kindNames[k] }

// KindByCode resolves a two-letter wire code back to a Kind.
func KindByCode(code string) (Kind, bool) {
	for i, c := range kindCodes {
		if c == code {
			return Kind(i), true
		}
	}
	return 0, false
}

// KindByName resolves a Kind's enum name (e.g. "EntityList") back to a
// Kind, used when decoding the JSON wire format of spec §4.4.
func KindByName(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// CatalogRef is the minimal identity a Hierarchy needs from its owning
// Catalog. Defining it here (rather than importing the catalog
// package) avoids a hierarchy<->catalog import cycle while still
// letting a Hierarchy assert "my owner is catalog X" (spec §8: "for all
// catalogs C and hierarchies H in C, H.catalog == C").
type CatalogRef interface {
	CatalogID() uuid.UUID
}

// Hierarchy is the common interface every variant satisfies: a name, a
// Kind, the owning catalog, and size/iteration. Variant-specific
// operations live on the concrete types (*EntityList, *EntitySet, ...).
type Hierarchy interface {
	Name() string
	Kind() Kind
	Owner() CatalogRef
	Len() int

	// SetOwner binds the hierarchy to its owning catalog. It is called
	// by Catalog.AddHierarchy, and by Catalog.ExtendAspectage for the
	// companion AspectMap it creates; calling it again with a different
	// owner fails.
	SetOwner(owner CatalogRef) error

	// Clone returns an unowned copy of this hierarchy's contents, for use
	// by Catalog.ForkToSink: adding, removing or replacing entries in the
	// copy does not affect the original. Entity handles are shared, and
	// an AspectMap's copy shares its Aspect objects with the original.
	Clone() Hierarchy
}

// base is embedded by every concrete hierarchy type.
type base struct {
	name  string
	kind  Kind
	owner CatalogRef
}

func (b *base) Name() string      { return b.name }
func (b *base) Kind() Kind         { return b.kind }
func (b *base) Owner() CatalogRef { return b.owner }

func (b *base) SetOwner(owner CatalogRef) error {
	if b.owner != nil && b.owner.CatalogID() != owner.CatalogID() {
		return cheaperr.New(cheaperr.KindDefinitionConflict, b.name, "hierarchy is already owned by a different catalog")
	}
	b.owner = owner
	return nil
}
