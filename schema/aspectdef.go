package schema

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Jelloman/cheap-sub008/hash"
)

// AspectDef is a globally-named schema for an aspect: it fixes the
// property set (in declared order — PropertyDef order feeds the
// content hash, spec §4.3) and the mutability profile via four
// booleans, per spec §4.3:
//
//	Readable              - can properties be read at all
//	Writable              - can existing property slots be rewritten
//	CanAddProperties      - can new property slots be added (fully mutable)
//	CanRemoveProperties   - can property slots be removed (fully mutable)
//
// The three "flavors" described narratively in spec §4.3 (Immutable,
// Mutable fixed-shape, Fully mutable) are not separate types — they are
// the three flag combinations the aspect engine switches on (spec §9).
type AspectDef struct {
	Name                 string
	GlobalID             *uuid.UUID
	URI                  string
	Version              string
	Properties           []PropertyDef
	Readable             bool
	Writable             bool
	CanAddProperties     bool
	CanRemoveProperties  bool
}

// NewAspectDef builds a fully mutable AspectDef (Readable, Writable,
// CanAddProperties and CanRemoveProperties all true) — the common case
// for application-defined aspects. Use the With* helpers to narrow it.
func NewAspectDef(name string, props ...PropertyDef) AspectDef {
	return AspectDef{
		Name:                name,
		Properties:          append([]PropertyDef(nil), props...),
		Readable:            true,
		Writable:            true,
		CanAddProperties:    true,
		CanRemoveProperties: true,
	}
}

func (a AspectDef) WithGlobalID(id uuid.UUID) AspectDef {
	a.GlobalID = &id
	return a
}

func (a AspectDef) WithURI(uri, version string) AspectDef {
	a.URI = uri
	a.Version = version
	return a
}

// Immutable marks the AspectDef so no property slot may be added,
// removed, or rewritten after creation.
func (a AspectDef) Immutable() AspectDef {
	a.Writable = false
	a.CanAddProperties = false
	a.CanRemoveProperties = false
	return a
}

// FixedShape marks the AspectDef so slots may be rewritten but never
// added or removed.
func (a AspectDef) FixedShape() AspectDef {
	a.Writable = true
	a.CanAddProperties = false
	a.CanRemoveProperties = false
	return a
}

// Property looks up a PropertyDef by name.
func (a AspectDef) Property(name string) (PropertyDef, bool) {
	for _, p := range a.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyDef{}, false
}

// Hash computes the AspectDef's content hash: an order-sensitive digest
// over the name and each PropertyDef in declared order (spec §4.3,
// §9 — grounded on the teacher's struct-type hashing, where field
// order feeds the type's hash).
func (a AspectDef) Hash() hash.Hash {
	var b strings.Builder
	b.WriteString(a.Name)
	b.WriteByte(0)
	for _, p := range a.Properties {
		b.WriteString(p.contentKey())
		b.WriteByte(0)
	}
	return hash.Of([]byte(b.String()))
}

// Equal reports whether two AspectDefs describe the same name and
// content — used to distinguish an idempotent re-registration from a
// conflicting redefinition (spec §4.1).
func (a AspectDef) Equal(o AspectDef) bool {
	return a.Name == o.Name && a.Hash() == o.Hash()
}

// propertyNamesUnique reports whether a has no duplicate property
// names — a cross-tier invariant checked by NewAspectDef callers /
// the registry (spec §3.3).
func (a AspectDef) propertyNamesUnique() bool {
	seen := make(map[string]struct{}, len(a.Properties))
	for _, p := range a.Properties {
		if _, dup := seen[p.Name]; dup {
			return false
		}
		seen[p.Name] = struct{}{}
	}
	return true
}
