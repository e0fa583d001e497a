package catalog

import "github.com/google/uuid"

// ExternalSource describes the external system a source/sink catalog
// backs (a database, a filesystem, or any other out-of-process store).
// The core never dials it — synchronization is an application-supplied
// callback (spec §4.1).
type ExternalSource struct {
	URI         string
	Description string
}

// Upstream is a catalog's exactly-one-of relation to whatever it
// derives from (spec §3.3): either an ExternalSource descriptor or
// another catalog's UUID, never both, never neither.
type Upstream struct {
	external *ExternalSource
	catalog  *uuid.UUID
}

// FromExternalSource builds an Upstream backed by an external source.
func FromExternalSource(src ExternalSource) Upstream {
	return Upstream{external: &src}
}

// FromCatalog builds an Upstream backed by another catalog.
func FromCatalog(id uuid.UUID) Upstream {
	return Upstream{catalog: &id}
}

// IsExternal reports whether this Upstream is backed by an external
// source descriptor.
func (u Upstream) IsExternal() bool { return u.external != nil }

// External returns the external source descriptor, if any.
func (u Upstream) External() (ExternalSource, bool) {
	if u.external == nil {
		return ExternalSource{}, false
	}
	return *u.external, true
}

// CatalogID returns the upstream catalog's UUID, if any.
func (u Upstream) CatalogID() (uuid.UUID, bool) {
	if u.catalog == nil {
		return uuid.UUID{}, false
	}
	return *u.catalog, true
}

// IsZero reports whether this Upstream carries neither an external
// source nor a catalog reference — a state every constructed Catalog
// must avoid (spec §3.3).
func (u Upstream) IsZero() bool { return u.external == nil && u.catalog == nil }
