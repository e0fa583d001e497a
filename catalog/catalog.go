package catalog

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jelloman/cheap-sub008/aspect"
	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/entity"
	"github.com/Jelloman/cheap-sub008/hierarchy"
	"github.com/Jelloman/cheap-sub008/schema"
)

// Catalog is the top-level container of spec §4.1: it owns the
// Aspectage (AspectDefs reachable in this catalog), the set of
// hierarchies, the species and upstream reference, and the strict
// flag. A Catalog is never authoritative storage — it is always a
// working copy or cache of some upstream (spec §1).
type Catalog struct {
	mu sync.RWMutex

	id       uuid.UUID
	species  Species
	strict   bool
	def      CatalogDef
	upstream Upstream

	aspectage   *schema.Registry
	hierarchies map[string]hierarchy.Hierarchy
	order       []string

	logger *zap.Logger
}

// Option configures a Catalog at construction time.
type Option func(*Catalog)

// WithStrict marks the catalog strict: it rejects AspectDefs or
// HierarchyDefs not named in its bound CatalogDef (spec §3.3).
func WithStrict(strict bool) Option {
	return func(c *Catalog) { c.strict = strict }
}

// WithCatalogDef binds an informational CatalogDef to the catalog.
func WithCatalogDef(def CatalogDef) Option {
	return func(c *Catalog) { c.def = def }
}

// WithLogger supplies a *zap.Logger; the default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

// New builds a Catalog with the given id, species, and upstream. A
// zero Upstream (neither external source nor catalog reference) is
// rejected — spec §3.3 requires exactly one.
func New(id uuid.UUID, species Species, upstream Upstream, opts ...Option) (*Catalog, error) {
	if upstream.IsZero() {
		return nil, cheaperr.New(cheaperr.KindMissingRequiredField, id.String(), "catalog must have exactly one upstream reference")
	}
	c := &Catalog{
		id:          id,
		species:     species,
		upstream:    upstream,
		aspectage:   schema.NewRegistry(),
		hierarchies: make(map[string]hierarchy.Hierarchy),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CatalogID satisfies hierarchy.CatalogRef, letting hierarchies assert
// they are owned by this catalog.
func (c *Catalog) CatalogID() uuid.UUID { return c.id }

func (c *Catalog) Species() Species     { return c.species }
func (c *Catalog) Upstream() Upstream   { return c.upstream }
func (c *Catalog) IsStrict() bool       { return c.strict }
func (c *Catalog) Def() CatalogDef      { return c.def }
func (c *Catalog) IsReadOnly() bool     { return !c.species.LocalWritesAllowed() }

// RequireWritable returns ReadOnly if the catalog's species forbids
// caller-initiated local writes (spec §3.4, §7).
func (c *Catalog) RequireWritable() error {
	if c.IsReadOnly() {
		return cheaperr.New(cheaperr.KindReadOnly, c.id.String(), "catalog species "+c.species.String()+" does not allow local writes")
	}
	return nil
}

// ExtendAspectage registers def with the catalog, creating its
// companion AspectMap hierarchy if one is not already present.
// Idempotent per (name, contents); a conflicting redefinition fails
// with DefinitionConflict. In a strict catalog, def must already be
// named in the bound CatalogDef or this fails with StrictViolation
// (spec §4.1).
func (c *Catalog) ExtendAspectage(def schema.AspectDef) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.strict && !c.def.HasAspectDef(def) {
		return cheaperr.New(cheaperr.KindStrictViolation, def.Name, "strict catalog does not name this AspectDef in its CatalogDef")
	}
	if err := c.aspectage.Register(def); err != nil {
		return err
	}
	if _, exists := c.hierarchies[def.Name]; !exists {
		m := hierarchy.NewAspectMap(def)
		if err := m.SetOwner(c); err != nil {
			return err
		}
		c.hierarchies[def.Name] = m
		c.order = append(c.order, def.Name)
	}
	return nil
}

// AddHierarchy registers h under its declared name. Fails on name
// collision. For AspectMap hierarchies the name must equal the
// underlying AspectDef's name (spec §4.1, §3.3).
func (c *Catalog) AddHierarchy(h hierarchy.Hierarchy) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.strict && !c.def.HasHierarchyDef(h.Name(), h.Kind()) {
		if h.Kind() != hierarchy.AspectMapKind {
			return cheaperr.New(cheaperr.KindStrictViolation, h.Name(), "strict catalog does not name this hierarchy in its CatalogDef")
		}
	}
	if _, exists := c.hierarchies[h.Name()]; exists {
		return cheaperr.New(cheaperr.KindDuplicateName, h.Name(), "hierarchy name already registered in this catalog")
	}
	if am, ok := h.(*hierarchy.AspectMap); ok && am.AspectDef().Name != h.Name() {
		return cheaperr.New(cheaperr.KindTypeMismatch, h.Name(), "AspectMap hierarchy name must equal its AspectDef's name")
	}
	if err := h.SetOwner(c); err != nil {
		return err
	}
	c.hierarchies[h.Name()] = h
	c.order = append(c.order, h.Name())
	return nil
}

// Hierarchy looks up a hierarchy by name.
func (c *Catalog) Hierarchy(name string) (hierarchy.Hierarchy, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.hierarchies[name]
	return h, ok
}

// Hierarchies returns every hierarchy in the catalog, in the order they
// were added (spec §5 ordering guarantee).
func (c *Catalog) Hierarchies() []hierarchy.Hierarchy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]hierarchy.Hierarchy, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.hierarchies[name])
	}
	return out
}

// AspectsByName returns the AspectMap hierarchy for the named AspectDef.
func (c *Catalog) AspectsByName(name string) (*hierarchy.AspectMap, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.hierarchies[name]
	if !ok {
		return nil, false
	}
	m, ok := h.(*hierarchy.AspectMap)
	return m, ok
}

// Aspects returns the AspectMap hierarchy bound to def, verified by
// content hash.
func (c *Catalog) Aspects(def schema.AspectDef) (*hierarchy.AspectMap, bool) {
	m, ok := c.AspectsByName(def.Name)
	if !ok || m.AspectDef().Hash() != def.Hash() {
		return nil, false
	}
	return m, true
}

// PutAspect writes a into the AspectMap for its AspectDef, honoring the
// catalog's species write policy (spec §3.4, §7).
func (c *Catalog) PutAspect(ent *entity.Entity, a *aspect.Aspect) error {
	if err := c.RequireWritable(); err != nil {
		return err
	}
	m, ok := c.Aspects(a.Def())
	if !ok {
		return cheaperr.New(cheaperr.KindUnknownAspectDef, a.Def().Name, "AspectDef is not registered with this catalog")
	}
	return m.Put(ent, a)
}

// AspectDefs returns the catalog's Aspectage in registration order.
func (c *Catalog) AspectDefs() []schema.AspectDef {
	return c.aspectage.Ordered()
}

// ForkToSink produces a new catalog of species Fork->Sink transition:
// a sink-species catalog holding a snapshot of this catalog's full
// content graph, with its upstream linkage cleared (spec §3.4, §4.1:
// "the one-way transition that converts a read-only derivative into an
// independent sink-like working copy").
func (c *Catalog) ForkToSink(newID uuid.UUID, externalSource ExternalSource) (*Catalog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	forked, err := New(newID, Sink, FromExternalSource(externalSource), WithStrict(c.strict), WithCatalogDef(c.def), WithLogger(c.logger))
	if err != nil {
		return nil, err
	}

	for _, name := range c.order {
		h := c.hierarchies[name]
		if err := forked.AddHierarchy(h.Clone()); err != nil {
			return nil, err
		}
	}
	for _, def := range c.aspectage.Ordered() {
		if err := forked.aspectage.Register(def); err != nil {
			return nil, err
		}
	}
	return forked, nil
}
