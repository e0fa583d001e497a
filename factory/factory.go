// Package factory implements the central construction surface of spec
// §2/§6: one Factory per process (or test), owning the entity
// canonicalization pool and the tables of AspectDefs/HierarchyDefs
// shared across every Catalog it constructs. Grounded on the teacher's
// pattern of a single long-lived store (go/store/datas.Database)
// handed to every higher-level construct that needs to canonicalize
// references.
package factory

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jelloman/cheap-sub008/catalog"
	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/entity"
	"github.com/Jelloman/cheap-sub008/hierarchy"
	"github.com/Jelloman/cheap-sub008/schema"
)

// hierarchyDefEntry records a registered HierarchyDef outside of any one
// catalog, keyed by name, for cross-catalog lookup/reuse (spec §6:
// "registration operations for AspectDef/HierarchyDef").
type hierarchyDefEntry struct {
	name string
	kind hierarchy.Kind
}

// Factory is the process-scoped construction surface: it owns the
// entity pool, the shared AspectDef registry, and the HierarchyDef
// table, and it constructs Catalogs bound to them (spec §2, §5, §6).
type Factory struct {
	mu sync.RWMutex

	entities   *entity.Pool
	aspectDefs *schema.Registry
	hierDefs   map[string]hierarchyDefEntry

	logger *zap.Logger
}

// Option configures a Factory at construction time.
type Option func(*Factory)

// WithLogger supplies a *zap.Logger; the default is a no-op logger,
// threaded into every Catalog this factory constructs.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Factory) { f.logger = logger }
}

// New builds an empty Factory.
func New(opts ...Option) *Factory {
	f := &Factory{
		entities:   entity.NewPool(),
		aspectDefs: schema.NewRegistry(),
		hierDefs:   make(map[string]hierarchyDefEntry),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetOrRegisterEntity canonicalizes id through the factory's pool (spec
// §6: "entity canonicalization (get_or_register_entity(uuid))").
// Repeated calls with the same UUID, within this factory, return the
// same *entity.Entity handle.
func (f *Factory) GetOrRegisterEntity(id uuid.UUID) *entity.Entity {
	return f.entities.GetOrRegister(id)
}

// NewEntity mints a fresh, not-yet-assigned entity handle bound to this
// factory's pool (lazy global-ID promotion, spec §3.1).
func (f *Factory) NewEntity() *entity.Entity {
	return f.entities.New()
}

// RegisterAspectDef registers def in the factory-wide AspectDef table,
// shared by every catalog this factory constructs (idempotent per
// name+contents; conflicting redefinition fails with
// DefinitionConflict, spec §3.1).
func (f *Factory) RegisterAspectDef(def schema.AspectDef) error {
	return f.aspectDefs.Register(def)
}

// AspectDef looks up a previously registered AspectDef by name.
func (f *Factory) AspectDef(name string) (schema.AspectDef, bool) {
	return f.aspectDefs.Get(name)
}

// AspectDefs returns every registered AspectDef in registration order.
func (f *Factory) AspectDefs() []schema.AspectDef {
	return f.aspectDefs.Ordered()
}

// RegisterHierarchyDef records name/kind in the factory-wide
// HierarchyDef table. Idempotent for an identical (name, kind) pair;
// a name reused with a different kind fails with DefinitionConflict.
func (f *Factory) RegisterHierarchyDef(name string, kind hierarchy.Kind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.hierDefs[name]; ok {
		if existing.kind != kind {
			return cheaperr.New(cheaperr.KindDefinitionConflict, name, "hierarchy def already registered with a different kind")
		}
		return nil
	}
	f.hierDefs[name] = hierarchyDefEntry{name: name, kind: kind}
	return nil
}

// HierarchyDef looks up a previously registered HierarchyDef by name.
func (f *Factory) HierarchyDef(name string) (hierarchy.Kind, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.hierDefs[name]
	return e.kind, ok
}

// NewCatalog constructs a Catalog bound to this factory's logger,
// delegating to catalog.New for the species/upstream/strict contract
// of spec §4.1.
func (f *Factory) NewCatalog(id uuid.UUID, species catalog.Species, upstream catalog.Upstream, opts ...catalog.Option) (*catalog.Catalog, error) {
	allOpts := append([]catalog.Option{catalog.WithLogger(f.logger)}, opts...)
	return catalog.New(id, species, upstream, allOpts...)
}
