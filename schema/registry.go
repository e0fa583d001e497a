package schema

import (
	"sync"

	"github.com/Jelloman/cheap-sub008/cheaperr"
)

// Registry is the process-scoped, thread-safe AspectDef table described
// in spec §5 ("the factory registry... is process-scoped and must be
// thread-safe: insertions use compare-and-set semantics keyed by
// name"). The Factory holds one Registry as its AspectDef table and each
// Catalog holds one for its Aspectage; the Factory keeps HierarchyDefs
// in a separate name-keyed table of its own.
type Registry struct {
	mu    sync.RWMutex
	byName map[string]AspectDef
	order  []string // registration order, for deterministic serialization (spec §5)
}

// NewRegistry builds an empty AspectDef registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]AspectDef)}
}

// Register adds def to the registry. Re-registering an identical
// AspectDef (same name, same content hash) is idempotent. Registering a
// different AspectDef under a name already present fails with
// DefinitionConflict (spec §4.1).
func (r *Registry) Register(def AspectDef) error {
	if !def.propertyNamesUnique() {
		return cheaperr.New(cheaperr.KindDuplicateName, def.Name, "property names must be unique within an AspectDef")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byName[def.Name]
	if ok {
		if existing.Equal(def) {
			return nil
		}
		return cheaperr.New(cheaperr.KindDefinitionConflict, def.Name,
			"AspectDef already registered with different contents")
	}
	r.byName[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// Get looks up an AspectDef by name.
func (r *Registry) Get(name string) (AspectDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	return d, ok
}

// Ordered returns every registered AspectDef in registration order.
// serial.Encode walks this order, but it writes def.aspectDefs as a JSON
// object keyed by name, and encoding/json emits those keys sorted by
// name, so the encoded document does not keep registration order.
func (r *Registry) Ordered() []AspectDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]AspectDef, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len reports how many AspectDefs are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
