package hierarchy

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Jelloman/cheap-sub008/aspect"
	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/entity"
	"github.com/Jelloman/cheap-sub008/schema"
)

// AspectMapEntry is one (entity, aspect) pair yielded by
// AspectMap.Iterate.
type AspectMapEntry struct {
	Entity *entity.Entity
	Aspect *aspect.Aspect
}

// AspectMap maps entity to aspect for exactly one AspectDef (spec
// §4.2.5). Its Name always equals its AspectDef's name (spec §3.3,
// §8), enforced by NewAspectMap.
type AspectMap struct {
	base
	mu       sync.RWMutex
	def      schema.AspectDef
	byEntity map[uuid.UUID]*aspect.Aspect
	order    []uuid.UUID
}

// NewAspectMap builds an empty AspectMap bound to def. Its hierarchy
// name is def.Name.
func NewAspectMap(def schema.AspectDef) *AspectMap {
	return &AspectMap{
		base:     base{name: def.Name, kind: AspectMapKind},
		def:      def,
		byEntity: make(map[uuid.UUID]*aspect.Aspect),
	}
}

// AspectDef returns the AspectDef this map is bound to.
func (m *AspectMap) AspectDef() schema.AspectDef { return m.def }

func (m *AspectMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Put inserts or overwrites the aspect for ent. a must be bound to
// ent and to an AspectDef sharing this map's content hash, or Put fails
// with TypeMismatch (spec §4.2.5). Inserting a second aspect for an
// entity already present overwrites the first (spec §8).
func (m *AspectMap) Put(ent *entity.Entity, a *aspect.Aspect) error {
	if a.Def().Hash() != m.def.Hash() {
		return cheaperr.New(cheaperr.KindTypeMismatch, m.name, "aspect's AspectDef does not match this map's AspectDef")
	}
	if !a.Entity().Equals(ent) {
		return cheaperr.New(cheaperr.KindTypeMismatch, m.name, "aspect is not bound to the given entity")
	}

	id := ent.ID()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, existed := m.byEntity[id]; !existed {
		m.order = append(m.order, id)
	}
	m.byEntity[id] = a
	return nil
}

// Get returns the aspect for ent, or (_, false) if absent.
func (m *AspectMap) Get(ent *entity.Entity) (*aspect.Aspect, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.byEntity[ent.ID()]
	return a, ok
}

// Remove deletes the aspect for ent, reporting whether one existed.
func (m *AspectMap) Remove(ent *entity.Entity) bool {
	id := ent.ID()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEntity[id]; !ok {
		return false
	}
	delete(m.byEntity, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Clone returns an unowned copy of the map's current entries. Aspect
// values are shared by reference, not copied: a property write through
// one of them is seen through both maps, while putting or removing
// entries in one map does not affect the other.
func (m *AspectMap) Clone() Hierarchy {
	clone := NewAspectMap(m.def)
	for _, entry := range m.Iterate() {
		_ = clone.Put(entry.Entity, entry.Aspect)
	}
	return clone
}

// Iterate returns (entity, aspect) pairs in insertion order.
func (m *AspectMap) Iterate() []AspectMapEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]AspectMapEntry, 0, len(m.order))
	for _, id := range m.order {
		a := m.byEntity[id]
		out = append(out, AspectMapEntry{Entity: a.Entity(), Aspect: a})
	}
	return out
}
