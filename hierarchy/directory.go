package hierarchy

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Jelloman/cheap-sub008/entity"
)

// DirectoryEntry is one (key, entity) pair yielded by
// EntityDirectory.Iterate.
type DirectoryEntry struct {
	Key    string
	Entity *entity.Entity
}

// EntityDirectory maps string keys to entities; each key maps to
// exactly one entity, but an entity may appear under multiple keys
// (spec §4.2.3). Iteration order is insertion order.
type EntityDirectory struct {
	base
	mu    sync.RWMutex
	byKey map[string]*entity.Entity
	order []string
}

// NewEntityDirectory builds an empty, named EntityDirectory.
func NewEntityDirectory(name string) *EntityDirectory {
	return &EntityDirectory{
		base:  base{name: name, kind: EntityDirectoryKind},
		byKey: make(map[string]*entity.Entity),
	}
}

func (d *EntityDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.order)
}

// Put maps key to e, overwriting any existing mapping for key.
func (d *EntityDirectory) Put(key string, e *entity.Entity) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, existed := d.byKey[key]; !existed {
		d.order = append(d.order, key)
	}
	d.byKey[key] = e
}

// Get looks up key.
func (d *EntityDirectory) Get(key string) (*entity.Entity, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.byKey[key]
	return e, ok
}

// Remove deletes the mapping for key, reporting whether it existed.
// This and RemoveByEntity are exposed as two distinct operations rather
// than a single polymorphic delete (spec §9 Open Question resolution,
// see SPEC_FULL.md).
func (d *EntityDirectory) Remove(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byKey[key]; !ok {
		return false
	}
	delete(d.byKey, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// RemoveByEntity removes every key mapping to the entity identified by
// id, returning the count of keys removed.
func (d *EntityDirectory) RemoveByEntity(id uuid.UUID) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := 0
	keptOrder := d.order[:0:0]
	for _, k := range d.order {
		e := d.byKey[k]
		if e != nil && e.ID() == id {
			delete(d.byKey, k)
			count++
		} else {
			keptOrder = append(keptOrder, k)
		}
	}
	d.order = keptOrder
	return count
}

// Clone returns an unowned copy of the directory's current contents.
func (d *EntityDirectory) Clone() Hierarchy {
	clone := NewEntityDirectory(d.name)
	for _, entry := range d.Iterate() {
		clone.Put(entry.Key, entry.Entity)
	}
	return clone
}

// Iterate returns the directory's entries in insertion order.
func (d *EntityDirectory) Iterate() []DirectoryEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]DirectoryEntry, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, DirectoryEntry{Key: k, Entity: d.byKey[k]})
	}
	return out
}
