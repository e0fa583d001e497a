package hierarchy

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Jelloman/cheap-sub008/entity"
)

// EntitySet is an insertion-ordered set of unique entity references, by
// global ID (spec §4.2.2). Add, Contains, and Remove are O(1) expected.
type EntitySet struct {
	base
	mu    sync.RWMutex
	index map[uuid.UUID]*entity.Entity
	order []uuid.UUID
}

// NewEntitySet builds an empty, named EntitySet.
func NewEntitySet(name string) *EntitySet {
	return &EntitySet{
		base:  base{name: name, kind: EntitySetKind},
		index: make(map[uuid.UUID]*entity.Entity),
	}
}

func (s *EntitySet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Add inserts e, reporting whether the set actually changed (i.e. e was
// not already present).
func (s *EntitySet) Add(e *entity.Entity) bool {
	id := e.ID()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = e
	s.order = append(s.order, id)
	return true
}

// Contains reports whether e is a member.
func (s *EntitySet) Contains(e *entity.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[e.ID()]
	return ok
}

// Remove deletes e, reporting whether it was present.
func (s *EntitySet) Remove(e *entity.Entity) bool {
	id := e.ID()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Clone returns an unowned copy of the set's current contents.
func (s *EntitySet) Clone() Hierarchy {
	clone := NewEntitySet(s.name)
	for _, e := range s.Iterate() {
		clone.Add(e)
	}
	return clone
}

// Iterate returns the set's members in insertion order.
func (s *EntitySet) Iterate() []*entity.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.index[id])
	}
	return out
}
