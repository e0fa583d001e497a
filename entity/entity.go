// Package entity implements the bare, globally-unique identifiers of
// spec §3.1: opaque handles with no intrinsic content, supporting lazy
// global-ID promotion, canonicalized through a process/factory-scoped
// Pool so that two references to the same UUID always resolve to the
// same Go pointer (spec §9, "Factory registry with potential cyclic
// reference graph... modeled by content-addressed identifiers rather
// than owning pointers").
package entity

import (
	"sync"

	"github.com/google/uuid"
)

// Entity is a bare, globally-unique identifier. Its identity is
// immutable once assigned; a freshly-created Entity may not yet have a
// UUID (lazy promotion) until something forces one — e.g. the
// serializer needing to emit a reference.
type Entity struct {
	pool *Pool

	mu       sync.Mutex
	id       uuid.UUID
	assigned bool
}

// HasID reports whether this handle has been promoted to a concrete
// UUID yet.
func (e *Entity) HasID() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.assigned
}

// ID returns the Entity's UUID, lazily assigning and registering one on
// first access if none has been assigned yet.
func (e *Entity) ID() uuid.UUID {
	e.mu.Lock()
	if e.assigned {
		id := e.id
		e.mu.Unlock()
		return id
	}
	e.id = uuid.New()
	e.assigned = true
	id := e.id
	e.mu.Unlock()

	if e.pool != nil {
		e.pool.adopt(e)
	}
	return id
}

// Equals reports whether two handles are the same entity. Handles
// pooled through the same Pool compare by pointer identity; this also
// compares by UUID for handles assigned outside a pool.
func (e *Entity) Equals(o *Entity) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil {
		return false
	}
	if !e.HasID() || !o.HasID() {
		return false
	}
	return e.ID() == o.ID()
}
