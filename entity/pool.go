package entity

import (
	"sync"

	"github.com/google/uuid"
)

// Pool is the process-scoped (in practice, factory-scoped) canonical
// table of Entity handles, keyed by UUID. It implements the
// compare-and-set registration semantics spec §5 requires of the
// factory registry, and it is safe for concurrent use.
type Pool struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Entity
}

// NewPool builds an empty Entity pool.
func NewPool() *Pool {
	return &Pool{byID: make(map[uuid.UUID]*Entity)}
}

// New creates a fresh Entity handle with no UUID assigned yet (lazy
// global-ID promotion). The handle is not registered in the pool until
// its ID is first read.
func (p *Pool) New() *Entity {
	return &Entity{pool: p}
}

// GetOrRegister canonicalizes id: repeated calls with the same UUID
// return the same *Entity handle (spec §8, entity-canonicalization
// invariant).
func (p *Pool) GetOrRegister(id uuid.UUID) *Entity {
	p.mu.RLock()
	if e, ok := p.byID[id]; ok {
		p.mu.RUnlock()
		return e
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.byID[id]; ok {
		return e
	}
	e := &Entity{pool: p, id: id, assigned: true}
	p.byID[id] = e
	return e
}

// adopt registers e (which has just been assigned a UUID via lazy
// promotion) into the pool, unless a different handle already claimed
// that UUID (vanishingly unlikely with random UUIDs, but handled for
// correctness).
func (p *Pool) adopt(e *Entity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.byID[e.id]; ok && existing != e {
		return
	}
	p.byID[e.id] = e
}

// Len reports how many Entity handles have been assigned a UUID and
// registered in the pool.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byID)
}
