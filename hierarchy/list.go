package hierarchy

import (
	"sync"

	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/entity"
)

// EntityList is an ordered sequence of Entity references with
// duplicates permitted (spec §4.2.1). Iteration order equals insertion
// order modulo explicit positional mutations.
type EntityList struct {
	base
	mu    sync.RWMutex
	items []*entity.Entity
}

// NewEntityList builds an empty, named EntityList.
func NewEntityList(name string) *EntityList {
	return &EntityList{base: base{name: name, kind: EntityListKind}}
}

func (l *EntityList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Add appends e to the end of the list.
func (l *EntityList) Add(e *entity.Entity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, e)
}

// AddAll appends every entity in es, in order.
func (l *EntityList) AddAll(es []*entity.Entity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, es...)
}

// Get returns the entity at position i.
func (l *EntityList) Get(i int) (*entity.Entity, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.items) {
		return nil, cheaperr.New(cheaperr.KindIndexOutOfBounds, l.name, "index out of bounds")
	}
	return l.items[i], nil
}

// Insert inserts e at position i, shifting subsequent elements right.
// i == Len() is a valid append position.
func (l *EntityList) Insert(i int, e *entity.Entity) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i > len(l.items) {
		return cheaperr.New(cheaperr.KindIndexOutOfBounds, l.name, "index out of bounds")
	}
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = e
	return nil
}

// Replace overwrites the element at position i, returning the previous
// value.
func (l *EntityList) Replace(i int, e *entity.Entity) (*entity.Entity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return nil, cheaperr.New(cheaperr.KindIndexOutOfBounds, l.name, "index out of bounds")
	}
	old := l.items[i]
	l.items[i] = e
	return old, nil
}

// RemoveAt removes and returns the element at position i.
func (l *EntityList) RemoveAt(i int) (*entity.Entity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return nil, cheaperr.New(cheaperr.KindIndexOutOfBounds, l.name, "index out of bounds")
	}
	removed := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	return removed, nil
}

// RemoveValue removes the first occurrence of e, reporting whether
// anything was removed.
func (l *EntityList) RemoveValue(e *entity.Entity) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, item := range l.items {
		if item.Equals(e) {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll removes every occurrence of every entity in es, returning
// the count removed.
func (l *EntityList) RemoveAll(es []*entity.Entity) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	kept := l.items[:0:0]
	for _, item := range l.items {
		match := false
		for _, e := range es {
			if item.Equals(e) {
				match = true
				break
			}
		}
		if match {
			count++
		} else {
			kept = append(kept, item)
		}
	}
	l.items = kept
	return count
}

// RetainAll removes every element not present in es, returning the
// count removed.
func (l *EntityList) RetainAll(es []*entity.Entity) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	kept := l.items[:0:0]
	for _, item := range l.items {
		match := false
		for _, e := range es {
			if item.Equals(e) {
				match = true
				break
			}
		}
		if match {
			kept = append(kept, item)
		} else {
			count++
		}
	}
	l.items = kept
	return count
}

// IndexOf returns the position of the first occurrence of e, or -1.
func (l *EntityList) IndexOf(e *entity.Entity) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i, item := range l.items {
		if item.Equals(e) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the position of the last occurrence of e, or -1.
func (l *EntityList) LastIndexOf(e *entity.Entity) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.items) - 1; i >= 0; i-- {
		if l.items[i].Equals(e) {
			return i
		}
	}
	return -1
}

// Clone returns an unowned copy of the list's current contents.
func (l *EntityList) Clone() Hierarchy {
	clone := NewEntityList(l.name)
	clone.items = l.Iterate()
	return clone
}

// Iterate returns a forward snapshot of the list's contents.
func (l *EntityList) Iterate() []*entity.Entity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*entity.Entity, len(l.items))
	copy(out, l.items)
	return out
}

// ReverseIterate returns a reverse snapshot of the list's contents.
func (l *EntityList) ReverseIterate() []*entity.Entity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*entity.Entity, len(l.items))
	for i, item := range l.items {
		out[len(l.items)-1-i] = item
	}
	return out
}

// SubList returns an independent-read, write-through view over
// [from, to) of the list, per spec §4.2.1 ("sublist view: independent
// reads; mutating a sublist view must write through to the parent").
func (l *EntityList) SubList(from, to int) (*SubList, error) {
	l.mu.RLock()
	n := len(l.items)
	l.mu.RUnlock()
	if from < 0 || to > n || from > to {
		return nil, cheaperr.New(cheaperr.KindIndexOutOfBounds, l.name, "sublist bounds out of range")
	}
	return &SubList{parent: l, from: from, to: to}, nil
}

// SubList is a bounded, write-through view over a parent EntityList.
type SubList struct {
	parent *EntityList
	from   int
	to     int
}

func (s *SubList) Len() int { return s.to - s.from }

// Get reads position i of the view (independent read: returns a
// snapshot value, unaffected by later parent mutations elsewhere).
func (s *SubList) Get(i int) (*entity.Entity, error) {
	if i < 0 || i >= s.Len() {
		return nil, cheaperr.New(cheaperr.KindIndexOutOfBounds, s.parent.name, "sublist index out of bounds")
	}
	return s.parent.Get(s.from + i)
}

// Replace writes through to the parent list at the corresponding
// position.
func (s *SubList) Replace(i int, e *entity.Entity) (*entity.Entity, error) {
	if i < 0 || i >= s.Len() {
		return nil, cheaperr.New(cheaperr.KindIndexOutOfBounds, s.parent.name, "sublist index out of bounds")
	}
	return s.parent.Replace(s.from+i, e)
}

// Iterate returns a snapshot of the view's current contents.
func (s *SubList) Iterate() []*entity.Entity {
	all := s.parent.Iterate()
	if s.to > len(all) {
		return append([]*entity.Entity(nil), all[s.from:]...)
	}
	return append([]*entity.Entity(nil), all[s.from:s.to]...)
}
