package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGetOrRegisterIsStable(t *testing.T) {
	pool := NewPool()
	id := uuid.New()

	e1 := pool.GetOrRegister(id)
	e2 := pool.GetOrRegister(id)
	assert.Same(t, e1, e2)
	assert.Equal(t, 1, pool.Len())
}

func TestLazyPromotionRegistersOnFirstRead(t *testing.T) {
	pool := NewPool()
	e := pool.New()
	assert.False(t, e.HasID())
	assert.Equal(t, 0, pool.Len())

	id := e.ID()
	assert.True(t, e.HasID())
	assert.Equal(t, 1, pool.Len())

	fetched := pool.GetOrRegister(id)
	assert.Same(t, e, fetched)
}

func TestEqualsByIdentity(t *testing.T) {
	pool := NewPool()
	a := pool.New()
	b := pool.New()
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(a))
}
