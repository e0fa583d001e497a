package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jelloman/cheap-sub008/entity"
)

func TestEntitySetAddContainsRemove(t *testing.T) {
	pool := entity.NewPool()
	e1, e2 := pool.New(), pool.New()

	s := NewEntitySet("members")
	assert.True(t, s.Add(e1))
	assert.False(t, s.Add(e1), "re-adding the same entity reports no change")
	assert.True(t, s.Add(e2))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(e1))

	assert.True(t, s.Remove(e1))
	assert.False(t, s.Contains(e1))
	assert.False(t, s.Remove(e1))
}

func TestEntitySetIterationOrderIsInsertionOrder(t *testing.T) {
	pool := entity.NewPool()
	e1, e2, e3 := pool.New(), pool.New(), pool.New()
	s := NewEntitySet("s")
	s.Add(e2)
	s.Add(e3)
	s.Add(e1)
	assert.Equal(t, []*entity.Entity{e2, e3, e1}, s.Iterate())
}
