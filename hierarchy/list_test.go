package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/entity"
)

func TestEntityListAddIndexOf(t *testing.T) {
	pool := entity.NewPool()
	e1, e2 := pool.New(), pool.New()

	l := NewEntityList("queue")
	l.Add(e1)
	l.Add(e2)
	l.Add(e1)

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 0, l.IndexOf(e1))
	assert.Equal(t, 2, l.LastIndexOf(e1))

	removed, err := l.RemoveAt(1)
	require.NoError(t, err)
	assert.True(t, removed.Equals(e2))
	assert.Equal(t, []*entity.Entity{e1, e1}, l.Iterate())
}

func TestEntityListOutOfBounds(t *testing.T) {
	l := NewEntityList("queue")
	_, err := l.Get(0)
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindIndexOutOfBounds))
}

func TestEntityListInsertReplace(t *testing.T) {
	pool := entity.NewPool()
	e1, e2, e3 := pool.New(), pool.New(), pool.New()
	l := NewEntityList("l")
	l.Add(e1)
	l.Add(e2)

	require.NoError(t, l.Insert(1, e3))
	assert.Equal(t, []*entity.Entity{e1, e3, e2}, l.Iterate())

	old, err := l.Replace(0, e2)
	require.NoError(t, err)
	assert.True(t, old.Equals(e1))
}

func TestEntityListRemoveValue(t *testing.T) {
	pool := entity.NewPool()
	e1, e2 := pool.New(), pool.New()
	l := NewEntityList("l")
	l.Add(e1)
	l.Add(e2)
	l.Add(e1)

	assert.True(t, l.RemoveValue(e1))
	assert.Equal(t, []*entity.Entity{e2, e1}, l.Iterate())
	assert.False(t, l.RemoveValue(NewTestEntity(pool)))
}

func NewTestEntity(pool *entity.Pool) *entity.Entity { return pool.New() }

func TestEntityListBulkOps(t *testing.T) {
	pool := entity.NewPool()
	e1, e2, e3 := pool.New(), pool.New(), pool.New()
	l := NewEntityList("l")
	l.AddAll([]*entity.Entity{e1, e2, e3, e1})

	removed := l.RemoveAll([]*entity.Entity{e1})
	assert.Equal(t, 2, removed)
	assert.Equal(t, []*entity.Entity{e2, e3}, l.Iterate())

	l2 := NewEntityList("l2")
	l2.AddAll([]*entity.Entity{e1, e2, e3})
	kept := l2.RetainAll([]*entity.Entity{e2})
	assert.Equal(t, 2, kept)
	assert.Equal(t, []*entity.Entity{e2}, l2.Iterate())
}

func TestEntityListReverseIterate(t *testing.T) {
	pool := entity.NewPool()
	e1, e2 := pool.New(), pool.New()
	l := NewEntityList("l")
	l.AddAll([]*entity.Entity{e1, e2})
	assert.Equal(t, []*entity.Entity{e2, e1}, l.ReverseIterate())
}

func TestSubListWritesThrough(t *testing.T) {
	pool := entity.NewPool()
	e1, e2, e3, e4 := pool.New(), pool.New(), pool.New(), pool.New()
	l := NewEntityList("l")
	l.AddAll([]*entity.Entity{e1, e2, e3})

	sub, err := l.SubList(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, []*entity.Entity{e2, e3}, sub.Iterate())

	_, err = sub.Replace(0, e4)
	require.NoError(t, err)
	assert.Equal(t, []*entity.Entity{e1, e4, e3}, l.Iterate())
}
