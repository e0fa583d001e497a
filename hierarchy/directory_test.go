package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jelloman/cheap-sub008/entity"
)

func TestEntityDirectoryPutGetOverwrite(t *testing.T) {
	pool := entity.NewPool()
	e1, e2 := pool.New(), pool.New()

	d := NewEntityDirectory("byName")
	d.Put("alice", e1)
	got, ok := d.Get("alice")
	assert.True(t, ok)
	assert.True(t, got.Equals(e1))

	d.Put("alice", e2)
	got, _ = d.Get("alice")
	assert.True(t, got.Equals(e2))
	assert.Equal(t, 1, d.Len())
}

func TestEntityDirectoryRemoveByEntity(t *testing.T) {
	pool := entity.NewPool()
	e1, e2 := pool.New(), pool.New()

	d := NewEntityDirectory("byName")
	d.Put("a", e1)
	d.Put("b", e1)
	d.Put("c", e2)

	count := d.RemoveByEntity(e1.ID())
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, d.Len())
	_, ok := d.Get("a")
	assert.False(t, ok)
	_, ok = d.Get("c")
	assert.True(t, ok)
}

func TestEntityDirectoryIterationOrder(t *testing.T) {
	pool := entity.NewPool()
	e1 := pool.New()
	d := NewEntityDirectory("d")
	d.Put("z", e1)
	d.Put("a", e1)
	entries := d.Iterate()
	assert.Equal(t, []string{"z", "a"}, []string{entries[0].Key, entries[1].Key})
}

func TestEntityDirectoryRemoveMissing(t *testing.T) {
	d := NewEntityDirectory("d")
	assert.False(t, d.Remove("nope"))
}
