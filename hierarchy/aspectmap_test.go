package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jelloman/cheap-sub008/aspect"
	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/entity"
	"github.com/Jelloman/cheap-sub008/schema"
	"github.com/Jelloman/cheap-sub008/value"
)

func personDef() schema.AspectDef {
	return schema.NewAspectDef("person",
		schema.NewPropertyDef("name", value.StringKind),
		schema.NewPropertyDef("age", value.IntegerKind),
	)
}

func TestAspectMapNameEqualsAspectDefName(t *testing.T) {
	m := NewAspectMap(personDef())
	assert.Equal(t, "person", m.Name())
	assert.Equal(t, AspectMapKind, m.Kind())
}

func TestAspectMapPutGetOverwrite(t *testing.T) {
	pool := entity.NewPool()
	def := personDef()
	m := NewAspectMap(def)

	e1 := pool.New()
	a1 := aspect.New(def, e1)
	require.NoError(t, a1.Write("name", value.String("Alice")))
	require.NoError(t, m.Put(e1, a1))

	got, ok := m.Get(e1)
	require.True(t, ok)
	assert.True(t, got.Equals(a1))

	a2 := aspect.New(def, e1)
	require.NoError(t, a2.Write("name", value.String("Alicia")))
	require.NoError(t, m.Put(e1, a2))
	assert.Equal(t, 1, m.Len(), "second put for the same entity overwrites the first")

	got, _ = m.Get(e1)
	n, _ := got.Read("name")
	assert.Equal(t, value.String("Alicia"), n)
}

func TestAspectMapPutTypeMismatch(t *testing.T) {
	pool := entity.NewPool()
	m := NewAspectMap(personDef())

	other := schema.NewAspectDef("car", schema.NewPropertyDef("make", value.StringKind))
	e1 := pool.New()
	a := aspect.New(other, e1)

	err := m.Put(e1, a)
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindTypeMismatch))
}

func TestAspectMapPutWrongEntityMismatch(t *testing.T) {
	pool := entity.NewPool()
	def := personDef()
	m := NewAspectMap(def)
	e1, e2 := pool.New(), pool.New()
	a := aspect.New(def, e1)

	err := m.Put(e2, a)
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindTypeMismatch))
}

func TestAspectMapIterationOrder(t *testing.T) {
	pool := entity.NewPool()
	def := personDef()
	m := NewAspectMap(def)
	e1, e2 := pool.New(), pool.New()
	require.NoError(t, m.Put(e1, aspect.New(def, e1)))
	require.NoError(t, m.Put(e2, aspect.New(def, e2)))

	entries := m.Iterate()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Entity.Equals(e1))
	assert.True(t, entries[1].Entity.Equals(e2))
}
