package aspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestWriteReadRoundTrip(t *testing.T) {
	pool := entity.NewPool()
	a := New(personDef(), pool.New())

	require.NoError(t, a.Write("name", value.String("Alice")))
	require.NoError(t, a.Write("age", value.Integer(30)))

	name, ok := a.Read("name")
	require.True(t, ok)
	assert.Equal(t, value.String("Alice"), name)

	age, ok := a.Read("age")
	require.True(t, ok)
	assert.Equal(t, value.Integer(30), age)
}

func TestImmutableAspectRejectsWrite(t *testing.T) {
	pool := entity.NewPool()
	a := New(personDef().Immutable(), pool.New())

	err := a.Write("name", value.String("Alice"))
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindNotWritable))
}

func TestFixedShapeAllowsWriteNotAddRemove(t *testing.T) {
	pool := entity.NewPool()
	a := New(personDef().FixedShape(), pool.New())

	require.NoError(t, a.Write("name", value.String("Bob")))

	err := a.Add(Property{Def: schema.NewPropertyDef("nickname", value.StringKind), Value: value.String("Bobby")})
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindNotAddable))

	err = a.Remove("name")
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindNotRemovable))
}

func TestFullyMutableAddRemove(t *testing.T) {
	pool := entity.NewPool()
	a := New(personDef(), pool.New())

	require.NoError(t, a.Add(Property{Def: schema.NewPropertyDef("nickname", value.StringKind), Value: value.String("Al")}))
	nn, ok := a.Read("nickname")
	require.True(t, ok)
	assert.Equal(t, value.String("Al"), nn)

	require.NoError(t, a.Remove("nickname"))
	_, ok = a.Read("nickname")
	assert.False(t, ok)

	err := a.Add(Property{Def: schema.NewPropertyDef("age", value.IntegerKind), Value: value.Integer(1)})
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindDuplicateName))
}

func TestWriteUnknownSlotFails(t *testing.T) {
	pool := entity.NewPool()
	a := New(personDef(), pool.New())
	err := a.Write("unknown", value.String("x"))
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindNotFound))
}

func TestMultivaluedReplacesWholeSequence(t *testing.T) {
	def := schema.NewAspectDef("tags",
		schema.NewPropertyDef("values", value.StringKind).WithMultivalued(true),
	)
	pool := entity.NewPool()
	a := New(def, pool.New())

	require.NoError(t, a.Write("values", value.NewSequence(value.StringKind, value.String("a"), value.String("b"))))
	v, ok := a.Read("values")
	require.True(t, ok)
	seq := v.(value.Sequence)
	assert.Len(t, seq.Elems, 2)

	require.NoError(t, a.Write("values", value.NewSequence(value.StringKind, value.String("z"))))
	v, _ = a.Read("values")
	seq = v.(value.Sequence)
	assert.Len(t, seq.Elems, 1)
	assert.Equal(t, value.String("z"), seq.Elems[0])
}

func TestPropertiesIterationOrderIsDefinitionOrder(t *testing.T) {
	pool := entity.NewPool()
	a := New(personDef(), pool.New())
	require.NoError(t, a.Add(Property{Def: schema.NewPropertyDef("nickname", value.StringKind), Value: value.String("x")}))

	names := []string{}
	for _, p := range a.Properties() {
		names = append(names, p.Def.Name)
	}
	assert.Equal(t, []string{"name", "age", "nickname"}, names)
}

func TestFullEquality(t *testing.T) {
	pool := entity.NewPool()
	a := New(personDef(), pool.New())
	b := New(personDef(), pool.New())
	require.NoError(t, a.Write("name", value.String("Alice")))
	require.NoError(t, a.Write("age", value.Integer(30)))
	require.NoError(t, b.Write("name", value.String("Alice")))
	require.NoError(t, b.Write("age", value.Integer(30)))

	assert.True(t, a.Equals(b))

	require.NoError(t, b.Write("age", value.Integer(31)))
	assert.False(t, a.Equals(b))
}
