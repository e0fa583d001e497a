package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/value"
)

func personDef() AspectDef {
	return NewAspectDef("person",
		NewPropertyDef("name", value.StringKind),
		NewPropertyDef("age", value.IntegerKind),
	)
}

func TestAspectDefHashIsOrderSensitive(t *testing.T) {
	a := NewAspectDef("person",
		NewPropertyDef("name", value.StringKind),
		NewPropertyDef("age", value.IntegerKind),
	)
	b := NewAspectDef("person",
		NewPropertyDef("age", value.IntegerKind),
		NewPropertyDef("name", value.StringKind),
	)
	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(b))
}

func TestAspectDefEqualSameContent(t *testing.T) {
	a := personDef()
	b := personDef()
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestRegistryIdempotentRegistration(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(personDef()))
	require.NoError(t, r.Register(personDef()))
	assert.Equal(t, 1, r.Len())
}

func TestRegistryConflictingRedefinition(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(personDef()))

	conflicting := NewAspectDef("person", NewPropertyDef("email", value.StringKind))
	err := r.Register(conflicting)
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindDefinitionConflict))
}

func TestRegistryDuplicatePropertyNamesRejected(t *testing.T) {
	r := NewRegistry()
	dup := NewAspectDef("bad",
		NewPropertyDef("x", value.IntegerKind),
		NewPropertyDef("x", value.StringKind),
	)
	err := r.Register(dup)
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindDuplicateName))
}

func TestRegistryOrderedIsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewAspectDef("b")))
	require.NoError(t, r.Register(NewAspectDef("a")))
	names := []string{}
	for _, d := range r.Ordered() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"b", "a"}, names)
}

func TestImmutableFlavorFlags(t *testing.T) {
	a := personDef().Immutable()
	assert.False(t, a.Writable)
	assert.False(t, a.CanAddProperties)
	assert.False(t, a.CanRemoveProperties)
}
