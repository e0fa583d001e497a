package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindCodesRoundTrip(t *testing.T) {
	for k := IntegerKind; k <= BLOBKind; k++ {
		name := k.String()
		code := k.Code()
		require.NotEmpty(t, name)
		require.Len(t, code, 3)

		byName, ok := KindByName(name)
		require.True(t, ok)
		assert.Equal(t, k, byName)

		byCode, ok := KindByCode(code)
		require.True(t, ok)
		assert.Equal(t, k, byCode)
	}
}

func TestNullEquality(t *testing.T) {
	n1 := NewNull(IntegerKind)
	n2 := NewNull(IntegerKind)
	n3 := NewNull(StringKind)

	assert.True(t, n1.Equals(n2))
	assert.False(t, n1.Equals(n3))
	assert.True(t, n1.IsNull())
}

func TestSequenceEquality(t *testing.T) {
	s1 := NewSequence(IntegerKind, Integer(1), Integer(2), Integer(3))
	s2 := NewSequence(IntegerKind, Integer(1), Integer(2), Integer(3))
	s3 := NewSequence(IntegerKind, Integer(3), Integer(2), Integer(1))

	assert.True(t, s1.Equals(s2))
	assert.False(t, s1.Equals(s3), "sequence equality is order sensitive")
}

func TestCoerceStringToInteger(t *testing.T) {
	v, err := Coerce(String("42"), IntegerKind, false, "age")
	require.NoError(t, err)
	assert.Equal(t, Integer(42), v)

	_, err = Coerce(String("not-a-number"), IntegerKind, false, "age")
	require.Error(t, err)
}

func TestCoerceNumericToBoolean(t *testing.T) {
	v, err := Coerce(Integer(1), BooleanKind, false, "active")
	require.NoError(t, err)
	assert.Equal(t, Boolean(true), v)

	v, err = Coerce(Integer(0), BooleanKind, false, "active")
	require.NoError(t, err)
	assert.Equal(t, Boolean(false), v)

	_, err = Coerce(Integer(2), BooleanKind, false, "active")
	require.Error(t, err)
}

func TestCoerceNullRespectsNullable(t *testing.T) {
	_, err := Coerce(NewNull(IntegerKind), IntegerKind, false, "age")
	require.Error(t, err)

	v, err := Coerce(NewNull(IntegerKind), IntegerKind, true, "age")
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestCoerceMismatchFails(t *testing.T) {
	_, err := Coerce(Boolean(true), BigIntegerKind, false, "x")
	require.Error(t, err)
}
