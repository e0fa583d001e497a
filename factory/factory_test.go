package factory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jelloman/cheap-sub008/catalog"
	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/hierarchy"
	"github.com/Jelloman/cheap-sub008/schema"
	"github.com/Jelloman/cheap-sub008/value"
)

func newTestFactory() *Factory {
	return New()
}

func TestGetOrRegisterEntityIsStableWithinFactory(t *testing.T) {
	f := newTestFactory()
	id := uuid.New()

	e1 := f.GetOrRegisterEntity(id)
	e2 := f.GetOrRegisterEntity(id)
	assert.Same(t, e1, e2)
}

func TestRegisterAspectDefIdempotentAndConflicting(t *testing.T) {
	f := newTestFactory()
	def := schema.NewAspectDef("person", schema.NewPropertyDef("name", value.StringKind))

	require.NoError(t, f.RegisterAspectDef(def))
	require.NoError(t, f.RegisterAspectDef(def))

	got, ok := f.AspectDef("person")
	require.True(t, ok)
	assert.True(t, got.Equal(def))

	conflicting := schema.NewAspectDef("person", schema.NewPropertyDef("email", value.StringKind))
	err := f.RegisterAspectDef(conflicting)
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindDefinitionConflict))
}

func TestRegisterHierarchyDefConflictingKind(t *testing.T) {
	f := newTestFactory()
	require.NoError(t, f.RegisterHierarchyDef("queue", hierarchy.EntityListKind))
	require.NoError(t, f.RegisterHierarchyDef("queue", hierarchy.EntityListKind))

	err := f.RegisterHierarchyDef("queue", hierarchy.EntitySetKind)
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindDefinitionConflict))
}

func TestNewCatalogUsesRequestedSpecies(t *testing.T) {
	f := newTestFactory()
	c, err := f.NewCatalog(uuid.New(), catalog.Sink, catalog.FromExternalSource(catalog.ExternalSource{URI: "file:///tmp/db"}))
	require.NoError(t, err)
	assert.Equal(t, catalog.Sink, c.Species())
}
