package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jelloman/cheap-sub008/aspect"
	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/entity"
	"github.com/Jelloman/cheap-sub008/hierarchy"
	"github.com/Jelloman/cheap-sub008/schema"
	"github.com/Jelloman/cheap-sub008/value"
)

func personDef() schema.AspectDef {
	return schema.NewAspectDef("person",
		schema.NewPropertyDef("name", value.StringKind),
		schema.NewPropertyDef("age", value.IntegerKind),
	)
}

func newSinkCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(uuid.New(), Sink, FromExternalSource(ExternalSource{URI: "file:///tmp/db"}))
	require.NoError(t, err)
	return c
}

func TestNewCatalogRequiresUpstream(t *testing.T) {
	_, err := New(uuid.New(), Sink, Upstream{})
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindMissingRequiredField))
}

func TestExtendAspectageCreatesCompanionAspectMap(t *testing.T) {
	c := newSinkCatalog(t)
	require.NoError(t, c.ExtendAspectage(personDef()))

	m, ok := c.AspectsByName("person")
	require.True(t, ok)
	assert.Equal(t, "person", m.Name())
	assert.Equal(t, hierarchy.AspectMapKind, m.Kind())
}

func TestExtendAspectageIdempotent(t *testing.T) {
	c := newSinkCatalog(t)
	require.NoError(t, c.ExtendAspectage(personDef()))
	require.NoError(t, c.ExtendAspectage(personDef()))
	assert.Len(t, c.AspectDefs(), 1)
}

func TestExtendAspectageConflict(t *testing.T) {
	c := newSinkCatalog(t)
	require.NoError(t, c.ExtendAspectage(personDef()))

	conflicting := schema.NewAspectDef("person", schema.NewPropertyDef("email", value.StringKind))
	err := c.ExtendAspectage(conflicting)
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindDefinitionConflict))
}

func TestStrictCatalogRejectsUnknownAspectDef(t *testing.T) {
	def := personDef()
	c, err := New(uuid.New(), Sink, FromExternalSource(ExternalSource{}),
		WithStrict(true),
		WithCatalogDef(CatalogDef{AspectDefs: []schema.AspectDef{def}}))
	require.NoError(t, err)

	require.NoError(t, c.ExtendAspectage(def))

	product := schema.NewAspectDef("product", schema.NewPropertyDef("sku", value.StringKind))
	err = c.ExtendAspectage(product)
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindStrictViolation))
}

func TestPutAspectFailsOnReadOnlySpecies(t *testing.T) {
	def := personDef()
	c, err := New(uuid.New(), Mirror, FromCatalog(uuid.New()))
	require.NoError(t, err)
	require.NoError(t, c.ExtendAspectage(def))

	pool := entity.NewPool()
	e1 := pool.New()
	a := aspect.New(def, e1)

	err = c.PutAspect(e1, a)
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindReadOnly))
}

func TestPutAspectRoundTrip(t *testing.T) {
	def := personDef()
	c := newSinkCatalog(t)
	require.NoError(t, c.ExtendAspectage(def))

	pool := entity.NewPool()
	e1 := pool.New()
	a := aspect.New(def, e1)
	require.NoError(t, a.Write("name", value.String("Alice")))
	require.NoError(t, a.Write("age", value.Integer(30)))

	require.NoError(t, c.PutAspect(e1, a))

	m, _ := c.Aspects(def)
	got, ok := m.Get(e1)
	require.True(t, ok)
	assert.True(t, got.Equals(a))
}

func TestAddHierarchyDuplicateName(t *testing.T) {
	c := newSinkCatalog(t)
	require.NoError(t, c.AddHierarchy(hierarchy.NewEntityList("queue")))
	err := c.AddHierarchy(hierarchy.NewEntityList("queue"))
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindDuplicateName))
}

func TestForkToSinkClearsUpstreamAndPreservesContent(t *testing.T) {
	def := personDef()
	upstreamID := uuid.New()
	c, err := New(uuid.New(), Clone, FromCatalog(upstreamID))
	require.NoError(t, err)
	require.NoError(t, c.ExtendAspectage(def))

	pool := entity.NewPool()
	e1 := pool.New()
	a := aspect.New(def, e1)
	require.NoError(t, a.Write("name", value.String("Alice")))
	require.NoError(t, c.PutAspect(e1, a))

	list := hierarchy.NewEntityList("queue")
	list.Add(e1)
	require.NoError(t, c.AddHierarchy(list))

	forked, err := c.ForkToSink(uuid.New(), ExternalSource{URI: "file:///tmp/forked"})
	require.NoError(t, err)

	assert.Equal(t, Sink, forked.Species())
	_, hasCatalogUpstream := forked.Upstream().CatalogID()
	assert.False(t, hasCatalogUpstream)

	m, ok := forked.Aspects(def)
	require.True(t, ok)
	got, ok := m.Get(e1)
	require.True(t, ok)
	assert.True(t, got.Equals(a))

	forkedList, ok := forked.Hierarchy("queue")
	require.True(t, ok)
	assert.Equal(t, 1, forkedList.Len())
}
