package serial

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jelloman/cheap-sub008/aspect"
	"github.com/Jelloman/cheap-sub008/catalog"
	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/entity"
	"github.com/Jelloman/cheap-sub008/factory"
	"github.com/Jelloman/cheap-sub008/hierarchy"
	"github.com/Jelloman/cheap-sub008/schema"
	"github.com/Jelloman/cheap-sub008/value"
)

func buildPersonCatalog(t *testing.T) (*factory.Factory, *catalog.Catalog) {
	t.Helper()
	f := factory.New()
	catID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	c, err := f.NewCatalog(catID, catalog.Sink, catalog.FromExternalSource(catalog.ExternalSource{URI: "file:///tmp/db"}))
	require.NoError(t, err)

	def := schema.NewAspectDef("person",
		schema.NewPropertyDef("name", value.StringKind),
		schema.NewPropertyDef("age", value.IntegerKind),
	)
	require.NoError(t, c.ExtendAspectage(def))

	e1 := f.GetOrRegisterEntity(uuid.MustParse("00000000-0000-0000-0000-000000000010"))
	a := aspect.New(def, e1)
	require.NoError(t, a.Write("name", value.String("Alice")))
	require.NoError(t, a.Write("age", value.Integer(30)))
	require.NoError(t, c.PutAspect(e1, a))

	return f, c
}

func TestEncodeScenarioOneShape(t *testing.T) {
	_, c := buildPersonCatalog(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "sink", doc["species"])

	def := doc["def"].(map[string]interface{})
	aspectDefs := def["aspectDefs"].(map[string]interface{})
	require.Len(t, aspectDefs, 1)
	person := aspectDefs["person"].(map[string]interface{})
	assert.Equal(t, "person", person["name"])
	props := person["propertyDefs"].([]interface{})
	require.Len(t, props, 2)
	assert.Equal(t, "name", props[0].(map[string]interface{})["name"])
	assert.Equal(t, "age", props[1].(map[string]interface{})["name"])

	hierarchies := doc["hierarchies"].(map[string]interface{})
	personMap := hierarchies["person"].(map[string]interface{})
	content := personMap["content"].(map[string]interface{})
	record := content["00000000-0000-0000-0000-000000000010"].(map[string]interface{})
	assert.Equal(t, "Alice", record["name"])
	assert.Equal(t, float64(30), record["age"])
}

func TestRoundTripEncodeDecode(t *testing.T) {
	_, c := buildPersonCatalog(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c))

	f2 := factory.New()
	c2, err := Decode(bytes.NewReader(buf.Bytes()), f2)
	require.NoError(t, err)

	assert.Equal(t, catalog.Sink, c2.Species())
	defs := f2.AspectDefs()
	require.Len(t, defs, 1)
	assert.Equal(t, "person", defs[0].Name)

	m, ok := c2.AspectsByName("person")
	require.True(t, ok)
	assert.Equal(t, hierarchy.AspectMapKind, m.Kind())
	require.Equal(t, 1, m.Len())

	entries := m.Iterate()
	require.Len(t, entries, 1)
	name, ok := entries[0].Aspect.Read("name")
	require.True(t, ok)
	assert.Equal(t, value.String("Alice"), name)
	age, ok := entries[0].Aspect.Read("age")
	require.True(t, ok)
	assert.Equal(t, value.Integer(30), age)
}

func TestDecodeHierarchiesBeforeDefFailsOrderingViolation(t *testing.T) {
	doc := `{
		"globalId": "00000000-0000-0000-0000-000000000001",
		"species": "sink",
		"strict": false,
		"upstream": {"external": {"uri": "file:///tmp/db"}},
		"hierarchies": {"person": {"type": "AspectMap", "name": "person", "content": {}}},
		"def": {"aspectDefs": {}, "hierarchyDefs": []}
	}`

	f := factory.New()
	_, err := Decode(bytes.NewReader([]byte(doc)), f)
	require.Error(t, err)
	assert.True(t, cheaperr.Is(err, cheaperr.KindOrderingViolation))
}

func TestRoundTripEntityListAndTree(t *testing.T) {
	f := factory.New()
	c, err := f.NewCatalog(uuid.New(), catalog.Sink, catalog.FromExternalSource(catalog.ExternalSource{URI: "file:///tmp/db"}))
	require.NoError(t, err)

	e1 := f.NewEntity()
	e2 := f.NewEntity()
	list := hierarchy.NewEntityList("queue")
	list.Add(e1)
	list.Add(e2)
	require.NoError(t, c.AddHierarchy(list))

	tree := hierarchy.NewEntityTree("docs")
	require.NoError(t, tree.AddChildren("/", map[string]*entity.Entity{"reports": nil}))
	require.NoError(t, c.AddHierarchy(tree))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c))

	f2 := factory.New()
	c2, err := Decode(bytes.NewReader(buf.Bytes()), f2)
	require.NoError(t, err)

	gotList, ok := c2.Hierarchy("queue")
	require.True(t, ok)
	assert.Equal(t, 2, gotList.Len())

	gotTree, ok := c2.Hierarchy("docs")
	require.True(t, ok)
	assert.Equal(t, 2, gotTree.Len())
}
