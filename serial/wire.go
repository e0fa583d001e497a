// Package serial implements the wire protocol of spec §4.4: a single
// JSON document per Catalog, with two ordering laws (AspectDefs before
// any Aspect referencing them, HierarchyDefs before any Hierarchy
// referencing them) enforced by emitting/consuming object keys in a
// fixed order. Decoding streams the document's top-level keys through
// github.com/bcicen/jstream so their arrival order can be checked; each
// top-level value arrives materialized as maps and slices, and the
// three context variables (current AspectDef, current Entity, current
// tree parent) are passed as explicit parameters of the recursive
// decode functions that walk those values.
package serial

// catalogWire is the top-level document shape; field order fixes the
// key order json.Marshal emits (globalId, species, strict, def,
// upstream, hierarchies — spec §4.4).
type catalogWire struct {
	GlobalID    string                   `json:"globalId"`
	Species     string                   `json:"species"`
	Strict      bool                     `json:"strict"`
	Def         catalogDefWire           `json:"def"`
	Upstream    upstreamWire             `json:"upstream"`
	Hierarchies map[string]hierarchyWire `json:"hierarchies"`
}

// catalogDefWire orders aspectDefs before hierarchyDefs, per spec §4.4.
// AspectDefs is an object keyed by aspect-def name, not an array (spec
// §6, normative: "def.aspectDefs.person.propertyDefs").
type catalogDefWire struct {
	GlobalID      string                     `json:"globalId,omitempty"`
	AspectDefs    map[string]aspectDefWire   `json:"aspectDefs"`
	HierarchyDefs []hierarchyDefWire         `json:"hierarchyDefs"`
}

type aspectDefWire struct {
	Name                string            `json:"name"`
	GlobalID            string            `json:"globalId,omitempty"`
	URI                 string            `json:"uri,omitempty"`
	Version             string            `json:"version,omitempty"`
	PropertyDefs        []propertyDefWire `json:"propertyDefs"`
	IsReadable          bool              `json:"isReadable"`
	IsWritable          bool              `json:"isWritable"`
	CanAddProperties    bool              `json:"canAddProperties"`
	CanRemoveProperties bool              `json:"canRemoveProperties"`
}

// propertyDefWire.Type carries the Kind's enum name (e.g. "Integer"),
// per value.Kind.String()'s doc comment.
type propertyDefWire struct {
	Name            string      `json:"name"`
	Type            string      `json:"type"`
	IsNullable      bool        `json:"isNullable,omitempty"`
	IsMultivalued   bool        `json:"isMultivalued,omitempty"`
	IsReadable      bool        `json:"isReadable"`
	IsWritable      bool        `json:"isWritable"`
	IsRemovable     bool        `json:"isRemovable,omitempty"`
	HasDefaultValue bool        `json:"hasDefaultValue,omitempty"`
	DefaultValue    interface{} `json:"defaultValue,omitempty"`
}

type hierarchyDefWire struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type upstreamWire struct {
	External  *externalSourceWire `json:"external,omitempty"`
	CatalogID string              `json:"catalogId,omitempty"`
}

type externalSourceWire struct {
	URI         string `json:"uri"`
	Description string `json:"description,omitempty"`
}

// hierarchyWire.Content is variant-shaped per spec §4.4:
//   - EntityList/EntitySet: []string of entity UUIDs
//   - EntityDirectory: map[string]string, key -> entity UUID
//   - EntityTree: *treeNodeWire, recursive
//   - AspectMap: map[string]map[string]interface{}, entity UUID -> property values
type hierarchyWire struct {
	Type    string      `json:"type"`
	Name    string      `json:"name"`
	Content interface{} `json:"content"`
}

// treeNodeWire is the recursive EntityTree node shape. A leaf node has
// Children == nil; a branch has a non-nil (possibly empty) map.
type treeNodeWire struct {
	EntityID string                   `json:"entityId,omitempty"`
	IsLeaf   bool                     `json:"isLeaf,omitempty"`
	Children map[string]*treeNodeWire `json:"children,omitempty"`
}
