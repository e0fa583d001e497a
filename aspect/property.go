// Package aspect implements the keyed property-value store of spec
// §4.3: an Aspect instance binds exactly one Entity to one AspectDef
// and holds one Property per declared PropertyDef (plus, for fully
// mutable AspectDefs, dynamically added slots). The three mutability
// flavors narrated in the spec are not distinct Go types — a single
// implementation switches behavior on the AspectDef's four flags, per
// spec §9 ("choice of storage... is an internal optimization, not part
// of the public contract").
package aspect

import (
	"github.com/Jelloman/cheap-sub008/schema"
	"github.com/Jelloman/cheap-sub008/value"
)

// Property is a single named, typed value slot. The Value itself is
// always an immutable value object; only the aspect's slot mapping a
// name to a Property may be rewritten.
type Property struct {
	Def   schema.PropertyDef
	Value value.Value
}
