// Package schema implements the AspectDef/PropertyDef layer of spec
// §4.3: named, content-addressable aspect schemas, their mutability
// flavors, and the factory-scoped registry that deduplicates them by
// name. Modeled on the teacher's doltcore/schema Column/ColCollection
// pair, generalized from a fixed-column SQL schema to the CHEAP
// PropertyDef/AspectDef pair.
package schema

import "github.com/Jelloman/cheap-sub008/value"

// PropertyDef is a named, typed property slot within an AspectDef.
// Identity is (AspectDef, Name) — a PropertyDef has no identity of its
// own outside its owning AspectDef (spec §3.1).
type PropertyDef struct {
	Name             string
	Type             value.Kind
	Nullable         bool
	Multivalued      bool
	Readable         bool
	Writable         bool
	Removable        bool
	HasDefaultValue  bool
	DefaultValue     value.Value
}

// NewPropertyDef builds a readable, writable, non-removable, non-null
// PropertyDef — the common case — which callers can further adjust via
// the With* helpers before passing it to NewAspectDef.
func NewPropertyDef(name string, kind value.Kind) PropertyDef {
	return PropertyDef{
		Name:     name,
		Type:     kind,
		Readable: true,
		Writable: true,
	}
}

func (p PropertyDef) WithNullable(nullable bool) PropertyDef {
	p.Nullable = nullable
	return p
}

func (p PropertyDef) WithMultivalued(multi bool) PropertyDef {
	p.Multivalued = multi
	return p
}

func (p PropertyDef) WithDefault(v value.Value) PropertyDef {
	p.HasDefaultValue = true
	p.DefaultValue = v
	return p
}

func (p PropertyDef) WithRemovable(removable bool) PropertyDef {
	p.Removable = removable
	return p
}

// contentKey returns the byte sequence folded into the owning
// AspectDef's content hash; it captures every field that affects
// wire/storage compatibility.
func (p PropertyDef) contentKey() string {
	b := p.Name + "|" + p.Type.Code() + "|"
	if p.Nullable {
		b += "N"
	}
	if p.Multivalued {
		b += "M"
	}
	if p.Readable {
		b += "R"
	}
	if p.Writable {
		b += "W"
	}
	if p.Removable {
		b += "X"
	}
	return b
}

// Equal reports whether two PropertyDefs describe the same slot shape.
func (p PropertyDef) Equal(o PropertyDef) bool {
	return p.contentKey() == o.contentKey()
}
