package aspect

import (
	"sync"

	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/entity"
	"github.com/Jelloman/cheap-sub008/schema"
	"github.com/Jelloman/cheap-sub008/value"
)

// Aspect is a keyed record of properties bound to one Entity and one
// AspectDef (spec §3.1, §4.3). Identity is (entity, aspect-def); two
// Aspects are "fully equal" iff their AspectDefs share a content hash
// and every property slot holds an equal value (spec §4.3).
type Aspect struct {
	mu  sync.RWMutex
	ent *entity.Entity
	def schema.AspectDef

	values map[string]value.Value
	extra  []string // dynamically-added property names, insertion order
}

// New builds an Aspect bound to ent under def. Declared properties are
// initialized to their DefaultValue if one is declared, otherwise to
// the explicit null of their Kind.
func New(def schema.AspectDef, ent *entity.Entity) *Aspect {
	a := &Aspect{
		ent:    ent,
		def:    def,
		values: make(map[string]value.Value, len(def.Properties)),
	}
	for _, p := range def.Properties {
		if p.HasDefaultValue {
			a.values[p.Name] = p.DefaultValue
		} else {
			a.values[p.Name] = value.NewNull(p.Type)
		}
	}
	return a
}

// Entity returns the Entity this aspect is bound to.
func (a *Aspect) Entity() *entity.Entity { return a.ent }

// Def returns the AspectDef this aspect is bound to.
func (a *Aspect) Def() schema.AspectDef { return a.def }

// propertyDef resolves name to its PropertyDef, whether declared at
// AspectDef-creation time or added dynamically (for fully mutable
// aspects, dynamically-added slots get a permissive PropertyDef).
func (a *Aspect) propertyDef(name string) (schema.PropertyDef, bool) {
	if p, ok := a.def.Property(name); ok {
		return p, true
	}
	for _, n := range a.extra {
		if n == name {
			if v, ok := a.values[name]; ok {
				return schema.NewPropertyDef(name, v.Kind()).WithRemovable(true).WithNullable(true), true
			}
		}
	}
	return schema.PropertyDef{}, false
}

// Contains reports whether name is a currently-present property slot.
func (a *Aspect) Contains(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.values[name]
	return ok
}

// Get returns the Property for name, or (_, false) if absent — lookup
// failures on reads are absence, not errors (spec §7).
func (a *Aspect) Get(name string) (Property, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.values[name]
	if !ok {
		return Property{}, false
	}
	def, _ := a.propertyDef(name)
	return Property{Def: def, Value: v}, true
}

// Read returns just the value for name, or (_, false) if absent.
func (a *Aspect) Read(name string) (value.Value, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.values[name]
	return v, ok
}

// ReadAs reads name's value, coercing it to expected if its declared
// Kind differs, per the coercion rules of spec §4.3.
func (a *Aspect) ReadAs(name string, expected value.Kind) (value.Value, error) {
	v, ok := a.Read(name)
	if !ok {
		return nil, cheaperr.New(cheaperr.KindNotFound, name, "no such property")
	}
	if v.Kind() == expected {
		return v, nil
	}
	def, _ := a.propertyDef(name)
	return value.Coerce(v, expected, def.Nullable, name)
}

// Write rewrites the value of an existing property slot. Fails with
// NotWritable if the AspectDef forbids rewriting, or NotFound if name
// is not a current slot (use Add to create a new slot on a fully
// mutable aspect).
func (a *Aspect) Write(name string, raw value.Value) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.def.Writable {
		return cheaperr.New(cheaperr.KindNotWritable, name, "aspect def does not permit rewriting property slots")
	}
	if _, ok := a.values[name]; !ok {
		return cheaperr.New(cheaperr.KindNotFound, name, "no such property slot")
	}
	def, _ := a.propertyDef(name)

	var v value.Value
	var err error
	if def.Multivalued {
		seq, ok := raw.(value.Sequence)
		if !ok {
			return cheaperr.New(cheaperr.KindTypeMismatch, name, "multi-valued property requires a Sequence")
		}
		v, err = value.CoerceSequence(seq.Elems, def.Type, def.Nullable, name)
	} else {
		v, err = value.Coerce(raw, def.Type, def.Nullable, name)
	}
	if err != nil {
		return err
	}
	a.values[name] = v
	return nil
}

// Put rewrites the slot named by p.Def.Name with p.Value. Equivalent to
// Write(p.Def.Name, p.Value).
func (a *Aspect) Put(p Property) error {
	return a.Write(p.Def.Name, p.Value)
}

// Add creates a new property slot, only permitted when the AspectDef's
// CanAddProperties flag is set (fully mutable aspects). Fails with
// DuplicateName if the slot already exists.
func (a *Aspect) Add(p Property) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.def.CanAddProperties {
		return cheaperr.New(cheaperr.KindNotAddable, p.Def.Name, "aspect def does not permit adding property slots")
	}
	if _, ok := a.values[p.Def.Name]; ok {
		return cheaperr.New(cheaperr.KindDuplicateName, p.Def.Name, "property slot already exists")
	}
	v, err := value.Coerce(p.Value, p.Def.Type, p.Def.Nullable, p.Def.Name)
	if err != nil {
		return err
	}
	a.values[p.Def.Name] = v
	a.extra = append(a.extra, p.Def.Name)
	return nil
}

// Remove deletes a property slot, only permitted when the AspectDef's
// CanRemoveProperties flag is set.
func (a *Aspect) Remove(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.def.CanRemoveProperties {
		return cheaperr.New(cheaperr.KindNotRemovable, name, "aspect def does not permit removing property slots")
	}
	if _, ok := a.values[name]; !ok {
		return cheaperr.New(cheaperr.KindNotFound, name, "no such property slot")
	}
	delete(a.values, name)
	for i, n := range a.extra {
		if n == name {
			a.extra = append(a.extra[:i], a.extra[i+1:]...)
			break
		}
	}
	return nil
}

// Properties iterates every current property in definition order:
// declared PropertyDefs first (in AspectDef.Properties order), then any
// dynamically-added slots in the order they were added.
func (a *Aspect) Properties() []Property {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]Property, 0, len(a.values))
	for _, pd := range a.def.Properties {
		if v, ok := a.values[pd.Name]; ok {
			out = append(out, Property{Def: pd, Value: v})
		}
	}
	for _, name := range a.extra {
		def, _ := a.propertyDef(name)
		out = append(out, Property{Def: def, Value: a.values[name]})
	}
	return out
}

// Equals reports "full equality" per spec §4.3: both Aspects' AspectDefs
// share a content hash, and every property slot holds an equal value.
func (a *Aspect) Equals(o *Aspect) bool {
	if a == o {
		return true
	}
	if a == nil || o == nil {
		return false
	}
	if a.def.Hash() != o.def.Hash() {
		return false
	}
	ap, bp := a.Properties(), o.Properties()
	if len(ap) != len(bp) {
		return false
	}
	for i := range ap {
		if ap[i].Def.Name != bp[i].Def.Name || !ap[i].Value.Equals(bp[i].Value) {
			return false
		}
	}
	return true
}
