package serial

import (
	"io"
	"strings"

	"github.com/bcicen/jstream"
	"github.com/google/uuid"

	"github.com/Jelloman/cheap-sub008/aspect"
	"github.com/Jelloman/cheap-sub008/catalog"
	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/entity"
	"github.com/Jelloman/cheap-sub008/factory"
	"github.com/Jelloman/cheap-sub008/hierarchy"
	"github.com/Jelloman/cheap-sub008/schema"
	"github.com/Jelloman/cheap-sub008/value"
)

// Decode reads a single catalog document from r, registering every
// AspectDef/HierarchyDef and Entity it encounters with f (spec §6:
// "Entity references are canonicalized through the factory registry").
// jstream streams the document's top-level keys in arrival order,
// which — because Encode always writes def before hierarchies — is
// enough to guarantee AspectDefs/HierarchyDefs are known before any
// Aspect or Hierarchy referencing them is processed (spec §4.4).
func Decode(r io.Reader, f *factory.Factory) (*catalog.Catalog, error) {
	dec := jstream.NewDecoder(r, 1).EmitKV()

	var (
		id          uuid.UUID
		species     catalog.Species
		strict      bool
		def         catalog.CatalogDef
		defSeen     bool
		upstream    catalog.Upstream
		hasUpstream bool
		hierRaw     map[string]interface{}
	)

	for mv := range dec.Stream() {
		kv, ok := mv.Value.(jstream.KV)
		if !ok {
			continue
		}
		switch kv.Key {
		case "globalId":
			s, _ := kv.Value.(string)
			parsed, err := uuid.Parse(s)
			if err != nil {
				return nil, cheaperr.New(cheaperr.KindMalformedInput, "globalId", "catalog globalId is not a valid UUID")
			}
			id = parsed
		case "species":
			s, _ := kv.Value.(string)
			sp, ok := catalog.SpeciesByName(s)
			if !ok {
				return nil, cheaperr.New(cheaperr.KindMalformedInput, "species", "unknown species name")
			}
			species = sp
		case "strict":
			b, _ := kv.Value.(bool)
			strict = b
		case "def":
			m, ok := kv.Value.(map[string]interface{})
			if !ok {
				return nil, cheaperr.New(cheaperr.KindMalformedInput, "def", "catalog def must be an object")
			}
			parsed, err := decodeCatalogDef(m)
			if err != nil {
				return nil, err
			}
			def = parsed
			defSeen = true
		case "upstream":
			m, ok := kv.Value.(map[string]interface{})
			if !ok {
				return nil, cheaperr.New(cheaperr.KindMalformedInput, "upstream", "upstream must be an object")
			}
			u, err := decodeUpstream(m)
			if err != nil {
				return nil, err
			}
			upstream = u
			hasUpstream = true
		case "hierarchies":
			if !defSeen {
				return nil, cheaperr.New(cheaperr.KindOrderingViolation, "hierarchies", "hierarchies appeared before def in the document stream")
			}
			m, ok := kv.Value.(map[string]interface{})
			if !ok {
				return nil, cheaperr.New(cheaperr.KindMalformedInput, "hierarchies", "hierarchies must be an object")
			}
			hierRaw = m
		}
	}
	if err := dec.Err(); err != nil {
		return nil, cheaperr.Wrap(err, cheaperr.KindMalformedInput, "", "malformed catalog document")
	}
	if !hasUpstream {
		return nil, cheaperr.New(cheaperr.KindMissingRequiredField, "upstream", "catalog document is missing its upstream section")
	}

	c, err := f.NewCatalog(id, species, upstream, catalog.WithStrict(strict), catalog.WithCatalogDef(def))
	if err != nil {
		return nil, err
	}

	for _, ad := range def.AspectDefs {
		if err := f.RegisterAspectDef(ad); err != nil {
			return nil, err
		}
		if err := c.ExtendAspectage(ad); err != nil {
			return nil, err
		}
	}
	for _, hd := range def.HierarchyDefs {
		if err := f.RegisterHierarchyDef(hd.Name, hd.Kind); err != nil {
			return nil, err
		}
	}

	for name, raw := range hierRaw {
		hw, ok := raw.(map[string]interface{})
		if !ok {
			return nil, cheaperr.New(cheaperr.KindMalformedInput, name, "hierarchy entry must be an object")
		}
		if err := decodeHierarchy(f, c, name, hw); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func decodeCatalogDef(m map[string]interface{}) (catalog.CatalogDef, error) {
	var out catalog.CatalogDef
	if s, ok := m["globalId"].(string); ok && s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return out, cheaperr.New(cheaperr.KindMalformedInput, "def.globalId", "not a valid UUID")
		}
		out.GlobalID = &id
	}
	if rawDefs, ok := m["aspectDefs"].(map[string]interface{}); ok {
		for name, rd := range rawDefs {
			dm, ok := rd.(map[string]interface{})
			if !ok {
				return out, cheaperr.New(cheaperr.KindMalformedInput, "aspectDefs."+name, "aspectDef entry must be an object")
			}
			ad, err := decodeAspectDef(dm)
			if err != nil {
				return out, err
			}
			out.AspectDefs = append(out.AspectDefs, ad)
		}
	}
	if rawHDefs, ok := m["hierarchyDefs"].([]interface{}); ok {
		for _, rd := range rawHDefs {
			hm, ok := rd.(map[string]interface{})
			if !ok {
				return out, cheaperr.New(cheaperr.KindMalformedInput, "hierarchyDefs", "hierarchyDef entry must be an object")
			}
			name, _ := hm["name"].(string)
			typeName, _ := hm["type"].(string)
			kind, ok := hierarchy.KindByName(typeName)
			if !ok {
				return out, cheaperr.New(cheaperr.KindMalformedInput, name, "unknown hierarchy type")
			}
			out.HierarchyDefs = append(out.HierarchyDefs, catalog.HierarchyDef{Name: name, Kind: kind})
		}
	}
	return out, nil
}

func decodeAspectDef(m map[string]interface{}) (schema.AspectDef, error) {
	name, _ := m["name"].(string)
	ad := schema.NewAspectDef(name)
	if b, ok := m["isReadable"].(bool); ok {
		ad.Readable = b
	}
	if b, ok := m["isWritable"].(bool); ok {
		ad.Writable = b
	}
	if b, ok := m["canAddProperties"].(bool); ok {
		ad.CanAddProperties = b
	}
	if b, ok := m["canRemoveProperties"].(bool); ok {
		ad.CanRemoveProperties = b
	}
	if s, ok := m["uri"].(string); ok {
		ad.URI = s
	}
	if s, ok := m["version"].(string); ok {
		ad.Version = s
	}
	if s, ok := m["globalId"].(string); ok && s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return ad, cheaperr.New(cheaperr.KindMalformedInput, name, "aspectDef globalId is not a valid UUID")
		}
		ad = ad.WithGlobalID(id)
	}

	rawProps, _ := m["propertyDefs"].([]interface{})
	props := make([]schema.PropertyDef, 0, len(rawProps))
	for _, rp := range rawProps {
		pm, ok := rp.(map[string]interface{})
		if !ok {
			return ad, cheaperr.New(cheaperr.KindMalformedInput, name, "propertyDef entry must be an object")
		}
		pd, err := decodePropertyDef(pm, name)
		if err != nil {
			return ad, err
		}
		props = append(props, pd)
	}
	ad.Properties = props
	return ad, nil
}

func decodePropertyDef(m map[string]interface{}, aspectName string) (schema.PropertyDef, error) {
	name, _ := m["name"].(string)
	typeName, _ := m["type"].(string)
	kind, ok := value.KindByName(typeName)
	if !ok {
		return schema.PropertyDef{}, cheaperr.New(cheaperr.KindMalformedInput, aspectName+"."+name, "unknown property type")
	}
	pd := schema.NewPropertyDef(name, kind)
	if b, ok := m["isNullable"].(bool); ok {
		pd = pd.WithNullable(b)
	}
	if b, ok := m["isMultivalued"].(bool); ok {
		pd = pd.WithMultivalued(b)
	}
	if b, ok := m["isReadable"].(bool); ok {
		pd.Readable = b
	}
	if b, ok := m["isWritable"].(bool); ok {
		pd.Writable = b
	}
	if b, ok := m["isRemovable"].(bool); ok {
		pd = pd.WithRemovable(b)
	}
	if hasDefault, _ := m["hasDefaultValue"].(bool); hasDefault {
		dv, err := decodeScalar(m["defaultValue"], kind, pd.Nullable, aspectName+"."+name)
		if err != nil {
			return pd, err
		}
		pd = pd.WithDefault(dv)
	}
	return pd, nil
}

func decodeUpstream(m map[string]interface{}) (catalog.Upstream, error) {
	if extRaw, ok := m["external"].(map[string]interface{}); ok {
		uri, _ := extRaw["uri"].(string)
		desc, _ := extRaw["description"].(string)
		return catalog.FromExternalSource(catalog.ExternalSource{URI: uri, Description: desc}), nil
	}
	if s, ok := m["catalogId"].(string); ok && s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return catalog.Upstream{}, cheaperr.New(cheaperr.KindMalformedInput, "upstream.catalogId", "not a valid UUID")
		}
		return catalog.FromCatalog(id), nil
	}
	return catalog.Upstream{}, cheaperr.New(cheaperr.KindMissingRequiredField, "upstream", "upstream must carry exactly one of external/catalogId")
}

func decodeHierarchy(f *factory.Factory, c *catalog.Catalog, name string, hw map[string]interface{}) error {
	typeName, _ := hw["type"].(string)
	kind, ok := hierarchy.KindByName(typeName)
	if !ok {
		return cheaperr.New(cheaperr.KindMalformedInput, name, "unknown hierarchy type")
	}

	switch kind {
	case hierarchy.EntityListKind:
		ids, err := decodeEntityIDArray(hw["content"])
		if err != nil {
			return err
		}
		list := hierarchy.NewEntityList(name)
		for _, id := range ids {
			list.Add(f.GetOrRegisterEntity(id))
		}
		return c.AddHierarchy(list)

	case hierarchy.EntitySetKind:
		ids, err := decodeEntityIDArray(hw["content"])
		if err != nil {
			return err
		}
		set := hierarchy.NewEntitySet(name)
		for _, id := range ids {
			set.Add(f.GetOrRegisterEntity(id))
		}
		return c.AddHierarchy(set)

	case hierarchy.EntityDirectoryKind:
		content, ok := hw["content"].(map[string]interface{})
		if !ok {
			return cheaperr.New(cheaperr.KindMalformedInput, name, "directory content must be an object")
		}
		dir := hierarchy.NewEntityDirectory(name)
		for key, rv := range content {
			s, ok := rv.(string)
			if !ok {
				return cheaperr.New(cheaperr.KindMalformedInput, name, "directory entry must be a UUID string")
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return cheaperr.New(cheaperr.KindMalformedInput, name, "directory entry is not a valid UUID")
			}
			dir.Put(key, f.GetOrRegisterEntity(id))
		}
		return c.AddHierarchy(dir)

	case hierarchy.EntityTreeKind:
		tree := hierarchy.NewEntityTree(name)
		root, ok := hw["content"].(map[string]interface{})
		if !ok {
			return cheaperr.New(cheaperr.KindMalformedInput, name, "tree content must be an object")
		}
		if err := decodeTreeChildren(f, tree, "/", root); err != nil {
			return err
		}
		return c.AddHierarchy(tree)

	case hierarchy.AspectMapKind:
		m, ok := c.AspectsByName(name)
		if !ok {
			return cheaperr.New(cheaperr.KindUnknownAspectDef, name, "AspectMap references an AspectDef not registered with this catalog")
		}
		content, ok := hw["content"].(map[string]interface{})
		if !ok {
			return cheaperr.New(cheaperr.KindMalformedInput, name, "AspectMap content must be an object")
		}
		for entIDStr, rv := range content {
			record, ok := rv.(map[string]interface{})
			if !ok {
				return cheaperr.New(cheaperr.KindMalformedInput, name, "aspect record must be an object")
			}
			entID, err := uuid.Parse(entIDStr)
			if err != nil {
				return cheaperr.New(cheaperr.KindMalformedInput, name, "aspect record key is not a valid UUID")
			}
			ent := f.GetOrRegisterEntity(entID)
			a := aspect.New(m.AspectDef(), ent)
			if err := applyRecord(a, record); err != nil {
				return err
			}
			if err := m.Put(ent, a); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// applyRecord writes every wire property value in record into a,
// skipping the derivable-from-context aspectDefName/entityId keys
// (spec §4.4).
func applyRecord(a *aspect.Aspect, record map[string]interface{}) error {
	for _, p := range a.Def().Properties {
		raw, present := record[p.Name]
		if !present {
			continue
		}
		var v value.Value
		var err error
		if p.Multivalued {
			v, err = decodeSequence(raw, p.Type, p.Nullable, p.Name)
		} else {
			v, err = decodeScalar(raw, p.Type, p.Nullable, p.Name)
		}
		if err != nil {
			return err
		}
		if err := a.Write(p.Name, v); err != nil {
			return err
		}
	}
	return nil
}

func decodeEntityIDArray(raw interface{}) ([]uuid.UUID, error) {
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, cheaperr.New(cheaperr.KindMalformedInput, "", "expected an array of entity UUIDs")
	}
	out := make([]uuid.UUID, 0, len(arr))
	for _, rv := range arr {
		s, ok := rv.(string)
		if !ok {
			return nil, cheaperr.New(cheaperr.KindMalformedInput, "", "entity reference must be a UUID string")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, cheaperr.New(cheaperr.KindMalformedInput, "", "entity reference is not a valid UUID")
		}
		out = append(out, id)
	}
	return out, nil
}

// decodeTreeChildren threads the *current tree parent* context variable
// (parentPath) as it walks the recursive node structure, adding each
// level's children before recursing into them (spec §4.4).
func decodeTreeChildren(f *factory.Factory, tree *hierarchy.EntityTree, parentPath string, node map[string]interface{}) error {
	rawChildren, ok := node["children"].(map[string]interface{})
	if !ok {
		return nil
	}

	toAdd := make(map[string]*entity.Entity, len(rawChildren))
	childNodes := make(map[string]map[string]interface{}, len(rawChildren))
	for name, rv := range rawChildren {
		cm, ok := rv.(map[string]interface{})
		if !ok {
			return cheaperr.New(cheaperr.KindMalformedInput, parentPath, "tree child must be an object")
		}
		var ent *entity.Entity
		if s, ok := cm["entityId"].(string); ok && s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return cheaperr.New(cheaperr.KindMalformedInput, parentPath+"/"+name, "tree node entityId is not a valid UUID")
			}
			ent = f.GetOrRegisterEntity(id)
		}
		toAdd[name] = ent
		childNodes[name] = cm
	}
	if err := tree.AddChildren(parentPath, toAdd); err != nil {
		return err
	}
	for name, cm := range childNodes {
		childPath := strings.TrimSuffix(parentPath, "/") + "/" + name
		if err := decodeTreeChildren(f, tree, childPath, cm); err != nil {
			return err
		}
	}
	return nil
}
