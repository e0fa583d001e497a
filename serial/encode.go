package serial

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/Jelloman/cheap-sub008/catalog"
	"github.com/Jelloman/cheap-sub008/entity"
	"github.com/Jelloman/cheap-sub008/hierarchy"
	"github.com/Jelloman/cheap-sub008/schema"
)

// Encode writes c to w as the single JSON document of spec §4.4.
// Object keys are emitted in a fixed order (struct field order in
// catalogWire/catalogDefWire) so AspectDefs always precede Aspects that
// reference them and HierarchyDefs always precede Hierarchies, even
// though a standard library json.Decoder reading it back would not by
// itself enforce that; Decode enforces it on the read side by
// processing keys in stream arrival order (spec §4.4).
func Encode(w io.Writer, c *catalog.Catalog) error {
	doc := catalogWire{
		GlobalID: c.CatalogID().String(),
		Species:  c.Species().String(),
		Strict:   c.IsStrict(),
		Def:      encodeCatalogDef(c),
		Upstream: encodeUpstream(c.Upstream()),
	}

	hs := c.Hierarchies()
	doc.Hierarchies = make(map[string]hierarchyWire, len(hs))
	for _, h := range hs {
		wire, err := encodeHierarchy(h)
		if err != nil {
			return err
		}
		doc.Hierarchies[h.Name()] = wire
	}

	enc := json.NewEncoder(w)
	return enc.Encode(doc)
}

func encodeCatalogDef(c *catalog.Catalog) catalogDefWire {
	def := c.Def()
	out := catalogDefWire{
		AspectDefs:    make(map[string]aspectDefWire, len(c.AspectDefs())),
		HierarchyDefs: make([]hierarchyDefWire, 0, len(def.HierarchyDefs)),
	}
	if def.GlobalID != nil {
		out.GlobalID = def.GlobalID.String()
	}
	for _, ad := range c.AspectDefs() {
		out.AspectDefs[ad.Name] = encodeAspectDef(ad)
	}
	for _, hd := range def.HierarchyDefs {
		out.HierarchyDefs = append(out.HierarchyDefs, hierarchyDefWire{Name: hd.Name, Type: hd.Kind.String()})
	}
	return out
}

func encodeAspectDef(ad schema.AspectDef) aspectDefWire {
	out := aspectDefWire{
		Name:                ad.Name,
		URI:                 ad.URI,
		Version:             ad.Version,
		PropertyDefs:        make([]propertyDefWire, 0, len(ad.Properties)),
		IsReadable:          ad.Readable,
		IsWritable:          ad.Writable,
		CanAddProperties:    ad.CanAddProperties,
		CanRemoveProperties: ad.CanRemoveProperties,
	}
	if ad.GlobalID != nil {
		out.GlobalID = ad.GlobalID.String()
	}
	for _, pd := range ad.Properties {
		pw := propertyDefWire{
			Name:            pd.Name,
			Type:            pd.Type.String(),
			IsNullable:      pd.Nullable,
			IsMultivalued:   pd.Multivalued,
			IsReadable:      pd.Readable,
			IsWritable:      pd.Writable,
			IsRemovable:     pd.Removable,
			HasDefaultValue: pd.HasDefaultValue,
		}
		if pd.HasDefaultValue {
			pw.DefaultValue = encodeScalar(pd.DefaultValue)
		}
		out.PropertyDefs = append(out.PropertyDefs, pw)
	}
	return out
}

func encodeUpstream(u catalog.Upstream) upstreamWire {
	if ext, ok := u.External(); ok {
		return upstreamWire{External: &externalSourceWire{URI: ext.URI, Description: ext.Description}}
	}
	if id, ok := u.CatalogID(); ok {
		return upstreamWire{CatalogID: id.String()}
	}
	return upstreamWire{}
}

func encodeHierarchy(h hierarchy.Hierarchy) (hierarchyWire, error) {
	wire := hierarchyWire{Type: h.Kind().String(), Name: h.Name()}
	switch v := h.(type) {
	case *hierarchy.EntityList:
		wire.Content = encodeEntityIDs(v.Iterate())
	case *hierarchy.EntitySet:
		wire.Content = encodeEntityIDs(v.Iterate())
	case *hierarchy.EntityDirectory:
		content := make(map[string]string)
		for _, e := range v.Iterate() {
			content[e.Key] = e.Entity.ID().String()
		}
		wire.Content = content
	case *hierarchy.EntityTree:
		wire.Content = encodeTree(v)
	case *hierarchy.AspectMap:
		content := make(map[string]map[string]interface{})
		for _, e := range v.Iterate() {
			record := make(map[string]interface{})
			for _, p := range e.Aspect.Properties() {
				record[p.Def.Name] = encodeScalar(p.Value)
			}
			content[e.Entity.ID().String()] = record
		}
		wire.Content = content
	}
	return wire, nil
}

func encodeEntityIDs(es []*entity.Entity) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID().String()
	}
	return out
}

func encodeTree(t *hierarchy.EntityTree) *treeNodeWire {
	entries := t.Iterate()
	nodes := make(map[string]*treeNodeWire, len(entries))
	for _, e := range entries {
		n := &treeNodeWire{IsLeaf: e.IsLeaf}
		if e.Entity != nil {
			n.EntityID = e.Entity.ID().String()
		}
		if !e.IsLeaf {
			n.Children = make(map[string]*treeNodeWire)
		}
		nodes[e.Path] = n
	}
	for _, e := range entries {
		if e.Path == "/" {
			continue
		}
		parentPath, name := splitParent(e.Path)
		if parent, ok := nodes[parentPath]; ok {
			parent.Children[name] = nodes[e.Path]
		}
	}
	return nodes["/"]
}

// splitParent splits a "/"-joined tree path into its parent path and
// final segment name, mirroring hierarchy's own path addressing rules
// (spec §4.2.4) without reaching into that package's unexported helpers.
func splitParent(path string) (parent, name string) {
	trimmed := strings.Trim(path, "/")
	segs := strings.Split(trimmed, "/")
	name = segs[len(segs)-1]
	if len(segs) == 1 {
		return "/", name
	}
	return "/" + strings.Join(segs[:len(segs)-1], "/"), name
}
