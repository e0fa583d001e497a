package catalog

import (
	"github.com/google/uuid"

	"github.com/Jelloman/cheap-sub008/hierarchy"
	"github.com/Jelloman/cheap-sub008/schema"
)

// HierarchyDef is the immutable declaration of a hierarchy's name and
// variant, independent of any particular instance (spec §3.1).
// Identity is the URI (catalog-name, hierarchy-name).
type HierarchyDef struct {
	Name string
	Kind hierarchy.Kind
}

// URI returns this HierarchyDef's identity URI, scoped to catalogName.
func (d HierarchyDef) URI(catalogName string) string {
	return catalogName + "#" + d.Name
}

// CatalogDef is an informational bundle naming the AspectDefs and
// HierarchyDefs a catalog is expected to contain (spec §3.1, §4.1). A
// strict catalog rejects any definition not named here.
type CatalogDef struct {
	GlobalID      *uuid.UUID
	AspectDefs    []schema.AspectDef
	HierarchyDefs []HierarchyDef
}

// HasAspectDef reports whether def (matched by name and content hash)
// is named in this CatalogDef.
func (c CatalogDef) HasAspectDef(def schema.AspectDef) bool {
	for _, d := range c.AspectDefs {
		if d.Name == def.Name && d.Hash() == def.Hash() {
			return true
		}
	}
	return false
}

// HasHierarchyDef reports whether a hierarchy named name with kind k is
// named in this CatalogDef.
func (c CatalogDef) HasHierarchyDef(name string, k hierarchy.Kind) bool {
	for _, d := range c.HierarchyDefs {
		if d.Name == name && d.Kind == k {
			return true
		}
	}
	return false
}
