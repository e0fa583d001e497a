package dao

// Table and column names for the relational schema shape of spec
// §4.5. These are dialect-independent identifiers; dao/sqlshape binds
// them to actual DDL/DML against a specific driver.
const (
	TableAspectDef    = "aspect_def"
	TablePropertyDef  = "property_def"
	TableCatalogDef   = "catalog_def"
	TableHierarchyDef = "hierarchy_def"

	// Many-to-many link tables binding a CatalogDef to the AspectDefs
	// and HierarchyDefs it names.
	TableCatalogDefAspectDef    = "catalog_def_aspect_def"
	TableCatalogDefHierarchyDef = "catalog_def_hierarchy_def"

	TableEntity           = "entity"
	TableCatalog          = "catalog"
	TableCatalogAspectDef = "catalog_aspect_def"
	TableHierarchy        = "hierarchy"
	TableAspect           = "aspect"
	TablePropertyValue    = "property_value"

	// One content table per hierarchy variant (spec §4.5).
	TableHierarchyList      = "hierarchy_list"
	TableHierarchySet       = "hierarchy_set"
	TableHierarchyDirectory = "hierarchy_directory"
	TableHierarchyTree      = "hierarchy_tree"
	TableHierarchyAspectMap = "hierarchy_aspect_map"
)

// Column names for property_value — exactly one value_* column is
// populated per row (is_null true otherwise); multi-valued properties
// become multiple rows discriminated by ordinal (spec §4.5).
const (
	ColEntityID       = "entity_id"
	ColAspectDefID    = "aspect_def_id"
	ColCatalogID      = "catalog_id"
	ColPropertyName   = "property_name"
	ColTypeCode       = "type_code"
	ColOrdinal        = "ordinal"
	ColIsNull         = "is_null"
	ColValueText      = "value_text"
	ColValueInteger   = "value_integer"
	ColValueFloat     = "value_float"
	ColValueBoolean   = "value_boolean"
	ColValueDateTime  = "value_datetime"
	ColValueBinary    = "value_binary"
)
