package sqlshape

import "database/sql"

// Row structs mirror the relational schema shape of spec §4.5. Field
// order doesn't matter to dbr (columns are matched by `db` tag), but
// mirrors declaration order in the column constants of package dao for
// readability.

type aspectDefRow struct {
	ID                  string `db:"id"`
	Name                string `db:"name"`
	GlobalID            string `db:"global_id"`
	URI                 string `db:"uri"`
	Version             string `db:"version"`
	Readable            bool   `db:"readable"`
	Writable            bool   `db:"writable"`
	CanAddProperties    bool   `db:"can_add_properties"`
	CanRemoveProperties bool   `db:"can_remove_properties"`
}

type propertyDefRow struct {
	AspectDefID string `db:"aspect_def_id"`
	Name        string `db:"name"`
	TypeCode    string `db:"type_code"`
	Nullable    bool   `db:"nullable"`
	Multivalued bool   `db:"multivalued"`
	Readable    bool   `db:"readable"`
	Writable    bool   `db:"writable"`
	Removable   bool   `db:"removable"`
}

type catalogRow struct {
	ID          string `db:"id"`
	CatalogDefID sql.NullString `db:"catalog_def_id"`
	Species     string `db:"species"`
	URI         sql.NullString `db:"uri"`
	UpstreamID  sql.NullString `db:"upstream_id"`
	Strict      bool   `db:"strict"`
	Version     int64  `db:"version"`
}

type catalogAspectDefRow struct {
	CatalogID   string `db:"catalog_id"`
	AspectDefID string `db:"aspect_def_id"`
}

type hierarchyRow struct {
	CatalogID string `db:"catalog_id"`
	Name      string `db:"name"`
	TypeCode  string `db:"type_code"`
	Version   int64  `db:"version"`
}

type aspectRow struct {
	EntityID     string `db:"entity_id"`
	AspectDefID  string `db:"aspect_def_id"`
	CatalogID    string `db:"catalog_id"`
	Transferable bool   `db:"transferable"`
}

type propertyValueRow struct {
	EntityID      string         `db:"entity_id"`
	AspectDefID   string         `db:"aspect_def_id"`
	CatalogID     string         `db:"catalog_id"`
	PropertyName  string         `db:"property_name"`
	TypeCode      string         `db:"type_code"`
	Ordinal       int            `db:"ordinal"`
	IsNull        bool           `db:"is_null"`
	ValueText     sql.NullString `db:"value_text"`
	ValueInteger  sql.NullInt64  `db:"value_integer"`
	ValueFloat    sql.NullFloat64 `db:"value_float"`
	ValueBoolean  sql.NullBool   `db:"value_boolean"`
	ValueDateTime sql.NullString `db:"value_datetime"`
	ValueBinary   []byte         `db:"value_binary"`
}

type hierarchyListRow struct {
	CatalogID     string `db:"catalog_id"`
	HierarchyName string `db:"hierarchy_name"`
	Position      int    `db:"position"`
	EntityID      string `db:"entity_id"`
}

type hierarchySetRow struct {
	CatalogID     string `db:"catalog_id"`
	HierarchyName string `db:"hierarchy_name"`
	EntityID      string `db:"entity_id"`
}

type hierarchyDirectoryRow struct {
	CatalogID     string `db:"catalog_id"`
	HierarchyName string `db:"hierarchy_name"`
	Key           string `db:"directory_key"`
	EntityID      string `db:"entity_id"`
}

type hierarchyTreeRow struct {
	CatalogID        string         `db:"catalog_id"`
	HierarchyName    string         `db:"hierarchy_name"`
	NodeID           string         `db:"node_id"`
	ParentNodeID     sql.NullString `db:"parent_node_id"`
	NodeKey          string         `db:"node_key"`
	EntityID         sql.NullString `db:"entity_id"`
	MaterializedPath string         `db:"materialized_path"`
}

type hierarchyAspectMapRow struct {
	CatalogID     string `db:"catalog_id"`
	HierarchyName string `db:"hierarchy_name"`
	EntityID      string `db:"entity_id"`
	AspectDefID   string `db:"aspect_def_id"`
	Ordinal       int    `db:"ordinal"`
}
