package sqlshape

import (
	"context"
	"database/sql"

	"github.com/gocraft/dbr/v2"

	"github.com/Jelloman/cheap-sub008/aspect"
	"github.com/Jelloman/cheap-sub008/catalog"
	"github.com/Jelloman/cheap-sub008/dao"
	"github.com/Jelloman/cheap-sub008/hierarchy"
	"github.com/Jelloman/cheap-sub008/schema"
	"github.com/Jelloman/cheap-sub008/value"
)

// Save implements dao.CatalogDAO.Save: definition rows first, instance
// rows second, property values last, all inside one transaction (spec
// §4.5). AspectDef/PropertyDef rows use INSERT ... ON DUPLICATE KEY
// UPDATE since they may be shared across catalogs; every catalog-scoped
// table is cleared and re-inserted, which is simpler than a column-by-
// column diff and just as atomic within the transaction.
func (s *Store) Save(ctx context.Context, c *catalog.Catalog) error {
	return s.withTx(ctx, func(tx *dbr.Tx) error {
		for _, ad := range c.AspectDefs() {
			if err := upsertAspectDef(ctx, tx, ad); err != nil {
				return err
			}
		}

		catID := c.CatalogID().String()
		if err := clearCatalogScopedRows(ctx, tx, catID); err != nil {
			return err
		}

		row := catalogRow{
			ID:      catID,
			Species: c.Species().String(),
			Strict:  c.IsStrict(),
			Version: 1,
		}
		if ext, ok := c.Upstream().External(); ok {
			row.URI = nullString(ext.URI)
		}
		if upID, ok := c.Upstream().CatalogID(); ok {
			row.UpstreamID = nullString(upID.String())
		}
		if _, err := tx.InsertInto(dao.TableCatalog).Record(&row).ExecContext(ctx); err != nil {
			return err
		}

		for _, ad := range c.AspectDefs() {
			link := catalogAspectDefRow{CatalogID: catID, AspectDefID: ad.Name}
			if _, err := tx.InsertInto(dao.TableCatalogAspectDef).Record(&link).ExecContext(ctx); err != nil {
				return err
			}
		}

		for _, h := range c.Hierarchies() {
			hrow := hierarchyRow{CatalogID: catID, Name: h.Name(), TypeCode: h.Kind().Code(), Version: 1}
			if _, err := tx.InsertInto(dao.TableHierarchy).Record(&hrow).ExecContext(ctx); err != nil {
				return err
			}
			if err := saveHierarchyContent(ctx, tx, catID, h); err != nil {
				return err
			}
		}

		return nil
	})
}

func upsertAspectDef(ctx context.Context, tx *dbr.Tx, ad schema.AspectDef) error {
	var globalID string
	if ad.GlobalID != nil {
		globalID = ad.GlobalID.String()
	}
	if _, err := tx.InsertBySql(
		"INSERT INTO "+dao.TableAspectDef+" (id, name, global_id, uri, version, readable, writable, can_add_properties, can_remove_properties) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) "+
			"ON DUPLICATE KEY UPDATE uri=VALUES(uri), version=VALUES(version), readable=VALUES(readable), "+
			"writable=VALUES(writable), can_add_properties=VALUES(can_add_properties), can_remove_properties=VALUES(can_remove_properties)",
		ad.Name, ad.Name, globalID, ad.URI, ad.Version, ad.Readable, ad.Writable, ad.CanAddProperties, ad.CanRemoveProperties,
	).ExecContext(ctx); err != nil {
		return err
	}

	if _, err := tx.DeleteFrom(dao.TablePropertyDef).Where(dbr.Eq("aspect_def_id", ad.Name)).ExecContext(ctx); err != nil {
		return err
	}
	for _, pd := range ad.Properties {
		prow := propertyDefRow{
			AspectDefID: ad.Name,
			Name:        pd.Name,
			TypeCode:    pd.Type.Code(),
			Nullable:    pd.Nullable,
			Multivalued: pd.Multivalued,
			Readable:    pd.Readable,
			Writable:    pd.Writable,
			Removable:   pd.Removable,
		}
		if _, err := tx.InsertInto(dao.TablePropertyDef).Record(&prow).ExecContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

// clearCatalogScopedRows deletes every row scoped to catID across the
// instance and hierarchy-content tables, ahead of a fresh insert.
func clearCatalogScopedRows(ctx context.Context, tx *dbr.Tx, catID string) error {
	scoped := []string{
		dao.TablePropertyValue,
		dao.TableAspect,
		dao.TableHierarchyList,
		dao.TableHierarchySet,
		dao.TableHierarchyDirectory,
		dao.TableHierarchyTree,
		dao.TableHierarchyAspectMap,
		dao.TableHierarchy,
		dao.TableCatalogAspectDef,
	}
	for _, table := range scoped {
		if _, err := tx.DeleteFrom(table).Where(dbr.Eq("catalog_id", catID)).ExecContext(ctx); err != nil {
			return err
		}
	}
	if _, err := tx.DeleteFrom(dao.TableCatalog).Where(dbr.Eq("id", catID)).ExecContext(ctx); err != nil {
		return err
	}
	return nil
}

func saveHierarchyContent(ctx context.Context, tx *dbr.Tx, catID string, h hierarchy.Hierarchy) error {
	switch v := h.(type) {
	case *hierarchy.EntityList:
		for i, e := range v.Iterate() {
			row := hierarchyListRow{CatalogID: catID, HierarchyName: h.Name(), Position: i, EntityID: e.ID().String()}
			if _, err := tx.InsertInto(dao.TableHierarchyList).Record(&row).ExecContext(ctx); err != nil {
				return err
			}
		}
	case *hierarchy.EntitySet:
		for _, e := range v.Iterate() {
			row := hierarchySetRow{CatalogID: catID, HierarchyName: h.Name(), EntityID: e.ID().String()}
			if _, err := tx.InsertInto(dao.TableHierarchySet).Record(&row).ExecContext(ctx); err != nil {
				return err
			}
		}
	case *hierarchy.EntityDirectory:
		for _, e := range v.Iterate() {
			row := hierarchyDirectoryRow{CatalogID: catID, HierarchyName: h.Name(), Key: e.Key, EntityID: e.Entity.ID().String()}
			if _, err := tx.InsertInto(dao.TableHierarchyDirectory).Record(&row).ExecContext(ctx); err != nil {
				return err
			}
		}
	case *hierarchy.EntityTree:
		return saveTree(ctx, tx, catID, v)
	case *hierarchy.AspectMap:
		for ord, e := range v.Iterate() {
			mrow := hierarchyAspectMapRow{CatalogID: catID, HierarchyName: h.Name(), EntityID: e.Entity.ID().String(), AspectDefID: e.Aspect.Def().Name, Ordinal: ord}
			if _, err := tx.InsertInto(dao.TableHierarchyAspectMap).Record(&mrow).ExecContext(ctx); err != nil {
				return err
			}
			arow := aspectRow{EntityID: e.Entity.ID().String(), AspectDefID: e.Aspect.Def().Name, CatalogID: catID, Transferable: true}
			if _, err := tx.InsertInto(dao.TableAspect).Record(&arow).ExecContext(ctx); err != nil {
				return err
			}
			if err := savePropertyValues(ctx, tx, catID, e.Entity.ID().String(), e.Aspect); err != nil {
				return err
			}
		}
	}
	return nil
}

func saveTree(ctx context.Context, tx *dbr.Tx, catID string, t *hierarchy.EntityTree) error {
	entries := t.Iterate()
	nodeIDs := make(map[string]string, len(entries))
	for _, e := range entries {
		nodeIDs[e.Path] = catID + ":" + t.Name() + ":" + e.Path
	}
	for _, e := range entries {
		row := hierarchyTreeRow{
			CatalogID:        catID,
			HierarchyName:    t.Name(),
			NodeID:           nodeIDs[e.Path],
			NodeKey:          treeLeafName(e.Path),
			MaterializedPath: e.Path,
		}
		if parent, ok := treeParentPath(e.Path); ok {
			row.ParentNodeID = nullString(nodeIDs[parent])
		}
		if e.Entity != nil {
			row.EntityID = nullString(e.Entity.ID().String())
		}
		if _, err := tx.InsertInto(dao.TableHierarchyTree).Record(&row).ExecContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

// savePropertyValues writes one property_value row per scalar slot, and
// one row per element (discriminated by ordinal) for multi-valued
// slots, with exactly one value_* column populated per row (spec §4.5).
func savePropertyValues(ctx context.Context, tx *dbr.Tx, catID, entityID string, a *aspect.Aspect) error {
	aspectDefID := a.Def().Name
	for _, p := range a.Properties() {
		if seq, ok := p.Value.(value.Sequence); ok {
			for i, elem := range seq.Elems {
				row, err := propertyValueRowFor(entityID, p.Def.Name, catID, i, elem)
				if err != nil {
					return err
				}
				row.AspectDefID = aspectDefID
				if _, err := tx.InsertInto(dao.TablePropertyValue).Record(&row).ExecContext(ctx); err != nil {
					return err
				}
			}
			continue
		}
		row, err := propertyValueRowFor(entityID, p.Def.Name, catID, 0, p.Value)
		if err != nil {
			return err
		}
		row.AspectDefID = aspectDefID
		if _, err := tx.InsertInto(dao.TablePropertyValue).Record(&row).ExecContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

func propertyValueRowFor(entityID, propName, catID string, ordinal int, v value.Value) (propertyValueRow, error) {
	row := propertyValueRow{
		EntityID:     entityID,
		PropertyName: propName,
		CatalogID:    catID,
		Ordinal:      ordinal,
	}
	row.TypeCode = v.Kind().Code()
	if v.IsNull() {
		row.IsNull = true
		return row, nil
	}

	switch v.Kind() {
	case value.IntegerKind:
		row.ValueInteger = sql.NullInt64{Int64: int64(v.(value.Integer)), Valid: true}
	case value.FloatKind:
		row.ValueFloat = sql.NullFloat64{Float64: float64(v.(value.Float)), Valid: true}
	case value.BooleanKind:
		row.ValueBoolean = sql.NullBool{Bool: bool(v.(value.Boolean)), Valid: true}
	case value.DateTimeKind:
		row.ValueDateTime = nullString(encodeScalarString(v))
	case value.BLOBKind:
		row.ValueBinary = []byte(v.(value.BLOB))
	default:
		row.ValueText = nullString(encodeScalarString(v))
	}
	return row, nil
}

// encodeScalarString renders a scalar value's text form the same way
// serial.encodeScalar does for these kinds; that function is unexported,
// so the rendering is repeated here.
func encodeScalarString(v value.Value) string {
	switch t := v.(type) {
	case value.String:
		return string(t)
	case value.Text:
		return string(t)
	case value.BigInteger:
		return t.V.String()
	case value.BigDecimal:
		return t.V.String()
	case value.DateTime:
		return t.V.Format(rfc3339Nano)
	case value.URI:
		return string(t)
	case value.UUID:
		return t.V.String()
	case value.CLOB:
		return string(t)
	default:
		return ""
	}
}

const rfc3339Nano = "2006-01-02T15:04:05.999999999Z07:00"

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func treeLeafName(path string) string {
	if path == "/" {
		return ""
	}
	i := len(path) - 1
	for i >= 0 && path[i] != '/' {
		i--
	}
	return path[i+1:]
}

func treeParentPath(path string) (string, bool) {
	if path == "/" {
		return "", false
	}
	i := len(path) - 1
	for i >= 0 && path[i] != '/' {
		i--
	}
	if i <= 0 {
		return "/", true
	}
	return path[:i], true
}
