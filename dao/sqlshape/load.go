package sqlshape

import (
	"context"

	"github.com/gocraft/dbr/v2"
	"github.com/google/uuid"

	"github.com/Jelloman/cheap-sub008/aspect"
	"github.com/Jelloman/cheap-sub008/catalog"
	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/dao"
	"github.com/Jelloman/cheap-sub008/entity"
	"github.com/Jelloman/cheap-sub008/factory"
	"github.com/Jelloman/cheap-sub008/hierarchy"
	"github.com/Jelloman/cheap-sub008/schema"
	"github.com/Jelloman/cheap-sub008/value"
)

// Load implements dao.CatalogDAO.Load: definitions are read and
// registered with f before any instance row that references them, so
// a reconstructed catalog can never observe a reference to an
// unregistered AspectDef or HierarchyDef (spec §4.5 load protocol).
func (s *Store) Load(ctx context.Context, f *factory.Factory, id uuid.UUID) (*catalog.Catalog, error) {
	sess := s.session()
	catID := id.String()

	var crow catalogRow
	if err := sess.Select("*").From(dao.TableCatalog).Where(dbr.Eq("id", catID)).LoadOneContext(ctx, &crow); err != nil {
		if err == dbr.ErrNotFound {
			return nil, cheaperr.New(cheaperr.KindNotFound, catID, "no catalog with this id")
		}
		return nil, err
	}

	var links []catalogAspectDefRow
	if _, err := sess.Select("*").From(dao.TableCatalogAspectDef).
		Where(dbr.Eq("catalog_id", catID)).LoadContext(ctx, &links); err != nil {
		return nil, err
	}
	adRows := make([]aspectDefRow, 0, len(links))
	for _, link := range links {
		var row aspectDefRow
		if err := sess.Select("*").From(dao.TableAspectDef).
			Where(dbr.Eq("id", link.AspectDefID)).LoadOneContext(ctx, &row); err != nil {
			return nil, err
		}
		adRows = append(adRows, row)
	}

	defs := make(map[string]schema.AspectDef, len(adRows))
	order := make([]string, 0, len(adRows))
	for _, row := range adRows {
		def, err := loadAspectDef(ctx, sess, row)
		if err != nil {
			return nil, err
		}
		if err := f.RegisterAspectDef(def); err != nil {
			return nil, err
		}
		defs[def.Name] = def
		order = append(order, def.Name)
	}

	species, ok := catalog.SpeciesByName(crow.Species)
	if !ok {
		return nil, cheaperr.New(cheaperr.KindTypeMismatch, crow.Species, "unknown species code in catalog row")
	}

	upstream := catalog.Upstream{}
	if crow.UpstreamID.Valid {
		upID, err := uuid.Parse(crow.UpstreamID.String)
		if err != nil {
			return nil, err
		}
		upstream = catalog.FromCatalog(upID)
	} else if crow.URI.Valid {
		upstream = catalog.FromExternalSource(catalog.ExternalSource{URI: crow.URI.String})
	}

	c, err := f.NewCatalog(id, species, upstream, catalog.WithStrict(crow.Strict))
	if err != nil {
		return nil, err
	}

	for _, name := range order {
		if err := c.ExtendAspectage(defs[name]); err != nil {
			return nil, err
		}
	}

	var hrows []hierarchyRow
	if _, err := sess.Select("*").From(dao.TableHierarchy).Where(dbr.Eq("catalog_id", catID)).LoadContext(ctx, &hrows); err != nil {
		return nil, err
	}
	for _, hrow := range hrows {
		kind, ok := hierarchy.KindByCode(hrow.TypeCode)
		if !ok {
			return nil, cheaperr.New(cheaperr.KindTypeMismatch, hrow.TypeCode, "unknown hierarchy type code")
		}
		if err := f.RegisterHierarchyDef(hrow.Name, kind); err != nil {
			return nil, err
		}
		if kind == hierarchy.AspectMapKind {
			if err := loadAspectMapContent(ctx, sess, f, c, catID, hrow.Name); err != nil {
				return nil, err
			}
			continue
		}
		if err := loadHierarchyContent(ctx, sess, f, c, catID, hrow.Name, kind); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func loadAspectDef(ctx context.Context, sess *dbr.Session, row aspectDefRow) (schema.AspectDef, error) {
	var prows []propertyDefRow
	if _, err := sess.Select("*").From(dao.TablePropertyDef).
		Where(dbr.Eq("aspect_def_id", row.ID)).LoadContext(ctx, &prows); err != nil {
		return schema.AspectDef{}, err
	}
	props := make([]schema.PropertyDef, 0, len(prows))
	for _, p := range prows {
		kind, ok := value.KindByCode(p.TypeCode)
		if !ok {
			return schema.AspectDef{}, cheaperr.New(cheaperr.KindTypeMismatch, p.TypeCode, "unknown property type code")
		}
		pd := schema.NewPropertyDef(p.Name, kind).
			WithNullable(p.Nullable).
			WithMultivalued(p.Multivalued).
			WithRemovable(p.Removable)
		pd.Readable = p.Readable
		pd.Writable = p.Writable
		props = append(props, pd)
	}

	def := schema.NewAspectDef(row.Name, props...)
	def.URI = row.URI
	def.Version = row.Version
	def.Readable = row.Readable
	def.Writable = row.Writable
	def.CanAddProperties = row.CanAddProperties
	def.CanRemoveProperties = row.CanRemoveProperties
	if row.GlobalID != "" {
		gid, err := uuid.Parse(row.GlobalID)
		if err != nil {
			return schema.AspectDef{}, err
		}
		def.GlobalID = &gid
	}
	return def, nil
}

func loadHierarchyContent(ctx context.Context, sess *dbr.Session, f *factory.Factory, c *catalog.Catalog, catID, name string, kind hierarchy.Kind) error {
	switch kind {
	case hierarchy.EntityListKind:
		var rows []hierarchyListRow
		if _, err := sess.Select("*").From(dao.TableHierarchyList).
			Where(dbr.Eq("catalog_id", catID)).Where(dbr.Eq("hierarchy_name", name)).
			OrderBy("position").LoadContext(ctx, &rows); err != nil {
			return err
		}
		list := hierarchy.NewEntityList(name)
		for _, r := range rows {
			e, err := resolveEntity(f, r.EntityID)
			if err != nil {
				return err
			}
			list.Add(e)
		}
		return c.AddHierarchy(list)

	case hierarchy.EntitySetKind:
		var rows []hierarchySetRow
		if _, err := sess.Select("*").From(dao.TableHierarchySet).
			Where(dbr.Eq("catalog_id", catID)).Where(dbr.Eq("hierarchy_name", name)).LoadContext(ctx, &rows); err != nil {
			return err
		}
		set := hierarchy.NewEntitySet(name)
		for _, r := range rows {
			e, err := resolveEntity(f, r.EntityID)
			if err != nil {
				return err
			}
			set.Add(e)
		}
		return c.AddHierarchy(set)

	case hierarchy.EntityDirectoryKind:
		var rows []hierarchyDirectoryRow
		if _, err := sess.Select("*").From(dao.TableHierarchyDirectory).
			Where(dbr.Eq("catalog_id", catID)).Where(dbr.Eq("hierarchy_name", name)).LoadContext(ctx, &rows); err != nil {
			return err
		}
		dir := hierarchy.NewEntityDirectory(name)
		for _, r := range rows {
			e, err := resolveEntity(f, r.EntityID)
			if err != nil {
				return err
			}
			dir.Put(r.Key, e)
		}
		return c.AddHierarchy(dir)

	case hierarchy.EntityTreeKind:
		var rows []hierarchyTreeRow
		if _, err := sess.Select("*").From(dao.TableHierarchyTree).
			Where(dbr.Eq("catalog_id", catID)).Where(dbr.Eq("hierarchy_name", name)).LoadContext(ctx, &rows); err != nil {
			return err
		}
		tree := hierarchy.NewEntityTree(name)
		// Sort ancestors-before-descendants so AddChildren(parent, ...)
		// always finds parent already resolved.
		byDepth := make(map[int][]hierarchyTreeRow)
		maxDepth := 0
		for _, r := range rows {
			if r.MaterializedPath == "/" {
				continue
			}
			d := depthOf(r.MaterializedPath)
			byDepth[d] = append(byDepth[d], r)
			if d > maxDepth {
				maxDepth = d
			}
		}
		for d := 1; d <= maxDepth; d++ {
			level := byDepth[d]
			byParent := make(map[string]map[string]*entity.Entity)
			for _, r := range level {
				parent, _ := treeParentPath(r.MaterializedPath)
				if byParent[parent] == nil {
					byParent[parent] = make(map[string]*entity.Entity)
				}
				var e *entity.Entity
				if r.EntityID.Valid {
					var err error
					e, err = resolveEntity(f, r.EntityID.String)
					if err != nil {
						return err
					}
				}
				byParent[parent][r.NodeKey] = e
			}
			for parent, children := range byParent {
				if err := tree.AddChildren(parent, children); err != nil {
					return err
				}
			}
		}
		return c.AddHierarchy(tree)
	}
	return nil
}

func loadAspectMapContent(ctx context.Context, sess *dbr.Session, f *factory.Factory, c *catalog.Catalog, catID, name string) error {
	var rows []hierarchyAspectMapRow
	if _, err := sess.Select("*").From(dao.TableHierarchyAspectMap).
		Where(dbr.Eq("catalog_id", catID)).Where(dbr.Eq("hierarchy_name", name)).
		OrderBy("ordinal").LoadContext(ctx, &rows); err != nil {
		return err
	}
	m, ok := c.AspectsByName(name)
	if !ok {
		return cheaperr.New(cheaperr.KindNotFound, name, "AspectMap hierarchy not created by ExtendAspectage")
	}
	for _, r := range rows {
		ent, err := resolveEntity(f, r.EntityID)
		if err != nil {
			return err
		}
		a := aspect.New(m.AspectDef(), ent)
		if err := loadPropertyValues(ctx, sess, catID, r.EntityID, r.AspectDefID, a); err != nil {
			return err
		}
		if err := m.Put(ent, a); err != nil {
			return err
		}
	}
	return nil
}

func loadPropertyValues(ctx context.Context, sess *dbr.Session, catID, entityID, aspectDefID string, a *aspect.Aspect) error {
	var rows []propertyValueRow
	if _, err := sess.Select("*").From(dao.TablePropertyValue).
		Where(dbr.Eq("catalog_id", catID)).
		Where(dbr.Eq("entity_id", entityID)).
		Where(dbr.Eq("aspect_def_id", aspectDefID)).
		OrderBy("ordinal").LoadContext(ctx, &rows); err != nil {
		return err
	}
	grouped := make(map[string][]propertyValueRow)
	propOrder := make([]string, 0)
	for _, r := range rows {
		if _, seen := grouped[r.PropertyName]; !seen {
			propOrder = append(propOrder, r.PropertyName)
		}
		grouped[r.PropertyName] = append(grouped[r.PropertyName], r)
	}
	for _, name := range propOrder {
		slots := grouped[name]
		def, ok := a.Def().Property(name)
		multi := ok && def.Multivalued
		if multi {
			elems := make([]value.Value, 0, len(slots))
			var elemKind value.Kind
			for _, r := range slots {
				v, err := scalarFromRow(r)
				if err != nil {
					return err
				}
				elems = append(elems, v)
				elemKind = v.Kind()
			}
			if err := a.Write(name, value.NewSequence(elemKind, elems...)); err != nil {
				return err
			}
			continue
		}
		v, err := scalarFromRow(slots[0])
		if err != nil {
			return err
		}
		if err := a.Write(name, v); err != nil {
			return err
		}
	}
	return nil
}

func scalarFromRow(r propertyValueRow) (value.Value, error) {
	kind, ok := value.KindByCode(r.TypeCode)
	if !ok {
		return nil, cheaperr.New(cheaperr.KindTypeMismatch, r.TypeCode, "unknown property_value type code")
	}
	if r.IsNull {
		return value.NewNull(kind), nil
	}
	switch kind {
	case value.IntegerKind:
		return value.Integer(r.ValueInteger.Int64), nil
	case value.FloatKind:
		return value.Float(r.ValueFloat.Float64), nil
	case value.BooleanKind:
		return value.Boolean(r.ValueBoolean.Bool), nil
	case value.BLOBKind:
		return value.BLOB(r.ValueBinary), nil
	default:
		return value.Coerce(value.String(r.ValueText.String), kind, true, r.PropertyName)
	}
}

func resolveEntity(f *factory.Factory, idStr string) (*entity.Entity, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return f.GetOrRegisterEntity(id), nil
}

func depthOf(path string) int {
	n := 0
	for _, ch := range path {
		if ch == '/' {
			n++
		}
	}
	return n
}

// Exists reports whether a catalog row for id is present.
func (s *Store) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	sess := s.session()
	var count int
	_, err := sess.Select("COUNT(*)").From(dao.TableCatalog).Where(dbr.Eq("id", id.String())).LoadContext(ctx, &count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a catalog and everything owned by it.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	return s.withTx(ctx, func(tx *dbr.Tx) error {
		return clearCatalogScopedRows(ctx, tx, id.String())
	})
}
