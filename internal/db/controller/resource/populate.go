package resource

import (
	"slices"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/schema"
)

// records turns raw rows into records and attaches the requested relations.
// Relations stored in a local column that are not populated keep their raw
// target id under the alias.
func (s *Service) records(db *gorm.DB, rows []map[string]any, populate []schema.Relation) ([]Record, error) {
	out := make([]Record, len(rows))
	ids := make([]string, len(rows))

	for i, row := range rows {
		rec := Record{}
		ids[i] = schema.ID(row[s.schema.Key()])
		rec[s.schema.Key()] = ids[i]

		for _, a := range s.schema.Attributes {
			rec[a.Name] = a.Normalize(row[a.ColumnName()])
		}

		if s.schema.Timestamps {
			rec[schema.CreatedAt] = row[schema.CreatedAt]
			rec[schema.UpdatedAt] = row[schema.UpdatedAt]
		}

		for _, r := range s.schema.Relations {
			if r.Storage() == schema.StorageColumn {
				rec[r.Alias] = nullableID(row[r.Column])
			}
		}

		out[i] = rec
	}

	if len(rows) == 0 {
		return out, nil
	}

	for _, r := range populate {
		var err error

		switch r.Storage() {
		case schema.StorageColumn:
			err = s.populateColumn(db, r, out)
		case schema.StorageForeignKey:
			err = s.populateForeignKey(db, r, ids, out)
		case schema.StorageJoinTable, schema.StorageMorph:
			err = s.populateJoin(db, r, ids, out)
		}

		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (s *Service) populateColumn(db *gorm.DB, r schema.Relation, records []Record) error {
	var targetIDs []any

	for _, rec := range records {
		if id, ok := rec[r.Alias].(string); ok {
			targetIDs = append(targetIDs, id)
		}
	}

	targets, err := loadTargets(db, r, targetIDs)
	if err != nil {
		return err
	}

	for _, rec := range records {
		id, ok := rec[r.Alias].(string)
		if !ok {
			continue
		}

		if t, found := targets[id]; found {
			rec[r.Alias] = t
		} else {
			rec[r.Alias] = nil
		}
	}

	return nil
}

func (s *Service) populateForeignKey(db *gorm.DB, r schema.Relation, ids []string, records []Record) error {
	var rows []map[string]any

	err := db.Table(r.Target).
		Where(clause.IN{Column: clause.Column{Name: r.ForeignKey}, Values: anySlice(ids)}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: r.Key()}}).
		Find(&rows).Error
	if err != nil {
		return err
	}

	grouped := make(map[string][]Record)
	for _, row := range rows {
		owner := schema.ID(row[r.ForeignKey])
		grouped[owner] = append(grouped[owner], target(row))
	}

	for i, rec := range records {
		attach(rec, r, grouped[ids[i]])
	}

	return nil
}

func (s *Service) populateJoin(db *gorm.DB, r schema.Relation, ids []string, records []Record) error {
	var links []map[string]any

	tx := db.Table(r.JoinTable).
		Where(clause.IN{Column: clause.Column{Name: r.JoinForeignKey}, Values: anySlice(ids)})
	if r.Storage() == schema.StorageMorph {
		tx = tx.Where(s.morphScope(r))
	}

	if err := tx.Find(&links).Error; err != nil {
		return err
	}

	targetIDs := make([]any, 0, len(links))
	for _, link := range links {
		targetIDs = append(targetIDs, schema.ID(link[r.JoinReferences]))
	}

	targets, err := loadTargets(db, r, targetIDs)
	if err != nil {
		return err
	}

	grouped := make(map[string][]Record)

	for _, link := range links {
		owner := schema.ID(link[r.JoinForeignKey])
		if t, ok := targets[schema.ID(link[r.JoinReferences])]; ok {
			grouped[owner] = append(grouped[owner], t)
		}
	}

	for i, rec := range records {
		attach(rec, r, sortByKey(grouped[ids[i]], r.Key()))
	}

	return nil
}

// morphScope restricts a morph table to the links of this resource and alias.
func (s *Service) morphScope(r schema.Relation) clause.Expression {
	return clause.And(
		clause.Eq{Column: clause.Column{Name: r.MorphType}, Value: s.schema.Table},
		clause.Eq{Column: clause.Column{Name: r.MorphField}, Value: r.Alias},
	)
}

func loadTargets(db *gorm.DB, r schema.Relation, ids []any) (map[string]Record, error) {
	out := make(map[string]Record)
	if len(ids) == 0 {
		return out, nil
	}

	var rows []map[string]any

	err := db.Table(r.Target).
		Where(clause.IN{Column: clause.Column{Name: r.Key()}, Values: ids}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[schema.ID(row[r.Key()])] = target(row)
	}

	return out, nil
}

// attach stores targets under the alias: a list for multi-valued natures,
// the first target or nil otherwise.
func attach(rec Record, r schema.Relation, targets []Record) {
	if r.Nature.Multi() {
		if targets == nil {
			targets = []Record{}
		}

		rec[r.Alias] = targets

		return
	}

	if len(targets) == 0 {
		rec[r.Alias] = nil
		return
	}

	rec[r.Alias] = targets[0]
}

func target(row map[string]any) Record {
	rec := make(Record, len(row))
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}

		rec[k] = v
	}

	return rec
}

func nullableID(v any) any {
	if v == nil {
		return nil
	}

	if id := schema.ID(v); id != "" {
		return id
	}

	return nil
}

func anySlice(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}

	return out
}

func sortByKey(records []Record, key string) []Record {
	slices.SortStableFunc(records, func(a, b Record) int {
		return strings.Compare(schema.ID(a[key]), schema.ID(b[key]))
	})

	return records
}
