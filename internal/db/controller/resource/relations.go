package resource

import (
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/schema"
)

// updateRelations replaces the links of every relation named in values.
// Relations absent from values are left alone.
func (s *Service) updateRelations(tx *gorm.DB, id string, values map[string]any) error {
	aliases := make([]string, 0, len(values))
	for alias := range values {
		aliases = append(aliases, alias)
	}

	sort.Strings(aliases)

	for _, alias := range aliases {
		r, ok := s.schema.Relation(alias)
		if !ok {
			continue
		}

		ids, err := r.IDs(values[alias])
		if err != nil {
			return err
		}

		switch r.Storage() {
		case schema.StorageColumn:
			err = s.setColumn(tx, r, id, ids)
		case schema.StorageForeignKey:
			err = s.setForeignKey(tx, r, id, ids)
		case schema.StorageJoinTable:
			err = s.setLinks(tx, r, id, ids)
		case schema.StorageMorph:
			err = s.setMorphLinks(tx, r, id, ids)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// setColumn points the local foreign key column at the target or at nothing.
func (s *Service) setColumn(tx *gorm.DB, r schema.Relation, id string, ids []string) error {
	var value any
	if len(ids) > 0 {
		value = ids[0]
	}

	return tx.Table(s.schema.Table).
		Where(clause.Eq{Column: clause.Column{Name: s.schema.Key()}, Value: id}).
		Update(r.Column, value).Error
}

// setForeignKey detaches every target pointing at id, then attaches ids.
func (s *Service) setForeignKey(tx *gorm.DB, r schema.Relation, id string, ids []string) error {
	err := tx.Table(r.Target).
		Where(clause.Eq{Column: clause.Column{Name: r.ForeignKey}, Value: id}).
		Update(r.ForeignKey, nil).Error
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}

	return tx.Table(r.Target).
		Where(clause.IN{Column: clause.Column{Name: r.Key()}, Values: anySlice(ids)}).
		Update(r.ForeignKey, id).Error
}

// setLinks rewrites the join table rows of id.
func (s *Service) setLinks(tx *gorm.DB, r schema.Relation, id string, ids []string) error {
	err := tx.Exec("DELETE FROM ? WHERE ? = ?",
		clause.Table{Name: r.JoinTable}, clause.Column{Name: r.JoinForeignKey}, id).Error
	if err != nil {
		return err
	}

	rows := make([]map[string]any, 0, len(ids))
	for _, target := range unique(ids) {
		rows = append(rows, map[string]any{
			r.JoinForeignKey: id,
			r.JoinReferences: target,
		})
	}

	return insertLinks(tx, r.JoinTable, rows)
}

// setMorphLinks rewrites the morph rows of id for this resource and alias only.
func (s *Service) setMorphLinks(tx *gorm.DB, r schema.Relation, id string, ids []string) error {
	err := tx.Exec("DELETE FROM ? WHERE ? = ? AND ? = ? AND ? = ?",
		clause.Table{Name: r.JoinTable},
		clause.Column{Name: r.JoinForeignKey}, id,
		clause.Column{Name: r.MorphType}, s.schema.Table,
		clause.Column{Name: r.MorphField}, r.Alias,
	).Error
	if err != nil {
		return err
	}

	rows := make([]map[string]any, 0, len(ids))
	for _, target := range unique(ids) {
		rows = append(rows, map[string]any{
			r.JoinReferences: target,
			r.JoinForeignKey: id,
			r.MorphType:      s.schema.Table,
			r.MorphField:     r.Alias,
		})
	}

	return insertLinks(tx, r.JoinTable, rows)
}

// detachInbound drops the links other rows of the same table hold on id
// through self-referencing relations.
func (s *Service) detachInbound(tx *gorm.DB, id string) error {
	for _, r := range s.schema.Relations {
		if r.Target != s.schema.Table {
			continue
		}

		var err error

		switch r.Storage() {
		case schema.StorageColumn:
			err = tx.Table(s.schema.Table).
				Where(clause.Eq{Column: clause.Column{Name: r.Column}, Value: id}).
				Update(r.Column, nil).Error
		case schema.StorageJoinTable:
			err = tx.Exec("DELETE FROM ? WHERE ? = ?",
				clause.Table{Name: r.JoinTable}, clause.Column{Name: r.JoinReferences}, id).Error
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func insertLinks(tx *gorm.DB, table string, rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}

	return tx.Table(table).Create(rows).Error
}

func unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	return out
}
