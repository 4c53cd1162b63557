// Package resource implements the access layer of one resource on top of
// gorm: REST query translation, reads with relation population, and writes
// that keep scalar columns and relation links apart.
package resource

import (
	"errors"
	"net/url"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/query"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/schema"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/search"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/uniuri"
)

// Record is one entity as seen by callers.
type Record = schema.Record

// Service is the access layer of one resource. It holds no connection;
// every operation receives the storage handle to run on.
type Service struct {
	schema *schema.Schema
	text   search.TextSearch
}

// New validates the descriptor and returns the access layer for it.
func New(s *schema.Schema, text search.TextSearch) (*Service, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if text == nil {
		return nil, search.ErrUnknownEngine
	}

	return &Service{schema: s, text: text}, nil
}

// Schema returns the descriptor the service was built with.
func (s *Service) Schema() *schema.Schema {
	return s.schema
}

// TextSearch returns the configured text search strategy.
func (s *Service) TextSearch() search.TextSearch {
	return s.text
}

// FetchAll returns the rows matching params. A nil populate list loads the
// auto-populated relations, a non-nil one replaces them.
func (s *Service) FetchAll(db *gorm.DB, params url.Values, populate []string) ([]Record, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	filters, err := query.Parse(s.schema, params)
	if err != nil {
		return nil, err
	}

	relations, err := s.schema.Populate(populate)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any

	if err = filters.Apply(db.Table(s.schema.Table)).Find(&rows).Error; err != nil {
		return nil, err
	}

	return s.records(db, rows, relations)
}

// Fetch returns one row by primary key with its auto-populated relations.
func (s *Service) Fetch(db *gorm.DB, id string) (Record, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if id == "" {
		return nil, ErrIDEmpty
	}

	relations, err := s.schema.Populate(nil)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any

	err = db.Table(s.schema.Table).
		Where(clause.Eq{Column: clause.Column{Name: s.schema.Key()}, Value: id}).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	records, err := s.records(db, rows, relations)
	if err != nil {
		return nil, err
	}

	return records[0], nil
}

// Count returns the number of rows matching the where part of params.
func (s *Service) Count(db *gorm.DB, params url.Values) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	filters, err := query.Parse(s.schema, params)
	if err != nil {
		return 0, err
	}

	var n int64

	if err = filters.ApplyWhere(db.Table(s.schema.Table)).Count(&n).Error; err != nil {
		return 0, err
	}

	return n, nil
}

// Add inserts the scalar part of values as a new row, then links its
// relations. Both steps share one transaction.
func (s *Service) Add(db *gorm.DB, values map[string]any) (Record, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	scalars, relations, err := s.schema.Split(values)
	if err != nil {
		return nil, err
	}

	if err = s.schema.RequireAll(scalars); err != nil {
		return nil, err
	}

	id := uniuri.NewID()
	scalars[s.schema.Key()] = id

	err = db.Transaction(func(tx *gorm.DB) error {
		if s.schema.Timestamps {
			now := tx.NowFunc()
			scalars[schema.CreatedAt] = now
			scalars[schema.UpdatedAt] = now
		}

		if err := tx.Table(s.schema.Table).Create(scalars).Error; err != nil {
			return err
		}

		return s.updateRelations(tx, id, relations)
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("resource", s.schema.Name).Str("id", id).Msg("entry created")

	return s.Fetch(db, id)
}

// Edit merges the scalar part of values into the row and replaces the
// links of every relation present in values.
func (s *Service) Edit(db *gorm.DB, id string, values map[string]any) (Record, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if id == "" {
		return nil, ErrIDEmpty
	}

	scalars, relations, err := s.schema.Split(values)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.exists(tx, id); err != nil {
			return err
		}

		if len(scalars) > 0 {
			if s.schema.Timestamps {
				scalars[schema.UpdatedAt] = tx.NowFunc()
			}

			err := tx.Table(s.schema.Table).
				Where(clause.Eq{Column: clause.Column{Name: s.schema.Key()}, Value: id}).
				Updates(scalars).Error
			if err != nil {
				return err
			}
		}

		return s.updateRelations(tx, id, relations)
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("resource", s.schema.Name).Str("id", id).Msg("entry updated")

	return s.Fetch(db, id)
}

// Remove detaches every relation according to its nature, drops the links
// other rows of the same table hold on it, deletes the row and returns the
// representation it had before.
func (s *Service) Remove(db *gorm.DB, id string) (Record, error) {
	prior, err := s.Fetch(db, id)
	if err != nil {
		return nil, err
	}

	empty := make(map[string]any, len(s.schema.Relations))
	for _, r := range s.schema.Relations {
		empty[r.Alias] = r.Empty()
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.updateRelations(tx, id, empty); err != nil {
			return err
		}

		if err := s.detachInbound(tx, id); err != nil {
			return err
		}

		result := tx.Exec("DELETE FROM ? WHERE ? = ?",
			clause.Table{Name: s.schema.Table}, clause.Column{Name: s.schema.Key()}, id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("resource", s.schema.Name).Str("id", id).Msg("entry removed")

	return prior, nil
}

// Search matches the sanitized _q text against numeric, boolean and text
// columns. All matches are OR-combined; _sort, _start and _limit apply.
func (s *Service) Search(db *gorm.DB, params url.Values) ([]Record, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	text := search.Sanitize(params.Get(query.ParamSearch))

	page := url.Values{}
	for _, key := range []string{query.ParamSort, query.ParamStart, query.ParamLimit} {
		if v, ok := params[key]; ok {
			page[key] = v
		}
	}

	filters, err := query.Parse(s.schema, page)
	if err != nil {
		return nil, err
	}

	relations, err := s.schema.Populate(nil)
	if err != nil {
		return nil, err
	}

	conditions := search.Conditions(s.schema, s.text, text)
	if len(conditions) == 0 {
		return []Record{}, nil
	}

	var rows []map[string]any

	tx := filters.ApplyPage(db.Table(s.schema.Table).Where(clause.Or(conditions...)))
	if err = tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	return s.records(db, rows, relations)
}

func (s *Service) exists(tx *gorm.DB, id string) error {
	var n int64

	err := tx.Table(s.schema.Table).
		Where(clause.Eq{Column: clause.Column{Name: s.schema.Key()}, Value: id}).
		Count(&n).Error
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// IsNotFound reports whether err means the entry does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
