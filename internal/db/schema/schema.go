// Package schema holds the static descriptor of a resource: its table, scalar
// attributes and relations. The access layer works from the descriptor only,
// without reflecting over gorm models.
package schema

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

const (
	// DefaultPrimaryKey is used when a descriptor leaves PrimaryKey empty.
	DefaultPrimaryKey = "id"

	// CreatedAt and UpdatedAt are the timestamp keys of a record.
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

// Record is the representation of one entity handed to and from callers.
type Record map[string]any

// Schema describes one resource.
type Schema struct {
	Name       string      `yaml:"name"`
	Table      string      `yaml:"table"`
	PrimaryKey string      `yaml:"primaryKey,omitempty"`
	Timestamps bool        `yaml:"timestamps"`
	Attributes []Attribute `yaml:"attributes"`
	Relations  []Relation  `yaml:"relations"`
}

// Key returns the primary key column.
func (s *Schema) Key() string {
	if s.PrimaryKey == "" {
		return DefaultPrimaryKey
	}

	return s.PrimaryKey
}

// Validate checks the descriptor for duplicate names and relations
// without a usable storage form.
func (s *Schema) Validate() error {
	if s == nil {
		return errors.Wrap(ErrInvalidSchema, "schema is nil")
	}

	if s.Table == "" {
		return errors.Wrap(ErrInvalidSchema, "table is empty")
	}

	seen := map[string]bool{s.Key(): true}

	for _, a := range s.Attributes {
		if a.Name == "" || seen[a.Name] {
			return errors.Wrapf(ErrInvalidSchema, "attribute %q is empty or declared twice", a.Name)
		}

		if !a.Type.Known() {
			return errors.Wrapf(ErrInvalidSchema, "attribute %q has unknown type %q", a.Name, a.Type)
		}

		seen[a.Name] = true
	}

	for _, r := range s.Relations {
		if r.Alias == "" || seen[r.Alias] {
			return errors.Wrapf(ErrInvalidSchema, "relation %q is empty or declared twice", r.Alias)
		}

		if !r.Nature.Known() {
			return errors.Wrapf(ErrInvalidSchema, "relation %q has unknown nature %q", r.Alias, r.Nature)
		}

		if r.Target == "" || r.Storage() == StorageUnknown {
			return errors.Wrapf(ErrInvalidSchema, "relation %q (%s) lacks target or storage columns", r.Alias, r.Nature)
		}

		seen[r.Alias] = true
	}

	return nil
}

// Attribute looks up a scalar attribute by name.
func (s *Schema) Attribute(name string) (Attribute, bool) {
	for _, a := range s.Attributes {
		if a.Name == name {
			return a, true
		}
	}

	return Attribute{}, false
}

// Relation looks up a relation by alias.
func (s *Schema) Relation(alias string) (Relation, bool) {
	for _, r := range s.Relations {
		if r.Alias == alias {
			return r, true
		}
	}

	return Relation{}, false
}

// AttributesWhere returns the attributes whose type satisfies keep.
func (s *Schema) AttributesWhere(keep func(Type) bool) []Attribute {
	var out []Attribute

	for _, a := range s.Attributes {
		if keep(a.Type) {
			out = append(out, a)
		}
	}

	return out
}

// AutoPopulated returns the aliases loaded by default on fetch.
func (s *Schema) AutoPopulated() []string {
	var out []string

	for _, r := range s.Relations {
		if r.AutoPopulate {
			out = append(out, r.Alias)
		}
	}

	return out
}

// Split separates a write payload into coerced scalar columns and raw
// relation values. The primary key and timestamps are dropped, unknown
// keys are rejected.
func (s *Schema) Split(values map[string]any) (map[string]any, map[string]any, error) {
	scalars := make(map[string]any)
	relations := make(map[string]any)

	for key, value := range values {
		switch key {
		case s.Key(), CreatedAt, UpdatedAt:
			continue
		}

		if r, ok := s.Relation(key); ok {
			relations[r.Alias] = value
			continue
		}

		a, ok := s.Attribute(key)
		if !ok {
			return nil, nil, invalid(key, "unknown field")
		}

		coerced, err := a.Coerce(value)
		if err != nil {
			return nil, nil, err
		}

		scalars[a.ColumnName()] = coerced
	}

	return scalars, relations, nil
}

// RequireAll reports the first required attribute missing from scalar columns.
func (s *Schema) RequireAll(scalars map[string]any) error {
	for _, a := range s.Attributes {
		if !a.Required {
			continue
		}

		if v, ok := scalars[a.ColumnName()]; !ok || v == nil {
			return invalid(a.Name, "is required")
		}
	}

	return nil
}

// Populate resolves a populate list. A nil list selects the auto-populated relations.
func (s *Schema) Populate(aliases []string) ([]Relation, error) {
	if aliases == nil {
		aliases = s.AutoPopulated()
	}

	out := make([]Relation, 0, len(aliases))

	for _, alias := range aliases {
		r, ok := s.Relation(alias)
		if !ok {
			return nil, invalid(alias, "is not a relation of %s", s.Name)
		}

		out = append(out, r)
	}

	return out, nil
}

// IDs extracts target identifiers from a relation value. Accepted shapes are
// an id, an object carrying the target key, nil, or a list of those.
func (r Relation) IDs(value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}

	list, isList := value.([]any)
	if !isList {
		if ids, ok := value.([]string); ok {
			list = make([]any, len(ids))
			for i, id := range ids {
				list[i] = id
			}

			isList = true
		}
	}

	if isList && !r.Nature.Multi() {
		return nil, invalid(r.Alias, "%s relation expects a single value", r.Nature)
	}

	if !isList {
		list = []any{value}
	}

	ids := make([]string, 0, len(list))

	for _, item := range list {
		if item == nil {
			continue
		}

		if obj, ok := item.(map[string]any); ok {
			item = obj[r.Key()]
		}

		id, err := cast.ToStringE(plain(item))
		if err != nil || id == "" {
			return nil, invalid(r.Alias, "%s is not a valid identifier", fmt.Sprint(item))
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// ID renders a driver value as a record identifier.
func ID(v any) string {
	return cast.ToString(plain(v))
}
