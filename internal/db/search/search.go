// Package search builds the free-text search predicate of a resource.
//
// The numeric and boolean matches are portable. The text match is
// delegated to a TextSearch strategy because every engine spells its
// native full-text operator differently.
package search

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/schema"
)

const (
	// EngineMySQL selects MATCH ... AGAINST.
	EngineMySQL = "mysql"
	// EnginePostgres selects tsvector/tsquery matching.
	EnginePostgres = "postgres"
	// EngineSQLite selects LIKE matching.
	EngineSQLite = "sqlite"
)

// ErrUnknownEngine is returned by ForEngine for an unsupported engine name.
var ErrUnknownEngine = errors.New("no text search strategy for engine")

var disallowed = regexp.MustCompile(`[^a-zA-Z0-9.\-\s]+`)

// TextSearch is the engine specific full-text predicate.
type TextSearch interface {
	// Name of the engine the strategy targets.
	Name() string
	// Expression matches text against any of the columns.
	Expression(columns []string, text string) clause.Expression
	// Migrate prepares indexes the expression relies on.
	Migrate(db *gorm.DB, table string, columns []string) error
}

// ForEngine returns the strategy registered for a gorm engine name.
func ForEngine(engine string) (TextSearch, error) {
	switch strings.ToLower(engine) {
	case EngineMySQL:
		return MySQL{}, nil
	case EnginePostgres, "pg", "postgresql":
		return Postgres{}, nil
	case EngineSQLite, "sqlite3":
		return SQLite{}, nil
	default:
		return nil, errors.Wrap(ErrUnknownEngine, engine)
	}
}

// Sanitize keeps ASCII letters, digits, dots, dashes and whitespace.
func Sanitize(text string) string {
	return disallowed.ReplaceAllString(text, "")
}

// Number reports whether the sanitized text reads as a finite number.
func Number(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}

	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i, true
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}

	return f, true
}

// Conditions returns the OR-able match clauses of a search on s. An empty
// result means the text cannot match anything.
func Conditions(s *schema.Schema, strategy TextSearch, text string) []clause.Expression {
	var out []clause.Expression

	if n, ok := Number(text); ok {
		for _, a := range s.AttributesWhere(schema.Type.Numeric) {
			out = append(out, clause.Eq{Column: clause.Column{Name: a.ColumnName()}, Value: n})
		}
	}

	if text == "true" || text == "false" {
		for _, a := range s.AttributesWhere(func(t schema.Type) bool { return t == schema.Boolean }) {
			out = append(out, clause.Eq{Column: clause.Column{Name: a.ColumnName()}, Value: text == "true"})
		}
	}

	if strings.TrimSpace(text) == "" {
		return out
	}

	columns := Columns(s)
	if len(columns) > 0 {
		out = append(out, strategy.Expression(columns, text))
	}

	return out
}

// Columns lists the string and text columns of s.
func Columns(s *schema.Schema) []string {
	attrs := s.AttributesWhere(schema.Type.Textual)
	out := make([]string, 0, len(attrs))

	for _, a := range attrs {
		out = append(out, a.ColumnName())
	}

	return out
}
