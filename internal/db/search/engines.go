package search

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MySQL matches with MATCH(...) AGAINST(... IN BOOLEAN MODE) on a FULLTEXT index.
type MySQL struct{}

// Postgres matches the concatenated tsvector of the columns against a tsquery.
type Postgres struct{}

// SQLite matches with LIKE, sqlite has no full-text operator without FTS tables.
type SQLite struct{}

// Name implements TextSearch.
func (MySQL) Name() string { return EngineMySQL }

// Expression implements TextSearch.
func (MySQL) Expression(columns []string, text string) clause.Expression {
	return match{columns: columns, text: "*" + text + "*"}
}

// Migrate creates the FULLTEXT index MATCH requires.
func (MySQL) Migrate(db *gorm.DB, table string, columns []string) error {
	if len(columns) == 0 {
		return nil
	}

	name := indexName(table)
	if db.Migrator().HasIndex(table, name) {
		return nil
	}

	cols := make([]any, 0, len(columns)+2) //nolint:mnd
	cols = append(cols, clause.Column{Name: name}, clause.Table{Name: table})

	placeholders := make([]string, len(columns))
	for i, c := range columns {
		placeholders[i] = "?"
		cols = append(cols, clause.Column{Name: c})
	}

	return db.Exec("CREATE FULLTEXT INDEX ? ON ? ("+strings.Join(placeholders, ",")+")", cols...).Error
}

// Name implements TextSearch.
func (Postgres) Name() string { return EnginePostgres }

// Expression implements TextSearch.
func (Postgres) Expression(columns []string, text string) clause.Expression {
	return tsMatch{columns: columns, text: text}
}

// Migrate is a no-op, the expression works without an index.
func (Postgres) Migrate(_ *gorm.DB, _ string, _ []string) error { return nil }

// Name implements TextSearch.
func (SQLite) Name() string { return EngineSQLite }

// Expression implements TextSearch.
func (SQLite) Expression(columns []string, text string) clause.Expression {
	likes := make([]clause.Expression, 0, len(columns))
	for _, c := range columns {
		likes = append(likes, clause.Like{Column: clause.Column{Name: c}, Value: "%" + text + "%"})
	}

	return clause.Or(likes...)
}

// Migrate is a no-op for sqlite.
func (SQLite) Migrate(_ *gorm.DB, _ string, _ []string) error { return nil }

type match struct {
	columns []string
	text    string
}

// Build writes MATCH(`a`,`b`) AGAINST(? IN BOOLEAN MODE).
func (m match) Build(builder clause.Builder) {
	_, _ = builder.WriteString("MATCH(")

	for i, c := range m.columns {
		if i > 0 {
			_ = builder.WriteByte(',')
		}

		builder.WriteQuoted(clause.Column{Name: c})
	}

	_, _ = builder.WriteString(") AGAINST(")
	builder.AddVar(builder, m.text)
	_, _ = builder.WriteString(" IN BOOLEAN MODE)")
}

type tsMatch struct {
	columns []string
	text    string
}

// Build writes to_tsvector(coalesce("a",'')) || ... @@ plainto_tsquery(?).
func (m tsMatch) Build(builder clause.Builder) {
	_ = builder.WriteByte('(')

	for i, c := range m.columns {
		if i > 0 {
			_, _ = builder.WriteString(" || ")
		}

		_, _ = builder.WriteString("to_tsvector(coalesce(")
		builder.WriteQuoted(clause.Column{Name: c})
		_, _ = builder.WriteString(",''))")
	}

	_, _ = builder.WriteString(") @@ plainto_tsquery(")
	builder.AddVar(builder, m.text)
	_ = builder.WriteByte(')')
}

func indexName(table string) string {
	return fmt.Sprintf("idx_%s_search", table)
}
