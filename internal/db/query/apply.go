package query

import (
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Expression renders the condition as a gorm clause. Column names are
// quoted by the dialect, values always travel as bind variables.
func (c Condition) Expression() clause.Expression {
	col := clause.Column{Name: c.Column}

	switch c.Operator {
	case Ne:
		return clause.Neq{Column: col, Value: c.Value}
	case Lt:
		return clause.Lt{Column: col, Value: c.Value}
	case Lte:
		return clause.Lte{Column: col, Value: c.Value}
	case Gt:
		return clause.Gt{Column: col, Value: c.Value}
	case Gte:
		return clause.Gte{Column: col, Value: c.Value}
	case In:
		return clause.IN{Column: col, Values: values(c.Value)}
	case Nin:
		return clause.Not(clause.IN{Column: col, Values: values(c.Value)})
	case Contains:
		return clause.Expr{
			SQL:  "LOWER(?) LIKE ?",
			Vars: []any{col, "%" + strings.ToLower(toString(c.Value)) + "%"},
		}
	case NContains:
		return clause.Expr{
			SQL:  "LOWER(?) NOT LIKE ?",
			Vars: []any{col, "%" + strings.ToLower(toString(c.Value)) + "%"},
		}
	case ContainsS:
		return clause.Like{Column: col, Value: "%" + toString(c.Value) + "%"}
	case NContainsS:
		return clause.Not(clause.Like{Column: col, Value: "%" + toString(c.Value) + "%"})
	case Null:
		if isNull, _ := c.Value.(bool); isNull {
			return clause.Eq{Column: col, Value: nil}
		}

		return clause.Neq{Column: col, Value: nil}
	default:
		return clause.Eq{Column: col, Value: c.Value}
	}
}

// ApplyWhere adds the where clauses only, as used by count.
func (f Filters) ApplyWhere(tx *gorm.DB) *gorm.DB {
	for _, c := range f.Where {
		tx = tx.Where(c.Expression())
	}

	return tx
}

// ApplyPage adds ordering, offset and limit.
func (f Filters) ApplyPage(tx *gorm.DB) *gorm.DB {
	for _, s := range f.Sort {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc})
	}

	switch {
	case f.Limit >= 0:
		tx = tx.Limit(f.Limit)
	case f.Start > 0:
		// sqlite and mysql reject OFFSET without LIMIT
		tx = tx.Limit(math.MaxInt32)
	}

	if f.Start > 0 {
		tx = tx.Offset(f.Start)
	}

	return tx
}

// Apply adds every part of the filters.
func (f Filters) Apply(tx *gorm.DB) *gorm.DB {
	return f.ApplyPage(f.ApplyWhere(tx))
}

func values(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}

	return []any{v}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return ""
}
