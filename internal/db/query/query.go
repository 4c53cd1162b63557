// Package query translates REST query parameters into filter criteria and
// applies them to a gorm statement.
//
// Supported parameters:
//
//	_sort=name:ASC,calories:DESC
//	_start=20
//	_limit=10        (-1 or absent for no limit)
//	field=value      (same as field_eq)
//	field_<op>=value (ne, lt, lte, gt, gte, in, nin, contains, ncontains, containss, ncontainss, null)
//
// Other keys starting with an underscore are reserved and ignored here.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/schema"
)

const (
	// ParamSearch carries the free-text search input.
	ParamSearch = "_q"
	// ParamSort carries the sort order, e.g. "name:ASC".
	ParamSort = "_sort"
	// ParamStart carries the offset.
	ParamStart = "_start"
	// ParamLimit carries the page size.
	ParamLimit = "_limit"
	// ParamPopulate carries an explicit comma separated populate list.
	ParamPopulate = "_populate"

	// NoLimit disables the limit clause.
	NoLimit = -1
)

// Operator is a comparison applied by a Condition.
type Operator string

const (
	Eq         Operator = "eq"
	Ne         Operator = "ne"
	Lt         Operator = "lt"
	Lte        Operator = "lte"
	Gt         Operator = "gt"
	Gte        Operator = "gte"
	In         Operator = "in"
	Nin        Operator = "nin"
	Contains   Operator = "contains"
	NContains  Operator = "ncontains"
	ContainsS  Operator = "containss"
	NContainsS Operator = "ncontainss"
	Null       Operator = "null"
)

var operators = []Operator{ //nolint:gochecknoglobals
	NContainsS, ContainsS, NContains, Contains, Lte, Gte, Nin, Null, Eq, Ne, Lt, Gt, In,
}

// Condition is one where clause on a column.
type Condition struct {
	Field    string
	Column   string
	Operator Operator
	Value    any
}

// Sort orders by one column.
type Sort struct {
	Column string
	Desc   bool
}

// Filters is the storage-neutral form of a query.
type Filters struct {
	Where []Condition
	Sort  []Sort
	Start int
	Limit int
}

// Parse validates params against the schema and builds filters. Keys are
// processed in sorted order so identical queries produce identical SQL.
func Parse(s *schema.Schema, params url.Values) (Filters, error) {
	f := Filters{Limit: NoLimit}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, key := range keys {
		values := params[key]
		if len(values) == 0 {
			continue
		}

		var err error

		switch {
		case key == ParamSort:
			f.Sort, err = parseSort(s, values[len(values)-1])
		case key == ParamStart:
			f.Start, err = parseInt(key, values[len(values)-1])
		case key == ParamLimit:
			f.Limit, err = parseInt(key, values[len(values)-1])
		case strings.HasPrefix(key, "_"):
			continue
		default:
			var c Condition

			c, err = parseCondition(s, key, values)
			f.Where = append(f.Where, c)
		}

		if err != nil {
			return Filters{}, err
		}
	}

	if f.Start < 0 {
		return Filters{}, &schema.ValidationError{Field: ParamStart, Reason: "must not be negative"}
	}

	if f.Limit < 0 {
		f.Limit = NoLimit
	}

	return f, nil
}

// Populate reads the explicit populate list. nil means "use the defaults".
func Populate(params url.Values) []string {
	raw, ok := params[ParamPopulate]
	if !ok {
		return nil
	}

	out := []string{}

	for _, v := range raw {
		for _, alias := range strings.Split(v, ",") {
			if alias = strings.TrimSpace(alias); alias != "" {
				out = append(out, alias)
			}
		}
	}

	return out
}

func parseInt(key, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &schema.ValidationError{Field: key, Reason: raw + " is not an integer"}
	}

	return n, nil
}

func parseSort(s *schema.Schema, raw string) ([]Sort, error) {
	var out []Sort

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field, dir, _ := strings.Cut(part, ":")

		column, _, err := resolve(s, field)
		if err != nil {
			return nil, err
		}

		switch strings.ToUpper(strings.TrimSpace(dir)) {
		case "", "ASC":
			out = append(out, Sort{Column: column})
		case "DESC":
			out = append(out, Sort{Column: column, Desc: true})
		default:
			return nil, &schema.ValidationError{Field: ParamSort, Reason: "unknown direction " + dir}
		}
	}

	return out, nil
}

func parseCondition(s *schema.Schema, key string, values []string) (Condition, error) {
	field, op := key, Eq

	for _, candidate := range operators {
		if suffix := "_" + string(candidate); strings.HasSuffix(key, suffix) {
			// a field may itself end in an operator-like suffix
			if _, _, err := resolve(s, key); err == nil {
				break
			}

			field, op = strings.TrimSuffix(key, suffix), candidate

			break
		}
	}

	column, coerce, err := resolve(s, field)
	if err != nil {
		return Condition{}, err
	}

	c := Condition{Field: field, Column: column, Operator: op}

	switch op {
	case In, Nin:
		list := make([]any, 0, len(values))

		for _, raw := range values {
			v, err := coerce(raw)
			if err != nil {
				return Condition{}, err
			}

			list = append(list, v)
		}

		c.Value = list
	case Null:
		b, err := cast.ToBoolE(values[len(values)-1])
		if err != nil {
			return Condition{}, &schema.ValidationError{Field: key, Reason: "expects true or false"}
		}

		c.Value = b
	case Contains, NContains, ContainsS, NContainsS:
		c.Value = values[len(values)-1]
	default:
		v, err := coerce(values[len(values)-1])
		if err != nil {
			return Condition{}, err
		}

		c.Value = v
	}

	return c, nil
}

// resolve maps a field name to its column and a value coercer. Accepted are
// the primary key, scalar attributes and relations stored in a local column.
func resolve(s *schema.Schema, field string) (string, func(string) (any, error), error) {
	if field == s.Key() {
		return field, func(v string) (any, error) { return v, nil }, nil
	}

	if a, ok := s.Attribute(field); ok {
		return a.ColumnName(), func(v string) (any, error) { return a.Coerce(v) }, nil
	}

	if r, ok := s.Relation(field); ok && r.Storage() == schema.StorageColumn {
		return r.Column, func(v string) (any, error) { return v, nil }, nil
	}

	return "", nil, &schema.ValidationError{Field: field, Reason: "unknown or unsortable field"}
}
