package schema

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// Type is the scalar type of an attribute.
type Type string

const (
	String      Type = "string"
	Text        Type = "text"
	Enumeration Type = "enumeration"
	Integer     Type = "integer"
	BigInteger  Type = "biginteger"
	Decimal     Type = "decimal"
	Float       Type = "float"
	Boolean     Type = "boolean"
	Date        Type = "date"
	DateTime    Type = "datetime"
)

// Attribute declares one scalar field of an entity.
type Attribute struct {
	Name string `yaml:"name"`
	Type Type   `yaml:"type"`
	// Column defaults to Name.
	Column    string   `yaml:"column,omitempty"`
	Required  bool     `yaml:"required,omitempty"`
	MaxLength int      `yaml:"maxLength,omitempty"`
	Enum      []string `yaml:"enum,omitempty"`
}

var validate = validator.New() //nolint:gochecknoglobals

// ColumnName returns the storage column of the attribute.
func (a Attribute) ColumnName() string {
	if a.Column == "" {
		return a.Name
	}

	return a.Column
}

// Textual reports whether the attribute takes part in full-text search.
func (t Type) Textual() bool {
	return t == String || t == Text
}

// Numeric reports whether the attribute holds a number.
func (t Type) Numeric() bool {
	switch t {
	case Integer, BigInteger, Decimal, Float:
		return true
	default:
		return false
	}
}

// Known reports whether t is a supported scalar type.
func (t Type) Known() bool {
	switch t {
	case String, Text, Enumeration, Integer, BigInteger, Decimal, Float, Boolean, Date, DateTime:
		return true
	default:
		return false
	}
}

// Coerce converts an incoming value (JSON body or query string) to the
// attribute type and checks the declared constraints. nil stays nil.
func (a Attribute) Coerce(v any) (any, error) {
	v = plain(v)
	if v == nil {
		if a.Required {
			return nil, invalid(a.Name, "is required")
		}

		return nil, nil //nolint:nilnil
	}

	switch a.Type {
	case String, Text, Enumeration:
		return a.coerceString(v)
	case Integer, BigInteger:
		if f, ok := v.(float64); ok && f != math.Trunc(f) {
			return nil, invalid(a.Name, "%v is not an integer", v)
		}

		i, err := cast.ToInt64E(v)
		if err != nil {
			return nil, invalid(a.Name, "%v is not an integer", v)
		}

		return i, nil
	case Decimal, Float:
		f, err := cast.ToFloat64E(v)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, invalid(a.Name, "%v is not a number", v)
		}

		return f, nil
	case Boolean:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return nil, invalid(a.Name, "%v is not a boolean", v)
		}

		return b, nil
	case Date, DateTime:
		t, err := cast.ToTimeE(v)
		if err != nil {
			return nil, invalid(a.Name, "%v is not a date", v)
		}

		if a.Type == Date {
			return t.UTC().Truncate(24 * time.Hour), nil //nolint:mnd
		}

		return t.UTC(), nil
	default:
		return nil, invalid(a.Name, "unsupported type %q", a.Type)
	}
}

func (a Attribute) coerceString(v any) (any, error) {
	switch v.(type) {
	case map[string]any, []any:
		return nil, invalid(a.Name, "expects a %s", a.Type)
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, invalid(a.Name, "expects a %s", a.Type)
	}

	var rules []string

	if a.Required {
		rules = append(rules, "required")
	}

	if a.MaxLength > 0 {
		rules = append(rules, fmt.Sprintf("max=%d", a.MaxLength))
	}

	if a.Type == Enumeration && len(a.Enum) > 0 {
		rules = append(rules, "oneof="+strings.Join(a.Enum, " "))
	}

	if len(rules) > 0 {
		if err := validate.Var(s, strings.Join(rules, ",")); err != nil {
			return nil, invalid(a.Name, "%q violates %s", s, strings.Join(rules, ","))
		}
	}

	return s, nil
}

// Normalize converts a value read back from the driver to the attribute type.
// Drivers differ in what they hand out for the same column (int64 for
// sqlite booleans, []byte for mysql decimals), records must not.
func (a Attribute) Normalize(v any) any {
	v = plain(v)
	if v == nil {
		return nil
	}

	switch a.Type {
	case String, Text, Enumeration:
		return cast.ToString(v)
	case Integer, BigInteger:
		return cast.ToInt64(v)
	case Decimal, Float:
		return cast.ToFloat64(v)
	case Boolean:
		return cast.ToBool(v)
	case Date, DateTime:
		if t, err := cast.ToTimeE(v); err == nil {
			return t
		}
	}

	return v
}

// plain strips driver wrappers so cast sees basic types.
func plain(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case *string:
		if t == nil {
			return nil
		}

		return *t
	default:
		return v
	}
}
