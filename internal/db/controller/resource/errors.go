package resource

import (
	"errors"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/schema"
)

var (
	// ErrNotFound is returned when an identifier does not resolve to a row.
	ErrNotFound = errors.New("entry not found")

	// ErrValidation is matched by every rejected field value.
	ErrValidation = schema.ErrValidation

	// ErrDBNil is returned when the storage handle is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrIDEmpty is returned for an empty identifier.
	ErrIDEmpty = errors.New("identifier cannot be empty")
)
