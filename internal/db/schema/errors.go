package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidSchema is returned by Validate for an inconsistent descriptor.
	ErrInvalidSchema = errors.New("invalid schema descriptor")
)

// ValidationError reports a field value rejected before it reaches the storage layer.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}

	return fmt.Sprintf("%s: field %q: %s", ErrValidation, e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) true for validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
