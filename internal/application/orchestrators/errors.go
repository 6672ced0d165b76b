package orchestrators

import (
	"errors"
	"strings"
)

// Sentinel errors shared by the orchestrators. Handlers map these onto
// HTTP status codes.
var (
	// ErrNotFound covers both missing entities and cross-parent references
	// (a date preference that belongs to a different event, for example).
	ErrNotFound = errors.New("not found")

	// ErrInvalidState means the operation is not allowed in the entity's
	// current lifecycle state.
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict surfaces store uniqueness violations.
	ErrConflict = errors.New("conflict")

	// ErrForbidden means the session identity may not act on the entity.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError aggregates the names of fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

// NewValidationError builds a ValidationError for the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
