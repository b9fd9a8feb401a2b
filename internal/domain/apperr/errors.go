package apperr

import (
	"errors"
	"strings"
)

// Domain error taxonomy. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrReferenced         = errors.New("referenced by other records")
	ErrInvalidReference   = errors.New("referenced role or organization does not exist")
	ErrSetupIncomplete    = errors.New("database setup incomplete")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrSearchUnavailable  = errors.New("search index unavailable")
)

// ValidationError carries a user-safe message and optional per-field details.
// It matches ErrValidation via errors.Is.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, k+" "+v)
	}
	return e.Message + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a ValidationError with the given message.
func Invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// InvalidFields builds a ValidationError listing the offending fields.
func InvalidFields(msg string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}
