// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Business-rule outcomes. These are resolved inside the services and mapped
// to responses at the HTTP boundary; infrastructure failures are wrapped and
// propagated instead.
var (
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrDuplicateItemCode = errors.New("item already exists")

	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNotAuthorized = errors.New("not authorized")
)

// ValidationError carries one human-readable message per violated field.
// Every violated field is reported, not just the first.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add calls.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a violation for field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// OrNil collapses an empty ValidationError to nil so callers can return it
// directly from validation routines.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
