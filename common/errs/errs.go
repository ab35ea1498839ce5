// Package errs defines the error taxonomy shared by repositories, services
// and HTTP handlers. Repositories return these sentinels so tenancy checks
// surface as 404s instead of leaking row existence across users.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers both a missing row and a row owned by another
	// user. Handlers map it to 404.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized covers missing or invalid credentials. Handlers map
	// it to 401.
	ErrUnauthorized = errors.New("authentication required")
)

// ValidationError carries field-keyed messages for a 400 response body.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewValidation builds a single-field validation error.
func NewValidation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

// Add appends a message for a field, allocating the map on first use.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
