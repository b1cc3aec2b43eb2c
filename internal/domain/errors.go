package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling in the API layer.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
)

// NonFieldErrors is the violations key for rule failures that are not scoped
// to a single field (e.g. the single-active-root invariant).
const NonFieldErrors = "non_field_errors"

// NotFoundError indicates the target entity does not exist or is inactive.
// Inactive entities are indistinguishable from absent ones at every boundary,
// which keeps soft deletion invisible to normal traffic.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// Is allows errors.Is() to match against ErrNotFound
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError carries field-scoped violation reasons. The map is surfaced
// verbatim as the body of a 400 response, so callers can correct their input.
type ValidationError struct {
	Violations map[string][]string
}

// NewValidationError creates an empty validation error ready to collect violations.
func NewValidationError() *ValidationError {
	return &ValidationError{Violations: make(map[string][]string)}
}

// Add records a violation reason for a field (or NonFieldErrors).
func (e *ValidationError) Add(field, reason string) {
	e.Violations[field] = append(e.Violations[field], reason)
}

// HasViolations reports whether any violation was recorded.
func (e *ValidationError) HasViolations() bool { return len(e.Violations) > 0 }

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for field := range e.Violations {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Violations[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
