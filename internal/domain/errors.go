package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrBadRequest    = errors.New("bad request")
	// ErrUnavailable marks transient storage failures; the call may be retried.
	ErrUnavailable = errors.New("temporarily unavailable")
)

// FieldError is one rule violation at a record path such as
// "Names[0].Language". Kind classifies it for API clients and audit.
type FieldError struct {
	Field   string
	Message string
	Kind    string
}

func (f FieldError) String() string {
	if f.Kind == "" {
		return fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return fmt.Sprintf("%s: %s [%s]", f.Field, f.Message, f.Kind)
}

// ValidationError carries every violation found in a record or request.
type ValidationError struct {
	Errors []FieldError
}

// Error names the single violation, or summarises many by kind:
// "validation: 3 errors (DuplicateName x2, UnknownReferenceCode)".
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation: " + e.Errors[0].String()
	}
	counts := e.CountByKind()
	if len(counts) == 0 {
		return fmt.Sprintf("validation: %d errors", len(e.Errors))
	}

	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for i, k := range kinds {
		if n := counts[k]; n > 1 {
			kinds[i] = fmt.Sprintf("%s x%d", k, n)
		}
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(kinds, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// CountByKind tallies the classified violations. Unclassified ones are left out.
func (e *ValidationError) CountByKind() map[string]int {
	counts := make(map[string]int)
	for _, f := range e.Errors {
		if f.Kind != "" {
			counts[f.Kind]++
		}
	}
	return counts
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
