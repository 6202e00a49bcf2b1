// Package validation implements the rule engine that checks submitted
// registry records before they are accepted. Every check is a plain function
// returning the violations it found; composites concatenate child results and
// nothing stops at the first problem.
package validation

import (
	"errors"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// ErrContractViolation is returned when the engine is called with an invalid
// collaborator graph (a nil lookup port, an unknown record variant). It is an
// integration error and is never recorded as a violation.
var ErrContractViolation = errors.New("validation: contract violation")

// Kind classifies a violation.
type Kind string

const (
	KindMissingRequiredLanguage        Kind = "MissingRequiredLanguage"
	KindMissingRequiredLanguageAndType Kind = "MissingRequiredLanguageAndType"
	KindUnknownReferenceCode           Kind = "UnknownReferenceCode"
	KindInvalidStateTransition         Kind = "InvalidStateTransition"
	KindStructuralConflict             Kind = "StructuralConflict"
	KindCountExceeded                  Kind = "CountExceeded"
	KindDuplicateName                  Kind = "DuplicateName"
	KindRecordNotFound                 Kind = "RecordNotFound"
	KindVisibilityDenied               Kind = "VisibilityDenied"
)

func (k Kind) String() string { return string(k) }

// Violation is one broken rule attached to a property path.
type Violation struct {
	Path    string
	Kind    Kind
	Message string

	// Unique suppresses the violation when the report already holds the same
	// (Path, Message) pair.
	Unique bool
}

func violation(path Path, kind Kind, msg string) Violation {
	return Violation{Path: string(path), Kind: kind, Message: msg}
}

func uniqueViolation(path Path, kind Kind, msg string) Violation {
	return Violation{Path: string(path), Kind: kind, Message: msg, Unique: true}
}

// Report is the aggregate result of one validation pass: an ordered multimap
// from property path to messages.
type Report struct {
	violations []Violation
	paths      []string
	byPath     map[string][]int
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{byPath: make(map[string][]int)}
}

// Add appends violations in order. A violation marked Unique is dropped when
// an identical (Path, Message) pair is already present.
func (r *Report) Add(vs ...Violation) {
	for _, v := range vs {
		if v.Unique && r.has(v.Path, v.Message) {
			continue
		}
		idx, ok := r.byPath[v.Path]
		if !ok {
			r.paths = append(r.paths, v.Path)
		}
		r.byPath[v.Path] = append(idx, len(r.violations))
		r.violations = append(r.violations, v)
	}
}

func (r *Report) has(path, msg string) bool {
	for _, i := range r.byPath[path] {
		if r.violations[i].Message == msg {
			return true
		}
	}
	return false
}

// Valid reports whether no violation was recorded.
func (r *Report) Valid() bool { return len(r.violations) == 0 }

// Len returns the number of recorded violations.
func (r *Report) Len() int { return len(r.violations) }

// Violations returns the violations in insertion order.
func (r *Report) Violations() []Violation {
	out := make([]Violation, len(r.violations))
	copy(out, r.violations)
	return out
}

// Paths returns the distinct paths in order of first appearance.
func (r *Report) Paths() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Messages returns the messages recorded for path.
func (r *Report) Messages(path string) []string {
	idx := r.byPath[path]
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.violations[i].Message)
	}
	return out
}

// CountKind returns how many violations of kind were recorded.
func (r *Report) CountKind(kind Kind) int {
	n := 0
	for _, v := range r.violations {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

// FieldErrors flattens the report grouped by path.
func (r *Report) FieldErrors() []domain.FieldError {
	out := make([]domain.FieldError, 0, len(r.violations))
	for _, p := range r.paths {
		for _, i := range r.byPath[p] {
			v := r.violations[i]
			out = append(out, domain.FieldError{Field: v.Path, Message: v.Message, Kind: v.Kind.String()})
		}
	}
	return out
}

// Err returns nil for a valid report and a *domain.ValidationError otherwise.
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	return domain.NewValidationErrors(r.FieldErrors())
}
