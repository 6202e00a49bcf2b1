package validation

import (
	"slices"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// RequirementMode tells how language coverage is enforced for one record.
type RequirementMode int

const (
	// Unconstrained skips every language-coverage check.
	Unconstrained RequirementMode = iota
	// RequireNone runs coverage checks with no mandatory language.
	RequireNone
	// RequireSet makes every listed language mandatory.
	RequireSet
)

func (m RequirementMode) String() string {
	switch m {
	case Unconstrained:
		return "Unconstrained"
	case RequireNone:
		return "RequireNone"
	case RequireSet:
		return "RequireSet"
	}
	return "Unknown"
}

// RequiredLanguages is the derived set of languages whose localized content
// must be present in a submission.
type RequiredLanguages struct {
	mode  RequirementMode
	langs []string
}

// NoLanguageCheck returns the Unconstrained requirement.
func NoLanguageCheck() RequiredLanguages { return RequiredLanguages{mode: Unconstrained} }

// RequireLanguages returns a RequireSet requirement, or RequireNone for an
// empty list.
func RequireLanguages(langs ...string) RequiredLanguages {
	langs = domain.UnionLanguages(langs)
	if len(langs) == 0 {
		return RequiredLanguages{mode: RequireNone}
	}
	return RequiredLanguages{mode: RequireSet, langs: langs}
}

func (r RequiredLanguages) Mode() RequirementMode { return r.mode }

// IsUnconstrained reports whether coverage checks are skipped.
func (r RequiredLanguages) IsUnconstrained() bool { return r.mode == Unconstrained }

// Languages returns the mandatory languages in sorted order.
func (r RequiredLanguages) Languages() []string { return slices.Clone(r.langs) }

// ResolveRequiredLanguages derives the mandatory languages from the current
// and previously published available languages. previous is nil for a new
// record. hint lists the languages the caller submitted required-field
// content in; only its emptiness matters.
func ResolveRequiredLanguages(current, previous, hint []string) RequiredLanguages {
	current = domain.UnionLanguages(current)
	previous = domain.UnionLanguages(previous)

	newlyAdded := difference(current, previous)
	removing := len(difference(previous, current)) > 0
	adding := len(newlyAdded) > 0

	switch {
	case len(hint) == 0:
		return RequireLanguages(newlyAdded...)
	case !removing && !adding:
		return NoLanguageCheck()
	default:
		return RequireLanguages(current...)
	}
}

// NewlyAddedLanguages returns the languages of current missing from previous.
func NewlyAddedLanguages(current, previous []string) []string {
	return difference(domain.UnionLanguages(current), domain.UnionLanguages(previous))
}

func difference(a, b []string) []string {
	var out []string
	for _, x := range a {
		if !slices.Contains(b, x) {
			out = append(out, x)
		}
	}
	return out
}

// checkAvailableLanguages reports languages used by a localized collection
// but absent from the record's available languages.
func checkAvailableLanguages(path Path, available []string, used ...[]string) []Violation {
	var out []Violation
	for _, lang := range domain.UnionLanguages(used...) {
		if !slices.Contains(available, lang) {
			out = append(out, uniqueViolation(path, KindMissingRequiredLanguage,
				"language "+lang+" is used but not listed in available languages"))
		}
	}
	return out
}
