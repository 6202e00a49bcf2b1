package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// LocalizedRule configures a coverage check of one localized collection.
type LocalizedRule struct {
	Path     Path
	Required RequiredLanguages
	// Types, when set, must each be present in every required language.
	Types []string
	// Available, when set, must each appear at least once in a non-empty
	// collection regardless of Types.
	Available []string
	Unique    bool
}

// CheckLocalized checks a collection against the required and available
// languages. An empty collection with required languages yields a single
// violation naming all of them; otherwise each missing language (or type and
// language pair) is reported separately.
func CheckLocalized(items domain.LocalizedList, rule LocalizedRule) []Violation {
	if rule.Required.IsUnconstrained() {
		return nil
	}

	add := violation
	if rule.Unique {
		add = uniqueViolation
	}

	required := rule.Required.Languages()
	var out []Violation

	if len(required) > 0 && len(items) == 0 {
		if len(rule.Types) > 0 {
			out = append(out, add(rule.Path, KindMissingRequiredLanguageAndType, fmt.Sprintf(
				"types %s are required in languages %s",
				strings.Join(rule.Types, ", "), strings.Join(required, ", "))))
		} else {
			out = append(out, add(rule.Path, KindMissingRequiredLanguage, fmt.Sprintf(
				"required in languages %s", strings.Join(required, ", "))))
		}
	}

	if len(items) > 0 {
		for _, lang := range required {
			if len(rule.Types) == 0 {
				if !items.HasLanguage(lang) {
					out = append(out, add(rule.Path, KindMissingRequiredLanguage,
						fmt.Sprintf("missing required language %s", lang)))
				}
				continue
			}
			for _, typ := range rule.Types {
				if !items.HasTypeAndLanguage(typ, lang) {
					out = append(out, add(rule.Path, KindMissingRequiredLanguageAndType,
						fmt.Sprintf("missing %s in required language %s", typ, lang)))
				}
			}
		}

		for _, lang := range domain.UnionLanguages(rule.Available) {
			if !items.HasLanguage(lang) {
				out = append(out, add(rule.Path, KindMissingRequiredLanguage,
					fmt.Sprintf("missing value for available language %s", lang)))
			}
		}
	}

	return out
}

// checkItemTypes reports items whose type is not one of allowed.
func checkItemTypes(path Path, items domain.LocalizedList, allowed ...string) []Violation {
	var out []Violation
	for i, it := range items {
		if !slices.Contains(allowed, it.Type) {
			out = append(out, violation(path.Index(i).Field("Type"), KindStructuralConflict,
				fmt.Sprintf("type %q is not allowed, expected one of %s", it.Type, strings.Join(allowed, ", "))))
		}
	}
	return out
}
