package validation

import (
	"fmt"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// checkAccessibility validates the accessibility classifications of a web
// channel. Every language with a URL and every required language needs a
// classification.
func checkAccessibility(path Path, urls domain.LocalizedList, classes []domain.AccessibilityClassification, required RequiredLanguages) []Violation {
	var out []Violation
	for i, c := range classes {
		out = append(out, checkAccessibilityClass(path.Index(i), c)...)
	}

	covered := make(map[string]bool, len(classes))
	for _, c := range classes {
		covered[c.Language] = true
	}
	for _, lang := range domain.UnionLanguages(urls.Languages(), required.Languages()) {
		if !covered[lang] {
			out = append(out, violation(path, KindMissingRequiredLanguage,
				fmt.Sprintf("accessibility classification missing for language %s", lang)))
		}
	}
	return out
}

func checkAccessibilityClass(path Path, c domain.AccessibilityClassification) []Violation {
	if !c.Level.IsValid() {
		return []Violation{violation(path.Field("AccessibilityClassificationLevel"), KindStructuralConflict,
			fmt.Sprintf("unknown classification level %q", c.Level))}
	}

	var out []Violation
	conflict := func(field, msg string) {
		out = append(out, violation(path.Field(field), KindStructuralConflict, msg))
	}

	switch c.Level {
	case domain.ClassificationFullyCompliant, domain.ClassificationPartiallyCompliant:
		if c.WCAGLevel == "" {
			conflict("WcagLevel", fmt.Sprintf("WCAG level is required when %s", c.Level))
		}
		if c.StatementURL == "" {
			conflict("AccessibilityStatementWebPage", fmt.Sprintf("statement url is required when %s", c.Level))
		}
		if c.StatementName == "" {
			conflict("AccessibilityStatementWebPageName", fmt.Sprintf("statement name is required when %s", c.Level))
		}
	case domain.ClassificationNonCompliant:
		if c.WCAGLevel != "" {
			conflict("WcagLevel", "WCAG level is not allowed when NonCompliant")
		}
		if c.StatementURL == "" {
			conflict("AccessibilityStatementWebPage", "statement url is required when NonCompliant")
		}
		if c.StatementName == "" {
			conflict("AccessibilityStatementWebPageName", "statement name is required when NonCompliant")
		}
	case domain.ClassificationUnknown:
		if c.WCAGLevel != "" || c.StatementURL != "" || c.StatementName != "" {
			conflict("AccessibilityClassificationLevel",
				"WCAG level and statement are not allowed when Unknown")
		}
	}

	if c.WCAGLevel != "" && !c.WCAGLevel.IsValid() {
		conflict("WcagLevel", fmt.Sprintf("unknown WCAG level %q", c.WCAGLevel))
	}
	if c.StatementURL != "" && !isURL(c.StatementURL) {
		conflict("AccessibilityStatementWebPage", fmt.Sprintf("invalid url %q", c.StatementURL))
	}
	return out
}
