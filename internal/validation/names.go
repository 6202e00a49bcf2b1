package validation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// checkDisplayNameTypes requires a name of the chosen display type in each
// language that declares one.
func checkDisplayNameTypes(path Path, names, display domain.LocalizedList) []Violation {
	var out []Violation
	for i, d := range display {
		if d.Type != domain.NameTypeName && d.Type != domain.NameTypeAlternateName {
			out = append(out, violation(path.Index(i).Field("Type"), KindStructuralConflict,
				fmt.Sprintf("unknown display name type %q", d.Type)))
			continue
		}
		if !names.HasTypeAndLanguage(d.Type, d.Language) {
			out = append(out, violation(path.Index(i), KindMissingRequiredLanguageAndType,
				fmt.Sprintf("display name type %s has no %s name in language %s", d.Type, d.Type, d.Language)))
		}
	}
	return out
}

// checkNameNotSummary forbids a summary that repeats the name in the same
// language. A language the submission names or summarizes only on one side
// is compared against the other side of the previous version, since that is
// the text that stays published.
func checkNameNotSummary(path Path, names, descriptions domain.LocalizedList, previous *domain.Snapshot) []Violation {
	var prevNames, prevDescriptions domain.LocalizedList
	if previous != nil {
		prevNames, prevDescriptions = previous.Names, previous.Descriptions
	}

	var out []Violation
	seen := make(map[string]bool)
	check := func(lang string) {
		if seen[lang] {
			return
		}
		seen[lang] = true
		name, ok := names.Value(domain.NameTypeName, lang)
		if !ok {
			name, ok = prevNames.Value(domain.NameTypeName, lang)
		}
		summary, sok := descriptions.Value(domain.DescriptionTypeSummary, lang)
		if !sok {
			summary, sok = prevDescriptions.Value(domain.DescriptionTypeSummary, lang)
		}
		if ok && sok && name != "" && domain.SameText(name, summary) {
			out = append(out, violation(path, KindStructuralConflict,
				fmt.Sprintf("summary must differ from name in language %s", lang)))
		}
	}
	for _, n := range names.OfType(domain.NameTypeName) {
		check(n.Language)
	}
	for _, d := range descriptions.OfType(domain.DescriptionTypeSummary) {
		check(d.Language)
	}
	return out
}

// checkDuplicateNames asks the registry whether another record of kind in the
// same organization already uses one of the names.
func checkDuplicateNames(
	ctx context.Context,
	env Env,
	path Path,
	kind domain.EntityKind,
	organizationID, self uuid.UUID,
	names domain.LocalizedList,
) ([]Violation, error) {
	if organizationID == uuid.Nil {
		return nil, nil
	}
	var out []Violation
	for i, n := range names {
		if n.Type != domain.NameTypeName || n.Value == "" {
			continue
		}
		inUse, err := env.Registry.NameInUse(ctx, kind, organizationID, n.Language, domain.CollapseSpace(n.Value), self)
		if err != nil {
			return nil, fmt.Errorf("lookup duplicate %s name: %w", kind, err)
		}
		if inUse {
			out = append(out, violation(path.Index(i), KindDuplicateName,
				fmt.Sprintf("name %q is already used by another %s of the organization", n.Value, kind)))
		}
	}
	return out, nil
}
