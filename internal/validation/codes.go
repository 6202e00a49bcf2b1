package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// checkLanguageCodes validates record language codes.
func checkLanguageCodes(ctx context.Context, env Env, path Path, langs []string) ([]Violation, error) {
	return checkCodes(ctx, path, "language", langs, env.Codes.LanguageExists)
}

// classification is the set of taxonomy codes shared by services and general
// descriptions.
type classification struct {
	ServiceClasses    []string
	OntologyTerms     []string
	TargetGroups      []string
	LifeEvents        []string
	IndustrialClasses []string
}

// checkClassification validates every taxonomy code, the configured
// ceilings and the target-group gating of life events and industrial
// classes. inheritedTargetGroups come from an attached general description.
func checkClassification(ctx context.Context, env Env, root Path, c classification, inheritedTargetGroups []string) ([]Violation, error) {
	var out []Violation

	if env.APIVersion >= env.Rules.LimitsFromVersion {
		if limit := env.Rules.MaxServiceClasses; limit > 0 && len(c.ServiceClasses) > limit {
			out = append(out, violation(root.Field("ServiceClasses"), KindCountExceeded,
				fmt.Sprintf("at most %d service classes allowed, got %d", limit, len(c.ServiceClasses))))
		}
		if limit := env.Rules.MaxOntologyTerms; limit > 0 && len(c.OntologyTerms) > limit {
			out = append(out, violation(root.Field("OntologyTerms"), KindCountExceeded,
				fmt.Sprintf("at most %d ontology terms allowed, got %d", limit, len(c.OntologyTerms))))
		}
	}

	groups := []struct {
		field, what string
		codes       []string
		exists      existsFunc
	}{
		{"ServiceClasses", "service class", c.ServiceClasses, env.Taxonomy.ServiceClassExists},
		{"OntologyTerms", "ontology term", c.OntologyTerms, env.Taxonomy.OntologyTermExists},
		{"TargetGroups", "target group", c.TargetGroups, env.Taxonomy.TargetGroupExists},
		{"LifeEvents", "life event", c.LifeEvents, env.Taxonomy.LifeEventExists},
		{"IndustrialClasses", "industrial class", c.IndustrialClasses, env.Taxonomy.IndustrialClassExists},
	}
	for _, g := range groups {
		vs, err := checkCodes(ctx, root.Field(g.field), g.what, g.codes, g.exists)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}

	targetGroups := append(append([]string(nil), c.TargetGroups...), inheritedTargetGroups...)
	if len(c.LifeEvents) > 0 && !hasPrefix(targetGroups, env.Rules.CitizensTargetGroupPrefix) {
		out = append(out, violation(root.Field("LifeEvents"), KindStructuralConflict,
			fmt.Sprintf("life events require a target group under %s", env.Rules.CitizensTargetGroupPrefix)))
	}
	if len(c.IndustrialClasses) > 0 && !hasPrefix(targetGroups, env.Rules.BusinessesTargetGroupPrefix) {
		out = append(out, violation(root.Field("IndustrialClasses"), KindStructuralConflict,
			fmt.Sprintf("industrial classes require a target group under %s", env.Rules.BusinessesTargetGroupPrefix)))
	}
	return out, nil
}

func hasPrefix(codes []string, prefix string) bool {
	if prefix == "" {
		return len(codes) > 0
	}
	for _, c := range codes {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// checkOrganizationRef reports a missing organization. The returned info is
// only meaningful when ok is true.
func checkOrganizationRef(ctx context.Context, env Env, path Path, id uuid.UUID) (domain.OrganizationInfo, bool, []Violation, error) {
	info, err := env.Registry.Organization(ctx, id)
	vs, err := found(path, "organization", id, err)
	if err != nil {
		return domain.OrganizationInfo{}, false, nil, err
	}
	return info, len(vs) == 0, vs, nil
}
