package validation

import (
	"context"
	"fmt"
	"slices"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

var allAreaTypes = []domain.AreaType{
	domain.AreaTypeNationwide,
	domain.AreaTypeNationwideExceptAlandIslands,
	domain.AreaTypeLimitedType,
}

// organizationAreaTypes lists the area types each organization type may use.
// Types missing from the table carry no area information.
var organizationAreaTypes = map[domain.OrganizationType][]domain.AreaType{
	domain.OrganizationTypeRegionalOrganization: {domain.AreaTypeLimitedType},
	domain.OrganizationTypeOrganization:         allAreaTypes,
	domain.OrganizationTypeCompany:              allAreaTypes,
	domain.OrganizationTypeSotePrivate:          allAreaTypes,
	domain.OrganizationTypeSotePublic:           {domain.AreaTypeLimitedType, domain.AreaTypeNationwideExceptAlandIslands},
}

// checkArea validates area information against the accepted area types.
// A nil allowed list rejects any area information.
func checkArea(ctx context.Context, env Env, root Path, area domain.AreaInformation, allowed []domain.AreaType) ([]Violation, error) {
	if area.IsEmpty() {
		return nil, nil
	}
	typePath := root.Field("AreaType")
	if allowed == nil {
		return []Violation{violation(typePath, KindStructuralConflict,
			"area information is not allowed for this organization type")}, nil
	}
	if area.AreaType == "" {
		return []Violation{violation(typePath, KindStructuralConflict,
			"area type is required when areas are given")}, nil
	}
	if !slices.Contains(allowed, area.AreaType) {
		return []Violation{violation(typePath, KindStructuralConflict,
			fmt.Sprintf("area type %q is not allowed here", area.AreaType))}, nil
	}

	if area.AreaType != domain.AreaTypeLimitedType {
		if area.SubAreaType != "" || len(area.Areas) > 0 {
			return []Violation{violation(root.Field("Areas"), KindStructuralConflict,
				"sub area type and areas are only allowed for LimitedType")}, nil
		}
		return nil, nil
	}

	var out []Violation
	if !area.SubAreaType.IsValid() {
		out = append(out, violation(root.Field("SubAreaType"), KindStructuralConflict,
			fmt.Sprintf("sub area type is required for LimitedType, got %q", area.SubAreaType)))
	}
	if len(area.Areas) == 0 {
		out = append(out, violation(root.Field("Areas"), KindStructuralConflict,
			"at least one area is required for LimitedType"))
	}
	if len(out) > 0 {
		return out, nil
	}
	return checkCodes(ctx, root.Field("Areas"), string(area.SubAreaType)+" area", area.Areas,
		func(ctx context.Context, code string) (bool, error) {
			return env.Codes.AreaExists(ctx, area.SubAreaType, code)
		})
}
