package validation

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// marketFundedOrganizationTypes may own market funded services.
var marketFundedOrganizationTypes = []domain.OrganizationType{
	domain.OrganizationTypeCompany,
	domain.OrganizationTypeSotePrivate,
	domain.OrganizationTypeOrganization,
}

func validateService(ctx context.Context, env Env, svc *domain.Service, previous *domain.Snapshot) ([]Violation, error) {
	st := newRecordState(svc, previous)
	p := &pass{}

	gd, gdFound := resolveGeneralDescription(ctx, env, p, svc.GeneralDescriptionID)
	attached := svc.GeneralDescriptionID != nil

	// Localized collections.
	descriptionTypes := []string{domain.DescriptionTypeSummary, domain.DescriptionTypeDescription}
	if attached {
		descriptionTypes = []string{domain.DescriptionTypeSummary}
	}
	p.add(CheckLocalized(svc.Names, LocalizedRule{
		Path:      "ServiceNames",
		Required:  st.required,
		Types:     []string{domain.NameTypeName},
		Available: st.available,
	})...)
	p.add(checkItemTypes("ServiceNames", svc.Names, domain.NameTypeName, domain.NameTypeAlternateName)...)
	p.add(CheckLocalized(svc.Descriptions, LocalizedRule{
		Path:     "ServiceDescriptions",
		Required: st.required,
		Types:    descriptionTypes,
	})...)
	if st.publishing() {
		p.add(checkNameNotSummary("ServiceDescriptions", svc.Names, svc.Descriptions, previous)...)
	}

	checkRecordMeta(ctx, env, p, st, &svc.RecordMeta,
		svc.Names.Languages(), svc.Descriptions.Languages(),
		svc.Requirements.Languages(), svc.Keywords.Languages())

	// Structural rules.
	switch {
	case svc.FundingType == "":
		p.add(violation("FundingType", KindStructuralConflict, "funding type is required"))
	case !svc.FundingType.IsValid():
		p.add(violation("FundingType", KindStructuralConflict,
			fmt.Sprintf("unknown funding type %q", svc.FundingType)))
	}
	switch {
	case svc.Type == "" && !attached:
		p.add(violation("Type", KindStructuralConflict, "service type is required without a general description"))
	case svc.Type != "" && !svc.Type.IsValid():
		p.add(violation("Type", KindStructuralConflict, fmt.Sprintf("unknown service type %q", svc.Type)))
	case gdFound && svc.Type != "" && svc.Type != gd.Type:
		p.add(violation("Type", KindStructuralConflict,
			fmt.Sprintf("service type %s does not match general description type %s", svc.Type, gd.Type)))
	}
	if svc.ChargeType != "" && !svc.ChargeType.IsValid() {
		p.add(violation("ServiceChargeType", KindStructuralConflict,
			fmt.Sprintf("unknown charge type %q", svc.ChargeType)))
	}
	if !attached {
		if len(svc.ServiceClasses) == 0 {
			p.add(violation("ServiceClasses", KindStructuralConflict,
				"at least one service class is required without a general description"))
		}
		if len(svc.OntologyTerms) == 0 {
			p.add(violation("OntologyTerms", KindStructuralConflict,
				"at least one ontology term is required without a general description"))
		}
	}
	if !svc.VouchersInUse && len(svc.Vouchers) > 0 {
		p.add(violation("ServiceVouchers", KindStructuralConflict,
			"service vouchers are only allowed when vouchers are in use"))
	}
	p.add(checkWebPages("ServiceVouchers", svc.Vouchers)...)

	var inherited []string
	if gdFound {
		inherited = gd.TargetGroups
	}
	p.merge(checkClassification(ctx, env, "", classification{
		ServiceClasses:    svc.ServiceClasses,
		OntologyTerms:     svc.OntologyTerms,
		TargetGroups:      svc.TargetGroups,
		LifeEvents:        svc.LifeEvents,
		IndustrialClasses: svc.IndustrialClasses,
	}, inherited))
	p.merge(checkLanguageCodes(ctx, env, "Languages", svc.Languages))
	p.merge(checkArea(ctx, env, "", svc.AreaInformation, allAreaTypes))

	// Organizations and producers.
	p.merge(checkResponsibleOrganizations(ctx, env, svc))
	p.merge(checkProducers(ctx, env, svc))
	p.merge(checkDuplicateNames(ctx, env, "ServiceNames", domain.EntityKindService,
		svc.MainOrganizationID, svc.ID, svc.Names))

	// Connections.
	p.merge(checkServiceConnections(ctx, env, "ServiceChannels", svc.ID, svc.Channels))

	return p.result()
}

// resolveGeneralDescription loads the attached general description. A
// missing description is recorded and its dependent checks are skipped.
func resolveGeneralDescription(ctx context.Context, env Env, p *pass, id *uuid.UUID) (domain.GeneralDescriptionInfo, bool) {
	if id == nil {
		return domain.GeneralDescriptionInfo{}, false
	}
	info, err := env.Registry.GeneralDescription(ctx, *id)
	vs, err := found("GeneralDescriptionId", "general description", *id, err)
	p.merge(vs, err)
	return info, err == nil && len(vs) == 0
}

func checkResponsibleOrganizations(ctx context.Context, env Env, svc *domain.Service) ([]Violation, error) {
	if svc.MainOrganizationID == uuid.Nil {
		return []Violation{violation("MainResponsibleOrganization", KindStructuralConflict,
			"main responsible organization is required")}, nil
	}

	main, ok, out, err := checkOrganizationRef(ctx, env, "MainResponsibleOrganization", svc.MainOrganizationID)
	if err != nil {
		return nil, err
	}
	if ok {
		if !env.Caller.IsAdmin() && !env.Caller.OwnsOrganization(main.ID) {
			out = append(out, violation("MainResponsibleOrganization", KindVisibilityDenied,
				fmt.Sprintf("organization %s is not one of the caller's organizations", main.ID)))
		}
		if svc.FundingType == domain.FundingTypeMarketFunded && !slices.Contains(marketFundedOrganizationTypes, main.Type) {
			out = append(out, violation("FundingType", KindStructuralConflict,
				fmt.Sprintf("market funded services are not allowed for organization type %s", main.Type)))
		}
	}

	for i, id := range svc.OtherResponsibleOrganizations {
		path := Path("OtherResponsibleOrganizations").Index(i)
		if id == svc.MainOrganizationID {
			out = append(out, violation(path, KindStructuralConflict,
				"main responsible organization cannot also be listed as other responsible organization"))
			continue
		}
		_, _, vs, err := checkOrganizationRef(ctx, env, path, id)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

func checkProducers(ctx context.Context, env Env, svc *domain.Service) ([]Violation, error) {
	responsible := svc.ResponsibleOrganizations()
	var out []Violation
	for i, prod := range svc.Producers {
		path := Path("ServiceProducers").Index(i)
		switch prod.ProvisionType {
		case domain.ProvisionTypeSelfProduced:
			if len(prod.Organizations) == 0 {
				out = append(out, violation(path.Field("Organizations"), KindStructuralConflict,
					"self produced service needs at least one producing organization"))
			}
			for j, id := range prod.Organizations {
				if !slices.Contains(responsible, id) {
					out = append(out, violation(path.Field("Organizations").Index(j), KindStructuralConflict,
						"self producing organization must be a responsible organization"))
				}
			}
		case domain.ProvisionTypePurchaseServices, domain.ProvisionTypeOther:
			if len(prod.Organizations) == 0 && len(prod.AdditionalInformation) == 0 {
				out = append(out, violation(path, KindStructuralConflict,
					fmt.Sprintf("%s producer needs organizations or additional information", prod.ProvisionType)))
			}
		default:
			out = append(out, violation(path.Field("ProvisionType"), KindStructuralConflict,
				fmt.Sprintf("unknown provision type %q", prod.ProvisionType)))
			continue
		}

		for j, id := range prod.Organizations {
			_, _, vs, err := checkOrganizationRef(ctx, env, path.Field("Organizations").Index(j), id)
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
	}
	return out, nil
}
