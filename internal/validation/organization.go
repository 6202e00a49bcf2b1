package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

func validateOrganization(ctx context.Context, env Env, org *domain.Organization, previous *domain.Snapshot) ([]Violation, error) {
	st := newRecordState(org, previous)
	p := &pass{}

	// Localized collections.
	p.add(CheckLocalized(org.Names, LocalizedRule{
		Path:      "OrganizationNames",
		Required:  st.required,
		Types:     []string{domain.NameTypeName},
		Available: st.available,
		Unique:    true,
	})...)
	p.add(checkItemTypes("OrganizationNames", org.Names, domain.NameTypeName, domain.NameTypeAlternateName)...)
	p.add(checkDisplayNameTypes("DisplayNameTypes", org.Names, org.DisplayNameTypes)...)
	p.add(CheckLocalized(org.Descriptions, LocalizedRule{
		Path:     "OrganizationDescriptions",
		Required: st.required,
		Types:    []string{domain.DescriptionTypeSummary},
	})...)
	p.add(checkItemTypes("OrganizationDescriptions", org.Descriptions,
		domain.DescriptionTypeSummary, domain.DescriptionTypeDescription)...)

	checkRecordMeta(ctx, env, p, st, &org.RecordMeta,
		org.Names.Languages(), org.Descriptions.Languages())

	// Structural rules.
	if !org.Type.IsValid() {
		p.add(violation("OrganizationType", KindStructuralConflict,
			fmt.Sprintf("unknown organization type %q", org.Type)))
	}
	if org.BusinessCode != "" && !isBusinessCode(org.BusinessCode) {
		p.add(violation("BusinessCode", KindStructuralConflict,
			fmt.Sprintf("invalid business code %q", org.BusinessCode)))
	}
	p.add(checkMunicipalityRule(org)...)
	p.merge(checkArea(ctx, env, "", org.AreaInformation, organizationAreaTypes[org.Type]))
	p.add(checkEmails("Emails", org.Emails)...)
	p.add(checkWebPages("WebPages", org.WebPages)...)
	p.merge(checkPhones(ctx, env, "PhoneNumbers", org.Phones))
	p.merge(checkAddresses(ctx, env, "Addresses", org.Addresses, organizationAddressPolicy))

	// Lookups.
	p.merge(checkCode(ctx, "Municipality", "municipality", org.Municipality, env.Codes.MunicipalityExists))
	p.merge(checkOID(ctx, env, org))
	p.merge(checkParentOrganization(ctx, env, org))

	return p.result()
}

// checkMunicipalityRule: only municipalities carry a municipality code, and
// they must.
func checkMunicipalityRule(org *domain.Organization) []Violation {
	isMunicipality := org.Type == domain.OrganizationTypeMunicipality
	switch {
	case isMunicipality && org.Municipality == "":
		return []Violation{violation("Municipality", KindStructuralConflict,
			"municipality is required for organization type Municipality")}
	case !isMunicipality && org.Municipality != "":
		return []Violation{violation("Municipality", KindStructuralConflict,
			"municipality is only allowed for organization type Municipality")}
	}
	return nil
}

func checkOID(ctx context.Context, env Env, org *domain.Organization) ([]Violation, error) {
	if org.OID == "" {
		return nil, nil
	}
	if !isOID(org.OID) {
		return []Violation{violation("Oid", KindStructuralConflict, fmt.Sprintf("invalid oid %q", org.OID))}, nil
	}
	owner, err := env.Registry.OrganizationByOID(ctx, org.OID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup organization by oid: %w", err)
	}
	if owner.ID != org.ID {
		return []Violation{violation("Oid", KindStructuralConflict,
			fmt.Sprintf("oid %s is already used by organization %s", org.OID, owner.ID))}, nil
	}
	return nil, nil
}

func checkParentOrganization(ctx context.Context, env Env, org *domain.Organization) ([]Violation, error) {
	if org.ParentOrganizationID == nil || *org.ParentOrganizationID == uuid.Nil {
		return nil, nil
	}
	parent := *org.ParentOrganizationID
	if org.ID != uuid.Nil && parent == org.ID {
		return []Violation{violation("ParentOrganizationId", KindStructuralConflict,
			"organization cannot be its own parent")}, nil
	}
	_, _, vs, err := checkOrganizationRef(ctx, env, "ParentOrganizationId", parent)
	return vs, err
}
