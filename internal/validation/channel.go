package validation

import (
	"context"
	"fmt"
	"slices"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

func validateChannel(ctx context.Context, env Env, ch *domain.ServiceChannel, previous *domain.Snapshot) ([]Violation, error) {
	st := newRecordState(ch, previous)
	p := &pass{}

	// Localized collections.
	p.add(CheckLocalized(ch.Names, LocalizedRule{
		Path:      "ServiceChannelNames",
		Required:  st.required,
		Types:     []string{domain.NameTypeName},
		Available: st.available,
	})...)
	p.add(checkItemTypes("ServiceChannelNames", ch.Names, domain.NameTypeName, domain.NameTypeAlternateName)...)
	p.add(CheckLocalized(ch.Descriptions, LocalizedRule{
		Path:     "ServiceChannelDescriptions",
		Required: st.required,
		Types:    []string{domain.DescriptionTypeSummary, domain.DescriptionTypeDescription},
	})...)

	checkRecordMeta(ctx, env, p, st, &ch.RecordMeta, ch.Names.Languages(), ch.Descriptions.Languages())

	// Rules shared by every channel kind.
	p.merge(checkChannelOrganization(ctx, env, ch, st))
	p.merge(checkLanguageCodes(ctx, env, "Languages", ch.Languages))
	p.add(checkEmails("SupportEmails", ch.Emails)...)
	p.add(checkWebPages("WebPages", ch.WebPages)...)
	p.merge(checkPhones(ctx, env, "SupportPhones", ch.Phones))
	p.merge(checkArea(ctx, env, "", ch.AreaInformation, allAreaTypes))
	p.add(CheckServiceHours("ServiceHours", ch.ServiceHours)...)

	// Kind specific rules.
	switch d := ch.Details.(type) {
	case *domain.ElectronicDetails:
		p.add(checkElectronic(st, d)...)
	case *domain.PhoneDetails:
		p.merge(checkPhoneChannel(ctx, env, d))
	case *domain.PrintableFormDetails:
		p.merge(checkPrintableForm(ctx, env, st, d))
	case *domain.WebPageDetails:
		p.add(checkWebPageChannel(st, d)...)
	case *domain.ServiceLocationDetails:
		p.merge(checkServiceLocation(ctx, env, d))
	}

	p.merge(checkDuplicateNames(ctx, env, "ServiceChannelNames", domain.EntityKindServiceChannel,
		ch.OrganizationID, ch.ID, ch.Names))
	p.merge(checkChannelConnections(ctx, env, "Services", ch.ID, ch.Kind(), ch.Services))

	return p.result()
}

// checkChannelOrganization requires an existing organization owned by the
// caller. When publishing new language versions the organization must
// already be published in those languages.
func checkChannelOrganization(ctx context.Context, env Env, ch *domain.ServiceChannel, st recordState) ([]Violation, error) {
	const path = Path("OrganizationId")
	org, ok, out, err := checkOrganizationRef(ctx, env, path, ch.OrganizationID)
	if err != nil || !ok {
		return out, err
	}
	if !env.Caller.IsAdmin() && !env.Caller.OwnsOrganization(org.ID) {
		out = append(out, violation(path, KindVisibilityDenied,
			fmt.Sprintf("organization %s is not one of the caller's organizations", org.ID)))
	}
	if st.publishing() && env.APIVersion >= env.Rules.SupportLanguagesFromVersion {
		for _, lang := range st.newlyAdded() {
			if !slices.Contains(org.PublishedLanguages, lang) {
				out = append(out, violation(path, KindMissingRequiredLanguage,
					fmt.Sprintf("organization is not published in language %s", lang)))
			}
		}
	}
	return out, nil
}

func checkElectronic(st recordState, d *domain.ElectronicDetails) []Violation {
	out := CheckLocalized(d.URLs, LocalizedRule{Path: "WebPage", Required: st.required})
	out = append(out, checkURLItems("WebPage", d.URLs)...)
	out = append(out, checkWebPages("Attachments", d.Attachments)...)
	out = append(out, checkAccessibility("AccessibilityClassification", d.URLs, d.AccessibilityClassification, st.required)...)
	switch {
	case d.SignatureQuantity < 0:
		out = append(out, violation("SignatureQuantity", KindStructuralConflict, "signature quantity cannot be negative"))
	case d.SignatureQuantity > 0 && !d.RequiresSignature:
		out = append(out, violation("SignatureQuantity", KindStructuralConflict,
			"signature quantity is only allowed when signature is required"))
	}
	return out
}

func checkPhoneChannel(ctx context.Context, env Env, d *domain.PhoneDetails) ([]Violation, error) {
	if len(d.PhoneNumbers) == 0 {
		return []Violation{violation("PhoneNumbers", KindStructuralConflict, "at least one phone number is required")}, nil
	}
	return checkPhones(ctx, env, "PhoneNumbers", d.PhoneNumbers)
}

func checkPrintableForm(ctx context.Context, env Env, st recordState, d *domain.PrintableFormDetails) ([]Violation, error) {
	out := CheckLocalized(d.FormIdentifier, LocalizedRule{Path: "FormIdentifier", Required: st.required})
	out = append(out, CheckLocalized(d.ChannelURLs, LocalizedRule{Path: "ChannelUrls", Required: st.required})...)
	out = append(out, checkURLItems("ChannelUrls", d.ChannelURLs)...)
	out = append(out, checkWebPages("Attachments", d.Attachments)...)
	if d.DeliveryAddress == nil {
		return out, nil
	}
	vs, err := checkAddress(ctx, env, "DeliveryAddress", *d.DeliveryAddress, deliveryAddressPolicy)
	if err != nil {
		return nil, err
	}
	return append(out, vs...), nil
}

func checkWebPageChannel(st recordState, d *domain.WebPageDetails) []Violation {
	out := CheckLocalized(d.URLs, LocalizedRule{Path: "WebPage", Required: st.required})
	out = append(out, checkURLItems("WebPage", d.URLs)...)
	return append(out, checkAccessibility("AccessibilityClassification", d.URLs, d.AccessibilityClassification, st.required)...)
}

func checkServiceLocation(ctx context.Context, env Env, d *domain.ServiceLocationDetails) ([]Violation, error) {
	var out []Violation
	hasLocation := slices.ContainsFunc(d.Addresses, func(a domain.Address) bool {
		return a.Type == domain.AddressTypeLocation
	})
	if !hasLocation {
		out = append(out, violation("Addresses", KindStructuralConflict, "at least one Location address is required"))
	}
	out = append(out, checkAbroadExclusivity("Addresses", d.Addresses)...)

	vs, err := checkAddresses(ctx, env, "Addresses", d.Addresses, serviceLocationAddressPolicy)
	if err != nil {
		return nil, err
	}
	out = append(out, vs...)

	vs, err = checkPhones(ctx, env, "FaxNumbers", d.FaxNumbers)
	if err != nil {
		return nil, err
	}
	return append(out, vs...), nil
}
