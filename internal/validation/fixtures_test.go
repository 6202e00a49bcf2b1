package validation

import (
	"github.com/google/uuid"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

func streetAddress(typ domain.AddressType) domain.Address {
	return domain.Address{
		Type:          typ,
		SubType:       domain.AddressSubTypeStreet,
		Country:       "FI",
		PostalCode:    "00100",
		StreetAddress: domain.LocalizedList{{Language: "fi", Value: "Mannerheimintie"}},
		StreetNumber:  "1",
	}
}

func locationAddress(sub domain.AddressSubType) domain.Address {
	a := domain.Address{Type: domain.AddressTypeLocation, SubType: sub, Country: "FI"}
	switch sub {
	case domain.AddressSubTypeSingle:
		a.PostalCode = "00100"
		a.StreetAddress = domain.LocalizedList{{Language: "fi", Value: "Mannerheimintie"}}
	case domain.AddressSubTypeAbroad:
		a.Country = "SE"
		a.ForeignAddress = domain.LocalizedList{{Language: "fi", Value: "Drottninggatan 1, Tukholma"}}
	case domain.AddressSubTypeOther:
		a.Latitude, a.Longitude = "6673000", "385000"
	}
	return a
}

func validOrganization() *domain.Organization {
	return &domain.Organization{
		ID:           uuid.New(),
		Type:         domain.OrganizationTypeCompany,
		BusinessCode: "0245437-2",
		Names:        names("fi", "Esimerkki Oy", "sv", "Exempel Ab"),
		Descriptions: descriptions("fi", "sv"),
		Emails:       []domain.Email{{Language: "fi", Value: "info@example.fi"}},
		Phones: []domain.Phone{{
			Language: "fi", PrefixNumber: "+358", Number: "401234567", ChargeType: domain.ChargeTypeFree,
		}},
		WebPages:   []domain.WebPage{{Language: "fi", URL: "https://www.example.fi"}},
		Addresses:  []domain.Address{streetAddress(domain.AddressTypeVisiting)},
		RecordMeta: domain.RecordMeta{PublishingStatus: domain.PublishingStatusPublished},
	}
}

// serviceFixture registers the main organization of a valid service and
// returns a caller owning it.
func serviceFixture(f *fakeLookups) (*domain.Service, domain.Caller) {
	orgID := uuid.New()
	f.organizations[orgID] = domain.OrganizationInfo{
		ID: orgID, Type: domain.OrganizationTypeMunicipality, PublishedLanguages: []string{"fi", "sv"},
	}
	svc := &domain.Service{
		ID:                 uuid.New(),
		Type:               domain.ServiceTypeService,
		FundingType:        domain.FundingTypePubliclyFunded,
		MainOrganizationID: orgID,
		Names:              names("fi", "Pysäköintilupa"),
		Descriptions:       descriptions("fi"),
		ServiceClasses:     []string{"P1"},
		OntologyTerms:      []string{"p1234"},
		TargetGroups:       []string{"KR1"},
		RecordMeta:         domain.RecordMeta{PublishingStatus: domain.PublishingStatusPublished},
	}
	return svc, domain.Caller{Role: domain.UserRoleUser, Organizations: []uuid.UUID{orgID}}
}

// channelFixture registers the organization of a valid channel with the
// given details and returns a caller owning it.
func channelFixture(f *fakeLookups, details domain.ChannelDetails) (*domain.ServiceChannel, domain.Caller) {
	orgID := uuid.New()
	f.organizations[orgID] = domain.OrganizationInfo{
		ID: orgID, Type: domain.OrganizationTypeMunicipality, PublishedLanguages: []string{"fi"},
	}
	ch := &domain.ServiceChannel{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Names:          names("fi", "Kaupungintalo"),
		Descriptions:   descriptions("fi"),
		RecordMeta:     domain.RecordMeta{PublishingStatus: domain.PublishingStatusPublished},
		Details:        details,
	}
	return ch, domain.Caller{Role: domain.UserRoleUser, Organizations: []uuid.UUID{orgID}}
}

func serviceLocation(addrs ...domain.Address) *domain.ServiceLocationDetails {
	return &domain.ServiceLocationDetails{Addresses: addrs}
}

func validGeneralDescription() *domain.GeneralDescription {
	return &domain.GeneralDescription{
		ID:             uuid.New(),
		Type:           domain.ServiceTypePermitOrObligation,
		Names:          names("fi", "Rakennuslupa"),
		Descriptions:   descriptions("fi"),
		ServiceClasses: []string{"P10"},
		OntologyTerms:  []string{"p500"},
		TargetGroups:   []string{"KR1", "KR2"},
		RecordMeta:     domain.RecordMeta{PublishingStatus: domain.PublishingStatusDraft},
	}
}
