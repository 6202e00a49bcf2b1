package domain

import "github.com/google/uuid"

// ServiceProducer tells which organizations produce a service and how.
type ServiceProducer struct {
	ProvisionType         ProvisionType `json:"provisionType"`
	Organizations         []uuid.UUID   `json:"organizations,omitempty"`
	AdditionalInformation LocalizedList `json:"additionalInformation,omitempty"`
}

// Connection links a service and a service channel. TargetID is the channel
// when the list belongs to a service and the service when it belongs to a channel.
type Connection struct {
	TargetID       uuid.UUID       `json:"id"`
	IsASTI         bool            `json:"isASTIConnection,omitempty"`
	Descriptions   LocalizedList   `json:"description,omitempty"`
	ChargeType     ChargeType      `json:"serviceChargeType,omitempty"`
	ServiceHours   []ServiceHour   `json:"serviceHours,omitempty"`
	ContactDetails *ContactDetails `json:"contactDetails,omitempty"`
}

// Service is a submitted service record.
type Service struct {
	ID                            uuid.UUID         `json:"id,omitempty"`
	Type                          ServiceType       `json:"type,omitempty"`
	FundingType                   FundingType       `json:"fundingType,omitempty"`
	ChargeType                    ChargeType        `json:"serviceChargeType,omitempty"`
	GeneralDescriptionID          *uuid.UUID        `json:"generalDescriptionId,omitempty"`
	MainOrganizationID            uuid.UUID         `json:"mainResponsibleOrganization"`
	OtherResponsibleOrganizations []uuid.UUID       `json:"otherResponsibleOrganizations,omitempty"`
	Producers                     []ServiceProducer `json:"serviceProducers,omitempty"`
	AreaInformation
	Names             LocalizedList `json:"serviceNames"`
	Descriptions      LocalizedList `json:"serviceDescriptions,omitempty"`
	Requirements      LocalizedList `json:"requirements,omitempty"`
	Keywords          LocalizedList `json:"keywords,omitempty"`
	Languages         []string      `json:"languages,omitempty"`
	ServiceClasses    []string      `json:"serviceClasses,omitempty"`
	OntologyTerms     []string      `json:"ontologyTerms,omitempty"`
	TargetGroups      []string      `json:"targetGroups,omitempty"`
	LifeEvents        []string      `json:"lifeEvents,omitempty"`
	IndustrialClasses []string      `json:"industrialClasses,omitempty"`
	VouchersInUse     bool          `json:"serviceVouchersInUse,omitempty"`
	Vouchers          []WebPage     `json:"serviceVouchers,omitempty"`
	Channels          []Connection  `json:"serviceChannels,omitempty"`
	RecordMeta
}

// AvailableLanguageSet returns the available languages, deriving them from
// names and descriptions when the caller did not state them.
func (s *Service) AvailableLanguageSet() []string {
	if s.AvailableLanguages != nil {
		return UnionLanguages(s.AvailableLanguages)
	}
	return UnionLanguages(s.Names.Languages(), s.Descriptions.Languages())
}

// ResponsibleOrganizations returns the main and other responsible organizations.
func (s *Service) ResponsibleOrganizations() []uuid.UUID {
	out := make([]uuid.UUID, 0, 1+len(s.OtherResponsibleOrganizations))
	if s.MainOrganizationID != uuid.Nil {
		out = append(out, s.MainOrganizationID)
	}
	return append(out, s.OtherResponsibleOrganizations...)
}
