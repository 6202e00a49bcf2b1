package domain

import "github.com/google/uuid"

// OrganizationInfo is what the registry exposes about an existing organization.
type OrganizationInfo struct {
	ID                 uuid.UUID
	Type               OrganizationType
	PublishingStatus   PublishingStatus
	PublishedLanguages []string
}

// ServiceInfo is what the registry exposes about an existing service.
type ServiceInfo struct {
	ID              uuid.UUID
	OrganizationIDs []uuid.UUID
}

// ChannelInfo is what the registry exposes about an existing service channel.
type ChannelInfo struct {
	ID              uuid.UUID
	Kind            ChannelKind
	OrganizationID  uuid.UUID
	IsVisibleForAll bool
}

// GeneralDescriptionInfo is what the registry exposes about an existing
// general description.
type GeneralDescriptionInfo struct {
	ID             uuid.UUID
	Type           ServiceType
	TargetGroups   []string
	ServiceClasses []string
	OntologyTerms  []string
}

// CodeList names a flat reference code list.
type CodeList string

const (
	CodeListLanguages      CodeList = "languages"
	CodeListCountries      CodeList = "countries"
	CodeListMunicipalities CodeList = "municipalities"
	CodeListPostalCodes    CodeList = "postal_codes"
	CodeListDialCodes      CodeList = "dial_codes"
)

func (l CodeList) String() string { return string(l) }

// AreaCode is a known area code under a sub-area code system.
type AreaCode struct {
	SubType SubAreaType
	Code    string
}

// TaxonomyTerm is a known code of one of the taxonomy vocabularies.
type TaxonomyTerm struct {
	Vocabulary string
	Code       string
}
