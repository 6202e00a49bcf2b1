package domain

import "github.com/google/uuid"

// Organization is a submitted organization record.
type Organization struct {
	ID                   uuid.UUID        `json:"id,omitempty"`
	Type                 OrganizationType `json:"organizationType"`
	BusinessCode         string           `json:"businessCode,omitempty"`
	OID                  string           `json:"oid,omitempty"`
	ParentOrganizationID *uuid.UUID       `json:"parentOrganizationId,omitempty"`
	Municipality         string           `json:"municipality,omitempty"`
	AreaInformation
	Names            LocalizedList `json:"organizationNames"`
	DisplayNameTypes LocalizedList `json:"displayNameTypes,omitempty"`
	Descriptions     LocalizedList `json:"organizationDescriptions,omitempty"`
	Emails           []Email       `json:"emails,omitempty"`
	Phones           []Phone       `json:"phoneNumbers,omitempty"`
	WebPages         []WebPage     `json:"webPages,omitempty"`
	Addresses        []Address     `json:"addresses,omitempty"`
	RecordMeta
}

// Languages returns the available languages, deriving them from names and
// descriptions when the caller did not state them.
func (o *Organization) AvailableLanguageSet() []string {
	if o.AvailableLanguages != nil {
		return UnionLanguages(o.AvailableLanguages)
	}
	return UnionLanguages(o.Names.Languages(), o.Descriptions.Languages())
}
