package domain

import "github.com/google/uuid"

// Law is a legislation reference of a general description.
type Law struct {
	Names    LocalizedList `json:"names,omitempty"`
	WebPages []WebPage     `json:"webPages,omitempty"`
}

// GeneralDescription is a submitted statutory service description template.
type GeneralDescription struct {
	ID                uuid.UUID     `json:"id,omitempty"`
	Type              ServiceType   `json:"type"`
	ChargeType        ChargeType    `json:"serviceChargeType,omitempty"`
	Names             LocalizedList `json:"names"`
	Descriptions      LocalizedList `json:"descriptions,omitempty"`
	Requirements      LocalizedList `json:"requirements,omitempty"`
	Laws              []Law         `json:"legislation,omitempty"`
	ServiceClasses    []string      `json:"serviceClasses,omitempty"`
	OntologyTerms     []string      `json:"ontologyTerms,omitempty"`
	TargetGroups      []string      `json:"targetGroups,omitempty"`
	LifeEvents        []string      `json:"lifeEvents,omitempty"`
	IndustrialClasses []string      `json:"industrialClasses,omitempty"`
	RecordMeta
}

// AvailableLanguageSet returns the available languages, deriving them from
// names and descriptions when the caller did not state them.
func (g *GeneralDescription) AvailableLanguageSet() []string {
	if g.AvailableLanguages != nil {
		return UnionLanguages(g.AvailableLanguages)
	}
	return UnionLanguages(g.Names.Languages(), g.Descriptions.Languages())
}
