package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecordMeta is the part of a submitted record that drives language and
// lifecycle validation. It is embedded in every registry record.
type RecordMeta struct {
	PublishingStatus PublishingStatus `json:"publishingStatus,omitempty"`
	ValidFrom        *time.Time       `json:"validFrom,omitempty"`
	ValidTo          *time.Time       `json:"validTo,omitempty"`

	// AvailableLanguages lists the languages the record has content in.
	// When omitted it is derived from the record's localized collections.
	AvailableLanguages []string `json:"availableLanguages,omitempty"`

	// RequiredPropertyLanguages lists the languages in which the caller
	// submitted required-field content. Only its emptiness is significant.
	RequiredPropertyLanguages []string `json:"requiredPropertyLanguages,omitempty"`
}

// Meta returns the embedded metadata.
func (m *RecordMeta) Meta() *RecordMeta { return m }

// AreaInformation describes where an organization, service or channel operates.
type AreaInformation struct {
	AreaType    AreaType    `json:"areaType,omitempty"`
	SubAreaType SubAreaType `json:"subAreaType,omitempty"`
	Areas       []string    `json:"areas,omitempty"`
}

// IsEmpty reports whether no area field is set.
func (a AreaInformation) IsEmpty() bool {
	return a.AreaType == "" && a.SubAreaType == "" && len(a.Areas) == 0
}

// Snapshot is the previously published version of a record. It is read-only
// input; a nil *Snapshot means the record has never been saved.
type Snapshot struct {
	ID                 uuid.UUID        `json:"id"`
	AvailableLanguages []string         `json:"availableLanguages"`
	PublishingStatus   PublishingStatus `json:"publishingStatus"`
	Names              LocalizedList    `json:"names,omitempty"`
	Descriptions       LocalizedList    `json:"descriptions,omitempty"`
}

// Record is the closed set of registry records accepted by the validation
// engine: *Organization, *Service, *ServiceChannel and *GeneralDescription.
type Record interface {
	EntityKind() EntityKind
	AvailableLanguageSet() []string
	Meta() *RecordMeta
	isRecord()
}

func (*Organization) EntityKind() EntityKind       { return EntityKindOrganization }
func (*Service) EntityKind() EntityKind            { return EntityKindService }
func (*ServiceChannel) EntityKind() EntityKind     { return EntityKindServiceChannel }
func (*GeneralDescription) EntityKind() EntityKind { return EntityKindGeneralDescription }

func (*Organization) isRecord()       {}
func (*Service) isRecord()            {}
func (*ServiceChannel) isRecord()     {}
func (*GeneralDescription) isRecord() {}

// RecordID returns the id of an existing record, uuid.Nil for a new one.
func RecordID(r Record) uuid.UUID {
	switch v := r.(type) {
	case *Organization:
		if v != nil {
			return v.ID
		}
	case *Service:
		if v != nil {
			return v.ID
		}
	case *ServiceChannel:
		if v != nil {
			return v.ID
		}
	case *GeneralDescription:
		if v != nil {
			return v.ID
		}
	}
	return uuid.Nil
}
