package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ServiceChannel is a submitted service channel record. The fields shared by
// every channel kind live on the struct; the kind-specific payload is Details.
type ServiceChannel struct {
	ID             uuid.UUID     `json:"id,omitempty"`
	OrganizationID uuid.UUID     `json:"organizationId"`
	Names          LocalizedList `json:"serviceChannelNames"`
	Descriptions   LocalizedList `json:"serviceChannelDescriptions,omitempty"`
	Languages      []string      `json:"languages,omitempty"`
	Emails         []Email       `json:"supportEmails,omitempty"`
	Phones         []Phone       `json:"supportPhones,omitempty"`
	WebPages       []WebPage     `json:"webPages,omitempty"`
	ServiceHours   []ServiceHour `json:"serviceHours,omitempty"`
	AreaInformation
	IsVisibleForAll bool         `json:"isVisibleForAll,omitempty"`
	Services        []Connection `json:"services,omitempty"`
	RecordMeta

	Details ChannelDetails `json:"-"`
}

// Kind returns the channel kind of the attached details, or "" when none.
func (c *ServiceChannel) Kind() ChannelKind {
	if c.Details == nil {
		return ""
	}
	return c.Details.Kind()
}

// AvailableLanguageSet returns the available languages, deriving them from
// names and descriptions when the caller did not state them.
func (c *ServiceChannel) AvailableLanguageSet() []string {
	if c.AvailableLanguages != nil {
		return UnionLanguages(c.AvailableLanguages)
	}
	return UnionLanguages(c.Names.Languages(), c.Descriptions.Languages())
}

// ChannelDetails is the closed set of channel-kind payloads.
type ChannelDetails interface {
	Kind() ChannelKind
	isChannelDetails()
}

// ElectronicDetails is the payload of an electronic (online service) channel.
type ElectronicDetails struct {
	URLs                        LocalizedList                 `json:"webPage"`
	RequiresAuthentication      bool                          `json:"requiresAuthentication,omitempty"`
	RequiresSignature           bool                          `json:"requiresSignature,omitempty"`
	SignatureQuantity           int                           `json:"signatureQuantity,omitempty"`
	Attachments                 []WebPage                     `json:"attachments,omitempty"`
	AccessibilityClassification []AccessibilityClassification `json:"accessibilityClassification,omitempty"`
}

// PhoneDetails is the payload of a phone channel.
type PhoneDetails struct {
	PhoneNumbers []Phone `json:"phoneNumbers"`
}

// PrintableFormDetails is the payload of a printable form channel.
type PrintableFormDetails struct {
	FormIdentifier  LocalizedList `json:"formIdentifier,omitempty"`
	ChannelURLs     LocalizedList `json:"channelUrls,omitempty"`
	DeliveryAddress *Address      `json:"deliveryAddress,omitempty"`
	Attachments     []WebPage     `json:"attachments,omitempty"`
}

// WebPageDetails is the payload of a web page channel.
type WebPageDetails struct {
	URLs                        LocalizedList                 `json:"webPage"`
	AccessibilityClassification []AccessibilityClassification `json:"accessibilityClassification,omitempty"`
}

// ServiceLocationDetails is the payload of a physical service location channel.
type ServiceLocationDetails struct {
	Addresses  []Address `json:"addresses"`
	FaxNumbers []Phone   `json:"faxNumbers,omitempty"`
}

func (ElectronicDetails) Kind() ChannelKind      { return ChannelKindElectronic }
func (PhoneDetails) Kind() ChannelKind           { return ChannelKindPhone }
func (PrintableFormDetails) Kind() ChannelKind   { return ChannelKindPrintableForm }
func (WebPageDetails) Kind() ChannelKind         { return ChannelKindWebPage }
func (ServiceLocationDetails) Kind() ChannelKind { return ChannelKindServiceLocation }

func (*ElectronicDetails) isChannelDetails()      {}
func (*PhoneDetails) isChannelDetails()           {}
func (*PrintableFormDetails) isChannelDetails()   {}
func (*WebPageDetails) isChannelDetails()         {}
func (*ServiceLocationDetails) isChannelDetails() {}

// serviceChannelJSON breaks the MarshalJSON/UnmarshalJSON recursion.
type serviceChannelJSON ServiceChannel

// UnmarshalJSON decodes the common fields and picks the details variant
// from the "channelType" discriminator.
func (c *ServiceChannel) UnmarshalJSON(data []byte) error {
	var head struct {
		ChannelType ChannelKind `json:"channelType"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	var details ChannelDetails
	switch head.ChannelType {
	case ChannelKindElectronic:
		var d ElectronicDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		details = &d
	case ChannelKindPhone:
		var d PhoneDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		details = &d
	case ChannelKindPrintableForm:
		var d PrintableFormDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		details = &d
	case ChannelKindWebPage:
		var d WebPageDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		details = &d
	case ChannelKindServiceLocation:
		var d ServiceLocationDetails
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		details = &d
	default:
		return fmt.Errorf("unknown channel type %q", head.ChannelType)
	}

	var common serviceChannelJSON
	if err := json.Unmarshal(data, &common); err != nil {
		return err
	}
	*c = ServiceChannel(common)
	c.Details = details
	return nil
}

// MarshalJSON flattens the details variant next to the common fields.
func (c ServiceChannel) MarshalJSON() ([]byte, error) {
	common, err := json.Marshal(serviceChannelJSON(c))
	if err != nil {
		return nil, err
	}
	if c.Details == nil {
		return common, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(common, &merged); err != nil {
		return nil, err
	}
	details, err := json.Marshal(c.Details)
	if err != nil {
		return nil, err
	}
	var extra map[string]json.RawMessage
	if err := json.Unmarshal(details, &extra); err != nil {
		return nil, err
	}
	for k, v := range extra {
		merged[k] = v
	}
	kind, _ := json.Marshal(c.Details.Kind())
	merged["channelType"] = kind
	return json.Marshal(merged)
}
