package domain

// Email is a language-bound e-mail address.
type Email struct {
	Language    string `json:"language"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Phone is a language-bound phone, SMS or fax number.
type Phone struct {
	Language               string     `json:"language"`
	Type                   PhoneType  `json:"type,omitempty"`
	PrefixNumber           string     `json:"prefixNumber,omitempty"`
	Number                 string     `json:"number"`
	IsFinnishServiceNumber bool       `json:"isFinnishServiceNumber,omitempty"`
	ChargeType             ChargeType `json:"serviceChargeType,omitempty"`
	ChargeDescription      string     `json:"chargeDescription,omitempty"`
	AdditionalInformation  string     `json:"additionalInformation,omitempty"`
}

// WebPage is a language-bound link.
type WebPage struct {
	Language string `json:"language"`
	URL      string `json:"url"`
	Name     string `json:"value,omitempty"`
}

// AccessibilityClassification describes the accessibility statement of one
// language version of a web-based channel.
type AccessibilityClassification struct {
	Language      string              `json:"language"`
	Level         ClassificationLevel `json:"accessibilityClassificationLevel"`
	WCAGLevel     WCAGLevel           `json:"wcagLevel,omitempty"`
	StatementURL  string              `json:"accessibilityStatementWebPage,omitempty"`
	StatementName string              `json:"accessibilityStatementWebPageName,omitempty"`
}

// ContactDetails is the connection-specific contact payload between a service
// and a channel.
type ContactDetails struct {
	Emails          []Email   `json:"emails,omitempty"`
	Phones          []Phone   `json:"phoneNumbers,omitempty"`
	WebPages        []WebPage `json:"webPages,omitempty"`
	PostalAddresses []Address `json:"postalAddresses,omitempty"`
}

// IsEmpty reports whether no contact detail is set.
func (c *ContactDetails) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.Emails) == 0 && len(c.Phones) == 0 && len(c.WebPages) == 0 && len(c.PostalAddresses) == 0
}
