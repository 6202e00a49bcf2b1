package domain

// Address is a postal, visiting, location or delivery address. Which fields
// are meaningful depends on SubType.
type Address struct {
	Type                  AddressType    `json:"type"`
	SubType               AddressSubType `json:"subType"`
	Country               string         `json:"country,omitempty"`
	PostalCode            string         `json:"postalCode,omitempty"`
	Municipality          string         `json:"municipality,omitempty"`
	StreetAddress         LocalizedList  `json:"street,omitempty"`
	StreetNumber          string         `json:"streetNumber,omitempty"`
	PostOfficeBox         LocalizedList  `json:"postOfficeBox,omitempty"`
	ForeignAddress        LocalizedList  `json:"foreignAddress,omitempty"`
	AdditionalInformation LocalizedList  `json:"additionalInformation,omitempty"`
	Latitude              string         `json:"latitude,omitempty"`
	Longitude             string         `json:"longitude,omitempty"`
}
