package domain

import "time"

// ServiceHour is one service-hour definition of a channel or connection.
type ServiceHour struct {
	Type                  ServiceHourType `json:"serviceHourType"`
	ValidFrom             *time.Time      `json:"validFrom,omitempty"`
	ValidTo               *time.Time      `json:"validTo,omitempty"`
	IsAlwaysOpen          bool            `json:"isAlwaysOpen,omitempty"`
	IsClosed              bool            `json:"isClosed,omitempty"`
	IsReservation         bool            `json:"isReservation,omitempty"`
	OpeningHours          []OpeningHour   `json:"openingHour,omitempty"`
	AdditionalInformation LocalizedList   `json:"additionalInformation,omitempty"`
}

// OpeningHour is one opening interval. From and To are "HH:mm" or "HH:mm:ss".
type OpeningHour struct {
	DayFrom *Weekday `json:"dayFrom,omitempty"`
	DayTo   *Weekday `json:"dayTo,omitempty"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	IsExtra bool     `json:"isExtra,omitempty"`
}
