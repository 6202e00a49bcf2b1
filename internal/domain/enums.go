package domain

// PublishingStatus is the lifecycle state of a registry record.
// The zero value means "not specified in the request".
type PublishingStatus string

const (
	PublishingStatusDraft        PublishingStatus = "Draft"
	PublishingStatusPublished    PublishingStatus = "Published"
	PublishingStatusModified     PublishingStatus = "Modified"
	PublishingStatusArchived     PublishingStatus = "Archived"
	PublishingStatusOldPublished PublishingStatus = "OldPublished"

	// PublishingStatusDeleted is accepted on input as an alias of Archived.
	PublishingStatusDeleted PublishingStatus = "Deleted"
)

func (s PublishingStatus) String() string { return string(s) }

// Normalize folds aliases into their canonical status.
func (s PublishingStatus) Normalize() PublishingStatus {
	if s == PublishingStatusDeleted {
		return PublishingStatusArchived
	}
	return s
}

func (s PublishingStatus) IsSpecified() bool { return s != "" }

func (s PublishingStatus) IsValid() bool {
	switch s.Normalize() {
	case PublishingStatusDraft, PublishingStatusPublished, PublishingStatusModified,
		PublishingStatusArchived, PublishingStatusOldPublished:
		return true
	}
	return false
}

// EntityKind identifies which aggregate a record belongs to.
type EntityKind string

const (
	EntityKindOrganization       EntityKind = "Organization"
	EntityKindService            EntityKind = "Service"
	EntityKindServiceChannel     EntityKind = "ServiceChannel"
	EntityKindGeneralDescription EntityKind = "GeneralDescription"
)

func (k EntityKind) String() string { return string(k) }

func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindOrganization, EntityKindService, EntityKindServiceChannel, EntityKindGeneralDescription:
		return true
	}
	return false
}

// ChannelKind is the concrete variant of a service channel.
type ChannelKind string

const (
	ChannelKindElectronic      ChannelKind = "EChannel"
	ChannelKindPhone           ChannelKind = "Phone"
	ChannelKindPrintableForm   ChannelKind = "PrintableForm"
	ChannelKindWebPage         ChannelKind = "WebPage"
	ChannelKindServiceLocation ChannelKind = "ServiceLocation"
)

func (k ChannelKind) String() string { return string(k) }

func (k ChannelKind) IsValid() bool {
	switch k {
	case ChannelKindElectronic, ChannelKindPhone, ChannelKindPrintableForm,
		ChannelKindWebPage, ChannelKindServiceLocation:
		return true
	}
	return false
}

// Localized item type tags.
const (
	NameTypeName          = "Name"
	NameTypeAlternateName = "AlternateName"

	DescriptionTypeSummary               = "Summary"
	DescriptionTypeDescription           = "Description"
	DescriptionTypeUserInstruction       = "UserInstruction"
	DescriptionTypeBackgroundDescription = "BackgroundDescription"
	DescriptionTypeChargeTypeAdditional  = "ChargeTypeAdditionalInfo"
)

// OrganizationType classifies an organization.
type OrganizationType string

const (
	OrganizationTypeState                OrganizationType = "State"
	OrganizationTypeMunicipality         OrganizationType = "Municipality"
	OrganizationTypeRegionalOrganization OrganizationType = "RegionalOrganization"
	OrganizationTypeOrganization         OrganizationType = "Organization"
	OrganizationTypeCompany              OrganizationType = "Company"
	OrganizationTypeSotePublic           OrganizationType = "SotePublic"
	OrganizationTypeSotePrivate          OrganizationType = "SotePrivate"
	OrganizationTypeRegion               OrganizationType = "Region"
)

func (t OrganizationType) String() string { return string(t) }

func (t OrganizationType) IsValid() bool {
	switch t {
	case OrganizationTypeState, OrganizationTypeMunicipality, OrganizationTypeRegionalOrganization,
		OrganizationTypeOrganization, OrganizationTypeCompany, OrganizationTypeSotePublic,
		OrganizationTypeSotePrivate, OrganizationTypeRegion:
		return true
	}
	return false
}

// AreaType describes the geographic reach of an organization, service or channel.
type AreaType string

const (
	AreaTypeNationwide                   AreaType = "Nationwide"
	AreaTypeNationwideExceptAlandIslands AreaType = "NationwideExceptAlandIslands"
	AreaTypeLimitedType                  AreaType = "LimitedType"
)

func (t AreaType) String() string { return string(t) }

func (t AreaType) IsValid() bool {
	switch t {
	case AreaTypeNationwide, AreaTypeNationwideExceptAlandIslands, AreaTypeLimitedType:
		return true
	}
	return false
}

// SubAreaType is the code system of the areas listed under a LimitedType area.
type SubAreaType string

const (
	SubAreaTypeMunicipality    SubAreaType = "Municipality"
	SubAreaTypeProvince        SubAreaType = "Province"
	SubAreaTypeBusinessRegions SubAreaType = "BusinessRegions"
	SubAreaTypeHospitalRegions SubAreaType = "HospitalRegions"
)

func (t SubAreaType) String() string { return string(t) }

func (t SubAreaType) IsValid() bool {
	switch t {
	case SubAreaTypeMunicipality, SubAreaTypeProvince, SubAreaTypeBusinessRegions, SubAreaTypeHospitalRegions:
		return true
	}
	return false
}

// AddressType is the purpose of an address.
type AddressType string

const (
	AddressTypeVisiting AddressType = "Visiting"
	AddressTypePostal   AddressType = "Postal"
	AddressTypeLocation AddressType = "Location"
	AddressTypeDelivery AddressType = "Delivery"
)

func (t AddressType) String() string { return string(t) }

// AddressSubType is the shape of an address.
type AddressSubType string

const (
	AddressSubTypeSingle        AddressSubType = "Single"
	AddressSubTypeStreet        AddressSubType = "Street"
	AddressSubTypePostOfficeBox AddressSubType = "PostOfficeBox"
	AddressSubTypeAbroad        AddressSubType = "Abroad"
	AddressSubTypeOther         AddressSubType = "Other"
	AddressSubTypeNoAddress     AddressSubType = "NoAddress"
)

func (t AddressSubType) String() string { return string(t) }

// ServiceHourType classifies a service-hour entry.
type ServiceHourType string

const (
	ServiceHourTypeStandard  ServiceHourType = "Standard"
	ServiceHourTypeException ServiceHourType = "Exception"
	ServiceHourTypeSpecial   ServiceHourType = "Special"
)

func (t ServiceHourType) String() string { return string(t) }

func (t ServiceHourType) IsValid() bool {
	switch t {
	case ServiceHourTypeStandard, ServiceHourTypeException, ServiceHourTypeSpecial:
		return true
	}
	return false
}

// Weekday names a day of the week in opening hours.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

func (d Weekday) String() string { return string(d) }

func (d Weekday) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// ClassificationLevel is the accessibility compliance level of a web channel.
type ClassificationLevel string

const (
	ClassificationFullyCompliant     ClassificationLevel = "FullyCompliant"
	ClassificationPartiallyCompliant ClassificationLevel = "PartiallyCompliant"
	ClassificationNonCompliant       ClassificationLevel = "NonCompliant"
	ClassificationUnknown            ClassificationLevel = "Unknown"
)

func (l ClassificationLevel) String() string { return string(l) }

func (l ClassificationLevel) IsValid() bool {
	switch l {
	case ClassificationFullyCompliant, ClassificationPartiallyCompliant,
		ClassificationNonCompliant, ClassificationUnknown:
		return true
	}
	return false
}

// WCAGLevel is the conformance level claimed by an accessibility statement.
type WCAGLevel string

const (
	WCAGLevelA   WCAGLevel = "LevelA"
	WCAGLevelAA  WCAGLevel = "LevelAA"
	WCAGLevelAAA WCAGLevel = "LevelAAA"
)

func (l WCAGLevel) String() string { return string(l) }

func (l WCAGLevel) IsValid() bool {
	switch l {
	case WCAGLevelA, WCAGLevelAA, WCAGLevelAAA:
		return true
	}
	return false
}

// FundingType tells how a service is financed.
type FundingType string

const (
	FundingTypePubliclyFunded FundingType = "PubliclyFunded"
	FundingTypeMarketFunded   FundingType = "MarketFunded"
)

func (t FundingType) String() string { return string(t) }

func (t FundingType) IsValid() bool {
	return t == FundingTypePubliclyFunded || t == FundingTypeMarketFunded
}

// ServiceType classifies a service or general description.
type ServiceType string

const (
	ServiceTypeService                   ServiceType = "Service"
	ServiceTypePermitOrObligation        ServiceType = "PermitOrObligation"
	ServiceTypeProfessionalQualification ServiceType = "ProfessionalQualification"
)

func (t ServiceType) String() string { return string(t) }

func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceTypeService, ServiceTypePermitOrObligation, ServiceTypeProfessionalQualification:
		return true
	}
	return false
}

// ChargeType tells whether using a service or phone number costs money.
type ChargeType string

const (
	ChargeTypeFree    ChargeType = "Free"
	ChargeTypeCharged ChargeType = "Charged"
	ChargeTypeOther   ChargeType = "Other"
)

func (t ChargeType) String() string { return string(t) }

func (t ChargeType) IsValid() bool {
	switch t {
	case ChargeTypeFree, ChargeTypeCharged, ChargeTypeOther:
		return true
	}
	return false
}

// PhoneType is the medium of a phone number.
type PhoneType string

const (
	PhoneTypePhone PhoneType = "Phone"
	PhoneTypeSms   PhoneType = "Sms"
	PhoneTypeFax   PhoneType = "Fax"
)

func (t PhoneType) String() string { return string(t) }

// ProvisionType tells how a service producer takes part in producing a service.
type ProvisionType string

const (
	ProvisionTypeSelfProduced     ProvisionType = "SelfProduced"
	ProvisionTypePurchaseServices ProvisionType = "PurchaseServices"
	ProvisionTypeOther            ProvisionType = "Other"
)

func (t ProvisionType) String() string { return string(t) }

func (t ProvisionType) IsValid() bool {
	switch t {
	case ProvisionTypeSelfProduced, ProvisionTypePurchaseServices, ProvisionTypeOther:
		return true
	}
	return false
}

// UserRole represents the authorization level of an API caller.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
