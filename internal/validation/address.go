package validation

import (
	"context"
	"fmt"
	"slices"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// addressPolicy lists the sub-types accepted for each address type.
type addressPolicy map[domain.AddressType][]domain.AddressSubType

var (
	organizationAddressPolicy = addressPolicy{
		domain.AddressTypeVisiting: {domain.AddressSubTypeStreet, domain.AddressSubTypeAbroad},
		domain.AddressTypePostal:   {domain.AddressSubTypeStreet, domain.AddressSubTypePostOfficeBox, domain.AddressSubTypeAbroad},
	}
	serviceLocationAddressPolicy = addressPolicy{
		domain.AddressTypeLocation: {domain.AddressSubTypeSingle, domain.AddressSubTypeOther, domain.AddressSubTypeAbroad},
		domain.AddressTypePostal:   {domain.AddressSubTypeStreet, domain.AddressSubTypePostOfficeBox, domain.AddressSubTypeAbroad},
	}
	postalOnlyPolicy = addressPolicy{
		domain.AddressTypePostal: {domain.AddressSubTypeStreet, domain.AddressSubTypePostOfficeBox, domain.AddressSubTypeAbroad},
	}
	deliveryAddressPolicy = addressPolicy{
		domain.AddressTypePostal:   {domain.AddressSubTypeStreet, domain.AddressSubTypePostOfficeBox, domain.AddressSubTypeNoAddress},
		domain.AddressTypeDelivery: {domain.AddressSubTypeStreet, domain.AddressSubTypePostOfficeBox, domain.AddressSubTypeNoAddress},
	}
)

// checkAddresses validates type/sub-type combinations, the fields each
// sub-type needs and the referenced codes.
func checkAddresses(ctx context.Context, env Env, path Path, addrs []domain.Address, policy addressPolicy) ([]Violation, error) {
	var out []Violation
	for i, a := range addrs {
		vs, err := checkAddress(ctx, env, path.Index(i), a, policy)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

func checkAddress(ctx context.Context, env Env, path Path, a domain.Address, policy addressPolicy) ([]Violation, error) {
	allowed, ok := policy[a.Type]
	if !ok {
		return []Violation{violation(path.Field("Type"), KindStructuralConflict,
			fmt.Sprintf("address type %q is not allowed here", a.Type))}, nil
	}
	if !slices.Contains(allowed, a.SubType) {
		return []Violation{violation(path.Field("SubType"), KindStructuralConflict,
			fmt.Sprintf("sub type %q is not allowed for %s address", a.SubType, a.Type))}, nil
	}

	var out []Violation
	required := func(field string, empty bool) {
		if empty {
			out = append(out, violation(path.Field(field), KindStructuralConflict,
				fmt.Sprintf("%s is required for %s address", field, a.SubType)))
		}
	}
	switch a.SubType {
	case domain.AddressSubTypeStreet, domain.AddressSubTypeSingle:
		required("Street", len(a.StreetAddress) == 0)
		required("PostalCode", a.PostalCode == "")
	case domain.AddressSubTypePostOfficeBox:
		required("PostOfficeBox", len(a.PostOfficeBox) == 0)
		required("PostalCode", a.PostalCode == "")
	case domain.AddressSubTypeAbroad:
		required("ForeignAddress", len(a.ForeignAddress) == 0)
	case domain.AddressSubTypeOther:
		required("Latitude", a.Latitude == "")
		required("Longitude", a.Longitude == "")
	}

	lookups := []struct {
		field, what, code string
		exists            existsFunc
	}{
		{"Country", "country", a.Country, env.Codes.CountryExists},
		{"PostalCode", "postal code", a.PostalCode, env.Codes.PostalCodeExists},
		{"Municipality", "municipality", a.Municipality, env.Codes.MunicipalityExists},
	}
	for _, l := range lookups {
		vs, err := checkCode(ctx, path.Field(l.field), l.what, l.code, l.exists)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

// checkAbroadExclusivity reports a single violation when a foreign location
// address is mixed with domestic location addresses.
func checkAbroadExclusivity(path Path, addrs []domain.Address) []Violation {
	abroad, domestic := false, false
	for _, a := range addrs {
		if a.Type != domain.AddressTypeLocation {
			continue
		}
		if a.SubType == domain.AddressSubTypeAbroad {
			abroad = true
		} else {
			domestic = true
		}
	}
	if abroad && domestic {
		return []Violation{violation(path, KindStructuralConflict,
			"an Abroad location address cannot be combined with other location addresses")}
	}
	return nil
}
