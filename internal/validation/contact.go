package validation

import (
	"context"
	"fmt"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

func checkEmails(path Path, emails []domain.Email) []Violation {
	var out []Violation
	for i, e := range emails {
		if !isEmail(e.Value) {
			out = append(out, violation(path.Index(i).Field("Value"), KindStructuralConflict,
				fmt.Sprintf("invalid e-mail address %q", e.Value)))
		}
	}
	return out
}

func checkWebPages(path Path, pages []domain.WebPage) []Violation {
	var out []Violation
	for i, p := range pages {
		if !isURL(p.URL) {
			out = append(out, violation(path.Index(i).Field("Url"), KindStructuralConflict,
				fmt.Sprintf("invalid url %q", p.URL)))
		}
	}
	return out
}

func checkURLItems(path Path, items domain.LocalizedList) []Violation {
	var out []Violation
	for i, it := range items {
		if !isURL(it.Value) {
			out = append(out, violation(path.Index(i).Field("Value"), KindStructuralConflict,
				fmt.Sprintf("invalid url %q", it.Value)))
		}
	}
	return out
}

// checkPhones validates number shape, charge description and dial codes.
func checkPhones(ctx context.Context, env Env, path Path, phones []domain.Phone) ([]Violation, error) {
	var out []Violation
	for i, p := range phones {
		pp := path.Index(i)
		if !isPhoneNumber(p.Number) {
			out = append(out, violation(pp.Field("Number"), KindStructuralConflict,
				fmt.Sprintf("invalid phone number %q", p.Number)))
		}
		if p.ChargeType != "" && !p.ChargeType.IsValid() {
			out = append(out, violation(pp.Field("ServiceChargeType"), KindStructuralConflict,
				fmt.Sprintf("unknown charge type %q", p.ChargeType)))
		}
		if p.ChargeType == domain.ChargeTypeOther && p.ChargeDescription == "" {
			out = append(out, violation(pp.Field("ChargeDescription"), KindStructuralConflict,
				"charge description is required when charge type is Other"))
		}
		if p.IsFinnishServiceNumber {
			if p.PrefixNumber != "" {
				out = append(out, violation(pp.Field("PrefixNumber"), KindStructuralConflict,
					"Finnish service numbers have no prefix number"))
			}
			continue
		}
		if p.PrefixNumber == "" {
			out = append(out, violation(pp.Field("PrefixNumber"), KindStructuralConflict,
				"prefix number is required"))
			continue
		}
		vs, err := checkCode(ctx, pp.Field("PrefixNumber"), "dial code", p.PrefixNumber, env.Codes.DialCodeExists)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

// checkContactDetails validates the contact payload of a connection.
func checkContactDetails(ctx context.Context, env Env, path Path, cd *domain.ContactDetails) ([]Violation, error) {
	if cd == nil {
		return nil, nil
	}
	out := checkEmails(path.Field("Emails"), cd.Emails)
	out = append(out, checkWebPages(path.Field("WebPages"), cd.WebPages)...)
	phones, err := checkPhones(ctx, env, path.Field("PhoneNumbers"), cd.Phones)
	if err != nil {
		return nil, err
	}
	out = append(out, phones...)
	addresses, err := checkAddresses(ctx, env, path.Field("Addresses"), cd.PostalAddresses, postalOnlyPolicy)
	if err != nil {
		return nil, err
	}
	return append(out, addresses...), nil
}
