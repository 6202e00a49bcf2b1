package validation

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// formats is safe for concurrent use; it only caches parsed tags.
var formats = validator.New()

var (
	businessCodePattern = regexp.MustCompile(`^[0-9]{7}-[0-9]$`)
	oidPattern          = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)
	phoneNumberPattern  = regexp.MustCompile(`^[0-9 ]{1,20}$`)
)

func isEmail(s string) bool { return formats.Var(s, "required,email") == nil }

func isURL(s string) bool { return formats.Var(s, "required,url") == nil }

func isOID(s string) bool { return oidPattern.MatchString(s) }

func isPhoneNumber(s string) bool { return phoneNumberPattern.MatchString(s) }

// isBusinessCode checks the "1234567-8" format and its modulo 11 check digit.
func isBusinessCode(s string) bool {
	if !businessCodePattern.MatchString(s) {
		return false
	}
	weights := [7]int{7, 9, 10, 5, 8, 4, 2}
	sum := 0
	for i, w := range weights {
		sum += int(s[i]-'0') * w
	}
	check, _ := strconv.Atoi(s[8:])
	switch rem := sum % 11; rem {
	case 0:
		return check == 0
	case 1:
		return false
	default:
		return check == 11-rem
	}
}
