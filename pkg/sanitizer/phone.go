package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used for numbers written without a country code.
const DefaultRegion = "BR"

// NormalizePhone returns phone in E.164 form, or "" when it is not a
// plausible number.
func NormalizePhone(phone string) string {
	return NormalizePhoneIn(phone, DefaultRegion)
}

// NormalizePhoneIn is NormalizePhone with region assumed for local numbers.
func NormalizePhoneIn(phone, region string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil || !phonenumbers.IsPossibleNumber(parsed) {
		return ""
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}
