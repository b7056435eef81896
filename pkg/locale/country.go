package locale

import (
	"strings"
)

// DefaultRegion is assumed when the calendar zone belongs to no known country.
const DefaultRegion = "BR"

type Country struct {
	Code      string   // ISO 3166-1 alpha-2 country code (e.g., "BR", "PT")
	Name      string   // Human-readable country name
	Timezones []string // IANA zones whose local numbers default to this country
}

var Countries = map[string]Country{
	"BR": {
		Code:      "BR",
		Name:      "Brasil",
		Timezones: []string{"America/Sao_Paulo", "America/Manaus", "America/Recife", "America/Fortaleza", "America/Belem", "America/Bahia", "Brazil/East"},
	},
	"PT": {
		Code:      "PT",
		Name:      "Portugal",
		Timezones: []string{"Europe/Lisbon", "Atlantic/Madeira", "Atlantic/Azores", "Portugal"},
	},
	"US": {
		Code:      "US",
		Name:      "United States",
		Timezones: []string{"America/New_York", "America/Chicago", "America/Denver", "America/Los_Angeles", "US/Eastern", "US/Pacific"},
	},
}

// RegionForTimezone returns the phone region used for numbers written
// without a country code, given the calendar's IANA zone.
func RegionForTimezone(tz string) string {
	tz = strings.TrimSpace(tz)
	for code, country := range Countries {
		for _, z := range country.Timezones {
			if strings.EqualFold(tz, z) {
				return code
			}
		}
	}
	return DefaultRegion
}
