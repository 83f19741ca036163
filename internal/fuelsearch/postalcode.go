package fuelsearch

import (
	"regexp"
	"strings"
)

const postalCodeLength = 5

// PostalCodePattern matches a complete Spanish postal code.
var PostalCodePattern = regexp.MustCompile(`^\d{5}$`)

// NormalizePostalCode strips every non-digit character and truncates the
// rest to five digits. The result may be shorter than five digits; callers
// validate against PostalCodePattern.
func NormalizePostalCode(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == postalCodeLength {
			break
		}
	}
	return b.String()
}
