package notifications

import "strings"

// NormalizePhone reduces a phone number to a single canonical form:
// digits with a leading "+<country code>". Separators (spaces, dashes,
// dots, parentheses) are stripped and numbers without an international
// prefix get defaultCountryCode attached.
func NormalizePhone(raw, defaultCountryCode string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	hasPlus := strings.HasPrefix(raw, "+")

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	number := digits.String()
	if number == "" {
		return ""
	}

	if hasPlus {
		return "+" + number
	}
	// "00" is the common dial-out form of the "+" prefix.
	if strings.HasPrefix(number, "00") {
		return "+" + number[2:]
	}

	cc := strings.TrimPrefix(defaultCountryCode, "+")
	// A leading zero on a national number is dropped before prefixing.
	number = strings.TrimPrefix(number, "0")
	return "+" + cc + number
}
