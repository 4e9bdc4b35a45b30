package utils

import (
	"regexp"
	"strings"
)

// internationalPhonePattern matches the canonical storage form:
// + then a 1-3 digit country code then 4-14 subscriber digits.
var internationalPhonePattern = regexp.MustCompile(`^\+\d{1,3}\d{4,14}$`)

// PhoneNormalizer canonicalizes free-form phone input into international
// format. Local numbers with 8 significant digits are assumed to belong to
// DefaultCountryCode; anything else must arrive fully qualified with its
// +<code> prefix. Normalize is total: the worst input still yields a
// best-effort string, and Validate decides whether it is acceptable.
type PhoneNormalizer struct {
	DefaultCountryCode string
}

func NewPhoneNormalizer(defaultCountryCode string) *PhoneNormalizer {
	if defaultCountryCode == "" {
		defaultCountryCode = "232"
	}
	return &PhoneNormalizer{DefaultCountryCode: strings.TrimPrefix(defaultCountryCode, "+")}
}

func (p *PhoneNormalizer) Normalize(raw string) string {
	phone := strings.TrimSpace(raw)
	for _, sep := range []string{" ", "-", "(", ")", "."} {
		phone = strings.ReplaceAll(phone, sep, "")
	}

	var cleaned strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' || c == '+' {
			cleaned.WriteRune(c)
		}
	}
	result := cleaned.String()

	if strings.HasPrefix(result, "+") {
		return result
	}

	digits := strings.ReplaceAll(result, "+", "")
	digits = strings.TrimLeft(digits, "0")

	// Local-format number: assume the default country.
	if len(digits) == 8 {
		return "+" + p.DefaultCountryCode + digits
	}

	// Already carries the default country code without the plus.
	if strings.HasPrefix(digits, p.DefaultCountryCode) && len(digits) == len(p.DefaultCountryCode)+8 {
		return "+" + digits
	}

	return "+" + digits
}

// Validate reports whether a normalized phone number is in acceptable
// international form.
func (p *PhoneNormalizer) Validate(normalized string) bool {
	return internationalPhonePattern.MatchString(normalized)
}
