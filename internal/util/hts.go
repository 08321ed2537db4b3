package util

import "strings"

// FormatHTS canonicalizes an HTS code into the DDDD.DD.DDDD grouping.
// Separators are dropped, the digit run is zero-padded on the right to ten
// digits and truncated to ten. Empty input and inputs without digits stay
// empty. The function is idempotent on already-canonical codes.
func FormatHTS(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	code := digits.String()
	if code == "" {
		return ""
	}

	for len(code) < 10 {
		code += "0"
	}
	code = code[:10]

	return code[:4] + "." + code[4:6] + "." + code[6:10]
}

// Heading returns the first four digits of an HTS code, separators stripped.
// The heading is what tariff-shift classification compares.
func Heading(hts string) string {
	stripped := strings.ReplaceAll(hts, ".", "")
	if len(stripped) <= 4 {
		return stripped
	}
	return stripped[:4]
}

// NormalizeCountry maps a raw country cell to the trimmed upper-case form
// used everywhere origin countries are compared.
func NormalizeCountry(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
