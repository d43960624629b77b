// Package cep handles Brazilian postal codes (CEP, format NNNNN-NNN).
package cep

import "strings"

const digits = 8

// Normalize strips every non-digit rune. Length is not enforced here, so
// overlong inputs stay overlong and fail Valid.
func Normalize(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Format renders the display form: the digits are capped at 8 and a hyphen
// is inserted after the fifth once the input grows past five digits
// ("12345678" -> "12345-678").
func Format(value string) string {
	clean := Normalize(value)
	if len(clean) > digits {
		clean = clean[:digits]
	}
	if len(clean) <= 5 {
		return clean
	}
	return clean[:5] + "-" + clean[5:]
}

// Valid reports whether the value normalizes to a complete 8-digit CEP.
func Valid(value string) bool {
	return len(Normalize(value)) == digits
}
