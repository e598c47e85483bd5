// Package phone handles Thai mobile numbers as they arrive from web forms.
package phone

import (
	"regexp"
	"strings"
)

const countryCode = "+66"

var (
	thaiMobile = regexp.MustCompile(`^0[0-9]{9}$`)
	separator  = regexp.MustCompile(`[-\s]`)
)

// Clean strips dashes and whitespace, the separators users actually type.
func Clean(raw string) string {
	return separator.ReplaceAllString(raw, "")
}

// Valid reports whether the input is a ten-digit Thai mobile number with a
// leading zero, after cleaning.
func Valid(raw string) bool {
	return thaiMobile.MatchString(Clean(raw))
}

// Normalize converts a local Thai mobile number to E.164 form: a leading 0
// becomes +66. Numbers already carrying the country code pass through, and
// anything that is not a well-formed local number is returned unchanged
// rather than forced into the +66 shape.
func Normalize(raw string) string {
	cleaned := Clean(raw)

	if strings.HasPrefix(cleaned, countryCode) {
		return cleaned
	}

	if !thaiMobile.MatchString(cleaned) {
		return cleaned
	}

	return countryCode + cleaned[1:]
}
