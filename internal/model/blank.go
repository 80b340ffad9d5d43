package model

import "strings"

// Source files conflate several spellings of "no value". Everything the
// engine treats as missing goes through IsBlank so there is exactly one
// definition of blank end-to-end.
var blankTokens = map[string]struct{}{
	"":     {},
	"-":    {},
	"n/a":  {},
	"na":   {},
	"nan":  {},
	"none": {},
	"null": {},
}

// IsBlank reports whether a raw value carries no usable data.
func IsBlank(s string) bool {
	_, ok := blankTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Clean trims whitespace and collapses blank tokens to the empty string.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if IsBlank(s) {
		return ""
	}
	return s
}
