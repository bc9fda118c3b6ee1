package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// NormalizeColumn flattens a scraped column header for keyword probing:
// lowercased, trimmed, inner whitespace collapsed to underscores.
func NormalizeColumn(input string) string {
	s := strings.ToLower(NormalizeSpaces(input))
	return strings.ReplaceAll(s, " ", "_")
}

// StringOrNil trims the value and returns nil for empty strings, so optional
// columns round-trip as SQL NULL instead of ''.
func StringOrNil(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func StringPtr(v string) *string { return &v }
