// Package nlp holds the small text-normalization helpers the reconciler
// uses to compare skills, company names and titles across sources.
package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases s, replaces every non-alphanumeric run with a
// single space and trims. The result is the comparison form used for
// de-duplication keys.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Key builds a composite de-duplication key from normalized parts.
func Key(parts ...string) string {
	normalized := make([]string, 0, len(parts))
	for _, p := range parts {
		normalized = append(normalized, NormalizeText(p))
	}
	return strings.Join(normalized, "|")
}
