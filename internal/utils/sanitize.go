package utils

import (
	"html"    // Entity unescaping
	"strings" // Whitespace trimming

	"github.com/microcosm-cc/bluemonday" // HTML sanitizer
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all HTML from user supplied text and trims surrounding whitespace.
// Entities escaped by the policy are decoded again since the result is stored as plain text.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
