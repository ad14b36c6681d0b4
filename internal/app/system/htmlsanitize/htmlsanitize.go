// Package htmlsanitize strips markup from user-supplied display strings.
//
// Property names arrive from the store, the fallback catalogue, or an
// upstream API and end up inside <option> elements and JSON payloads. They are
// plain text, so the strict policy is used: every tag is removed and only the
// text content survives.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// PlainText removes all HTML from s and returns unescaped, trimmed text.
// html/template escapes on output, so the result must not be pre-escaped.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// IsPlainText reports whether s contains nothing that looks like a tag.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}
