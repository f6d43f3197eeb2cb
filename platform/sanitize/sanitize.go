// Package sanitize cleans free-text user input before it is stored or echoed back.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
	whitespace = regexp.MustCompile(`\s+`)

	entities = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// Label strips markup from a short display label and collapses runs of whitespace,
// including newlines, to single spaces.
func Label(s string) string {
	s = htmlTag.ReplaceAllString(s, "")
	s = entities.Replace(s)
	// Entity decoding can reveal tags that were encoded.
	s = htmlTag.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
