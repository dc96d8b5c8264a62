// Package slug derives GitHub-style anchor fragments from heading text.
package slug

import (
	"strings"
	"unicode"
)

// Slug lowercases the heading, drops characters that are not letters, digits,
// spaces, or hyphens, collapses whitespace runs to single hyphens and trims
// hyphens from both ends. The result must match the anchors produced by the
// heading index exactly, so cross-file fragments agree.
func Slug(heading string) string {
	var b strings.Builder
	b.Grow(len(heading))

	inSpace := false
	for _, r := range strings.ToLower(strings.TrimSpace(heading)) {
		switch {
		case unicode.IsSpace(r):
			inSpace = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			if inSpace {
				b.WriteByte('-')
				inSpace = false
			}
			b.WriteRune(r)
		default:
			// Punctuation vanishes without becoming a separator.
		}
	}

	return strings.Trim(b.String(), "-")
}
