// Package parsing splits raw model output into labeled document sections.
package parsing

import (
	"regexp"
)

var (
	boldStars     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicStars   = regexp.MustCompile(`\*(.+?)\*`)
	boldUnderline = regexp.MustCompile(`__(.+?)__`)
	headingHashes = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	glyphBullet   = regexp.MustCompile(`(?m)^\s*•\s`)
)

// StripMarkdown removes the markdown decoration models tend to add despite
// being asked for plain text: bold and italic emphasis, heading hashes, and
// bullet glyphs, which become the "  - " bullet convention.
func StripMarkdown(text string) string {
	text = boldStars.ReplaceAllString(text, "$1")
	text = italicStars.ReplaceAllString(text, "$1")
	text = boldUnderline.ReplaceAllString(text, "$1")
	text = headingHashes.ReplaceAllString(text, "")
	text = glyphBullet.ReplaceAllString(text, "  - ")
	return text
}
