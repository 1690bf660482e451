package rendering

import "strings"

// transliterations replaces common typographic characters with ASCII the
// PDF core fonts can always show.
var transliterations = strings.NewReplacer(
	"–", "-",
	"—", "--",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"•", "-",
	"…", "...",
	"é", "e",
	"è", "e",
	"ê", "e",
	"à", "a",
	"ä", "a",
	"ö", "o",
	"ü", "u",
	"·", ".",
	"\u00a0", " ",
	"→", "->",
	"─", "-",
	"\t", " ",
)

// Transliterate maps typographic punctuation to ASCII and silently drops
// every character outside Latin-1, along with control characters other
// than the newline.
func Transliterate(text string) string {
	text = transliterations.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r < 0x20, r == 0x7f:
		case r >= 0x80 && r < 0xa0:
		case r > 0xff:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
