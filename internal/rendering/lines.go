package rendering

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-kit/internal/parsing"
)

// LineKind is the layout role of one line of body text.
type LineKind int

// Line kinds
const (
	LineBlank LineKind = iota
	LineHeading
	LineBullet
	LineParagraph
)

func (k LineKind) String() string {
	switch k {
	case LineHeading:
		return "heading"
	case LineBullet:
		return "bullet"
	case LineParagraph:
		return "paragraph"
	default:
		return "blank"
	}
}

const (
	maxHeadingLen = 50
	bulletPrefix  = "- "
)

var spaceRun = regexp.MustCompile(` {3,}`)

// Line is a classified line ready for layout. Bullet text has its dash prefix removed.
type Line struct {
	Kind LineKind
	Text string
}

// PrepareText collapses runs of three or more spaces, strips stray
// markdown, and trims the result.
func PrepareText(text string) string {
	text = spaceRun.ReplaceAllString(text, " ")
	text = parsing.StripMarkdown(text)
	return strings.TrimSpace(text)
}

// ClassifyLine decides how a line is laid out. A heading is all caps with at
// least one letter, at most 50 characters, and does not start with a dash.
// A bullet starts with "- " once trimmed.
func ClassifyLine(line string) LineKind {
	s := strings.TrimSpace(line)
	switch {
	case s == "":
		return LineBlank
	case isHeading(s):
		return LineHeading
	case strings.HasPrefix(s, bulletPrefix):
		return LineBullet
	default:
		return LineParagraph
	}
}

func isHeading(s string) bool {
	if s != strings.ToUpper(s) || strings.HasPrefix(s, "-") {
		return false
	}
	if utf8.RuneCountInString(s) > maxHeadingLen {
		return false
	}
	return strings.IndexFunc(s, isUpperASCII) >= 0
}

// isUpperASCII reports A-Z. Caseless scripts equal their own upper case
// and would otherwise pass as headings.
func isUpperASCII(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Layout prepares a section's text and classifies each of its lines.
func Layout(text string) []Line {
	prepared := PrepareText(text)
	if prepared == "" {
		return nil
	}

	raw := strings.Split(prepared, "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		kind := ClassifyLine(l)
		s := strings.TrimSpace(l)
		if kind == LineBullet {
			s = strings.TrimSpace(strings.TrimPrefix(s, bulletPrefix))
		}
		lines = append(lines, Line{Kind: kind, Text: s})
	}
	return lines
}
