package rendering

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jonathan/career-kit/internal/types"
)

var (
	doubleRule = strings.Repeat("=", 60)
	singleRule = strings.Repeat("─", 40)
)

// Transcript assembles the plain-text download: a title block, the three
// sections each under a ruled label, and the score line.
func Transcript(name string, doc types.ParsedDocument, score types.ScoreReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "AI RESUME & CAREER KIT\nFor: %s\n%s\n\n", name, doubleRule)
	for _, sec := range []struct {
		label string
		text  string
	}{
		{"SUMMARY", doc.Summary},
		{"RESUME", doc.Resume},
		{"COVER LETTER", doc.CoverLetter},
	} {
		fmt.Fprintf(&b, "%s\n%s\n%s\n\n", sec.label, singleRule, sec.text)
	}

	grade := string(score.Grade)
	if grade == "" {
		grade = "N/A"
	}
	fmt.Fprintf(&b, "%s\nScore: %d/100  |  %s", doubleRule, score.TotalScore, grade)
	return b.String()
}

// DownloadName builds a file name from the candidate name and any further
// parts, joined by underscores, with ext appended. Whitespace becomes an
// underscore and characters unsafe in file names are dropped.
func DownloadName(ext string, parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = safeFileComponent(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, "career_kit")
	}
	return strings.Join(cleaned, "_") + ext
}

func safeFileComponent(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune('_')
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}
