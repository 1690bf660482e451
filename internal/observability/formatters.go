package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-kit/internal/types"
)

const (
	boxWidth       = 60
	maxItemsToShow = 8
)

// Printer writes boxed, human-readable reports for the CLI.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // terminal output; nothing useful to do on failure
func (p *Printer) printBox(title, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

func bar(value, limit, width int) string {
	if limit <= 0 {
		return strings.Repeat("░", width)
	}
	filled := min(width, value*width/limit)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// PrintScore outputs the resume strength breakdown.
func (p *Printer) PrintScore(r types.ScoreReport) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total:    %3d/100  %s\n", r.TotalScore, r.Grade)
	fmt.Fprintf(&sb, "Verbs:    %3d/30   %s\n", r.VerbScore, bar(r.VerbScore, 30, 20))
	fmt.Fprintf(&sb, "Keywords: %3d/40   %s\n", r.KeywordScore, bar(r.KeywordScore, 40, 20))
	fmt.Fprintf(&sb, "Length:   %3d/30   %s\n", r.LengthScore, bar(r.LengthScore, 30, 20))
	fmt.Fprintf(&sb, "Words: %d  Action verbs: %d", r.WordCount, r.VerbCount)
	if len(r.FoundVerbs) > 0 {
		fmt.Fprintf(&sb, "\nFound: %s", strings.Join(r.FoundVerbs, ", "))
	}
	p.printBox("RESUME STRENGTH", sb.String())
}

// PrintGap outputs a job description match report.
func (p *Printer) PrintGap(r types.GapReport) {
	var sb strings.Builder
	band := r.Band()
	fmt.Fprintf(&sb, "Match: %d%%  %s\n", r.MatchScore, band.Label)
	fmt.Fprintf(&sb, "%s\n", bar(r.MatchScore, 100, 40))

	writeList(&sb, "Missing keywords", r.MissingKeywords, "✗")
	writeList(&sb, "Present keywords", r.PresentKeywords, "✓")
	writeList(&sb, "Suggestions", r.Suggestions, "•")
	writeList(&sb, "Quick wins", r.QuickWins, "→")

	p.printBox("JOB MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string, mark string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", title)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  %s %s\n", mark, item)
	}
	if len(items) > count {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-count)
	}
}

// PrintTips outputs ranked improvement tips.
//
//nolint:errcheck // terminal output; nothing useful to do on failure
func (p *Printer) PrintTips(tips []types.Tip) {
	if len(tips) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "No tips returned")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}
	lines := make([]string, 0, len(tips))
	for i, tip := range tips {
		mark := tip.Priority.Marker()
		if mark == "" {
			mark = fmt.Sprintf("%d.", i+1)
		}
		lines = append(lines, mark+" "+tip.Text)
	}
	p.printBox("IMPROVEMENT TIPS", strings.Join(lines, "\n"))
}

// PrintSections outputs the word count of each parsed section.
func (p *Printer) PrintSections(doc types.ParsedDocument) {
	var sb strings.Builder
	for i, s := range types.Sections {
		text := doc.Get(s)
		status := fmt.Sprintf("%d words", len(strings.Fields(text)))
		if text == "" {
			status = "missing"
		}
		fmt.Fprintf(&sb, "%-14s %s", strings.ReplaceAll(string(s), "_", " "), status)
		if i < len(types.Sections)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("GENERATED SECTIONS", sb.String())
}
