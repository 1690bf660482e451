// Package analysis runs the secondary model calls of a generation: job
// description gap analysis, improvement tips, and the LinkedIn bio. Each
// call has a tolerant parser that accepts whatever text the model returns.
package analysis

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/career-kit/internal/llm"
	"github.com/jonathan/career-kit/internal/parsing"
	"github.com/jonathan/career-kit/internal/prompts"
	"github.com/jonathan/career-kit/internal/types"
)

// ErrEmptyJobDescription is returned when there is nothing to compare against.
var ErrEmptyJobDescription = errors.New("job description is empty")

// Gap report block labels
const (
	labelMatchScore      = "MATCH_SCORE"
	labelMissingKeywords = "MISSING_KEYWORDS"
	labelPresentKeywords = "PRESENT_KEYWORDS"
	labelSuggestions     = "SUGGESTIONS"
	labelQuickWins       = "QUICK_WINS"
)

var gapLabels = map[string]bool{
	labelMatchScore:      true,
	labelMissingKeywords: true,
	labelPresentKeywords: true,
	labelSuggestions:     true,
	labelQuickWins:       true,
}

var (
	// anyLabelLine ends the current block, known label or not.
	anyLabelLine = regexp.MustCompile(`^[A-Z_]{3,}:?$`)
	// inlineLabel matches a known label written with its value on the same line.
	inlineLabel = regexp.MustCompile(`^([A-Za-z_]{3,})\s*:?\s*(.*)$`)
	digitRun    = regexp.MustCompile(`\d+`)
)

const maxMatchScore = 100

// AnalyzeGap asks the model to compare resumeText with a job description and
// parses the answer. Only the model call can fail; a malformed answer yields
// a report with zero score and empty lists.
func AnalyzeGap(ctx context.Context, client llm.Client, jobDescription, resumeText string) (types.GapReport, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return types.GapReport{}, ErrEmptyJobDescription
	}

	p := prompts.GapPrompt(jobDescription, resumeText)
	raw, err := client.Complete(ctx, llm.Request{
		System:      p.System,
		User:        p.User,
		Tier:        llm.TierStandard,
		Temperature: 0.25,
		MaxTokens:   900,
		TopP:        0.9,
	})
	if err != nil {
		return types.GapReport{}, err
	}

	return ParseGapReport(raw), nil
}

// ParseGapReport extracts the five labeled blocks from a gap analysis answer.
// A block starts at its label line and ends before the next all-caps label
// line. Missing blocks give empty values; the score is clamped to 0-100.
func ParseGapReport(raw string) types.GapReport {
	blocks := splitBlocks(parsing.StripMarkdown(raw))

	return types.GapReport{
		MatchScore:      parseScore(blocks[labelMatchScore]),
		MissingKeywords: splitKeywords(blocks[labelMissingKeywords]),
		PresentKeywords: splitKeywords(blocks[labelPresentKeywords]),
		Suggestions:     splitBullets(blocks[labelSuggestions]),
		QuickWins:       splitBullets(blocks[labelQuickWins]),
	}
}

// splitBlocks groups body lines under the label that precedes them.
// The first occurrence of a label wins.
func splitBlocks(text string) map[string][]string {
	blocks := make(map[string][]string)
	seen := make(map[string]bool)
	current := ""

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := inlineLabel.FindStringSubmatch(trimmed); m != nil {
			label := strings.ToUpper(m[1])
			if gapLabels[label] && (m[2] == "" || strings.Contains(trimmed, ":")) {
				current = ""
				if !seen[label] {
					seen[label] = true
					current = label
					if m[2] != "" {
						blocks[label] = append(blocks[label], m[2])
					}
				}
				continue
			}
		}
		if anyLabelLine.MatchString(trimmed) {
			current = ""
			continue
		}
		if current != "" {
			blocks[current] = append(blocks[current], line)
		}
	}
	return blocks
}

// parseScore reads the first digit run of the block.
func parseScore(lines []string) int {
	digits := digitRun.FindString(strings.Join(lines, "\n"))
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Only an out-of-range run fails to parse.
		return maxMatchScore
	}
	return min(n, maxMatchScore)
}

// splitKeywords splits a block on commas and line breaks.
func splitKeywords(lines []string) []string {
	out := make([]string, 0)
	for _, line := range lines {
		for _, item := range strings.Split(line, ",") {
			if item = strings.TrimSpace(trimBullet(item)); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// splitBullets returns one entry per non-empty line with its bullet marker removed.
func splitBullets(lines []string) []string {
	out := make([]string, 0)
	for _, line := range lines {
		if item := strings.TrimSpace(trimBullet(line)); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func trimBullet(s string) string {
	return strings.TrimLeft(strings.TrimSpace(s), "-*• ")
}
