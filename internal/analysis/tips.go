package analysis

import (
	"context"
	"strings"

	"github.com/jonathan/career-kit/internal/llm"
	"github.com/jonathan/career-kit/internal/prompts"
	"github.com/jonathan/career-kit/internal/types"
)

// MaxTips is the number of tips requested, and kept when none are ranked.
const MaxTips = 8

var tipPriorities = []types.TipPriority{types.TipCritical, types.TipImportant, types.TipPolish}

// GenerateTips asks the model for prioritized improvement tips for a resume.
func GenerateTips(ctx context.Context, client llm.Client, resumeText, targetRole string) ([]types.Tip, error) {
	p := prompts.TipsPrompt(resumeText, targetRole)
	raw, err := client.Complete(ctx, llm.Request{
		System:      p.System,
		User:        p.User,
		Tier:        llm.TierLite,
		Temperature: 0.4,
		MaxTokens:   700,
		TopP:        0.9,
	})
	if err != nil {
		return nil, err
	}
	return ParseTips(raw), nil
}

// ParseTips keeps the lines that start with a priority marker. When the
// model ignored the markers, the first MaxTips non-empty lines are kept as
// unranked tips instead.
func ParseTips(raw string) []types.Tip {
	var ranked, plain []types.Tip
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if tip, ok := rankedTip(line); ok {
			ranked = append(ranked, tip)
			continue
		}
		plain = append(plain, types.Tip{Priority: types.TipUnranked, Text: line})
	}

	if len(ranked) > 0 {
		return ranked
	}
	if len(plain) > MaxTips {
		plain = plain[:MaxTips]
	}
	if plain == nil {
		return []types.Tip{}
	}
	return plain
}

func rankedTip(line string) (types.Tip, bool) {
	for _, p := range tipPriorities {
		if rest, ok := strings.CutPrefix(line, p.Marker()); ok {
			return types.Tip{Priority: p, Text: strings.TrimSpace(rest)}, true
		}
	}
	return types.Tip{}, false
}

// FormatTip renders a tip the way the model wrote it.
func FormatTip(t types.Tip) string {
	if m := t.Priority.Marker(); m != "" {
		return m + " " + t.Text
	}
	return t.Text
}
