package analysis

import (
	"context"
	"unicode/utf8"

	"github.com/jonathan/career-kit/internal/llm"
	"github.com/jonathan/career-kit/internal/prompts"
	"github.com/jonathan/career-kit/internal/types"
)

// BioCharLimit is LinkedIn's limit for the About section.
const BioCharLimit = 2600

// GenerateLinkedInBio asks the model for a first-person LinkedIn About
// section and returns it trimmed.
func GenerateLinkedInBio(ctx context.Context, client llm.Client, profile types.CandidateProfile) (string, error) {
	p := prompts.LinkedInPrompt(profile)
	bio, err := client.Complete(ctx, llm.Request{
		System:      p.System,
		User:        p.User,
		Tier:        llm.TierLite,
		Temperature: 0.72,
		MaxTokens:   600,
		TopP:        0.9,
	})
	if err != nil {
		return "", err
	}
	return llm.StripCodeFence(bio), nil
}

// WithinLimit reports whether a bio fits LinkedIn's character limit.
func WithinLimit(bio string) bool {
	return utf8.RuneCountInString(bio) <= BioCharLimit
}
