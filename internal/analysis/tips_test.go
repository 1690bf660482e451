package analysis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/career-kit/internal/llm"
	"github.com/jonathan/career-kit/internal/llm/llmtest"
	"github.com/jonathan/career-kit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTips_Ranked(t *testing.T) {
	raw := "Here are your tips:\n🔴 Add metrics to every bullet\n\n🟡 Shorten the summary\n🟢 Use consistent dates\nThanks!"

	tips := ParseTips(raw)
	assert.Equal(t, []types.Tip{
		{Priority: types.TipCritical, Text: "Add metrics to every bullet"},
		{Priority: types.TipImportant, Text: "Shorten the summary"},
		{Priority: types.TipPolish, Text: "Use consistent dates"},
	}, tips)
}

func TestParseTips_UnrankedFallback(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf("%d. tip number %d", i, i))
	}

	tips := ParseTips(strings.Join(lines, "\n\n"))
	require.Len(t, tips, MaxTips)
	assert.Equal(t, types.TipUnranked, tips[0].Priority)
	assert.Equal(t, "1. tip number 1", tips[0].Text)
	assert.Equal(t, "8. tip number 8", tips[7].Text)
}

func TestParseTips_Empty(t *testing.T) {
	assert.Empty(t, ParseTips(" \n \n"))
}

func TestFormatTip(t *testing.T) {
	assert.Equal(t, "🔴 Fix typos", FormatTip(types.Tip{Priority: types.TipCritical, Text: "Fix typos"}))
	assert.Equal(t, "plain", FormatTip(types.Tip{Priority: types.TipUnranked, Text: "plain"}))
}

func TestGenerateTips(t *testing.T) {
	fake := llmtest.New(llmtest.Text("🟢 Polish formatting"))

	tips, err := GenerateTips(context.Background(), fake, "resume", "SRE")
	require.NoError(t, err)
	assert.Equal(t, []types.Tip{{Priority: types.TipPolish, Text: "Polish formatting"}}, tips)

	req := fake.Requests()[0]
	assert.Equal(t, 0.4, req.Temperature)
	assert.Equal(t, 700, req.MaxTokens)
	assert.Equal(t, llm.TierLite, req.Tier)
}
