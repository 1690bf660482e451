package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("resume.json", "resume-system")
	require.NoError(t, err)
	assert.Contains(t, prompt, "COVER LETTER")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("resume.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	t.Run("replaces every occurrence", func(t *testing.T) {
		out := Format("{{.A}} and {{.A}} then {{.B}}", map[string]string{"A": "x", "B": "y"})
		assert.Equal(t, "x and x then y", out)
	})

	t.Run("unknown placeholders stay", func(t *testing.T) {
		assert.Equal(t, "{{.C}}", Format("{{.C}}", map[string]string{"A": "x"}))
	})

	t.Run("substituted values are not expanded again", func(t *testing.T) {
		out := Format("{{.A}}|{{.B}}", map[string]string{"A": "{{.B}}", "B": "b"})
		assert.Equal(t, "{{.B}}|b", out)
	})
}

func TestList(t *testing.T) {
	keys, err := List("analysis.json")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"gap-system", "gap-user",
		"linkedin-system", "linkedin-user",
		"tips-system", "tips-user",
	}, keys)
}
