package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGroq, config.Provider)
	assert.Equal(t, GroqBaseURL, config.BaseURL)
	assert.Equal(t, "llama-3.1-8b-instant", config.GetModel(TierLite))
	assert.Equal(t, "llama-3.3-70b-versatile", config.GetModel(TierStandard))
	assert.Equal(t, GroqModels[0], config.GetModel(TierStandard))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	assert.Equal(t, "fallback-model", config.GetModel(TierStandard))
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", config.GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	original := DefaultConfig()
	updated := original.WithModel(TierLite, "custom")

	assert.Equal(t, "custom", updated.GetModel(TierLite))
	assert.Equal(t, "llama-3.1-8b-instant", original.GetModel(TierLite), "original is unchanged")
	assert.Equal(t, original.BaseURL, updated.BaseURL)
}

func TestWithAllModels(t *testing.T) {
	updated := DefaultConfig().WithAllModels("mixtral-8x7b-32768")
	assert.Equal(t, "mixtral-8x7b-32768", updated.GetModel(TierLite))
	assert.Equal(t, "mixtral-8x7b-32768", updated.GetModel(TierStandard))
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("")
	require.NoError(t, err)
	assert.Equal(t, ProviderGroq, p)

	p, err = ParseProvider(" Gemini ")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p)

	_, err = ParseProvider("openai")
	assert.Error(t, err)
}

func TestConfigFor(t *testing.T) {
	for _, p := range []Provider{ProviderGroq, ProviderGemini, ProviderAnthropic} {
		cfg, err := ConfigFor(p)
		require.NoError(t, err)
		assert.Equal(t, p, cfg.Provider)
		assert.NotEmpty(t, cfg.GetModel(TierStandard))
	}
	_, err := ConfigFor("nope")
	assert.Error(t, err)
}

func TestAPIKeyEnv(t *testing.T) {
	assert.Equal(t, "GROQ_API_KEY", ProviderGroq.APIKeyEnv())
	assert.Equal(t, "GEMINI_API_KEY", ProviderGemini.APIKeyEnv())
	assert.Equal(t, "ANTHROPIC_API_KEY", ProviderAnthropic.APIKeyEnv())
}
