package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-kit/internal/llm"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"provider": "gemini",
		"model": "gemini-2.5-flash",
		"template": "classic",
		"port": 9090,
		"allowed_origins": ["https://app.example.com"]
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, "classic", cfg.Template)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "provider: anthropic\nlog_level: debug\nrate_limit_rps: 0.5\nsession_ttl: 30m\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 0.5, cfg.RateLimitRPS, 1e-9)
	assert.Equal(t, 30*time.Minute, cfg.TTL())
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeFile(t, "bad.json", "{not json"))
	assert.ErrorContains(t, err, "parse config JSON")

	_, err = LoadConfig(writeFile(t, "bad.yml", "port: [1, 2"))
	assert.ErrorContains(t, err, "parse config YAML")

	_, err = LoadConfig(writeFile(t, "config.toml", "port = 1"))
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	bad := Config{
		Provider:   "openai",
		Template:   "fancy",
		Port:       70000,
		LogFormat:  "xml",
		SessionTTL: "soon",
		BaseURL:    "not a url",
	}
	err := bad.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 6)
	assert.Contains(t, err.Error(), "Provider")
	assert.Contains(t, err.Error(), "SessionTTL")
}

func TestValidate_ZeroIsValid(t *testing.T) {
	var cfg Config
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Template: "minimal", Port: 3000}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "minimal", merged.Template)
	assert.Equal(t, 3000, merged.Port)
	assert.Equal(t, "groq", merged.Provider)
	assert.Equal(t, "2h", merged.SessionTTL)
	assert.Equal(t, 5, merged.RateLimitBurst)
	assert.Equal(t, []string{"*"}, merged.AllowedOrigins)
	assert.Empty(t, cfg.Provider, "receiver must not change")
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"LLM_PROVIDER":      "anthropic",
		"ANTHROPIC_API_KEY": "sk-ant",
		"GROQ_API_KEY":      "gsk-ignored",
		"PORT":              "9000",
		"RATE_LIMIT_RPS":    "2.5",
		"RATE_LIMIT_BURST":  "10",
		"CORS_ORIGINS":      "https://a.example, https://b.example ,",
		"USE_BROWSER":       "true",
		"LOG_LEVEL":         "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.APIKey)
	assert.Equal(t, 9000, cfg.Port)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestApplyEnv_DefaultProviderKey(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{"GROQ_API_KEY": "gsk-1"})))
	assert.Equal(t, "gsk-1", cfg.APIKey)
}

func TestApplyEnv_Invalid(t *testing.T) {
	for key, value := range map[string]string{
		"PORT":             "eighty",
		"RATE_LIMIT_RPS":   "fast",
		"RATE_LIMIT_BURST": "1.5",
		"USE_BROWSER":      "maybe",
		"LLM_PROVIDER":     "openai",
	} {
		cfg := Defaults()
		err := cfg.ApplyEnv(envMap(map[string]string{key: value}))
		assert.Error(t, err, key)
	}
}

func TestTTL(t *testing.T) {
	assert.Equal(t, 2*time.Hour, (&Config{SessionTTL: "2h"}).TTL())
	assert.Zero(t, (&Config{}).TTL())
	assert.Zero(t, (&Config{SessionTTL: "later"}).TTL())
}

func TestLLMConfig(t *testing.T) {
	cfg := Config{}
	llmCfg, err := cfg.LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGroq, llmCfg.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", llmCfg.GetModel(llm.TierStandard))

	cfg = Config{Provider: "groq", Model: "mixtral-8x7b-32768", BaseURL: "http://localhost:9999/v1"}
	llmCfg, err = cfg.LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, "mixtral-8x7b-32768", llmCfg.GetModel(llm.TierLite))
	assert.Equal(t, "mixtral-8x7b-32768", llmCfg.GetModel(llm.TierStandard))
	assert.Equal(t, "http://localhost:9999/v1", llmCfg.BaseURL)

	_, err = (&Config{Provider: "openai"}).LLMConfig()
	assert.Error(t, err)
}
