package llm

import (
	"context"
	"fmt"
)

// Request is one system + user message exchange.
type Request struct {
	System      string
	User        string
	Tier        ModelTier
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete sends the request and returns the trimmed response text
	Complete(ctx context.Context, req Request) (string, error)
	// GetModel returns the provider model used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if apiKey == "" {
		return nil, &ProviderError{
			Provider: config.Provider,
			Kind:     ErrorKindAuth,
			Message:  fmt.Sprintf("API key is required (set %s)", config.Provider.APIKeyEnv()),
		}
	}

	switch config.Provider {
	case ProviderGroq:
		return NewGroqClient(config, apiKey), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderAnthropic:
		return NewAnthropicClient(config, apiKey), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", config.Provider)
	}
}

func modelFor(config *Config, tier ModelTier) (string, error) {
	if tier == "" {
		tier = TierStandard
	}
	model := config.GetModel(tier)
	if model == "" {
		return "", &ProviderError{
			Provider: config.Provider,
			Kind:     ErrorKindModelUnavailable,
			Message:  fmt.Sprintf("no model configured for tier %s", tier),
		}
	}
	return model, nil
}
