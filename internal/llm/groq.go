package llm

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

// GroqClient implements Client over Groq's OpenAI-compatible API
type GroqClient struct {
	client *openai.Client
	config *Config
}

// NewGroqClient creates a new Groq client
func NewGroqClient(config *Config, apiKey string) *GroqClient {
	oc := openai.DefaultConfig(apiKey)
	oc.BaseURL = GroqBaseURL
	if config.BaseURL != "" {
		oc.BaseURL = config.BaseURL
	}
	return &GroqClient{
		client: openai.NewClientWithConfig(oc),
		config: config,
	}
}

// Complete sends one chat completion request
func (c *GroqClient) Complete(ctx context.Context, req Request) (string, error) {
	model, err := modelFor(c.config, req.Tier)
	if err != nil {
		return "", err
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
		TopP:        float32(req.TopP),
	})
	if err != nil {
		return "", newProviderError(ProviderGroq, err)
	}
	if len(resp.Choices) == 0 {
		return "", newProviderError(ProviderGroq, errors.New("no choices in response"))
	}

	return StripCodeFence(resp.Choices[0].Message.Content), nil
}

// GetModel returns the model name for a tier
func (c *GroqClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GroqClient) Close() error {
	return nil
}
