package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-kit/internal/config"
	"github.com/jonathan/career-kit/internal/llm"
	"github.com/jonathan/career-kit/internal/observability"
	"github.com/jonathan/career-kit/internal/pipeline"
)

type globalOptions struct {
	configPath string
	provider   string
	model      string
	apiKey     string
	logLevel   string
	logFormat  string
}

var globalOpts globalOptions

// newClient builds the model client. Tests replace it with a scripted fake.
var newClient = func(ctx context.Context, cfg config.Config, logger *slog.Logger) (llm.Client, error) {
	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return nil, err
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return llm.NewResilientClient(client, llm.DefaultResilienceConfig(), logger), nil
}

// loadSettings resolves the effective configuration: file, then defaults
// for unset values, then environment, then explicitly set flags.
func loadSettings(cmd *cobra.Command, getenv func(string) string) (config.Config, error) {
	var cfg config.Config
	if globalOpts.configPath != "" {
		loaded, err := config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.ApplyEnv(getenv); err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	providerChanged := flags.Changed("provider")
	if providerChanged {
		cfg.Provider = globalOpts.provider
	}
	if flags.Changed("model") {
		cfg.Model = globalOpts.model
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = globalOpts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = globalOpts.logFormat
	}
	if flags.Changed("api-key") {
		cfg.APIKey = globalOpts.apiKey
	} else if providerChanged {
		// The key read by ApplyEnv belonged to the previous provider.
		provider, err := llm.ParseProvider(cfg.Provider)
		if err != nil {
			return config.Config{}, err
		}
		cfg.APIKey = getenv(provider.APIKeyEnv())
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return observability.NewLogger(cfg.LogLevel, cfg.LogFormat, w)
}

// newGenerator wires the model client into a pipeline. The returned close
// function releases the client.
func newGenerator(ctx context.Context, cfg config.Config, logger *slog.Logger, metrics *observability.Metrics) (*pipeline.Generator, func(), error) {
	client, err := newClient(ctx, cfg, logger)
	if err != nil {
		return nil, nil, explain(err)
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("close_client", slog.Any("error", err))
		}
	}
	return pipeline.NewGenerator(client, logger, metrics), closeFn, nil
}

// explain prefixes model failures with the message shown to users for
// their kind.
func explain(err error) error {
	if err == nil {
		return nil
	}
	var providerErr *llm.ProviderError
	var stepErr *pipeline.StepError
	if errors.As(err, &providerErr) || (errors.As(err, &stepErr) && stepErr.Step != pipeline.StepValidate &&
		!errors.Is(err, pipeline.ErrEmptyCompletion)) {
		return fmt.Errorf("%s\n%w", llm.Classify(err).UserMessage(), err)
	}
	return err
}

func stderrLogger(cfg config.Config) *slog.Logger {
	return newLogger(cfg, os.Stderr)
}
