package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ResilienceConfig controls retries and the circuit breaker around a client.
type ResilienceConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64

	BreakerMinRequests  uint32
	BreakerFailureRatio float64
	BreakerOpenTimeout  time.Duration
	BreakerHalfOpenMax  uint32
}

// DefaultResilienceConfig returns conservative defaults for interactive use.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		MaxAttempts:         3,
		InitialBackoff:      time.Second,
		MaxBackoff:          8 * time.Second,
		Multiplier:          2,
		BreakerMinRequests:  5,
		BreakerFailureRatio: 0.6,
		BreakerOpenTimeout:  30 * time.Second,
		BreakerHalfOpenMax:  1,
	}
}

func (c ResilienceConfig) normalize() ResilienceConfig {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.Multiplier < 1 {
		c.Multiplier = 1
	}
	if c.MaxBackoff < c.InitialBackoff {
		c.MaxBackoff = c.InitialBackoff
	}
	if c.BreakerHalfOpenMax == 0 {
		c.BreakerHalfOpenMax = 1
	}
	return c
}

// ResilientClient retries transient failures of another client and stops
// calling it for a while once most recent calls have failed.
type ResilientClient struct {
	next    Client
	cfg     ResilienceConfig
	breaker *gobreaker.CircuitBreaker[string]
	logger  *slog.Logger
}

// NewResilientClient wraps next with retries and a circuit breaker.
func NewResilientClient(next Client, cfg ResilienceConfig, logger *slog.Logger) *ResilientClient {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.normalize()
	c := &ResilientClient{next: next, cfg: cfg, logger: logger}

	c.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "llm",
		MaxRequests: cfg.BreakerHalfOpenMax,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.BreakerFailureRatio
		},
		IsSuccessful: func(err error) bool {
			// Bad keys and cancelled requests say nothing about provider health.
			return err == nil ||
				Classify(err) == ErrorKindAuth ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// Complete forwards the request, retrying rate limits and server errors.
func (c *ResilientClient) Complete(ctx context.Context, req Request) (string, error) {
	text, err := c.breaker.Execute(func() (string, error) {
		return c.completeWithRetry(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", &ProviderError{
			Kind:    ErrorKindModelUnavailable,
			Message: "provider temporarily unavailable after repeated failures",
			Cause:   err,
		}
	}
	return text, err
}

func (c *ResilientClient) completeWithRetry(ctx context.Context, req Request) (string, error) {
	backoff := c.cfg.InitialBackoff
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := c.next.Complete(ctx, req)
		if err == nil {
			return text, nil
		}
		if !IsRetryable(err) || attempt >= c.cfg.MaxAttempts {
			return "", err
		}

		wait := min(backoff, c.cfg.MaxBackoff)
		c.logger.Warn("llm_retry",
			"attempt", attempt,
			"max_attempts", c.cfg.MaxAttempts,
			"backoff_ms", wait.Milliseconds(),
			"error", err,
		)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", err
			case <-timer.C:
			}
		}
		backoff = time.Duration(float64(backoff) * c.cfg.Multiplier)
	}
}

// GetModel returns the wrapped client's model for a tier
func (c *ResilientClient) GetModel(tier ModelTier) string {
	return c.next.GetModel(tier)
}

// Close closes the wrapped client
func (c *ResilientClient) Close() error {
	return c.next.Close()
}
