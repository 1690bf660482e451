// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/jonathan/career-kit/internal/llm"
)

// ErrNoReply is returned once a Client runs out of scripted replies.
var ErrNoReply = errors.New("llmtest: no scripted reply left")

// Reply is one scripted response.
type Reply struct {
	Text string
	Err  error
}

// Text scripts a successful response.
func Text(s string) Reply { return Reply{Text: s} }

// Fail scripts a failed response.
func Fail(err error) Reply { return Reply{Err: err} }

// Client replays scripted replies in order and records every request.
type Client struct {
	mu       sync.Mutex
	replies  []Reply
	requests []llm.Request
	closed   bool

	// Model is reported by GetModel for every tier.
	Model string
}

// New returns a Client that answers with replies in order.
func New(replies ...Reply) *Client {
	return &Client{replies: replies, Model: "fake-model"}
}

// Complete returns the next scripted reply.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, req)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(c.replies) == 0 {
		return "", ErrNoReply
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	return r.Text, r.Err
}

// GetModel returns the configured fake model name.
func (c *Client) GetModel(llm.ModelTier) string {
	return c.Model
}

// Close marks the client closed.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

// Requests returns a copy of every request received so far.
func (c *Client) Requests() []llm.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]llm.Request(nil), c.requests...)
}

// Closed reports whether Close was called.
func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
