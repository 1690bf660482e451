package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-kit/internal/fetch"
	"github.com/jonathan/career-kit/internal/ingestion"
	"github.com/jonathan/career-kit/internal/llm"
	"github.com/jonathan/career-kit/internal/pipeline"
	"github.com/jonathan/career-kit/internal/rendering"
	"github.com/jonathan/career-kit/internal/session"
	"github.com/jonathan/career-kit/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "body", Message: "request body is empty"}
	assert.Equal(t, "validation error: body - request body is empty", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func providerStep(kind llm.ErrorKind) error {
	return &pipeline.StepError{Step: pipeline.StepGenerate, Err: &llm.ProviderError{Provider: llm.ProviderGroq, Kind: kind}}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", &ErrValidation{Field: "body"}, http.StatusBadRequest},
		{"profile", &pipeline.StepError{Step: pipeline.StepValidate, Err: &types.ProfileError{Problems: []string{"Email is required."}}}, http.StatusBadRequest},
		{"template", &rendering.TemplateError{Name: "fancy"}, http.StatusBadRequest},
		{"session not found", session.ErrNotFound, http.StatusNotFound},
		{"no result", ErrNoResult, http.StatusConflict},
		{"no bio", ErrNoLinkedInBio, http.StatusConflict},
		{"no text", fmt.Errorf("fetch job description: %w", ingestion.ErrNoText), http.StatusUnprocessableEntity},
		{"invalid URL", &fetch.Error{URL: "ftp://x", Message: "invalid URL"}, http.StatusBadRequest},
		{"fetch failure", &fetch.Error{URL: "https://x", Message: "HTTP status 500"}, http.StatusBadGateway},
		{"auth", providerStep(llm.ErrorKindAuth), http.StatusBadGateway},
		{"rate limited", providerStep(llm.ErrorKindRateLimited), http.StatusTooManyRequests},
		{"model unavailable", providerStep(llm.ErrorKindModelUnavailable), http.StatusServiceUnavailable},
		{"unknown provider error", providerStep(llm.ErrorKindUnknown), http.StatusBadGateway},
		{"empty completion", &pipeline.StepError{Step: pipeline.StepGenerate, Err: pipeline.ErrEmptyCompletion}, http.StatusBadGateway},
		{"deadline", &pipeline.StepError{Step: pipeline.StepTips, Err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"canceled", &pipeline.StepError{Step: pipeline.StepTips, Err: context.Canceled}, http.StatusRequestTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorBody(t *testing.T) {
	t.Run("profile problems", func(t *testing.T) {
		err := &types.ProfileError{Problems: []string{"Phone is required.", "Skills is required."}}
		body := errorBody(err)
		assert.Equal(t, []string{"Phone is required.", "Skills is required."}, body.Problems)
		assert.Empty(t, body.Kind)
	})

	t.Run("provider failure", func(t *testing.T) {
		err := providerStep(llm.ErrorKindRateLimited)
		body := errorBody(err)
		assert.Equal(t, "rate_limited", body.Kind)
		assert.Equal(t, "generate", body.Step)
		assert.Equal(t, llm.ErrorKindRateLimited.UserMessage(), body.Error)
		assert.Equal(t, err.Error(), body.Detail)
	})

	t.Run("plain error in step", func(t *testing.T) {
		err := &pipeline.StepError{Step: pipeline.StepLinkedIn, Err: errors.New("invalid api key")}
		body := errorBody(err)
		assert.Equal(t, "auth", body.Kind)
		assert.Equal(t, "linkedin_bio", body.Step)
	})

	t.Run("empty completion", func(t *testing.T) {
		err := &pipeline.StepError{Step: pipeline.StepGenerate, Err: pipeline.ErrEmptyCompletion}
		body := errorBody(err)
		assert.Empty(t, body.Kind)
		assert.Equal(t, err.Error(), body.Error)
	})

	t.Run("other", func(t *testing.T) {
		body := errorBody(ErrNoResult)
		assert.Equal(t, "session has no generated documents", body.Error)
		assert.Empty(t, body.Step)
	})
}
