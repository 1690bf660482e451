package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/career-kit/internal/fetch"
	"github.com/jonathan/career-kit/internal/ingestion"
	"github.com/jonathan/career-kit/internal/llm"
	"github.com/jonathan/career-kit/internal/pipeline"
	"github.com/jonathan/career-kit/internal/rendering"
	"github.com/jonathan/career-kit/internal/session"
	"github.com/jonathan/career-kit/internal/types"
)

// ErrNoResult indicates the session has nothing generated yet.
var ErrNoResult = errors.New("session has no generated documents")

// ErrNoLinkedInBio indicates the stored result has no LinkedIn bio.
var ErrNoLinkedInBio = errors.New("session has no LinkedIn bio")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Kind     string   `json:"kind,omitempty"`
	Step     string   `json:"step,omitempty"`
	Problems []string `json:"problems,omitempty"`
	Detail   string   `json:"detail,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		profile     *types.ProfileError
		template    *rendering.TemplateError
		fetchErr    *fetch.Error
		stepErr     *pipeline.StepError
		providerErr *llm.ProviderError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &profile), errors.As(err, &template):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoResult), errors.Is(err, ErrNoLinkedInBio):
		return http.StatusConflict
	case errors.Is(err, ingestion.ErrNoText):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		if fetchErr.Message == "invalid URL" {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	case errors.Is(err, pipeline.ErrEmptyCompletion):
		return http.StatusBadGateway
	case errors.As(err, &providerErr), errors.As(err, &stepErr):
		return kindStatus(llm.Classify(err))
	default:
		return http.StatusInternalServerError
	}
}

func kindStatus(kind llm.ErrorKind) int {
	switch kind {
	case llm.ErrorKindRateLimited:
		return http.StatusTooManyRequests
	case llm.ErrorKindModelUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// errorBody builds the response body for err. Model failures carry the
// user-facing message for their kind with the raw error as detail.
func errorBody(err error) ErrorResponse {
	body := ErrorResponse{Error: err.Error()}

	var stepErr *pipeline.StepError
	if errors.As(err, &stepErr) {
		body.Step = string(stepErr.Step)
	}

	var profile *types.ProfileError
	if errors.As(err, &profile) {
		body.Problems = profile.Problems
		return body
	}

	var providerErr *llm.ProviderError
	if errors.As(err, &providerErr) || (stepErr != nil && stepErr.Step != pipeline.StepValidate &&
		!errors.Is(err, pipeline.ErrEmptyCompletion) && !errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)) {
		kind := llm.Classify(err)
		body.Kind = string(kind)
		body.Error = kind.UserMessage()
		body.Detail = err.Error()
	}
	return body
}
