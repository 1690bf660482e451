package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
)

// ErrorKind classifies a failed model call for presentation and retry decisions.
type ErrorKind string

// Error kinds
const (
	ErrorKindUnknown          ErrorKind = "unknown"
	ErrorKindAuth             ErrorKind = "auth"
	ErrorKindRateLimited      ErrorKind = "rate_limited"
	ErrorKindModelUnavailable ErrorKind = "model_unavailable"
)

// UserMessage is the short explanation shown to a user for this kind of failure.
func (k ErrorKind) UserMessage() string {
	switch k {
	case ErrorKindAuth:
		return "Invalid API key: verify the key with your model provider."
	case ErrorKindRateLimited:
		return "Rate limit reached: wait a moment, then try again."
	case ErrorKindModelUnavailable:
		return "Model error: try switching to " + GroqModels[1] + "."
	default:
		return "The model call failed."
	}
}

// ProviderError is a failed call to a model provider.
type ProviderError struct {
	Provider   Provider
	Kind       ErrorKind
	StatusCode int
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	subject := "model call"
	if e.Provider != "" {
		subject = string(e.Provider) + " call"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed (%s, status %d): %s", subject, e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s failed (%s): %s", subject, e.Kind, msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// newProviderError wraps a provider SDK error and classifies it.
func newProviderError(p Provider, err error) *ProviderError {
	return &ProviderError{
		Provider:   p,
		Kind:       Classify(err),
		StatusCode: statusCode(err),
		Cause:      err,
	}
}

// Classify maps an error from any provider to an ErrorKind. HTTP and gRPC
// status codes carried by the SDK error types take precedence; otherwise
// well-known phrases in the error text decide.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorKindUnknown
	}

	var pe *ProviderError
	if errors.As(err, &pe) && pe.Kind != "" && pe.Kind != ErrorKindUnknown {
		return pe.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindUnknown
	}

	if kind := classifyStatus(statusCode(err)); kind != ErrorKindUnknown {
		return kind
	}

	var gerr *apierror.APIError
	if errors.As(err, &gerr) && gerr.GRPCStatus() != nil {
		switch gerr.GRPCStatus().Code() {
		case codes.Unauthenticated, codes.PermissionDenied:
			return ErrorKindAuth
		case codes.ResourceExhausted:
			return ErrorKindRateLimited
		case codes.NotFound:
			return ErrorKindModelUnavailable
		}
	}

	return classifyMessage(err.Error())
}

func classifyStatus(code int) ErrorKind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrorKindAuth
	case http.StatusTooManyRequests:
		return ErrorKindRateLimited
	case http.StatusNotFound:
		return ErrorKindModelUnavailable
	}
	return ErrorKindUnknown
}

func classifyMessage(msg string) ErrorKind {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "api_key"), strings.Contains(msg, "api key"),
		strings.Contains(msg, "authentication"), strings.Contains(msg, "invalid_api_key"):
		return ErrorKindAuth
	case strings.Contains(msg, "rate_limit"), strings.Contains(msg, "rate limit"):
		return ErrorKindRateLimited
	case strings.Contains(msg, "model"):
		return ErrorKindModelUnavailable
	}
	return ErrorKindUnknown
}

// statusCode extracts the HTTP status carried by a provider SDK error, or 0.
func statusCode(err error) int {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.StatusCode != 0 {
		return pe.StatusCode
	}
	var oaiErr *openai.APIError
	if errors.As(err, &oaiErr) {
		return oaiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	var antErr *anthropic.Error
	if errors.As(err, &antErr) {
		return antErr.StatusCode
	}
	var gapiErr *googleapi.Error
	if errors.As(err, &gapiErr) {
		return gapiErr.Code
	}
	var gaxErr *apierror.APIError
	if errors.As(err, &gaxErr) && gaxErr.HTTPCode() > 0 {
		return gaxErr.HTTPCode()
	}
	return 0
}

// IsRetryable reports whether a call failing with err may succeed if repeated.
func IsRetryable(err error) bool {
	if Classify(err) == ErrorKindRateLimited {
		return true
	}
	code := statusCode(err)
	return code >= 500 && code <= 599
}
