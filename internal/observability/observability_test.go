package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", "json", &buf)

	logger.Debug("hidden")
	logger.Info("generation_done", slog.Int("score", 80))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"generation_done"`)
	assert.Contains(t, out, `"score":80`)
	assert.Contains(t, out, `"service":"career-kit"`)
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("debug", "text", &buf).Debug("step", slog.String("name", "parse"))
	assert.Contains(t, buf.String(), "msg=step")
	assert.Contains(t, buf.String(), "name=parse")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveStep("generate", time.Second, nil)
		m.ObserveRun(errors.New("boom"))
		m.ObserveLLMError("auth")
		m.ObserveScores(80, nil)
		m.ObserveRender("pdf", "modern")
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {})
	assert.NotNil(t, m.Middleware(func(*http.Request) string { return "/" }, next))
}

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()

	m.ObserveRun(nil)
	m.ObserveRun(errors.New("boom"))
	m.ObserveRun(nil)
	m.ObserveLLMError("")
	m.ObserveRender("pdf", "classic")
	match := 55
	m.ObserveScores(70, &match)

	assert.InDelta(t, 2, testutil.ToFloat64(m.runsTotal.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.runsTotal.WithLabelValues("error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.llmErrors.WithLabelValues("unknown")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.renderedTotal.WithLabelValues("pdf", "classic")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.matchScore))
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	m := NewMetrics()
	handler := m.Middleware(
		func(*http.Request) string { return "/sessions/{id}" },
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			w.WriteHeader(http.StatusOK)
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))
	assert.InDelta(t, 1, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/sessions/{id}", "418")), 0)

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "career_kit_http_requests_total"))
}
