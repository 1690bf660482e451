package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	stepDuration  *prometheus.HistogramVec
	runsTotal     *prometheus.CounterVec
	llmErrors     *prometheus.CounterVec
	resumeScore   prometheus.Histogram
	matchScore    prometheus.Histogram
	renderedTotal *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "career_kit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "career_kit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		requestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "career_kit",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
		}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "career_kit",
			Subsystem: "pipeline",
			Name:      "step_duration_seconds",
			Help:      "Duration of each generation step by outcome.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 20, 40, 80},
		}, []string{"step", "status"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "career_kit",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Completed generation runs by status.",
		}, []string{"status"}),
		llmErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "career_kit",
			Subsystem: "llm",
			Name:      "errors_total",
			Help:      "Provider errors by classified kind.",
		}, []string{"kind"}),
		resumeScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "career_kit",
			Subsystem: "scoring",
			Name:      "resume_score",
			Help:      "Distribution of resume strength scores.",
			Buckets:   []float64{20, 45, 65, 85, 100},
		}),
		matchScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "career_kit",
			Subsystem: "scoring",
			Name:      "match_score",
			Help:      "Distribution of job description match scores.",
			Buckets:   []float64{20, 45, 70, 85, 100},
		}),
		renderedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "career_kit",
			Subsystem: "render",
			Name:      "documents_total",
			Help:      "Rendered documents by format and template.",
		}, []string{"format", "template"}),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.requestInFlight,
		m.stepDuration,
		m.runsTotal,
		m.llmErrors,
		m.resumeScore,
		m.matchScore,
		m.renderedTotal,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count, latency and in-flight gauge. route
// should be the pattern, not the raw path, to keep label cardinality low.
func (m *Metrics) Middleware(route func(*http.Request) string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(rec, r)

		label := route(r)
		m.requestTotal.WithLabelValues(r.Method, label, strconv.Itoa(rec.Status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, label).Observe(time.Since(start).Seconds())
	})
}

// ObserveStep records how long a generation step took.
func (m *Metrics) ObserveStep(step string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.stepDuration.WithLabelValues(step, status(err)).Observe(d.Seconds())
}

// ObserveRun counts a finished generation run.
func (m *Metrics) ObserveRun(err error) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(status(err)).Inc()
}

// ObserveLLMError counts a classified provider failure.
func (m *Metrics) ObserveLLMError(kind string) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	m.llmErrors.WithLabelValues(kind).Inc()
}

// ObserveScores records the resume score and, when present, the match score.
func (m *Metrics) ObserveScores(resumeScore int, matchScore *int) {
	if m == nil {
		return
	}
	m.resumeScore.Observe(float64(resumeScore))
	if matchScore != nil {
		m.matchScore.Observe(float64(*matchScore))
	}
}

// ObserveRender counts a rendered download.
func (m *Metrics) ObserveRender(format, template string) {
	if m == nil {
		return
	}
	m.renderedTotal.WithLabelValues(format, template).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// StatusRecorder captures the status code written by a handler.
type StatusRecorder struct {
	http.ResponseWriter
	Status      int
	wroteHeader bool
}

func (w *StatusRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.Status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *StatusRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Flush lets streaming handlers flush through the recorder.
func (w *StatusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap supports http.ResponseController.
func (w *StatusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
