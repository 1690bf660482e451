package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/career-kit/internal/pipeline"
)

// Event names sent on a generation stream. Every stream ends with exactly
// one EventComplete, preceded by either EventResult or EventError.
const (
	EventProgress = "progress"
	EventResult   = "result"
	EventError    = "error"
	EventComplete = "complete"
)

// Stream outcomes reported by EventComplete.
const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

var errStreamingUnsupported = errors.New("streaming not supported")

// progressStream writes one generation's events as Server-Sent Events.
// Each event carries an increasing id. After the first failed write the
// client is gone and later events are dropped.
type progressStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
	err     error
}

func newProgressStream(w http.ResponseWriter) (*progressStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &progressStream{w: w, flusher: flusher}, nil
}

func (s *progressStream) send(event string, data any) {
	if s.err != nil {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		s.err = err
		return
	}
	s.seq++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, event, payload); err != nil {
		s.err = err
		return
	}
	s.flusher.Flush()
}

func (s *progressStream) Progress(e pipeline.ProgressEvent) { s.send(EventProgress, e) }

func (s *progressStream) Result(r *pipeline.Result) { s.send(EventResult, r) }

func (s *progressStream) Fail(err error) { s.send(EventError, errorBody(err)) }

func (s *progressStream) Complete(sessionID uuid.UUID, status string) {
	s.send(EventComplete, map[string]string{
		"session_id": sessionID.String(),
		"status":     status,
	})
}

// Err returns the first write failure, if any.
func (s *progressStream) Err() error { return s.err }
