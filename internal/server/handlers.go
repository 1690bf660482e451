package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/career-kit/internal/export"
	"github.com/jonathan/career-kit/internal/ingestion"
	"github.com/jonathan/career-kit/internal/parsing"
	"github.com/jonathan/career-kit/internal/pipeline"
	"github.com/jonathan/career-kit/internal/rendering"
	"github.com/jonathan/career-kit/internal/scoring"
	"github.com/jonathan/career-kit/internal/session"
	"github.com/jonathan/career-kit/internal/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GenerateRequest is the body of a generate call. JobURL is fetched when
// JobDescription is blank.
type GenerateRequest struct {
	Profile        types.CandidateProfile `json:"profile"`
	JobDescription string                 `json:"job_description,omitempty"`
	JobURL         string                 `json:"job_url,omitempty"`
	SkipTips       bool                   `json:"skip_tips,omitempty"`
	SkipLinkedIn   bool                   `json:"skip_linkedin,omitempty"`
}

// ParseRequest is the body of POST /parse.
type ParseRequest struct {
	Text string `json:"text"`
}

// ScoreRequest is the body of POST /score.
type ScoreRequest struct {
	Text       string `json:"text"`
	Skills     string `json:"skills"`
	TargetRole string `json:"target_role"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	id := s.sessions.Create()
	s.jsonResponse(w, http.StatusCreated, map[string]string{"session_id": id.String()})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err == nil {
		err = s.sessions.Reset(id)
	}
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id, in, err := s.prepareGenerate(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	result, err := s.generate(r.Context(), id, in)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleGenerateStream runs a generation and streams its progress.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	id, in, err := s.prepareGenerate(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	stream, err := newProgressStream(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	in.OnProgress = stream.Progress

	result, err := s.generate(r.Context(), id, in)
	if err != nil {
		stream.Fail(err)
		stream.Complete(id, statusFailed)
	} else {
		stream.Result(result)
		stream.Complete(id, statusCompleted)
	}
	if err := stream.Err(); err != nil {
		s.logger.Warn("stream_write_failed", slog.String("session_id", id.String()), slog.Any("error", err))
	}
}

// prepareGenerate resolves the session and the request body, fetching the
// job description when only a URL was given. The session is reset so a
// failed run never leaves an older result behind.
func (s *Server) prepareGenerate(r *http.Request) (uuid.UUID, pipeline.Input, error) {
	id, err := sessionID(r)
	if err != nil {
		return uuid.Nil, pipeline.Input{}, err
	}
	if _, err := s.sessions.Get(id); err != nil {
		return uuid.Nil, pipeline.Input{}, err
	}

	var req GenerateRequest
	if err := decodeBody(r, &req); err != nil {
		return uuid.Nil, pipeline.Input{}, err
	}
	if err := req.Profile.Validate(); err != nil {
		return uuid.Nil, pipeline.Input{}, err
	}

	jd := req.JobDescription
	if strings.TrimSpace(jd) == "" && strings.TrimSpace(req.JobURL) != "" {
		jd, err = ingestion.FetchJobDescription(r.Context(), req.JobURL, ingestion.FetchOptions{
			UseBrowser: s.cfg.UseBrowser,
			Logger:     s.logger,
		})
		if err != nil {
			return uuid.Nil, pipeline.Input{}, fmt.Errorf("fetch job description: %w", err)
		}
	}

	if err := s.sessions.Reset(id); err != nil {
		return uuid.Nil, pipeline.Input{}, err
	}
	return id, pipeline.Input{
		Profile:        req.Profile,
		JobDescription: jd,
		SkipTips:       req.SkipTips,
		SkipLinkedIn:   req.SkipLinkedIn,
	}, nil
}

// generate runs the pipeline and stores whatever result it produced, so a
// late failure still leaves the documents downloadable.
func (s *Server) generate(ctx context.Context, id uuid.UUID, in pipeline.Input) (*pipeline.Result, error) {
	result, err := s.generator.Run(ctx, in)
	if result != nil {
		if putErr := s.sessions.Put(id, result); putErr != nil {
			s.logger.Warn("session_store_failed", slog.String("session_id", id.String()), slog.Any("error", putErr))
		}
	}
	return result, err
}

func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	result, err := s.result(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	tmpl := s.cfg.Template
	if name := r.URL.Query().Get("template"); name != "" {
		if tmpl, err = rendering.ParseTemplate(name); err != nil {
			s.errorResponse(w, err)
			return
		}
	}

	data, err := rendering.RenderBytes(rendering.Input{
		Profile:  result.Profile,
		Document: result.Document,
		Score:    result.Score,
		Template: tmpl,
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.metrics.ObserveRender("pdf", string(tmpl))
	name := rendering.DownloadName(".pdf", result.Profile.Name, result.Profile.TargetRole, tmpl.Title())
	s.download(w, "application/pdf", name, data)
}

func (s *Server) handleResumeText(w http.ResponseWriter, r *http.Request) {
	result, err := s.result(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	text := rendering.Transcript(result.Profile.Name, result.Document, result.Score)
	s.metrics.ObserveRender("txt", "")
	name := rendering.DownloadName(".txt", result.Profile.Name, result.Profile.TargetRole, "Resume")
	s.download(w, "text/plain; charset=utf-8", name, []byte(text))
}

func (s *Server) handleLinkedInBio(w http.ResponseWriter, r *http.Request) {
	result, err := s.result(r)
	if err == nil && result.LinkedInBio == "" {
		err = ErrNoLinkedInBio
	}
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.metrics.ObserveRender("linkedin", "")
	name := rendering.DownloadName(".txt", result.Profile.Name, "LinkedIn_Bio")
	s.download(w, "text/plain; charset=utf-8", name, []byte(result.LinkedInBio))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, err := s.result(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteReport(&buf, export.ReportInput{
		Name:        result.Profile.Name,
		TargetRole:  result.Profile.TargetRole,
		Model:       result.Model,
		GeneratedAt: result.GeneratedAt,
		Score:       result.Score,
		Gap:         result.Gap,
		Tips:        result.Tips,
	}); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.metrics.ObserveRender("xlsx", "")
	name := rendering.DownloadName(".xlsx", result.Profile.Name, result.Profile.TargetRole, "Report")
	s.download(w, xlsxContentType, name, buf.Bytes())
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, parsing.ParseSections(req.Text))
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := decodeBody(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, scoring.Score(req.Text, req.Skills, req.TargetRole))
}

func (s *Server) session(r *http.Request) (session.Session, error) {
	id, err := sessionID(r)
	if err != nil {
		return session.Session{}, err
	}
	return s.sessions.Get(id)
}

func (s *Server) result(r *http.Request) (*pipeline.Result, error) {
	sess, err := s.session(r)
	if err != nil {
		return nil, err
	}
	if sess.Result == nil {
		return nil, ErrNoResult
	}
	return sess.Result, nil
}

func (s *Server) download(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("download_write_failed", slog.String("file", filename), slog.Any("error", err))
	}
}

// sessionID parses the {id} path value. A malformed ID is reported as an
// unknown session.
func sessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, session.ErrNotFound
	}
	return id, nil
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}
