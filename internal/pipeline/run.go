// Package pipeline runs a full career kit generation: resume and cover
// letter, strength score, job match, tips and LinkedIn bio.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/career-kit/internal/analysis"
	"github.com/jonathan/career-kit/internal/llm"
	"github.com/jonathan/career-kit/internal/observability"
	"github.com/jonathan/career-kit/internal/parsing"
	"github.com/jonathan/career-kit/internal/prompts"
	"github.com/jonathan/career-kit/internal/scoring"
	"github.com/jonathan/career-kit/internal/types"
)

// Step names one stage of a run.
type Step string

const (
	StepValidate Step = "validate"
	StepGenerate Step = "generate"
	StepScore    Step = "score"
	StepGap      Step = "gap_analysis"
	StepTips     Step = "tips"
	StepLinkedIn Step = "linkedin_bio"
	StepDone     Step = "done"
)

// ErrEmptyCompletion is returned when the model answers with nothing.
var ErrEmptyCompletion = errors.New("model returned an empty response")

// ProgressEvent reports that a run has reached a step.
type ProgressEvent struct {
	Step    Step   `json:"step"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// ProgressCallback receives progress events in order on the Run goroutine.
type ProgressCallback func(event ProgressEvent)

// Input is one generation request.
type Input struct {
	Profile        types.CandidateProfile
	JobDescription string
	SkipTips       bool
	SkipLinkedIn   bool
	OnProgress     ProgressCallback
}

// Result is everything a run produced. Gap is nil when no job description
// was given.
type Result struct {
	Profile     types.CandidateProfile `json:"profile"`
	Raw         string                 `json:"raw"`
	Document    types.ParsedDocument   `json:"document"`
	Score       types.ScoreReport      `json:"score"`
	Gap         *types.GapReport       `json:"gap,omitempty"`
	Tips        []types.Tip            `json:"tips"`
	LinkedInBio string                 `json:"linkedin_bio,omitempty"`
	Model       string                 `json:"model"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// StepError records which step of a run failed.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Generator runs generations against one model client.
type Generator struct {
	client  llm.Client
	logger  *slog.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// NewGenerator creates a Generator. logger and metrics may be nil.
func NewGenerator(client llm.Client, logger *slog.Logger, metrics *observability.Metrics) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		client:  client,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Run validates the profile, generates the documents and scores them, then
// runs the optional analyses. A failure before scoring returns a nil
// Result. A later failure returns the partial Result together with the
// *StepError, so the generated documents are not lost.
func (g *Generator) Run(ctx context.Context, in Input) (result *Result, err error) {
	start := g.now()
	defer func() {
		g.metrics.ObserveRun(err)
		if err != nil {
			g.logger.Warn("generation_failed", slog.Any("error", err), slog.Duration("elapsed", time.Since(start)))
			return
		}
		g.logger.Info("generation_done",
			slog.String("model", result.Model),
			slog.Int("word_count", result.Score.WordCount),
			slog.Int("total_score", result.Score.TotalScore),
			slog.Duration("elapsed", time.Since(start)))
	}()

	if err := in.Profile.Validate(); err != nil {
		return nil, &StepError{Step: StepValidate, Err: err}
	}

	emit(in.OnProgress, StepGenerate, 10, "Writing your resume & cover letter")
	var raw string
	if err := g.step(ctx, StepGenerate, func(ctx context.Context) error {
		var err error
		raw, err = g.generate(ctx, in.Profile)
		return err
	}); err != nil {
		return nil, err
	}

	doc := parsing.ParseSections(raw)
	scoringText := doc.ScoringText()
	result = &Result{
		Profile:     in.Profile,
		Raw:         raw,
		Document:    doc,
		Score:       scoring.Score(scoringText, in.Profile.Skills, in.Profile.TargetRole),
		Tips:        []types.Tip{},
		Model:       g.client.GetModel(llm.TierStandard),
		GeneratedAt: start.UTC(),
	}
	emit(in.OnProgress, StepScore, 40, "Scoring resume strength")

	if jd := strings.TrimSpace(in.JobDescription); jd != "" {
		emit(in.OnProgress, StepGap, 55, "Analysing job description match")
		if err := g.step(ctx, StepGap, func(ctx context.Context) error {
			gap, err := analysis.AnalyzeGap(ctx, g.client, jd, scoringText)
			if err == nil {
				result.Gap = &gap
			}
			return err
		}); err != nil {
			return result, err
		}
	}

	if !in.SkipTips {
		emit(in.OnProgress, StepTips, 70, "Generating improvement tips")
		if err := g.step(ctx, StepTips, func(ctx context.Context) error {
			tips, err := analysis.GenerateTips(ctx, g.client, scoringText, in.Profile.TargetRole)
			if err == nil {
				result.Tips = tips
			}
			return err
		}); err != nil {
			return result, err
		}
	}

	if !in.SkipLinkedIn {
		emit(in.OnProgress, StepLinkedIn, 85, "Crafting LinkedIn bio")
		if err := g.step(ctx, StepLinkedIn, func(ctx context.Context) error {
			bio, err := analysis.GenerateLinkedInBio(ctx, g.client, in.Profile)
			result.LinkedInBio = bio
			return err
		}); err != nil {
			return result, err
		}
	}

	var match *int
	if result.Gap != nil {
		match = &result.Gap.MatchScore
	}
	g.metrics.ObserveScores(result.Score.TotalScore, match)
	emit(in.OnProgress, StepDone, 100, "Done")
	return result, nil
}

func (g *Generator) generate(ctx context.Context, profile types.CandidateProfile) (string, error) {
	p := prompts.ResumePrompt(profile)
	raw, err := g.client.Complete(ctx, llm.Request{
		System:      p.System,
		User:        p.User,
		Tier:        llm.TierStandard,
		Temperature: 0.65,
		MaxTokens:   3500,
		TopP:        0.9,
	})
	if err != nil {
		return "", err
	}
	raw = llm.StripCodeFence(raw)
	if raw == "" {
		return "", ErrEmptyCompletion
	}
	return raw, nil
}

// step runs fn, timing it and wrapping any failure in a *StepError.
func (g *Generator) step(ctx context.Context, name Step, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return &StepError{Step: name, Err: err}
	}
	started := time.Now()
	err := fn(ctx)
	g.metrics.ObserveStep(string(name), time.Since(started), err)
	if err != nil {
		if ctx.Err() == nil && !errors.Is(err, ErrEmptyCompletion) {
			g.metrics.ObserveLLMError(string(llm.Classify(err)))
		}
		return &StepError{Step: name, Err: err}
	}
	g.logger.Debug("step_done", slog.String("step", string(name)), slog.Duration("elapsed", time.Since(started)))
	return nil
}

func emit(cb ProgressCallback, step Step, percent int, message string) {
	if cb != nil {
		cb(ProgressEvent{Step: step, Percent: percent, Message: message})
	}
}
