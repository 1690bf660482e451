package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/career-kit/internal/fetch"
)

// FetchOptions configures FetchJobDescription.
type FetchOptions struct {
	Fetch fetch.Options
	// UseBrowser renders the page in headless Chrome when the plain HTTP
	// response yields too little text.
	UseBrowser     bool
	BrowserTimeout time.Duration
	Logger         *slog.Logger
}

// FetchJobDescription downloads a job posting and returns its cleaned text.
func FetchJobDescription(ctx context.Context, rawURL string, opts FetchOptions) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	board := fetch.DetectBoard(rawURL)
	content, noise := fetch.Selectors(board)

	page, err := fetch.URL(ctx, rawURL, opts.Fetch)
	if err != nil {
		return "", err
	}
	text, err := fetch.ExtractMainText(page.HTML, content, noise...)
	if err != nil {
		return "", fmt.Errorf("extract job posting: %w", err)
	}
	logger.Debug("job_posting_fetched",
		slog.String("url", rawURL),
		slog.String("board", string(board)),
		slog.Int("html_bytes", len(page.HTML)),
		slog.Int("text_chars", len(text)))

	if opts.UseBrowser && fetch.NeedsBrowser(text) {
		rendered, err := fetch.WithBrowser(ctx, rawURL, opts.BrowserTimeout, logger)
		if err != nil {
			logger.Warn("browser_fallback_failed", slog.String("url", rawURL), slog.Any("error", err))
		} else if browserText, err := fetch.ExtractMainText(rendered, content, noise...); err == nil {
			text = browserText
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", ErrNoText
	}
	return cleaned, nil
}
