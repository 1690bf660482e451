package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-kit/internal/export"
	"github.com/jonathan/career-kit/internal/ingestion"
	"github.com/jonathan/career-kit/internal/observability"
	"github.com/jonathan/career-kit/internal/pipeline"
	"github.com/jonathan/career-kit/internal/rendering"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a resume, cover letter and summary from a candidate profile",
	Long: `Generate the full career kit for a candidate: summary, resume and cover letter
rendered as a PDF and a plain-text transcript, plus improvement tips and a
LinkedIn bio. Passing a job description adds a match analysis.

The profile comes from --profile (JSON or YAML) and/or individual flags;
set flags override file values.`,
	RunE: runGenerate,
}

var generateOpts struct {
	profile      profileFlags
	job          string
	jobURL       string
	template     string
	outDir       string
	report       bool
	skipTips     bool
	skipLinkedIn bool
	useBrowser   bool
	verbose      bool
}

func init() {
	fs := generateCmd.Flags()
	generateOpts.profile.register(fs)
	fs.StringVarP(&generateOpts.job, "job", "j", "", "Path to a job description (txt, md, pdf or docx)")
	fs.StringVar(&generateOpts.jobURL, "job-url", "", "URL of a job posting (mutually exclusive with --job)")
	fs.StringVarP(&generateOpts.template, "template", "t", "", "PDF template: modern, classic or minimal")
	fs.StringVarP(&generateOpts.outDir, "out", "o", ".", "Output directory")
	fs.BoolVar(&generateOpts.report, "xlsx", false, "Also write an XLSX score report")
	fs.BoolVar(&generateOpts.skipTips, "skip-tips", false, "Skip improvement tips")
	fs.BoolVar(&generateOpts.skipLinkedIn, "skip-linkedin", false, "Skip the LinkedIn bio")
	fs.BoolVar(&generateOpts.useBrowser, "use-browser", false, "Render JavaScript job pages in headless Chrome")
	fs.BoolVarP(&generateOpts.verbose, "verbose", "v", false, "Print progress and the score, gap and tips reports")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadSettings(cmd, os.Getenv)
	if err != nil {
		return err
	}
	logger := stderrLogger(cfg)

	profile, err := generateOpts.profile.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	templateName := cfg.Template
	if cmd.Flags().Changed("template") {
		templateName = generateOpts.template
	}
	tmpl, err := rendering.ParseTemplate(templateName)
	if err != nil {
		return err
	}

	jd, err := readJobDescription(ctx, generateOpts.job, generateOpts.jobURL, generateOpts.useBrowser || cfg.UseBrowser, logger)
	if err != nil {
		return err
	}

	gen, closeClient, err := newGenerator(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer closeClient()

	out := cmd.OutOrStdout()
	result, runErr := gen.Run(ctx, pipeline.Input{
		Profile:        profile,
		JobDescription: jd,
		SkipTips:       generateOpts.skipTips,
		SkipLinkedIn:   generateOpts.skipLinkedIn,
		OnProgress: func(e pipeline.ProgressEvent) {
			if generateOpts.verbose {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%3d%%] %s\n", e.Percent, e.Message)
			}
		},
	})
	if result == nil {
		return explain(runErr)
	}

	paths, err := writeKit(generateOpts.outDir, result, tmpl, generateOpts.report)
	if err != nil {
		return err
	}

	if generateOpts.verbose {
		printer := observability.NewPrinter(out)
		printer.PrintScore(result.Score)
		if result.Gap != nil {
			printer.PrintGap(*result.Gap)
		}
		if !generateOpts.skipTips {
			printer.PrintTips(result.Tips)
		}
	}

	_, _ = fmt.Fprintf(out, "Score: %d/100 (%s)\n", result.Score.TotalScore, result.Score.Grade)
	for _, p := range paths {
		_, _ = fmt.Fprintf(out, "Wrote %s\n", p)
	}
	return explain(runErr)
}

// readJobDescription loads the optional job description from a file or a
// URL. Neither set returns an empty description.
func readJobDescription(ctx context.Context, path, rawURL string, useBrowser bool, logger *slog.Logger) (string, error) {
	switch {
	case path != "" && rawURL != "":
		return "", fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	case path != "":
		text, err := ingestion.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	case rawURL != "":
		text, err := ingestion.FetchJobDescription(ctx, rawURL, ingestion.FetchOptions{
			UseBrowser: useBrowser,
			Logger:     logger,
		})
		if err != nil {
			return "", fmt.Errorf("failed to fetch job description: %w", err)
		}
		return text, nil
	}
	return "", nil
}

// writeKit writes every artifact of a result into dir and returns the
// paths written. The LinkedIn bio is written only when present.
func writeKit(dir string, result *pipeline.Result, tmpl rendering.Template, withReport bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	name, role := result.Profile.Name, result.Profile.TargetRole
	var paths []string
	write := func(filename string, data []byte) error {
		path := filepath.Join(dir, filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
		paths = append(paths, path)
		return nil
	}

	pdf, err := rendering.RenderBytes(rendering.Input{
		Profile:  result.Profile,
		Document: result.Document,
		Score:    result.Score,
		Template: tmpl,
	})
	if err != nil {
		return nil, err
	}
	if err := write(rendering.DownloadName(".pdf", name, role, tmpl.Title()), pdf); err != nil {
		return nil, err
	}

	transcript := rendering.Transcript(name, result.Document, result.Score)
	if err := write(rendering.DownloadName(".txt", name, role, "Resume"), []byte(transcript)); err != nil {
		return nil, err
	}

	if result.LinkedInBio != "" {
		if err := write(rendering.DownloadName(".txt", name, "LinkedIn_Bio"), []byte(result.LinkedInBio)); err != nil {
			return nil, err
		}
	}

	if withReport {
		var buf bytes.Buffer
		if err := export.WriteReport(&buf, export.ReportInput{
			Name:        name,
			TargetRole:  role,
			Model:       result.Model,
			GeneratedAt: result.GeneratedAt,
			Score:       result.Score,
			Gap:         result.Gap,
			Tips:        result.Tips,
		}); err != nil {
			return nil, err
		}
		if err := write(rendering.DownloadName(".xlsx", name, role, "Report"), buf.Bytes()); err != nil {
			return nil, err
		}
	}
	return paths, nil
}
