package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-kit/internal/analysis"
	"github.com/jonathan/career-kit/internal/ingestion"
	"github.com/jonathan/career-kit/internal/observability"
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Compare a resume against a job description",
	Long: `Ask the model for a match score, missing and present keywords, suggestions and
quick wins for a resume (txt, md, pdf or docx) against a job description
read from a file or fetched from a URL.`,
	RunE: runGap,
}

var gapOpts struct {
	resume     string
	job        string
	jobURL     string
	useBrowser bool
	json       bool
}

func init() {
	fs := gapCmd.Flags()
	fs.StringVar(&gapOpts.resume, "resume", "", "Path to the resume (required)")
	fs.StringVarP(&gapOpts.job, "job", "j", "", "Path to a job description")
	fs.StringVar(&gapOpts.jobURL, "job-url", "", "URL of a job posting (mutually exclusive with --job)")
	fs.BoolVar(&gapOpts.useBrowser, "use-browser", false, "Render JavaScript job pages in headless Chrome")
	fs.BoolVar(&gapOpts.json, "json", false, "Print the report as JSON")
	_ = gapCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(gapCmd)
}

func runGap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadSettings(cmd, os.Getenv)
	if err != nil {
		return err
	}
	logger := stderrLogger(cfg)

	if gapOpts.job == "" && gapOpts.jobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	jd, err := readJobDescription(ctx, gapOpts.job, gapOpts.jobURL, gapOpts.useBrowser || cfg.UseBrowser, logger)
	if err != nil {
		return err
	}
	if strings.TrimSpace(jd) == "" {
		return analysis.ErrEmptyJobDescription
	}

	resume, err := ingestion.ReadFile(gapOpts.resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	client, err := newClient(ctx, cfg, logger)
	if err != nil {
		return explain(err)
	}
	defer client.Close()

	report, err := analysis.AnalyzeGap(ctx, client, jd, resume)
	if err != nil {
		return explain(err)
	}
	if gapOpts.json {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintGap(report)
	return nil
}
