package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-kit/internal/parsing"
	"github.com/jonathan/career-kit/internal/rendering"
	"github.com/jonathan/career-kit/internal/schemas"
	"github.com/jonathan/career-kit/internal/scoring"
	"github.com/jonathan/career-kit/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render parsed sections as a PDF in one of the templates",
	Long: `Render a summary, resume and cover letter as a PDF. --sections takes either a
JSON file with summary, resume and cover_letter keys or the raw model output
as text, which is split into sections first.`,
	RunE: runRender,
}

var renderOpts struct {
	profile  profileFlags
	sections string
	template string
	out      string
}

func init() {
	fs := renderCmd.Flags()
	renderOpts.profile.register(fs)
	fs.StringVar(&renderOpts.sections, "sections", "", "Path to sections JSON or raw generated text (required)")
	fs.StringVarP(&renderOpts.template, "template", "t", "", "PDF template: modern, classic or minimal")
	fs.StringVarP(&renderOpts.out, "out", "o", "", "Output PDF path (defaults to a name built from the profile)")
	_ = renderCmd.MarkFlagRequired("sections")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	profile, err := renderOpts.profile.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	doc, err := loadSections(renderOpts.sections)
	if err != nil {
		return err
	}
	tmpl, err := rendering.ParseTemplate(renderOpts.template)
	if err != nil {
		return err
	}

	score := scoring.Score(doc.ScoringText(), profile.Skills, profile.TargetRole)
	pdf, err := rendering.RenderBytes(rendering.Input{
		Profile:  profile,
		Document: doc,
		Score:    score,
		Template: tmpl,
	})
	if err != nil {
		return err
	}

	out := renderOpts.out
	if out == "" {
		out = rendering.DownloadName(".pdf", profile.Name, profile.TargetRole, tmpl.Title())
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s template, score %d/100)\n", out, tmpl.Title(), score.TotalScore)
	return nil
}

// loadSections reads a sections JSON document, checked against its schema,
// or splits a raw text response.
func loadSections(path string) (types.ParsedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ParsedDocument{}, fmt.Errorf("failed to read sections: %w", err)
	}
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return parsing.ParseSections(string(data)), nil
	}

	if err := schemas.ValidateDocument(data); err != nil {
		return types.ParsedDocument{}, err
	}
	var doc types.ParsedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.ParsedDocument{}, fmt.Errorf("failed to parse sections JSON: %w", err)
	}
	for _, sec := range types.Sections {
		doc.Set(sec, strings.TrimSpace(doc.Get(sec)))
	}
	return doc, nil
}
