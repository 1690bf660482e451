package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-kit/internal/ingestion"
	"github.com/jonathan/career-kit/internal/observability"
	"github.com/jonathan/career-kit/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score FILE",
	Short: "Score resume text for action verbs, keywords and length",
	Long: `Score a resume (txt, md, pdf or docx) out of 100: action verbs (30), skill and
role keyword coverage (40) and length (30).`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

var scoreOpts struct {
	skills string
	role   string
	json   bool
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreOpts.skills, "skills", "s", "", "Comma-separated skills to look for")
	scoreCmd.Flags().StringVarP(&scoreOpts.role, "role", "r", "", "Target job role")
	scoreCmd.Flags().BoolVar(&scoreOpts.json, "json", false, "Print the report as JSON")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	text, err := ingestion.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	report := scoring.Score(text, scoreOpts.skills, scoreOpts.role)
	if scoreOpts.json {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintScore(report)
	return nil
}
