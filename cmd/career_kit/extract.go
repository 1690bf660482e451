package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-kit/internal/ingestion"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Extract clean plain text from a txt, md, pdf or docx document",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := ingestion.ReadFile(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
