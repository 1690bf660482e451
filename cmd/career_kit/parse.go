package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-kit/internal/observability"
	"github.com/jonathan/career-kit/internal/parsing"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Split a raw generation response into summary, resume and cover letter",
	Long: `Split raw model output into its SUMMARY, RESUME and COVER LETTER sections and
print them as JSON. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var parseOpts struct {
	format string
}

func init() {
	parseCmd.Flags().StringVarP(&parseOpts.format, "format", "f", "json", "Output format: json or text")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	doc := parsing.ParseSections(raw)
	switch parseOpts.format {
	case "json":
		return writeJSON(cmd.OutOrStdout(), doc)
	case "text":
		observability.NewPrinter(cmd.OutOrStdout()).PrintSections(doc)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json or text)", parseOpts.format)
	}
}

// readInput reads a whole file, or stdin when path is "-".
func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
