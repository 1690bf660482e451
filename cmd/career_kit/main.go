// Package main provides the career_kit command line tool and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "career_kit",
	Short: "AI resume, cover letter and LinkedIn bio generator",
	Long: `career_kit turns a candidate profile into a tailored resume, cover letter and
professional summary, scores the result, compares it with a job description
and renders it as a PDF in one of three templates.

Settings come from --config (JSON or YAML), then the environment, then flags.`,
	SilenceUsage: true,
}

func init() {
	registerGlobalFlags(rootCmd.PersistentFlags())
}

func registerGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVar(&globalOpts.configPath, "config", "", "Path to a JSON or YAML config file")
	fs.StringVar(&globalOpts.provider, "provider", "", "LLM provider: groq, gemini or anthropic")
	fs.StringVar(&globalOpts.model, "model", "", "Model name used for every call")
	fs.StringVar(&globalOpts.apiKey, "api-key", "", "Provider API key (defaults to the provider's env var)")
	fs.StringVar(&globalOpts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&globalOpts.logFormat, "log-format", "", "Log format: text or json")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
