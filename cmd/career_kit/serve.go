package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-kit/internal/observability"
	"github.com/jonathan/career-kit/internal/rendering"
	"github.com/jonathan/career-kit/internal/server"
	"github.com/jonathan/career-kit/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes session-based generation, downloads and metrics.`,
	RunE:  runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd, os.Getenv)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	tmpl, err := rendering.ParseTemplate(cfg.Template)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := stderrLogger(cfg)
	metrics := observability.NewMetrics()
	gen, closeClient, err := newGenerator(ctx, cfg, logger, metrics)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer closeClient()

	srv := server.New(server.Config{
		Port:           cfg.Port,
		Template:       tmpl,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit: ratelimit.Config{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
		SessionTTL: cfg.TTL(),
		UseBrowser: cfg.UseBrowser,
	}, gen, metrics, logger)

	return srv.Run(ctx)
}
