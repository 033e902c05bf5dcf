package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/log2seq/log2seq-go/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the diagram API over HTTP",
	Long: `Serve the diagram API over HTTP.

Endpoints:
  POST /v1/diagram       {"rules": CSV, "log": text} -> diagram and matches
  POST /v1/highlight     {"rules": CSV, "log": text} -> matched line indices
  POST /v1/rules/parse   {"rules": CSV}              -> rule objects
  POST /v1/rules/format  {"rules": [...]}            -> CSV
  GET  /healthz`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"Listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	srvLogger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	srv := server.New(server.Config{
		Addr:           addr,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimit:      cfg.Server.RateLimit,
		RateBurst:      cfg.Server.RateBurst,
		Generate:       cfg.Options(nil),
	}, srvLogger)
	return srv.Start(ctx)
}
