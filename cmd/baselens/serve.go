package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baselens/baselens/internal/ai"
	"github.com/baselens/baselens/internal/api"
	"github.com/baselens/baselens/internal/config"
	"github.com/baselens/baselens/internal/features"
	"github.com/baselens/baselens/internal/plan"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backend HTTP API",
	Long: `Run the backend that the dashboard talks to. It keeps the provider
credential server-side and exposes feature lookup, screenshot analysis,
chat, and fallback-code generation over JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cfg)
	},
}

func runServer(cfg config.Config) error {
	// A missing credential is not fatal for serving: lookup routes keep
	// working and AI routes answer with a configuration error.
	var generator api.Generator
	client, err := ai.New(ai.Config{APIKey: cfg.APIKey, Model: cfg.Model})
	switch {
	case err == nil:
		generator = client
	case errors.Is(err, ai.ErrMissingAPIKey):
		slog.Warn("no provider credential configured, AI routes disabled")
	default:
		return err
	}

	dedupCfg, err := plan.ConfigFromEnv()
	if err != nil {
		return err
	}
	dedup, err := plan.NewDeduplicator(features.Default(), dedupCfg)
	if err != nil {
		return err
	}

	server, err := api.NewServer(cfg, features.Default(), dedup, generator)
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
