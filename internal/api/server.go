// Package api exposes the backend HTTP surface: fallback-code generation,
// screenshot analysis, and chat, each proxied to the AI provider so the
// credential never reaches the browser.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/baselens/baselens/internal/ai"
	"github.com/baselens/baselens/internal/config"
	"github.com/baselens/baselens/internal/features"
	"github.com/baselens/baselens/internal/plan"
)

// Generator is the slice of the AI client the handlers need. Kept as an
// interface so handler tests can stub the provider.
type Generator interface {
	AnalyzePlan(ctx context.Context, image []byte, mediaType string) (*plan.Plan, error)
	Chat(ctx context.Context, history []ai.ChatMessage, question string) (string, error)
	GenerateFallback(ctx context.Context, req ai.FallbackRequest) (*ai.FallbackResult, error)
}

// Server is the HTTP API server.
type Server struct {
	cfg       config.Config
	catalog   *features.Catalog
	dedup     *plan.Deduplicator
	generator Generator // nil when no provider credential is configured
	http      *http.Server
	limiter   *rateLimiter
}

// NewServer wires the server. A nil generator is allowed: feature lookup
// routes keep working and AI-backed routes answer with a configuration
// error instead of attempting a provider call.
func NewServer(cfg config.Config, catalog *features.Catalog, dedup *plan.Deduplicator, generator Generator) (*Server, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if dedup == nil {
		return nil, fmt.Errorf("deduplicator is required")
	}

	s := &Server{
		cfg:       cfg,
		catalog:   catalog,
		dedup:     dedup,
		generator: generator,
		limiter:   newRateLimiter(cfg.RateLimitPerMinute),
	}

	s.http = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start begins listening for HTTP requests (non-blocking).
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", "err", err)
		}
	}()

	slog.Info("server listening", "addr", ln.Addr().String(), "ai_configured", s.generator != nil)
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// routes builds the HTTP handler with all routes and middleware.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/features/{id...}", s.handleFeature)
	mux.HandleFunc("GET /api/resolve", s.handleResolve)

	mux.HandleFunc("POST /api/analyze", s.withRateLimit(s.handleAnalyze))
	mux.HandleFunc("POST /api/chat", s.withRateLimit(s.handleChat))
	mux.HandleFunc("POST /api/fallback", s.withRateLimit(s.handleFallback))

	return chain(mux,
		recoveryMiddleware,
		requestIDMiddleware,
		loggingMiddleware,
		maxBytesMiddleware(s.cfg.MaxUploadBytes),
	)
}

// handleHealth reports liveness and whether AI routes are usable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"features":      s.catalog.Len(),
		"ai_configured": s.generator != nil,
	})
}
