// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the process-wide settings shared by the CLI and the server.
type Config struct {
	// ListenAddr is the HTTP server bind address. Default: ":8787".
	ListenAddr string

	// APIKey is the Anthropic credential. Empty means unset; the AI
	// client reports a configuration error before any network call.
	APIKey string

	// Model overrides the analysis model. Empty uses the default.
	Model string

	// DBPath is the local notes/preferences database. Default:
	// ~/.baselens/baselens.db (falling back to the working directory
	// when the home directory is unknown).
	DBPath string

	// MaxUploadBytes caps screenshot payloads. Default: 8 MiB.
	MaxUploadBytes int64

	// RateLimitPerMinute caps AI-backed HTTP requests per client.
	// Default: 20.
	RateLimitPerMinute int
}

// FromEnv builds a Config from environment variables, falling back to
// defaults.
//
// Environment variables:
//   - BASELENS_ADDR: HTTP bind address (default: ":8787")
//   - ANTHROPIC_API_KEY: provider credential
//   - BASELENS_MODEL: analysis model override
//   - BASELENS_DB: notes database path
//   - BASELENS_MAX_UPLOAD_BYTES: screenshot size cap (default: 8388608)
//   - BASELENS_RATE_LIMIT: AI requests per minute per client (default: 20)
func FromEnv() (Config, error) {
	cfg := Config{
		ListenAddr:         ":8787",
		APIKey:             os.Getenv("ANTHROPIC_API_KEY"),
		Model:              os.Getenv("BASELENS_MODEL"),
		DBPath:             defaultDBPath(),
		MaxUploadBytes:     8 << 20,
		RateLimitPerMinute: 20,
	}

	if addr := os.Getenv("BASELENS_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if path := os.Getenv("BASELENS_DB"); path != "" {
		cfg.DBPath = path
	}
	if err := parseEnvInt64("BASELENS_MAX_UPLOAD_BYTES", &cfg.MaxUploadBytes); err != nil {
		return cfg, err
	}
	if err := parseEnvInt("BASELENS_RATE_LIMIT", &cfg.RateLimitPerMinute); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration from environment: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration has valid values.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive (got %d)", c.MaxUploadBytes)
	}
	if c.MaxUploadBytes > 64<<20 {
		return fmt.Errorf("max_upload_bytes too large (got %d, max 64 MiB)", c.MaxUploadBytes)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate_limit must be positive (got %d)", c.RateLimitPerMinute)
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "baselens.db"
	}
	return filepath.Join(home, ".baselens", "baselens.db")
}

func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

func parseEnvInt64(key string, dest *int64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}
