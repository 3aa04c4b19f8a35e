package plan

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds configuration for the deduplication engine.
type Config struct {
	// MinSectionFeatures is the minimum number of feature mentions each
	// section must end up with after deduplication. Sections with fewer
	// surviving mentions are topped up from the filler pool.
	// Default: 2.
	MinSectionFeatures int

	// EnableFillers controls whether under-populated sections are padded
	// from the demo pool at all. Default: true.
	EnableFillers bool
}

// DefaultConfig returns the default deduplication configuration.
func DefaultConfig() Config {
	return Config{
		MinSectionFeatures: 2,
		EnableFillers:      true,
	}
}

// Validate checks if the configuration has valid values.
func (c Config) Validate() error {
	if c.MinSectionFeatures < 0 {
		return fmt.Errorf("min_section_features cannot be negative (got %d)", c.MinSectionFeatures)
	}
	if c.MinSectionFeatures > len(fillerPool) {
		return fmt.Errorf("min_section_features too large (got %d, pool has %d entries)",
			c.MinSectionFeatures, len(fillerPool))
	}
	return nil
}

// ConfigFromEnv creates a Config from environment variables, falling back
// to defaults.
//
// Environment variables:
//   - BASELENS_DEDUP_MIN_FEATURES: Minimum mentions per section (default: 2)
//   - BASELENS_DEDUP_FILLERS: Enable demo-pool padding (default: true)
//
// Returns an error if a variable has an invalid value.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if err := parseEnvInt("BASELENS_DEDUP_MIN_FEATURES", &cfg.MinSectionFeatures); err != nil {
		return cfg, err
	}
	if err := parseEnvBool("BASELENS_DEDUP_FILLERS", &cfg.EnableFillers); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration from environment: %w", err)
	}
	return cfg, nil
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

func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}
