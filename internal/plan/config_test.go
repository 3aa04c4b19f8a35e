package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2, cfg.MinSectionFeatures)
	assert.True(t, cfg.EnableFillers)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero minimum", Config{MinSectionFeatures: 0}, false},
		{"negative minimum", Config{MinSectionFeatures: -1}, true},
		{"minimum at pool size", Config{MinSectionFeatures: PoolSize()}, false},
		{"minimum beyond pool size", Config{MinSectionFeatures: PoolSize() + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("BASELENS_DEDUP_MIN_FEATURES", "3")
		t.Setenv("BASELENS_DEDUP_FILLERS", "false")

		cfg, err := ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.MinSectionFeatures)
		assert.False(t, cfg.EnableFillers)
	})

	t.Run("invalid int", func(t *testing.T) {
		t.Setenv("BASELENS_DEDUP_MIN_FEATURES", "lots")
		_, err := ConfigFromEnv()
		assert.Error(t, err)
	})

	t.Run("invalid bool", func(t *testing.T) {
		t.Setenv("BASELENS_DEDUP_FILLERS", "maybe")
		_, err := ConfigFromEnv()
		assert.Error(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		t.Setenv("BASELENS_DEDUP_MIN_FEATURES", "99")
		_, err := ConfigFromEnv()
		assert.Error(t, err)
	})
}
