package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "data/collisions_by_weekday_cleaned.csv", cfg.Data.Heatmap)
	assert.Equal(t, "data/collisions_by_hour.csv", cfg.Data.Clock)
	assert.Equal(t, "data/cleaned_crash_by_month.csv", cfg.Data.Speed)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Store.SessionTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("COLLISIONVIZ_SERVER_PORT", "9090")
	t.Setenv("COLLISIONVIZ_DATA_CLOCK", "https://example.com/hours.csv")
	t.Setenv("COLLISIONVIZ_STORE_BACKEND", "sqlite")
	t.Setenv("COLLISIONVIZ_LOGGING_LEVEL", "debug")
	t.Setenv("COLLISIONVIZ_SERVER_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://example.com/hours.csv", cfg.Data.Clock)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown backend", "COLLISIONVIZ_STORE_BACKEND", "postgres"},
		{"unknown level", "COLLISIONVIZ_LOGGING_LEVEL", "verbose"},
		{"port out of range", "COLLISIONVIZ_SERVER_PORT", "70000"},
		{"not a number", "COLLISIONVIZ_SERVER_PORT", "http"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadLayouts(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		layouts, err := LoadLayouts("")
		require.NoError(t, err)
		assert.Equal(t, DefaultLayouts(), layouts)
	})

	t.Run("overrides keep unspecified defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "layout.yaml")
		yml := "heatmap:\n  transition_ms: 500\nclock:\n  outer_radius: 300\n"
		require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

		layouts, err := LoadLayouts(path)
		require.NoError(t, err)

		def := DefaultLayouts()
		assert.Equal(t, 500, layouts.Heatmap.TransitionMS)
		assert.Equal(t, def.Heatmap.GridWidth, layouts.Heatmap.GridWidth)
		assert.Equal(t, 300.0, layouts.Clock.OuterRadius)
		assert.Equal(t, def.Clock.InnerRadius, layouts.Clock.InnerRadius)
		assert.Equal(t, def.Speed, layouts.Speed)
	})

	t.Run("invalid layout", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "layout.yaml")
		require.NoError(t, os.WriteFile(path, []byte("heatmap:\n  width: -1\n"), 0644))

		_, err := LoadLayouts(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLayouts(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
