package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/travel/activity"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 200, cfg.Worker.PageSize)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("log_level: debug\nworker:\n  page_size: 50\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.Worker.PageSize)
	// Untouched keys keep their defaults.
	assert.Equal(t, 8, cfg.Worker.Concurrency)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o600))

	t.Setenv("DS_LOG_LEVEL", "warn")
	t.Setenv("DS_WORKER_CONCURRENCY", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("DS_LOG_LEVEL", "verbose")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadEngineDefaultsOnly(t *testing.T) {
	cfg, err := LoadEngine("", activity.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, activity.DefaultConfig().Scoring.MMRLambda, cfg.Scoring.MMRLambda)
	assert.Equal(t, 55.0, cfg.Vectorization.ReferencePrice)
}

func TestLoadEnginePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.yaml")
	content := []byte("scoring:\n  mmr_lambda: 0.55\nvectorization:\n  reference_price: 80\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadEngine(path, activity.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0.55, cfg.Scoring.MMRLambda)
	assert.Equal(t, 80.0, cfg.Vectorization.ReferencePrice)

	// The rest of the defaults survive the overlay.
	assert.Equal(t, activity.DefaultConfig().Scoring.Weights, cfg.Scoring.Weights)
	assert.NotEmpty(t, cfg.Boosts)
}

func TestLoadEngineRejectsInvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.yaml")
	content := []byte("scoring:\n  weights:\n    similarity: 0.9\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	_, err := LoadEngine(path, activity.DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum")
}

func TestLoadEngineValidatesDefaults(t *testing.T) {
	_, err := LoadEngine("", engine.Config{})
	assert.Error(t, err)
}
