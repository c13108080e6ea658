package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLatchEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LATCH_MAX_WORKERS", "LATCH_AI_ENDPOINT", "LATCH_AI_API_KEY", "LATCH_AI_MODEL"} {
		t.Setenv(k, "")
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 32, cfg.MaxWorkers)
	assert.Equal(t, "gpt-4o-mini", cfg.AIModel)
	assert.Empty(t, cfg.AIEndpoint)
}

func TestLoadWithNoPathUsesDefaults(t *testing.T) {
	clearLatchEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	clearLatchEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLFileOverridesDefaults(t *testing.T) {
	clearLatchEnv(t)
	path := filepath.Join(t.TempDir(), "latch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_workers: 8\nai_endpoint: https://example.test/v1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxWorkers)
	assert.Equal(t, "https://example.test/v1", cfg.AIEndpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.AIModel) // untouched by the file
}

func TestEnvVarsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_workers: 8\n"), 0o644))
	t.Setenv("LATCH_MAX_WORKERS", "16")
	t.Setenv("LATCH_AI_ENDPOINT", "")
	t.Setenv("LATCH_AI_API_KEY", "")
	t.Setenv("LATCH_AI_MODEL", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.MaxWorkers)
}

func TestInvalidMaxWorkersEnvIsIgnored(t *testing.T) {
	clearLatchEnv(t)
	t.Setenv("LATCH_MAX_WORKERS", "not-a-number")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().MaxWorkers, cfg.MaxWorkers)
}
