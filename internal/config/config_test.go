package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Contains(t, cfg.StatePath, ".spoor")
	assert.True(t, IsISODate(cfg.Preferences.StartDate))
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
statePath: /tmp/spoor/state.json
planPath: /tmp/spoor/plan.json
backend: sqlite
preferences:
  dogName: Saar
  startDate: "2026-09-01"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/spoor/state.json", cfg.StatePath)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "Saar", cfg.Preferences.DogName)
	assert.Equal(t, "2026-09-01", cfg.Preferences.StartDate)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("statePath: [not: closed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SPOOR_STATE", "/env/state.json")
	t.Setenv("SPOOR_PLAN", "/env/plan.json")
	t.Setenv("SPOOR_BACKEND", "sqlite")
	t.Setenv("SPOOR_DOG", "Bo")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/env/state.json", cfg.StatePath)
	assert.Equal(t, "/env/plan.json", cfg.PlanPath)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "Bo", cfg.Preferences.DogName)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.yaml")
	original := &Config{
		StatePath: "/x/state.json",
		PlanPath:  "/x/plan.json",
		Backend:   BackendFile,
		Preferences: Preferences{
			DogName:   "Saar",
			StartDate: "2026-09-01",
		},
	}
	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Backend = "redis"
	assert.ErrorContains(t, cfg.Validate(), "backend")

	cfg = Default()
	cfg.StatePath = ""
	assert.ErrorContains(t, cfg.Validate(), "statePath")

	cfg = Default()
	cfg.Preferences.StartDate = "01-09-2026"
	assert.ErrorContains(t, cfg.Validate(), "startDate")

	cfg = Default()
	cfg.Preferences.StartDate = ""
	assert.NoError(t, cfg.Validate())
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2026-09-01"))
	assert.True(t, IsISODate("2024-02-29"))
	assert.False(t, IsISODate("2026-9-1"))
	assert.False(t, IsISODate("2026-13-01"))
	assert.False(t, IsISODate("2025-02-29"))
	assert.False(t, IsISODate("vandaag"))
	assert.False(t, IsISODate(""))
}
