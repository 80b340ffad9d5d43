package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "ssot.db", cfg.Store.SQLitePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "SSOT", cfg.Export.SheetName)
	assert.Equal(t, 8, cfg.Pipeline.Concurrency)
	assert.Equal(t, "South Africa", cfg.Pipeline.Country)
	assert.Equal(t, 0.2, cfg.Quality.IntentBlend)
	assert.Equal(t, 0.15, cfg.Quality.Weights["website"])
	assert.Equal(t, 0.20, cfg.Quality.Weights["contact_primary_email"])
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
store:
  driver: postgres
  database_url: postgres://localhost/ssot
pipeline:
  country: Namibia
  concurrency: 2
`), 0o644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/ssot", cfg.Store.DatabaseURL)
	assert.Equal(t, "Namibia", cfg.Pipeline.Country)
	assert.Equal(t, 2, cfg.Pipeline.Concurrency)
	// Untouched defaults survive a partial file.
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SSOT_STORE_DRIVER", "postgres")
	t.Setenv("SSOT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}

func TestLoadPriorityTable_Defaults(t *testing.T) {
	table, err := LoadPriorityTable(SourcesConfig{})
	require.NoError(t, err)

	assert.Equal(t, 9, table.Of("website", "SACAA Cleaned"))
	assert.Equal(t, 6, table.Of("website", "Reachout"))
	// Free-text fields invert the ranking towards outreach sources.
	assert.Equal(t, 8, table.Of("notes", "Reachout"))
	assert.Equal(t, 3, table.Of("notes", "SACAA Cleaned"))
	// Unknown sources fall back to the per-field default rank.
	assert.Equal(t, 1, table.Of("website", "Mystery Feed"))
}

func TestLoadPriorityTable_OverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "priorities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
"*":
  Feed A: 7
  Feed B: 3
  default: 1
`), 0o644))

	table, err := LoadPriorityTable(SourcesConfig{PriorityFile: path})
	require.NoError(t, err)
	assert.Equal(t, 7, table.Of("anything", "Feed A"))
	assert.Equal(t, 1, table.Of("anything", "Feed C"))
}

func TestLoadPriorityTable_InvalidOverrideFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "priorities.yaml")
	// Missing the "*" fallback table.
	require.NoError(t, os.WriteFile(path, []byte(`
website:
  Feed A: 7
  default: 1
`), 0o644))

	_, err := LoadPriorityTable(SourcesConfig{PriorityFile: path})
	assert.Error(t, err)
}

func TestLoadPriorityTable_MissingFile(t *testing.T) {
	_, err := LoadPriorityTable(SourcesConfig{PriorityFile: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}
