package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("GOOGLE_RPS", "")

	cfg := Load()

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "kategori", cfg.CategorySheet)
	assert.Equal(t, "metadata", cfg.MetadataSheet)
	assert.Equal(t, StoreGoogle, cfg.StoreBackend)
	assert.Equal(t, 8.0, cfg.GoogleRPS)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("SHEET_METADATA", "docs")
	t.Setenv("GOOGLE_BURST", "3")
	t.Setenv("LOG_MAX_FILES", "not-a-number")

	cfg := Load()

	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, "docs", cfg.MetadataSheet)
	assert.Equal(t, 3, cfg.GoogleBurst)
	assert.Equal(t, 10, cfg.LogMaxFiles)
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"regdocs-2024-01-01T00-00-00.log",
		"regdocs-2024-01-02T00-00-00.log",
		"regdocs-2024-01-03T00-00-00.log",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}

	require.NoError(t, cleanupOldLogs(dir, 2))

	left, err := filepath.Glob(filepath.Join(dir, "regdocs-*.log"))
	require.NoError(t, err)
	assert.Len(t, left, 2)
	assert.NoFileExists(t, filepath.Join(dir, names[0]))
}
