package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/agentdeck/internal/query"
	"github.com/roach88/agentdeck/internal/render"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvCatalog, "")
	t.Setenv(EnvTheme, "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultCatalog, cfg.Catalog)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, query.SortNameAsc, cfg.SortKey())
	assert.Equal(t, render.ModeGrid, cfg.Mode())
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog: https://example.com/dataset.json
default_sort: autonomy
default_view: list
theme: dark
search_debounce: 150ms
log_file: /tmp/agentdeck.log
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/dataset.json", cfg.Catalog)
	assert.Equal(t, query.SortAutonomyRank, cfg.SortKey())
	assert.Equal(t, render.ModeList, cfg.Mode())
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, "/tmp/agentdeck.log", cfg.LogFile)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: light\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, DefaultCatalog, cfg.Catalog)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvCatalog, "other.yaml")
	t.Setenv(EnvTheme, "dark")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: file.json\ntheme: light\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", cfg.Catalog)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed", "theme: [", "failed to parse config file"},
		{"bad sort", "default_sort: random\n", "default_sort"},
		{"bad view", "default_view: table\n", "default_view"},
		{"bad theme", "theme: neon\n", "theme must be"},
		{"negative debounce", "search_debounce: -1s\n", "search_debounce"},
		{"blank catalog", "catalog: '  '\n", "catalog is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "agentdeck", "config.yaml"), DefaultPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, filepath.Join("/home/someone", ".config", "agentdeck", "config.yaml"), DefaultPath())
}

func TestLoad_EmptyPathUsesDefaultPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "agentdeck"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "agentdeck", "config.yaml"), []byte("default_view: compare\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, render.ModeCompare, cfg.Mode())
}
