// Package config loads agentdeck settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/agentdeck/internal/query"
	"github.com/roach88/agentdeck/internal/render"
)

// Environment overrides.
const (
	EnvCatalog = "AGENTDECK_CATALOG"
	EnvTheme   = "AGENTDECK_THEME"
)

// DefaultCatalog is used when neither flags, environment nor file name one.
const DefaultCatalog = "dataset.json"

// Config is the complete agentdeck configuration.
type Config struct {
	// Catalog is a path, file:// URL or http(s):// URL.
	Catalog string `yaml:"catalog"`
	// DefaultSort is the initial sort key (name-asc, autonomy-rank, ...).
	DefaultSort string `yaml:"default_sort"`
	// DefaultView is the initial display mode: grid, list or compare.
	DefaultView string `yaml:"default_view"`
	// Theme is auto, light or dark.
	Theme string `yaml:"theme"`
	// SearchDebounce is the quiet period before a typed search applies.
	SearchDebounce time.Duration `yaml:"search_debounce"`
	// LogFile receives logs while the interactive browser runs. Empty
	// discards them.
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog:        DefaultCatalog,
		DefaultSort:    string(query.SortNameAsc),
		DefaultView:    string(render.ModeGrid),
		Theme:          "auto",
		SearchDebounce: 300 * time.Millisecond,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Catalog) == "" {
		return errors.New("catalog is required")
	}
	if _, err := query.ParseSortKey(c.DefaultSort); err != nil {
		return fmt.Errorf("default_sort: %w", err)
	}
	if _, err := render.ParseMode(c.DefaultView); err != nil {
		return fmt.Errorf("default_view: %w", err)
	}
	switch strings.ToLower(c.Theme) {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("theme must be auto, light or dark, got %q", c.Theme)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("search_debounce must not be negative, got %s", c.SearchDebounce)
	}
	return nil
}

// SortKey returns the parsed default sort key.
func (c *Config) SortKey() query.SortKey {
	k, err := query.ParseSortKey(c.DefaultSort)
	if err != nil {
		return query.SortNameAsc
	}
	return k
}

// Mode returns the parsed default view.
func (c *Config) Mode() render.Mode {
	m, err := render.ParseMode(c.DefaultView)
	if err != nil {
		return render.ModeGrid
	}
	return m
}

// DefaultPath returns $XDG_CONFIG_HOME/agentdeck/config.yaml, falling back
// to ~/.config/agentdeck/config.yaml. It returns "" when neither base
// directory is known.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "agentdeck", "config.yaml")
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides and validates. A missing file yields the defaults.
// An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv applies AGENTDECK_CATALOG and AGENTDECK_THEME when set.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvCatalog)); v != "" {
		c.Catalog = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		c.Theme = v
	}
}
