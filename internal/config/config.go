// Package config loads deptsite.yml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"deptsite/internal/dataset"
	"deptsite/internal/storage"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no path is given and DEPTSITE_CONFIG is unset.
const DefaultPath = "deptsite.yml"

type Cache struct {
	Backend   string        `yaml:"backend"`
	Path      string        `yaml:"path"`
	Freshness time.Duration `yaml:"freshness"`
}

type Config struct {
	Listen       string            `yaml:"listen"`
	SheetBaseURL string            `yaml:"sheet_base_url"`
	Datasets     map[string]string `yaml:"datasets"`
	Source       string            `yaml:"source"`
	DataDir      string            `yaml:"data_dir"`
	Cache        Cache             `yaml:"cache"`
	SessionIdle  time.Duration     `yaml:"session_idle"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:       ":3001",
		SheetBaseURL: dataset.DefaultSheetBase,
		Datasets:     dataset.DefaultGIDs(),
		Source:       "http",
		DataDir:      "data/sheets",
		Cache: Cache{
			Backend:   "file",
			Path:      "data/cache",
			Freshness: dataset.DefaultFreshness,
		},
		SessionIdle: time.Hour,
	}
}

// Load reads path over the defaults. An empty path falls back to
// DEPTSITE_CONFIG and then to DefaultPath; only an explicitly named file
// has to exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if path == "" {
		path = os.Getenv("DEPTSITE_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Listen = ":" + port
	}
	if dir := os.Getenv("DEPTSITE_CACHE_DIR"); dir != "" {
		c.Cache.Path = dir
	}
	if base := os.Getenv("DEPTSITE_SHEET_BASE"); base != "" {
		c.SheetBaseURL = base
	}
}

func (c Config) Validate() error {
	switch c.Source {
	case "http", "file":
	default:
		return fmt.Errorf("source must be http or file, got %q", c.Source)
	}
	switch c.Cache.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("cache.backend must be file, sqlite or memory, got %q", c.Cache.Backend)
	}
	if c.Cache.Freshness <= 0 {
		return fmt.Errorf("cache.freshness must be positive")
	}
	if c.SessionIdle <= 0 {
		return fmt.Errorf("session_idle must be positive")
	}
	return nil
}

// OpenStore opens the configured cache backend. The returned close func is
// never nil.
func (c Config) OpenStore() (storage.Store, func() error, error) {
	noop := func() error { return nil }
	switch c.Cache.Backend {
	case "sqlite":
		path := c.Cache.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "cache.db")
		}
		s, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case "memory":
		return storage.NewMemoryStore(), noop, nil
	default:
		return storage.NewFileStore(c.Cache.Path), noop, nil
	}
}

// NewSource returns the configured dataset source.
func (c Config) NewSource() dataset.Source {
	if c.Source == "file" {
		return dataset.FileSource{Dir: c.DataDir}
	}
	return dataset.NewHTTPSource(c.SheetBaseURL, c.Datasets)
}
