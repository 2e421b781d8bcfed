package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/vidyasagar/fsurf/internal/explorer"
)

// Config holds fsurf user configuration.
type Config struct {
	Theme           string `json:"theme"`
	Server          string `json:"server"`
	ShowHidden      bool   `json:"show_hidden"`
	SortBy          string `json:"sort_by"` // name, size or modified
	Reverse         bool   `json:"reverse"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds"`
	CacheSize       int    `json:"cache_size"`
	MaxVisits       int    `json:"max_visits"`
	LogLevel        string `json:"log_level"`
	path            string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:           "default",
		Server:          "localhost:8849",
		SortBy:          string(explorer.SortByName),
		CacheTTLSeconds: 30,
		CacheSize:       64,
		MaxVisits:       DefaultMaxVisits,
		LogLevel:        "info",
	}
}

// LoadConfig loads config.json from the standard config directory, writing
// the defaults on first run.
func LoadConfig() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(filepath.Join(dir, "config.json"))
}

// LoadConfigFrom loads the configuration at path. Keys missing from the
// file keep their defaults.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := cfg.Save(); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.path = path
	return &cfg, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := ConfigDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, "config.json")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Path returns where the configuration is stored.
func (c *Config) Path() string { return c.path }

// Query returns the folder query the config describes. An unknown sort
// key falls back to name.
func (c *Config) Query() explorer.Query {
	sortBy, err := explorer.ParseSortKey(c.SortBy)
	if err != nil {
		sortBy = explorer.SortByName
	}
	return explorer.Query{SortBy: sortBy, Reverse: c.Reverse, ShowHidden: c.ShowHidden}
}

// CacheTTL returns the listing cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// DataDir returns the data directory for persistent storage.
func DataDir() (string, error) {
	return appDir("XDG_DATA_HOME", ".local", "share")
}

// ConfigDir returns the directory holding config.json.
func ConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// appDir resolves fsurf's directory for the current platform. On Linux and
// the BSDs xdgEnv wins, then ~/unixFallback.
func appDir(xdgEnv string, unixFallback ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "fsurf"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "fsurf"), nil
		}
		return filepath.Join(home, ".fsurf"), nil
	}

	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, "fsurf"), nil
	}
	parts := append([]string{home}, unixFallback...)
	return filepath.Join(append(parts, "fsurf")...), nil
}
