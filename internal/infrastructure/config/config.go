// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppDir is the directory name used under the XDG config home.
	AppDir = "magic-finder"
	// DataDirName is the directory name used under the XDG data home.
	DataDirName = "magic_finder"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DatabaseFile is the name of the catalog database inside the data dir.
	DatabaseFile = "magic_finder.sqlite3"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds static configuration (read-only after load).
type Config struct {
	DataDir  string         `yaml:"data_dir,omitempty"`
	Log      LogConfig      `yaml:"log,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Frontend FrontendConfig `yaml:"frontend,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Scryfall ScryfallConfig `yaml:"scryfall,omitempty"`
	Cache    CacheConfig    `yaml:"cache,omitempty"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // "text" or "json"
}

// SQLiteConfig holds configuration for the SQLite catalog database.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	// When empty it is derived from DataDir.
	Path string `yaml:"path,omitempty"`
}

// FrontendConfig selects and configures the interactive front-end.
type FrontendConfig struct {
	Kind    string   `yaml:"kind,omitempty"`    // "rofi" or "terminal"
	Command string   `yaml:"command,omitempty"` // Menu program for rofi-style front-ends
	Args    []string `yaml:"args,omitempty"`
}

// ServerConfig holds configuration for the HTTP resolution service.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// ScryfallConfig holds configuration for catalog downloads.
type ScryfallConfig struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	UserAgent      string `yaml:"user_agent,omitempty"`
	BulkType       string `yaml:"bulk_type,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
	Retries        int    `yaml:"retries,omitempty"`
}

// CacheConfig bounds in-process caches.
type CacheConfig struct {
	SuggestionSize int `yaml:"suggestion_size,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Log: LogConfig{
			Level:  "WARN",
			Format: LogFormatText,
		},
		Frontend: FrontendConfig{
			Kind:    "rofi",
			Command: "rofi",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8085",
		},
		Scryfall: ScryfallConfig{
			BaseURL:        "https://api.scryfall.com",
			UserAgent:      "magic-finder/0.1",
			BulkType:       "default_cards",
			TimeoutSeconds: 600,
			Retries:        3,
		},
		Cache: CacheConfig{
			SuggestionSize: 512,
		},
	}
}

// Load loads configuration from path, falling back to the default config
// location when path is empty. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigFilePath()
	}

	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	return cfg, nil
}

// DatabasePath returns the catalog database path.
func (c *Config) DatabasePath() string {
	if c.SQLite.Path != "" {
		return c.SQLite.Path
	}
	return filepath.Join(c.DataDir, DatabaseFile)
}

// ConfigDir returns the directory holding the config file.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppDir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", AppDir)
	}
	return filepath.Join(".", "."+AppDir)
}

// ConfigFilePath returns the path to the default config file.
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), DefaultConfigFile)
}

// DefaultDataDir returns the XDG data directory for the catalog.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, DataDirName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", DataDirName)
	}
	return filepath.Join(".", DataDirName)
}
