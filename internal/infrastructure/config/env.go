package config

import (
	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds environment overrides. Unset variables leave the file or
// default value in place.
type EnvConfig struct {
	DataDir      string `envconfig:"MAGIC_FINDER_DATA_DIR"`
	DatabasePath string `envconfig:"MAGIC_FINDER_DATABASE_PATH"`

	LogLevel  string `envconfig:"MAGIC_FINDER_LOG_LEVEL"`
	LogFormat string `envconfig:"MAGIC_FINDER_LOG_FORMAT"`

	Frontend        string `envconfig:"MAGIC_FINDER_FRONTEND"`
	FrontendCommand string `envconfig:"MAGIC_FINDER_FRONTEND_COMMAND"`

	ServerAddr string `envconfig:"MAGIC_FINDER_SERVER_ADDR"`

	ScryfallBaseURL   string `envconfig:"MAGIC_FINDER_SCRYFALL_BASE_URL"`
	ScryfallUserAgent string `envconfig:"MAGIC_FINDER_SCRYFALL_USER_AGENT"`
	ScryfallBulkType  string `envconfig:"MAGIC_FINDER_SCRYFALL_BULK_TYPE"`
	ScryfallRetries   int    `envconfig:"MAGIC_FINDER_SCRYFALL_RETRIES"`

	SuggestionCacheSize int `envconfig:"MAGIC_FINDER_SUGGESTION_CACHE_SIZE"`
}

// LoadFromEnv reads EnvConfig from the process environment.
func LoadFromEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process("", &env); err != nil {
		return EnvConfig{}, err
	}
	return env, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	env, err := LoadFromEnv()
	if err != nil {
		return err
	}
	env.apply(c)
	return nil
}

func (e EnvConfig) apply(c *Config) {
	setString(&c.DataDir, e.DataDir)
	setString(&c.SQLite.Path, e.DatabasePath)
	setString(&c.Log.Level, e.LogLevel)
	setString(&c.Log.Format, e.LogFormat)
	setString(&c.Frontend.Kind, e.Frontend)
	setString(&c.Frontend.Command, e.FrontendCommand)
	setString(&c.Server.Addr, e.ServerAddr)
	setString(&c.Scryfall.BaseURL, e.ScryfallBaseURL)
	setString(&c.Scryfall.UserAgent, e.ScryfallUserAgent)
	setString(&c.Scryfall.BulkType, e.ScryfallBulkType)
	if e.ScryfallRetries > 0 {
		c.Scryfall.Retries = e.ScryfallRetries
	}
	if e.SuggestionCacheSize > 0 {
		c.Cache.SuggestionSize = e.SuggestionCacheSize
	}
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
