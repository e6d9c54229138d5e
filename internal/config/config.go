// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults applied by MergeWithDefaults when neither the file nor the environment sets a value.
const (
	DefaultPort      = 8080
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Config is loaded from an optional JSON file and overridden by environment variables.
// All fields are optional.
type Config struct {
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	CatalogPath string `json:"catalog_path,omitempty"` // YAML skill catalog replacing the built-in one

	// Behavior
	AliasMatching bool   `json:"alias_matching,omitempty"` // Resolve skill aliases before comparing
	LogLevel      string `json:"log_level,omitempty"`      // debug, info, warn, error
	LogFormat     string `json:"log_format,omitempty"`     // json or text
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads DATABASE_URL, PORT, CATALOG_PATH, ALIAS_MATCHING, LOG_LEVEL and LOG_FORMAT.
// Unset or unparsable variables leave the zero value.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CatalogPath: os.Getenv("CATALOG_PATH"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if alias, err := strconv.ParseBool(os.Getenv("ALIAS_MATCHING")); err == nil {
		cfg.AliasMatching = alias
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}

	switch c.LogFormat {
	case "", "json", "text":
	default:
		return fmt.Errorf("config error: unknown 'log_format' %q", c.LogFormat)
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CatalogPath == "" {
		result.CatalogPath = defaults.CatalogPath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	// Bools cannot distinguish unset from false, so either source enabling wins
	result.AliasMatching = result.AliasMatching || defaults.AliasMatching

	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.LogLevel == "" {
		result.LogLevel = DefaultLogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = DefaultLogFormat
	}

	return result
}

// Resolve combines the environment with an optional config file. Environment values win.
func Resolve(path string) (Config, error) {
	env := FromEnv()
	file := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	merged := env.MergeWithDefaults(*file)
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
