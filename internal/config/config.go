// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults applied by Default and MergeWithDefaults
const (
	DefaultPort          = 8000
	DefaultMaxUploadSize = 10 << 20
	DefaultCacheTTL      = "24h"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; environment variables and CLI flags override them.
type Config struct {
	// Services
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`    // redis:// URL for the analysis cache

	// Limits
	CacheTTL      string `json:"cache_ttl,omitempty"`       // Go duration, e.g. "1h"
	MaxUploadSize int64  `json:"max_upload_size,omitempty"` // Bytes

	// Behavior
	LogLevel       string `json:"log_level,omitempty"`
	LogFormat      string `json:"log_format,omitempty"`      // json or pretty
	DictionaryPath string `json:"dictionary_path,omitempty"` // YAML file overriding the built-in dictionaries
	Verbose        bool   `json:"verbose,omitempty"`         // Print detailed debug information
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Port:          DefaultPort,
		CacheTTL:      DefaultCacheTTL,
		MaxUploadSize: DefaultMaxUploadSize,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// ApplyEnv overrides fields with the environment variables that are set.
// getenv is usually os.Getenv. Malformed numeric values are reported.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be an integer: %w", err)
		}
		c.Port = port
	}
	if v := getenv("MAX_UPLOAD_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config error: MAX_UPLOAD_SIZE must be an integer: %w", err)
		}
		c.MaxUploadSize = size
	}

	for key, field := range map[string]*string{
		"DATABASE_URL":    &c.DatabaseURL,
		"REDIS_URL":       &c.RedisURL,
		"CACHE_TTL":       &c.CacheTTL,
		"LOG_LEVEL":       &c.LogLevel,
		"LOG_FORMAT":      &c.LogFormat,
		"DICTIONARY_PATH": &c.DictionaryPath,
	} {
		if v := getenv(key); v != "" {
			*field = v
		}
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadSize < 0 {
		return fmt.Errorf("config error: 'max_upload_size' must be non-negative")
	}
	if c.CacheTTL != "" {
		if _, err := time.ParseDuration(c.CacheTTL); err != nil {
			return fmt.Errorf("config error: invalid 'cache_ttl' %q: %w", c.CacheTTL, err)
		}
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or pretty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}

	// Validate file paths exist (if specified)
	if c.DictionaryPath != "" {
		if _, err := os.Stat(c.DictionaryPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: dictionary file not found: %s", c.DictionaryPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.CacheTTL == "" {
		result.CacheTTL = defaults.CacheTTL
	}
	if result.MaxUploadSize == 0 {
		result.MaxUploadSize = defaults.MaxUploadSize
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.DictionaryPath == "" {
		result.DictionaryPath = defaults.DictionaryPath
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// CacheDuration returns CacheTTL parsed as a duration, or zero when unset.
func (c *Config) CacheDuration() (time.Duration, error) {
	if c.CacheTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache_ttl %q: %w", c.CacheTTL, err)
	}
	return d, nil
}

// Load reads the optional config file at path, applies environment overrides
// and fills the remaining fields from Default. The result is validated.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}

	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
