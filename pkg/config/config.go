// Package config loads the configurator service configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the configuration file omits a value.
const (
	DefaultStoreBackend  = "memory"
	DefaultSessionTTL    = 24 * time.Hour
	DefaultSweepSchedule = "*/10 * * * *"
	DefaultWatchDebounce = 500 * time.Millisecond
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultMetricsAddr   = ":9190"
)

// Config is the service configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Store   StoreConfig   `yaml:"store"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// CatalogConfig locates the catalog files and controls hot reload.
type CatalogConfig struct {
	// Path is a YAML file or a directory of YAML files.
	Path string `yaml:"path"`

	// Watch enables reloading the catalog when files change.
	Watch bool `yaml:"watch"`

	// WatchDebounce batches rapid file events into one reload.
	WatchDebounce Duration `yaml:"watchDebounce"`
}

// StoreConfig selects the session store backend.
type StoreConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// Path is the database file, required for the sqlite backend.
	Path string `yaml:"path"`
}

// SessionConfig tunes session retention.
type SessionConfig struct {
	TTL           Duration `yaml:"ttl"`
	SweepSchedule string   `yaml:"sweepSchedule"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{WatchDebounce: Duration(DefaultWatchDebounce)},
		Store:   StoreConfig{Backend: DefaultStoreBackend},
		Session: SessionConfig{TTL: Duration(DefaultSessionTTL), SweepSchedule: DefaultSweepSchedule},
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Metrics: MetricsConfig{Addr: DefaultMetricsAddr},
	}
}

// Load reads the configuration file, fills defaults and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("config: catalog.path is required")
	}
	if c.Catalog.WatchDebounce < 0 {
		return fmt.Errorf("config: catalog.watchDebounce must not be negative")
	}

	switch c.Store.Backend {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("config: store.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: session.ttl must be positive")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("config: metrics.addr is required when metrics are enabled")
	}
	return nil
}
