package database

import (
	"fmt"
	"time"
)

// Config holds database configuration.
type Config struct {
	// Path is the sqlite database file. ":memory:" opens an in-memory
	// database, useful in tests.
	Path string `yaml:"path" mapstructure:"path"`

	// BusyTimeout is how long sqlite waits on a locked database (e.g. "5s").
	BusyTimeout string `yaml:"busy_timeout" mapstructure:"busy_timeout"`

	// MaxOpenConns caps concurrent connections. sqlite serializes writes, so
	// the default is deliberately small.
	MaxOpenConns int `yaml:"max_open_conns" mapstructure:"max_open_conns"`

	// LogLevel controls query logging: silent, error, warn, info.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	// SlowQueryThreshold is the duration above which queries are logged as
	// slow (e.g. "200ms").
	SlowQueryThreshold string `yaml:"slow_query_threshold" mapstructure:"slow_query_threshold"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Path == "" {
		c.Path = "data/auth.db"
	}
	if c.BusyTimeout == "" {
		c.BusyTimeout = "5s"
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 4
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.SlowQueryThreshold == "" {
		c.SlowQueryThreshold = "200ms"
	}
}

// Validate checks that config values are parseable.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if _, err := time.ParseDuration(c.BusyTimeout); err != nil {
		return fmt.Errorf("invalid busy_timeout %q: %w", c.BusyTimeout, err)
	}
	if _, err := time.ParseDuration(c.SlowQueryThreshold); err != nil {
		return fmt.Errorf("invalid slow_query_threshold %q: %w", c.SlowQueryThreshold, err)
	}
	return nil
}

// DSN builds the sqlite connection string.
func (c *Config) DSN() string {
	timeout, _ := time.ParseDuration(c.BusyTimeout)
	return fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on", c.Path, timeout.Milliseconds())
}
