// Package config defines all configuration structures for the unic-ip
// service.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RegistryConfig holds the connection parameters for the KIPO registry open
// API on apis.data.go.kr (right lists and register payment histories).
type RegistryConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	ServiceKey string        `mapstructure:"service_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// KiprisConfig holds the connection parameters for the KIPRIS Plus API
// (application word search and bibliographic detail, XML responses).
type KiprisConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	ServiceKey string        `mapstructure:"service_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// RedisConfig holds Redis connection parameters for the optional
// bibliographic-detail cache.  When Enabled is false the service runs with
// no cache at all.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// LookupConfig holds the batching and sizing parameters for bulk detail
// lookups.  The defaults mirror the service contract: batches of 10,
// a 500 ms pause between batches, at most 100 records per request.
type LookupConfig struct {
	BatchSize   int           `mapstructure:"batch_size"`
	BatchDelay  time.Duration `mapstructure:"batch_delay"`
	MaxBulk     int           `mapstructure:"max_bulk"`
	CallTimeout time.Duration `mapstructure:"call_timeout"`
}

// MemberConfig holds the path to the member roster file used by the
// membership-verification endpoint.
type MemberConfig struct {
	RosterPath string `mapstructure:"roster_path"`
}

// NotifyConfig holds the form-mail relay parameters for renewal payment
// requests.
type NotifyConfig struct {
	RelayURL  string        `mapstructure:"relay_url"`
	AccessKey string        `mapstructure:"access_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the entire service.
// Every infrastructure component and application service reads its settings
// from the relevant sub-struct.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Registry RegistryConfig `mapstructure:"registry"`
	Kipris   KiprisConfig   `mapstructure:"kipris"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Lookup   LookupConfig   `mapstructure:"lookup"`
	Member   MemberConfig   `mapstructure:"member"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Log      LogConfig      `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Registry
	if c.Registry.BaseURL == "" {
		return fmt.Errorf("config: registry.base_url is required")
	}
	if c.Registry.ServiceKey == "" {
		return fmt.Errorf("config: registry.service_key is required")
	}
	if c.Registry.Timeout <= 0 {
		return fmt.Errorf("config: registry.timeout must be > 0, got %v", c.Registry.Timeout)
	}

	// Kipris
	if c.Kipris.BaseURL == "" {
		return fmt.Errorf("config: kipris.base_url is required")
	}
	if c.Kipris.ServiceKey == "" {
		return fmt.Errorf("config: kipris.service_key is required")
	}
	if c.Kipris.Timeout <= 0 {
		return fmt.Errorf("config: kipris.timeout must be > 0, got %v", c.Kipris.Timeout)
	}

	// Redis (only when enabled)
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required when redis.enabled is true")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
		}
	}

	// Lookup
	if c.Lookup.BatchSize < 1 {
		return fmt.Errorf("config: lookup.batch_size must be ≥ 1, got %d", c.Lookup.BatchSize)
	}
	if c.Lookup.BatchDelay < 0 {
		return fmt.Errorf("config: lookup.batch_delay must be ≥ 0, got %v", c.Lookup.BatchDelay)
	}
	if c.Lookup.MaxBulk < 1 {
		return fmt.Errorf("config: lookup.max_bulk must be ≥ 1, got %d", c.Lookup.MaxBulk)
	}
	if c.Lookup.CallTimeout <= 0 {
		return fmt.Errorf("config: lookup.call_timeout must be > 0, got %v", c.Lookup.CallTimeout)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
