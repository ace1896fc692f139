// Package config provides configuration loading, defaults, and validation for
// the unic-ip service.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8080
	DefaultServerMode = "release"

	// Government API endpoints.  The service keys have no defaults; they must
	// come from the environment or the config file.
	DefaultRegistryBaseURL = "https://apis.data.go.kr/1430000/PttRgstRtInfoInqSvc"
	DefaultKiprisBaseURL   = "http://plus.kipris.or.kr/openapi/rest/patUtiModInfoSearchSevice"

	DefaultUpstreamTimeout = 10 * time.Second

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisTTL       = 6 * time.Hour
	DefaultRedisKeyPrefix = "unicip"

	// Bulk lookup contract: batches of 10 with a 500 ms pause between
	// batches, capped at 100 records per request.
	DefaultLookupBatchSize   = 10
	DefaultLookupBatchDelay  = 500 * time.Millisecond
	DefaultLookupMaxBulk     = 100
	DefaultLookupCallTimeout = 10 * time.Second

	DefaultMemberRosterPath = "data/member.json"

	DefaultNotifyTimeout = 15 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.  It must be called
// after unmarshalling raw config data and before Validate() so that
// optional-but-defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	// ── Registry ──────────────────────────────────────────────────────────────
	if cfg.Registry.BaseURL == "" {
		cfg.Registry.BaseURL = DefaultRegistryBaseURL
	}
	if cfg.Registry.Timeout == 0 {
		cfg.Registry.Timeout = DefaultUpstreamTimeout
	}

	// ── Kipris ────────────────────────────────────────────────────────────────
	if cfg.Kipris.BaseURL == "" {
		cfg.Kipris.BaseURL = DefaultKiprisBaseURL
	}
	if cfg.Kipris.Timeout == 0 {
		cfg.Kipris.Timeout = DefaultUpstreamTimeout
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultRedisTTL
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	// DB is an int; 0 is a valid explicit value so we cannot distinguish "not
	// set" from "set to 0".  We leave it as-is (0 is also the default).

	// ── Lookup ────────────────────────────────────────────────────────────────
	if cfg.Lookup.BatchSize == 0 {
		cfg.Lookup.BatchSize = DefaultLookupBatchSize
	}
	if cfg.Lookup.BatchDelay == 0 {
		cfg.Lookup.BatchDelay = DefaultLookupBatchDelay
	}
	if cfg.Lookup.MaxBulk == 0 {
		cfg.Lookup.MaxBulk = DefaultLookupMaxBulk
	}
	if cfg.Lookup.CallTimeout == 0 {
		cfg.Lookup.CallTimeout = DefaultLookupCallTimeout
	}

	// ── Member ────────────────────────────────────────────────────────────────
	if cfg.Member.RosterPath == "" {
		cfg.Member.RosterPath = DefaultMemberRosterPath
	}

	// ── Notify ────────────────────────────────────────────────────────────────
	if cfg.Notify.Timeout == 0 {
		cfg.Notify.Timeout = DefaultNotifyTimeout
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
