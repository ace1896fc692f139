package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config that passes Validate; tests mutate single
// fields to probe individual rules.
func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Registry.ServiceKey = "registry-key"
	cfg.Kipris.ServiceKey = "kipris-key"
	return cfg
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "bad server mode",
			mutate:  func(c *Config) { c.Server.Mode = "production" },
			wantErr: "server.mode",
		},
		{
			name:    "missing registry service key",
			mutate:  func(c *Config) { c.Registry.ServiceKey = "" },
			wantErr: "registry.service_key",
		},
		{
			name:    "missing kipris base url",
			mutate:  func(c *Config) { c.Kipris.BaseURL = "" },
			wantErr: "kipris.base_url",
		},
		{
			name:    "zero upstream timeout",
			mutate:  func(c *Config) { c.Registry.Timeout = 0 },
			wantErr: "registry.timeout",
		},
		{
			name: "redis enabled without addr",
			mutate: func(c *Config) {
				c.Redis.Enabled = true
				c.Redis.Addr = ""
			},
			wantErr: "redis.addr",
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.Lookup.BatchSize = 0 },
			wantErr: "lookup.batch_size",
		},
		{
			name:    "negative batch delay",
			mutate:  func(c *Config) { c.Lookup.BatchDelay = -time.Second },
			wantErr: "lookup.batch_delay",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "text" },
			wantErr: "log.format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_RedisDisabledSkipsRedisRules(t *testing.T) {
	cfg := validConfig()
	cfg.Redis.Enabled = false
	cfg.Redis.Addr = ""
	assert.NoError(t, cfg.Validate())
}
