package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 9000
  mode: debug
registry:
  service_key: reg-key
kipris:
  service_key: kip-key
lookup:
  batch_size: 5
log:
  level: debug
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, testYAML))
	require.NoError(t, err)

	// Explicit values win.
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 5, cfg.Lookup.BatchSize)

	// Unset values are defaulted.
	assert.Equal(t, DefaultRegistryBaseURL, cfg.Registry.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Lookup.BatchDelay)
	assert.Equal(t, 100, cfg.Lookup.MaxBulk)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("UNICIP_SERVER_PORT", "7777")
	t.Setenv("UNICIP_REGISTRY_SERVICE_KEY", "env-reg-key")

	cfg, err := Load(writeTempConfig(t, testYAML))
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "env-reg-key", cfg.Registry.ServiceKey)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("UNICIP_REGISTRY_SERVICE_KEY", "reg-key")
	t.Setenv("UNICIP_KIPRIS_SERVICE_KEY", "kip-key")
	t.Setenv("UNICIP_LOOKUP_MAX_BULK", "50")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "reg-key", cfg.Registry.ServiceKey)
	assert.Equal(t, 50, cfg.Lookup.MaxBulk)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

func TestLoadFromEnv_MissingServiceKeys(t *testing.T) {
	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_key")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidConfig(t *testing.T) {
	bad := testYAML + "\n"
	bad += "notify: {}\n"
	cfg, err := Load(writeTempConfig(t, bad))
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	_, err = Load(writeTempConfig(t, `
server:
  mode: staging
registry:
  service_key: k
kipris:
  service_key: k
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.mode")
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
	})
}
