package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"market-pulse/src/config"
	"market-pulse/src/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 60, cfg.Market.CacheTTLSeconds)
	assert.True(t, cfg.Market.FallbackOnEmpty)
	assert.Equal(t, "@every 60s", cfg.Refresh.Cron)
	assert.Zero(t, cfg.Network.ConcurrentRequests)
}

func TestNewConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := config.NewConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default().MConfig.Market, cfg.Market)
}

func TestNewConfigYAMLOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
name: pulse-test
port: 9090
market:
  cache_ttl_seconds: 5
registry:
  symbols:
    - code: SPX
      category: indices
      provider_id: "^GSPC"
`)
	cfg, err := config.NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "pulse-test", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5, cfg.Market.CacheTTLSeconds)
	// Untouched keys keep their defaults.
	assert.Equal(t, "America/Sao_Paulo", cfg.Market.LabelTimezone)
	require.Len(t, cfg.Registry.Symbols, 1)
	assert.Equal(t, "^GSPC", cfg.Registry.Symbols[0].ProviderID)
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PROVIDER_BASE_URL", "http://127.0.0.1:9999/chart")
	t.Setenv("CACHE_TTL_SEC", "0")
	t.Setenv("REQUEST_TIMEOUT_SEC", "3")
	t.Setenv("REFRESH_CRON", "*/5 * * * *")

	cfg, err := config.NewConfig("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "http://127.0.0.1:9999/chart", cfg.Provider.BaseURL)
	assert.Zero(t, cfg.Market.CacheTTLSeconds)
	assert.Equal(t, 3, cfg.Market.RequestTimeoutSeconds)
	assert.Equal(t, "*/5 * * * *", cfg.Refresh.Cron)
}

func TestNewConfigRejectsBadInput(t *testing.T) {
	t.Run("bad env int", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		_, err := config.NewConfig("")
		var cfgErr *helpers.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.NewConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := config.NewConfig(writeFile(t, "port: [1, 2"))
		require.Error(t, err)
	})

	t.Run("bad cron", func(t *testing.T) {
		_, err := config.NewConfig(writeFile(t, "refresh:\n  enabled: true\n  cron: \"every minute\"\n"))
		require.ErrorContains(t, err, "invalid refresh cron")
	})

	t.Run("negative concurrency", func(t *testing.T) {
		_, err := config.NewConfig(writeFile(t, "network:\n  concurrent_requests: -1\n"))
		require.ErrorContains(t, err, "concurrent requests cannot be negative")
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := config.NewConfig(writeFile(t, "registry:\n  symbols:\n    - code: X\n      category: bonds\n"))
		require.ErrorContains(t, err, "unknown category")
	})
}

func TestValidatePort(t *testing.T) {
	cfg := config.Default()
	cfg.Port = 80
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Name = "saved"
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := config.NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.Name)
}
