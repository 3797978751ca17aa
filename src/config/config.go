package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"market-pulse/src/helpers"
	"market-pulse/src/models"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// Default returns a complete configuration so the service runs without a file.
func Default() *Config {
	return &Config{MConfig: &models.MConfig{
		Name:     "market-pulse",
		Host:     "0.0.0.0",
		Port:     8080,
		LogLevel: "INFO",
		Network: models.MNetworkConfig{
			Enabled:              true,
			RequestTimeout:       10,
			MaxRetries:           2,
			RetryBackoffMs:       250,
			ConcurrentRequests:   0,
			MaxRequestsPerSecond: 10,
			Burst:                10,
		},
		Provider: models.MProviderConfig{
			BaseURL: "https://query1.finance.yahoo.com/v8/finance/chart",
		},
		Market: models.MMarketConfig{
			LabelTimezone:         "America/Sao_Paulo",
			CacheTTLSeconds:       60,
			CacheMaxItems:         256,
			FallbackOnEmpty:       true,
			RequestTimeoutSeconds: 15,
			DefaultSymbol:         "IBOV",
		},
		Refresh: models.MRefreshConfig{
			Enabled: true,
			Cron:    "@every 60s",
		},
	}}
}

// -----------------------------------------------------------------------------

// NewConfig loads configPath over the defaults, then applies the .env file and
// environment overrides. An empty path skips the YAML step.
func NewConfig(configPath string) (*Config, error) {
	config := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, config.MConfig); err != nil {
			return nil, helpers.NewConfigurationError("failed to parse config from YAML", err)
		}
	}

	_ = godotenv.Load()
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := envStr("HOST"); ok {
		c.Host = v
	}
	if v, ok := envStr("LOG_LEVEL"); ok {
		c.LogLevel = strings.ToUpper(v)
	}
	if v, ok := envStr("PROVIDER_BASE_URL"); ok {
		c.Provider.BaseURL = v
	}
	if v, ok := envStr("REFRESH_CRON"); ok {
		c.Refresh.Cron = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Port},
		{"REQUEST_TIMEOUT_SEC", &c.Market.RequestTimeoutSeconds},
		{"CACHE_TTL_SEC", &c.Market.CacheTTLSeconds},
	}
	for _, e := range ints {
		v, ok := envStr(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return helpers.NewConfigurationError(fmt.Sprintf("invalid %s=%q", e.key, v), err)
		}
		*e.dst = n
	}
	return nil
}

func envStr(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return helpers.NewConfigurationError("application name cannot be empty", nil)
	}
	if c.Host == "" {
		return helpers.NewConfigurationError("server host cannot be empty", nil)
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return helpers.NewConfigurationError(fmt.Sprintf("invalid server port number: %d (must be between 1025 and 65535)", c.Port), nil)
	}

	// Network
	if c.Network.RequestTimeout <= 0 {
		return helpers.NewConfigurationError("request timeout must be greater than 0", nil)
	}
	if c.Network.MaxRetries < 0 {
		return helpers.NewConfigurationError("max retries cannot be negative", nil)
	}
	if c.Network.ConcurrentRequests < 0 {
		return helpers.NewConfigurationError("concurrent requests cannot be negative", nil)
	}
	if c.Network.MaxRequestsPerSecond < 0 {
		return helpers.NewConfigurationError("max requests per second cannot be negative", nil)
	}

	// Provider
	if !strings.HasPrefix(c.Provider.BaseURL, "http://") && !strings.HasPrefix(c.Provider.BaseURL, "https://") {
		return helpers.NewConfigurationError(fmt.Sprintf("provider base url must be http(s): %q", c.Provider.BaseURL), nil)
	}

	// Market
	if c.Market.CacheTTLSeconds < 0 {
		return helpers.NewConfigurationError("cache ttl cannot be negative", nil)
	}
	if c.Market.RequestTimeoutSeconds < 0 {
		return helpers.NewConfigurationError("request timeout seconds cannot be negative", nil)
	}

	// Refresh
	if c.Refresh.Enabled {
		if _, err := cron.ParseStandard(c.Refresh.Cron); err != nil {
			return helpers.NewConfigurationError(fmt.Sprintf("invalid refresh cron %q", c.Refresh.Cron), err)
		}
	}

	for i, s := range c.Registry.Symbols {
		if strings.TrimSpace(s.Code) == "" {
			return helpers.NewConfigurationError(fmt.Sprintf("registry symbol %d must have a code", i), nil)
		}
		if _, ok := models.ParseCategory(s.Category); !ok {
			return helpers.NewConfigurationError(fmt.Sprintf("registry symbol %s: unknown category %q", s.Code, s.Category), nil)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
