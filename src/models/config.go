package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	Host     string          `yaml:"host"`
	Port     int             `yaml:"port"`
	LogLevel string          `yaml:"log_level"`
	Network  MNetworkConfig  `yaml:"network"`
	Provider MProviderConfig `yaml:"provider"`
	Market   MMarketConfig   `yaml:"market"`
	Refresh  MRefreshConfig  `yaml:"refresh"`
	Registry MRegistryConfig `yaml:"registry"`
}

type MNetworkConfig struct {
	Enabled              bool     `yaml:"enabled"`
	Proxies              []string `yaml:"proxies"`
	RequestTimeout       int      `yaml:"timeout"`
	MaxRetries           int      `yaml:"retries"`
	RetryBackoffMs       int      `yaml:"retry_backoff_ms"`
	ConcurrentRequests   int      `yaml:"concurrent_requests"`
	UserAgent            string   `yaml:"user_agent"`
	MaxRequestsPerSecond float64  `yaml:"max_requests_per_second"`
	Burst                int      `yaml:"burst"`
}

type MProviderConfig struct {
	BaseURL string `yaml:"base_url"`
}

type MMarketConfig struct {
	LabelTimezone         string `yaml:"label_timezone"`
	CacheTTLSeconds       int    `yaml:"cache_ttl_seconds"`
	CacheMaxItems         int    `yaml:"cache_max_items"`
	FallbackOnEmpty       bool   `yaml:"fallback_on_empty"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	DefaultSymbol         string `yaml:"default_symbol"`
}

type MRefreshConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"`
}

type MRegistryConfig struct {
	Symbols []MSymbolConfig `yaml:"symbols"`
}

// MSymbolConfig overrides one registry entry from YAML. Zero numeric fields fall
// back to the instrument defaults.
type MSymbolConfig struct {
	Code           string  `yaml:"code"`
	Name           string  `yaml:"name"`
	Category       string  `yaml:"category"`
	ProviderID     string  `yaml:"provider_id"`
	Instrument     string  `yaml:"instrument"`
	Baseline       float64 `yaml:"baseline"`
	SnapshotValue  float64 `yaml:"snapshot_value"`
	SnapshotChange float64 `yaml:"snapshot_change"`
}
