package model

import "time"

// Config holds the full ctxpress configuration.
type Config struct {
	Limits       LimitsConfig       `yaml:"limits"`
	Cache        CacheConfig        `yaml:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	LLM          LLMConfig          `yaml:"llm"`
	Output       OutputConfig       `yaml:"output"`
}

// LimitsConfig bounds input sizes before any processing happens.
type LimitsConfig struct {
	MaxFileBytes int64 `yaml:"max_file_bytes"` // reject larger files outright
	MaxTextBytes int   `yaml:"max_text_bytes"` // reject larger text payloads
	MaxQueryLen  int   `yaml:"max_query_len"`  // reject longer relevance queries
}

// CacheConfig controls the compression-result cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"` // empty means $HOME/.ctxpress/cache
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig controls batch-mode parallelism.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitingConfig throttles outbound LLM API calls.
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// LLMConfig configures the optional digest provider.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", or "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // from environment only, never persisted
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxFileBytes: 100 * 1024 * 1024,
			MaxTextBytes: 50 * 1024 * 1024,
			MaxQueryLen:  10_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
		Output: OutputConfig{},
	}
}
