package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Monitor MonitorConfig `yaml:"monitor"`
	Sources SourcesConfig `yaml:"sources"`
	Cache   CacheConfig   `yaml:"cache"`
	History HistoryConfig `yaml:"history"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// MonitorConfig tunes the refresh scheduler. The dashboard surfaces poll at
// 15s, 30s and 60s; the interval here picks which cadence this instance
// serves.
type MonitorConfig struct {
	Interval       time.Duration `yaml:"interval"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	HistoryLimit   int           `yaml:"historyLimit"`
}

// SourcesConfig holds the collaborator service endpoints.
type SourcesConfig struct {
	Environment SourceConfig   `yaml:"environment"`
	Festivals   FestivalConfig `yaml:"festivals"`
	Epidemics   SourceConfig   `yaml:"epidemics"`
	Staffing    SourceConfig   `yaml:"staffing"`
}

// SourceConfig points at one collaborator service.
type SourceConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// FestivalConfig points at the festival calendar with its lookahead window.
type FestivalConfig struct {
	BaseURL       string `yaml:"baseUrl"`
	LookaheadDays int    `yaml:"lookaheadDays"`
}

// CacheConfig selects the backing for the last-known-good cycle store.
type CacheConfig struct {
	Valkey ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the cycle cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// HistoryConfig selects the backing for assessment history.
type HistoryConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitCSV(v)
	}
	if v := os.Getenv("MONITOR_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Monitor.Interval = parsed
		}
	}
	if v := os.Getenv("MONITOR_REQUEST_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Monitor.RequestTimeout = parsed
		}
	}
	if v := os.Getenv("MONITOR_HISTORY_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Monitor.HistoryLimit = parsed
		}
	}
	if v := os.Getenv("SOURCES_ENVIRONMENT_URL"); v != "" {
		cfg.Sources.Environment.BaseURL = v
	}
	if v := os.Getenv("SOURCES_FESTIVALS_URL"); v != "" {
		cfg.Sources.Festivals.BaseURL = v
	}
	if v := os.Getenv("SOURCES_FESTIVALS_LOOKAHEAD_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Sources.Festivals.LookaheadDays = parsed
		}
	}
	if v := os.Getenv("SOURCES_EPIDEMICS_URL"); v != "" {
		cfg.Sources.Epidemics.BaseURL = v
	}
	if v := os.Getenv("SOURCES_STAFFING_URL"); v != "" {
		cfg.Sources.Staffing.BaseURL = v
	}
	if v := os.Getenv("CACHE_VALKEY_ENABLED"); v != "" {
		cfg.Cache.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CACHE_VALKEY_ADDR"); v != "" {
		cfg.Cache.Valkey.Addr = v
	}
	if v := os.Getenv("HISTORY_POSTGRES_DSN"); v != "" {
		cfg.History.Postgres.DSN = v
	}
	if v := os.Getenv("HISTORY_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("HISTORY_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/refresh",
				},
			},
		},
		Monitor: MonitorConfig{
			Interval:       30 * time.Second,
			RequestTimeout: 10 * time.Second,
			HistoryLimit:   100,
		},
		Sources: SourcesConfig{
			Environment: SourceConfig{BaseURL: "http://localhost:9001"},
			Festivals: FestivalConfig{
				BaseURL:       "http://localhost:9002",
				LookaheadDays: 60,
			},
			Epidemics: SourceConfig{BaseURL: "http://localhost:9003"},
			Staffing:  SourceConfig{BaseURL: "http://localhost:9004"},
		},
		Cache: CacheConfig{
			Valkey: ValkeyConfig{
				Enabled: false,
				Addr:    "",
			},
		},
		History: HistoryConfig{
			Postgres: PostgresConfig{
				DSN:      "",
				MaxConns: 4,
				MinConns: 0,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Monitor.Interval <= 0 {
		return errors.New("monitor.interval must be positive")
	}
	if c.Monitor.RequestTimeout <= 0 {
		return errors.New("monitor.requestTimeout must be positive")
	}
	if c.Monitor.HistoryLimit <= 0 {
		return errors.New("monitor.historyLimit must be positive")
	}
	if c.Sources.Environment.BaseURL == "" {
		return errors.New("sources.environment.baseUrl cannot be empty")
	}
	if c.Sources.Festivals.BaseURL == "" {
		return errors.New("sources.festivals.baseUrl cannot be empty")
	}
	if c.Sources.Festivals.LookaheadDays <= 0 {
		return errors.New("sources.festivals.lookaheadDays must be positive")
	}
	if c.Sources.Epidemics.BaseURL == "" {
		return errors.New("sources.epidemics.baseUrl cannot be empty")
	}
	if c.Sources.Staffing.BaseURL == "" {
		return errors.New("sources.staffing.baseUrl cannot be empty")
	}
	if c.Cache.Valkey.Enabled && strings.TrimSpace(c.Cache.Valkey.Addr) == "" {
		return errors.New("cache.valkey.addr cannot be empty when the valkey cache is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
