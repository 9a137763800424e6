// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

// Package config loads and validates the application configuration.
//
// Configuration is layered: struct defaults, then an optional YAML file
// (discovered via FEELGIVE_CONFIG_PATH or the default search paths), then
// environment variables. Later layers override earlier ones. See koanf.go
// for the loading machinery.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Directory DirectoryConfig `koanf:"directory"`
	Cache     CacheConfig     `koanf:"cache"`
	Engine    EngineConfig    `koanf:"engine"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig controls the HTTP listener.
//
// Environment variables:
//   - SERVER_HOST: bind address (default "0.0.0.0")
//   - SERVER_PORT: listen port (default 8090)
//   - SERVER_READ_TIMEOUT: per-request read timeout (default 15s)
//   - SERVER_WRITE_TIMEOUT: per-request write timeout (default 30s)
//   - SERVER_SHUTDOWN_TIMEOUT: graceful shutdown budget (default 10s)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig controls structured log output.
//
// Environment variables:
//   - LOG_LEVEL: trace|debug|info|warn|error|fatal|panic|disabled (default "info")
//   - LOG_FORMAT: "json" or "console" (default "json")
//   - LOG_CALLER: include file:line of the call site (default false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DirectoryConfig configures the nonprofit directory provider client.
//
// The provider rate-limits aggressively; RateLimitRPS paces outbound calls
// below that ceiling, and the circuit breaker stops retry storms when the
// provider is down.
//
// Environment variables:
//   - DIRECTORY_BASE_URL: provider API root (required)
//   - DIRECTORY_API_KEY: provider API key (may be empty for open endpoints)
//   - DIRECTORY_TIMEOUT: per-call timeout (default 10s)
//   - DIRECTORY_MAX_RETRIES: extra attempts on rate-limit/5xx (default 2)
//   - DIRECTORY_RETRY_BASE_DELAY: first backoff delay (default 250ms)
//   - DIRECTORY_RATE_LIMIT_RPS: outbound requests per second (default 8)
//   - DIRECTORY_RATE_LIMIT_BURST: burst allowance (default 8)
//   - DIRECTORY_BREAKER_ENABLED: wrap calls in a circuit breaker (default true)
type DirectoryConfig struct {
	BaseURL        string        `koanf:"base_url"`
	APIKey         string        `koanf:"api_key"`
	Timeout        time.Duration `koanf:"timeout"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	RateLimitRPS   float64       `koanf:"rate_limit_rps"`
	RateLimitBurst int           `koanf:"rate_limit_burst"`
	BreakerEnabled bool          `koanf:"breaker_enabled"`
}

// CacheConfig controls the TTL cache namespaces.
//
// Search/browse results, organization details, and assembled recommendation
// lists age out independently. The optional Badger tier persists the details
// namespace across restarts; when it cannot be opened the cache degrades to
// memory-only and requests are never failed on its account.
//
// Environment variables:
//   - CACHE_SEARCH_TTL (default 12h), CACHE_BROWSE_TTL (default 12h)
//   - CACHE_DETAILS_TTL (default 24h), CACHE_RECOMMENDATION_TTL (default 1h)
//   - CACHE_CLEANUP_INTERVAL: expired-entry sweep period (default 5m)
//   - CACHE_BADGER_ENABLED: persist details on disk (default false)
//   - CACHE_BADGER_PATH: Badger directory (default "./data/cache")
type CacheConfig struct {
	SearchTTL         time.Duration `koanf:"search_ttl"`
	BrowseTTL         time.Duration `koanf:"browse_ttl"`
	DetailsTTL        time.Duration `koanf:"details_ttl"`
	RecommendationTTL time.Duration `koanf:"recommendation_ttl"`
	CleanupInterval   time.Duration `koanf:"cleanup_interval"`
	BadgerEnabled     bool          `koanf:"badger_enabled"`
	BadgerPath        string        `koanf:"badger_path"`
}

// EngineConfig holds the externally tunable recommendation-pipeline knobs.
// The remaining pipeline parameters have fixed defaults in the recommend
// package.
//
// Environment variables:
//   - ENGINE_TOP_N: max results returned (default 10)
//   - ENGINE_ENRICH_TOP_K: ranked candidates to enrich (default 20)
//   - ENGINE_REQUEST_DEADLINE: overall pipeline budget (default 10s)
//   - ENGINE_MIN_DESCRIPTION_LENGTH: quality-gate threshold (default 50)
//   - ENGINE_REQUIRE_DISBURSABLE: quality-gate disbursable check (default true)
type EngineConfig struct {
	TopN                 int           `koanf:"top_n"`
	EnrichTopK           int           `koanf:"enrich_top_k"`
	RequestDeadline      time.Duration `koanf:"request_deadline"`
	MinDescriptionLength int           `koanf:"min_description_length"`
	RequireDisbursable   bool          `koanf:"require_disbursable"`
}

// SecurityConfig controls the API's protective surface.
//
// Cache invalidation is a mutating operation and requires either the static
// maintenance token (verified against MaintenanceTokenHash) or a short-lived
// maintenance JWT signed with MaintenanceJWTSecret. When both are empty the
// endpoint is disabled.
//
// Environment variables:
//   - SECURITY_CORS_ORIGINS: comma-separated allowed origins (default empty)
//   - SECURITY_MAINTENANCE_TOKEN_HASH: bcrypt hash of the maintenance token
//   - SECURITY_MAINTENANCE_JWT_SECRET: HMAC secret, minimum 32 characters
//   - SECURITY_RATE_LIMIT_DISABLED: disable per-endpoint rate limits (default false)
type SecurityConfig struct {
	CORSOrigins          []string `koanf:"cors_origins"`
	MaintenanceTokenHash string   `koanf:"maintenance_token_hash"`
	MaintenanceJWTSecret string   `koanf:"maintenance_jwt_secret"`
	RateLimitDisabled    bool     `koanf:"rate_limit_disabled"`
}

// Load builds the configuration from defaults, the optional YAML file, and
// the environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Validate checks cross-field constraints that the type system cannot.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}

	if c.Directory.BaseURL == "" {
		return fmt.Errorf("directory.base_url is required")
	}
	if c.Directory.Timeout <= 0 {
		return fmt.Errorf("directory.timeout must be positive, got %v", c.Directory.Timeout)
	}
	if c.Directory.MaxRetries < 0 {
		return fmt.Errorf("directory.max_retries must be non-negative, got %d", c.Directory.MaxRetries)
	}
	if c.Directory.RetryBaseDelay <= 0 {
		return fmt.Errorf("directory.retry_base_delay must be positive, got %v", c.Directory.RetryBaseDelay)
	}
	if c.Directory.RateLimitRPS <= 0 {
		return fmt.Errorf("directory.rate_limit_rps must be positive, got %f", c.Directory.RateLimitRPS)
	}

	for name, ttl := range map[string]time.Duration{
		"cache.search_ttl":         c.Cache.SearchTTL,
		"cache.browse_ttl":         c.Cache.BrowseTTL,
		"cache.details_ttl":        c.Cache.DetailsTTL,
		"cache.recommendation_ttl": c.Cache.RecommendationTTL,
	} {
		if ttl <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, ttl)
		}
	}
	if c.Cache.BadgerEnabled && c.Cache.BadgerPath == "" {
		return fmt.Errorf("cache.badger_path is required when cache.badger_enabled is set")
	}

	if c.Engine.TopN < 1 {
		return fmt.Errorf("engine.top_n must be positive, got %d", c.Engine.TopN)
	}
	if c.Engine.EnrichTopK < c.Engine.TopN {
		return fmt.Errorf("engine.enrich_top_k must be >= engine.top_n, got %d < %d", c.Engine.EnrichTopK, c.Engine.TopN)
	}
	if c.Engine.RequestDeadline <= 0 {
		return fmt.Errorf("engine.request_deadline must be positive, got %v", c.Engine.RequestDeadline)
	}
	if c.Engine.MinDescriptionLength < 0 {
		return fmt.Errorf("engine.min_description_length must be non-negative, got %d", c.Engine.MinDescriptionLength)
	}

	if s := c.Security.MaintenanceJWTSecret; s != "" && len(s) < 32 {
		return fmt.Errorf("security.maintenance_jwt_secret must be at least 32 characters")
	}

	return nil
}

// MaintenanceAuthConfigured reports whether at least one maintenance
// credential is set, i.e. whether the cache-clear endpoint can be enabled.
func (c *Config) MaintenanceAuthConfigured() bool {
	return c.Security.MaintenanceTokenHash != "" || c.Security.MaintenanceJWTSecret != ""
}
