// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// ConfigPathEnvVar overrides the config file search paths.
	ConfigPathEnvVar = "FEELGIVE_CONFIG_PATH"

	// Delim separates path segments in koanf keys.
	Delim = "."
)

// DefaultConfigPaths are checked in order when ConfigPathEnvVar is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/feelgive/config.yaml",
}

// defaultConfig returns the built-in defaults. Every field the application
// reads has a value here so a bare environment still boots.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8090,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Directory: DirectoryConfig{
			BaseURL:        "https://partners.every.org/v0.2",
			APIKey:         "",
			Timeout:        10 * time.Second,
			MaxRetries:     2,
			RetryBaseDelay: 250 * time.Millisecond,
			RateLimitRPS:   8,
			RateLimitBurst: 8,
			BreakerEnabled: true,
		},
		Cache: CacheConfig{
			SearchTTL:         12 * time.Hour,
			BrowseTTL:         12 * time.Hour,
			DetailsTTL:        24 * time.Hour,
			RecommendationTTL: time.Hour,
			CleanupInterval:   5 * time.Minute,
			BadgerEnabled:     false,
			BadgerPath:        "./data/cache",
		},
		Engine: EngineConfig{
			TopN:                 10,
			EnrichTopK:           20,
			RequestDeadline:      10 * time.Second,
			MinDescriptionLength: 50,
			RequireDisbursable:   true,
		},
		Security: SecurityConfig{
			CORSOrigins:          nil,
			MaintenanceTokenHash: "",
			MaintenanceJWTSecret: "",
			RateLimitDisabled:    false,
		},
	}
}

// envKeyMap maps environment variable names (lowercased) to koanf paths.
// Only variables listed here are read; everything else in the environment
// is ignored.
var envKeyMap = map[string]string{
	"server_host":             "server.host",
	"server_port":             "server.port",
	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"directory_base_url":         "directory.base_url",
	"directory_api_key":          "directory.api_key",
	"directory_timeout":          "directory.timeout",
	"directory_max_retries":      "directory.max_retries",
	"directory_retry_base_delay": "directory.retry_base_delay",
	"directory_rate_limit_rps":   "directory.rate_limit_rps",
	"directory_rate_limit_burst": "directory.rate_limit_burst",
	"directory_breaker_enabled":  "directory.breaker_enabled",

	"cache_search_ttl":         "cache.search_ttl",
	"cache_browse_ttl":         "cache.browse_ttl",
	"cache_details_ttl":        "cache.details_ttl",
	"cache_recommendation_ttl": "cache.recommendation_ttl",
	"cache_cleanup_interval":   "cache.cleanup_interval",
	"cache_badger_enabled":     "cache.badger_enabled",
	"cache_badger_path":        "cache.badger_path",

	"engine_top_n":                  "engine.top_n",
	"engine_enrich_top_k":           "engine.enrich_top_k",
	"engine_request_deadline":       "engine.request_deadline",
	"engine_min_description_length": "engine.min_description_length",
	"engine_require_disbursable":    "engine.require_disbursable",

	"security_cors_origins":           "security.cors_origins",
	"security_maintenance_token_hash": "security.maintenance_token_hash",
	"security_maintenance_jwt_secret": "security.maintenance_jwt_secret",
	"security_rate_limit_disabled":    "security.rate_limit_disabled",
}

// sliceConfigPaths lists koanf paths whose env values are comma-separated
// lists and must be split before unmarshalling.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Returning "" tells koanf to skip the variable.
func envTransformFunc(s string) string {
	if path, ok := envKeyMap[strings.ToLower(s)]; ok {
		return path
	}
	return ""
}

// LoadWithKoanf layers defaults, an optional YAML file, and environment
// variables into a validated Config.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(Delim)

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", Delim, envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	processSliceFields(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// findConfigFile returns the first config file that exists, or "" when the
// application should run on defaults and environment alone.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// processSliceFields splits comma-separated env values into string slices.
// YAML lists arrive as slices already; env vars arrive as a single string.
func processSliceFields(k *koanf.Koanf) {
	for _, path := range sliceConfigPaths {
		raw := k.Get(path)
		s, ok := raw.(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		_ = k.Set(path, out)
	}
}
