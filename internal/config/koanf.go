// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/healthrec/config.yaml",
	"/etc/healthrec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is loaded into the process environment when present.
const DotEnvFile = ".env"

// Load loads configuration from defaults, the first config file found, and
// environment variables, in increasing priority.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit config file. An empty path falls back to
// CONFIG_PATH and DefaultConfigPaths.
func LoadFrom(path string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads a dotenv file without overriding variables that are
// already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields splits comma-separated strings for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(strVal, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored so the process environment cannot pollute
// the configuration.
var envMappings = map[string]string{
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"request_timeout":     "server.request_timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"catalog_source":                "catalog.source",
	"catalog_path":                  "catalog.path",
	"catalog_items_csv":             "catalog.items_csv",
	"catalog_medicines_csv":         "catalog.medicines_csv",
	"catalog_refresh":               "catalog.refresh_spec",
	"catalog_breaker_max_requests":  "catalog.breaker.max_requests",
	"catalog_breaker_interval":      "catalog.breaker.interval",
	"catalog_breaker_timeout":       "catalog.breaker.timeout",
	"catalog_breaker_min_requests":  "catalog.breaker.min_requests",
	"catalog_breaker_failure_ratio": "catalog.breaker.failure_ratio",

	"storage_backend":  "storage.backend",
	"counters_backend": "storage.counters",
	"sqlite_path":      "storage.sqlite_path",
	"badger_dir":       "storage.badger_dir",
	"redis_addr":       "storage.redis_addr",
	"redis_password":   "storage.redis_password",
	"redis_db":         "storage.redis_db",
	"redis_prefix":     "storage.redis_prefix",

	"recommend_alpha":             "recommend.alpha",
	"recommend_epsilon":           "recommend.epsilon",
	"recommend_exploit":           "recommend.exploit",
	"recommend_seed":              "recommend.seed",
	"recommend_trending_weight":   "recommend.trending_weight",
	"recommend_time_boost":        "recommend.time_boost",
	"recommend_default_score":     "recommend.default_score",
	"recommend_default_k":         "recommend.default_k",
	"recommend_max_k":             "recommend.max_k",
	"recommend_default_condition": "recommend.default_condition",
	"search_cache_size":           "recommend.search_cache_size",
	"search_cache_ttl":            "recommend.search_cache_ttl",

	"diagnosis_records_csv":   "diagnosis.records_csv",
	"diagnosis_test_fraction": "diagnosis.test_fraction",
	"diagnosis_seed":          "diagnosis.seed",
}

// envTransformFunc maps an environment variable name to a koanf path, or ""
// to skip it.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - COUNTERS_BACKEND -> storage.counters
//   - RECOMMEND_ALPHA -> recommend.alpha
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
