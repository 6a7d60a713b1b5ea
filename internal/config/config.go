// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package config

import (
	"time"

	"github.com/tomtom215/healthrec/internal/catalog"
	"github.com/tomtom215/healthrec/internal/diagnosis"
	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Storage   StorageConfig   `koanf:"storage"`
	Recommend RecommendConfig `koanf:"recommend"`
	Diagnosis DiagnosisConfig `koanf:"diagnosis"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// RequestTimeout bounds the work of one API request.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`

	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`

	// RateLimitDisabled turns off per-IP rate limiting.
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig selects and schedules the catalog source.
type CatalogConfig struct {
	// Source is yaml or csv.
	Source string `koanf:"source" validate:"oneof=yaml csv"`

	// Path is the YAML catalog file.
	Path string `koanf:"path" validate:"required_if=Source yaml"`

	// ItemsCSV and MedicinesCSV are read through DuckDB when Source is csv.
	ItemsCSV     string `koanf:"items_csv" validate:"required_if=Source csv"`
	MedicinesCSV string `koanf:"medicines_csv"`

	// RefreshSpec is the cron schedule of catalog reloads. Empty disables refresh.
	RefreshSpec string `koanf:"refresh_spec" validate:"omitempty,cronspec"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker around the catalog source.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests" validate:"gte=1"`
	Interval     time.Duration `koanf:"interval" validate:"gte=0"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

// StorageConfig selects the store backends.
type StorageConfig struct {
	// Backend stores ratings and the activity log: memory or sqlite.
	Backend string `koanf:"backend" validate:"oneof=memory sqlite"`

	// Counters stores bandit counters: memory, sqlite, badger or redis.
	Counters string `koanf:"counters" validate:"oneof=memory sqlite badger redis"`

	SQLitePath string `koanf:"sqlite_path"`
	BadgerDir  string `koanf:"badger_dir"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db" validate:"gte=0"`
	RedisPrefix   string `koanf:"redis_prefix"`
}

// RecommendConfig holds the engine tunables.
type RecommendConfig struct {
	Alpha            float64       `koanf:"alpha"`
	Epsilon          float64       `koanf:"epsilon"`
	Exploit          string        `koanf:"exploit" validate:"strategy"`
	Seed             int64         `koanf:"seed"`
	TrendingWeight   float64       `koanf:"trending_weight" validate:"gte=0"`
	TimeBoost        float64       `koanf:"time_boost" validate:"gte=0"`
	DefaultScore     float64       `koanf:"default_score"`
	DefaultK         int           `koanf:"default_k" validate:"gte=1"`
	MaxK             int           `koanf:"max_k" validate:"gtefield=DefaultK"`
	DefaultCondition string        `koanf:"default_condition"`
	SearchCacheSize  int           `koanf:"search_cache_size" validate:"gte=0"`
	SearchCacheTTL   time.Duration `koanf:"search_cache_ttl" validate:"gte=0"`
}

// DiagnosisConfig configures the diagnosis predictor.
type DiagnosisConfig struct {
	// RecordsCSV is the labeled medical records file read through DuckDB.
	// Empty disables prediction.
	RecordsCSV   string  `koanf:"records_csv"`
	TestFraction float64 `koanf:"test_fraction" validate:"gte=0,lt=1"`
	Seed         int64   `koanf:"seed"`
}

// Default returns the built-in defaults without reading any source.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	engine := recommend.DefaultConfig()
	breaker := catalog.DefaultBreakerConfig()
	predictor := diagnosis.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			RequestTimeout:  10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			Source:      "yaml",
			Path:        "data/catalog.yaml",
			RefreshSpec: "@every 5m",
			Breaker: BreakerConfig{
				MaxRequests:  breaker.MaxRequests,
				Interval:     breaker.Interval,
				Timeout:      breaker.Timeout,
				MinRequests:  breaker.MinRequests,
				FailureRatio: breaker.FailureRatio,
			},
		},
		Storage: StorageConfig{
			Backend:     "memory",
			Counters:    "memory",
			SQLitePath:  "data/healthrec.db",
			BadgerDir:   "data/counters",
			RedisAddr:   "127.0.0.1:6379",
			RedisPrefix: "healthrec",
		},
		Recommend: RecommendConfig{
			Alpha:            engine.Hybrid.Alpha,
			Epsilon:          engine.Bandit.Epsilon,
			Exploit:          string(engine.Bandit.Exploit),
			Seed:             engine.Bandit.Seed,
			TrendingWeight:   engine.Context.TrendingWeight,
			TimeBoost:        engine.Context.TimeBoost,
			DefaultScore:     engine.Context.DefaultScore,
			DefaultK:         engine.Limits.DefaultK,
			MaxK:             engine.Limits.MaxK,
			DefaultCondition: engine.Graph.DefaultCondition,
			SearchCacheSize:  engine.Search.CacheSize,
			SearchCacheTTL:   engine.Search.CacheTTL,
		},
		Diagnosis: DiagnosisConfig{
			RecordsCSV:   "data/medical_records.csv",
			TestFraction: predictor.TestFraction,
			Seed:         predictor.Seed,
		},
	}
}

// EngineConfig converts the recommend section into an engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	exploit, err := recommend.ParseStrategy(r.Exploit)
	if err != nil {
		exploit = recommend.StrategyHybrid
	}
	return &recommend.Config{
		Hybrid: recommend.HybridConfig{Alpha: r.Alpha},
		Bandit: recommend.BanditConfig{Epsilon: r.Epsilon, Exploit: exploit, Seed: r.Seed},
		Context: recommend.ContextConfig{
			TrendingWeight: r.TrendingWeight,
			TimeBoost:      r.TimeBoost,
			DefaultScore:   r.DefaultScore,
		},
		Graph:  recommend.GraphConfig{DefaultCondition: r.DefaultCondition},
		Limits: recommend.LimitsConfig{DefaultK: r.DefaultK, MaxK: r.MaxK},
		Search: recommend.SearchConfig{CacheSize: r.SearchCacheSize, CacheTTL: r.SearchCacheTTL},
	}
}

// DiagnosisSettings converts the diagnosis section for diagnosis.NewPredictor.
func (c *Config) DiagnosisSettings() diagnosis.Config {
	return diagnosis.Config{TestFraction: c.Diagnosis.TestFraction, Seed: c.Diagnosis.Seed}
}

// LoggingSettings converts the logging section for logging.Init.
func (c *Config) LoggingSettings() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}

// BreakerSettings converts the breaker section for catalog.NewBreakerProvider.
func (c *Config) BreakerSettings() catalog.BreakerConfig {
	b := c.Catalog.Breaker
	return catalog.BreakerConfig{
		Name:         "catalog-" + c.Catalog.Source,
		MaxRequests:  b.MaxRequests,
		Interval:     b.Interval,
		Timeout:      b.Timeout,
		MinRequests:  b.MinRequests,
		FailureRatio: b.FailureRatio,
	}
}
