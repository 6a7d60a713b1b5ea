// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package recommend

import (
	"fmt"
	"time"
)

// Config holds the recommendation engine configuration.
type Config struct {
	// Hybrid configures the content/collaborative blend.
	Hybrid HybridConfig `json:"hybrid"`

	// Bandit configures the epsilon-greedy strategy selector.
	Bandit BanditConfig `json:"bandit"`

	// Context configures the time-of-day and trend adjustment.
	Context ContextConfig `json:"context"`

	// Graph configures the graph strategy.
	Graph GraphConfig `json:"graph"`

	// Limits bounds result sizes.
	Limits LimitsConfig `json:"limits"`

	// Search configures the search result cache.
	Search SearchConfig `json:"search"`
}

// HybridConfig configures rank-based blending.
type HybridConfig struct {
	// Alpha weights content over collaborative rank scores.
	// final = Alpha*contentRank + (1-Alpha)*collaborativeRank
	// Default: 0.6
	Alpha float64 `json:"alpha"`
}

// BanditConfig configures the strategy selector.
type BanditConfig struct {
	// Epsilon is the exploration probability.
	// Default: 0.2
	Epsilon float64 `json:"epsilon"`

	// Exploit is the strategy returned when not exploring.
	// Default: hybrid
	Exploit Strategy `json:"exploit"`

	// Seed seeds the exploration RNG. Zero selects 42.
	Seed int64 `json:"seed"`
}

// ContextConfig configures the context adjuster.
type ContextConfig struct {
	// TrendingWeight scales the min-max normalized popularity boost.
	// Default: 0.2
	TrendingWeight float64 `json:"trending_weight"`

	// TimeBoost is added when an item's timeslot matches the request tag.
	// Default: 0.1
	TimeBoost float64 `json:"time_boost"`

	// DefaultScore is the base score of candidates that carry no score.
	// Default: 0.5
	DefaultScore float64 `json:"default_score"`
}

// GraphConfig configures the graph strategy.
type GraphConfig struct {
	// DefaultCondition is used when no liked item names a condition.
	// Default: hypertension
	DefaultCondition string `json:"default_condition"`
}

// LimitsConfig bounds result sizes.
type LimitsConfig struct {
	// DefaultK is used when a request leaves K at zero.
	DefaultK int `json:"default_k"`

	// MaxK caps K.
	MaxK int `json:"max_k"`
}

// SearchConfig configures the search result cache.
type SearchConfig struct {
	// CacheSize is the LRU capacity. Zero disables caching.
	CacheSize int `json:"cache_size"`

	// CacheTTL bounds the age of cached results.
	CacheTTL time.Duration `json:"cache_ttl"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Hybrid: HybridConfig{
			Alpha: 0.6,
		},
		Bandit: BanditConfig{
			Epsilon: 0.2,
			Exploit: StrategyHybrid,
			Seed:    42,
		},
		Context: ContextConfig{
			TrendingWeight: 0.2,
			TimeBoost:      0.1,
			DefaultScore:   0.5,
		},
		Graph: GraphConfig{
			DefaultCondition: "hypertension",
		},
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     100,
		},
		Search: SearchConfig{
			CacheSize: 1000,
			CacheTTL:  5 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Hybrid.Alpha < 0 || c.Hybrid.Alpha > 1 {
		return fmt.Errorf("%w: hybrid.alpha got %f", ErrInvalidAlpha, c.Hybrid.Alpha)
	}
	if c.Bandit.Epsilon < 0 || c.Bandit.Epsilon > 1 {
		return fmt.Errorf("%w: bandit.epsilon got %f", ErrInvalidEpsilon, c.Bandit.Epsilon)
	}
	if _, err := ParseStrategy(string(c.Bandit.Exploit)); err != nil {
		return fmt.Errorf("bandit.exploit: %w", err)
	}
	if c.Context.TrendingWeight < 0 {
		return fmt.Errorf("context.trending_weight must be non-negative, got %f", c.Context.TrendingWeight)
	}
	if c.Context.TimeBoost < 0 {
		return fmt.Errorf("context.time_boost must be non-negative, got %f", c.Context.TimeBoost)
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size must be non-negative, got %d", c.Search.CacheSize)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
