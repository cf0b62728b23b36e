// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"fmt"
	"runtime"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Ranking contains result filtering and truncation parameters.
	Ranking RankingConfig `json:"ranking"`

	// Similarity contains correlation parameters.
	Similarity SimilarityConfig `json:"similarity"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`

	// DuplicatePolicy resolves repeated (user, title) ratings.
	// Default: last.
	DuplicatePolicy DuplicatePolicy `json:"duplicate_policy"`
}

// RankingConfig contains result filtering and truncation parameters.
type RankingConfig struct {
	// MinRatings is the reliability threshold: only titles with strictly
	// more ratings are recommended.
	// Default: 100.
	MinRatings int `json:"min_ratings"`

	// DefaultK is the number of recommendations when the request names none.
	// Default: 10.
	DefaultK int `json:"default_k"`

	// MaxK caps the K a request may ask for.
	// Default: 100.
	MaxK int `json:"max_k"`
}

// SimilarityConfig contains correlation parameters.
type SimilarityConfig struct {
	// MinOverlap is the minimum number of common raters for a defined correlation.
	// Default: 2. Values below 2 are rejected.
	MinOverlap int `json:"min_overlap"`

	// Workers is the number of goroutines scanning columns per query.
	// Default: GOMAXPROCS.
	Workers int `json:"workers"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// QueryTimeout bounds the similarity scan of a single query. Zero disables it.
	// Default: 5s.
	QueryTimeout time.Duration `json:"query_timeout"`
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled controls whether results are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries bounds the cache size.
	// Default: 1000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Ranking: RankingConfig{
			MinRatings: 100,
			DefaultK:   10,
			MaxK:       100,
		},
		Similarity: SimilarityConfig{
			MinOverlap: MinOverlap,
			Workers:    runtime.GOMAXPROCS(0),
		},
		Limits: LimitsConfig{
			QueryTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1000,
		},
		DuplicatePolicy: DuplicateLast,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Ranking.MinRatings < 0 {
		return fmt.Errorf("ranking.min_ratings must be non-negative, got %d", c.Ranking.MinRatings)
	}
	if c.Ranking.DefaultK < 1 {
		return fmt.Errorf("ranking.default_k must be positive, got %d", c.Ranking.DefaultK)
	}
	if c.Ranking.MaxK < c.Ranking.DefaultK {
		return fmt.Errorf("ranking.max_k (%d) must be >= ranking.default_k (%d)", c.Ranking.MaxK, c.Ranking.DefaultK)
	}

	if c.Similarity.MinOverlap < MinOverlap {
		return fmt.Errorf("similarity.min_overlap must be at least %d, got %d", MinOverlap, c.Similarity.MinOverlap)
	}
	if c.Similarity.Workers < 0 {
		return fmt.Errorf("similarity.workers must be non-negative, got %d", c.Similarity.Workers)
	}

	if c.Limits.QueryTimeout < 0 {
		return fmt.Errorf("limits.query_timeout must be non-negative, got %v", c.Limits.QueryTimeout)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	if _, err := ParseDuplicatePolicy(string(c.DuplicatePolicy)); err != nil {
		return fmt.Errorf("duplicate_policy: %w", err)
	}
	return nil
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
