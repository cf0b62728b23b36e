// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
	if cfg.Ranking.MinRatings != 100 {
		t.Errorf("Expected default threshold 100, got %d", cfg.Ranking.MinRatings)
	}
	if cfg.Ranking.DefaultK != 10 {
		t.Errorf("Expected default K 10, got %d", cfg.Ranking.DefaultK)
	}
	if cfg.DuplicatePolicy != DuplicateLast {
		t.Errorf("Expected default duplicate policy last, got %q", cfg.DuplicatePolicy)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative threshold", func(c *Config) { c.Ranking.MinRatings = -1 }},
		{"zero default k", func(c *Config) { c.Ranking.DefaultK = 0 }},
		{"max k below default", func(c *Config) { c.Ranking.MaxK = 5 }},
		{"overlap below 2", func(c *Config) { c.Similarity.MinOverlap = 1 }},
		{"negative workers", func(c *Config) { c.Similarity.Workers = -1 }},
		{"negative timeout", func(c *Config) { c.Limits.QueryTimeout = -time.Second }},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"zero cache entries", func(c *Config) { c.Cache.MaxEntries = 0 }},
		{"unknown policy", func(c *Config) { c.DuplicatePolicy = "first" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestConfigValidateCacheDisabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Cache.TTL = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Cache settings should be ignored when disabled: %v", err)
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Ranking.MinRatings = 5
	if cfg.Ranking.MinRatings == 5 {
		t.Error("Clone shares state with original")
	}
}
