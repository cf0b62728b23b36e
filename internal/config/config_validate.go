// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/cinerec/internal/validation"
)

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	validators := []func() error{
		c.validateDelimiter,
		c.validateLimits,
		c.validateCache,
		c.validateRateLimit,
		c.validateCORS,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}

	// The engine has its own invariants; surface them at startup.
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateDelimiter() error {
	if _, err := parseDelimiter(c.Data.RatingsDelimiter); err != nil {
		return fmt.Errorf("RATINGS_DELIMITER: %w", err)
	}
	return nil
}

func (c *Config) validateLimits() error {
	if c.Recommend.MaxLimit < c.Recommend.Limit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT (%d) must be >= RECOMMEND_LIMIT (%d)",
			c.Recommend.MaxLimit, c.Recommend.Limit)
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Recommend.CacheEnabled {
		return nil
	}
	if c.Recommend.CacheTTL <= 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when caching is enabled")
	}
	if c.Recommend.CacheMaxEntries < 1 {
		return fmt.Errorf("RECOMMEND_CACHE_MAX_ENTRIES must be at least 1 when caching is enabled")
	}
	return nil
}

func (c *Config) validateRateLimit() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be at least 1 (set DISABLE_RATE_LIMIT=true to turn limiting off)")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" && len(c.Security.CORSOrigins) > 1 {
			return fmt.Errorf("CORS_ORIGINS: wildcard cannot be combined with explicit origins")
		}
	}
	return nil
}

var namedDelimiters = map[string]rune{
	"tab":       '\t',
	"comma":     ',',
	"semicolon": ';',
	"pipe":      '|',
	"space":     ' ',
}

// parseDelimiter accepts a delimiter name or a single character.
func parseDelimiter(s string) (rune, error) {
	if r, ok := namedDelimiters[strings.ToLower(s)]; ok {
		return r, nil
	}
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("must be a single character or one of tab, comma, semicolon, pipe, space; got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
