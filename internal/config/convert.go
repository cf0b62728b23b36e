// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package config

import (
	"fmt"
	"net"
	"runtime"
	"strconv"

	"github.com/tomtom215/cinerec/internal/dataset"
	"github.com/tomtom215/cinerec/internal/logging"
	"github.com/tomtom215/cinerec/internal/recommend"
)

// Sources returns the dataset source locations. Call after Validate.
func (c *Config) Sources() dataset.Sources {
	delim, _ := parseDelimiter(c.Data.RatingsDelimiter)
	return dataset.Sources{
		RatingsPath:      c.Data.RatingsPath,
		TitlesPath:       c.Data.TitlesPath,
		RatingsDelimiter: delim,
	}
}

// EngineConfig returns the recommendation engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Ranking.MinRatings = c.Recommend.MinRatings
	cfg.Ranking.DefaultK = c.Recommend.Limit
	cfg.Ranking.MaxK = c.Recommend.MaxLimit
	cfg.Similarity.MinOverlap = c.Recommend.MinOverlap
	cfg.Similarity.Workers = c.Recommend.Workers
	if cfg.Similarity.Workers == 0 {
		cfg.Similarity.Workers = runtime.GOMAXPROCS(0)
	}
	cfg.Limits.QueryTimeout = c.Recommend.QueryTimeout
	cfg.Cache.Enabled = c.Recommend.CacheEnabled
	cfg.Cache.TTL = c.Recommend.CacheTTL
	cfg.Cache.MaxEntries = c.Recommend.CacheMaxEntries
	cfg.DuplicatePolicy = recommend.DuplicatePolicy(c.Data.DuplicatePolicy)
	return cfg
}

// LoggingConfig returns the logger configuration.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Summary returns non-sensitive settings for the startup log line.
func (c *Config) Summary() map[string]string {
	return map[string]string{
		"ratings_path":     c.Data.RatingsPath,
		"titles_path":      c.Data.TitlesPath,
		"backend":          c.Data.Backend,
		"duplicate_policy": c.Data.DuplicatePolicy,
		"min_ratings":      strconv.Itoa(c.Recommend.MinRatings),
		"limit":            strconv.Itoa(c.Recommend.Limit),
		"addr":             c.Server.Addr(),
		"rate_limit":       fmt.Sprintf("%d/%s", c.Security.RateLimitReqs, c.Security.RateLimitWindow),
	}
}
