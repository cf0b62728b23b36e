// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

// Package config loads the server configuration.
//
// Sources are layered with koanf v2, later layers overriding earlier ones:
//
//  1. built-in defaults (defaultConfig)
//  2. an optional YAML file (CONFIG_PATH, then DefaultConfigPaths)
//  3. environment variables (see envMappings)
//
// The result is validated with struct tags through internal/validation and
// with cross-field checks in Validate. Helpers convert the sections into the
// option types of the packages that consume them.
package config

import (
	"time"
)

// Config is the complete server configuration.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DataConfig locates the rating and title sources.
type DataConfig struct {
	// RatingsPath is the headerless ratings file (user_id, item_id, rating, timestamp).
	RatingsPath string `koanf:"ratings_path" validate:"required"`

	// TitlesPath is the titles file with an item_id,title header.
	TitlesPath string `koanf:"titles_path" validate:"required"`

	// RatingsDelimiter is "tab", "comma", "semicolon", "pipe" or a single character.
	RatingsDelimiter string `koanf:"ratings_delimiter" validate:"required"`

	// Backend selects the loader: csv or duckdb.
	Backend string `koanf:"backend" validate:"oneof=csv duckdb"`

	// DuplicatePolicy resolves repeated (user, title) ratings: strict, last or mean.
	DuplicatePolicy string `koanf:"duplicate_policy" validate:"oneof=strict last mean"`
}

// RecommendConfig holds query defaults and engine limits.
type RecommendConfig struct {
	MinRatings      int           `koanf:"min_ratings" validate:"gte=0"`
	Limit           int           `koanf:"limit" validate:"min=1"`
	MaxLimit        int           `koanf:"max_limit" validate:"min=1,max=1000"`
	MinOverlap      int           `koanf:"min_overlap" validate:"min=2"`
	Workers         int           `koanf:"workers" validate:"gte=0"` // 0 = GOMAXPROCS
	QueryTimeout    time.Duration `koanf:"query_timeout" validate:"gte=0"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}
