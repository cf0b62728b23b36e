// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"time"

	"github.com/tomtom215/cinerec/internal/cache"
)

// Request is a single recommendation query.
type Request struct {
	// Query is the free-text title to resolve.
	Query string `json:"query"`

	// K is the maximum number of results. Zero uses the configured default;
	// larger values are capped at the configured maximum.
	K int `json:"k,omitempty"`

	// MinRatings overrides the reliability threshold when non-nil.
	MinRatings *int `json:"min_ratings,omitempty"`

	// RequestID is propagated to logs and metadata; generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is a successful recommendation result.
type Response struct {
	// Query is the normalized query.
	Query string `json:"query"`

	// Title is the canonical title the query resolved to.
	Title string `json:"title"`

	// Items is the ranked list. It may be empty.
	Items []Recommendation `json:"items"`

	// Scored is the number of titles with a defined correlation to Title.
	Scored int `json:"scored"`

	// Eligible is how many of those cleared the reliability threshold.
	Eligible int `json:"eligible"`

	K          int `json:"k"`
	MinRatings int `json:"min_ratings"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string    `json:"request_id"`
	LatencyMS int64     `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats describes the loaded data and engine activity.
type Stats struct {
	Users        int       `json:"users"`
	Titles       int       `json:"titles"`
	Ratings      int       `json:"ratings"`
	Cells        int       `json:"cells"`
	Duplicates   int       `json:"duplicates"`
	DroppedRows  int       `json:"dropped_rows"`
	Backend      string    `json:"backend"`
	LoadedAt     time.Time `json:"loaded_at"`
	LoadDuration string    `json:"load_duration"`

	Requests int64        `json:"requests"`
	Errors   int64        `json:"errors"`
	Cache    *cache.Stats `json:"cache,omitempty"`
}
