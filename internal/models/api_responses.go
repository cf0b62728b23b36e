// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

// Package models defines the JSON shapes returned by the HTTP API.
package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes.
const (
	CodeTitleNotFound    = "TITLE_NOT_FOUND"
	CodeInternal         = "INTERNAL_ERROR"
	CodeValidation       = "VALIDATION_ERROR"
	CodeQueryTimeout     = "QUERY_TIMEOUT"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	CodeRouteNotFound    = "NOT_FOUND"
)

// APIResponse wraps every HTTP response body.
//
//	{
//	  "status": "success",
//	  "data": {"title": "Star Wars (1977)", "items": [...]},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "request_id": "...", "query_time_ms": 3}
//	}
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "TITLE_NOT_FOUND", "message": "...", "details": {"query": "zzz"}},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the error part of an APIResponse.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendationItem is one ranked title.
type RecommendationItem struct {
	Title       string  `json:"title"`
	Correlation float64 `json:"correlation"`
	NumRatings  int     `json:"num_ratings"`
	MeanRating  float64 `json:"mean_rating"`
	Overlap     int     `json:"overlap"`
}

// RecommendationResult is the data of a successful recommendation query.
type RecommendationResult struct {
	Query      string               `json:"query"`
	Title      string               `json:"title"`
	Items      []RecommendationItem `json:"items"`
	Scored     int                  `json:"scored"`
	Eligible   int                  `json:"eligible"`
	K          int                  `json:"k"`
	MinRatings int                  `json:"min_ratings"`
}

// SearchResult lists titles matching a query, in resolution order.
type SearchResult struct {
	Query  string   `json:"query"`
	Titles []string `json:"titles"`
}

// PopularTitle is one entry of the popularity ranking.
type PopularTitle struct {
	Title      string  `json:"title"`
	NumRatings int     `json:"num_ratings"`
	MeanRating float64 `json:"mean_rating"`
}

// PopularResult is the popularity ranking.
type PopularResult struct {
	MinRatings int            `json:"min_ratings"`
	Titles     []PopularTitle `json:"titles"`
}

// HealthStatus is returned by the health probes.
type HealthStatus struct {
	Status  string  `json:"status"`
	Version string  `json:"version"`
	Ready   bool    `json:"ready"`
	Uptime  float64 `json:"uptime_seconds"`
}
