// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

// Package metrics holds the Prometheus instruments for Cinerec. Instruments
// are registered on the default registry and exposed at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes used as the "outcome" label.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeTimeout  = "timeout"
	OutcomeError    = "error"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Recommendation queries by outcome",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent computing a recommendation (cache misses only)",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	RecommendCandidatesScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates_scored",
			Help:    "Number of titles with a defined correlation per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Recommendation result cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Recommendation result cache misses",
		},
	)

	// Dataset Metrics
	DatasetRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_ratings",
			Help: "Joined rating rows held in memory",
		},
	)

	DatasetTitles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_titles",
			Help: "Distinct titles in the rating matrix",
		},
	)

	DatasetUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_users",
			Help: "Distinct users in the rating matrix",
		},
	)

	DatasetDroppedRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_dropped_rows",
			Help: "Rating rows without a matching title",
		},
	)

	DatasetLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_load_duration_seconds",
			Help: "Time taken to load and index the dataset at startup",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one computed (non cached) recommendation.
func RecordRecommendation(outcome string, duration time.Duration, scored int) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if scored >= 0 {
		RecommendCandidatesScored.Observe(float64(scored))
	}
}

// RecordCacheLookup records a result cache hit or miss. Hits also count as
// served requests with the cached outcome.
func RecordCacheLookup(hit bool, outcome string) {
	if hit {
		RecommendCacheHits.Inc()
		RecommendRequests.WithLabelValues(outcome).Inc()
		return
	}
	RecommendCacheMisses.Inc()
}

// SetDatasetStats publishes the dataset gauges.
func SetDatasetStats(ratings, titles, users, dropped int, loadDuration time.Duration) {
	DatasetRatings.Set(float64(ratings))
	DatasetTitles.Set(float64(titles))
	DatasetUsers.Set(float64(users))
	DatasetDroppedRows.Set(float64(dropped))
	DatasetLoadDuration.Set(loadDuration.Seconds())
}
