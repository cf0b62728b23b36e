// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

/*
Package middleware provides chi-compatible HTTP middleware.

Every constructor returns func(http.Handler) http.Handler so it can be passed
to chi's r.Use:

  - RequestID: X-Request-ID propagation plus request/correlation IDs in the
    logging context
  - PrometheusMetrics: request counters, latency histograms and in-flight
    gauge, labelled by chi route pattern
  - AccessLog: one structured zerolog line per request

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
