// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinerec/internal/middleware"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler *Handler
	mw      *ChiMiddleware
}

// NewRouter returns a Router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, mw: mw}
}

// Setup builds the HTTP handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.mw.CORS())

	// One limiter so every route draws from the same per-client budget.
	rateLimit := router.mw.RateLimit()

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// Probes are not rate limited.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimit)
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/recommendations", router.handler.Recommendations)
		r.Post("/recommendations", router.handler.Recommendations)
		r.Get("/titles/search", router.handler.SearchTitles)
		r.Get("/titles/popular", router.handler.PopularTitles)
		r.Get("/dataset", router.handler.Dataset)
	})

	r.With(rateLimit, middleware.PrometheusMetrics).
		Post("/recommend", router.handler.Recommendations)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
