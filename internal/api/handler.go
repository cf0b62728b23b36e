// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/cinerec/internal/recommend"
)

// Recommender is the engine surface the handlers use.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Search(query string, limit int) []string
	Popular(k, minRatings int) []recommend.PopularTitle
	Stats() recommend.Stats
	Config() *recommend.Config
}

// Handler serves the API endpoints.
type Handler struct {
	engine    Recommender
	version   string
	startTime time.Time
	draining  atomic.Bool
}

// NewHandler returns a Handler serving engine.
func NewHandler(engine Recommender, version string) *Handler {
	return &Handler{
		engine:    engine,
		version:   version,
		startTime: time.Now(),
	}
}

// Drain makes the readiness probe fail so load balancers stop routing
// traffic before shutdown. In-flight and new requests are still served.
func (h *Handler) Drain() {
	h.draining.Store(true)
}

func (h *Handler) ready() bool {
	return h.engine != nil && !h.draining.Load()
}
