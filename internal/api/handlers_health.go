// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinerec/internal/models"
)

// HealthLive handles the liveness probe. It succeeds while the process runs.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, models.HealthStatus{
		Status:  "alive",
		Version: h.version,
		Ready:   h.ready(),
		Uptime:  time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady handles the readiness probe. It returns 503 until the engine
// is attached and after Drain.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.ready()

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: models.HealthStatus{
			Status:  status,
			Version: h.version,
			Ready:   ready,
			Uptime:  time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Dataset handles GET /api/v1/dataset.
func (h *Handler) Dataset(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.engine.Stats(), models.Metadata{})
}
