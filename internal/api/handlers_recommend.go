// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/cinerec/internal/middleware"
	"github.com/tomtom215/cinerec/internal/models"
	"github.com/tomtom215/cinerec/internal/recommend"
)

// Recommendations handles GET and POST /api/v1/recommendations and the
// legacy POST /recommend form endpoint.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseRecommendRequest(w, r)
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Query:      req.Title,
		K:          req.K,
		MinRatings: req.MinRatings,
		RequestID:  middleware.GetRequestID(r.Context()),
	})
	if err != nil {
		respondRecommendError(w, r, err)
		return
	}

	respondSuccess(w, r, toRecommendationResult(resp), models.Metadata{
		QueryTimeMS: resp.Metadata.LatencyMS,
		Cached:      resp.Metadata.CacheHit,
	})
}

// respondRecommendError maps engine outcomes to HTTP responses.
// The engine has already logged anything unexpected.
func respondRecommendError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *recommend.NotFoundError
	switch {
	case errors.As(err, &notFound):
		respondError(w, r, http.StatusNotFound, &models.APIError{
			Code:    models.CodeTitleNotFound,
			Message: fmt.Sprintf("Movie %q not found in the database. Please try another movie.", notFound.Query),
			Details: map[string]interface{}{"query": notFound.Query},
		}, nil)

	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    models.CodeQueryTimeout,
			Message: "The recommendation query took too long. Please try again.",
		}, nil)

	default:
		respondError(w, r, http.StatusInternalServerError, &models.APIError{
			Code:    models.CodeInternal,
			Message: recommend.InternalErrorMessage,
			Details: map[string]interface{}{"request_id": middleware.GetRequestID(r.Context())},
		}, nil)
	}
}

func toRecommendationResult(resp *recommend.Response) models.RecommendationResult {
	items := make([]models.RecommendationItem, len(resp.Items))
	for i, rec := range resp.Items {
		items[i] = models.RecommendationItem{
			Title:       rec.Title,
			Correlation: rec.Correlation,
			NumRatings:  rec.NumRatings,
			MeanRating:  rec.MeanRating,
			Overlap:     rec.Overlap,
		}
	}
	return models.RecommendationResult{
		Query:      resp.Query,
		Title:      resp.Title,
		Items:      items,
		Scored:     resp.Scored,
		Eligible:   resp.Eligible,
		K:          resp.K,
		MinRatings: resp.MinRatings,
	}
}
