// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package api

import (
	"net/http"

	"github.com/tomtom215/cinerec/internal/models"
	"github.com/tomtom215/cinerec/internal/recommend"
)

const defaultSearchLimit = 10

// SearchTitles handles GET /api/v1/titles/search. Titles are listed in the
// order the resolver would pick them, so the first one is what a
// recommendation query with the same text resolves to.
func (h *Handler) SearchTitles(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseSearchRequest(r)
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}

	respondSuccess(w, r, models.SearchResult{
		Query:  recommend.Normalize(req.Query),
		Titles: h.engine.Search(req.Query, limit),
	}, models.Metadata{})
}

// PopularTitles handles GET /api/v1/titles/popular.
func (h *Handler) PopularTitles(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parsePopularRequest(r)
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	minRatings := h.engine.Config().Ranking.MinRatings
	if req.MinRatings != nil {
		minRatings = *req.MinRatings
	}

	top := h.engine.Popular(req.K, minRatings)
	titles := make([]models.PopularTitle, len(top))
	for i, p := range top {
		titles[i] = models.PopularTitle{
			Title:      p.Title,
			NumRatings: p.NumRatings,
			MeanRating: p.MeanRating,
		}
	}

	respondSuccess(w, r, models.PopularResult{
		MinRatings: minRatings,
		Titles:     titles,
	}, models.Metadata{})
}
