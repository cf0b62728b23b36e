// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package api

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinerec/internal/models"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 64 << 10

// legacyTitleField is the title field name of the legacy HTML form.
const legacyTitleField = "movie_title"

// recommendRequest is the input of the recommendations endpoint.
type recommendRequest struct {
	Title      string `json:"title" validate:"required,max=500"`
	K          int    `json:"k" validate:"gte=0,max=1000"`
	MinRatings *int   `json:"min_ratings,omitempty" validate:"omitempty,gte=0"`
}

type searchRequest struct {
	Query string `json:"q" validate:"required,max=500"`
	Limit int    `json:"limit" validate:"gte=0,max=100"`
}

type popularRequest struct {
	K          int  `json:"k" validate:"gte=0,max=1000"`
	MinRatings *int `json:"min_ratings,omitempty" validate:"omitempty,gte=0"`
}

// parseRecommendRequest reads a recommendation request from the query
// string (GET), a JSON body or a form body (POST).
func parseRecommendRequest(w http.ResponseWriter, r *http.Request) (*recommendRequest, *models.APIError) {
	req := &recommendRequest{}

	switch {
	case r.Method == http.MethodPost && isJSON(r):
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			return nil, &models.APIError{
				Code:    models.CodeValidation,
				Message: "Request body must be a JSON object with a title field",
				Details: map[string]interface{}{"error": err.Error()},
			}
		}
	case r.Method == http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, &models.APIError{
				Code:    models.CodeValidation,
				Message: "Request body could not be parsed as a form",
			}
		}
		if apiErr := fillRecommendRequest(req, r.PostForm); apiErr != nil {
			return nil, apiErr
		}
	default:
		if apiErr := fillRecommendRequest(req, r.URL.Query()); apiErr != nil {
			return nil, apiErr
		}
	}

	if apiErr := validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

func fillRecommendRequest(req *recommendRequest, values url.Values) *models.APIError {
	req.Title = values.Get("title")
	if req.Title == "" {
		req.Title = values.Get(legacyTitleField)
	}

	k, apiErr := intValue(values, "k")
	if apiErr != nil {
		return apiErr
	}
	if k != nil {
		req.K = *k
	}

	req.MinRatings, apiErr = intValue(values, "min_ratings")
	return apiErr
}

func parseSearchRequest(r *http.Request) (*searchRequest, *models.APIError) {
	values := r.URL.Query()
	req := &searchRequest{Query: values.Get("q")}

	limit, apiErr := intValue(values, "limit")
	if apiErr != nil {
		return nil, apiErr
	}
	if limit != nil {
		req.Limit = *limit
	}

	if apiErr := validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

func parsePopularRequest(r *http.Request) (*popularRequest, *models.APIError) {
	values := r.URL.Query()
	req := &popularRequest{}

	k, apiErr := intValue(values, "k")
	if apiErr != nil {
		return nil, apiErr
	}
	if k != nil {
		req.K = *k
	}
	if req.MinRatings, apiErr = intValue(values, "min_ratings"); apiErr != nil {
		return nil, apiErr
	}

	if apiErr := validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

// intValue parses an optional integer parameter. Absent or blank yields nil.
func intValue(values url.Values, key string) (*int, *models.APIError) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fieldError(key, fmt.Sprintf("%s must be an integer", key), raw)
	}
	return &v, nil
}

func isJSON(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "application/json"
}
