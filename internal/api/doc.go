// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

/*
Package api exposes the recommendation engine over HTTP using the chi router.

Routes:

	GET|POST /api/v1/recommendations   title, k, min_ratings -> ranked titles
	GET      /api/v1/titles/search     q, limit -> matching titles
	GET      /api/v1/titles/popular    k, min_ratings -> most rated titles
	GET      /api/v1/dataset           dataset and engine statistics
	GET      /api/v1/health/live       liveness probe
	GET      /api/v1/health/ready      readiness probe
	POST     /recommend                form field movie_title (legacy form endpoint)
	GET      /metrics                  Prometheus metrics

Every JSON body is a models.APIResponse. Engine outcomes map to:

	*recommend.Response            200 (items may be empty)
	*recommend.NotFoundError       404 TITLE_NOT_FOUND, details.query
	context deadline/cancellation  503 QUERY_TIMEOUT
	anything else                  500 INTERNAL_ERROR with a generic message
*/
package api
