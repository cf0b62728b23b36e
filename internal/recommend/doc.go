// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

// Package recommend implements item-based collaborative filtering over a
// user × title rating matrix.
//
// # Pipeline
//
//	dataset.Dataset ──► BuildMatrix ──────► Matrix ─┐
//	                └─► BuildPopularity ─► PopularityIndex
//	query ──► Resolver ──► target title ──► SimilarTo ──► Rank ──► []Recommendation
//
// Everything is built once by NewEngine and is read-only afterwards, so an
// Engine serves concurrent queries without locking the data.
//
// # Similarity
//
// The similarity of two titles is the Pearson correlation of their ratings,
// computed only over users who rated both. A pair is undefined, and excluded
// from the results, when fewer than MinOverlap users (at least 2) rated both
// or when either side has zero variance over the overlap. Undefined pairs are
// never reported as 0.
//
// # Ranking
//
// Only titles with strictly more than MinRatings ratings are kept. Results
// are ordered by correlation descending, then rating count descending, then
// title ascending, and truncated to K. The queried title is never returned.
//
// # Outcomes
//
// Recommend returns one of:
//
//   - a *Response, possibly with zero items when the title exists but nothing
//     clears the reliability threshold (Scored and Eligible tell why);
//   - a *NotFoundError carrying the normalized query;
//   - a *InternalError for inconsistencies and unexpected faults, whose
//     user-facing message never exposes internals;
//   - the context error when the query is cancelled or times out.
package recommend
