// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

// Package dataset loads the two sources the recommender is built from and
// joins them into title-keyed rating rows.
//
// # Sources
//
//	ratings  headerless, 4 fields: user_id, item_id, rating, timestamp
//	         (tab separated by default, MovieLens "u.data" layout)
//	titles   header row, at least the columns item_id and title
//
// # Backends
//
// Two Loader implementations produce identical Datasets:
//
//   - FileLoader parses both files with encoding/csv in a single pass each.
//   - DuckDBLoader reads both files with DuckDB's read_csv and performs the
//     inner join in SQL. Useful for large inputs.
//
// # Failure Model
//
// Every problem with the input (unreadable file, wrong field count, a
// non-numeric id or rating, a missing header column, a duplicate item_id in
// the titles source) is a *LoadError which matches ErrDataLoad via errors.Is.
// Load failures are fatal at startup: the service never serves queries from a
// partially loaded dataset.
//
// Rating rows whose item_id has no title are dropped by the join. They are
// counted in Dataset.DroppedRows, not reported as errors.
package dataset
