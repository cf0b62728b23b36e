// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

/*
Package main is the entry point of the cinerec server.

cinerec answers "people who liked this movie also liked..." queries. At
startup it loads a ratings file and a titles file, builds a title by user
rating matrix, and serves item-based recommendations ranked by Pearson
correlation over an HTTP API.

# Startup

Components are initialized in order, and the server only accepts traffic
once the dataset is fully loaded:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Dataset: csv or DuckDB loader, inner join of ratings and titles
 4. Engine: rating matrix, popularity index and title resolver
 5. HTTP: chi router with CORS, rate limiting and Prometheus metrics
 6. Supervisor tree: suture v4 running the HTTP server and cache janitor

A load failure (missing file, malformed row, strict duplicate) is fatal.

# Configuration

	RATINGS_PATH=data/file.tsv            # headerless user_id, item_id, rating, timestamp
	TITLES_PATH=data/Movie_Id_Titles.csv  # item_id,title with header
	RATINGS_DELIMITER=tab
	DATA_BACKEND=csv                      # or duckdb
	RECOMMEND_MIN_RATINGS=100             # titles need more ratings than this
	RECOMMEND_LIMIT=10
	HTTP_PORT=5000
	LOG_LEVEL=info

See internal/config for the full list and the YAML layout.

# Example

	./cinerec &
	curl 'http://localhost:5000/api/v1/recommendations?title=star+wars'

# Signal Handling

On SIGINT or SIGTERM the readiness probe starts failing, the supervisor
tree is stopped and the HTTP server drains in-flight requests within
HTTP_SHUTDOWN_TIMEOUT.
*/
package main
