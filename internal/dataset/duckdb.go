// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	// DuckDB driver - reads the CSV sources and performs the join in SQL
	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"
)

// DuckDBLoader reads both sources through an in-memory DuckDB instance.
type DuckDBLoader struct {
	src    Sources
	logger zerolog.Logger
}

// NewDuckDBLoader creates a DuckDBLoader.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewDuckDBLoader(src Sources, logger zerolog.Logger) *DuckDBLoader {
	return &DuckDBLoader{
		src:    src,
		logger: logger.With().Str("component", "dataset").Str("backend", BackendDuckDB).Logger(),
	}
}

// Load implements Loader.
func (l *DuckDBLoader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, loadErr(l.src.RatingsPath, 0, "", fmt.Errorf("open duckdb: %w", err))
	}
	defer db.Close() //nolint:errcheck // in-memory database

	// Temp tables are connection scoped; pin one connection for the whole load.
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, loadErr(l.src.RatingsPath, 0, "", fmt.Errorf("duckdb conn: %w", err))
	}
	defer conn.Close() //nolint:errcheck // released with db

	ratingCount, err := l.stageRatings(ctx, conn)
	if err != nil {
		return nil, err
	}
	titleCount, err := l.stageTitles(ctx, conn)
	if err != nil {
		return nil, err
	}

	rows, err := l.join(ctx, conn, ratingCount)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Rows:         rows,
		RatingCount:  ratingCount,
		TitleCount:   titleCount,
		DroppedRows:  ratingCount - len(rows),
		Backend:      BackendDuckDB,
		LoadedAt:     time.Now(),
		LoadDuration: time.Since(start),
	}
	logLoaded(l.logger, ds)
	return ds, nil
}

func (l *DuckDBLoader) stageRatings(ctx context.Context, conn *sql.Conn) (int, error) {
	path := l.src.RatingsPath
	delim := l.src.RatingsDelimiter
	if delim == 0 {
		delim = '\t'
	}

	query := fmt.Sprintf(`CREATE TEMP TABLE ratings AS
SELECT row_number() OVER () AS seq, user_id, item_id, rating, ts
FROM read_csv(%s, header = false, delim = %s, strict_mode = true,
	columns = {'user_id': 'BIGINT', 'item_id': 'BIGINT', 'rating': 'DOUBLE', 'ts': 'BIGINT'})`,
		sqlLiteral(path), sqlLiteral(string(delim)))
	if _, err := conn.ExecContext(ctx, query); err != nil {
		return 0, loadErr(path, 0, "", err)
	}

	// Empty fields load as NULL.
	var nullUser, nullItem, nullRating, nullTS int
	if err := conn.QueryRowContext(ctx, `SELECT
	COUNT(*) FILTER (WHERE user_id IS NULL),
	COUNT(*) FILTER (WHERE item_id IS NULL),
	COUNT(*) FILTER (WHERE rating IS NULL),
	COUNT(*) FILTER (WHERE ts IS NULL)
FROM ratings`).Scan(&nullUser, &nullItem, &nullRating, &nullTS); err != nil {
		return 0, loadErr(path, 0, "", err)
	}
	for _, c := range []struct {
		field string
		n     int
	}{
		{"user_id", nullUser},
		{ColumnItemID, nullItem},
		{"rating", nullRating},
		{"timestamp", nullTS},
	} {
		if c.n > 0 {
			return 0, loadErr(path, 0, c.field, fmt.Errorf("%w (%d rows)", errEmptyField, c.n))
		}
	}

	var nonFinite int
	if err := conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ratings WHERE NOT isfinite(rating)").Scan(&nonFinite); err != nil {
		return 0, loadErr(path, 0, "", err)
	}
	if nonFinite > 0 {
		return 0, loadErr(path, 0, "rating", fmt.Errorf("%w (%d rows)", errNonFinite, nonFinite))
	}

	var n int
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM ratings").Scan(&n); err != nil {
		return 0, loadErr(path, 0, "", err)
	}
	return n, nil
}

func (l *DuckDBLoader) stageTitles(ctx context.Context, conn *sql.Conn) (int, error) {
	path := l.src.TitlesPath

	// Line numbers are 1-based and the header occupies line 1.
	query := fmt.Sprintf(`CREATE TEMP TABLE titles AS
SELECT row_number() OVER () + 1 AS line,
	item_id AS raw_id,
	TRY_CAST(trim(item_id, %[2]s) AS BIGINT) AS item_id,
	trim(title, %[2]s) AS title
FROM read_csv(%[1]s, header = true, delim = ',', all_varchar = true)`, sqlLiteral(path), sqlWhitespace)
	if _, err := conn.ExecContext(ctx, query); err != nil {
		return 0, loadErr(path, 1, "", err)
	}

	checks := []struct {
		query string
		field string
		err   func(raw string) error
	}{
		{
			query: "SELECT line, coalesce(raw_id, '') FROM titles WHERE item_id IS NULL ORDER BY line LIMIT 1",
			field: ColumnItemID,
			err:   func(raw string) error { return fmt.Errorf("invalid item_id %q", raw) },
		},
		{
			query: "SELECT line, '' FROM titles WHERE title IS NULL OR title = '' ORDER BY line LIMIT 1",
			field: ColumnTitle,
			err:   func(string) error { return errEmptyTitle },
		},
		{
			query: `SELECT t.line, t.raw_id FROM titles t
JOIN (SELECT item_id, min(line) AS first_line FROM titles GROUP BY item_id HAVING COUNT(*) > 1) d
	ON t.item_id = d.item_id AND t.line > d.first_line
ORDER BY t.line LIMIT 1`,
			field: ColumnItemID,
			err:   func(raw string) error { return fmt.Errorf("%w %s", errDuplicateItem, strings.TrimSpace(raw)) },
		},
	}
	for _, c := range checks {
		var line int
		var raw string
		err := conn.QueryRowContext(ctx, c.query).Scan(&line, &raw)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return 0, loadErr(path, 0, "", err)
		}
		return 0, loadErr(path, line, c.field, c.err(raw))
	}

	var n int
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM titles").Scan(&n); err != nil {
		return 0, loadErr(path, 0, "", err)
	}
	return n, nil
}

func (l *DuckDBLoader) join(ctx context.Context, conn *sql.Conn, capacity int) ([]JoinedRating, error) {
	rows, err := conn.QueryContext(ctx, `SELECT r.user_id, r.item_id, r.rating, r.ts, t.title
FROM ratings r
JOIN titles t ON r.item_id = t.item_id
ORDER BY r.seq`)
	if err != nil {
		return nil, loadErr(l.src.RatingsPath, 0, "", fmt.Errorf("join: %w", err))
	}
	defer rows.Close() //nolint:errcheck // checked via rows.Err

	out := make([]JoinedRating, 0, capacity)
	for rows.Next() {
		var jr JoinedRating
		if err := rows.Scan(&jr.UserID, &jr.ItemID, &jr.Value, &jr.Timestamp, &jr.Title); err != nil {
			return nil, loadErr(l.src.RatingsPath, 0, "", fmt.Errorf("scan joined row: %w", err))
		}
		out = append(out, jr)
	}
	if err := rows.Err(); err != nil {
		return nil, loadErr(l.src.RatingsPath, 0, "", err)
	}
	return out, nil
}

// sqlWhitespace is the ASCII set strings.TrimSpace strips, as a DuckDB expression.
const sqlWhitespace = "' ' || chr(9) || chr(10) || chr(11) || chr(12) || chr(13)"

// sqlLiteral quotes s as a SQL string literal. read_csv arguments cannot be bound parameters.
func sqlLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
