// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package dataset

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Supported loader backends.
const (
	BackendCSV    = "csv"
	BackendDuckDB = "duckdb"
)

// Sources locates the two input files.
type Sources struct {
	RatingsPath string
	TitlesPath  string

	// RatingsDelimiter separates ratings fields. Default: tab.
	RatingsDelimiter rune
}

// Loader produces a fully joined Dataset or a *LoadError.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// NewLoader returns the Loader for backend.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLoader(backend string, src Sources, logger zerolog.Logger) (Loader, error) {
	switch backend {
	case "", BackendCSV:
		return NewFileLoader(src, logger), nil
	case BackendDuckDB:
		return NewDuckDBLoader(src, logger), nil
	default:
		return nil, fmt.Errorf("unknown dataset backend %q", backend)
	}
}

// FileLoader reads both sources from local files with encoding/csv.
type FileLoader struct {
	src    Sources
	logger zerolog.Logger
}

// NewFileLoader creates a FileLoader.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewFileLoader(src Sources, logger zerolog.Logger) *FileLoader {
	return &FileLoader{
		src:    src,
		logger: logger.With().Str("component", "dataset").Str("backend", BackendCSV).Logger(),
	}
}

// Load implements Loader.
func (l *FileLoader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	ratings, err := readFile(ctx, l.src.RatingsPath, func(f *os.File) ([]Rating, error) {
		return ReadRatings(f, l.src.RatingsPath, l.src.RatingsDelimiter)
	})
	if err != nil {
		return nil, err
	}
	titles, err := readFile(ctx, l.src.TitlesPath, func(f *os.File) ([]Title, error) {
		return ReadTitles(f, l.src.TitlesPath)
	})
	if err != nil {
		return nil, err
	}

	ds := Join(ratings, titles)
	ds.Backend = BackendCSV
	ds.LoadDuration = time.Since(start)
	logLoaded(l.logger, ds)
	return ds, nil
}

func readFile[T any](ctx context.Context, path string, parse func(*os.File) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadErr(path, 0, "", err)
	}
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, loadErr(path, 0, "", err)
	}
	defer f.Close() //nolint:errcheck // read-only file
	return parse(f)
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func logLoaded(logger zerolog.Logger, ds *Dataset) {
	ev := logger.Info()
	if ds.DroppedRows > 0 {
		ev = logger.Warn()
	}
	ev.Int("ratings", ds.RatingCount).
		Int("titles", ds.TitleCount).
		Int("joined", len(ds.Rows)).
		Int("dropped", ds.DroppedRows).
		Dur("duration", ds.LoadDuration).
		Msg("Dataset loaded")
}
