// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinerec/internal/cache"
	"github.com/tomtom215/cinerec/internal/dataset"
	"github.com/tomtom215/cinerec/internal/metrics"
)

// Engine answers recommendation queries against an immutable dataset.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	matrix     *Matrix
	popularity *PopularityIndex
	resolver   *Resolver

	// nil when caching is disabled
	cache *cache.LRU[*Response]

	stats Stats

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine builds the matrix, popularity index and resolver from ds.
// ds must be fully loaded; it is not retained.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(ds *dataset.Dataset, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if ds == nil {
		return nil, errors.New("nil dataset")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()

	start := time.Now()
	logger = logger.With().Str("component", "recommend").Logger()

	matrix, err := BuildMatrix(ds.Rows, cfg.DuplicatePolicy)
	if err != nil {
		return nil, fmt.Errorf("build rating matrix: %w", err)
	}
	popularity := BuildPopularity(ds.Rows)

	if err := checkConsistency(matrix, popularity); err != nil {
		return nil, err
	}

	e := &Engine{
		config:     cfg,
		logger:     logger,
		matrix:     matrix,
		popularity: popularity,
		resolver:   NewResolver(matrix.Titles()),
		stats: Stats{
			Users:        matrix.NumUsers(),
			Titles:       matrix.NumTitles(),
			Ratings:      len(ds.Rows),
			Cells:        matrix.Cells(),
			Duplicates:   matrix.Duplicates(),
			DroppedRows:  ds.DroppedRows,
			Backend:      ds.Backend,
			LoadedAt:     ds.LoadedAt,
			LoadDuration: ds.LoadDuration.String(),
		},
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	metrics.SetDatasetStats(len(ds.Rows), matrix.NumTitles(), matrix.NumUsers(), ds.DroppedRows,
		ds.LoadDuration+time.Since(start))

	ev := logger.Info()
	if matrix.Duplicates() > 0 {
		ev = logger.Warn().Str("policy", string(cfg.DuplicatePolicy))
	}
	ev.Int("users", matrix.NumUsers()).
		Int("titles", matrix.NumTitles()).
		Int("cells", matrix.Cells()).
		Int("duplicates", matrix.Duplicates()).
		Dur("build", time.Since(start)).
		Msg("recommendation engine ready")

	return e, nil
}

// checkConsistency verifies every matrix column has a popularity entry.
func checkConsistency(m *Matrix, p *PopularityIndex) error {
	for _, t := range m.Titles() {
		e, ok := p.Get(t)
		if !ok {
			return &InconsistencyError{Title: t, Detail: "no popularity entry"}
		}
		if e.NumRatings < m.Count(t) {
			return &InconsistencyError{
				Title:  t,
				Detail: fmt.Sprintf("popularity count %d below matrix count %d", e.NumRatings, m.Count(t)),
			}
		}
	}
	return nil
}

// Recommend resolves req.Query and returns the titles most correlated with it.
// See the package documentation for the possible outcomes.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (resp *Response, err error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	query := Normalize(req.Query)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("query", query).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("recommendation panicked")
			resp, err = nil, &InternalError{RequestID: req.RequestID, Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			var nf *NotFoundError
			if !errors.As(err, &nf) {
				e.errorCount.Add(1)
			}
		}
	}()

	key := cacheKey(query, req.K, *req.MinRatings)
	if cached := e.lookupCache(key); cached != nil {
		out := *cached
		out.Items = slices.Clone(cached.Items)
		out.Metadata = ResponseMetadata{
			RequestID: req.RequestID,
			LatencyMS: time.Since(start).Milliseconds(),
			CacheHit:  true,
			Timestamp: time.Now(),
		}
		metrics.RecordCacheLookup(true, outcomeOf(&out))
		logger.Debug().Msg("cache hit")
		return &out, nil
	}
	if e.cache != nil {
		metrics.RecordCacheLookup(false, "")
	}

	title, ok := e.resolver.Resolve(query)
	if !ok {
		metrics.RecordRecommendation(metrics.OutcomeNotFound, time.Since(start), -1)
		logger.Debug().Msg("no title matched")
		return nil, &NotFoundError{Query: query}
	}
	if !e.matrix.HasTitle(title) {
		return nil, e.fail(logger, req, title, start, &InconsistencyError{Title: title, Detail: "resolved title has no matrix column"})
	}

	if e.config.Limits.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Limits.QueryTimeout)
		defer cancel()
	}

	sims, err := SimilarTo(ctx, e.matrix, title, SimilarityOptions{
		MinOverlap: e.config.Similarity.MinOverlap,
		Workers:    e.config.Similarity.Workers,
	})
	if err != nil {
		return nil, e.fail(logger, req, title, start, fmt.Errorf("similarity: %w", err))
	}

	items, eligible, err := Rank(title, sims, e.popularity, RankOptions{
		MinRatings: *req.MinRatings,
		K:          req.K,
	})
	if err != nil {
		return nil, e.fail(logger, req, title, start, fmt.Errorf("rank: %w", err))
	}

	resp = &Response{
		Query:      query,
		Title:      title,
		Items:      items,
		Scored:     len(sims),
		Eligible:   eligible,
		K:          req.K,
		MinRatings: *req.MinRatings,
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: time.Now(),
		},
	}
	if e.cache != nil {
		// Cached responses never share Items with a caller.
		stored := *resp
		stored.Items = slices.Clone(resp.Items)
		e.cache.Add(key, &stored)
	}

	metrics.RecordRecommendation(outcomeOf(resp), time.Since(start), len(sims))
	logger.Debug().
		Str("title", title).
		Int("scored", len(sims)).
		Int("eligible", eligible).
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// fail classifies err, records it and returns what the caller should see.
// Context errors pass through; everything else becomes an *InternalError.
//
//nolint:gocritic // hugeParam: logger and req passed by value
func (e *Engine) fail(logger zerolog.Logger, req Request, title string, start time.Time, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		metrics.RecordRecommendation(metrics.OutcomeTimeout, time.Since(start), -1)
		logger.Warn().Err(err).Str("title", title).Msg("recommendation aborted")
		return err
	}

	metrics.RecordRecommendation(metrics.OutcomeError, time.Since(start), -1)
	ev := logger.Error().Err(err).Str("title", title)
	var ie *InconsistencyError
	if errors.As(err, &ie) {
		ev = ev.Str("inconsistent_title", ie.Title).Str("detail", ie.Detail)
	}
	ev.Msg("recommendation failed")
	return &InternalError{RequestID: req.RequestID, Err: err}
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.K <= 0 {
		req.K = e.config.Ranking.DefaultK
	}
	if req.K > e.config.Ranking.MaxK {
		req.K = e.config.Ranking.MaxK
	}
	threshold := e.config.Ranking.MinRatings
	if req.MinRatings != nil && *req.MinRatings >= 0 {
		threshold = *req.MinRatings
	}
	req.MinRatings = &threshold
	return req
}

func (e *Engine) lookupCache(key string) *Response {
	if e.cache == nil {
		return nil
	}
	resp, ok := e.cache.Get(key)
	if !ok {
		return nil
	}
	return resp
}

func cacheKey(query string, k, minRatings int) string {
	return query + "\x00" + strconv.Itoa(k) + "\x00" + strconv.Itoa(minRatings)
}

func outcomeOf(resp *Response) string {
	if len(resp.Items) == 0 {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeOK
}

// Search lists up to limit titles matching query, in resolution order.
func (e *Engine) Search(query string, limit int) []string {
	return e.resolver.Candidates(query, limit)
}

// Popular lists up to k titles with more than minRatings ratings, most rated first.
// A negative minRatings uses the configured threshold.
func (e *Engine) Popular(k, minRatings int) []PopularTitle {
	if k <= 0 {
		k = e.config.Ranking.DefaultK
	}
	k = min(k, e.config.Ranking.MaxK)
	if minRatings < 0 {
		minRatings = e.config.Ranking.MinRatings
	}
	return e.popularity.Top(k, minRatings)
}

// Stats returns dataset and activity statistics.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Requests = e.requestCount.Load()
	s.Errors = e.errorCount.Load()
	if e.cache != nil {
		cs := e.cache.Stats()
		s.Cache = &cs
	}
	return s
}

// SweepCache drops expired cache entries and returns how many were removed.
func (e *Engine) SweepCache() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.CleanupExpired()
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
