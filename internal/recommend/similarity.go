// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// MinOverlap is the smallest overlap for which a correlation is defined.
const MinOverlap = 2

// cancelCheckEvery is how many columns a worker scores between context checks.
const cancelCheckEvery = 64

// Similarity is the correlation between the target title and Title.
type Similarity struct {
	Title       string  `json:"title"`
	Correlation float64 `json:"correlation"`
	Overlap     int     `json:"overlap"`
}

// SimilarityOptions tunes SimilarTo.
type SimilarityOptions struct {
	// MinOverlap raises the minimum number of common raters. Values below 2 are treated as 2.
	MinOverlap int

	// Workers splits the column scan. Values below 2 scan on the calling goroutine.
	Workers int
}

// SimilarTo correlates target against every other title in m. Titles with an
// undefined correlation are omitted. Results are in column order.
// The scan stops with ctx.Err() once ctx is done.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func SimilarTo(ctx context.Context, m *Matrix, target string, opts SimilarityOptions) ([]Similarity, error) {
	tcol, ok := m.column(target)
	if !ok {
		return nil, &InconsistencyError{Title: target, Detail: "title is not a matrix column"}
	}
	minOverlap := max(opts.MinOverlap, MinOverlap)

	n := m.NumTitles()
	workers := opts.Workers
	if workers < 2 || n < 2*cancelCheckEvery {
		return scanColumns(ctx, m, target, tcol, 0, n, minOverlap)
	}

	chunk := (n + workers - 1) / workers
	parts := make([][]Similarity, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, n)
		if start >= end {
			break
		}
		g.Go(func() error {
			sims, err := scanColumns(gctx, m, target, tcol, start, end, minOverlap)
			parts[w] = sims
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]Similarity, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

func scanColumns(ctx context.Context, m *Matrix, target string, tcol []cell, start, end, minOverlap int) ([]Similarity, error) {
	var out []Similarity
	for i := start; i < end; i++ {
		if (i-start)%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		title := m.titles[i]
		if title == target {
			continue
		}
		r, overlap, ok := pearson(tcol, m.columns[i], minOverlap)
		if !ok {
			continue
		}
		out = append(out, Similarity{Title: title, Correlation: r, Overlap: overlap})
	}
	return out, nil
}

// Pearson returns the correlation of a and b (user id → rating) over their
// common users. ok is false when the correlation is undefined.
func Pearson(a, b map[int]float64) (r float64, overlap int, ok bool) {
	var xs, ys []float64
	for u, va := range a {
		if vb, found := b[u]; found {
			xs = append(xs, va)
			ys = append(ys, vb)
		}
	}
	return pearsonPairs(xs, ys, MinOverlap)
}

// pearson correlates two user-sorted columns with a linear merge.
func pearson(a, b []cell, minOverlap int) (float64, int, bool) {
	// First pass: overlap size, means and constancy.
	var n int
	var sumA, sumB float64
	var firstA, firstB float64
	constA, constB := true, true
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i].user < b[j].user:
			i++
		case a[i].user > b[j].user:
			j++
		default:
			va, vb := a[i].value, b[j].value
			if n == 0 {
				firstA, firstB = va, vb
			} else {
				constA = constA && va == firstA
				constB = constB && vb == firstB
			}
			sumA += va
			sumB += vb
			n++
			i++
			j++
		}
	}
	if n < minOverlap || constA || constB {
		return 0, n, false
	}
	meanA, meanB := sumA/float64(n), sumB/float64(n)

	// Second pass: co-deviation.
	var num, denA, denB float64
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i].user < b[j].user:
			i++
		case a[i].user > b[j].user:
			j++
		default:
			da, db := a[i].value-meanA, b[j].value-meanB
			num += da * db
			denA += da * da
			denB += db * db
			i++
			j++
		}
	}
	return finish(num, denA, denB, n)
}

func pearsonPairs(xs, ys []float64, minOverlap int) (float64, int, bool) {
	n := len(xs)
	if n < minOverlap {
		return 0, n, false
	}
	constX, constY := true, true
	var sumX, sumY float64
	for i := range xs {
		constX = constX && xs[i] == xs[0]
		constY = constY && ys[i] == ys[0]
		sumX += xs[i]
		sumY += ys[i]
	}
	if constX || constY {
		return 0, n, false
	}
	meanX, meanY := sumX/float64(n), sumY/float64(n)

	var num, denX, denY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		num += dx * dy
		denX += dx * dx
		denY += dy * dy
	}
	return finish(num, denX, denY, n)
}

func finish(num, denA, denB float64, n int) (float64, int, bool) {
	if denA == 0 || denB == 0 {
		return 0, n, false
	}
	r := num / (math.Sqrt(denA) * math.Sqrt(denB))
	if math.IsNaN(r) {
		return 0, n, false
	}
	// rounding can push |r| slightly past 1
	return math.Max(-1, math.Min(1, r)), n, true
}
