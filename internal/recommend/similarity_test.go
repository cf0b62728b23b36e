// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
)

const epsilon = 1e-9

func mustMatrix(t *testing.T, rs ...rated) *Matrix {
	t.Helper()
	m, err := BuildMatrix(joined(rs...), DuplicateStrict)
	if err != nil {
		t.Fatalf("BuildMatrix failed: %v", err)
	}
	return m
}

func byTitle(sims []Similarity) map[string]Similarity {
	out := make(map[string]Similarity, len(sims))
	for _, s := range sims {
		out[s.Title] = s
	}
	return out
}

// threeByThree is a 3 user x 3 title fixture with hand-computed correlations
// against A: B = 1.0, C = 6/sqrt(624).
func threeByThree() []rated {
	return []rated{
		{1, "A", 5}, {2, "A", 3}, {3, "A", 1},
		{1, "B", 4}, {2, "B", 3}, {3, "B", 2},
		{1, "C", 2}, {2, "C", 5}, {3, "C", 1},
	}
}

func TestSimilarToHandComputed(t *testing.T) {
	t.Parallel()

	m := mustMatrix(t, threeByThree()...)
	sims, err := SimilarTo(context.Background(), m, "A", SimilarityOptions{})
	if err != nil {
		t.Fatalf("SimilarTo failed: %v", err)
	}
	got := byTitle(sims)

	if _, self := got["A"]; self {
		t.Error("Target must not be compared with itself")
	}
	if b := got["B"]; math.Abs(b.Correlation-1) > epsilon || b.Overlap != 3 {
		t.Errorf("Expected B correlation 1 over 3 users, got %+v", b)
	}
	wantC := 6 / math.Sqrt(624)
	if c := got["C"]; math.Abs(c.Correlation-wantC) > epsilon {
		t.Errorf("Expected C correlation %v, got %v", wantC, c.Correlation)
	}
}

func TestSimilarToExcludesUndefinedPairs(t *testing.T) {
	t.Parallel()

	m := mustMatrix(t,
		rated{1, "Target", 5}, rated{2, "Target", 3}, rated{3, "Target", 1},
		// one common rater
		rated{1, "Sparse", 4}, rated{9, "Sparse", 2},
		// constant over the overlap
		rated{1, "Flat", 3}, rated{2, "Flat", 3}, rated{3, "Flat", 3},
		// no common raters
		rated{7, "Disjoint", 1}, rated{8, "Disjoint", 5},
		// defined, negative
		rated{1, "Inverse", 1}, rated{2, "Inverse", 3}, rated{3, "Inverse", 5},
	)

	sims, err := SimilarTo(context.Background(), m, "Target", SimilarityOptions{})
	if err != nil {
		t.Fatalf("SimilarTo failed: %v", err)
	}
	got := byTitle(sims)

	for _, title := range []string{"Sparse", "Flat", "Disjoint"} {
		if s, ok := got[title]; ok {
			t.Errorf("%s should be excluded, got %+v", title, s)
		}
	}
	if inv, ok := got["Inverse"]; !ok || math.Abs(inv.Correlation+1) > epsilon {
		t.Errorf("Expected Inverse correlation -1, got %+v (present=%v)", inv, ok)
	}
}

func TestSimilarToTargetWithZeroVariance(t *testing.T) {
	t.Parallel()

	m := mustMatrix(t,
		rated{1, "Flat", 4}, rated{2, "Flat", 4},
		rated{1, "Other", 1}, rated{2, "Other", 5},
	)
	sims, err := SimilarTo(context.Background(), m, "Flat", SimilarityOptions{})
	if err != nil {
		t.Fatalf("SimilarTo failed: %v", err)
	}
	if len(sims) != 0 {
		t.Errorf("Expected no defined correlations, got %+v", sims)
	}
}

func TestSimilarToMinOverlap(t *testing.T) {
	t.Parallel()

	m := mustMatrix(t, threeByThree()...)
	sims, err := SimilarTo(context.Background(), m, "A", SimilarityOptions{MinOverlap: 4})
	if err != nil {
		t.Fatalf("SimilarTo failed: %v", err)
	}
	if len(sims) != 0 {
		t.Errorf("Expected no results with min overlap 4, got %+v", sims)
	}

	// below the floor is treated as 2
	sims, _ = SimilarTo(context.Background(), m, "A", SimilarityOptions{MinOverlap: 1})
	if len(sims) != 2 {
		t.Errorf("Expected 2 results, got %d", len(sims))
	}
}

func TestSimilarToUnknownTitle(t *testing.T) {
	t.Parallel()

	m := mustMatrix(t, threeByThree()...)
	_, err := SimilarTo(context.Background(), m, "Missing", SimilarityOptions{})
	if !errors.Is(err, ErrInconsistent) {
		t.Errorf("Expected ErrInconsistent, got %v", err)
	}
}

func TestSimilarToCancelled(t *testing.T) {
	t.Parallel()

	m := mustMatrix(t, threeByThree()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SimilarTo(ctx, m, "A", SimilarityOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSimilarToWorkersMatchSequential(t *testing.T) {
	t.Parallel()

	var rs []rated
	for item := 0; item < 300; item++ {
		title := fmt.Sprintf("Title %03d", item)
		for user := 0; user < 20; user++ {
			if (user+item)%3 == 0 {
				continue
			}
			rs = append(rs, rated{user, title, float64((user*7+item*3)%5 + 1)})
		}
	}
	m := mustMatrix(t, rs...)

	seq, err := SimilarTo(context.Background(), m, "Title 000", SimilarityOptions{Workers: 1})
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	par, err := SimilarTo(context.Background(), m, "Title 000", SimilarityOptions{Workers: 4})
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if len(seq) != len(par) {
		t.Fatalf("Length mismatch: %d vs %d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i] != par[i] {
			t.Errorf("Index %d differs: %+v vs %+v", i, seq[i], par[i])
		}
	}
}

func TestPearsonMaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b    map[int]float64
		want    float64
		overlap int
		ok      bool
	}{
		{"identical", map[int]float64{1: 5, 2: 5, 3: 1}, map[int]float64{1: 5, 2: 5, 3: 1}, 1, 3, true},
		{"inverse", map[int]float64{1: 1, 2: 2}, map[int]float64{1: 2, 2: 1}, -1, 2, true},
		{"single overlap", map[int]float64{1: 1, 2: 2}, map[int]float64{1: 2, 3: 1}, 0, 1, false},
		{"constant", map[int]float64{1: 3, 2: 3}, map[int]float64{1: 2, 2: 1}, 0, 2, false},
		{"empty", map[int]float64{}, map[int]float64{1: 1}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, n, ok := Pearson(tt.a, tt.b)
			if ok != tt.ok || n != tt.overlap {
				t.Fatalf("Expected ok=%v overlap=%d, got ok=%v overlap=%d", tt.ok, tt.overlap, ok, n)
			}
			if ok && math.Abs(r-tt.want) > epsilon {
				t.Errorf("Expected %v, got %v", tt.want, r)
			}
		})
	}
}
