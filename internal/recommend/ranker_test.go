// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"errors"
	"testing"
)

// popularityWith builds an index where title i has counts[i] ratings.
func popularityWith(counts map[string]int) *PopularityIndex {
	var rs []rated
	for title, n := range counts {
		for u := 0; u < n; u++ {
			rs = append(rs, rated{u, title, 3})
		}
	}
	return BuildPopularity(joined(rs...))
}

func titles(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRankOrdering(t *testing.T) {
	t.Parallel()

	pop := popularityWith(map[string]int{"A": 5, "B": 7, "C": 5, "D": 5, "E": 9})
	sims := []Similarity{
		{Title: "D", Correlation: 0.5},
		{Title: "A", Correlation: 0.9},
		{Title: "C", Correlation: 0.9},
		{Title: "B", Correlation: 0.9},
		{Title: "E", Correlation: -0.2},
	}

	got, eligible, err := Rank("X", sims, pop, RankOptions{MinRatings: 0, K: 10})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	// B wins the 0.9 tie on count, A and C tie on count and sort by title.
	want := []string{"B", "A", "C", "D", "E"}
	if !equalStrings(titles(got), want) {
		t.Errorf("Expected %v, got %v", want, titles(got))
	}
	if eligible != 5 {
		t.Errorf("Expected 5 eligible, got %d", eligible)
	}
	if got[0].NumRatings != 7 || got[0].MeanRating != 3 {
		t.Errorf("Popularity not attached: %+v", got[0])
	}
}

func TestRankThresholdIsStrict(t *testing.T) {
	t.Parallel()

	pop := popularityWith(map[string]int{"Exactly": 100, "Above": 101, "Below": 99})
	sims := []Similarity{
		{Title: "Exactly", Correlation: 0.99},
		{Title: "Above", Correlation: 0.1},
		{Title: "Below", Correlation: 0.98},
	}

	got, eligible, err := Rank("X", sims, pop, RankOptions{MinRatings: 100, K: 10})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if !equalStrings(titles(got), []string{"Above"}) {
		t.Errorf("Expected only Above, got %v", titles(got))
	}
	if eligible != 1 {
		t.Errorf("Expected 1 eligible, got %d", eligible)
	}
	for _, r := range got {
		if r.NumRatings <= 100 {
			t.Errorf("%s has %d ratings, not above threshold", r.Title, r.NumRatings)
		}
	}
}

func TestRankTruncatesAndExcludesTarget(t *testing.T) {
	t.Parallel()

	pop := popularityWith(map[string]int{"T": 3, "A": 3, "B": 3, "C": 3})
	sims := []Similarity{
		{Title: "T", Correlation: 1},
		{Title: "A", Correlation: 0.3},
		{Title: "B", Correlation: 0.2},
		{Title: "C", Correlation: 0.1},
	}

	got, eligible, err := Rank("T", sims, pop, RankOptions{K: 2})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if !equalStrings(titles(got), []string{"A", "B"}) {
		t.Errorf("Expected [A B], got %v", titles(got))
	}
	if eligible != 3 {
		t.Errorf("Expected 3 eligible before truncation, got %d", eligible)
	}

	got, _, _ = Rank("T", sims, pop, RankOptions{K: 0})
	if len(got) != 0 {
		t.Errorf("Expected empty result for K=0, got %v", titles(got))
	}
}

func TestRankMissingPopularity(t *testing.T) {
	t.Parallel()

	pop := popularityWith(map[string]int{"A": 3})
	_, _, err := Rank("X", []Similarity{{Title: "Ghost", Correlation: 0.5}}, pop, RankOptions{K: 10})

	var ie *InconsistencyError
	if !errors.As(err, &ie) || ie.Title != "Ghost" {
		t.Errorf("Expected InconsistencyError for Ghost, got %v", err)
	}
}

func TestRankEmptyInput(t *testing.T) {
	t.Parallel()

	got, eligible, err := Rank("X", nil, popularityWith(nil), RankOptions{K: 10})
	if err != nil || eligible != 0 {
		t.Fatalf("Unexpected result: eligible=%d err=%v", eligible, err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}
