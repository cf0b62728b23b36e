// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"errors"
	"testing"

	"github.com/tomtom215/cinerec/internal/dataset"
)

type rated struct {
	user  int
	title string
	value float64
}

// joined builds joined rows; item ids are derived from titles so that rows
// with the same title share an id.
func joined(rs ...rated) []dataset.JoinedRating {
	ids := map[string]int{}
	out := make([]dataset.JoinedRating, 0, len(rs))
	for i, r := range rs {
		id, ok := ids[r.title]
		if !ok {
			id = len(ids) + 1
			ids[r.title] = id
		}
		out = append(out, dataset.JoinedRating{
			Rating: dataset.Rating{UserID: r.user, ItemID: id, Value: r.value, Timestamp: int64(i)},
			Title:  r.title,
		})
	}
	return out
}

func TestBuildMatrix(t *testing.T) {
	t.Parallel()

	m, err := BuildMatrix(joined(
		rated{1, "Fargo (1996)", 5},
		rated{2, "Fargo (1996)", 0},
		rated{1, "Alien (1979)", 4},
		rated{3, "Heat (1995)", 3},
	), DuplicateStrict)
	if err != nil {
		t.Fatalf("BuildMatrix failed: %v", err)
	}

	if m.NumTitles() != 3 || m.NumUsers() != 3 || m.Cells() != 4 {
		t.Errorf("Unexpected shape: titles=%d users=%d cells=%d", m.NumTitles(), m.NumUsers(), m.Cells())
	}

	want := []string{"Alien (1979)", "Fargo (1996)", "Heat (1995)"}
	for i, title := range m.Titles() {
		if title != want[i] {
			t.Errorf("Column %d: expected %q, got %q", i, want[i], title)
		}
	}

	// A stored zero is present; a never-rated cell is absent.
	if v, ok := m.Rating(2, "Fargo (1996)"); !ok || v != 0 {
		t.Errorf("Expected present zero rating, got %v (present=%v)", v, ok)
	}
	if _, ok := m.Rating(2, "Alien (1979)"); ok {
		t.Error("Expected missing cell for user 2 / Alien")
	}
	if _, ok := m.Rating(99, "Alien (1979)"); ok {
		t.Error("Expected missing cell for unknown user")
	}
	if _, ok := m.Rating(1, "Nope"); ok {
		t.Error("Expected missing cell for unknown title")
	}

	col := m.Column("Fargo (1996)")
	if len(col) != 2 || col[1] != 5 || col[2] != 0 {
		t.Errorf("Unexpected column: %v", col)
	}
	if m.Column("Nope") != nil {
		t.Error("Expected nil column for unknown title")
	}
	if m.Count("Heat (1995)") != 1 || m.Count("Nope") != 0 {
		t.Error("Unexpected counts")
	}
	if !m.HasTitle("Heat (1995)") || m.HasTitle("heat (1995)") {
		t.Error("HasTitle should match canonical titles exactly")
	}
}

func TestBuildMatrixDuplicatePolicies(t *testing.T) {
	t.Parallel()

	rows := joined(
		rated{1, "Heat (1995)", 2},
		rated{2, "Heat (1995)", 5},
		rated{1, "Heat (1995)", 4},
	)

	t.Run("strict", func(t *testing.T) {
		t.Parallel()

		_, err := BuildMatrix(rows, DuplicateStrict)
		if !errors.Is(err, ErrDuplicateRating) {
			t.Fatalf("Expected ErrDuplicateRating, got %v", err)
		}
		var de *DuplicateRatingError
		if !errors.As(err, &de) || de.UserID != 1 || de.Title != "Heat (1995)" {
			t.Errorf("Unexpected error detail: %v", err)
		}
	})

	tests := []struct {
		policy DuplicatePolicy
		want   float64
	}{
		{DuplicateLast, 4},
		{"", 4},
		{DuplicateMean, 3},
	}
	for _, tt := range tests {
		t.Run("policy_"+string(tt.policy), func(t *testing.T) {
			t.Parallel()

			m, err := BuildMatrix(rows, tt.policy)
			if err != nil {
				t.Fatalf("BuildMatrix failed: %v", err)
			}
			if v, _ := m.Rating(1, "Heat (1995)"); v != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, v)
			}
			if m.Duplicates() != 1 {
				t.Errorf("Expected 1 duplicate, got %d", m.Duplicates())
			}
			if m.Count("Heat (1995)") != 2 {
				t.Errorf("Expected 2 cells, got %d", m.Count("Heat (1995)"))
			}
		})
	}
}

func TestBuildMatrixDeterministic(t *testing.T) {
	t.Parallel()

	rows := joined(
		rated{1, "A", 1}, rated{1, "A", 2}, rated{1, "A", 3},
		rated{2, "B", 1}, rated{2, "B", 5},
	)
	for i := 0; i < 20; i++ {
		m, err := BuildMatrix(rows, DuplicateLast)
		if err != nil {
			t.Fatalf("BuildMatrix failed: %v", err)
		}
		a, _ := m.Rating(1, "A")
		b, _ := m.Rating(2, "B")
		if a != 3 || b != 5 {
			t.Fatalf("Run %d: last-wins not deterministic: A=%v B=%v", i, a, b)
		}
	}
}

func TestParseDuplicatePolicy(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]DuplicatePolicy{"": DuplicateLast, "strict": DuplicateStrict, "last": DuplicateLast, "mean": DuplicateMean} {
		got, err := ParseDuplicatePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseDuplicatePolicy(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseDuplicatePolicy("first"); err == nil {
		t.Error("Expected error for unknown policy")
	}
	if _, err := BuildMatrix(nil, "first"); err == nil {
		t.Error("Expected BuildMatrix to reject unknown policy")
	}
}

func TestPopularityMatchesMatrixCounts(t *testing.T) {
	t.Parallel()

	rows := joined(
		rated{1, "A", 4}, rated{2, "A", 2}, rated{3, "A", 3},
		rated{1, "B", 5}, rated{2, "B", 1},
		rated{3, "C", 2},
	)
	m, err := BuildMatrix(rows, DuplicateStrict)
	if err != nil {
		t.Fatalf("BuildMatrix failed: %v", err)
	}
	p := BuildPopularity(rows)

	if p.Len() != m.NumTitles() {
		t.Fatalf("Expected %d popularity entries, got %d", m.NumTitles(), p.Len())
	}
	for _, title := range m.Titles() {
		e, ok := p.Get(title)
		if !ok {
			t.Errorf("Missing popularity entry for %q", title)
			continue
		}
		if e.NumRatings != m.Count(title) {
			t.Errorf("%s: popularity count %d != matrix count %d", title, e.NumRatings, m.Count(title))
		}
	}
	if e, _ := p.Get("A"); e.MeanRating != 3 {
		t.Errorf("Expected mean 3 for A, got %v", e.MeanRating)
	}
	if err := checkConsistency(m, p); err != nil {
		t.Errorf("checkConsistency: %v", err)
	}
}

func TestCheckConsistencyDetectsMissingEntry(t *testing.T) {
	t.Parallel()

	rows := joined(rated{1, "A", 4}, rated{2, "B", 2})
	m, err := BuildMatrix(rows, DuplicateStrict)
	if err != nil {
		t.Fatalf("BuildMatrix failed: %v", err)
	}
	p := BuildPopularity(rows[:1])

	err = checkConsistency(m, p)
	var ie *InconsistencyError
	if !errors.As(err, &ie) || ie.Title != "B" {
		t.Errorf("Expected inconsistency for B, got %v", err)
	}
	if !errors.Is(err, ErrInconsistent) {
		t.Error("Expected ErrInconsistent in chain")
	}
}

func TestPopularityTop(t *testing.T) {
	t.Parallel()

	p := BuildPopularity(joined(
		rated{1, "A", 1}, rated{2, "A", 1}, rated{3, "A", 1},
		rated{1, "B", 5}, rated{2, "B", 5}, rated{3, "B", 5},
		rated{1, "C", 3}, rated{2, "C", 3}, rated{3, "C", 3},
		rated{1, "D", 4}, rated{2, "D", 4},
		rated{1, "E", 4},
	))

	top := p.Top(10, 1)
	want := []string{"B", "C", "A", "D"}
	if len(top) != len(want) {
		t.Fatalf("Expected %d titles, got %+v", len(want), top)
	}
	for i, title := range want {
		if top[i].Title != title {
			t.Errorf("Position %d: expected %s, got %s", i, title, top[i].Title)
		}
	}
	if got := p.Top(2, 0); len(got) != 2 {
		t.Errorf("Expected k to truncate, got %d", len(got))
	}
	if got := p.Top(0, 0); len(got) != 0 {
		t.Errorf("Expected empty result for k=0, got %d", len(got))
	}
}
