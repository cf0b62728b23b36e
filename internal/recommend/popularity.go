// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"sort"

	"github.com/tomtom215/cinerec/internal/dataset"
)

// Popularity summarizes the ratings of one title.
type Popularity struct {
	MeanRating float64 `json:"mean_rating"`
	NumRatings int     `json:"num_ratings"`
}

// PopularTitle is a row of the popularity ranking.
type PopularTitle struct {
	Title string `json:"title"`
	Popularity
}

// PopularityIndex maps titles to their Popularity. It is computed from the
// joined rows directly, independently of the rating matrix, and is
// immutable once built.
type PopularityIndex struct {
	entries map[string]Popularity

	// ranked lists titles by count desc, mean desc, title asc.
	ranked []string
}

// BuildPopularity counts and averages the joined rows per title.
func BuildPopularity(rows []dataset.JoinedRating) *PopularityIndex {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range rows {
		sums[rows[i].Title] += rows[i].Value
		counts[rows[i].Title]++
	}

	p := &PopularityIndex{
		entries: make(map[string]Popularity, len(counts)),
		ranked:  make([]string, 0, len(counts)),
	}
	for t, n := range counts {
		p.entries[t] = Popularity{MeanRating: sums[t] / float64(n), NumRatings: n}
		p.ranked = append(p.ranked, t)
	}

	sort.Slice(p.ranked, func(i, j int) bool {
		a, b := p.entries[p.ranked[i]], p.entries[p.ranked[j]]
		if a.NumRatings != b.NumRatings {
			return a.NumRatings > b.NumRatings
		}
		if a.MeanRating != b.MeanRating {
			return a.MeanRating > b.MeanRating
		}
		return p.ranked[i] < p.ranked[j]
	})
	return p
}

// Get returns the entry for title.
func (p *PopularityIndex) Get(title string) (Popularity, bool) {
	e, ok := p.entries[title]
	return e, ok
}

// Len returns the number of titles in the index.
func (p *PopularityIndex) Len() int { return len(p.entries) }

// Top returns up to k titles with more than minRatings ratings, most rated first.
func (p *PopularityIndex) Top(k, minRatings int) []PopularTitle {
	if k <= 0 {
		return []PopularTitle{}
	}
	out := make([]PopularTitle, 0, min(k, len(p.ranked)))
	for _, t := range p.ranked {
		if len(out) >= k {
			break
		}
		e := p.entries[t]
		if e.NumRatings <= minRatings {
			// ranked is ordered by count, nothing after this qualifies
			break
		}
		out = append(out, PopularTitle{Title: t, Popularity: e})
	}
	return out
}
