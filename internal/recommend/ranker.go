// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import "sort"

// Recommendation is one ranked result.
type Recommendation struct {
	Title       string  `json:"title"`
	Correlation float64 `json:"correlation"`
	NumRatings  int     `json:"num_ratings"`
	MeanRating  float64 `json:"mean_rating"`
	Overlap     int     `json:"overlap"`
}

// RankOptions controls Rank.
type RankOptions struct {
	// MinRatings keeps only titles with strictly more ratings than this.
	MinRatings int

	// K is the maximum number of results. K <= 0 returns no results.
	K int
}

// Rank filters sims by reliability, orders them and truncates to opts.K.
// It returns the ranked list and the number of titles that cleared the
// threshold before truncation. A similarity whose title has no popularity
// entry is an *InconsistencyError.
//
// Order: correlation desc, num_ratings desc, title asc.
func Rank(target string, sims []Similarity, pop *PopularityIndex, opts RankOptions) ([]Recommendation, int, error) {
	out := make([]Recommendation, 0, len(sims))
	for _, s := range sims {
		if s.Title == target {
			continue
		}
		p, ok := pop.Get(s.Title)
		if !ok {
			return nil, 0, &InconsistencyError{Title: s.Title, Detail: "no popularity entry"}
		}
		if p.NumRatings <= opts.MinRatings {
			continue
		}
		out = append(out, Recommendation{
			Title:       s.Title,
			Correlation: s.Correlation,
			NumRatings:  p.NumRatings,
			MeanRating:  p.MeanRating,
			Overlap:     s.Overlap,
		})
	}
	eligible := len(out)

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Correlation != b.Correlation {
			return a.Correlation > b.Correlation
		}
		if a.NumRatings != b.NumRatings {
			return a.NumRatings > b.NumRatings
		}
		return a.Title < b.Title
	})

	k := max(opts.K, 0)
	if len(out) > k {
		out = out[:k]
	}
	return out, eligible, nil
}
