// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/cinerec/internal/dataset"
)

// DuplicatePolicy decides what happens when a user rated the same title more than once.
// This happens when two item_ids share a title, or when the ratings source repeats a row.
type DuplicatePolicy string

const (
	// DuplicateStrict fails the build with a *DuplicateRatingError.
	DuplicateStrict DuplicatePolicy = "strict"

	// DuplicateLast keeps the last rating in input order.
	DuplicateLast DuplicatePolicy = "last"

	// DuplicateMean averages the duplicate ratings.
	DuplicateMean DuplicatePolicy = "mean"
)

// ParseDuplicatePolicy validates s. The empty string selects DuplicateLast.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(s); p {
	case "":
		return DuplicateLast, nil
	case DuplicateStrict, DuplicateLast, DuplicateMean:
		return p, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (want strict, last or mean)", s)
	}
}

// cell is one present rating in a title column. user indexes Matrix.users.
type cell struct {
	user  int32
	value float64
}

// Matrix is the sparse title × user rating matrix. Absent cells mean
// "never rated", which is distinct from a rating of 0.
// A Matrix is immutable once built.
type Matrix struct {
	titles  []string // byte-wise sorted
	index   map[string]int
	users   []int // sorted user ids
	userIdx map[int]int32

	// columns[i] holds the ratings of titles[i], sorted by user index.
	columns [][]cell

	cells      int
	duplicates int
}

type accum struct {
	sum   float64
	count int
	last  float64
}

// BuildMatrix pivots joined rows into one column per distinct title.
func BuildMatrix(rows []dataset.JoinedRating, policy DuplicatePolicy) (*Matrix, error) {
	if _, err := ParseDuplicatePolicy(string(policy)); err != nil {
		return nil, err
	}
	if policy == "" {
		policy = DuplicateLast
	}

	byTitle := make(map[string]map[int]*accum)
	userSet := make(map[int]struct{})
	duplicates := 0

	for i := range rows {
		r := &rows[i]
		col, ok := byTitle[r.Title]
		if !ok {
			col = make(map[int]*accum)
			byTitle[r.Title] = col
		}
		userSet[r.UserID] = struct{}{}

		a, seen := col[r.UserID]
		if !seen {
			col[r.UserID] = &accum{sum: r.Value, count: 1, last: r.Value}
			continue
		}
		if policy == DuplicateStrict {
			return nil, &DuplicateRatingError{UserID: r.UserID, Title: r.Title}
		}
		duplicates++
		a.sum += r.Value
		a.count++
		a.last = r.Value
	}

	m := &Matrix{
		titles:     make([]string, 0, len(byTitle)),
		index:      make(map[string]int, len(byTitle)),
		users:      make([]int, 0, len(userSet)),
		userIdx:    make(map[int]int32, len(userSet)),
		columns:    make([][]cell, len(byTitle)),
		duplicates: duplicates,
	}

	for u := range userSet {
		m.users = append(m.users, u)
	}
	sort.Ints(m.users)
	for i, u := range m.users {
		m.userIdx[u] = int32(i) //nolint:gosec // user count is far below MaxInt32
	}

	for t := range byTitle {
		m.titles = append(m.titles, t)
	}
	sort.Strings(m.titles)

	for i, t := range m.titles {
		m.index[t] = i
		col := make([]cell, 0, len(byTitle[t]))
		for u, a := range byTitle[t] {
			v := a.last
			if policy == DuplicateMean {
				v = a.sum / float64(a.count)
			}
			col = append(col, cell{user: m.userIdx[u], value: v})
		}
		sort.Slice(col, func(x, y int) bool { return col[x].user < col[y].user })
		m.columns[i] = col
		m.cells += len(col)
	}

	return m, nil
}

// NumTitles returns the number of columns.
func (m *Matrix) NumTitles() int { return len(m.titles) }

// NumUsers returns the number of distinct users.
func (m *Matrix) NumUsers() int { return len(m.users) }

// Cells returns the number of present ratings.
func (m *Matrix) Cells() int { return m.cells }

// Duplicates returns how many duplicate (user, title) rows were folded by the policy.
func (m *Matrix) Duplicates() int { return m.duplicates }

// Titles returns the column titles in order. The caller must not modify the slice.
func (m *Matrix) Titles() []string { return m.titles }

// HasTitle reports whether title is a column.
func (m *Matrix) HasTitle(title string) bool {
	_, ok := m.index[title]
	return ok
}

// Count returns the number of users who rated title.
func (m *Matrix) Count(title string) int {
	i, ok := m.index[title]
	if !ok {
		return 0
	}
	return len(m.columns[i])
}

// Rating returns the rating of userID for title and whether the cell is present.
func (m *Matrix) Rating(userID int, title string) (float64, bool) {
	i, ok := m.index[title]
	if !ok {
		return 0, false
	}
	u, ok := m.userIdx[userID]
	if !ok {
		return 0, false
	}
	col := m.columns[i]
	j := sort.Search(len(col), func(k int) bool { return col[k].user >= u })
	if j < len(col) && col[j].user == u {
		return col[j].value, true
	}
	return 0, false
}

// Column returns a copy of the ratings for title keyed by user id, or nil.
func (m *Matrix) Column(title string) map[int]float64 {
	i, ok := m.index[title]
	if !ok {
		return nil
	}
	out := make(map[int]float64, len(m.columns[i]))
	for _, c := range m.columns[i] {
		out[m.users[c.user]] = c.value
	}
	return out
}

func (m *Matrix) column(title string) ([]cell, bool) {
	i, ok := m.index[title]
	if !ok {
		return nil, false
	}
	return m.columns[i], true
}
