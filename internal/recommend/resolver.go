// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"sort"
	"strings"
)

// Normalize trims surrounding whitespace and lowercases q.
func Normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Resolver maps free-text queries to canonical titles by case-insensitive
// substring match. When several titles match, the first one in byte-wise
// title order wins, so resolution is deterministic.
type Resolver struct {
	titles     []string
	normalized []string
}

// NewResolver indexes titles. The input slice is not retained.
func NewResolver(titles []string) *Resolver {
	sorted := append([]string(nil), titles...)
	sort.Strings(sorted)

	r := &Resolver{
		titles:     sorted,
		normalized: make([]string, len(sorted)),
	}
	for i, t := range sorted {
		r.normalized[i] = Normalize(t)
	}
	return r
}

// Resolve returns the canonical title for query. An empty query matches nothing.
func (r *Resolver) Resolve(query string) (string, bool) {
	q := Normalize(query)
	if q == "" {
		return "", false
	}
	for i, n := range r.normalized {
		if strings.Contains(n, q) {
			return r.titles[i], true
		}
	}
	return "", false
}

// Candidates returns up to limit matching titles in resolution order.
// The first candidate is the title Resolve would pick.
func (r *Resolver) Candidates(query string, limit int) []string {
	q := Normalize(query)
	out := []string{}
	if q == "" || limit <= 0 {
		return out
	}
	for i, n := range r.normalized {
		if strings.Contains(n, q) {
			out = append(out, r.titles[i])
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
