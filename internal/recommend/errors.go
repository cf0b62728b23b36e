// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	ErrNotFound        = errors.New("title not found")
	ErrInconsistent    = errors.New("internal inconsistency")
	ErrDuplicateRating = errors.New("duplicate rating")
)

// InternalErrorMessage is the only text about an internal error that may reach a user.
const InternalErrorMessage = "Something went wrong while computing recommendations. Please try again later."

// NotFoundError reports that no title matched the query. It is an expected outcome.
type NotFoundError struct {
	// Query is the normalized (trimmed, lowercased) query.
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no title matches %q", e.Query)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InconsistencyError reports that the matrix and the popularity index disagree.
type InconsistencyError struct {
	Title  string
	Detail string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("inconsistent data for %q: %s", e.Title, e.Detail)
}

func (e *InconsistencyError) Unwrap() error { return ErrInconsistent }

// DuplicateRatingError is returned by BuildMatrix under DuplicateStrict.
type DuplicateRatingError struct {
	UserID int
	Title  string
}

func (e *DuplicateRatingError) Error() string {
	return fmt.Sprintf("user %d rated %q more than once", e.UserID, e.Title)
}

func (e *DuplicateRatingError) Unwrap() error { return ErrDuplicateRating }

// InternalError wraps a fault that must not be shown to users verbatim.
// Error() includes the cause for logs; use InternalErrorMessage for responses.
type InternalError struct {
	RequestID string
	Err       error
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Err.Error()
}

func (e *InternalError) Unwrap() error { return e.Err }
