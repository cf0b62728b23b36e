// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package dataset

import (
	"errors"
	"fmt"
)

// ErrDataLoad is matched by every error returned from a Loader or parser.
var ErrDataLoad = errors.New("data load failed")

// LoadError describes a problem with one of the input sources.
type LoadError struct {
	// Source is the file path, or "ratings"/"titles" for reader input.
	Source string

	// Line is the 1-based line in Source, 0 when not tied to a line.
	Line int

	// Field names the offending column, if any.
	Field string

	Err error
}

func (e *LoadError) Error() string {
	msg := "load " + e.Source
	if e.Line > 0 {
		msg += fmt.Sprintf(" line %d", e.Line)
	}
	if e.Field != "" {
		msg += " field " + e.Field
	}
	return msg + ": " + e.Err.Error()
}

// Unwrap exposes both ErrDataLoad and the underlying cause.
func (e *LoadError) Unwrap() []error {
	return []error{ErrDataLoad, e.Err}
}

func loadErr(source string, line int, field string, err error) *LoadError {
	return &LoadError{Source: source, Line: line, Field: field, Err: err}
}
