// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Column names required in the titles header.
const (
	ColumnItemID = "item_id"
	ColumnTitle  = "title"
)

// ratingFields is the fixed field count of a ratings row.
const ratingFields = 4

var (
	errEmptyTitle     = errors.New("empty title")
	errDuplicateItem  = errors.New("duplicate item_id")
	errMissingColumn  = errors.New("missing required column")
	errMissingHeader  = errors.New("missing header row")
	errNonFinite      = errors.New("rating is not a finite number")
	errEmptyField     = errors.New("empty field")
	errInvalidDelimit = errors.New("invalid delimiter")
)

// ReadRatings parses a headerless ratings source. source is used in errors.
func ReadRatings(r io.Reader, source string, delimiter rune) ([]Rating, error) {
	if delimiter == 0 {
		delimiter = '\t'
	}
	if delimiter == '"' || delimiter == '\r' || delimiter == '\n' {
		return nil, loadErr(source, 0, "", fmt.Errorf("%w: %q", errInvalidDelimit, delimiter))
	}

	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = ratingFields
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	var out []Rating
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvErr(source, err)
		}
		line, _ := cr.FieldPos(0)

		rating, err := parseRating(rec)
		if err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				le.Source, le.Line = source, line
			}
			return nil, err
		}
		out = append(out, rating)
	}
	return out, nil
}

func parseRating(rec []string) (Rating, error) {
	userID, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return Rating{}, loadErr("", 0, "user_id", err)
	}
	itemID, err := strconv.Atoi(strings.TrimSpace(rec[1]))
	if err != nil {
		return Rating{}, loadErr("", 0, ColumnItemID, err)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
	if err != nil {
		return Rating{}, loadErr("", 0, "rating", err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Rating{}, loadErr("", 0, "rating", errNonFinite)
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)
	if err != nil {
		return Rating{}, loadErr("", 0, "timestamp", err)
	}
	return Rating{UserID: userID, ItemID: itemID, Value: value, Timestamp: ts}, nil
}

// ReadTitles parses a comma separated titles source with a header row.
// The item_id and title columns may appear in any position and any case.
func ReadTitles(r io.Reader, source string) ([]Title, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, loadErr(source, 1, "", errMissingHeader)
	}
	if err != nil {
		return nil, csvErr(source, err)
	}

	idCol, titleCol := -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch name {
		case ColumnItemID:
			idCol = i
		case ColumnTitle:
			titleCol = i
		}
	}
	if idCol < 0 {
		return nil, loadErr(source, 1, ColumnItemID, errMissingColumn)
	}
	if titleCol < 0 {
		return nil, loadErr(source, 1, ColumnTitle, errMissingColumn)
	}

	seen := make(map[int]int)
	var out []Title
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvErr(source, err)
		}
		line, _ := cr.FieldPos(0)

		id, err := strconv.Atoi(strings.TrimSpace(rec[idCol]))
		if err != nil {
			return nil, loadErr(source, line, ColumnItemID, err)
		}
		title := strings.TrimSpace(rec[titleCol])
		if title == "" {
			return nil, loadErr(source, line, ColumnTitle, errEmptyTitle)
		}
		if first, dup := seen[id]; dup {
			return nil, loadErr(source, line, ColumnItemID,
				fmt.Errorf("%w %d (first seen on line %d)", errDuplicateItem, id, first))
		}
		seen[id] = line
		out = append(out, Title{ItemID: id, Title: title})
	}
	return out, nil
}

func csvErr(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return loadErr(source, pe.Line, "", pe.Err)
	}
	return loadErr(source, 0, "", err)
}
