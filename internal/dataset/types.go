// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package dataset

import "time"

// Rating is one row of the ratings source.
type Rating struct {
	UserID    int
	ItemID    int
	Value     float64
	Timestamp int64
}

// Title maps an item_id to its display title. ItemID is unique within a source.
type Title struct {
	ItemID int
	Title  string
}

// JoinedRating is a Rating with the title of its item attached.
type JoinedRating struct {
	Rating
	Title string
}

// Dataset is the fully loaded, joined input. It is never modified after Load returns.
type Dataset struct {
	// Rows holds the joined ratings in ratings-source order.
	Rows []JoinedRating

	// RatingCount is the number of rows read from the ratings source.
	RatingCount int

	// TitleCount is the number of rows read from the titles source.
	TitleCount int

	// DroppedRows counts ratings whose item_id has no title.
	DroppedRows int

	// Backend names the loader that produced the dataset.
	Backend string

	LoadedAt     time.Time
	LoadDuration time.Duration
}

// Join performs the inner join of ratings and titles on item_id.
// Output order follows ratings order.
func Join(ratings []Rating, titles []Title) *Dataset {
	byID := make(map[int]string, len(titles))
	for _, t := range titles {
		byID[t.ItemID] = t.Title
	}

	rows := make([]JoinedRating, 0, len(ratings))
	dropped := 0
	for _, r := range ratings {
		title, ok := byID[r.ItemID]
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, JoinedRating{Rating: r, Title: title})
	}

	return &Dataset{
		Rows:        rows,
		RatingCount: len(ratings),
		TitleCount:  len(titles),
		DroppedRows: dropped,
		LoadedAt:    time.Now(),
	}
}
