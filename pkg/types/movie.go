// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for moviefinder.
//
// Movie mirrors the record returned by the search endpoint; HistoryEntry is
// the persisted outcome of one dispatched search.
package types

import "time"

// Movie is one search result as returned by the search endpoint. The
// dispatcher does not validate it; every field is carried as text so that
// a number-valued rating and a null poster render the same way as strings.
type Movie struct {
	// Title is the display title of the movie.
	Title string `json:"title" yaml:"title"`

	// MovieLink is the URL of the movie page (e.g. its IMDb entry).
	MovieLink string `json:"movie_link" yaml:"movie_link"`

	// PosterURL is the URL of the poster image. Empty when the upstream
	// scraper found none.
	PosterURL string `json:"poster_url" yaml:"poster_url"`

	Director string `json:"director" yaml:"director"`
	Story    string `json:"story" yaml:"story"`

	// TotalRating is the textual form of the rating ("8.7", "N/A").
	TotalRating string `json:"total_rating" yaml:"total_rating"`

	// AdditionalInfos holds free-form details such as year and runtime.
	AdditionalInfos string `json:"additional_infos" yaml:"additional_infos"`
}

// SearchStatus is the outcome of a dispatched search.
type SearchStatus string

const (
	StatusOK     SearchStatus = "ok"
	StatusFailed SearchStatus = "failed"
	StatusStale  SearchStatus = "stale"
)

// HistoryEntry records one settled search.
type HistoryEntry struct {
	ID         string       `json:"id" yaml:"id"`
	Title      string       `json:"title" yaml:"title"`
	RequestURL string       `json:"request_url" yaml:"request_url"`
	Status     SearchStatus `json:"status" yaml:"status"`
	Count      int          `json:"count" yaml:"count"`
	Error      string       `json:"error,omitempty" yaml:"error,omitempty"`
	SearchedAt time.Time    `json:"searched_at" yaml:"searched_at"`
}
