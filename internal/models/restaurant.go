// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package models

// Source identifies which provider(s) contributed a restaurant record.
type Source string

// Provider sources. SourceBoth means the record was merged from two
// providers during deduplication.
const (
	SourceGoogle Source = "google"
	SourceYelp   Source = "yelp"
	SourceBoth   Source = "both"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Restaurant is the engine's common restaurant shape. Provider-native
// records are normalized into this type before deduplication; after
// deduplication exactly one Restaurant exists per physical restaurant.
//
// RawPayloads keeps each contributing provider's original record keyed by
// provider name for traceability. Source == SourceBoth implies RawPayloads
// has entries from both providers.
type Restaurant struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Address     string         `json:"address"`
	Coordinates Coordinates    `json:"coordinates"`
	Rating      float64        `json:"rating"`      // 0-5, 0 when absent upstream
	ReviewCount int            `json:"reviewCount"` // non-negative, 0 when absent
	PriceLevel  int            `json:"priceLevel,omitempty"`
	Categories  []string       `json:"categories"`
	Photos      []string       `json:"photos"`
	Phone       string         `json:"phone,omitempty"`
	Website     string         `json:"website,omitempty"`
	IsOpen      *bool          `json:"isOpen,omitempty"`
	Source      Source         `json:"source"`
	RawPayloads map[string]any `json:"rawPayloads,omitempty"`
}

// SearchParams describes a restaurant search request.
type SearchParams struct {
	Query    string      `json:"query"`
	Location Coordinates `json:"location"`
	Radius   int         `json:"radius"` // meters
	Limit    int         `json:"limit"`  // max results after ranking, default 20
}
