// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

// Package google holds the native response shapes of the Google Places API
// as consumed by ForkFinder. Fields mirror the upstream JSON; the search
// package maps them into the common restaurant shape.
package google

// LatLng is the Places representation of a coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry wraps the location of a place result.
type Geometry struct {
	Location LatLng `json:"location"`
}

// Photo is a photo reference attached to a place result. The actual image
// is fetched through the Place Photo endpoint using PhotoReference.
type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Height         int    `json:"height"`
	Width          int    `json:"width"`
}

// OpeningHours carries the open-now flag of a place result.
type OpeningHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// PlaceResult is one entry of a Nearby Search response.
type PlaceResult struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	Vicinity         string        `json:"vicinity"`
	Rating           float64       `json:"rating,omitempty"`
	UserRatingsTotal int           `json:"user_ratings_total,omitempty"`
	PriceLevel       int           `json:"price_level,omitempty"`
	Types            []string      `json:"types,omitempty"`
	Geometry         Geometry      `json:"geometry"`
	Photos           []Photo       `json:"photos,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
}

// Review is one user review inside a Place Details response.
type Review struct {
	AuthorName string  `json:"author_name"`
	Rating     float64 `json:"rating"`
	Text       string  `json:"text"`
	Time       int64   `json:"time"`
}

// PlaceDetails is the result object of a Place Details response.
type PlaceDetails struct {
	PlaceID              string        `json:"place_id"`
	Name                 string        `json:"name"`
	FormattedAddress     string        `json:"formatted_address"`
	FormattedPhoneNumber string        `json:"formatted_phone_number,omitempty"`
	Website              string        `json:"website,omitempty"`
	Rating               float64       `json:"rating,omitempty"`
	UserRatingsTotal     int           `json:"user_ratings_total,omitempty"`
	PriceLevel           int           `json:"price_level,omitempty"`
	Reviews              []Review      `json:"reviews,omitempty"`
	OpeningHours         *OpeningHours `json:"opening_hours,omitempty"`
	Photos               []Photo       `json:"photos,omitempty"`
}

// SearchResponse is the wire wrapper of a Nearby Search / Text Search call.
type SearchResponse struct {
	Results      []PlaceResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// DetailsResponse is the wire wrapper of a Place Details call.
type DetailsResponse struct {
	Result       PlaceDetails `json:"result"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

// GeocodeResponse is the wire wrapper of a Geocoding call.
type GeocodeResponse struct {
	Results []struct {
		Geometry Geometry `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}
