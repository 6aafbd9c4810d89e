// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

// Package yelp holds the native response shapes of the Yelp Fusion API as
// consumed by ForkFinder.
package yelp

// Coordinates is the Fusion representation of a coordinate pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Category is one business category (alias + display title).
type Category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

// BusinessLocation is the address block of a business.
type BusinessLocation struct {
	Address1       string   `json:"address1"`
	Address2       string   `json:"address2,omitempty"`
	Address3       string   `json:"address3,omitempty"`
	City           string   `json:"city"`
	ZipCode        string   `json:"zip_code"`
	Country        string   `json:"country"`
	State          string   `json:"state"`
	DisplayAddress []string `json:"display_address"`
}

// Business is one entry of a business search response.
type Business struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	ImageURL     string           `json:"image_url"`
	IsClosed     bool             `json:"is_closed"`
	URL          string           `json:"url"`
	ReviewCount  int              `json:"review_count"`
	Categories   []Category       `json:"categories"`
	Rating       float64          `json:"rating"`
	Coordinates  Coordinates      `json:"coordinates"`
	Transactions []string         `json:"transactions,omitempty"`
	Price        string           `json:"price,omitempty"` // "$".."$$$$"
	Location     BusinessLocation `json:"location"`
	Phone        string           `json:"phone"`
	DisplayPhone string           `json:"display_phone"`
	Distance     float64          `json:"distance,omitempty"`
}

// BusinessDetails extends Business with photos and hours, returned by the
// business details endpoint.
type BusinessDetails struct {
	Business
	Photos []string `json:"photos,omitempty"`
	Hours  []struct {
		HoursType string `json:"hours_type"`
		IsOpenNow bool   `json:"is_open_now"`
	} `json:"hours,omitempty"`
}

// Review is one entry of a business reviews response.
type Review struct {
	ID     string  `json:"id"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
	User   struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
	TimeCreated string `json:"time_created"`
	URL         string `json:"url"`
}

// SearchResponse is the wire wrapper of a business search call.
type SearchResponse struct {
	Businesses []Business `json:"businesses"`
	Total      int        `json:"total"`
}

// ReviewsResponse is the wire wrapper of a business reviews call.
type ReviewsResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}
