// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package search

import (
	"fmt"
	"strings"

	"github.com/MrDuise/ForkFinder/internal/models"
	"github.com/MrDuise/ForkFinder/internal/models/google"
	"github.com/MrDuise/ForkFinder/internal/models/yelp"
	"github.com/MrDuise/ForkFinder/internal/providers"
)

// Normalization maps each provider's native record into the common
// restaurant shape. Missing optional fields take the documented defaults
// (rating 0, reviewCount 0). A malformed record (no id or no name) is a
// data error: the caller drops and logs it, nothing is thrown.

// NormalizeGoogle converts a Places nearby-search result. photoURL builds
// a fetchable URL from a photo reference; pass nil to omit photos.
func NormalizeGoogle(place google.PlaceResult, photoURL func(ref string) string) (models.Restaurant, error) {
	if place.PlaceID == "" || place.Name == "" {
		return models.Restaurant{}, fmt.Errorf("malformed google record: missing id or name")
	}

	photos := make([]string, 0, len(place.Photos))
	if photoURL != nil {
		for _, p := range place.Photos {
			photos = append(photos, photoURL(p.PhotoReference))
		}
	}

	var isOpen *bool
	if place.OpeningHours != nil {
		open := place.OpeningHours.OpenNow
		isOpen = &open
	}

	return models.Restaurant{
		ID:      place.PlaceID,
		Name:    place.Name,
		Address: place.Vicinity,
		Coordinates: models.Coordinates{
			Lat: place.Geometry.Location.Lat,
			Lng: place.Geometry.Location.Lng,
		},
		Rating:      place.Rating,
		ReviewCount: place.UserRatingsTotal,
		PriceLevel:  place.PriceLevel,
		Categories:  append([]string(nil), place.Types...),
		Photos:      photos,
		IsOpen:      isOpen,
		Source:      models.SourceGoogle,
		RawPayloads: map[string]any{providers.NameGoogle: place},
	}, nil
}

// NormalizeYelp converts a Fusion business-search result.
func NormalizeYelp(business yelp.Business) (models.Restaurant, error) {
	if business.ID == "" || business.Name == "" {
		return models.Restaurant{}, fmt.Errorf("malformed yelp record: missing id or name")
	}

	categories := make([]string, 0, len(business.Categories))
	for _, c := range business.Categories {
		categories = append(categories, c.Title)
	}

	var photos []string
	if business.ImageURL != "" {
		photos = []string{business.ImageURL}
	}

	isOpen := !business.IsClosed

	return models.Restaurant{
		ID:      business.ID,
		Name:    business.Name,
		Address: strings.Join(business.Location.DisplayAddress, ", "),
		Coordinates: models.Coordinates{
			Lat: business.Coordinates.Latitude,
			Lng: business.Coordinates.Longitude,
		},
		Rating:      business.Rating,
		ReviewCount: business.ReviewCount,
		PriceLevel:  len(business.Price), // "$$$" -> 3
		Categories:  categories,
		Photos:      photos,
		Phone:       business.DisplayPhone,
		Website:     business.URL,
		IsOpen:      &isOpen,
		Source:      models.SourceYelp,
		RawPayloads: map[string]any{providers.NameYelp: business},
	}, nil
}
