// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

// Package geocode resolves free-text addresses to coordinates.
//
// Geocoding failure is fatal to the operation that requested it: callers
// surface the GeocodeError rather than degrading.
package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/MrDuise/ForkFinder/internal/apperrors"
	"github.com/MrDuise/ForkFinder/internal/config"
	"github.com/MrDuise/ForkFinder/internal/models"
	"github.com/MrDuise/ForkFinder/internal/models/google"
)

// Geocoder resolves an address to a coordinate pair.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Coordinates, error)
}

// GoogleGeocoder implements Geocoder on the Google Geocoding API.
type GoogleGeocoder struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGoogleGeocoder creates a geocoder from the shared Google config.
func NewGoogleGeocoder(cfg *config.GoogleConfig) *GoogleGeocoder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleGeocoder{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Geocode resolves address. A response with no results is a GeocodeError,
// as is any transport failure.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (models.Coordinates, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)
	reqURL := g.baseURL + "/maps/api/geocode/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return models.Coordinates{}, &apperrors.GeocodeError{Address: address, Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return models.Coordinates{}, &apperrors.GeocodeError{Address: address, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, &apperrors.GeocodeError{
			Address: address,
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var out google.GeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Coordinates{}, &apperrors.GeocodeError{Address: address, Err: err}
	}

	if out.Status != "OK" || len(out.Results) == 0 {
		return models.Coordinates{}, &apperrors.GeocodeError{Address: address}
	}

	loc := out.Results[0].Geometry.Location
	return models.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
