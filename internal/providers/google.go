// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/MrDuise/ForkFinder/internal/apperrors"
	"github.com/MrDuise/ForkFinder/internal/config"
	"github.com/MrDuise/ForkFinder/internal/metrics"
	"github.com/MrDuise/ForkFinder/internal/models"
	"github.com/MrDuise/ForkFinder/internal/models/google"
)

// defaultPhotoWidth is the maxwidth parameter used when building Place
// Photo URLs.
const defaultPhotoWidth = 400

// GoogleClient talks to the Google Places API.
//
// Endpoints used:
//   - Nearby Search: restaurant candidates around a point
//   - Place Details: phone, website, reviews for one place
//   - Place Photo: photo URL construction (no request issued)
//
// Thread Safety: safe for concurrent use; each call builds its own request.
type GoogleClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGoogleClient creates a Places client from configuration.
func NewGoogleClient(cfg *config.GoogleConfig) *GoogleClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name used in errors and merge attribution.
func (c *GoogleClient) Name() string {
	return NameGoogle
}

// SearchNearby finds restaurants around loc matching query. The radius is
// clamped to GoogleMaxRadius.
func (c *GoogleClient) SearchNearby(ctx context.Context, query string, loc models.Coordinates, radius int) ([]google.PlaceResult, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", loc.Lat, loc.Lng))
	params.Set("radius", strconv.Itoa(clampRadius(radius, GoogleMaxRadius)))
	params.Set("type", "restaurant")
	params.Set("keyword", query)

	var out google.SearchResponse
	if err := c.makeRequest(ctx, "search", "/maps/api/place/nearbysearch/json", params, &out); err != nil {
		return nil, err
	}
	if out.Status != "OK" && out.Status != "ZERO_RESULTS" {
		return nil, c.wrap("search", fmt.Errorf("places status %s: %s", out.Status, out.ErrorMessage))
	}
	return out.Results, nil
}

// PlaceDetails fetches the detail record for a single place id.
func (c *GoogleClient) PlaceDetails(ctx context.Context, placeID string) (*google.PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "place_id,name,formatted_address,formatted_phone_number,website,rating,user_ratings_total,price_level,reviews,opening_hours,photos")

	var out google.DetailsResponse
	if err := c.makeRequest(ctx, "details", "/maps/api/place/details/json", params, &out); err != nil {
		return nil, err
	}
	if out.Status != "OK" {
		return nil, c.wrap("details", fmt.Errorf("places status %s: %s", out.Status, out.ErrorMessage))
	}
	return &out.Result, nil
}

// PhotoURL builds a Place Photo URL for a photo reference. No request is
// issued; the URL embeds the API key the same way the upstream endpoint
// expects it.
func (c *GoogleClient) PhotoURL(photoReference string) string {
	return fmt.Sprintf("%s/maps/api/place/photo?maxwidth=%d&photoreference=%s&key=%s",
		c.baseURL, defaultPhotoWidth, url.QueryEscape(photoReference), url.QueryEscape(c.apiKey))
}

// makeRequest performs a GET against a Places endpoint, adding the API key,
// checking HTTP status and decoding the JSON body into result.
func (c *GoogleClient) makeRequest(ctx context.Context, op, path string, params url.Values, result interface{}) error {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	metrics.ProviderRequestsTotal.WithLabelValues(NameGoogle, op).Inc()
	timer := time.Now()
	defer func() {
		metrics.ProviderRequestDuration.WithLabelValues(NameGoogle, op).Observe(time.Since(timer).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return c.wrap(op, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return c.wrap(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.wrap(op, httpStatusError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return c.wrap(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *GoogleClient) wrap(op string, err error) error {
	metrics.ProviderErrorsTotal.WithLabelValues(NameGoogle, op).Inc()
	return apperrors.NewProviderError(NameGoogle, op, err)
}
