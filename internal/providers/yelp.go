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
	"github.com/MrDuise/ForkFinder/internal/models/yelp"
)

// defaultSearchLimit is the page size requested from the business search
// endpoint when the caller does not specify one.
const defaultSearchLimit = 20

// YelpClient talks to the Yelp Fusion API.
//
// Endpoints used:
//   - Business Search: restaurant candidates around a point
//   - Business Details: photos, hours for one business
//   - Business Reviews: review excerpts for one business
//
// Thread Safety: safe for concurrent use; each call builds its own request.
type YelpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewYelpClient creates a Fusion client from configuration.
func NewYelpClient(cfg *config.YelpConfig) *YelpClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &YelpClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name used in errors and merge attribution.
func (c *YelpClient) Name() string {
	return NameYelp
}

// SearchByLocation finds restaurants around loc matching term. The radius
// is clamped to YelpMaxRadius. limit <= 0 requests the default page size.
func (c *YelpClient) SearchByLocation(ctx context.Context, term string, loc models.Coordinates, radius, limit int) ([]yelp.Business, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Lng, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(clampRadius(radius, YelpMaxRadius)))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("categories", "restaurants")
	params.Set("sort_by", "best_match")

	var out yelp.SearchResponse
	if err := c.makeRequest(ctx, "search", "/businesses/search", params, &out); err != nil {
		return nil, err
	}
	return out.Businesses, nil
}

// BusinessDetails fetches the detail record for a single business id.
func (c *YelpClient) BusinessDetails(ctx context.Context, businessID string) (*yelp.BusinessDetails, error) {
	var out yelp.BusinessDetails
	if err := c.makeRequest(ctx, "details", "/businesses/"+url.PathEscape(businessID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BusinessReviews fetches review excerpts for a business.
func (c *YelpClient) BusinessReviews(ctx context.Context, businessID string) ([]yelp.Review, error) {
	var out yelp.ReviewsResponse
	if err := c.makeRequest(ctx, "reviews", "/businesses/"+url.PathEscape(businessID)+"/reviews", nil, &out); err != nil {
		return nil, err
	}
	return out.Reviews, nil
}

// makeRequest performs an authenticated GET against a Fusion endpoint,
// checking HTTP status and decoding the JSON body into result.
func (c *YelpClient) makeRequest(ctx context.Context, op, path string, params url.Values, result interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	metrics.ProviderRequestsTotal.WithLabelValues(NameYelp, op).Inc()
	timer := time.Now()
	defer func() {
		metrics.ProviderRequestDuration.WithLabelValues(NameYelp, op).Observe(time.Since(timer).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return c.wrap(op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

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

func (c *YelpClient) wrap(op string, err error) error {
	metrics.ProviderErrorsTotal.WithLabelValues(NameYelp, op).Inc()
	return apperrors.NewProviderError(NameYelp, op, err)
}
