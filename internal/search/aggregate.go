// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrDuise/ForkFinder/internal/config"
	"github.com/MrDuise/ForkFinder/internal/logging"
	"github.com/MrDuise/ForkFinder/internal/metrics"
	"github.com/MrDuise/ForkFinder/internal/models"
	"github.com/MrDuise/ForkFinder/internal/providers"
)

// Source is one registered restaurant data source, returning records
// already normalized to the common shape. Implementations wrap a provider
// client and its normalizer; failures surface as *apperrors.ProviderError.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, loc models.Coordinates, radius int) ([]models.Restaurant, error)
}

// Aggregator fans a search out to every registered source concurrently,
// normalizes and merges the survivors, and ranks the result.
//
// Sources are registered in fixed priority order (google before yelp);
// merge outcomes are deterministic for identical inputs. One source's
// failure never fails or delays the others: each outcome is observed
// independently, failed sources are logged and excluded. When every
// source fails the aggregator returns an empty set unless FailOnEmpty
// is configured.
type Aggregator struct {
	sources     []Source
	timeout     time.Duration
	radius      int
	limit       int
	failOnEmpty bool
}

// NewAggregator builds an aggregator over sources, which must be given in
// merge priority order.
func NewAggregator(cfg *config.SearchConfig, sources ...Source) *Aggregator {
	timeout := cfg.ProviderTimeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	radius := cfg.DefaultRadius
	if radius <= 0 {
		radius = 5000
	}
	limit := cfg.DefaultLimit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Aggregator{
		sources:     sources,
		timeout:     timeout,
		radius:      radius,
		limit:       limit,
		failOnEmpty: cfg.FailOnEmpty,
	}
}

// Search runs the full pipeline: concurrent fan-out, dedupe, rank.
// Zero-valued Radius and Limit take the configured defaults.
func (a *Aggregator) Search(ctx context.Context, params models.SearchParams) ([]models.Restaurant, error) {
	if params.Radius <= 0 {
		params.Radius = a.radius
	}
	if params.Limit <= 0 {
		params.Limit = a.limit
	}

	groups, failures := a.fanOut(ctx, params)

	if failures == len(a.sources) && a.failOnEmpty {
		return nil, fmt.Errorf("all %d providers failed", failures)
	}

	merged := Deduplicate(groups...)
	return Rank(merged, params.Limit), nil
}

// fanOut issues one search per source concurrently and collects each
// outcome independently. Each call is bounded by the per-provider timeout
// so a slow upstream cannot stall the merge. Returned groups preserve
// source registration order; failed sources contribute a nil group.
func (a *Aggregator) fanOut(ctx context.Context, params models.SearchParams) ([][]models.Restaurant, int) {
	groups := make([][]models.Restaurant, len(a.sources))
	errs := make([]error, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			groups[i], errs[i] = src.Search(callCtx, params.Query, params.Location, params.Radius)
		}(i, src)
	}
	wg.Wait()

	failures := 0
	for i, err := range errs {
		if err != nil {
			failures++
			logging.Warn().
				Err(err).
				Str("provider", a.sources[i].Name()).
				Msg("provider search failed, excluding from merge")
			continue
		}
		metrics.SearchResultsTotal.WithLabelValues(a.sources[i].Name()).Add(float64(len(groups[i])))
	}
	return groups, failures
}

// GoogleSource adapts the Places client to the Source interface.
type GoogleSource struct {
	Client *providers.GoogleClient
}

// Name returns the provider name.
func (s *GoogleSource) Name() string {
	return providers.NameGoogle
}

// Search queries Places nearby search and normalizes the results.
// Malformed records are dropped and logged, never surfaced as errors.
func (s *GoogleSource) Search(ctx context.Context, query string, loc models.Coordinates, radius int) ([]models.Restaurant, error) {
	places, err := s.Client.SearchNearby(ctx, query, loc, radius)
	if err != nil {
		return nil, err
	}

	normalized := make([]models.Restaurant, 0, len(places))
	for _, place := range places {
		r, err := NormalizeGoogle(place, s.Client.PhotoURL)
		if err != nil {
			logging.Debug().Err(err).Str("provider", s.Name()).Msg("dropping malformed record")
			continue
		}
		normalized = append(normalized, r)
	}
	return normalized, nil
}

// YelpSource adapts the Fusion client to the Source interface.
type YelpSource struct {
	Client *providers.YelpClient

	// Limit is the page size requested from the search endpoint;
	// zero requests the provider default.
	Limit int
}

// Name returns the provider name.
func (s *YelpSource) Name() string {
	return providers.NameYelp
}

// Search queries Fusion business search and normalizes the results.
func (s *YelpSource) Search(ctx context.Context, query string, loc models.Coordinates, radius int) ([]models.Restaurant, error) {
	businesses, err := s.Client.SearchByLocation(ctx, query, loc, radius, s.Limit)
	if err != nil {
		return nil, err
	}

	normalized := make([]models.Restaurant, 0, len(businesses))
	for _, business := range businesses {
		r, err := NormalizeYelp(business)
		if err != nil {
			logging.Debug().Err(err).Str("provider", s.Name()).Msg("dropping malformed record")
			continue
		}
		normalized = append(normalized, r)
	}
	return normalized, nil
}
