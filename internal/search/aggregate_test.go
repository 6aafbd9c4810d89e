// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrDuise/ForkFinder/internal/config"
	"github.com/MrDuise/ForkFinder/internal/models"
)

// fakeSource returns canned results or a canned error, optionally after a
// delay to exercise the per-provider timeout.
type fakeSource struct {
	name    string
	results []models.Restaurant
	err     error
	delay   time.Duration
	calls   int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(ctx context.Context, _ string, _ models.Coordinates, _ int) ([]models.Restaurant, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func testSearchConfig() *config.SearchConfig {
	return &config.SearchConfig{
		DefaultRadius:   5000,
		DefaultLimit:    20,
		ProviderTimeout: 2 * time.Second,
	}
}

func TestAggregatorMergesAcrossSources(t *testing.T) {
	google := &fakeSource{name: "google", results: []models.Restaurant{
		{ID: "g1", Name: "Pizza Place", Coordinates: models.Coordinates{Lat: 40, Lng: -74}, Rating: 4.2, ReviewCount: 100, Source: models.SourceGoogle},
		{ID: "g2", Name: "Burger Barn", Coordinates: models.Coordinates{Lat: 40.01, Lng: -74}, Rating: 3.8, Source: models.SourceGoogle},
	}}
	yelp := &fakeSource{name: "yelp", results: []models.Restaurant{
		{ID: "y1", Name: "Pizza Place!!", Coordinates: models.Coordinates{Lat: 40.00001, Lng: -74.00001}, Rating: 4.5, ReviewCount: 150, Source: models.SourceYelp},
	}}

	agg := NewAggregator(testSearchConfig(), google, yelp)
	got, err := agg.Search(context.Background(), models.SearchParams{
		Location: models.Coordinates{Lat: 40, Lng: -74},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (one merged, one standalone)", len(got))
	}
	// Ranked by rating: the merged entry carries 4.5.
	if got[0].Source != models.SourceBoth || got[0].Rating != 4.5 {
		t.Errorf("top entry = source %q rating %v, want merged 4.5", got[0].Source, got[0].Rating)
	}
	if got[1].ID != "g2" {
		t.Errorf("second entry = %q, want g2", got[1].ID)
	}
}

func TestAggregatorDegradesOnSingleFailure(t *testing.T) {
	google := &fakeSource{name: "google", err: errors.New("quota exceeded")}
	yelp := &fakeSource{name: "yelp", results: []models.Restaurant{
		{ID: "y1", Name: "Solo Sushi", Rating: 4.0, Source: models.SourceYelp},
	}}

	agg := NewAggregator(testSearchConfig(), google, yelp)
	got, err := agg.Search(context.Background(), models.SearchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "y1" {
		t.Errorf("got %v, want the surviving provider's results", got)
	}
}

func TestAggregatorAllFailEmptyByDefault(t *testing.T) {
	agg := NewAggregator(testSearchConfig(),
		&fakeSource{name: "google", err: errors.New("down")},
		&fakeSource{name: "yelp", err: errors.New("down")},
	)

	got, err := agg.Search(context.Background(), models.SearchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want empty result set", len(got))
	}
}

func TestAggregatorAllFailWithFailOnEmpty(t *testing.T) {
	cfg := testSearchConfig()
	cfg.FailOnEmpty = true
	agg := NewAggregator(cfg,
		&fakeSource{name: "google", err: errors.New("down")},
		&fakeSource{name: "yelp", err: errors.New("down")},
	)

	if _, err := agg.Search(context.Background(), models.SearchParams{}); err == nil {
		t.Error("expected error when every provider fails and FailOnEmpty is set")
	}
}

func TestAggregatorSlowSourceTimesOut(t *testing.T) {
	cfg := testSearchConfig()
	cfg.ProviderTimeout = 20 * time.Millisecond

	slow := &fakeSource{name: "google", delay: 500 * time.Millisecond, results: []models.Restaurant{
		{ID: "g1", Name: "Never Arrives"},
	}}
	fast := &fakeSource{name: "yelp", results: []models.Restaurant{
		{ID: "y1", Name: "Quick Bites", Rating: 4.0},
	}}

	agg := NewAggregator(cfg, slow, fast)
	start := time.Now()
	got, err := agg.Search(context.Background(), models.SearchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("search took %v, want bounded by provider timeout", elapsed)
	}
	if len(got) != 1 || got[0].ID != "y1" {
		t.Errorf("got %v, want only the fast provider's results", got)
	}
}

func TestAggregatorAppliesDefaultLimit(t *testing.T) {
	results := make([]models.Restaurant, 25)
	for i := range results {
		results[i] = models.Restaurant{ID: string(rune('a' + i)), Rating: float64(i)}
	}

	agg := NewAggregator(testSearchConfig(), &fakeSource{name: "google", results: results})
	got, err := agg.Search(context.Background(), models.SearchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("len = %d, want default limit 20", len(got))
	}
}
