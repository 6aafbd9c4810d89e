// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package search

import (
	"testing"

	"github.com/MrDuise/ForkFinder/internal/models"
)

func TestNameSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "Pizza Place", "Pizza Place", 1.0},
		{"case and punctuation ignored", "Joe's Pizza", "joes pizza", 1.0},
		{"both empty", "", "", 1.0},
		{"completely different", "abcd", "wxyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nameSimilarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("nameSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNameSimilarityNearMatch(t *testing.T) {
	// "pizzaplace" vs "pizzaplaza": distance 2 over length 10 = 0.8,
	// which does NOT exceed the 0.8 threshold.
	got := nameSimilarity("Pizza Place", "Pizza Plaza")
	if got > nameSimilarityThreshold {
		t.Errorf("nameSimilarity = %v, expected at most threshold %v", got, nameSimilarityThreshold)
	}

	// One rune of drift over the same length clears the threshold.
	got = nameSimilarity("Pizza Place", "Pizza Placa")
	if got <= nameSimilarityThreshold {
		t.Errorf("nameSimilarity = %v, expected above threshold %v", got, nameSimilarityThreshold)
	}
}

func TestHaversineMeters(t *testing.T) {
	a := models.Coordinates{Lat: 40.7580, Lng: -73.9855}

	if d := haversineMeters(a, a); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}

	// ~0.0005 degrees of latitude is roughly 55 meters.
	near := models.Coordinates{Lat: 40.7585, Lng: -73.9855}
	if d := haversineMeters(a, near); d < 40 || d > 70 {
		t.Errorf("near distance = %v, want ~55m", d)
	}

	// A full degree of latitude is roughly 111 km.
	far := models.Coordinates{Lat: 41.7580, Lng: -73.9855}
	if d := haversineMeters(a, far); d < 110_000 || d > 112_000 {
		t.Errorf("far distance = %v, want ~111km", d)
	}
}

func TestDeduplicateMergesBothThresholds(t *testing.T) {
	google := []models.Restaurant{{
		ID:          "g1",
		Name:        "Pizza Place",
		Coordinates: models.Coordinates{Lat: 40.00000, Lng: -74.00000},
		Rating:      4.2,
		ReviewCount: 100,
		Photos:      []string{"g-photo"},
		Source:      models.SourceGoogle,
	}}
	// Punctuation differs and the pin is a few meters off, which is the
	// typical cross-provider drift for one physical storefront.
	yelp := []models.Restaurant{{
		ID:          "y1",
		Name:        "Pizza Place!!",
		Coordinates: models.Coordinates{Lat: 40.00001, Lng: -74.00001},
		Rating:      4.5,
		ReviewCount: 150,
		Photos:      []string{"y-photo"},
		Source:      models.SourceYelp,
	}}

	got := Deduplicate(google, yelp)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 merged entry", len(got))
	}
	entry := got[0]
	if entry.Source != models.SourceBoth {
		t.Errorf("Source = %q, want %q", entry.Source, models.SourceBoth)
	}
	if entry.Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5 (higher review count wins)", entry.Rating)
	}
	if entry.ReviewCount != 150 {
		t.Errorf("ReviewCount = %d, want 150", entry.ReviewCount)
	}
	if len(entry.Photos) != 2 {
		t.Errorf("Photos = %v, want union of both providers", entry.Photos)
	}
}

func TestDeduplicateSimilarNamesTooFarApart(t *testing.T) {
	google := []models.Restaurant{{
		ID:          "g1",
		Name:        "Pizza Place",
		Coordinates: models.Coordinates{Lat: 40.7580, Lng: -73.9855},
		Source:      models.SourceGoogle,
	}}
	// Same name, but ~150m north: proximity test fails.
	yelp := []models.Restaurant{{
		ID:          "y1",
		Name:        "Pizza Place",
		Coordinates: models.Coordinates{Lat: 40.75935, Lng: -73.9855},
		Source:      models.SourceYelp,
	}}

	got := Deduplicate(google, yelp)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 independent entries", len(got))
	}
	for _, r := range got {
		if r.Source == models.SourceBoth {
			t.Errorf("entry %q merged, want independent", r.ID)
		}
	}
}

func TestDeduplicateNearbyButDifferentNames(t *testing.T) {
	google := []models.Restaurant{{
		ID:          "g1",
		Name:        "Burger Barn",
		Coordinates: models.Coordinates{Lat: 40.7580, Lng: -73.9855},
		Source:      models.SourceGoogle,
	}}
	// Same block, unrelated name: similarity test fails.
	yelp := []models.Restaurant{{
		ID:          "y1",
		Name:        "Sushi Garden",
		Coordinates: models.Coordinates{Lat: 40.7580, Lng: -73.9855},
		Source:      models.SourceYelp,
	}}

	got := Deduplicate(google, yelp)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 independent entries", len(got))
	}
}

func TestDeduplicateFirstMatchWins(t *testing.T) {
	google := []models.Restaurant{
		{
			ID:          "g1",
			Name:        "Taco Town",
			Coordinates: models.Coordinates{Lat: 40.7580, Lng: -73.9855},
			Source:      models.SourceGoogle,
		},
		{
			ID:          "g2",
			Name:        "Taco Town",
			Coordinates: models.Coordinates{Lat: 40.75805, Lng: -73.9855},
			Source:      models.SourceGoogle,
		},
	}
	yelp := []models.Restaurant{{
		ID:          "y1",
		Name:        "Taco Town",
		Coordinates: models.Coordinates{Lat: 40.7580, Lng: -73.9855},
		ReviewCount: 10,
		Source:      models.SourceYelp,
	}}

	got := Deduplicate(google, yelp)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Source != models.SourceBoth {
		t.Errorf("first entry Source = %q, want merged into first match", got[0].Source)
	}
	if got[1].Source != models.SourceGoogle {
		t.Errorf("second entry Source = %q, want untouched", got[1].Source)
	}
}

func TestDeduplicateMergeDetails(t *testing.T) {
	google := []models.Restaurant{{
		ID:          "g1",
		Name:        "Noodle House",
		Coordinates: models.Coordinates{Lat: 40.7580, Lng: -73.9855},
		Rating:      4.0,
		ReviewCount: 200,
		Photos:      []string{"g-photo-1"},
		Website:     "https://noodle.example",
		Source:      models.SourceGoogle,
		RawPayloads: map[string]any{"google": "g-raw"},
	}}
	yelp := []models.Restaurant{{
		ID:          "y1",
		Name:        "Noodle House",
		Coordinates: models.Coordinates{Lat: 40.7580, Lng: -73.9855},
		Rating:      4.8,
		ReviewCount: 50,
		Photos:      []string{"y-photo-1"},
		Phone:       "+12125551234",
		Source:      models.SourceYelp,
		RawPayloads: map[string]any{"yelp": "y-raw"},
	}}

	got := Deduplicate(google, yelp)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	entry := got[0]

	// 200 > 50: the Google rating stays despite Yelp rating being higher.
	if entry.Rating != 4.0 || entry.ReviewCount != 200 {
		t.Errorf("rating/count = %v/%d, want 4.0/200", entry.Rating, entry.ReviewCount)
	}
	if len(entry.Photos) != 2 {
		t.Errorf("Photos = %v, want union of both providers", entry.Photos)
	}
	if entry.Phone != "+12125551234" {
		t.Errorf("Phone = %q, want filled from merged record", entry.Phone)
	}
	if entry.Website != "https://noodle.example" {
		t.Errorf("Website = %q, want preserved", entry.Website)
	}
	if _, ok := entry.RawPayloads["google"]; !ok {
		t.Error("RawPayloads missing google payload")
	}
	if _, ok := entry.RawPayloads["yelp"]; !ok {
		t.Error("RawPayloads missing yelp payload")
	}
}

func TestDeduplicateEqualReviewCountsKeepExisting(t *testing.T) {
	google := []models.Restaurant{{
		ID:          "g1",
		Name:        "Curry Corner",
		Coordinates: models.Coordinates{Lat: 40.7580, Lng: -73.9855},
		Rating:      3.9,
		ReviewCount: 75,
		Source:      models.SourceGoogle,
	}}
	yelp := []models.Restaurant{{
		ID:          "y1",
		Name:        "Curry Corner",
		Coordinates: models.Coordinates{Lat: 40.7580, Lng: -73.9855},
		Rating:      4.9,
		ReviewCount: 75,
		Source:      models.SourceYelp,
	}}

	got := Deduplicate(google, yelp)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	// Ties keep the existing entry's rating: the comparison is strict.
	if got[0].Rating != 3.9 {
		t.Errorf("Rating = %v, want 3.9", got[0].Rating)
	}
}

func TestDeduplicateEmptyGroups(t *testing.T) {
	if got := Deduplicate(nil, nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	only := []models.Restaurant{{ID: "g1", Name: "Solo", Source: models.SourceGoogle}}
	got := Deduplicate(only, nil)
	if len(got) != 1 || got[0].ID != "g1" {
		t.Errorf("got %v, want the single entry passed through", got)
	}
}
