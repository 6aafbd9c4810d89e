// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrDuise/ForkFinder/internal/apperrors"
	"github.com/MrDuise/ForkFinder/internal/config"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *GoogleGeocoder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGoogleGeocoder(&config.GoogleConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
}

func TestGeocode(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/geocode/json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("address"); got != "Times Square" {
			t.Errorf("address = %q", got)
		}
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 40.758, "lng": -73.9855}}}]
		}`))
	})

	loc, err := g.Geocode(context.Background(), "Times Square")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if loc.Lat != 40.758 || loc.Lng != -73.9855 {
		t.Errorf("loc = %+v", loc)
	}
}

func TestGeocodeNoResults(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	_, err := g.Geocode(context.Background(), "nowhere at all")
	var geoErr *apperrors.GeocodeError
	if !errors.As(err, &geoErr) {
		t.Fatalf("error type = %T, want *apperrors.GeocodeError", err)
	}
	if geoErr.Address != "nowhere at all" {
		t.Errorf("Address = %q", geoErr.Address)
	}
}

func TestGeocodeHTTPError(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := g.Geocode(context.Background(), "x")
	var geoErr *apperrors.GeocodeError
	if !errors.As(err, &geoErr) {
		t.Fatalf("error type = %T, want *apperrors.GeocodeError", err)
	}
}
