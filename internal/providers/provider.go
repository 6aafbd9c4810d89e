// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

// Package providers implements the HTTP clients for the external restaurant
// data providers: Google Places (maps-style) and Yelp Fusion (reviews-style).
//
// Each client exposes typed methods mirroring the upstream API. All failures
// surface as *apperrors.ProviderError carrying the provider name, so the
// aggregation layer can attribute and exclude a failed provider without
// guessing at error provenance. Clients never return a bare transport error.
//
// Radius handling: each provider caps the search radius at its documented
// maximum. Clients clamp oversized radii instead of erroring.
package providers

import (
	"fmt"
	"io"
	"net/http"
)

// Provider names used in error attribution, merge priority, and RawPayloads
// keys. These match the models.Source constants.
const (
	NameGoogle = "google"
	NameYelp   = "yelp"
)

// Provider radius caps in meters. Oversized requests are clamped, not
// rejected.
const (
	GoogleMaxRadius = 50000 // Places Nearby Search maximum
	YelpMaxRadius   = 40000 // Fusion business search maximum
)

// maxErrorBodySize limits how much of an upstream error response is read
// for diagnostics.
const maxErrorBodySize = 64 * 1024

// clampRadius caps radius at max and floors non-positive values to max's
// provider default behavior (callers always pass a positive radius; the
// guard keeps a zero from reaching the upstream API).
func clampRadius(radius, max int) int {
	if radius <= 0 || radius > max {
		return max
	}
	return radius
}

// readBodyForError reads up to maxErrorBodySize of an error response body.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return string(body)
}

// httpStatusError formats a non-200 upstream response for wrapping in a
// ProviderError.
func httpStatusError(resp *http.Response) error {
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readBodyForError(resp.Body))
}
