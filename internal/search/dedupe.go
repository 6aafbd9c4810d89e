// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package search

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/MrDuise/ForkFinder/internal/metrics"
	"github.com/MrDuise/ForkFinder/internal/models"
)

// Merge thresholds. A candidate merges into an existing entry only when
// BOTH hold: the normalized names are more than 80% similar AND the
// coordinates are less than 100 meters apart.
const (
	nameSimilarityThreshold = 0.8
	proximityThresholdM     = 100.0
)

// Deduplicate merges normalized records that represent the same physical
// restaurant across providers.
//
// groups must be ordered by provider priority. Every record of the first
// group seeds a merged entry; each later record is compared against all
// existing entries and merges into the FIRST one passing both thresholds.
// First-match (not best-match) is deliberate: with the 100 m proximity
// bound, multiple plausible matches are rare, and first-match keeps the
// outcome deterministic and cheap.
//
// On merge: the entry's source becomes SourceBoth, the record with the
// higher review count supplies rating and reviewCount (more reviews are
// treated as the more current signal), photos are appended, and the new
// provider's raw payload is recorded. On no match the record is inserted
// as an independent entry, preserving arrival order.
func Deduplicate(groups ...[]models.Restaurant) []models.Restaurant {
	var merged []models.Restaurant

	for gi, group := range groups {
		for _, record := range group {
			if gi == 0 {
				merged = append(merged, record)
				continue
			}

			idx := findMatch(merged, record)
			if idx < 0 {
				merged = append(merged, record)
				continue
			}

			mergeInto(&merged[idx], record)
			metrics.DedupeMergesTotal.Inc()
		}
	}

	return merged
}

// findMatch returns the index of the first entry that passes both merge
// thresholds, or -1.
func findMatch(entries []models.Restaurant, candidate models.Restaurant) int {
	for i := range entries {
		if isSameRestaurant(entries[i], candidate) {
			return i
		}
	}
	return -1
}

// isSameRestaurant applies the two merge tests: name similarity and
// geographic proximity.
func isSameRestaurant(a, b models.Restaurant) bool {
	similarity := nameSimilarity(a.Name, b.Name)
	if similarity <= nameSimilarityThreshold {
		return false
	}
	return haversineMeters(a.Coordinates, b.Coordinates) < proximityThresholdM
}

// mergeInto folds record into entry.
func mergeInto(entry *models.Restaurant, record models.Restaurant) {
	entry.Source = models.SourceBoth

	// Higher review count wins rating and review count.
	if record.ReviewCount > entry.ReviewCount {
		entry.Rating = record.Rating
		entry.ReviewCount = record.ReviewCount
	}

	entry.Photos = append(entry.Photos, record.Photos...)

	if entry.Phone == "" {
		entry.Phone = record.Phone
	}
	if entry.Website == "" {
		entry.Website = record.Website
	}

	if entry.RawPayloads == nil {
		entry.RawPayloads = map[string]any{}
	}
	for name, payload := range record.RawPayloads {
		entry.RawPayloads[name] = payload
	}
}

// nameSimilarity computes normalized edit-distance similarity between two
// restaurant names: 1 - levenshtein(a,b)/max(len(a),len(b)) over the
// lower-cased, alphanumeric-only forms. Two empty names are identical.
func nameSimilarity(a, b string) float64 {
	na := normalizeName(a)
	nb := normalizeName(b)

	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(na, nb)
	return 1.0 - float64(distance)/float64(maxLen)
}

// normalizeName lower-cases a name and strips every non-alphanumeric rune.
func normalizeName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
