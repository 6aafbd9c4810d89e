// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package search

import (
	"sort"

	"github.com/MrDuise/ForkFinder/internal/models"
)

// DefaultLimit is the result count when a search does not specify one.
const DefaultLimit = 20

// Rank orders restaurants by rating descending and truncates to limit.
// The sort is stable: records with equal ratings keep their post-dedupe
// order. limit <= 0 applies DefaultLimit.
func Rank(restaurants []models.Restaurant, limit int) []models.Restaurant {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := make([]models.Restaurant, len(restaurants))
	copy(ranked, restaurants)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
