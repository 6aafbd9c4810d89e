// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

/*
Package search implements the restaurant aggregation pipeline:

	fan-out -> normalize -> dedupe -> rank

The Aggregator issues one search per registered Source concurrently and
observes each outcome independently: a failed provider is logged and
excluded, and an all-providers-failed search yields an empty result set
rather than an error (unless configured otherwise). Each provider call is
bounded by its own timeout so one slow upstream cannot stall the merge.

Deduplication merges records that represent the same physical restaurant
across providers. Two records merge only when both tests pass:

  - name similarity: 1 - levenshtein/maxlen over lower-cased
    alphanumeric-only names, must exceed 0.8
  - proximity: haversine distance under 100 meters

Providers are merged in fixed priority order and a candidate folds into
the first matching entry, so repeated runs over identical inputs produce
identical outcomes.

Normalization and ranking are pure and synchronous; no locking is needed
anywhere past the fan-out.
*/
package search
