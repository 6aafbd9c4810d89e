// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package search

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/MrDuise/ForkFinder/internal/logging"
	"github.com/MrDuise/ForkFinder/internal/metrics"
	"github.com/MrDuise/ForkFinder/internal/models"
)

// BreakerSource wraps a Source with a circuit breaker so a persistently
// failing provider is skipped outright instead of burning its timeout on
// every search. An open breaker surfaces as an ordinary source failure,
// which the aggregator already logs and excludes.
type BreakerSource struct {
	source Source
	cb     *gobreaker.CircuitBreaker[[]models.Restaurant]
}

// NewBreakerSource wraps source with a circuit breaker.
// The breaker opens after 60% failures over at least 5 requests within a
// 1 minute window, and probes again after 2 minutes.
func NewBreakerSource(source Source) *BreakerSource {
	name := source.Name() + "-search"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.Restaurant](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerSource{source: source, cb: cb}
}

// Name returns the wrapped source's provider name.
func (s *BreakerSource) Name() string {
	return s.source.Name()
}

// Search executes the wrapped search through the circuit breaker.
func (s *BreakerSource) Search(ctx context.Context, query string, loc models.Coordinates, radius int) ([]models.Restaurant, error) {
	return s.cb.Execute(func() ([]models.Restaurant, error) {
		return s.source.Search(ctx, query, loc, radius)
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
