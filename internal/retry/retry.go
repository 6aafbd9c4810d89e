// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

// Package retry wraps persistence operations with failure classification
// and exponential backoff.
//
// Classification decides everything:
//   - Terminal: validation errors, not-found errors, and any other
//     application-raised error. These propagate immediately, unmodified.
//   - Retryable: connection-class failures (refused, reset, timeout, DNS)
//     and transient driver errors from the document and cache stores.
//
// The schedule is exponential starting at 1 second and doubling per
// attempt, capped at 3 total attempts. After the final failure the
// original error is returned to the caller.
//
// Retry never re-executes a non-idempotent operation safely on its own:
// callers must ensure the wrapped update is idempotent or conditioned on
// prior state (the session store's atomic updates are).
package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MrDuise/ForkFinder/internal/apperrors"
	"github.com/MrDuise/ForkFinder/internal/logging"
	"github.com/MrDuise/ForkFinder/internal/metrics"
)

// Schedule defaults.
const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = 1 * time.Second
)

// Policy retries retryable failures with exponential backoff.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// NewPolicy returns the default 3-attempt, 1s/2s policy.
func NewPolicy() *Policy {
	return &Policy{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
	}
}

// Do runs fn, retrying retryable failures per the policy schedule. op
// names the operation for logging and metrics.
func (p *Policy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempt := 0

	wrapped := func() error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !Retryable(err) {
			return backoff.Permanent(err)
		}
		if attempt < p.maxAttempts() {
			metrics.RetryAttemptsTotal.WithLabelValues(op).Inc()
			logging.Warn().
				Err(err).
				Str("operation", op).
				Int("attempt", attempt).
				Msg("transient persistence failure, retrying")
		}
		return err
	}

	return backoff.Retry(wrapped, backoff.WithContext(p.schedule(), ctx))
}

// Do runs fn through policy and returns its value. Generic counterpart of
// Policy.Do for store operations that produce a result.
func Do[T any](ctx context.Context, p *Policy, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := p.Do(ctx, op, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	return result, err
}

func (p *Policy) maxAttempts() int {
	if p.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

func (p *Policy) schedule() backoff.BackOff {
	initial := p.InitialDelay
	if initial <= 0 {
		initial = DefaultInitialDelay
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.Multiplier = 2
	b.RandomizationFactor = 0 // deterministic 1s, 2s, ... schedule
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0

	return backoff.WithMaxRetries(b, uint64(p.maxAttempts()-1))
}

// connectionErrorFragments matches driver errors that only surface as
// strings: Mongo topology failures and Redis connection loss.
var connectionErrorFragments = []string{
	"connection refused",
	"connection reset",
	"connection timed out",
	"i/o timeout",
	"no reachable servers",
	"server selection error",
	"server selection timeout",
	"socket was unexpectedly closed",
	"connection() error",
	"connection pool for",
	"redis: connection",
	"broken pipe",
}

// Retryable classifies err. Application-raised errors (validation,
// not-found, provider, geocode, cache) are terminal; connection-class
// failures and transient driver errors are retryable.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	// Application errors are never retried.
	if apperrors.IsValidation(err) || apperrors.IsNotFound(err) || apperrors.IsProvider(err) {
		return false
	}
	var geocodeErr *apperrors.GeocodeError
	if errors.As(err, &geocodeErr) {
		return false
	}
	var cacheErr *apperrors.CacheError
	if errors.As(err, &cacheErr) {
		return false
	}

	// Context cancellation belongs to the caller, not the store.
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Typed network failures.
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	// Mongo driver transient signals.
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range connectionErrorFragments {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
