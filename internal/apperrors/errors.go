// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

// Package apperrors defines the error taxonomy shared across ForkFinder.
//
// The categories matter operationally:
//   - ProviderError: an upstream search provider failed; the aggregator
//     recovers locally by excluding that provider from the merge.
//   - GeocodeError: fatal to the operation that requested geocoding.
//   - CacheError: caching is best-effort, but a failure to cache a freshly
//     created session's results is surfaced, not swallowed.
//   - ValidationError / NotFoundError: client-class failures; never retried.
//
// Connection-class failures from the persistence drivers are not wrapped
// here; the retry package classifies them directly.
package apperrors

import (
	"errors"
	"fmt"
)

// ProviderError wraps a failure from an external restaurant data provider.
// It always carries the provider name so partial-failure logs identify the
// offending upstream.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err as a ProviderError for the named provider.
func NewProviderError(provider, op string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}

// GeocodeError indicates an address could not be resolved to coordinates.
type GeocodeError struct {
	Address string
	Err     error
}

func (e *GeocodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("geocode %q: no results", e.Address)
	}
	return fmt.Sprintf("geocode %q: %v", e.Address, e.Err)
}

func (e *GeocodeError) Unwrap() error {
	return e.Err
}

// CacheError indicates a cache read or write failed.
type CacheError struct {
	Key string
	Op  string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

// ValidationError reports a request that failed validation. It is a
// client-class failure and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing entity. Never retried.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsProvider reports whether err is (or wraps) a ProviderError.
func IsProvider(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
