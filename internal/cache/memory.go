// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/MrDuise/ForkFinder/internal/apperrors"
	"github.com/MrDuise/ForkFinder/internal/metrics"
)

// cleanupInterval is how often the background sweep removes expired
// entries that were never read again.
const cleanupInterval = 5 * time.Minute

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore implements Store in process memory. Values are kept as
// serialized JSON so Set/Get round-trip behavior matches the Redis
// backend exactly. Expired entries are removed lazily on read and by a
// periodic background sweep.
//
// Thread Safety: safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	done    chan struct{}
}

// NewMemoryStore creates an in-memory store and starts its cleanup sweep.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Set stores value as JSON under key with ttl.
func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &apperrors.CacheError{Op: "set", Key: key, Err: err}
	}

	s.mu.Lock()
	s.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

// Get reads and unmarshals the value at key into dest. An expired entry
// is removed and reported absent.
func (s *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		metrics.CacheMisses.WithLabelValues("memory").Inc()
		return false, nil
	}

	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		metrics.CacheMisses.WithLabelValues("memory").Inc()
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, &apperrors.CacheError{Op: "get", Key: key, Err: err}
	}
	metrics.CacheHits.WithLabelValues("memory").Inc()
	return true, nil
}

// Delete removes key, reporting whether an entry existed.
func (s *MemoryStore) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.entries[key]
	delete(s.entries, key)
	return exists, nil
}

// Close stops the background cleanup sweep.
func (s *MemoryStore) Close() error {
	close(s.done)
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

// cleanup removes all expired entries.
func (s *MemoryStore) cleanup() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
