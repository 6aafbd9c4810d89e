// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

// Package cache provides the session result cache: JSON values stored
// under session-scoped keys with a mandatory time-to-live.
//
// Two backends implement Store: Redis for production and an in-memory
// store for tests and cacheless deployments. A Get after TTL expiry
// reports absent, indistinguishable from a key that was never set.
package cache

import (
	"context"
	"time"
)

// Store is the session cache boundary. Values are serialized to JSON on
// write and deserialized on read.
type Store interface {
	// Set stores value under key for ttl. ttl must be positive.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Get unmarshals the value at key into dest. The second return is
	// false when the key is absent or expired; that case is not an error.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Delete removes key, reporting whether anything was deleted.
	Delete(ctx context.Context, key string) (bool, error)
}
