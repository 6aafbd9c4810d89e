// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/MrDuise/ForkFinder/internal/apperrors"
	"github.com/MrDuise/ForkFinder/internal/config"
	"github.com/MrDuise/ForkFinder/internal/metrics"
)

// RedisStore implements Store on a Redis server. Expiry is delegated to
// Redis via SET EX, so an expired key is genuinely gone rather than
// filtered on read.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg *config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, &apperrors.CacheError{Op: "connect", Key: cfg.Addr, Err: err}
	}
	return &RedisStore{client: client}, nil
}

// Set stores value as JSON under key with ttl.
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &apperrors.CacheError{Op: "set", Key: key, Err: err}
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return &apperrors.CacheError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Get reads and unmarshals the value at key into dest.
func (s *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false, nil
	}
	if err != nil {
		return false, &apperrors.CacheError{Op: "get", Key: key, Err: err}
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, &apperrors.CacheError{Op: "get", Key: key, Err: err}
	}
	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true, nil
}

// Delete removes key, reporting whether Redis deleted anything.
func (s *RedisStore) Delete(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return false, &apperrors.CacheError{Op: "delete", Key: key, Err: err}
	}
	return n > 0, nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
