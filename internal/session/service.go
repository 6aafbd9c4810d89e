// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

// Package session implements the group decision session lifecycle.
//
// Creating a session runs the restaurant aggregation pipeline for the
// session's location, caches the ranked result set under the session's
// cache key with a TTL equal to the session's time limit, and persists
// the session document. Joins and votes are atomic store updates; all
// persistence calls go through the retry policy.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrDuise/ForkFinder/internal/apperrors"
	"github.com/MrDuise/ForkFinder/internal/cache"
	"github.com/MrDuise/ForkFinder/internal/logging"
	"github.com/MrDuise/ForkFinder/internal/models"
	"github.com/MrDuise/ForkFinder/internal/retry"
)

// cacheKeyPrefix namespaces session result keys in the cache.
const cacheKeyPrefix = "session:"

// Finder runs the restaurant aggregation pipeline. *search.Aggregator
// satisfies this.
type Finder interface {
	Search(ctx context.Context, params models.SearchParams) ([]models.Restaurant, error)
}

// Service coordinates sessions across the document store, the result
// cache, and the aggregation pipeline.
type Service struct {
	store     Store
	cache     cache.Store
	finder    Finder
	retry     *retry.Policy
	shareBase string
}

// NewService wires a session service. shareBase is the URL prefix for
// generated sharing links.
func NewService(store Store, cacheStore cache.Store, finder Finder, policy *retry.Policy, shareBase string) *Service {
	if policy == nil {
		policy = retry.NewPolicy()
	}
	return &Service{
		store:     store,
		cache:     cacheStore,
		finder:    finder,
		retry:     policy,
		shareBase: shareBase,
	}
}

// CreateInput is the payload for Create.
type CreateInput struct {
	CreatorID string
	Location  models.Location
	Settings  models.GroupSettings
}

// CacheKey returns the cache key for a session id.
func CacheKey(sessionID string) string {
	return cacheKeyPrefix + sessionID
}

// Create builds a new session: aggregates restaurants for the location,
// persists the session with the creator as first participant, and caches
// the ranked set under the session's cache key with ttl = timeLimit.
//
// A cache write failure does not roll back the persisted session; the
// CacheError is returned alongside it so the caller can report the
// degraded state instead of silently swallowing it.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Session, error) {
	if input.CreatorID == "" {
		return nil, &apperrors.ValidationError{Field: "creatorId", Reason: "must not be empty"}
	}
	if input.Settings.TimeLimit <= 0 {
		return nil, &apperrors.ValidationError{Field: "settings.timeLimit", Reason: "must be positive"}
	}
	if input.Settings.MaxGroupSize <= 0 {
		return nil, &apperrors.ValidationError{Field: "settings.maxGroupSize", Reason: "must be positive"}
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	session := &models.Session{
		ID:           id,
		CreatorID:    input.CreatorID,
		Participants: []string{input.CreatorID},
		Votes:        []models.Vote{},
		Location:     input.Location,
		Settings:     input.Settings,
		CacheKey:     CacheKey(id),
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Duration(input.Settings.TimeLimit) * time.Minute),
	}
	session.Settings.SharingLink = s.shareBase + "/sessions/" + id + "/join"

	restaurants, err := s.finder.Search(ctx, models.SearchParams{
		Query: "",
		Location: models.Coordinates{
			Lat: input.Location.Lat,
			Lng: input.Location.Lng,
		},
		Radius: input.Location.Radius,
	})
	if err != nil {
		return nil, err
	}

	if err := s.retry.Do(ctx, "session.create", func(ctx context.Context) error {
		return s.store.Create(ctx, session)
	}); err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, session.CacheKey, restaurants, session.TTL()); err != nil {
		logging.Error().Err(err).Str("session_id", id).Msg("failed to cache session restaurants")
		return session, err
	}

	logging.Info().
		Str("session_id", id).
		Int("restaurants", len(restaurants)).
		Time("expires_at", session.ExpiresAt).
		Msg("session created")
	return session, nil
}

// Get fetches a session by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Session, error) {
	return retry.Do(ctx, s.retry, "session.get", func(ctx context.Context) (*models.Session, error) {
		return s.store.FindByID(ctx, id)
	})
}

// Update applies a partial update. The session's expiry is never
// recomputed, even when the time limit setting changes.
func (s *Service) Update(ctx context.Context, id string, update Update) (*models.Session, error) {
	return retry.Do(ctx, s.retry, "session.update", func(ctx context.Context) (*models.Session, error) {
		return s.store.Update(ctx, id, update)
	})
}

// Delete removes the session and drops its cached restaurant set.
func (s *Service) Delete(ctx context.Context, id string) (*models.Session, error) {
	session, err := retry.Do(ctx, s.retry, "session.delete", func(ctx context.Context) (*models.Session, error) {
		return s.store.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.cache.Delete(ctx, session.CacheKey); err != nil {
		logging.Warn().Err(err).Str("session_id", id).Msg("failed to delete cached restaurants")
	}
	return session, nil
}

// Join adds userID to the session's participants. The add is a single
// atomic store update conditioned on group size, so concurrent joins are
// never lost and a full group is rejected with a validation error.
func (s *Service) Join(ctx context.Context, id, userID string) (*models.Session, error) {
	if userID == "" {
		return nil, &apperrors.ValidationError{Field: "userId", Reason: "must not be empty"}
	}

	session, err := retry.Do(ctx, s.retry, "session.join", func(ctx context.Context) (*models.Session, error) {
		return s.store.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	return retry.Do(ctx, s.retry, "session.join", func(ctx context.Context) (*models.Session, error) {
		return s.store.AddParticipant(ctx, id, userID, session.Settings.MaxGroupSize)
	})
}

// Vote appends a participant's vote on a restaurant.
func (s *Service) Vote(ctx context.Context, id string, vote models.Vote) (*models.Session, error) {
	if vote.UserID == "" || vote.RestaurantID == "" {
		return nil, &apperrors.ValidationError{Field: "vote", Reason: "userId and restaurantId must not be empty"}
	}

	session, err := retry.Do(ctx, s.retry, "session.vote", func(ctx context.Context) (*models.Session, error) {
		return s.store.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(vote.UserID) {
		return nil, &apperrors.ValidationError{Field: "vote.userId", Reason: "user is not a session participant"}
	}

	return retry.Do(ctx, s.retry, "session.vote", func(ctx context.Context) (*models.Session, error) {
		return s.store.AppendVote(ctx, id, vote)
	})
}

// Restaurants returns the session's cached restaurant set. An expired or
// missing cache entry reports not-found: to callers an expired set is
// indistinguishable from a session that never cached one.
func (s *Service) Restaurants(ctx context.Context, id string) ([]models.Restaurant, error) {
	session, err := retry.Do(ctx, s.retry, "session.restaurants", func(ctx context.Context) (*models.Session, error) {
		return s.store.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	var restaurants []models.Restaurant
	found, err := s.cache.Get(ctx, session.CacheKey, &restaurants)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &apperrors.NotFoundError{Entity: "session restaurants", ID: id}
	}
	return restaurants, nil
}
