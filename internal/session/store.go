// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package session

import (
	"context"

	"github.com/MrDuise/ForkFinder/internal/models"
)

// Update is a partial session update. Nil fields are left untouched.
// ExpiresAt is deliberately not updatable: it is fixed at creation.
type Update struct {
	Location *models.Location
	Settings *models.GroupSettings
}

// Store is the session persistence boundary.
//
// AddParticipant and AppendVote are atomic single-document updates:
// concurrent joins against the same session must not be lost to a
// read-modify-write race, so implementations may not implement them as
// fetch-mutate-save. Both are conditioned on current document state,
// which also makes them safe to re-execute under the retry policy.
type Store interface {
	Create(ctx context.Context, session *models.Session) error

	// FindByID returns *apperrors.NotFoundError when no session exists.
	FindByID(ctx context.Context, id string) (*models.Session, error)

	Update(ctx context.Context, id string, update Update) (*models.Session, error)

	// Delete removes and returns the session.
	Delete(ctx context.Context, id string) (*models.Session, error)

	// AddParticipant atomically adds userID to the participant set,
	// enforcing maxGroupSize in the same update predicate. Adding an
	// existing participant is a no-op success.
	AddParticipant(ctx context.Context, id, userID string, maxGroupSize int) (*models.Session, error)

	// AppendVote atomically appends vote to the session's vote sequence.
	AppendVote(ctx context.Context, id string, vote models.Vote) (*models.Session, error)
}
