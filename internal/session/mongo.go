// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package session

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MrDuise/ForkFinder/internal/apperrors"
	"github.com/MrDuise/ForkFinder/internal/models"
)

// sessionsCollection is the MongoDB collection holding session documents.
const sessionsCollection = "sessions"

// MongoStore implements Store on a MongoDB collection.
//
// Participant adds and vote appends are single-document atomic updates
// ($addToSet / $push with a state-conditioned filter), so concurrent
// joins on the same session id cannot lose writes.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a store over db's sessions collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(sessionsCollection)}
}

// Create inserts a new session document.
func (s *MongoStore) Create(ctx context.Context, session *models.Session) error {
	if _, err := s.collection.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// FindByID fetches a session by id.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &apperrors.NotFoundError{Entity: "session", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &session, nil
}

// Update applies a partial update and returns the updated session.
func (s *MongoStore) Update(ctx context.Context, id string, update Update) (*models.Session, error) {
	set := bson.M{}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.Settings != nil {
		set["settings"] = *update.Settings
	}
	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}

	return s.findOneAndUpdate(ctx, id, bson.M{"_id": id}, bson.M{"$set": set})
}

// Delete removes and returns the session.
func (s *MongoStore) Delete(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &apperrors.NotFoundError{Entity: "session", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("delete session: %w", err)
	}
	return &session, nil
}

// AddParticipant atomically adds userID to the participant set. The filter
// admits the update when the user is already a participant (no-op) or the
// group still has room, so a full group never silently drops a join.
func (s *MongoStore) AddParticipant(ctx context.Context, id, userID string, maxGroupSize int) (*models.Session, error) {
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"participants": userID},
			bson.M{"$expr": bson.M{
				"$lt": bson.A{bson.M{"$size": "$participants"}, maxGroupSize},
			}},
		},
	}
	update := bson.M{"$addToSet": bson.M{"participants": userID}}

	session, err := s.findOneAndUpdate(ctx, id, filter, update)
	if err == nil {
		return session, nil
	}

	// The filter rejects both missing sessions and full groups;
	// distinguish them for the caller.
	if apperrors.IsNotFound(err) {
		if _, findErr := s.FindByID(ctx, id); findErr == nil {
			return nil, &apperrors.ValidationError{Field: "participants", Reason: "session is full"}
		}
	}
	return nil, err
}

// AppendVote atomically appends vote to the session's vote sequence.
func (s *MongoStore) AppendVote(ctx context.Context, id string, vote models.Vote) (*models.Session, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{"_id": id}, bson.M{"$push": bson.M{"votes": vote}})
}

func (s *MongoStore) findOneAndUpdate(ctx context.Context, id string, filter, update bson.M) (*models.Session, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var session models.Session
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &apperrors.NotFoundError{Entity: "session", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return &session, nil
}
