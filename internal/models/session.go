// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package models

import "time"

// Vote records one participant's swipe on one restaurant.
type Vote struct {
	RestaurantID string `json:"restaurantId" bson:"restaurantId"`
	UserID       string `json:"userId" bson:"userId"`
	Vote         bool   `json:"vote" bson:"vote"`
}

// Location is the search center and radius a session was created with.
type Location struct {
	Lat    float64 `json:"lat" bson:"lat" validate:"min=-90,max=90"`
	Lng    float64 `json:"lng" bson:"lng" validate:"min=-180,max=180"`
	Radius int     `json:"radius" bson:"radius" validate:"gt=0"`
}

// GroupSettings holds creator-chosen session parameters.
type GroupSettings struct {
	MaxGroupSize int    `json:"maxGroupSize" bson:"maxGroupSize" validate:"gt=0"`
	TimeLimit    int    `json:"timeLimit" bson:"timeLimit" validate:"gt=0"` // minutes
	SharingLink  string `json:"sharingLink" bson:"sharingLink"`
}

// Session is a time-bounded group decision context. The creator is always a
// participant. ExpiresAt is fixed at creation (createdAt + TimeLimit) and is
// never recomputed on update.
type Session struct {
	ID           string        `json:"id" bson:"_id"`
	CreatorID    string        `json:"creatorId" bson:"creatorId"`
	Participants []string      `json:"participants" bson:"participants"`
	Votes        []Vote        `json:"votes" bson:"votes"`
	Location     Location      `json:"location" bson:"location"`
	Settings     GroupSettings `json:"settings" bson:"settings"`
	CacheKey     string        `json:"cacheKey" bson:"cacheKey"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	ExpiresAt    time.Time     `json:"expiresAt" bson:"expiresAt"`
}

// HasParticipant reports whether userID already joined the session.
func (s *Session) HasParticipant(userID string) bool {
	for _, p := range s.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// TTL returns the cache lifetime for the session's restaurant set.
func (s *Session) TTL() time.Duration {
	return time.Duration(s.Settings.TimeLimit) * time.Minute
}
