// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/MrDuise/ForkFinder/internal/apperrors"
	"github.com/MrDuise/ForkFinder/internal/geocode"
	"github.com/MrDuise/ForkFinder/internal/models"
	"github.com/MrDuise/ForkFinder/internal/session"
	"github.com/MrDuise/ForkFinder/internal/validation"
)

// Handler serves the session and search endpoints.
type Handler struct {
	sessions *session.Service
	finder   session.Finder
	geocoder geocode.Geocoder
}

// NewHandler builds the API handler over the session service and the
// aggregation pipeline. geocoder may be nil, disabling address-based
// search.
func NewHandler(sessions *session.Service, finder session.Finder, geocoder geocode.Geocoder) *Handler {
	return &Handler{sessions: sessions, finder: finder, geocoder: geocoder}
}

// CreateSessionRequest is the POST /sessions payload.
type CreateSessionRequest struct {
	CreatorID string               `json:"creatorId" validate:"required"`
	Location  models.Location      `json:"location" validate:"required"`
	Settings  models.GroupSettings `json:"settings" validate:"required"`
}

// UpdateSessionRequest is the PUT /sessions/{id} payload.
type UpdateSessionRequest struct {
	Location *models.Location      `json:"location,omitempty"`
	Settings *models.GroupSettings `json:"settings,omitempty"`
}

// JoinSessionRequest is the POST /sessions/{id}/join payload.
type JoinSessionRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// VoteRequest is the POST /sessions/{id}/votes payload.
type VoteRequest struct {
	RestaurantID string `json:"restaurantId" validate:"required"`
	UserID       string `json:"userId" validate:"required"`
	Vote         bool   `json:"vote"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "invalid JSON body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondServiceError(w, err)
		return
	}

	sess, err := h.sessions.Create(r.Context(), session.CreateInput{
		CreatorID: req.CreatorID,
		Location:  req.Location,
		Settings:  req.Settings,
	})
	if err != nil {
		// A cache failure after persistence is reported, not fatal: the
		// session exists and the caller should know caching degraded.
		var cacheErr *apperrors.CacheError
		if sess != nil && errors.As(err, &cacheErr) {
			writeJSON(w, http.StatusCreated, Response{
				Success: true,
				Data:    sess,
				Warning: "restaurant results could not be cached",
			})
			return
		}
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, sess)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, sess)
}

func (h *Handler) updateSession(w http.ResponseWriter, r *http.Request) {
	var req UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "invalid JSON body")
		return
	}

	sess, err := h.sessions.Update(r.Context(), chi.URLParam(r, "id"), session.Update{
		Location: req.Location,
		Settings: req.Settings,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, sess)
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, sess)
}

func (h *Handler) joinSession(w http.ResponseWriter, r *http.Request) {
	var req JoinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "invalid JSON body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondServiceError(w, err)
		return
	}

	sess, err := h.sessions.Join(r.Context(), chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, sess)
}

func (h *Handler) voteSession(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "invalid JSON body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondServiceError(w, err)
		return
	}

	sess, err := h.sessions.Vote(r.Context(), chi.URLParam(r, "id"), models.Vote{
		RestaurantID: req.RestaurantID,
		UserID:       req.UserID,
		Vote:         req.Vote,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, sess)
}

func (h *Handler) sessionRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.sessions.Restaurants(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, restaurants)
}

// searchRestaurants runs the aggregation pipeline directly, outside any
// session. The center is either explicit lat/lng or a free-text address
// resolved through the geocoder. Partial provider failures are invisible
// here: the caller gets whatever the surviving providers produced.
func (h *Handler) searchRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var loc models.Coordinates
	if address := q.Get("address"); address != "" {
		if h.geocoder == nil {
			respondError(w, http.StatusBadRequest, CodeBadRequest, "address search is not enabled")
			return
		}
		resolved, err := h.geocoder.Geocode(r.Context(), address)
		if err != nil {
			respondError(w, http.StatusBadRequest, CodeBadRequest, "could not resolve address")
			return
		}
		loc = resolved
	} else {
		lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
		lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
		if latErr != nil || lngErr != nil {
			respondError(w, http.StatusBadRequest, CodeBadRequest, "lat and lng (or address) are required")
			return
		}
		loc = models.Coordinates{Lat: lat, Lng: lng}
	}

	radius, _ := strconv.Atoi(q.Get("radius"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	restaurants, err := h.finder.Search(r.Context(), models.SearchParams{
		Query:    q.Get("query"),
		Location: loc,
		Radius:   radius,
		Limit:    limit,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, restaurants)
}
