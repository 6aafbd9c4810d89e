// ForkFinder - Group Restaurant Decision Engine
// Copyright 2026 MrDuise
// SPDX-License-Identifier: MIT
// https://github.com/MrDuise/ForkFinder

// Package api provides the HTTP surface: session lifecycle endpoints, the
// search endpoint, and standardized response handling.
package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/MrDuise/ForkFinder/internal/apperrors"
	"github.com/MrDuise/ForkFinder/internal/logging"
	"github.com/MrDuise/ForkFinder/internal/retry"
)

// Response is the wrapper for all API responses.
type Response struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`

	// Warning reports a degraded-but-successful outcome, e.g. a created
	// session whose restaurant set could not be cached.
	Warning string `json:"warning,omitempty"`
}

// ErrorBody is the error payload of a failed response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Machine-readable error codes.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Err(err).Msg("failed to encode response")
	}
}

func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	})
}

// respondServiceError maps the error taxonomy onto HTTP statuses:
// validation -> 400, not-found -> 404, exhausted persistence retries ->
// 503, anything else -> 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		respondError(w, http.StatusBadRequest, CodeValidationFailed, ve.Error())
		return
	}
	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) {
		respondError(w, http.StatusNotFound, CodeNotFound, nf.Error())
		return
	}
	if retry.Retryable(err) {
		respondError(w, http.StatusServiceUnavailable, CodeServiceUnavailable, "persistent store unavailable")
		return
	}

	logging.Err(err).Msg("internal error")
	respondError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
