// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/models"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// Error codes for API responses.
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeNotReady   = "NOT_READY"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeStore      = "STORE_ERROR"
	ErrCodeTimeout    = "TIMEOUT"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// respondJSON writes the envelope with the given status.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func metadataFor(r *http.Request, start time.Time) models.Metadata {
	return models.Metadata{
		Timestamp:   time.Now().UTC(),
		QueryTimeMS: time.Since(start).Milliseconds(),
		RequestID:   logging.RequestIDFromContext(r.Context()),
	}
}

// respondSuccess writes a 200 envelope around data.
func respondSuccess(w http.ResponseWriter, r *http.Request, start time.Time, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   statusSuccess,
		Data:     data,
		Metadata: metadataFor(r, start),
	})
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Status:   statusError,
		Metadata: metadataFor(r, time.Now()),
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondEngineError maps engine and store errors onto statuses. Caller
// misuse is a 400, a missing snapshot a 503, anything else a store failure.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidK),
		errors.Is(err, recommend.ErrUnknownStrategy),
		errors.Is(err, recommend.ErrInvalidAction),
		errors.Is(err, recommend.ErrInvalidAlpha),
		errors.Is(err, recommend.ErrInvalidEpsilon):
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)

	case errors.Is(err, recommend.ErrNoCatalog):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotReady, "Catalog not loaded yet", nil)

	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, ErrCodeTimeout, "Request timed out", nil)

	case errors.Is(err, recommend.ErrNoProvider):
		logging.Ctx(r.Context()).Error().Err(err).Msg("Engine misconfigured")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Service misconfigured", nil)

	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Request failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeStore, "A storage error occurred", nil)
	}
}
