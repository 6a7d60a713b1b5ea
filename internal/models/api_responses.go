// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"strategy": "hybrid", "items": [...]},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 4,
//	    "request_id": "6f1c..."
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "k must be non-negative",
//	    "details": {"field": "k"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - QueryTimeMS: Handler execution time in milliseconds
//   - Cached: Whether response was served from cache (omitted if false)
//   - RequestID: Request correlation id, also sent as X-Request-ID
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - NOT_READY: No catalog snapshot has been published yet
//   - STORE_ERROR: A ratings, counter or activity store failed
//   - NOT_FOUND: Resource doesn't exist
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - INTERNAL_ERROR: Anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the payload of the liveness and readiness endpoints.
type HealthStatus struct {
	Status         string `json:"status"`
	Ready          bool   `json:"ready"`
	CatalogVersion string `json:"catalog_version,omitempty"`
	CatalogItems   int    `json:"catalog_items"`
	Uptime         string `json:"uptime,omitempty"`
}

// RecommendationRequest is the body of POST /api/v1/recommendations.
type RecommendationRequest struct {
	UserID     int           `json:"user_id" validate:"gte=0"`
	LikedItems []int         `json:"liked_items" validate:"omitempty,max=1000,dive,gt=0"`
	Ratings    []RatingInput `json:"ratings" validate:"omitempty,max=100000,dive"`
	K          int           `json:"k" validate:"gte=0,lte=100"`
	TimeOfDay  string        `json:"time_of_day" validate:"omitempty,oneof=morning afternoon evening night any"`
	Strategy   string        `json:"strategy" validate:"omitempty,oneof=content collaborative collab hybrid graph"`
}

// RatingInput is one rating in a RecommendationRequest.
type RatingInput struct {
	UserID int     `json:"user_id" validate:"gte=0"`
	ItemID int     `json:"item_id" validate:"gte=0"`
	Rating float64 `json:"rating"`
}

// FeedbackRequest is the body of POST /api/v1/feedback.
type FeedbackRequest struct {
	UserID   int    `json:"user_id" validate:"gte=0"`
	ItemID   int    `json:"item_id" validate:"gt=0"`
	Strategy string `json:"strategy" validate:"omitempty,oneof=content collaborative collab hybrid graph"`
	Action   string `json:"action" validate:"required,oneof=like skip view"`
}

// GraphResponse is the payload of GET /api/v1/graph/{condition}.
type GraphResponse struct {
	Condition string      `json:"condition"`
	Items     interface{} `json:"items"`
	Medicines interface{} `json:"medicines"`
}
