// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package models defines the HTTP API data structures for Healthrec.

Domain types (items, medicines, ratings, scored items) live in the recommend
package. This package holds the transport shapes around them:

  - APIResponse: Standard response wrapper used by every endpoint
  - APIError: Machine-readable error code with message and details
  - Metadata: Timestamp, handler time and request id
  - RecommendationRequest, FeedbackRequest: Request bodies with validator tags
  - KPISummary, ItemPerformance: Analytics results

Usage Example:

	resp := models.APIResponse{
	    Status: "success",
	    Data:   items,
	    Metadata: models.Metadata{
	        Timestamp: time.Now(),
	    },
	}

Thread Safety:

All models are plain value types with no internal synchronization.
*/
package models
