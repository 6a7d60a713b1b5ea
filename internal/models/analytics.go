// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package models

// KPISummary represents the service-level engagement indicators shown on the
// analytics endpoint.
type KPISummary struct {
	ActiveDays         int     `json:"active_days"`          // distinct calendar days with activity
	ActiveMonths       int     `json:"active_months"`        // distinct calendar months with activity
	EventsLogged       int     `json:"events_logged"`        // activity log entries
	RatingsCount       int     `json:"ratings_count"`        // current ratings
	PositiveRatingRate float64 `json:"positive_rating_rate"` // percent, 2 decimals
	UniqueUsers        int     `json:"unique_users"`
}

// ItemPerformance represents rating outcomes for one catalog item.
type ItemPerformance struct {
	ItemID      int     `json:"item_id"`
	Impressions int     `json:"impressions"` // ratings recorded for the item
	Positive    int     `json:"positive"`    // ratings > 0
	CTR         float64 `json:"ctr"`         // percent, 2 decimals
}
