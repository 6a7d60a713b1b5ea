// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Strategy names a ranking strategy the selector can serve.
type Strategy string

const (
	// StrategyContent ranks by text similarity to the user's liked items.
	StrategyContent Strategy = "content"
	// StrategyCollaborative ranks by similarity-weighted peer ratings.
	StrategyCollaborative Strategy = "collaborative"
	// StrategyHybrid blends content and collaborative rankings by rank.
	StrategyHybrid Strategy = "hybrid"
	// StrategyGraph ranks neighbors of a condition in the relatedness graph.
	StrategyGraph Strategy = "graph"
)

// Strategies returns the fixed strategy set in a stable order.
func Strategies() []Strategy {
	return []Strategy{StrategyContent, StrategyCollaborative, StrategyHybrid, StrategyGraph}
}

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}

// ParseStrategy resolves a strategy name case-insensitively.
// "collab" is accepted as a short form of "collaborative".
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "content":
		return StrategyContent, nil
	case "collaborative", "collab":
		return StrategyCollaborative, nil
	case "hybrid":
		return StrategyHybrid, nil
	case "graph":
		return StrategyGraph, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// TimeslotAny is the timeslot that carries no time-of-day preference.
const TimeslotAny = "any"

// Item is a health-information entry in the catalog.
type Item struct {
	// ID is the unique, positive item identifier.
	ID int `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Tags is free text, usually comma separated.
	Tags string `json:"tags"`

	// Description is the free-text body.
	Description string `json:"description"`

	// Condition is the health condition category this item belongs to.
	Condition string `json:"condition"`

	// Timeslot is the preferred time of day (morning, afternoon, evening, night, any).
	Timeslot string `json:"timeslot"`

	// Popularity is a non-negative popularity count.
	Popularity int `json:"popularity"`
}

// Text returns the concatenated text used for similarity indexing.
func (i Item) Text() string {
	return i.Title + " " + i.Tags + " " + i.Description
}

// Medicine is a medicine entry linked to the condition it treats.
type Medicine struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	ForCondition      string `json:"for_condition"`
	Contraindications string `json:"contraindications"`
	Description       string `json:"description"`
}

// ContraindicationTokens returns the lower-cased, comma-split contraindication tokens.
func (m Medicine) ContraindicationTokens() []string {
	if m.Contraindications == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(m.Contraindications), ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		tokens = append(tokens, strings.TrimSpace(p))
	}
	return tokens
}

// Rating is the current feedback value of a user for an item.
// Positive means liked, negative means skipped, zero is neutral.
type Rating struct {
	UserID int     `json:"user_id"`
	ItemID int     `json:"item_id"`
	Value  float64 `json:"rating"`
}

// Counter holds the persisted play and win counts of one strategy.
type Counter struct {
	Plays int64 `json:"plays"`
	Wins  int64 `json:"wins"`
}

// WinRate returns wins/plays, or 0 when the strategy was never played.
func (c Counter) WinRate() float64 {
	if c.Plays == 0 {
		return 0
	}
	return float64(c.Wins) / float64(c.Plays)
}

// StrategyStats is a strategy's counters with its derived win rate.
type StrategyStats struct {
	Strategy Strategy `json:"strategy"`
	Plays    int64    `json:"plays"`
	Wins     int64    `json:"wins"`
	WinRate  float64  `json:"win_rate"`
}

// ActivityType classifies a logged user action.
type ActivityType string

const (
	// ActivityLike is a positive reaction to a served item.
	ActivityLike ActivityType = "like"
	// ActivitySkip is a negative reaction to a served item.
	ActivitySkip ActivityType = "skip"
	// ActivityView records that the user opened an item.
	ActivityView ActivityType = "view"
)

// ParseActivityType validates an action name.
func ParseActivityType(name string) (ActivityType, error) {
	switch ActivityType(strings.ToLower(strings.TrimSpace(name))) {
	case ActivityLike:
		return ActivityLike, nil
	case ActivitySkip:
		return ActivitySkip, nil
	case ActivityView:
		return ActivityView, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, name)
	}
}

// Activity is one entry of the user activity log.
type Activity struct {
	UserID    int          `json:"user_id"`
	Type      ActivityType `json:"type"`
	ItemID    int          `json:"item_id"`
	Timestamp time.Time    `json:"timestamp"`
	Meta      string       `json:"meta,omitempty"`
}

// ScoredItem is an item with a recommendation score.
type ScoredItem struct {
	// Item is the catalog entry.
	Item Item `json:"item"`

	// Score is the ranking score. Scores are only comparable within one list.
	Score float64 `json:"score"`

	// Scored is false for candidates produced without a numeric score.
	Scored bool `json:"-"`

	// Scores is a breakdown of the components that produced Score.
	Scores map[string]float64 `json:"scores,omitempty"`

	// Reason is a short explanation of why the item was served.
	Reason string `json:"reason,omitempty"`
}

// RequestContext carries the request-time context used by rerankers.
type RequestContext struct {
	// TimeOfDay is the context tag (morning, afternoon, evening, night, any).
	TimeOfDay string `json:"time_of_day,omitempty"`
}

// Request is a recommendation request.
type Request struct {
	// UserID is the user to recommend for.
	UserID int `json:"user_id"`

	// LikedItems are item IDs the user liked.
	LikedItems []int `json:"liked_items,omitempty"`

	// Ratings is the ratings log snapshot used by collaborative ranking.
	Ratings []Rating `json:"ratings,omitempty"`

	// K is the number of items to return. Zero selects Config.Limits.DefaultK.
	K int `json:"k,omitempty"`

	// TimeOfDay is the context tag passed to the context adjuster.
	TimeOfDay string `json:"time_of_day,omitempty"`

	// Strategy pins a strategy instead of asking the selector.
	Strategy Strategy `json:"strategy,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the result of a recommendation request.
type Response struct {
	// Strategy is the strategy that produced Items.
	Strategy Strategy `json:"strategy"`

	// Items is the ordered list of recommended items.
	Items []ScoredItem `json:"items"`

	// Medicines is filled by the graph strategy only.
	Medicines []Medicine `json:"medicines,omitempty"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID      string    `json:"request_id"`
	UserID         int       `json:"user_id"`
	Explored       bool      `json:"explored"`
	Condition      string    `json:"condition,omitempty"`
	CatalogVersion string    `json:"catalog_version"`
	LatencyMS      int64     `json:"latency_ms"`
	Timestamp      time.Time `json:"timestamp"`
}

// RankRequest is the input handed to a Ranker.
type RankRequest struct {
	UserID    int
	Liked     []int
	Ratings   []Rating
	K         int
	Condition string
}

// RankResult is the output of a Ranker.
type RankResult struct {
	Items     []ScoredItem
	Medicines []Medicine
}

// Ranker produces an ordered candidate list from a catalog snapshot.
// Insufficient data yields an empty result, never an error.
type Ranker interface {
	// Name returns the ranker identifier.
	Name() string

	// Rank returns at most req.K candidates ordered by descending score.
	Rank(ctx context.Context, cat *Catalog, req RankRequest) (RankResult, error)
}

// Reranker re-scores a ranked list using request context.
type Reranker interface {
	// Name returns the reranker identifier (e.g., "context").
	Name() string

	// Rerank returns the items re-scored and re-sorted. Empty input passes through.
	Rerank(ctx context.Context, items []ScoredItem, rc RequestContext) []ScoredItem
}

// Feedback is a user reaction to a served item.
type Feedback struct {
	UserID   int          `json:"user_id"`
	ItemID   int          `json:"item_id"`
	Strategy Strategy     `json:"strategy,omitempty"`
	Action   ActivityType `json:"action"`
}
