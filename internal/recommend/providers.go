// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package recommend

import (
	"context"
	"time"
)

// CatalogProvider supplies the item and medicine catalog.
type CatalogProvider interface {
	Items(ctx context.Context) ([]Item, error)
	Medicines(ctx context.Context) ([]Medicine, error)
}

// RatingsProvider supplies the current ratings log.
type RatingsProvider interface {
	AllRatings(ctx context.Context) ([]Rating, error)
}

// RatingsWriter records a user's current rating of an item, replacing any
// earlier value for the pair.
type RatingsWriter interface {
	Rate(ctx context.Context, userID, itemID int, value float64) error
}

// CounterStore persists per-strategy play and win counters.
// Increment must be atomic with respect to concurrent callers.
type CounterStore interface {
	Counters(ctx context.Context) (map[string]Counter, error)
	Increment(ctx context.Context, name string, won bool) error
}

// ActivityLog is the append-only user activity log.
type ActivityLog interface {
	Append(ctx context.Context, a Activity) error

	// Recent returns at most limit activities, newest first.
	// A non-positive limit returns all activities.
	Recent(ctx context.Context, limit int) ([]Activity, error)
}

// StrategySelector chooses the strategy that serves a request and learns
// from feedback.
type StrategySelector interface {
	Choose() Strategy
	Update(ctx context.Context, s Strategy, won bool) error
	Stats(ctx context.Context) ([]StrategyStats, error)
}

// Event topics.
const (
	TopicServed   = "recommendation.served"
	TopicFeedback = "feedback.recorded"
)

// ServedEvent is published after a recommendation is served.
type ServedEvent struct {
	EventID   string    `json:"event_id"`
	RequestID string    `json:"request_id"`
	UserID    int       `json:"user_id"`
	Strategy  Strategy  `json:"strategy"`
	Explored  bool      `json:"explored"`
	ItemIDs   []int     `json:"item_ids"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedbackEvent is published for every submitted user action.
type FeedbackEvent struct {
	EventID   string       `json:"event_id"`
	UserID    int          `json:"user_id"`
	ItemID    int          `json:"item_id"`
	Strategy  Strategy     `json:"strategy,omitempty"`
	Action    ActivityType `json:"action"`
	Timestamp time.Time    `json:"timestamp"`
}

// Activity converts the event into an activity log entry.
func (e FeedbackEvent) Activity() Activity {
	return Activity{
		UserID:    e.UserID,
		Type:      e.Action,
		ItemID:    e.ItemID,
		Timestamp: e.Timestamp,
		Meta:      string(e.Strategy),
	}
}

// EventPublisher publishes engine events. Publishing is best effort; the
// engine logs and ignores publish errors.
type EventPublisher interface {
	PublishServed(ctx context.Context, e ServedEvent) error
	PublishFeedback(ctx context.Context, e FeedbackEvent) error
}
