// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package memstore provides in-memory ratings, counter and activity stores.
// Data is lost on restart. All methods are safe for concurrent use.
package memstore

import (
	"context"
	"sync"

	"github.com/tomtom215/healthrec/internal/recommend"
)

type ratingKey struct {
	user, item int
}

// Store keeps ratings, strategy counters and the activity log in memory.
type Store struct {
	mu         sync.RWMutex
	ratings    []recommend.Rating
	ratingPos  map[ratingKey]int
	counters   map[string]recommend.Counter
	activities []recommend.Activity
}

// New creates an empty store.
func New() *Store {
	return &Store{
		ratingPos: make(map[ratingKey]int),
		counters:  make(map[string]recommend.Counter),
	}
}

// AllRatings returns a copy of the ratings log in first-rated order.
func (s *Store) AllRatings(_ context.Context) ([]recommend.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]recommend.Rating, len(s.ratings))
	copy(out, s.ratings)
	return out, nil
}

// Rate sets the user's rating of an item, replacing any earlier value.
func (s *Store) Rate(_ context.Context, userID, itemID int, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ratingKey{userID, itemID}
	r := recommend.Rating{UserID: userID, ItemID: itemID, Value: value}
	if i, ok := s.ratingPos[key]; ok {
		s.ratings[i] = r
		return nil
	}
	s.ratingPos[key] = len(s.ratings)
	s.ratings = append(s.ratings, r)
	return nil
}

// Counters returns a copy of all strategy counters.
func (s *Store) Counters(_ context.Context) (map[string]recommend.Counter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]recommend.Counter, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out, nil
}

// Increment adds one play, and one win when won is true.
func (s *Store) Increment(_ context.Context, name string, won bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.counters[name]
	c.Plays++
	if won {
		c.Wins++
	}
	s.counters[name] = c
	return nil
}

// Append adds an activity to the log.
func (s *Store) Append(_ context.Context, a recommend.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, a)
	return nil
}

// Recent returns at most limit activities, newest first.
// A non-positive limit returns all activities.
func (s *Store) Recent(_ context.Context, limit int) ([]recommend.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.activities)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]recommend.Activity, 0, n)
	for i := len(s.activities) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.activities[i])
	}
	return out, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// Ensure Store implements the store interfaces.
var (
	_ recommend.RatingsProvider = (*Store)(nil)
	_ recommend.RatingsWriter   = (*Store)(nil)
	_ recommend.CounterStore    = (*Store)(nil)
	_ recommend.ActivityLog     = (*Store)(nil)
)
