// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/healthrec/internal/recommend"
)

func TestStore_RateLastWins(t *testing.T) {
	ctx := context.Background()
	s := New()

	_ = s.Rate(ctx, 1, 10, 1)
	_ = s.Rate(ctx, 2, 10, 1)
	_ = s.Rate(ctx, 1, 10, -1)

	got, err := s.AllRatings(ctx)
	if err != nil {
		t.Fatalf("AllRatings() error = %v", err)
	}
	want := []recommend.Rating{
		{UserID: 1, ItemID: 10, Value: -1},
		{UserID: 2, ItemID: 10, Value: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("AllRatings() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllRatings()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStore_ConcurrentIncrement(t *testing.T) {
	ctx := context.Background()
	s := New()

	const workers, perWorker = 16, 250
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_ = s.Increment(ctx, "hybrid", w%2 == 0)
			}
		}(w)
	}
	wg.Wait()

	counters, err := s.Counters(ctx)
	if err != nil {
		t.Fatalf("Counters() error = %v", err)
	}
	got := counters["hybrid"]
	if got.Plays != workers*perWorker {
		t.Errorf("Plays = %d, want %d", got.Plays, workers*perWorker)
	}
	if got.Wins != workers/2*perWorker {
		t.Errorf("Wins = %d, want %d", got.Wins, workers/2*perWorker)
	}
}

func TestStore_Recent(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		_ = s.Append(ctx, recommend.Activity{UserID: i, Type: recommend.ActivityView, ItemID: i, Timestamp: base.Add(time.Duration(i) * time.Hour)})
	}

	tests := []struct {
		name  string
		limit int
		want  []int
	}{
		{name: "all", limit: 0, want: []int{3, 2, 1}},
		{name: "limited", limit: 2, want: []int{3, 2}},
		{name: "limit above size", limit: 10, want: []int{3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Recent(ctx, tt.limit)
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len(Recent) = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].UserID != tt.want[i] {
					t.Errorf("Recent()[%d].UserID = %d, want %d", i, got[i].UserID, tt.want[i])
				}
			}
		})
	}
}
