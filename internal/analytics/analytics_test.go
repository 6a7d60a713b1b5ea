// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/healthrec/internal/models"
	"github.com/tomtom215/healthrec/internal/recommend"
	"github.com/tomtom215/healthrec/internal/store/memstore"
)

func TestKPIs(t *testing.T) {
	t.Parallel()

	day := func(m time.Month, d, h int) time.Time {
		return time.Date(2026, m, d, h, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		ratings    []recommend.Rating
		activities []recommend.Activity
		want       models.KPISummary
	}{
		{
			name: "empty logs",
			want: models.KPISummary{},
		},
		{
			name: "days and months are distinct dates",
			ratings: []recommend.Rating{
				{UserID: 1, ItemID: 1, Value: 1},
				{UserID: 1, ItemID: 2, Value: -1},
				{UserID: 2, ItemID: 1, Value: 1},
			},
			activities: []recommend.Activity{
				{UserID: 1, Type: recommend.ActivityLike, Timestamp: day(3, 1, 9)},
				{UserID: 1, Type: recommend.ActivitySkip, Timestamp: day(3, 1, 18)},
				{UserID: 3, Type: recommend.ActivityView, Timestamp: day(3, 2, 7)},
				{UserID: 3, Type: recommend.ActivityView, Timestamp: day(4, 2, 7)},
				{UserID: 4, Type: recommend.ActivityView},
			},
			want: models.KPISummary{
				ActiveDays:         3,
				ActiveMonths:       2,
				EventsLogged:       5,
				RatingsCount:       3,
				PositiveRatingRate: 66.67,
				UniqueUsers:        2,
			},
		},
		{
			name: "users fall back to the activity log",
			activities: []recommend.Activity{
				{UserID: 5, Type: recommend.ActivityView, Timestamp: day(1, 5, 0)},
				{UserID: 6, Type: recommend.ActivityView, Timestamp: day(1, 5, 1)},
			},
			want: models.KPISummary{
				ActiveDays:   1,
				ActiveMonths: 1,
				EventsLogged: 2,
				UniqueUsers:  2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KPIs(tt.ratings, tt.activities)
			if got != tt.want {
				t.Errorf("KPIs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestItemPerformance(t *testing.T) {
	t.Parallel()

	ratings := []recommend.Rating{
		{UserID: 1, ItemID: 9, Value: 1},
		{UserID: 1, ItemID: 3, Value: -1},
		{UserID: 2, ItemID: 9, Value: -1},
		{UserID: 3, ItemID: 9, Value: 1},
		{UserID: 2, ItemID: 3, Value: 0},
	}

	got := ItemPerformance(ratings)
	want := []models.ItemPerformance{
		{ItemID: 3, Impressions: 2, Positive: 0, CTR: 0},
		{ItemID: 9, Impressions: 3, Positive: 2, CTR: 66.67},
	}
	if len(got) != len(want) {
		t.Fatalf("ItemPerformance() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ItemPerformance()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if empty := ItemPerformance(nil); empty == nil || len(empty) != 0 {
		t.Errorf("ItemPerformance(nil) = %v, want empty slice", empty)
	}
}

func TestServiceReadsStores(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := memstore.New()
	if err := store.Rate(ctx, 1, 2, 1); err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if err := store.Append(ctx, recommend.Activity{UserID: 1, Type: recommend.ActivityLike, ItemID: 2, Timestamp: time.Now()}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	svc := NewService(store, store)
	kpis, err := svc.KPIs(ctx)
	if err != nil {
		t.Fatalf("KPIs() error = %v", err)
	}
	if kpis.RatingsCount != 1 || kpis.EventsLogged != 1 || kpis.PositiveRatingRate != 100 {
		t.Errorf("KPIs() = %+v", kpis)
	}

	items, err := svc.Items(ctx)
	if err != nil || len(items) != 1 || items[0].CTR != 100 {
		t.Errorf("Items() = %+v, %v", items, err)
	}

	empty := NewService(nil, nil)
	if k, err := empty.KPIs(ctx); err != nil || k != (models.KPISummary{}) {
		t.Errorf("empty KPIs() = %+v, %v", k, err)
	}
}
