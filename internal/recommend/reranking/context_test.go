// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package reranking

import (
	"context"
	"math"
	"testing"

	"github.com/tomtom215/healthrec/internal/recommend"
)

func newTestAdjuster() *ContextAdjuster {
	return NewContextAdjuster(recommend.DefaultConfig().Context)
}

func TestContextAdjuster_Name(t *testing.T) {
	if got := newTestAdjuster().Name(); got != "context" {
		t.Errorf("Name() = %q, want %q", got, "context")
	}
}

func TestContextAdjuster_EmptyInput(t *testing.T) {
	a := newTestAdjuster()

	if got := a.Rerank(context.Background(), nil, recommend.RequestContext{TimeOfDay: "morning"}); len(got) != 0 {
		t.Errorf("Rerank(nil) = %v, want empty", got)
	}
	empty := []recommend.ScoredItem{}
	if got := a.Rerank(context.Background(), empty, recommend.RequestContext{}); got == nil || len(got) != 0 {
		t.Errorf("Rerank(empty) = %v, want empty slice", got)
	}
}

func TestContextAdjuster_AnyTimeslotNeverMatchesMorning(t *testing.T) {
	items := []recommend.ScoredItem{
		{Item: recommend.Item{ID: 1, Timeslot: "any", Popularity: 3}, Score: 0.9, Scored: true},
		{Item: recommend.Item{ID: 2, Timeslot: "any", Popularity: 8}, Score: 0.4, Scored: true},
		{Item: recommend.Item{ID: 3, Timeslot: "", Popularity: 1}, Score: 0.1, Scored: true},
	}

	got := newTestAdjuster().Rerank(context.Background(), items, recommend.RequestContext{TimeOfDay: "morning"})

	var sum float64
	for i := range got {
		sum += got[i].Scores["time_boost"]
	}
	if sum != 0 {
		t.Errorf("sum(time_boost) = %v, want 0", sum)
	}
}

func TestContextAdjuster_Rerank(t *testing.T) {
	items := []recommend.ScoredItem{
		{Item: recommend.Item{ID: 1, Timeslot: "night", Popularity: 10}, Score: 0.5, Scored: true},
		{Item: recommend.Item{ID: 2, Timeslot: "Morning", Popularity: 0}, Score: 0.5, Scored: true},
		{Item: recommend.Item{ID: 3, Timeslot: "morning", Popularity: 5}},
	}

	got := newTestAdjuster().Rerank(context.Background(), items, recommend.RequestContext{TimeOfDay: "morning"})

	want := map[int]struct{ base, time, trend float64 }{
		1: {base: 0.5, time: 0, trend: 0.2 * 10 / (10 + 1e-9)},
		2: {base: 0.5, time: 0.1, trend: 0},
		3: {base: 0.5, time: 0.1, trend: 0.2 * 5 / (10 + 1e-9)},
	}
	for i := range got {
		w := want[got[i].Item.ID]
		s := got[i].Scores
		if s["base"] != w.base {
			t.Errorf("item %d base = %v, want %v", got[i].Item.ID, s["base"], w.base)
		}
		if s["time_boost"] != w.time {
			t.Errorf("item %d time_boost = %v, want %v", got[i].Item.ID, s["time_boost"], w.time)
		}
		if math.Abs(s["trend_boost"]-w.trend) > 1e-12 {
			t.Errorf("item %d trend_boost = %v, want %v", got[i].Item.ID, s["trend_boost"], w.trend)
		}
		if math.Abs(got[i].Score-(w.base+w.time+w.trend)) > 1e-12 {
			t.Errorf("item %d score = %v, want %v", got[i].Item.ID, got[i].Score, w.base+w.time+w.trend)
		}
	}

	// 3: 0.5+0.1+0.1 = 0.7, 1: 0.5+0.2 = 0.7 (minus epsilon), 2: 0.6
	ids := []int{got[0].Item.ID, got[1].Item.ID, got[2].Item.ID}
	if ids[2] != 2 {
		t.Errorf("order = %v, want item 2 last", ids)
	}

	// Input is untouched.
	if items[2].Scored || items[0].Scores != nil {
		t.Error("Rerank modified its input")
	}
}

func TestContextAdjuster_EqualPopularityHasNoTrend(t *testing.T) {
	items := []recommend.ScoredItem{
		{Item: recommend.Item{ID: 1, Popularity: 4}, Score: 0.2, Scored: true},
		{Item: recommend.Item{ID: 2, Popularity: 4}, Score: 0.8, Scored: true},
	}

	got := newTestAdjuster().Rerank(context.Background(), items, recommend.RequestContext{TimeOfDay: "any"})

	if got[0].Item.ID != 2 {
		t.Errorf("first = %d, want 2", got[0].Item.ID)
	}
	for i := range got {
		if got[i].Scores["trend_boost"] != 0 || math.IsNaN(got[i].Score) {
			t.Errorf("item %d trend_boost = %v, want 0", got[i].Item.ID, got[i].Scores["trend_boost"])
		}
		// Both slots default to "any", which matches the "any" context.
		if got[i].Scores["time_boost"] != 0.1 {
			t.Errorf("item %d time_boost = %v, want 0.1", got[i].Item.ID, got[i].Scores["time_boost"])
		}
	}
}
