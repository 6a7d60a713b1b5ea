// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package reranking

import (
	"context"
	"sort"
	"strings"

	"github.com/tomtom215/healthrec/internal/recommend"
)

// trendEpsilon keeps the trend normalization finite when every candidate has
// the same popularity.
const trendEpsilon = 1e-9

// ContextAdjuster re-scores a ranked list with request context.
//
// For each candidate:
//
//	final = base + timeBoost + trendBoost
//
// where base is the candidate's score (DefaultScore for unscored graph
// candidates), timeBoost is TimeBoost when the item's timeslot matches the
// request's time of day, and trendBoost is TrendingWeight times the
// candidate's popularity min-max normalized over the list.
//
// Items without a timeslot are treated as "any", which only matches a
// request that also says "any".
type ContextAdjuster struct {
	trendingWeight float64
	timeBoost      float64
	defaultScore   float64
}

// NewContextAdjuster creates a context adjuster from the engine configuration.
func NewContextAdjuster(cfg recommend.ContextConfig) *ContextAdjuster {
	return &ContextAdjuster{
		trendingWeight: cfg.TrendingWeight,
		timeBoost:      cfg.TimeBoost,
		defaultScore:   cfg.DefaultScore,
	}
}

// Name returns the reranker identifier.
func (a *ContextAdjuster) Name() string {
	return "context"
}

// Rerank returns the candidates re-scored and stable-sorted by final score.
// The input slice is not modified.
//
//nolint:gocritic // rangeValCopy: ScoredItem passed by value in range, acceptable for clarity
func (a *ContextAdjuster) Rerank(_ context.Context, items []recommend.ScoredItem, rc recommend.RequestContext) []recommend.ScoredItem {
	if len(items) == 0 {
		return items
	}

	lo, hi := recommend.PopularityRange(items)
	tag := strings.TrimSpace(rc.TimeOfDay)

	out := make([]recommend.ScoredItem, len(items))
	for i, it := range items {
		base := a.defaultScore
		if it.Scored {
			base = it.Score
		}

		slot := strings.TrimSpace(it.Item.Timeslot)
		if slot == "" {
			slot = recommend.TimeslotAny
		}
		var timeBoost float64
		if strings.EqualFold(slot, tag) {
			timeBoost = a.timeBoost
		}

		trendBoost := a.trendingWeight * (float64(it.Item.Popularity) - lo) / (hi - lo + trendEpsilon)

		scores := make(map[string]float64, len(it.Scores)+3)
		for k, v := range it.Scores {
			scores[k] = v
		}
		scores["base"] = base
		scores["time_boost"] = timeBoost
		scores["trend_boost"] = trendBoost

		it.Score = base + timeBoost + trendBoost
		it.Scored = true
		it.Scores = scores
		out[i] = it
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Ensure ContextAdjuster implements the interface.
var _ recommend.Reranker = (*ContextAdjuster)(nil)
