// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package algorithms

import (
	"context"
	"sort"

	"github.com/tomtom215/healthrec/internal/recommend"
)

// PopularityMode selects how popularity scores are normalized.
type PopularityMode int

const (
	// PopularityColdStart normalizes as (p-min)/(max-min+1e-6).
	// Equal popularity gives every item a score of 0.
	PopularityColdStart PopularityMode = iota

	// PopularityFallback normalizes as (p-min)/(denom+1e-9) where denom is
	// max-min, or 1 when every item has the same popularity.
	PopularityFallback
)

// Popularity ranks items by their catalog popularity count.
// It serves cold-start users in the content ranker and the last-resort
// fallback of the hybrid blender.
//
// Min and max are taken over the returned top-K, not the whole catalog.
type Popularity struct {
	BaseRanker
	mode PopularityMode
}

// NewPopularity creates a popularity ranker.
func NewPopularity(mode PopularityMode) *Popularity {
	return &Popularity{
		BaseRanker: NewBaseRanker("popularity"),
		mode:       mode,
	}
}

// Rank returns the k most popular items.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (p *Popularity) Rank(_ context.Context, cat *recommend.Catalog, req recommend.RankRequest) (recommend.RankResult, error) {
	res := emptyResult()
	res.Items = p.TopK(cat, req.K)
	return res, nil
}

// TopK returns the k most popular items with normalized scores.
// Ties keep catalog order.
func (p *Popularity) TopK(cat *recommend.Catalog, k int) []recommend.ScoredItem {
	if cat == nil || k <= 0 || cat.Len() == 0 {
		return []recommend.ScoredItem{}
	}

	items := make([]recommend.Item, len(cat.Items))
	copy(items, cat.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Popularity > items[j].Popularity
	})
	if len(items) > k {
		items = items[:k]
	}

	lo, hi := float64(items[0].Popularity), float64(items[0].Popularity)
	for i := range items {
		v := float64(items[i].Popularity)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var denom float64
	switch p.mode {
	case PopularityFallback:
		denom = hi - lo
		if denom == 0 {
			denom = 1
		}
		denom += 1e-9
	default:
		denom = hi - lo + 1e-6
	}

	out := make([]recommend.ScoredItem, len(items))
	for i := range items {
		score := (float64(items[i].Popularity) - lo) / denom
		out[i] = recommend.ScoredItem{
			Item:   items[i],
			Score:  score,
			Scored: true,
			Scores: map[string]float64{scorePopularity: score},
			Reason: "popular",
		}
	}
	return out
}
