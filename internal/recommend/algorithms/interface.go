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

// Score breakdown keys.
const (
	scoreContent       = "content"
	scoreCollaborative = "collaborative"
	scorePopularity    = "popularity"
	scoreDegree        = "degree"
)

// BaseRanker provides the name shared by all rankers.
type BaseRanker struct {
	name string
}

// NewBaseRanker creates a base ranker with the given name.
func NewBaseRanker(name string) BaseRanker {
	return BaseRanker{name: name}
}

// Name returns the ranker identifier.
func (b *BaseRanker) Name() string {
	return b.name
}

// emptyResult returns a result with non-nil empty lists.
func emptyResult() recommend.RankResult {
	return recommend.RankResult{
		Items:     []recommend.ScoredItem{},
		Medicines: []recommend.Medicine{},
	}
}

// sortByScore stable-sorts items by descending score. Ties keep input order.
func sortByScore(items []recommend.ScoredItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

// truncate returns at most k items.
func truncate(items []recommend.ScoredItem, k int) []recommend.ScoredItem {
	if k < 0 {
		k = 0
	}
	if len(items) > k {
		return items[:k]
	}
	return items
}

// linspace returns n evenly spaced values from 1 down to 0. A single value is 1.
func linspace(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = 1
		return out
	}
	for i := range out {
		out[i] = 1 - float64(i)/float64(n-1)
	}
	return out
}

// idSet builds a set from item ids.
func idSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Ensure all rankers implement the interface.
var (
	_ recommend.Ranker = (*Content)(nil)
	_ recommend.Ranker = (*Collaborative)(nil)
	_ recommend.Ranker = (*Graph)(nil)
	_ recommend.Ranker = (*Hybrid)(nil)
	_ recommend.Ranker = (*Popularity)(nil)
)

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
