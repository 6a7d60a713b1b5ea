// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package algorithms

import (
	"context"

	"github.com/tomtom215/healthrec/internal/recommend"
)

// Content implements content-based ranking over the catalog TF-IDF index.
//
// A candidate's score is the maximum text similarity between it and any of
// the user's liked items (max-pooling):
//
//	score(j) = max(0, sim(l, j) for l in liked)
//
// so adding liked items can only raise a candidate's score. Liked items are
// excluded from the result. Unknown liked ids are skipped.
//
// Users with no liked items get the popularity cold-start list instead.
type Content struct {
	BaseRanker
	coldStart *Popularity
}

// NewContent creates a content ranker.
func NewContent() *Content {
	return &Content{
		BaseRanker: NewBaseRanker("content"),
		coldStart:  NewPopularity(PopularityColdStart),
	}
}

// Rank ranks by similarity to req.Liked.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (c *Content) Rank(ctx context.Context, cat *recommend.Catalog, req recommend.RankRequest) (recommend.RankResult, error) {
	if ContextCancelled(ctx) {
		return emptyResult(), ctx.Err()
	}
	res := emptyResult()
	res.Items = c.ForUser(cat, req.Liked, req.K)
	return res, nil
}

// ForUser returns at most k items ordered by max-pooled similarity to the
// liked items. Ties keep catalog order.
func (c *Content) ForUser(cat *recommend.Catalog, liked []int, k int) []recommend.ScoredItem {
	if cat == nil || k <= 0 || cat.Len() == 0 {
		return []recommend.ScoredItem{}
	}
	if len(liked) == 0 {
		return c.coldStart.TopK(cat, k)
	}

	scores := make([]float64, cat.Len())
	for _, id := range liked {
		pos, ok := cat.Position(id)
		if !ok {
			continue
		}
		for j, s := range cat.Index.SimilarityRow(pos) {
			if s > scores[j] {
				scores[j] = s
			}
		}
	}

	exclude := idSet(liked)
	out := make([]recommend.ScoredItem, 0, cat.Len())
	for j := range cat.Items {
		item := cat.Items[j]
		if _, skip := exclude[item.ID]; skip {
			continue
		}
		out = append(out, recommend.ScoredItem{
			Item:   item,
			Score:  scores[j],
			Scored: true,
			Scores: map[string]float64{scoreContent: scores[j]},
			Reason: "similar to items you liked",
		})
	}
	sortByScore(out)
	return truncate(out, k)
}

// Similar returns at most k items ordered by similarity to one item.
// An item that is not in the catalog has no similar items.
func (c *Content) Similar(cat *recommend.Catalog, itemID, k int) []recommend.ScoredItem {
	if cat == nil {
		return []recommend.ScoredItem{}
	}
	if _, ok := cat.Position(itemID); !ok {
		return []recommend.ScoredItem{}
	}
	return c.ForUser(cat, []int{itemID}, k)
}
