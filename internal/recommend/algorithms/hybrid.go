// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package algorithms

import (
	"context"
	"fmt"

	"github.com/tomtom215/healthrec/internal/recommend"
)

// Hybrid blends the content and collaborative rankings by rank position.
//
// Each source fetches 2K candidates. Rank scores fall linearly from 1 (top)
// to 0 (last) within each source, and an item missing from a source scores
// 0 there:
//
//	final = alpha*contentRank + (1-alpha)*collaborativeRank
//
// Rank-based blending makes the two sources comparable without calibrating
// their raw scores. When only one source has candidates it is returned
// as-is; when neither has any, the popularity fallback is used.
type Hybrid struct {
	BaseRanker
	alpha    float64
	content  *Content
	collab   *Collaborative
	fallback *Popularity
}

// NewHybrid creates a hybrid blender. alpha must lie in [0, 1].
func NewHybrid(alpha float64, content *Content, collab *Collaborative) (*Hybrid, error) {
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: got %f", recommend.ErrInvalidAlpha, alpha)
	}
	if content == nil {
		content = NewContent()
	}
	if collab == nil {
		collab = NewCollaborative()
	}
	return &Hybrid{
		BaseRanker: NewBaseRanker("hybrid"),
		alpha:      alpha,
		content:    content,
		collab:     collab,
		fallback:   NewPopularity(PopularityFallback),
	}, nil
}

// Alpha returns the content weight.
func (h *Hybrid) Alpha() float64 {
	return h.alpha
}

// Rank blends content and collaborative rankings for the request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (h *Hybrid) Rank(ctx context.Context, cat *recommend.Catalog, req recommend.RankRequest) (recommend.RankResult, error) {
	if ContextCancelled(ctx) {
		return emptyResult(), ctx.Err()
	}
	res := emptyResult()
	res.Items = h.Blend(cat, req.Liked, req.Ratings, req.UserID, req.K)
	return res, nil
}

// Blend returns at most k blended items.
func (h *Hybrid) Blend(cat *recommend.Catalog, liked []int, ratings []recommend.Rating, userID, k int) []recommend.ScoredItem {
	if cat == nil || k <= 0 {
		return []recommend.ScoredItem{}
	}

	content := h.content.ForUser(cat, liked, 2*k)
	collab := h.collab.ForUser(cat, ratings, userID, 2*k)

	switch {
	case len(content) == 0 && len(collab) == 0:
		return h.fallback.TopK(cat, k)
	case len(collab) == 0:
		return truncate(content, k)
	case len(content) == 0:
		return truncate(collab, k)
	}

	contentRank := linspace(len(content))
	collabRank := linspace(len(collab))

	type blended struct {
		item recommend.ScoredItem
		c, f float64
	}
	order := make([]int, 0, len(content)+len(collab))
	byID := make(map[int]*blended, len(content)+len(collab))

	for i := range content {
		id := content[i].Item.ID
		if _, dup := byID[id]; dup {
			continue
		}
		byID[id] = &blended{item: content[i], c: contentRank[i]}
		order = append(order, id)
	}
	for i := range collab {
		id := collab[i].Item.ID
		if b, ok := byID[id]; ok {
			b.f = collabRank[i]
			continue
		}
		byID[id] = &blended{item: collab[i], f: collabRank[i]}
		order = append(order, id)
	}

	out := make([]recommend.ScoredItem, 0, len(order))
	for _, id := range order {
		b := byID[id]
		score := h.alpha*b.c + (1-h.alpha)*b.f
		out = append(out, recommend.ScoredItem{
			Item:   b.item.Item,
			Score:  score,
			Scored: true,
			Scores: map[string]float64{
				scoreContent:       b.c,
				scoreCollaborative: b.f,
			},
			Reason: "blended content and peer signals",
		})
	}
	sortByScore(out)
	return truncate(out, k)
}
