// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package algorithms

import (
	"context"
	"math"
	"sort"

	"github.com/tomtom215/healthrec/internal/recommend"
)

// normEpsilon keeps zero-norm rating rows finite.
const normEpsilon = 1e-9

// Collaborative implements user-based collaborative filtering with cosine
// similarity over a dense user x item rating matrix.
//
// For target user t with normalized rating rows A:
//
//	sim(u)   = A[u] . A[t]        (sim(t) = 0)
//	score(j) = sum(sim(u) * A[u][j] for u in users)
//
// Items the target rated positively are excluded, as are item ids that are
// no longer in the catalog. A user with no ratings gets an empty list.
type Collaborative struct {
	BaseRanker
}

// NewCollaborative creates a collaborative ranker.
func NewCollaborative() *Collaborative {
	return &Collaborative{
		BaseRanker: NewBaseRanker("collaborative"),
	}
}

// Rank ranks by peer ratings from req.Ratings.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (c *Collaborative) Rank(ctx context.Context, cat *recommend.Catalog, req recommend.RankRequest) (recommend.RankResult, error) {
	if ContextCancelled(ctx) {
		return emptyResult(), ctx.Err()
	}
	res := emptyResult()
	res.Items = c.ForUser(cat, req.Ratings, req.UserID, req.K)
	return res, nil
}

// ratingMatrix is a dense user x item matrix with ascending user and item ids.
type ratingMatrix struct {
	users   []int
	items   []int
	userPos map[int]int
	rows    [][]float64
}

// buildMatrix pivots ratings into a dense matrix. A repeated (user, item)
// pair keeps the last value.
func buildMatrix(ratings []recommend.Rating) *ratingMatrix {
	userSet := make(map[int]struct{})
	itemSet := make(map[int]struct{})
	for _, r := range ratings {
		userSet[r.UserID] = struct{}{}
		itemSet[r.ItemID] = struct{}{}
	}

	m := &ratingMatrix{
		users:   sortedKeys(userSet),
		items:   sortedKeys(itemSet),
		userPos: make(map[int]int, len(userSet)),
	}
	itemPos := make(map[int]int, len(m.items))
	for i, id := range m.items {
		itemPos[id] = i
	}
	m.rows = make([][]float64, len(m.users))
	for i, id := range m.users {
		m.userPos[id] = i
		m.rows[i] = make([]float64, len(m.items))
	}
	for _, r := range ratings {
		m.rows[m.userPos[r.UserID]][itemPos[r.ItemID]] = r.Value
	}
	return m
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// ForUser returns at most k items for the user ordered by descending score.
// Ties keep ascending item id.
func (c *Collaborative) ForUser(cat *recommend.Catalog, ratings []recommend.Rating, userID, k int) []recommend.ScoredItem {
	if cat == nil || k <= 0 || len(ratings) == 0 {
		return []recommend.ScoredItem{}
	}

	m := buildMatrix(ratings)
	target, ok := m.userPos[userID]
	if !ok {
		return []recommend.ScoredItem{}
	}

	norm := make([][]float64, len(m.rows))
	for u, row := range m.rows {
		var sq float64
		for _, v := range row {
			sq += v * v
		}
		d := math.Sqrt(sq) + normEpsilon
		norm[u] = make([]float64, len(row))
		for j, v := range row {
			norm[u][j] = v / d
		}
	}

	sims := make([]float64, len(norm))
	for u := range norm {
		if u == target {
			continue
		}
		var dot float64
		for j, v := range norm[u] {
			dot += v * norm[target][j]
		}
		sims[u] = dot
	}

	out := make([]recommend.ScoredItem, 0, len(m.items))
	for j, itemID := range m.items {
		if m.rows[target][j] > 0 {
			continue
		}
		item, ok := cat.ItemByID(itemID)
		if !ok {
			continue
		}
		var score float64
		for u := range norm {
			score += sims[u] * norm[u][j]
		}
		out = append(out, recommend.ScoredItem{
			Item:   item,
			Score:  score,
			Scored: true,
			Scores: map[string]float64{scoreCollaborative: score},
			Reason: "liked by similar users",
		})
	}
	sortByScore(out)
	return truncate(out, k)
}
