// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package algorithms

import (
	"context"

	"github.com/tomtom215/healthrec/internal/recommend"
)

// Graph ranks the items and medicines linked to a condition in the catalog
// relatedness graph. Neighbors are ordered by node degree, so medicines that
// treat several conditions come first.
//
// Graph candidates carry no relevance score; Scored is false and the node
// degree is recorded under Scores["degree"].
type Graph struct {
	BaseRanker
	defaultCondition string
}

// NewGraph creates a graph ranker. defaultCondition is used when a request
// names no condition.
func NewGraph(defaultCondition string) *Graph {
	return &Graph{
		BaseRanker:       NewBaseRanker("graph"),
		defaultCondition: defaultCondition,
	}
}

// Rank returns the neighbors of req.Condition.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (g *Graph) Rank(ctx context.Context, cat *recommend.Catalog, req recommend.RankRequest) (recommend.RankResult, error) {
	if ContextCancelled(ctx) {
		return emptyResult(), ctx.Err()
	}
	cond := req.Condition
	if cond == "" {
		cond = g.defaultCondition
	}
	items, meds := g.Related(cat, cond, req.K)
	return recommend.RankResult{Items: items, Medicines: meds}, nil
}

// Related returns at most k items and at most k medicines linked to the
// condition. An unknown condition returns two empty lists.
func (g *Graph) Related(cat *recommend.Catalog, condition string, k int) ([]recommend.ScoredItem, []recommend.Medicine) {
	items := []recommend.ScoredItem{}
	meds := []recommend.Medicine{}
	if cat == nil || cat.Graph == nil {
		return items, meds
	}

	itemNodes, medNodes := cat.Graph.Related(condition, k)
	for _, n := range itemNodes {
		item, ok := cat.ItemByID(n.ID)
		if !ok {
			continue
		}
		items = append(items, recommend.ScoredItem{
			Item:   item,
			Scores: map[string]float64{scoreDegree: float64(n.Degree)},
			Reason: "related to " + condition,
		})
	}
	for _, n := range medNodes {
		if m, ok := cat.MedicineByID(n.ID); ok {
			meds = append(meds, m)
		}
	}
	return items, meds
}
