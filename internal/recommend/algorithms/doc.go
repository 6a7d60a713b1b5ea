// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package algorithms implements the rankers registered on recommend.Engine.
//
// # Rankers
//
//   - Content: TF-IDF cosine similarity to the liked items, max-pooled per
//     candidate. Cold-start users get the most popular items.
//   - Collaborative: user-user cosine similarity over a ratings log. Peers
//     with similarity <= 0 are ignored.
//   - Hybrid: min-max normalizes the content and collaborative lists (or
//     their ranks when unscored) and blends them with weight alpha.
//   - Graph: items and medicines linked to a condition in the catalog's
//     relatedness graph.
//   - Popularity: catalog popularity, used as the cold-start fallback.
//
// # Determinism
//
// Every ranker is deterministic for a given catalog, request and ratings
// log. Ties keep catalog order.
//
// # Thread Safety
//
// Rankers hold no per-request state and are safe for concurrent use.
//
// # Example
//
//	content := algorithms.NewContent()
//	collab := algorithms.NewCollaborative()
//	hybrid, err := algorithms.NewHybrid(0.6, content, collab)
//	if err != nil {
//	    return err
//	}
//	engine.RegisterRanker(recommend.StrategyContent, content)
//	engine.RegisterRanker(recommend.StrategyCollaborative, collab)
//	engine.RegisterRanker(recommend.StrategyHybrid, hybrid)
//	engine.RegisterRanker(recommend.StrategyGraph, algorithms.NewGraph("general"))
package algorithms
