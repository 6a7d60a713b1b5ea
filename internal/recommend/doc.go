// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package recommend implements the health item and medicine recommendation engine.

# Overview

The engine serves ranked health-information items, and medicines for the
graph strategy, from an immutable catalog snapshot. Four strategies are
available:

  - content: TF-IDF similarity to the items a user liked (max-pooled)
  - collaborative: user-user cosine similarity over the ratings log
  - hybrid: rank-based blend of content and collaborative
  - graph: neighbors of a condition in the condition relatedness graph

Per request a StrategySelector (an epsilon-greedy bandit) picks the strategy
unless the caller pins one. The ranked list then passes through the
registered rerankers, normally the context adjuster, which adds time-of-day
and trend boosts.

# Architecture

	CatalogProvider -> Catalog snapshot (textindex + relgraph) -> atomic publish
	                                   |
	Request -> StrategySelector -> Ranker -> Rerankers -> Response -> EventPublisher
	                                                           |
	Feedback -> RatingsWriter + StrategySelector.Update -> EventPublisher -> ActivityLog

Rankers live in the algorithms subpackage, the context adjuster in reranking
and the selector in bandit. They are registered on the Engine by the caller,
so this package imports none of them.

# Error Handling

Missing data never fails a request: unknown users, unknown liked items,
unknown conditions and unresolvable rating columns all produce empty lists.
Caller misuse returns the sentinel errors in errors.go, wrapped with
context; test for them with errors.Is.

# Thread Safety

Catalog snapshots are immutable and published through an atomic pointer.
Requests keep the snapshot they loaded even if a reload publishes a newer
one. The Engine is safe for concurrent use.
*/
package recommend
