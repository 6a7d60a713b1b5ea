// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package reranking implements post-processing of ranked recommendation lists.
//
// Rerankers run after the ranker chosen for a request:
//
//	Ranker -> ranked list -> Rerankers -> Response
//
// ContextAdjuster is the only reranker. It adds a time-of-day boost for items
// whose timeslot matches the request and a trend boost proportional to the
// item's popularity within the list, then re-sorts. It never adds or removes
// candidates.
package reranking
