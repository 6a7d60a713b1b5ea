// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package cache provides a thread-safe generic LRU cache with TTL support.

The recommendation engine caches catalog search results here, keyed by the
catalog snapshot version, the normalized query and the result size. A catalog
reload changes the version, so stale results are never served; they age out
through the TTL or LRU eviction.

Usage:

	c := cache.NewLRU[string, []recommend.ScoredItem](1000, 5*time.Minute)
	c.Add(key, results)
	if hit, ok := c.Get(key); ok {
	    return hit
	}
*/
package cache
