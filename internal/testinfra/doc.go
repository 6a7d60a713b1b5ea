// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package testinfra starts throwaway containers for integration tests using
// testcontainers-go. Everything except this file carries the integration
// build tag:
//
//	go test -tags integration ./internal/store/redisstore/...
//
// Containers are terminated through t.Cleanup, and tests are skipped when
// Docker is unreachable:
//
//	func TestRedisCounters(t *testing.T) {
//	    rc := testinfra.StartRedis(t)
//	    store, err := redisstore.Open(ctx, redisstore.Config{Addr: rc.Addr})
//	    ...
//	}
package testinfra
