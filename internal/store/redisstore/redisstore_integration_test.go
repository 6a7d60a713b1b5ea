// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

//go:build integration

package redisstore

import (
	"context"
	"sync"
	"testing"

	"github.com/tomtom215/healthrec/internal/recommend"
	"github.com/tomtom215/healthrec/internal/testinfra"
)

func TestRedisCountersIntegration(t *testing.T) {
	rc := testinfra.StartRedis(t)
	ctx := context.Background()

	s, err := Open(ctx, Config{Addr: rc.Addr, KeyPrefix: "test"})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = s.Close() }()

	t.Run("graph twice", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := s.Increment(ctx, "graph", true); err != nil {
				t.Fatalf("Increment() error = %v", err)
			}
		}
		counters, err := s.Counters(ctx)
		if err != nil {
			t.Fatalf("Counters() error = %v", err)
		}
		if counters["graph"] != (recommend.Counter{Plays: 2, Wins: 2}) {
			t.Errorf("Counters()[graph] = %+v, want {2 2}", counters["graph"])
		}
	})

	t.Run("concurrent increments", func(t *testing.T) {
		const workers, perWorker = 8, 50
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					if err := s.Increment(ctx, "hybrid", i%2 == 0); err != nil {
						t.Errorf("Increment() error = %v", err)
						return
					}
				}
			}()
		}
		wg.Wait()

		counters, err := s.Counters(ctx)
		if err != nil {
			t.Fatalf("Counters() error = %v", err)
		}
		want := recommend.Counter{Plays: workers * perWorker, Wins: workers * perWorker / 2}
		if counters["hybrid"] != want {
			t.Errorf("Counters()[hybrid] = %+v, want %+v", counters["hybrid"], want)
		}
	})
}
