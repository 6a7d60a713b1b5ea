// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package badgerstore

import (
	"context"
	"sync"
	"testing"

	"github.com/tomtom215/healthrec/internal/recommend"
)

func openTestStore(t *testing.T, cfg Config) *Store {
	t.Helper()
	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestIncrementAndCounters(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, Config{InMemory: true})
	ctx := context.Background()

	for _, won := range []bool{true, true} {
		if err := s.Increment(ctx, "graph", won); err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
	}
	if err := s.Increment(ctx, "content", false); err != nil {
		t.Fatalf("Increment() error = %v", err)
	}

	got, err := s.Counters(ctx)
	if err != nil {
		t.Fatalf("Counters() error = %v", err)
	}
	want := map[string]recommend.Counter{
		"graph":   {Plays: 2, Wins: 2},
		"content": {Plays: 1, Wins: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("Counters() = %v, want %v", got, want)
	}
	for name, c := range want {
		if got[name] != c {
			t.Errorf("Counters()[%s] = %+v, want %+v", name, got[name], c)
		}
	}
}

func TestConcurrentIncrementLosesNoUpdates(t *testing.T) {
	t.Parallel()
	s := openTestStore(t, Config{InMemory: true})
	ctx := context.Background()

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := s.Increment(ctx, "hybrid", true); err != nil {
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
	want := recommend.Counter{Plays: workers * perWorker, Wins: workers * perWorker}
	if counters["hybrid"] != want {
		t.Errorf("Counters()[hybrid] = %+v, want %+v", counters["hybrid"], want)
	}
}

func TestReopenKeepsCounters(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(Config{Path: dir, SyncWrites: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Increment(ctx, "collaborative", true); err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s = openTestStore(t, Config{Path: dir})
	counters, err := s.Counters(ctx)
	if err != nil {
		t.Fatalf("Counters() error = %v", err)
	}
	if counters["collaborative"] != (recommend.Counter{Plays: 1, Wins: 1}) {
		t.Errorf("Counters() after reopen = %v", counters)
	}
}
