// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package sqlitestore

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/healthrec/internal/recommend"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "healthrec.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRatingsLastWriteWins(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	writes := []recommend.Rating{
		{UserID: 1, ItemID: 10, Value: 1},
		{UserID: 2, ItemID: 11, Value: 1},
		{UserID: 1, ItemID: 10, Value: -1},
	}
	for _, w := range writes {
		if err := s.Rate(ctx, w.UserID, w.ItemID, w.Value); err != nil {
			t.Fatalf("Rate() error = %v", err)
		}
	}

	got, err := s.AllRatings(ctx)
	if err != nil {
		t.Fatalf("AllRatings() error = %v", err)
	}
	want := []recommend.Rating{{UserID: 1, ItemID: 10, Value: -1}, {UserID: 2, ItemID: 11, Value: 1}}
	if len(got) != len(want) {
		t.Fatalf("AllRatings() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllRatings()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAllRatingsResolvesLegacyColumns(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	// Replace the table with one using legacy column names.
	stmts := []string{
		"DROP TABLE ratings",
		"CREATE TABLE ratings (uid INTEGER, iid INTEGER, score TEXT, note TEXT)",
		"INSERT INTO ratings VALUES (7, 3, '1', 'ok'), (7, 4, 'n/a', NULL)",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}

	got, err := s.AllRatings(ctx)
	if err != nil {
		t.Fatalf("AllRatings() error = %v", err)
	}
	want := []recommend.Rating{{UserID: 7, ItemID: 3, Value: 1}, {UserID: 7, ItemID: 4, Value: 0}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("AllRatings() = %v, want %v", got, want)
	}

	if _, err := s.db.ExecContext(ctx, "ALTER TABLE ratings RENAME COLUMN score TO stars"); err != nil {
		t.Fatalf("rename column: %v", err)
	}
	got, err = s.AllRatings(ctx)
	if err != nil || len(got) != 0 {
		t.Errorf("AllRatings() unresolvable = %v, %v, want empty", got, err)
	}
}

func TestCountersConcurrentIncrement(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := s.Increment(ctx, "hybrid", i%2 == 0); err != nil {
					t.Errorf("Increment() error = %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	counters, err := s.Counters(ctx)
	if err != nil {
		t.Fatalf("Counters() error = %v", err)
	}
	got := counters["hybrid"]
	want := recommend.Counter{Plays: workers * perWorker, Wins: workers * 13}
	if got != want {
		t.Errorf("Counters()[hybrid] = %+v, want %+v", got, want)
	}
	if _, ok := counters["graph"]; ok {
		t.Error("unplayed strategy has a counter row")
	}
}

func TestActivityLog(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := s.Append(ctx, recommend.Activity{
			UserID:    1,
			Type:      recommend.ActivityView,
			ItemID:    i + 1,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Meta:      "hybrid",
		})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 || recent[0].ItemID != 3 || recent[1].ItemID != 2 {
		t.Fatalf("Recent(2) = %+v, want items 3, 2", recent)
	}
	if !recent[0].Timestamp.Equal(base.Add(2*time.Hour)) || recent[0].Meta != "hybrid" {
		t.Errorf("Recent()[0] = %+v", recent[0])
	}

	all, err := s.Recent(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Errorf("Recent(0) = %d entries, %v, want 3", len(all), err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Increment(ctx, "graph", true); err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = s.Close() }()
	counters, err := s.Counters(ctx)
	if err != nil || counters["graph"] != (recommend.Counter{Plays: 1, Wins: 1}) {
		t.Errorf("Counters() after reopen = %v, %v", counters, err)
	}
}
