// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/healthrec/internal/recommend"
)

func TestFileProvider(t *testing.T) {
	t.Parallel()
	p, err := NewFileProvider(filepath.Join("testdata", "catalog.yaml"))
	if err != nil {
		t.Fatalf("NewFileProvider() error = %v", err)
	}
	ctx := context.Background()

	items, err := p.Items(ctx)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	want := []recommend.Item{
		{ID: 1, Title: "Sleep hygiene basics", Tags: "sleep", Description: "Build a bedtime routine", Condition: "insomnia", Timeslot: "night", Popularity: 40},
		{ID: 2, Title: "Low salt diet", Tags: "diet", Description: "Reduce sodium intake", Condition: "hypertension", Popularity: 30},
	}
	if len(items) != len(want) {
		t.Fatalf("Items() = %+v, want %+v", items, want)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("Items()[%d] = %+v, want %+v", i, items[i], want[i])
		}
	}

	meds, err := p.Medicines(ctx)
	if err != nil {
		t.Fatalf("Medicines() error = %v", err)
	}
	wantMed := recommend.Medicine{ID: 10, Name: "Melatonin", ForCondition: "insomnia", Contraindications: "pregnancy", Description: "Sleep hormone"}
	if len(meds) != 1 || meds[0] != wantMed {
		t.Errorf("Medicines() = %+v, want [%+v]", meds, wantMed)
	}
}

func TestFileProviderReloadsOnChange(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	write := func(body string, mod time.Time) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	write("items:\n  - id: 1\n    title: First\n", base)

	p, _ := NewFileProvider(path)
	ctx := context.Background()
	items, err := p.Items(ctx)
	if err != nil || len(items) != 1 || items[0].Title != "First" {
		t.Fatalf("Items() = %+v, %v", items, err)
	}

	meds, err := p.Medicines(ctx)
	if err != nil || meds == nil || len(meds) != 0 {
		t.Errorf("Medicines() = %v, %v, want empty", meds, err)
	}

	write("items:\n  - id: 1\n    title: Second\n  - id: 2\n    title: Third\n", base.Add(time.Hour))
	items, err = p.Items(ctx)
	if err != nil {
		t.Fatalf("Items() after change error = %v", err)
	}
	if len(items) != 2 || items[0].Title != "Second" {
		t.Errorf("Items() after change = %+v", items)
	}
}

func TestFileProviderErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	if _, err := NewFileProvider(""); !errors.Is(err, ErrNoPath) {
		t.Errorf("NewFileProvider(\"\") error = %v, want ErrNoPath", err)
	}

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed yaml", body: "items: [\n"},
		{name: "no id column", body: "items:\n  - title: Nameless\n"},
		{name: "medicines without id", body: "medicines:\n  - name: Aspirin\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			p, _ := NewFileProvider(path)
			_, itemsErr := p.Items(ctx)
			_, medsErr := p.Medicines(ctx)
			if itemsErr == nil || medsErr == nil {
				t.Errorf("Items(), Medicines() errors = %v, %v, want both non-nil", itemsErr, medsErr)
			}
		})
	}

	missing, _ := NewFileProvider(filepath.Join(dir, "missing.yaml"))
	if _, err := missing.Items(ctx); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Items() on missing file error = %v, want os.ErrNotExist", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	p, _ := NewFileProvider(filepath.Join("testdata", "catalog.yaml"))
	if _, err := p.Items(canceled); !errors.Is(err, context.Canceled) {
		t.Errorf("Items(canceled) error = %v, want context.Canceled", err)
	}
}
