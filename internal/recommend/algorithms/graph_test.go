// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package algorithms

import (
	"context"
	"testing"

	"github.com/tomtom215/healthrec/internal/recommend"
)

func TestGraph_Related(t *testing.T) {
	t.Parallel()

	g := NewGraph("hypertension")
	cat := sleepCatalog()

	tests := []struct {
		name      string
		condition string
		k         int
		wantItems []int
		wantMeds  []int
	}{
		{name: "insomnia", condition: "insomnia", k: 5, wantItems: []int{1, 3}, wantMeds: []int{10}},
		{name: "case insensitive", condition: "Migraine", k: 5, wantItems: []int{2}, wantMeds: []int{11}},
		{name: "truncated", condition: "insomnia", k: 1, wantItems: []int{1}, wantMeds: []int{10}},
		{name: "unknown", condition: "gout", k: 5, wantItems: []int{}, wantMeds: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, meds := g.Related(cat, tt.condition, tt.k)
			if items == nil || meds == nil {
				t.Fatal("Related() returned nil, want empty slices")
			}
			assertIDs(t, items, tt.wantItems)
			if len(meds) != len(tt.wantMeds) {
				t.Fatalf("len(meds) = %d, want %d", len(meds), len(tt.wantMeds))
			}
			for i := range meds {
				if meds[i].ID != tt.wantMeds[i] {
					t.Errorf("meds[%d] = %d, want %d", i, meds[i].ID, tt.wantMeds[i])
				}
			}
			for i := range items {
				if items[i].Scored {
					t.Errorf("item %d Scored = true, want false", items[i].Item.ID)
				}
				if items[i].Scores["degree"] != 1 {
					t.Errorf("item %d degree = %v, want 1", items[i].Item.ID, items[i].Scores["degree"])
				}
			}
		})
	}
}

func TestGraph_RankDefaultCondition(t *testing.T) {
	t.Parallel()

	g := NewGraph("migraine")
	res, err := g.Rank(context.Background(), sleepCatalog(), recommend.RankRequest{K: 5})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	assertIDs(t, res.Items, []int{2})
	if len(res.Medicines) != 1 || res.Medicines[0].ID != 11 {
		t.Errorf("Medicines = %v, want [11]", res.Medicines)
	}

	res, err = g.Rank(context.Background(), sleepCatalog(), recommend.RankRequest{K: 5, Condition: "insomnia"})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	assertIDs(t, res.Items, []int{1, 3})
}
