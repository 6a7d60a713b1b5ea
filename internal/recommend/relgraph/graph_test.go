// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package relgraph

import (
	"testing"
)

func testGraph() *Graph {
	items := []Link{
		{ID: 3, Condition: "insomnia"},
		{ID: 1, Condition: "hypertension"},
		{ID: 2, Condition: "Insomnia"},
		{ID: 4, Condition: ""},
	}
	meds := []Link{
		{ID: 10, Condition: "insomnia"},
		{ID: 11, Condition: "hypertension"},
		// Medicine 12 treats two conditions, so its degree is 2.
		{ID: 12, Condition: "insomnia"},
		{ID: 12, Condition: "anxiety"},
	}
	return Build(items, meds)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	g := testGraph()

	nodes, edges := g.Stats()
	// 3 conditions + 3 items + 3 medicines
	if nodes != 9 {
		t.Errorf("nodes = %d, want 9", nodes)
	}
	if edges != 7 {
		t.Errorf("edges = %d, want 7", edges)
	}
	if got := g.Degree(KindItem, 4); got != 0 {
		t.Errorf("Degree(item:4) = %d, want 0 (empty condition skipped)", got)
	}
	if got := g.Degree(KindMedicine, 12); got != 2 {
		t.Errorf("Degree(med:12) = %d, want 2", got)
	}

	conds := g.Conditions()
	want := []string{"anxiety", "hypertension", "insomnia"}
	if len(conds) != len(want) {
		t.Fatalf("Conditions() = %v, want %v", conds, want)
	}
	for i := range want {
		if conds[i] != want[i] {
			t.Errorf("Conditions()[%d] = %q, want %q", i, conds[i], want[i])
		}
	}
}

func TestGraph_Neighbors(t *testing.T) {
	t.Parallel()

	g := testGraph()

	got := g.Neighbors("INSOMNIA ")
	want := []string{"med:12", "item:2", "item:3", "med:10"}
	if len(got) != len(want) {
		t.Fatalf("len(Neighbors) = %d, want %d", len(got), len(want))
	}
	for i, n := range got {
		if n.Key() != want[i] {
			t.Errorf("Neighbors[%d] = %s, want %s", i, n.Key(), want[i])
		}
	}
}

func TestGraph_Related(t *testing.T) {
	t.Parallel()

	g := testGraph()

	tests := []struct {
		name      string
		condition string
		k         int
		wantItems []int
		wantMeds  []int
	}{
		{name: "all", condition: "insomnia", k: 5, wantItems: []int{2, 3}, wantMeds: []int{12, 10}},
		{name: "truncated", condition: "insomnia", k: 1, wantItems: []int{2}, wantMeds: []int{12}},
		{name: "unknown condition", condition: "gout", k: 5, wantItems: nil, wantMeds: nil},
		{name: "zero k", condition: "insomnia", k: 0, wantItems: nil, wantMeds: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			items, meds := g.Related(tt.condition, tt.k)
			if items == nil || meds == nil {
				t.Fatal("Related() returned nil slices, want empty")
			}
			if len(items) != len(tt.wantItems) {
				t.Fatalf("len(items) = %d, want %d", len(items), len(tt.wantItems))
			}
			for i, n := range items {
				if n.ID != tt.wantItems[i] || n.Kind != KindItem {
					t.Errorf("items[%d] = %s, want item:%d", i, n.Key(), tt.wantItems[i])
				}
			}
			if len(meds) != len(tt.wantMeds) {
				t.Fatalf("len(meds) = %d, want %d", len(meds), len(tt.wantMeds))
			}
			for i, n := range meds {
				if n.ID != tt.wantMeds[i] || n.Kind != KindMedicine {
					t.Errorf("meds[%d] = %s, want med:%d", i, n.Key(), tt.wantMeds[i])
				}
			}
		})
	}
}

func TestGraph_HasCondition(t *testing.T) {
	t.Parallel()

	g := testGraph()
	if !g.HasCondition("Hypertension") {
		t.Error("HasCondition(Hypertension) = false, want true")
	}
	if g.HasCondition("") {
		t.Error("HasCondition(\"\") = true, want false")
	}
}
