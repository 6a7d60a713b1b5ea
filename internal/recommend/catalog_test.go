// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package recommend

import (
	"testing"
)

func testItems() []Item {
	return []Item{
		{ID: 1, Title: "sleep aid", Condition: "insomnia", Timeslot: "night", Popularity: 50},
		{ID: 2, Title: "pain relief", Condition: "migraine", Timeslot: "any", Popularity: 10},
		{ID: 3, Title: "sleep tracker", Condition: "Insomnia ", Timeslot: "morning", Popularity: 5},
	}
}

func testMedicines() []Medicine {
	return []Medicine{
		{ID: 10, Name: "Melatonin", ForCondition: "insomnia", Contraindications: "pregnancy"},
		{ID: 11, Name: "Ibuprofen", ForCondition: "migraine", Contraindications: "ulcer, Asthma"},
		{ID: 12, Name: "Paracetamol", ForCondition: "migraine", Contraindications: "liver disease"},
	}
}

func TestNewCatalogDeduplicatesItems(t *testing.T) {
	t.Parallel()

	items := append(testItems(), Item{ID: 1, Title: "duplicate"})
	cat := NewCatalog(items, testMedicines())

	if cat.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", cat.Len())
	}
	it, ok := cat.ItemByID(1)
	if !ok || it.Title != "sleep aid" {
		t.Errorf("ItemByID(1) = %+v, %v, want first occurrence", it, ok)
	}
	if pos, ok := cat.Position(3); !ok || pos != 2 {
		t.Errorf("Position(3) = %d, %v, want 2, true", pos, ok)
	}
	if _, ok := cat.ItemByID(99); ok {
		t.Error("ItemByID(99) ok = true, want false")
	}
	if m, ok := cat.MedicineByID(11); !ok || m.Name != "Ibuprofen" {
		t.Errorf("MedicineByID(11) = %+v, %v", m, ok)
	}
	if cat.Index.Len() != 3 {
		t.Errorf("Index.Len() = %d, want 3", cat.Index.Len())
	}
	if _, ok := cat.VectorOf(99); ok {
		t.Error("VectorOf(99) ok = true, want false")
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := Fingerprint(testItems(), testMedicines())
	b := Fingerprint(testItems(), testMedicines())
	if a != b {
		t.Errorf("Fingerprint() not deterministic: %s != %s", a, b)
	}

	changed := testItems()
	changed[1].Popularity++
	if c := Fingerprint(changed, testMedicines()); c == a {
		t.Error("Fingerprint() unchanged after popularity edit")
	}

	// Field boundaries are length-prefixed.
	x := Fingerprint([]Item{{ID: 1, Title: "ab", Tags: "c"}}, nil)
	y := Fingerprint([]Item{{ID: 1, Title: "a", Tags: "bc"}}, nil)
	if x == y {
		t.Error("Fingerprint() collides on shifted field boundary")
	}
}

func TestCatalogSearch(t *testing.T) {
	t.Parallel()

	cat := NewCatalog(testItems(), nil)

	tests := []struct {
		name  string
		query string
		k     int
		want  []int
	}{
		{name: "substring match", query: "sleep", k: 5, want: []int{1, 3}},
		{name: "case-insensitive", query: "SLEEP", k: 5, want: []int{1, 3}},
		{name: "truncated to k", query: "sleep", k: 1, want: []int{1}},
		{name: "partial word", query: "trac", k: 5, want: []int{3}},
		{name: "no match", query: "diabetes", k: 5, want: []int{}},
		{name: "empty query", query: "", k: 5, want: []int{}},
		{name: "whitespace query", query: "   ", k: 5, want: []int{}},
		{name: "zero k", query: "sleep", k: 0, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cat.Search(tt.query, tt.k)
			if got == nil {
				t.Fatal("Search() = nil, want non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q, %d) returned %d items, want %d", tt.query, tt.k, len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].Item.ID != id {
					t.Errorf("Search(%q)[%d] = %d, want %d", tt.query, i, got[i].Item.ID, id)
				}
				if got[i].Score < 0 || got[i].Score > 1 {
					t.Errorf("Search(%q)[%d].Score = %f, want in [0,1]", tt.query, i, got[i].Score)
				}
			}
		})
	}
}

func TestPopularityRange(t *testing.T) {
	t.Parallel()

	lo, hi := PopularityRange(nil)
	if lo != 0 || hi != 0 {
		t.Errorf("PopularityRange(nil) = %v, %v, want 0, 0", lo, hi)
	}

	items := []ScoredItem{
		{Item: Item{Popularity: 7}},
		{Item: Item{Popularity: 2}},
		{Item: Item{Popularity: 9}},
	}
	lo, hi = PopularityRange(items)
	if lo != 2 || hi != 9 {
		t.Errorf("PopularityRange() = %v, %v, want 2, 9", lo, hi)
	}
}

func TestDominantCondition(t *testing.T) {
	t.Parallel()

	cat := NewCatalog(testItems(), testMedicines())

	tests := []struct {
		name   string
		liked  []int
		want   string
		wantOK bool
	}{
		{name: "normalized majority", liked: []int{1, 3, 2}, want: "insomnia", wantOK: true},
		{name: "tie goes to smallest name", liked: []int{2, 1}, want: "insomnia", wantOK: true},
		{name: "single", liked: []int{2}, want: "migraine", wantOK: true},
		{name: "unknown ids ignored", liked: []int{99, 2}, want: "migraine", wantOK: true},
		{name: "none in catalog", liked: []int{99}, wantOK: false},
		{name: "empty", liked: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cat.DominantCondition(tt.liked)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("DominantCondition(%v) = %q, %v, want %q, %v", tt.liked, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
