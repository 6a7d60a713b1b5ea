// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package algorithms

import (
	"testing"

	"github.com/tomtom215/healthrec/internal/recommend"
)

// sleepCatalog is the three-item catalog used across ranker tests.
func sleepCatalog() *recommend.Catalog {
	items := []recommend.Item{
		{ID: 1, Title: "sleep aid", Condition: "insomnia", Timeslot: "night", Popularity: 50},
		{ID: 2, Title: "pain relief", Condition: "migraine", Timeslot: "any", Popularity: 10},
		{ID: 3, Title: "sleep tracker", Condition: "insomnia", Timeslot: "morning", Popularity: 5},
	}
	meds := []recommend.Medicine{
		{ID: 10, Name: "Melatonin", ForCondition: "insomnia", Contraindications: "pregnancy"},
		{ID: 11, Name: "Ibuprofen", ForCondition: "migraine", Contraindications: "ulcer,asthma"},
	}
	return recommend.NewCatalog(items, meds)
}

// healthCatalog is a larger catalog with overlapping vocabulary.
func healthCatalog() *recommend.Catalog {
	items := []recommend.Item{
		{ID: 1, Title: "Sleep hygiene basics", Tags: "sleep,insomnia", Description: "Build a bedtime routine", Condition: "insomnia", Popularity: 40},
		{ID: 2, Title: "Low salt diet", Tags: "diet,blood pressure", Description: "Reduce sodium intake", Condition: "hypertension", Popularity: 30},
		{ID: 3, Title: "Insomnia and anxiety", Tags: "insomnia,anxiety", Description: "Calm the mind before bedtime", Condition: "insomnia", Popularity: 20},
		{ID: 4, Title: "Walking for blood pressure", Tags: "exercise,blood pressure", Description: "Daily walking routine", Condition: "hypertension", Popularity: 25},
		{ID: 5, Title: "Breathing exercises", Tags: "anxiety,exercise", Description: "Slow breathing to calm anxiety", Condition: "anxiety", Popularity: 15},
		{ID: 6, Title: "Migraine triggers", Tags: "migraine,headache", Description: "Common headache triggers", Condition: "migraine", Popularity: 10},
	}
	return recommend.NewCatalog(items, nil)
}

func itemIDs(items []recommend.ScoredItem) []int {
	ids := make([]int, len(items))
	for i := range items {
		ids[i] = items[i].Item.ID
	}
	return ids
}

func assertIDs(t *testing.T, got []recommend.ScoredItem, want []int) {
	t.Helper()
	ids := itemIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func assertUnique(t *testing.T, items []recommend.ScoredItem) {
	t.Helper()
	seen := make(map[int]struct{}, len(items))
	for i := range items {
		id := items[i].Item.ID
		if _, dup := seen[id]; dup {
			t.Fatalf("item %d returned twice in %v", id, itemIDs(items))
		}
		seen[id] = struct{}{}
	}
}
