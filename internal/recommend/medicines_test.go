// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package recommend

import "testing"

func TestFilterMedicines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		condition string
		allergies []string
		want      []int
	}{
		{name: "no allergies", condition: "migraine", want: []int{11, 12}},
		{name: "case-insensitive condition", condition: " Migraine", want: []int{11, 12}},
		{name: "allergy excludes", condition: "migraine", allergies: []string{"asthma"}, want: []int{12}},
		{name: "allergy tokens are trimmed and lowered", condition: "migraine", allergies: []string{" ULCER "}, want: []int{12}},
		{name: "comma-joined allergies", condition: "migraine", allergies: []string{"asthma, liver disease"}, want: []int{}},
		{name: "partial token does not match", condition: "migraine", allergies: []string{"liver"}, want: []int{11, 12}},
		{name: "other condition untouched", condition: "insomnia", allergies: []string{"asthma"}, want: []int{10}},
		{name: "unknown condition", condition: "gout", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterMedicines(testMedicines(), tt.condition, tt.allergies)
			if got == nil {
				t.Fatal("FilterMedicines() = nil, want non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("FilterMedicines() = %+v, want ids %v", got, tt.want)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("FilterMedicines()[%d].ID = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestContraindicationTokens(t *testing.T) {
	t.Parallel()

	m := Medicine{Contraindications: "Ulcer, Asthma ,kidney"}
	got := m.ContraindicationTokens()
	want := []string{"ulcer", "asthma", "kidney"}
	if len(got) != len(want) {
		t.Fatalf("ContraindicationTokens() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ContraindicationTokens()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if toks := (Medicine{}).ContraindicationTokens(); len(toks) != 0 {
		t.Errorf("empty ContraindicationTokens() = %v, want none", toks)
	}
}
