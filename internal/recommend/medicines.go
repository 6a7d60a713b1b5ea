// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package recommend

import (
	"strings"

	"github.com/tomtom215/healthrec/internal/recommend/relgraph"
)

// FilterMedicines returns the medicines for a condition, excluding any whose
// contraindications name one of the allergies. Matching is case-insensitive.
func FilterMedicines(medicines []Medicine, condition string, allergies []string) []Medicine {
	want := relgraph.NormalizeCondition(condition)
	blocked := make(map[string]struct{}, len(allergies))
	for _, a := range allergies {
		for _, tok := range strings.Split(a, ",") {
			tok = strings.ToLower(strings.TrimSpace(tok))
			if tok != "" {
				blocked[tok] = struct{}{}
			}
		}
	}

	out := make([]Medicine, 0)
	for _, m := range medicines {
		if relgraph.NormalizeCondition(m.ForCondition) != want {
			continue
		}
		if contraindicated(m, blocked) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func contraindicated(m Medicine, blocked map[string]struct{}) bool {
	if len(blocked) == 0 {
		return false
	}
	for _, tok := range m.ContraindicationTokens() {
		if _, ok := blocked[tok]; ok {
			return true
		}
	}
	return false
}
