// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/healthrec/internal/models"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// medicineList is the payload of the medicines endpoint.
type medicineList struct {
	Condition string               `json:"condition"`
	Allergies []string             `json:"allergies"`
	Medicines []recommend.Medicine `json:"medicines"`
	Count     int                  `json:"count"`
}

// GraphRecommend handles GET /api/v1/graph/{condition}?k=.
func (h *Handler) GraphRecommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	condition := chi.URLParam(r, "condition")
	k, err := queryInt(r, "k")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), map[string]interface{}{"field": "k"})
		return
	}

	items, meds, err := h.engine.GraphRecommend(r.Context(), condition, k)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if items == nil {
		items = []recommend.ScoredItem{}
	}
	if meds == nil {
		meds = []recommend.Medicine{}
	}
	respondSuccess(w, r, start, models.GraphResponse{
		Condition: condition,
		Items:     items,
		Medicines: meds,
	})
}

// RecommendMedicines handles GET /api/v1/medicines?condition=&allergies=.
func (h *Handler) RecommendMedicines(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	condition := r.URL.Query().Get("condition")
	allergies := splitList(r.URL.Query().Get("allergies"))

	meds, err := h.engine.RecommendMedicines(r.Context(), condition, allergies)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if meds == nil {
		meds = []recommend.Medicine{}
	}
	respondSuccess(w, r, start, medicineList{
		Condition: condition,
		Allergies: allergies,
		Medicines: meds,
		Count:     len(meds),
	})
}
