// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/healthrec/internal/recommend"
)

// itemList is the payload of the catalog endpoints.
type itemList struct {
	Items []recommend.Item `json:"items"`
	Count int              `json:"count"`
}

// scoredList is the payload of ranked item endpoints.
type scoredList struct {
	Items []recommend.ScoredItem `json:"items"`
	Count int                    `json:"count"`
}

func newScoredList(items []recommend.ScoredItem) scoredList {
	if items == nil {
		items = []recommend.ScoredItem{}
	}
	return scoredList{Items: items, Count: len(items)}
}

// ListCatalog handles GET /api/v1/catalog.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items := h.engine.ListCatalog(r.Context())
	respondSuccess(w, r, start, itemList{Items: items, Count: len(items)})
}

// SearchCatalog handles GET /api/v1/catalog/search?q=&k=.
func (h *Handler) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	k, err := queryInt(r, "k")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), map[string]interface{}{"field": "k"})
		return
	}

	items, err := h.engine.SearchCatalog(r.Context(), r.URL.Query().Get("q"), k)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, start, newScoredList(items))
}

// SimilarItems handles GET /api/v1/catalog/{itemID}/similar?k=.
func (h *Handler) SimilarItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	itemID, err := pathInt(r, "itemID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), map[string]interface{}{"field": "itemID"})
		return
	}
	k, err := queryInt(r, "k")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), map[string]interface{}{"field": "k"})
		return
	}

	items, err := h.engine.SimilarItems(r.Context(), itemID, k)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, start, newScoredList(items))
}
