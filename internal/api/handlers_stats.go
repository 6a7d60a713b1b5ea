// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/healthrec/internal/models"
)

// BanditStats handles GET /api/v1/bandit/stats.
func (h *Handler) BanditStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats, err := h.engine.BanditStats(r.Context())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, start, map[string]interface{}{
		"strategies": stats,
		"engine":     h.engine.GetMetrics(),
	})
}

// AnalyticsKPIs handles GET /api/v1/analytics/kpis.
func (h *Handler) AnalyticsKPIs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	kpis, err := h.analytics.KPIs(r.Context())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, start, kpis)
}

// AnalyticsItems handles GET /api/v1/analytics/items.
func (h *Handler) AnalyticsItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items, err := h.analytics.Items(r.Context())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if items == nil {
		items = []models.ItemPerformance{}
	}
	respondSuccess(w, r, start, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}
