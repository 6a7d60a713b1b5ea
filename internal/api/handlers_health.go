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

func (h *Handler) healthStatus() models.HealthStatus {
	m := h.engine.GetMetrics()
	ready := h.engine.Ready()
	status := "ok"
	if !ready {
		status = "not_ready"
	}
	return models.HealthStatus{
		Status:         status,
		Ready:          ready,
		CatalogVersion: m.CatalogVersion,
		CatalogItems:   m.CatalogItems,
		Uptime:         time.Since(h.startTime).Round(time.Second).String(),
	}
}

// HealthLive handles GET /api/v1/health/live. The process is alive whenever
// it can answer.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, start, h.healthStatus())
}

// HealthReady handles GET /api/v1/health/ready: 200 once a catalog snapshot
// is published, 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := h.healthStatus()
	if !status.Ready {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   statusError,
			Data:     status,
			Metadata: metadataFor(r, start),
			Error:    &models.APIError{Code: ErrCodeNotReady, Message: "Catalog not loaded yet"},
		})
		return
	}
	respondSuccess(w, r, start, status)
}
