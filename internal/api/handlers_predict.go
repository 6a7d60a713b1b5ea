// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/healthrec/internal/diagnosis"
	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/validation"
)

// predictResponse is the payload of the prediction endpoint.
type predictResponse struct {
	Vitals diagnosis.Vitals `json:"vitals"`
	diagnosis.Prediction
}

// Predict handles GET /api/v1/predict?age=&blood_pressure=&glucose_level=&heart_rate=.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.predictor == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotReady, "Diagnosis predictor disabled", nil)
		return
	}

	var v diagnosis.Vitals
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"age", &v.Age},
		{"blood_pressure", &v.BloodPressure},
		{"glucose_level", &v.Glucose},
		{"heart_rate", &v.HeartRate},
	} {
		val, err := queryFloat(r, f.name)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), map[string]interface{}{"field": f.name})
			return
		}
		*f.dst = val
	}
	if errs := validation.ValidateStruct(&v); errs != nil {
		respondValidation(w, r, errs)
		return
	}

	pred, err := h.predictor.Predict(r.Context(), v)
	if err != nil {
		respondPredictorError(w, r, err)
		return
	}
	respondSuccess(w, r, start, predictResponse{Vitals: v, Prediction: pred})
}

// TrainPredictor handles POST /api/v1/predict/train.
func (h *Handler) TrainPredictor(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.predictor == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotReady, "Diagnosis predictor disabled", nil)
		return
	}

	res, err := h.predictor.Train(r.Context())
	if err != nil {
		respondPredictorError(w, r, err)
		return
	}
	respondSuccess(w, r, start, res)
}

// respondPredictorError maps training data problems onto 503 and read
// failures onto 500.
func respondPredictorError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, diagnosis.ErrNoRecords), errors.Is(err, diagnosis.ErrMissingColumn):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Diagnosis model unavailable")
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotReady, err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, ErrCodeTimeout, "Request timed out", nil)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Diagnosis request failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeStore, "A storage error occurred", nil)
	}
}
