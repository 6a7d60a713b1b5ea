// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/models"
	"github.com/tomtom215/healthrec/internal/recommend"
	"github.com/tomtom215/healthrec/internal/validation"
)

// userQuery holds the query parameters of the stored-user endpoint.
type userQuery struct {
	UserID   int    `json:"userID" validate:"gte=0"`
	K        int    `json:"k" validate:"gte=0,lte=100"`
	Time     string `json:"time" validate:"omitempty,oneof=morning afternoon evening night any"`
	Strategy string `json:"strategy" validate:"omitempty,strategy"`
}

func respondValidation(w http.ResponseWriter, r *http.Request, errs validation.Errors) {
	respondError(w, r, http.StatusBadRequest, ErrCodeValidation, errs.Error(), errs.Details())
}

// RecommendForUser handles GET /api/v1/recommendations/user/{userID}.
func (h *Handler) RecommendForUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, err := pathInt(r, "userID")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), map[string]interface{}{"field": "userID"})
		return
	}
	k, err := queryInt(r, "k")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), map[string]interface{}{"field": "k"})
		return
	}

	q := userQuery{
		UserID:   userID,
		K:        k,
		Time:     r.URL.Query().Get("time"),
		Strategy: r.URL.Query().Get("strategy"),
	}
	if errs := validation.ValidateStruct(&q); errs != nil {
		respondValidation(w, r, errs)
		return
	}

	var strategy recommend.Strategy
	if q.Strategy != "" {
		// Validated above.
		strategy, _ = recommend.ParseStrategy(q.Strategy)
	}

	resp, err := h.engine.RecommendForUser(r.Context(), q.UserID, q.K, q.Time, strategy)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, start, resp)
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var body models.RecommendationRequest
	if err := decodeBody(w, r, &body); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if errs := validation.ValidateStruct(&body); errs != nil {
		respondValidation(w, r, errs)
		return
	}

	req := recommend.Request{
		UserID:     body.UserID,
		LikedItems: body.LikedItems,
		K:          body.K,
		TimeOfDay:  body.TimeOfDay,
		RequestID:  logging.RequestIDFromContext(r.Context()),
	}
	if body.Strategy != "" {
		req.Strategy, _ = recommend.ParseStrategy(body.Strategy)
	}
	if len(body.Ratings) > 0 {
		req.Ratings = make([]recommend.Rating, len(body.Ratings))
		for i, in := range body.Ratings {
			req.Ratings[i] = recommend.Rating{UserID: in.UserID, ItemID: in.ItemID, Value: in.Rating}
		}
	}

	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, start, resp)
}

// feedbackAck is the payload of a recorded feedback.
type feedbackAck struct {
	Recorded bool   `json:"recorded"`
	UserID   int    `json:"user_id"`
	ItemID   int    `json:"item_id"`
	Action   string `json:"action"`
}

// SubmitFeedback handles POST /api/v1/feedback.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var body models.FeedbackRequest
	if err := decodeBody(w, r, &body); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if errs := validation.ValidateStruct(&body); errs != nil {
		respondValidation(w, r, errs)
		return
	}

	fb := recommend.Feedback{
		UserID:   body.UserID,
		ItemID:   body.ItemID,
		Strategy: recommend.Strategy(body.Strategy),
		Action:   recommend.ActivityType(body.Action),
	}
	if err := h.engine.SubmitFeedback(r.Context(), fb); err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, start, feedbackAck{
		Recorded: true,
		UserID:   body.UserID,
		ItemID:   body.ItemID,
		Action:   body.Action,
	})
}
