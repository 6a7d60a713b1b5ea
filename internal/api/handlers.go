// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/healthrec/internal/diagnosis"
	"github.com/tomtom215/healthrec/internal/models"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// Recommender is the engine surface the handlers use. Satisfied by
// *recommend.Engine.
type Recommender interface {
	Ready() bool
	GetMetrics() recommend.Metrics
	ListCatalog(ctx context.Context) []recommend.Item
	SearchCatalog(ctx context.Context, query string, topK int) ([]recommend.ScoredItem, error)
	SimilarItems(ctx context.Context, itemID, topK int) ([]recommend.ScoredItem, error)
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	RecommendForUser(ctx context.Context, userID, k int, timeOfDay string, strategy recommend.Strategy) (*recommend.Response, error)
	SubmitFeedback(ctx context.Context, fb recommend.Feedback) error
	GraphRecommend(ctx context.Context, condition string, topK int) ([]recommend.ScoredItem, []recommend.Medicine, error)
	RecommendMedicines(ctx context.Context, condition string, allergies []string) ([]recommend.Medicine, error)
	BanditStats(ctx context.Context) ([]recommend.StrategyStats, error)
}

// Analytics computes the analytics endpoints. Satisfied by *analytics.Service.
type Analytics interface {
	KPIs(ctx context.Context) (models.KPISummary, error)
	Items(ctx context.Context) ([]models.ItemPerformance, error)
}

// Predictor serves the diagnosis endpoints. Satisfied by
// *diagnosis.Predictor.
type Predictor interface {
	Trained() bool
	Train(ctx context.Context) (diagnosis.TrainResult, error)
	Predict(ctx context.Context, v diagnosis.Vitals) (diagnosis.Prediction, error)
}

// Handler serves the healthrec HTTP API.
type Handler struct {
	engine    Recommender
	analytics Analytics
	predictor Predictor
	startTime time.Time
}

// NewHandler creates a handler.
func NewHandler(engine Recommender, analytics Analytics) *Handler {
	return &Handler{
		engine:    engine,
		analytics: analytics,
		startTime: time.Now(),
	}
}

// SetPredictor enables the diagnosis endpoints. Without one they answer
// 503.
func (h *Handler) SetPredictor(p Predictor) {
	h.predictor = p
}

var (
	_ Recommender = (*recommend.Engine)(nil)
	_ Predictor   = (*diagnosis.Predictor)(nil)
)
