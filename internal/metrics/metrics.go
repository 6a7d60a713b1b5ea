// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthrec_recommendations_total",
			Help: "Total number of recommendation lists served",
		},
		[]string{"strategy"},
	)

	RecommendationsExplored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthrec_recommendations_explored_total",
			Help: "Recommendation lists whose strategy was picked by exploration",
		},
		[]string{"strategy"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healthrec_recommendation_duration_seconds",
			Help:    "Time to rank and rerank one recommendation list",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}, // In-memory ranking is sub-millisecond
		},
		[]string{"strategy"},
	)

	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthrec_feedback_total",
			Help: "Total number of bandit feedback updates",
		},
		[]string{"strategy", "outcome"}, // outcome: "win", "loss"
	)

	// Catalog Metrics
	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthrec_catalog_reloads_total",
			Help: "Total number of catalog reload attempts",
		},
		[]string{"result"}, // result: "published", "unchanged", "error"
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "healthrec_catalog_items",
			Help: "Number of items in the published catalog snapshot",
		},
	)

	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthrec_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healthrec_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "healthrec_http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthrec_http_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"route"},
	)

	// Event Pipeline Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthrec_events_published_total",
			Help: "Total number of engine events published",
		},
		[]string{"topic", "result"}, // result: "success", "error"
	)

	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthrec_events_processed_total",
			Help: "Total number of events handled by the event router",
		},
		[]string{"handler", "result"},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healthrec_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthrec_store_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"backend", "operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Diagnosis Metrics
	DiagnosisPredictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthrec_diagnosis_predictions_total",
			Help: "Total number of diagnosis predictions by predicted label",
		},
		[]string{"diagnosis"},
	)

	DiagnosisModelAccuracy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "healthrec_diagnosis_model_accuracy",
			Help: "Accuracy of the served diagnosis model on its evaluation set",
		},
	)

	DiagnosisModelLabels = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "healthrec_diagnosis_model_labels",
			Help: "Number of diagnoses the served model distinguishes",
		},
	)

	// Scheduler Metrics
	CatalogRefreshLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "healthrec_catalog_refresh_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled catalog refresh",
		},
	)
)

// RecordAPIRequest records an HTTP request metric
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOperation records the duration and outcome of a store call
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(backend, operation).Inc()
	}
}

// RecordEventPublished records one publish attempt on a topic
func RecordEventPublished(topic string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	EventsPublished.WithLabelValues(topic, result).Inc()
}

// RecordEventProcessed records one handler invocation of the event router
func RecordEventProcessed(handler string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	EventsProcessed.WithLabelValues(handler, result).Inc()
}

// EngineObserver forwards recommendation engine measurements to Prometheus.
// It satisfies recommend.Observer.
type EngineObserver struct{}

// ObserveRecommendation records a served list
func (EngineObserver) ObserveRecommendation(strategy string, explored bool, d time.Duration) {
	RecommendationsTotal.WithLabelValues(strategy).Inc()
	RecommendationDuration.WithLabelValues(strategy).Observe(d.Seconds())
	if explored {
		RecommendationsExplored.WithLabelValues(strategy).Inc()
	}
}

// ObserveFeedback records a bandit update
func (EngineObserver) ObserveFeedback(strategy string, won bool) {
	outcome := "loss"
	if won {
		outcome = "win"
	}
	FeedbackTotal.WithLabelValues(strategy, outcome).Inc()
}

// ObserveReload records a catalog reload attempt
func (EngineObserver) ObserveReload(result string, items int) {
	CatalogReloads.WithLabelValues(result).Inc()
	if result == "published" {
		CatalogItems.Set(float64(items))
	}
}

// RecordDiagnosisPrediction counts one prediction
func RecordDiagnosisPrediction(diagnosis string) {
	DiagnosisPredictions.WithLabelValues(diagnosis).Inc()
}

// ObserveDiagnosisTraining records the evaluation of a newly served model
func ObserveDiagnosisTraining(accuracy float64, labels int) {
	DiagnosisModelAccuracy.Set(accuracy)
	DiagnosisModelLabels.Set(float64(labels))
}
