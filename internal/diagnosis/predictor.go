// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package diagnosis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/healthrec/internal/metrics"
)

// RecordSource supplies labeled training records.
type RecordSource interface {
	Records(ctx context.Context) ([]Record, error)
}

// Config configures the holdout evaluation of Train.
type Config struct {
	// TestFraction is the share of each label held out for evaluation.
	TestFraction float64 `json:"test_fraction" validate:"gte=0,lt=1"`

	// Seed seeds the stratified split.
	Seed int64 `json:"seed"`
}

// DefaultConfig holds out 20% with seed 42.
func DefaultConfig() Config {
	return Config{TestFraction: 0.2, Seed: 42}
}

// TrainResult describes a completed training run.
type TrainResult struct {
	Records   int            `json:"records"`
	TrainSize int            `json:"train_size"`
	TestSize  int            `json:"test_size"`
	Labels    []string       `json:"labels"`
	Support   map[string]int `json:"support"`
	Accuracy  float64        `json:"accuracy"`
	TrainedAt time.Time      `json:"trained_at"`
}

// Predictor trains and serves the diagnosis model. Train evaluates on a
// stratified holdout and keeps the model fitted on the training part.
// Predict before any Train fits a model on every record first.
type Predictor struct {
	source RecordSource
	cfg    Config
	logger zerolog.Logger

	trainMu sync.Mutex
	model   atomic.Pointer[Model]
}

// NewPredictor creates a predictor reading from source.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPredictor(source RecordSource, cfg Config, logger zerolog.Logger) (*Predictor, error) {
	if source == nil {
		return nil, errors.New("diagnosis: record source is required")
	}
	if cfg.TestFraction < 0 || cfg.TestFraction >= 1 {
		return nil, fmt.Errorf("diagnosis: test fraction must be in [0,1), got %f", cfg.TestFraction)
	}
	return &Predictor{source: source, cfg: cfg, logger: logger}, nil
}

// Trained reports whether a model is loaded.
func (p *Predictor) Trained() bool {
	return p.model.Load() != nil
}

// Train reads the records, fits a model on the training split and replaces
// the served model.
func (p *Predictor) Train(ctx context.Context) (TrainResult, error) {
	p.trainMu.Lock()
	defer p.trainMu.Unlock()

	records, err := p.source.Records(ctx)
	if err != nil {
		return TrainResult{}, fmt.Errorf("load records: %w", err)
	}
	train, test := Split(records, p.cfg.TestFraction, p.cfg.Seed)
	m, err := Fit(train)
	if err != nil {
		return TrainResult{}, err
	}

	res := TrainResult{
		Records:   len(train) + len(test),
		TrainSize: len(train),
		TestSize:  len(test),
		Labels:    m.Labels(),
		Support:   m.Support(),
		Accuracy:  m.Accuracy(test),
		TrainedAt: time.Now().UTC(),
	}
	p.model.Store(m)
	metrics.ObserveDiagnosisTraining(res.Accuracy, len(res.Labels))

	p.logger.Info().
		Int("train", res.TrainSize).
		Int("test", res.TestSize).
		Strs("labels", res.Labels).
		Float64("accuracy", res.Accuracy).
		Msg("Diagnosis model trained")
	return res, nil
}

// Predict returns the diagnosis for v.
func (p *Predictor) Predict(ctx context.Context, v Vitals) (Prediction, error) {
	m, err := p.current(ctx)
	if err != nil {
		return Prediction{}, err
	}
	pred := m.Predict(v)
	metrics.RecordDiagnosisPrediction(pred.Diagnosis)
	return pred, nil
}

func (p *Predictor) current(ctx context.Context) (*Model, error) {
	if m := p.model.Load(); m != nil {
		return m, nil
	}

	p.trainMu.Lock()
	defer p.trainMu.Unlock()
	if m := p.model.Load(); m != nil {
		return m, nil
	}

	p.logger.Warn().Msg("Diagnosis model not trained yet, fitting on all records")
	records, err := p.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	m, err := Fit(records)
	if err != nil {
		return nil, err
	}
	p.model.Store(m)
	metrics.ObserveDiagnosisTraining(m.Accuracy(records), len(m.labels))
	return m, nil
}
