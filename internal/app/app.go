// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/healthrec/internal/analytics"
	"github.com/tomtom215/healthrec/internal/config"
	"github.com/tomtom215/healthrec/internal/diagnosis"
	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/metrics"
	"github.com/tomtom215/healthrec/internal/recommend"
	"github.com/tomtom215/healthrec/internal/recommend/algorithms"
	"github.com/tomtom215/healthrec/internal/recommend/bandit"
	"github.com/tomtom215/healthrec/internal/recommend/reranking"
)

// App is a fully wired engine with its stores and catalog source.
type App struct {
	Config    *config.Config
	Engine    *recommend.Engine
	Stores    *Stores
	Catalog   recommend.CatalogProvider
	Analytics *analytics.Service
	Predictor *diagnosis.Predictor

	closers []io.Closer
}

// New opens the stores, the catalog source and the diagnosis records, builds
// the engine and loads the first catalog snapshot. A failed first load is logged, not returned;
// the engine reports not ready until a reload succeeds.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	stores, err := OpenStores(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Stores: stores}

	provider, closer, err := OpenCatalog(cfg)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	a.Catalog = provider

	a.Engine, err = NewEngine(cfg.EngineConfig(), stores, provider, logging.WithComponent("recommend"))
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	a.Analytics = analytics.NewService(stores.Ratings, stores.Activity)

	predictor, closer, err := OpenPredictor(cfg)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	a.Predictor = predictor

	if _, err := a.Engine.Reload(ctx); err != nil {
		logging.Warn().Err(err).Msg("Initial catalog load failed, engine not ready")
	}
	return a, nil
}

// NewEngine builds an engine with the four strategies, the context reranker
// and an epsilon-greedy selector over stores.Counters.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg *recommend.Config, stores *Stores, provider recommend.CatalogProvider, logger zerolog.Logger) (*recommend.Engine, error) {
	engine, err := recommend.NewEngine(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	content := algorithms.NewContent()
	collab := algorithms.NewCollaborative()
	hybrid, err := algorithms.NewHybrid(cfg.Hybrid.Alpha, content, collab)
	if err != nil {
		return nil, fmt.Errorf("create hybrid ranker: %w", err)
	}
	engine.RegisterRanker(recommend.StrategyContent, content)
	engine.RegisterRanker(recommend.StrategyCollaborative, collab)
	engine.RegisterRanker(recommend.StrategyHybrid, hybrid)
	engine.RegisterRanker(recommend.StrategyGraph, algorithms.NewGraph(cfg.Graph.DefaultCondition))
	engine.RegisterReranker(reranking.NewContextAdjuster(cfg.Context))

	selector, err := bandit.NewEpsilonGreedy(cfg.Bandit, stores.Counters)
	if err != nil {
		return nil, fmt.Errorf("create strategy selector: %w", err)
	}
	engine.SetSelector(selector)
	engine.SetRatingsProvider(stores.Ratings)
	engine.SetRatingsWriter(stores.Ratings)
	engine.SetCatalogProvider(provider)
	engine.SetObserver(metrics.EngineObserver{})

	logger.Info().
		Float64("alpha", cfg.Hybrid.Alpha).
		Float64("epsilon", cfg.Bandit.Epsilon).
		Str("exploit", string(cfg.Bandit.Exploit)).
		Msg("Recommendation engine initialized")
	return engine, nil
}

// Close releases the catalog source, the records database and the stores.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if a.Stores != nil {
		errs = append(errs, a.Stores.Close())
	}
	return errors.Join(errs...)
}
