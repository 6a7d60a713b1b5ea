// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tomtom215/healthrec/internal/metrics"
)

// CatalogReloader reloads the catalog and reports whether a new snapshot
// was published. Satisfied by *recommend.Engine.
type CatalogReloader interface {
	Reload(ctx context.Context) (bool, error)
}

// RefresherConfig configures the CatalogRefresher.
type RefresherConfig struct {
	// Spec is a cron expression or descriptor such as "@every 5m".
	Spec string

	// RefreshOnStart reloads once before the first scheduled run.
	RefreshOnStart bool

	// Timeout bounds a single reload.
	Timeout time.Duration
}

// CatalogRefresher reloads the catalog on a cron schedule. Runs never
// overlap; a run that is still going when the next one fires is skipped.
type CatalogRefresher struct {
	reloader CatalogReloader
	schedule cron.Schedule
	config   RefresherConfig
	logger   zerolog.Logger

	runs      atomic.Int64
	published atomic.Int64
	failures  atomic.Int64
}

// NewCatalogRefresher parses the schedule and returns the service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCatalogRefresher(reloader CatalogReloader, cfg RefresherConfig, logger zerolog.Logger) (*CatalogRefresher, error) {
	schedule, err := cron.ParseStandard(cfg.Spec)
	if err != nil {
		return nil, fmt.Errorf("parse refresh schedule %q: %w", cfg.Spec, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &CatalogRefresher{
		reloader: reloader,
		schedule: schedule,
		config:   cfg,
		logger:   logger.With().Str("service", "catalog-refresher").Logger(),
	}, nil
}

// Serve implements suture.Service.
func (r *CatalogRefresher) Serve(ctx context.Context) error {
	if r.config.RefreshOnStart {
		r.refresh(ctx)
	}

	cl := cronLogger{logger: r.logger}
	c := cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	c.Schedule(r.schedule, cron.FuncJob(func() { r.refresh(ctx) }))
	c.Start()
	r.logger.Info().Str("spec", r.config.Spec).Msg("Catalog refresher started")

	<-ctx.Done()
	stopped := c.Stop()
	select {
	case <-stopped.Done():
	case <-time.After(r.config.Timeout):
		r.logger.Warn().Msg("Catalog refresh still running at shutdown")
	}
	return ctx.Err()
}

func (r *CatalogRefresher) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	r.runs.Add(1)
	reloadCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	start := time.Now()
	published, err := r.reloader.Reload(reloadCtx)
	if err != nil {
		r.failures.Add(1)
		r.logger.Warn().Err(err).Msg("Catalog refresh failed, keeping previous snapshot")
		return
	}
	metrics.CatalogRefreshLastSuccess.SetToCurrentTime()
	if published {
		r.published.Add(1)
	}
	r.logger.Debug().
		Bool("published", published).
		Dur("duration", time.Since(start)).
		Msg("Catalog refresh complete")
}

// Runs returns the number of reload attempts.
func (r *CatalogRefresher) Runs() int64 { return r.runs.Load() }

// Published returns the number of reloads that published a new snapshot.
func (r *CatalogRefresher) Published() int64 { return r.published.Load() }

// Failures returns the number of failed reloads.
func (r *CatalogRefresher) Failures() int64 { return r.failures.Load() }

// String names the service in supervisor logs.
func (r *CatalogRefresher) String() string {
	return "catalog-refresher"
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
