// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/healthrec/internal/api"
	"github.com/tomtom215/healthrec/internal/app"
	"github.com/tomtom215/healthrec/internal/config"
	"github.com/tomtom215/healthrec/internal/eventprocessor"
	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/supervisor"
	"github.com/tomtom215/healthrec/internal/supervisor/services"
)

const (
	shutdownTimeout = 10 * time.Second
	refreshTimeout  = 30 * time.Second
)

func main() {
	configPath := flag.String("config", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Init(cfg.LoggingSettings())

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logging.Info().
		Str("catalog_source", cfg.Catalog.Source).
		Str("storage", cfg.Storage.Backend).
		Str("counters", cfg.Storage.Counters).
		Msg("Starting healthrec")

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close stores")
		}
	}()

	pipeline, err := eventprocessor.NewPipeline(eventprocessor.DefaultRouterConfig(), a.Stores.Activity)
	if err != nil {
		return fmt.Errorf("event pipeline: %w", err)
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close event pipeline")
		}
	}()
	a.Engine.SetPublisher(pipeline.Publisher())

	tree := supervisor.NewTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddEventService(pipeline)

	if cfg.Catalog.RefreshSpec != "" {
		refresher, err := services.NewCatalogRefresher(a.Engine, services.RefresherConfig{
			Spec:           cfg.Catalog.RefreshSpec,
			RefreshOnStart: !a.Engine.Ready(),
			Timeout:        refreshTimeout,
		}, logging.WithComponent("catalog"))
		if err != nil {
			return fmt.Errorf("catalog refresher: %w", err)
		}
		tree.AddCatalogService(refresher)
		logging.Info().Str("schedule", cfg.Catalog.RefreshSpec).Msg("Catalog refresh scheduled")
	}

	handler := api.NewHandler(a.Engine, a.Analytics)
	if a.Predictor != nil {
		handler.SetPredictor(a.Predictor)
	}
	router := api.NewRouter(handler, api.RouterConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		CORSMaxAge:         api.DefaultRouterConfig().CORSMaxAge,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
		RateLimitDisabled:  cfg.Server.RateLimitDisabled,
		RequestTimeout:     cfg.Server.RequestTimeout,
	})
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPService(server, shutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", treeErr)
	}
	return nil
}
