// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/healthrec/internal/app"
	"github.com/tomtom215/healthrec/internal/config"
	"github.com/tomtom215/healthrec/internal/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "healthrec",
		Short: "Health item and medicine recommendations",
		Long: `healthrec runs the recommendation engine against the configured
catalog and stores without starting the HTTP server.

Feedback recorded here updates the same bandit counters the server reads
when both use a persistent counters backend (sqlite, badger or redis).`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default: CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCatalogCmd(),
		newRecommendCmd(),
		newFeedbackCmd(),
		newGraphCmd(),
		newMedicinesCmd(),
		newPredictCmd(),
		newStatsCmd(),
	)
	return rootCmd
}

// openApp loads the configuration named by --config and wires the engine.
// Logs go to stderr at warn level unless LOG_LEVEL says otherwise.
func openApp(ctx context.Context, cmd *cobra.Command) (*app.App, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}

	settings := cfg.LoggingSettings()
	if os.Getenv("LOG_LEVEL") == "" {
		settings.Level = "warn"
	}
	settings.Output = cmd.ErrOrStderr()
	logging.Init(settings)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	return a, nil
}

// withApp runs fn against a freshly opened app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ctx, a)
}
