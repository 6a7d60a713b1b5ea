// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/healthrec/internal/app"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show bandit counters per strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				stats, err := a.Engine.BanditStats(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput(cmd) {
					return writeJSON(out, map[string]any{"strategies": stats, "engine": a.Engine.GetMetrics()})
				}
				heading(out, "Strategy selector")
				printStats(out, stats)
				cfg := a.Engine.Config()
				fmt.Fprintf(out, "\n  epsilon %.2f, exploit %s\n", cfg.Bandit.Epsilon, cfg.Bandit.Exploit)
				return nil
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if jsonOutput(cmd) {
				return writeJSON(out, map[string]string{
					"version": version,
					"commit":  commit,
					"date":    date,
				})
			}
			fmt.Fprintf(out, "healthrec version %s (commit: %s, built: %s)\n", version, commit, date)
			return nil
		},
	}
}
