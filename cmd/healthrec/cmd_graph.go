// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/healthrec/internal/app"
	"github.com/tomtom215/healthrec/internal/recommend"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <condition>",
		Short: "Show items and medicines linked to a condition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _ := cmd.Flags().GetInt("k")
			condition := args[0]

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				items, meds, err := a.Engine.GraphRecommend(ctx, condition, k)
				if err != nil {
					return err
				}
				if items == nil {
					items = []recommend.ScoredItem{}
				}
				if meds == nil {
					meds = []recommend.Medicine{}
				}
				out := cmd.OutOrStdout()
				if jsonOutput(cmd) {
					return writeJSON(out, map[string]any{"condition": condition, "items": items, "medicines": meds})
				}
				heading(out, "Items for %s", condition)
				printScored(out, items)
				heading(out, "Medicines for %s", condition)
				printMedicines(out, meds)
				return nil
			})
		},
	}
	cmd.Flags().IntP("k", "k", 0, "Maximum items and medicines (0 uses the configured default)")
	return cmd
}

func newMedicinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "medicines <condition>",
		Short:   "List medicines for a condition, excluding contraindicated ones",
		Example: `  healthrec medicines migraine --allergies asthma,ulcer`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			allergies, _ := cmd.Flags().GetStringSlice("allergies")
			condition := args[0]

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				meds, err := a.Engine.RecommendMedicines(ctx, condition, allergies)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput(cmd) {
					return writeJSON(out, map[string]any{"condition": condition, "allergies": allergies, "medicines": meds, "count": len(meds)})
				}
				if len(allergies) > 0 {
					heading(out, "Medicines for %s (allergies: %s)", condition, strings.Join(allergies, ", "))
				} else {
					heading(out, "Medicines for %s", condition)
				}
				printMedicines(out, meds)
				return nil
			})
		},
	}
	cmd.Flags().StringSlice("allergies", nil, "Comma-separated allergies")
	return cmd
}
