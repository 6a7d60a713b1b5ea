// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/healthrec/internal/app"
	"github.com/tomtom215/healthrec/internal/recommend"
)

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <userID>",
		Short: "Recommend items for a stored user",
		Long: `Recommend items for a user from the ratings store. Without --strategy
the bandit picks one.`,
		Example: `  healthrec recommend 42
  healthrec recommend 42 --strategy hybrid --time night -k 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			k, _ := cmd.Flags().GetInt("k")
			timeOfDay, _ := cmd.Flags().GetString("time")
			name, _ := cmd.Flags().GetString("strategy")

			var strategy recommend.Strategy
			if name != "" {
				if strategy, err = recommend.ParseStrategy(name); err != nil {
					return err
				}
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				resp, err := a.Engine.RecommendForUser(ctx, userID, k, timeOfDay, strategy)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput(cmd) {
					return writeJSON(out, resp)
				}
				label := string(resp.Strategy)
				if resp.Metadata.Explored {
					label += ", explored"
				}
				heading(out, "Recommendations for user %d (%s)", userID, label)
				printScored(out, resp.Items)
				if len(resp.Medicines) > 0 {
					heading(out, "Medicines for %s", resp.Metadata.Condition)
					printMedicines(out, resp.Medicines)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntP("k", "k", 0, "Number of items (0 uses the configured default)")
	cmd.Flags().String("time", recommend.TimeslotAny, "Time of day: morning, afternoon, evening, night or any")
	cmd.Flags().String("strategy", "", "Pin a strategy: content, collaborative, hybrid or graph")
	return cmd
}

func newFeedbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feedback <strategy> <like|skip>",
		Short: "Record bandit feedback for a strategy",
		Example: `  healthrec feedback hybrid like
  healthrec feedback graph skip`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := recommend.ParseStrategy(args[0])
			if err != nil {
				return err
			}
			var positive bool
			switch args[1] {
			case "like":
				positive = true
			case "skip":
			default:
				return fmt.Errorf("%w: %q (want like or skip)", recommend.ErrInvalidAction, args[1])
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Engine.RecordFeedback(ctx, strategy, positive); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput(cmd) {
					return writeJSON(out, map[string]any{"recorded": true, "strategy": strategy, "positive": positive})
				}
				fmt.Fprintf(out, "Recorded %s for %s\n", args[1], strategy)
				return nil
			})
		},
	}
}
