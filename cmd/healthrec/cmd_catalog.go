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
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the item catalog",
	}
	cmd.AddCommand(newCatalogListCmd(), newCatalogSearchCmd())
	return cmd
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all catalog items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				items := a.Engine.ListCatalog(ctx)
				out := cmd.OutOrStdout()
				if jsonOutput(cmd) {
					return writeJSON(out, map[string]any{"items": items, "count": len(items)})
				}
				heading(out, "Catalog (%d items, version %s)", len(items), a.Engine.GetMetrics().CatalogVersion)
				printItems(out, items)
				return nil
			})
		},
	}
}

func newCatalogSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search items by title, tags and description",
		Example: `  healthrec catalog search sleep
  healthrec catalog search "blood pressure" -k 3 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _ := cmd.Flags().GetInt("k")
			query := strings.Join(args, " ")

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				items, err := a.Engine.SearchCatalog(ctx, query, k)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput(cmd) {
					return writeJSON(out, map[string]any{"query": query, "items": items, "count": len(items)})
				}
				heading(out, "Search results for %q", query)
				printScored(out, items)
				return nil
			})
		},
	}
	cmd.Flags().IntP("k", "k", 0, "Maximum results (0 uses the configured default)")
	return cmd
}
