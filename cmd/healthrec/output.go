// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/healthrec/internal/recommend"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	scoreColor   = color.New(color.FgGreen)
	dimColor     = color.New(color.Faint)
	warnColor    = color.New(color.FgYellow)
)

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func heading(w io.Writer, format string, args ...any) {
	headingColor.Fprintf(w, format+"\n", args...)
}

func printItems(w io.Writer, items []recommend.Item) {
	if len(items) == 0 {
		warnColor.Fprintln(w, "  (none)")
		return
	}
	for i := range items {
		it := &items[i]
		fmt.Fprintf(w, "  %4d  %-40s %s\n", it.ID, it.Title, dimColor.Sprint(it.Condition))
	}
}

func printScored(w io.Writer, items []recommend.ScoredItem) {
	if len(items) == 0 {
		warnColor.Fprintln(w, "  (none)")
		return
	}
	for i := range items {
		it := &items[i]
		fmt.Fprintf(w, "  %2d. %4d  %-40s %s", i+1, it.Item.ID, it.Item.Title, scoreColor.Sprintf("%.4f", it.Score))
		if it.Reason != "" {
			fmt.Fprintf(w, "  %s", dimColor.Sprint(it.Reason))
		}
		fmt.Fprintln(w)
	}
}

func printMedicines(w io.Writer, meds []recommend.Medicine) {
	if len(meds) == 0 {
		warnColor.Fprintln(w, "  (none)")
		return
	}
	for i := range meds {
		m := &meds[i]
		fmt.Fprintf(w, "  %4d  %-24s", m.ID, m.Name)
		if m.Contraindications != "" {
			fmt.Fprintf(w, " %s", dimColor.Sprint("avoid with: "+m.Contraindications))
		}
		fmt.Fprintln(w)
	}
}

func printStats(w io.Writer, stats []recommend.StrategyStats) {
	fmt.Fprintf(w, "  %-14s %8s %8s %9s\n", "STRATEGY", "PLAYS", "WINS", "WIN RATE")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 42))
	for _, s := range stats {
		fmt.Fprintf(w, "  %-14s %8d %8d %s\n", s.Strategy, s.Plays, s.Wins, scoreColor.Sprintf("%9.3f", s.WinRate))
	}
}
