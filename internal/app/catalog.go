// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package app

import (
	"fmt"
	"io"

	"github.com/tomtom215/healthrec/internal/catalog"
	"github.com/tomtom215/healthrec/internal/config"
	"github.com/tomtom215/healthrec/internal/database"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// OpenCatalog builds the configured catalog source behind a circuit breaker.
// The returned closer releases the source's resources and may be nil.
func OpenCatalog(cfg *config.Config) (*catalog.BreakerProvider, io.Closer, error) {
	var (
		source recommend.CatalogProvider
		closer io.Closer
	)

	switch cfg.Catalog.Source {
	case "csv":
		db, err := database.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("open duckdb: %w", err)
		}
		csv, err := database.NewCSVCatalog(db, cfg.Catalog.ItemsCSV, cfg.Catalog.MedicinesCSV)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("csv catalog: %w", err)
		}
		source, closer = csv, db
	default:
		file, err := catalog.NewFileProvider(cfg.Catalog.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("yaml catalog: %w", err)
		}
		source = file
	}

	return catalog.NewBreakerProvider(source, cfg.BreakerSettings()), closer, nil
}
