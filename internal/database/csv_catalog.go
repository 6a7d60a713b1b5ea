// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// CSVCatalog is a CatalogProvider backed by CSV files read with DuckDB.
type CSVCatalog struct {
	db            *DB
	itemsPath     string
	medicinesPath string
}

// NewCSVCatalog creates a CSV catalog. medicinesPath may be empty, in which
// case the catalog has no medicines.
func NewCSVCatalog(db *DB, itemsPath, medicinesPath string) (*CSVCatalog, error) {
	if itemsPath == "" {
		return nil, ErrNoPath
	}
	return &CSVCatalog{db: db, itemsPath: itemsPath, medicinesPath: medicinesPath}, nil
}

// Items reads the items file.
func (c *CSVCatalog) Items(ctx context.Context) ([]recommend.Item, error) {
	table, err := c.db.ReadCSV(ctx, c.itemsPath)
	if err != nil {
		return nil, err
	}
	items, err := recommend.ItemsFromTable(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.itemsPath, err)
	}
	logging.Debug().Str("path", c.itemsPath).Int("items", len(items)).Msg("CSV items loaded")
	return items, nil
}

// Medicines reads the medicines file.
func (c *CSVCatalog) Medicines(ctx context.Context) ([]recommend.Medicine, error) {
	if c.medicinesPath == "" {
		return []recommend.Medicine{}, nil
	}
	table, err := c.db.ReadCSV(ctx, c.medicinesPath)
	if err != nil {
		return nil, err
	}
	meds, err := recommend.MedicinesFromTable(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.medicinesPath, err)
	}
	return meds, nil
}

var _ recommend.CatalogProvider = (*CSVCatalog)(nil)
