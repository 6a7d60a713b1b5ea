// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package app

import (
	"fmt"
	"io"

	"github.com/tomtom215/healthrec/internal/config"
	"github.com/tomtom215/healthrec/internal/database"
	"github.com/tomtom215/healthrec/internal/diagnosis"
	"github.com/tomtom215/healthrec/internal/logging"
)

// OpenPredictor builds the diagnosis predictor over the configured medical
// records CSV. It returns a nil predictor when no records file is set.
// Records are read on the first Train or Predict, not here.
func OpenPredictor(cfg *config.Config) (*diagnosis.Predictor, io.Closer, error) {
	if cfg.Diagnosis.RecordsCSV == "" {
		return nil, nil, nil
	}

	db, err := database.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open duckdb: %w", err)
	}
	src, err := database.NewMedicalRecordsCSV(db, cfg.Diagnosis.RecordsCSV)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("medical records: %w", err)
	}
	p, err := diagnosis.NewPredictor(src, cfg.DiagnosisSettings(), logging.WithComponent("diagnosis"))
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create predictor: %w", err)
	}
	return p, db, nil
}
