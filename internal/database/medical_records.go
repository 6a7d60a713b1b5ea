// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/healthrec/internal/diagnosis"
	"github.com/tomtom215/healthrec/internal/logging"
)

// MedicalRecordsCSV is a diagnosis.RecordSource backed by a CSV file read
// with DuckDB. The file is re-read on every call so retraining picks up
// edits.
type MedicalRecordsCSV struct {
	db   *DB
	path string
}

// NewMedicalRecordsCSV creates a records source.
func NewMedicalRecordsCSV(db *DB, path string) (*MedicalRecordsCSV, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	return &MedicalRecordsCSV{db: db, path: path}, nil
}

// Records reads and resolves the file.
func (m *MedicalRecordsCSV) Records(ctx context.Context) ([]diagnosis.Record, error) {
	table, err := m.db.ReadCSV(ctx, m.path)
	if err != nil {
		return nil, err
	}
	records, err := diagnosis.RecordsFromTable(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.path, err)
	}
	logging.Debug().Str("path", m.path).Int("records", len(records)).Msg("Medical records loaded")
	return records, nil
}

var _ diagnosis.RecordSource = (*MedicalRecordsCSV)(nil)
