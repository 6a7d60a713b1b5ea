// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package database reads catalog and medical records files through an
// embedded DuckDB engine.
//
// DuckDB's CSV sniffer infers delimiters, quoting and column types, so
// spreadsheet exports load without a hand-written parser. Column names are
// resolved through alias tables at the boundary.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/healthrec/internal/recommend"
)

// DB wraps an in-memory DuckDB connection.
type DB struct {
	conn *sql.DB
}

// Open opens an in-memory DuckDB database.
func Open() (*DB, error) {
	// Disable auto-install/auto-load to prevent hangs in restricted network environments
	connStr := fmt.Sprintf(":memory:?threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false",
		runtime.NumCPU())

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// ReadCSV loads a CSV file into a recommend.Table.
func (db *DB) ReadCSV(ctx context.Context, path string) (recommend.Table, error) {
	query := fmt.Sprintf("SELECT * FROM read_csv_auto('%s', header = true)", escapeLiteral(path))
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return recommend.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	defer closeWithLog(rows, "rows")

	columns, err := rows.Columns()
	if err != nil {
		return recommend.Table{}, fmt.Errorf("columns of %s: %w", path, err)
	}
	table := recommend.Table{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return recommend.Table{}, fmt.Errorf("scan %s: %w", path, err)
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return recommend.Table{}, fmt.Errorf("iterate %s: %w", path, err)
	}
	return table, nil
}

// escapeLiteral escapes a value for use inside a single-quoted SQL literal.
func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
