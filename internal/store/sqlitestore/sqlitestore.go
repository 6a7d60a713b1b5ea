// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package sqlitestore persists ratings, strategy counters and the activity
// log in a SQLite database using the pure-Go modernc.org/sqlite driver.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/recommend"
)

const schema = `
CREATE TABLE IF NOT EXISTS ratings (
	user_id    INTEGER NOT NULL,
	item_id    INTEGER NOT NULL,
	rating     REAL    NOT NULL,
	updated_at TEXT    NOT NULL,
	PRIMARY KEY (user_id, item_id)
);

CREATE TABLE IF NOT EXISTS strategy_counters (
	name  TEXT PRIMARY KEY,
	plays INTEGER NOT NULL DEFAULT 0,
	wins  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS activities (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	type    TEXT    NOT NULL,
	item_id INTEGER NOT NULL,
	ts      TEXT    NOT NULL,
	meta    TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_activities_user ON activities(user_id);
`

// Store is a SQLite-backed ratings, counter and activity store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite works best with a single writer

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logging.Info().Str("path", path).Msg("SQLite store opened")
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AllRatings reads the ratings table with SELECT * and resolves its columns
// through the rating alias table, so databases with legacy column names keep
// working. An unresolvable table yields an empty log.
func (s *Store) AllRatings(ctx context.Context) ([]recommend.Rating, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM ratings ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	table, err := scanTable(rows)
	if err != nil {
		return nil, fmt.Errorf("scan ratings: %w", err)
	}

	ratings, ok := recommend.NormalizeRatings(table)
	if !ok {
		logging.Warn().Strs("columns", table.Columns).Msg("ratings table columns could not be resolved")
		return []recommend.Rating{}, nil
	}
	return ratings, nil
}

// scanTable reads every row into a recommend.Table.
func scanTable(rows *sql.Rows) (recommend.Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return recommend.Table{}, err
	}
	table := recommend.Table{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return recommend.Table{}, err
		}
		table.Rows = append(table.Rows, values)
	}
	return table, rows.Err()
}

// Rate upserts the current rating for a (user, item) pair. The row keeps its
// original position in the log.
func (s *Store) Rate(ctx context.Context, userID, itemID int, value float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ratings (user_id, item_id, rating, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, item_id) DO UPDATE SET
			rating = excluded.rating,
			updated_at = excluded.updated_at`,
		userID, itemID, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// Counters returns the persisted counters of every played strategy.
func (s *Store) Counters(ctx context.Context) (map[string]recommend.Counter, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, plays, wins FROM strategy_counters")
	if err != nil {
		return nil, fmt.Errorf("query counters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]recommend.Counter)
	for rows.Next() {
		var (
			name string
			c    recommend.Counter
		)
		if err := rows.Scan(&name, &c.Plays, &c.Wins); err != nil {
			return nil, fmt.Errorf("scan counter: %w", err)
		}
		out[name] = c
	}
	return out, rows.Err()
}

// Increment adds one play, and one win when won is true, in a single
// transaction.
func (s *Store) Increment(ctx context.Context, name string, won bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO strategy_counters (name, plays, wins) VALUES (?, 0, 0) ON CONFLICT(name) DO NOTHING",
		name); err != nil {
		return fmt.Errorf("ensure counter: %w", err)
	}

	win := 0
	if won {
		win = 1
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE strategy_counters SET plays = plays + 1, wins = wins + ? WHERE name = ?",
		win, name); err != nil {
		return fmt.Errorf("update counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Append adds an activity to the log.
//
//nolint:gocritic // hugeParam: Activity passed by value to match the ActivityLog interface
func (s *Store) Append(ctx context.Context, a recommend.Activity) error {
	ts := a.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO activities (user_id, type, item_id, ts, meta) VALUES (?, ?, ?, ?, ?)",
		a.UserID, string(a.Type), a.ItemID, ts.UTC().Format(time.RFC3339Nano), a.Meta)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns at most limit activities, newest first. A non-positive
// limit returns the whole log.
func (s *Store) Recent(ctx context.Context, limit int) ([]recommend.Activity, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, type, item_id, ts, meta FROM activities ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]recommend.Activity, 0)
	for rows.Next() {
		var (
			a   recommend.Activity
			typ string
			ts  string
		)
		if err := rows.Scan(&a.UserID, &typ, &a.ItemID, &ts, &a.Meta); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Type = recommend.ActivityType(typ)
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			a.Timestamp = parsed
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Compile-time interface checks.
var (
	_ recommend.RatingsProvider = (*Store)(nil)
	_ recommend.RatingsWriter   = (*Store)(nil)
	_ recommend.CounterStore    = (*Store)(nil)
	_ recommend.ActivityLog     = (*Store)(nil)
)
