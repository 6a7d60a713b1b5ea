// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package badgerstore persists strategy counters in an embedded BadgerDB.
//
// Counters are stored as JSON under "counter:<name>". Increments are
// read-modify-write transactions; Badger's optimistic concurrency control
// aborts one of two overlapping writers with ErrConflict, and the loser is
// retried.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/recommend"
)

const counterPrefix = "counter:"

// maxConflictRetries bounds the retries of one increment.
const maxConflictRetries = 100

// Config configures the store.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory (tests).
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool
}

// Store is a BadgerDB-backed CounterStore.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database.
func Open(cfg Config) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Badger counter store opened")
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Counters returns every persisted counter.
func (s *Store) Counters(ctx context.Context) (map[string]recommend.Counter, error) {
	out := make(map[string]recommend.Counter)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(counterPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			var c recommend.Counter
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &c)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", item.Key(), err)
			}
			out[strings.TrimPrefix(string(item.Key()), counterPrefix)] = c
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate counters: %w", err)
	}
	return out, nil
}

// Increment adds one play, and one win when won is true.
func (s *Store) Increment(ctx context.Context, name string, won bool) error {
	key := []byte(counterPrefix + name)
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.Update(func(txn *badger.Txn) error {
			var c recommend.Counter
			item, err := txn.Get(key)
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
			case err != nil:
				return err
			default:
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &c)
				}); err != nil {
					return fmt.Errorf("decode counter: %w", err)
				}
			}

			c.Plays++
			if won {
				c.Wins++
			}
			data, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("encode counter: %w", err)
			}
			return txn.Set(key, data)
		})
		if errors.Is(err, badger.ErrConflict) {
			time.Sleep(time.Duration(attempt+1) * 100 * time.Microsecond)
			continue
		}
		if err != nil {
			return fmt.Errorf("increment %s: %w", name, err)
		}
		return nil
	}
	return fmt.Errorf("increment %s: %w after %d attempts", name, badger.ErrConflict, maxConflictRetries)
}

var _ recommend.CounterStore = (*Store)(nil)
