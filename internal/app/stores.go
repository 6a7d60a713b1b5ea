// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tomtom215/healthrec/internal/config"
	"github.com/tomtom215/healthrec/internal/recommend"
	"github.com/tomtom215/healthrec/internal/store/badgerstore"
	"github.com/tomtom215/healthrec/internal/store/memstore"
	"github.com/tomtom215/healthrec/internal/store/redisstore"
	"github.com/tomtom215/healthrec/internal/store/sqlitestore"
)

// RatingsStore reads and writes the ratings log.
type RatingsStore interface {
	recommend.RatingsProvider
	recommend.RatingsWriter
}

// Stores holds the opened store backends. One backend may serve several
// roles; it is closed once.
type Stores struct {
	Ratings  RatingsStore
	Activity recommend.ActivityLog
	Counters recommend.CounterStore

	closers []io.Closer
}

// OpenStores opens the backends selected by cfg.
func OpenStores(ctx context.Context, cfg config.StorageConfig) (*Stores, error) {
	s := &Stores{}

	var sqlite *sqlitestore.Store
	openSQLite := func() (*sqlitestore.Store, error) {
		if sqlite != nil {
			return sqlite, nil
		}
		db, err := sqlitestore.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		sqlite = db
		s.closers = append(s.closers, db)
		return db, nil
	}

	switch cfg.Backend {
	case "sqlite":
		db, err := openSQLite()
		if err != nil {
			return nil, s.fail(err)
		}
		s.Ratings, s.Activity = db, db
	default:
		mem := memstore.New()
		s.closers = append(s.closers, mem)
		s.Ratings, s.Activity = mem, mem
	}

	switch cfg.Counters {
	case "sqlite":
		db, err := openSQLite()
		if err != nil {
			return nil, s.fail(err)
		}
		s.Counters = db
	case "badger":
		db, err := badgerstore.Open(badgerstore.Config{Path: cfg.BadgerDir})
		if err != nil {
			return nil, s.fail(err)
		}
		s.closers = append(s.closers, db)
		s.Counters = db
	case "redis":
		db, err := redisstore.Open(ctx, redisstore.Config{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisPrefix,
		})
		if err != nil {
			return nil, s.fail(err)
		}
		s.closers = append(s.closers, db)
		s.Counters = db
	default:
		mem := memstore.New()
		s.closers = append(s.closers, mem)
		s.Counters = mem
	}

	return s, nil
}

func (s *Stores) fail(err error) error {
	if closeErr := s.Close(); closeErr != nil {
		return errors.Join(fmt.Errorf("open stores: %w", err), closeErr)
	}
	return fmt.Errorf("open stores: %w", err)
}

// Close closes every opened backend.
func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
