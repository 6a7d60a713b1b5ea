// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package redisstore persists strategy counters in Redis so several service
// replicas share one bandit state.
//
// Each strategy is a hash <prefix>:counter:<name> with fields plays and wins.
// The set <prefix>:strategies indexes the played names. An increment runs
// HINCRBY on both fields and SADD inside one MULTI/EXEC transaction.
package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// Config configures the Redis connection.
type Config struct {
	Addr        string
	Password    string
	DB          int
	KeyPrefix   string
	DialTimeout time.Duration
}

// Store is a Redis-backed CounterStore.
type Store struct {
	client *redis.Client
	prefix string
}

// Open connects to Redis and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "healthrec"
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("Redis counter store connected")
	return &Store{client: rdb, prefix: cfg.KeyPrefix}, nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) counterKey(name string) string {
	return s.prefix + ":counter:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + ":strategies"
}

// Increment adds one play, and one win when won is true.
func (s *Store) Increment(ctx context.Context, name string, won bool) error {
	var win int64
	if won {
		win = 1
	}
	key := s.counterKey(name)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, "plays", 1)
		pipe.HIncrBy(ctx, key, "wins", win)
		pipe.SAdd(ctx, s.indexKey(), name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("increment %s: %w", name, err)
	}
	return nil
}

// Counters returns every persisted counter.
func (s *Store) Counters(ctx context.Context) (map[string]recommend.Counter, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list strategies: %w", err)
	}

	cmds := make(map[string]*redis.MapStringStringCmd, len(names))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, name := range names {
			cmds[name] = pipe.HGetAll(ctx, s.counterKey(name))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read counters: %w", err)
	}

	out := make(map[string]recommend.Counter, len(names))
	for name, cmd := range cmds {
		fields := cmd.Val()
		plays, _ := strconv.ParseInt(fields["plays"], 10, 64)
		wins, _ := strconv.ParseInt(fields["wins"], 10, 64)
		out[name] = recommend.Counter{Plays: plays, Wins: wins}
	}
	return out, nil
}

var _ recommend.CounterStore = (*Store)(nil)
