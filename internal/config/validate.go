// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package config

import (
	"errors"
	"fmt"

	"github.com/tomtom215/healthrec/internal/validation"
)

// ErrMissingSetting indicates a backend selected without the setting it needs.
var ErrMissingSetting = errors.New("missing required setting")

// Validate checks field ranges, then backend-specific settings, then the
// engine tunables. Engine errors wrap the recommend sentinels
// (ErrInvalidAlpha, ErrInvalidEpsilon).
func (c *Config) Validate() error {
	if errs := validation.ValidateStruct(c); errs != nil {
		return errs
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateStorage() error {
	s := c.Storage
	if (s.Backend == "sqlite" || s.Counters == "sqlite") && s.SQLitePath == "" {
		return fmt.Errorf("%w: SQLITE_PATH is required for the sqlite backend", ErrMissingSetting)
	}
	if s.Counters == "badger" && s.BadgerDir == "" {
		return fmt.Errorf("%w: BADGER_DIR is required for the badger counter store", ErrMissingSetting)
	}
	if s.Counters == "redis" && s.RedisAddr == "" {
		return fmt.Errorf("%w: REDIS_ADDR is required for the redis counter store", ErrMissingSetting)
	}
	return nil
}
