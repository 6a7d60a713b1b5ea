// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package recommend

import "errors"

// Caller-misuse errors. Data-shape anomalies never surface as errors; rankers
// degrade to empty results instead.
var (
	// ErrInvalidK indicates a negative result size.
	ErrInvalidK = errors.New("k must be non-negative")

	// ErrInvalidAlpha indicates a hybrid blend weight outside [0, 1].
	ErrInvalidAlpha = errors.New("alpha must be in [0, 1]")

	// ErrInvalidEpsilon indicates an exploration rate outside [0, 1].
	ErrInvalidEpsilon = errors.New("epsilon must be in [0, 1]")

	// ErrUnknownStrategy indicates a strategy name outside the fixed set.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInvalidAction indicates a feedback action other than like, skip or view.
	ErrInvalidAction = errors.New("invalid feedback action")

	// ErrNoCatalog indicates that no catalog snapshot has been published yet.
	ErrNoCatalog = errors.New("catalog not loaded")

	// ErrNoProvider indicates a required collaborator was not configured.
	ErrNoProvider = errors.New("provider not configured")
)
