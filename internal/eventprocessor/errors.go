// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package eventprocessor

import "errors"

var (
	// ErrNilPublisher means NewPublisher was given no Watermill publisher.
	ErrNilPublisher = errors.New("eventprocessor: nil publisher")

	// ErrNilActivityLog means the feedback consumer has nowhere to append.
	ErrNilActivityLog = errors.New("eventprocessor: nil activity log")

	// ErrInvalidConfig wraps every RouterConfig validation failure.
	ErrInvalidConfig = errors.New("eventprocessor: invalid router config")
)
