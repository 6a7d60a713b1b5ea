// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/healthrec/internal/logging"
)

// ErrNoPath indicates a CSV source constructed without a file path.
var ErrNoPath = errors.New("csv source: path is required")

// closeWithLog closes c, logging a failure as a warning.
func closeWithLog(c io.Closer, what string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Str("resource", what).Msg("close failed")
	}
}

// closeQuietly closes c on an error path where a second error adds nothing.
func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
