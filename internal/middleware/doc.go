// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package middleware provides the healthrec HTTP middleware that the chi and
go-chi ecosystems do not cover.

  - RequestID: X-Request-ID propagation into the logging context
  - Metrics: Prometheus request metrics labeled by chi route pattern
  - AccessLog: one structured log line per request
  - RateLimited: httprate limit handler that counts rejections

All middleware has the func(http.Handler) http.Handler shape and is mounted
with chi's Use.
*/
package middleware
