// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package eventprocessor carries recommendation events from the engine to
their consumers over an in-process Watermill pub/sub.

# Topics

  - recommendation.served: one message per served list, audited at debug level
  - feedback.recorded: one message per user action, appended to the activity log
  - events.poison: messages whose handler failed after every retry

# Router

The Router wraps message.Router with three middlewares, outermost first:

  - PoisonQueue: forwards a message that still fails to events.poison
  - Recoverer: turns handler panics into errors
  - Retry: exponential backoff, RetryMaxRetries attempts

Malformed payloads are acknowledged and counted rather than retried.

# Lifecycle

Pipeline owns the pub/sub and implements suture.Service. Every Serve call
builds a new router on the same pub/sub so the supervisor can restart it.
Messages published while no router is subscribed are dropped; Started
reports when the first router is ready.
*/
package eventprocessor
