// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

// Package logging provides centralized zerolog-based structured logging.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logging.Info().Str("source", "yaml").Msg("Catalog loaded")
//	logging.Error().Err(err).Msg("Reload failed")
//
// Components derive child loggers:
//
//	logger := logging.WithComponent("recommend")
//
// # Request Context
//
// The API middleware stores a request ID in the request context. Ctx returns a
// logger that carries it:
//
//	ctx = logging.ContextWithRequestID(ctx, logging.GenerateRequestID())
//	logging.Ctx(ctx).Info().Msg("Feedback recorded")
//
// # slog Interop
//
// Libraries that log through log/slog (sutureslog, watermill) get a
// zerolog-backed handler:
//
//	slogger := logging.NewSlogLogger("supervisor")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event is
// never written.
package logging
