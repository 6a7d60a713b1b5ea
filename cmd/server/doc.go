// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package main is the entry point of the healthrec HTTP server.

The server recommends health-information items and medicines from a catalog
snapshot using content, collaborative, hybrid and graph strategies, chosen
per request by an epsilon-greedy bandit.

# Supervisor Tree

	RootSupervisor ("healthrec")
	├── CatalogSupervisor ("catalog-layer")
	│   └── Catalog refresher (cron, optional)
	├── EventsSupervisor ("events-layer")
	│   └── Event router (served and feedback events)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Startup order:

 1. Configuration: koanf (defaults, config file, environment)
 2. Logging: zerolog, JSON or console
 3. Stores: memory or SQLite ratings, counters in memory, SQLite, Badger or Redis
 4. Catalog: YAML file or DuckDB-read CSV behind a circuit breaker
 5. Engine: rankers, context reranker and bandit, first catalog load
 6. Event pipeline, catalog refresher and HTTP server under suture

A failed first catalog load does not stop the server; readiness stays 503
until a refresh succeeds.

# Configuration

	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	CATALOG_SOURCE=yaml          # yaml or csv
	CATALOG_PATH=catalog.yaml
	CATALOG_REFRESH=@every 5m
	STORAGE_BACKEND=memory       # memory or sqlite
	COUNTERS_BACKEND=memory      # memory, sqlite, badger or redis
	RECOMMEND_EPSILON=0.1

The -config flag overrides CONFIG_PATH.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains for up to
10s, then the event router and stores are closed.
*/
package main
