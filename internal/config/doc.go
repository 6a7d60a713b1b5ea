// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package config loads the service configuration with koanf.

# Layers

Sources are applied in increasing priority:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: the --config flag, CONFIG_PATH, or the first of
    DefaultConfigPaths that exists
 3. Environment variables, through an explicit name mapping

A .env file in the working directory is loaded into the process environment
first. Variables already set in the environment win over .env values.

# Sections

	server:
	  port: 8080
	  request_timeout: 10s
	  cors_origins: ["*"]
	logging:
	  level: info
	  format: json
	catalog:
	  source: yaml            # yaml | csv
	  path: data/catalog.yaml
	  refresh_spec: "@every 5m"
	storage:
	  backend: sqlite         # memory | sqlite
	  counters: badger        # memory | sqlite | badger | redis
	  sqlite_path: data/healthrec.db
	  badger_dir: data/counters
	recommend:
	  alpha: 0.6
	  epsilon: 0.2
	  exploit: hybrid
	diagnosis:
	  records_csv: data/medical_records.csv   # empty disables prediction
	  test_fraction: 0.2

# Environment Variables

	HTTP_PORT, LOG_LEVEL, CATALOG_SOURCE, CATALOG_PATH, CATALOG_REFRESH,
	STORAGE_BACKEND, COUNTERS_BACKEND, SQLITE_PATH, BADGER_DIR, REDIS_ADDR,
	RECOMMEND_ALPHA, RECOMMEND_EPSILON, RECOMMEND_DEFAULT_K, DIAGNOSIS_RECORDS_CSV, ...

The full list is envMappings in koanf.go. Unmapped variables are ignored.
*/
package config
