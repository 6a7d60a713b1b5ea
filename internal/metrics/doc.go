// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package metrics provides Prometheus metrics for the recommendation service.

All collectors are registered on the default registry through promauto and
exposed at /metrics by the API router.

# Available Metrics

Recommendation Metrics:
  - healthrec_recommendations_total{strategy}: served lists (counter)
  - healthrec_recommendations_explored_total{strategy}: lists picked by exploration
  - healthrec_recommendation_duration_seconds{strategy}: ranking latency (histogram)
  - healthrec_feedback_total{strategy,outcome}: bandit updates, outcome win or loss

Catalog Metrics:
  - healthrec_catalog_reloads_total{result}: published, unchanged or error
  - healthrec_catalog_items: items in the published snapshot (gauge)
  - healthrec_catalog_refresh_last_success_timestamp: last scheduled refresh

HTTP Metrics:
  - healthrec_http_requests_total{method,route,status}
  - healthrec_http_request_duration_seconds{method,route}
  - healthrec_http_active_requests
  - healthrec_http_rate_limit_hits_total{route}

Event and Store Metrics:
  - healthrec_events_published_total{topic,result}
  - healthrec_events_processed_total{handler,result}
  - healthrec_store_operation_duration_seconds{backend,operation}
  - healthrec_store_errors_total{backend,operation}

Circuit Breaker Metrics:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

# Engine Integration

EngineObserver implements recommend.Observer:

	engine.SetObserver(metrics.EngineObserver{})

# Example Queries

Exploration share per strategy:

	sum by (strategy) (rate(healthrec_recommendations_explored_total[5m]))
	  / sum by (strategy) (rate(healthrec_recommendations_total[5m]))

p95 ranking latency:

	histogram_quantile(0.95, sum by (le) (rate(healthrec_recommendation_duration_seconds_bucket[5m])))
*/
package metrics
