// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package api provides the healthrec REST API on the chi router.

# Endpoints

All routes live under /api/v1:

	GET  /health/live                       liveness
	GET  /health/ready                      503 until a catalog snapshot is published
	GET  /metrics                           Prometheus exposition
	GET  /catalog                           full catalog
	GET  /catalog/search?q=&k=              substring filter, TF-IDF ordered
	GET  /catalog/{itemID}/similar?k=       content neighbors of one item
	GET  /recommendations/user/{userID}     ?k=&time=&strategy=
	POST /recommendations                   explicit liked items and ratings
	POST /feedback                          like, skip or view
	GET  /graph/{condition}?k=              items and medicines of a condition
	GET  /medicines?condition=&allergies=   allergy-filtered medicines
	GET  /predict?age=&blood_pressure=&... nearest-centroid diagnosis from vitals
	POST /predict/train                     retrain on the records with a holdout
	GET  /bandit/stats                      strategy plays, wins and win rates
	GET  /analytics/kpis                    engagement KPIs
	GET  /analytics/items                   per-item rating outcomes

# Responses

Every reply is a models.APIResponse envelope. Empty results are a 200 with
an empty list. Validation failures are a 400 with code VALIDATION_ERROR and
the failing fields in error.details; a missing catalog or a disabled predictor is a 503 NOT_READY;
store failures are a 500 STORE_ERROR.

# Middleware

Applied to every route, outermost first: request ID, RealIP, Recoverer,
access log, Prometheus metrics, CORS. Data routes add per-IP rate limiting
(go-chi/httprate) and a request timeout.
*/
package api
