// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package catalog provides catalog sources for the recommendation engine.

FileProvider reads a YAML document with an items list and a medicines list.
Each record is a free-form mapping whose keys go through the same alias
resolution as ratings tables, so exports with columns such as "name",
"keywords" or "views" load unchanged:

	items:
	  - id: 1
	    title: Sleep hygiene basics
	    tags: sleep
	    condition: insomnia
	    timeslot: night
	    popularity: 40
	medicines:
	  - med_id: 10
	    medicine: Melatonin
	    treats: insomnia
	    contra: pregnancy

BreakerProvider wraps any recommend.CatalogProvider with a circuit breaker so
that a failing source is not hammered by the scheduled refresher.
*/
package catalog
