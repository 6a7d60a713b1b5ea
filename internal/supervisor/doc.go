// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

/*
Package supervisor runs the long-lived healthrec services under a suture v4
supervisor tree.

Each layer is its own supervisor so a crash loop in one layer backs off
without restarting the others. Supervisor events are logged through
sutureslog on top of the zerolog-backed slog handler from the logging
package.

Services live in the services subpackage:

  - HTTPService: net/http server with graceful shutdown
  - CatalogRefresher: cron-scheduled catalog reload

The event pipeline (eventprocessor.Pipeline) implements suture.Service
itself and is added to the events layer directly.

Usage:

	tree := supervisor.NewTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddCatalogService(refresher)
	tree.AddEventService(pipeline)
	tree.AddAPIService(services.NewHTTPService(server, 10*time.Second))
	err := tree.Serve(ctx)
*/
package supervisor
