// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

/*
Package services provides suture.Service wrappers for Foodrec components.

Each wrapper translates a component lifecycle into suture's context-aware
Serve pattern:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Runs ListenAndServe in a goroutine and calls Shutdown on cancellation

Snapshot Reload (ReloadService):
  - Builds the first snapshot at startup when configured
  - Rebuilds on a fixed interval; failures keep the previous snapshot
  - Idles when no interval is set so suture does not restart it

# Error Handling

	nil         -> Service stopped, suture restarts it
	error       -> Service crashed, suture restarts it with backoff
	ctx.Err()   -> Shutdown requested, normal termination
*/
package services
