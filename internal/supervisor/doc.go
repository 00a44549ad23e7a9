// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

/*
Package supervisor provides process supervision for Foodrec using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("foodrec")
	├── EngineSupervisor ("engine-layer")
	│   └── ReloadService (startup and periodic snapshot rebuilds)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A reload loop that keeps crashing is restarted with backoff inside its own
layer. The HTTP server keeps answering from the last published snapshot.

# Usage Example

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddEngineService(services.NewReloadService(engine, reloadCfg, zlog))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, 30*time.Second, zlog))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Configuration

TreeConfig controls restart behavior. Zero fields take suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

# Logging

Supervisor events (service start, failure, backoff, restart) are forwarded
to slog through sutureslog. The slog handler is backed by zerolog, see
logging.NewSlogLogger.

# Debugging Shutdown Issues

	report, err := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logger.Warn("service did not stop", "service", svc.Name)
	}
*/
package supervisor
