// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

/*
Package main is the entry point for the Foodrec server.

Foodrec recommends foods to users by blending collaborative filtering (ALS
over order history) with TF-IDF content similarity over food descriptions.
Users without orders get the popularity ranking.

# Commands

	foodrec-server [serve]          Run the HTTP API (default)
	foodrec-server recommend <user> One-shot hybrid recommendations
	foodrec-server similar <food>   One-shot content neighbours
	foodrec-server popular          One-shot popularity ranking

One-shot commands build a snapshot from the configured data source, print
the result as JSON and exit.

# Application Architecture

	RootSupervisor ("foodrec")
	├── EngineSupervisor ("engine-layer")
	│   └── ReloadService (startup and periodic snapshot rebuilds)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (chi router)

Initialization order:

 1. Configuration: Koanf v2 (defaults, .env, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Data source: MongoDB behind a circuit breaker, or a CSV directory
 4. Engine: snapshot builder with Prometheus observer
 5. Result cache: in-memory LRU, optionally backed by Redis
 6. Supervisor tree with the reload and HTTP services

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for server.shutdown_timeout before the process exits.

# Example Usage

	export MONGO_URI=mongodb://localhost:27017
	export MONGO_DATABASE=food_ordering
	./foodrec-server

Offline with the bundled CSV layout:

	DATASET_SOURCE=csv DATASET_CSV_DIR=./datasets ./foodrec-server recommend u42 --top-n 5
*/
package main
