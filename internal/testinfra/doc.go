// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

// Package testinfra starts MongoDB and Redis containers for integration tests.
//
// Everything here is behind the integration build tag and requires Docker:
//
//	go test -tags integration ./...
//
// A typical test seeds Mongo, points a data source at it and reloads an
// engine:
//
//	func TestMongoReload(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo.Container)
//
//	    cfg := datasource.DefaultMongoConfig()
//	    cfg.URI = mongo.URI
//	    // ...
//	}
//
// Tests are skipped when the Docker daemon is unreachable. The first run
// pulls the images; later runs use the local cache.
package testinfra
