// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

// Package datasource loads the food catalog and order history into a
// recommend.Dataset.
//
// Three implementations of recommend.DataSource are provided:
//
//   - MongoSource reads the foods and orders collections of the ordering
//     platform database, behind a circuit breaker.
//   - CSVSource reads foods.csv and orders.csv from a directory, for offline
//     use and fixtures.
//   - StaticSource serves a Dataset held in memory.
//
// Records are decoded into explicit document types and validated once at
// this boundary. Invalid records are skipped and counted; they never reach
// the engine. A source that cannot be read, or that yields no valid foods,
// fails with an error wrapping recommend.ErrDataUnavailable.
//
// Every ordered item becomes one Interaction of weight 1 stamped with the
// order date. Orders are read oldest first so that the interaction order,
// and therefore every first-seen index derived from it, is stable across
// reloads.
package datasource
