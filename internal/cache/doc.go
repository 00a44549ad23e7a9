// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

/*
Package cache stores computed recommendation lists between requests.

# Stores

A Store holds opaque byte payloads with a per-entry TTL:

  - MemoryStore: bounded LRU with lazy TTL expiration, O(1) operations.
  - RedisStore: go-redis backed store shared between replicas.
  - Tiered: reads through an ordered list of stores and backfills faster
    tiers on a hit in a slower one.

# Result cache

ResultCache encodes recommend.Result values with goccy/go-json. Keys embed
the snapshot version:

	rec:v3:user:alice:n:10
	rec:v3:similar:f42:n:5
	rec:v3:popular:-:n:10

A reload bumps the version, so lists computed from an older snapshot are
never served again and simply age out. No explicit purge is needed.

Cache failures never fail a request. Errors from a store are logged and the
lookup is treated as a miss.
*/
package cache
