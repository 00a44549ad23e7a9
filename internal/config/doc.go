// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

/*
Package config provides centralized configuration management for Foodrec.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. A dotenv file (.env, or DOTENV_PATH) exported to the process environment
 3. An optional YAML file (CONFIG_PATH, config.yaml, /etc/foodrec/config.yaml)
 4. Mapped environment variables

Only variables listed in envMappings are read, so unrelated variables in the
environment never reach the configuration.

# Environment Variables

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 127.0.0.1)
  - HTTP_PORT, PORT: Listen port (default: 8000)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 30s)

Data Source (DatasetConfig, MongoConfig):
  - DATASET_SOURCE: mongo or csv (default: mongo)
  - DATASET_CSV_DIR: Directory holding foods.csv and orders.csv
  - MONGO_URI: Connection string (default: mongodb://localhost:27017)
  - MONGO_DATABASE: Database name (default: food_ordering)
  - MONGO_FOODS_COLLECTION, MONGO_ORDERS_COLLECTION (default: foods, orders)
  - MONGO_BREAKER_FAILURE_THRESHOLD, MONGO_BREAKER_TIMEOUT: Circuit breaker

Result Cache (RedisConfig, RecommendConfig):
  - RECOMMEND_CACHE_TTL: Result reuse window, 0 disables (default: 5m)
  - RECOMMEND_CACHE_CAPACITY: In-process entries (default: 10000)
  - REDIS_ENABLED, REDIS_ADDR, REDIS_PASSWORD, REDIS_DB: Shared second tier

Recommendation Engine (RecommendConfig):
  - RECOMMEND_FACTORS (50), RECOMMEND_ITERATIONS (20)
  - RECOMMEND_REGULARIZATION (0.01), RECOMMEND_ALPHA (1.0)
  - RECOMMEND_INTERACTION_SCALE (10)
  - RECOMMEND_MAX_FEATURES (5000), RECOMMEND_STEM, RECOMMEND_INCLUDE_CATEGORY
  - RECOMMEND_DEFAULT_TOP_N (10), RECOMMEND_MAX_TOP_N (100)
  - RECOMMEND_RELOAD_INTERVAL: Periodic rebuild, 0 disables
  - RECOMMEND_RELOAD_ON_STARTUP: Build at boot (default: true)

Security (SecurityConfig):
  - CORS_ORIGINS: Comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller location

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	logging.Init(cfg.LoggingSetup())
*/
package config
