// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateRedis(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// validateDataset validates the selected source and its settings
func (c *Config) validateDataset() error {
	switch c.Dataset.Source {
	case SourceMongo:
		return c.validateMongo()
	case SourceCSV:
		if strings.TrimSpace(c.Dataset.CSVDir) == "" {
			return fmt.Errorf("DATASET_CSV_DIR is required when DATASET_SOURCE=csv")
		}
		return nil
	default:
		return fmt.Errorf("DATASET_SOURCE must be one of: %s, %s", SourceMongo, SourceCSV)
	}
}

func (c *Config) validateMongo() error {
	if !strings.HasPrefix(c.Mongo.URI, "mongodb://") && !strings.HasPrefix(c.Mongo.URI, "mongodb+srv://") {
		return fmt.Errorf("MONGO_URI must start with mongodb:// or mongodb+srv://")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGO_DATABASE is required")
	}
	if c.Mongo.FoodsCollection == "" || c.Mongo.OrdersCollection == "" {
		return fmt.Errorf("MONGO_FOODS_COLLECTION and MONGO_ORDERS_COLLECTION are required")
	}
	if c.Mongo.ConnectTimeout <= 0 || c.Mongo.QueryTimeout <= 0 {
		return fmt.Errorf("MONGO_CONNECT_TIMEOUT and MONGO_QUERY_TIMEOUT must be positive")
	}
	if c.Mongo.BreakerFailureThreshold == 0 {
		return fmt.Errorf("MONGO_BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	if c.Mongo.BreakerTimeout <= 0 {
		return fmt.Errorf("MONGO_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// validateRedis validates the shared cache (only if enabled)
func (c *Config) validateRedis() error {
	if !c.Redis.Enabled {
		return nil
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required when REDIS_ENABLED=true")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative")
	}
	return nil
}

// validateRecommend validates engine parameters and result limits
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.Factors < 1 {
		return fmt.Errorf("RECOMMEND_FACTORS must be at least 1")
	}
	if r.Iterations < 1 {
		return fmt.Errorf("RECOMMEND_ITERATIONS must be at least 1")
	}
	if r.Regularization < 0 || r.Alpha <= 0 || r.InteractionScale <= 0 {
		return fmt.Errorf("RECOMMEND_REGULARIZATION must be non-negative and RECOMMEND_ALPHA, RECOMMEND_INTERACTION_SCALE positive")
	}
	if r.Workers < 1 {
		return fmt.Errorf("RECOMMEND_WORKERS must be at least 1")
	}
	if r.MaxFeatures < 1 {
		return fmt.Errorf("RECOMMEND_MAX_FEATURES must be at least 1")
	}
	if r.DefaultTopN < 1 || r.MaxTopN < r.DefaultTopN {
		return fmt.Errorf("RECOMMEND_DEFAULT_TOP_N must be at least 1 and not exceed RECOMMEND_MAX_TOP_N (%d)", r.MaxTopN)
	}
	if r.BuildTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_BUILD_TIMEOUT must be positive")
	}
	if r.ReloadInterval < 0 || r.CacheTTL < 0 {
		return fmt.Errorf("RECOMMEND_RELOAD_INTERVAL and RECOMMEND_CACHE_TTL must not be negative")
	}
	if r.ReloadInterval > 0 && r.ReloadInterval < minReloadInterval {
		return fmt.Errorf("RECOMMEND_RELOAD_INTERVAL must be 0 or at least %v", minReloadInterval)
	}
	if r.CacheTTL > 0 && r.CacheCapacity < 1 {
		return fmt.Errorf("RECOMMEND_CACHE_CAPACITY must be at least 1 when the result cache is enabled")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window

	minReloadInterval = time.Minute
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
