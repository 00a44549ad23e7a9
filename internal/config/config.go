// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/foodrec/internal/cache"
	"github.com/tomtom215/foodrec/internal/datasource"
	"github.com/tomtom215/foodrec/internal/logging"
	"github.com/tomtom215/foodrec/internal/recommend"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in values from defaultConfig()
//  2. .env: Variables from a dotenv file are exported to the process
//     environment without overriding variables that are already set
//  3. Config File: Optional YAML config file (config.yaml)
//  4. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	engine, err := recommend.NewEngine(cfg.EngineConfig(), source, logger)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Mongo     MongoConfig     `koanf:"mongo"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Redis     RedisConfig     `koanf:"redis"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// MongoConfig holds the MongoDB data source settings.
type MongoConfig struct {
	URI              string        `koanf:"uri"`
	Database         string        `koanf:"database"`
	FoodsCollection  string        `koanf:"foods_collection"`
	OrdersCollection string        `koanf:"orders_collection"`
	ConnectTimeout   time.Duration `koanf:"connect_timeout"`
	QueryTimeout     time.Duration `koanf:"query_timeout"`

	// Circuit breaker around dataset loads.
	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`
}

// Dataset source kinds.
const (
	SourceMongo = "mongo"
	SourceCSV   = "csv"
)

// DatasetConfig selects the data source.
type DatasetConfig struct {
	// Source is "mongo" or "csv".
	Source string `koanf:"source"`

	// CSVDir holds foods.csv and orders.csv when Source is "csv".
	CSVDir string `koanf:"csv_dir"`
}

// RedisConfig holds the optional shared result cache.
type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

// RecommendConfig holds engine and result cache settings.
type RecommendConfig struct {
	Factors          int     `koanf:"factors"`
	Iterations       int     `koanf:"iterations"`
	Regularization   float64 `koanf:"regularization"`
	Alpha            float64 `koanf:"alpha"`
	InteractionScale float64 `koanf:"interaction_scale"`
	Workers          int     `koanf:"workers"`
	Seed             int64   `koanf:"seed"`

	MaxFeatures     int  `koanf:"max_features"`
	IncludeCategory bool `koanf:"include_category"`
	Stem            bool `koanf:"stem"`

	DefaultTopN int `koanf:"default_top_n"`
	MaxTopN     int `koanf:"max_top_n"`

	BuildTimeout time.Duration `koanf:"build_timeout"`

	// ReloadInterval schedules periodic reloads. Zero disables them.
	ReloadInterval time.Duration `koanf:"reload_interval"`

	// ReloadOnStartup builds the first snapshot at boot instead of on the
	// first request.
	ReloadOnStartup bool `koanf:"reload_on_startup"`

	// CacheTTL bounds how long a computed list is reused. Zero disables the
	// result cache.
	CacheTTL      time.Duration `koanf:"cache_ttl"`
	CacheCapacity int           `koanf:"cache_capacity"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// EngineConfig converts the recommend section to the engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		ALS: recommend.ALSConfig{
			Factors:          r.Factors,
			Iterations:       r.Iterations,
			Regularization:   r.Regularization,
			Alpha:            r.Alpha,
			InteractionScale: r.InteractionScale,
			Workers:          r.Workers,
			Seed:             r.Seed,
		},
		Content: recommend.ContentConfig{
			MaxFeatures:     r.MaxFeatures,
			IncludeCategory: r.IncludeCategory,
			Stem:            r.Stem,
		},
		Limits: recommend.LimitsConfig{
			DefaultTopN: r.DefaultTopN,
			MaxTopN:     r.MaxTopN,
		},
		BuildTimeout: r.BuildTimeout,
	}
}

// MongoSourceConfig converts the mongo section for datasource.Connect.
func (c *Config) MongoSourceConfig() datasource.MongoConfig {
	return datasource.MongoConfig{
		URI:              c.Mongo.URI,
		Database:         c.Mongo.Database,
		FoodsCollection:  c.Mongo.FoodsCollection,
		OrdersCollection: c.Mongo.OrdersCollection,
		ConnectTimeout:   c.Mongo.ConnectTimeout,
		QueryTimeout:     c.Mongo.QueryTimeout,
	}
}

// BreakerConfig returns the circuit breaker settings for the named source.
func (c *Config) BreakerConfig(name string) datasource.BreakerConfig {
	b := datasource.DefaultBreakerConfig(name)
	b.FailureThreshold = c.Mongo.BreakerFailureThreshold
	b.Timeout = c.Mongo.BreakerTimeout
	return b
}

// RedisStoreConfig converts the redis section for cache.NewRedisStore.
func (c *Config) RedisStoreConfig() cache.RedisConfig {
	rc := cache.DefaultRedisConfig()
	rc.Addr = c.Redis.Addr
	rc.Password = c.Redis.Password
	rc.DB = c.Redis.DB
	if c.Redis.PoolSize > 0 {
		rc.PoolSize = c.Redis.PoolSize
	}
	return rc
}

// LoggingSetup converts the logging section for logging.Init.
func (c *Config) LoggingSetup() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}

// String summarizes the configuration without secrets.
func (c *Config) String() string {
	return fmt.Sprintf("server=%s source=%s mongo_db=%s redis=%t factors=%d iterations=%d",
		c.Server.Addr(), c.Dataset.Source, c.Mongo.Database, c.Redis.Enabled,
		c.Recommend.Factors, c.Recommend.Iterations)
}
