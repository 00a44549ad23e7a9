// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/foodrec/config.yaml",
	"/etc/foodrec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotenvPathEnvVar overrides the dotenv file location (default .env).
const DotenvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}

	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    5 * time.Minute, // POST /reload-data waits for a full rebuild
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Mongo: MongoConfig{
			URI:                     "mongodb://localhost:27017",
			Database:                "food_ordering",
			FoodsCollection:         "foods",
			OrdersCollection:        "orders",
			ConnectTimeout:          10 * time.Second,
			QueryTimeout:            time.Minute,
			BreakerFailureThreshold: 3,
			BreakerTimeout:          30 * time.Second,
		},
		Dataset: DatasetConfig{
			Source: SourceMongo,
			CSVDir: "datasets",
		},
		Redis: RedisConfig{
			Enabled:  false,
			Addr:     "localhost:6379",
			PoolSize: 20,
		},
		Recommend: RecommendConfig{
			Factors:          50,
			Iterations:       20,
			Regularization:   0.01,
			Alpha:            1.0,
			InteractionScale: 10,
			Workers:          workers,
			Seed:             42,
			MaxFeatures:      5000,
			IncludeCategory:  true,
			Stem:             true,
			DefaultTopN:      10,
			MaxTopN:          100,
			BuildTimeout:     5 * time.Minute,
			ReloadInterval:   0,
			ReloadOnStartup:  true,
			CacheTTL:         5 * time.Minute,
			CacheCapacity:    10000,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load reads configuration from defaults, .env, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Dotenv: .env exported to the environment (existing variables win)
//  3. Config File: Optional YAML config file (if exists)
//  4. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// MONGO_URI -> mongo.uri, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotenv exports variables from the dotenv file. A missing default file
// is not an error; a missing file named by DOTENV_PATH is.
func loadDotenv() error {
	path := os.Getenv(DotenvPathEnvVar)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load dotenv file %s: %w", path, err)
	}
	return nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"port":                  "server.port",

	// MongoDB
	"mongo_uri":                       "mongo.uri",
	"mongodb_uri":                     "mongo.uri",
	"mongo_database":                  "mongo.database",
	"mongo_db":                        "mongo.database",
	"mongo_foods_collection":          "mongo.foods_collection",
	"mongo_orders_collection":         "mongo.orders_collection",
	"mongo_connect_timeout":           "mongo.connect_timeout",
	"mongo_query_timeout":             "mongo.query_timeout",
	"mongo_breaker_failure_threshold": "mongo.breaker_failure_threshold",
	"mongo_breaker_timeout":           "mongo.breaker_timeout",

	// Dataset
	"dataset_source":  "dataset.source",
	"dataset_csv_dir": "dataset.csv_dir",

	// Redis
	"redis_enabled":   "redis.enabled",
	"redis_addr":      "redis.addr",
	"redis_password":  "redis.password",
	"redis_db":        "redis.db",
	"redis_pool_size": "redis.pool_size",

	// Recommendation engine
	"recommend_factors":           "recommend.factors",
	"recommend_iterations":        "recommend.iterations",
	"recommend_regularization":    "recommend.regularization",
	"recommend_alpha":             "recommend.alpha",
	"recommend_interaction_scale": "recommend.interaction_scale",
	"recommend_workers":           "recommend.workers",
	"recommend_seed":              "recommend.seed",
	"recommend_max_features":      "recommend.max_features",
	"recommend_include_category":  "recommend.include_category",
	"recommend_stem":              "recommend.stem",
	"recommend_default_top_n":     "recommend.default_top_n",
	"recommend_max_top_n":         "recommend.max_top_n",
	"recommend_build_timeout":     "recommend.build_timeout",
	"recommend_reload_interval":   "recommend.reload_interval",
	"recommend_reload_on_startup": "recommend.reload_on_startup",
	"recommend_cache_ttl":         "recommend.cache_ttl",
	"recommend_cache_capacity":    "recommend.cache_capacity",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped, so unrelated environment
// variables cannot pollute the configuration.
//
// Examples:
//   - MONGO_URI -> mongo.uri
//   - HTTP_PORT -> server.port
//   - RECOMMEND_FACTORS -> recommend.factors
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
