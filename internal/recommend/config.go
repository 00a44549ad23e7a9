// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/foodrec/internal/recommend/algorithms"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// ALS contains collaborative filtering parameters.
	ALS ALSConfig `json:"als"`

	// Content contains content-similarity parameters.
	Content ContentConfig `json:"content"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// BuildTimeout bounds a single snapshot build, including the data load.
	BuildTimeout time.Duration `json:"build_timeout"`
}

// ALSConfig contains parameters for the collaborative model.
type ALSConfig struct {
	Factors        int     `json:"factors"`
	Iterations     int     `json:"iterations"`
	Regularization float64 `json:"regularization"`
	Alpha          float64 `json:"alpha"`

	// InteractionScale multiplies summed interaction weights before fitting.
	InteractionScale float64 `json:"interaction_scale"`

	// Workers is the number of goroutines solving factor rows.
	Workers int `json:"workers"`

	Seed int64 `json:"seed"`
}

// ContentConfig contains parameters for the content index.
type ContentConfig struct {
	// MaxFeatures caps the TF-IDF vocabulary.
	MaxFeatures int `json:"max_features"`

	// IncludeCategory appends the food category to the indexed text.
	IncludeCategory bool `json:"include_category"`

	// Stem enables Snowball stemming of index terms.
	Stem bool `json:"stem"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	DefaultTopN int `json:"default_top_n"`
	MaxTopN     int `json:"max_top_n"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		ALS: ALSConfig{
			Factors:          50,
			Iterations:       20,
			Regularization:   0.01,
			Alpha:            1.0,
			InteractionScale: 10,
			Workers:          4,
			Seed:             42,
		},
		Content: ContentConfig{
			MaxFeatures:     5000,
			IncludeCategory: true,
			Stem:            true,
		},
		Limits: LimitsConfig{
			DefaultTopN: 10,
			MaxTopN:     100,
		},
		BuildTimeout: 5 * time.Minute,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ALS.Factors < 1 {
		return fmt.Errorf("%w: als.factors must be positive, got %d", ErrInvalidConfig, c.ALS.Factors)
	}
	if c.ALS.Iterations < 1 {
		return fmt.Errorf("%w: als.iterations must be positive, got %d", ErrInvalidConfig, c.ALS.Iterations)
	}
	if c.ALS.Regularization < 0 {
		return fmt.Errorf("%w: als.regularization must be non-negative, got %f", ErrInvalidConfig, c.ALS.Regularization)
	}
	if c.ALS.Alpha <= 0 {
		return fmt.Errorf("%w: als.alpha must be positive, got %f", ErrInvalidConfig, c.ALS.Alpha)
	}
	if c.ALS.InteractionScale <= 0 {
		return fmt.Errorf("%w: als.interaction_scale must be positive, got %f", ErrInvalidConfig, c.ALS.InteractionScale)
	}
	if c.Content.MaxFeatures < 1 {
		return fmt.Errorf("%w: content.max_features must be positive, got %d", ErrInvalidConfig, c.Content.MaxFeatures)
	}
	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("%w: limits.default_top_n must be positive, got %d", ErrInvalidConfig, c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("%w: limits.max_top_n must be >= limits.default_top_n, got %d < %d",
			ErrInvalidConfig, c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.BuildTimeout <= 0 {
		return fmt.Errorf("%w: build_timeout must be positive, got %v", ErrInvalidConfig, c.BuildTimeout)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// algorithmsALS converts to the algorithms package configuration.
func (c *Config) algorithmsALS() algorithms.ALSConfig {
	return algorithms.ALSConfig{
		NumFactors:     c.ALS.Factors,
		NumIterations:  c.ALS.Iterations,
		Regularization: c.ALS.Regularization,
		Alpha:          c.ALS.Alpha,
		NumWorkers:     c.ALS.Workers,
		Seed:           c.ALS.Seed,
	}
}

func (c *Config) algorithmsContent() algorithms.ContentConfig {
	return algorithms.ContentConfig{
		MaxFeatures: c.Content.MaxFeatures,
	}
}
