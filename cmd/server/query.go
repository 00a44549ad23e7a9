// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/foodrec/internal/config"
	"github.com/tomtom215/foodrec/internal/logging"
	"github.com/tomtom215/foodrec/internal/models"
	"github.com/tomtom215/foodrec/internal/recommend"
)

// queryFunc computes the response body of a one-shot command.
type queryFunc func(ctx context.Context, engine *recommend.Engine, topN int) (any, error)

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <user_id>",
		Short: "Print hybrid recommendations for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := strings.TrimSpace(args[0])
			if userID == "" {
				return fmt.Errorf("user_id must not be blank")
			}
			return runQuery(cmd, func(ctx context.Context, engine *recommend.Engine, topN int) (any, error) {
				res, err := engine.Recommend(ctx, userID, topN)
				if err != nil {
					return nil, err
				}
				return models.RecommendResponse{UserID: userID, Recommendations: res.Items, Count: len(res.Items)}, nil
			})
		},
	}
	addTopNFlag(cmd)
	return cmd
}

func newSimilarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <food_id>",
		Short: "Print foods with the most similar descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			foodID := strings.TrimSpace(args[0])
			if foodID == "" {
				return fmt.Errorf("food_id must not be blank")
			}
			return runQuery(cmd, func(ctx context.Context, engine *recommend.Engine, topN int) (any, error) {
				res, err := engine.SimilarItems(ctx, foodID, topN)
				if err != nil {
					return nil, err
				}
				return models.SimilarResponse{FoodID: foodID, Similar: res.Items, Count: len(res.Items)}, nil
			})
		},
	}
	addTopNFlag(cmd)
	return cmd
}

func newPopularCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Print the most ordered foods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(ctx context.Context, engine *recommend.Engine, topN int) (any, error) {
				res, err := engine.Popular(ctx, topN)
				if err != nil {
					return nil, err
				}
				return models.PopularResponse{Recommendations: res.Items, Count: len(res.Items)}, nil
			})
		},
	}
	addTopNFlag(cmd)
	return cmd
}

func addTopNFlag(cmd *cobra.Command) {
	cmd.Flags().IntP("top-n", "n", 0, "Number of results (default: recommend.default_top_n)")
}

// resolveTopN applies the configured default and bounds to the flag value.
func resolveTopN(requested int, cfg *config.Config) (int, error) {
	if requested == 0 {
		return cfg.Recommend.DefaultTopN, nil
	}
	if requested < 1 || requested > cfg.Recommend.MaxTopN {
		return 0, fmt.Errorf("--top-n must be between 1 and %d", cfg.Recommend.MaxTopN)
	}
	return requested, nil
}

// runQuery builds a snapshot from the configured source, runs fn and prints
// its result as JSON. Logs go to stderr so stdout stays parseable.
func runQuery(cmd *cobra.Command, fn queryFunc) error {
	cfg, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	requested, _ := cmd.Flags().GetInt("top-n")
	topN, err := resolveTopN(requested, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Logger()

	source, err := buildSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeWithTimeout("data source", source.close)

	engine, err := buildEngine(cfg, source.source, logger)
	if err != nil {
		return err
	}

	stats, err := engine.Reload(ctx)
	if err != nil {
		return fmt.Errorf("build snapshot: %w", err)
	}
	logging.Debug().Uint64("version", stats.Version).Int("foods", stats.Foods).Msg("snapshot built")

	body, err := fn(ctx, engine, topN)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
