// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package datasource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodrec/internal/recommend"
	"github.com/tomtom215/foodrec/internal/validation"
)

// File names read by CSVSource.
const (
	FoodsFile  = "foods.csv"
	OrdersFile = "orders.csv"
)

// orderRow is one line of orders.csv.
type orderRow struct {
	UserID string  `json:"user_id" validate:"required,notblank"`
	FoodID string  `json:"food_id" validate:"required,notblank"`
	Weight float64 `json:"interaction" validate:"gt=0"`
}

// timestampLayouts are tried in order for the timestamp column.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CSVSource reads foods.csv and orders.csv from a directory.
//
// foods.csv needs the columns food_id and name; description and category are
// optional. orders.csv needs user_id and food_id; interaction defaults to 1
// and timestamp to the zero time. Columns are matched by header name in any
// order. A missing orders.csv yields a dataset without interactions.
type CSVSource struct {
	dir    string
	logger zerolog.Logger
}

// NewCSVSource creates a source reading from dir.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCSVSource(dir string, logger zerolog.Logger) *CSVSource {
	return &CSVSource{
		dir:    dir,
		logger: logger.With().Str("component", "csv_source").Str("dir", dir).Logger(),
	}
}

// Load implements recommend.DataSource.
func (s *CSVSource) Load(ctx context.Context) (*recommend.Dataset, error) {
	b := newDatasetBuilder(s.logger)

	if err := s.readFoods(ctx, b); err != nil {
		return nil, fmt.Errorf("%w: %w", recommend.ErrDataUnavailable, err)
	}
	if err := s.readOrders(ctx, b); err != nil {
		return nil, fmt.Errorf("%w: %w", recommend.ErrDataUnavailable, err)
	}

	ds, err := b.dataset()
	if err != nil {
		return nil, err
	}

	s.logger.Info().EmbedObject(b.stats).Msg("loaded dataset from csv")
	return ds, nil
}

func (s *CSVSource) readFoods(ctx context.Context, b *datasetBuilder) error {
	f, err := os.Open(filepath.Join(s.dir, FoodsFile))
	if err != nil {
		return fmt.Errorf("open foods: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return readTable(ctx, f, []string{"food_id", "name"}, func(get func(string) string) {
		b.addFood(FoodDocument{
			ID:          DocumentID(strings.TrimSpace(get("food_id"))),
			Name:        get("name"),
			Description: get("description"),
			Category:    get("category"),
		})
	})
}

func (s *CSVSource) readOrders(ctx context.Context, b *datasetBuilder) error {
	f, err := os.Open(filepath.Join(s.dir, OrdersFile))
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn().Msg("orders.csv not found, loading catalog without interactions")
		return nil
	}
	if err != nil {
		return fmt.Errorf("open orders: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return readTable(ctx, f, []string{"user_id", "food_id"}, func(get func(string) string) {
		row := orderRow{
			UserID: strings.TrimSpace(get("user_id")),
			FoodID: strings.TrimSpace(get("food_id")),
			Weight: 1,
		}
		if raw := strings.TrimSpace(get("interaction")); raw != "" {
			w, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				b.stats.InvalidItems++
				s.logger.Warn().Str("value", raw).Msg("skipping order row with invalid interaction")
				return
			}
			row.Weight = w
		}
		if err := validation.ValidateStruct(&row); err != nil {
			b.stats.InvalidItems++
			s.logger.Warn().Str("reason", err.Error()).Msg("skipping invalid order row")
			return
		}

		b.stats.Orders++
		b.addInteraction(recommend.Interaction{
			UserID:    row.UserID,
			FoodID:    row.FoodID,
			Weight:    row.Weight,
			Timestamp: parseTimestamp(get("timestamp")),
		})
	})
}

// readTable reads a headed CSV stream and calls fn for each record. get
// returns the value of a named column, or "" when the column is absent.
func readTable(ctx context.Context, r io.Reader, required []string, fn func(get func(string) string)) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return fmt.Errorf("missing column %q", name)
		}
	}

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		fn(func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		})
	}
}

// parseTimestamp accepts the layouts in timestampLayouts or unix seconds.
// Unparseable values map to the zero time.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC()
	}
	return time.Time{}
}
