// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

//go:build integration

package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tomtom215/foodrec/internal/recommend"
	"github.com/tomtom215/foodrec/internal/testinfra"
)

func TestMongoSource_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, err := testinfra.NewMongoContainer(ctx)
	if err != nil {
		t.Fatalf("Failed to start Mongo container: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, container.Container)

	cfg := DefaultMongoConfig()
	cfg.URI = container.URI
	cfg.Database = "foodrec_test"

	client, err := Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	src := NewMongoSource(client, cfg, zerolog.Nop())
	defer src.Close(ctx) //nolint:errcheck

	t.Run("empty catalog is unavailable", func(t *testing.T) {
		_, err := src.Load(ctx)
		if !errors.Is(err, recommend.ErrDataUnavailable) {
			t.Errorf("err = %v, want ErrDataUnavailable", err)
		}
	})

	padThai := primitive.NewObjectID()
	ramen := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	db := client.Database(cfg.Database)
	if _, err := db.Collection(cfg.FoodsCollection).InsertMany(ctx, []interface{}{
		bson.M{"_id": padThai, "name": "Pad Thai", "description": "rice noodles", "category": "thai", "price": 12},
		bson.M{"_id": ramen, "name": "Ramen", "description": "pork broth"},
		bson.M{"_id": "legacy-1", "name": "Soup"},
		bson.M{"_id": primitive.NewObjectID(), "description": "nameless"},
	}); err != nil {
		t.Fatalf("seed foods: %v", err)
	}
	if _, err := db.Collection(cfg.OrdersCollection).InsertMany(ctx, []interface{}{
		bson.M{"userId": alice, "items": bson.A{bson.M{"_id": ramen}}, "date": day.Add(48 * time.Hour)},
		bson.M{"userId": alice, "items": bson.A{bson.M{"_id": padThai}, bson.M{"qty": 1}}, "date": day},
		bson.M{"userId": "bob", "items": bson.A{}, "date": day},
		bson.M{"items": bson.A{bson.M{"_id": ramen}}, "date": day},
	}); err != nil {
		t.Fatalf("seed orders: %v", err)
	}

	t.Run("loads validated dataset", func(t *testing.T) {
		ds, err := src.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}

		if len(ds.Foods) != 3 {
			t.Errorf("len(Foods) = %d, want 3", len(ds.Foods))
		}
		if len(ds.Interactions) != 2 {
			t.Fatalf("Interactions = %+v, want 2", ds.Interactions)
		}
		// Sorted by date: the pad thai order comes first.
		if ds.Interactions[0].FoodID != padThai.Hex() || ds.Interactions[1].FoodID != ramen.Hex() {
			t.Errorf("Interactions order = %+v", ds.Interactions)
		}
		if ds.Interactions[0].UserID != alice.Hex() {
			t.Errorf("UserID = %q, want %q", ds.Interactions[0].UserID, alice.Hex())
		}

		stats := src.LastStats()
		if stats.InvalidFoods != 1 || stats.InvalidOrders != 1 || stats.InvalidItems != 1 {
			t.Errorf("stats = %+v", stats)
		}
	})

	t.Run("connect fails on unreachable store", func(t *testing.T) {
		if err := src.Ping(ctx); err != nil {
			t.Fatalf("Ping: %v", err)
		}

		badCfg := cfg
		badCfg.URI = "mongodb://127.0.0.1:1"
		badCfg.ConnectTimeout = 500 * time.Millisecond
		if _, err := Connect(ctx, badCfg); err == nil {
			t.Error("Connect to closed port should fail")
		}
	})
}
