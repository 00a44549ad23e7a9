// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package datasource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/foodrec/internal/recommend"
)

// MongoConfig holds connection settings for the ordering platform database.
type MongoConfig struct {
	URI              string
	Database         string
	FoodsCollection  string
	OrdersCollection string
	ConnectTimeout   time.Duration
	QueryTimeout     time.Duration
}

// DefaultMongoConfig returns defaults matching a local development database.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		URI:              "mongodb://localhost:27017",
		Database:         "food_ordering",
		FoodsCollection:  "foods",
		OrdersCollection: "orders",
		ConnectTimeout:   10 * time.Second,
		QueryTimeout:     time.Minute,
	}
}

// Open creates a client without waiting for a server. The driver dials in the
// background, so loads fail with ErrDataUnavailable until MongoDB is reachable.
func Open(cfg MongoConfig) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	return client, nil
}

// Connect opens a client and verifies it with a ping.
func Connect(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	client, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background()) //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// MongoSource reads foods and orders from MongoDB.
type MongoSource struct {
	client *mongo.Client
	foods  *mongo.Collection
	orders *mongo.Collection
	cfg    MongoConfig
	logger zerolog.Logger

	mu        sync.Mutex
	lastStats LoadStats
}

// NewMongoSource creates a source over an already connected client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMongoSource(client *mongo.Client, cfg MongoConfig, logger zerolog.Logger) *MongoSource {
	db := client.Database(cfg.Database)
	return &MongoSource{
		client: client,
		foods:  db.Collection(cfg.FoodsCollection),
		orders: db.Collection(cfg.OrdersCollection),
		cfg:    cfg,
		logger: logger.With().Str("component", "mongo_source").Str("database", cfg.Database).Logger(),
	}
}

// Load implements recommend.DataSource. Any driver error is wrapped in
// recommend.ErrDataUnavailable.
func (s *MongoSource) Load(ctx context.Context) (*recommend.Dataset, error) {
	if s.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.QueryTimeout)
		defer cancel()
	}

	b := newDatasetBuilder(s.logger)

	if err := s.readFoods(ctx, b); err != nil {
		return nil, fmt.Errorf("%w: read foods: %w", recommend.ErrDataUnavailable, err)
	}
	if err := s.readOrders(ctx, b); err != nil {
		return nil, fmt.Errorf("%w: read orders: %w", recommend.ErrDataUnavailable, err)
	}

	ds, err := b.dataset()
	s.mu.Lock()
	s.lastStats = b.stats
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.logger.Info().EmbedObject(b.stats).Msg("loaded dataset from mongo")
	return ds, nil
}

// LastStats returns the counters of the most recent Load.
func (s *MongoSource) LastStats() LoadStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStats
}

func (s *MongoSource) readFoods(ctx context.Context, b *datasetBuilder) error {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "description": 1, "category": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := s.foods.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx) //nolint:errcheck // cursor close error is not actionable

	for cur.Next(ctx) {
		var doc FoodDocument
		if err := cur.Decode(&doc); err != nil {
			b.stats.InvalidFoods++
			s.logger.Warn().Err(err).Msg("skipping undecodable food")
			continue
		}
		b.addFood(doc)
	}
	return cur.Err()
}

func (s *MongoSource) readOrders(ctx context.Context, b *datasetBuilder) error {
	opts := options.Find().
		SetProjection(bson.M{"userId": 1, "items._id": 1, "date": 1}).
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := s.orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx) //nolint:errcheck // cursor close error is not actionable

	for cur.Next(ctx) {
		var doc OrderDocument
		if err := cur.Decode(&doc); err != nil {
			b.stats.InvalidOrders++
			s.logger.Warn().Err(err).Msg("skipping undecodable order")
			continue
		}
		b.addOrder(doc)
	}
	return cur.Err()
}

// Ping checks that the database is reachable.
func (s *MongoSource) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
