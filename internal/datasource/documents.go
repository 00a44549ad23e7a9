// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package datasource

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/tomtom215/foodrec/internal/recommend"
	"github.com/tomtom215/foodrec/internal/validation"
)

// DocumentID is an identifier stored either as an ObjectID, a string or an
// integer. All forms decode to a string; ObjectIDs use their hex form.
type DocumentID string

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (id *DocumentID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.ObjectID:
		oid, ok := raw.ObjectIDOK()
		if !ok {
			return fmt.Errorf("decode object id")
		}
		*id = DocumentID(oid.Hex())
	case bsontype.String:
		s, ok := raw.StringValueOK()
		if !ok {
			return fmt.Errorf("decode string id")
		}
		*id = DocumentID(strings.TrimSpace(s))
	case bsontype.Int32:
		v, _ := raw.Int32OK()
		*id = DocumentID(strconv.FormatInt(int64(v), 10))
	case bsontype.Int64:
		v, _ := raw.Int64OK()
		*id = DocumentID(strconv.FormatInt(v, 10))
	case bsontype.Null, bsontype.Undefined:
		*id = ""
	default:
		return fmt.Errorf("unsupported id type %s", t)
	}
	return nil
}

// String returns the id as a string.
func (id DocumentID) String() string {
	return string(id)
}

// FoodDocument is a record of the foods collection.
type FoodDocument struct {
	ID          DocumentID `bson:"_id" json:"_id" validate:"required,notblank"`
	Name        string     `bson:"name" json:"name" validate:"required,notblank"`
	Description string     `bson:"description" json:"description"`
	Category    string     `bson:"category" json:"category"`
}

// OrderItemDocument is one line of an order.
type OrderItemDocument struct {
	ID DocumentID `bson:"_id" json:"_id" validate:"required,notblank"`
}

// OrderDocument is a record of the orders collection.
type OrderDocument struct {
	ID     DocumentID          `bson:"_id" json:"_id"`
	UserID DocumentID          `bson:"userId" json:"userId" validate:"required,notblank"`
	Items  []OrderItemDocument `bson:"items" json:"items"`
	Date   time.Time           `bson:"date" json:"date"`
}

// LoadStats counts what a load kept and skipped.
type LoadStats struct {
	Foods          int
	DuplicateFoods int
	InvalidFoods   int
	Orders         int
	InvalidOrders  int
	InvalidItems   int
	Interactions   int
	DistinctUsers  int
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
//
//nolint:gocritic // value receiver keeps LoadStats usable in log calls
func (s LoadStats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("foods", s.Foods).
		Int("duplicate_foods", s.DuplicateFoods).
		Int("invalid_foods", s.InvalidFoods).
		Int("orders", s.Orders).
		Int("invalid_orders", s.InvalidOrders).
		Int("invalid_items", s.InvalidItems).
		Int("interactions", s.Interactions).
		Int("users", s.DistinctUsers)
}

// datasetBuilder accumulates validated records in input order.
type datasetBuilder struct {
	logger   zerolog.Logger
	ds       recommend.Dataset
	foodSeen map[string]struct{}
	userSeen map[string]struct{}
	stats    LoadStats
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newDatasetBuilder(logger zerolog.Logger) *datasetBuilder {
	return &datasetBuilder{
		logger:   logger,
		foodSeen: make(map[string]struct{}),
		userSeen: make(map[string]struct{}),
	}
}

// addFood validates doc and appends it unless its id was already seen.
//
//nolint:gocritic // FoodDocument passed by value for immutability
func (b *datasetBuilder) addFood(doc FoodDocument) {
	if err := validation.ValidateStruct(&doc); err != nil {
		b.stats.InvalidFoods++
		b.logger.Warn().Str("food_id", doc.ID.String()).Str("reason", err.Error()).Msg("skipping invalid food")
		return
	}

	id := doc.ID.String()
	if _, dup := b.foodSeen[id]; dup {
		b.stats.DuplicateFoods++
		b.logger.Warn().Str("food_id", id).Msg("skipping duplicate food")
		return
	}
	b.foodSeen[id] = struct{}{}

	b.ds.Foods = append(b.ds.Foods, recommend.FoodItem{
		ID:          id,
		Name:        strings.TrimSpace(doc.Name),
		Description: strings.TrimSpace(doc.Description),
		Category:    strings.TrimSpace(doc.Category),
	})
	b.stats.Foods++
}

// addOrder validates doc and appends one interaction per valid item.
//
//nolint:gocritic // OrderDocument passed by value for immutability
func (b *datasetBuilder) addOrder(doc OrderDocument) {
	if err := validation.ValidateStruct(&doc); err != nil {
		b.stats.InvalidOrders++
		b.logger.Warn().Str("order_id", doc.ID.String()).Str("reason", err.Error()).Msg("skipping invalid order")
		return
	}
	b.stats.Orders++

	userID := doc.UserID.String()
	for i := range doc.Items {
		item := doc.Items[i]
		if err := validation.ValidateStruct(&item); err != nil {
			b.stats.InvalidItems++
			continue
		}
		b.addInteraction(recommend.Interaction{
			UserID:    userID,
			FoodID:    item.ID.String(),
			Weight:    1,
			Timestamp: doc.Date,
		})
	}
}

func (b *datasetBuilder) addInteraction(in recommend.Interaction) {
	if _, ok := b.userSeen[in.UserID]; !ok {
		b.userSeen[in.UserID] = struct{}{}
		b.ds.Users = append(b.ds.Users, in.UserID)
	}
	b.ds.Interactions = append(b.ds.Interactions, in)
	b.stats.Interactions++
}

// dataset returns the accumulated dataset or ErrDataUnavailable when no food survived.
func (b *datasetBuilder) dataset() (*recommend.Dataset, error) {
	b.stats.DistinctUsers = len(b.ds.Users)
	if len(b.ds.Foods) == 0 {
		return nil, fmt.Errorf("%w: no valid foods", recommend.ErrDataUnavailable)
	}
	ds := b.ds
	return &ds, nil
}
