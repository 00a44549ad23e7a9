// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package datasource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodrec/internal/recommend"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestCSVSource_Load(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		FoodsFile: "food_id,name,description,category\n" +
			"1,Pad Thai,\"Rice noodles, peanuts\",thai\n" +
			"2,Ramen,Pork broth noodles,japanese\n" +
			"1,Duplicate,ignored,x\n" +
			",Nameless id,,\n",
		OrdersFile: "user_id,food_id,interaction,timestamp\n" +
			"u1,1,1,2025-01-01 10:00:00\n" +
			"u1,2,2,2025-01-02T10:00:00Z\n" +
			"u2,2,,1735725600\n" +
			" ,1,1,\n" +
			"u3,1,abc,\n" +
			"u3,1,0,\n",
	})

	ds, err := NewCSVSource(dir, zerolog.Nop()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(ds.Foods) != 2 {
		t.Fatalf("len(Foods) = %d, want 2", len(ds.Foods))
	}
	if ds.Foods[0].Description != "Rice noodles, peanuts" || ds.Foods[0].Category != "thai" {
		t.Errorf("Foods[0] = %+v", ds.Foods[0])
	}

	want := []recommend.Interaction{
		{UserID: "u1", FoodID: "1", Weight: 1, Timestamp: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)},
		{UserID: "u1", FoodID: "2", Weight: 2, Timestamp: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)},
		{UserID: "u2", FoodID: "2", Weight: 1, Timestamp: time.Unix(1735725600, 0).UTC()},
	}
	if len(ds.Interactions) != len(want) {
		t.Fatalf("Interactions = %+v, want %d records", ds.Interactions, len(want))
	}
	for i := range want {
		got := ds.Interactions[i]
		if got.UserID != want[i].UserID || got.FoodID != want[i].FoodID || got.Weight != want[i].Weight {
			t.Errorf("Interactions[%d] = %+v, want %+v", i, got, want[i])
		}
		if !got.Timestamp.Equal(want[i].Timestamp) {
			t.Errorf("Interactions[%d].Timestamp = %v, want %v", i, got.Timestamp, want[i].Timestamp)
		}
	}

	if len(ds.Users) != 2 || ds.Users[0] != "u1" || ds.Users[1] != "u2" {
		t.Errorf("Users = %v, want [u1 u2]", ds.Users)
	}
}

func TestCSVSource_ColumnOrderAndOptional(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		FoodsFile:  "\ufeffName,FOOD_ID\nCurry,c1\n",
		OrdersFile: "food_id,user_id\nc1,alice\n",
	})

	ds, err := NewCSVSource(dir, zerolog.Nop()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Foods) != 1 || ds.Foods[0].ID != "c1" || ds.Foods[0].Name != "Curry" {
		t.Errorf("Foods = %+v", ds.Foods)
	}
	if len(ds.Interactions) != 1 || ds.Interactions[0].Weight != 1 || !ds.Interactions[0].Timestamp.IsZero() {
		t.Errorf("Interactions = %+v", ds.Interactions)
	}
}

func TestCSVSource_MissingOrders(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		FoodsFile: "food_id,name\n1,Soup\n",
	})

	ds, err := NewCSVSource(dir, zerolog.Nop()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Foods) != 1 || len(ds.Interactions) != 0 {
		t.Errorf("dataset = %+v", ds)
	}
}

func TestCSVSource_Unavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
	}{
		{"missing foods file", map[string]string{OrdersFile: "user_id,food_id\nu,1\n"}},
		{"missing name column", map[string]string{FoodsFile: "food_id,title\n1,Soup\n"}},
		{"empty foods file", map[string]string{FoodsFile: ""}},
		{"header only", map[string]string{FoodsFile: "food_id,name\n"}},
		{"orders missing user column", map[string]string{
			FoodsFile:  "food_id,name\n1,Soup\n",
			OrdersFile: "customer,food_id\nu,1\n",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeFiles(t, tt.files)
			_, err := NewCSVSource(dir, zerolog.Nop()).Load(context.Background())
			if !errors.Is(err, recommend.ErrDataUnavailable) {
				t.Errorf("err = %v, want ErrDataUnavailable", err)
			}
		})
	}
}

func TestCSVSource_Cancelled(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		FoodsFile: "food_id,name\n1,Soup\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVSource(dir, zerolog.Nop()).Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"", time.Time{}},
		{"garbage", time.Time{}},
		{"2025-05-06", time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)},
		{"2025-05-06 07:08:09", time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)},
		{"2025-05-06T07:08:09+02:00", time.Date(2025, 5, 6, 5, 8, 9, 0, time.UTC)},
		{"0", time.Unix(0, 0).UTC()},
	}

	for _, tt := range tests {
		if got := parseTimestamp(tt.raw); !got.Equal(tt.want) {
			t.Errorf("parseTimestamp(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
