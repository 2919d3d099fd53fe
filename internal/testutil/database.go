// Package testutil provides shared test helpers: throwaway SQLite stores and
// fluent builders for KPI rows.
package testutil

import (
	"context"
	"testing"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/service"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database seeded with the given index.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.FixtureTwoLocations())
func SetupTestDB(t *testing.T, seed *model.LocationIndex) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	db := &TestDB{Storage: store, t: t}
	db.Seed(seed)
	return db
}

// Seed stores every non-empty location of the index.
func (db *TestDB) Seed(index *model.LocationIndex) {
	db.t.Helper()

	ctx := context.Background()
	for _, location := range index.Locations() {
		rows := index.Rows(location)
		if len(rows) == 0 {
			continue
		}
		if err := db.Storage.ReplaceLocationRecords(ctx, location, location+".csv", rows); err != nil {
			db.t.Fatalf("failed to seed location %q: %v", location, err)
		}
	}
}

// MustIndex loads the stored snapshot or fails the test.
func (db *TestDB) MustIndex() *model.LocationIndex {
	db.t.Helper()

	index, err := db.Storage.GetLocationIndex(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load location index: %v", err)
	}
	return index
}
