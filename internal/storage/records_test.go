package storage

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/common"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

func TestSQLiteStorage_ReplaceLocationRecords(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceLocationRecords(ctx, "Kalina", "first.csv", createTestRows("First", 3)))
	require.NoError(t, store.ReplaceLocationRecords(ctx, "Kalina", "second.csv", createTestRows("Second", 2)))

	rows, err := store.GetRecordsByLocation(ctx, "Kalina")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Second Metric 0", rows[0].Parameters)
	assert.Equal(t, "Second Metric 1", rows[1].Parameters)
	assert.Equal(t, "Kalina", rows[0].Location)
}

func TestSQLiteStorage_ReplaceLocationRecords_PreservesNulls(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	rows := []model.RawRow{
		{Tags: "Inflow", Parameters: "Paid Service", MonthlyTarget: model.Float(200), ActualAsOnDate: model.Float(0)},
		{Tags: "Efficiency", PercentageAch: model.Float(math.NaN())},
	}
	require.NoError(t, store.ReplaceLocationRecords(ctx, "Sewri", "sewri.xlsx", rows))

	got, err := store.GetRecordsByLocation(ctx, "Sewri")
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].MonthlyTarget)
	assert.InDelta(t, 200.0, *got[0].MonthlyTarget, 0.0001)
	require.NotNil(t, got[0].ActualAsOnDate)
	assert.Zero(t, *got[0].ActualAsOnDate)
	assert.Nil(t, got[0].TargetMTD)
	assert.Nil(t, got[0].Shortfall)
	assert.Nil(t, got[0].PercentageAch)

	assert.Equal(t, "Efficiency", got[1].Tags)
	assert.Empty(t, got[1].Parameters)
	assert.Nil(t, got[1].PercentageAch, "NaN is stored as absent")
}

func TestSQLiteStorage_ReplaceLocationRecords_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		wantErr  error
		name     string
		location string
		rows     []model.RawRow
	}{
		{
			name:     "empty location",
			location: " ",
			rows:     createTestRows("x", 1),
			wantErr:  ErrEmptyString,
		},
		{
			name:     "nil rows",
			location: "Kalina",
			rows:     nil,
			wantErr:  ErrNilParameter,
		},
		{
			name:     "empty rows",
			location: "Kalina",
			rows:     []model.RawRow{},
			wantErr:  ErrEmptySlice,
		},
		{
			name:     "unnamed row",
			location: "Kalina",
			rows:     []model.RawRow{{MonthlyTarget: model.Float(10)}},
			wantErr:  ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.ReplaceLocationRecords(ctx, tt.location, "file.csv", tt.rows)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	locations, err := store.GetLocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, locations, "failed replacements must not register locations")
}

func TestSQLiteStorage_GetLocationIndex_Order(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceLocationRecords(ctx, "Kalina", "k.csv", createTestRows("K", 2)))
	require.NoError(t, store.ReplaceLocationRecords(ctx, "Sewri", "s.csv", createTestRows("S", 1)))
	// Re-uploading keeps the original position.
	require.NoError(t, store.ReplaceLocationRecords(ctx, "Kalina", "k2.csv", createTestRows("K2", 1)))

	index, err := store.GetLocationIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kalina", "Sewri"}, index.Locations())
	require.Len(t, index.Rows("Kalina"), 1)
	assert.Equal(t, "K2 Metric 0", index.Rows("Kalina")[0].Parameters)
	assert.Len(t, index.Rows("Sewri"), 1)
}

func TestSQLiteStorage_GetLocationIndex_Empty(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	index, err := store.GetLocationIndex(context.Background())
	require.NoError(t, err)
	assert.Zero(t, index.Len())
	assert.Empty(t, index.Locations())
}

func TestSQLiteStorage_GetLocations(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceLocationRecords(ctx, "Kalina", "k.csv", createTestRows("K", 4)))
	require.NoError(t, store.ReplaceLocationRecords(ctx, "Sewri", "s.csv", createTestRows("S", 2)))

	locations, err := store.GetLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, "Kalina", locations[0].Name)
	assert.Equal(t, 4, locations[0].RecordCount)
	assert.False(t, locations[0].FirstSeen.IsZero())
	assert.Equal(t, "Sewri", locations[1].Name)
	assert.Equal(t, 2, locations[1].RecordCount)
}

func TestSQLiteStorage_GetRecordsByLocation_Unknown(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	rows, err := store.GetRecordsByLocation(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestSQLiteStorage_DeleteLocation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceLocationRecords(ctx, "Kalina", "k.csv", createTestRows("K", 3)))
	require.NoError(t, store.ReplaceLocationRecords(ctx, "Sewri", "s.csv", createTestRows("S", 1)))

	removed, err := store.DeleteLocation(ctx, "Kalina")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	index, err := store.GetLocationIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sewri"}, index.Locations())

	_, err = store.DeleteLocation(ctx, "Kalina")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSQLiteStorage_ReplaceIndexRecords(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	index := model.NewLocationIndex()
	index.Add("Kalina", createTestRows("K", 2)...)
	index.Add("Sewri", createTestRows("S", 1)...)
	require.NoError(t, store.ReplaceIndexRecords(ctx, "region.csv", index))

	got, err := store.GetLocationIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kalina", "Sewri"}, got.Locations())
	assert.Len(t, got.Rows("Kalina"), 2)
	assert.Len(t, got.Rows("Sewri"), 1)
}

func TestSQLiteStorage_ReplaceIndexRecords_RollsBackEveryLocation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceLocationRecords(ctx, "Kalina", "old.csv", createTestRows("Old", 1)))
	_, err := store.db.ExecContext(ctx, `
		CREATE TRIGGER reject_sewri BEFORE INSERT ON locations
		WHEN NEW.name = 'Sewri'
		BEGIN SELECT RAISE(ABORT, 'disk I/O error'); END`)
	require.NoError(t, err)

	index := model.NewLocationIndex()
	index.Add("Kalina", createTestRows("New", 3)...)
	index.Add("Sewri", createTestRows("S", 1)...)
	err = store.ReplaceIndexRecords(ctx, "region.csv", index)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save Sewri")

	rows, err := store.GetRecordsByLocation(ctx, "Kalina")
	require.NoError(t, err)
	require.Len(t, rows, 1, "Kalina keeps its previous records")
	assert.Equal(t, "Old Metric 0", rows[0].Parameters)

	locations, err := store.GetLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Kalina", locations[0].Name)
}

func TestSQLiteStorage_ReplaceIndexRecords_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	invalid := model.NewLocationIndex()
	invalid.Add("Kalina", createTestRows("K", 1)...)
	invalid.Add("Sewri", model.RawRow{MonthlyTarget: model.Float(10)})

	tests := []struct {
		wantErr error
		index   *model.LocationIndex
		name    string
	}{
		{name: "nil index", index: nil, wantErr: ErrNilParameter},
		{name: "empty index", index: model.NewLocationIndex(), wantErr: ErrEmptySlice},
		{name: "invalid second location", index: invalid, wantErr: ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.ReplaceIndexRecords(ctx, "file.csv", tt.index)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	locations, err := store.GetLocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, locations)
}
