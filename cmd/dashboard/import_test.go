package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/ingest"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

func TestImportCommand_Location(t *testing.T) {
	dbPath := setupCommandTest(t)
	file := writeSampleCSV(t, t.TempDir(), "kalina.csv")

	out, err := runCommand(t, importCmd(), "", file, "--location", "Kalina", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 records from kalina.csv (Kalina)")

	store := openStore(t, dbPath)
	rows, err := store.GetRecordsByLocation(context.Background(), "Kalina")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "PM THROUGHPUT", rows[0].Parameters)

	sessions, err := store.GetUploadSessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, model.UploadSuccess, sessions[0].Status)
	assert.Equal(t, "Kalina", sessions[0].Location)
	assert.Equal(t, 3, sessions[0].RecordsCount)
	assert.NotEmpty(t, sessions[0].ID)
}

func TestImportCommand_ReplacesLocation(t *testing.T) {
	dbPath := setupCommandTest(t)
	file := writeSampleCSV(t, t.TempDir(), "kalina.csv")

	_, err := runCommand(t, importCmd(), "", file, "--location", "Kalina", "--no-progress")
	require.NoError(t, err)
	_, err = runCommand(t, importCmd(), "", file, "--location", "Kalina", "--no-progress")
	require.NoError(t, err)

	store := openStore(t, dbPath)
	rows, err := store.GetRecordsByLocation(context.Background(), "Kalina")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestImportCommand_GroupsByLocationColumn(t *testing.T) {
	dbPath := setupCommandTest(t)
	file := writeSampleCSV(t, t.TempDir(), "region.csv")

	out, err := runCommand(t, importCmd(), "", file, "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, ingest.SampleLocation)

	store := openStore(t, dbPath)
	locations, err := store.GetLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, ingest.SampleLocation, locations[0].Name)

	sessions, err := store.GetUploadSessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, ingest.SampleLocation, sessions[0].Location)
}

func TestImportCommand_MissingLocation(t *testing.T) {
	setupCommandTest(t)
	file := filepath.Join(t.TempDir(), "no-location.csv")
	require.NoError(t, os.WriteFile(file, []byte("Parameters,Monthly Target\nPaid Service,100\n"), 0o600))

	out, err := runCommand(t, importCmd(), "", file, "--no-progress")
	require.Error(t, err)
	assert.Contains(t, out, "--location")
}

func TestImportCommand_DryRun(t *testing.T) {
	dbPath := setupCommandTest(t)
	file := writeSampleCSV(t, t.TempDir(), "kalina.csv")

	out, err := runCommand(t, importCmd(), "", file, "--location", "Kalina", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Validated 3 records")
	assert.NoFileExists(t, dbPath)
}

func TestImportCommand_SkippedRows(t *testing.T) {
	dbPath := setupCommandTest(t)
	file := filepath.Join(t.TempDir(), "partial.csv")
	content := "Parameters,Monthly Target,Actual As On Date,% ACH\n" +
		"Paid Service,100,90,90\n" +
		"Labour Revenue,abc,10,10\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	out, err := runCommand(t, importCmd(), "", file, "--location", "Sewri", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 records")
	assert.Contains(t, out, "Row 3")

	store := openStore(t, dbPath)
	sessions, err := store.GetUploadSessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, model.UploadSuccess, sessions[0].Status)
	assert.Len(t, sessions[0].Errors, 1)
}

func TestImportCommand_FailedFile(t *testing.T) {
	dbPath := setupCommandTest(t)
	dir := t.TempDir()
	good := writeSampleCSV(t, dir, "good.csv")
	bad := filepath.Join(dir, "bad.pdf")
	require.NoError(t, os.WriteFile(bad, []byte("%PDF"), 0o600))

	out, err := runCommand(t, importCmd(), "", good, bad, "--location", "Kalina", "--no-progress")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out, "Imported 3 records from good.csv")
	assert.Contains(t, out, "bad.pdf")

	store := openStore(t, dbPath)
	sessions, err := store.GetUploadSessions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	statuses := []model.UploadStatus{sessions[0].Status, sessions[1].Status}
	assert.ElementsMatch(t, []model.UploadStatus{model.UploadSuccess, model.UploadError}, statuses)
}

func TestParseUpload_ForcedLocation(t *testing.T) {
	file := writeSampleCSV(t, t.TempDir(), "sample.csv")

	index, skipped, err := parseUpload(file, importOptions{Location: "Worli"})
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, []string{"Worli"}, index.Locations())
	assert.Len(t, index.Rows("Worli"), 3)
}

func TestImportCommand_FailedLocationKeepsEarlierLocations(t *testing.T) {
	dbPath := setupCommandTest(t)
	ctx := context.Background()

	store := openStore(t, dbPath)
	require.NoError(t, store.ReplaceLocationRecords(ctx, "Kalina", "old.csv",
		[]model.RawRow{{Parameters: "Old Metric", MonthlyTarget: model.Float(1)}}))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `
		CREATE TRIGGER reject_sewri BEFORE INSERT ON locations
		WHEN NEW.name = 'Sewri'
		BEGIN SELECT RAISE(ABORT, 'disk I/O error'); END`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	file := filepath.Join(t.TempDir(), "region.csv")
	require.NoError(t, os.WriteFile(file, []byte(
		"Location,Parameters,Monthly Target,Actual As On Date,Percentage Ach\n"+
			"Kalina,Labour,100,80,80\n"+
			"Sewri,Labour,100,90,90\n"), 0o600))

	out, err := runCommand(t, importCmd(), "", file, "--no-progress")
	require.Error(t, err)
	assert.Contains(t, out, "failed to save Sewri")

	rows, err := store.GetRecordsByLocation(ctx, "Kalina")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Old Metric", rows[0].Parameters)

	sessions, err := store.GetUploadSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, model.UploadError, sessions[0].Status)
	assert.Zero(t, sessions[0].RecordsCount)
}
