package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/common"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// ReplaceLocationRecords swaps every stored record of a location for rows.
// The delete and the inserts happen in one transaction.
func (s *SQLiteStorage) ReplaceLocationRecords(ctx context.Context, location, fileName string, rows []model.RawRow) error {
	if err := validateString(location, "location"); err != nil {
		return err
	}
	index := model.NewLocationIndex()
	index.Add(strings.TrimSpace(location), rows...)
	return s.ReplaceIndexRecords(ctx, fileName, index)
}

// ReplaceIndexRecords swaps the stored records of every location in index
// inside a single transaction. Either every location is replaced or none is.
func (s *SQLiteStorage) ReplaceIndexRecords(ctx context.Context, fileName string, index *model.LocationIndex) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if index == nil {
		return fmt.Errorf("%w: index", ErrNilParameter)
	}
	if index.Len() == 0 {
		return fmt.Errorf("%w: index", ErrEmptySlice)
	}
	for _, location := range index.Locations() {
		if err := validateString(location, "location"); err != nil {
			return err
		}
		if err := validateRecords(index.Rows(location)); err != nil {
			return fmt.Errorf("%s: %w", location, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO kpi_records (
			location_id, tags, parameters, monthly_target, target_mtd,
			actual_as_on_date, shortfall, percentage_ach, file_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, location := range index.Locations() {
		rows := index.Rows(location)
		replaced, err := replaceLocationTx(ctx, tx, stmt, strings.TrimSpace(location), fileName, rows)
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", location, err)
		}
		slog.Debug("Replaced location records",
			"location", location,
			"file", fileName,
			"removed", replaced,
			"inserted", len(rows))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// replaceLocationTx clears one location and inserts rows through stmt.
// It returns how many records were removed.
func replaceLocationTx(ctx context.Context, tx *sql.Tx, stmt *sql.Stmt, location, fileName string, rows []model.RawRow) (int64, error) {
	locationID, err := ensureLocationTx(ctx, tx, location)
	if err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM kpi_records WHERE location_id = ?`, locationID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear records for %s: %w", location, err)
	}
	replaced, _ := result.RowsAffected()

	for i, row := range rows {
		_, err := stmt.ExecContext(ctx,
			locationID,
			strings.TrimSpace(row.Tags),
			strings.TrimSpace(row.Parameters),
			nullFloat(row.MonthlyTarget),
			nullFloat(row.TargetMTD),
			nullFloat(row.ActualAsOnDate),
			nullFloat(row.Shortfall),
			nullFloat(row.PercentageAch),
			fileName,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	return replaced, nil
}

// GetRecordsByLocation returns the stored rows of one location in upload order.
func (s *SQLiteStorage) GetRecordsByLocation(ctx context.Context, location string) ([]model.RawRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(location, "location"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.name, r.tags, r.parameters, r.monthly_target, r.target_mtd,
			r.actual_as_on_date, r.shortfall, r.percentage_ach
		FROM kpi_records r
		JOIN locations l ON l.id = r.location_id
		WHERE l.name = ?
		ORDER BY r.id
	`, strings.TrimSpace(location))
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []model.RawRow{}
	for rows.Next() {
		row, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, row)
	}
	return records, rows.Err()
}

// GetLocationIndex materializes every stored location into a snapshot.
// Locations keep the order in which they were first registered.
func (s *SQLiteStorage) GetLocationIndex(ctx context.Context) (*model.LocationIndex, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	index := model.NewLocationIndex()

	names, err := s.db.QueryContext(ctx, `SELECT name FROM locations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	for names.Next() {
		var name string
		if err := names.Scan(&name); err != nil {
			_ = names.Close()
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		index.Add(name)
	}
	if err := names.Err(); err != nil {
		_ = names.Close()
		return nil, err
	}
	_ = names.Close()

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.name, r.tags, r.parameters, r.monthly_target, r.target_mtd,
			r.actual_as_on_date, r.shortfall, r.percentage_ach
		FROM kpi_records r
		JOIN locations l ON l.id = r.location_id
		ORDER BY l.id, r.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	count := 0
	for rows.Next() {
		row, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		index.Add(row.Location, row)
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slog.Debug("Loaded location index", "locations", index.Len(), "records", count)
	return index, nil
}

// GetLocations lists known locations with their record counts.
func (s *SQLiteStorage) GetLocations(ctx context.Context) ([]model.LocationInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.name, l.created_at, COUNT(r.id)
		FROM locations l
		LEFT JOIN kpi_records r ON r.location_id = l.id
		GROUP BY l.id
		ORDER BY l.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	locations := []model.LocationInfo{}
	for rows.Next() {
		var info model.LocationInfo
		if err := rows.Scan(&info.Name, &info.FirstSeen, &info.RecordCount); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, info)
	}
	return locations, rows.Err()
}

// DeleteLocation removes a location and its records, returning how many records were removed.
func (s *SQLiteStorage) DeleteLocation(ctx context.Context, location string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(location, "location"); err != nil {
		return 0, err
	}
	location = strings.TrimSpace(location)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var locationID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM locations WHERE name = ?`, location).Scan(&locationID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("location %q: %w", location, common.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up location: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM kpi_records WHERE location_id = ?`, locationID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	removed, _ := result.RowsAffected()

	if _, err := tx.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, locationID); err != nil {
		return 0, fmt.Errorf("failed to delete location: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}

	slog.Info("Deleted location", "location", location, "records", removed)
	return int(removed), nil
}

func ensureLocationTx(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO locations (name) VALUES (?)`, name); err != nil {
		return 0, fmt.Errorf("failed to register location %s: %w", name, err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM locations WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to look up location %s: %w", name, err)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(scanner rowScanner) (model.RawRow, error) {
	var row model.RawRow
	var target, targetMTD, actual, short, percent sql.NullFloat64
	if err := scanner.Scan(
		&row.Location, &row.Tags, &row.Parameters,
		&target, &targetMTD, &actual, &short, &percent,
	); err != nil {
		return model.RawRow{}, fmt.Errorf("failed to scan record: %w", err)
	}

	row.MonthlyTarget = floatPtr(target)
	row.TargetMTD = floatPtr(targetMTD)
	row.ActualAsOnDate = floatPtr(actual)
	row.Shortfall = floatPtr(short)
	row.PercentageAch = floatPtr(percent)
	return row, nil
}

// nullFloat stores absent and non-finite values as NULL.
func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return model.Float(v.Float64)
}
