// Package storage provides the data persistence layer for the dashboard.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrEmptySlice     = errors.New("slice cannot be empty")
	ErrInvalidRecord  = errors.New("invalid KPI record")
	ErrInvalidSession = errors.New("invalid upload session")
	ErrInvalidStatus  = errors.New("invalid upload status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecords validates rows about to be stored for a location.
func validateRecords(rows []model.RawRow) error {
	if rows == nil {
		return fmt.Errorf("%w: rows", ErrNilParameter)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: rows", ErrEmptySlice)
	}

	for i := range rows {
		if err := validateRecord(&rows[i]); err != nil {
			return fmt.Errorf("row at index %d: %w", i, err)
		}
	}
	return nil
}

// validateRecord requires a row to be nameable.
func validateRecord(row *model.RawRow) error {
	if row == nil {
		return fmt.Errorf("%w: row", ErrNilParameter)
	}
	if strings.TrimSpace(row.Tags) == "" && strings.TrimSpace(row.Parameters) == "" {
		return fmt.Errorf("%w: missing tags and parameters", ErrInvalidRecord)
	}
	return nil
}

// validateSession validates an upload session.
func validateSession(session *model.UploadSession) error {
	if session == nil {
		return fmt.Errorf("%w: session", ErrNilParameter)
	}
	if strings.TrimSpace(session.FileName) == "" {
		return fmt.Errorf("%w: missing file name", ErrInvalidSession)
	}
	if strings.TrimSpace(session.Location) == "" {
		return fmt.Errorf("%w: missing location", ErrInvalidSession)
	}
	if session.RecordsCount < 0 || session.FileSize < 0 {
		return fmt.Errorf("%w: negative counts", ErrInvalidSession)
	}

	switch session.Status {
	case model.UploadSuccess, model.UploadError, model.UploadProcessing:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStatus, session.Status)
	}
	return nil
}
