package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// DefaultSessionLimit caps GetUploadSessions when no limit is given.
const DefaultSessionLimit = 50

// SaveUploadSession records an upload attempt.
// A missing ID or timestamp is filled in on the session passed in.
func (s *SQLiteStorage) SaveUploadSession(ctx context.Context, session *model.UploadSession) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSession(session); err != nil {
		return err
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.UploadedAt.IsZero() {
		session.UploadedAt = time.Now().UTC()
	}

	var errorMessages sql.NullString
	if len(session.Errors) > 0 {
		encoded, err := json.Marshal(session.Errors)
		if err != nil {
			return fmt.Errorf("failed to marshal upload errors: %w", err)
		}
		errorMessages = sql.NullString{String: string(encoded), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO upload_sessions (
			id, file_name, location, records_count, file_size,
			upload_status, error_messages, uploaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			location = excluded.location,
			records_count = excluded.records_count,
			upload_status = excluded.upload_status,
			error_messages = excluded.error_messages
	`,
		session.ID, session.FileName, session.Location, session.RecordsCount, session.FileSize,
		string(session.Status), errorMessages, session.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save upload session: %w", err)
	}
	return nil
}

// GetUploadSessions returns recent upload sessions, newest first.
func (s *SQLiteStorage) GetUploadSessions(ctx context.Context, limit int) ([]model.UploadSession, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSessionLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name, location, records_count, file_size,
			upload_status, error_messages, uploaded_at
		FROM upload_sessions
		ORDER BY uploaded_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upload sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []model.UploadSession{}
	for rows.Next() {
		var (
			session       model.UploadSession
			status        string
			errorMessages sql.NullString
		)
		if err := rows.Scan(
			&session.ID, &session.FileName, &session.Location, &session.RecordsCount,
			&session.FileSize, &status, &errorMessages, &session.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upload session: %w", err)
		}
		session.Status = model.UploadStatus(status)

		if errorMessages.Valid && errorMessages.String != "" {
			if err := json.Unmarshal([]byte(errorMessages.String), &session.Errors); err != nil {
				return nil, fmt.Errorf("failed to decode upload errors for %s: %w", session.ID, err)
			}
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
