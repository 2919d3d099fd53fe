// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// KPI record operations
	ReplaceLocationRecords(ctx context.Context, location, fileName string, rows []model.RawRow) error
	ReplaceIndexRecords(ctx context.Context, fileName string, index *model.LocationIndex) error
	GetRecordsByLocation(ctx context.Context, location string) ([]model.RawRow, error)
	GetLocationIndex(ctx context.Context) (*model.LocationIndex, error)
	GetLocations(ctx context.Context) ([]model.LocationInfo, error)
	DeleteLocation(ctx context.Context, location string) (int, error)

	// Upload session operations
	SaveUploadSession(ctx context.Context, session *model.UploadSession) error
	GetUploadSessions(ctx context.Context, limit int) ([]model.UploadSession, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// IndexSource supplies location index snapshots to presentation layers.
type IndexSource interface {
	GetLocationIndex(ctx context.Context) (*model.LocationIndex, error)
}

// ViewExporter publishes a dashboard view to an external destination and
// returns an identifier for where it was written.
type ViewExporter interface {
	Export(ctx context.Context, view kpi.View) (string, error)
}
