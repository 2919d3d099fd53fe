package model

import "time"

// UploadStatus is the outcome of a file upload.
type UploadStatus string

// Upload status constants.
const (
	UploadSuccess    UploadStatus = "success"
	UploadError      UploadStatus = "error"
	UploadProcessing UploadStatus = "processing"
)

// UploadSession records one file import for a location.
type UploadSession struct {
	UploadedAt   time.Time
	ID           string
	FileName     string
	Location     string
	Status       UploadStatus
	Errors       []string
	RecordsCount int
	FileSize     int64
}

// LocationInfo describes a location present in storage.
type LocationInfo struct {
	FirstSeen   time.Time
	Name        string
	RecordCount int
}
