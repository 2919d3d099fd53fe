// Package ingest turns uploaded KPI spreadsheets into validated rows.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// DefaultMaxFileSize is the upload limit applied when Options leaves it unset.
const DefaultMaxFileSize int64 = 10 << 20

// Ingest errors.
var (
	ErrFileTooLarge      = errors.New("file exceeds the size limit")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingNameColumn = errors.New("file needs a Tags or Parameters column")
	ErrNoRows            = errors.New("file contains no valid rows")
	ErrMissingLocation   = errors.New("row has no location")
)

// Format identifies an upload file type.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the format from a file name's extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q (use .csv or .xlsx)", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Options controls parsing.
type Options struct {
	// Location fills rows whose Location cell is empty.
	Location string
	// Sheet selects the XLSX worksheet; the first sheet is used when empty.
	Sheet       string
	MaxFileSize int64
}

func (o Options) maxFileSize() int64 {
	if o.MaxFileSize <= 0 {
		return DefaultMaxFileSize
	}
	return o.MaxFileSize
}

// Result holds the rows that passed validation and a message per rejected row.
type Result struct {
	Rows   []model.RawRow
	Errors []string
}

// HasErrors reports whether any row was rejected.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// ParseFile opens, size-checks and parses a CSV or XLSX file.
func ParseFile(path string, opts Options) (Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Result{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > opts.maxFileSize() {
		return Result{}, fileTooLarge(info.Size(), opts.maxFileSize())
	}

	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	result, err := Parse(f, format, opts)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	slog.Debug("Parsed upload",
		"file", filepath.Base(path),
		"format", format,
		"rows", len(result.Rows),
		"rejected", len(result.Errors))
	return result, nil
}

// Parse reads an upload of the given format from r.
func Parse(r io.Reader, format Format, opts Options) (Result, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r, opts)
	case FormatXLSX:
		return ParseXLSX(r, opts)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// readLimited reads all of r, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fileTooLarge(int64(len(data)), limit)
	}
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), nil
}

func fileTooLarge(size, limit int64) error {
	return fmt.Errorf("%w: %s is over %s", ErrFileTooLarge, FormatFileSize(size), FormatFileSize(limit))
}

// FormatFileSize renders a byte count the way upload messages show it.
func FormatFileSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d Bytes", size)
	}
	units := []string{"KB", "MB", "GB"}
	value := float64(size)
	unit := ""
	for _, u := range units {
		value /= 1024
		unit = u
		if value < 1024 {
			break
		}
	}
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".") + " " + unit
}

// GroupByLocation splits rows into an index keyed by each row's Location.
func GroupByLocation(rows []model.RawRow) (*model.LocationIndex, error) {
	index := model.NewLocationIndex()
	for i, row := range rows {
		location := strings.TrimSpace(row.Location)
		if location == "" {
			return nil, fmt.Errorf("%w: row %d (%s)", ErrMissingLocation, i+1, nameOf(row))
		}
		index.Add(location, row)
	}
	return index, nil
}

func nameOf(row model.RawRow) string {
	if row.Parameters != "" {
		return row.Parameters
	}
	return row.Tags
}
