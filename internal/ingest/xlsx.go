package ingest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX parses an Excel workbook upload. The first row of the selected
// sheet is the header.
func ParseXLSX(r io.Reader, opts Options) (Result, error) {
	data, err := readLimited(r, opts.maxFileSize())
	if err != nil {
		return Result{}, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Result{}, ErrNoRows
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	// Skip leading blank rows so the header can sit below a title gap.
	start := 0
	for start < len(rows) && isBlankRecord(rows[start]) {
		start++
	}
	if start == len(rows) {
		return Result{}, ErrNoRows
	}

	l, err := newLayout(rows[start])
	if err != nil {
		return Result{}, err
	}

	// Sheet rows are 1-based.
	return collect(l, rows[start+1:], start+2, opts)
}
