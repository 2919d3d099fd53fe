package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ParseCSV parses a CSV upload. The first non-empty line is the header.
func ParseCSV(r io.Reader, opts Options) (Result, error) {
	data, err := readLimited(r, opts.maxFileSize())
	if err != nil {
		return Result{}, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, ErrNoRows
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	l, err := newLayout(header)
	if err != nil {
		return Result{}, err
	}

	var records [][]string
	var lines []int
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("failed to parse CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}

	return collectLines(l, records, lines, opts)
}
