package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// SampleLocation is the location name used in the template file.
const SampleLocation = "Sample Location"

// SampleRows returns the rows of the downloadable upload template.
func SampleRows() []model.RawRow {
	sample := func(tags, params string, target, actual, shortfall, ach float64) model.RawRow {
		return model.RawRow{
			Tags:           tags,
			Parameters:     params,
			MonthlyTarget:  model.Float(target),
			TargetMTD:      model.Float(target),
			ActualAsOnDate: model.Float(actual),
			Shortfall:      model.Float(shortfall),
			PercentageAch:  model.Float(ach),
			Location:       SampleLocation,
		}
	}
	return []model.RawRow{
		sample("INFLOW", "PM THROUGHPUT", 464, 367, -97, 79),
		sample("LABOUR", "PM GR LABOUR", 2142723, 1696372, -446351, 79),
		sample("PARTS", "MGR PARTS SALE", 2938579, 2926548, -12031, 100),
	}
}

func sampleRecord(row model.RawRow) []string {
	num := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	return []string{
		row.Tags, row.Parameters,
		num(row.MonthlyTarget), num(row.TargetMTD), num(row.ActualAsOnDate),
		num(row.Shortfall), num(row.PercentageAch),
		row.Location,
	}
}

// WriteSampleCSV writes the upload template as CSV.
func WriteSampleCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range SampleRows() {
		if err := writer.Write(sampleRecord(row)); err != nil {
			return fmt.Errorf("failed to write sample row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSampleXLSX writes the upload template as an Excel workbook.
func WriteSampleXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "KPI Data"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range SampleRows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			row.Tags, row.Parameters,
			*row.MonthlyTarget, *row.TargetMTD, *row.ActualAsOnDate,
			*row.Shortfall, *row.PercentageAch,
			row.Location,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write sample row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
