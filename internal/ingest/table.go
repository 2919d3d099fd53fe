package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

type column int

const (
	colTags column = iota
	colParameters
	colMonthlyTarget
	colTargetMTD
	colActual
	colShortfall
	colPercentageAch
	colLocation
)

// Headers is the canonical header row, in template order.
var Headers = []string{
	"Tags", "Parameters", "Monthly Target", "Target MTD",
	"Actual As On Date", "Shortfall", "% ACH", "Location",
}

// headerAliases maps normalized header text to its column.
var headerAliases = map[string]column{
	"tags":              colTags,
	"tag":               colTags,
	"parameters":        colParameters,
	"parameter":         colParameters,
	"monthly target":    colMonthlyTarget,
	"target mtd":        colTargetMTD,
	"actual as on date": colActual,
	"actual":            colActual,
	"shortfall":         colShortfall,
	"% ach":             colPercentageAch,
	"%ach":              colPercentageAch,
	"ach %":             colPercentageAch,
	"percentage ach":    colPercentageAch,
	"location":          colLocation,
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.Trim(h, "\"")))
	h = strings.ReplaceAll(h, "_", " ")
	return strings.Join(strings.Fields(h), " ")
}

// layout maps columns to their position in a record.
type layout map[column]int

func newLayout(header []string) (layout, error) {
	l := make(layout, len(header))
	for i, h := range header {
		col, ok := headerAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, dup := l[col]; !dup {
			l[col] = i
		}
	}

	_, hasTags := l[colTags]
	_, hasParams := l[colParameters]
	if !hasTags && !hasParams {
		return nil, ErrMissingNameColumn
	}
	return l, nil
}

func (l layout) cell(record []string, col column) string {
	i, ok := l[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(record[i], "\"", ""))
}

// numericColumns lists the numeric columns with their display names.
var numericColumns = []struct {
	set  func(*model.RawRow, *float64)
	name string
	col  column
}{
	{func(r *model.RawRow, v *float64) { r.MonthlyTarget = v }, "Monthly Target", colMonthlyTarget},
	{func(r *model.RawRow, v *float64) { r.TargetMTD = v }, "Target MTD", colTargetMTD},
	{func(r *model.RawRow, v *float64) { r.ActualAsOnDate = v }, "Actual As On Date", colActual},
	{func(r *model.RawRow, v *float64) { r.Shortfall = v }, "Shortfall", colShortfall},
	{func(r *model.RawRow, v *float64) { r.PercentageAch = v }, "% ACH", colPercentageAch},
}

// toRow converts one record. Every problem in the record is reported.
func (l layout) toRow(record []string, defaultLocation string) (model.RawRow, []string) {
	row := model.RawRow{
		Tags:       l.cell(record, colTags),
		Parameters: l.cell(record, colParameters),
		Location:   l.cell(record, colLocation),
	}
	if row.Location == "" {
		row.Location = strings.TrimSpace(defaultLocation)
	}

	var problems []string
	if row.Tags == "" && row.Parameters == "" {
		problems = append(problems, "missing Tags and Parameters")
	}

	for _, nc := range numericColumns {
		raw := l.cell(record, nc.col)
		value, err := ParseNumber(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid numeric value in %s: %q", nc.name, raw))
			continue
		}
		nc.set(&row, value)
	}

	return row, problems
}

// blankNumbers are cell values treated as "no value".
var blankNumbers = map[string]bool{
	"":    true,
	"-":   true,
	"na":  true,
	"n/a": true,
}

// numberCleaner strips thousands separators, percent signs, currency and quotes.
var numberCleaner = strings.NewReplacer(",", "", "%", "", "₹", "", "\"", "", " ", "", "\u00a0", "")

// ParseNumber parses a spreadsheet number cell. Blank cells yield nil.
func ParseNumber(raw string) (*float64, error) {
	cleaned := numberCleaner.Replace(strings.TrimSpace(raw))
	if blankNumbers[strings.ToLower(cleaned)] {
		return nil, nil
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("not a number: %q", raw)
	}
	if negative {
		value = -value
	}
	return model.Float(value), nil
}

// collect turns consecutive data records into a Result. firstLine is the
// spreadsheet line number of records[0].
func collect(l layout, records [][]string, firstLine int, opts Options) (Result, error) {
	lines := make([]int, len(records))
	for i := range lines {
		lines[i] = firstLine + i
	}
	return collectLines(l, records, lines, opts)
}

// collectLines is collect with an explicit line number per record.
func collectLines(l layout, records [][]string, lines []int, opts Options) (Result, error) {
	result := Result{Rows: make([]model.RawRow, 0, len(records))}
	seen := 0

	for i, record := range records {
		if isBlankRecord(record) {
			continue
		}
		seen++

		row, problems := l.toRow(record, opts.Location)
		if len(problems) > 0 {
			for _, p := range problems {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", lines[i], p))
			}
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	if seen == 0 {
		return Result{}, ErrNoRows
	}
	return result, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
