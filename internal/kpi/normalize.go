// Package kpi turns raw per-location rows into categorized, counted
// dashboard views.
package kpi

import (
	"math"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// NormalizeFunc converts a raw row into a metric.
type NormalizeFunc func(model.RawRow) model.Metric

// Normalize converts a raw row into its canonical metric. Missing or
// non-numeric values become 0, except achievement which becomes NaN so
// "no data" stays distinct from a real 0%.
func Normalize(row model.RawRow) model.Metric {
	name := row.Parameters
	if name == "" {
		name = row.Tags
	}

	achievement := math.NaN()
	if v, ok := number(row.PercentageAch); ok {
		achievement = v
	}

	return model.Metric{
		Name:        name,
		Target:      orZero(row.MonthlyTarget),
		Actual:      orZero(row.ActualAsOnDate),
		Shortfall:   orZero(row.Shortfall),
		Achievement: achievement,
	}
}

// NormalizeRows applies fn to every row, preserving order.
func NormalizeRows(rows []model.RawRow, fn NormalizeFunc) []model.Metric {
	if fn == nil {
		fn = Normalize
	}
	metrics := make([]model.Metric, 0, len(rows))
	for _, row := range rows {
		metrics = append(metrics, fn(row))
	}
	return metrics
}

func number(f *float64) (float64, bool) {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return 0, false
	}
	return *f, true
}

func orZero(f *float64) float64 {
	v, _ := number(f)
	return v
}
