// Package model defines the core data structures for the dashboard.
package model

import "math"

// RawRow is one validated row of a location's performance sheet.
// Numeric fields are nil when the source did not provide a value.
type RawRow struct {
	MonthlyTarget  *float64
	TargetMTD      *float64
	ActualAsOnDate *float64
	Shortfall      *float64
	PercentageAch  *float64
	Tags           string
	Parameters     string
	Location       string
}

// Metric is the canonical unit the engine works with.
// Achievement is NaN when no ratio is available.
type Metric struct {
	Name        string
	Target      float64
	Actual      float64
	Shortfall   float64
	Achievement float64
}

// HasAchievement reports whether the metric carries a usable achievement value.
func (m Metric) HasAchievement() bool {
	return !math.IsNaN(m.Achievement)
}

// Float returns a pointer to v, for building RawRow literals.
func Float(v float64) *float64 {
	return &v
}

// RollupCounts tallies metrics into achievement buckets.
type RollupCounts struct {
	Achieved    int `json:"achieved"`
	BelowTarget int `json:"below_target"`
	NeedsAction int `json:"needs_action"`
	Total       int `json:"total"`
}

// Add returns the bucket-wise sum of two tallies.
func (r RollupCounts) Add(other RollupCounts) RollupCounts {
	return RollupCounts{
		Achieved:    r.Achieved + other.Achieved,
		BelowTarget: r.BelowTarget + other.BelowTarget,
		NeedsAction: r.NeedsAction + other.NeedsAction,
		Total:       r.Total + other.Total,
	}
}
