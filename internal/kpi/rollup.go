package kpi

import (
	"math"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// Bucket boundaries, in percent.
const (
	AchievedThreshold    = 100.0
	BelowTargetThreshold = 70.0
)

// StatusOf buckets a single achievement value.
func StatusOf(achievement float64) model.Status {
	switch {
	case math.IsNaN(achievement):
		return model.StatusNotApplicable
	case achievement >= AchievedThreshold:
		return model.StatusAchieved
	case achievement >= BelowTargetThreshold:
		return model.StatusBelowTarget
	default:
		return model.StatusNeedsAction
	}
}

// Count tallies metrics into achievement buckets. Metrics without an
// achievement are left out of every bucket and of the total.
func Count(metrics []model.Metric) model.RollupCounts {
	var counts model.RollupCounts
	for _, m := range metrics {
		switch StatusOf(m.Achievement) {
		case model.StatusAchieved:
			counts.Achieved++
		case model.StatusBelowTarget:
			counts.BelowTarget++
		case model.StatusNeedsAction:
			counts.NeedsAction++
		default:
			continue
		}
		counts.Total++
	}
	return counts
}
