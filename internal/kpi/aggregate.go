package kpi

import "github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"

// AggregateAll merges same-named metrics across every location in the index,
// visiting locations in index order.
func AggregateAll(index *model.LocationIndex, normalize NormalizeFunc) []model.Metric {
	return AggregateLocations(index, index.Locations(), normalize)
}

// AggregateLocations merges same-named metrics across the given locations.
// Target, actual and shortfall are summed; achievement is recomputed from the
// running sums and never averaged. Locations absent from the index are skipped.
func AggregateLocations(index *model.LocationIndex, locations []string, normalize NormalizeFunc) []model.Metric {
	if normalize == nil {
		normalize = Normalize
	}

	merged := make([]model.Metric, 0)
	position := make(map[string]int)

	for _, location := range locations {
		for _, row := range index.Rows(location) {
			item := normalize(row)
			i, ok := position[item.Name]
			if !ok {
				position[item.Name] = len(merged)
				merged = append(merged, item)
				continue
			}

			existing := &merged[i]
			existing.Target += item.Target
			existing.Actual += item.Actual
			existing.Shortfall += item.Shortfall
			existing.Achievement = Achievement(existing.Actual, existing.Target)
		}
	}

	return merged
}

// Achievement returns actual/target as a percentage, or 0 when there is no
// positive target.
func Achievement(actual, target float64) float64 {
	if target > 0 {
		return actual / target * 100
	}
	return 0
}
