package kpi

import (
	"math"
	"strings"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// Name fragments used by the location summary.
const (
	throughputKey = "total throughput"
	labourKey     = "labour"
	partsKey      = "parts"
	perROKey      = "per ro"
)

// Figure is a target/actual pair with its achievement.
type Figure struct {
	Target      float64
	Actual      float64
	Achievement float64
}

func (f Figure) add(other Figure) Figure {
	sum := Figure{Target: f.Target + other.Target, Actual: f.Actual + other.Actual}
	sum.Achievement = Achievement(sum.Actual, sum.Target)
	return sum
}

// LocationSummary is the headline throughput, labour and parts picture for
// one location.
type LocationSummary struct {
	Location      string
	Throughput    Figure
	Labour        Figure
	Parts         Figure
	TotalTarget   float64
	TotalAchieved float64
	Records       int
}

// HasData reports whether the location contributed any rows.
func (s LocationSummary) HasData() bool {
	return s.Records > 0
}

// RegionalSummary combines location summaries.
type RegionalSummary struct {
	Locations         []LocationSummary
	Throughput        Figure
	Labour            Figure
	Parts             Figure
	LocationsWithData int
}

// SummarizeLocation computes the headline figures for one location.
// Throughput comes from the first "total throughput" metric; labour and
// parts sum every matching metric except per-RO ratios.
func SummarizeLocation(index *model.LocationIndex, location string) LocationSummary {
	rows := index.Rows(location)
	summary := LocationSummary{Location: location, Records: len(rows)}

	metrics := NormalizeRows(rows, Normalize)
	throughputFound := false
	for _, m := range metrics {
		name := strings.ToLower(m.Name)
		if !throughputFound && strings.Contains(name, throughputKey) {
			throughputFound = true
			achievement := m.Achievement
			if math.IsNaN(achievement) {
				achievement = 0
			}
			summary.Throughput = Figure{Target: m.Target, Actual: m.Actual, Achievement: achievement}
		}
		if strings.Contains(name, perROKey) {
			continue
		}
		figure := Figure{Target: m.Target, Actual: m.Actual}
		if strings.Contains(name, labourKey) {
			summary.Labour = summary.Labour.add(figure)
		}
		if strings.Contains(name, partsKey) {
			summary.Parts = summary.Parts.add(figure)
		}
	}

	summary.TotalTarget = summary.Labour.Target + summary.Parts.Target
	summary.TotalAchieved = summary.Labour.Actual + summary.Parts.Actual
	return summary
}

// SummarizeRegion summarizes each location and combines the figures with
// achievement recomputed from the totals.
func SummarizeRegion(index *model.LocationIndex, locations []string) RegionalSummary {
	region := RegionalSummary{Locations: make([]LocationSummary, 0, len(locations))}
	for _, location := range locations {
		s := SummarizeLocation(index, location)
		region.Locations = append(region.Locations, s)
		if s.HasData() {
			region.LocationsWithData++
		}
		region.Throughput = region.Throughput.add(Figure{Target: s.Throughput.Target, Actual: s.Throughput.Actual})
		region.Labour = region.Labour.add(s.Labour)
		region.Parts = region.Parts.add(s.Parts)
	}
	return region
}
