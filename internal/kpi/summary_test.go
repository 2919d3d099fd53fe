package kpi

import (
	"testing"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeLocation(t *testing.T) {
	index := model.NewLocationIndex()
	index.Add("Kalina",
		row("PM Throughput", 50, 40, -10, 80),
		row("Total Throughput", 464, 367, -97, 79),
		row("Total Throughput (BP)", 100, 100, 0, 100),
		row("PM GR Labour", 1000, 800, -200, 80),
		row("BP Labour", 1000, 1200, 200, 120),
		row("Labour per RO", 2000, 1800, -200, 90),
		row("MGR Parts Sale", 500, 250, -250, 50),
		row("Parts per RO", 10, 10, 0, 100),
	)

	s := SummarizeLocation(index, "Kalina")
	assert.True(t, s.HasData())
	assert.Equal(t, 8, s.Records)
	assert.Equal(t, Figure{Target: 464, Actual: 367, Achievement: 79}, s.Throughput)
	assert.InDelta(t, 2000, s.Labour.Target, 1e-9)
	assert.InDelta(t, 2000, s.Labour.Actual, 1e-9)
	assert.InDelta(t, 100, s.Labour.Achievement, 1e-9)
	assert.InDelta(t, 500, s.Parts.Target, 1e-9)
	assert.InDelta(t, 50, s.Parts.Achievement, 1e-9)
	assert.InDelta(t, 2500, s.TotalTarget, 1e-9)
	assert.InDelta(t, 2250, s.TotalAchieved, 1e-9)
}

func TestSummarizeLocation_MissingThroughputAchievement(t *testing.T) {
	index := model.NewLocationIndex()
	index.Add("Sewri", model.RawRow{Parameters: "Total Throughput", MonthlyTarget: model.Float(10), ActualAsOnDate: model.Float(5)})

	s := SummarizeLocation(index, "Sewri")
	assert.Zero(t, s.Throughput.Achievement)
	assert.InDelta(t, 10, s.Throughput.Target, 1e-9)
}

func TestSummarizeLocation_Unknown(t *testing.T) {
	s := SummarizeLocation(model.NewLocationIndex(), "Bhandup")
	assert.False(t, s.HasData())
	assert.Equal(t, LocationSummary{Location: "Bhandup"}, s)
}

func TestSummarizeRegion(t *testing.T) {
	index := model.NewLocationIndex()
	index.Add("Kalina",
		row("Total Throughput", 464, 367, -97, 79),
		row("Total Labour", 100, 50, -50, 50),
	)
	index.Add("Sewri",
		row("Total Throughput", 300, 330, 30, 110),
		row("Total Labour", 200, 200, 0, 100),
	)

	region := SummarizeRegion(index, []string{"Kalina", "Sewri", "Reayroad"})
	require.Len(t, region.Locations, 3)
	assert.Equal(t, 2, region.LocationsWithData)
	assert.InDelta(t, 764, region.Throughput.Target, 1e-9)
	assert.InDelta(t, 697.0/764.0*100, region.Throughput.Achievement, 1e-9)
	assert.InDelta(t, 250.0/300.0*100, region.Labour.Achievement, 1e-9)
	assert.Zero(t, region.Parts.Achievement)
}
