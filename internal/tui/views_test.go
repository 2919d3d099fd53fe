package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/testutil"
)

func TestView_Empty(t *testing.T) {
	m := New(context.Background())
	out := m.View()

	assert.Contains(t, out, "KPI Dashboard")
	assert.Contains(t, out, kpi.AllLocations)
	assert.Contains(t, out, "No data for All Locations. Import a file first.")
}

func TestView_Overview(t *testing.T) {
	m := New(context.Background(), WithIndex(testutil.FixtureTwoLocations()))
	out := m.View()

	assert.Contains(t, out, "Performance Summary")
	for _, category := range model.Categories() {
		assert.Contains(t, out, category.Title())
	}
	assert.Contains(t, out, "no metrics", "inflow has no metrics in the fixture")
}

func TestView_LocationTotals(t *testing.T) {
	m := New(context.Background(), WithIndex(testutil.FixtureTwoLocations()), WithLocation("Kalina"))
	out := m.View()

	assert.Contains(t, out, "Throughput")
	assert.Contains(t, out, "2/3")
}

func TestView_CategoryTab(t *testing.T) {
	m := New(context.Background(), WithIndex(testutil.FixtureTwoLocations()))
	m = send(t, m, runes("4"))
	out := m.View()

	assert.Contains(t, out, "Paid Service")
	assert.Contains(t, out, "Wash Efficiency")
	assert.Contains(t, out, "1-2 of 2")
}

func TestView_EmptyCategoryTab(t *testing.T) {
	m := New(context.Background(), WithIndex(testutil.FixtureTwoLocations()))
	m = send(t, m, runes("1"))

	assert.Contains(t, m.View(), "No Inflow metrics for All Locations.")
}
