package testutil

import (
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// RowBuilder builds KPI rows with a fluent API.
//
// Example:
//
//	rows := testutil.NewRowBuilder().
//		Metric("Paid Service").Target(100).Actual(80).Achievement(80).
//		Metric("Labour Revenue").Target(50).Actual(60).Achievement(120).
//		Build()
type RowBuilder struct {
	rows []model.RawRow
}

// NewRowBuilder starts an empty row set.
func NewRowBuilder() *RowBuilder {
	return &RowBuilder{}
}

// Metric starts a new row named by its Parameters column.
func (b *RowBuilder) Metric(name string) *RowBuilder {
	b.rows = append(b.rows, model.RawRow{Parameters: name})
	return b
}

// Tagged starts a new row that only carries a Tags value.
func (b *RowBuilder) Tagged(tags string) *RowBuilder {
	b.rows = append(b.rows, model.RawRow{Tags: tags})
	return b
}

// Target sets the monthly target of the current row.
func (b *RowBuilder) Target(v float64) *RowBuilder {
	b.current().MonthlyTarget = model.Float(v)
	return b
}

// TargetMTD sets the month-to-date target of the current row.
func (b *RowBuilder) TargetMTD(v float64) *RowBuilder {
	b.current().TargetMTD = model.Float(v)
	return b
}

// Actual sets the actual value of the current row.
func (b *RowBuilder) Actual(v float64) *RowBuilder {
	b.current().ActualAsOnDate = model.Float(v)
	return b
}

// Shortfall sets the shortfall of the current row.
func (b *RowBuilder) Shortfall(v float64) *RowBuilder {
	b.current().Shortfall = model.Float(v)
	return b
}

// Achievement sets the reported achievement percentage of the current row.
func (b *RowBuilder) Achievement(v float64) *RowBuilder {
	b.current().PercentageAch = model.Float(v)
	return b
}

// Build returns a copy of the rows built so far.
func (b *RowBuilder) Build() []model.RawRow {
	out := make([]model.RawRow, len(b.rows))
	copy(out, b.rows)
	return out
}

func (b *RowBuilder) current() *model.RawRow {
	if len(b.rows) == 0 {
		b.rows = append(b.rows, model.RawRow{})
	}
	return &b.rows[len(b.rows)-1]
}

// FixtureTwoLocations returns the Kalina/Sewri pair used across tests.
// Paid Service sums to 200/170 (85%), Labour Revenue appears only at Kalina
// and Wash Efficiency has no reported achievement.
func FixtureTwoLocations() *model.LocationIndex {
	index := model.NewLocationIndex()
	index.Add("Kalina", NewRowBuilder().
		Metric("Paid Service").Target(100).Actual(90).Shortfall(10).Achievement(90).
		Metric("Labour Revenue").Target(50).Actual(60).Achievement(120).
		Metric("Wash Efficiency").Target(10).Actual(5).
		Build()...)
	index.Add("Sewri", NewRowBuilder().
		Metric("Paid Service").Target(100).Actual(80).Shortfall(20).Achievement(80).
		Metric("Parts Sales").Target(200).Actual(100).Shortfall(100).Achievement(50).
		Build()...)
	return index
}
