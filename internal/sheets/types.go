package sheets

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// MetricRow represents a single metric line of an exported view.
type MetricRow struct {
	Category    string
	Name        string
	Status      string
	Target      decimal.Decimal
	Actual      decimal.Decimal
	Shortfall   decimal.Decimal
	Achievement decimal.NullDecimal // invalid when not applicable
}

// CountsRow represents one line of the rollup table.
type CountsRow struct {
	Scope  string
	Counts model.RollupCounts
}

// Report is the sheet-shaped form of a dashboard view.
type Report struct {
	GeneratedAt time.Time
	Selector    string
	Counts      []CountsRow
	Metrics     []MetricRow
}

// NewReport converts a view into report rows. Values are rounded to two places.
func NewReport(view kpi.View, generatedAt time.Time) Report {
	report := Report{
		GeneratedAt: generatedAt,
		Selector:    view.Selector,
		Counts:      []CountsRow{{Scope: "Overall", Counts: view.OverallCounts}},
	}

	for _, category := range model.Categories() {
		report.Counts = append(report.Counts, CountsRow{
			Scope:  category.Title(),
			Counts: view.CountsByCategory[category],
		})
		for _, metric := range view.ByCategory[category] {
			report.Metrics = append(report.Metrics, newMetricRow(category, metric))
		}
	}
	return report
}

func newMetricRow(category model.Category, metric model.Metric) MetricRow {
	row := MetricRow{
		Category:  category.Title(),
		Name:      metric.Name,
		Status:    kpi.StatusOf(metric.Achievement).Label(),
		Target:    toDecimal(metric.Target),
		Actual:    toDecimal(metric.Actual),
		Shortfall: toDecimal(metric.Shortfall),
	}
	if metric.HasAchievement() {
		row.Achievement = decimal.NewNullDecimal(toDecimal(metric.Achievement))
	}
	return row
}

func toDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(2)
}

// Title returns the report heading.
func (r Report) Title() string {
	return "KPI Dashboard - " + r.Selector
}

// Values lays the report out as spreadsheet rows.
func (r Report) Values() [][]any {
	// Header(2) + counts header(2) + counts + empty(1) + metrics header(2) + metrics
	values := make([][]any, 0, 7+len(r.Counts)+len(r.Metrics))

	values = append(values,
		[]any{r.Title(), r.GeneratedAt.Format("2006-01-02 15:04")},
		[]any{}, // Empty row
		[]any{"Performance Summary"},
		[]any{"Scope", "Achieved", "Below Target", "Needs Action", "Total"},
	)

	for _, row := range r.Counts {
		values = append(values, []any{
			row.Scope,
			row.Counts.Achieved,
			row.Counts.BelowTarget,
			row.Counts.NeedsAction,
			row.Counts.Total,
		})
	}

	values = append(values,
		[]any{}, // Empty row
		[]any{"Metric Details"},
		[]any{"Category", "Metric", "Target", "Actual", "Shortfall", "% Achievement", "Status"},
	)

	for _, row := range r.Metrics {
		var achievement any = ""
		if row.Achievement.Valid {
			achievement = row.Achievement.Decimal.InexactFloat64()
		}
		values = append(values, []any{
			row.Category,
			row.Name,
			row.Target.InexactFloat64(),
			row.Actual.InexactFloat64(),
			row.Shortfall.InexactFloat64(),
			achievement,
			row.Status,
		})
	}

	return values
}

// metricHeaderRow is the zero-based row index of the metric table header.
func (r Report) metricHeaderRow() int {
	return 4 + len(r.Counts) + 2
}
