package kpi

import (
	"log/slog"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// AllLocations is the selector that aggregates every location in the index.
const AllLocations = "All Locations"

// View is the categorized, counted result of a dashboard query.
type View struct {
	ByCategory       map[model.Category][]model.Metric
	CountsByCategory map[model.Category]model.RollupCounts
	Selector         string
	Metrics          []model.Metric
	Unclassified     []model.Metric
	OverallCounts    model.RollupCounts
}

// HasData reports whether the query produced any metrics.
func (v View) HasData() bool {
	return len(v.Metrics) > 0
}

// IsAggregate reports whether the view spans all locations.
func (v View) IsAggregate() bool {
	return v.Selector == AllLocations
}

// Engine answers dashboard queries. It holds no per-query state, so one
// engine can serve concurrent queries over different snapshots.
type Engine struct {
	classifier *Classifier
	normalize  NormalizeFunc
}

// NewEngine creates an engine. A nil classifier uses the default keyword table.
func NewEngine(classifier *Classifier) *Engine {
	if classifier == nil {
		classifier = MustNewClassifier(DefaultKeywords())
	}
	return &Engine{
		classifier: classifier,
		normalize:  Normalize,
	}
}

// Classifier returns the classifier the engine uses.
func (e *Engine) Classifier() *Classifier {
	return e.classifier
}

// Metrics returns the metric list for a selector without categorizing it.
func (e *Engine) Metrics(index *model.LocationIndex, selector string) []model.Metric {
	if selector == AllLocations {
		return AggregateAll(index, e.normalize)
	}
	return NormalizeRows(index.Rows(selector), e.normalize)
}

// QueryView builds the categorized view for one location, or for every
// location aggregated when selector is AllLocations. An unknown location
// yields an empty view.
func (e *Engine) QueryView(index *model.LocationIndex, selector string) View {
	metrics := e.Metrics(index, selector)

	view := View{
		Selector:         selector,
		Metrics:          metrics,
		ByCategory:       make(map[model.Category][]model.Metric, 4),
		CountsByCategory: make(map[model.Category]model.RollupCounts, 4),
	}

	// Overall counts cover the concatenated category pulls, so a name matching
	// two categories is counted twice and unmatched names are not counted.
	for _, category := range model.Categories() {
		pulled := e.classifier.Classify(metrics, category)
		counts := Count(pulled)
		view.ByCategory[category] = pulled
		view.CountsByCategory[category] = counts
		view.OverallCounts = view.OverallCounts.Add(counts)
	}

	for _, m := range metrics {
		if len(e.classifier.Categories(m)) == 0 {
			view.Unclassified = append(view.Unclassified, m)
		}
	}

	slog.Debug("built dashboard view",
		"selector", selector,
		"metrics", len(metrics),
		"unclassified", len(view.Unclassified),
		"total", view.OverallCounts.Total)

	return view
}
