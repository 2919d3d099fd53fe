package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/cli"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

func viewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [location]",
		Short: "Show the KPI dashboard for a location",
		Long: `Show categorized metrics and achievement counters for one location, or
aggregated across every location when none is given.`,
		Example: `  dashboard view
  dashboard view Kalina
  dashboard view "All Locations" --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runView,
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	format, _ := cmd.Flags().GetString("format")

	selector := kpi.AllLocations
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		selector = strings.TrimSpace(args[0])
	}

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	index, err := store.GetLocationIndex(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	view := engine.QueryView(index, selector)

	switch format {
	case "json":
		return writeViewJSON(cmd.OutOrStdout(), view)
	case "table":
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderView(view))
		if !view.IsAggregate() && !index.Has(selector) && index.Len() > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Known locations: "+strings.Join(index.Locations(), ", ")))
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (use table or json)", format)
	}
}

type metricJSON struct {
	Achievement *float64 `json:"achievement"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Target      float64  `json:"target"`
	Actual      float64  `json:"actual"`
	Shortfall   float64  `json:"shortfall"`
}

type categoryJSON struct {
	Category model.Category     `json:"category"`
	Metrics  []metricJSON       `json:"metrics"`
	Counts   model.RollupCounts `json:"counts"`
}

type viewJSON struct {
	Location     string             `json:"location"`
	Categories   []categoryJSON     `json:"categories"`
	Unclassified []metricJSON       `json:"unclassified"`
	Overall      model.RollupCounts `json:"overall"`
}

func toMetricJSON(metrics []model.Metric) []metricJSON {
	out := make([]metricJSON, 0, len(metrics))
	for _, m := range metrics {
		entry := metricJSON{
			Name:      m.Name,
			Target:    finite(m.Target),
			Actual:    finite(m.Actual),
			Shortfall: finite(m.Shortfall),
			Status:    string(kpi.StatusOf(m.Achievement)),
		}
		if m.HasAchievement() {
			achievement := m.Achievement
			entry.Achievement = &achievement
		}
		out = append(out, entry)
	}
	return out
}

// finite maps values JSON cannot encode to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func newViewJSON(view kpi.View) viewJSON {
	out := viewJSON{
		Location:     view.Selector,
		Overall:      view.OverallCounts,
		Unclassified: toMetricJSON(view.Unclassified),
	}
	for _, category := range model.Categories() {
		out.Categories = append(out.Categories, categoryJSON{
			Category: category,
			Counts:   view.CountsByCategory[category],
			Metrics:  toMetricJSON(view.ByCategory[category]),
		})
	}
	return out
}

func writeViewJSON(w io.Writer, view kpi.View) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(newViewJSON(view)); err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}
	return nil
}
