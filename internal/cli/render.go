package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/ingest"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// StatusColor returns the badge color of an achievement status.
func StatusColor(status model.Status) lipgloss.Color {
	switch status {
	case model.StatusAchieved:
		return SuccessColor
	case model.StatusBelowTarget:
		return WarningColor
	case model.StatusNeedsAction:
		return ErrorColor
	default:
		return SubtleColor
	}
}

// Badge renders the status label of an achievement value.
func Badge(achievement float64) string {
	status := kpi.StatusOf(achievement)
	return BadgeStyle.Foreground(StatusColor(status)).Render(status.Label())
}

// RenderCounts renders a rollup as one line of colored counters.
func RenderCounts(counts model.RollupCounts) string {
	return strings.Join([]string{
		SuccessStyle.Render(fmt.Sprintf("%s %d achieved", SuccessIcon, counts.Achieved)),
		WarningStyle.Render(fmt.Sprintf("%d below target", counts.BelowTarget)),
		ErrorStyle.Render(fmt.Sprintf("%d need action", counts.NeedsAction)),
		SubtleStyle.Render(fmt.Sprintf("(%d total)", counts.Total)),
	}, "  ")
}

// RenderMetricTable renders metrics as a bordered table.
func RenderMetricTable(metrics []model.Metric) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers("Metric", "Target", "Actual", "Shortfall", "% Ach", "Status").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.Padding(0, 1)
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col >= 1 && col <= 4 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	for _, m := range metrics {
		t.Row(
			m.Name,
			FormatAmount(m.Target),
			FormatAmount(m.Actual),
			FormatAmount(m.Shortfall),
			FormatPercent(m.Achievement),
			Badge(m.Achievement),
		)
	}
	return t.String()
}

// RenderCategorySection renders one category heading, its counters and its metrics.
func RenderCategorySection(category model.Category, metrics []model.Metric, counts model.RollupCounts) string {
	heading := BoldStyle.Render(category.Title()) + " " + SubtleStyle.Render(fmt.Sprintf("(%d)", len(metrics)))

	if len(metrics) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			heading,
			SubtleStyle.Render("No metrics in this category."),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		heading,
		RenderCounts(counts),
		RenderMetricTable(metrics),
	)
}

// RenderView renders a full dashboard view: overall counters then each category.
func RenderView(view kpi.View) string {
	title := FormatTitle("KPI Dashboard - " + view.Selector)
	if !view.HasData() {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			FormatWarning("No data for "+view.Selector+". Import a file first."),
		)
	}

	sections := []string{
		title,
		RenderBox("Overall Performance", RenderCounts(view.OverallCounts)),
	}
	for _, category := range model.Categories() {
		sections = append(sections, "", RenderCategorySection(category, view.ByCategory[category], view.CountsByCategory[category]))
	}

	if len(view.Unclassified) > 0 {
		names := make([]string, 0, len(view.Unclassified))
		for _, m := range view.Unclassified {
			names = append(names, m.Name)
		}
		sections = append(sections, "", FormatInfo(fmt.Sprintf("%d metrics match no category: %s",
			len(names), strings.Join(names, ", "))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RenderRegionalSummary renders per-location headline figures with a combined row.
func RenderRegionalSummary(summary kpi.RegionalSummary) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers("Location", "Throughput", "Labour", "Labour %", "Parts", "Parts %", "Records").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.Padding(0, 1)
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	for _, loc := range summary.Locations {
		if !loc.HasData() {
			t.Row(loc.Location, "-", "-", "-", "-", "-", "0")
			continue
		}
		t.Row(
			loc.Location,
			FormatAmount(loc.Throughput.Actual),
			FormatAmount(loc.Labour.Actual),
			FormatPercent(loc.Labour.Achievement),
			FormatAmount(loc.Parts.Actual),
			FormatPercent(loc.Parts.Achievement),
			strconv.Itoa(loc.Records),
		)
	}
	t.Row(
		BoldStyle.Render("Region"),
		BoldStyle.Render(FormatAmount(summary.Throughput.Actual)),
		BoldStyle.Render(FormatAmount(summary.Labour.Actual)),
		BoldStyle.Render(FormatPercent(summary.Labour.Achievement)),
		BoldStyle.Render(FormatAmount(summary.Parts.Actual)),
		BoldStyle.Render(FormatPercent(summary.Parts.Achievement)),
		BoldStyle.Render(fmt.Sprintf("%d/%d", summary.LocationsWithData, len(summary.Locations))),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		FormatTitle("Regional Summary"),
		t.String(),
	)
}

func plainTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// RenderLocations renders stored locations with their record counts.
func RenderLocations(locations []model.LocationInfo) string {
	if len(locations) == 0 {
		return FormatInfo("No locations stored yet.")
	}

	t := plainTable("#", "Location", "Records", "First Seen")
	for i, loc := range locations {
		t.Row(strconv.Itoa(i+1), loc.Name, strconv.Itoa(loc.RecordCount), loc.FirstSeen.Local().Format("2006-01-02 15:04"))
	}
	return t.String()
}

// RenderSessions renders upload history, newest first.
func RenderSessions(sessions []model.UploadSession) string {
	if len(sessions) == 0 {
		return FormatInfo("No uploads recorded yet.")
	}

	t := plainTable("Uploaded", "File", "Location", "Records", "Size", "Status")
	for _, s := range sessions {
		t.Row(
			s.UploadedAt.Local().Format("2006-01-02 15:04"),
			s.FileName,
			s.Location,
			strconv.Itoa(s.RecordsCount),
			ingest.FormatFileSize(s.FileSize),
			sessionStatus(s),
		)
	}
	return t.String()
}

func sessionStatus(s model.UploadSession) string {
	switch s.Status {
	case model.UploadSuccess:
		if len(s.Errors) > 0 {
			return WarningStyle.Render(fmt.Sprintf("success (%d skipped)", len(s.Errors)))
		}
		return SuccessStyle.Render(string(s.Status))
	case model.UploadError:
		return ErrorStyle.Render(string(s.Status))
	default:
		return SubtleStyle.Render(string(s.Status))
	}
}
