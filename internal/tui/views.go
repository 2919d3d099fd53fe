package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/cli"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderTabs(),
		"",
		m.renderBody(),
	}
	if status := m.renderStatus(); status != "" {
		sections = append(sections, "", status)
	}
	sections = append(sections, "", m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	theme := m.config.Theme
	title := theme.Title.Render("KPI Dashboard")
	pill := theme.LocationPill.Render(m.SelectedLocation())

	position := theme.Muted.Render(fmt.Sprintf("%d/%d", m.location+1, len(m.locations)))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", pill, " ", position)
}

func (m Model) renderTabs() string {
	theme := m.config.Theme
	labels := []string{"0 Overview"}
	for i, category := range model.Categories() {
		labels = append(labels, fmt.Sprintf("%d %s", i+1, category.Title()))
	}

	tabs := make([]string, len(labels))
	for i, label := range labels {
		if i == m.tab {
			tabs[i] = theme.TabActive.Render(label)
			continue
		}
		tabs[i] = theme.TabInactive.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderBody() string {
	if m.loading && m.index.Len() == 0 {
		return m.config.Theme.Muted.Render("Loading...")
	}
	if !m.view.HasData() {
		return m.config.Theme.Muted.Render(
			fmt.Sprintf("No data for %s. Import a file first.", m.view.Selector))
	}

	if category, ok := m.ActiveCategory(); ok {
		return m.renderCategory(category)
	}
	return m.renderOverview()
}

func (m Model) renderOverview() string {
	theme := m.config.Theme
	var b strings.Builder

	b.WriteString(theme.Bold.Render("Performance Summary"))
	b.WriteString("\n")
	b.WriteString(cli.RenderCounts(m.view.OverallCounts))
	b.WriteString("\n\n")

	for _, category := range model.Categories() {
		counts := m.view.CountsByCategory[category]
		name := theme.Bold.Render(fmt.Sprintf("%-11s", category.Title()))
		b.WriteString(name)
		b.WriteString(" ")
		if counts.Total == 0 && len(m.view.ByCategory[category]) == 0 {
			b.WriteString(theme.Muted.Render("no metrics"))
		} else {
			b.WriteString(cli.RenderCounts(counts))
		}
		b.WriteString("\n")
	}

	if !m.view.IsAggregate() {
		b.WriteString("\n")
		b.WriteString(m.renderLocationTotals())
	}

	if n := len(m.view.Unclassified); n > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render(fmt.Sprintf("%d metrics match no category", n)))
	}

	return theme.RoundedBox.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderLocationTotals() string {
	summary := kpi.SummarizeLocation(m.index, m.SelectedLocation())
	theme := m.config.Theme

	line := func(label string, f kpi.Figure) string {
		status := kpi.StatusOf(f.Achievement)
		return fmt.Sprintf("%s %s / %s  %s",
			theme.Bold.Render(fmt.Sprintf("%-11s", label)),
			cli.FormatAmount(f.Actual),
			cli.FormatAmount(f.Target),
			theme.Status(status).Render(cli.FormatPercent(f.Achievement)),
		)
	}

	return strings.Join([]string{
		line("Throughput", summary.Throughput),
		line("Labour", summary.Labour),
		line("Parts", summary.Parts),
	}, "\n")
}

func (m Model) renderCategory(category model.Category) string {
	theme := m.config.Theme
	metrics := m.tabMetrics()
	if len(metrics) == 0 {
		return theme.Muted.Render(fmt.Sprintf("No %s metrics for %s.", category.Title(), m.view.Selector))
	}

	visible := metrics[m.offset:]
	if rows := m.tableRows(); rows > 0 && len(visible) > rows {
		visible = visible[:rows]
	}

	header := fmt.Sprintf("%s  %s",
		theme.Bold.Render(category.Title()),
		cli.RenderCounts(m.view.CountsByCategory[category]))
	footer := theme.Muted.Render(fmt.Sprintf("%d-%d of %d",
		m.offset+1, m.offset+len(visible), len(metrics)))

	return lipgloss.JoinVertical(lipgloss.Left, header, cli.RenderMetricTable(visible), footer)
}

// tableRows is the number of metric rows that fit below the chrome.
func (m Model) tableRows() int {
	const chrome = 14
	return m.height - chrome
}

func (m Model) renderStatus() string {
	theme := m.config.Theme
	switch {
	case m.lastError != nil:
		return theme.StatusError.Render(fmt.Sprintf("Reload failed: %v", m.lastError))
	case m.loading:
		return theme.Muted.Render("Reloading...")
	case !m.loadedAt.IsZero():
		return theme.Muted.Render("Loaded " + m.loadedAt.Format("15:04:05"))
	}
	return ""
}
