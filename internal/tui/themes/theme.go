// Package themes defines the color schemes of the interactive dashboard.
package themes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	LocationPill  lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusMuted   lipgloss.Style
	Primary       lipgloss.Color
	Border        lipgloss.Color
}

// Status returns the style of an achievement status.
func (t Theme) Status(status model.Status) lipgloss.Style {
	switch status {
	case model.StatusAchieved:
		return t.StatusSuccess
	case model.StatusBelowTarget:
		return t.StatusWarning
	case model.StatusNeedsAction:
		return t.StatusError
	default:
		return t.StatusMuted
	}
}

func newTheme(primary, foreground, muted, border, success, warning, danger string) Theme {
	return Theme{
		Primary: lipgloss.Color(primary),
		Border:  lipgloss.Color(border),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(primary)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(foreground)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(foreground)).
			Background(lipgloss.Color(primary)).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			Padding(0, 1),
		LocationPill: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(primary)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primary)).
			Padding(0, 1),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(success)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(warning)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(danger)).
			Bold(true),
		StatusMuted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			Italic(true),
	}
}

// Default is the default dark theme.
var Default = newTheme("#E4002B", "#FAFAFA", "#737373", "#404040", "#10B981", "#F59E0B", "#EF4444")

// Light suits terminals with a light background.
var Light = newTheme("#B0001F", "#1A1A1A", "#6B7280", "#D1D5DB", "#047857", "#B45309", "#B91C1C")

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return Light
	default:
		return Default
	}
}
