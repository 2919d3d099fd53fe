package tui

import (
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/service"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Source    service.IndexSource
	Index     *model.LocationIndex
	Engine    *kpi.Engine
	Location  string
	Roster    []string
	Width     int
	Height    int
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Location:  kpi.AllLocations,
		Width:     100,
		Height:    30,
		AltScreen: true,
	}
}

// WithSource loads snapshots from source on start and on reload.
func WithSource(source service.IndexSource) Option {
	return func(c *Config) {
		c.Source = source
	}
}

// WithIndex starts from a fixed snapshot.
func WithIndex(index *model.LocationIndex) Option {
	return func(c *Config) {
		c.Index = index
	}
}

// WithEngine sets the query engine.
func WithEngine(engine *kpi.Engine) Option {
	return func(c *Config) {
		c.Engine = engine
	}
}

// WithTheme sets the color theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithLocation sets the initially selected location.
func WithLocation(location string) Option {
	return func(c *Config) {
		if location != "" {
			c.Location = location
		}
	}
}

// WithRoster fixes the selectable locations instead of using every stored one.
func WithRoster(roster []string) Option {
	return func(c *Config) {
		c.Roster = roster
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAltScreen controls whether the program takes over the whole terminal.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
