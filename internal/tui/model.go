// Package tui provides the interactive dashboard built on bubbletea.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// Tab positions. Tab 0 is the overview, the rest follow model.Categories().
const overviewTab = 0

// Model holds the dashboard state. The selected location and tab live here;
// the engine is re-queried whenever either changes.
type Model struct {
	ctx       context.Context
	loadedAt  time.Time
	lastError error
	engine    *kpi.Engine
	index     *model.LocationIndex
	keymap    KeyMap
	help      help.Model
	config    Config
	view      kpi.View
	locations []string
	location  int
	tab       int
	offset    int
	width     int
	height    int
	loading   bool
	quitting  bool
}

// New creates a dashboard model.
func New(ctx context.Context, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	engine := cfg.Engine
	if engine == nil {
		engine = kpi.NewEngine(nil)
	}

	m := Model{
		ctx:    ctx,
		config: cfg,
		engine: engine,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		width:  cfg.Width,
		height: cfg.Height,
	}
	m.setIndex(cfg.Index, cfg.Location)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.config.Source == nil {
		return nil
	}
	return m.reload()
}

func (m *Model) reload() tea.Cmd {
	m.loading = true
	return loadIndex(m.ctx, m.config.Source)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil

	case indexLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastError = msg.err
			slog.Debug("dashboard reload failed", "error", msg.err)
			return m, nil
		}
		m.lastError = nil
		m.loadedAt = msg.loadedAt
		m.setIndex(msg.index, m.config.Location)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.NextLocation):
		m.selectLocation(m.location + 1)

	case key.Matches(msg, m.keymap.PrevLocation):
		m.selectLocation(m.location - 1)

	case key.Matches(msg, m.keymap.NextTab):
		m.selectTab(m.tab + 1)

	case key.Matches(msg, m.keymap.PrevTab):
		m.selectTab(m.tab - 1)

	case key.Matches(msg, m.keymap.Down):
		m.offset++
		m.clampOffset()

	case key.Matches(msg, m.keymap.Up):
		m.offset--
		m.clampOffset()

	case key.Matches(msg, m.keymap.Home):
		m.offset = 0

	case key.Matches(msg, m.keymap.Reload):
		if m.config.Source != nil {
			return m, m.reload()
		}

	default:
		for i, binding := range m.keymap.tabKeys() {
			if key.Matches(msg, binding) {
				m.selectTab(i)
				break
			}
		}
	}

	return m, nil
}

// setIndex installs a snapshot and selects location by name, falling back to
// the aggregate when the snapshot does not list it.
func (m *Model) setIndex(index *model.LocationIndex, location string) {
	m.index = index

	locations := m.config.Roster
	if len(locations) == 0 {
		locations = index.Locations()
	}
	m.locations = append([]string{kpi.AllLocations}, locations...)

	m.location = 0
	for i, name := range m.locations {
		if name == location {
			m.location = i
			break
		}
	}
	m.requery()
}

func (m *Model) selectLocation(i int) {
	n := len(m.locations)
	m.location = ((i % n) + n) % n
	m.config.Location = m.locations[m.location]
	m.offset = 0
	m.requery()
}

func (m *Model) selectTab(i int) {
	n := len(model.Categories()) + 1
	m.tab = ((i % n) + n) % n
	m.offset = 0
}

func (m *Model) requery() {
	m.view = m.engine.QueryView(m.index, m.SelectedLocation())
	m.clampOffset()
}

func (m *Model) clampOffset() {
	limit := len(m.tabMetrics()) - 1
	if m.offset > limit {
		m.offset = limit
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// tabMetrics returns the metrics listed on the active tab.
func (m Model) tabMetrics() []model.Metric {
	if category, ok := m.ActiveCategory(); ok {
		return m.view.ByCategory[category]
	}
	return m.view.Metrics
}

// SelectedLocation returns the selector the dashboard currently shows.
func (m Model) SelectedLocation() string {
	if len(m.locations) == 0 {
		return kpi.AllLocations
	}
	return m.locations[m.location]
}

// ActiveCategory returns the category of the active tab; false on the overview.
func (m Model) ActiveCategory() (model.Category, bool) {
	if m.tab == overviewTab {
		return "", false
	}
	return model.Categories()[m.tab-1], true
}

// Locations returns the selectable locations, starting with the aggregate.
func (m Model) Locations() []string {
	out := make([]string, len(m.locations))
	copy(out, m.locations)
	return out
}

// CurrentView returns the view computed for the current selection.
func (m Model) CurrentView() kpi.View {
	return m.view
}

// Err returns the last reload error, if any.
func (m Model) Err() error {
	return m.lastError
}
