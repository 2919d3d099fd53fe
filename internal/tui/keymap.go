package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Location selection
	NextLocation key.Binding
	PrevLocation key.Binding

	// Category tabs
	NextTab  key.Binding
	PrevTab  key.Binding
	Overview key.Binding
	Inflow   key.Binding
	Labour   key.Binding
	Parts    key.Binding
	Effic    key.Binding

	// Scrolling
	Up   key.Binding
	Down key.Binding
	Home key.Binding

	// Application
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextLocation: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n/tab", "next location"),
		),
		PrevLocation: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p/S-tab", "prev location"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "prev tab"),
		),
		Overview: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "overview"),
		),
		Inflow: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "inflow"),
		),
		Labour: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "labour"),
		),
		Parts: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "parts"),
		),
		Effic: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "efficiency"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextLocation, k.NextTab, k.Reload, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextLocation, k.PrevLocation},
		{k.NextTab, k.PrevTab, k.Overview, k.Inflow, k.Labour, k.Parts, k.Effic},
		{k.Up, k.Down, k.Home},
		{k.Reload, k.Help, k.Quit},
	}
}

// tabKeys maps the direct tab bindings to tab positions.
func (k KeyMap) tabKeys() []key.Binding {
	return []key.Binding{k.Overview, k.Inflow, k.Labour, k.Parts, k.Effic}
}
