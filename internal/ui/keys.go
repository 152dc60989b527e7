package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Finish     key.Binding
	CycleTheme key.Binding

	// Screen management
	OpenDetails  key.Binding
	CloseDetails key.Binding
	ToggleLog    key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// List actions
	Mark key.Binding

	// Log actions
	LogOlder     key.Binding
	LogNewer     key.Binding
	ToggleFollow key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Finish: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "done"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),

		OpenDetails: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "details"),
		),
		CloseDetails: key.NewBinding(
			key.WithKeys("h", "left", "esc"),
			key.WithHelp("h/esc", "close"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "log"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		Mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mark"),
		),

		LogOlder: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u/k", "older"),
		),
		LogNewer: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d/j", "newer"),
		),
		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
	}
}

// globalControls are appended to every screen's footer controls.
func (k keyMap) globalControls() []key.Binding {
	return []key.Binding{k.ToggleLog, k.CycleTheme, k.Quit}
}
