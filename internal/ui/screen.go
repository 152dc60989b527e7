package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is a paintable, input-handling, resizable view owned by the
// Compositor.
type Screen interface {
	// HandleKey reports whether the screen consumed the key.
	HandleKey(msg tea.KeyMsg) bool
	Paint(c Canvas)
	OnResize(width, height int)
	// FooterInfo is the status text shown in the footer bar while the
	// screen has focus.
	FooterInfo() string
	// Controls lists the screen-specific bindings shown in the footer.
	Controls() []key.Binding
}

// screenID indexes the Compositor's screen arena.
type screenID int

const (
	screenList screenID = iota
	screenDetail
	screenLog

	screenCount
)

func (id screenID) String() string {
	switch id {
	case screenList:
		return "list"
	case screenDetail:
		return "details"
	case screenLog:
		return "log"
	default:
		return "unknown"
	}
}
