package ui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type logEntry struct {
	level slog.Level
	text  string
}

// LogView is a full-height overlay over the log entries relayed by the
// Compositor. offset counts entries hidden below the window. A detached view
// keeps showing the same entries while new ones arrive.
type LogView struct {
	keys     keyMap
	entries  []logEntry
	offset   int
	detached bool
	limit    int
	height   int
}

// NewLogView returns a log view keeping at most limit entries; a
// non-positive limit keeps everything.
func NewLogView(limit int, keys keyMap) *LogView {
	return &LogView{keys: keys, limit: limit}
}

// capacity is the number of entry rows below the title row.
func (v *LogView) capacity() int {
	return max(v.height-footerHeight-1, 0)
}

func (v *LogView) maxOffset() int {
	return max(len(v.entries)-v.capacity(), 0)
}

// LogEntry appends an entry, evicting the oldest beyond the limit. A
// scrolled-back window stays on the entries it shows.
func (v *LogView) LogEntry(level slog.Level, text string) {
	v.entries = append(v.entries, logEntry{level: level, text: text})
	if v.limit > 0 && len(v.entries) > v.limit {
		drop := len(v.entries) - v.limit
		v.entries = append(v.entries[:0], v.entries[drop:]...)
	}
	if v.detached {
		v.offset = min(v.offset+1, v.maxOffset())
	}
}

// Scroll moves the window by delta entries towards older ones (positive) or
// newer ones (negative). Scrolling back detaches the view; reaching the newest
// entry attaches it again.
func (v *LogView) Scroll(delta int) {
	v.offset = min(max(v.offset+delta, 0), v.maxOffset())
	v.detached = v.offset > 0
}

// ToggleFollow detaches a following view where it stands, or jumps a detached
// one back to the newest entry.
func (v *LogView) ToggleFollow() {
	if v.detached {
		v.offset, v.detached = 0, false
		return
	}
	v.detached = true
}

// HandleKey implements Screen.
func (v *LogView) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, v.keys.LogOlder, v.keys.Up):
		v.Scroll(1)
	case key.Matches(msg, v.keys.LogNewer, v.keys.Down):
		v.Scroll(-1)
	case key.Matches(msg, v.keys.Top):
		v.Scroll(v.maxOffset())
	case key.Matches(msg, v.keys.Bottom):
		v.offset, v.detached = 0, false
	case key.Matches(msg, v.keys.ToggleFollow):
		v.ToggleFollow()
	default:
		return false
	}
	return true
}

// OnResize implements Screen.
func (v *LogView) OnResize(_, height int) {
	v.height = height
	v.offset = min(v.offset, v.maxOffset())
}

// Paint implements Screen.
func (v *LogView) Paint(c Canvas) {
	width, _ := c.Size()
	capacity := v.capacity()
	for y := 0; y <= capacity; y++ {
		fill(c, 0, width, y, ' ', AttrNormal)
	}

	fill(c, 0, width, 0, '─', AttrAccent)
	printAt(c, 2, 0, " Log ", AttrHeader)

	end := len(v.entries) - v.offset
	start := max(end-capacity, 0)
	for i, e := range v.entries[start:end] {
		line := fmt.Sprintf("%-5s %s", levelLabel(e.level), e.text)
		printClipped(c, 1, 1+i, width-2, line, levelAttr(e.level))
	}
}

// FooterInfo implements Screen.
func (v *LogView) FooterInfo() string {
	if v.detached {
		return fmt.Sprintf("Log: %d entries, paused, %d newer hidden", len(v.entries), v.offset)
	}
	return fmt.Sprintf("Log: %d entries, following", len(v.entries))
}

// Controls implements Screen.
func (v *LogView) Controls() []key.Binding {
	return []key.Binding{v.keys.LogOlder, v.keys.LogNewer, v.keys.ToggleFollow}
}

func levelAttr(level slog.Level) Attr {
	switch {
	case level >= slog.LevelError:
		return AttrError
	case level >= slog.LevelWarn:
		return AttrWarning
	case level >= slog.LevelInfo:
		return AttrInfo
	default:
		return AttrDebug
	}
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
