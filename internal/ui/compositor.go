package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/wyrm/internal/item"
	"github.com/five82/wyrm/internal/logsink"
)

// footerHeight is the status bar plus the controls line.
const footerHeight = 2

// LogSource delivers log entries produced anywhere in the process.
type LogSource interface {
	Ready() <-chan struct{}
	Drain() []logsink.Entry
}

// ItemsUpdatedMsg tells the Compositor the item store has grown.
type ItemsUpdatedMsg struct{}

type logsReadyMsg struct {
	entries []logsink.Entry
}

// Compositor owns the three screens, routes input to the focused one and
// paints the frame. It is the bubbletea model of the program.
type Compositor struct {
	ctx     context.Context
	store   *item.Store
	fetcher Fetcher
	logs    LogSource
	keys    keyMap
	help    help.Model

	renderer *lipgloss.Renderer
	theme    Theme
	styles   styleSet
	canvas   *grid

	list   *ListView
	detail *DetailView
	log    *LogView
	arena  [screenCount]Screen

	focus       screenID
	last        screenID
	detailsOpen bool
	scrollback  int

	width, height int
	wanted        []item.Item
}

// NewCompositor builds the screens over opts.Store.
func NewCompositor(opts Options) *Compositor {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &item.Store{}
	}

	keys := DefaultKeyMap()
	c := &Compositor{
		ctx:     ctx,
		store:   store,
		fetcher: opts.Fetcher,
		logs:    opts.Logs,
		keys:    keys,
		help:    help.New(),
		canvas:  newGrid(0, 0),
		list:    NewListView(store, opts.Columns, keys),
		detail:  NewDetailView(store, keys),
		log:     NewLogView(opts.LogLimit, keys),
	}
	if opts.Output != nil {
		c.renderer = lipgloss.NewRenderer(opts.Output)
	}
	c.arena = [screenCount]Screen{
		screenList:   c.list,
		screenDetail: c.detail,
		screenLog:    c.log,
	}
	c.setTheme(GetTheme(opts.ThemeName))
	return c
}

func (c *Compositor) setTheme(t Theme) {
	c.theme = t
	c.styles = t.Styles(c.renderer)
}

// Init implements tea.Model.
func (c *Compositor) Init() tea.Cmd {
	return c.waitForLogs()
}

// waitForLogs blocks until the log source has entries and hands them to the
// event loop.
func (c *Compositor) waitForLogs() tea.Cmd {
	if c.logs == nil {
		return nil
	}
	ctx, logs := c.ctx, c.logs
	return func() tea.Msg {
		select {
		case <-logs.Ready():
		case <-ctx.Done():
			return nil
		}
		return logsReadyMsg{entries: logs.Drain()}
	}
}

// Update implements tea.Model.
func (c *Compositor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.Resize(msg.Width, msg.Height)
		return c, nil

	case tea.KeyMsg:
		return c, c.handleKey(msg)

	case ItemsUpdatedMsg:
		// the next View repaints from the grown store
		return c, nil

	case detailsFetchedMsg:
		if msg.err != nil {
			slog.Warn("description fetch failed", "item", msg.title, "error", msg.err)
		} else {
			slog.Debug("description fetched", "item", msg.title)
		}
		return c, nil

	case spinner.TickMsg:
		if !c.detailsOpen {
			return c, nil
		}
		return c, c.detail.updateSpinner(msg)

	case logsReadyMsg:
		for _, e := range msg.entries {
			c.log.LogEntry(e.Level, e.Message)
		}
		return c, c.waitForLogs()
	}
	return c, nil
}

func (c *Compositor) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, c.keys.Quit):
		c.wanted = nil
		return tea.Quit
	case key.Matches(msg, c.keys.Finish):
		c.wanted = c.store.Take(c.list.Marked())
		return tea.Quit
	case key.Matches(msg, c.keys.CycleTheme):
		c.setTheme(GetTheme(NextTheme(c.theme.Name)))
		slog.Debug("theme changed", "theme", c.theme.Name)
		return nil
	case key.Matches(msg, c.keys.OpenDetails):
		if cmd, ok := c.OpenDetails(); ok {
			return cmd
		}
	case key.Matches(msg, c.keys.CloseDetails):
		if c.CloseDetails() {
			return nil
		}
		if c.focus == screenLog && c.ToggleLog() {
			return nil
		}
	case key.Matches(msg, c.keys.ToggleLog):
		if c.ToggleLog() {
			return nil
		}
	}
	c.arena[c.focus].HandleKey(msg)
	return nil
}

// OpenDetails compresses the list and shows the selected item below it. The
// description is fetched in the background unless it is already populated or
// being fetched.
func (c *Compositor) OpenDetails() (tea.Cmd, bool) {
	if c.detailsOpen || c.focus == screenLog {
		return nil, false
	}
	idx := c.list.Selected()
	if idx < 0 {
		return nil, false
	}

	delta, overlay := c.list.Compress()
	c.scrollback = delta
	c.detail.Show(idx, c.overlayTop(overlay), overlay)
	c.last, c.focus = c.focus, screenDetail
	c.detailsOpen = true

	var cmds []tea.Cmd
	if c.fetcher != nil && c.store.BeginFetch(idx) {
		cmds = append(cmds, fetchDetails(c.ctx, c.fetcher, c.store, idx))
	}
	if c.detail.Loading() {
		cmds = append(cmds, c.detail.tick())
	}
	return tea.Batch(cmds...), true
}

// CloseDetails restores the list geometry and the previous focus. A fetch in
// flight is not cancelled.
func (c *Compositor) CloseDetails() bool {
	if !c.detailsOpen {
		return false
	}
	c.focus = c.last
	c.list.Decompress(c.scrollback)
	c.scrollback = 0
	c.detailsOpen = false
	c.detail.Hide()
	return true
}

// ToggleLog opens or closes the log overlay. It is rejected while details
// are open.
func (c *Compositor) ToggleLog() bool {
	if c.detailsOpen {
		return false
	}
	if c.focus == screenLog {
		c.focus = c.last
		return true
	}
	c.last, c.focus = c.focus, screenLog
	return true
}

// Resize broadcasts the new terminal size to every screen. An open details
// overlay is re-placed against the re-laid-out list.
func (c *Compositor) Resize(width, height int) {
	c.width, c.height = width, height
	c.canvas.Resize(width, height)
	c.help.Width = max(width-2, 0)

	if c.detailsOpen {
		c.list.Decompress(c.scrollback)
	}
	for _, s := range c.arena {
		s.OnResize(width, height)
	}
	if c.detailsOpen {
		delta, overlay := c.list.Compress()
		c.scrollback = delta
		c.detail.SetArea(c.overlayTop(overlay), overlay)
	}
}

func (c *Compositor) overlayTop(overlay int) int {
	return c.height - footerHeight - overlay
}

// View implements tea.Model.
func (c *Compositor) View() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}
	if err := Fits(c.width, c.height); err != nil {
		return ansi.Truncate("Terminal too small for wyrm", c.width, ellipsis)
	}
	c.paint()
	return c.canvas.Render(&c.styles)
}

// paint draws the base list, the active overlay and the footer into the
// canvas.
func (c *Compositor) paint() {
	c.canvas.Clear()
	c.list.Paint(c.canvas)
	switch {
	case c.detailsOpen:
		c.detail.Paint(c.canvas)
	case c.focus == screenLog:
		c.log.Paint(c.canvas)
	}
	c.paintFooter()
}

func (c *Compositor) paintFooter() {
	focused := c.arena[c.focus]
	status := c.height - footerHeight

	fill(c.canvas, 0, c.width, status, ' ', AttrReverse)
	printClipped(c.canvas, 1, status, c.width-2, focused.FooterInfo(), AttrReverse)

	bindings := append(focused.Controls(), c.keys.globalControls()...)
	controls := ansi.Strip(c.help.ShortHelpView(bindings))
	printClipped(c.canvas, 1, status+1, c.width-2, controls, AttrMuted)
}

// Wanted returns the items handed back when the user finished with marks.
func (c *Compositor) Wanted() []item.Item {
	return c.wanted
}
