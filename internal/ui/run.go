package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/five82/wyrm/internal/item"
)

const (
	minWidth  = 50
	minHeight = 10
)

// ErrDoesNotFit is returned when the terminal cannot hold the minimum layout.
var ErrDoesNotFit = errors.New("terminal too small")

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *item.Store
	// Output is the terminal the UI is drawn on; nil means stdout.
	Output    *os.File
	Fetcher   Fetcher
	Logs      LogSource
	Columns   []ColumnSpec
	ThemeName string
	LogLimit  int
}

// Fits reports whether a width x height terminal can hold the layout.
func Fits(width, height int) error {
	if width < minWidth || height < minHeight {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrDoesNotFit, width, height, minWidth, minHeight)
	}
	return nil
}

// CheckTerminal checks the terminal attached to f before the display loop
// starts.
func CheckTerminal(f *os.File) error {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("%s is not a terminal", f.Name())
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("query terminal size: %w", err)
	}
	return Fits(width, height)
}

// Program runs the Compositor on the terminal.
type Program struct {
	ctx   context.Context
	model *Compositor
	tea   *tea.Program
}

// New prepares the program without starting it.
func New(opts Options) *Program {
	model := NewCompositor(opts)
	return &Program{
		ctx:   model.ctx,
		model: model,
		tea:   tea.NewProgram(model, programOptions(model.ctx, opts.Output)...),
	}
}

func programOptions(ctx context.Context, out *os.File) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}

// Update tells the UI the item store has grown. It is safe to call from any
// goroutine and blocks until the event loop accepts the notification or the
// program has exited.
func (p *Program) Update() {
	p.tea.Send(ItemsUpdatedMsg{})
}

// Run enters the display loop. It reports true when the user finished with
// marked items, which WantedItems then returns.
func (p *Program) Run() (bool, error) {
	_, err := p.tea.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && p.ctx.Err() != nil {
			return false, nil
		}
		return false, fmt.Errorf("run ui: %w", err)
	}
	return len(p.model.Wanted()) > 0, nil
}

// WantedItems returns the marked items handed back by the user.
func (p *Program) WantedItems() []item.Item {
	return p.model.Wanted()
}
