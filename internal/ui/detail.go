package ui

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"

	"github.com/five82/wyrm/internal/item"
)

// Fetcher loads the long-form description of an item. It is called from a
// bubbletea command goroutine, never from the event loop.
type Fetcher interface {
	FetchDetails(ctx context.Context, it item.Item) (string, error)
}

// detailsFetchedMsg reports that the description of the item at index has
// been stored, successfully or not.
type detailsFetchedMsg struct {
	index int
	title string
	err   error
}

// fetchDetails runs the enrichment fetch for the item at idx and records the
// outcome in the store. The caller must have won store.BeginFetch(idx).
func fetchDetails(ctx context.Context, f Fetcher, store *item.Store, idx int) tea.Cmd {
	return func() tea.Msg {
		it, ok := store.At(idx)
		if !ok {
			return detailsFetchedMsg{index: idx, err: fmt.Errorf("item %d not found", idx)}
		}
		desc, err := f.FetchDetails(ctx, it)
		store.SetDetails(idx, desc, err)
		return detailsFetchedMsg{index: idx, title: it.Title, err: err}
	}
}

// DetailView shows a single item in the rows freed by compressing the list.
type DetailView struct {
	store   *item.Store
	keys    keyMap
	spinner spinner.Model
	policy  *bluemonday.Policy

	index int
	top   int
	rows  int
}

// NewDetailView returns a hidden detail view over store.
func NewDetailView(store *item.Store, keys keyMap) *DetailView {
	return &DetailView{
		store:   store,
		keys:    keys,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		policy:  bluemonday.StrictPolicy(),
		index:   -1,
	}
}

// Show points the view at the item at idx and places it on rows
// [top, top+rows).
func (d *DetailView) Show(idx, top, rows int) {
	d.index = idx
	d.SetArea(top, rows)
}

// SetArea moves the overlay without changing the shown item.
func (d *DetailView) SetArea(top, rows int) {
	d.top, d.rows = top, max(rows, 0)
}

// Hide detaches the view from its item. A fetch still in flight keeps running
// and lands in the store.
func (d *DetailView) Hide() {
	d.index = -1
}

// Loading reports whether the shown item's description is being fetched.
func (d *DetailView) Loading() bool {
	it, ok := d.store.At(d.index)
	if !ok {
		return false
	}
	_, status := it.Description()
	return status == item.StatusFetching
}

// tick returns the command starting the loading spinner.
func (d *DetailView) tick() tea.Cmd {
	return d.spinner.Tick
}

// updateSpinner advances the loading spinner while a fetch is in flight.
func (d *DetailView) updateSpinner(msg spinner.TickMsg) tea.Cmd {
	if !d.Loading() {
		return nil
	}
	var cmd tea.Cmd
	d.spinner, cmd = d.spinner.Update(msg)
	return cmd
}

// HandleKey implements Screen. Closing is the view's only action and the
// Compositor handles it, so every other key is left unconsumed.
func (d *DetailView) HandleKey(tea.KeyMsg) bool {
	return false
}

// OnResize implements Screen. The Compositor re-places the overlay after the
// list has been re-laid out, and Paint wraps to the canvas width.
func (d *DetailView) OnResize(int, int) {}

// Paint implements Screen. Short overlays drop the border and header rows
// first so the description line always has a row.
func (d *DetailView) Paint(c Canvas) {
	it, ok := d.store.At(d.index)
	if !ok || d.rows == 0 {
		return
	}
	width, _ := c.Size()
	bottom := d.top + d.rows
	for y := d.top; y < bottom; y++ {
		fill(c, 0, width, y, ' ', AttrNormal)
	}

	border, headers := overlayLayout(d.rows)
	y := d.top
	if border {
		fill(c, 0, width, y, '─', AttrAccent)
		printAt(c, 2, y, " Details ", AttrHeader)
		y++
	}

	inner := width - 2
	header := []styledLine{{it.Title, AttrHeader}}
	for _, line := range []styledLine{
		{joinNonEmpty("  ·  ", strings.Join(it.Authors, ", "), positive(it.Year), it.Publisher), AttrNormal},
		{joinNonEmpty("  ",
			labelled("Series", it.Series),
			labelled("Format", it.Format),
			labelled("Edition", it.Edition),
			labelled("Language", it.Language),
			labelled("Pages", positive(it.Pages)),
		), AttrMuted},
	} {
		if line.text != "" {
			header = append(header, line)
		}
	}
	header = header[:min(headers, len(header))]

	for _, line := range append(header, d.body(it, inner)...) {
		if y >= bottom {
			return
		}
		printClipped(c, 1, y, inner, line.text, line.attr)
		y++
	}
}

// overlayLayout decides whether an overlay of rows rows gets a border and how
// many header lines (title, byline, metadata) it shows. At least one row is
// always left for the body.
func overlayLayout(rows int) (border bool, headers int) {
	border = rows >= 3
	headers = rows - 1
	if border {
		headers--
	}
	return border, min(max(headers, 0), 3)
}

type styledLine struct {
	text string
	attr Attr
}

func (d *DetailView) body(it item.Item, width int) []styledLine {
	desc, status := it.Description()
	switch status {
	case item.StatusFetching:
		return []styledLine{{ansi.Strip(d.spinner.View()) + " Loading…", AttrMuted}}
	case item.StatusFailed:
		return []styledLine{{"Failed to fetch description: " + it.FetchError(), AttrError}}
	}

	text := d.cleanDescription(desc)
	if text == "" {
		return []styledLine{{"No description available", AttrMuted}}
	}
	var out []styledLine
	for _, line := range strings.Split(ansi.Wrap(text, max(width, 1), ""), "\n") {
		out = append(out, styledLine{line, AttrNormal})
	}
	return out
}

var paragraphBreaks = strings.NewReplacer(
	"<br>", "\n", "<br/>", "\n", "<br />", "\n",
	"</p>", "\n", "<P>", "\n", "<BR>", "\n",
)

// cleanDescription strips markup from a seeker description and collapses
// whitespace within paragraphs.
func (d *DetailView) cleanDescription(desc string) string {
	if strings.TrimSpace(desc) == "" {
		return ""
	}
	text := html.UnescapeString(d.policy.Sanitize(paragraphBreaks.Replace(desc)))

	var paragraphs []string
	for _, p := range strings.Split(text, "\n") {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n")
}

// FooterInfo implements Screen.
func (d *DetailView) FooterInfo() string {
	it, ok := d.store.At(d.index)
	if !ok {
		return ""
	}
	_, status := it.Description()
	return fmt.Sprintf("%s [%s]", it.Title, status)
}

// Controls implements Screen.
func (d *DetailView) Controls() []key.Binding {
	return []key.Binding{d.keys.CloseDetails, d.keys.Finish}
}

func labelled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}

func positive(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
