package ui

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/wyrm/internal/item"
)

// Direction is a cursor movement of the list.
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
	MoveTop
	MoveBottom
)

const (
	listPaddingTop    = 0
	listPaddingBottom = footerHeight
	listPaddingLeft   = 0
	listPaddingRight  = 1

	// compressRatio is the share of the list's rows kept visible while the
	// details overlay is open.
	compressRatio = 0.80

	scrollTrack = '▒'
	scrollThumb = '█'
)

// ListView is a virtualized table over the shared item store. Selection and
// marks are store indices, so they stay valid while the store grows.
type ListView struct {
	store   *item.Store
	keys    keyMap
	columns []ColumnSpec

	width, height int
	paddingBottom int
	savedPadding  int

	selected int
	offset   int
	marked   map[int]struct{}
}

// NewListView returns a list over store laid out with columns.
func NewListView(store *item.Store, columns []ColumnSpec, keys keyMap) *ListView {
	if len(columns) == 0 {
		columns = DefaultColumns()
	}
	cols := make([]ColumnSpec, len(columns))
	copy(cols, columns)
	return &ListView{
		store:         store,
		keys:          keys,
		columns:       cols,
		paddingBottom: listPaddingBottom,
		marked:        make(map[int]struct{}),
	}
}

// capacity is the number of item rows currently visible.
func (l *ListView) capacity() int {
	capacity := l.height - listPaddingTop - 1 - l.paddingBottom
	if capacity < 0 {
		return 0
	}
	return capacity
}

// Selected returns the selected store index, or -1 when the list is empty.
func (l *ListView) Selected() int {
	if l.store.Len() == 0 {
		return -1
	}
	return l.selected
}

// HandleKey implements Screen.
func (l *ListView) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, l.keys.Down):
		l.Move(MoveDown)
	case key.Matches(msg, l.keys.Up):
		l.Move(MoveUp)
	case key.Matches(msg, l.keys.Top):
		l.Move(MoveTop)
	case key.Matches(msg, l.keys.Bottom):
		l.Move(MoveBottom)
	case key.Matches(msg, l.keys.Mark):
		l.ToggleMark()
	default:
		return false
	}
	return true
}

// Move shifts the cursor. Stepping past the window edge scrolls by one row.
func (l *ListView) Move(d Direction) {
	count := l.store.Len()
	if count == 0 {
		return
	}
	capacity := l.capacity()

	switch d {
	case MoveUp:
		if l.selected == 0 {
			return
		}
		l.selected--
		if l.selected < l.offset {
			l.offset--
		}
	case MoveDown:
		if l.selected >= count-1 {
			return
		}
		l.selected++
		if l.selected > l.offset+capacity-1 {
			l.offset++
		}
	case MoveTop:
		l.selected, l.offset = 0, 0
	case MoveBottom:
		l.selected = count - 1
		l.offset = max(0, count-capacity)
	}
}

// ToggleMark flips the mark on the selected item.
func (l *ListView) ToggleMark() {
	if l.store.Len() == 0 {
		return
	}
	if _, ok := l.marked[l.selected]; ok {
		delete(l.marked, l.selected)
		return
	}
	l.marked[l.selected] = struct{}{}
}

// IsMarked reports whether the item at idx is marked.
func (l *ListView) IsMarked(idx int) bool {
	_, ok := l.marked[idx]
	return ok
}

// Marked returns the marked indices in ascending order.
func (l *ListView) Marked() []int {
	out := make([]int, 0, len(l.marked))
	for idx := range l.marked {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Compress shrinks the visible rows to make room for an overlay below the
// list. It returns how far the window scrolled to keep the selection visible
// and how many rows the overlay may use; Decompress undoes it.
func (l *ListView) Compress() (delta, overlay int) {
	capacity := l.capacity()
	kept := int(math.Round(compressRatio * float64(capacity)))
	overlay = capacity - kept

	l.savedPadding = l.paddingBottom
	l.paddingBottom += overlay

	if l.store.Len() > 0 {
		delta = max(l.selected-l.offset-kept+1, 0)
	}
	l.offset += delta
	return delta, overlay
}

// Decompress restores the geometry saved by Compress.
func (l *ListView) Decompress(delta int) {
	l.paddingBottom = l.savedPadding
	l.offset = max(l.offset-delta, 0)
}

// OnResize implements Screen. A selection pushed below the new bottom edge is
// pulled back by a single row only.
func (l *ListView) OnResize(width, height int) {
	l.width, l.height = width, height
	layoutColumns(l.columns, width)

	if l.store.Len() > 0 && l.selected > l.offset+l.capacity()-1 {
		l.selected--
	}
}

// Paint implements Screen.
func (l *ListView) Paint(c Canvas) {
	width, _ := c.Size()
	count := l.store.Len()
	capacity := l.capacity()

	visible := 0
	for _, col := range l.columns {
		if !col.fits(width) {
			break
		}
		visible++
	}

	headerY := listPaddingTop
	fill(c, 0, width, headerY, ' ', AttrHeader)
	for i, col := range l.columns[:visible] {
		pad := max(col.width-ansi.StringWidth(col.Title), 0) / 2
		printClipped(c, col.startx+pad, headerY, col.width-pad, col.Title, AttrHeader)
		if i > 0 {
			c.SetCell(col.startx-2, headerY, '|', AttrHeader)
		}
	}

	for row := 0; row < capacity; row++ {
		idx := l.offset + row
		if idx >= count {
			break
		}
		it, ok := l.store.At(idx)
		if !ok {
			break
		}
		l.paintRow(c, listPaddingTop+1+row, idx, it, visible)
	}

	l.paintScrollbar(c, width, count, capacity)
}

func (l *ListView) paintRow(c Canvas, y, idx int, it item.Item, visible int) {
	selected := idx == l.selected
	marked := l.IsMarked(idx)

	attr := AttrNormal
	switch {
	case selected:
		attr = AttrReverse
	case marked:
		attr = AttrMarked
	}

	switch {
	case selected && marked:
		c.SetCell(listPaddingLeft, y, '-', AttrMarked)
	case selected:
		c.SetCell(listPaddingLeft, y, '-', AttrNormal)
	case marked:
		c.SetCell(listPaddingLeft, y, ' ', AttrMarked)
	}

	cells := it.Columns()
	for i, col := range l.columns[:visible] {
		if i >= len(cells) {
			break
		}
		end := printClipped(c, col.startx, y, col.width, cells[i], attr)
		if attr != AttrNormal {
			fill(c, end, col.startx+col.width+columnGap, y, ' ', attr)
		}
	}
}

func (l *ListView) paintScrollbar(c Canvas, width, count, capacity int) {
	if count == 0 || capacity <= 0 {
		return
	}
	x := width - 1
	top := listPaddingTop + 1
	for row := 0; row < capacity; row++ {
		c.SetCell(x, top+row, scrollTrack, AttrMuted)
	}

	height := max(capacity/count, 3) - 2
	start := l.selected * (capacity - 1) / count
	for row := start; row < start+height && row < capacity; row++ {
		c.SetCell(x, top+row, scrollThumb, AttrAccent)
	}
}

// FooterInfo implements Screen.
func (l *ListView) FooterInfo() string {
	count := l.store.Len()
	if count == 0 {
		return "Waiting for results"
	}
	return fmt.Sprintf("%d/%d results, %d marked", l.selected+1, count, len(l.marked))
}

// Controls implements Screen.
func (l *ListView) Controls() []key.Binding {
	return []key.Binding{l.keys.Down, l.keys.Up, l.keys.Mark, l.keys.OpenDetails, l.keys.Finish}
}
