package ui

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/wyrm/internal/item"
)

func testStore(n int) *item.Store {
	s := &item.Store{}
	for i := 0; i < n; i++ {
		s.Append(item.Item{
			Source:  "test",
			ID:      strconv.Itoa(i),
			Title:   fmt.Sprintf("Book %d", i),
			Year:    2000 + i,
			Authors: []string{"Naomi Novik"},
			Format:  "epub",
		})
	}
	return s
}

// heightFor returns the terminal height giving the list capacity rows.
func heightFor(capacity int) int {
	return capacity + listPaddingTop + 1 + listPaddingBottom
}

func newTestList(store *item.Store, capacity int) *ListView {
	l := NewListView(store, nil, DefaultKeyMap())
	l.OnResize(80, heightFor(capacity))
	return l
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestListView_ScrollsByOneAtWindowEdge(t *testing.T) {
	l := newTestList(testStore(10), 5)

	for i := 0; i < 4; i++ {
		l.Move(MoveDown)
	}
	if l.selected != 4 || l.offset != 0 {
		t.Fatalf("after 4 downs: selected=%d offset=%d, want 4/0", l.selected, l.offset)
	}
	l.Move(MoveDown)
	if l.selected != 5 || l.offset != 1 {
		t.Fatalf("after 5 downs: selected=%d offset=%d, want 5/1", l.selected, l.offset)
	}
	for i := 0; i < 5; i++ {
		l.Move(MoveUp)
	}
	if l.selected != 0 || l.offset != 0 {
		t.Fatalf("back up: selected=%d offset=%d, want 0/0", l.selected, l.offset)
	}
}

func TestListView_NoOpAtEnds(t *testing.T) {
	l := newTestList(testStore(3), 5)

	l.Move(MoveUp)
	if l.selected != 0 || l.offset != 0 {
		t.Fatalf("up at top: selected=%d offset=%d, want 0/0", l.selected, l.offset)
	}
	l.Move(MoveBottom)
	l.Move(MoveDown)
	if l.selected != 2 || l.offset != 0 {
		t.Fatalf("down at bottom: selected=%d offset=%d, want 2/0", l.selected, l.offset)
	}
}

func TestListView_TopThenBottom(t *testing.T) {
	const capacity = 5
	for _, n := range []int{1, 3, 5, 6, 10, 37} {
		l := newTestList(testStore(n), capacity)
		l.Move(MoveTop)
		l.Move(MoveBottom)
		if l.selected != n-1 || l.offset != max(0, n-capacity) {
			t.Fatalf("n=%d: selected=%d offset=%d, want %d/%d", n, l.selected, l.offset, n-1, max(0, n-capacity))
		}
	}
}

func TestListView_SelectionStaysInWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dirs := []Direction{MoveUp, MoveDown, MoveDown, MoveTop, MoveBottom}

	for _, tc := range []struct{ n, capacity int }{{1, 5}, {4, 5}, {10, 5}, {50, 7}, {200, 12}} {
		l := newTestList(testStore(tc.n), tc.capacity)
		for step := 0; step < 500; step++ {
			l.Move(dirs[rng.Intn(len(dirs))])
			if l.selected < 0 || l.selected >= tc.n {
				t.Fatalf("n=%d step %d: selected=%d out of range", tc.n, step, l.selected)
			}
			if l.offset < 0 || l.offset > l.selected || l.selected > l.offset+tc.capacity-1 {
				t.Fatalf("n=%d step %d: selected=%d outside window offset=%d capacity=%d",
					tc.n, step, l.selected, l.offset, tc.capacity)
			}
		}
	}
}

func TestListView_EmptyListIsInert(t *testing.T) {
	l := newTestList(testStore(0), 5)

	for _, d := range []Direction{MoveDown, MoveUp, MoveTop, MoveBottom} {
		l.Move(d)
	}
	l.ToggleMark()
	if l.Selected() != -1 || l.offset != 0 || len(l.Marked()) != 0 {
		t.Fatalf("empty list changed: selected=%d offset=%d marked=%v", l.Selected(), l.offset, l.Marked())
	}

	g := newGrid(80, heightFor(5))
	l.Paint(g)
	if got := g.Cell(79, 1).Rune; got != ' ' {
		t.Fatalf("scrollbar painted for empty list: %q", got)
	}
	if got := l.FooterInfo(); got != "Waiting for results" {
		t.Fatalf("FooterInfo = %q", got)
	}
}

func TestListView_ToggleMarkIsIndependentOfSelection(t *testing.T) {
	l := newTestList(testStore(10), 5)

	l.Move(MoveDown)
	l.ToggleMark()
	l.ToggleMark()
	if len(l.Marked()) != 0 {
		t.Fatalf("double toggle left marks %v", l.Marked())
	}

	l.ToggleMark()
	l.Move(MoveBottom)
	l.ToggleMark()
	l.Move(MoveTop)
	got := l.Marked()
	if len(got) != 2 || got[0] != 1 || got[1] != 9 {
		t.Fatalf("Marked = %v, want [1 9]", got)
	}
	if !l.IsMarked(9) || l.IsMarked(0) {
		t.Fatalf("IsMarked mismatch")
	}
}

func TestListView_HandleKey(t *testing.T) {
	l := newTestList(testStore(10), 5)

	cases := []struct {
		msg      tea.KeyMsg
		consumed bool
		selected int
	}{
		{runeKey('j'), true, 1},
		{tea.KeyMsg{Type: tea.KeyDown}, true, 2},
		{runeKey('k'), true, 1},
		{runeKey('G'), true, 9},
		{runeKey('g'), true, 0},
		{tea.KeyMsg{Type: tea.KeyEnd}, true, 9},
		{tea.KeyMsg{Type: tea.KeyHome}, true, 0},
		{runeKey('x'), false, 0},
	}
	for i, tc := range cases {
		if got := l.HandleKey(tc.msg); got != tc.consumed {
			t.Fatalf("case %d (%s): consumed=%v, want %v", i, tc.msg, got, tc.consumed)
		}
		if l.selected != tc.selected {
			t.Fatalf("case %d (%s): selected=%d, want %d", i, tc.msg, l.selected, tc.selected)
		}
	}

	if !l.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}) || !l.IsMarked(0) {
		t.Fatalf("space did not mark the selected item")
	}
}

func TestListView_CompressDecompressRestores(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(30)
		capacity := 3 + rng.Intn(20)
		l := newTestList(testStore(n), capacity)
		for i := rng.Intn(60); i > 0; i-- {
			l.Move(MoveDown)
		}

		offset, padding := l.offset, l.paddingBottom
		delta, _ := l.Compress()
		l.Decompress(delta)
		if l.offset != offset || l.paddingBottom != padding {
			t.Fatalf("trial %d: offset %d->%d padding %d->%d", trial, offset, l.offset, padding, l.paddingBottom)
		}
	}
}

func TestListView_CompressKeepsSelectionVisible(t *testing.T) {
	l := newTestList(testStore(10), 8)
	for i := 0; i < 3; i++ {
		l.Move(MoveDown)
	}

	delta, overlay := l.Compress()
	if got := l.capacity(); got != 6 {
		t.Fatalf("compressed capacity = %d, want 6", got)
	}
	if overlay != 2 || delta != 0 {
		t.Fatalf("Compress = (%d, %d), want (0, 2)", delta, overlay)
	}
	l.Decompress(delta)

	for i := 0; i < 4; i++ {
		l.Move(MoveDown)
	}
	delta, _ = l.Compress()
	if delta != 2 {
		t.Fatalf("delta = %d, want 2", delta)
	}
	if l.selected < l.offset || l.selected > l.offset+5 {
		t.Fatalf("selected %d not in [%d, %d]", l.selected, l.offset, l.offset+5)
	}
	l.Decompress(delta)
	if l.offset != 0 || l.capacity() != 8 {
		t.Fatalf("after Decompress offset=%d capacity=%d, want 0/8", l.offset, l.capacity())
	}
}

func TestListView_ResizePullsSelectionBackOneRow(t *testing.T) {
	l := newTestList(testStore(10), 8)
	for i := 0; i < 7; i++ {
		l.Move(MoveDown)
	}

	l.OnResize(80, heightFor(5))
	if l.selected != 6 {
		t.Fatalf("selected = %d, want 6 (one-row correction only)", l.selected)
	}
}

func TestListView_NarrowTerminalDropsTrailingColumns(t *testing.T) {
	cols := []ColumnSpec{
		{Title: "Alpha", Cells: 10},
		{Title: "Beta", Cells: 10},
		{Title: "Gamma", Cells: 10},
	}
	l := NewListView(testStore(1), cols, DefaultKeyMap())

	l.OnResize(60, heightFor(5))
	g := newGrid(60, heightFor(5))
	l.Paint(g)
	// columns start at 1, 14 and 27; titles are centred in 10 cells
	for _, want := range []struct {
		x     int
		first rune
	}{{3, 'A'}, {12, '|'}, {17, 'B'}, {25, '|'}, {29, 'G'}} {
		if got := g.Cell(want.x, 0).Rune; got != want.first {
			t.Fatalf("wide: header at x=%d = %q, want %q", want.x, got, want.first)
		}
	}

	l.OnResize(40, heightFor(5))
	g = newGrid(40, heightFor(5))
	l.Paint(g)
	if got := g.Cell(3, 0).Rune; got != 'A' {
		t.Fatalf("narrow: Alpha moved, header x=3 = %q", got)
	}
	if got := g.Cell(17, 0).Rune; got != 'B' {
		t.Fatalf("narrow: Beta moved, header x=17 = %q", got)
	}
	if got := g.Cell(25, 0).Rune; got != ' ' {
		t.Fatalf("narrow: separator before Gamma still painted = %q", got)
	}
	if got := g.Cell(29, 0).Rune; got != ' ' {
		t.Fatalf("narrow: Gamma still painted, header x=29 = %q", got)
	}
}

func TestListView_PaintsHighlightTruncationAndIndicator(t *testing.T) {
	store := &item.Store{}
	store.Append(
		item.Item{Title: "A very long title indeed", Year: 2006},
		item.Item{Title: "Short", Year: 2007},
		item.Item{Title: "Marked", Year: 2008},
	)
	cols := []ColumnSpec{{Title: "Title", Cells: 8}, {Title: "Year", Cells: 4}}
	l := NewListView(store, cols, DefaultKeyMap())
	l.OnResize(40, heightFor(5))
	l.Move(MoveDown)
	l.Move(MoveDown)
	l.ToggleMark()
	l.Move(MoveUp)

	g := newGrid(40, heightFor(5))
	l.Paint(g)

	// row y=1: item 0, plain, truncated
	if g.Cell(1, 1).Rune != 'A' || g.Cell(8, 1).Rune != '…' {
		t.Fatalf("cell 8 = %q, want ellipsis", g.Cell(8, 1).Rune)
	}

	// row y=2: item 1, selected
	if c := g.Cell(0, 2); c.Rune != '-' || c.Attr != AttrNormal {
		t.Fatalf("selected indicator = %+v", c)
	}
	for x := 1; x < l.columns[1].startx; x++ {
		if attr := g.Cell(x, 2).Attr; attr != AttrReverse {
			t.Fatalf("selected row x=%d attr=%d, want reverse", x, attr)
		}
	}

	// row y=3: item 2, marked only
	if c := g.Cell(0, 3); c.Rune != ' ' || c.Attr != AttrMarked {
		t.Fatalf("marked indicator = %+v", c)
	}
	if attr := g.Cell(10, 3).Attr; attr != AttrMarked {
		t.Fatalf("marked fill attr = %d, want marked", attr)
	}
}

func TestListView_ScrollbarTracksSelection(t *testing.T) {
	l := newTestList(testStore(20), 5)
	for i := 0; i < 10; i++ {
		l.Move(MoveDown)
	}

	g := newGrid(80, heightFor(5))
	l.Paint(g)
	for row := 0; row < 5; row++ {
		want := scrollTrack
		if row == 10*4/20 {
			want = scrollThumb
		}
		if got := g.Cell(79, 1+row).Rune; got != want {
			t.Fatalf("scrollbar row %d = %q, want %q", row, got, want)
		}
	}
}

func TestListView_FooterInfo(t *testing.T) {
	l := newTestList(testStore(4), 5)
	l.Move(MoveDown)
	l.ToggleMark()
	if got, want := l.FooterInfo(), "2/4 results, 1 marked"; got != want {
		t.Fatalf("FooterInfo = %q, want %q", got, want)
	}
}
