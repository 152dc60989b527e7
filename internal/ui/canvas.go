package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Attr is the role of a painted cell; the active theme decides how each role
// looks when the canvas is rendered.
type Attr uint8

const (
	AttrNormal Attr = iota
	AttrReverse
	AttrMarked
	AttrHeader
	AttrMuted
	AttrAccent
	AttrDebug
	AttrInfo
	AttrWarning
	AttrError

	attrCount
)

// Canvas is the terminal cell boundary screens paint through.
type Canvas interface {
	Size() (width, height int)
	SetCell(x, y int, r rune, a Attr)
}

// Cell is one painted terminal cell.
type Cell struct {
	Rune rune
	Attr Attr
}

var blankCell = Cell{Rune: ' ', Attr: AttrNormal}

// grid is the in-memory Canvas a frame is painted into before bubbletea
// writes it out. Writes outside the grid are dropped.
type grid struct {
	width, height int
	cells         []Cell
}

func newGrid(width, height int) *grid {
	g := &grid{}
	g.Resize(width, height)
	return g
}

func (g *grid) Size() (int, int) {
	return g.width, g.height
}

func (g *grid) SetCell(x, y int, r rune, a Attr) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	if r < ' ' {
		r = ' '
	}
	g.cells[y*g.width+x] = Cell{Rune: r, Attr: a}
}

// Cell returns the cell at (x, y), or a blank cell outside the grid.
func (g *grid) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return blankCell
	}
	return g.cells[y*g.width+x]
}

// Line returns row y as plain text.
func (g *grid) Line(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	var b strings.Builder
	for _, c := range g.cells[y*g.width : (y+1)*g.width] {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

func (g *grid) Clear() {
	for i := range g.cells {
		g.cells[i] = blankCell
	}
}

func (g *grid) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g.width, g.height = width, height
	g.cells = make([]Cell, width*height)
	g.Clear()
}

// Render styles runs of equally attributed cells and joins the rows.
func (g *grid) Render(styles *styleSet) string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		row := g.cells[y*g.width : (y+1)*g.width]
		for x := 0; x < len(row); {
			attr := row[x].Attr
			run.Reset()
			for ; x < len(row) && row[x].Attr == attr; x++ {
				run.WriteRune(row[x].Rune)
			}
			out.WriteString(styles[attr].Render(run.String()))
		}
	}
	return out.String()
}

// printAt writes s one rune per cell starting at (x, y) and returns the
// column after the last written cell.
func printAt(c Canvas, x, y int, s string, a Attr) int {
	for _, r := range s {
		c.SetCell(x, y, r, a)
		x++
	}
	return x
}

// printClipped truncates s to width cells, marking the cut with an ellipsis.
func printClipped(c Canvas, x, y, width int, s string, a Attr) int {
	if width <= 0 {
		return x
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, ellipsis)
	}
	return printAt(c, x, y, s, a)
}

// fill paints r over [x0, x1) on row y.
func fill(c Canvas, x0, x1, y int, r rune, a Attr) {
	for x := x0; x < x1; x++ {
		c.SetCell(x, y, r, a)
	}
}

const ellipsis = "…"
