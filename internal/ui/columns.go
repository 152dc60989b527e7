package ui

import "strings"

// ColumnSpec describes one list column. Exactly one of Cells (absolute width)
// or Fraction (share of the available width) is expected to be set.
type ColumnSpec struct {
	Title    string
	Cells    int
	Fraction float64

	width  int
	startx int
}

// columnGap separates a column's last cell from the next column's start.
const columnGap = 3

// DefaultColumns returns the table layout in item.Columns order.
func DefaultColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Title", Fraction: 0.26},
		{Title: "Year", Cells: 4},
		{Title: "Series", Fraction: 0.12},
		{Title: "Authors", Fraction: 0.16},
		{Title: "Publisher", Fraction: 0.10},
		{Title: "Format", Cells: 6},
	}
}

// OverrideColumn replaces the width request of the column titled title
// (case-insensitive). It reports whether such a column exists.
func OverrideColumn(cols []ColumnSpec, title string, cells int, fraction float64) bool {
	for i := range cols {
		if !strings.EqualFold(cols[i].Title, strings.TrimSpace(title)) {
			continue
		}
		if fraction > 0 {
			cols[i].Cells, cols[i].Fraction = 0, fraction
		} else {
			cols[i].Cells, cols[i].Fraction = cells, 0
		}
		return true
	}
	return false
}

// layoutColumns recomputes absolute widths and start offsets for a terminal
// of the given width.
func layoutColumns(cols []ColumnSpec, termWidth int) {
	avail := termWidth - listPaddingRight - 1
	if avail < 0 {
		avail = 0
	}
	x := listPaddingLeft + 1
	for i := range cols {
		c := &cols[i]
		if c.Fraction > 0 {
			c.width = int(c.Fraction * float64(avail))
		} else {
			c.width = c.Cells
		}
		if c.width < 0 {
			c.width = 0
		}
		c.startx = x
		x += c.width + columnGap
	}
}

// fits reports whether the column and its trailing highlight still fit in
// front of the scrollbar.
func (c ColumnSpec) fits(termWidth int) bool {
	return c.width <= termWidth-1-listPaddingRight-c.startx-2
}
