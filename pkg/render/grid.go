package render

import (
	"image/color"
	"math"
)

// Cell is one character cell of a Grid.
type Cell struct {
	Rune rune
	Fg   color.RGBA
	Bg   color.RGBA
}

// Grid is a character-cell raster. Each cell stands for CellWidth x
// CellHeight screen pixels, so a Grid can back a pixel Surface.
type Grid struct {
	Cols, Rows            int
	CellWidth, CellHeight int
	cells                 []Cell
}

// NewGrid creates a blank grid.
func NewGrid(cols, rows, cellWidth, cellHeight int) *Grid {
	g := &Grid{CellWidth: max(cellWidth, 1), CellHeight: max(cellHeight, 1)}
	g.Resize(cols, rows)
	return g
}

// Resize changes the grid dimensions and blanks it.
func (g *Grid) Resize(cols, rows int) {
	g.Cols, g.Rows = max(cols, 0), max(rows, 0)
	g.cells = make([]Cell, g.Cols*g.Rows)
	g.Clear()
}

// Clear blanks every cell
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{Rune: ' '}
	}
}

// At returns the cell at (col, row). Out of range cells read as blank.
func (g *Grid) At(col, row int) Cell {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return Cell{Rune: ' '}
	}
	return g.cells[row*g.Cols+col]
}

// Set writes a cell, ignoring positions outside the grid.
func (g *Grid) Set(col, row int, c Cell) {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return
	}
	g.cells[row*g.Cols+col] = c
}

// Row returns the runes of one row as a string.
func (g *Grid) Row(row int) string {
	rs := make([]rune, g.Cols)
	for col := range rs {
		rs[col] = g.At(col, row).Rune
	}
	return string(rs)
}

// cellOf maps a pixel coordinate to the cell containing it.
func (g *Grid) cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / float64(g.CellWidth))), int(math.Floor(y / float64(g.CellHeight)))
}

// lineRune picks a glyph for a line with the given pixel direction, taking
// the cell aspect ratio into account.
func (g *Grid) lineRune(dx, dy float64) rune {
	cx := dx / float64(g.CellWidth)
	cy := dy / float64(g.CellHeight)
	switch {
	case math.Abs(cy) <= math.Abs(cx)*0.4142:
		return '-'
	case math.Abs(cx) <= math.Abs(cy)*0.4142:
		return '|'
	case (cx > 0) == (cy > 0):
		return '\\'
	default:
		return '/'
	}
}

// Line rasterizes a pixel-space segment into cells. The segment is clipped
// to the grid first.
func (g *Grid) Line(x0, y0, x1, y1 float64, fg color.RGBA) {
	if !Finite(x0, y0, x1, y1) {
		return
	}
	w := float64(g.Cols * g.CellWidth)
	h := float64(g.Rows * g.CellHeight)
	t0, t1, ok := clipSegment(x0, y0, x1, y1, 0, 0, w-1e-9, h-1e-9)
	if !ok {
		return
	}
	dx, dy := x1-x0, y1-y0
	r := g.lineRune(dx, dy)
	c0, r0 := g.cellOf(x0+dx*t0, y0+dy*t0)
	c1, r1 := g.cellOf(x0+dx*t1, y0+dy*t1)

	// Bresenham over cells
	stepC, stepR := 1, 1
	dc, dr := c1-c0, r1-r0
	if dc < 0 {
		stepC, dc = -1, -dc
	}
	if dr < 0 {
		stepR, dr = -1, -dr
	}
	err := dc - dr
	for {
		g.Set(c0, r0, Cell{Rune: r, Fg: fg, Bg: g.At(c0, r0).Bg})
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * err
		if e2 > -dr {
			err -= dr
			c0 += stepC
		}
		if e2 < dc {
			err += dc
			r0 += stepR
		}
	}
}

// Disc fills every cell whose centre lies within r pixels of (cx, cy), or
// the single cell under the centre when the disc is smaller than a cell.
func (g *Grid) Disc(cx, cy, r float64, ch rune, fg color.RGBA) {
	if !Finite(cx, cy, r) {
		return
	}
	c0, r0 := g.cellOf(cx-r, cy-r)
	c1, r1 := g.cellOf(cx+r, cy+r)
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, g.Cols-1), min(r1, g.Rows-1)

	hit := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			mx := (float64(col) + 0.5) * float64(g.CellWidth)
			my := (float64(row) + 0.5) * float64(g.CellHeight)
			if math.Hypot(mx-cx, my-cy) <= r {
				g.Set(col, row, Cell{Rune: ch, Fg: fg, Bg: g.At(col, row).Bg})
				hit = true
			}
		}
	}
	if !hit {
		col, row := g.cellOf(cx, cy)
		g.Set(col, row, Cell{Rune: ch, Fg: fg, Bg: g.At(col, row).Bg})
	}
}

// Box blanks the cells covered by a pixel rectangle and, when border is
// true, outlines it with ASCII box characters.
func (g *Grid) Box(x, y, w, h float64, fg color.RGBA, border bool) {
	if !Finite(x, y, w, h) {
		return
	}
	c0, r0 := g.cellOf(x, y)
	c1, r1 := g.cellOf(x+w, y+h)
	for row := max(r0, 0); row <= min(r1, g.Rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, g.Cols-1); col++ {
			ch := ' '
			if border {
				onV := col == c0 || col == c1
				onH := row == r0 || row == r1
				switch {
				case onV && onH:
					ch = '+'
				case onH:
					ch = '-'
				case onV:
					ch = '|'
				}
			}
			g.Set(col, row, Cell{Rune: ch, Fg: fg})
		}
	}
}

// Text writes s on the row holding the pixel just above the baseline y,
// starting at the column holding x.
func (g *Grid) Text(x, y float64, s string, fg color.RGBA) {
	if !Finite(x, y) {
		return
	}
	col, row := g.cellOf(x, y-1)
	for _, ch := range s {
		g.Set(col, row, Cell{Rune: ch, Fg: fg, Bg: g.At(col, row).Bg})
		col++
	}
}
