package render

import (
	"bufio"
	"image/color"
	"io"
	"strings"
)

// Glyphs used when rasterizing the scene into character cells.
const (
	MarkerRune = 'O'
)

// GridSurface draws onto a Grid. Pixel coordinates are divided by the cell
// size, so the viewport works in the same pixel units as a window would.
type GridSurface struct {
	Grid *Grid
}

// NewGridSurface creates a surface of cols x rows cells, each standing for
// cellWidth x cellHeight pixels.
func NewGridSurface(cols, rows, cellWidth, cellHeight int) *GridSurface {
	return &GridSurface{Grid: NewGrid(cols, rows, cellWidth, cellHeight)}
}

// Size implements Surface.
func (s *GridSurface) Size() (int, int) {
	return s.Grid.Cols * s.Grid.CellWidth, s.Grid.Rows * s.Grid.CellHeight
}

// Clear implements Surface.
func (s *GridSurface) Clear() {
	s.Grid.Clear()
}

// Line implements Surface.
func (s *GridSurface) Line(x0, y0, x1, y1 float64, stroke Stroke) {
	s.Grid.Line(x0, y0, x1, y1, stroke.Color)
}

// Circle implements Surface.
func (s *GridSurface) Circle(cx, cy, r float64, fill color.RGBA, _ Stroke) {
	s.Grid.Disc(cx, cy, r, MarkerRune, fill)
}

// Rect implements Surface.
func (s *GridSurface) Rect(x, y, w, h float64, _ color.RGBA, stroke Stroke) {
	s.Grid.Box(x, y, w, h, stroke.Color, stroke.Width > 0)
}

// Text implements Surface.
func (s *GridSurface) Text(x, y float64, str string, style TextStyle) {
	s.Grid.Text(x, y, str, style.Color)
}

// Present implements Surface. The grid is left for the caller to read.
func (s *GridSurface) Present() error {
	return nil
}

// TextSurface provides a simple ASCII rendering written to an io.Writer,
// framed by a border.
type TextSurface struct {
	*GridSurface
	out io.Writer
	// ClearScreen emits the ANSI home+clear sequence before each frame.
	ClearScreen bool
}

// NewTextSurface creates a text surface of cols x rows characters.
func NewTextSurface(out io.Writer, cols, rows, cellWidth, cellHeight int) *TextSurface {
	return &TextSurface{
		GridSurface: NewGridSurface(cols, rows, cellWidth, cellHeight),
		out:         out,
	}
}

// Present implements Surface
func (s *TextSurface) Present() error {
	w := bufio.NewWriter(s.out)

	if s.ClearScreen {
		w.WriteString("\033[H\033[2J")
	}

	border := "+" + strings.Repeat("-", s.Grid.Cols) + "+\n"
	w.WriteString(border)
	for row := 0; row < s.Grid.Rows; row++ {
		w.WriteString("|")
		w.WriteString(s.Grid.Row(row))
		w.WriteString("|\n")
	}
	w.WriteString(border)

	return w.Flush()
}
