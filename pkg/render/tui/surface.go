// Package tui is the terminal front-end. The scene is rasterized into
// character cells, each standing for a fixed number of viewport pixels, and
// shown on a tcell screen next to a control panel.
package tui

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-projectile/pkg/render"
)

// ScreenSurface is a render.Surface backed by a cell grid that Present copies
// into a rectangle of a tcell screen. It does not call Show.
type ScreenSurface struct {
	*render.GridSurface
	screen    tcell.Screen
	Left, Top int
}

// NewScreenSurface creates a surface covering cols x rows cells of screen
// starting at (left, top).
func NewScreenSurface(screen tcell.Screen, left, top, cols, rows, cellWidth, cellHeight int) *ScreenSurface {
	return &ScreenSurface{
		GridSurface: render.NewGridSurface(cols, rows, cellWidth, cellHeight),
		screen:      screen,
		Left:        left,
		Top:         top,
	}
}

// Place moves and resizes the surface. The grid is blanked.
func (s *ScreenSurface) Place(left, top, cols, rows int) {
	s.Left, s.Top = left, top
	s.Grid.Resize(cols, rows)
}

// Present implements render.Surface.
func (s *ScreenSurface) Present() error {
	g := s.Grid
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			c := g.At(col, row)
			s.screen.SetContent(s.Left+col, s.Top+row, c.Rune, nil, CellStyle(c))
		}
	}
	return nil
}

// Contains reports whether the screen cell (x, y) lies on the surface.
func (s *ScreenSurface) Contains(x, y int) bool {
	return x >= s.Left && x < s.Left+s.Grid.Cols && y >= s.Top && y < s.Top+s.Grid.Rows
}

// CellToPixel converts a screen cell to the viewport pixel at its centre.
func (s *ScreenSurface) CellToPixel(x, y int) (float64, float64) {
	px := (float64(x-s.Left) + 0.5) * float64(s.Grid.CellWidth)
	py := (float64(y-s.Top) + 0.5) * float64(s.Grid.CellHeight)
	return px, py
}

// CellStyle converts a grid cell's colours to a tcell style. Transparent
// colours and pure black map to the terminal defaults so the scene stays
// readable on dark and light terminals alike.
func CellStyle(c render.Cell) tcell.Style {
	return tcell.StyleDefault.Foreground(Color(c.Fg)).Background(Color(c.Bg))
}

// Color converts an RGBA colour to a tcell colour.
func Color(c color.RGBA) tcell.Color {
	if c.A == 0 || c == render.Black {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
