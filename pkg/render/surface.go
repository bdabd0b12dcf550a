// Package render draws the projectile scene onto abstract 2D surfaces.
//
// A Surface takes immediate-mode drawing calls in screen pixels (origin top
// left, y down). The SceneRenderer turns world state into those calls through
// a Viewport; front-ends supply the Surface.
package render

import (
	"image/color"
	"math"
)

// Stroke describes how an outline or line is drawn. A zero Width means no
// outline.
type Stroke struct {
	Color color.RGBA
	Width float64
}

// TextStyle describes how text is drawn. Size is the font size in pixels.
type TextStyle struct {
	Color color.RGBA
	Size  float64
	Bold  bool
}

// Surface is an immediate-mode 2D drawing target. Coordinates are screen
// pixels. Implementations silently skip primitives with non-finite
// coordinates.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (width, height int)
	Clear()
	Line(x0, y0, x1, y1 float64, stroke Stroke)
	// Circle fills a disc and, when stroke.Width > 0, outlines it.
	Circle(cx, cy, r float64, fill color.RGBA, stroke Stroke)
	// Rect fills a rectangle and, when stroke.Width > 0, outlines it.
	Rect(x, y, w, h float64, fill color.RGBA, stroke Stroke)
	// Text draws s with its baseline starting at (x, y).
	Text(x, y float64, s string, style TextStyle)
	// Present finishes the frame.
	Present() error
}

// Palette
var (
	AxisColor       = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	White           = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black           = color.RGBA{A: 0xff}
	PanelFill       = color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xe6} // white at 90%, premultiplied
	TangentialColor = color.RGBA{R: 0xd6, G: 0x33, B: 0x84, A: 0xff}
	NormalColor     = color.RGBA{R: 0x0d, G: 0x6e, B: 0xfd, A: 0xff}
	Transparent     = color.RGBA{}
)

// Finite reports whether every value is a real number.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
