package render

import (
	"math"

	"github.com/opd-ai/go-projectile/pkg/physics"
)

// Viewport defaults
const (
	DefaultScale    = 4.0
	DefaultOffsetX  = 50.0
	DefaultOffsetY  = 50.0
	DefaultMinScale = 0.5
	DefaultMaxScale = 100.0
	DefaultZoomStep = 0.1
)

// Viewport maps world coordinates (metres, y up, origin at the launch point
// on the ground) to screen pixels (y down, origin top left):
//
//	screenX = worldX*Scale + OffsetX
//	screenY = Height - worldY*Scale - OffsetY
//
// Scale always stays within [MinScale, MaxScale] after a zoom.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64

	Width  int
	Height int

	MinScale float64
	MaxScale float64
	ZoomStep float64

	dragging     bool
	lastX, lastY float64
}

// NewViewport creates a viewport with the default transform and limits for
// a surface of the given size.
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		Scale:    DefaultScale,
		OffsetX:  DefaultOffsetX,
		OffsetY:  DefaultOffsetY,
		Width:    width,
		Height:   height,
		MinScale: DefaultMinScale,
		MaxScale: DefaultMaxScale,
		ZoomStep: DefaultZoomStep,
	}
}

// WorldToScreen converts a world position to screen pixels.
func (v *Viewport) WorldToScreen(p physics.Vector2D) (float64, float64) {
	return p.X*v.Scale + v.OffsetX, float64(v.Height) - p.Y*v.Scale - v.OffsetY
}

// ScreenToWorld converts screen pixels to a world position.
func (v *Viewport) ScreenToWorld(x, y float64) physics.Vector2D {
	return physics.Vector2D{
		X: (x - v.OffsetX) / v.Scale,
		Y: (float64(v.Height) - y - v.OffsetY) / v.Scale,
	}
}

// ZoomAt zooms one wheel notch around the screen point (x, y). A negative
// deltaY zooms in by ZoomStep, anything else zooms out by the same factor.
// The world point under (x, y) stays under (x, y).
func (v *Viewport) ZoomAt(x, y, deltaY float64) {
	anchor := v.ScreenToWorld(x, y)

	factor := 1 + v.ZoomStep
	if deltaY < 0 {
		v.Scale *= factor
	} else {
		v.Scale /= factor
	}
	v.Scale = math.Max(v.MinScale, math.Min(v.Scale, v.MaxScale))

	v.OffsetX = x - anchor.X*v.Scale
	v.OffsetY = (float64(v.Height) - y) - anchor.Y*v.Scale
}

// BeginDrag starts a pan at the screen point (x, y).
func (v *Viewport) BeginDrag(x, y float64) {
	v.dragging = true
	v.lastX, v.lastY = x, y
}

// DragTo pans by the pointer movement since the last sample. It reports
// whether a drag was in progress.
func (v *Viewport) DragTo(x, y float64) bool {
	if !v.dragging {
		return false
	}
	v.OffsetX += x - v.lastX
	v.OffsetY -= y - v.lastY
	v.lastX, v.lastY = x, y
	return true
}

// EndDrag stops panning. Safe to call when no drag is active.
func (v *Viewport) EndDrag() {
	v.dragging = false
}

// Dragging reports whether a pan is in progress.
func (v *Viewport) Dragging() bool {
	return v.dragging
}

// Resize changes the surface size. Scale and offsets are kept, so the world
// stays anchored to the bottom-left corner.
func (v *Viewport) Resize(width, height int) {
	v.Width, v.Height = width, height
}
