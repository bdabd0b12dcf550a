// pkg/render/renderer.go
package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/go-projectile/pkg/logging"
)

// NullStats counts the primitives a NullSurface received since the last Clear.
type NullStats struct {
	Clears   int
	Presents int
	Lines    int
	Circles  int
	Rects    int
	Texts    []string
	Skipped  int // primitives dropped for non-finite coordinates
}

// NullSurface is a Surface that draws nothing. It logs each call at debug
// level and keeps counts, which makes it useful headless and in tests.
type NullSurface struct {
	Width, Height int
	Stats         NullStats
	logger        *logging.Logger
}

// NewNullSurface creates a new NullSurface with structured logging.
func NewNullSurface(width, height int, logger *logging.Logger) *NullSurface {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &NullSurface{Width: width, Height: height, logger: logger}
}

// Size implements Surface.
func (d *NullSurface) Size() (int, int) {
	return d.Width, d.Height
}

// Clear implements Surface.
func (d *NullSurface) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
	d.Stats = NullStats{Clears: d.Stats.Clears + 1, Presents: d.Stats.Presents}
}

// Present implements Surface.
func (d *NullSurface) Present() error {
	d.Stats.Presents++
	d.logger.Debug(context.Background(), "Present called",
		"lines", d.Stats.Lines,
		"circles", d.Stats.Circles,
		"rects", d.Stats.Rects,
		"texts", len(d.Stats.Texts),
		"skipped", d.Stats.Skipped,
	)
	return nil
}

// Line implements Surface.
func (d *NullSurface) Line(x0, y0, x1, y1 float64, _ Stroke) {
	if !Finite(x0, y0, x1, y1) {
		d.Stats.Skipped++
		return
	}
	d.Stats.Lines++
}

// Circle implements Surface.
func (d *NullSurface) Circle(cx, cy, r float64, _ color.RGBA, _ Stroke) {
	if !Finite(cx, cy, r) {
		d.Stats.Skipped++
		d.logger.Debug(context.Background(), "Circle skipped", "cx", cx, "cy", cy)
		return
	}
	d.Stats.Circles++
}

// Rect implements Surface.
func (d *NullSurface) Rect(x, y, w, h float64, _ color.RGBA, _ Stroke) {
	if !Finite(x, y, w, h) {
		d.Stats.Skipped++
		return
	}
	d.Stats.Rects++
}

// Text implements Surface.
func (d *NullSurface) Text(x, y float64, s string, _ TextStyle) {
	if !Finite(x, y) {
		d.Stats.Skipped++
		return
	}
	d.Stats.Texts = append(d.Stats.Texts, s)
}
