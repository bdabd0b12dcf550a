package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/opd-ai/go-projectile/pkg/entity"
	"github.com/opd-ai/go-projectile/pkg/physics"
)

// Scene drawing defaults
const (
	DefaultPathStep     = 0.1 // seconds between trajectory samples
	DefaultMarkerRadius = 6.0
	PathWidth           = 2.0
	AxisWidth           = 1.0
	MarkerOutline       = 2.0
)

// Label panel layout, in pixels relative to the marker centre.
const (
	LabelOffsetX    = 12.0
	LabelOffsetY    = -60.0
	LabelWidth      = 95.0
	LabelHeight     = 76.0
	LabelPadding    = 6.0
	LabelLineHeight = 14.0
	LabelFontSize   = 11.0
)

// clipMargin lets lines run a little past the surface edge before clipping.
const clipMargin = 16.0

// DefaultDash is the trajectory dash pattern.
var DefaultDash = []float64{5, 5}

// LabelLine is one line of a projectile's live stats panel.
type LabelLine struct {
	Text  string
	Color color.RGBA
}

// LabelLines formats the live stats shown next to a projectile's marker.
func LabelLines(s physics.State) []LabelLine {
	return []LabelLine{
		{Text: fmt.Sprintf("h: %.2fm", s.Y), Color: Black},
		{Text: fmt.Sprintf("v: %.2fm/s", s.V), Color: Black},
		{Text: fmt.Sprintf("a_t:%.2fm/s²", s.At), Color: TangentialColor},
		{Text: fmt.Sprintf("a_n:%.2fm/s²", s.An), Color: NormalColor},
		{Text: fmt.Sprintf("range: %.2fm", s.X), Color: Black},
	}
}

// SceneRenderer draws axes, trajectories, markers and optional labels for a
// set of projectiles at one simulation time.
type SceneRenderer struct {
	Viewport     *Viewport
	PathStep     float64
	MarkerRadius float64
	Dash         []float64
	ShowLabels   bool
}

// NewSceneRenderer creates a renderer with the default drawing settings.
func NewSceneRenderer(vp *Viewport) *SceneRenderer {
	return &SceneRenderer{
		Viewport:     vp,
		PathStep:     DefaultPathStep,
		MarkerRadius: DefaultMarkerRadius,
		Dash:         DefaultDash,
		ShowLabels:   true,
	}
}

// Draw renders a full frame at simulation time t and presents it.
func (r *SceneRenderer) Draw(s Surface, projectiles []*entity.Projectile, t float64) error {
	s.Clear()
	r.drawAxes(s)
	for _, p := range projectiles {
		r.drawPath(s, p)
		state := p.StateAt(t)
		x, y := r.Viewport.WorldToScreen(state.Position())
		s.Circle(x, y, r.MarkerRadius, p.Color, Stroke{Color: White, Width: MarkerOutline})
		if r.ShowLabels {
			r.drawLabel(s, x, y, state, p.Color)
		}
	}
	return s.Present()
}

func (r *SceneRenderer) drawAxes(s Surface) {
	w, h := s.Size()
	ox, oy := r.Viewport.WorldToScreen(physics.Vector2D{})
	stroke := Stroke{Color: AxisColor, Width: AxisWidth}
	s.Line(0, oy, float64(w), oy, stroke)
	s.Line(ox, 0, ox, float64(h), stroke)
}

func (r *SceneRenderer) drawPath(s Surface, p *entity.Projectile) {
	points := physics.Path(p.Launch, r.PathStep)
	if len(points) < 2 {
		return
	}

	w, h := s.Size()
	stroke := Stroke{Color: p.Color, Width: PathWidth}
	emit := func(ax, ay, bx, by float64) { s.Line(ax, ay, bx, by, stroke) }
	dasher := NewDasher(r.Dash)

	px, py := r.Viewport.WorldToScreen(points[0])
	for _, pt := range points[1:] {
		x, y := r.Viewport.WorldToScreen(pt)
		r.dashClipped(dasher, px, py, x, y, float64(w), float64(h), emit)
		px, py = x, y
	}
}

// dashClipped dashes the part of a segment that is near the surface and
// advances the pattern over the rest, so long off-screen stretches cost
// nothing and the dash phase stays continuous.
func (r *SceneRenderer) dashClipped(d *Dasher, x0, y0, x1, y1, w, h float64, emit func(ax, ay, bx, by float64)) {
	if !Finite(x0, y0, x1, y1) {
		return
	}
	t0, t1, ok := clipSegment(x0, y0, x1, y1, -clipMargin, -clipMargin, w+clipMargin, h+clipMargin)
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if !ok {
		d.Advance(length)
		return
	}
	d.Advance(t0 * length)
	d.Segment(x0+dx*t0, y0+dy*t0, x0+dx*t1, y0+dy*t1, emit)
	d.Advance((1 - t1) * length)
}

func (r *SceneRenderer) drawLabel(s Surface, mx, my float64, state physics.State, c color.RGBA) {
	x := mx + LabelOffsetX
	y := my + LabelOffsetY
	s.Rect(x, y, LabelWidth, LabelHeight, PanelFill, Stroke{Color: c, Width: 1})
	for i, line := range LabelLines(state) {
		s.Text(x+LabelPadding, y+LabelLineHeight+LabelLineHeight*float64(i), line.Text,
			TextStyle{Color: line.Color, Size: LabelFontSize, Bold: true})
	}
}
