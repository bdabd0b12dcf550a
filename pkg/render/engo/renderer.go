// pkg/render/engo/renderer.go

// Package engo is the windowed front-end built on the Engo game engine.
package engo

import (
	"context"
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-projectile/pkg/logging"
	"github.com/opd-ai/go-projectile/pkg/render"
)

// RenderSink receives the entities a Surface creates. *common.RenderSystem
// satisfies it.
type RenderSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// FontSource resolves a text style to a font.
type FontSource interface {
	Font(style render.TextStyle) (*common.Font, error)
}

type slotKind int

const (
	kindNone slotKind = iota
	kindShape
	kindText
)

// slot is one pooled entity. Slots are created on demand, registered with
// the sink once and reused every frame; those not drawn are hidden.
type slot struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
	kind   slotKind
}

// Surface implements render.Surface on top of an Engo render system. Every
// primitive becomes a HUD-space entity, so drawing coordinates are window
// pixels regardless of the camera.
type Surface struct {
	sink   RenderSink
	fonts  FontSource
	logger *logging.Logger

	width, height int

	slots []*slot
	used  int
}

// NewSurface creates a surface of the given size drawing into sink.
func NewSurface(sink RenderSink, fonts FontSource, width, height int, logger *logging.Logger) *Surface {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Surface{
		sink:   sink,
		fonts:  fonts,
		logger: logger,
		width:  width,
		height: height,
	}
}

// engineRunning reports whether the engine's message bus exists. Shader and
// z-index changes notify it, so they are skipped before engo.Run.
func engineRunning() bool {
	return engo.Mailbox != nil
}

// Size implements render.Surface.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Resize changes the reported size. Existing entities are untouched.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
}

// Clear implements render.Surface. Slots are recycled from the start.
func (s *Surface) Clear() {
	s.used = 0
}

// Present implements render.Surface by hiding every slot not drawn since the
// last Clear. It may be called again after more primitives are added.
func (s *Surface) Present() error {
	for _, sl := range s.slots[s.used:] {
		sl.render.Hidden = true
	}
	return nil
}

// Destroy removes every pooled entity from the sink.
func (s *Surface) Destroy() {
	for _, sl := range s.slots {
		s.sink.Remove(sl.basic)
	}
	s.slots = nil
	s.used = 0
}

// Len returns the number of pooled entities.
func (s *Surface) Len() int {
	return len(s.slots)
}

// Used returns the number of entities drawn since the last Clear.
func (s *Surface) Used() int {
	return s.used
}

func (s *Surface) next(kind slotKind, d common.Drawable) *slot {
	if s.used < len(s.slots) {
		sl := s.slots[s.used]
		sl.render.Drawable = d
		s.setKind(sl, kind)
		sl.render.Hidden = false
		s.used++
		return sl
	}

	sl := &slot{basic: ecs.NewBasic()}
	sl.render.Drawable = d
	s.setKind(sl, kind)
	if engineRunning() {
		sl.render.SetZIndex(float32(len(s.slots)))
	}
	s.sink.Add(&sl.basic, &sl.render, &sl.space)
	s.slots = append(s.slots, sl)
	s.used++
	return sl
}

func (s *Surface) setKind(sl *slot, kind slotKind) {
	if sl.kind == kind {
		return
	}
	sl.kind = kind
	if !engineRunning() {
		return
	}
	if kind == kindText {
		sl.render.SetShader(common.TextHUDShader)
	} else {
		sl.render.SetShader(common.LegacyHUDShader)
	}
}

// Line implements render.Surface as a rectangle rotated about its start.
func (s *Surface) Line(x0, y0, x1, y1 float64, stroke render.Stroke) {
	if !render.Finite(x0, y0, x1, y1) {
		return
	}
	space, ok := LineSpace(x0, y0, x1, y1, stroke.Width)
	if !ok {
		return
	}
	sl := s.next(kindShape, common.Rectangle{})
	sl.render.Color = stroke.Color
	sl.space = space
}

// LineSpace places a rectangle of thickness width so that its centre line
// runs from (x0, y0) to (x1, y1). Rotation is in degrees, clockwise on
// screen. It reports false for zero-length lines.
func LineSpace(x0, y0, x1, y1, width float64) (common.SpaceComponent, bool) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return common.SpaceComponent{}, false
	}
	if width <= 0 {
		width = 1
	}
	theta := math.Atan2(dy, dx)
	half := width / 2
	return common.SpaceComponent{
		Position: engo.Point{
			X: float32(x0 + half*math.Sin(theta)),
			Y: float32(y0 - half*math.Cos(theta)),
		},
		Width:    float32(length),
		Height:   float32(width),
		Rotation: float32(theta * 180 / math.Pi),
	}, true
}

// Circle implements render.Surface.
func (s *Surface) Circle(cx, cy, r float64, fill color.RGBA, stroke render.Stroke) {
	if !render.Finite(cx, cy, r) || r <= 0 {
		return
	}
	sl := s.next(kindShape, common.Circle{
		BorderWidth: float32(stroke.Width),
		BorderColor: stroke.Color,
	})
	sl.render.Color = fill
	sl.space = common.SpaceComponent{
		Position: engo.Point{X: float32(cx - r), Y: float32(cy - r)},
		Width:    float32(2 * r),
		Height:   float32(2 * r),
	}
}

// Rect implements render.Surface.
func (s *Surface) Rect(x, y, w, h float64, fill color.RGBA, stroke render.Stroke) {
	if !render.Finite(x, y, w, h) {
		return
	}
	sl := s.next(kindShape, common.Rectangle{
		BorderWidth: float32(stroke.Width),
		BorderColor: stroke.Color,
	})
	sl.render.Color = fill
	sl.space = common.SpaceComponent{
		Position: engo.Point{X: float32(x), Y: float32(y)},
		Width:    float32(w),
		Height:   float32(h),
	}
}

// Text implements render.Surface. The glyph box's top sits one font size
// above the baseline.
func (s *Surface) Text(x, y float64, str string, style render.TextStyle) {
	if str == "" || !render.Finite(x, y) {
		return
	}
	font, err := s.fonts.Font(style)
	if err != nil {
		s.logger.Warn(context.Background(), "font unavailable", "size", style.Size, "bold", style.Bold, "error", err)
		return
	}
	sl := s.next(kindText, common.Text{Font: font, Text: str})
	sl.render.Color = color.White
	sl.space = common.SpaceComponent{
		Position: engo.Point{X: float32(x), Y: float32(y - style.Size)},
	}
}
