package render

import (
	"math"
	"testing"

	"github.com/opd-ai/go-projectile/pkg/physics"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestNewViewport_Defaults(t *testing.T) {
	vp := NewViewport(800, 600)
	if vp.Scale != 4 || vp.OffsetX != 50 || vp.OffsetY != 50 {
		t.Errorf("unexpected transform %+v", vp)
	}
	if vp.MinScale != 0.5 || vp.MaxScale != 100 || vp.ZoomStep != 0.1 {
		t.Errorf("unexpected limits %+v", vp)
	}
}

func TestViewport_WorldToScreen_FlipsY(t *testing.T) {
	vp := NewViewport(800, 600)

	tests := []struct {
		name   string
		world  physics.Vector2D
		sx, sy float64
	}{
		{"origin", physics.Vector2D{}, 50, 550},
		{"up and right", physics.Vector2D{X: 10, Y: 20}, 90, 470},
		{"below ground", physics.Vector2D{X: 0, Y: -5}, 50, 570},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := vp.WorldToScreen(tt.world)
			if x != tt.sx || y != tt.sy {
				t.Errorf("WorldToScreen(%v) = (%v, %v), want (%v, %v)", tt.world, x, y, tt.sx, tt.sy)
			}
			back := vp.ScreenToWorld(x, y)
			if !near(back.X, tt.world.X) || !near(back.Y, tt.world.Y) {
				t.Errorf("ScreenToWorld round trip = %v, want %v", back, tt.world)
			}
		})
	}
}

func TestViewport_ZoomAt_KeepsCursorAnchored(t *testing.T) {
	points := [][2]float64{{0, 0}, {400, 300}, {799, 10}, {123.5, 555.25}}
	deltas := []float64{-1, 1, -120, 53}

	for _, p := range points {
		for _, d := range deltas {
			vp := NewViewport(800, 600)
			vp.OffsetX, vp.OffsetY = 37, -12
			before := vp.ScreenToWorld(p[0], p[1])

			vp.ZoomAt(p[0], p[1], d)

			x, y := vp.WorldToScreen(before)
			if !near(x, p[0]) || !near(y, p[1]) {
				t.Errorf("zoom %v at %v moved anchor to (%v, %v)", d, p, x, y)
			}
		}
	}
}

func TestViewport_ZoomAt_Direction(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.ZoomAt(100, 100, -1)
	if !near(vp.Scale, 4*1.1) {
		t.Errorf("zoom in: Scale = %v, want %v", vp.Scale, 4*1.1)
	}

	vp = NewViewport(800, 600)
	vp.ZoomAt(100, 100, 1)
	if !near(vp.Scale, 4/1.1) {
		t.Errorf("zoom out: Scale = %v, want %v", vp.Scale, 4/1.1)
	}
}

func TestViewport_ZoomAt_ClampsScale(t *testing.T) {
	vp := NewViewport(800, 600)
	for i := 0; i < 200; i++ {
		vp.ZoomAt(400, 300, -1)
	}
	if vp.Scale != 100 {
		t.Errorf("max clamp: Scale = %v, want 100", vp.Scale)
	}

	anchor := vp.ScreenToWorld(10, 20)
	vp.ZoomAt(10, 20, -1)
	if x, y := vp.WorldToScreen(anchor); !near(x, 10) || !near(y, 20) {
		t.Errorf("clamped zoom moved anchor to (%v, %v)", x, y)
	}

	for i := 0; i < 200; i++ {
		vp.ZoomAt(400, 300, 1)
	}
	if vp.Scale != 0.5 {
		t.Errorf("min clamp: Scale = %v, want 0.5", vp.Scale)
	}
}

func TestViewport_Drag_PansByPointerDelta(t *testing.T) {
	vp := NewViewport(800, 600)

	if vp.DragTo(10, 10) {
		t.Error("DragTo without BeginDrag should report false")
	}

	vp.BeginDrag(100, 100)
	if !vp.Dragging() {
		t.Fatal("Dragging() = false after BeginDrag")
	}
	vp.DragTo(130, 90) // right 30, up 10
	if vp.OffsetX != 80 || vp.OffsetY != 60 {
		t.Errorf("after first move offsets = (%v, %v), want (80, 60)", vp.OffsetX, vp.OffsetY)
	}
	vp.DragTo(120, 100) // left 10, down 10
	if vp.OffsetX != 70 || vp.OffsetY != 50 {
		t.Errorf("after second move offsets = (%v, %v), want (70, 50)", vp.OffsetX, vp.OffsetY)
	}

	vp.EndDrag()
	vp.EndDrag()
	if vp.DragTo(500, 500) || vp.OffsetX != 70 {
		t.Error("DragTo after EndDrag should not pan")
	}
}

func TestViewport_Resize_KeepsTransform(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.ZoomAt(200, 200, -1)
	scale, ox, oy := vp.Scale, vp.OffsetX, vp.OffsetY

	vp.Resize(1024, 300)
	if vp.Scale != scale || vp.OffsetX != ox || vp.OffsetY != oy {
		t.Error("Resize changed scale or offsets")
	}
	if _, y := vp.WorldToScreen(physics.Vector2D{}); y != 300-oy {
		t.Errorf("origin y = %v, want %v", y, 300-oy)
	}
}
