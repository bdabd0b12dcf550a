// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-projectile/pkg/session"
)

// MouseState is the part of engo.Input.Mouse the viewport reacts to.
type MouseState struct {
	X, Y    float32
	ScrollY float32
	Action  engo.Action
	Button  engo.MouseButton
}

// CameraSystem maps mouse input onto the session viewport: the wheel zooms
// about the cursor, a left drag on the canvas pans, and a release anywhere
// ends the drag. Presses on the control panel go to the HUD.
type CameraSystem struct {
	session *session.Session
	hud     *HUDSystem
	pressed bool
}

// NewCameraSystem creates a new camera system
func NewCameraSystem(s *session.Session, hud *HUDSystem) *CameraSystem {
	return &CameraSystem{session: s, hud: hud}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(ecs.BasicEntity) {}

// Update reads the engine's mouse state.
func (cs *CameraSystem) Update(float32) {
	m := engo.Input.Mouse
	cs.HandleMouse(MouseState{
		X:       m.X,
		Y:       m.Y,
		ScrollY: m.ScrollY,
		Action:  m.Action,
		Button:  m.Button,
	})
}

// inCanvas reports whether (x, y) lies on the drawing canvas.
func (cs *CameraSystem) inCanvas(x, y float64) bool {
	vp := cs.session.Viewport()
	return x >= 0 && y >= 0 && x < float64(vp.Width) && y < float64(vp.Height)
}

// HandleMouse applies one frame of mouse state. The engine reports a held
// button as Press on every frame, so a press only counts on its first frame.
func (cs *CameraSystem) HandleMouse(m MouseState) {
	x, y := float64(m.X), float64(m.Y)

	// wheel up scrolls positive and zooms in
	if m.ScrollY != 0 && cs.inCanvas(x, y) {
		cs.session.ZoomAt(x, y, -float64(m.ScrollY))
	}

	switch m.Action {
	case engo.Press:
		if m.Button != engo.MouseButtonLeft {
			return
		}
		if cs.pressed {
			if cs.session.Viewport().Dragging() {
				cs.session.DragTo(x, y)
			}
			return
		}
		cs.pressed = true
		cs.press(x, y)
	case engo.Move:
		if cs.session.Viewport().Dragging() {
			cs.session.DragTo(x, y)
		}
	case engo.Release:
		cs.pressed = false
		cs.session.EndDrag()
	}
}

func (cs *CameraSystem) press(x, y float64) {
	if cs.session.Warning() != "" {
		cs.session.DismissWarning()
		cs.hud.Invalidate()
		return
	}
	switch {
	case cs.inCanvas(x, y):
		cs.session.BeginDrag(x, y)
	case cs.hud.Contains(x, y):
		cs.hud.Click(x, y)
	}
}
