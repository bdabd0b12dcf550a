// pkg/render/engo/input.go
package engo

import (
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
)

// Command is a keyboard action.
type Command int

// Commands
const (
	CmdNone Command = iota
	CmdStart
	CmdPause
	CmdReset
	CmdLabels
	CmdEdit
	CmdAdd
	CmdNextField
	CmdBackspace
	CmdCancel
	CmdRemove
	CmdUp
	CmdDown
	CmdZoomIn
	CmdZoomOut
)

// Binding ties a named engine button to a command.
type Binding struct {
	Name    string
	Command Command
	Keys    []engo.Key
}

// Bindings is the keyboard map. Letter keys also arrive as text, which the
// form ignores unless it is numeric.
var Bindings = []Binding{
	{"start", CmdStart, []engo.Key{engo.KeyS}},
	{"pause", CmdPause, []engo.Key{engo.KeyP, engo.KeySpace}},
	{"reset", CmdReset, []engo.Key{engo.KeyR}},
	{"labels", CmdLabels, []engo.Key{engo.KeyL}},
	{"edit", CmdEdit, []engo.Key{engo.KeyA}},
	{"add", CmdAdd, []engo.Key{engo.KeyEnter}},
	{"nextField", CmdNextField, []engo.Key{engo.KeyTab}},
	{"backspace", CmdBackspace, []engo.Key{engo.KeyBackspace}},
	{"cancel", CmdCancel, []engo.Key{engo.KeyEscape}},
	{"remove", CmdRemove, []engo.Key{engo.KeyX, engo.KeyDelete}},
	{"up", CmdUp, []engo.Key{engo.KeyArrowUp}},
	{"down", CmdDown, []engo.Key{engo.KeyArrowDown}},
	{"zoomIn", CmdZoomIn, []engo.Key{engo.KeyEquals}},
	{"zoomOut", CmdZoomOut, []engo.Key{engo.KeyDash}},
}

// numericRunes are the characters the launch form accepts as typed text.
const numericRunes = "0123456789.-+eE"

// RegisterButtons registers Bindings with the engine's input manager.
func RegisterButtons() {
	for _, b := range Bindings {
		engo.Input.RegisterButton(b.Name, b.Keys...)
	}
}

// InputSystem turns keyboard input into session operations and form edits.
type InputSystem struct {
	hud  *HUDSystem
	quit func()
}

// NewInputSystem creates a new input system
func NewInputSystem(hud *HUDSystem) *InputSystem {
	return &InputSystem{hud: hud, quit: engo.Exit}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(ecs.BasicEntity) {}

// Update dispatches every bound button pressed this frame.
func (is *InputSystem) Update(float32) {
	for _, b := range Bindings {
		if engo.Input.Button(b.Name).JustPressed() {
			is.Handle(b.Command)
		}
	}
}

// HandleText receives typed characters. Only numeric text reaches the
// focused form field, and only while editing.
func (is *InputSystem) HandleText(r rune) {
	form := is.hud.Form
	if !form.Editing || !strings.ContainsRune(numericRunes, r) {
		return
	}
	form.Insert(r)
	is.hud.Invalidate()
}

// Handle applies one command. A pending warning swallows the first key
// unless the form is open.
func (is *InputSystem) Handle(cmd Command) {
	h := is.hud
	s := h.session
	h.Invalidate()

	if s.Warning() != "" {
		s.DismissWarning()
		if !h.Form.Editing {
			return
		}
	}

	if h.Form.Editing {
		is.handleForm(cmd)
		return
	}

	switch cmd {
	case CmdStart:
		_ = s.Start() // a rejected start shows up as the warning
	case CmdPause:
		s.TogglePause()
	case CmdReset:
		s.Reset()
		h.Selected = 0
	case CmdLabels:
		s.ToggleLabels()
	case CmdEdit, CmdAdd, CmdNextField:
		h.Form.Editing = true
	case CmdRemove:
		h.RemoveSelected()
	case CmdUp:
		h.Move(-1)
	case CmdDown:
		h.Move(1)
	case CmdZoomIn:
		is.zoomCentre(-1)
	case CmdZoomOut:
		is.zoomCentre(1)
	case CmdCancel:
		if is.quit != nil {
			is.quit()
		}
	}
}

func (is *InputSystem) handleForm(cmd Command) {
	h := is.hud
	switch cmd {
	case CmdCancel:
		h.Form.Editing = false
	case CmdNextField, CmdDown:
		h.Form.Next()
	case CmdUp:
		h.Form.Prev()
	case CmdBackspace:
		h.Form.Backspace()
	case CmdAdd:
		if _, err := h.session.AddObjectFromInput(h.Form.Values()); err == nil {
			h.Form.Editing = false
			h.Selected = len(h.session.Items()) - 1
		}
	}
}

func (is *InputSystem) zoomCentre(deltaY float64) {
	vp := is.hud.session.Viewport()
	is.hud.session.ZoomAt(float64(vp.Width)/2, float64(vp.Height)/2, deltaY)
}
