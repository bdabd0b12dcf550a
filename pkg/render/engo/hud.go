// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/opd-ai/go-projectile/pkg/render"
	"github.com/opd-ai/go-projectile/pkg/session"
)

// Control panel layout, in window pixels.
const (
	SidebarWidth = 300
	hudPadding   = 12.0
	hudLine      = 22.0
	hudFontSize  = 14.0
	hudTitleSize = 18.0
	fieldLabelW  = 90.0
	fieldHeight  = 18.0
	swatchRadius = 5.0
	removeWidth  = 28.0
	listChars    = 30
	controlsGap  = 150.0 // x offset of the second column
)

var (
	panelColor     = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	selectionColor = color.RGBA{R: 0xe3, G: 0xf2, B: 0xfd, A: 0xff}
	warningColor   = color.RGBA{R: 0xff, G: 0xf3, B: 0xcd, A: 0xff}
	warningBorder  = color.RGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	mutedColor     = color.RGBA{R: 0x6c, G: 0x75, B: 0x7d, A: 0xff}
	statusBarColor = color.RGBA{R: 0x34, G: 0x3a, B: 0x40, A: 0xff}
)

// HelpLines list the keyboard controls shown at the bottom of the panel.
var HelpLines = []string{
	"Tab/Enter: edit   S: start   P: pause",
	"R: reset   L: labels   X: remove",
	"+/-/wheel: zoom   drag: pan",
}

// HUDSystem owns the control panel to the right of the canvas: launch form,
// status, elapsed time, pause control, label toggle, object list, warning and
// help. It draws onto the same surface as the scene.
type HUDSystem struct {
	session  *session.Session
	Form     *session.Form
	Selected int

	left     float64
	height   float64
	controls float64   // baseline of the pause/labels row
	rows     []float64 // top of each list entry
	dirty    bool
}

// NewHUDSystem creates the panel for s.
func NewHUDSystem(s *session.Session) *HUDSystem {
	return &HUDSystem{
		session: s,
		Form:    session.NewForm(session.DefaultSpeed, session.DefaultAngle, session.DefaultHeight),
		dirty:   true,
	}
}

// Layout places the panel at x = left, spanning height pixels.
func (h *HUDSystem) Layout(left, height float64) {
	h.left, h.height = left, height
	h.dirty = true
}

// Invalidate requests a redraw.
func (h *HUDSystem) Invalidate() {
	h.dirty = true
}

// Dirty reports whether the panel changed since the last Draw.
func (h *HUDSystem) Dirty() bool {
	return h.dirty
}

// Contains reports whether (x, y) is on the panel.
func (h *HUDSystem) Contains(x, y float64) bool {
	return x >= h.left && x < h.left+SidebarWidth && y >= 0 && y < h.height
}

// Click handles a left click on the panel. The pause control toggles pause,
// the labels control toggles labels, and a list entry is selected, or removed
// when the click lands on its [x]. It reports whether anything was hit.
func (h *HUDSystem) Click(x, y float64) bool {
	if h.controls > 0 && y >= h.controls-hudLine+6 && y < h.controls+6 {
		if x >= h.left+hudPadding+controlsGap {
			h.session.ToggleLabels()
		} else if _, visible := h.session.PauseControl(); visible {
			h.session.TogglePause()
		} else {
			return false
		}
		h.dirty = true
		return true
	}

	items := h.session.Items()
	for i, top := range h.rows {
		if y < top || y >= top+hudLine || i >= len(items) {
			continue
		}
		if x >= h.left+SidebarWidth-hudPadding-removeWidth {
			h.session.RemoveObject(items[i].ID)
		}
		h.Selected = i
		h.ClampSelection()
		h.dirty = true
		return true
	}
	return false
}

// Move shifts the list selection by delta entries.
func (h *HUDSystem) Move(delta int) {
	h.Selected += delta
	h.ClampSelection()
	h.dirty = true
}

// RemoveSelected removes the highlighted list entry, if any.
func (h *HUDSystem) RemoveSelected() {
	items := h.session.Items()
	if h.Selected >= 0 && h.Selected < len(items) {
		h.session.RemoveObject(items[h.Selected].ID)
	}
	h.ClampSelection()
	h.dirty = true
}

// ClampSelection keeps Selected within the list.
func (h *HUDSystem) ClampSelection() {
	n := len(h.session.Items())
	h.Selected = min(max(h.Selected, 0), max(n-1, 0))
}

func hudText(c color.RGBA) render.TextStyle {
	return render.TextStyle{Color: c, Size: hudFontSize}
}

// Draw paints the panel onto s. Call it after the scene so the panel covers
// anything drawn past the canvas edge.
func (h *HUDSystem) Draw(s render.Surface) {
	x := h.left + hudPadding
	right := h.left + SidebarWidth - hudPadding
	s.Rect(h.left, 0, SidebarWidth, h.height, panelColor, render.Stroke{Color: render.AxisColor, Width: 1})

	y := hudPadding + hudTitleSize
	s.Text(x, y, "Projectile Motion", render.TextStyle{Color: render.Black, Size: hudTitleSize, Bold: true})

	y += hudLine + 4
	st := h.session.Status()
	s.Rect(h.left, y-hudLine+6, SidebarWidth, hudLine, statusBarColor, render.Stroke{})
	s.Text(x, y, st.Text, render.TextStyle{Color: st.Color, Size: hudFontSize, Bold: true})
	s.Text(x+controlsGap, y, "t = "+h.session.ElapsedText(), hudText(render.White))

	y += hudLine
	for i, f := range h.Form.Fields {
		y += hudLine
		s.Text(x, y, f.Label, hudText(mutedColor))
		border := render.Stroke{Color: render.AxisColor, Width: 1}
		if h.Form.Editing && h.Form.Focus == i {
			border = render.Stroke{Color: render.NormalColor, Width: 2}
		}
		s.Rect(x+fieldLabelW, y-fieldHeight+4, right-x-fieldLabelW, fieldHeight, render.White, border)
		s.Text(x+fieldLabelW+4, y, string(f.Value), hudText(render.Black))
	}

	y += hudLine
	if h.Form.Editing {
		s.Text(x, y, "Enter: add   Tab: next   Esc: done", hudText(mutedColor))
	}

	y += hudLine
	h.controls = y
	if label, visible := h.session.PauseControl(); visible {
		s.Text(x, y, "["+label+"]", render.TextStyle{Color: render.Black, Size: hudFontSize, Bold: true})
	}
	labels := "Labels: off"
	if h.session.ShowLabels() {
		labels = "Labels: on"
	}
	s.Text(x+controlsGap, y, labels, hudText(mutedColor))

	y += hudLine
	h.drawList(s, x, right, y)
	h.drawFooter(s, x, right)
	h.dirty = false
}

func (h *HUDSystem) drawList(s render.Surface, x, right, y float64) {
	items := h.session.Items()
	h.rows = h.rows[:0]
	if len(items) == 0 {
		s.Text(x, y+hudLine-6, session.EmptyListText, hudText(mutedColor))
		return
	}
	for i, it := range items {
		if i == h.Selected {
			s.Rect(h.left+1, y, SidebarWidth-2, hudLine, selectionColor, render.Stroke{})
		}
		baseline := y + hudLine - 6
		s.Circle(x+swatchRadius, y+hudLine/2, swatchRadius, it.Color, render.Stroke{})
		s.Text(x+3*swatchRadius, baseline, session.Truncate(it.Text, listChars), hudText(render.Black))
		s.Text(right-removeWidth+4, baseline, "[x]", hudText(mutedColor))
		h.rows = append(h.rows, y)
		y += hudLine
	}
}

func (h *HUDSystem) drawFooter(s render.Surface, x, right float64) {
	y := h.height - hudPadding - float64(len(HelpLines))*hudLine
	if warn := h.session.Warning(); warn != "" {
		box := y - 2*hudLine - hudPadding
		s.Rect(x-4, box, right-x+8, 2*hudLine, warningColor, render.Stroke{Color: warningBorder, Width: 1})
		s.Text(x, box+hudLine-6, warn, render.TextStyle{Color: render.Black, Size: hudFontSize, Bold: true})
		s.Text(x, box+2*hudLine-6, "press any key", hudText(mutedColor))
	}
	for i, line := range HelpLines {
		s.Text(x, y+float64(i+1)*hudLine, line, hudText(mutedColor))
	}
}
