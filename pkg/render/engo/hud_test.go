package engo

import (
	"strings"
	"testing"

	"github.com/opd-ai/go-projectile/pkg/render"
	"github.com/opd-ai/go-projectile/pkg/session"
)

func drawHUD(h *HUDSystem) string {
	ns := render.NewNullSurface(1000, 600, nil)
	h.Draw(ns)
	return strings.Join(ns.Stats.Texts, "\n")
}

func TestHUD_DrawShowsState(t *testing.T) {
	sess, _ := newTestSession(t)
	h := NewHUDSystem(sess)
	h.Layout(700, 600)

	text := drawHUD(h)
	for _, want := range []string{"Projectile Motion", "Ready", "t = 0.00 s", "v0 (m/s)", "angle (°)", "h0 (m)", "20", "45", session.EmptyListText, "Labels: on"} {
		if !strings.Contains(text, want) {
			t.Errorf("panel lacks %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "[PAUSE]") {
		t.Error("pause control shown while idle")
	}
	if h.Dirty() {
		t.Error("Draw should clear the dirty flag")
	}

	sess.AddObject(20, 45, 0)
	sess.Start()
	text = drawHUD(h)
	for _, want := range []string{"Running...", "[PAUSE]", "#1: v0=20 (m/s), θ: 45°, h0=0", "[x]"} {
		if !strings.Contains(text, want) {
			t.Errorf("running panel lacks %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, session.EmptyListText) {
		t.Error("empty-list text shown with an object present")
	}

	sess.TogglePause()
	if text = drawHUD(h); !strings.Contains(text, "[RESUME]") {
		t.Errorf("paused panel lacks [RESUME]:\n%s", text)
	}
}

func TestHUD_ShowsWarning(t *testing.T) {
	sess, _ := newTestSession(t)
	h := NewHUDSystem(sess)
	h.Layout(700, 600)

	sess.Start()
	if text := drawHUD(h); !strings.Contains(text, session.NoProjectilesWarning) {
		t.Errorf("panel lacks the warning:\n%s", text)
	}
	sess.DismissWarning()
	if text := drawHUD(h); strings.Contains(text, session.NoProjectilesWarning) {
		t.Error("dismissed warning still shown")
	}
}

func TestHUD_ClickSelectsAndRemoves(t *testing.T) {
	sess, _ := newTestSession(t)
	h := NewHUDSystem(sess)
	h.Layout(700, 600)
	sess.AddObject(20, 45, 0)
	sess.AddObject(10, 30, 0)
	drawHUD(h)

	if len(h.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(h.rows))
	}
	if !h.Click(h.left+50, h.rows[1]+5) || h.Selected != 1 {
		t.Errorf("click on entry 2: selected = %d", h.Selected)
	}
	if len(sess.Items()) != 2 {
		t.Error("a click on the text should not remove")
	}

	first := sess.Items()[0].ID
	if !h.Click(h.left+SidebarWidth-hudPadding-5, h.rows[1]+5) {
		t.Fatal("click on [x] missed")
	}
	items := sess.Items()
	if len(items) != 1 || items[0].ID != first {
		t.Errorf("items = %+v, want only the first", items)
	}
	if h.Selected != 0 {
		t.Errorf("selection = %d after removing the last entry", h.Selected)
	}

	if h.Click(h.left+50, 5) {
		t.Error("a click on the title should not hit the list")
	}
}

func TestHUD_ClickTogglesControls(t *testing.T) {
	sess, _ := newTestSession(t)
	h := NewHUDSystem(sess)
	h.Layout(700, 600)
	drawHUD(h)

	pause := h.left + hudPadding + 10
	labels := h.left + hudPadding + controlsGap + 10
	row := h.controls - 5

	if h.Click(pause, row) {
		t.Error("hidden pause control should not take clicks")
	}

	sess.AddObject(20, 45, 0)
	sess.Start()
	drawHUD(h)
	if !h.Click(pause, row) || sess.Status().Text != "Paused" {
		t.Errorf("click on [PAUSE]: status = %q", sess.Status().Text)
	}
	if !h.Click(pause, row) || sess.Status().Text != "Running..." {
		t.Errorf("click on [RESUME]: status = %q", sess.Status().Text)
	}

	if !h.Click(labels, row) || sess.ShowLabels() {
		t.Error("click on the labels control should hide labels")
	}
	if !h.Click(labels, row) || !sess.ShowLabels() {
		t.Error("second click should show labels again")
	}
}

func TestHUD_SelectionStaysInRange(t *testing.T) {
	sess, _ := newTestSession(t)
	h := NewHUDSystem(sess)

	h.Move(1)
	h.RemoveSelected() // nothing to remove
	if h.Selected != 0 {
		t.Errorf("selection on empty list = %d", h.Selected)
	}

	sess.AddObject(20, 45, 0)
	sess.AddObject(10, 30, 0)
	h.Move(5)
	if h.Selected != 1 {
		t.Errorf("selection = %d, want 1", h.Selected)
	}
	h.Move(-5)
	if h.Selected != 0 {
		t.Errorf("selection = %d, want 0", h.Selected)
	}
}
