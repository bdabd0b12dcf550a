package engo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-projectile/pkg/session"
)

func newTestInput(t *testing.T) (*InputSystem, *HUDSystem, *session.Session, *int) {
	t.Helper()
	sess, _ := newTestSession(t)
	sess.Resize(700, 600)
	hud := NewHUDSystem(sess)
	quits := 0
	is := NewInputSystem(hud)
	is.quit = func() { quits++ }
	return is, hud, sess, &quits
}

func TestBindings_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range Bindings {
		assert.False(t, seen[b.Name], "duplicate binding %q", b.Name)
		assert.NotEmpty(t, b.Keys, "binding %q has no keys", b.Name)
		seen[b.Name] = true
	}
}

func TestInputSystem_FormAddsProjectile(t *testing.T) {
	is, hud, sess, _ := newTestInput(t)

	is.HandleText('9') // ignored outside the form
	assert.Equal(t, "20", string(hud.Form.Fields[0].Value))

	is.Handle(CmdEdit)
	require.True(t, hud.Form.Editing)
	is.Handle(CmdBackspace)
	is.HandleText('5')
	is.HandleText('a') // not numeric
	is.Handle(CmdNextField)
	is.Handle(CmdBackspace)
	is.Handle(CmdBackspace)
	is.HandleText('3')
	is.HandleText('0')
	is.Handle(CmdStart) // ignored while editing
	is.Handle(CmdAdd)

	items := sess.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "#1: v0=25 (m/s), θ: 30°, h0=0", items[0].Text)
	assert.False(t, hud.Form.Editing, "form should close after adding")
	assert.False(t, sess.IsRunning(), "start while editing should be ignored")
	assert.Equal(t, 0, hud.Selected)
}

func TestInputSystem_FormRejectsBadInput(t *testing.T) {
	is, hud, sess, _ := newTestInput(t)

	is.Handle(CmdNextField) // opens the form
	is.Handle(CmdBackspace)
	is.Handle(CmdBackspace)
	is.Handle(CmdAdd)

	assert.Empty(t, sess.Items())
	assert.NotEmpty(t, sess.Warning())
	assert.True(t, hud.Form.Editing, "form should stay open")

	// while editing, the dismissing key still acts
	is.HandleText('1')
	is.Handle(CmdAdd)
	assert.Empty(t, sess.Warning())
	assert.Len(t, sess.Items(), 1)
}

func TestInputSystem_PlaybackCommands(t *testing.T) {
	is, _, sess, quits := newTestInput(t)
	sess.AddObject(20, 45, 0)

	is.Handle(CmdStart)
	assert.Equal(t, "Running...", sess.Status().Text)
	is.Handle(CmdPause)
	assert.Equal(t, "Paused", sess.Status().Text)
	is.Handle(CmdPause)
	assert.Equal(t, "Running...", sess.Status().Text)

	is.Handle(CmdLabels)
	assert.False(t, sess.ShowLabels())

	is.Handle(CmdReset)
	assert.Equal(t, "Cleared", sess.Status().Text)
	assert.Empty(t, sess.Items())

	is.Handle(CmdCancel)
	assert.Equal(t, 1, *quits)
}

func TestInputSystem_WarningSwallowsKey(t *testing.T) {
	is, _, sess, _ := newTestInput(t)

	is.Handle(CmdStart)
	require.Equal(t, session.NoProjectilesWarning, sess.Warning())
	is.Handle(CmdLabels)
	assert.Empty(t, sess.Warning())
	assert.True(t, sess.ShowLabels(), "the dismissing key should not act")
}

func TestInputSystem_ListAndZoom(t *testing.T) {
	is, hud, sess, _ := newTestInput(t)
	first, _ := sess.AddObject(20, 45, 0)
	sess.AddObject(10, 30, 0)

	is.Handle(CmdDown)
	assert.Equal(t, 1, hud.Selected)
	is.Handle(CmdRemove)
	items := sess.Items()
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)
	is.Handle(CmdUp)
	assert.Equal(t, 0, hud.Selected)

	vp := sess.Viewport()
	is.Handle(CmdZoomIn)
	assert.InDelta(t, 4.4, vp.Scale, 1e-9)
	is.Handle(CmdZoomOut)
	assert.InDelta(t, 4.0, vp.Scale, 1e-9)
}
