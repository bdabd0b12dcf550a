package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-projectile/pkg/config"
	"github.com/opd-ai/go-projectile/pkg/engine"
	"github.com/opd-ai/go-projectile/pkg/event"
	"github.com/opd-ai/go-projectile/pkg/logging"
	"github.com/opd-ai/go-projectile/pkg/session"
)

// Layout
const (
	SidebarWidth = 36
	headerRows   = 1
	footerRows   = 1
)

// HelpText lists the command-mode keys.
const HelpText = "a:add  s:start  p:pause  r:reset  l:labels  x:remove  +/-:zoom  q:quit"

var (
	headerStyle  = tcell.StyleDefault.Bold(true)
	labelStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	focusStyle   = tcell.StyleDefault.Reverse(true)
	warningStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

// Options configures an App.
type Options struct {
	Screen  tcell.Screen
	Session *session.Session
	Config  *config.Config
	Clock   engine.Clock
	Logger  *logging.Logger
	// Cue is called when playback completes, e.g. to play a sound.
	Cue func()
}

// App is the terminal front-end. All of its methods, and every session
// operation it triggers, run on the goroutine that calls Run.
type App struct {
	screen  tcell.Screen
	session *session.Session
	cfg     *config.Config
	logger  *logging.Logger
	surface *ScreenSurface
	form    *session.Form
	loop    *engine.Loop
	cue     func()

	selected int
	listTop  int
	uiDirty  bool
	pressed  bool // Button1 held since the last release
}

// NewApp creates the front-end on an initialized screen.
func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = opts.Session.Config()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	a := &App{
		screen:  opts.Screen,
		session: opts.Session,
		cfg:     cfg,
		logger:  logger,
		form:    session.NewForm(session.DefaultSpeed, session.DefaultAngle, session.DefaultHeight),
		cue:     opts.Cue,
		uiDirty: true,
	}
	a.surface = NewScreenSurface(opts.Screen, 0, headerRows, 0, 0, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
	a.loop = engine.NewLoop(opts.Session.Frames(), opts.Clock, cfg.Playback.FrameRate)
	a.loop.OnFrame = func(time.Time) {
		if a.session.Dirty() || a.uiDirty {
			a.Render()
		}
	}

	opts.Session.Bus().Subscribe(event.PlaybackCompleted, func(event.Event) {
		if a.cue != nil {
			a.cue()
		}
	})

	a.layout()
	return a
}

// layout fits the canvas to the screen, leaving room for the header, the
// footer and the sidebar.
func (a *App) layout() {
	w, h := a.screen.Size()
	cols := max(w-SidebarWidth, 0)
	rows := max(h-headerRows-footerRows, 0)
	a.surface.Place(0, headerRows, cols, rows)
	pw, ph := a.surface.Size()
	a.session.Resize(pw, ph)
	a.uiDirty = true
}

// Run processes input and frames until ctx is cancelled or the user quits.
// The caller owns the screen and must Fini it afterwards, which also stops
// the input goroutine.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.loop.Interval)
	defer ticker.Stop()

	a.Render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				a.logger.Info(a.session.Context(), "terminal front-end quit")
				return nil
			}
		case <-ticker.C:
			a.loop.Step()
		}
	}
}

// HandleEvent applies one input event. It returns false when the user asked
// to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.layout()
		a.screen.Sync()
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	if a.surface.Contains(x, y) {
		px, py := a.surface.CellToPixel(x, y)
		switch {
		case buttons&tcell.WheelUp != 0:
			a.session.ZoomAt(px, py, -1)
		case buttons&tcell.WheelDown != 0:
			a.session.ZoomAt(px, py, 1)
		}
	}

	if buttons&tcell.Button1 != 0 {
		px, py := a.surface.CellToPixel(x, y)
		if a.pressed {
			// motion while held
			if a.session.Viewport().Dragging() {
				a.session.DragTo(px, py)
			}
			return
		}
		a.pressed = true
		if a.surface.Contains(x, y) {
			a.session.BeginDrag(px, py)
		} else {
			a.clickSidebar(x, y)
		}
		return
	}
	// released anywhere
	if buttons&(tcell.WheelUp|tcell.WheelDown) == 0 {
		a.pressed = false
		a.session.EndDrag()
	}
}

// clickSidebar selects the clicked list entry, or removes it when the click
// hits its [x] button.
func (a *App) clickSidebar(x, y int) {
	items := a.session.Items()
	i := y - a.listTop
	if i < 0 || i >= len(items) {
		return
	}
	w, _ := a.screen.Size()
	if x >= w-4 {
		a.session.RemoveObject(items[i].ID)
	}
	a.selected = i
	a.clampSelection()
	a.uiDirty = true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}
	a.uiDirty = true

	if a.session.Warning() != "" {
		a.session.DismissWarning()
		if !a.form.Editing {
			return true
		}
	}

	if a.form.Editing {
		a.handleFormKey(ev)
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyTab, tcell.KeyEnter:
		a.form.Editing = true
	case tcell.KeyUp:
		a.selected--
		a.clampSelection()
	case tcell.KeyDown:
		a.selected++
		a.clampSelection()
	case tcell.KeyDelete:
		a.removeSelected()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'a':
			a.form.Editing = true
		case 's':
			_ = a.session.Start() // a rejected start shows up as the warning
		case 'p', ' ':
			a.session.TogglePause()
		case 'r':
			a.session.Reset()
			a.selected = 0
		case 'l':
			a.session.ToggleLabels()
		case 'x':
			a.removeSelected()
		case '+', '=':
			a.zoomCentre(-1)
		case '-':
			a.zoomCentre(1)
		}
	}
	return true
}

func (a *App) handleFormKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.form.Editing = false
	case tcell.KeyTab, tcell.KeyDown:
		a.form.Next()
	case tcell.KeyBacktab, tcell.KeyUp:
		a.form.Prev()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.form.Backspace()
	case tcell.KeyEnter:
		if _, err := a.session.AddObjectFromInput(a.form.Values()); err == nil {
			a.form.Editing = false
			a.selected = len(a.session.Items()) - 1
		}
	case tcell.KeyRune:
		a.form.Insert(ev.Rune())
	}
}

func (a *App) zoomCentre(deltaY float64) {
	w, h := a.surface.Size()
	a.session.ZoomAt(float64(w)/2, float64(h)/2, deltaY)
}

func (a *App) removeSelected() {
	items := a.session.Items()
	if a.selected >= 0 && a.selected < len(items) {
		a.session.RemoveObject(items[a.selected].ID)
	}
	a.clampSelection()
}

func (a *App) clampSelection() {
	n := len(a.session.Items())
	a.selected = min(max(a.selected, 0), max(n-1, 0))
}

// Render draws the whole screen and shows it.
func (a *App) Render() {
	a.screen.Clear()
	if err := a.session.Draw(a.surface); err != nil {
		a.logger.Error(a.session.Context(), "draw failed", err)
	}
	a.drawHeader()
	a.drawSidebar()
	a.drawFooter()
	a.screen.Show()
	a.uiDirty = false
}

func (a *App) drawHeader() {
	x := drawText(a.screen, 0, 0, "Projectile Motion  ", headerStyle)
	st := a.session.Status()
	x = drawText(a.screen, x, 0, st.Text, tcell.StyleDefault.Foreground(Color(st.Color)).Bold(true))
	drawText(a.screen, x+2, 0, "t = "+a.session.ElapsedText(), tcell.StyleDefault)
}

func (a *App) drawSidebar() {
	w, _ := a.screen.Size()
	left := w - SidebarWidth + 1
	y := headerRows

	for i, f := range a.form.Fields {
		drawText(a.screen, left, y, fmt.Sprintf("%-10s", f.Label), labelStyle)
		style := tcell.StyleDefault.Underline(true)
		if a.form.Editing && a.form.Focus == i {
			style = focusStyle
		}
		drawText(a.screen, left+11, y, fmt.Sprintf("%-12s", string(f.Value)), style)
		y++
	}
	y++

	if label, visible := a.session.PauseControl(); visible {
		drawText(a.screen, left, y, "["+label+"]", headerStyle)
	}
	labels := "Labels: off"
	if a.session.ShowLabels() {
		labels = "Labels: on"
	}
	drawText(a.screen, left+12, y, labels, labelStyle)
	y += 2

	items := a.session.Items()
	if len(items) == 0 {
		drawText(a.screen, left, y, session.EmptyListText, labelStyle)
	}
	a.listTop = y
	for i, it := range items {
		style := tcell.StyleDefault.Foreground(Color(it.Color))
		if i == a.selected {
			style = style.Reverse(true)
		}
		drawText(a.screen, left, y, session.Truncate(it.Text, SidebarWidth-6), style)
		drawText(a.screen, w-4, y, "[x]", labelStyle)
		y++
	}
}

func (a *App) drawFooter() {
	_, h := a.screen.Size()
	if warn := a.session.Warning(); warn != "" {
		drawText(a.screen, 0, h-1, " "+warn+" ", warningStyle)
		return
	}
	if a.form.Editing {
		drawText(a.screen, 0, h-1, "tab:next field  enter:add  esc:cancel", labelStyle)
		return
	}
	drawText(a.screen, 0, h-1, HelpText, labelStyle)
}

// drawText writes s at (x, y) and returns the column after it.
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
