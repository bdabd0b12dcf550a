// pkg/render/engo/scene.go
package engo

import (
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-projectile/pkg/config"
	"github.com/opd-ai/go-projectile/pkg/engine"
	"github.com/opd-ai/go-projectile/pkg/event"
	"github.com/opd-ai/go-projectile/pkg/logging"
	"github.com/opd-ai/go-projectile/pkg/render"
	"github.com/opd-ai/go-projectile/pkg/session"
)

// SceneType names the scene for the engine.
const SceneType = "ProjectileScene"

// Options configures a Scene.
type Options struct {
	Session *session.Session
	Clock   engine.Clock
	Logger  *logging.Logger
	// Cue is called when playback completes.
	Cue func()
}

// Scene is the windowed front-end: the canvas on the left and the control
// panel on the right, redrawn whenever the session or panel changes.
type Scene struct {
	session *session.Session
	logger  *logging.Logger
	assets  *AssetManager
	loop    *engine.Loop

	surface *Surface
	hud     *HUDSystem
	camera  *CameraSystem
	input   *InputSystem
}

// NewScene creates the scene. Nothing touches the engine until Setup.
func NewScene(opts Options) *Scene {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	s := &Scene{
		session: opts.Session,
		logger:  logger,
		assets:  NewAssetManager(),
	}
	s.hud = NewHUDSystem(opts.Session)
	s.camera = NewCameraSystem(opts.Session, s.hud)
	s.input = NewInputSystem(s.hud)

	s.loop = engine.NewLoop(opts.Session.Frames(), opts.Clock, opts.Session.Config().Playback.FrameRate)
	s.loop.OnFrame = func(time.Time) {
		if s.session.Dirty() || s.hud.Dirty() {
			s.Redraw()
		}
	}

	if opts.Cue != nil {
		opts.Session.Bus().Subscribe(event.PlaybackCompleted, func(event.Event) { opts.Cue() })
	}
	return s
}

// Type returns the scene type (required by Engo)
func (s *Scene) Type() string {
	return SceneType
}

// Preload registers the fonts (required by Engo)
func (s *Scene) Preload() {
	if err := s.assets.LoadAssets(); err != nil {
		s.logger.Error(s.session.Context(), "font loading failed", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (s *Scene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		s.logger.Warn(s.session.Context(), "unexpected updater", "type", u)
		return
	}
	common.SetBackground(render.White)

	rs := &common.RenderSystem{}
	world.AddSystem(rs)
	s.Attach(rs, int(engo.WindowWidth()), int(engo.WindowHeight()))

	RegisterButtons()
	engo.Mailbox.Listen("TextMessage", func(msg engo.Message) {
		if m, ok := msg.(engo.TextMessage); ok {
			s.input.HandleText(m.Char)
		}
	})
	engo.Mailbox.Listen("WindowResizeMessage", func(msg engo.Message) {
		if m, ok := msg.(engo.WindowResizeMessage); ok {
			s.Layout(m.NewWidth, m.NewHeight)
		}
	})

	world.AddSystem(s.input)
	world.AddSystem(s.camera)
	world.AddSystem(&frameSystem{loop: s.loop})
	s.logger.Info(s.session.Context(), "window scene ready")
}

// Exit is called when the window closes.
func (s *Scene) Exit() {
	if s.surface != nil {
		s.surface.Destroy()
	}
	s.logger.Info(s.session.Context(), "window closed")
}

// Attach binds the scene to a render sink covering a width x height window.
func (s *Scene) Attach(sink RenderSink, width, height int) {
	s.surface = NewSurface(sink, s.assets, width, height, s.logger)
	s.Layout(width, height)
}

// Layout splits a width x height window into canvas and panel.
func (s *Scene) Layout(width, height int) {
	canvas := max(width-SidebarWidth, 0)
	s.surface.Resize(width, height)
	s.session.Resize(canvas, height)
	s.hud.Layout(float64(canvas), float64(height))
}

// Redraw paints the scene and then the panel over it.
func (s *Scene) Redraw() {
	if err := s.session.Draw(s.surface); err != nil {
		s.logger.Error(s.session.Context(), "draw failed", err)
	}
	s.hud.Draw(s.surface)
	if err := s.surface.Present(); err != nil {
		s.logger.Error(s.session.Context(), "present failed", err)
	}
}

// Surface returns the drawing surface, nil before Attach.
func (s *Scene) Surface() *Surface {
	return s.surface
}

// HUD returns the control panel.
func (s *Scene) HUD() *HUDSystem {
	return s.hud
}

// Input returns the keyboard system.
func (s *Scene) Input() *InputSystem {
	return s.input
}

// Camera returns the mouse system.
func (s *Scene) Camera() *CameraSystem {
	return s.camera
}

// Loop returns the frame loop driven by the engine.
func (s *Scene) Loop() *engine.Loop {
	return s.loop
}

// frameSystem steps the frame loop once per engine frame.
type frameSystem struct {
	loop *engine.Loop
}

func (f *frameSystem) Remove(ecs.BasicEntity) {}

func (f *frameSystem) Update(float32) {
	f.loop.Step()
}

// Run opens the window and blocks until it is closed.
func Run(scene *Scene, cfg config.WindowConfig) {
	engo.Run(engo.RunOptions{
		Title:          cfg.Title,
		Width:          cfg.Width,
		Height:         cfg.Height,
		Fullscreen:     cfg.Fullscreen,
		StandardInputs: true,
	}, scene)
}
