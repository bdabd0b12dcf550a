// pkg/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/opd-ai/go-projectile/pkg/config"
	"github.com/opd-ai/go-projectile/pkg/engine"
	"github.com/opd-ai/go-projectile/pkg/entity"
	"github.com/opd-ai/go-projectile/pkg/event"
	"github.com/opd-ai/go-projectile/pkg/logging"
	"github.com/opd-ai/go-projectile/pkg/render"
	"github.com/opd-ai/go-projectile/pkg/validation"
)

// Messages shown to the user.
const (
	NoProjectilesWarning = "Please add an object first!"
	EmptyListText        = "No objects yet."
)

// Pause control labels.
const (
	PauseLabel  = "PAUSE"
	ResumeLabel = "RESUME"
)

// Status display colours.
var (
	ReadyColor    = entity.MustParseHex("#e0e0e0")
	RunningColor  = entity.MustParseHex("#4db8ff")
	PausedColor   = entity.MustParseHex("#ffc107")
	CompleteColor = entity.MustParseHex("#28a745")
	ClearedColor  = entity.MustParseHex("#aaaaaa")
)

// StatusView is the status line as displayed.
type StatusView struct {
	Text  string
	Color color.RGBA
}

// Item is one entry of the projectile list.
type Item struct {
	ID     entity.ID
	Number int // 1-based position in insertion order
	Text   string
	Color  color.RGBA
}

// Options configures a new Session. Zero values pick the defaults.
type Options struct {
	Config *config.Config
	Clock  engine.Clock
	Colors entity.ColorSource
	Bus    *event.Bus
	Logger *logging.Logger
	Width  int
	Height int
}

// Session owns everything one visualizer window works on: the projectiles,
// the viewport, the playback controller and the label toggle. Front-ends call
// its operations from a single goroutine and redraw when Dirty reports true.
type Session struct {
	cfg        *config.Config
	store      *entity.Store
	viewport   *render.Viewport
	scene      *render.SceneRenderer
	frames     *engine.FrameQueue
	controller *engine.Controller
	validator  *validation.Validator
	bus        *event.Bus
	logger     *logging.Logger
	ctx        context.Context

	showLabels bool
	warning    string
	dirty      bool
}

// New creates a session sized width x height pixels.
func New(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bus := opts.Bus
	if bus == nil {
		bus = event.NewEventBus()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	store := entity.NewStore(cfg.Physics.Gravity, opts.Colors)

	vp := render.NewViewport(opts.Width, opts.Height)
	vp.Scale = cfg.Viewport.Scale
	vp.OffsetX = cfg.Viewport.OffsetX
	vp.OffsetY = cfg.Viewport.OffsetY
	vp.MinScale = cfg.Viewport.MinScale
	vp.MaxScale = cfg.Viewport.MaxScale
	vp.ZoomStep = cfg.Viewport.ZoomStep

	scene := render.NewSceneRenderer(vp)
	scene.PathStep = cfg.Render.PathStep
	scene.MarkerRadius = cfg.Render.MarkerRadius
	scene.Dash = cfg.Render.Dash

	frames := engine.NewFrameQueue()
	controller := engine.NewController(store, opts.Clock, frames, bus, logger)
	controller.SetSettleTime(cfg.Playback.SettleTime)

	s := &Session{
		cfg:        cfg,
		store:      store,
		viewport:   vp,
		scene:      scene,
		frames:     frames,
		controller: controller,
		validator:  validation.NewValidator(cfg.Physics.Gravity, cfg.Physics.Strict),
		bus:        bus,
		logger:     logger,
		ctx:        logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID()),
		showLabels: cfg.Render.ShowLabels,
		dirty:      true,
	}

	// every tick moves the markers
	bus.Subscribe(event.PlaybackTick, func(event.Event) { s.dirty = true })
	bus.Subscribe(event.PlaybackCompleted, func(event.Event) { s.dirty = true })

	logger.Info(s.ctx, "session created",
		"width", opts.Width,
		"height", opts.Height,
		"gravity", cfg.Physics.Gravity,
		"strict", cfg.Physics.Strict)
	return s
}

// AddObject appends a projectile with the given initial conditions. In strict
// mode launches that never land are rejected.
func (s *Session) AddObject(speed, angle, height float64) (*entity.Projectile, error) {
	in := validation.LaunchInput{Speed: speed, Angle: angle, Height: height}
	if err := s.validator.CheckLaunch(in); err != nil {
		return nil, s.reject("add rejected", err)
	}

	p := s.store.Add(speed, angle, height)
	s.warning = ""
	s.dirty = true

	s.logger.Info(s.ctx, "projectile added",
		"id", p.ID,
		"v0", speed,
		"angle", angle,
		"h0", height,
		"t_flight", p.FlightTime())
	if !p.Launch.Lands() {
		s.logger.Debug(s.ctx, "projectile never lands", "id", p.ID)
	}
	s.bus.Publish(event.NewProjectileEvent(event.ProjectileAdded, s, uint64(p.ID), s.store.Len()-1))
	return p, nil
}

// AddObjectFromInput parses the three form fields and adds the projectile.
func (s *Session) AddObjectFromInput(speed, angle, height string) (*entity.Projectile, error) {
	in, err := s.validator.ParseLaunch(speed, angle, height)
	if err != nil {
		return nil, s.reject("input rejected", err)
	}
	return s.AddObject(in.Speed, in.Angle, in.Height)
}

func (s *Session) reject(msg string, err error) error {
	s.warning = err.Error()
	s.dirty = true
	s.logger.Warn(s.ctx, msg, "error", err)
	s.bus.Publish(event.NewWarningEvent(event.InputRejected, s, s.warning))
	return err
}

// RemoveObject deletes the projectile with the given id. Unknown ids are
// ignored; it reports whether anything was removed.
func (s *Session) RemoveObject(id entity.ID) bool {
	idx := s.store.Index(id)
	if !s.store.Remove(id) {
		return false
	}
	s.dirty = true
	s.logger.Info(s.ctx, "projectile removed", "id", id)
	s.bus.Publish(event.NewProjectileEvent(event.ProjectileRemoved, s, uint64(id), idx))
	return true
}

// Start begins playback. With no projectiles it sets the warning and returns
// engine.ErrNoProjectiles.
func (s *Session) Start() error {
	if err := s.controller.Start(); err != nil {
		if errors.Is(err, engine.ErrNoProjectiles) {
			s.warning = NoProjectilesWarning
		} else {
			s.warning = err.Error()
		}
		s.dirty = true
		return err
	}
	s.warning = ""
	s.dirty = true
	return nil
}

// TogglePause pauses or resumes a running playback.
func (s *Session) TogglePause() bool {
	if !s.controller.TogglePause() {
		return false
	}
	s.dirty = true
	return true
}

// Reset stops playback and removes every projectile.
func (s *Session) Reset() {
	n := s.store.Len()
	s.controller.Reset()
	s.warning = ""
	s.dirty = true
	s.bus.Publish(event.NewProjectileEvent(event.ProjectilesCleared, s, 0, n))
}

// SetShowLabels turns the per-projectile stats panels on or off.
func (s *Session) SetShowLabels(show bool) {
	if s.showLabels == show {
		return
	}
	s.showLabels = show
	s.dirty = true
	s.logger.Debug(s.ctx, "labels toggled", "show", show)
	s.bus.Publish(event.NewLabelsEvent(s, show))
}

// ToggleLabels flips the label toggle and returns its new state.
func (s *Session) ToggleLabels() bool {
	s.SetShowLabels(!s.showLabels)
	return s.showLabels
}

// ShowLabels reports whether stats panels are drawn.
func (s *Session) ShowLabels() bool {
	return s.showLabels
}

// ZoomAt zooms one wheel tick around the screen point (x, y).
func (s *Session) ZoomAt(x, y, deltaY float64) {
	s.viewport.ZoomAt(x, y, deltaY)
	s.viewportChanged()
}

// BeginDrag starts panning from the screen point (x, y).
func (s *Session) BeginDrag(x, y float64) {
	s.viewport.BeginDrag(x, y)
}

// DragTo pans by the pointer movement since the last sample.
func (s *Session) DragTo(x, y float64) {
	if s.viewport.DragTo(x, y) {
		s.viewportChanged()
	}
}

// EndDrag stops panning. It is safe to call when no drag is active.
func (s *Session) EndDrag() {
	s.viewport.EndDrag()
}

// Resize changes the drawing surface size. Scale and offsets are kept.
func (s *Session) Resize(width, height int) {
	if s.viewport.Width == width && s.viewport.Height == height {
		return
	}
	s.viewport.Resize(width, height)
	s.viewportChanged()
}

func (s *Session) viewportChanged() {
	s.dirty = true
	s.bus.Publish(event.NewViewportEvent(s, s.viewport.Scale, s.viewport.OffsetX, s.viewport.OffsetY))
}

// Frame runs every frame callback scheduled before now and returns how many
// ran.
func (s *Session) Frame(now time.Time) int {
	return s.frames.Flush(now)
}

// Draw renders the scene at the current simulation time and clears the
// dirty flag.
func (s *Session) Draw(surface render.Surface) error {
	s.scene.ShowLabels = s.showLabels
	s.dirty = false
	if err := s.scene.Draw(surface, s.store.All(), s.controller.Time()); err != nil {
		return logging.WrapError(err, "draw scene")
	}
	return nil
}

// Dirty reports whether something changed since the last Draw.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Status returns the status line text and colour.
func (s *Session) Status() StatusView {
	st := s.controller.Status()
	return StatusView{Text: st.String(), Color: statusColor(st)}
}

func statusColor(st engine.Status) color.RGBA {
	switch st {
	case engine.StatusRunning:
		return RunningColor
	case engine.StatusPaused:
		return PausedColor
	case engine.StatusComplete:
		return CompleteColor
	case engine.StatusCleared:
		return ClearedColor
	default:
		return ReadyColor
	}
}

// ElapsedText formats the simulation time for display.
func (s *Session) ElapsedText() string {
	return fmt.Sprintf("%.2f s", s.controller.Time())
}

// PauseControl returns the label of the pause control and whether it should
// be shown at all. It is visible only while playback is running or paused.
func (s *Session) PauseControl() (string, bool) {
	if !s.controller.IsRunning() {
		return PauseLabel, false
	}
	if s.controller.IsPaused() {
		return ResumeLabel, true
	}
	return PauseLabel, true
}

// Items lists the projectiles in insertion order.
func (s *Session) Items() []Item {
	all := s.store.All()
	items := make([]Item, len(all))
	for i, p := range all {
		items[i] = Item{
			ID:     p.ID,
			Number: i + 1,
			Text:   ItemText(i+1, p),
			Color:  p.Color,
		}
	}
	return items
}

// ItemText formats one list entry.
func ItemText(number int, p *entity.Projectile) string {
	return fmt.Sprintf("#%d: v0=%v (m/s), θ: %v°, h0=%v", number, p.Launch.Speed, p.Launch.Angle, p.Launch.Height)
}

// Warning returns the last user-facing warning, or "" when the last action
// succeeded.
func (s *Session) Warning() string {
	return s.warning
}

// DismissWarning clears the current warning.
func (s *Session) DismissWarning() {
	if s.warning != "" {
		s.warning = ""
		s.dirty = true
	}
}

// Time returns the simulation time in seconds.
func (s *Session) Time() float64 {
	return s.controller.Time()
}

// IsRunning reports whether playback is running or paused.
func (s *Session) IsRunning() bool {
	return s.controller.IsRunning()
}

// Store returns the projectile store.
func (s *Session) Store() *entity.Store {
	return s.store
}

// Viewport returns the world-to-screen transform.
func (s *Session) Viewport() *render.Viewport {
	return s.viewport
}

// Bus returns the session's event bus.
func (s *Session) Bus() *event.Bus {
	return s.bus
}

// Frames returns the queue playback ticks are scheduled on.
func (s *Session) Frames() *engine.FrameQueue {
	return s.frames
}

// Config returns the configuration the session was built from.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Context returns the session context, which carries its correlation ID.
func (s *Session) Context() context.Context {
	return s.ctx
}
