// pkg/engine/controller.go
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/opd-ai/go-projectile/pkg/entity"
	"github.com/opd-ai/go-projectile/pkg/event"
	"github.com/opd-ai/go-projectile/pkg/logging"
)

// DefaultSettleTime is how long playback keeps running after the longest
// flight has landed, in seconds.
const DefaultSettleTime = 0.1

// ErrNoProjectiles is returned by Start when there is nothing to animate.
var ErrNoProjectiles = errors.New("no projectiles to animate")

// Status is the playback state shown to the user.
type Status int

const (
	StatusReady Status = iota
	StatusRunning
	StatusPaused
	StatusComplete
	StatusCleared
)

// String returns the status line text for s.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "Running..."
	case StatusPaused:
		return "Paused"
	case StatusComplete:
		return "Complete!"
	case StatusCleared:
		return "Cleared"
	default:
		return "Ready"
	}
}

// Controller drives the shared simulation time cursor. Time is wall-clock
// time since Start minus every interval spent paused. The controller is not
// safe for concurrent use; it runs on the goroutine that flushes its frames.
type Controller struct {
	store  *entity.Store
	clock  Clock
	frames *FrameQueue
	bus    *event.Bus
	logger *logging.Logger

	settle float64

	running     bool
	paused      bool
	startTime   time.Time
	pauseStart  time.Time
	totalPaused time.Duration
	current     float64
	status      Status
	frame       FrameID
}

// NewController creates an idle controller over store. Frames are requested
// from frames; a nil bus or logger disables events or logging.
func NewController(store *entity.Store, clock Clock, frames *FrameQueue, bus *event.Bus, logger *logging.Logger) *Controller {
	if clock == nil {
		clock = SystemClock{}
	}
	if frames == nil {
		frames = NewFrameQueue()
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Controller{
		store:  store,
		clock:  clock,
		frames: frames,
		bus:    bus,
		logger: logger,
		settle: DefaultSettleTime,
		status: StatusReady,
	}
}

// SetSettleTime changes how long playback continues past the last landing.
func (c *Controller) SetSettleTime(seconds float64) {
	c.settle = seconds
}

// Frames returns the queue the controller schedules its ticks on.
func (c *Controller) Frames() *FrameQueue {
	return c.frames
}

// Start begins playback from t=0. An empty store is rejected with
// ErrNoProjectiles and nothing changes. Starting again while running
// restarts the clock; the previously scheduled frame is cancelled first so
// only one tick chain ever exists.
func (c *Controller) Start() error {
	ctx := context.Background()
	if c.store.IsEmpty() {
		c.logger.Warn(ctx, "start rejected", "reason", "no projectiles")
		c.publish(event.NewWarningEvent(event.StartRejected, c, ErrNoProjectiles.Error()))
		return ErrNoProjectiles
	}

	c.cancelFrame()
	c.running = true
	c.paused = false
	c.startTime = c.clock.Now()
	c.totalPaused = 0
	c.current = 0
	c.status = StatusRunning
	c.frame = c.frames.Request(c.tick)

	c.logger.Info(ctx, "playback started",
		"projectiles", c.store.Len(),
		"max_flight_time", c.store.MaxFlightTime())
	c.publish(event.NewPlaybackEvent(event.PlaybackStarted, c, 0))
	return nil
}

// TogglePause pauses a running playback or resumes a paused one. It does
// nothing when playback is not running and reports whether it acted.
func (c *Controller) TogglePause() bool {
	if !c.running {
		return false
	}

	now := c.clock.Now()
	c.paused = !c.paused
	if c.paused {
		c.pauseStart = now
		c.status = StatusPaused
		c.logger.Info(context.Background(), "playback paused", "time", c.current)
		c.publish(event.NewPlaybackEvent(event.PlaybackPaused, c, c.current))
	} else {
		c.totalPaused += now.Sub(c.pauseStart)
		c.status = StatusRunning
		c.logger.Info(context.Background(), "playback resumed", "time", c.current, "total_paused", c.totalPaused)
		c.publish(event.NewPlaybackEvent(event.PlaybackResumed, c, c.current))
	}
	return true
}

// Reset stops playback, empties the store and rewinds the time cursor.
func (c *Controller) Reset() {
	c.cancelFrame()
	c.running = false
	c.paused = false
	c.totalPaused = 0
	c.current = 0
	c.store.Clear()
	c.status = StatusCleared

	c.logger.Info(context.Background(), "playback reset")
	c.publish(event.NewPlaybackEvent(event.PlaybackReset, c, 0))
}

// tick is the per-frame callback. While paused it keeps the chain alive
// without moving time or checking for completion.
func (c *Controller) tick(now time.Time) {
	c.frame = 0
	if !c.running {
		return
	}

	if !c.paused {
		c.current = (now.Sub(c.startTime) - c.totalPaused).Seconds()
	}
	c.publish(event.NewPlaybackEvent(event.PlaybackTick, c, c.current))

	if !c.paused && c.current > c.store.MaxFlightTime()+c.settle {
		c.running = false
		c.status = StatusComplete
		c.logger.Info(context.Background(), "playback complete", "time", c.current)
		c.publish(event.NewPlaybackEvent(event.PlaybackCompleted, c, c.current))
		return
	}

	c.frame = c.frames.Request(c.tick)
}

func (c *Controller) cancelFrame() {
	if c.frame != 0 {
		c.frames.Cancel(c.frame)
		c.frame = 0
	}
}

func (c *Controller) publish(e event.Event) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

// Time returns the simulation time cursor in seconds.
func (c *Controller) Time() float64 {
	return c.current
}

// Status returns the current playback status
func (c *Controller) Status() Status {
	return c.status
}

// IsRunning reports whether playback is running or paused.
func (c *Controller) IsRunning() bool {
	return c.running
}

// IsPaused reports whether a running playback is paused.
func (c *Controller) IsPaused() bool {
	return c.paused
}
