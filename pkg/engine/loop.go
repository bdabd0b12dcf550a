// pkg/engine/loop.go
package engine

import (
	"context"
	"time"
)

// DefaultFrameRate is the number of frames per second the loop aims for.
const DefaultFrameRate = 60

// Loop flushes a FrameQueue on a fixed ticker. Every callback, including
// OnFrame, runs on the goroutine that called Run.
type Loop struct {
	Frames   *FrameQueue
	Clock    Clock
	Interval time.Duration

	// OnFrame runs after each flush, typically to redraw.
	OnFrame func(now time.Time)
	// Done reports when the loop may stop on its own, e.g. once playback has
	// completed. Nil means run until the context ends.
	Done func() bool
}

// NewLoop creates a loop firing frameRate times per second.
func NewLoop(frames *FrameQueue, clock Clock, frameRate int) *Loop {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{
		Frames:   frames,
		Clock:    clock,
		Interval: time.Second / time.Duration(frameRate),
	}
}

// Step flushes one frame at the clock's current time.
func (l *Loop) Step() {
	now := l.Clock.Now()
	l.Frames.Flush(now)
	if l.OnFrame != nil {
		l.OnFrame(now)
	}
}

// Run steps the loop every Interval until ctx is cancelled or Done reports
// true. It returns ctx.Err() on cancellation and nil when Done ended it.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Step()
			if l.Done != nil && l.Done() {
				return nil
			}
		}
	}
}
