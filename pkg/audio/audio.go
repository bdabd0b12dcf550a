// Package audio plays short tones for playback events.
package audio

import (
	"context"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-projectile/pkg/logging"
)

// Tone parameters
const (
	SampleRate   = beep.SampleRate(44100)
	NoteDuration = 80 * time.Millisecond
	LowNote      = 660.0 // Hz
	HighNote     = 880.0 // Hz
)

// Tone returns a sine wave of freq Hz lasting d.
func Tone(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sr.N(d), sine), nil
}

// CompletionCue is two rising notes.
func CompletionCue(sr beep.SampleRate) (beep.Streamer, error) {
	low, err := Tone(sr, LowNote, NoteDuration)
	if err != nil {
		return nil, err
	}
	high, err := Tone(sr, HighNote, NoteDuration)
	if err != nil {
		return nil, err
	}
	return beep.Seq(low, high), nil
}

// Player plays cues on the system speaker. A Player whose speaker failed to
// initialize stays silent.
type Player struct {
	sampleRate beep.SampleRate
	ready      bool
	logger     *logging.Logger
	play       func(beep.Streamer)
}

// NewPlayer initializes the speaker. Failure is logged and leaves the player
// silent; sound is never required.
func NewPlayer(logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	p := &Player{sampleRate: SampleRate, logger: logger}

	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		logger.Warn(context.Background(), "audio initialization failed", "error", err)
		return p
	}
	p.ready = true
	p.play = func(s beep.Streamer) { speaker.Play(s) }
	return p
}

// Ready reports whether cues will be audible.
func (p *Player) Ready() bool {
	return p.ready
}

// Cue plays the completion cue.
func (p *Player) Cue() {
	if !p.ready {
		return
	}
	s, err := CompletionCue(p.sampleRate)
	if err != nil {
		p.logger.Error(context.Background(), "cannot build completion cue", err)
		return
	}
	p.play(s)
}

// Close releases the speaker.
func (p *Player) Close() {
	if p.ready {
		speaker.Close()
		p.ready = false
	}
}
