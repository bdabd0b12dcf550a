// cmd/projectile/trace.go
package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/ttacon/chalk"

	"github.com/opd-ai/go-projectile/pkg/engine"
	"github.com/opd-ai/go-projectile/pkg/logging"
	"github.com/opd-ai/go-projectile/pkg/render"
	"github.com/opd-ai/go-projectile/pkg/session"
)

type traceOptions struct {
	interval float64
	cols     int
	rows     int
	realtime bool
	plot     bool
	noColor  bool
}

func newTraceCommand(o *rootOptions) *cobra.Command {
	t := traceOptions{}
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Play the launches back headless and print samples",
		Long: "Play the --launch projectiles back without a window, printing t, x, y, v, a_t and a_n " +
			"at a fixed interval and, optionally, an ASCII plot of the final frame.",
		Example: "  projectile trace -l 20,45,0 -l 15,60,5 --interval 0.5",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := o.newLogger(cmd.ErrOrStderr())
			return runTrace(cmd.Context(), o, t, cmd.OutOrStdout(), logger)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&t.interval, "interval", 0.5, "seconds of simulation time between samples")
	f.IntVar(&t.cols, "cols", 80, "plot width in characters")
	f.IntVar(&t.rows, "rows", 24, "plot height in characters")
	f.BoolVar(&t.realtime, "realtime", false, "play back at wall-clock speed instead of as fast as possible")
	f.BoolVar(&t.plot, "plot", true, "print an ASCII plot of the final frame")
	f.BoolVar(&t.noColor, "no-color", false, "disable coloured output")
	return cmd
}

// painter colours trace output unless disabled.
type painter struct {
	enabled bool
}

func (p painter) color(s string, c chalk.Color) string {
	if !p.enabled {
		return s
	}
	return c.Color(s)
}

func (p painter) bold(s string) string {
	if !p.enabled {
		return s
	}
	return chalk.Bold.TextStyle(s)
}

func (p painter) status(v session.StatusView) string {
	switch v.Color {
	case session.CompleteColor:
		return p.color(v.Text, chalk.Green)
	case session.RunningColor:
		return p.color(v.Text, chalk.Cyan)
	case session.PausedColor:
		return p.color(v.Text, chalk.Yellow)
	}
	return v.Text
}

func runTrace(ctx context.Context, o *rootOptions, t traceOptions, out io.Writer, logger *logging.Logger) error {
	if t.interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", t.interval)
	}
	if t.cols <= 0 || t.rows <= 0 {
		return fmt.Errorf("plot size must be positive, got %dx%d", t.cols, t.rows)
	}

	cfg := o.cfg
	cw, ch := cfg.Terminal.CellWidth, cfg.Terminal.CellHeight
	p := painter{enabled: !t.noColor}

	var clock engine.Clock = engine.SystemClock{}
	manual := engine.NewManualClock(time.Unix(0, 0))
	if !t.realtime {
		clock = manual
	}

	sess := session.New(session.Options{
		Config: cfg,
		Clock:  clock,
		Logger: logger,
		Width:  t.cols * cw,
		Height: t.rows * ch,
	})
	if err := o.addLaunches(sess); err != nil {
		return err
	}

	fmt.Fprintln(out, p.bold("Projectile trace"))
	projectiles := sess.Store().All()
	for i, it := range sess.Items() {
		fmt.Fprintf(out, "  %s  t_flight=%.2f s\n", it.Text, projectiles[i].FlightTime())
	}

	if err := sess.Start(); err != nil {
		fmt.Fprintln(out, p.color(sess.Warning(), chalk.Yellow))
		return err
	}
	logger.Info(sess.Context(), "trace started", "projectiles", len(projectiles), "realtime", t.realtime)

	fmt.Fprintln(out)
	fmt.Fprintln(out, p.bold(fmt.Sprintf("%7s %4s %9s %9s %8s %8s %8s", "t", "obj", "x", "y", "v", "a_t", "a_n")))
	next := 0.0
	loop := engine.NewLoop(sess.Frames(), clock, cfg.Playback.FrameRate)
	loop.OnFrame = func(time.Time) {
		for sess.Time() >= next {
			for i, pr := range projectiles {
				s := pr.StateAt(next)
				fmt.Fprintf(out, "%7.2f %4s %9.2f %9.2f %8.2f %8.2f %8.2f\n",
					next, fmt.Sprintf("#%d", i+1), s.X, s.Y, s.V, s.At, s.An)
			}
			next += t.interval
		}
	}
	loop.Done = func() bool { return !sess.IsRunning() }

	if t.realtime {
		if err := loop.Run(ctx); err != nil {
			return err
		}
	} else {
		for sess.IsRunning() {
			if err := ctx.Err(); err != nil {
				return err
			}
			manual.Advance(loop.Interval)
			loop.Step()
		}
	}

	fmt.Fprintln(out)
	for i, pr := range projectiles {
		if !pr.Launch.Lands() {
			fmt.Fprintf(out, "  #%d never lands\n", i+1)
			continue
		}
		land := pr.StateAt(pr.FlightTime())
		fmt.Fprintf(out, "  #%d lands at t=%.2f s, range %.2f m\n", i+1, pr.FlightTime(), land.X)
	}
	fmt.Fprintf(out, "%s  t = %s\n", p.status(sess.Status()), sess.ElapsedText())
	logger.Info(sess.Context(), "trace finished", "time", sess.Time())

	if t.plot {
		if err := sess.Draw(render.NewTextSurface(out, t.cols, t.rows, cw, ch)); err != nil {
			return err
		}
	}
	return nil
}
