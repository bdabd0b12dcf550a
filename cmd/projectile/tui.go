// cmd/projectile/tui.go
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/opd-ai/go-projectile/pkg/audio"
	"github.com/opd-ai/go-projectile/pkg/logging"
	"github.com/opd-ai/go-projectile/pkg/render/tui"
	"github.com/opd-ai/go-projectile/pkg/session"
)

func newTUICommand(o *rootOptions) *cobra.Command {
	var sound bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the visualizer in the terminal",
		Long:  "Run the visualizer in the terminal. Logs go to the rotating file set by log.file, since the screen is taken.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := o.cfg
			logFile := logging.NewFileWriter(cfg.Log.FileOptions())
			defer logFile.Close()
			logger := o.newLogger(logFile)

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize screen: %w", err)
			}
			defer screen.Fini()
			screen.EnableMouse()
			screen.Clear()

			sess := session.New(session.Options{Config: cfg, Logger: logger})
			if err := o.addLaunches(sess); err != nil {
				return err
			}

			var cue func()
			if sound || cfg.Terminal.Sound {
				player := audio.NewPlayer(logger)
				defer player.Close()
				cue = player.Cue
			}

			app := tui.NewApp(tui.Options{
				Screen:  screen,
				Session: sess,
				Config:  cfg,
				Logger:  logger,
				Cue:     cue,
			})
			if err := app.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&sound, "sound", false, "play a cue when playback completes")
	return cmd
}
