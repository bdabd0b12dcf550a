// cmd/projectile/gui.go
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-projectile/pkg/audio"
	engorender "github.com/opd-ai/go-projectile/pkg/render/engo"
	"github.com/opd-ai/go-projectile/pkg/session"
)

func newGUICommand(o *rootOptions) *cobra.Command {
	var sound bool
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Open the visualizer in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := o.cfg
			flags := cmd.Flags()
			if flags.Changed("width") {
				cfg.Window.Width, _ = flags.GetInt("width")
			}
			if flags.Changed("height") {
				cfg.Window.Height, _ = flags.GetInt("height")
			}
			if flags.Changed("fullscreen") {
				cfg.Window.Fullscreen, _ = flags.GetBool("fullscreen")
			}

			logger := o.newLogger(os.Stderr)
			sess := session.New(session.Options{
				Config: cfg,
				Logger: logger,
				Width:  max(cfg.Window.Width-engorender.SidebarWidth, 0),
				Height: cfg.Window.Height,
			})
			if err := o.addLaunches(sess); err != nil {
				return err
			}

			var cue func()
			if sound || cfg.Terminal.Sound {
				player := audio.NewPlayer(logger)
				defer player.Close()
				cue = player.Cue
			}

			logger.Info(sess.Context(), "opening window",
				"width", cfg.Window.Width,
				"height", cfg.Window.Height,
				"fullscreen", cfg.Window.Fullscreen)
			engorender.Run(engorender.NewScene(engorender.Options{
				Session: sess,
				Logger:  logger,
				Cue:     cue,
			}), cfg.Window)
			return nil
		},
	}

	defaults := o.v
	cmd.Flags().Int("width", defaults.GetInt("window.width"), "window width in pixels")
	cmd.Flags().Int("height", defaults.GetInt("window.height"), "window height in pixels")
	cmd.Flags().Bool("fullscreen", defaults.GetBool("window.fullscreen"), "open fullscreen")
	cmd.Flags().BoolVar(&sound, "sound", false, "play a cue when playback completes")
	return cmd
}
