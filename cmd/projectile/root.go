// cmd/projectile/root.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opd-ai/go-projectile/pkg/config"
	"github.com/opd-ai/go-projectile/pkg/logging"
	"github.com/opd-ai/go-projectile/pkg/session"
)

// rootOptions carries the state shared by every subcommand: the layered
// configuration and the launches given on the command line.
type rootOptions struct {
	configPath string
	launches   []string
	v          *viper.Viper
	cfg        *config.Config
}

// flagBindings maps persistent flags to configuration keys.
var flagBindings = map[string]string{
	"scale":     "viewport.scale",
	"gravity":   "physics.gravity",
	"strict":    "physics.strict",
	"labels":    "render.showlabels",
	"framerate": "playback.framerate",
	"log-level": "log.level",
}

// NewRootCommand builds the command tree. Each call returns an independent
// tree, so tests can run commands side by side.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{v: config.NewViper()}
	defaults := config.DefaultConfig()

	root := &cobra.Command{
		Use:           "projectile",
		Short:         "Interactive projectile motion visualizer",
		Long:          "Launch projectiles under uniform gravity and watch their paths, speeds and accelerations play back in a window or a terminal.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (JSON, YAML or TOML)")
	pf.StringArrayVarP(&opts.launches, "launch", "l", nil, "add a projectile as v0,angle,h0 (repeatable)")
	pf.Float64("scale", defaults.Viewport.Scale, "initial pixels per metre")
	pf.Float64("gravity", defaults.Physics.Gravity, "gravitational acceleration in m/s²")
	pf.Bool("strict", defaults.Physics.Strict, "reject launches that never reach the ground")
	pf.Bool("labels", defaults.Render.ShowLabels, "show live stats next to each projectile")
	pf.Int("framerate", defaults.Playback.FrameRate, "frames per second")
	pf.String("log-level", defaults.Log.Level, "log level: debug, info, warn or error")
	for name, key := range flagBindings {
		if err := opts.v.BindPFlag(key, pf.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	root.AddCommand(
		newGUICommand(opts),
		newTUICommand(opts),
		newTraceCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

// load reads the config file, if any, over defaults, environment and flags.
func (o *rootOptions) load() error {
	if o.configPath != "" {
		o.v.SetConfigFile(o.configPath)
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	cfg, err := config.FromViper(o.v)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// newLogger creates a JSON logger on w at the configured level.
func (o *rootOptions) newLogger(w io.Writer) *logging.Logger {
	return logging.NewLoggerWithWriter(w, logging.ParseLevel(o.cfg.Log.Level))
}

// addLaunches adds every --launch value to s. Values go through the same
// parsing as the on-screen form.
func (o *rootOptions) addLaunches(s *session.Session) error {
	for _, raw := range o.launches {
		parts := strings.Split(raw, ",")
		if len(parts) != 3 {
			return fmt.Errorf("launch %q: want v0,angle,h0", raw)
		}
		if _, err := s.AddObjectFromInput(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])); err != nil {
			return fmt.Errorf("launch %q: %w", raw, err)
		}
	}
	return nil
}

func newConfigCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(o.cfg)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init <path>",
		Short: "Write the default configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SaveConfig(config.DefaultConfig(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	})
	return cmd
}
