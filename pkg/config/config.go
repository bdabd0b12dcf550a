// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/opd-ai/go-projectile/pkg/logging"
)

// EnvPrefix is prepended to every environment override, e.g.
// PROJECTILE_VIEWPORT_SCALE or PROJECTILE_PHYSICS_GRAVITY.
const EnvPrefix = "PROJECTILE"

// Config contains configuration for the visualizer
type Config struct {
	Viewport ViewportConfig `mapstructure:"viewport" json:"viewport"`
	Physics  PhysicsConfig  `mapstructure:"physics" json:"physics"`
	Playback PlaybackConfig `mapstructure:"playback" json:"playback"`
	Render   RenderConfig   `mapstructure:"render" json:"render"`
	Window   WindowConfig   `mapstructure:"window" json:"window"`
	Terminal TerminalConfig `mapstructure:"terminal" json:"terminal"`
	Log      LogConfig      `mapstructure:"log" json:"log"`
}

// ViewportConfig holds the initial world-to-screen transform and zoom limits
type ViewportConfig struct {
	Scale    float64 `mapstructure:"scale" json:"scale"`
	OffsetX  float64 `mapstructure:"offsetx" json:"offsetX"`
	OffsetY  float64 `mapstructure:"offsety" json:"offsetY"`
	MinScale float64 `mapstructure:"minscale" json:"minScale"`
	MaxScale float64 `mapstructure:"maxscale" json:"maxScale"`
	ZoomStep float64 `mapstructure:"zoomstep" json:"zoomStep"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	Gravity float64 `mapstructure:"gravity" json:"gravity"`
	// Strict rejects launches that never reach the ground instead of letting
	// their NaN flight time propagate.
	Strict bool `mapstructure:"strict" json:"strict"`
}

// PlaybackConfig controls the animation clock
type PlaybackConfig struct {
	SettleTime float64 `mapstructure:"settletime" json:"settleTime"` // seconds past the longest flight before completion
	FrameRate  int     `mapstructure:"framerate" json:"frameRate"`
}

// RenderConfig controls what the scene renderer draws
type RenderConfig struct {
	PathStep     float64   `mapstructure:"pathstep" json:"pathStep"`
	MarkerRadius float64   `mapstructure:"markerradius" json:"markerRadius"`
	ShowLabels   bool      `mapstructure:"showlabels" json:"showLabels"`
	Dash         []float64 `mapstructure:"dash" json:"dash"`
}

// WindowConfig configures the windowed front-end
type WindowConfig struct {
	Title      string `mapstructure:"title" json:"title"`
	Width      int    `mapstructure:"width" json:"width"`
	Height     int    `mapstructure:"height" json:"height"`
	Fullscreen bool   `mapstructure:"fullscreen" json:"fullscreen"`
}

// TerminalConfig configures the terminal front-end. One cell stands for
// CellWidth x CellHeight screen pixels of the viewport.
type TerminalConfig struct {
	CellWidth  int  `mapstructure:"cellwidth" json:"cellWidth"`
	CellHeight int  `mapstructure:"cellheight" json:"cellHeight"`
	Sound      bool `mapstructure:"sound" json:"sound"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level      string `mapstructure:"level" json:"level"`
	File       string `mapstructure:"file" json:"file"`
	MaxSizeMB  int    `mapstructure:"maxsizemb" json:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxbackups" json:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxagedays" json:"maxAgeDays"`
	Compress   bool   `mapstructure:"compress" json:"compress"`
}

// FileOptions converts the log settings for logging.NewFileWriter.
func (l LogConfig) FileOptions() logging.FileOptions {
	return logging.FileOptions{
		Path:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}

// SetDefaults registers the default value of every key on v. Registering
// every key also makes each one overridable from the environment.
func SetDefaults(v *viper.Viper) {
	// -- Viewport --
	v.SetDefault("viewport.scale", 4.0)
	v.SetDefault("viewport.offsetx", 50.0)
	v.SetDefault("viewport.offsety", 50.0)
	v.SetDefault("viewport.minscale", 0.5)
	v.SetDefault("viewport.maxscale", 100.0)
	v.SetDefault("viewport.zoomstep", 0.1)

	// -- Physics --
	v.SetDefault("physics.gravity", 9.8)
	v.SetDefault("physics.strict", false)

	// -- Playback --
	v.SetDefault("playback.settletime", 0.1)
	v.SetDefault("playback.framerate", 60)

	// -- Render --
	v.SetDefault("render.pathstep", 0.1)
	v.SetDefault("render.markerradius", 6.0)
	v.SetDefault("render.showlabels", true)
	v.SetDefault("render.dash", []float64{5, 5})

	// -- Window --
	v.SetDefault("window.title", "Projectile Motion")
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("window.fullscreen", false)

	// -- Terminal --
	v.SetDefault("terminal.cellwidth", 4)
	v.SetDefault("terminal.cellheight", 8)
	v.SetDefault("terminal.sound", false)

	// -- Log --
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "projectile.log")
	v.SetDefault("log.maxsizemb", 10)
	v.SetDefault("log.maxbackups", 3)
	v.SetDefault("log.maxagedays", 7)
	v.SetDefault("log.compress", false)
}

// NewViper returns a viper instance carrying the defaults and reading
// PROJECTILE_* environment overrides.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// The defaults are static; a failure here is a programming error.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// LoadConfig loads a configuration from a file (JSON, YAML or TOML by
// extension) layered over the defaults and environment. An empty path uses
// defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper unmarshals and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig saves a configuration to a file as indented JSON
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for values the visualizer cannot run with.
func (c *Config) Validate() error {
	if c.Viewport.MinScale <= 0 || c.Viewport.MaxScale <= 0 {
		return fmt.Errorf("viewport.minScale and viewport.maxScale must be positive")
	}
	if c.Viewport.MinScale > c.Viewport.MaxScale {
		return fmt.Errorf("viewport.minScale (%v) exceeds viewport.maxScale (%v)", c.Viewport.MinScale, c.Viewport.MaxScale)
	}
	if c.Viewport.Scale < c.Viewport.MinScale || c.Viewport.Scale > c.Viewport.MaxScale {
		return fmt.Errorf("viewport.scale must lie within [%v, %v]", c.Viewport.MinScale, c.Viewport.MaxScale)
	}
	if c.Viewport.ZoomStep <= 0 || c.Viewport.ZoomStep >= 1 {
		return fmt.Errorf("viewport.zoomStep must be between 0 and 1")
	}
	if c.Physics.Gravity <= 0 {
		return fmt.Errorf("physics.gravity must be positive")
	}
	if c.Playback.SettleTime < 0 {
		return fmt.Errorf("playback.settleTime must not be negative")
	}
	if c.Playback.FrameRate <= 0 {
		return fmt.Errorf("playback.frameRate must be a positive integer")
	}
	if c.Render.PathStep <= 0 {
		return fmt.Errorf("render.pathStep must be positive")
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal.cellWidth and terminal.cellHeight must be positive integers")
	}
	return nil
}
