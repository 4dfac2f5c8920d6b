// Package config loads and validates the metaball effect configuration.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// MaxBalls is the size of the ball uniform array in the shader.
	MaxBalls = 50

	// Edge band used by the fixed edge policy.
	Softness = 2.0

	// Adaptive edge policy iso-value.
	AdaptiveIsoValue = 1.3

	// Random walk spawn parameters
	MinBallRadius      = 1.5
	BallRadiusRange    = 1.5
	RandomWalkVelocity = 50.0

	// Idle cursor path, as a fraction of the surface size.
	IdleOrbitFraction = 0.15
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Motion selects the field simulator policy.
type Motion string

const (
	MotionRandomWalk Motion = "random_walk"
	MotionOrbit      Motion = "orbit"
)

// Edge selects how the blob edge is anti-aliased.
type Edge string

const (
	EdgeFixed    Edge = "fixed"
	EdgeAdaptive Edge = "adaptive"
)

// CursorIdle selects where the cursor ball drifts while the pointer is outside the surface.
type CursorIdle string

const (
	CursorIdleHold  CursorIdle = "hold"
	CursorIdleOrbit CursorIdle = "orbit"
)

// Config is the full application configuration.
type Config struct {
	Effect Effect       `yaml:"effect"`
	Window WindowConfig `yaml:"window"`
	Audio  AudioConfig  `yaml:"audio"`
}

// Effect holds the per-instance effect parameters. It is treated as immutable
// once an effect has been built from it; changing a value means building a new effect.
type Effect struct {
	Color                  string     `yaml:"color"`
	CursorBallColor        string     `yaml:"cursor_ball_color"`
	CursorBallSize         float64    `yaml:"cursor_ball_size"`         // > 0
	BallCount              int        `yaml:"ball_count"`               // 0..MaxBalls
	AnimationSize          float64    `yaml:"animation_size"`           // field units across the surface height
	EnableMouseInteraction bool       `yaml:"enable_mouse_interaction"` // false pins the cursor ball to the centre
	EnableTransparency     bool       `yaml:"enable_transparency"`
	HoverSmoothness        float64    `yaml:"hover_smoothness"` // (0,1], fraction of remaining distance per tick
	ClumpFactor            float64    `yaml:"clump_factor"`     // orbit radius multiplier
	Speed                  float64    `yaml:"speed"`            // time multiplier
	Motion                 Motion     `yaml:"motion"`
	Edge                   Edge       `yaml:"edge"`
	CursorIdle             CursorIdle `yaml:"cursor_idle"`
	Seed                   uint64     `yaml:"seed"`      // 0 = time based (random walk only)
	TickRate               int        `yaml:"tick_rate"` // fixed timestep is 1/TickRate
}

// WindowConfig holds host window settings.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// AudioConfig holds the audio pulse parameters.
type AudioConfig struct {
	Gain      float64 `yaml:"gain"`      // cursor radius multiplier per unit of level
	RingSize  int     `yaml:"ring_size"` // samples kept for level analysis
	Smoothing float64 `yaml:"smoothing"` // weight of the previous level
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults and overlays the file at path, if any.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteYAML saves the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Effect.Validate(); err != nil {
		return fmt.Errorf("effect: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Audio.RingSize <= 0 {
		return fmt.Errorf("audio: ring_size must be positive, got %d", c.Audio.RingSize)
	}
	if c.Audio.Smoothing < 0 || c.Audio.Smoothing >= 1 {
		return fmt.Errorf("audio: smoothing must be in [0,1), got %g", c.Audio.Smoothing)
	}
	return nil
}

// Validate checks the effect parameter ranges.
func (e *Effect) Validate() error {
	var errs []error
	if e.BallCount < 0 || e.BallCount > MaxBalls {
		errs = append(errs, fmt.Errorf("ball_count must be in [0,%d], got %d", MaxBalls, e.BallCount))
	}
	if e.CursorBallSize <= 0 {
		errs = append(errs, fmt.Errorf("cursor_ball_size must be positive, got %g", e.CursorBallSize))
	}
	if e.AnimationSize <= 0 {
		errs = append(errs, fmt.Errorf("animation_size must be positive, got %g", e.AnimationSize))
	}
	if e.HoverSmoothness <= 0 || e.HoverSmoothness > 1 {
		errs = append(errs, fmt.Errorf("hover_smoothness must be in (0,1], got %g", e.HoverSmoothness))
	}
	if e.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", e.TickRate))
	}
	switch e.Motion {
	case MotionRandomWalk, MotionOrbit:
	default:
		errs = append(errs, fmt.Errorf("unknown motion %q", e.Motion))
	}
	switch e.Edge {
	case EdgeFixed, EdgeAdaptive:
	default:
		errs = append(errs, fmt.Errorf("unknown edge %q", e.Edge))
	}
	switch e.CursorIdle {
	case CursorIdleHold, CursorIdleOrbit:
	default:
		errs = append(errs, fmt.Errorf("unknown cursor_idle %q", e.CursorIdle))
	}
	if _, err := ParseColor(e.Color); err != nil {
		errs = append(errs, fmt.Errorf("color: %w", err))
	}
	if _, err := ParseColor(e.CursorBallColor); err != nil {
		errs = append(errs, fmt.Errorf("cursor_ball_color: %w", err))
	}
	return errors.Join(errs...)
}

// Timestep returns the fixed simulation step in seconds.
func (e *Effect) Timestep() float64 {
	return 1 / float64(e.TickRate)
}
