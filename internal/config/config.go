// Package config loads folio's tuning: embedded defaults, an optional
// override file, and a few environment switches.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Environment variables read by Load.
const (
	EnvConfig        = "FOLIO_CONFIG"
	EnvReducedMotion = "FOLIO_REDUCED_MOTION"
	EnvDebug         = "FOLIO_DEBUG"
)

// Config holds every tunable.
type Config struct {
	Motion    MotionConfig    `yaml:"motion"`
	Tilt      TiltConfig      `yaml:"tilt"`
	Magnetic  MagneticConfig  `yaml:"magnetic"`
	Scroll    ScrollConfig    `yaml:"scroll"`
	Nav       NavConfig       `yaml:"nav"`
	Timeline  TimelineConfig  `yaml:"timeline"`
	Particles ParticlesConfig `yaml:"particles"`
	Cube      CubeConfig      `yaml:"cube"`
	Theme     ThemeConfig     `yaml:"theme"`

	// Source is the override file that was applied, if any.
	Source string `yaml:"-"`
	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

type MotionConfig struct {
	FPS      int  `yaml:"fps"`
	Reduced  bool `yaml:"reduced"`
	MinWidth int  `yaml:"min_width"`
}

type TiltConfig struct {
	MaxTiltDeg      float64 `yaml:"max_tilt_deg"`
	FollowStrength  float64 `yaml:"follow_strength"`
	Deadzone        float64 `yaml:"deadzone"`
	Inertia         float64 `yaml:"inertia"`
	FPSFloor        float64 `yaml:"fps_floor"`
	ScrollSuspendMS int     `yaml:"scroll_suspend_ms"`
}

type MagneticConfig struct {
	Radius       float64 `yaml:"radius"`
	MaxTranslate float64 `yaml:"max_translate"`
	Strength     float64 `yaml:"strength"`
	Epsilon      float64 `yaml:"epsilon"`
	PulseMS      int     `yaml:"pulse_ms"`
}

// ScrollConfig tunes section tracking and programmatic scrolling.
type ScrollConfig struct {
	Strategy      string  `yaml:"strategy"`
	MarginTop     float64 `yaml:"margin_top"`
	MarginBottom  float64 `yaml:"margin_bottom"`
	TopThreshold  float64 `yaml:"top_threshold"`
	Lookahead     float64 `yaml:"lookahead"`
	PinLast       bool    `yaml:"pin_last"`
	Padding       float64 `yaml:"padding"`
	NarrowPadding float64 `yaml:"narrow_padding"`
	NarrowWidth   int     `yaml:"narrow_width"`
	DurationMS    int     `yaml:"duration_ms"`
	LineStep      int     `yaml:"line_step"`
	WheelStep     int     `yaml:"wheel_step"`
}

type NavBreakpoint struct {
	MaxWidth int     `yaml:"max_width"`
	Height   float64 `yaml:"height"`
}

type NavConfig struct {
	FallbackHeight float64         `yaml:"fallback_height"`
	MeasureDelayMS int             `yaml:"measure_delay_ms"`
	Breakpoints    []NavBreakpoint `yaml:"breakpoints"`
}

// TimelineConfig is the harmonica spring behind the experience progress rail
// and the nav indicator.
type TimelineConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

type ParticlesConfig struct {
	Count       int     `yaml:"count"`
	Speed       float64 `yaml:"speed"`
	HoverFactor float64 `yaml:"hover_factor"`
	Seed        int64   `yaml:"seed"`
	FPS         int     `yaml:"fps"`
}

// CubeConfig sizes the hero puzzle cube in cells. It is only drawn when the
// hero has room beside the text.
type CubeConfig struct {
	Enabled bool  `yaml:"enabled"`
	Width   int   `yaml:"width"`
	Height  int   `yaml:"height"`
	Seed    int64 `yaml:"seed"`
}

type ThemeConfig struct {
	Accent    string `yaml:"accent"`
	AccentAlt string `yaml:"accent_alt"`
	Text      string `yaml:"text"`
	Muted     string `yaml:"muted"`
	Shadow    string `yaml:"shadow"`
}

// DerivedConfig holds durations converted from the millisecond fields.
type DerivedConfig struct {
	Frame          time.Duration
	ParticleFrame  time.Duration
	ScrollSuspend  time.Duration
	ScrollDuration time.Duration
	MeasureDelay   time.Duration
	Pulse          time.Duration
}

// LoadEnv copies .env from the working directory into the environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load reads .env (if present), the embedded defaults, and the override
// file at path. An empty path falls back to $FOLIO_CONFIG.
func Load(path string) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		cfg.Source = path
	}

	if v, ok := os.LookupEnv(EnvReducedMotion); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Motion.Reduced = b
		} else {
			cfg.Motion.Reduced = v != ""
		}
	}

	cfg.Validate()
	cfg.computeDerived()
	return cfg, nil
}

// Default returns the embedded defaults without touching the environment.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	cfg.Validate()
	cfg.computeDerived()
	return cfg
}

// Validate replaces out-of-range values with usable ones.
func (c *Config) Validate() {
	if c.Motion.FPS <= 0 {
		c.Motion.FPS = 60
	}
	if c.Motion.FPS > 120 {
		c.Motion.FPS = 120
	}
	if c.Motion.MinWidth < 0 {
		c.Motion.MinWidth = 0
	}
	if c.Tilt.FollowStrength <= 0 || c.Tilt.FollowStrength > 1 {
		c.Tilt.FollowStrength = 0.12
	}
	if c.Magnetic.Strength <= 0 || c.Magnetic.Strength > 1 {
		c.Magnetic.Strength = 0.28
	}
	if c.Scroll.MarginTop+c.Scroll.MarginBottom >= 1 {
		c.Scroll.MarginTop, c.Scroll.MarginBottom = 0.35, 0.35
	}
	if c.Scroll.LineStep <= 0 {
		c.Scroll.LineStep = 1
	}
	if c.Scroll.WheelStep <= 0 {
		c.Scroll.WheelStep = 3
	}
	if c.Scroll.DurationMS < 0 {
		c.Scroll.DurationMS = 0
	}
	if c.Nav.FallbackHeight <= 0 {
		c.Nav.FallbackHeight = 3
	}
	if c.Particles.Count < 0 {
		c.Particles.Count = 0
	}
	if c.Particles.FPS <= 0 {
		c.Particles.FPS = 15
	}
	if c.Cube.Width < 8 || c.Cube.Height < 4 {
		c.Cube.Width, c.Cube.Height = 22, 11
	}
	if c.Timeline.Stiffness <= 0 {
		c.Timeline.Stiffness = 6
	}
	if c.Timeline.Damping <= 0 {
		c.Timeline.Damping = 1
	}
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Frame = time.Second / time.Duration(c.Motion.FPS)
	c.Derived.ParticleFrame = time.Second / time.Duration(c.Particles.FPS)
	c.Derived.ScrollSuspend = time.Duration(c.Tilt.ScrollSuspendMS) * time.Millisecond
	c.Derived.ScrollDuration = time.Duration(c.Scroll.DurationMS) * time.Millisecond
	c.Derived.MeasureDelay = time.Duration(c.Nav.MeasureDelayMS) * time.Millisecond
	c.Derived.Pulse = time.Duration(c.Magnetic.PulseMS) * time.Millisecond
	if c.Motion.Reduced {
		c.Derived.ScrollDuration = 0
	}
}
