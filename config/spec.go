package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/seamless/viewport"
)

var ErrInvalidConfig = errors.New("config: invalid")

const (
	StrategyOpacity = "opacity"
	StrategyMix     = "mix"

	WheelOff   = "off"
	WheelStep  = "step"
	WheelScrub = "scrub"
)

// DefaultFile is the embedded configuration name.
const DefaultFile = "engine.yaml"

type Config struct {
	Window     WindowSpec     `yaml:"window"`
	Transition TransitionSpec `yaml:"transition"`
	Mix        MixSpec        `yaml:"mix"`
	Viewport   ViewportSpec   `yaml:"viewport"`
	Input      InputSpec      `yaml:"input"`
	Scenes     []SceneSpec    `yaml:"scenes"`
}

type WindowSpec struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type TransitionSpec struct {
	Strategy    string `yaml:"strategy"`
	DurationMS  int    `yaml:"duration_ms"`
	AutoAdvance bool   `yaml:"auto_advance"`
	IntervalMS  int    `yaml:"interval_ms"`
}

func (t TransitionSpec) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

func (t TransitionSpec) Interval() time.Duration {
	return time.Duration(t.IntervalMS) * time.Millisecond
}

type MixSpec struct {
	Threshold   float64 `yaml:"threshold"`
	UseMask     bool    `yaml:"use_mask"`
	CycleMasks  bool    `yaml:"cycle_masks"`
	InitialMask int     `yaml:"initial_mask"`
	MaskCount   int     `yaml:"mask_count"`
}

type ViewportSpec struct {
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float64 `yaml:"damping_factor"`
	EnableZoom    bool    `yaml:"enable_zoom"`
	RotateSpeed   float64 `yaml:"rotate_speed"`
	ZoomSpeed     float64 `yaml:"zoom_speed"`
	MinDistance   float64 `yaml:"min_distance"`
	MaxDistance   float64 `yaml:"max_distance"`
}

// Controller converts the viewport section into the controller config.
func (v ViewportSpec) Controller() viewport.Config {
	return viewport.Config{
		EnableDamping: v.EnableDamping,
		DampingFactor: v.DampingFactor,
		EnableZoom:    v.EnableZoom,
		RotateSpeed:   v.RotateSpeed,
		ZoomSpeed:     v.ZoomSpeed,
		MinDistance:   v.MinDistance,
		MaxDistance:   v.MaxDistance,
	}
}

type InputSpec struct {
	Keyboard          bool    `yaml:"keyboard"`
	WheelMode         string  `yaml:"wheel_mode"`
	WheelThreshold    float64 `yaml:"wheel_threshold"`
	ScrollSensitivity float64 `yaml:"scroll_sensitivity"`
	ScrollSmoothing   float64 `yaml:"scroll_smoothing"`
}

type SceneSpec struct {
	Name       string     `yaml:"name"`
	Kind       string     `yaml:"kind"`
	Background *YAMLColor `yaml:"background"`
	Script     string     `yaml:"script"`
	CameraZ    float64    `yaml:"camera_z"`
	Count      int        `yaml:"count"`
}

// BackgroundColor returns the scene background, black when unset.
func (s SceneSpec) BackgroundColor() color.Color {
	if s.Background == nil || s.Background.Color == nil {
		return color.Black
	}
	return s.Background.Color
}

// LoadConfig reads, decodes and validates a configuration file. The embedded
// copy is used when no file exists on disk.
func LoadConfig(name string) (*Config, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", name, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in settings without any scenes.
func Default() *Config {
	return &Config{
		Window: WindowSpec{Title: "seamless", Width: 1280, Height: 720},
		Transition: TransitionSpec{
			Strategy:    StrategyOpacity,
			DurationMS:  1500,
			AutoAdvance: true,
			IntervalMS:  2000,
		},
		Mix: MixSpec{Threshold: 0.1, UseMask: true, CycleMasks: true, MaskCount: 3},
		Viewport: ViewportSpec{
			EnableDamping: true,
			DampingFactor: 0.01,
			EnableZoom:    true,
			RotateSpeed:   1,
			ZoomSpeed:     1,
			MinDistance:   0.5,
			MaxDistance:   100,
		},
		Input: InputSpec{
			Keyboard:          true,
			WheelMode:         WheelOff,
			WheelThreshold:    120,
			ScrollSensitivity: 0.002,
			ScrollSmoothing:   0.1,
		},
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks every section and reports the first problem found.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}

	t := c.Transition
	switch t.Strategy {
	case StrategyOpacity, StrategyMix:
	default:
		return invalid("unknown transition strategy %q", t.Strategy)
	}
	if t.DurationMS <= 0 {
		return invalid("transition.duration_ms must be positive, got %d", t.DurationMS)
	}
	if t.IntervalMS < 0 {
		return invalid("transition.interval_ms must not be negative, got %d", t.IntervalMS)
	}

	m := c.Mix
	if m.Threshold <= 0 || m.Threshold > 0.5 {
		return invalid("mix.threshold must be in (0, 0.5], got %v", m.Threshold)
	}
	if m.MaskCount < 0 {
		return invalid("mix.mask_count must not be negative, got %d", m.MaskCount)
	}
	if m.UseMask && m.MaskCount == 0 {
		return invalid("mix.use_mask needs at least one mask")
	}

	v := c.Viewport
	if v.DampingFactor < 0 || v.DampingFactor > 1 {
		return invalid("viewport.damping_factor must be in [0, 1], got %v", v.DampingFactor)
	}
	if v.MinDistance < 0 || (v.MaxDistance > 0 && v.MaxDistance < v.MinDistance) {
		return invalid("viewport distance range [%v, %v]", v.MinDistance, v.MaxDistance)
	}

	in := c.Input
	switch in.WheelMode {
	case WheelOff:
	case WheelStep:
		if in.WheelThreshold <= 0 {
			return invalid("input.wheel_threshold must be positive, got %v", in.WheelThreshold)
		}
	case WheelScrub:
		if in.ScrollSensitivity <= 0 {
			return invalid("input.scroll_sensitivity must be positive, got %v", in.ScrollSensitivity)
		}
		if in.ScrollSmoothing <= 0 || in.ScrollSmoothing > 1 {
			return invalid("input.scroll_smoothing must be in (0, 1], got %v", in.ScrollSmoothing)
		}
	default:
		return invalid("unknown input.wheel_mode %q", in.WheelMode)
	}
	if in.WheelMode != WheelOff && v.EnableZoom {
		return invalid("viewport.enable_zoom and input.wheel_mode %q both use the wheel", in.WheelMode)
	}

	seen := map[string]bool{}
	for i, s := range c.Scenes {
		if s.Name == "" {
			return invalid("scenes[%d] has no name", i)
		}
		if seen[s.Name] {
			return invalid("duplicate scene name %q", s.Name)
		}
		seen[s.Name] = true
		if s.Kind == "" {
			return invalid("scene %q has no kind", s.Name)
		}
		if s.Count < 0 {
			return invalid("scene %q count must not be negative", s.Name)
		}
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
