// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/bubblefield/palette"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Market     MarketConfig     `yaml:"market"`
	Layout     LayoutConfig     `yaml:"layout"`
	Sizing     SizingConfig     `yaml:"sizing"`
	Palette    PaletteConfig    `yaml:"palette"`
	Camera     CameraConfig     `yaml:"camera"`
	Appearance AppearanceConfig `yaml:"appearance"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// MarketConfig holds the market-data endpoint settings.
type MarketConfig struct {
	BaseURL    string        `yaml:"base_url"`
	VsCurrency string        `yaml:"vs_currency"`
	PageSize   int           `yaml:"page_size"` // Assets fetched on initial load
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
}

// LayoutConfig holds force-directed layout parameters.
type LayoutConfig struct {
	Substeps          int     `yaml:"substeps"`           // Integration substeps per frame
	Spring            float64 `yaml:"spring"`             // Centering spring constant
	Padding           float64 `yaml:"padding"`            // Separation margin added to radius sum
	Repulsion         float64 `yaml:"repulsion"`          // Peak repulsion at zero distance
	Damping           float64 `yaml:"damping"`            // Velocity multiplier per substep
	StabilizationTime float64 `yaml:"stabilization_time"` // Seconds of active integration
	SpawnExtent       float64 `yaml:"spawn_extent"`       // Edge length of the spawn cube
	ReheatOnChange    bool    `yaml:"reheat_on_change"`   // Restart settle clock when assets are added
	MaxFrameDT        float64 `yaml:"max_frame_dt"`       // Frame delta clamp (0 = none)
}

// SizingConfig holds radius bounds.
type SizingConfig struct {
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
}

// PaletteConfig holds the change-to-color endpoints.
type PaletteConfig struct {
	Neutral   string  `yaml:"neutral"`
	Positive  string  `yaml:"positive"`
	Negative  string  `yaml:"negative"`
	MaxChange float64 `yaml:"max_change"` // Change (percent) at which color saturates
}

// CameraConfig holds camera framing and input parameters.
type CameraConfig struct {
	FOV               float64 `yaml:"fov"`
	DefaultDistance   float64 `yaml:"default_distance"`    // Overview distance, landscape
	PortraitDistance  float64 `yaml:"portrait_distance"`   // Overview distance when aspect < 1
	FollowFactor      float64 `yaml:"follow_factor"`       // Follow offset = radius * this
	MinFollowDistance float64 `yaml:"min_follow_distance"` // Follow offset floor
	FollowLerp        float64 `yaml:"follow_lerp"`         // Fraction of remaining distance per frame
	MinDistance       float64 `yaml:"min_distance"`        // User zoom limits
	MaxDistance       float64 `yaml:"max_distance"`
	OrbitSpeed        float64 `yaml:"orbit_speed"` // Radians per pixel of drag
	PanSpeed          float64 `yaml:"pan_speed"`   // World units per pixel, scaled by distance/DefaultDistance
	ZoomStep          float64 `yaml:"zoom_step"`   // Fractional distance change per wheel notch
}

// AppearanceConfig holds bubble animation parameters.
type AppearanceConfig struct {
	Lerp          float64 `yaml:"lerp"`
	HoverScale    float64 `yaml:"hover_scale"`
	Emissive      float64 `yaml:"emissive"`
	HoverEmissive float64 `yaml:"hover_emissive"`
	Opacity       float64 `yaml:"opacity"`
	BobAmplitude  float64 `yaml:"bob_amplitude"`
	BobFrequency  float64 `yaml:"bob_frequency"`
	HoverRelease  float64 `yaml:"hover_release"` // Seconds before a hover is dropped
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of frame time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32        // Screen.Width as float32
	ScreenH32 float32        // Screen.Height as float32
	Palette   palette.Mapper // Parsed palette colors
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Layout.Substeps < 1 {
		c.Layout.Substeps = 1
	}
	if c.Sizing.MaxRadius < c.Sizing.MinRadius {
		return fmt.Errorf("sizing: max_radius %.2f below min_radius %.2f", c.Sizing.MaxRadius, c.Sizing.MinRadius)
	}

	neutral, err := palette.ParseHex(c.Palette.Neutral)
	if err != nil {
		return fmt.Errorf("palette.neutral: %w", err)
	}
	positive, err := palette.ParseHex(c.Palette.Positive)
	if err != nil {
		return fmt.Errorf("palette.positive: %w", err)
	}
	negative, err := palette.ParseHex(c.Palette.Negative)
	if err != nil {
		return fmt.Errorf("palette.negative: %w", err)
	}
	c.Derived.Palette = palette.Mapper{
		Neutral:   neutral,
		Positive:  positive,
		Negative:  negative,
		MaxChange: c.Palette.MaxChange,
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
