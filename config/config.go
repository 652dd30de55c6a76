// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Raindrop  RaindropConfig  `yaml:"raindrop"`
	Splash    SplashConfig    `yaml:"splash"`
	Expiry    ExpiryConfig    `yaml:"expiry"`
	Impact    ImpactConfig    `yaml:"impact"`
	Burst     BurstConfig     `yaml:"burst"`
	Obstacles ObstaclesConfig `yaml:"obstacles"`
	Wind      WindConfig      `yaml:"wind"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Range is a closed interval [Min, Max] sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Sample returns a uniform value in [Min, Max).
func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Centered returns a symmetric range [-half, +half].
func Centered(half float64) Range {
	return Range{Min: -half, Max: half}
}

// IntRange is an inclusive integer interval [Min, Max].
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Sample returns a uniform integer in [Min, Max].
func (r IntRange) Sample(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// Color is an 8-bit RGBA color.
type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// PhysicsConfig holds physics world parameters.
type PhysicsConfig struct {
	DT            float64 `yaml:"dt"`             // Seconds per physics step
	ReferenceRate float64 `yaml:"reference_rate"` // Frames per second that velocity units are expressed in
	Gravity       float64 `yaml:"gravity"`        // px/s², positive is down
}

// SpawnConfig holds the periodic spawn tick parameters.
type SpawnConfig struct {
	IntervalMS int      `yaml:"interval_ms"`
	Batch      IntRange `yaml:"batch"`  // Raindrops per tick
	Height     Range    `yaml:"height"` // Distance above the viewport top
}

// RaindropConfig holds raindrop body parameters.
type RaindropConfig struct {
	Width       Range   `yaml:"width"`
	Height      Range   `yaml:"height"`
	Opacity     Range   `yaml:"opacity"`
	VelX        Range   `yaml:"vel_x"`
	VelY        Range   `yaml:"vel_y"`
	AirFriction float64 `yaml:"air_friction"` // Velocity fraction lost per reference frame
	Density     float64 `yaml:"density"`
	Friction    float64 `yaml:"friction"`
	Fill        Color   `yaml:"fill"`
}

// SplashConfig holds splash drop body parameters.
type SplashConfig struct {
	Radius      Range   `yaml:"radius"`
	Opacity     Range   `yaml:"opacity"`
	VelX        Range   `yaml:"vel_x"`
	VelY        Range   `yaml:"vel_y"`
	AirFriction float64 `yaml:"air_friction"`
	Density     float64 `yaml:"density"`
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
	MaxAgeMS    int     `yaml:"max_age_ms"`
	SettleSpeed float64 `yaml:"settle_speed"` // |vy| below this counts as landed
	SettleBand  float64 `yaml:"settle_band"`  // Distance above the floor where landing is checked
	Fill        Color   `yaml:"fill"`
}

// ExpiryConfig holds raindrop retirement thresholds.
type ExpiryConfig struct {
	OffscreenMargin float64  `yaml:"offscreen_margin"` // Below H + margin = off-screen
	BottomBand      float64  `yaml:"bottom_band"`      // Below H - band = near bottom
	BottomSplashes  IntRange `yaml:"bottom_splashes"`
	SplashJitter    float64  `yaml:"splash_jitter"` // Horizontal half-width of splash placement
	SplashLift      float64  `yaml:"splash_lift"`   // Splashes start this far above the drop
}

// ImpactConfig holds collision response parameters.
type ImpactConfig struct {
	Circle  CircleImpactConfig  `yaml:"circle"`
	Deflect DeflectConfig       `yaml:"deflect"`
	Surface SurfaceImpactConfig `yaml:"surface"`
}

// CircleImpactConfig shapes the splash fan thrown off a decorative circle.
type CircleImpactConfig struct {
	Splashes  IntRange `yaml:"splashes"`
	SpreadDeg float64  `yaml:"spread_deg"` // Half-angle of the fan
	Distance  Range    `yaml:"distance"`
	Speed     Range    `yaml:"speed"`
	Lift      Range    `yaml:"lift"`
	LiftBias  float64  `yaml:"lift_bias"`
}

// DeflectConfig shapes the raindrop that slides off a circle.
type DeflectConfig struct {
	AngleDeg float64 `yaml:"angle_deg"` // Half-angle around the impact normal
	Distance Range   `yaml:"distance"`
	SpeedX   Range   `yaml:"speed_x"`
	SpeedY   Range   `yaml:"speed_y"`
}

// SurfaceImpactConfig holds ground and wall hit parameters.
type SurfaceImpactConfig struct {
	Splashes IntRange `yaml:"splashes"`
	Jitter   float64  `yaml:"jitter"`
	Lift     float64  `yaml:"lift"`
}

// BurstConfig holds click burst parameters.
type BurstConfig struct {
	Count  int     `yaml:"count"`
	Jitter float64 `yaml:"jitter"` // Half-width of the placement square
	VelX   Range   `yaml:"vel_x"`
	VelY   Range   `yaml:"vel_y"`
}

// CircleConfig places a decorative circle as a fraction of the viewport.
type CircleConfig struct {
	FX     float64 `yaml:"fx"`
	FY     float64 `yaml:"fy"`
	Radius float64 `yaml:"radius"`
}

// ObstaclesConfig holds static boundary and decoration parameters.
type ObstaclesConfig struct {
	GroundThickness float64        `yaml:"ground_thickness"`
	WallThickness   float64        `yaml:"wall_thickness"`
	Elasticity      float64        `yaml:"elasticity"`
	Friction        float64        `yaml:"friction"`
	Circles         []CircleConfig `yaml:"circles"`
	Fill            Color          `yaml:"fill"`
	Stroke          Color          `yaml:"stroke"`
	StrokeWidth     float64        `yaml:"stroke_width"`
}

// WindConfig holds noise-driven horizontal drift parameters.
type WindConfig struct {
	Strength  float64 `yaml:"strength"`  // Peak horizontal acceleration in px/s² (0 = off)
	Frequency float64 `yaml:"frequency"` // Noise samples per second
}

// RenderConfig holds background colors.
type RenderConfig struct {
	SkyTop    Color `yaml:"sky_top"`
	SkyBottom Color `yaml:"sky_bottom"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SpawnInterval time.Duration // Spawn.IntervalMS
	SplashMaxAge  time.Duration // Splash.MaxAgeMS
	StepDuration  time.Duration // Physics.DT
	SpreadRad     float64       // Impact.Circle.SpreadDeg in radians
	DeflectRad    float64       // Impact.Deflect.AngleDeg in radians
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
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse overlays the given YAML onto the embedded defaults.
// Fields absent from data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy with derived values recomputed.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Obstacles.Circles = append([]CircleConfig(nil), c.Obstacles.Circles...)
	cp.computeDerived()
	return &cp
}

// Recompute refreshes derived values after fields were changed in place.
func (c *Config) Recompute() {
	c.computeDerived()
}

// Validate reports every inconsistent setting, joined in a fixed order.
func (c *Config) Validate() error {
	var errs []error

	if c.Physics.DT <= 0 {
		errs = append(errs, errors.New("physics.dt must be positive"))
	}
	if c.Physics.ReferenceRate <= 0 {
		errs = append(errs, errors.New("physics.reference_rate must be positive"))
	}
	if c.Spawn.IntervalMS <= 0 {
		errs = append(errs, errors.New("spawn.interval_ms must be positive"))
	}
	if c.Splash.MaxAgeMS <= 0 {
		errs = append(errs, errors.New("splash.max_age_ms must be positive"))
	}
	if c.Burst.Count < 0 {
		errs = append(errs, errors.New("burst.count must not be negative"))
	}
	if len(c.Obstacles.Circles) == 0 {
		errs = append(errs, errors.New("obstacles.circles must not be empty"))
	}

	ranges := []struct {
		name string
		r    Range
	}{
		{"spawn.height", c.Spawn.Height},
		{"raindrop.width", c.Raindrop.Width},
		{"raindrop.height", c.Raindrop.Height},
		{"raindrop.opacity", c.Raindrop.Opacity},
		{"raindrop.vel_x", c.Raindrop.VelX},
		{"raindrop.vel_y", c.Raindrop.VelY},
		{"splash.radius", c.Splash.Radius},
		{"splash.opacity", c.Splash.Opacity},
		{"splash.vel_x", c.Splash.VelX},
		{"splash.vel_y", c.Splash.VelY},
		{"impact.circle.distance", c.Impact.Circle.Distance},
		{"impact.circle.speed", c.Impact.Circle.Speed},
		{"impact.circle.lift", c.Impact.Circle.Lift},
		{"impact.deflect.distance", c.Impact.Deflect.Distance},
		{"impact.deflect.speed_x", c.Impact.Deflect.SpeedX},
		{"impact.deflect.speed_y", c.Impact.Deflect.SpeedY},
		{"burst.vel_x", c.Burst.VelX},
		{"burst.vel_y", c.Burst.VelY},
	}
	for _, nr := range ranges {
		if nr.r.Min > nr.r.Max {
			errs = append(errs, fmt.Errorf("%s: min %.3g exceeds max %.3g", nr.name, nr.r.Min, nr.r.Max))
		}
	}

	counts := []struct {
		name string
		r    IntRange
	}{
		{"spawn.batch", c.Spawn.Batch},
		{"expiry.bottom_splashes", c.Expiry.BottomSplashes},
		{"impact.circle.splashes", c.Impact.Circle.Splashes},
		{"impact.surface.splashes", c.Impact.Surface.Splashes},
	}
	for _, nr := range counts {
		if nr.r.Min < 0 || nr.r.Min > nr.r.Max {
			errs = append(errs, fmt.Errorf("%s: invalid count range [%d, %d]", nr.name, nr.r.Min, nr.r.Max))
		}
	}

	if c.Raindrop.Width.Min <= 0 || c.Splash.Radius.Min <= 0 {
		errs = append(errs, errors.New("drop sizes must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SpawnInterval = time.Duration(c.Spawn.IntervalMS) * time.Millisecond
	c.Derived.SplashMaxAge = time.Duration(c.Splash.MaxAgeMS) * time.Millisecond
	c.Derived.StepDuration = time.Duration(c.Physics.DT * float64(time.Second))
	c.Derived.SpreadRad = c.Impact.Circle.SpreadDeg * math.Pi / 180
	c.Derived.DeflectRad = c.Impact.Deflect.AngleDeg * math.Pi / 180
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
