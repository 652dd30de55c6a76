package main

import (
	"math"

	"github.com/pthm-cable/drizzle/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before it is applied

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "spawn_interval", Path: "spawn.interval_ms", Min: 30, Max: 250, Default: 80, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Spawn.IntervalMS) },
				set: func(c *config.Config, v float64) { c.Spawn.IntervalMS = int(v) },
			},
			{
				Name: "batch_max", Path: "spawn.batch.max", Min: 5, Max: 30, Default: 12, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Spawn.Batch.Max) },
				set: func(c *config.Config, v float64) { c.Spawn.Batch.Max = int(v) },
			},
			{
				Name: "rain_air_friction", Path: "raindrop.air_friction", Min: 0.001, Max: 0.02, Default: 0.005,
				get: func(c *config.Config) float64 { return c.Raindrop.AirFriction },
				set: func(c *config.Config, v float64) { c.Raindrop.AirFriction = v },
			},
			{
				Name: "splash_air_friction", Path: "splash.air_friction", Min: 0.02, Max: 0.12, Default: 0.06,
				get: func(c *config.Config) float64 { return c.Splash.AirFriction },
				set: func(c *config.Config, v float64) { c.Splash.AirFriction = v },
			},
			{
				Name: "splash_restitution", Path: "splash.restitution", Min: 0.1, Max: 0.8, Default: 0.4,
				get: func(c *config.Config) float64 { return c.Splash.Restitution },
				set: func(c *config.Config, v float64) { c.Splash.Restitution = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds, rounding integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg and recomputes derived values.
// The batch minimum is lowered when it would exceed the tuned maximum.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
	if cfg.Spawn.Batch.Min > cfg.Spawn.Batch.Max {
		cfg.Spawn.Batch.Min = cfg.Spawn.Batch.Max
	}
	cfg.Recompute()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}
