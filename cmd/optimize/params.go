// Package main provides CMA-ES optimization of the fire level's parameters
// toward a target flame shape.
package main

import (
	"github.com/pthm-cable/kindling/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "ground_power", Path: "fire.ground_power", Min: 4, Max: 40},
			{Name: "noise_a", Path: "fire.noise_a", Min: 0, Max: 3},
			{Name: "noise_b", Path: "fire.noise_b", Min: 0, Max: 3},
			{Name: "focus_a", Path: "fire.focus_a", Min: 0.1, Max: 5},
			{Name: "focus_b", Path: "fire.focus_b", Min: 0.5, Max: 5},
			{Name: "spread", Path: "fire.spread", Min: 0.2, Max: 1.6},
			{Name: "drift_up", Path: "fire.drift_up", Min: 0, Max: 0.6},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
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

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Fire.GroundPower = c[0]
	cfg.Fire.NoiseA = c[1]
	cfg.Fire.NoiseB = c[2]
	cfg.Fire.FocusA = c[3]
	cfg.Fire.FocusB = c[4]
	cfg.Fire.Spread = c[5]
	cfg.Fire.DriftUp = c[6]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Fire.GroundPower,
		cfg.Fire.NoiseA,
		cfg.Fire.NoiseB,
		cfg.Fire.FocusA,
		cfg.Fire.FocusB,
		cfg.Fire.Spread,
		cfg.Fire.DriftUp,
	}
}
