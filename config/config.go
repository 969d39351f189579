// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Level     string          `yaml:"level"`
	Sim       SimConfig       `yaml:"sim"`
	Fire      FireConfig      `yaml:"fire"`
	DoomFire  DoomFireConfig  `yaml:"doom_fire"`
	Sand      SandConfig      `yaml:"sand"`
	Life      LifeConfig      `yaml:"life"`
	Palette   PaletteConfig   `yaml:"palette"`
	Sources   SourcesConfig   `yaml:"sources"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	PanelWidth int `yaml:"panel_width"` // tuning panel to the right of the grid
}

// GridConfig holds the simulation grid dimensions in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"` // 0 = square, same as width
}

// SimConfig holds tick driver parameters.
type SimConfig struct {
	UpdatesPerTick int `yaml:"updates_per_tick"` // push/pull/update repetitions per displayed frame
	TargetFPS      int `yaml:"target_fps"`       // tick pacing
	Workers        int `yaml:"workers"`          // 0 = GOMAXPROCS
}

// FireConfig holds the directional fire parameters.
type FireConfig struct {
	GroundPower  float64       `yaml:"ground_power"`  // emitted by row 0 every step
	TorchPower   float64       `yaml:"torch_power"`   // emitted by the pointer torch
	NoiseA       float64       `yaml:"noise_a"`       // angular fluctuation
	NoiseB       float64       `yaml:"noise_b"`       // per-step decay
	FocusA       float64       `yaml:"focus_a"`       // importance falloff scale
	FocusB       float64       `yaml:"focus_b"`       // importance falloff exponent
	Spread       float64       `yaml:"spread"`        // max spread angle in radians
	WoodDepleted float64       `yaml:"wood_depleted"` // below this, fire leaves for neighbouring wood
	DriftUp      float64       `yaml:"drift_up"`      // weight of the upward bias mixed into direction
	WoodBand     int           `yaml:"wood_band"`     // rows of wood seeded at 3/4 height
	WoodAmount   float64       `yaml:"wood_amount"`   // wood per seeded cell
	Flicker      FlickerConfig `yaml:"flicker"`
}

// FlickerConfig holds the simplex flicker applied to torch power.
type FlickerConfig struct {
	Amount float64 `yaml:"amount"`
	Scale  float64 `yaml:"scale"`
	Speed  float64 `yaml:"speed"`
}

// DoomFireConfig holds the doom-fire parameters.
type DoomFireConfig struct {
	Emission    float64 `yaml:"emission"`     // source row value
	WoodBoost   float64 `yaml:"wood_boost"`   // added to fire passing over wood
	WoodPlanks  int     `yaml:"wood_planks"`  // planks seeded for doomfire-wood
	PlankLength int     `yaml:"plank_length"` // cells per plank
}

// SandConfig holds falling-sand parameters.
type SandConfig struct {
	BrushRadius float64 `yaml:"brush_radius"`
	SeedPile    int     `yaml:"seed_pile"` // side of the square pile seeded at the top, 0 = none
}

// LifeConfig holds the Game of Life parameters.
type LifeConfig struct {
	Density float64 `yaml:"density"` // chance a cell starts alive
}

// PaletteConfig maps fire intensity to colour.
type PaletteConfig struct {
	Checkpoints []CheckpointConfig `yaml:"checkpoints"`
}

// CheckpointConfig is one colour stop: intensities at or above Threshold use Colour.
type CheckpointConfig struct {
	Threshold float64   `yaml:"checkpoint"`
	Colour    []float64 `yaml:"colour"` // RGBA in [0, 1]
}

// SourcesConfig holds emitter defaults.
type SourcesConfig struct {
	PointerRadius float64       `yaml:"pointer_radius"`
	TorchRadius   float64       `yaml:"torch_radius"`
	Torches       []TorchConfig `yaml:"torches"`
}

// TorchConfig is a torch placed at startup.
type TorchConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Power  float64 `yaml:"power"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // ticks between grid stats records
	PerfCollectorWindow int `yaml:"perf_collector_window"` // ticks averaged by the perf collector
	StatLogEvery        int `yaml:"stat_log_every"`        // samples averaged by the stat logger
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	GridW, GridH  int           // effective grid dimensions
	Cells         int           // GridW * GridH
	FrameInterval time.Duration // 1 / Sim.TargetFPS
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
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize recomputes derived values and validates. Call it after editing a
// loaded config in code.
func (c *Config) Finalize() error {
	c.computeDerived()
	return c.Validate()
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.GridW = c.Grid.Width
	c.Derived.GridH = c.Grid.Height
	// Height defaults to a square grid
	if c.Derived.GridH == 0 {
		c.Derived.GridH = c.Grid.Width
	}
	c.Derived.Cells = c.Derived.GridW * c.Derived.GridH

	if c.Sim.TargetFPS > 0 {
		c.Derived.FrameInterval = time.Second / time.Duration(c.Sim.TargetFPS)
	}
}

// Range bounds one numeric setting, inclusive at both ends.
type Range struct {
	Name   string
	Lo, Hi float64
}

// Check wraps ErrInvalid when v is outside the range or NaN.
func (r Range) Check(v float64) error {
	if !(v >= r.Lo && v <= r.Hi) {
		return fmt.Errorf("%w: %s %v outside [%v, %v]", ErrInvalid, r.Name, v, r.Lo, r.Hi)
	}
	return nil
}

// Ranges of the settings that can also change while a level runs.
var (
	UpdatesPerTickRange = Range{"sim.updates_per_tick", 0, 20}
	TargetFPSRange      = Range{"sim.target_fps", 1, 240}
	GroundPowerRange    = Range{"fire.ground_power", 0, 100}
	TorchPowerRange     = Range{"fire.torch_power", 0, 100}
	NoiseARange         = Range{"fire.noise_a", 0, 5}
	NoiseBRange         = Range{"fire.noise_b", 0, 5}
	FocusARange         = Range{"fire.focus_a", 0, 10}
	FocusBRange         = Range{"fire.focus_b", 0, 10}
	SpreadRange         = Range{"fire.spread", 0, math.Pi}
	WoodDepletedRange   = Range{"fire.wood_depleted", 0, 1000}
	DriftUpRange        = Range{"fire.drift_up", 0, 1}
	FlickerAmountRange  = Range{"fire.flicker.amount", 0, 1}
	EmissionRange       = Range{"doom_fire.emission", 0, 100}
	WoodBoostRange      = Range{"doom_fire.wood_boost", 0, 100}
	BrushRadiusRange    = Range{"sand.brush_radius", 0, 64}
	DensityRange        = Range{"life.density", 0, 1}
)

// Validate reports the first setting that cannot produce a correct run.
func (c *Config) Validate() error {
	switch {
	case c.Derived.GridW <= 0 || c.Derived.GridH <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalid, c.Derived.GridW, c.Derived.GridH)
	case c.Level == "":
		return fmt.Errorf("%w: level is empty", ErrInvalid)
	case c.Sim.Workers < 0:
		return fmt.Errorf("%w: sim.workers %d", ErrInvalid, c.Sim.Workers)
	}

	checks := []struct {
		r Range
		v float64
	}{
		{UpdatesPerTickRange, float64(c.Sim.UpdatesPerTick)},
		{TargetFPSRange, float64(c.Sim.TargetFPS)},
		{GroundPowerRange, c.Fire.GroundPower},
		{TorchPowerRange, c.Fire.TorchPower},
		{NoiseARange, c.Fire.NoiseA},
		{NoiseBRange, c.Fire.NoiseB},
		{FocusARange, c.Fire.FocusA},
		{FocusBRange, c.Fire.FocusB},
		{SpreadRange, c.Fire.Spread},
		{WoodDepletedRange, c.Fire.WoodDepleted},
		{DriftUpRange, c.Fire.DriftUp},
		{FlickerAmountRange, c.Fire.Flicker.Amount},
		{EmissionRange, c.DoomFire.Emission},
		{WoodBoostRange, c.DoomFire.WoodBoost},
		{BrushRadiusRange, c.Sand.BrushRadius},
		{DensityRange, c.Life.Density},
	}
	for _, ch := range checks {
		if err := ch.r.Check(ch.v); err != nil {
			return err
		}
	}

	if len(c.Palette.Checkpoints) == 0 {
		return fmt.Errorf("%w: palette needs at least one checkpoint", ErrInvalid)
	}
	for i, cp := range c.Palette.Checkpoints {
		if len(cp.Colour) != 4 {
			return fmt.Errorf("%w: palette checkpoint %d needs 4 colour channels, has %d", ErrInvalid, i, len(cp.Colour))
		}
		if i > 0 && cp.Threshold < c.Palette.Checkpoints[i-1].Threshold {
			return fmt.Errorf("%w: palette checkpoint %d is below checkpoint %d", ErrInvalid, i, i-1)
		}
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
