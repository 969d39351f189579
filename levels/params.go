package levels

import (
	"fmt"

	"github.com/pthm-cable/kindling/config"
	"github.com/pthm-cable/kindling/numeric"
	"github.com/pthm-cable/kindling/sources"
)

// Params is the immutable snapshot of tunables read at the start of a tick.
// Replace it wholesale, never mutate one that a tick may be reading.
type Params struct {
	UpdatesPerTick int
	TargetFPS      int

	Fire    FireParams
	Doom    DoomParams
	Sand    SandParams
	Life    LifeParams
	Palette []Checkpoint
}

// FireParams tunes the directional fire level.
type FireParams struct {
	GroundPower  float32
	TorchPower   float32
	NoiseA       float32
	NoiseB       float32
	FocusA       float32
	FocusB       float32
	Spread       float32
	WoodDepleted float32
	DriftUp      float32
	WoodBand     int
	WoodAmount   float32
}

// DoomParams tunes both doom-fire levels.
type DoomParams struct {
	Emission    float32
	WoodBoost   float32
	WoodPlanks  int
	PlankLength int
}

// SandParams tunes the sand level.
type SandParams struct {
	BrushRadius float32
	SeedPile    int
}

// LifeParams tunes the Game of Life level.
type LifeParams struct {
	Density float32
}

// Checkpoint is one palette stop.
type Checkpoint struct {
	Threshold float32
	Colour    [4]float32
}

// ParamsFromConfig builds the initial snapshot from a loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	p := Params{
		UpdatesPerTick: cfg.Sim.UpdatesPerTick,
		TargetFPS:      cfg.Sim.TargetFPS,
		Fire: FireParams{
			GroundPower:  float32(cfg.Fire.GroundPower),
			TorchPower:   float32(cfg.Fire.TorchPower),
			NoiseA:       float32(cfg.Fire.NoiseA),
			NoiseB:       float32(cfg.Fire.NoiseB),
			FocusA:       float32(cfg.Fire.FocusA),
			FocusB:       float32(cfg.Fire.FocusB),
			Spread:       float32(cfg.Fire.Spread),
			WoodDepleted: float32(cfg.Fire.WoodDepleted),
			DriftUp:      float32(cfg.Fire.DriftUp),
			WoodBand:     cfg.Fire.WoodBand,
			WoodAmount:   float32(cfg.Fire.WoodAmount),
		},
		Doom: DoomParams{
			Emission:    float32(cfg.DoomFire.Emission),
			WoodBoost:   float32(cfg.DoomFire.WoodBoost),
			WoodPlanks:  cfg.DoomFire.WoodPlanks,
			PlankLength: cfg.DoomFire.PlankLength,
		},
		Sand: SandParams{
			BrushRadius: float32(cfg.Sand.BrushRadius),
			SeedPile:    cfg.Sand.SeedPile,
		},
		Life: LifeParams{
			Density: float32(cfg.Life.Density),
		},
	}
	for _, cp := range cfg.Palette.Checkpoints {
		var c Checkpoint
		c.Threshold = float32(cp.Threshold)
		for i := 0; i < len(c.Colour) && i < len(cp.Colour); i++ {
			c.Colour[i] = float32(cp.Colour[i])
		}
		p.Palette = append(p.Palette, c)
	}
	return p
}

// Validate checks every tunable against the same ranges the config loader
// enforces. A snapshot that passes cannot drive a level to NaN.
func (p *Params) Validate() error {
	checks := []struct {
		r config.Range
		v float32
	}{
		{config.UpdatesPerTickRange, float32(p.UpdatesPerTick)},
		{config.TargetFPSRange, float32(p.TargetFPS)},
		{config.GroundPowerRange, p.Fire.GroundPower},
		{config.TorchPowerRange, p.Fire.TorchPower},
		{config.NoiseARange, p.Fire.NoiseA},
		{config.NoiseBRange, p.Fire.NoiseB},
		{config.FocusARange, p.Fire.FocusA},
		{config.FocusBRange, p.Fire.FocusB},
		{config.SpreadRange, p.Fire.Spread},
		{config.WoodDepletedRange, p.Fire.WoodDepleted},
		{config.DriftUpRange, p.Fire.DriftUp},
		{config.EmissionRange, p.Doom.Emission},
		{config.WoodBoostRange, p.Doom.WoodBoost},
		{config.BrushRadiusRange, p.Sand.BrushRadius},
		{config.DensityRange, p.Life.Density},
	}
	for _, ch := range checks {
		if err := ch.r.Check(float64(ch.v)); err != nil {
			return err
		}
	}
	if len(p.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", config.ErrInvalid)
	}
	return nil
}

// Frame is everything a policy may read during one step besides cell state.
// A Frame is built by the tick driver and never modified while a step runs.
type Frame struct {
	Tick    uint64  // displayed-frame counter
	Step    uint64  // simulation step counter
	Time    float32 // simulated milliseconds plus seed offset; feeds the per-cell hash
	Params  *Params
	Sources []sources.Source
	Flicker *numeric.Flicker
}

// cellRand draws the per-cell random number for this step.
func (f *Frame) cellRand(i int) float32 {
	return numeric.Rand11(float32(i) * f.Time)
}
