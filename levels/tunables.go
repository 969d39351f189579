package levels

import "math"

// Tunable describes one live-adjustable parameter. The viewer builds its
// sliders from this table instead of hard-coding them.
type Tunable struct {
	ID     string
	Label  string
	Min    float32
	Max    float32
	Format string   // printf verb for the value readout
	Whole  bool     // rounded to an integer when set
	Levels []string // levels the parameter affects, nil = all
	Get    func(p *Params) float32
	Set    func(p *Params, v float32)
}

// AppliesTo reports whether the tunable affects the given level.
func (t Tunable) AppliesTo(level string) bool {
	if t.Levels == nil {
		return true
	}
	for _, id := range t.Levels {
		if id == level {
			return true
		}
	}
	return false
}

// Apply returns a copy of p with the tunable set to v, clamped to its range.
func (t Tunable) Apply(p Params, v float32) Params {
	v = min(max(v, t.Min), t.Max)
	if t.Whole {
		v = float32(math.Round(float64(v)))
	}
	t.Set(&p, v)
	return p
}

var (
	fireOnly = []string{IDFire}
	doomOnly = []string{IDDoomFire, IDDoomFireWood}
	woodOnly = []string{IDDoomFireWood}
	sandOnly = []string{IDSand}
	lifeOnly = []string{IDLife}
	anyFire  = []string{IDFire, IDDoomFire, IDDoomFireWood}
)

var tunables = []Tunable{
	{
		ID: "updates_per_tick", Label: "Updates per tick", Min: 0, Max: 20, Format: "%.0f", Whole: true,
		Get: func(p *Params) float32 { return float32(p.UpdatesPerTick) },
		Set: func(p *Params, v float32) { p.UpdatesPerTick = int(v) },
	},
	{
		ID: "target_fps", Label: "Target FPS", Min: 1, Max: 120, Format: "%.0f", Whole: true,
		Get: func(p *Params) float32 { return float32(p.TargetFPS) },
		Set: func(p *Params, v float32) { p.TargetFPS = int(v) },
	},
	{
		ID: "ground_power", Label: "Ground power", Min: 0, Max: 64, Format: "%.1f", Levels: fireOnly,
		Get: func(p *Params) float32 { return p.Fire.GroundPower },
		Set: func(p *Params, v float32) { p.Fire.GroundPower = v },
	},
	{
		ID: "torch_power", Label: "Torch power", Min: 0, Max: 100, Format: "%.1f", Levels: anyFire,
		Get: func(p *Params) float32 { return p.Fire.TorchPower },
		Set: func(p *Params, v float32) { p.Fire.TorchPower = v },
	},
	{
		ID: "noise_a", Label: "Angular noise", Min: 0, Max: 4, Format: "%.2f", Levels: fireOnly,
		Get: func(p *Params) float32 { return p.Fire.NoiseA },
		Set: func(p *Params, v float32) { p.Fire.NoiseA = v },
	},
	{
		ID: "noise_b", Label: "Decay noise", Min: 0, Max: 4, Format: "%.2f", Levels: fireOnly,
		Get: func(p *Params) float32 { return p.Fire.NoiseB },
		Set: func(p *Params, v float32) { p.Fire.NoiseB = v },
	},
	{
		ID: "focus_a", Label: "Focus scale", Min: 0, Max: 8, Format: "%.2f", Levels: fireOnly,
		Get: func(p *Params) float32 { return p.Fire.FocusA },
		Set: func(p *Params, v float32) { p.Fire.FocusA = v },
	},
	{
		ID: "focus_b", Label: "Focus exponent", Min: 0.1, Max: 6, Format: "%.2f", Levels: fireOnly,
		Get: func(p *Params) float32 { return p.Fire.FocusB },
		Set: func(p *Params, v float32) { p.Fire.FocusB = v },
	},
	{
		ID: "spread", Label: "Spread (rad)", Min: 0, Max: 3.14, Format: "%.2f", Levels: fireOnly,
		Get: func(p *Params) float32 { return p.Fire.Spread },
		Set: func(p *Params, v float32) { p.Fire.Spread = v },
	},
	{
		ID: "wood_depleted", Label: "Wood depleted", Min: 0, Max: 100, Format: "%.1f", Levels: fireOnly,
		Get: func(p *Params) float32 { return p.Fire.WoodDepleted },
		Set: func(p *Params, v float32) { p.Fire.WoodDepleted = v },
	},
	{
		ID: "drift_up", Label: "Upward drift", Min: 0, Max: 1, Format: "%.2f", Levels: fireOnly,
		Get: func(p *Params) float32 { return p.Fire.DriftUp },
		Set: func(p *Params, v float32) { p.Fire.DriftUp = v },
	},
	{
		ID: "emission", Label: "Emission", Min: 0, Max: 64, Format: "%.0f", Levels: doomOnly,
		Get: func(p *Params) float32 { return p.Doom.Emission },
		Set: func(p *Params, v float32) { p.Doom.Emission = v },
	},
	{
		ID: "wood_boost", Label: "Wood boost", Min: 0, Max: 64, Format: "%.0f", Levels: woodOnly,
		Get: func(p *Params) float32 { return p.Doom.WoodBoost },
		Set: func(p *Params, v float32) { p.Doom.WoodBoost = v },
	},
	{
		ID: "brush_radius", Label: "Brush radius", Min: 1, Max: 16, Format: "%.0f", Whole: true, Levels: sandOnly,
		Get: func(p *Params) float32 { return p.Sand.BrushRadius },
		Set: func(p *Params, v float32) { p.Sand.BrushRadius = v },
	},
	{
		ID: "density", Label: "Seed density", Min: 0, Max: 1, Format: "%.2f", Levels: lifeOnly,
		Get: func(p *Params) float32 { return p.Life.Density },
		Set: func(p *Params, v float32) { p.Life.Density = v },
	},
}

// Tunables returns every live-adjustable parameter in display order.
func Tunables() []Tunable { return tunables }

// TunablesFor returns the tunables that affect the given level.
func TunablesFor(level string) []Tunable {
	var out []Tunable
	for _, t := range tunables {
		if t.AppliesTo(level) {
			out = append(out, t)
		}
	}
	return out
}
