package ui

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kindling/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Level          string
	Tick           uint64
	Steps          uint64
	UpdatesPerTick int
	FPS            int32
	Torches        int
	Paused         bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner of the grid area.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title+" - "+data.Level, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Steps: %d | Updates/tick: %d", data.Tick, data.Steps, data.UpdatesPerTick),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("FPS: %d | Torches: %d", data.FPS, data.Torches),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, panels *PanelRegistry) {
	y := screenHeight - 25
	rl.DrawText("LMB: emit | RMB: torch | Space: pause | R: reset | 1-5: level | .: step", 10, y, 14, rl.Gray)
	y -= 18
	x := int32(10)
	for _, desc := range panels.All() {
		color := rl.DarkGray
		if panels.IsEnabled(desc.ID) {
			color = rl.Gray
		}
		label := fmt.Sprintf("[%s] %s", desc.KeyLabel, desc.Name)
		rl.DrawText(label, x, y, 14, color)
		x += rl.MeasureText(label, 14) + 12
	}
}

// PerfPanel renders the per-phase timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, slowest phase first.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y
	r := p.renderer
	r.DrawPanel(x-6, y-6, 280, int32(len(stats.PhaseAvg))*14+64)

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Tick: %s (%.0f steps/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.StepsPerSecond), x, y, 14, rl.Yellow)
	y += 18

	names := make([]string, 0, len(stats.PhaseAvg))
	for name := range stats.PhaseAvg {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Compare(stats.PhasePct[b], stats.PhasePct[a])
	})

	for _, name := range names {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
