// Package viewer shows a running level in a raylib window: the accumulated
// visual buffer is uploaded to a texture each frame, the mouse drives the
// pointer emitter and torches, and the tuning panel edits parameters live.
package viewer

import (
	"context"
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kindling/config"
	"github.com/pthm-cable/kindling/sim"
	"github.com/pthm-cable/kindling/ui"
	"github.com/pthm-cable/kindling/visuals"
)

const title = "Kindling"

// Viewer draws one runner. It must be created after rl.InitWindow and used
// from the window's goroutine.
type Viewer struct {
	runner   *sim.Runner
	maxTicks int

	screenW, screenH int32
	panelW           int32
	gridW, gridH     int
	layout           layout

	texture    rl.Texture2D
	pixels     []color.RGBA
	quantities []float64

	panels    *ui.PanelRegistry
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	inspector *ui.Inspector
	tuning    *ui.TuningPanel

	paused   bool
	stepOnce bool
	hover    hover
}

// New creates a viewer for runner. maxTicks > 0 closes it after that many ticks.
func New(cfg *config.Config, runner *sim.Runner, maxTicks int) *Viewer {
	g := runner.Level().Grid()
	v := &Viewer{
		runner:    runner,
		maxTicks:  maxTicks,
		screenW:   int32(rl.GetScreenWidth()),
		screenH:   int32(rl.GetScreenHeight()),
		panelW:    int32(cfg.Screen.PanelWidth),
		gridW:     g.W,
		gridH:     g.H,
		panels:    ui.NewPanelRegistry(),
		hud:       ui.NewHUD(),
		perfPanel: ui.NewPerfPanel(10, 100),
		inspector: ui.NewInspector(10, 100, 260),
		tuning:    ui.NewTuningPanel(0, 0, int32(cfg.Screen.PanelWidth), 0),
	}

	img := rl.GenImageColor(g.W, g.H, rl.Blank)
	v.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	v.relayout()
	return v
}

// Run shows the window until it is closed, ctx is cancelled or maxTicks is
// reached.
func (v *Viewer) Run(ctx context.Context) error {
	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		v.Update()
		v.Draw()

		if v.maxTicks > 0 && v.runner.TickCount() >= uint64(v.maxTicks) {
			slog.Info("max ticks reached", "tick", v.runner.TickCount())
			break
		}
	}
	return nil
}

// Update handles input and advances the simulation by one tick.
func (v *Viewer) Update() {
	v.handleInput()

	if !v.paused || v.stepOnce {
		v.runner.Tick()
		v.stepOnce = false
	}
	v.runner.Perf().RecordFrame()

	lvl := v.runner.Level()
	v.pixels = visuals.ToRGBA(v.pixels, lvl.Visuals(), v.gridW, v.gridH)
	rl.UpdateTexture(v.texture, v.pixels)

	if v.panels.IsEnabled(ui.PanelInspector) {
		v.quantities = lvl.Quantities(v.quantities)
	}
}

// Draw renders the grid and every enabled panel.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	l := v.layout
	rl.DrawTexturePro(
		v.texture,
		rl.Rectangle{X: 0, Y: 0, Width: float32(v.gridW), Height: float32(v.gridH)},
		rl.Rectangle{X: l.x, Y: l.y, Width: float32(v.gridW) * l.scale, Height: float32(v.gridH) * l.scale},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)

	v.drawPanels()
	rl.EndDrawing()
}

// Unload frees GPU resources.
func (v *Viewer) Unload() {
	rl.UnloadTexture(v.texture)
}

func (v *Viewer) drawPanels() {
	p := v.runner.Params()
	lvl := v.runner.Level()

	y := int32(10)
	if v.panels.IsEnabled(ui.PanelHUD) {
		v.hud.Draw(ui.HUDData{
			Title:          title,
			Level:          lvl.Info().Name,
			Tick:           v.runner.TickCount(),
			Steps:          v.runner.Steps(),
			UpdatesPerTick: p.UpdatesPerTick,
			FPS:            rl.GetFPS(),
			Torches:        v.runner.Sources().Torches(),
			Paused:         v.paused,
		})
		y = 100
	}
	if v.panels.IsEnabled(ui.PanelPerf) {
		v.perfPanel.SetPosition(16, y+6)
		v.perfPanel.Draw(v.runner.Perf().Stats())
		y += 160
	}
	if v.panels.IsEnabled(ui.PanelInspector) && v.hover.ok && v.hover.index(v.gridW) < len(v.quantities) {
		i := v.hover.index(v.gridW)
		var c [visuals.Channels]float32
		copy(c[:], lvl.Visuals()[i*visuals.Channels:])
		v.inspector.SetPosition(10, y)
		v.inspector.Draw(ui.InspectorData{
			X:        v.hover.x,
			Y:        v.hover.y,
			Index:    i,
			Quantity: v.quantities[i],
			Colour:   c,
		})
	}
	if v.panels.IsEnabled(ui.PanelHelp) {
		v.hud.DrawControls(v.screenH, v.panels)
	}
	if v.panels.IsEnabled(ui.PanelTuning) {
		act := v.tuning.Draw(lvl.Info().ID, v.runner.Registry().All(), p, v.paused)
		v.apply(act)
	}
}

func (v *Viewer) apply(act ui.TuningAction) {
	if act.Params != nil {
		fps := v.runner.Params().TargetFPS
		if err := v.runner.SetParams(*act.Params); err != nil {
			slog.Warn("rejected parameters", "error", err)
		} else if act.Params.TargetFPS != fps {
			rl.SetTargetFPS(int32(act.Params.TargetFPS))
		}
	}
	if act.Pause {
		v.paused = !v.paused
	}
	if act.Clear {
		v.runner.Sources().Clear()
	}
	if act.Reset {
		v.reset()
	}
	if act.SwitchTo != "" {
		v.switchLevel(act.SwitchTo)
	}
}

func (v *Viewer) reset() {
	if err := v.runner.Reset(); err != nil {
		slog.Error("reset failed", "error", err)
	}
}

func (v *Viewer) switchLevel(id string) {
	if err := v.runner.SwitchLevel(id); err != nil {
		slog.Error("level switch failed", "level", id, "error", err)
	}
}
