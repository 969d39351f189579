package viewer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kindling/ui"
)

// layout places the grid inside the area left of the tuning panel.
type layout struct {
	x, y  float32 // top-left corner on screen
	scale float32 // screen pixels per cell
}

// hover is the cell under the mouse, in grid coordinates (row 0 at the bottom).
type hover struct {
	x, y int
	ok   bool
}

func (h hover) index(w int) int { return h.y*w + h.x }

func (v *Viewer) relayout() {
	areaW := float32(v.screenW)
	if v.panels.IsEnabled(ui.PanelTuning) {
		areaW -= float32(v.panelW)
	}
	areaH := float32(v.screenH)
	scale := min(areaW/float32(v.gridW), areaH/float32(v.gridH))
	v.layout = layout{
		x:     (areaW - float32(v.gridW)*scale) / 2,
		y:     (areaH - float32(v.gridH)*scale) / 2,
		scale: scale,
	}
	v.tuning.SetBounds(v.screenW-v.panelW, 0, v.panelW, v.screenH)
}

// cellAt maps a screen point to a grid cell. The image is drawn with row 0
// at the bottom, so screen rows are flipped.
func (l layout) cellAt(sx, sy float32, w, h int) hover {
	if l.scale <= 0 {
		return hover{}
	}
	cx := int(math.Floor(float64((sx - l.x) / l.scale)))
	cy := h - 1 - int(math.Floor(float64((sy-l.y)/l.scale)))
	return hover{x: cx, y: cy, ok: cx >= 0 && cx < w && cy >= 0 && cy < h}
}

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && v.paused {
		v.stepOnce = true
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.reset()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		v.runner.Sources().Clear()
	}

	ids := v.runner.Registry().IDs()
	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive} {
		if i < len(ids) && rl.IsKeyPressed(key) && ids[i] != v.runner.Level().Info().ID {
			v.switchLevel(ids[i])
		}
	}

	tuningShown := v.panels.IsEnabled(ui.PanelTuning)
	v.panels.HandleKeys()
	if v.panels.IsEnabled(ui.PanelTuning) != tuningShown {
		v.relayout()
	}

	v.handleMouse()
}

// handleMouse drives the pointer emitter with the left button and toggles
// torches with the right one.
func (v *Viewer) handleMouse() {
	mouse := rl.GetMousePosition()
	overPanel := v.panels.IsEnabled(ui.PanelTuning) && v.tuning.Contains(mouse.X, mouse.Y)

	v.hover = v.layout.cellAt(mouse.X, mouse.Y, v.gridW, v.gridH)
	if overPanel {
		v.hover.ok = false
	}
	x, y := float32(v.hover.x), float32(v.hover.y)

	down := v.hover.ok && rl.IsMouseButtonDown(rl.MouseButtonLeft)
	v.runner.SetPointer(x, y, down)

	if v.hover.ok && rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		v.runner.ToggleTorch(x, y)
	}
}

// handleResize checks for window resize and recomputes the layout.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == v.screenW && h == v.screenH {
		return
	}
	v.screenW, v.screenH = w, h
	v.relayout()
}
