package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kindling/levels"
)

// TuningAction is what the user asked for on the tuning panel this frame.
type TuningAction struct {
	Params   *levels.Params // non-nil when a slider moved
	Reset    bool
	SwitchTo string // level ID, empty = no switch
	Pause    bool   // toggle pause
	Clear    bool   // remove all torches
}

// TuningPanel renders the right-hand panel with level buttons and one
// slider per tunable of the running level.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewTuningPanel creates a new tuning panel.
func NewTuningPanel(x, y, width, height int32) *TuningPanel {
	return &TuningPanel{renderer: NewRenderer(), x: x, y: y, width: width, height: height}
}

// SetBounds updates the panel rectangle.
func (t *TuningPanel) SetBounds(x, y, width, height int32) {
	t.x, t.y, t.width, t.height = x, y, width, height
}

// Contains reports whether a screen point is over the panel.
func (t *TuningPanel) Contains(px, py float32) bool {
	return px >= float32(t.x) && px < float32(t.x+t.width) && py >= float32(t.y) && py < float32(t.y+t.height)
}

// Draw renders the panel and returns what the user changed.
func (t *TuningPanel) Draw(level string, infos []levels.Info, p *levels.Params, paused bool) TuningAction {
	r := t.renderer
	padding := r.Theme.Padding
	r.DrawPanel(t.x, t.y, t.width, t.height)

	var act TuningAction
	x := float32(t.x + padding)
	y := t.y + padding
	inner := float32(t.width - padding*2)

	rl.DrawText("Levels", int32(x), y, 16, rl.White)
	y += 22
	btnW := (inner - 10) / 2
	for i, info := range infos {
		bx := x + float32(i%2)*(btnW+10)
		by := float32(y) + float32(i/2)*30
		label := info.Name
		if info.ID == level {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: bx, Y: by, Width: btnW, Height: 24}, label) && info.ID != level {
			act.SwitchTo = info.ID
		}
	}
	y += int32((len(infos)+1)/2)*30 + 6

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: btnW, Height: 24}, "Reset") {
		act.Reset = true
	}
	if gui.Button(rl.Rectangle{X: x + btnW + 10, Y: float32(y), Width: btnW, Height: 24}, toggleText(paused, "Resume", "Pause")) {
		act.Pause = true
	}
	y += 30
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 24}, "Clear Torches") {
		act.Clear = true
	}
	y += 36

	y = r.DrawSectionHeader(int32(x), y, "Parameters")
	sliderW := inner - 60
	next := *p
	changed := false
	for _, tn := range levels.TunablesFor(level) {
		if y+40 > t.y+t.height {
			break
		}
		rl.DrawText(tn.Label, int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
		y += 14

		cur := tn.Get(&next)
		v := gui.SliderBar(
			rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: float32(r.Theme.SliderHeight)},
			"", "",
			cur, tn.Min, tn.Max,
		)
		rl.DrawText(fmt.Sprintf(tn.Format, cur), int32(x+sliderW+8), y+2, r.Theme.FontSize, r.Theme.ValueColor)
		if v != cur {
			next = tn.Apply(next, v)
			changed = true
		}
		y += r.Theme.SliderHeight + 8
	}
	if changed {
		act.Params = &next
	}
	return act
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
