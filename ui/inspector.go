package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// InspectorData holds the hovered cell's state.
type InspectorData struct {
	X, Y     int
	Index    int
	Quantity float64
	Colour   [4]float32 // accumulated visual, RGBA in [0, 1]
}

// Inspector renders the hovered cell panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given cell.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	height := r.Theme.LineHeight*5 + padding*2
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x := ins.x + padding
	y := r.DrawSectionHeader(x, ins.y+padding, "Cell")
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("(%d, %d)  #%d", data.X, data.Y, data.Index))
	y = r.DrawLabelValue(x, y, "Quantity", fmt.Sprintf("%.3f", data.Quantity))
	y = r.DrawColorSwatch(x, y, "Visual", toColor(data.Colour))
	y = r.DrawLabelValue(x, y, "RGBA", fmt.Sprintf("%.2f %.2f %.2f %.2f", data.Colour[0], data.Colour[1], data.Colour[2], data.Colour[3]))
	return y
}

func toColor(c [4]float32) rl.Color {
	ch := func(v float32) uint8 { return uint8(min(max(v, 0), 1)*255 + 0.5) }
	return rl.Color{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}
