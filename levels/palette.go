package levels

import "github.com/pthm-cable/kindling/visuals"

type rgba = [visuals.Channels]float32

// paletteColour returns the colour of the highest checkpoint at or below v.
// Below the first checkpoint the cell is transparent.
func paletteColour(palette []Checkpoint, v float32) rgba {
	var c rgba
	for _, cp := range palette {
		if v < cp.Threshold {
			break
		}
		c = cp.Colour
	}
	return c
}

// overlay composites top over bottom by top's alpha.
func overlay(top, bottom rgba) rgba {
	a := top[3]
	return rgba{
		top[0]*a + bottom[0]*(1-a),
		top[1]*a + bottom[1]*(1-a),
		top[2]*a + bottom[2]*(1-a),
		a + bottom[3]*(1-a),
	}
}

var woodColour = rgba{0.36, 0.22, 0.1, 1}
