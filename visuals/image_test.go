package visuals

import (
	"image/color"
	"testing"
)

func TestToRGBAFlipsRows(t *testing.T) {
	// 2x2 grid: row 0 red, row 1 half-grey.
	buf := []float32{
		1, 0, 0, 1, 1, 0, 0, 1,
		0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
	}
	px := ToRGBA(nil, buf, 2, 2)

	red := color.RGBA{R: 255, A: 255}
	grey := color.RGBA{R: 128, G: 128, B: 128, A: 128}
	want := []color.RGBA{grey, grey, red, red}
	for i := range want {
		if px[i] != want[i] {
			t.Errorf("pixel %d = %v, want %v", i, px[i], want[i])
		}
	}
}

func TestToRGBAClampsAndReuses(t *testing.T) {
	buf := []float32{2, -1, 0, 1}
	dst := make([]color.RGBA, 0, 8)
	px := ToRGBA(dst, buf, 1, 1)
	if &px[0] != &dst[:1][0] {
		t.Error("destination was not reused")
	}
	if px[0] != (color.RGBA{R: 255, G: 0, B: 0, A: 255}) {
		t.Errorf("pixel = %v", px[0])
	}
}
