package visuals

import "image/color"

// ToRGBA converts an accumulated buffer of w*h cells into 8-bit pixels in
// screen order: the top image row is grid row h-1, so row 0 sits at the
// bottom. dst is reused when it has room.
func ToRGBA(dst []color.RGBA, visuals []float32, w, h int) []color.RGBA {
	n := w * h
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]
	for y := range h {
		src := visuals[y*w*Channels : (y+1)*w*Channels]
		row := dst[(h-1-y)*w : (h-y)*w]
		for x := range row {
			c := src[x*Channels : (x+1)*Channels]
			row[x] = color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: channel(c[3])}
		}
	}
	return dst
}

func channel(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
