// Package ui draws the viewer's panels: HUD, performance breakdown, cell
// inspector and the tuning panel. Panels are listed in a registry and
// toggled by key, and the tuning panel builds its sliders from the level
// tunables table instead of hard-coding them.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillHot     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	SliderHeight   int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 18, B: 16, A: 240},
		PanelBorder:    rl.Color{R: 80, G: 64, B: 48, A: 255},
		SectionHeader:  rl.Color{R: 255, G: 190, B: 90, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 200, G: 120, B: 60, A: 255},
		BarFillHot:     rl.Color{R: 230, G: 70, B: 40, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     110,
		BarHeight:      12,
		SliderHeight:   16,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
