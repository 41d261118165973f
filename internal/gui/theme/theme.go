//go:build cgo

package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// TextDrawFunc renders text with caller-provided font handling.
type TextDrawFunc func(text string, x, y, fontSize int32, clr rl.Color)

// TextMeasureFunc reports text width in pixels for the active font.
type TextMeasureFunc func(text string, fontSize int32) int32

type textRenderer struct {
	draw    TextDrawFunc
	measure TextMeasureFunc
}

var renderer = textRenderer{
	draw: func(text string, x, y, fontSize int32, clr rl.Color) {
		rl.DrawText(text, x, y, fontSize, clr)
	},
	measure: func(text string, fontSize int32) int32 {
		return int32(rl.MeasureText(text, fontSize))
	},
}

// SetTextRenderer wires theme helpers to the GUI font system. Until it is
// called the raylib default font is used, which keeps the widgets usable
// from tests that never open a window.
func SetTextRenderer(draw TextDrawFunc, measure TextMeasureFunc) {
	if draw != nil {
		renderer.draw = draw
	}
	if measure != nil {
		renderer.measure = measure
	}
}

func drawText(text string, x, y, fontSize int32, clr rl.Color) {
	renderer.draw(text, x, y, fontSize, clr)
}

func measureText(text string, fontSize int32) int32 {
	return renderer.measure(text, fontSize)
}
