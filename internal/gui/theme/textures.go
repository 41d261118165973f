//go:build cgo

package theme

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Skin holds the loaded nine-slice texture assets.
// All fields are safe to read after InitSkin(); zero-value fields produce
// a safe flat-colour fallback in DrawNineSlice.
var Skin skinAssets

type skinAssets struct {
	Frame  NineSlice // hull frame around the whole window
	Panel  NineSlice // interior panel plate
	Button NineSlice // button face
	Input  NineSlice // console input slot

	loaded bool
}

// Sizing constants for the embedded placeholder textures.
// Real art can use any values here, just update these to match the new slice guides.
const (
	frameSlice  = int32(12)
	panelSlice  = int32(8)
	buttonSlice = int32(8)
	inputSlice  = int32(6)
)

// InitSkin loads ui-skin textures. Call once after rl.InitWindow().
// If a texture file is missing the slot stays as zero-value (safe fallback).
func InitSkin() {
	if Skin.loaded {
		return
	}
	Skin.loaded = true
	Skin.Frame = loadNineSlice("assets/ui/hull_frame.png", frameSlice, frameSlice, frameSlice, frameSlice)
	Skin.Panel = loadNineSlice("assets/ui/panel_plate.png", panelSlice, panelSlice, panelSlice, panelSlice)
	Skin.Button = loadNineSlice("assets/ui/button_plate.png", buttonSlice, buttonSlice, buttonSlice, buttonSlice)
	Skin.Input = loadNineSlice("assets/ui/input_slot.png", inputSlice, inputSlice, inputSlice, inputSlice)
}

// UnloadSkin releases GPU texture memory. Call before rl.CloseWindow().
func UnloadSkin() {
	unloadTex(&Skin.Frame.Tex)
	unloadTex(&Skin.Panel.Tex)
	unloadTex(&Skin.Button.Tex)
	unloadTex(&Skin.Input.Tex)
	Skin.loaded = false
}

// DrawFrame paints the hull border around the window and returns the inner
// inset rectangle that screen content should stay within. Without a loaded
// frame texture it falls back to plain border lines.
func DrawFrame(screenW, screenH int32) rl.Rectangle {
	full := rl.NewRectangle(0, 0, float32(screenW), float32(screenH))
	if Skin.Frame.Tex.ID != 0 {
		DrawNineSlice(Skin.Frame, full, rl.White)
	} else {
		rl.DrawRectangleLinesEx(full, float32(frameSlice), AccentHull)
		rl.DrawRectangleLinesEx(rl.NewRectangle(full.X+2, full.Y+2, full.Width-4, full.Height-4), 1.0, rl.Fade(Border, 0.8))
	}
	return FrameInset(screenW, screenH)
}

// FrameInset returns the inner safe area rectangle after the hull frame border.
func FrameInset(screenW, screenH int32) rl.Rectangle {
	m := float32(frameSlice)
	return rl.NewRectangle(m, m, float32(screenW)-m*2, float32(screenH)-m*2)
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func loadNineSlice(path string, left, right, top, bottom int32) NineSlice {
	if _, err := os.Stat(path); err != nil {
		return NineSlice{Left: left, Right: right, Top: top, Bottom: bottom}
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return NineSlice{Left: left, Right: right, Top: top, Bottom: bottom}
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return NineSlice{Tex: tex, Left: left, Right: right, Top: top, Bottom: bottom}
}

func unloadTex(t *rl.Texture2D) {
	if t != nil && t.ID != 0 {
		rl.UnloadTexture(*t)
		*t = rl.Texture2D{}
	}
}
