//go:build cgo

package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// NineSlice describes a scalable 9-patch texture.
// The corner sizes are specified in source-texture pixels.
// Centre area is stretched; edges are stretched along one axis; corners are drawn verbatim.
type NineSlice struct {
	Tex    rl.Texture2D
	Left   int32
	Right  int32
	Top    int32
	Bottom int32
}

// DrawNineSlice renders ns into dest, tinted by tint.
// If the texture is not loaded (ID == 0) a flat filled rectangle is drawn instead.
func DrawNineSlice(ns NineSlice, dest rl.Rectangle, tint rl.Color) {
	if ns.Tex.ID == 0 {
		rl.DrawRectangleRec(dest, rl.Fade(tint, 0.35))
		return
	}

	sw := float32(ns.Tex.Width)
	sh := float32(ns.Tex.Height)
	l := float32(ns.Left)
	r := float32(ns.Right)
	t := float32(ns.Top)
	b := float32(ns.Bottom)

	dl, dr := l, r
	if dl+dr > dest.Width {
		dl = dest.Width / 2
		dr = dest.Width / 2
	}
	dt, db := t, b
	if dt+db > dest.Height {
		dt = dest.Height / 2
		db = dest.Height / 2
	}

	// Column and row cuts through source and destination. Walking the 3x3
	// grid keeps the corner cells verbatim and stretches the rest.
	srcX := [4]float32{0, l, sw - r, sw}
	srcY := [4]float32{0, t, sh - b, sh}
	dstX := [4]float32{dest.X, dest.X + dl, dest.X + dest.Width - dr, dest.X + dest.Width}
	dstY := [4]float32{dest.Y, dest.Y + dt, dest.Y + dest.Height - db, dest.Y + dest.Height}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := rl.NewRectangle(srcX[col], srcY[row], srcX[col+1]-srcX[col], srcY[row+1]-srcY[row])
			dst := rl.NewRectangle(dstX[col], dstY[row], dstX[col+1]-dstX[col], dstY[row+1]-dstY[row])
			if dst.Width <= 0 || dst.Height <= 0 || src.Width <= 0 || src.Height <= 0 {
				continue
			}
			rl.DrawTexturePro(ns.Tex, src, dst, rl.Vector2{}, 0, tint)
		}
	}
}
