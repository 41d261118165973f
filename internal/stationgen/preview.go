package stationgen

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/appengine-ltd/stationfall/internal/station"
)

const (
	previewCellPx  = 18
	previewGapPx   = 24
	previewMargin  = 28
	previewLabelPx = 22
)

// WritePreview renders the layout's rooms side by side as a PNG, each room a
// grid tinted by its ambient temperature with spawn markers on top.
func WritePreview(path string, layout station.Layout) error {
	if len(layout.Rooms) == 0 {
		return fmt.Errorf("layout %s has no rooms", layout.ID)
	}

	width := previewMargin * 2
	maxH := 0
	for _, room := range layout.Rooms {
		width += room.Width * previewCellPx
		if room.Height > maxH {
			maxH = room.Height
		}
	}
	width += previewGapPx * (len(layout.Rooms) - 1)
	height := previewMargin*2 + previewLabelPx + maxH*previewCellPx

	dc := gg.NewContext(width, height)
	dc.SetRGB(0.07, 0.08, 0.10)
	dc.Clear()

	dc.SetRGB(0.75, 0.78, 0.80)
	dc.DrawString(fmt.Sprintf("%s  (%s)", layout.Name, layout.ID), previewMargin, previewMargin-8)

	x := float64(previewMargin)
	top := float64(previewMargin + previewLabelPx)
	for _, room := range layout.Rooms {
		drawPreviewRoom(dc, room, x, top)
		x += float64(room.Width*previewCellPx + previewGapPx)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return dc.SavePNG(path)
}

func drawPreviewRoom(dc *gg.Context, room station.RoomSpec, x, y float64) {
	base := previewTempColor(room.AmbientK)
	dim := color.RGBA{
		R: uint8(float64(base.R) * 0.93),
		G: uint8(float64(base.G) * 0.93),
		B: uint8(float64(base.B) * 0.93),
		A: 255,
	}

	for yy := 0; yy < room.Height; yy++ {
		for xx := 0; xx < room.Width; xx++ {
			clr := base
			if (xx+yy)%2 == 1 {
				clr = dim
			}
			dc.SetColor(clr)
			dc.DrawRectangle(x+float64(xx*previewCellPx), y+float64(yy*previewCellPx), previewCellPx, previewCellPx)
			dc.Fill()
		}
	}

	dc.SetRGBA(0.4, 0.75, 0.5, 0.9)
	dc.SetLineWidth(1.5)
	dc.DrawRectangle(x, y, float64(room.Width*previewCellPx), float64(room.Height*previewCellPx))
	dc.Stroke()

	dc.SetRGB(0.75, 0.78, 0.80)
	dc.DrawString(room.Name, x, y-6)

	if room.RadiationTag > 0.01 {
		dc.SetRGB(0.9, 0.75, 0.25)
		dc.DrawString("R", x+float64(room.Width*previewCellPx)-12, y+14)
	}

	for i, spawn := range room.Spawns {
		cx := x + (float64((i*7+3)%room.Width)+0.5)*previewCellPx
		cy := y + (float64((i*13+5)%room.Height)+0.5)*previewCellPx
		dc.SetRGBA(0, 0, 0, 0.6)
		dc.DrawCircle(cx, cy, previewCellPx*0.32)
		dc.Fill()
		dc.SetColor(previewSpawnColor(spawn.Kind))
		dc.DrawCircle(cx, cy, previewCellPx*0.24)
		dc.Fill()
	}
}

func previewSpawnColor(kind station.EntityKind) color.RGBA {
	switch kind {
	case station.KindFixture:
		return color.RGBA{R: 120, G: 200, B: 255, A: 255}
	case station.KindCreature:
		return color.RGBA{R: 230, G: 120, B: 120, A: 255}
	case station.KindVent:
		return color.RGBA{R: 200, G: 200, B: 140, A: 255}
	default:
		return color.RGBA{R: 180, G: 180, B: 180, A: 255}
	}
}

func previewTempColor(kelvin float64) color.RGBA {
	stops := []struct {
		k float64
		c color.RGBA
	}{
		{150, color.RGBA{R: 43, G: 68, B: 120, A: 255}},
		{240, color.RGBA{R: 58, G: 110, B: 146, A: 255}},
		{285, color.RGBA{R: 64, G: 122, B: 112, A: 255}},
		{320, color.RGBA{R: 142, G: 126, B: 70, A: 255}},
		{400, color.RGBA{R: 164, G: 98, B: 54, A: 255}},
		{600, color.RGBA{R: 176, G: 58, B: 48, A: 255}},
	}
	if kelvin <= stops[0].k {
		return stops[0].c
	}
	for i := 1; i < len(stops); i++ {
		if kelvin <= stops[i].k {
			t := (kelvin - stops[i-1].k) / (stops[i].k - stops[i-1].k)
			return color.RGBA{
				R: uint8(lerp(float64(stops[i-1].c.R), float64(stops[i].c.R), t)),
				G: uint8(lerp(float64(stops[i-1].c.G), float64(stops[i].c.G), t)),
				B: uint8(lerp(float64(stops[i-1].c.B), float64(stops[i].c.B), t)),
				A: 255,
			}
		}
	}
	return stops[len(stops)-1].c
}
