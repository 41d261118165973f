package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/appengine-ltd/stationfall/internal/station"
)

// renderStationMapANSI draws the deck chart offscreen and converts it to
// half-block cells, two pixel rows per terminal row. Terminals too small for
// a usable image get the plain text chart instead.
func renderStationMapANSI(sim *station.Sim, roomFocus int, selected *station.Entity, widthChars, heightRows int) string {
	if sim == nil || len(sim.Rooms) == 0 {
		return dimGreen.Render("No deck data.") + "\n"
	}
	if widthChars < 24 || heightRows < 8 {
		return stationASCIIChart(sim, roomFocus)
	}

	widthChars = clampInt(widthChars, 24, 160)
	heightRows = clampInt(heightRows, 8, 48)

	w := widthChars
	h := heightRows * 2
	dc := gg.NewContext(w, h)

	// Transparent background so the terminal's own background shows through.
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()

	rooms := sim.Rooms
	gap := 2.0
	colW := (float64(w) - gap*float64(len(rooms)-1)) / float64(len(rooms))

	for i, room := range rooms {
		areaX := float64(i) * (colW + gap)
		geo, ok := fitRoomCells(areaX, 0, colW, float64(h), room.Width, room.Height)
		if !ok {
			continue
		}

		base := roomTempColor(room.AmbientK)
		dim := dimRGBA(base)
		for yy := 0; yy < room.Height; yy++ {
			for xx := 0; xx < room.Width; xx++ {
				clr := base
				if (xx+yy)%2 == 1 {
					clr = dim
				}
				dc.SetColor(clr)
				dc.DrawRectangle(geo.originX+float64(xx)*geo.cellSize, geo.originY+float64(yy)*geo.cellSize, geo.cellSize, geo.cellSize)
				dc.Fill()
			}
		}

		outline := color.RGBA{R: 0, G: 150, B: 70, A: 200}
		if i == roomFocus {
			outline = color.RGBA{R: 120, G: 255, B: 170, A: 255}
		}
		dc.SetColor(outline)
		dc.SetLineWidth(1)
		dc.DrawRectangle(geo.originX, geo.originY, geo.width, geo.height)
		dc.Stroke()

		if sim.Config.RadiationEnabled && room.Radiation > 0.01 {
			dc.SetColor(color.RGBA{R: 230, G: 190, B: 60, A: 255})
			dc.DrawRectangle(geo.originX+geo.width-3, geo.originY+1, 2, 2)
			dc.Fill()
		}

		for _, e := range sim.Entities {
			if e.Room != i {
				continue
			}
			cx, cy := roomCellFor(e, room)
			px := geo.originX + (float64(cx)+0.5)*geo.cellSize
			py := geo.originY + (float64(cy)+0.5)*geo.cellSize
			r := geo.cellSize * 0.3
			if r < 1.2 {
				r = 1.2
			}
			dc.SetRGBA(0, 0, 0, 0.85)
			dc.DrawCircle(px, py, r+1)
			dc.Fill()
			dc.SetColor(roomTempColor(e.TempK))
			dc.DrawCircle(px, py, r)
			dc.Fill()
			if e == selected {
				dc.SetRGBA(1, 1, 1, 0.95)
				dc.SetLineWidth(1)
				dc.DrawCircle(px, py, r+2)
				dc.Stroke()
			}
		}
	}

	out := rgbaImageToANSIHalfBlocks(dc.Image())
	out += roomLegendLine(sim, roomFocus, widthChars)
	return out
}

// stationASCIIChart is the fallback for terminals too cramped for pixels.
func stationASCIIChart(sim *station.Sim, roomFocus int) string {
	var out strings.Builder
	for i, room := range sim.Rooms {
		marker := "  "
		if i == roomFocus {
			marker = "> "
		}
		count := 0
		for _, e := range sim.Entities {
			if e.Room == i {
				count++
			}
		}
		line := fmt.Sprintf("%s%-18s %4.0f K  %d objects", marker, room.Name, room.AmbientK, count)
		if i == roomFocus {
			out.WriteString(brightGreen.Render(line))
		} else {
			out.WriteString(green.Render(line))
		}
		out.WriteByte('\n')
	}
	return out.String()
}

func roomLegendLine(sim *station.Sim, roomFocus int, widthChars int) string {
	parts := make([]string, 0, len(sim.Rooms))
	for i, room := range sim.Rooms {
		label := room.Name
		if i == roomFocus {
			parts = append(parts, brightGreen.Render("["+label+"]"))
			continue
		}
		parts = append(parts, dimGreen.Render(label))
	}
	return truncateLine(strings.Join(parts, "  "), widthChars*2) + "\n"
}

type roomCellGeometry struct {
	originX  float64
	originY  float64
	cellSize float64
	width    float64
	height   float64
}

// fitRoomCells centers a square cell grid for one room inside its column.
func fitRoomCells(x, y, w, h float64, cols, rows int) (roomCellGeometry, bool) {
	if cols <= 0 || rows <= 0 || w <= 1 || h <= 1 {
		return roomCellGeometry{}, false
	}
	cellSize := math.Min(w/float64(cols), h/float64(rows))
	if cellSize < 1 {
		cellSize = 1
	}
	drawW := cellSize * float64(cols)
	drawH := cellSize * float64(rows)
	return roomCellGeometry{
		originX:  x + (w-drawW)/2,
		originY:  y + (h-drawH)/2,
		cellSize: cellSize,
		width:    drawW,
		height:   drawH,
	}, true
}

// roomCellFor gives an object a stable cell inside its room so markers never
// wander between frames.
func roomCellFor(e *station.Entity, room station.Room) (int, int) {
	if room.Width <= 0 || room.Height <= 0 {
		return 0, 0
	}
	return (e.ID*7 + 3) % room.Width, (e.ID*13 + 5) % room.Height
}

// roomTempColor maps a kelvin reading onto the chart's thermal ramp.
func roomTempColor(kelvin float64) color.RGBA {
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
			return lerpRGBA(stops[i-1].c, stops[i].c, t)
		}
	}
	return stops[len(stops)-1].c
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clampFloat(t, 0, 1)
	return color.RGBA{
		R: uint8(lerp(float64(a.R), float64(b.R), t)),
		G: uint8(lerp(float64(a.G), float64(b.G), t)),
		B: uint8(lerp(float64(a.B), float64(b.B), t)),
		A: 255,
	}
}

func dimRGBA(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.93),
		G: uint8(float64(c.G) * 0.93),
		B: uint8(float64(c.B) * 0.93),
		A: c.A,
	}
}

func rgbaImageToANSIHalfBlocks(img image.Image) string {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return ""
	}

	var out strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			tr, tg, tb, ta := rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			br, bg, bb, ba := uint8(0), uint8(0), uint8(0), uint8(0)
			if y+1 < height {
				br, bg, bb, ba = rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y+1))
			}

			if ta < 8 && ba < 8 {
				out.WriteByte(' ')
				continue
			}

			out.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb))
		}
		out.WriteString("\x1b[0m\n")
	}
	return out.String()
}

func rgba8(c color.Color) (r, g, b, a uint8) {
	r16, g16, b16, a16 := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), uint8(a16 >> 8)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampFloat(v, minV, maxV float64) float64 {
	return math.Min(maxV, math.Max(minV, v))
}
