//go:build cgo

package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/stationfall/internal/station"
)

type squareGridGeometry struct {
	OriginX  float32
	OriginY  float32
	CellSize float32
	Cols     int
	Rows     int
	DrawRect rl.Rectangle
}

func computeSquareGridGeometry(area rl.Rectangle, cols, rows int) (squareGridGeometry, bool) {
	if cols <= 0 || rows <= 0 || area.Width <= 1 || area.Height <= 1 {
		return squareGridGeometry{}, false
	}
	cellSize := float32(math.Min(float64(area.Width/float32(cols)), float64(area.Height/float32(rows))))
	if cellSize < 1 {
		cellSize = 1
	}
	drawWidth := cellSize * float32(cols)
	drawHeight := cellSize * float32(rows)
	originX := area.X + (area.Width-drawWidth)/2
	originY := area.Y + (area.Height-drawHeight)/2
	return squareGridGeometry{
		OriginX:  originX,
		OriginY:  originY,
		CellSize: cellSize,
		Cols:     cols,
		Rows:     rows,
		DrawRect: rl.NewRectangle(originX, originY, drawWidth, drawHeight),
	}, true
}

// tempColor maps a kelvin reading onto the chart's thermal ramp.
func tempColor(kelvin float64) rl.Color {
	stops := []struct {
		k float64
		c rl.Color
	}{
		{150, rl.NewColor(43, 68, 120, 255)},
		{240, rl.NewColor(58, 110, 146, 255)},
		{285, rl.NewColor(64, 122, 112, 255)},
		{320, rl.NewColor(142, 126, 70, 255)},
		{400, rl.NewColor(164, 98, 54, 255)},
		{600, rl.NewColor(176, 58, 48, 255)},
	}
	if kelvin <= stops[0].k {
		return stops[0].c
	}
	for i := 1; i < len(stops); i++ {
		if kelvin <= stops[i].k {
			t := (kelvin - stops[i-1].k) / (stops[i].k - stops[i-1].k)
			return lerpColor(stops[i-1].c, stops[i].c, t)
		}
	}
	return stops[len(stops)-1].c
}

func lerpColor(a, b rl.Color, t float64) rl.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return rl.NewColor(
		uint8(float64(a.R)+(float64(b.R)-float64(a.R))*t),
		uint8(float64(a.G)+(float64(b.G)-float64(a.G))*t),
		uint8(float64(a.B)+(float64(b.B)-float64(a.B))*t),
		255,
	)
}

func dimCell(clr rl.Color) rl.Color {
	return rl.NewColor(
		uint8(float64(clr.R)*0.93),
		uint8(float64(clr.G)*0.93),
		uint8(float64(clr.B)*0.93),
		clr.A,
	)
}

// entityCell gives an object a stable cell inside its room so markers never
// wander between frames.
func entityCell(e *station.Entity, room station.Room) (int, int) {
	if room.Width <= 0 || room.Height <= 0 {
		return 0, 0
	}
	return (e.ID*7 + 3) % room.Width, (e.ID*13 + 5) % room.Height
}

func (ui *gameUI) updateStationMap() {
	if ui.sim == nil {
		ui.screen = screenRun
		return
	}
	if ShiftPressedKey(rl.KeyM) || rl.IsKeyPressed(rl.KeyEscape) {
		ui.screen = screenRun
		return
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		ui.cycleRoomFocus(-1)
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		ui.cycleRoomFocus(1)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		dir := 1
		if shiftDown() {
			dir = -1
		}
		ui.cycleSelection(dir)
	}
}

func (ui *gameUI) drawStationMap(inset rl.Rectangle) {
	if ui.sim == nil {
		return
	}
	panel := rl.NewRectangle(inset.X+spaceS, inset.Y+spaceS, inset.Width-2*spaceS, inset.Height-2*spaceS)
	DrawPanel(panel, "Deck Chart", true)

	legendW := float32(210)
	area := rl.NewRectangle(panel.X+spaceM, panel.Y+92, panel.Width-legendW-3*spaceM, panel.Height-150)
	if area.Width < 40 || area.Height < 40 {
		return
	}

	rooms := ui.sim.Rooms
	if len(rooms) == 0 {
		drawText("No deck data.", int32(area.X), int32(area.Y), typeScale.Body, colorWarn)
		return
	}

	gap := float32(spaceS)
	colW := (area.Width - gap*float32(len(rooms)-1)) / float32(len(rooms))
	mouse := rl.GetMousePosition()
	hoverName := ""

	for i, room := range rooms {
		cellArea := rl.NewRectangle(area.X+float32(i)*(colW+gap), area.Y+26, colW, area.Height-26)

		labelColor := colorDim
		if i == ui.roomFocus {
			labelColor = colorAccent
		}
		drawText(safeText(room.Name), int32(cellArea.X), int32(area.Y), typeScale.Small, labelColor)

		geo, ok := computeSquareGridGeometry(cellArea, room.Width, room.Height)
		if !ok {
			continue
		}

		base := tempColor(room.AmbientK)
		for yy := 0; yy < room.Height; yy++ {
			for xx := 0; xx < room.Width; xx++ {
				clr := base
				if (xx+yy)%2 == 1 {
					clr = dimCell(clr)
				}
				x0 := int32(geo.OriginX + float32(xx)*geo.CellSize)
				y0 := int32(geo.OriginY + float32(yy)*geo.CellSize)
				x1 := int32(geo.OriginX + float32(xx+1)*geo.CellSize)
				y1 := int32(geo.OriginY + float32(yy+1)*geo.CellSize)
				w := max(1, int(x1-x0))
				h := max(1, int(y1-y0))
				rl.DrawRectangle(x0, y0, int32(w), int32(h), clr)
			}
		}

		border := colorBorder
		if i == ui.roomFocus {
			border = colorAccent
		}
		rl.DrawRectangleLinesEx(geo.DrawRect, 1.4, rl.Fade(border, 0.9))

		if ui.sim.Config.RadiationEnabled && room.Radiation > 0.01 {
			drawText("R", int32(geo.DrawRect.X+geo.DrawRect.Width)-14, int32(geo.DrawRect.Y)+4, typeScale.Small, colorWarn)
		}

		if rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.CheckCollisionPointRec(mouse, geo.DrawRect) {
			ui.roomFocus = i
		}

		for _, e := range ui.roomEntities(i) {
			cx, cy := entityCell(e, room)
			px := geo.OriginX + (float32(cx)+0.5)*geo.CellSize
			py := geo.OriginY + (float32(cy)+0.5)*geo.CellSize
			r := float32(3)
			if geo.CellSize > 8 {
				r = geo.CellSize * 0.3
			}
			rl.DrawCircle(int32(px), int32(py), r+1.5, rl.Fade(colorBG, 0.85))
			rl.DrawCircle(int32(px), int32(py), r, tempColor(e.TempK))
			if e == ui.selected {
				rl.DrawCircleLines(int32(px), int32(py), r+3, colorText)
			}
			hit := rl.NewRectangle(px-r-4, py-r-4, 2*(r+4), 2*(r+4))
			if rl.CheckCollisionPointRec(mouse, hit) {
				hoverName = e.Name
				if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
					ui.selectEntity(e)
				}
			}
		}
	}

	ui.drawMapLegend(panel, legendW)

	footer := formatStationClock(ui.sim.Clock)
	if ui.sim.Clock.Paused {
		footer += "  HOLD"
	}
	drawText(footer, int32(panel.X)+spaceM, int32(panel.Y+panel.Height)-52, typeScale.Small, colorDim)
	DrawHintText("Shift+M or Esc return   Left/Right focus   TAB select", int32(panel.X)+spaceM, int32(panel.Y+panel.Height)-30)

	if hoverName != "" {
		ui.drawTooltip(mouse, hoverName)
	}
}

func (ui *gameUI) drawMapLegend(panel rl.Rectangle, legendW float32) {
	legendX := int32(panel.X + panel.Width - legendW)
	legendY := int32(panel.Y) + 92
	drawText("Legend", legendX, legendY, typeScale.Body, colorAccent)
	legendY += 28

	rows := []struct {
		Label string
		K     float64
	}{
		{"Cryogenic", 140},
		{"Cold", 240},
		{"Temperate", 285},
		{"Warm", 320},
		{"Hot", 400},
		{"Critical", 650},
	}
	for _, row := range rows {
		rl.DrawRectangle(legendX, legendY+2, 14, 14, tempColor(row.K))
		rl.DrawRectangleLines(legendX, legendY+2, 14, 14, rl.Fade(colorBorder, 0.8))
		drawText(row.Label, legendX+22, legendY, typeScale.Small, colorText)
		legendY += 22
	}

	legendY += 10
	drawText("Markers show object temperature.", legendX, legendY, typeScale.Small, colorDim)
	legendY += 20
	if ui.sim.Config.RadiationEnabled {
		drawText("R marks an irradiated room.", legendX, legendY, typeScale.Small, colorWarn)
		legendY += 20
	}
	drawText(fmt.Sprintf("%d rooms aboard", len(ui.sim.Rooms)), legendX, legendY, typeScale.Small, colorDim)
}
