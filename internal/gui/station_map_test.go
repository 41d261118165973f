//go:build cgo

package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/stationfall/internal/station"
)

func TestComputeSquareGridGeometryCentersCells(t *testing.T) {
	area := rl.NewRectangle(10, 20, 100, 60)

	geo, ok := computeSquareGridGeometry(area, 4, 3)
	if !ok {
		t.Fatalf("expected geometry for a sane area")
	}
	if geo.CellSize != 20 {
		t.Fatalf("expected square cells sized by the tight axis, got %.2f", geo.CellSize)
	}
	if geo.OriginX != 20 || geo.OriginY != 20 {
		t.Fatalf("expected the grid centered at (20,20), got (%.2f,%.2f)", geo.OriginX, geo.OriginY)
	}
	if geo.DrawRect.Width != 80 || geo.DrawRect.Height != 60 {
		t.Fatalf("unexpected draw rect %+v", geo.DrawRect)
	}
}

func TestComputeSquareGridGeometryRejectsDegenerateInput(t *testing.T) {
	if _, ok := computeSquareGridGeometry(rl.NewRectangle(0, 0, 0, 50), 4, 3); ok {
		t.Fatalf("expected no geometry for a zero-width area")
	}
	if _, ok := computeSquareGridGeometry(rl.NewRectangle(0, 0, 100, 50), 0, 3); ok {
		t.Fatalf("expected no geometry for zero columns")
	}
	if _, ok := computeSquareGridGeometry(rl.NewRectangle(0, 0, 100, 50), 4, -1); ok {
		t.Fatalf("expected no geometry for negative rows")
	}
}

func TestComputeSquareGridGeometryClampsTinyCells(t *testing.T) {
	geo, ok := computeSquareGridGeometry(rl.NewRectangle(0, 0, 3, 3), 10, 10)
	if !ok {
		t.Fatalf("expected geometry even when the area is cramped")
	}
	if geo.CellSize != 1 {
		t.Fatalf("expected cell size clamped to 1, got %.2f", geo.CellSize)
	}
}

func TestTempColorClampsAtRampEnds(t *testing.T) {
	if tempColor(40) != tempColor(150) {
		t.Fatalf("expected readings below the ramp pinned to the coldest stop")
	}
	if tempColor(900) != tempColor(600) {
		t.Fatalf("expected readings above the ramp pinned to the hottest stop")
	}
}

func TestTempColorHitsStopsExactly(t *testing.T) {
	got := tempColor(285)
	want := rl.NewColor(64, 122, 112, 255)
	if got != want {
		t.Fatalf("expected temperate stop color %+v, got %+v", want, got)
	}
}

func TestTempColorBlendsBetweenStops(t *testing.T) {
	// Midway between the 240 K and 285 K stops.
	got := tempColor(262.5)
	if got.G <= 110 || got.G >= 122 {
		t.Fatalf("expected green channel between the stops, got %d", got.G)
	}
	if got.B <= 112 || got.B >= 146 {
		t.Fatalf("expected blue channel between the stops, got %d", got.B)
	}
	if cold, warm := tempColor(200), tempColor(400); warm.R <= cold.R {
		t.Fatalf("expected warmer readings to read redder, got %d vs %d", warm.R, cold.R)
	}
}

func TestEntityCellStaysInsideRoom(t *testing.T) {
	rooms := []station.Room{
		{Width: 14, Height: 8},
		{Width: 8, Height: 6},
		{Width: 2, Height: 2},
	}
	for _, room := range rooms {
		for id := 1; id <= 50; id++ {
			e := &station.Entity{ID: id}
			x, y := entityCell(e, room)
			if x < 0 || x >= room.Width || y < 0 || y >= room.Height {
				t.Fatalf("entity %d landed outside %dx%d room at (%d,%d)", id, room.Width, room.Height, x, y)
			}
		}
	}
}

func TestEntityCellStablePerEntity(t *testing.T) {
	room := station.Room{Width: 14, Height: 8}
	e := &station.Entity{ID: 9}

	x1, y1 := entityCell(e, room)
	x2, y2 := entityCell(e, room)
	if x1 != x2 || y1 != y2 {
		t.Fatalf("expected a stable cell, got (%d,%d) then (%d,%d)", x1, y1, x2, y2)
	}
}

func TestEntityCellDegenerateRoom(t *testing.T) {
	x, y := entityCell(&station.Entity{ID: 3}, station.Room{})
	if x != 0 || y != 0 {
		t.Fatalf("expected origin cell for a degenerate room, got (%d,%d)", x, y)
	}
}
