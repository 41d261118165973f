//go:build cgo

package gui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appengine-ltd/stationfall/internal/station"
)

func TestLoadLayoutLibraryMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.json")

	layouts, legacy, err := loadLayoutLibrary(path)
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if legacy || layouts != nil {
		t.Fatalf("expected empty library, got legacy=%v layouts=%+v", legacy, layouts)
	}
}

func TestLayoutLibraryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.json")
	in := []station.Layout{
		{
			ID:   "aft_hold",
			Name: "Aft Hold",
			Rooms: []station.RoomSpec{
				{Name: "Hold", AmbientK: 288.15, Width: 10, Height: 7, Spawns: []station.SpawnSpec{
					{Kind: station.KindDebris, Name: "Cargo Crate", Element: station.ElementIron, Mass: 120},
				}},
			},
		},
		{
			ID:    "bow_locker",
			Name:  "Bow Locker",
			Rooms: []station.RoomSpec{{Name: "Locker", AmbientK: 280.15, Width: 6, Height: 5}},
		},
	}

	if err := saveLayoutLibrary(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), `"format_version": 2`) {
		t.Fatalf("expected versioned record format, got:\n%s", data)
	}

	out, legacy, err := loadLayoutLibrary(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if legacy {
		t.Fatalf("freshly saved file should not read as legacy")
	}
	if len(out) != 2 || out[0].Name != "Aft Hold" || out[1].Name != "Bow Locker" {
		t.Fatalf("unexpected layouts %+v", out)
	}
	if len(out[0].Rooms[0].Spawns) != 1 || out[0].Rooms[0].Spawns[0].Name != "Cargo Crate" {
		t.Fatalf("spawns lost in round trip: %+v", out[0].Rooms[0].Spawns)
	}
}

func TestLoadLayoutLibraryLegacyFlatFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.json")
	legacyJSON := `{"layouts":[{"id":"old_deck","name":"Old Deck","rooms":[{"name":"Bay","ambient_k":290,"width":9,"height":6}]}]}`
	if err := os.WriteFile(path, []byte(legacyJSON), 0o600); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	layouts, legacy, err := loadLayoutLibrary(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !legacy {
		t.Fatalf("expected the flat list flagged as legacy")
	}
	if len(layouts) != 1 || layouts[0].ID != "old_deck" || layouts[0].Rooms[0].Name != "Bay" {
		t.Fatalf("unexpected layouts %+v", layouts)
	}
}

func TestLoadLayoutLibraryRegeneratesReservedIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.json")
	in := []station.Layout{
		{ID: station.LayoutIntakeBayID, Name: "My Intake", Rooms: []station.RoomSpec{{Name: "Bay", AmbientK: 290, Width: 6, Height: 5}}},
		{ID: "", Name: "Nameless Deck", Rooms: []station.RoomSpec{{Name: "Bay", AmbientK: 290, Width: 6, Height: 5}}},
	}
	if err := saveLayoutLibrary(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	layouts, _, err := loadLayoutLibrary(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, layout := range layouts {
		if layout.ID == "" {
			t.Fatalf("expected every layout to gain an id, got %+v", layout)
		}
		if reservedLayoutID(layout.ID) {
			t.Fatalf("layout %q kept the reserved id %q", layout.Name, layout.ID)
		}
	}
}

func TestNormalizeLayoutFillsDefaults(t *testing.T) {
	var layout station.Layout
	normalizeLayout(&layout)

	if layout.Name != "Custom Deck" {
		t.Fatalf("expected default name, got %q", layout.Name)
	}
	if len(layout.Rooms) != 1 {
		t.Fatalf("expected one default room, got %d", len(layout.Rooms))
	}
	room := layout.Rooms[0]
	if room.Name != "Compartment" || room.AmbientK != 293.15 || room.Width != 8 || room.Height != 6 {
		t.Fatalf("unexpected default room %+v", room)
	}
}

func TestNormalizeLayoutClampsRoomBounds(t *testing.T) {
	layout := station.Layout{
		Name: "Big Deck",
		Rooms: []station.RoomSpec{
			{Name: "Hangar", AmbientK: 290, Width: 200, Height: 1},
			{AmbientK: -4, Width: 0, Height: 0},
		},
	}
	normalizeLayout(&layout)

	if layout.Rooms[0].Width != 64 || layout.Rooms[0].Height != 2 {
		t.Fatalf("expected bounds clamped to 64x2, got %dx%d", layout.Rooms[0].Width, layout.Rooms[0].Height)
	}
	second := layout.Rooms[1]
	if second.Name != "Compartment 2" || second.AmbientK != 293.15 || second.Width != 8 || second.Height != 6 {
		t.Fatalf("unexpected backfilled room %+v", second)
	}
}

func TestNormalizeLayoutDropsUnnamedSpawns(t *testing.T) {
	layout := station.Layout{
		Name: "Spawn Deck",
		Rooms: []station.RoomSpec{{
			Name: "Bay", AmbientK: 290, Width: 6, Height: 5,
			Spawns: []station.SpawnSpec{
				{Name: "   "},
				{Name: "Loose Crate"},
			},
		}},
	}
	normalizeLayout(&layout)

	spawns := layout.Rooms[0].Spawns
	if len(spawns) != 1 {
		t.Fatalf("expected the unnamed spawn dropped, got %+v", spawns)
	}
	got := spawns[0]
	if got.Kind != station.KindDebris || got.Element != station.ElementIron || got.Mass != 50 {
		t.Fatalf("expected spawn defaults filled, got %+v", got)
	}
}

func TestGenerateLayoutIDAvoidsCollisions(t *testing.T) {
	existing := []station.Layout{{ID: "intake_bay_2"}}

	if got := generateLayoutID("Intake Bay", existing); got != "intake_bay_3" {
		t.Fatalf("expected intake_bay_3, got %q", got)
	}
	if got := generateLayoutID("", nil); got != "custom_deck" {
		t.Fatalf("expected fallback slug, got %q", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Orbital Dry-Dock 7": "orbital_dry_dock_7",
		"  Crew---Quarters ": "crew_quarters",
		"___":                "",
		"Reactor/Spine":      "reactor_spine",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
