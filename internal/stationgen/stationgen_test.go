package stationgen

import (
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/appengine-ltd/stationfall/internal/station"
)

func TestGenerateLayoutDeterministic(t *testing.T) {
	opts := Options{ID: "derelict_ring", Seed: 99, Rooms: 4, Theme: "salvage", CacheRoot: t.TempDir()}

	first, err := GenerateLayout(opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := GenerateLayout(opts)
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical layouts for identical options")
	}

	// Seed zero derives a stable seed from the id, so it is deterministic too.
	implicit := Options{ID: "derelict_ring", Theme: "salvage", CacheRoot: t.TempDir()}
	a, err := GenerateLayout(implicit)
	if err != nil {
		t.Fatalf("generate implicit: %v", err)
	}
	b, err := GenerateLayout(implicit)
	if err != nil {
		t.Fatalf("generate implicit again: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected implicit seed to stay stable per id")
	}
}

func TestGenerateLayoutThemeBounds(t *testing.T) {
	cryo, err := GenerateLayout(Options{ID: "cold_test", Seed: 7, Rooms: 6, Theme: "cryo", CacheRoot: t.TempDir()})
	if err != nil {
		t.Fatalf("generate cryo: %v", err)
	}
	for _, room := range cryo.Rooms {
		if room.AmbientK < 232.15 || room.AmbientK > 266.15 {
			t.Fatalf("cryo room %q ambient %v outside theme range", room.Name, room.AmbientK)
		}
	}

	reactor, err := GenerateLayout(Options{ID: "hot_test", Seed: 7, Rooms: 6, Theme: "reactor", Hazard: 1, CacheRoot: t.TempDir()})
	if err != nil {
		t.Fatalf("generate reactor: %v", err)
	}
	for _, room := range reactor.Rooms {
		if room.RadiationTag <= 0 {
			t.Fatalf("expected hazard 1 to irradiate every room, %q has none", room.Name)
		}
	}
}

func TestGenerateLayoutUniqueNames(t *testing.T) {
	layout, err := GenerateLayout(Options{ID: "name_test", Seed: 3, Rooms: 6, Theme: "mixed", CacheRoot: t.TempDir()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	seen := map[string]bool{}
	for _, room := range layout.Rooms {
		if seen[room.Name] {
			t.Fatalf("duplicate room name %q", room.Name)
		}
		seen[room.Name] = true
		for _, spawn := range room.Spawns {
			if seen[spawn.Name] {
				t.Fatalf("duplicate spawn name %q", spawn.Name)
			}
			seen[spawn.Name] = true
		}
	}
}

func TestGenerateLayoutValidation(t *testing.T) {
	if _, err := GenerateLayout(Options{Theme: "salvage"}); err == nil {
		t.Fatalf("expected missing id to fail")
	}
	if _, err := GenerateLayout(Options{ID: "x", Theme: "volcanic"}); err == nil {
		t.Fatalf("expected unknown theme to fail")
	}
}

func TestGenerateProfileCacheReuse(t *testing.T) {
	cache := t.TempDir()
	opts := Options{ID: "cache_test", Seed: 11, Rooms: 2, Theme: "hydroponics", CacheRoot: cache}

	first, err := GenerateProfile(opts)
	if err != nil {
		t.Fatalf("generate profile: %v", err)
	}
	if len(first.Custom) != 1 {
		t.Fatalf("expected one layout record, got %d", len(first.Custom))
	}

	// Rewrite the cached file; a second call must return the cached content.
	marker := first
	marker.Custom[0].Layout.Name = "Cached Marker"
	cachePath := filepath.Join(cache, hashOptions(mustNormalize(t, opts)), "profile.json")
	if err := writeProfileFile(cachePath, marker); err != nil {
		t.Fatalf("rewrite cache: %v", err)
	}

	second, err := GenerateProfile(opts)
	if err != nil {
		t.Fatalf("generate profile again: %v", err)
	}
	if second.Custom[0].Layout.Name != "Cached Marker" {
		t.Fatalf("expected cache hit, got regenerated layout %q", second.Custom[0].Layout.Name)
	}
}

func mustNormalize(t *testing.T, opts Options) Options {
	t.Helper()
	normalized, err := normalizeOptions(opts)
	if err != nil {
		t.Fatalf("normalize options: %v", err)
	}
	return normalized
}

func TestWriteProfileLoadableByGame(t *testing.T) {
	dir := t.TempDir()
	opts := Options{ID: "derelict_ring", Seed: 42, Rooms: 3, Theme: "reactor", Hazard: 0.5, CacheRoot: t.TempDir()}

	profile, err := GenerateProfile(opts)
	if err != nil {
		t.Fatalf("generate profile: %v", err)
	}
	path := filepath.Join(dir, "stationfall-layouts.json")
	if err := WriteProfile(path, profile); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read profile: %v", err)
	}
	var lib struct {
		FormatVersion int `json:"format_version"`
		Custom        []struct {
			Layout station.Layout `json:"layout"`
		} `json:"custom"`
	}
	if err := json.Unmarshal(data, &lib); err != nil {
		t.Fatalf("unmarshal profile: %v", err)
	}
	if lib.FormatVersion != 2 {
		t.Fatalf("expected library format version 2, got %d", lib.FormatVersion)
	}
	if len(lib.Custom) != 1 {
		t.Fatalf("expected one layout record, got %d", len(lib.Custom))
	}

	layouts := []station.Layout{lib.Custom[0].Layout}
	sim, err := station.NewSimWithLayouts(station.SimConfig{LayoutID: layouts[0].ID, Seed: 1}, layouts, nil)
	if err != nil {
		t.Fatalf("expected generated layout to boot a sim: %v", err)
	}
	if len(sim.Rooms) != 3 {
		t.Fatalf("expected 3 rooms aboard, got %d", len(sim.Rooms))
	}
	if len(sim.Entities) == 0 {
		t.Fatalf("expected spawned entities aboard")
	}
}

func TestWritePreviewProducesPNG(t *testing.T) {
	layout, err := GenerateLayout(Options{ID: "preview_test", Seed: 5, Rooms: 2, Theme: "cryo", CacheRoot: t.TempDir()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "preview.png")
	if err := WritePreview(path, layout); err != nil {
		t.Fatalf("write preview: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open preview: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if img.Bounds().Dx() < 100 || img.Bounds().Dy() < 100 {
		t.Fatalf("preview unexpectedly small: %v", img.Bounds())
	}
}
