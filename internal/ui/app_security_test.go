package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/appengine-ltd/stationfall/internal/station"
)

func withTempCWD(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir temp: %v", err)
	}

	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}

func TestValidateDataFilePath(t *testing.T) {
	allowed := []string{
		savePathForSlot(1),
		savePathForSlot(2),
		savePathForSlot(3),
	}
	for _, path := range allowed {
		if err := validateDataFilePath(path); err != nil {
			t.Fatalf("expected allowed path %q, got error: %v", path, err)
		}
	}

	rejected := []string{
		"/tmp/stationfall-save-1.json",
		"../stationfall-save-1.json",
		"nested/stationfall-save-1.json",
		"stationfall-save-.json",
		"stationfall-save-*.json",
	}
	for _, path := range rejected {
		if err := validateDataFilePath(path); err == nil {
			t.Fatalf("expected path %q to be rejected", path)
		}
	}
}

func TestParseNonNegativeIntStrict(t *testing.T) {
	if v, err := parseNonNegativeInt("42"); err != nil || v != 42 {
		t.Fatalf("expected parse 42, got v=%d err=%v", v, err)
	}
	if _, err := parseNonNegativeInt("12x"); err == nil {
		t.Fatalf("expected malformed numeric input to fail")
	}
	if _, err := parseNonNegativeInt("-1"); err == nil {
		t.Fatalf("expected negative numeric input to fail")
	}
}

func TestSaveAndLoadShiftRoundTrip(t *testing.T) {
	withTempCWD(t)

	sim, err := station.NewSim(station.SimConfig{LayoutID: station.LayoutIntakeBayID, Seed: 123})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	sim.Step()
	sim.Step()
	sim.Step()
	if err := sim.AdjustTemperature(sim.Entities[0], 40); err != nil {
		t.Fatalf("adjust temperature: %v", err)
	}

	path := savePathForSlot(1)
	if err := station.SaveSim(path, sim); err != nil {
		t.Fatalf("save shift: %v", err)
	}

	loaded, err := loadShiftFromFile(path)
	if err != nil {
		t.Fatalf("load shift: %v", err)
	}

	if loaded.Clock.Tick != sim.Clock.Tick {
		t.Fatalf("tick mismatch: got %d want %d", loaded.Clock.Tick, sim.Clock.Tick)
	}
	if loaded.Layout.ID != station.LayoutIntakeBayID {
		t.Fatalf("layout mismatch: got %s", loaded.Layout.ID)
	}
	if len(loaded.Entities) != len(sim.Entities) {
		t.Fatalf("entity count mismatch: got %d want %d", len(loaded.Entities), len(sim.Entities))
	}
	if loaded.Entities[0].TempK != sim.Entities[0].TempK {
		t.Fatalf("temperature mismatch: got %v want %v", loaded.Entities[0].TempK, sim.Entities[0].TempK)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat saved file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected save file mode 0600, got %o", info.Mode().Perm())
	}
}

func TestReadDataFileSizeLimit(t *testing.T) {
	withTempCWD(t)

	path := savePathForSlot(1)
	tooLarge := make([]byte, maxSaveFileBytes+1)
	if err := os.WriteFile(path, tooLarge, 0o600); err != nil {
		t.Fatalf("write oversized save file: %v", err)
	}

	_, err := readDataFile(path, maxSaveFileBytes)
	if err == nil {
		t.Fatalf("expected oversized read to fail")
	}

	// Ensure file path remains local and expected.
	if _, err := filepath.Abs(path); err != nil {
		t.Fatalf("abs path: %v", err)
	}
}

func TestLatestSavePathPicksNewest(t *testing.T) {
	withTempCWD(t)

	sim, err := station.NewSim(station.SimConfig{LayoutID: station.LayoutIntakeBayID, Seed: 5})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	if err := station.SaveSim(savePathForSlot(1), sim); err != nil {
		t.Fatalf("save slot 1: %v", err)
	}
	if err := station.SaveSim(savePathForSlot(2), sim); err != nil {
		t.Fatalf("save slot 2: %v", err)
	}

	// Filesystem timestamps can share a granule, so push slot 1 into the past.
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(savePathForSlot(1), past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	path, ok := latestSavePath()
	if !ok {
		t.Fatalf("expected a latest save path")
	}
	if path != savePathForSlot(2) {
		t.Fatalf("expected newest save %q, got %q", savePathForSlot(2), path)
	}
}
