package locale

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTableResolveFallsBackToID(t *testing.T) {
	table := Table{"details.temperature": "Temperature: {Temperature}"}

	if got := table.Resolve("details.temperature"); got != "Temperature: {Temperature}" {
		t.Fatalf("expected known id to resolve, got %q", got)
	}
	if got := table.Resolve("details.nonsense"); got != "details.nonsense" {
		t.Fatalf("expected missing id to resolve to itself, got %q", got)
	}
}

func TestMergeOverlayWinsWithoutMutatingInputs(t *testing.T) {
	base := Table{"a": "base-a", "b": "base-b"}
	overlay := Table{"b": "overlay-b", "c": "overlay-c"}

	merged := base.Merge(overlay)

	if merged.Resolve("a") != "base-a" || merged.Resolve("b") != "overlay-b" || merged.Resolve("c") != "overlay-c" {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
	if base["b"] != "base-b" {
		t.Fatalf("merge mutated the base table: %+v", base)
	}
	if _, ok := overlay["a"]; ok {
		t.Fatalf("merge mutated the overlay table: %+v", overlay)
	}
}

func TestEnglishCoversEveryDetailsLineAndTooltipPair(t *testing.T) {
	table := English()
	lines := []string{
		"details.temperature",
		"details.element_mass",
		"details.thermal_mass",
		"details.specific_heat",
		"details.thermal_conductivity",
		"details.melting_point",
		"details.freezepoint",
		"details.vapourizationpoint",
		"details.dewpoint",
		"details.overheat",
		"details.radiation_absorption",
		"details.disease",
		"details.circuit",
		"details.age",
		"details.uptime",
	}
	for _, id := range lines {
		if _, ok := table[id]; !ok {
			t.Fatalf("missing builtin string %q", id)
		}
		if _, ok := table[id+".tooltip"]; !ok {
			t.Fatalf("missing builtin tooltip for %q", id)
		}
	}
}

func TestLoadPackRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strings.json")

	overlay := Table{"element.water.name": "Agua"}
	if err := SavePack(path, "es", overlay); err != nil {
		t.Fatalf("save pack: %v", err)
	}

	loaded, err := LoadPack(path)
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	if loaded.Resolve("element.water.name") != "Agua" {
		t.Fatalf("expected overlay string to survive the round trip, got %+v", loaded)
	}

	merged := English().Merge(loaded)
	if merged.Resolve("element.water.name") != "Agua" {
		t.Fatalf("expected overlay to win over builtin, got %q", merged.Resolve("element.water.name"))
	}
	if merged.Resolve("element.ice.name") != "Ice" {
		t.Fatalf("expected untouched builtin to survive, got %q", merged.Resolve("element.ice.name"))
	}
}

func TestLoadPackRejectsNewerFormatAndEmptyStrings(t *testing.T) {
	dir := t.TempDir()

	newer := filepath.Join(dir, "newer.json")
	if err := os.WriteFile(newer, []byte(`{"format_version": 99, "strings": {"a": "b"}}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadPack(newer); err == nil {
		t.Fatalf("expected newer format version to be rejected")
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"format_version": 1, "strings": {}}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadPack(empty); err == nil {
		t.Fatalf("expected empty pack to be rejected")
	}
}
