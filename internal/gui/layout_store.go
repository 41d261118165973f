//go:build cgo

package gui

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/appengine-ltd/stationfall/internal/station"
)

const defaultCustomLayoutsFile = "stationfall-layouts.json"

type customLayoutRecord struct {
	Layout station.Layout `json:"layout"`
	Notes  string         `json:"notes,omitempty"`
}

type customLayoutLibrary struct {
	FormatVersion int                  `json:"format_version"`
	Custom        []customLayoutRecord `json:"custom,omitempty"`
	Layouts       []station.Layout     `json:"layouts,omitempty"`
}

func loadCustomLayouts() []station.Layout {
	layouts, legacy, err := loadLayoutLibrary(defaultCustomLayoutsFile)
	if err != nil {
		return nil
	}
	if legacy && len(layouts) > 0 {
		// Rewrite old flat files in the current record format.
		_ = saveLayoutLibrary(defaultCustomLayoutsFile, layouts)
	}
	return layouts
}

func loadLayoutLibrary(path string) ([]station.Layout, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var lib customLayoutLibrary
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, false, err
	}

	legacy := len(lib.Custom) == 0 && len(lib.Layouts) > 0
	items := make([]station.Layout, 0, len(lib.Custom)+len(lib.Layouts))
	if len(lib.Custom) > 0 {
		for _, record := range lib.Custom {
			layout := record.Layout
			normalizeLayout(&layout)
			items = append(items, layout)
		}
	} else {
		for _, layout := range lib.Layouts {
			normalizeLayout(&layout)
			items = append(items, layout)
		}
	}

	dedup := map[station.LayoutID]station.Layout{}
	for _, layout := range items {
		if layout.ID == "" || reservedLayoutID(layout.ID) {
			layout.ID = station.LayoutID(generateLayoutID(layout.Name, items))
		}
		dedup[layout.ID] = layout
	}

	out := make([]station.Layout, 0, len(dedup))
	for _, layout := range dedup {
		out = append(out, layout)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, legacy, nil
}

func saveLayoutLibrary(path string, layouts []station.Layout) error {
	records := make([]customLayoutRecord, 0, len(layouts))
	for _, layout := range layouts {
		records = append(records, customLayoutRecord{Layout: layout})
	}
	payload := customLayoutLibrary{FormatVersion: 2, Custom: records}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// normalizeLayout fills in whatever a hand-edited or generated layout file
// left out, so the sim never spawns from a half-described deck.
func normalizeLayout(layout *station.Layout) {
	if layout == nil {
		return
	}
	if strings.TrimSpace(layout.Name) == "" {
		layout.Name = "Custom Deck"
	}
	if len(layout.Rooms) == 0 {
		layout.Rooms = []station.RoomSpec{{Name: "Compartment", AmbientK: 293.15, Width: 8, Height: 6}}
	}
	for i := range layout.Rooms {
		room := &layout.Rooms[i]
		if strings.TrimSpace(room.Name) == "" {
			room.Name = fmt.Sprintf("Compartment %d", i+1)
		}
		if room.AmbientK <= 0 {
			room.AmbientK = 293.15
		}
		if room.Width <= 0 {
			room.Width = 8
		}
		if room.Height <= 0 {
			room.Height = 6
		}
		room.Width = clampInt(room.Width, 2, 64)
		room.Height = clampInt(room.Height, 2, 64)
		if room.RadiationTag < 0 {
			room.RadiationTag = 0
		}

		kept := room.Spawns[:0]
		for _, spawn := range room.Spawns {
			if strings.TrimSpace(spawn.Name) == "" {
				continue
			}
			if spawn.Kind == "" {
				spawn.Kind = station.KindDebris
			}
			if spawn.Element == "" {
				spawn.Element = station.ElementIron
			}
			if spawn.Mass <= 0 {
				spawn.Mass = 50
			}
			kept = append(kept, spawn)
		}
		room.Spawns = kept
	}
}

func reservedLayoutID(id station.LayoutID) bool {
	if id == station.LayoutRandomID {
		return true
	}
	for _, builtin := range station.BuiltInLayouts() {
		if builtin.ID == id {
			return true
		}
	}
	return false
}

func generateLayoutID(name string, existing []station.Layout) string {
	base := slugify(name)
	if base == "" {
		base = "custom_deck"
	}
	used := map[string]bool{string(station.LayoutRandomID): true}
	for _, builtin := range station.BuiltInLayouts() {
		used[string(builtin.ID)] = true
	}
	for _, layout := range existing {
		used[string(layout.ID)] = true
	}
	id := base
	counter := 2
	for used[id] {
		id = fmt.Sprintf("%s_%d", base, counter)
		counter++
	}
	return id
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return out
}
