package stationgen

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/appengine-ltd/stationfall/internal/station"
)

// Options drive one layout generation. The same options always produce the
// same layout, which is what makes the on-disk cache safe.
type Options struct {
	ID     string
	Name   string
	Seed   int64
	Rooms  int
	Theme  string
	Hazard float64 // 0..1 chance per room of a lingering radiation field

	CacheRoot string
}

const profileFormatVersion = 2

// ProfileRecord matches one entry of the game's custom layout library, so a
// generated profile can be dropped in as stationfall-layouts.json unchanged.
type ProfileRecord struct {
	Layout station.Layout `json:"layout"`
	Notes  string         `json:"notes,omitempty"`
}

type Profile struct {
	FormatVersion int             `json:"format_version"`
	Custom        []ProfileRecord `json:"custom"`
}

// GenerateProfile returns the profile for opts, reusing the cached result
// when the same options were generated before.
func GenerateProfile(opts Options) (Profile, error) {
	opts, err := normalizeOptions(opts)
	if err != nil {
		return Profile{}, err
	}

	cacheDir := filepath.Join(opts.CacheRoot, hashOptions(opts))
	cachePath := filepath.Join(cacheDir, "profile.json")
	if profile, ok := loadProfileCache(cachePath); ok {
		return profile, nil
	}

	layout, err := GenerateLayout(opts)
	if err != nil {
		return Profile{}, err
	}

	profile := Profile{
		FormatVersion: profileFormatVersion,
		Custom: []ProfileRecord{{
			Layout: layout,
			Notes:  fmt.Sprintf("stationgen seed=%d theme=%s rooms=%d", opts.Seed, opts.Theme, opts.Rooms),
		}},
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Profile{}, fmt.Errorf("mkdir cache: %w", err)
	}
	if err := writeProfileFile(cachePath, profile); err != nil {
		return Profile{}, fmt.Errorf("write cache: %w", err)
	}
	return profile, nil
}

// GenerateLayout builds a seeded station section from scratch. It never
// touches the cache.
func GenerateLayout(opts Options) (station.Layout, error) {
	opts, err := normalizeOptions(opts)
	if err != nil {
		return station.Layout{}, err
	}

	rng := seededRNG(opts.Seed)
	base, err := themeByName(opts.Theme)
	if err != nil {
		return station.Layout{}, err
	}

	description := base.description
	if opts.Theme == themeMixed {
		description = "Generated mixed deck: each room rolls its own section type."
	}
	layout := station.Layout{
		ID:          station.LayoutID(opts.ID),
		Name:        opts.Name,
		Description: description,
	}

	nameCounts := map[string]int{}
	for i := 0; i < opts.Rooms; i++ {
		theme := base
		if opts.Theme == themeMixed {
			theme = themes[rng.IntN(len(themes))]
		}
		layout.Rooms = append(layout.Rooms, generateRoom(rng, theme, i, opts.Hazard, nameCounts))
	}
	return layout, nil
}

// WriteProfile writes a profile where the game's layout store can read it.
func WriteProfile(path string, profile Profile) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return writeProfileFile(path, profile)
}

func writeProfileFile(path string, profile Profile) error {
	blob, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	blob = append(blob, '\n')
	return os.WriteFile(path, blob, 0o644)
}

func loadProfileCache(path string) (Profile, bool) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, false
	}
	var profile Profile
	if err := json.Unmarshal(blob, &profile); err != nil {
		return Profile{}, false
	}
	if profile.FormatVersion != profileFormatVersion || len(profile.Custom) == 0 {
		return Profile{}, false
	}
	return profile, true
}

func normalizeOptions(opts Options) (Options, error) {
	opts.ID = strings.TrimSpace(opts.ID)
	if opts.ID == "" {
		return Options{}, errors.New("id is required")
	}
	if strings.TrimSpace(opts.Name) == "" {
		opts.Name = opts.ID
	}
	if opts.Seed == 0 {
		// Deterministic default so repeated runs for the same id hit the cache.
		opts.Seed = int64(seedWord(0, opts.ID))
	}
	if opts.Rooms <= 0 {
		opts.Rooms = 3
	}
	opts.Rooms = clampInt(opts.Rooms, 2, 6)
	if strings.TrimSpace(opts.Theme) == "" {
		opts.Theme = themeMixed
	}
	opts.Theme = strings.ToLower(strings.TrimSpace(opts.Theme))
	if _, err := themeByName(opts.Theme); err != nil {
		return Options{}, err
	}
	opts.Hazard = clampFloat(opts.Hazard, 0, 1)
	if opts.CacheRoot == "" {
		opts.CacheRoot = filepath.Join(".cache", "stationgen")
	}
	return opts, nil
}

// ---------------------------------------------------------------------------
// Themes
// ---------------------------------------------------------------------------

const (
	themeSalvage = "salvage"
	themeCryo    = "cryo"
	themeReactor = "reactor"
	themeHydro   = "hydroponics"
	themeMixed   = "mixed"
)

type spawnTemplate struct {
	name    string
	element station.ElementID
	massLo  float64
	massHi  float64

	wattageLo float64
	wattageHi float64

	overheatDeltaK float64

	disease station.DiseaseID
	germsLo int64
	germsHi int64
}

type layoutTheme struct {
	name        string
	description string
	roomNames   []string
	ambientLoK  float64
	ambientHiK  float64
	radiationHi float64
	creatureOdd float64

	fixtures  []spawnTemplate
	debris    []spawnTemplate
	creatures []spawnTemplate
	vents     []spawnTemplate
}

var themes = []layoutTheme{
	{
		name:        themeSalvage,
		description: "Generated salvage deck: conveyors, loose scrap, and whatever rode in with it.",
		roomNames:   []string{"Scrap Floor", "Sorting Pen", "Cargo Airlock", "Crate Stack", "Manifest Office"},
		ambientLoK:  288.15,
		ambientHiK:  300.15,
		radiationHi: 6,
		creatureOdd: 0.45,
		fixtures: []spawnTemplate{
			{name: "Belt Conveyor", element: station.ElementIron, massLo: 300, massHi: 500, wattageLo: 180, wattageHi: 300},
			{name: "Crane Winch", element: station.ElementIron, massLo: 220, massHi: 380, wattageLo: 120, wattageHi: 260},
			{name: "Plasma Cutter", element: station.ElementCopper, massLo: 60, massHi: 140, wattageLo: 400, wattageHi: 700},
		},
		debris: []spawnTemplate{
			{name: "Iron Scrap", element: station.ElementIron, massLo: 30, massHi: 90, overheatDeltaK: -40},
			{name: "Copper Scrap", element: station.ElementCopper, massLo: 20, massHi: 70, overheatDeltaK: -40},
			{name: "Sandstone Chunk", element: station.ElementSandstone, massLo: 40, massHi: 120},
		},
		creatures: []spawnTemplate{
			{name: "Dust Mite", element: station.ElementDirt, massLo: 1, massHi: 3, disease: station.DiseaseSporeBloom, germsLo: 300, germsHi: 1500},
		},
		vents: []spawnTemplate{
			{name: "Recycler Vent", element: station.ElementIron, massLo: 60, massHi: 120},
		},
	},
	{
		name:        themeCryo,
		description: "Generated cryo section: sub-freezing rooms where anything wet turns solid.",
		roomNames:   []string{"Chill Corridor", "Stasis Vault", "Coldbox", "Frost Locker", "Icefall Gallery"},
		ambientLoK:  232.15,
		ambientHiK:  266.15,
		radiationHi: 4,
		creatureOdd: 0.3,
		fixtures: []spawnTemplate{
			{name: "Cryo Pump", element: station.ElementCopper, massLo: 150, massHi: 280, wattageLo: 220, wattageHi: 380},
			{name: "Stasis Rack", element: station.ElementIron, massLo: 350, massHi: 600, wattageLo: 90, wattageHi: 180},
		},
		debris: []spawnTemplate{
			{name: "Ice Block", element: station.ElementIce, massLo: 15, massHi: 45},
			{name: "Condensate Puddle", element: station.ElementWater, massLo: 4, massHi: 12},
			{name: "Insulite Panel", element: station.ElementInsulite, massLo: 30, massHi: 70},
		},
		creatures: []spawnTemplate{
			{name: "Frost Tick", element: station.ElementDirt, massLo: 1, massHi: 2, disease: station.DiseaseVoidPhage, germsLo: 200, germsHi: 900},
		},
		vents: []spawnTemplate{
			{name: "Chill Vent", element: station.ElementIron, massLo: 50, massHi: 100},
		},
	},
	{
		name:        themeReactor,
		description: "Generated reactor section: hot shafts, shielding scrap, lingering radiation.",
		roomNames:   []string{"Service Shaft", "Core Gallery", "Shield Wall", "Exhaust Run", "Turbine Pit"},
		ambientLoK:  322.15,
		ambientHiK:  362.15,
		radiationHi: 60,
		creatureOdd: 0.35,
		fixtures: []spawnTemplate{
			{name: "Coolant Loop", element: station.ElementCopper, massLo: 250, massHi: 450, wattageLo: 400, wattageHi: 800},
			{name: "Containment Monitor", element: station.ElementIron, massLo: 180, massHi: 320, wattageLo: 60, wattageHi: 140},
		},
		debris: []spawnTemplate{
			{name: "Lead Shielding Scrap", element: station.ElementLead, massLo: 50, massHi: 130, overheatDeltaK: -60},
			{name: "Obsidian Slag", element: station.ElementObsidian, massLo: 30, massHi: 90},
			{name: "Boiloff Puddle", element: station.ElementWater, massLo: 2, massHi: 8},
		},
		creatures: []spawnTemplate{
			{name: "Cinder Roach", element: station.ElementDirt, massLo: 1, massHi: 2, disease: station.DiseaseRustLung, germsLo: 600, germsHi: 2400},
		},
		vents: []spawnTemplate{
			{name: "Exhaust Vent", element: station.ElementIron, massLo: 80, massHi: 140},
		},
	},
	{
		name:        themeHydro,
		description: "Generated hydroponics section: warm, damp, and crawling with germs.",
		roomNames:   []string{"Grow Hall", "Silt Bed", "Mist Chamber", "Seed Vault", "Drip Gallery"},
		ambientLoK:  294.15,
		ambientHiK:  302.15,
		radiationHi: 3,
		creatureOdd: 0.7,
		fixtures: []spawnTemplate{
			{name: "Nutrient Pump", element: station.ElementCopper, massLo: 120, massHi: 240, wattageLo: 140, wattageHi: 260},
			{name: "Irrigation Valve", element: station.ElementIron, massLo: 90, massHi: 180, wattageLo: 40, wattageHi: 90},
		},
		debris: []spawnTemplate{
			{name: "Algae Mat", element: station.ElementAlgae, massLo: 8, massHi: 25},
			{name: "Stagnant Water", element: station.ElementPollutedWater, massLo: 10, massHi: 30},
			{name: "Dirt Clod", element: station.ElementDirt, massLo: 20, massHi: 50},
		},
		creatures: []spawnTemplate{
			{name: "Leaf Hopper", element: station.ElementDirt, massLo: 1, massHi: 2, disease: station.DiseaseSporeBloom, germsLo: 900, germsHi: 3600},
		},
		vents: []spawnTemplate{
			{name: "Mist Vent", element: station.ElementCopper, massLo: 40, massHi: 80},
		},
	},
}

// Themes lists the accepted theme names for CLI help text.
func Themes() []string {
	names := make([]string, 0, len(themes)+1)
	for _, theme := range themes {
		names = append(names, theme.name)
	}
	return append(names, themeMixed)
}

func themeByName(name string) (layoutTheme, error) {
	if name == themeMixed {
		// Mixed starts from salvage and re-rolls per room.
		return themes[0], nil
	}
	for _, theme := range themes {
		if theme.name == name {
			return theme, nil
		}
	}
	return layoutTheme{}, fmt.Errorf("unknown theme %q (use one of %s)", name, strings.Join(Themes(), ", "))
}

// ---------------------------------------------------------------------------
// Room generation
// ---------------------------------------------------------------------------

func generateRoom(rng *rand.Rand, theme layoutTheme, roomIdx int, hazard float64, nameCounts map[string]int) station.RoomSpec {
	spec := station.RoomSpec{
		Name:     uniqueName(theme.roomNames[rng.IntN(len(theme.roomNames))], nameCounts),
		AmbientK: roundFloat(lerp(theme.ambientLoK, theme.ambientHiK, rng.Float64()), 2),
		Width:    6 + rng.IntN(9),
		Height:   5 + rng.IntN(5),
	}
	if hazard > 0 && rng.Float64() < hazard {
		spec.RadiationTag = roundFloat(theme.radiationHi*(0.4+0.6*rng.Float64()), 1)
	}

	circuit := fmt.Sprintf("grid-%c", 'a'+roomIdx%4)

	fixtures := 1 + rng.IntN(2)
	for i := 0; i < fixtures; i++ {
		tmpl := theme.fixtures[rng.IntN(len(theme.fixtures))]
		spec.Spawns = append(spec.Spawns, station.SpawnSpec{
			Kind:        station.KindFixture,
			Name:        uniqueName(tmpl.name, nameCounts),
			Element:     tmpl.element,
			Mass:        roundFloat(lerp(tmpl.massLo, tmpl.massHi, rng.Float64()), 0),
			Operational: true,
			Circuit:     circuit,
			Wattage:     roundFloat(lerp(tmpl.wattageLo, tmpl.wattageHi, rng.Float64()), 0),
		})
	}

	debris := 1 + rng.IntN(3)
	for i := 0; i < debris; i++ {
		tmpl := theme.debris[rng.IntN(len(theme.debris))]
		spec.Spawns = append(spec.Spawns, station.SpawnSpec{
			Kind:           station.KindDebris,
			Name:           uniqueName(tmpl.name, nameCounts),
			Element:        tmpl.element,
			Mass:           roundFloat(lerp(tmpl.massLo, tmpl.massHi, rng.Float64()), 0),
			OverheatDeltaK: tmpl.overheatDeltaK,
		})
	}

	if rng.Float64() < theme.creatureOdd {
		tmpl := theme.creatures[rng.IntN(len(theme.creatures))]
		spec.Spawns = append(spec.Spawns, station.SpawnSpec{
			Kind:    station.KindCreature,
			Name:    uniqueName(tmpl.name, nameCounts),
			Element: tmpl.element,
			Mass:    roundFloat(lerp(tmpl.massLo, tmpl.massHi, rng.Float64()), 0),
			Disease: tmpl.disease,
			Germs:   tmpl.germsLo + rng.Int64N(tmpl.germsHi-tmpl.germsLo+1),
		})
	}

	if rng.Float64() < 0.6 {
		tmpl := theme.vents[rng.IntN(len(theme.vents))]
		spec.Spawns = append(spec.Spawns, station.SpawnSpec{
			Kind:        station.KindVent,
			Name:        uniqueName(tmpl.name, nameCounts),
			Element:     tmpl.element,
			Mass:        roundFloat(lerp(tmpl.massLo, tmpl.massHi, rng.Float64()), 0),
			Operational: true,
		})
	}

	return spec
}

// uniqueName keeps console selection unambiguous: the second Iron Scrap in a
// layout becomes "Iron Scrap 2".
func uniqueName(base string, counts map[string]int) string {
	counts[base]++
	if counts[base] == 1 {
		return base
	}
	return fmt.Sprintf("%s %d", base, counts[base])
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func seededRNG(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic generation.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

func hashOptions(opts Options) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s:%s:%d:%d:%s:%.3f", opts.ID, opts.Name, opts.Seed, opts.Rooms, opts.Theme, opts.Hazard)))
	return hex.EncodeToString(sum[:])
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func roundFloat(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	factor := math.Pow(10, float64(precision))
	return math.Round(v*factor) / factor
}

func clampFloat(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
