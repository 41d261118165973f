package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/appengine-ltd/stationfall/internal/stationgen"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	Prefix: "stationgen",
})

func main() {
	var id string
	var name string
	var seed int64
	var rooms int
	var theme string
	var hazard float64
	var outPath string
	var previewPath string
	var cacheRoot string
	var all bool
	var outDir string
	var force bool

	flag.StringVar(&id, "id", "", "layout id (required unless -all)")
	flag.StringVar(&name, "name", "", "layout display name")
	flag.Int64Var(&seed, "seed", 0, "generation seed (0 derives a stable seed from the id)")
	flag.IntVar(&rooms, "rooms", 3, "room count (2-6)")
	flag.StringVar(&theme, "theme", "mixed", "theme: "+strings.Join(stationgen.Themes(), ", "))
	flag.Float64Var(&hazard, "hazard", 0, "0-1 chance per room of a radiation field")
	flag.StringVar(&outPath, "out", "stationfall-layouts.json", "output path for the layout profile")
	flag.StringVar(&previewPath, "preview", "", "optional PNG preview path")
	flag.StringVar(&cacheRoot, "cache", filepath.Join(".cache", "stationgen"), "regeneration cache directory")
	flag.BoolVar(&all, "all", false, "generate one layout per theme into -dir")
	flag.StringVar(&outDir, "dir", filepath.Join("assets", "layouts"), "output directory for -all")
	flag.BoolVar(&force, "force", false, "regenerate even if output exists")
	flag.Parse()

	if all {
		generateAll(outDir, seed, rooms, hazard, cacheRoot, force)
		return
	}

	if strings.TrimSpace(id) == "" {
		logger.Fatal("-id is required (or use -all)")
	}

	profile, err := stationgen.GenerateProfile(stationgen.Options{
		ID:        id,
		Name:      name,
		Seed:      seed,
		Rooms:     rooms,
		Theme:     theme,
		Hazard:    hazard,
		CacheRoot: cacheRoot,
	})
	if err != nil {
		logger.Fatal("generate layout", "err", err)
	}
	if err := stationgen.WriteProfile(outPath, profile); err != nil {
		logger.Fatal("write profile", "err", err)
	}

	layout := profile.Custom[0].Layout
	logger.Info("wrote profile", "path", outPath, "rooms", len(layout.Rooms), "spawns", countSpawns(profile))

	if previewPath != "" {
		if err := stationgen.WritePreview(previewPath, layout); err != nil {
			logger.Fatal("write preview", "err", err)
		}
		logger.Info("wrote preview", "path", previewPath)
	}
}

func generateAll(dir string, seed int64, rooms int, hazard float64, cacheRoot string, force bool) {
	wrote := 0
	skipped := 0
	failed := 0

	for _, theme := range stationgen.Themes() {
		if theme == "mixed" {
			continue
		}
		id := theme + "_deck"
		outPath := filepath.Join(dir, id+".json")
		if !force {
			if _, err := os.Stat(outPath); err == nil {
				logger.Info("skip existing", "path", outPath)
				skipped++
				continue
			}
		}

		profile, err := stationgen.GenerateProfile(stationgen.Options{
			ID:        id,
			Name:      titleCase(theme) + " Deck",
			Seed:      seed,
			Rooms:     rooms,
			Theme:     theme,
			Hazard:    hazard,
			CacheRoot: cacheRoot,
		})
		if err != nil {
			logger.Error("generate failed", "id", id, "err", err)
			failed++
			continue
		}
		if err := stationgen.WriteProfile(outPath, profile); err != nil {
			logger.Error("write failed", "path", outPath, "err", err)
			failed++
			continue
		}
		previewPath := filepath.Join(dir, id+".png")
		if err := stationgen.WritePreview(previewPath, profile.Custom[0].Layout); err != nil {
			logger.Error("preview failed", "path", previewPath, "err", err)
			failed++
			continue
		}
		logger.Info("wrote", "profile", outPath, "preview", previewPath)
		wrote++
	}

	logger.Info("done", "wrote", wrote, "skipped", skipped, "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func countSpawns(profile stationgen.Profile) int {
	total := 0
	for _, record := range profile.Custom {
		for _, room := range record.Layout.Rooms {
			total += len(room.Spawns)
		}
	}
	return total
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
