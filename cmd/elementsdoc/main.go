package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/appengine-ltd/stationfall/internal/locale"
	"github.com/appengine-ltd/stationfall/internal/parser"
	"github.com/appengine-ltd/stationfall/internal/station"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := filepath.Join("docs", "reference")
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}

	files := []docFile{
		generateElementsDoc(),
		generateDiseasesDoc(),
		generateLayoutsDoc(),
		generateConsoleDoc(),
	}
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateReferenceIndex(files)
	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateReferenceIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Station Reference\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/elementsdoc`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateElementsDoc() docFile {
	items := station.NewCatalog().All()
	res := locale.English()
	stateRank := map[station.StateOfMatter]int{
		station.StateSolid:  0,
		station.StateLiquid: 1,
		station.StateGas:    2,
	}
	sort.Slice(items, func(i, j int) bool {
		ri := stateRank[items[i].State]
		rj := stateRank[items[j].State]
		if ri != rj {
			return ri < rj
		}
		ni := res.Resolve(items[i].NameID)
		nj := res.Resolve(items[j].NameID)
		if ni != nj {
			return ni < nj
		}
		return items[i].ID < items[j].ID
	})

	var b strings.Builder
	b.WriteString("# Elements\n\n")
	b.WriteString("Source: `internal/station/elements.go` (`NewCatalog`).\n\n")
	b.WriteString(fmt.Sprintf("Total elements: **%d**.\n\n", len(items)))
	b.WriteString("| ID | Name | State | Specific Heat (J/g)/K | Conductivity (W/m)/K | Cold Transition | Hot Transition | Rad Absorption | Insulator |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, e := range items {
		b.WriteString("| ")
		b.WriteString(escape(string(e.ID)))
		b.WriteString(" | ")
		b.WriteString(escape(res.Resolve(e.NameID)))
		b.WriteString(" | ")
		b.WriteString(escape(string(e.State)))
		b.WriteString(" | ")
		b.WriteString(formatFloat(e.SpecificHeat))
		b.WriteString(" | ")
		b.WriteString(formatFloat(e.Conductivity))
		b.WriteString(" | ")
		b.WriteString(escape(formatTransition(e.LowTemp, e.LowProduct)))
		b.WriteString(" | ")
		b.WriteString(escape(formatTransition(e.HighTemp, e.HighProduct)))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%.0f%%", e.RadAbsorption*100))
		b.WriteString(" | ")
		b.WriteString(yesNo(e.Insulator))
		b.WriteString(" |\n")
	}

	return docFile{Name: "elements.md", Title: "Elements", Content: b.String()}
}

func generateDiseasesDoc() docFile {
	items := []station.DiseaseID{
		station.DiseaseSporeBloom,
		station.DiseaseRustLung,
		station.DiseaseVoidPhage,
	}
	res := locale.English()
	sort.Slice(items, func(i, j int) bool {
		return res.Resolve(items[i].NameID()) < res.Resolve(items[j].NameID())
	})

	carriers := map[station.DiseaseID][]string{}
	for _, layout := range station.BuiltInLayouts() {
		for _, room := range layout.Rooms {
			for _, spawn := range room.Spawns {
				if spawn.Disease == "" {
					continue
				}
				carriers[spawn.Disease] = append(carriers[spawn.Disease],
					fmt.Sprintf("%s (%s)", spawn.Name, layout.Name))
			}
		}
	}

	var b strings.Builder
	b.WriteString("# Diseases\n\n")
	b.WriteString("Source: `internal/station/entity.go` and `internal/station/layouts_builtin.go`.\n\n")
	b.WriteString(fmt.Sprintf("Total diseases: **%d**.\n\n", len(items)))
	b.WriteString("| ID | Name | Built-in Carriers |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, d := range items {
		hosts := "none"
		if len(carriers[d]) > 0 {
			hosts = strings.Join(carriers[d], "; ")
		}
		b.WriteString("| ")
		b.WriteString(escape(string(d)))
		b.WriteString(" | ")
		b.WriteString(escape(res.Resolve(d.NameID())))
		b.WriteString(" | ")
		b.WriteString(escape(hosts))
		b.WriteString(" |\n")
	}

	return docFile{Name: "diseases.md", Title: "Diseases", Content: b.String()}
}

func generateLayoutsDoc() docFile {
	items := station.BuiltInLayouts()
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})

	var b strings.Builder
	b.WriteString("# Built-in Layouts\n\n")
	b.WriteString("Source: `internal/station/layouts_builtin.go` (`BuiltInLayouts`).\n\n")
	b.WriteString(fmt.Sprintf("Total layouts: **%d**.\n\n", len(items)))
	b.WriteString("| ID | Name | Rooms | Ambient (K) | Radiation Rooms | Spawns | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, layout := range items {
		minA, maxA := 0.0, 0.0
		radRooms := 0
		kinds := map[station.EntityKind]int{}
		for i, room := range layout.Rooms {
			if i == 0 || room.AmbientK < minA {
				minA = room.AmbientK
			}
			if i == 0 || room.AmbientK > maxA {
				maxA = room.AmbientK
			}
			if room.RadiationTag > 0 {
				radRooms++
			}
			for _, spawn := range room.Spawns {
				kinds[spawn.Kind]++
			}
		}
		spawns := fmt.Sprintf("%d fixtures, %d debris, %d creatures, %d vents",
			kinds[station.KindFixture], kinds[station.KindDebris], kinds[station.KindCreature], kinds[station.KindVent])
		b.WriteString("| ")
		b.WriteString(escape(string(layout.ID)))
		b.WriteString(" | ")
		b.WriteString(escape(layout.Name))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(len(layout.Rooms)))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%.2f-%.2f", minA, maxA))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(radRooms))
		b.WriteString(" | ")
		b.WriteString(escape(spawns))
		b.WriteString(" | ")
		b.WriteString(escape(layout.Description))
		b.WriteString(" |\n")
	}

	return docFile{Name: "layouts.md", Title: "Built-in Layouts", Content: b.String()}
}

func generateConsoleDoc() docFile {
	items := parser.New().Commands()

	var b strings.Builder
	b.WriteString("# Console Commands\n\n")
	b.WriteString("Source: `internal/parser/registry.go` (`DefaultRegistry`).\n\n")
	b.WriteString(fmt.Sprintf("Total commands: **%d**.\n\n", len(items)))
	b.WriteString("| Command | Aliases | Arguments |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, cmd := range items {
		args := "none"
		if cmd.MaxArgs > 0 {
			args = fmt.Sprintf("%d-%d", cmd.MinArgs, cmd.MaxArgs)
		}
		b.WriteString("| ")
		b.WriteString(escape(cmd.Canonical))
		b.WriteString(" | ")
		b.WriteString(escape(strings.Join(cmd.Aliases, ", ")))
		b.WriteString(" | ")
		b.WriteString(args)
		b.WriteString(" |\n")
	}

	return docFile{Name: "console-commands.md", Title: "Console Commands", Content: b.String()}
}

func formatTransition(tempK float64, product station.ElementID) string {
	if tempK == 0 {
		return ""
	}
	if product == "" {
		return fmt.Sprintf("%.2f K", tempK)
	}
	return fmt.Sprintf("%.2f K -> %s", tempK, product)
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
