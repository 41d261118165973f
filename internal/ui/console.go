package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/stationfall/internal/hud"
	"github.com/appengine-ltd/stationfall/internal/parser"
	"github.com/appengine-ltd/stationfall/internal/station"
)

// ---------------------------------------------------------------------------
// Details surface
// ---------------------------------------------------------------------------

type panelLine struct {
	key     string
	text    string
	tooltip string
}

// textPanel is the terminal surface the inspector writes into. Label writes
// stage into a batch; Commit publishes the whole batch at once, so a key the
// inspector stops writing disappears on the next commit.
type textPanel struct {
	active bool
	title  string
	staged []panelLine
	index  map[string]int
	lines  []panelLine
}

func newTextPanel() *textPanel {
	return &textPanel{index: make(map[string]int)}
}

func (p *textPanel) SetActive(active bool) { p.active = active }

func (p *textPanel) SetTitle(title string) { p.title = title }

// SetLabel stages one line. Rewriting a key inside the same batch updates it
// in place, keeping the first write's position.
func (p *textPanel) SetLabel(key, text, tooltip string) {
	if i, ok := p.index[key]; ok {
		p.staged[i].text = text
		p.staged[i].tooltip = tooltip
		return
	}
	p.index[key] = len(p.staged)
	p.staged = append(p.staged, panelLine{key: key, text: text, tooltip: tooltip})
}

func (p *textPanel) Commit() {
	p.lines = append(p.lines[:0], p.staged...)
	p.staged = p.staged[:0]
	for k := range p.index {
		delete(p.index, k)
	}
}

func (p *textPanel) Deactivate() {
	p.active = false
	p.title = ""
	p.staged = p.staged[:0]
	p.lines = p.lines[:0]
	for k := range p.index {
		delete(p.index, k)
	}
}

func (p *textPanel) Active() bool { return p.active }

func (p *textPanel) Title() string { return p.title }

func (p *textPanel) Lines() []panelLine { return p.lines }

// ---------------------------------------------------------------------------
// Console
// ---------------------------------------------------------------------------

func (m menuModel) submitConsole() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.consoleInput)
	m.consoleInput = ""
	if raw == "" {
		return m, nil
	}
	m = m.appendMessage("> " + raw)
	if m.pendingClarify != nil {
		return m.resolveClarify(raw), nil
	}
	return m.dispatchIntent(m.parser.Parse(m.parseContext(), raw)), nil
}

func (m menuModel) dispatchIntent(intent parser.Intent) menuModel {
	if intent.Clarify != nil {
		m.pendingClarify = intent.Clarify
		m = m.appendMessage(intent.Clarify.Prompt)
		for i, option := range intent.Clarify.Options {
			m = m.appendMessage(fmt.Sprintf("  %d. %s", i+1, parser.IntentToCommandString(option)))
		}
		return m
	}
	if intent.Kind == parser.Unknown || intent.Verb == "" {
		return m.appendMessage("Unknown command. Type help for the console guide.")
	}
	return m.executeIntent(intent)
}

// resolveClarify interprets the line typed while a clarify question is open:
// a cancel word, an option number, or a fresh command that parses cleanly.
func (m menuModel) resolveClarify(raw string) menuModel {
	pending := m.pendingClarify
	norm := parser.Normalise(raw)
	switch norm {
	case "cancel", "never mind", "nevermind", "no", "stop":
		m.pendingClarify = nil
		return m.appendMessage("Cancelled.")
	}
	if n, err := parseNonNegativeInt(norm); err == nil {
		if n >= 1 && n <= len(pending.Options) {
			m.pendingClarify = nil
			return m.dispatchIntent(pending.Options[n-1])
		}
		return m.appendMessage(fmt.Sprintf("Pick a number between 1 and %d, or cancel.", len(pending.Options)))
	}
	intent := m.parser.Parse(m.parseContext(), raw)
	if intent.Clarify == nil && intent.Kind != parser.Unknown && intent.Confidence >= 0.6 {
		m.pendingClarify = nil
		return m.dispatchIntent(intent)
	}
	return m.appendMessage("Still not sure. " + pending.Prompt)
}

func (m menuModel) parseContext() parser.ParseContext {
	ctx := parser.ParseContext{}
	if m.sim == nil {
		return ctx
	}
	for _, e := range m.sim.Entities {
		ctx.Entities = append(ctx.Entities, e.Name)
		if e.Room == m.roomFocus {
			ctx.SameRoom = append(ctx.SameRoom, e.Name)
		}
		if _, ok := e.OperationalState(); ok {
			ctx.Fixtures = append(ctx.Fixtures, e.Name)
		}
	}
	for _, room := range m.sim.Rooms {
		ctx.Rooms = append(ctx.Rooms, room.Name)
	}
	for _, elem := range m.sim.Catalog().All() {
		ctx.Elements = append(ctx.Elements, m.res.Resolve(elem.NameID))
	}
	for _, disease := range []station.DiseaseID{station.DiseaseSporeBloom, station.DiseaseRustLung, station.DiseaseVoidPhage} {
		ctx.Diseases = append(ctx.Diseases, m.res.Resolve(disease.NameID()))
	}
	if m.selected != nil {
		ctx.LastEntity = m.selected.Name
	}
	return ctx
}

func (m menuModel) executeIntent(intent parser.Intent) menuModel {
	switch intent.Verb {
	case "help":
		m.screen = screenGuide
		return m
	case "select":
		entity, ok := m.resolveEntityArg(firstArg(intent))
		if !ok {
			return m.appendMessage("No such object aboard.")
		}
		m = m.selectEntity(entity)
		return m.appendMessage("Inspecting " + entity.Name + ".")
	case "clear":
		m = m.clearSelection()
		return m.appendMessage("Selection cleared.")
	case "look":
		return m.describeRoom(m.roomFocus)
	case "entities":
		return m.listEntities(intent.Args)
	case "rooms":
		return m.listRooms()
	case "room":
		idx, ok := m.resolveRoomArg(intent.Args)
		if !ok {
			return m.appendMessage("No such room.")
		}
		m.roomFocus = idx
		return m.describeRoom(idx)
	case "pause":
		m.sim.SetPaused(true)
		return m.appendMessage("Clock holding. Station time frozen.")
	case "resume":
		m.sim.SetPaused(false)
		return m.appendMessage("Clock released.")
	case "step":
		return m.stepTicks(intent)
	case "heat":
		return m.adjustEntityTemp(intent, 1)
	case "cool":
		return m.adjustEntityTemp(intent, -1)
	case "infect":
		return m.infectEntity(intent)
	case "cure":
		return m.cureEntity(intent)
	case "toggle":
		return m.toggleEntity(intent)
	case "swap":
		return m.swapEntityElement(intent)
	case "unit":
		return m.setUnit(intent.Args)
	case "radiation":
		return m.setRadiation(intent.Args)
	case "save":
		return m.saveShiftToSlot(intentSlot(intent, 1))
	case "load":
		return m.loadShiftFromConsole(intent)
	case "menu":
		m.screen = screenMenu
		return m
	default:
		return m.appendMessage("Unknown command. Type help for the console guide.")
	}
}

// resolveEntityArg maps a resolved argument back to a live entity. An empty
// argument falls through to the current selection. Matches in the focused
// room win over same-named objects elsewhere.
func (m menuModel) resolveEntityArg(arg string) (*station.Entity, bool) {
	key := parser.Normalise(arg)
	if key == "" {
		if m.selected != nil {
			return m.selected, true
		}
		return nil, false
	}
	var fallback *station.Entity
	for _, e := range m.sim.Entities {
		if parser.Normalise(e.Name) != key {
			continue
		}
		if e.Room == m.roomFocus {
			return e, true
		}
		if fallback == nil {
			fallback = e
		}
	}
	if fallback != nil {
		return fallback, true
	}
	return nil, false
}

func (m menuModel) resolveRoomArg(args []string) (int, bool) {
	if len(args) == 0 {
		return m.roomFocus, true
	}
	key := parser.Normalise(strings.Join(args, " "))
	for i, room := range m.sim.Rooms {
		if parser.Normalise(room.Name) == key {
			return i, true
		}
	}
	return 0, false
}

func firstArg(intent parser.Intent) string {
	if len(intent.Args) == 0 {
		return ""
	}
	return intent.Args[0]
}

func (m menuModel) describeRoom(idx int) menuModel {
	if idx < 0 || idx >= len(m.sim.Rooms) {
		return m
	}
	room := m.sim.Rooms[idx]
	line := fmt.Sprintf("%s: ambient %s", room.Name, m.scratch.Temperature(room.AmbientK, m.opts.tempUnit))
	if m.sim.Config.RadiationEnabled && m.opts.radiation {
		line += ", radiation " + m.scratch.Number(room.Radiation, 1)
	}
	m = m.appendMessage(line)

	names := make([]string, 0, 8)
	for _, e := range m.roomEntities(idx) {
		names = append(names, e.Name)
	}
	if len(names) == 0 {
		return m.appendMessage("Nothing notable in this room.")
	}
	return m.appendMessage("Present: " + strings.Join(names, ", "))
}

func (m menuModel) listEntities(args []string) menuModel {
	roomIdx := -1
	if len(args) > 0 {
		idx, ok := m.resolveRoomArg(args)
		if !ok {
			return m.appendMessage("No such room.")
		}
		roomIdx = idx
	}
	count := 0
	for _, e := range m.sim.Entities {
		if roomIdx >= 0 && e.Room != roomIdx {
			continue
		}
		roomName := ""
		if e.Room >= 0 && e.Room < len(m.sim.Rooms) {
			roomName = m.sim.Rooms[e.Room].Name
		}
		m = m.appendMessage(fmt.Sprintf("%s  (%s, %s)", e.Name, roomName, m.scratch.Temperature(e.TempK, m.opts.tempUnit)))
		count++
	}
	if count == 0 {
		return m.appendMessage("Nothing found.")
	}
	return m
}

func (m menuModel) listRooms() menuModel {
	for i, room := range m.sim.Rooms {
		marker := "  "
		if i == m.roomFocus {
			marker = "> "
		}
		m = m.appendMessage(fmt.Sprintf("%s%s  ambient %s, %d objects",
			marker, room.Name, m.scratch.Temperature(room.AmbientK, m.opts.tempUnit), len(m.roomEntities(i))))
	}
	return m
}

func (m menuModel) stepTicks(intent parser.Intent) menuModel {
	n := 1
	if intent.Quantity != nil && intent.Quantity.Unit == "count" && intent.Quantity.N > 0 {
		n = intent.Quantity.N
	}
	if n > station.TicksPerCycle {
		n = station.TicksPerCycle
	}
	if !m.sim.Clock.Paused {
		m.sim.SetPaused(true)
		m = m.appendMessage("Clock holding while stepping.")
	}
	for i := 0; i < n; i++ {
		for _, msg := range m.sim.Step() {
			m = m.appendMessage(msg)
		}
	}
	return m.appendMessage(fmt.Sprintf("Advanced %d tick(s). %s", n, formatStationClock(m.sim.Clock)))
}

func (m menuModel) adjustEntityTemp(intent parser.Intent, sign float64) menuModel {
	entity, ok := m.resolveEntityArg(firstArg(intent))
	if !ok {
		return m.appendMessage("No such object aboard.")
	}
	delta := 10.0
	if intent.Quantity != nil && intent.Quantity.N != 0 {
		switch intent.Quantity.Unit {
		case "kelvin", "count":
			delta = float64(intent.Quantity.N)
		}
	}
	if delta < 0 {
		delta = -delta
	}
	if err := m.sim.AdjustTemperature(entity, sign*delta); err != nil {
		return m.appendMessage("Cannot adjust: " + err.Error())
	}
	verb := "Heated"
	if sign < 0 {
		verb = "Cooled"
	}
	return m.appendMessage(fmt.Sprintf("%s %s by %.0f K to %s.",
		verb, entity.Name, delta, m.scratch.Temperature(entity.TempK, m.opts.tempUnit)))
}

func (m menuModel) infectEntity(intent parser.Intent) menuModel {
	entity, ok := m.resolveEntityArg(firstArg(intent))
	if !ok {
		return m.appendMessage("No such object aboard.")
	}
	disease := station.DiseaseSporeBloom
	for _, arg := range intent.Args[1:] {
		if d, found := m.diseaseNames[parser.Normalise(arg)]; found {
			disease = d
			break
		}
	}
	count := int64(1000)
	if intent.Quantity != nil && intent.Quantity.Unit == "count" && intent.Quantity.N > 0 {
		count = int64(intent.Quantity.N)
	}
	if err := m.sim.Infect(entity, disease, count); err != nil {
		return m.appendMessage("Cannot infect: " + err.Error())
	}
	return m.appendMessage(fmt.Sprintf("Seeded %d %s germs on %s.",
		count, m.res.Resolve(disease.NameID()), entity.Name))
}

func (m menuModel) cureEntity(intent parser.Intent) menuModel {
	if intent.Quantity != nil && intent.Quantity.Unit == "all" {
		cured := 0
		for _, e := range m.sim.Entities {
			if germs, ok := e.GermLoad(); ok && germs.Count > 0 {
				if err := m.sim.Cure(e); err == nil {
					cured++
				}
			}
		}
		return m.appendMessage(fmt.Sprintf("Sterilised %d object(s).", cured))
	}
	entity, ok := m.resolveEntityArg(firstArg(intent))
	if !ok {
		return m.appendMessage("No such object aboard.")
	}
	if err := m.sim.Cure(entity); err != nil {
		return m.appendMessage("Cannot cure: " + err.Error())
	}
	return m.appendMessage("Sterilised " + entity.Name + ".")
}

func (m menuModel) toggleEntity(intent parser.Intent) menuModel {
	entity, ok := m.resolveEntityArg(firstArg(intent))
	if !ok {
		return m.appendMessage("No such object aboard.")
	}
	on, err := m.sim.ToggleFixture(entity)
	if err != nil {
		return m.appendMessage("Cannot toggle: " + err.Error())
	}
	state := "off"
	if on {
		state = "on"
	}
	return m.appendMessage(entity.Name + " switched " + state + ".")
}

func (m menuModel) swapEntityElement(intent parser.Intent) menuModel {
	if len(intent.Args) < 2 {
		return m.appendMessage("Swap needs an object and a material.")
	}
	entity, ok := m.resolveEntityArg(intent.Args[0])
	if !ok {
		return m.appendMessage("No such object aboard.")
	}
	id, found := m.elementNames[parser.Normalise(intent.Args[1])]
	if !found {
		return m.appendMessage("Unknown material.")
	}
	if err := m.sim.SwapElement(entity, id); err != nil {
		return m.appendMessage("Cannot swap: " + err.Error())
	}
	return m.appendMessage(fmt.Sprintf("%s is now %s.",
		entity.Name, m.res.Resolve(m.sim.Catalog().Get(id).NameID)))
}

func (m menuModel) setUnit(args []string) menuModel {
	if len(args) == 0 {
		return m
	}
	var unit hud.TempUnit
	switch parser.Normalise(args[0]) {
	case "k", "kelvin":
		unit = hud.UnitKelvin
	case "c", "celsius", "centigrade":
		unit = hud.UnitCelsius
	case "f", "fahrenheit":
		unit = hud.UnitFahrenheit
	default:
		return m.appendMessage("Units: kelvin, celsius, fahrenheit.")
	}
	m.opts.tempUnit = unit
	m = m.applyOptions()
	return m.appendMessage("Temperatures now read in " + tempUnitName(unit) + ".")
}

// setRadiation flips both the readout rows and the sim hazard together, so
// turning the display on always means the numbers underneath are moving.
func (m menuModel) setRadiation(args []string) menuModel {
	enable := !m.opts.radiation
	if len(args) > 0 {
		switch parser.Normalise(args[0]) {
		case "on", "enable", "enabled", "true":
			enable = true
		case "off", "disable", "disabled", "false":
			enable = false
		default:
			return m.appendMessage("Radiation: on or off.")
		}
	}
	m.opts.radiation = enable
	m.sim.Config.RadiationEnabled = enable
	m = m.applyOptions()
	if enable {
		return m.appendMessage("Radiation hazard live. Readouts on.")
	}
	return m.appendMessage("Radiation hazard secured. Readouts off.")
}

func (m menuModel) applyOptions() menuModel {
	if m.inspector != nil {
		m.inspector.SetOptions(hud.Options{TempUnit: m.opts.tempUnit, Radiation: m.opts.radiation})
		if m.details != nil && m.selected != nil {
			m.inspector.Update(m.details, m.selected)
		}
	}
	return m
}

func (m menuModel) loadShiftFromConsole(intent parser.Intent) menuModel {
	path := ""
	if slot := intentSlot(intent, 0); slot > 0 {
		path = savePathForSlot(slot)
	} else {
		latest, ok := latestSavePath()
		if !ok {
			return m.appendMessage("No saved shifts found.")
		}
		path = latest
	}
	sim, err := loadShiftFromFile(path)
	if err != nil {
		return m.appendMessage("Load failed: " + err.Error())
	}
	m = m.attachSim(sim)
	return m.appendMessage("Shift restored from " + filepath.Base(path) + ".")
}

func intentSlot(intent parser.Intent, fallback int) int {
	if intent.Quantity != nil && intent.Quantity.Unit == "count" && intent.Quantity.N > 0 {
		return clampInt(intent.Quantity.N, 1, 99)
	}
	if len(intent.Args) > 0 {
		if n, err := parseNonNegativeInt(intent.Args[0]); err == nil && n > 0 {
			return clampInt(n, 1, 99)
		}
	}
	return fallback
}

func tempUnitName(unit hud.TempUnit) string {
	switch unit {
	case hud.UnitCelsius:
		return "Celsius"
	case hud.UnitFahrenheit:
		return "Fahrenheit"
	default:
		return "Kelvin"
	}
}

func formatStationClock(c station.Clock) string {
	return fmt.Sprintf("Cycle %d  %03d/%d", c.Cycle(), c.TickOfCycle(), station.TicksPerCycle)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ---------------------------------------------------------------------------
// Save files
// ---------------------------------------------------------------------------

// maxSaveFileBytes caps how much of a data file the terminal frontend will
// read. A real shift save is a few hundred kilobytes at most.
const maxSaveFileBytes = 4 << 20

const savePattern = "stationfall-save-*.json"

var saveFileName = regexp.MustCompile(`^stationfall-save-[1-9][0-9]?\.json$`)

func savePathForSlot(slot int) string {
	return fmt.Sprintf("stationfall-save-%d.json", slot)
}

// validateDataFilePath accepts only bare save file names in the working
// directory. Anything with a path separator, a parent reference, or a name
// outside the save pattern is rejected before any filesystem access.
func validateDataFilePath(path string) error {
	if path == "" || path != filepath.Base(path) {
		return fmt.Errorf("data files must live in the working directory: %q", path)
	}
	if !saveFileName.MatchString(path) {
		return fmt.Errorf("unexpected data file name: %q", path)
	}
	return nil
}

// parseNonNegativeInt accepts plain decimal digits only. Signs, spaces inside
// the number, and trailing junk all fail, which keeps console slot arguments
// and clarify answers strict.
func parseNonNegativeInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a plain number: %q", s)
		}
	}
	return strconv.Atoi(s)
}

// readDataFile validates the name, refuses files over the limit using the
// stat size, and reads the rest normally.
func readDataFile(path string, limit int64) ([]byte, error) {
	if err := validateDataFilePath(path); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%s is %d bytes, over the %d byte limit", path, info.Size(), limit)
	}
	return os.ReadFile(path)
}

func loadShiftFromFile(path string) (*station.Sim, error) {
	data, err := readDataFile(path, maxSaveFileBytes)
	if err != nil {
		return nil, err
	}
	return station.DecodeSim(data)
}

// latestSavePath returns the most recently written save in the working
// directory, if any.
func latestSavePath() (string, bool) {
	paths, err := filepath.Glob(savePattern)
	if err != nil {
		return "", false
	}
	best := ""
	var bestAt time.Time
	for _, path := range paths {
		if validateDataFilePath(path) != nil {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if best == "" || info.ModTime().After(bestAt) {
			best = path
			bestAt = info.ModTime()
		}
	}
	return best, best != ""
}

func (m menuModel) saveShiftToSlot(slot int) menuModel {
	if m.sim == nil {
		return m
	}
	path := savePathForSlot(clampInt(slot, 1, 99))
	if err := validateDataFilePath(path); err != nil {
		return m.appendMessage("Save failed: " + err.Error())
	}
	if err := station.SaveSim(path, m.sim); err != nil {
		return m.appendMessage("Save failed: " + err.Error())
	}
	return m.appendMessage("Shift saved to " + path + ".")
}
