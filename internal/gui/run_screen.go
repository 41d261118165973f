//go:build cgo

package gui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/stationfall/internal/hud"
	"github.com/appengine-ltd/stationfall/internal/parser"
	"github.com/appengine-ltd/stationfall/internal/station"
	uitheme "github.com/appengine-ltd/stationfall/internal/gui/theme"
)

const maxMessages = 260

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (ui *gameUI) updateRun() {
	if ui.sim == nil {
		ui.screen = screenMenu
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		switch {
		case strings.TrimSpace(ui.consoleInput) != "":
			ui.consoleInput = ""
		case ui.pendingClarify != nil:
			ui.pendingClarify = nil
			ui.appendMessage("Cancelled.")
		case ui.selected != nil:
			ui.clearSelection()
		default:
			ui.screen = screenMenu
			return
		}
	}

	consumed := false
	if HotkeysEnabled(ui) {
		consumed = ui.handleRunHotkeys()
		if ui.screen != screenRun {
			return
		}
	}
	if !consumed {
		ui.consoleInput = captureTextInput(ui.consoleInput, 120)
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		ui.submitConsole()
	}

	delta := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	ui.playedFor += delta
	for _, msg := range ui.sim.AdvanceRealtime(delta, ui.tickDuration()) {
		ui.appendMessage(msg)
	}

	ui.processIntentQueue()

	if ui.selected != nil {
		ui.inspector.Update(ui.details, ui.selected)
	}
}

// handleRunHotkeys runs the shift-modified and navigation hotkeys. It reports
// whether a key that also produces a printable character fired, so the caller
// can skip console capture for this frame.
func (ui *gameUI) handleRunHotkeys() bool {
	consumed := false

	if ShiftKeyPressed(rl.KeyP) {
		if ui.sim.TogglePause() {
			ui.appendMessage("Clock holding. Station time frozen.")
		} else {
			ui.appendMessage("Clock released.")
		}
		consumed = true
	}
	if ShiftKeyPressed(rl.KeyM) {
		ui.screen = screenStationMap
		return true
	}
	if ShiftKeyPressed(rl.KeyG) {
		ui.screen = screenConsoleGuide
		return true
	}
	if ShiftKeyPressed(rl.KeyS) {
		ui.quickSave()
		consumed = true
	}
	if ShiftKeyPressed(rl.KeyL) {
		ui.loadShift(parser.Intent{})
		consumed = true
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		dir := 1
		if shiftDown() {
			dir = -1
		}
		ui.cycleSelection(dir)
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		ui.cycleRoomFocus(-1)
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		ui.cycleRoomFocus(1)
	}

	return consumed
}

func (ui *gameUI) quickSave() {
	path := savePathForSlot(1)
	if err := station.SaveSim(path, ui.sim); err != nil {
		ui.appendMessage("Save failed: " + err.Error())
		return
	}
	ui.appendMessage("Shift saved to " + path + ".")
}

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

func (ui *gameUI) selectEntity(e *station.Entity) {
	ui.selected = e
	if e != nil && e.Room >= 0 && e.Room < len(ui.sim.Rooms) {
		ui.roomFocus = e.Room
	}
}

func (ui *gameUI) clearSelection() {
	ui.selected = nil
	if ui.inspector != nil {
		ui.inspector.Reset()
	}
	if ui.details != nil {
		ui.details.Deactivate()
	}
}

func (ui *gameUI) cycleSelection(dir int) {
	entities := ui.roomEntities(ui.roomFocus)
	if len(entities) == 0 {
		entities = ui.sim.Entities
	}
	if len(entities) == 0 {
		return
	}
	idx := -1
	for i, e := range entities {
		if e == ui.selected {
			idx = i
			break
		}
	}
	if idx == -1 {
		if dir >= 0 {
			ui.selectEntity(entities[0])
		} else {
			ui.selectEntity(entities[len(entities)-1])
		}
		return
	}
	ui.selectEntity(entities[wrapIndex(idx+dir, len(entities))])
}

func (ui *gameUI) cycleRoomFocus(dir int) {
	if len(ui.sim.Rooms) == 0 {
		return
	}
	ui.roomFocus = wrapIndex(ui.roomFocus+dir, len(ui.sim.Rooms))
}

func (ui *gameUI) roomEntities(idx int) []*station.Entity {
	var out []*station.Entity
	for _, e := range ui.sim.Entities {
		if e.Room == idx {
			out = append(out, e)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Console
// ---------------------------------------------------------------------------

func (ui *gameUI) submitConsole() {
	raw := strings.TrimSpace(ui.consoleInput)
	ui.consoleInput = ""
	if raw == "" {
		return
	}
	ui.appendMessage("> " + raw)

	if ui.pendingClarify != nil {
		ui.resolveClarify(raw)
		return
	}
	ui.dispatchIntent(ui.parser.Parse(ui.parseContext(), raw))
}

func (ui *gameUI) dispatchIntent(intent parser.Intent) {
	if intent.Clarify != nil {
		ui.pendingClarify = intent.Clarify
		ui.appendMessage(intent.Clarify.Prompt)
		for i, opt := range intent.Clarify.Options {
			ui.appendMessage(fmt.Sprintf("  %d. %s", i+1, parser.IntentToCommandString(opt)))
		}
		return
	}
	if intent.Kind == parser.Unknown || intent.Verb == "" {
		ui.appendMessage("Unknown command. Type help for the console guide.")
		return
	}
	ui.intents.EnqueueIntent(intent)
}

// resolveClarify answers an open clarify question: a number picks an option,
// cancel words drop it, and anything else is retried as a fresh command. The
// question stays open if the retry is no clearer.
func (ui *gameUI) resolveClarify(raw string) {
	pending := ui.pendingClarify
	norm := parser.Normalise(raw)
	switch norm {
	case "cancel", "never mind", "nevermind", "no", "stop":
		ui.pendingClarify = nil
		ui.appendMessage("Cancelled.")
		return
	}
	if n, err := strconv.Atoi(norm); err == nil {
		if n >= 1 && n <= len(pending.Options) {
			ui.pendingClarify = nil
			ui.dispatchIntent(pending.Options[n-1])
			return
		}
		ui.appendMessage(fmt.Sprintf("Pick a number between 1 and %d, or cancel.", len(pending.Options)))
		return
	}

	intent := ui.parser.Parse(ui.parseContext(), raw)
	if intent.Clarify == nil && intent.Kind != parser.Unknown && intent.Confidence >= 0.6 {
		ui.pendingClarify = nil
		ui.dispatchIntent(intent)
		return
	}
	ui.appendMessage("Still not sure. " + pending.Prompt)
}

// parseContext snapshots the station vocabulary the parser matches against.
func (ui *gameUI) parseContext() parser.ParseContext {
	ctx := parser.ParseContext{}
	if ui.sim == nil {
		return ctx
	}
	for _, e := range ui.sim.Entities {
		ctx.Entities = append(ctx.Entities, e.Name)
		if e.Room == ui.roomFocus {
			ctx.SameRoom = append(ctx.SameRoom, e.Name)
		}
		if _, ok := e.OperationalState(); ok {
			ctx.Fixtures = append(ctx.Fixtures, e.Name)
		}
	}
	for _, room := range ui.sim.Rooms {
		ctx.Rooms = append(ctx.Rooms, room.Name)
	}
	for _, elem := range ui.sim.Catalog().All() {
		ctx.Elements = append(ctx.Elements, ui.res.Resolve(elem.NameID))
	}
	for _, disease := range []station.DiseaseID{station.DiseaseSporeBloom, station.DiseaseRustLung, station.DiseaseVoidPhage} {
		ctx.Diseases = append(ctx.Diseases, ui.res.Resolve(disease.NameID()))
	}
	if ui.selected != nil {
		ctx.LastEntity = ui.selected.Name
	}
	return ctx
}

func (ui *gameUI) processIntentQueue() {
	for {
		intent, ok := ui.intents.Dequeue()
		if !ok {
			return
		}
		ui.executeIntent(intent)
	}
}

func (ui *gameUI) executeIntent(intent parser.Intent) {
	switch intent.Verb {
	case "help":
		ui.screen = screenConsoleGuide
	case "select":
		entity, ok := ui.resolveEntityArg(firstArg(intent))
		if !ok {
			ui.appendMessage("No such object aboard.")
			return
		}
		ui.selectEntity(entity)
		ui.appendMessage("Inspecting " + entity.Name + ".")
	case "clear":
		ui.clearSelection()
		ui.appendMessage("Selection cleared.")
	case "look":
		ui.describeRoom(ui.roomFocus)
	case "entities":
		ui.listEntities(intent.Args)
	case "rooms":
		ui.listRooms()
	case "room":
		idx, ok := ui.resolveRoomArg(intent.Args)
		if !ok {
			ui.appendMessage("No such room.")
			return
		}
		ui.roomFocus = idx
		ui.describeRoom(idx)
	case "pause":
		ui.sim.SetPaused(true)
		ui.appendMessage("Clock holding. Station time frozen.")
	case "resume":
		ui.sim.SetPaused(false)
		ui.appendMessage("Clock released.")
	case "step":
		ui.stepTicks(intent)
	case "heat":
		ui.adjustEntityTemp(intent, 1)
	case "cool":
		ui.adjustEntityTemp(intent, -1)
	case "infect":
		ui.infectEntity(intent)
	case "cure":
		ui.cureEntity(intent)
	case "toggle":
		ui.toggleEntity(intent)
	case "swap":
		ui.swapEntityElement(intent)
	case "unit":
		ui.setUnit(intent.Args)
	case "radiation":
		ui.setRadiation(intent.Args)
	case "save":
		ui.saveShift(intent)
	case "load":
		ui.loadShift(intent)
	case "menu":
		ui.screen = screenMenu
	default:
		ui.appendMessage("Unknown command. Type help for the console guide.")
	}
}

// resolveEntityArg maps a resolved argument back to a live entity. An empty
// argument falls through to the current selection. Matches in the focused
// room win over same-named objects elsewhere.
func (ui *gameUI) resolveEntityArg(arg string) (*station.Entity, bool) {
	key := parser.Normalise(arg)
	if key == "" {
		if ui.selected != nil {
			return ui.selected, true
		}
		return nil, false
	}
	var fallback *station.Entity
	for _, e := range ui.sim.Entities {
		if parser.Normalise(e.Name) != key {
			continue
		}
		if e.Room == ui.roomFocus {
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

func (ui *gameUI) resolveRoomArg(args []string) (int, bool) {
	if len(args) == 0 {
		return ui.roomFocus, true
	}
	key := parser.Normalise(strings.Join(args, " "))
	for i, room := range ui.sim.Rooms {
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

func (ui *gameUI) describeRoom(idx int) {
	if idx < 0 || idx >= len(ui.sim.Rooms) {
		return
	}
	room := ui.sim.Rooms[idx]
	line := fmt.Sprintf("%s: ambient %s", room.Name, ui.scratch.Temperature(room.AmbientK, ui.opts.TempUnit))
	if ui.sim.Config.RadiationEnabled && ui.opts.Radiation {
		line += ", radiation " + ui.scratch.Number(room.Radiation, 1)
	}
	ui.appendMessage(line)

	names := make([]string, 0, 8)
	for _, e := range ui.roomEntities(idx) {
		names = append(names, e.Name)
	}
	if len(names) == 0 {
		ui.appendMessage("Nothing notable in this room.")
		return
	}
	ui.appendMessage("Present: " + strings.Join(names, ", "))
}

func (ui *gameUI) listEntities(args []string) {
	roomIdx := -1
	if len(args) > 0 {
		idx, ok := ui.resolveRoomArg(args)
		if !ok {
			ui.appendMessage("No such room.")
			return
		}
		roomIdx = idx
	}
	count := 0
	for _, e := range ui.sim.Entities {
		if roomIdx >= 0 && e.Room != roomIdx {
			continue
		}
		roomName := ""
		if e.Room >= 0 && e.Room < len(ui.sim.Rooms) {
			roomName = ui.sim.Rooms[e.Room].Name
		}
		ui.appendMessage(fmt.Sprintf("%s  (%s, %s)", e.Name, roomName, ui.scratch.Temperature(e.TempK, ui.opts.TempUnit)))
		count++
	}
	if count == 0 {
		ui.appendMessage("Nothing found.")
	}
}

func (ui *gameUI) listRooms() {
	for i, room := range ui.sim.Rooms {
		marker := "  "
		if i == ui.roomFocus {
			marker = "> "
		}
		ui.appendMessage(fmt.Sprintf("%s%s  ambient %s, %d objects",
			marker, room.Name, ui.scratch.Temperature(room.AmbientK, ui.opts.TempUnit), len(ui.roomEntities(i))))
	}
}

func (ui *gameUI) stepTicks(intent parser.Intent) {
	n := 1
	if intent.Quantity != nil && intent.Quantity.Unit == "count" && intent.Quantity.N > 0 {
		n = intent.Quantity.N
	}
	if n > station.TicksPerCycle {
		n = station.TicksPerCycle
	}
	if !ui.sim.Clock.Paused {
		ui.sim.SetPaused(true)
		ui.appendMessage("Clock holding while stepping.")
	}
	for i := 0; i < n; i++ {
		for _, msg := range ui.sim.Step() {
			ui.appendMessage(msg)
		}
	}
	ui.appendMessage(fmt.Sprintf("Advanced %d tick(s). %s", n, formatStationClock(ui.sim.Clock)))
}

func (ui *gameUI) adjustEntityTemp(intent parser.Intent, sign float64) {
	entity, ok := ui.resolveEntityArg(firstArg(intent))
	if !ok {
		ui.appendMessage("No such object aboard.")
		return
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
	if err := ui.sim.AdjustTemperature(entity, sign*delta); err != nil {
		ui.appendMessage("Cannot adjust: " + err.Error())
		return
	}
	verb := "Heated"
	if sign < 0 {
		verb = "Cooled"
	}
	ui.appendMessage(fmt.Sprintf("%s %s by %.0f K to %s.",
		verb, entity.Name, delta, ui.scratch.Temperature(entity.TempK, ui.opts.TempUnit)))
}

func (ui *gameUI) infectEntity(intent parser.Intent) {
	entity, ok := ui.resolveEntityArg(firstArg(intent))
	if !ok {
		ui.appendMessage("No such object aboard.")
		return
	}
	disease := station.DiseaseSporeBloom
	for _, arg := range intent.Args[1:] {
		if d, found := ui.diseaseNames[parser.Normalise(arg)]; found {
			disease = d
			break
		}
	}
	count := int64(1000)
	if intent.Quantity != nil && intent.Quantity.Unit == "count" && intent.Quantity.N > 0 {
		count = int64(intent.Quantity.N)
	}
	if err := ui.sim.Infect(entity, disease, count); err != nil {
		ui.appendMessage("Cannot infect: " + err.Error())
		return
	}
	ui.appendMessage(fmt.Sprintf("Seeded %d %s germs on %s.",
		count, ui.res.Resolve(disease.NameID()), entity.Name))
}

func (ui *gameUI) cureEntity(intent parser.Intent) {
	if intent.Quantity != nil && intent.Quantity.Unit == "all" {
		cured := 0
		for _, e := range ui.sim.Entities {
			if germs, ok := e.GermLoad(); ok && germs.Count > 0 {
				if err := ui.sim.Cure(e); err == nil {
					cured++
				}
			}
		}
		ui.appendMessage(fmt.Sprintf("Sterilised %d object(s).", cured))
		return
	}
	entity, ok := ui.resolveEntityArg(firstArg(intent))
	if !ok {
		ui.appendMessage("No such object aboard.")
		return
	}
	if err := ui.sim.Cure(entity); err != nil {
		ui.appendMessage("Cannot cure: " + err.Error())
		return
	}
	ui.appendMessage("Sterilised " + entity.Name + ".")
}

func (ui *gameUI) toggleEntity(intent parser.Intent) {
	entity, ok := ui.resolveEntityArg(firstArg(intent))
	if !ok {
		ui.appendMessage("No such object aboard.")
		return
	}
	on, err := ui.sim.ToggleFixture(entity)
	if err != nil {
		ui.appendMessage("Cannot toggle: " + err.Error())
		return
	}
	state := "off"
	if on {
		state = "on"
	}
	ui.appendMessage(entity.Name + " switched " + state + ".")
}

func (ui *gameUI) swapEntityElement(intent parser.Intent) {
	if len(intent.Args) < 2 {
		ui.appendMessage("Swap needs an object and a material.")
		return
	}
	entity, ok := ui.resolveEntityArg(intent.Args[0])
	if !ok {
		ui.appendMessage("No such object aboard.")
		return
	}
	id, found := ui.elementNames[parser.Normalise(intent.Args[1])]
	if !found {
		ui.appendMessage("Unknown material.")
		return
	}
	if err := ui.sim.SwapElement(entity, id); err != nil {
		ui.appendMessage("Cannot swap: " + err.Error())
		return
	}
	ui.appendMessage(fmt.Sprintf("%s is now %s.",
		entity.Name, ui.res.Resolve(ui.sim.Catalog().Get(id).NameID)))
}

func (ui *gameUI) setUnit(args []string) {
	if len(args) == 0 {
		return
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
		ui.appendMessage("Units: kelvin, celsius, fahrenheit.")
		return
	}
	ui.opts.TempUnit = unit
	ui.applyOptions()
	ui.appendMessage("Temperatures now read in " + tempUnitName(unit) + ".")
}

// setRadiation flips both the readout rows and the sim hazard together, so
// turning the display on always means the numbers underneath are moving.
func (ui *gameUI) setRadiation(args []string) {
	enable := !ui.opts.Radiation
	if len(args) > 0 {
		switch parser.Normalise(args[0]) {
		case "on", "enable", "enabled", "true":
			enable = true
		case "off", "disable", "disabled", "false":
			enable = false
		default:
			ui.appendMessage("Radiation: on or off.")
			return
		}
	}
	ui.opts.Radiation = enable
	ui.sim.Config.RadiationEnabled = enable
	ui.applyOptions()
	if enable {
		ui.appendMessage("Radiation hazard live. Readouts on.")
	} else {
		ui.appendMessage("Radiation hazard secured. Readouts off.")
	}
}

func (ui *gameUI) saveShift(intent parser.Intent) {
	slot := intentSlot(intent, 1)
	path := savePathForSlot(slot)
	if err := station.SaveSim(path, ui.sim); err != nil {
		ui.appendMessage("Save failed: " + err.Error())
		return
	}
	ui.appendMessage("Shift saved to " + path + ".")
}

func (ui *gameUI) loadShift(intent parser.Intent) {
	path := ""
	if slot := intentSlot(intent, 0); slot > 0 {
		path = savePathForSlot(slot)
	} else {
		entries := loadSaves()
		if len(entries) == 0 {
			ui.appendMessage("No saved shifts found.")
			return
		}
		path = entries[0].Path
	}
	sim, err := station.LoadSim(path)
	if err != nil {
		ui.appendMessage("Load failed: " + err.Error())
		return
	}
	ui.attachSim(sim)
	ui.appendMessage("Shift restored from " + filepath.Base(path) + ".")
}

func intentSlot(intent parser.Intent, fallback int) int {
	if intent.Quantity != nil && intent.Quantity.Unit == "count" && intent.Quantity.N > 0 {
		return clampInt(intent.Quantity.N, 1, 99)
	}
	if len(intent.Args) > 0 {
		if n, err := strconv.Atoi(intent.Args[0]); err == nil && n > 0 {
			return clampInt(n, 1, 99)
		}
	}
	return fallback
}

func (ui *gameUI) appendMessage(msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	ui.messages = append(ui.messages, time.Now().Format("[15:04:05] ")+msg)
	if len(ui.messages) > maxMessages {
		ui.messages = ui.messages[len(ui.messages)-maxMessages:]
	}
}

// ---------------------------------------------------------------------------
// Draw
// ---------------------------------------------------------------------------

type runLayout struct {
	top     rl.Rectangle
	log     rl.Rectangle
	list    rl.Rectangle
	details rl.Rectangle
	console rl.Rectangle
}

func runScreenLayout(inset rl.Rectangle) runLayout {
	gap := float32(spaceS)
	topH := float32(64)
	consoleH := float32(54)

	top := rl.NewRectangle(inset.X+gap, inset.Y+gap, inset.Width-2*gap, topH)
	console := rl.NewRectangle(inset.X+gap, inset.Y+inset.Height-consoleH-gap, inset.Width-2*gap, consoleH)

	bodyY := top.Y + top.Height + gap
	bodyH := console.Y - gap - bodyY
	splitX := inset.X + inset.Width*0.56

	logRect := rl.NewRectangle(inset.X+gap, bodyY, splitX-inset.X-2*gap, bodyH)
	rightX := splitX
	rightW := inset.X + inset.Width - gap - rightX
	listH := bodyH * 0.4
	list := rl.NewRectangle(rightX, bodyY, rightW, listH)
	details := rl.NewRectangle(rightX, bodyY+listH+gap, rightW, bodyH-listH-gap)

	return runLayout{top: top, log: logRect, list: list, details: details, console: console}
}

func (ui *gameUI) drawRun(inset rl.Rectangle) {
	if ui.sim == nil {
		return
	}
	layout := runScreenLayout(inset)

	ui.drawStatusStrip(layout.top)
	ui.drawMessageLog(layout.log)
	ui.drawEntityList(layout.list)
	ui.drawDetailsPanel(layout.details)
	ui.drawConsole(layout.console)
}

func (ui *gameUI) drawStatusStrip(rect rl.Rectangle) {
	DrawPanel(rect, "", false)
	x := int32(rect.X) + spaceM
	y := int32(rect.Y) + (int32(rect.Height)-typeScale.Body)/2

	clockText := formatStationClock(ui.sim.Clock)
	drawText(clockText, x, y, typeScale.Body, colorText)
	if ui.sim.Clock.Paused {
		drawText("HOLD", x+measureText(clockText, typeScale.Body)+spaceS, y, typeScale.Body, colorWarn)
	}

	room := ""
	if ui.roomFocus >= 0 && ui.roomFocus < len(ui.sim.Rooms) {
		room = ui.sim.Rooms[ui.roomFocus].Name
	}
	drawTextCentered("Focus: "+room, int32(rect.X+rect.Width/2), y, typeScale.Body, colorDim)

	right := fmt.Sprintf("%s  %s", ui.sim.Layout.Name, formatPlayedFor(ui.playedFor))
	w := measureText(right, typeScale.Small)
	drawText(right, int32(rect.X+rect.Width)-spaceM-w, y+2, typeScale.Small, colorMuted)
}

func (ui *gameUI) drawMessageLog(rect rl.Rectangle) {
	DrawPanel(rect, "Station Log", false)
	textX := int32(rect.X) + spaceM
	maxW := int32(rect.Width) - 2*spaceM
	lineH := textLineHeight(typeScale.Log)
	y := int32(rect.Y+rect.Height) - spaceM - lineH
	topLimit := int32(rect.Y) + 86

	for i := len(ui.messages) - 1; i >= 0 && y >= topLimit; i-- {
		msg := ui.messages[i]
		clr := colorText
		if strings.Contains(msg, "] > ") {
			clr = colorDim
		}
		lines := wrapText(msg, maxW, typeScale.Log)
		for j := len(lines) - 1; j >= 0 && y >= topLimit; j-- {
			drawLogText(lines[j], textX, y, typeScale.Log, clr)
			y -= lineH
		}
	}
}

func (ui *gameUI) drawEntityList(rect rl.Rectangle) {
	DrawPanel(rect, "Objects", false)

	entities := ui.roomEntities(ui.roomFocus)
	rowX := rect.X + spaceS
	rowW := rect.Width - 2*spaceS
	y := rect.Y + 80
	mouse := rl.GetMousePosition()

	if len(entities) == 0 {
		drawText("Nothing in this room.", int32(rowX), int32(y), typeScale.Small, colorMuted)
		return
	}
	for i, e := range entities {
		if y+uitheme.RowHeight > rect.Y+rect.Height-spaceS {
			drawText(fmt.Sprintf("+%d more", len(entities)-i), int32(rowX), int32(y), typeScale.Small, colorMuted)
			break
		}
		rowRect := listRowRect(rowX, y, rowW)
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.CheckCollisionPointRec(mouse, rowRect) {
			ui.selectEntity(e)
		}
		state := listStateNormal
		if e == ui.selected {
			state = listStateSelected
		}
		name := e.Name
		if op, ok := e.OperationalState(); ok {
			if op.Active {
				name = "* " + name
			} else {
				name = "o " + name
			}
		}
		DrawListItem(rowRect, state, name, ui.scratch.Temperature(e.TempK, ui.opts.TempUnit))
		y += uitheme.RowHeight + 4
	}
}

func (ui *gameUI) drawDetailsPanel(rect rl.Rectangle) {
	header := "Details"
	active := ui.details != nil && ui.details.Active()
	if active && ui.details.Title() != "" {
		header = ui.details.Title()
	}
	DrawPanel(rect, header, ui.selected != nil)

	textX := int32(rect.X) + spaceM
	maxW := int32(rect.Width) - 2*spaceM
	y := int32(rect.Y) + 86

	if !active || ui.selected == nil {
		drawText("Select an object to inspect it.", textX, y, typeScale.Body, colorMuted)
		drawText("Try: select water tank, or press TAB.", textX, y+textLineHeight(typeScale.Body), typeScale.Small, colorMuted)
		return
	}

	mouse := rl.GetMousePosition()
	lineH := textLineHeight(typeScale.Body)
	bottom := int32(rect.Y+rect.Height) - spaceM
	tooltip := ""

	for _, label := range ui.details.Lines() {
		if y+lineH > bottom-34 {
			break
		}
		lineRect := rl.NewRectangle(float32(textX), float32(y), float32(maxW), float32(lineH))
		clr := colorText
		if label.Tooltip != "" && rl.CheckCollisionPointRec(mouse, lineRect) {
			clr = colorAccent
			tooltip = label.Tooltip
		}
		drawText(safeText(label.Text), textX, y, typeScale.Body, clr)
		y += lineH
	}

	elem := ui.sim.Catalog().Get(ui.selected.PrimaryElement())
	if elem.HighTemp > 0 && y+34 < bottom {
		warn := elem.HighTemp
		if delta, ok := ui.selected.OverheatModifier(); ok {
			warn += delta
		}
		gauge := rl.NewRectangle(float32(textX), float32(y+6), float32(maxW), 28)
		DrawThermalGauge(gauge, "Thermal", ui.scratch.Temperature(ui.selected.TempK, ui.opts.TempUnit),
			ui.selected.TempK, GaugeBounds{MaxK: elem.HighTemp * 1.2, WarnK: warn})
	}

	if tooltip != "" {
		ui.drawTooltip(mouse, tooltip)
	}
}

func (ui *gameUI) drawTooltip(mouse rl.Vector2, text string) {
	size := typeScale.Small
	lines := wrapText(text, 360-2*spaceS, size)
	w := int32(0)
	for _, line := range lines {
		if lw := measureText(line, size); lw > w {
			w = lw
		}
	}
	boxW := float32(w + 2*spaceS)
	boxH := float32(int32(len(lines))*textLineHeight(size) + 2*spaceS)
	x := mouse.X + 18
	y := mouse.Y + 18
	if x+boxW > float32(ui.width)-8 {
		x = mouse.X - boxW - 8
	}
	if y+boxH > float32(ui.height)-8 {
		y = mouse.Y - boxH - 8
	}
	box := rl.NewRectangle(x, y, boxW, boxH)
	rl.DrawRectangleRounded(box, 0.12, 6, rl.Fade(colorPanel, 0.97))
	rl.DrawRectangleRoundedLinesEx(box, 0.12, 6, 1.2, rl.Fade(colorAccent, 0.8))
	ty := int32(y) + spaceS
	for _, line := range lines {
		drawText(line, int32(x)+spaceS, ty, size, colorText)
		ty += textLineHeight(size)
	}
}

func (ui *gameUI) drawConsole(rect rl.Rectangle) {
	prompt := "Speak to the station. Try: select water tank, heat it 20, pause"
	if ui.pendingClarify != nil {
		prompt = safeText(ui.pendingClarify.Prompt)
	}
	DrawInputField(rect, ui.consoleInput, prompt, true)
}
