//go:build cgo

package gui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/stationfall/internal/hud"
	"github.com/appengine-ltd/stationfall/internal/locale"
	"github.com/appengine-ltd/stationfall/internal/packs"
	"github.com/appengine-ltd/stationfall/internal/parser"
	"github.com/appengine-ltd/stationfall/internal/station"
	"github.com/appengine-ltd/stationfall/internal/update"
	uitheme "github.com/appengine-ltd/stationfall/internal/gui/theme"
)

type AppConfig struct {
	WindowWidth  int32
	WindowHeight int32
	Title        string
	Version      string
	NoUpdate     bool

	// PacksDir overrides the per-user content pack directory when set.
	PacksDir string
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	if cfg.WindowWidth <= 0 {
		cfg.WindowWidth = 1440
	}
	if cfg.WindowHeight <= 0 {
		cfg.WindowHeight = 900
	}
	if cfg.Title == "" {
		cfg.Title = "Stationfall"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(a.cfg.WindowWidth, a.cfg.WindowHeight, a.cfg.Title)
	defer rl.CloseWindow()
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)

	initTypography()
	defer shutdownTypography()
	uitheme.InitSkin()
	defer uitheme.UnloadSkin()

	ui := newGameUI(a.cfg)
	defer ui.shutdown()

	for !ui.quit && !rl.WindowShouldClose() {
		ui.width = int32(rl.GetScreenWidth())
		ui.height = int32(rl.GetScreenHeight())
		ui.update()

		rl.BeginDrawing()
		rl.ClearBackground(colorBG)
		ui.draw()
		rl.EndDrawing()
	}
	return nil
}

type screen int

const (
	screenMenu screen = iota
	screenSetup
	screenLayoutPicker
	screenOptions
	screenLoad
	screenRun
	screenStationMap
	screenConsoleGuide
	screenPacks
)

const (
	defaultTickMillis = 200
	minTickMillis     = 50
	maxTickMillis     = 2000
)

type setupState struct {
	Cursor      int
	LayoutID    station.LayoutID
	Seed        string
	EditingSeed bool
	Radiation   bool
}

type optionsState struct {
	Cursor     int
	TempUnit   hud.TempUnit
	Radiation  bool
	TickMillis int
}

type saveEntry struct {
	Path     string
	Slot     int
	SavedAt  time.Time
	Layout   string
	Cycle    int64
	Entities int
}

type loadState struct {
	Cursor  int
	Entries []saveEntry
	Err     string
}

type layoutChoice struct {
	ID          station.LayoutID
	Name        string
	Description string
}

type layoutPickerState struct {
	Cursor int
}

type updateResult struct {
	message string
	applied bool
	err     error
}

type gameUI struct {
	cfg    AppConfig
	width  int32
	height int32
	quit   bool
	screen screen

	menuCursor     int
	updateChecked  bool
	checkingUpdate bool
	applyingUpdate bool
	updateReady    bool
	updateStatus   string
	updateResultCh chan updateResult

	setup  setupState
	picker layoutPickerState
	opts   optionsState
	load   loadState
	packs  packsState

	customLayouts []station.Layout

	res     locale.Table
	scratch *hud.Scratch
	parser  *parser.Parser
	intents *intentQueue

	packsDir      string
	localeWatcher *packs.StringsWatcher

	sim            *station.Sim
	inspector      *hud.Inspector
	details        *DetailsPanel
	selected       *station.Entity
	roomFocus      int
	playedFor      time.Duration
	messages       []string
	consoleInput   string
	status         string
	pendingClarify *parser.ClarifyQuestion

	elementNames map[string]station.ElementID
	diseaseNames map[string]station.DiseaseID
}

func newGameUI(cfg AppConfig) *gameUI {
	ui := &gameUI{
		cfg:            cfg,
		screen:         screenMenu,
		updateResultCh: make(chan updateResult, 1),
		res:            locale.English(),
		scratch:        hud.NewScratch(),
		parser:         parser.New(),
		intents:        newIntentQueue(32),
		setup: setupState{
			LayoutID: station.LayoutIntakeBayID,
		},
		opts: optionsState{
			TempUnit:   hud.UnitKelvin,
			TickMillis: defaultTickMillis,
		},
	}

	ui.packsDir = cfg.PacksDir
	if ui.packsDir == "" {
		ui.packsDir = packs.DefaultDir()
	}

	ui.customLayouts = loadCustomLayouts()

	if overlay, err := packs.LoadStrings(ui.packsDir); err == nil && len(overlay) > 0 {
		ui.res = ui.res.Merge(overlay)
	}
	if watcher, err := packs.WatchStrings(ui.packsDir); err == nil {
		ui.localeWatcher = watcher
	}

	ui.rebuildNameIndex()
	return ui
}

func (ui *gameUI) shutdown() {
	if ui.localeWatcher != nil {
		ui.localeWatcher.Close()
	}
}

func (ui *gameUI) update() {
	ui.pollUpdateResult()
	ui.pollLocaleReload()

	switch ui.screen {
	case screenMenu:
		ui.updateMenu()
	case screenSetup:
		ui.updateSetup()
	case screenLayoutPicker:
		ui.updateLayoutPicker()
	case screenOptions:
		ui.updateOptions()
	case screenLoad:
		ui.updateLoad()
	case screenRun:
		ui.updateRun()
	case screenStationMap:
		ui.updateStationMap()
	case screenConsoleGuide:
		ui.updateConsoleGuide()
	case screenPacks:
		ui.updatePacks()
	}
}

func (ui *gameUI) draw() {
	inset := DrawFrame(ui.width, ui.height)

	switch ui.screen {
	case screenMenu:
		ui.drawMenu(inset)
	case screenSetup:
		ui.drawSetup(inset)
	case screenLayoutPicker:
		ui.drawLayoutPicker(inset)
	case screenOptions:
		ui.drawOptions(inset)
	case screenLoad:
		ui.drawLoad(inset)
	case screenRun:
		ui.drawRun(inset)
	case screenStationMap:
		ui.drawStationMap(inset)
	case screenConsoleGuide:
		ui.drawConsoleGuide(inset)
	case screenPacks:
		ui.drawPacks(inset)
	}
}

// ---------------------------------------------------------------------------
// Menu
// ---------------------------------------------------------------------------

type menuAction int

const (
	menuActionResume menuAction = iota
	menuActionNewShift
	menuActionLoad
	menuActionOptions
	menuActionGuide
	menuActionPacks
	menuActionInstallUpdate
	menuActionQuit
)

type menuItem struct {
	Label  string
	Action menuAction
}

func (ui *gameUI) menuItems() []menuItem {
	items := make([]menuItem, 0, 7)
	if ui.sim != nil {
		items = append(items, menuItem{Label: "Resume Shift", Action: menuActionResume})
	}
	items = append(items,
		menuItem{Label: "New Shift", Action: menuActionNewShift},
		menuItem{Label: "Load Shift", Action: menuActionLoad},
		menuItem{Label: "Options", Action: menuActionOptions},
		menuItem{Label: "Console Guide", Action: menuActionGuide},
		menuItem{Label: "Content Packs", Action: menuActionPacks},
	)
	if ui.updateReady {
		items = append(items, menuItem{Label: "Install Update", Action: menuActionInstallUpdate})
	}
	items = append(items, menuItem{Label: "Quit", Action: menuActionQuit})
	return items
}

func (ui *gameUI) updateMenu() {
	if !ui.updateChecked {
		ui.updateChecked = true
		if !ui.cfg.NoUpdate {
			ui.triggerUpdateCheck()
		}
	}

	items := ui.menuItems()
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyS) {
		ui.menuCursor = wrapIndex(ui.menuCursor+1, len(items))
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyW) {
		ui.menuCursor = wrapIndex(ui.menuCursor-1, len(items))
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		ui.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		if ui.menuCursor >= len(items) {
			ui.menuCursor = len(items) - 1
		}
		switch items[ui.menuCursor].Action {
		case menuActionResume:
			ui.screen = screenRun
		case menuActionNewShift:
			ui.enterSetup()
		case menuActionLoad:
			ui.enterLoad()
		case menuActionOptions:
			ui.opts.Cursor = 0
			ui.screen = screenOptions
		case menuActionGuide:
			ui.screen = screenConsoleGuide
		case menuActionPacks:
			ui.openPacks()
		case menuActionInstallUpdate:
			ui.triggerApplyUpdate()
		case menuActionQuit:
			ui.quit = true
		}
	}
}

func (ui *gameUI) drawMenu(inset rl.Rectangle) {
	centerX := int32(inset.X + inset.Width/2)

	titleY := int32(inset.Y) + 80
	drawTextCentered("STATIONFALL", centerX, titleY, typeScale.Title+14, colorText)
	drawTextCentered("Salvage Station Oversight Console", centerX, titleY+64, typeScale.Body, colorDim)

	items := ui.menuItems()
	menuW := float32(420)
	rowGap := float32(14)
	menuH := float32(len(items))*(uitheme.ButtonHeight+rowGap) - rowGap
	startY := inset.Y + inset.Height*0.36
	if startY+menuH > inset.Y+inset.Height-90 {
		startY = inset.Y + inset.Height - 90 - menuH
	}
	menuX := inset.X + (inset.Width-menuW)/2

	for i, item := range items {
		state := buttonStateNormal
		if i == ui.menuCursor {
			state = buttonStateSelected
		}
		if item.Action == menuActionInstallUpdate && ui.applyingUpdate {
			state = buttonStateDisabled
		}
		rect := rl.NewRectangle(menuX, startY+float32(i)*(uitheme.ButtonHeight+rowGap), menuW, uitheme.ButtonHeight)
		DrawButton(rect, state, item.Label)
	}

	drawText("v"+ui.cfg.Version, int32(inset.X)+spaceM, int32(inset.Y+inset.Height)-30, typeScale.Small, colorMuted)
	if ui.updateStatus != "" {
		msg := safeText(ui.updateStatus)
		w := measureText(msg, typeScale.Small)
		drawText(msg, int32(inset.X+inset.Width)-spaceM-w, int32(inset.Y+inset.Height)-30, typeScale.Small, colorMuted)
	}
	DrawHintText("Up/Down select   Enter confirm   Q quit", int32(inset.X)+spaceM, int32(inset.Y+inset.Height)-56)
}

// ---------------------------------------------------------------------------
// Update check
// ---------------------------------------------------------------------------

func (ui *gameUI) triggerUpdateCheck() {
	if ui.checkingUpdate || ui.applyingUpdate {
		return
	}
	ui.checkingUpdate = true
	ui.updateStatus = "Checking for updates..."
	version := ui.cfg.Version
	go func() {
		msg, err := update.Check(update.CheckParams{CurrentVersion: version})
		ui.updateResultCh <- updateResult{message: msg, err: err}
	}()
}

func (ui *gameUI) triggerApplyUpdate() {
	if ui.applyingUpdate {
		return
	}
	ui.applyingUpdate = true
	ui.updateStatus = "Installing update..."
	version := ui.cfg.Version
	go func() {
		msg, err := update.Apply(version)
		ui.updateResultCh <- updateResult{message: msg, applied: true, err: err}
	}()
}

func (ui *gameUI) pollUpdateResult() {
	for {
		select {
		case res := <-ui.updateResultCh:
			ui.checkingUpdate = false
			ui.applyingUpdate = false
			if res.err != nil {
				ui.updateStatus = "Update check failed: " + res.err.Error()
				ui.updateReady = false
				continue
			}
			ui.updateStatus = res.message
			ui.updateReady = !res.applied && strings.HasPrefix(res.message, "Update available")
		default:
			return
		}
	}
}

// ---------------------------------------------------------------------------
// Locale packs
// ---------------------------------------------------------------------------

func (ui *gameUI) pollLocaleReload() {
	if ui.localeWatcher == nil {
		return
	}
	for {
		select {
		case overlay := <-ui.localeWatcher.Updates():
			ui.res = locale.English().Merge(overlay)
			if ui.sim != nil && ui.inspector != nil {
				ui.inspector = hud.NewInspector(ui.scratch, ui.res, ui.sim.Catalog(), &ui.sim.Clock, ui.inspector.Options())
			}
			ui.rebuildNameIndex()
			if ui.screen == screenRun {
				ui.appendMessage("Content pack strings reloaded.")
			}
		default:
			return
		}
	}
}

// rebuildNameIndex refreshes the normalised display-name lookups the console
// uses to map resolved arguments back to element and disease ids.
func (ui *gameUI) rebuildNameIndex() {
	ui.elementNames = make(map[string]station.ElementID)
	catalog := station.NewCatalog()
	if ui.sim != nil {
		catalog = ui.sim.Catalog()
	}
	for _, elem := range catalog.All() {
		name := ui.res.Resolve(elem.NameID)
		if key := parser.Normalise(name); key != "" {
			ui.elementNames[key] = elem.ID
		}
	}

	ui.diseaseNames = make(map[string]station.DiseaseID)
	for _, disease := range []station.DiseaseID{station.DiseaseSporeBloom, station.DiseaseRustLung, station.DiseaseVoidPhage} {
		name := ui.res.Resolve(disease.NameID())
		if key := parser.Normalise(name); key != "" {
			ui.diseaseNames[key] = disease
		}
	}
}

// ---------------------------------------------------------------------------
// New shift setup
// ---------------------------------------------------------------------------

const setupRows = 4

func (ui *gameUI) enterSetup() {
	ui.setup.Cursor = 0
	ui.setup.EditingSeed = false
	ui.status = ""
	ui.screen = screenSetup
}

func (ui *gameUI) updateSetup() {
	if ui.setup.EditingSeed {
		ui.setup.Seed = captureDigitInput(ui.setup.Seed, 18)
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) || rl.IsKeyPressed(rl.KeyEscape) {
			ui.setup.EditingSeed = false
		}
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.screen = screenMenu
		return
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyS) {
		ui.setup.Cursor = wrapIndex(ui.setup.Cursor+1, setupRows)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyW) {
		ui.setup.Cursor = wrapIndex(ui.setup.Cursor-1, setupRows)
	}

	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyRight) {
		dir := 1
		if rl.IsKeyPressed(rl.KeyLeft) {
			dir = -1
		}
		switch ui.setup.Cursor {
		case 0:
			ui.cycleSetupLayout(dir)
		case 2:
			ui.setup.Radiation = !ui.setup.Radiation
		}
	}

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		switch ui.setup.Cursor {
		case 0:
			ui.enterLayoutPicker()
		case 1:
			ui.setup.EditingSeed = true
		case 2:
			ui.setup.Radiation = !ui.setup.Radiation
		case 3:
			ui.startRunFromSetup()
		}
	}
}

func (ui *gameUI) cycleSetupLayout(dir int) {
	choices := ui.layoutChoices()
	idx := 0
	for i, choice := range choices {
		if choice.ID == ui.setup.LayoutID {
			idx = i
			break
		}
	}
	ui.setup.LayoutID = choices[wrapIndex(idx+dir, len(choices))].ID
}

func (ui *gameUI) drawSetup(inset rl.Rectangle) {
	panelW := float32(640)
	panelH := float32(430)
	panel := rl.NewRectangle(inset.X+(inset.Width-panelW)/2, inset.Y+(inset.Height-panelH)/2, panelW, panelH)
	DrawPanel(panel, "New Shift", true)

	seedValue := strings.TrimSpace(ui.setup.Seed)
	if seedValue == "" {
		seedValue = "Random"
	}
	rows := []struct {
		label string
		value string
	}{
		{"Deck Layout", ui.layoutNameFor(ui.setup.LayoutID)},
		{"Seed", seedValue},
		{"Radiation Hazard", onOff(ui.setup.Radiation)},
		{"Start Shift", ""},
	}

	rowX := panel.X + spaceM
	rowW := panel.Width - 2*spaceM
	y := panel.Y + 86
	for i, row := range rows {
		state := listStateNormal
		if i == ui.setup.Cursor {
			state = listStateSelected
		}
		if i == 1 && ui.setup.EditingSeed {
			DrawListItem(listRowRect(rowX, y, rowW), state, row.label, "")
			inputW := float32(220)
			input := rl.NewRectangle(rowX+rowW-inputW-spaceS, y+3, inputW, uitheme.RowHeight-6)
			DrawInputField(input, ui.setup.Seed, "random", true)
		} else {
			DrawListItem(listRowRect(rowX, y, rowW), state, row.label, row.value)
		}
		y += uitheme.RowHeight + 10
	}

	if ui.status != "" {
		drawWrappedText(safeText(ui.status), int32(rowX), int32(y+8), int32(rowW), typeScale.Small, colorWarn)
	}

	DrawHintText("Enter edit/start   Left/Right adjust   Esc back", int32(panel.X)+spaceM, int32(panel.Y+panel.Height)-34)
}

func (ui *gameUI) startRunFromSetup() {
	cfg := station.SimConfig{
		LayoutID:         ui.setup.LayoutID,
		RadiationEnabled: ui.setup.Radiation,
	}
	if seed := strings.TrimSpace(ui.setup.Seed); seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			ui.status = "Seed must be a plain number."
			return
		}
		cfg.Seed = v
	}

	sim, err := station.NewSimWithLayouts(cfg, ui.availableLayouts(), nil)
	if err != nil {
		ui.status = "Could not start shift: " + err.Error()
		return
	}
	ui.attachSim(sim)
	ui.appendMessage("Shift started aboard " + sim.Layout.Name + ".")
	ui.screen = screenRun
}

// attachSim points every run-screen collaborator at a fresh sim. The details
// panel and inspector are rebuilt so no cached text from a previous shift can
// leak into the new one.
func (ui *gameUI) attachSim(sim *station.Sim) {
	ui.sim = sim
	ui.selected = nil
	ui.roomFocus = 0
	ui.playedFor = 0
	ui.messages = nil
	ui.consoleInput = ""
	ui.status = ""
	ui.pendingClarify = nil
	ui.details = NewDetailsPanel()
	ui.inspector = hud.NewInspector(ui.scratch, ui.res, sim.Catalog(), &sim.Clock, hud.Options{
		TempUnit:  ui.opts.TempUnit,
		Radiation: ui.opts.Radiation,
	})
	ui.rebuildNameIndex()
}

func (ui *gameUI) availableLayouts() []station.Layout {
	layouts := station.BuiltInLayouts()
	return append(layouts, ui.customLayouts...)
}

func (ui *gameUI) layoutChoices() []layoutChoice {
	layouts := ui.availableLayouts()
	choices := make([]layoutChoice, 0, len(layouts)+1)
	for _, layout := range layouts {
		choices = append(choices, layoutChoice{ID: layout.ID, Name: layout.Name, Description: layout.Description})
	}
	choices = append(choices, layoutChoice{
		ID:          station.LayoutRandomID,
		Name:        "Random Deck",
		Description: "Pick any deck at random using the shift seed.",
	})
	return choices
}

func (ui *gameUI) layoutNameFor(id station.LayoutID) string {
	for _, choice := range ui.layoutChoices() {
		if choice.ID == id {
			return choice.Name
		}
	}
	return string(id)
}

// ---------------------------------------------------------------------------
// Layout picker
// ---------------------------------------------------------------------------

func (ui *gameUI) enterLayoutPicker() {
	ui.picker.Cursor = 0
	for i, choice := range ui.layoutChoices() {
		if choice.ID == ui.setup.LayoutID {
			ui.picker.Cursor = i
			break
		}
	}
	ui.screen = screenLayoutPicker
}

func (ui *gameUI) updateLayoutPicker() {
	choices := ui.layoutChoices()
	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.screen = screenSetup
		return
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyS) {
		ui.picker.Cursor = wrapIndex(ui.picker.Cursor+1, len(choices))
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyW) {
		ui.picker.Cursor = wrapIndex(ui.picker.Cursor-1, len(choices))
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		ui.setup.LayoutID = choices[clampInt(ui.picker.Cursor, 0, len(choices)-1)].ID
		ui.screen = screenSetup
	}
}

func (ui *gameUI) drawLayoutPicker(inset rl.Rectangle) {
	choices := ui.layoutChoices()

	listW := inset.Width * 0.42
	listPanel := rl.NewRectangle(inset.X+spaceM, inset.Y+spaceM, listW, inset.Height-2*spaceM)
	DrawPanel(listPanel, "Deck Layouts", true)

	detailPanel := rl.NewRectangle(listPanel.X+listPanel.Width+spaceM, listPanel.Y, inset.Width-listW-3*spaceM, listPanel.Height)
	DrawPanel(detailPanel, "Deck Briefing", false)

	rowX := listPanel.X + spaceM
	rowW := listPanel.Width - 2*spaceM
	y := listPanel.Y + 86
	for i, choice := range choices {
		state := listStateNormal
		if i == ui.picker.Cursor {
			state = listStateSelected
		}
		right := ""
		if layout, found := station.GetLayout(ui.availableLayouts(), choice.ID); found {
			right = fmt.Sprintf("%d rooms", len(layout.Rooms))
		}
		DrawListItem(listRowRect(rowX, y, rowW), state, choice.Name, right)
		y += uitheme.RowHeight + 8
	}

	cursor := clampInt(ui.picker.Cursor, 0, len(choices)-1)
	choice := choices[cursor]
	textX := int32(detailPanel.X + spaceM)
	textW := int32(detailPanel.Width - 2*spaceM)
	textY := int32(detailPanel.Y) + 86
	textY = drawWrappedText(choice.Description, textX, textY, textW, typeScale.Body, colorText)
	textY += textLineHeight(typeScale.Body)

	if layout, found := station.GetLayout(ui.availableLayouts(), choice.ID); found {
		spawns := 0
		for _, room := range layout.Rooms {
			spawns += len(room.Spawns)
		}
		drawText(fmt.Sprintf("%d rooms, %d objects aboard", len(layout.Rooms), spawns), textX, textY, typeScale.Small, colorDim)
		textY += textLineHeight(typeScale.Small) + 6
		for _, room := range layout.Rooms {
			line := fmt.Sprintf("%s  %s ambient", room.Name, ui.scratch.Temperature(room.AmbientK, ui.opts.TempUnit))
			drawText(line, textX, textY, typeScale.Small, colorMuted)
			textY += textLineHeight(typeScale.Small)
		}
	}

	DrawHintText("Enter choose   Esc back", int32(listPanel.X)+spaceM, int32(listPanel.Y+listPanel.Height)-34)
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

const optionRows = 4

func (ui *gameUI) updateOptions() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.screen = screenMenu
		return
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyS) {
		ui.opts.Cursor = wrapIndex(ui.opts.Cursor+1, optionRows)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyW) {
		ui.opts.Cursor = wrapIndex(ui.opts.Cursor-1, optionRows)
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		ui.adjustOption(-1)
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		ui.adjustOption(1)
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		if ui.opts.Cursor == optionRows-1 {
			ui.screen = screenMenu
		} else {
			ui.adjustOption(1)
		}
	}
}

func (ui *gameUI) adjustOption(dir int) {
	switch ui.opts.Cursor {
	case 0:
		units := []hud.TempUnit{hud.UnitKelvin, hud.UnitCelsius, hud.UnitFahrenheit}
		idx := 0
		for i, unit := range units {
			if unit == ui.opts.TempUnit {
				idx = i
				break
			}
		}
		ui.opts.TempUnit = units[wrapIndex(idx+dir, len(units))]
	case 1:
		ui.opts.Radiation = !ui.opts.Radiation
	case 2:
		ui.opts.TickMillis = clampInt(ui.opts.TickMillis+dir*50, minTickMillis, maxTickMillis)
	}
	ui.applyOptions()
}

// applyOptions pushes display preferences into the inspector. The inspector
// drops its snapshot so the next frame rebuilds every cached line in the new
// unit.
func (ui *gameUI) applyOptions() {
	if ui.inspector != nil {
		ui.inspector.SetOptions(hud.Options{
			TempUnit:  ui.opts.TempUnit,
			Radiation: ui.opts.Radiation,
		})
	}
}

func (ui *gameUI) drawOptions(inset rl.Rectangle) {
	panelW := float32(640)
	panelH := float32(420)
	panel := rl.NewRectangle(inset.X+(inset.Width-panelW)/2, inset.Y+(inset.Height-panelH)/2, panelW, panelH)
	DrawPanel(panel, "Options", true)

	rows := []struct {
		label string
		value string
	}{
		{"Temperature Unit", tempUnitName(ui.opts.TempUnit)},
		{"Radiation Readouts", onOff(ui.opts.Radiation)},
		{"Tick Length", fmt.Sprintf("%d ms", ui.opts.TickMillis)},
		{"Back", ""},
	}

	rowX := panel.X + spaceM
	rowW := panel.Width - 2*spaceM
	y := panel.Y + 86
	for i, row := range rows {
		state := listStateNormal
		if i == ui.opts.Cursor {
			state = listStateSelected
		}
		DrawListItem(listRowRect(rowX, y, rowW), state, row.label, row.value)
		y += uitheme.RowHeight + 10
	}

	preview := fmt.Sprintf("Preview: room ambient %s, one station second every %d ms",
		ui.scratch.Temperature(293.15, ui.opts.TempUnit), ui.opts.TickMillis)
	drawWrappedText(preview, int32(rowX), int32(y+10), int32(rowW), typeScale.Small, colorDim)

	DrawHintText("Left/Right adjust   Esc back", int32(panel.X)+spaceM, int32(panel.Y+panel.Height)-34)
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

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}

// ---------------------------------------------------------------------------
// Load shift
// ---------------------------------------------------------------------------

const savePattern = "stationfall-save-*.json"

func savePathForSlot(slot int) string {
	return fmt.Sprintf("stationfall-save-%d.json", slot)
}

func (ui *gameUI) enterLoad() {
	ui.load = loadState{Entries: loadSaves()}
	if len(ui.load.Entries) == 0 {
		ui.load.Err = "No saved shifts found."
	}
	ui.screen = screenLoad
}

func loadSaves() []saveEntry {
	paths, err := filepath.Glob(savePattern)
	if err != nil {
		return nil
	}
	entries := make([]saveEntry, 0, len(paths))
	for _, path := range paths {
		if entry, ok := peekSave(path); ok {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SavedAt.After(entries[j].SavedAt)
	})
	return entries
}

// peekSave reads just enough of a save file to describe it on the load
// screen. Unreadable or malformed files are skipped rather than surfaced.
func peekSave(path string) (saveEntry, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return saveEntry{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return saveEntry{}, false
	}
	var payload struct {
		FormatVersion int `json:"format_version"`
		Sim           struct {
			Layout struct {
				Name string `json:"name"`
			} `json:"layout"`
			Clock    station.Clock     `json:"clock"`
			Entities []json.RawMessage `json:"entities"`
		} `json:"sim"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return saveEntry{}, false
	}

	slot := 0
	fmt.Sscanf(filepath.Base(path), "stationfall-save-%d.json", &slot)
	return saveEntry{
		Path:     path,
		Slot:     slot,
		SavedAt:  info.ModTime(),
		Layout:   payload.Sim.Layout.Name,
		Cycle:    payload.Sim.Clock.Cycle(),
		Entities: len(payload.Sim.Entities),
	}, true
}

func (ui *gameUI) updateLoad() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.screen = screenMenu
		return
	}
	n := len(ui.load.Entries)
	if n == 0 {
		return
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyS) {
		ui.load.Cursor = wrapIndex(ui.load.Cursor+1, n)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyW) {
		ui.load.Cursor = wrapIndex(ui.load.Cursor-1, n)
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		entry := ui.load.Entries[clampInt(ui.load.Cursor, 0, n-1)]
		sim, err := station.LoadSim(entry.Path)
		if err != nil {
			ui.load.Err = "Could not load: " + err.Error()
			return
		}
		ui.attachSim(sim)
		ui.appendMessage("Shift restored from " + filepath.Base(entry.Path) + ".")
		ui.screen = screenRun
	}
}

func (ui *gameUI) drawLoad(inset rl.Rectangle) {
	panelW := inset.Width * 0.62
	panelH := inset.Height * 0.72
	panel := rl.NewRectangle(inset.X+(inset.Width-panelW)/2, inset.Y+(inset.Height-panelH)/2, panelW, panelH)
	DrawPanel(panel, "Load Shift", true)

	rowX := panel.X + spaceM
	rowW := panel.Width - 2*spaceM
	y := panel.Y + 86

	if len(ui.load.Entries) == 0 {
		drawText(ui.load.Err, int32(rowX), int32(y), typeScale.Body, colorDim)
	}
	for i, entry := range ui.load.Entries {
		state := listStateNormal
		if i == ui.load.Cursor {
			state = listStateSelected
		}
		left := fmt.Sprintf("Slot %d  %s", entry.Slot, entry.Layout)
		right := fmt.Sprintf("Cycle %d, %d objects  %s", entry.Cycle, entry.Entities, entry.SavedAt.Format("02 Jan 15:04"))
		DrawListItem(listRowRect(rowX, y, rowW), state, left, right)
		y += uitheme.RowHeight + 8
		if y > panel.Y+panel.Height-80 {
			break
		}
	}

	if ui.load.Err != "" && len(ui.load.Entries) > 0 {
		drawText(safeText(ui.load.Err), int32(rowX), int32(panel.Y+panel.Height)-62, typeScale.Small, colorWarn)
	}
	DrawHintText("Enter load   Esc back", int32(panel.X)+spaceM, int32(panel.Y+panel.Height)-34)
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

func (ui *gameUI) tickDuration() time.Duration {
	return time.Duration(clampInt(ui.opts.TickMillis, minTickMillis, maxTickMillis)) * time.Millisecond
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
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

func safeText(s string) string {
	const max = 160
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func drawTextCentered(text string, centerX, y, size int32, clr rl.Color) {
	w := measureText(text, size)
	drawText(text, centerX-w/2, y, size, clr)
}

func drawWrappedText(text string, x, y, maxWidth, size int32, clr rl.Color) int32 {
	for _, line := range wrapText(text, maxWidth, size) {
		drawText(line, x, y, size, clr)
		y += textLineHeight(size)
	}
	return y
}

func wrapText(text string, maxWidth, size int32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		try := current + " " + word
		if measureText(try, size) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = try
	}
	return append(lines, current)
}

func captureTextInput(current string, maxLen int) string {
	for key := rl.GetCharPressed(); key > 0; key = rl.GetCharPressed() {
		if key >= 32 && key <= 126 && len(current) < maxLen {
			current += string(rune(key))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(current) > 0 {
		current = current[:len(current)-1]
	}
	return current
}

func captureDigitInput(current string, maxLen int) string {
	for key := rl.GetCharPressed(); key > 0; key = rl.GetCharPressed() {
		if key >= '0' && key <= '9' && len(current) < maxLen {
			current += string(rune(key))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(current) > 0 {
		current = current[:len(current)-1]
	}
	return current
}

func formatStationClock(c station.Clock) string {
	return fmt.Sprintf("Cycle %d  %03d/%d", c.Cycle(), c.TickOfCycle(), station.TicksPerCycle)
}

func formatPlayedFor(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func drawUILine(x1, y1, x2, y2 float32, clr rl.Color) {
	rl.DrawLineEx(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, 1.5, clr)
}
