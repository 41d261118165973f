package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/stationfall/internal/hud"
	"github.com/appengine-ltd/stationfall/internal/locale"
	"github.com/appengine-ltd/stationfall/internal/packs"
	"github.com/appengine-ltd/stationfall/internal/parser"
	"github.com/appengine-ltd/stationfall/internal/station"
	"github.com/appengine-ltd/stationfall/internal/update"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
	NoUpdate  bool
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	m := newMenuModel(a.cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// --- Styles (retro green) ---
var (
	green       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	brightGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	amber       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	border      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	paneBorder  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("2")).Padding(0, 1)
)

type screen int

const (
	screenMenu screen = iota
	screenRun
	screenMap
	screenGuide
)

// --- Menu model ---

type menuItem int

const (
	itemStart menuItem = iota
	itemLoadShift
	itemCheckUpdate
	itemQuit
)

const menuItemCount = 4

type uiOptions struct {
	tempUnit   hud.TempUnit
	radiation  bool
	tickMillis int
}

const defaultTickMillis = 200

type menuModel struct {
	cfg    AppConfig
	screen screen
	idx    int

	layoutIdx int
	status    string
	busy      bool

	width  int
	height int

	res     locale.Table
	scratch *hud.Scratch
	parser  *parser.Parser
	opts    uiOptions

	sim            *station.Sim
	inspector      *hud.Inspector
	details        *textPanel
	selected       *station.Entity
	roomFocus      int
	messages       []string
	consoleInput   string
	pendingClarify *parser.ClarifyQuestion

	playedFor  time.Duration
	lastTickAt time.Time

	elementNames map[string]station.ElementID
	diseaseNames map[string]station.DiseaseID
}

func newMenuModel(cfg AppConfig) menuModel {
	res := locale.English()
	if overlay, err := packs.LoadStrings(packs.DefaultDir()); err == nil && len(overlay) > 0 {
		res = res.Merge(overlay)
	}
	m := menuModel{
		cfg:     cfg,
		screen:  screenMenu,
		res:     res,
		scratch: hud.NewScratch(),
		parser:  parser.New(),
		opts:    uiOptions{tempUnit: hud.UnitKelvin, tickMillis: defaultTickMillis},
		width:   100,
		height:  32,
	}
	m = m.rebuildNameIndex()
	return m
}

func (m menuModel) Init() tea.Cmd {
	// Update check stays opt-in via the menu.
	return nil
}

// --- Messages and commands ---

type clockTickMsg struct {
	at time.Time
}

const clockTickInterval = 120 * time.Millisecond

func tickCmd() tea.Cmd {
	return tea.Tick(clockTickInterval, func(t time.Time) tea.Msg {
		return clockTickMsg{at: t}
	})
}

type updateResultMsg struct {
	status string
	err    error
}

func checkUpdateCmd(currentVersion string) tea.Cmd {
	return func() tea.Msg {
		// Tiny delay so the UI visibly switches to busy state.
		time.Sleep(150 * time.Millisecond)

		res, err := update.Apply(currentVersion)
		if err != nil {
			return updateResultMsg{err: err}
		}
		return updateResultMsg{status: res}
	}
}

func (m menuModel) tickDuration() time.Duration {
	millis := m.opts.tickMillis
	if millis <= 0 {
		millis = defaultTickMillis
	}
	return time.Duration(millis) * time.Millisecond
}

// --- Update ---

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clockTickMsg:
		return m.updateClockTick(msg)

	case updateResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Update check failed: %v", msg.err)
			return m, nil
		}
		m.status = msg.status
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			// Ignore input while the update check runs.
			return m, nil
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenRun:
			return m.updateRun(msg)
		case screenMap:
			return m.updateMap(msg)
		case screenGuide:
			return m.updateGuide(msg)
		}
	}

	return m, nil
}

// updateClockTick converts wall-clock time since the last tick into sim
// ticks. Time only moves while the run screen is up, but the tick loop keeps
// running so returning from the map or guide resumes cleanly.
func (m menuModel) updateClockTick(msg clockTickMsg) (tea.Model, tea.Cmd) {
	if m.sim == nil {
		return m, nil
	}
	if m.lastTickAt.IsZero() {
		m.lastTickAt = msg.at
		return m, tickCmd()
	}
	elapsed := msg.at.Sub(m.lastTickAt)
	m.lastTickAt = msg.at
	if elapsed < 0 {
		elapsed = 0
	}

	if m.screen == screenRun {
		m.playedFor += elapsed
		for _, text := range m.sim.AdvanceRealtime(elapsed, m.tickDuration()) {
			m = m.appendMessage(text)
		}
		if m.selected != nil {
			m.inspector.Update(m.details, m.selected)
		}
	}
	return m, tickCmd()
}

func (m menuModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.sim != nil {
			m.screen = screenRun
			return m, nil
		}
		return m, nil
	case "up", "k":
		m.idx = (m.idx + menuItemCount - 1) % menuItemCount
		return m, nil
	case "down", "j":
		m.idx = (m.idx + 1) % menuItemCount
		return m, nil
	case "left", "h":
		if menuItem(m.idx) == itemStart {
			layouts := station.BuiltInLayouts()
			m.layoutIdx = (m.layoutIdx + len(layouts) - 1) % len(layouts)
		}
		return m, nil
	case "right", "l":
		if menuItem(m.idx) == itemStart {
			m.layoutIdx = (m.layoutIdx + 1) % len(station.BuiltInLayouts())
		}
		return m, nil
	case "enter":
		switch menuItem(m.idx) {
		case itemStart:
			return m.startShift()
		case itemLoadShift:
			return m.loadLatestShift()
		case itemCheckUpdate:
			if m.cfg.NoUpdate {
				m.status = "Update checks disabled (--no-update)."
				return m, nil
			}
			m.busy = true
			m.status = "Checking for updates…"
			return m, checkUpdateCmd(m.cfg.Version)
		case itemQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) startShift() (tea.Model, tea.Cmd) {
	layouts := station.BuiltInLayouts()
	cfg := station.SimConfig{
		LayoutID: layouts[m.layoutIdx%len(layouts)].ID,
		Seed:     time.Now().UnixNano(),
	}
	if err := cfg.Validate(); err != nil {
		m.status = fmt.Sprintf("Cannot start: %v", err)
		return m, nil
	}
	sim, err := station.NewSim(cfg)
	if err != nil {
		m.status = fmt.Sprintf("Cannot start: %v", err)
		return m, nil
	}
	m = m.attachSim(sim)
	m = m.appendMessage("Shift started aboard " + sim.Layout.Name + ".")
	return m, tickCmd()
}

func (m menuModel) loadLatestShift() (tea.Model, tea.Cmd) {
	path, ok := latestSavePath()
	if !ok {
		m.status = "No saved shifts found."
		return m, nil
	}
	sim, err := loadShiftFromFile(path)
	if err != nil {
		m.status = fmt.Sprintf("Load failed: %v", err)
		return m, nil
	}
	m = m.attachSim(sim)
	m = m.appendMessage("Shift restored from " + path + ".")
	return m, tickCmd()
}

// attachSim swaps in a sim and resets everything scoped to the old one.
func (m menuModel) attachSim(sim *station.Sim) menuModel {
	m.sim = sim
	m.selected = nil
	m.roomFocus = 0
	m.playedFor = 0
	m.lastTickAt = time.Time{}
	m.messages = nil
	m.consoleInput = ""
	m.pendingClarify = nil
	m.details = newTextPanel()
	m.inspector = hud.NewInspector(m.scratch, m.res, sim.Catalog(), &sim.Clock, hud.Options{
		TempUnit:  m.opts.tempUnit,
		Radiation: m.opts.radiation,
	})
	m.screen = screenRun
	m = m.rebuildNameIndex()
	return m
}

func (m menuModel) rebuildNameIndex() menuModel {
	m.elementNames = make(map[string]station.ElementID)
	catalog := station.NewCatalog()
	if m.sim != nil {
		catalog = m.sim.Catalog()
	}
	for _, elem := range catalog.All() {
		if key := parser.Normalise(m.res.Resolve(elem.NameID)); key != "" {
			m.elementNames[key] = elem.ID
		}
	}
	m.diseaseNames = make(map[string]station.DiseaseID)
	for _, disease := range []station.DiseaseID{station.DiseaseSporeBloom, station.DiseaseRustLung, station.DiseaseVoidPhage} {
		if key := parser.Normalise(m.res.Resolve(disease.NameID())); key != "" {
			m.diseaseNames[key] = disease
		}
	}
	return m
}

func (m menuModel) updateRun(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sim == nil {
		m.screen = screenMenu
		return m, nil
	}

	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		return m.submitConsole()
	case "esc":
		switch {
		case m.consoleInput != "":
			m.consoleInput = ""
		case m.pendingClarify != nil:
			m.pendingClarify = nil
			m = m.appendMessage("Cancelled.")
		case m.selected != nil:
			m = m.clearSelection()
		default:
			m.screen = screenMenu
		}
		return m, nil
	case "backspace":
		if m.consoleInput != "" {
			runes := []rune(m.consoleInput)
			m.consoleInput = string(runes[:len(runes)-1])
		}
		return m, nil
	case "tab":
		m = m.cycleSelection(1)
		return m, nil
	case "shift+tab":
		m = m.cycleSelection(-1)
		return m, nil
	}

	// Uppercase hotkeys fire only with an empty console line, so commands
	// like "Pressure" stay typeable.
	if m.consoleInput == "" {
		switch key {
		case "P":
			if m.sim.TogglePause() {
				m = m.appendMessage("Clock holding. Station time frozen.")
			} else {
				m = m.appendMessage("Clock released.")
			}
			return m, nil
		case "M":
			m.screen = screenMap
			return m, nil
		case "G":
			m.screen = screenGuide
			return m, nil
		case "S":
			m = m.saveShiftToSlot(1)
			return m, nil
		case "L":
			return m.loadLatestShift()
		case "left":
			m = m.cycleRoomFocus(-1)
			return m, nil
		case "right":
			m = m.cycleRoomFocus(1)
			return m, nil
		}
	}

	if key == " " {
		m.consoleInput += " "
		return m, nil
	}
	if msg.Type == tea.KeyRunes && len(m.consoleInput) < 120 {
		m.consoleInput += string(msg.Runes)
	}
	return m, nil
}

func (m menuModel) updateMap(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "M", "q":
		m.screen = screenRun
		return m, nil
	case "left":
		m = m.cycleRoomFocus(-1)
		return m, nil
	case "right":
		m = m.cycleRoomFocus(1)
		return m, nil
	case "tab":
		m = m.cycleSelection(1)
		return m, nil
	case "shift+tab":
		m = m.cycleSelection(-1)
		return m, nil
	}
	return m, nil
}

func (m menuModel) updateGuide(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter", "q", "G":
		if m.sim != nil {
			m.screen = screenRun
		} else {
			m.screen = screenMenu
		}
		return m, nil
	}
	return m, nil
}

// --- Selection ---

func (m menuModel) selectEntity(e *station.Entity) menuModel {
	m.selected = e
	if e != nil && e.Room >= 0 && e.Room < len(m.sim.Rooms) {
		m.roomFocus = e.Room
	}
	if e != nil && m.inspector != nil {
		m.inspector.Update(m.details, e)
	}
	return m
}

func (m menuModel) clearSelection() menuModel {
	m.selected = nil
	if m.inspector != nil {
		m.inspector.Reset()
	}
	if m.details != nil {
		m.details.Deactivate()
	}
	return m
}

func (m menuModel) cycleSelection(dir int) menuModel {
	entities := m.roomEntities(m.roomFocus)
	if len(entities) == 0 {
		entities = m.sim.Entities
	}
	if len(entities) == 0 {
		return m
	}
	idx := -1
	for i, e := range entities {
		if e == m.selected {
			idx = i
			break
		}
	}
	if idx == -1 {
		if dir >= 0 {
			return m.selectEntity(entities[0])
		}
		return m.selectEntity(entities[len(entities)-1])
	}
	next := ((idx+dir)%len(entities) + len(entities)) % len(entities)
	return m.selectEntity(entities[next])
}

func (m menuModel) cycleRoomFocus(dir int) menuModel {
	if m.sim == nil || len(m.sim.Rooms) == 0 {
		return m
	}
	n := len(m.sim.Rooms)
	m.roomFocus = ((m.roomFocus+dir)%n + n) % n
	return m
}

func (m menuModel) roomEntities(idx int) []*station.Entity {
	var out []*station.Entity
	for _, e := range m.sim.Entities {
		if e.Room == idx {
			out = append(out, e)
		}
	}
	return out
}

func (m menuModel) appendMessage(text string) menuModel {
	text = stampMessage(m.playedFor, text)
	if text == "" {
		return m
	}
	m.messages = append(m.messages, text)
	if len(m.messages) > maxMessages {
		m.messages = m.messages[len(m.messages)-maxMessages:]
	}
	return m
}

const maxMessages = 200

func stampMessage(playedFor time.Duration, text string) string {
	if text == "" {
		return ""
	}
	total := int(playedFor.Seconds())
	return fmt.Sprintf("[%02d:%02d:%02d] %s", total/3600, (total%3600)/60, total%60, text)
}

// --- View ---

func (m menuModel) View() string {
	switch m.screen {
	case screenRun:
		return m.viewRun()
	case screenMap:
		return m.viewMap()
	case screenGuide:
		return m.viewGuide()
	default:
		return m.viewMenu()
	}
}

func (m menuModel) viewMenu() string {
	title := brightGreen.Render("STATIONFALL") + dimGreen.Render("  salvage shift console")
	ver := dimGreen.Render(fmt.Sprintf("v%s  (%s)  %s", m.cfg.Version, m.cfg.Commit, m.cfg.BuildDate))

	layouts := station.BuiltInLayouts()
	layoutName := layouts[m.layoutIdx%len(layouts)].Name

	items := []string{
		fmt.Sprintf("Start Shift  < %s >", layoutName),
		"Load Shift",
		"Check for updates",
		"Quit",
	}

	out := ""
	out += title + "\n" + ver + "\n"
	out += border.Render("----------------------------------------") + "\n\n"

	for i, it := range items {
		cursor := "  "
		line := green.Render(it)
		if i == m.idx {
			cursor = "> "
			line = brightGreen.Render(it)
		}
		out += cursor + line + "\n"
	}

	out += "\n" + border.Render("----------------------------------------") + "\n"
	out += dimGreen.Render("↑/↓ move, ←/→ pick a deck, Enter select, q quit") + "\n"
	if m.sim != nil {
		out += dimGreen.Render("Esc returns to the running shift") + "\n"
	}
	if m.status != "" {
		out += "\n" + green.Render(m.status) + "\n"
	}
	return out
}

func (m menuModel) viewRun() string {
	if m.sim == nil {
		return m.viewMenu()
	}
	out := m.statusLine() + "\n"
	out += m.bodyText()
	out += m.consoleLine() + "\n"
	out += dimGreen.Render("Tab select  ←/→ room  P pause  M map  G guide  S/L save/load  Esc back") + "\n"
	return out
}

func (m menuModel) statusLine() string {
	clock := m.sim.Clock
	state := "RUNNING"
	style := brightGreen
	if clock.Paused {
		state = "HOLD"
		style = amber
	}
	return brightGreen.Render("STATIONFALL  "+m.sim.Layout.Name) +
		green.Render(fmt.Sprintf("  Cycle %d  %03d/%d  ", clock.Cycle(), clock.TickOfCycle(), station.TicksPerCycle)) +
		style.Render(state) +
		dimGreen.Render("  shift "+formatPlayedFor(m.playedFor))
}

// bodyText renders the run screen body: room roster and message history on
// the left, the details pane on the right.
func (m menuModel) bodyText() string {
	leftWidth := m.width/2 - 2
	if leftWidth < 30 {
		leftWidth = 30
	}

	left := m.entityListText()
	left += "\n" + brightGreen.Render("Message History") + "\n"
	start := 0
	visible := m.height - 16
	if visible < 4 {
		visible = 4
	}
	if len(m.messages) > visible {
		start = len(m.messages) - visible
	}
	for _, text := range m.messages[start:] {
		left += green.Render(truncateLine(text, leftWidth)) + "\n"
	}

	right := m.detailsText()

	leftPane := paneBorder.Width(leftWidth).Render(left)
	rightPane := paneBorder.Width(m.width - leftWidth - 6).Render(right)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane) + "\n"
}

func (m menuModel) entityListText() string {
	room := m.sim.Rooms[m.roomFocus]
	out := brightGreen.Render(fmt.Sprintf("%s  (%s)", room.Name, m.scratch.Temperature(room.AmbientK, m.opts.tempUnit))) + "\n"
	for _, e := range m.roomEntities(m.roomFocus) {
		cursor := "  "
		line := fmt.Sprintf("%s  %s", e.Name, m.scratch.Temperature(e.TempK, m.opts.tempUnit))
		if e == m.selected {
			cursor = "> "
			out += cursor + brightGreen.Render(line) + "\n"
			continue
		}
		out += cursor + green.Render(line) + "\n"
	}
	return out
}

func (m menuModel) detailsText() string {
	if m.details == nil || !m.details.Active() {
		return dimGreen.Render("Nothing under inspection.\nTab cycles objects; select <name> works too.")
	}
	out := brightGreen.Render(m.details.Title()) + "\n"
	for _, line := range m.details.Lines() {
		out += green.Render(line.text) + "\n"
		if line.tooltip != "" {
			out += dimGreen.Render("  "+truncateLine(line.tooltip, 48)) + "\n"
		}
	}
	return out
}

func (m menuModel) consoleLine() string {
	prompt := green.Render("> ")
	if m.pendingClarify != nil && m.consoleInput == "" {
		return prompt + dimGreen.Render("answer with a number, a command, or cancel")
	}
	return prompt + brightGreen.Render(m.consoleInput) + brightGreen.Render("█")
}

func (m menuModel) viewMap() string {
	out := brightGreen.Render("Deck Chart  "+m.sim.Layout.Name) + "\n"
	out += border.Render("----------------------------------------") + "\n"
	out += renderStationMapANSI(m.sim, m.roomFocus, m.selected, m.width-4, m.height-8)
	out += dimGreen.Render("←/→ focus room  Tab select  Esc return") + "\n"
	return out
}

func (m menuModel) viewGuide() string {
	out := brightGreen.Render("Console Guide") + "\n"
	out += border.Render("----------------------------------------") + "\n"
	for _, cmd := range m.parser.Commands() {
		line := fmt.Sprintf("%-10s", cmd.Canonical)
		if len(cmd.Aliases) > 0 {
			line += dimGreen.Render("  also: " + joinShort(cmd.Aliases, 3))
		}
		out += green.Render(line) + "\n"
	}
	out += "\n" + dimGreen.Render("Commands take object names as typed in the room list.") + "\n"
	out += dimGreen.Render("Esc or Enter returns.") + "\n"
	return out
}

func joinShort(items []string, max int) string {
	if len(items) > max {
		items = items[:max]
	}
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}

func truncateLine(s string, width int) string {
	if width <= 1 || len(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func formatPlayedFor(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
