//go:build cgo

package gui

import (
	"strings"
	"testing"

	"github.com/appengine-ltd/stationfall/internal/hud"
	"github.com/appengine-ltd/stationfall/internal/station"
)

func newConsoleUI(t *testing.T) *gameUI {
	t.Helper()
	ui := newGameUI(AppConfig{NoUpdate: true, PacksDir: t.TempDir()})
	t.Cleanup(ui.shutdown)
	sim, err := station.NewSim(station.SimConfig{LayoutID: station.LayoutIntakeBayID, Seed: 7})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	ui.attachSim(sim)
	return ui
}

// consoleSubmit types a line, submits it, and drains the intent queue the way
// a frame of updateRun would.
func consoleSubmit(ui *gameUI, line string) {
	ui.consoleInput = line
	ui.submitConsole()
	ui.processIntentQueue()
}

func lastMessage(ui *gameUI) string {
	if len(ui.messages) == 0 {
		return ""
	}
	return ui.messages[len(ui.messages)-1]
}

func messageLog(ui *gameUI) string {
	return strings.Join(ui.messages, "\n")
}

func findEntity(t *testing.T, sim *station.Sim, name string) *station.Entity {
	t.Helper()
	for _, e := range sim.Entities {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("no entity named %q aboard", name)
	return nil
}

func TestConsoleSelectByName(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "select dust mite")

	if ui.selected == nil || ui.selected.Name != "Dust Mite" {
		t.Fatalf("expected Dust Mite selected, got %+v", ui.selected)
	}
	if !strings.Contains(lastMessage(ui), "Inspecting Dust Mite.") {
		t.Fatalf("unexpected select message %q", lastMessage(ui))
	}
}

func TestConsoleSelectSkipsFillerWords(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "select the dust mite")

	if ui.selected == nil || ui.selected.Name != "Dust Mite" {
		t.Fatalf("expected filler words skipped, selected %+v", ui.selected)
	}
}

func TestConsoleSelectByPrefix(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "select sorting")

	if ui.selected == nil || ui.selected.Name != "Sorting Arm" {
		t.Fatalf("expected prefix to resolve Sorting Arm, got %+v", ui.selected)
	}
}

func TestConsoleUnmappableInputAsksToClarify(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "xyzzy plugh")

	if ui.pendingClarify == nil {
		t.Fatalf("expected a clarify question for gibberish input")
	}
	if !strings.Contains(messageLog(ui), "couldn't map that to a command") {
		t.Fatalf("expected the unmapped-input prompt, log:\n%s", messageLog(ui))
	}
}

func TestConsoleBareHeatOffersTargets(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "heat")

	if ui.pendingClarify == nil {
		t.Fatalf("expected clarify for heat without a target")
	}
	if got := len(ui.pendingClarify.Options); got != 5 {
		t.Fatalf("expected the five receiving floor objects as options, got %d", got)
	}
	log := messageLog(ui)
	if !strings.Contains(log, "What should I heat?") {
		t.Fatalf("missing clarify prompt, log:\n%s", log)
	}
	if !strings.Contains(log, "1. heat intake conveyor") {
		t.Fatalf("expected numbered options, log:\n%s", log)
	}
}

func TestConsoleClarifyAnswerByNumber(t *testing.T) {
	ui := newConsoleUI(t)
	arm := findEntity(t, ui.sim, "Sorting Arm")
	before := arm.TempK

	consoleSubmit(ui, "heat")
	consoleSubmit(ui, "2")

	if ui.pendingClarify != nil {
		t.Fatalf("expected clarify resolved after picking an option")
	}
	if got := arm.TempK - before; got < 9.999 || got > 10.001 {
		t.Fatalf("expected default 10 K heat applied, delta %.4f", got)
	}
	if !strings.Contains(lastMessage(ui), "Heated Sorting Arm by 10 K") {
		t.Fatalf("unexpected heat message %q", lastMessage(ui))
	}
}

func TestConsoleClarifyRejectsOutOfRangeNumber(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "heat")
	consoleSubmit(ui, "9")

	if ui.pendingClarify == nil {
		t.Fatalf("expected clarify to stay open after an out-of-range pick")
	}
	if !strings.Contains(lastMessage(ui), "Pick a number between 1 and 5, or cancel.") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}
}

func TestConsoleClarifyCancel(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "heat")
	consoleSubmit(ui, "cancel")

	if ui.pendingClarify != nil {
		t.Fatalf("expected clarify dropped on cancel")
	}
	if !strings.Contains(lastMessage(ui), "Cancelled.") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}
}

func TestConsoleClarifyRetryWithClearCommand(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "heat")
	consoleSubmit(ui, "pause")

	if ui.pendingClarify != nil {
		t.Fatalf("expected a clear retry to replace the open question")
	}
	if !ui.sim.Clock.Paused {
		t.Fatalf("expected the retried pause command to run")
	}
	if !strings.Contains(lastMessage(ui), "Clock holding. Station time frozen.") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}
}

func TestConsoleClarifyRetryStillUnclear(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "heat")
	consoleSubmit(ui, "qqqq")

	if ui.pendingClarify == nil {
		t.Fatalf("expected the question to stay open after a muddy retry")
	}
	if !strings.Contains(lastMessage(ui), "Still not sure. What should I heat?") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}
}

func TestConsoleHeatWithQuantity(t *testing.T) {
	ui := newConsoleUI(t)
	arm := findEntity(t, ui.sim, "Sorting Arm")
	before := arm.TempK

	consoleSubmit(ui, "heat sorting arm 20")

	if got := arm.TempK - before; got < 19.999 || got > 20.001 {
		t.Fatalf("expected 20 K applied, delta %.4f", got)
	}
	if !strings.Contains(lastMessage(ui), "Heated Sorting Arm by 20 K") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}
}

func TestConsoleCoolFloorsAtOneKelvin(t *testing.T) {
	ui := newConsoleUI(t)
	ice := findEntity(t, ui.sim, "Scrap Ice Block")

	consoleSubmit(ui, "cool scrap ice block 9000")

	if ice.TempK != 1 {
		t.Fatalf("expected temperature floored at 1 K, got %.2f", ice.TempK)
	}
}

func TestConsolePauseAndResume(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "pause")
	if !ui.sim.Clock.Paused {
		t.Fatalf("expected clock paused")
	}

	consoleSubmit(ui, "resume")
	if ui.sim.Clock.Paused {
		t.Fatalf("expected clock released")
	}
	if !strings.Contains(lastMessage(ui), "Clock released.") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}
}

func TestConsoleStepAutoPauses(t *testing.T) {
	ui := newConsoleUI(t)
	before := ui.sim.Clock.Tick

	consoleSubmit(ui, "step 5")

	if !ui.sim.Clock.Paused {
		t.Fatalf("expected stepping to hold the clock")
	}
	if got := ui.sim.Clock.Tick - before; got != 5 {
		t.Fatalf("expected 5 ticks advanced, got %d", got)
	}
	log := messageLog(ui)
	if !strings.Contains(log, "Clock holding while stepping.") {
		t.Fatalf("missing auto-pause notice, log:\n%s", log)
	}
	if !strings.Contains(log, "Advanced 5 tick(s).") {
		t.Fatalf("missing step summary, log:\n%s", log)
	}
}

func TestConsoleInfectThenCureAll(t *testing.T) {
	ui := newConsoleUI(t)
	tank := findEntity(t, ui.sim, "Water Tank")

	consoleSubmit(ui, "infect water tank 500")

	germs, ok := tank.GermLoad()
	if !ok || germs.Count != 500 {
		t.Fatalf("expected 500 germs seeded, got %+v ok=%v", germs, ok)
	}
	if !strings.Contains(lastMessage(ui), "Seeded 500") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}

	// Dust Mite spawns infected, so the sweep covers two objects.
	consoleSubmit(ui, "cure all")
	if !strings.Contains(lastMessage(ui), "Sterilised 2 object(s).") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}
	germs, _ = tank.GermLoad()
	if germs.Count != 0 {
		t.Fatalf("expected tank sterilised, got %d germs", germs.Count)
	}
}

func TestConsoleToggleFixture(t *testing.T) {
	ui := newConsoleUI(t)
	conveyor := findEntity(t, ui.sim, "Intake Conveyor")

	consoleSubmit(ui, "toggle intake conveyor")

	op, ok := conveyor.OperationalState()
	if !ok || op.Active {
		t.Fatalf("expected conveyor switched off, got %+v ok=%v", op, ok)
	}
	if !strings.Contains(lastMessage(ui), "Intake Conveyor switched off.") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}
}

func TestConsoleSwapElement(t *testing.T) {
	ui := newConsoleUI(t)
	scrap := findEntity(t, ui.sim, "Copper Scrap")

	consoleSubmit(ui, "swap copper scrap lead")

	if scrap.Element != station.ElementLead {
		t.Fatalf("expected element swapped to lead, got %s", scrap.Element)
	}
	if !strings.Contains(lastMessage(ui), "Copper Scrap is now Lead.") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}
}

func TestConsoleUnitSwitch(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "unit c")

	if ui.opts.TempUnit != hud.UnitCelsius {
		t.Fatalf("expected celsius readouts, got %v", ui.opts.TempUnit)
	}
	if !strings.Contains(lastMessage(ui), "Temperatures now read in Celsius.") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}
}

func TestConsoleRadiationToggle(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "radiation on")
	if !ui.opts.Radiation || !ui.sim.Config.RadiationEnabled {
		t.Fatalf("expected hazard and readouts enabled together")
	}

	consoleSubmit(ui, "radiation off")
	if ui.opts.Radiation || ui.sim.Config.RadiationEnabled {
		t.Fatalf("expected hazard and readouts disabled together")
	}
	if !strings.Contains(lastMessage(ui), "Radiation hazard secured. Readouts off.") {
		t.Fatalf("unexpected message %q", lastMessage(ui))
	}
}

func TestConsoleRoomFocus(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "room holding tank")

	if ui.roomFocus != 1 {
		t.Fatalf("expected focus on Holding Tank, got room %d", ui.roomFocus)
	}
	log := messageLog(ui)
	if !strings.Contains(log, "Holding Tank: ambient") {
		t.Fatalf("missing room description, log:\n%s", log)
	}
	if !strings.Contains(log, "Present: Water Tank, Spilled Water, Recycler Vent") {
		t.Fatalf("missing room roster, log:\n%s", log)
	}
}

func TestConsoleSaveLoadRoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())
	ui := newConsoleUI(t)
	arm := findEntity(t, ui.sim, "Sorting Arm")

	consoleSubmit(ui, "heat sorting arm 40")
	savedTemp := arm.TempK

	consoleSubmit(ui, "save 2")
	if !strings.Contains(lastMessage(ui), "Shift saved to stationfall-save-2.json.") {
		t.Fatalf("unexpected save message %q", lastMessage(ui))
	}

	consoleSubmit(ui, "heat sorting arm 25")

	consoleSubmit(ui, "load 2")
	if !strings.Contains(lastMessage(ui), "Shift restored from stationfall-save-2.json.") {
		t.Fatalf("unexpected load message %q", lastMessage(ui))
	}
	if ui.selected != nil {
		t.Fatalf("expected selection cleared after loading")
	}
	restored := findEntity(t, ui.sim, "Sorting Arm")
	if restored.TempK != savedTemp {
		t.Fatalf("expected restored temp %.2f, got %.2f", savedTemp, restored.TempK)
	}
}

func TestConsoleSelectionClearedOnClear(t *testing.T) {
	ui := newConsoleUI(t)

	consoleSubmit(ui, "select dust mite")
	if ui.selected == nil {
		t.Fatalf("expected a selection first")
	}

	consoleSubmit(ui, "clear")
	if ui.selected != nil {
		t.Fatalf("expected selection cleared")
	}
	if ui.details.Active() {
		t.Fatalf("expected details panel deactivated with the selection")
	}
}
