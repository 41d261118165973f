package ui

import (
	"strings"
	"testing"

	"github.com/appengine-ltd/stationfall/internal/hud"
	"github.com/appengine-ltd/stationfall/internal/station"
)

func consoleSubmit(t *testing.T, m menuModel, line string) menuModel {
	t.Helper()
	m.consoleInput = line
	updated, _ := m.submitConsole()
	got, ok := updated.(menuModel)
	if !ok {
		t.Fatalf("expected menuModel, got %T", updated)
	}
	return got
}

func findEntity(t *testing.T, sim *station.Sim, name string) *station.Entity {
	t.Helper()
	for _, e := range sim.Entities {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("no entity named %q", name)
	return nil
}

func messageLogText(m menuModel) string {
	return strings.Join(m.messages, "\n")
}

func TestConsoleSelectUpdatesDetails(t *testing.T) {
	m := testShiftModel(t)

	m = consoleSubmit(t, m, "select dust mite")

	if m.selected == nil || m.selected.Name != "Dust Mite" {
		t.Fatalf("expected Dust Mite selected, got %+v", m.selected)
	}
	if !m.details.Active() {
		t.Fatalf("expected details pane active after select")
	}
	if m.details.Title() != "Dust Mite" {
		t.Fatalf("expected details title Dust Mite, got %q", m.details.Title())
	}
	if !strings.Contains(messageLogText(m), "Inspecting Dust Mite.") {
		t.Fatalf("expected select confirmation, log:\n%s", messageLogText(m))
	}
}

func TestConsoleBareHeatAsksForTarget(t *testing.T) {
	m := testShiftModel(t)

	m = consoleSubmit(t, m, "heat")
	if m.pendingClarify == nil {
		t.Fatalf("expected a clarify question for bare heat")
	}
	if len(m.pendingClarify.Options) != 5 {
		t.Fatalf("expected five same-room targets, got %d", len(m.pendingClarify.Options))
	}
	if !strings.Contains(messageLogText(m), "What should I heat?") {
		t.Fatalf("expected heat prompt, log:\n%s", messageLogText(m))
	}

	arm := findEntity(t, m.sim, "Sorting Arm")
	before := arm.TempK
	m = consoleSubmit(t, m, "2")
	if m.pendingClarify != nil {
		t.Fatalf("expected clarify resolved by number answer")
	}
	if got := arm.TempK - before; got < 9.999 || got > 10.001 {
		t.Fatalf("expected option 2 to heat Sorting Arm by 10 K, delta %v", got)
	}
}

func TestConsoleClarifyCancel(t *testing.T) {
	m := testShiftModel(t)

	m = consoleSubmit(t, m, "heat")
	m = consoleSubmit(t, m, "cancel")

	if m.pendingClarify != nil {
		t.Fatalf("expected cancel to drop the clarify question")
	}
	if !strings.Contains(messageLogText(m), "Cancelled.") {
		t.Fatalf("expected cancel acknowledgement, log:\n%s", messageLogText(m))
	}
}

func TestConsoleUnitSwitch(t *testing.T) {
	m := testShiftModel(t)

	m = consoleSubmit(t, m, "unit c")

	if m.opts.tempUnit != hud.UnitCelsius {
		t.Fatalf("expected Celsius readouts, got %v", m.opts.tempUnit)
	}
	if !strings.Contains(messageLogText(m), "Temperatures now read in Celsius.") {
		t.Fatalf("expected unit confirmation, log:\n%s", messageLogText(m))
	}
}

func TestConsoleSaveAndLoadSlots(t *testing.T) {
	withTempCWD(t)
	m := testShiftModel(t)

	m = consoleSubmit(t, m, "heat copper scrap 40")
	savedTemp := findEntity(t, m.sim, "Copper Scrap").TempK

	m = consoleSubmit(t, m, "save 2")
	if !strings.Contains(messageLogText(m), "Shift saved to stationfall-save-2.json.") {
		t.Fatalf("expected save confirmation, log:\n%s", messageLogText(m))
	}

	m = consoleSubmit(t, m, "cool copper scrap 15")
	m = consoleSubmit(t, m, "load 2")

	if !strings.Contains(messageLogText(m), "Shift restored from stationfall-save-2.json.") {
		t.Fatalf("expected restore confirmation, log:\n%s", messageLogText(m))
	}
	if m.selected != nil {
		t.Fatalf("expected selection cleared after restore")
	}
	if got := findEntity(t, m.sim, "Copper Scrap").TempK; got != savedTemp {
		t.Fatalf("expected restored temperature %v, got %v", savedTemp, got)
	}
}

func TestTextPanelCommitDropsUnwrittenKeys(t *testing.T) {
	p := newTextPanel()
	p.SetActive(true)
	p.SetTitle("Dust Mite")
	p.SetLabel("temperature", "Temperature: 295 K", "")
	p.SetLabel("disease", "Spore Bloom germs: 20", "")
	p.Commit()

	if len(p.Lines()) != 2 {
		t.Fatalf("expected two committed lines, got %d", len(p.Lines()))
	}

	p.SetLabel("temperature", "Temperature: 300 K", "")
	p.Commit()

	lines := p.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected cured line dropped on commit, got %d lines", len(lines))
	}
	if lines[0].text != "Temperature: 300 K" {
		t.Fatalf("expected refreshed temperature line, got %q", lines[0].text)
	}
}

func TestTextPanelRewriteKeepsFirstWritePosition(t *testing.T) {
	p := newTextPanel()
	p.SetLabel("a", "one", "")
	p.SetLabel("b", "two", "")
	p.SetLabel("a", "three", "")
	p.Commit()

	lines := p.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if lines[0].text != "three" || lines[1].text != "two" {
		t.Fatalf("expected in-batch rewrite to keep position, got %q then %q", lines[0].text, lines[1].text)
	}
}

func TestTextPanelDeactivateClears(t *testing.T) {
	p := newTextPanel()
	p.SetActive(true)
	p.SetTitle("Water Tank")
	p.SetLabel("temperature", "Temperature: 288 K", "")
	p.Commit()

	p.Deactivate()

	if p.Active() {
		t.Fatalf("expected panel inactive after deactivate")
	}
	if len(p.Lines()) != 0 {
		t.Fatalf("expected no lines after deactivate, got %d", len(p.Lines()))
	}
}
