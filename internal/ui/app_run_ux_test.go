package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/stationfall/internal/station"
)

func testShiftModel(t *testing.T) menuModel {
	t.Helper()
	m := newMenuModel(AppConfig{NoUpdate: true})
	sim, err := station.NewSim(station.SimConfig{LayoutID: station.LayoutIntakeBayID, Seed: 11})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	return m.attachSim(sim)
}

func TestRunBodyTextUsesMessageHistory(t *testing.T) {
	m := testShiftModel(t)
	m.messages = []string{
		"[00:00:01] Shift started",
		"[00:00:02] Intake Conveyor switched off",
	}

	got := m.bodyText()
	if !strings.Contains(got, "Message History") {
		t.Fatalf("expected message history header in run body")
	}
	if !strings.Contains(got, "Shift started") {
		t.Fatalf("expected history entry in run body")
	}
}

func TestUpdateRunUppercaseMOpensMap(t *testing.T) {
	m := testShiftModel(t)

	gotModel, _ := m.updateRun(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'M'}})
	got := gotModel.(menuModel)
	if got.screen != screenMap {
		t.Fatalf("expected M to open the deck chart, got %v", got.screen)
	}
}

func TestUpdateRunTypingKeepsHotkeysQuiet(t *testing.T) {
	m := testShiftModel(t)
	m.consoleInput = "he"

	gotModel, _ := m.updateRun(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'M'}})
	got := gotModel.(menuModel)
	if got.screen != screenRun {
		t.Fatalf("expected typing to stay on the run screen, got %v", got.screen)
	}
	if got.consoleInput != "heM" {
		t.Fatalf("expected rune appended to console input, got %q", got.consoleInput)
	}
}

func TestSubmitConsoleHelpOpensGuide(t *testing.T) {
	m := testShiftModel(t)
	m.consoleInput = "help"

	gotModel, _ := m.submitConsole()
	got := gotModel.(menuModel)
	if got.screen != screenGuide {
		t.Fatalf("expected help command to open the console guide, got %v", got.screen)
	}
}

func TestUpdateRunEscClearsInputBeforeLeaving(t *testing.T) {
	m := testShiftModel(t)
	m.consoleInput = "sele"

	gotModel, _ := m.updateRun(tea.KeyMsg{Type: tea.KeyEsc})
	got := gotModel.(menuModel)
	if got.consoleInput != "" {
		t.Fatalf("expected esc to clear the console line, got %q", got.consoleInput)
	}
	if got.screen != screenRun {
		t.Fatalf("expected first esc to stay on the run screen, got %v", got.screen)
	}

	gotModel, _ = got.updateRun(tea.KeyMsg{Type: tea.KeyEsc})
	got = gotModel.(menuModel)
	if got.screen != screenMenu {
		t.Fatalf("expected second esc to return to the menu, got %v", got.screen)
	}
}
