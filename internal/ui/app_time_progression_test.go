package ui

import (
	"testing"
	"time"

	"github.com/appengine-ltd/stationfall/internal/station"
)

func TestClockTickFullSecondAdvancesTicks(t *testing.T) {
	m := newMenuModel(AppConfig{NoUpdate: true})
	sim, err := station.NewSim(station.SimConfig{LayoutID: station.LayoutIntakeBayID, Seed: 42})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	m = m.attachSim(sim)
	m.lastTickAt = time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)

	before := m.sim.Clock.Tick
	updated, _ := m.Update(clockTickMsg{at: m.lastTickAt.Add(time.Second)})
	got := updated.(menuModel)

	// One second at 200 ms per tick runs five whole ticks.
	if got.sim.Clock.Tick != before+5 {
		t.Fatalf("expected tick %d, got %d", before+5, got.sim.Clock.Tick)
	}
	if got.playedFor != time.Second {
		t.Fatalf("expected one second of shift time, got %s", got.playedFor)
	}
}

func TestClockTickWhilePausedHoldsClock(t *testing.T) {
	m := newMenuModel(AppConfig{NoUpdate: true})
	sim, err := station.NewSim(station.SimConfig{LayoutID: station.LayoutIntakeBayID, Seed: 42})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	m = m.attachSim(sim)
	m.sim.SetPaused(true)
	m.lastTickAt = time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)

	before := m.sim.Clock.Tick
	updated, _ := m.Update(clockTickMsg{at: m.lastTickAt.Add(time.Second)})
	got := updated.(menuModel)

	if got.sim.Clock.Tick != before {
		t.Fatalf("expected held clock, before=%d after=%d", before, got.sim.Clock.Tick)
	}
	if got.playedFor != time.Second {
		t.Fatalf("expected shift time to run while holding, got %s", got.playedFor)
	}
}

func TestClockTickPartialCarriesProgress(t *testing.T) {
	m := newMenuModel(AppConfig{NoUpdate: true})
	sim, err := station.NewSim(station.SimConfig{LayoutID: station.LayoutIntakeBayID, Seed: 24})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	m = m.attachSim(sim)
	m.lastTickAt = time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)

	before := m.sim.Clock.Tick
	updated, _ := m.Update(clockTickMsg{at: m.lastTickAt.Add(100 * time.Millisecond)})
	got := updated.(menuModel)

	if got.sim.Clock.Tick != before {
		t.Fatalf("expected no whole tick on partial elapsed, before=%d after=%d", before, got.sim.Clock.Tick)
	}
	if got.sim.TickProgress < 0.49 || got.sim.TickProgress > 0.51 {
		t.Fatalf("expected half a tick carried, got %v", got.sim.TickProgress)
	}

	updated, _ = got.Update(clockTickMsg{at: got.lastTickAt.Add(100 * time.Millisecond)})
	got = updated.(menuModel)
	if got.sim.Clock.Tick != before+1 {
		t.Fatalf("expected carried progress to complete a tick, got %d", got.sim.Clock.Tick)
	}
}

func TestClockTickOffRunScreenFreezesShiftTime(t *testing.T) {
	m := newMenuModel(AppConfig{NoUpdate: true})
	sim, err := station.NewSim(station.SimConfig{LayoutID: station.LayoutIntakeBayID, Seed: 7})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	m = m.attachSim(sim)
	m.screen = screenMap
	m.lastTickAt = time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)

	before := m.sim.Clock.Tick
	updated, _ := m.Update(clockTickMsg{at: m.lastTickAt.Add(time.Second)})
	got := updated.(menuModel)

	if got.sim.Clock.Tick != before {
		t.Fatalf("expected no ticks while off the run screen, got %d", got.sim.Clock.Tick)
	}
	if got.playedFor != 0 {
		t.Fatalf("expected shift time frozen off the run screen, got %s", got.playedFor)
	}
	if !got.lastTickAt.Equal(m.lastTickAt.Add(time.Second)) {
		t.Fatalf("expected lastTickAt to track the tick message")
	}
}

func TestClockTickFirstTickPrimesWithoutAdvancing(t *testing.T) {
	m := newMenuModel(AppConfig{NoUpdate: true})
	sim, err := station.NewSim(station.SimConfig{LayoutID: station.LayoutIntakeBayID, Seed: 7})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	m = m.attachSim(sim)

	at := time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)
	before := m.sim.Clock.Tick
	updated, _ := m.Update(clockTickMsg{at: at})
	got := updated.(menuModel)

	if got.sim.Clock.Tick != before {
		t.Fatalf("expected priming tick to run nothing, got %d", got.sim.Clock.Tick)
	}
	if !got.lastTickAt.Equal(at) {
		t.Fatalf("expected lastTickAt primed to the first message time")
	}
}
