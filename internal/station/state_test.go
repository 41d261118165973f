package station

import (
	"testing"
	"time"
)

func TestNewSimSpawnsLayout(t *testing.T) {
	sim, err := NewSim(SimConfig{LayoutID: LayoutIntakeBayID, Seed: 7})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}

	if len(sim.Rooms) != 2 {
		t.Fatalf("expected intake bay to have 2 rooms, got %d", len(sim.Rooms))
	}
	if len(sim.Entities) == 0 {
		t.Fatalf("expected spawned entities")
	}

	for _, entity := range sim.Entities {
		if entity.TempK <= 0 {
			t.Fatalf("entity %s spawned without a temperature", entity.Name)
		}
		switch entity.Kind {
		case KindFixture, KindVent:
			if _, ok := entity.OperationalState(); !ok {
				t.Fatalf("%s %s spawned without operational state", entity.Kind, entity.Name)
			}
		case KindDebris:
			if entity.Salvage == nil {
				t.Fatalf("debris %s spawned without salvage mods", entity.Name)
			}
		}
	}

	ids := map[int]bool{}
	for _, entity := range sim.Entities {
		if ids[entity.ID] {
			t.Fatalf("duplicate entity id %d", entity.ID)
		}
		ids[entity.ID] = true
	}
}

func TestNewSimRejectsUnknownLayout(t *testing.T) {
	if _, err := NewSim(SimConfig{LayoutID: "mystery_deck"}); err == nil {
		t.Fatalf("expected unknown layout to be rejected")
	}
}

func TestRandomLayoutResolvesDeterministically(t *testing.T) {
	first, err := NewSim(SimConfig{LayoutID: LayoutRandomID, Seed: 99})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	second, err := NewSim(SimConfig{LayoutID: LayoutRandomID, Seed: 99})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}

	if first.Layout.ID == LayoutRandomID {
		t.Fatalf("random layout id was not resolved")
	}
	if first.Layout.ID != second.Layout.ID {
		t.Fatalf("same seed picked different layouts: %s vs %s", first.Layout.ID, second.Layout.ID)
	}
}

func TestAdvanceRealtimeAccumulatesFractionalTicks(t *testing.T) {
	sim, err := NewSim(SimConfig{LayoutID: LayoutIntakeBayID, Seed: 3})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}

	tick := 100 * time.Millisecond

	sim.AdvanceRealtime(40*time.Millisecond, tick)
	if sim.Clock.Tick != 0 {
		t.Fatalf("expected no tick after 40%% of a tick duration, got %d", sim.Clock.Tick)
	}

	sim.AdvanceRealtime(70*time.Millisecond, tick)
	if sim.Clock.Tick != 1 {
		t.Fatalf("expected carried fraction to fire one tick, got %d", sim.Clock.Tick)
	}

	sim.AdvanceRealtime(250*time.Millisecond, tick)
	if sim.Clock.Tick != 3 {
		t.Fatalf("expected two more ticks plus carry, got %d", sim.Clock.Tick)
	}
}

func TestAdvanceRealtimeRespectsPause(t *testing.T) {
	sim, err := NewSim(SimConfig{LayoutID: LayoutCryoWingID, Seed: 3})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}

	sim.SetPaused(true)
	sim.AdvanceRealtime(5*time.Second, 100*time.Millisecond)
	if sim.Clock.Tick != 0 {
		t.Fatalf("paused sim advanced to tick %d", sim.Clock.Tick)
	}
	if sim.Clock.Advancing() {
		t.Fatalf("paused clock reports advancing")
	}

	sim.SetPaused(false)
	sim.AdvanceRealtime(time.Second, 100*time.Millisecond)
	if sim.Clock.Tick != 10 {
		t.Fatalf("expected 10 ticks after unpausing, got %d", sim.Clock.Tick)
	}
}

func TestToggleFixtureRequiresOperationalState(t *testing.T) {
	sim, err := NewSim(SimConfig{LayoutID: LayoutIntakeBayID, Seed: 5})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}

	var fixture, debris *Entity
	for _, entity := range sim.Entities {
		switch entity.Kind {
		case KindFixture:
			if fixture == nil {
				fixture = entity
			}
		case KindDebris:
			if debris == nil {
				debris = entity
			}
		}
	}
	if fixture == nil || debris == nil {
		t.Fatalf("layout is missing a fixture or debris spawn")
	}

	active, err := sim.ToggleFixture(fixture)
	if err != nil {
		t.Fatalf("toggle fixture: %v", err)
	}
	if active {
		t.Fatalf("expected first toggle to stop a spawned-active fixture")
	}

	if _, err := sim.ToggleFixture(debris); err == nil {
		t.Fatalf("expected toggling debris to fail")
	}
}

func TestSwapElementValidatesCatalog(t *testing.T) {
	sim, err := NewSim(SimConfig{LayoutID: LayoutIntakeBayID, Seed: 5})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	entity := sim.Entities[0]

	if err := sim.SwapElement(entity, ElementObsidian); err != nil {
		t.Fatalf("swap element: %v", err)
	}
	if entity.PrimaryElement() != ElementObsidian {
		t.Fatalf("element swap did not stick, got %s", entity.PrimaryElement())
	}

	if err := sim.SwapElement(entity, "unobtainium"); err == nil {
		t.Fatalf("expected unknown element to be rejected")
	}
}
