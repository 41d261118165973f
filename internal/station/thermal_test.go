package station

import (
	"math"
	"testing"
)

func testSim(t *testing.T, layout LayoutID) *Sim {
	t.Helper()
	sim, err := NewSim(SimConfig{LayoutID: layout, Seed: 11})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	return sim
}

func findByName(t *testing.T, sim *Sim, name string) *Entity {
	t.Helper()
	for _, entity := range sim.Entities {
		if entity.Name == name {
			return entity
		}
	}
	t.Fatalf("entity %q not found in layout %s", name, sim.Layout.ID)
	return nil
}

func TestThermalDriftMovesTowardAmbient(t *testing.T) {
	sim := testSim(t, LayoutIntakeBayID)
	scrap := findByName(t, sim, "Copper Scrap")
	room, _ := sim.RoomOf(scrap)

	scrap.TempK = room.AmbientK + 40
	before := scrap.TempK
	sim.Step()

	if scrap.TempK >= before {
		t.Fatalf("hot scrap did not cool toward ambient: %v >= %v", scrap.TempK, before)
	}
	if scrap.TempK < room.AmbientK {
		t.Fatalf("drift overshot ambient in one tick: %v < %v", scrap.TempK, room.AmbientK)
	}
}

func TestInsulatorBarelyDrifts(t *testing.T) {
	sim := testSim(t, LayoutCryoWingID)
	panel := findByName(t, sim, "Insulite Panel")
	room, _ := sim.RoomOf(panel)

	panel.TempK = room.AmbientK + 40
	condensate := findByName(t, sim, "Condensate Puddle")
	condensate.TempK = room.AmbientK + 40

	sim.Step()

	panelDrop := room.AmbientK + 40 - panel.TempK
	puddleDrop := room.AmbientK + 40 - condensate.TempK
	if panelDrop*20 > puddleDrop {
		t.Fatalf("insulite cooled too fast: panel dropped %v, puddle dropped %v", panelDrop, puddleDrop)
	}
}

func TestDebrisMeltsInPlaceKeepingIdentityAndMass(t *testing.T) {
	sim := testSim(t, LayoutIntakeBayID)
	block := findByName(t, sim, "Scrap Ice Block")
	mass := block.Mass

	block.TempK = 280.15
	messages := sim.Step()

	if block.PrimaryElement() != ElementWater {
		t.Fatalf("expected warm ice to melt into water, got %s", block.PrimaryElement())
	}
	if block.Mass != mass {
		t.Fatalf("melting changed mass: %v -> %v", mass, block.Mass)
	}
	found := false
	for _, msg := range messages {
		if msg == "Scrap Ice Block melted into water" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a melt message, got %v", messages)
	}
}

func TestDebrisFreezesBelowLowTransition(t *testing.T) {
	sim := testSim(t, LayoutCryoWingID)
	condensate := findByName(t, sim, "Condensate Puddle")

	condensate.TempK = 270.15
	sim.Step()

	if condensate.PrimaryElement() != ElementIce {
		t.Fatalf("expected sub-freezing water to become ice, got %s", condensate.PrimaryElement())
	}
}

func TestOverheatModifierLowersFailurePoint(t *testing.T) {
	sim := testSim(t, LayoutReactorSpineID)
	scrap := findByName(t, sim, "Lead Shielding Scrap")

	elem := sim.Catalog().Get(ElementLead)
	// Above the modified failure point but below the clean one.
	scrap.TempK = elem.HighTemp - 30
	scrap.Salvage.Integrity = overheatDamagePerTick * 3

	for i := 0; i < 2; i++ {
		sim.Step()
		scrap.TempK = elem.HighTemp - 30
	}
	if _, found := sim.FindEntity(scrap.ID); !found {
		t.Fatalf("scrap crumbled too early")
	}

	var messages []string
	for i := 0; i < 4; i++ {
		messages = append(messages, sim.Step()...)
		if _, found := sim.FindEntity(scrap.ID); !found {
			break
		}
		scrap.TempK = elem.HighTemp - 30
	}

	if _, found := sim.FindEntity(scrap.ID); found {
		t.Fatalf("expected degraded scrap to crumble below the clean failure point")
	}
	crumbleSeen := false
	for _, msg := range messages {
		if msg == "Lead Shielding Scrap crumbled under heat stress" {
			crumbleSeen = true
		}
	}
	if !crumbleSeen {
		t.Fatalf("expected a crumble message, got %v", messages)
	}
}

func TestUptimeAccountingOverCycles(t *testing.T) {
	sim := testSim(t, LayoutIntakeBayID)
	conveyor := findByName(t, sim, "Intake Conveyor")

	for i := 0; i < TicksPerCycle; i++ {
		sim.Step()
	}

	op, ok := conveyor.OperationalState()
	if !ok {
		t.Fatalf("conveyor lost its operational state")
	}
	if len(op.History) != 1 {
		t.Fatalf("expected exactly one completed cycle in history, got %d", len(op.History))
	}
	if math.Abs(op.History[0]-1) > 1e-9 {
		t.Fatalf("always-active fixture should record a full cycle, got %v", op.History[0])
	}

	stats, ok := conveyor.Uptime(sim.Clock)
	if !ok {
		t.Fatalf("uptime query failed")
	}
	if stats.ThisCycle != 0 {
		t.Fatalf("fresh cycle should start at zero uptime, got %v", stats.ThisCycle)
	}
	if stats.LastCycle != op.History[0] {
		t.Fatalf("last-cycle stat mismatch: %v vs %v", stats.LastCycle, op.History[0])
	}

	for i := 0; i < 60; i++ {
		sim.Step()
	}
	stats, _ = conveyor.Uptime(sim.Clock)
	if math.Abs(stats.ThisCycle-1) > 1e-9 {
		t.Fatalf("active fixture mid-cycle should be at full uptime, got %v", stats.ThisCycle)
	}
}

func TestUptimeHistoryWindowCapsAtFiveCycles(t *testing.T) {
	op := &Operational{Active: true}
	for i := 0; i < 8; i++ {
		op.ActiveTicks = TicksPerCycle / 2
		op.rollCycle()
	}
	if len(op.History) != 5 {
		t.Fatalf("expected history capped at 5 entries, got %d", len(op.History))
	}
}

func TestUptimeSentinelOnInconsistentBookkeeping(t *testing.T) {
	entity := &Entity{
		Name:        "Ghost Pump",
		Kind:        KindFixture,
		Operational: &Operational{Active: true, ActiveTicks: 400},
	}

	stats, ok := entity.Uptime(Clock{Tick: 100})
	if !ok {
		t.Fatalf("uptime query failed")
	}
	if stats.ThisCycle >= 0 {
		t.Fatalf("active ticks beyond elapsed ticks should yield a negative sentinel, got %v", stats.ThisCycle)
	}
}
