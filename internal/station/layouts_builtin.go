package station

// BuiltInLayouts returns the shipped station sections. Ambient temperatures
// are picked so each layout exercises a different corner of the thermal sim:
// the cryo wing sits below water's freezing point, the reactor spine runs
// hot enough to push scrap toward its transition points.
func BuiltInLayouts() []Layout {
	room := func(name string, ambientK, radiation float64, w, h int, spawns ...SpawnSpec) RoomSpec {
		return RoomSpec{Name: name, AmbientK: ambientK, RadiationTag: radiation, Width: w, Height: h, Spawns: spawns}
	}

	fixture := func(name string, element ElementID, mass float64, circuit string, wattage float64) SpawnSpec {
		return SpawnSpec{Kind: KindFixture, Name: name, Element: element, Mass: mass, Operational: true, Circuit: circuit, Wattage: wattage}
	}
	debris := func(name string, element ElementID, mass, tempK, overheatDelta float64) SpawnSpec {
		return SpawnSpec{Kind: KindDebris, Name: name, Element: element, Mass: mass, TempK: tempK, OverheatDeltaK: overheatDelta}
	}
	creature := func(name string, mass float64, disease DiseaseID, germs int64) SpawnSpec {
		return SpawnSpec{Kind: KindCreature, Name: name, Element: ElementDirt, Mass: mass, Disease: disease, Germs: germs}
	}
	vent := func(name string, element ElementID, mass float64) SpawnSpec {
		return SpawnSpec{Kind: KindVent, Name: name, Element: element, Mass: mass, Operational: true}
	}

	return []Layout{
		{
			ID:          LayoutIntakeBayID,
			Name:        "Intake Bay",
			Description: "Salvage staging area: conveyors, loose scrap, and a leaking water tank.",
			Rooms: []RoomSpec{
				room("Receiving Floor", 295.15, 0, 14, 8,
					fixture("Intake Conveyor", ElementIron, 400, "grid-a", 240),
					fixture("Sorting Arm", ElementCopper, 120, "grid-a", 180),
					debris("Scrap Ice Block", ElementIce, 25, 268.15, 0),
					debris("Copper Scrap", ElementCopper, 60, 0, -40),
					creature("Dust Mite", 2, DiseaseSporeBloom, 900),
				),
				room("Holding Tank", 293.15, 0, 8, 6,
					fixture("Water Tank", ElementIron, 800, "grid-a", 0),
					debris("Spilled Water", ElementWater, 10, 295.65, 0),
					vent("Recycler Vent", ElementIron, 90),
				),
			},
		},
		{
			ID:          LayoutCryoWingID,
			Name:        "Cryo Wing",
			Description: "Sub-freezing storage ring where anything wet turns solid fast.",
			Rooms: []RoomSpec{
				room("Cryo Corridor", 260.15, 0, 12, 6,
					fixture("Cryo Pump", ElementCopper, 200, "grid-b", 320),
					debris("Condensate Puddle", ElementWater, 6, 275.15, 0),
					debris("Insulite Panel", ElementInsulite, 45, 0, 0),
					vent("Chill Vent", ElementIron, 70),
				),
				room("Deep Freeze", 238.15, 0, 8, 8,
					fixture("Stasis Rack", ElementIron, 500, "grid-b", 150),
					debris("Polluted Runoff", ElementPollutedWater, 12, 256.15, 0),
					creature("Frost Tick", 1, DiseaseVoidPhage, 400),
				),
			},
		},
		{
			ID:          LayoutReactorSpineID,
			Name:        "Reactor Spine",
			Description: "Hot service shaft along the old reactor. Radiation lingers near the core.",
			Rooms: []RoomSpec{
				room("Service Shaft", 330.15, 18, 12, 6,
					fixture("Coolant Loop", ElementCopper, 350, "grid-c", 600),
					debris("Lead Shielding Scrap", ElementLead, 80, 0, -60),
					debris("Algae Crust", ElementAlgae, 8, 360.15, 0),
					vent("Exhaust Vent", ElementIron, 110),
				),
				room("Core Anteroom", 352.15, 55, 8, 8,
					fixture("Containment Monitor", ElementIron, 260, "grid-c", 90),
					debris("Boiloff Puddle", ElementWater, 4, 368.15, 0),
					creature("Cinder Roach", 1, DiseaseRustLung, 1500),
				),
			},
		},
		{
			ID:          LayoutHydroGardenID,
			Name:        "Hydro Garden",
			Description: "Overgrown hydroponics bay, warm and damp, germs everywhere.",
			Rooms: []RoomSpec{
				room("Grow Hall", 299.15, 0, 14, 8,
					fixture("Nutrient Pump", ElementCopper, 180, "grid-d", 210),
					debris("Algae Mat", ElementAlgae, 15, 0, 0),
					debris("Stagnant Water", ElementPollutedWater, 20, 299.15, 0),
					creature("Leaf Hopper", 1, DiseaseSporeBloom, 2400),
				),
				room("Silt Bed", 296.15, 0, 10, 6,
					fixture("Irrigation Valve", ElementIron, 140, "grid-d", 60),
					debris("Dirt Clod", ElementDirt, 30, 0, 0),
					vent("Mist Vent", ElementCopper, 50),
				),
			},
		},
	}
}
