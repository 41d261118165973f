package locale

// English returns the built-in string table. Content packs overlay it via
// Table.Merge; ids follow a "section.key" shape so overlays can replace a
// single line without repeating the whole section.
func English() Table {
	return Table{
		// Details panel lines. Placeholders use {Name} markers filled by the
		// hud formatting pipeline.
		"details.temperature":                 "Temperature: {Temperature}",
		"details.temperature.tooltip":         "Current temperature of this {Element}.",
		"details.element_mass":                "Mass: {Mass}",
		"details.element_mass.tooltip":        "Total mass of {Element} making up this object.",
		"details.thermal_mass":                "Heat Capacity: {ThermalMass} kJ/K",
		"details.thermal_mass.tooltip":        "Energy needed to change this object's temperature by 1 K. Mass times specific heat capacity.",
		"details.specific_heat":               "Specific Heat Capacity: {SpecificHeat} (J/g)/K",
		"details.specific_heat.tooltip":       "Energy needed to heat 1 g of {Element} by 1 K.",
		"details.thermal_conductivity":        "Thermal Conductivity: {Conductivity} (W/m)/K",
		"details.thermal_conductivity.tooltip": "Rate at which {Element} exchanges heat with its surroundings.",
		"details.insulator_tag":               "{Line} (Insulator)",
		"details.insulator.tooltip":           "{Element} barely exchanges heat at all. Good for walls, bad for radiators.",
		"details.melting_point":               "Melting Point: {Temperature}",
		"details.melting_point.tooltip":       "Above this temperature {Element} melts into {Product}.",
		"details.freezepoint":                 "Freezing Point: {Temperature}",
		"details.freezepoint.tooltip":         "Below this temperature {Element} freezes into {Product}.",
		"details.vapourizationpoint":          "Vaporization Point: {Temperature}",
		"details.vapourizationpoint.tooltip":  "Above this temperature {Element} boils into {Product}.",
		"details.dewpoint":                    "Condensation Point: {Temperature}",
		"details.dewpoint.tooltip":            "Below this temperature {Element} condenses into {Product}.",
		"details.overheat":                    "Overheat Temperature: {Temperature}",
		"details.overheat.tooltip":            "This debris starts taking damage above {Temperature}. Includes a salvage-grade modifier of {Delta}.",
		"details.radiation_absorption":        "Radiation Absorption: {Percent}",
		"details.radiation_absorption.tooltip": "Fraction of incoming radiation {Element} soaks up before it passes through.",
		"details.disease":                     "Germs: {Count} {Disease}",
		"details.disease.tooltip":             "{Disease} colony living on this object. Growth depends on the material and its temperature.",
		"details.circuit":                     "Circuit: {Circuit} ({Wattage} W)",
		"details.circuit.tooltip":             "Power grid this fixture is wired to and its draw while running.",
		"details.age":                         "Deployed: cycle {Cycle} ({Age} cycles ago)",
		"details.age.tooltip":                 "When this object first appeared aboard the station.",
		"details.uptime":                      "Uptime: {This} this cycle / {Last} last cycle / {Five} last 5 cycles",
		"details.uptime.tooltip":              "Fraction of each cycle this fixture spent running.",

		// Element display names.
		"element.water.name":          "Water",
		"element.ice.name":            "Ice",
		"element.steam.name":          "Steam",
		"element.oxygen.name":         "Oxygen",
		"element.hydrogen.name":       "Hydrogen",
		"element.carbon_dioxide.name": "Carbon Dioxide",
		"element.copper.name":         "Copper",
		"element.iron.name":           "Iron",
		"element.lead.name":           "Lead",
		"element.sandstone.name":      "Sandstone",
		"element.igneous_rock.name":   "Igneous Rock",
		"element.obsidian.name":       "Obsidian",
		"element.dirt.name":           "Dirt",
		"element.algae.name":          "Algae",
		"element.polluted_water.name": "Polluted Water",
		"element.insulite.name":       "Insulite",
		"element.unknown.name":        "Unknown Material",

		// Disease display names.
		"disease.spore_bloom.name": "Spore Bloom",
		"disease.rust_lung.name":   "Rust Lung",
		"disease.void_phage.name":  "Void Phage",
	}
}
