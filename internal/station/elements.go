package station

type ElementID string

type StateOfMatter string

const (
	StateSolid  StateOfMatter = "solid"
	StateLiquid StateOfMatter = "liquid"
	StateGas    StateOfMatter = "gas"
)

const (
	ElementWater         ElementID = "water"
	ElementIce           ElementID = "ice"
	ElementSteam         ElementID = "steam"
	ElementOxygen        ElementID = "oxygen"
	ElementHydrogen      ElementID = "hydrogen"
	ElementCarbonDioxide ElementID = "carbon_dioxide"
	ElementCopper        ElementID = "copper"
	ElementIron          ElementID = "iron"
	ElementLead          ElementID = "lead"
	ElementSandstone     ElementID = "sandstone"
	ElementIgneousRock   ElementID = "igneous_rock"
	ElementObsidian      ElementID = "obsidian"
	ElementDirt          ElementID = "dirt"
	ElementAlgae         ElementID = "algae"
	ElementPollutedWater ElementID = "polluted_water"
	ElementInsulite      ElementID = "insulite"
	ElementUnknown       ElementID = "unknown"
)

// Element is a catalog entry for one physical material. Temperatures are in
// kelvin. LowTemp is where a liquid freezes or a gas condenses; HighTemp is
// where a solid melts or a liquid boils. A zero transition temperature or an
// empty product means the transition is not modelled for that material.
type Element struct {
	ID            ElementID     `json:"id"`
	NameID        string        `json:"name_id"`
	State         StateOfMatter `json:"state"`
	SpecificHeat  float64       `json:"specific_heat"` // (J/g)/K
	Conductivity  float64       `json:"conductivity"`  // (W/m)/K
	LowTemp       float64       `json:"low_temp,omitempty"`
	HighTemp      float64       `json:"high_temp,omitempty"`
	LowProduct    ElementID     `json:"low_product,omitempty"`
	HighProduct   ElementID     `json:"high_product,omitempty"`
	RadAbsorption float64       `json:"rad_absorption"` // 0..1
	Insulator     bool          `json:"insulator,omitempty"`
}

func BuiltInElements() []Element {
	return []Element{
		{ID: ElementWater, NameID: "element.water.name", State: StateLiquid,
			SpecificHeat: 4.179, Conductivity: 0.609,
			LowTemp: 273.15, LowProduct: ElementIce,
			HighTemp: 373.15, HighProduct: ElementSteam,
			RadAbsorption: 0.35},
		{ID: ElementIce, NameID: "element.ice.name", State: StateSolid,
			SpecificHeat: 2.05, Conductivity: 2.18,
			HighTemp: 273.15, HighProduct: ElementWater,
			RadAbsorption: 0.3},
		{ID: ElementSteam, NameID: "element.steam.name", State: StateGas,
			SpecificHeat: 4.179, Conductivity: 0.184,
			LowTemp: 373.15, LowProduct: ElementWater,
			RadAbsorption: 0.1},
		{ID: ElementOxygen, NameID: "element.oxygen.name", State: StateGas,
			SpecificHeat: 1.005, Conductivity: 0.024,
			LowTemp:       90.15,
			RadAbsorption: 0.02},
		{ID: ElementHydrogen, NameID: "element.hydrogen.name", State: StateGas,
			SpecificHeat: 2.4, Conductivity: 0.168,
			LowTemp:       20.35,
			RadAbsorption: 0.01},
		{ID: ElementCarbonDioxide, NameID: "element.carbon_dioxide.name", State: StateGas,
			SpecificHeat: 0.846, Conductivity: 0.0146,
			LowTemp:       194.65,
			RadAbsorption: 0.03},
		{ID: ElementCopper, NameID: "element.copper.name", State: StateSolid,
			SpecificHeat: 0.385, Conductivity: 60,
			HighTemp:      1356.15,
			RadAbsorption: 0.55},
		{ID: ElementIron, NameID: "element.iron.name", State: StateSolid,
			SpecificHeat: 0.449, Conductivity: 55,
			HighTemp:      1808.15,
			RadAbsorption: 0.6},
		{ID: ElementLead, NameID: "element.lead.name", State: StateSolid,
			SpecificHeat: 0.128, Conductivity: 35,
			HighTemp:      600.75,
			RadAbsorption: 0.95},
		{ID: ElementSandstone, NameID: "element.sandstone.name", State: StateSolid,
			SpecificHeat: 0.8, Conductivity: 2.9,
			HighTemp: 1200.15, HighProduct: ElementIgneousRock,
			RadAbsorption: 0.3},
		{ID: ElementIgneousRock, NameID: "element.igneous_rock.name", State: StateSolid,
			SpecificHeat: 1.0, Conductivity: 2.0,
			HighTemp:      1409.15,
			RadAbsorption: 0.35},
		{ID: ElementObsidian, NameID: "element.obsidian.name", State: StateSolid,
			SpecificHeat: 0.2, Conductivity: 2.0,
			HighTemp:      1090.15,
			RadAbsorption: 0.4},
		{ID: ElementDirt, NameID: "element.dirt.name", State: StateSolid,
			SpecificHeat: 1.48, Conductivity: 2.0,
			HighTemp: 1223.15, HighProduct: ElementSandstone,
			RadAbsorption: 0.25},
		{ID: ElementAlgae, NameID: "element.algae.name", State: StateSolid,
			SpecificHeat: 0.2, Conductivity: 2.0,
			HighTemp: 398.15, HighProduct: ElementDirt,
			RadAbsorption: 0.15},
		{ID: ElementPollutedWater, NameID: "element.polluted_water.name", State: StateLiquid,
			SpecificHeat: 4.179, Conductivity: 0.58,
			LowTemp: 252.65, LowProduct: ElementIce,
			HighTemp: 392.45, HighProduct: ElementSteam,
			RadAbsorption: 0.4},
		{ID: ElementInsulite, NameID: "element.insulite.name", State: StateSolid,
			SpecificHeat: 1.05, Conductivity: 0.008,
			HighTemp: 1688.15, HighProduct: ElementIgneousRock,
			RadAbsorption: 0.5, Insulator: true},
	}
}

func unknownElement() Element {
	return Element{
		ID:            ElementUnknown,
		NameID:        "element.unknown.name",
		State:         StateSolid,
		SpecificHeat:  1,
		Conductivity:  1,
		RadAbsorption: 0.2,
	}
}

// Catalog is the working element set for one sim: the builtins plus any
// extras contributed by content packs. Lookups never fail; unknown ids map to
// a placeholder record so display code has something sane to render.
type Catalog struct {
	elements []Element
}

func NewCatalog(extra ...Element) *Catalog {
	base := BuiltInElements()
	out := make([]Element, 0, len(base)+len(extra))
	out = append(out, base...)
	for _, e := range extra {
		if e.ID == "" {
			continue
		}
		if _, exists := lookup(out, e.ID); exists {
			continue
		}
		out = append(out, e)
	}
	return &Catalog{elements: out}
}

func (c *Catalog) All() []Element {
	return c.elements
}

func (c *Catalog) Lookup(id ElementID) (Element, bool) {
	return lookup(c.elements, id)
}

func (c *Catalog) Get(id ElementID) Element {
	if e, ok := lookup(c.elements, id); ok {
		return e
	}
	return unknownElement()
}

func lookup(elements []Element, id ElementID) (Element, bool) {
	for _, e := range elements {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}
