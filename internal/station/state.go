package station

import (
	"fmt"
	"time"
)

// Room is an instantiated RoomSpec with live ambient state. Thermal drift
// pulls every entity in the room toward AmbientK.
type Room struct {
	Name      string  `json:"name"`
	AmbientK  float64 `json:"ambient_k"`
	Radiation float64 `json:"radiation"`
	BaseRad   float64 `json:"base_rad"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
}

type Sim struct {
	Config SimConfig `json:"config"`
	Layout Layout    `json:"layout"`
	Clock  Clock     `json:"clock"`
	Rooms  []Room    `json:"rooms"`

	// Entities are heap-allocated and addressed by pointer for the life of
	// the sim; selection state and display caches compare these pointers.
	Entities []*Entity `json:"entities"`

	TickProgress float64 `json:"tick_progress"`

	nextID  int
	catalog *Catalog
}

func NewSim(config SimConfig) (*Sim, error) {
	return NewSimWithLayouts(config, BuiltInLayouts(), nil)
}

// NewSimWithLayouts builds a sim from an explicit layout set, used when
// stationgen profiles or content packs add layouts and elements beyond the
// builtins.
func NewSimWithLayouts(config SimConfig, layouts []Layout, extraElements []Element) (*Sim, error) {
	resolvedConfig := config

	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts available")
	}
	if resolvedConfig.LayoutID != LayoutRandomID {
		if _, found := GetLayout(layouts, resolvedConfig.LayoutID); !found {
			return nil, fmt.Errorf("layout not found: %s", resolvedConfig.LayoutID)
		}
	}

	if resolvedConfig.Seed == 0 {
		resolvedConfig.Seed = time.Now().UnixNano()
	}

	if resolvedConfig.LayoutID == LayoutRandomID {
		rng := seededRNG(resolvedConfig.Seed)
		resolvedConfig.LayoutID = layouts[rng.IntN(len(layouts))].ID
	}

	layout, found := GetLayout(layouts, resolvedConfig.LayoutID)
	if !found {
		return nil, fmt.Errorf("layout not found: %s", resolvedConfig.LayoutID)
	}

	sim := &Sim{
		Config:  resolvedConfig,
		Layout:  layout,
		catalog: NewCatalog(extraElements...),
	}
	sim.spawnLayout()

	return sim, nil
}

func (s *Sim) spawnLayout() {
	for roomIdx, spec := range s.Layout.Rooms {
		s.Rooms = append(s.Rooms, Room{
			Name:      spec.Name,
			AmbientK:  spec.AmbientK,
			Radiation: spec.RadiationTag,
			BaseRad:   spec.RadiationTag,
			Width:     spec.Width,
			Height:    spec.Height,
		})
		for _, spawn := range spec.Spawns {
			s.spawnEntity(roomIdx, spec, spawn)
		}
	}
}

func (s *Sim) spawnEntity(roomIdx int, room RoomSpec, spawn SpawnSpec) *Entity {
	s.nextID++
	temp := spawn.TempK
	if temp <= 0 {
		temp = room.AmbientK
	}
	entity := &Entity{
		ID:          s.nextID,
		Name:        spawn.Name,
		Kind:        spawn.Kind,
		Room:        roomIdx,
		Element:     spawn.Element,
		Mass:        spawn.Mass,
		TempK:       temp,
		CreatedTick: s.Clock.Tick,
	}
	switch spawn.Kind {
	case KindFixture, KindVent:
		entity.Operational = &Operational{Active: spawn.Operational}
	}
	if spawn.Circuit != "" {
		entity.Circuit = &CircuitLink{Circuit: spawn.Circuit, Wattage: spawn.Wattage}
	}
	if spawn.OverheatDeltaK != 0 {
		entity.Salvage = &SalvageMods{OverheatDeltaK: spawn.OverheatDeltaK, Integrity: 1}
	} else if spawn.Kind == KindDebris {
		entity.Salvage = &SalvageMods{Integrity: 1}
	}
	if spawn.Germs > 0 {
		entity.Germs = &GermState{Disease: spawn.Disease, Count: spawn.Germs}
	}
	s.Entities = append(s.Entities, entity)
	return entity
}

// Catalog returns the element set this sim runs on. Sims restored from disk
// get their catalog reattached during load.
func (s *Sim) Catalog() *Catalog {
	if s.catalog == nil {
		s.catalog = NewCatalog()
	}
	return s.catalog
}

func (s *Sim) FindEntity(id int) (*Entity, bool) {
	for _, entity := range s.Entities {
		if entity.ID == id {
			return entity, true
		}
	}
	return nil, false
}

func (s *Sim) RoomOf(e *Entity) (Room, bool) {
	if e == nil || e.Room < 0 || e.Room >= len(s.Rooms) {
		return Room{}, false
	}
	return s.Rooms[e.Room], true
}

// AdvanceRealtime converts wall-clock time into whole sim ticks, carrying
// fractional progress between frames. Returns messages emitted by the ticks
// that ran.
func (s *Sim) AdvanceRealtime(elapsed time.Duration, tickDuration time.Duration) []string {
	if s == nil || tickDuration <= 0 || s.Clock.Paused {
		return nil
	}

	s.TickProgress += float64(elapsed) / float64(tickDuration)
	steps := int(s.TickProgress)
	if steps <= 0 {
		return nil
	}
	s.TickProgress -= float64(steps)

	var messages []string
	for i := 0; i < steps; i++ {
		messages = append(messages, s.Step()...)
	}
	return messages
}

// Step advances the sim by one tick and returns any event messages.
func (s *Sim) Step() []string {
	s.Clock.Tick++

	messages := s.stepThermal()
	messages = append(messages, s.stepTransitions()...)
	s.stepGerms()
	if s.Config.RadiationEnabled {
		s.stepRadiation()
	}
	s.stepUptime()
	return messages
}

func (s *Sim) stepUptime() {
	// The tick that lands on a cycle boundary still belongs to the finishing
	// cycle, so it is counted before the history rolls over.
	rollover := s.Clock.TickOfCycle() == 0
	for _, entity := range s.Entities {
		op, ok := entity.OperationalState()
		if !ok {
			continue
		}
		if op.Active {
			op.ActiveTicks++
		}
		if rollover {
			op.rollCycle()
		}
	}
}
