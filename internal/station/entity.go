package station

type EntityKind string

const (
	KindFixture  EntityKind = "fixture"
	KindDebris   EntityKind = "debris"
	KindCreature EntityKind = "creature"
	KindVent     EntityKind = "vent"
)

type DiseaseID string

const (
	DiseaseSporeBloom DiseaseID = "spore_bloom"
	DiseaseRustLung   DiseaseID = "rust_lung"
	DiseaseVoidPhage  DiseaseID = "void_phage"
)

func (d DiseaseID) NameID() string {
	return "disease." + string(d) + ".name"
}

// Entity is one selectable object aboard the station. Optional subsystems
// hang off pointer fields; the accessor methods expose them as (value, ok)
// capability queries so callers never touch the pointers directly.
type Entity struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Kind        EntityKind `json:"kind"`
	Room        int        `json:"room"`
	Element     ElementID  `json:"element"`
	Mass        float64    `json:"mass"` // kg
	TempK       float64    `json:"temp_k"`
	CreatedTick int64      `json:"created_tick"`

	Operational *Operational `json:"operational,omitempty"`
	Germs       *GermState   `json:"germs,omitempty"`
	Circuit     *CircuitLink `json:"circuit,omitempty"`
	Salvage     *SalvageMods `json:"salvage,omitempty"`
}

// Operational tracks whether a fixture is running and how much of each cycle
// it has spent running. History holds completed-cycle fractions, most recent
// last, capped at uptimeWindow entries.
type Operational struct {
	Active      bool      `json:"active"`
	ActiveTicks int64     `json:"active_ticks"`
	History     []float64 `json:"history,omitempty"`
}

const uptimeWindow = 5

type GermState struct {
	Disease DiseaseID `json:"disease"`
	Count   int64     `json:"count"`
}

type CircuitLink struct {
	Circuit string  `json:"circuit"`
	Wattage float64 `json:"wattage"`
}

// SalvageMods carries per-object salvage-grade adjustments. OverheatDeltaK
// shifts the element's high transition point for damage purposes; scrap-grade
// debris often fails well before clean material would.
type SalvageMods struct {
	OverheatDeltaK float64 `json:"overheat_delta_k,omitempty"`
	Integrity      float64 `json:"integrity"` // 0..1, damage eats into it
}

// PrimaryElement reports the element currently backing this entity. Debris
// can change element in place when it crosses a phase transition, so callers
// that cache derived values must re-read this every frame.
func (e *Entity) PrimaryElement() ElementID {
	if e == nil {
		return ""
	}
	return e.Element
}

func (e *Entity) OperationalState() (*Operational, bool) {
	if e == nil || e.Operational == nil {
		return nil, false
	}
	return e.Operational, true
}

func (e *Entity) GermLoad() (GermState, bool) {
	if e == nil || e.Germs == nil {
		return GermState{}, false
	}
	return *e.Germs, true
}

func (e *Entity) CircuitID() (CircuitLink, bool) {
	if e == nil || e.Circuit == nil {
		return CircuitLink{}, false
	}
	return *e.Circuit, true
}

// OverheatModifier reports the salvage-grade overheat shift. ok is false when
// the entity carries no salvage modifiers or the shift is zero; a zero shift
// means clean material with nothing worth reporting.
func (e *Entity) OverheatModifier() (float64, bool) {
	if e == nil || e.Salvage == nil || e.Salvage.OverheatDeltaK == 0 {
		return 0, false
	}
	return e.Salvage.OverheatDeltaK, true
}

// AgeTicks reports how long the entity has existed. Negative spans (clock
// behind the creation tick after a bad load) clamp to zero.
func (e *Entity) AgeTicks(c Clock) int64 {
	if e == nil {
		return 0
	}
	age := c.Tick - e.CreatedTick
	if age < 0 {
		return 0
	}
	return age
}

// UptimeStats is the fraction of time spent running over three windows.
// ThisCycle is negative when the bookkeeping is inconsistent with the clock,
// for example active ticks exceeding the elapsed ticks after a corrupted
// save; consumers treat a negative reading as "do not show uptime".
type UptimeStats struct {
	ThisCycle float64
	LastCycle float64
	LastFive  float64
}

func (e *Entity) Uptime(c Clock) (UptimeStats, bool) {
	op, ok := e.OperationalState()
	if !ok {
		return UptimeStats{}, false
	}

	stats := UptimeStats{}
	elapsed := c.TickOfCycle()
	switch {
	case op.ActiveTicks > elapsed:
		stats.ThisCycle = -1
	case elapsed == 0:
		stats.ThisCycle = 0
	default:
		stats.ThisCycle = float64(op.ActiveTicks) / float64(elapsed)
	}

	if n := len(op.History); n > 0 {
		stats.LastCycle = op.History[n-1]
		sum := 0.0
		count := 0
		for i := n - 1; i >= 0 && count < uptimeWindow; i-- {
			sum += op.History[i]
			count++
		}
		stats.LastFive = sum / float64(count)
	}
	return stats, true
}

// rollCycle folds the finished cycle into the history window.
func (o *Operational) rollCycle() {
	fraction := float64(o.ActiveTicks) / float64(TicksPerCycle)
	if fraction > 1 {
		fraction = 1
	}
	o.History = append(o.History, fraction)
	if len(o.History) > uptimeWindow {
		o.History = o.History[len(o.History)-uptimeWindow:]
	}
	o.ActiveTicks = 0
}
