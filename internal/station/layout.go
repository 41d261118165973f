package station

type LayoutID string

const (
	LayoutIntakeBayID    LayoutID = "intake_bay"
	LayoutCryoWingID     LayoutID = "cryo_wing"
	LayoutReactorSpineID LayoutID = "reactor_spine"
	LayoutHydroGardenID  LayoutID = "hydro_garden"
	LayoutRandomID       LayoutID = "random"
)

// Layout describes a station section before it is instantiated: rooms, their
// ambient conditions, and what spawns inside them. Builtins live in
// layouts_builtin.go; external layouts come from stationgen profiles.
type Layout struct {
	ID          LayoutID   `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Rooms       []RoomSpec `json:"rooms"`
}

type RoomSpec struct {
	Name         string      `json:"name"`
	AmbientK     float64     `json:"ambient_k"`
	RadiationTag float64     `json:"radiation_tag,omitempty"` // ambient field strength, rads/cycle
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Spawns       []SpawnSpec `json:"spawns,omitempty"`
}

// SpawnSpec is one entity to create in a room. TempK of zero means "room
// ambient". Fixture-only and debris-only fields are ignored for other kinds.
type SpawnSpec struct {
	Kind           EntityKind `json:"kind"`
	Name           string     `json:"name"`
	Element        ElementID  `json:"element"`
	Mass           float64    `json:"mass"`
	TempK          float64    `json:"temp_k,omitempty"`
	Operational    bool       `json:"operational,omitempty"`
	Circuit        string     `json:"circuit,omitempty"`
	Wattage        float64    `json:"wattage,omitempty"`
	OverheatDeltaK float64    `json:"overheat_delta_k,omitempty"`
	Disease        DiseaseID  `json:"disease,omitempty"`
	Germs          int64      `json:"germs,omitempty"`
}

func GetLayout(layouts []Layout, id LayoutID) (Layout, bool) {
	for _, layout := range layouts {
		if layout.ID == id {
			return layout, true
		}
	}

	return Layout{}, false
}
