package station

import "testing"

func TestRadiationFieldOnlyMovesWhenEnabled(t *testing.T) {
	off, err := NewSim(SimConfig{LayoutID: LayoutReactorSpineID, Seed: 11})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	on, err := NewSim(SimConfig{LayoutID: LayoutReactorSpineID, Seed: 11, RadiationEnabled: true})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}

	for i := 0; i < 10; i++ {
		off.Step()
		on.Step()
	}

	for _, room := range off.Rooms {
		if room.Radiation != room.BaseRad {
			t.Fatalf("radiation moved with the feature disabled: %v vs base %v", room.Radiation, room.BaseRad)
		}
	}

	shaft := on.Rooms[0]
	if shaft.BaseRad <= 0 {
		t.Fatalf("service shaft lost its base radiation")
	}
	if shaft.Radiation >= shaft.BaseRad {
		t.Fatalf("expected lead scrap shielding to pull the field below base, got %v vs %v", shaft.Radiation, shaft.BaseRad)
	}
	if shaft.Radiation <= 0 {
		t.Fatalf("shielded field should stay positive, got %v", shaft.Radiation)
	}
}
