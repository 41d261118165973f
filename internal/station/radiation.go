package station

import "math"

// Ambient radiation swells and fades around each room's base level on a slow
// deterministic wave, so readouts move without needing a full particle model.
// Massive high-absorption debris in a room knocks the field down a little.

const radWavePeriodTicks = 900.0

func (s *Sim) stepRadiation() {
	for i := range s.Rooms {
		room := &s.Rooms[i]
		if room.BaseRad <= 0 {
			room.Radiation = 0
			continue
		}

		phase := float64(s.Clock.Tick)/radWavePeriodTicks + float64(i)
		level := room.BaseRad * (1 + 0.15*math.Sin(2*math.Pi*phase))

		shielding := 0.0
		for _, entity := range s.Entities {
			if entity.Room != i || entity.Kind != KindDebris {
				continue
			}
			elem := s.Catalog().Get(entity.Element)
			shielding += entity.Mass * elem.RadAbsorption
		}
		// 100 kg of lead-grade absorber roughly halves a room's field.
		level /= 1 + shielding/190

		room.Radiation = level
	}
}
