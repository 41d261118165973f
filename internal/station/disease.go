package station

// Germ colonies grow or die off depending on the material they live on, its
// temperature, and ambient radiation. Rates are per tick; over a 600-tick
// cycle a colony on algae roughly doubles while one on copper collapses.

func (s *Sim) stepGerms() {
	for _, entity := range s.Entities {
		if entity.Germs == nil || entity.Germs.Count <= 0 {
			continue
		}
		elem := s.Catalog().Get(entity.Element)
		rate := germGrowthRate(elem, entity.TempK)

		if room, ok := s.RoomOf(entity); ok && room.Radiation > 10 {
			// Hard radiation sterilizes faster than any surface effect.
			rate -= room.Radiation * 0.0002
		}

		next := float64(entity.Germs.Count) * (1 + rate)
		if next < 1 {
			entity.Germs.Count = 0
			continue
		}
		entity.Germs.Count = int64(next)
	}
}

func germGrowthRate(elem Element, tempK float64) float64 {
	base := -0.0005
	switch elem.ID {
	case ElementAlgae, ElementDirt, ElementPollutedWater:
		base = 0.0012
	case ElementWater:
		base = 0.0003
	case ElementCopper, ElementLead:
		// Bare metal surfaces are hostile to every catalogued strain.
		base = -0.003
	}

	if tempK > 320 {
		base -= (tempK - 320) * 0.0004
	} else if tempK < 275 && base > 0 {
		base = 0
	}
	return base
}
