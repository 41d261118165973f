package station

// Thermal drift pulls every entity toward its room's ambient temperature.
// The per-tick factor folds conductivity against thermal mass, so a light
// copper shard equalizes in moments while an insulite panel barely moves.

const (
	// thermalCoupling scales conductivity into a per-tick drift factor.
	thermalCoupling = 1.0
	// maxDriftPerTick keeps highly conductive objects from snapping to
	// ambient in a single tick.
	maxDriftPerTick = 0.25

	overheatDamagePerTick = 0.002
)

func (s *Sim) stepThermal() []string {
	var messages []string
	var crumbled []*Entity

	for _, entity := range s.Entities {
		room, ok := s.RoomOf(entity)
		if !ok || entity.Mass <= 0 {
			continue
		}
		elem := s.Catalog().Get(entity.Element)
		if elem.SpecificHeat <= 0 {
			continue
		}

		// Damage is assessed at the temperature the object held during the
		// tick, before drift pulls it back toward ambient.
		if entity.Kind == KindDebris && s.applyOverheatDamage(entity, elem) {
			crumbled = append(crumbled, entity)
			messages = append(messages, entity.Name+" crumbled under heat stress")
			continue
		}

		thermalMass := entity.Mass * elem.SpecificHeat // kJ/K
		factor := elem.Conductivity * thermalCoupling / thermalMass
		if factor > maxDriftPerTick {
			factor = maxDriftPerTick
		}
		entity.TempK += (room.AmbientK - entity.TempK) * factor
	}

	for _, entity := range crumbled {
		s.removeEntity(entity)
	}
	return messages
}

// applyOverheatDamage wears down debris sitting above its failure point and
// reports true once integrity is gone.
func (s *Sim) applyOverheatDamage(entity *Entity, elem Element) bool {
	if entity.Salvage == nil || elem.HighTemp <= 0 {
		return false
	}
	failureK := elem.HighTemp + entity.Salvage.OverheatDeltaK
	if entity.TempK <= failureK {
		return false
	}
	entity.Salvage.Integrity -= overheatDamagePerTick
	return entity.Salvage.Integrity <= 0
}

func (s *Sim) removeEntity(target *Entity) {
	for i, entity := range s.Entities {
		if entity == target {
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			return
		}
	}
}
