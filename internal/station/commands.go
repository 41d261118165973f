package station

import (
	"fmt"
)

// Console-facing mutations. The parser resolves entity references and the
// frontends call these with live pointers.

func (s *Sim) TogglePause() bool {
	s.Clock.Paused = !s.Clock.Paused
	return s.Clock.Paused
}

func (s *Sim) SetPaused(paused bool) {
	s.Clock.Paused = paused
}

// AdjustTemperature shifts an entity's temperature by deltaK, flooring at
// 1 K so console typos cannot push anything below absolute zero.
func (s *Sim) AdjustTemperature(e *Entity, deltaK float64) error {
	if e == nil {
		return fmt.Errorf("no entity selected")
	}
	e.TempK += deltaK
	if e.TempK < 1 {
		e.TempK = 1
	}
	return nil
}

func (s *Sim) Infect(e *Entity, disease DiseaseID, count int64) error {
	if e == nil {
		return fmt.Errorf("no entity selected")
	}
	if count <= 0 {
		return fmt.Errorf("germ count must be positive, got %d", count)
	}
	switch disease {
	case DiseaseSporeBloom, DiseaseRustLung, DiseaseVoidPhage:
	default:
		return fmt.Errorf("unknown disease: %s", disease)
	}
	e.Germs = &GermState{Disease: disease, Count: count}
	return nil
}

func (s *Sim) Cure(e *Entity) error {
	if e == nil {
		return fmt.Errorf("no entity selected")
	}
	if e.Germs != nil {
		e.Germs.Count = 0
	}
	return nil
}

// ToggleFixture flips a fixture or vent between running and idle.
func (s *Sim) ToggleFixture(e *Entity) (bool, error) {
	if e == nil {
		return false, fmt.Errorf("no entity selected")
	}
	op, ok := e.OperationalState()
	if !ok {
		return false, fmt.Errorf("%s has no operational state", e.Name)
	}
	op.Active = !op.Active
	return op.Active, nil
}

// SwapElement rewrites the material backing an entity in place. Meant for
// console experiments; the details panel must pick the change up on its own.
func (s *Sim) SwapElement(e *Entity, id ElementID) error {
	if e == nil {
		return fmt.Errorf("no entity selected")
	}
	if _, ok := s.Catalog().Lookup(id); !ok {
		return fmt.Errorf("unknown element: %s", id)
	}
	e.Element = id
	return nil
}
