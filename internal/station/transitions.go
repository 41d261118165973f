package station

import (
	"fmt"
	"strings"
)

// Phase transitions apply to debris only: a puddle freezes into an ice block,
// an ice block melts back into a puddle. The entity keeps its identity and
// mass; only its backing element changes, which is exactly the in-place
// element swap the details panel has to notice.

func (s *Sim) stepTransitions() []string {
	var messages []string
	for _, entity := range s.Entities {
		if entity.Kind != KindDebris {
			continue
		}
		elem := s.Catalog().Get(entity.Element)

		switch {
		case elem.HighProduct != "" && elem.HighTemp > 0 && entity.TempK > elem.HighTemp:
			messages = append(messages, transitionMessage(entity, elem, elem.HighProduct, true))
			entity.Element = elem.HighProduct
		case elem.LowProduct != "" && elem.LowTemp > 0 && entity.TempK < elem.LowTemp:
			messages = append(messages, transitionMessage(entity, elem, elem.LowProduct, false))
			entity.Element = elem.LowProduct
		}
	}
	return messages
}

func transitionMessage(entity *Entity, from Element, product ElementID, up bool) string {
	verb := "turned into"
	switch {
	case up && from.State == StateSolid:
		verb = "melted into"
	case up && from.State == StateLiquid:
		verb = "boiled into"
	case !up && from.State == StateLiquid:
		verb = "froze into"
	case !up && from.State == StateGas:
		verb = "condensed into"
	}
	return fmt.Sprintf("%s %s %s", entity.Name, verb, elementLabel(product))
}

// elementLabel is a log-friendly rendering of an element id. Display code
// uses the locale table instead; sim messages stay plain.
func elementLabel(id ElementID) string {
	return strings.ReplaceAll(string(id), "_", " ")
}
