package station

import (
	"fmt"
)

type SimConfig struct {
	LayoutID         LayoutID `json:"layout_id"`
	Seed             int64    `json:"seed"`
	RadiationEnabled bool     `json:"radiation_enabled"`
}

func (c SimConfig) Validate() error {
	found := c.LayoutID == LayoutRandomID

	if !found {
		for _, layout := range BuiltInLayouts() {
			if layout.ID == c.LayoutID {
				found = true
				break
			}
		}
	}

	if !found {
		return fmt.Errorf("layout not found: %s", c.LayoutID)
	}

	return nil
}
