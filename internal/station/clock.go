package station

// TicksPerCycle is the length of one station cycle in sim ticks. One tick is
// one second of station time at normal speed.
const TicksPerCycle = 600

type Clock struct {
	Tick   int64 `json:"tick"`
	Paused bool  `json:"paused"`
}

func (c Clock) Cycle() int64 {
	return c.Tick / TicksPerCycle
}

func (c Clock) TickOfCycle() int64 {
	return c.Tick % TicksPerCycle
}

// Advancing reports whether station time moves forward on the next frame.
// Display code uses this to decide if time-derived text needs refreshing.
func (c Clock) Advancing() bool {
	return !c.Paused
}
