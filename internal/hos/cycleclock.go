package hos

// Cycle constants (minutes).
const (
	CycleMaxMin   = 4200 // 70h rolling 8-day cycle
	CycleResetMin = 2040 // 34h continuous off-duty restart
)

// CycleClock tracks 70-hour/8-day on-duty accumulation and reports when a
// 34-hour restart is due (spec §4.1).
type CycleClock struct {
	usedMin int
}

// NewCycleClock seeds the clock from the driver's already-accumulated
// cycle minutes.
func NewCycleClock(initialUsedMin int) *CycleClock {
	return &CycleClock{usedMin: initialUsedMin}
}

// Exhausted reports whether the cycle has reached its 70-hour cap.
func (c *CycleClock) Exhausted() bool {
	return c.usedMin >= CycleMaxMin
}

// AddDutyMinutes accrues minutes from a DRIVING or ON_DUTY segment.
func (c *CycleClock) AddDutyMinutes(minutes int) {
	c.usedMin += minutes
}

// Reset zeroes the cycle after a 34-hour restart.
func (c *CycleClock) Reset() {
	c.usedMin = 0
}

// UsedMin returns the current accumulated cycle minutes.
func (c *CycleClock) UsedMin() int {
	return c.usedMin
}
