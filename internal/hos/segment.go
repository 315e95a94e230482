// Package hos implements the Hours-of-Service simulation core: a
// deterministic state machine that synthesizes a trip's duty-status
// segments, stop ledger, and calendar-day grouping from a driving workload
// and the driver's accumulated cycle time. The core performs no I/O and
// makes no blocking calls (spec §5): it is a pure function of its Input.
package hos

import "time"

// Status is a duty status. The four values are the only ones the HOS core
// ever emits.
type Status string

const (
	StatusOff     Status = "off"
	StatusSleeper Status = "sleeper"
	StatusDriving Status = "driving"
	StatusOnDuty  Status = "on_duty"
)

// Segment labels. Only segments carrying one of these labels become Stops.
const (
	LabelPickup       = "Pickup"
	LabelDrop         = "Drop"
	LabelFuel         = "Fuel"
	LabelBreak        = "30m Break"
	LabelDailyReset   = "Off Duty (reset)"
	LabelCycleRestart = "34h Restart"
)

// Segment is an immutable span of one duty status (spec §3). Segments are
// contiguous within a day; End always equals Start plus a positive whole
// number of minutes.
type Segment struct {
	Start  time.Time
	End    time.Time
	Status Status
	Label  string
}

// DurationMin returns the segment's length in whole minutes.
func (s Segment) DurationMin() int {
	return int(s.End.Sub(s.Start).Minutes())
}
