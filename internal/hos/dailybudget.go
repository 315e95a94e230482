package hos

// Daily constants (minutes).
const (
	DayWindowMin    = 840 // 14h on-duty window
	DayDriveMaxMin  = 660 // 11h driving cap within the window
	OffDutyResetMin = 600 // 10h off-duty reset
)

// DailyBudget tracks the 14-hour on-duty window and the 11-hour driving cap
// for the current workday (spec §4.2).
type DailyBudget struct {
	windowUsed int
	driveUsed  int
}

// NewDailyBudget returns a budget with both counters at zero.
func NewDailyBudget() *DailyBudget {
	return &DailyBudget{}
}

// Exhausted reports whether either the window or the driving cap has been
// reached.
func (d *DailyBudget) Exhausted() bool {
	return d.windowUsed >= DayWindowMin || d.driveUsed >= DayDriveMaxMin
}

// RoomForDrive returns the smaller of the remaining driving cap and the
// remaining window — the ceiling a driving chunk may not exceed.
func (d *DailyBudget) RoomForDrive() int {
	room := DayDriveMaxMin - d.driveUsed
	if w := DayWindowMin - d.windowUsed; w < room {
		room = w
	}
	return room
}

// RecordDrive accounts for a DRIVING segment against both counters.
func (d *DailyBudget) RecordDrive(minutes int) {
	d.driveUsed += minutes
	d.windowUsed += minutes
}

// RecordOnDuty accounts for an ON_DUTY segment (pickup, drop, fuel)
// against the window only.
func (d *DailyBudget) RecordOnDuty(minutes int) {
	d.windowUsed += minutes
}

// RecordBreak accounts for the in-day 30-minute break against the window
// only — the break consumes the 14-hour window but not the 11-hour
// driving cap (spec §4.3, §9 open question 3).
func (d *DailyBudget) RecordBreak(minutes int) {
	d.windowUsed += minutes
}

// Reset zeroes both counters at the start of a new workday.
func (d *DailyBudget) Reset() {
	d.windowUsed = 0
	d.driveUsed = 0
}

// DriveUsed returns accumulated driving minutes for the current day.
func (d *DailyBudget) DriveUsed() int { return d.driveUsed }

// WindowUsed returns accumulated on-duty-window minutes for the current day.
func (d *DailyBudget) WindowUsed() int { return d.windowUsed }
