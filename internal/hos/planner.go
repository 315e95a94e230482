package hos

import (
	"math"
	"time"

	"github.com/draymaster/tripplanner/internal/platform/apperr"
)

// Input is the planner's single structured input (spec §3, §6). All
// fields are required except StartAt, which defaults to today at 08:00 in
// the caller's local timezone.
type Input struct {
	DistanceMi            float64
	DurationHr            float64
	CurrentCycleUsedHours float64
	PrePickupDriveMin     int
	StartAt               time.Time
}

// Result is the raw output of one planning run: the emitted segment
// sequence plus its two pure projections (stops, day groups).
type Result struct {
	Segments []Segment
	Stops    []Stop
	Days     []DayPlan
}

// Plan runs the HOS simulation core (spec §4.5) to completion. It performs
// no I/O, blocks on nothing, and is deterministic: identical Input always
// produces an identical Result. Undefined or infeasible input fails fast
// with an InvalidInput error before any segment is emitted (spec §4.9);
// once the loop begins, it is total and always terminates.
func Plan(in Input) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	durationMin := int(math.Round(in.DurationHr * 60))
	cycleUsedMin := int(math.Round(in.CurrentCycleUsedHours * 60))

	prePickup := in.PrePickupDriveMin
	if prePickup < 0 {
		prePickup = 0
	}

	start := in.StartAt
	if start.IsZero() {
		now := time.Now()
		start = time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, now.Location())
	}

	p := &planner{
		cursor:      start,
		drivingLeft: durationMin,
		pickupDue:   prePickup,
		mileage:     PlanMileage(in.DistanceMi, durationMin, prePickup),
		cycle:       NewCycleClock(cycleUsedMin),
		day:         NewDailyBudget(),
		brk:         NewBreakTrigger(),
	}
	p.run()

	return &Result{
		Segments: p.segments,
		Stops:    StopsFromSegments(p.segments),
		Days:     GroupDays(p.segments),
	}, nil
}

func validate(in Input) error {
	if math.IsNaN(in.DistanceMi) || math.IsInf(in.DistanceMi, 0) || in.DistanceMi < 0 {
		return apperr.InvalidInput("distance_mi must be a non-negative finite number")
	}
	if math.IsNaN(in.DurationHr) || math.IsInf(in.DurationHr, 0) || in.DurationHr < 0 {
		return apperr.InvalidInput("duration_hr must be a non-negative finite number")
	}
	if math.IsNaN(in.CurrentCycleUsedHours) || math.IsInf(in.CurrentCycleUsedHours, 0) ||
		in.CurrentCycleUsedHours < 0 || in.CurrentCycleUsedHours > 70 {
		return apperr.InvalidInput("current_cycle_used_hours must be within [0, 70]")
	}
	return nil
}

// planner holds the mutable state threaded through a single planning run.
// It is owned exclusively by one Plan call and shares no state with any
// other invocation — multiple plans may run in parallel by construction
// (spec §5, §9).
type planner struct {
	cursor      time.Time
	drivingLeft int
	drivenMin   int
	pickupDone  bool
	pickupDue   int // pre_pickup_drive_min; meaningless once pickupDone is true

	mileage MileagePlan
	cycle   *CycleClock
	day     *DailyBudget
	brk     *BreakTrigger

	segments []Segment
}

// run is the scheduler (spec §4.5): at each step it picks exactly one
// action by ordered priority, emits one segment, updates every clock the
// segment touches, and repeats until the driving workload is exhausted.
func (p *planner) run() {
	if p.pickupDue == 0 {
		p.doPickup()
	}

	for p.drivingLeft > 0 {
		switch {
		case !p.pickupDone && p.drivenMin >= p.pickupDue:
			p.doPickup()
		case p.cycle.Exhausted():
			p.doCycleRestart()
		case p.brk.Due():
			p.doBreak()
		case p.day.Exhausted():
			p.doDailyReset()
		default:
			p.driveChunk()
		}
	}

	p.emit(DropBlockMin, StatusOnDuty, LabelDrop)
	p.day.RecordOnDuty(DropBlockMin)
}

// emit appends one segment and advances the cursor. DRIVING and ON_DUTY
// segments accrue cycle minutes; OFF segments never do (spec §4.1/§4.5).
func (p *planner) emit(minutes int, status Status, label string) {
	seg := Segment{
		Start:  p.cursor,
		End:    p.cursor.Add(time.Duration(minutes) * time.Minute),
		Status: status,
		Label:  label,
	}
	p.segments = append(p.segments, seg)
	p.cursor = seg.End
	if status == StatusDriving || status == StatusOnDuty {
		p.cycle.AddDutyMinutes(minutes)
	}
}

// startNewDay normalizes the wall clock to 08:00 on the date the prior
// off-duty block ended, or to 08:00 of the following day when the block
// ended after 08:00, so time never moves backwards (spec §4.8). The gap
// this may leave between the off-duty segment's End and the next
// segment's Start is kept implicit — see DESIGN.md / SPEC_FULL.md §6 open
// question 1.
func (p *planner) startNewDay() {
	c := p.cursor
	next := time.Date(c.Year(), c.Month(), c.Day(), 8, 0, 0, 0, c.Location())
	if next.Before(c) {
		next = next.AddDate(0, 0, 1)
	}
	p.cursor = next
}

func (p *planner) doPickup() {
	p.emit(PickupBlockMin, StatusOnDuty, LabelPickup)
	p.day.RecordOnDuty(PickupBlockMin)
	p.brk.Reset()
	p.pickupDone = true
}

func (p *planner) doFuel() {
	p.emit(FuelBlockMin, StatusOnDuty, LabelFuel)
	p.day.RecordOnDuty(FuelBlockMin)
	p.brk.Reset()
}

func (p *planner) doBreak() {
	p.emit(BreakBlockMin, StatusOff, LabelBreak)
	p.day.RecordBreak(BreakBlockMin)
	p.brk.Reset()
}

func (p *planner) doDailyReset() {
	p.emit(OffDutyResetMin, StatusOff, LabelDailyReset)
	p.brk.Reset()
	p.startNewDay()
	p.day.Reset()
}

func (p *planner) doCycleRestart() {
	p.emit(CycleResetMin, StatusOff, LabelCycleRestart)
	p.cycle.Reset()
	p.brk.Reset()
	p.startNewDay()
	p.day.Reset()
}

// driveChunk computes the largest driving chunk the active budgets allow,
// clamps it to the MIN_DRIVE_CHUNK floor (capped back to what remains),
// and splits it at the nearest fuel or pickup threshold if one falls
// inside it (spec §4.5 step 5).
func (p *planner) driveChunk() {
	chunk := p.day.RoomForDrive()
	if room := p.brk.RoomUntilBreak(); room < chunk {
		chunk = room
	}
	if p.drivingLeft < chunk {
		chunk = p.drivingLeft
	}
	if chunk < MinDriveChunkMin {
		chunk = MinDriveChunkMin
	}
	if chunk > p.drivingLeft {
		chunk = p.drivingLeft
	}

	if threshold, isPickup, ok := p.mileage.NextSplit(p.drivenMin, chunk, p.pickupDone); ok {
		p.driveMinutes(threshold - p.drivenMin)
		if isPickup {
			p.doPickup()
		} else {
			p.doFuel()
		}
		return
	}

	p.driveMinutes(chunk)
}

func (p *planner) driveMinutes(minutes int) {
	p.emit(minutes, StatusDriving, "")
	p.day.RecordDrive(minutes)
	p.brk.AddDriveMinutes(minutes)
	p.drivingLeft -= minutes
	p.drivenMin += minutes
}
