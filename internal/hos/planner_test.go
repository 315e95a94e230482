package hos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStart(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)
}

func TestPlan_ShortTripNoSplits(t *testing.T) {
	res, err := Plan(Input{
		DistanceMi:            200,
		DurationHr:            4,
		CurrentCycleUsedHours: 10,
		PrePickupDriveMin:     0,
		StartAt:               mustStart(t),
	})
	require.NoError(t, err)

	require.Len(t, res.Segments, 3)
	assert.Equal(t, LabelPickup, res.Segments[0].Label)
	assert.Equal(t, 60, res.Segments[0].DurationMin())
	assert.Equal(t, StatusDriving, res.Segments[1].Status)
	assert.Equal(t, 240, res.Segments[1].DurationMin())
	assert.Equal(t, LabelDrop, res.Segments[2].Label)

	assert.Len(t, res.Days, 1)
	assert.Zero(t, countStops(res.Stops, StopFuel))
	assert.Zero(t, countStops(res.Stops, StopBreak))
	assert.Equal(t, 0, countLabel(res.Segments, LabelCycleRestart))
	assert.Equal(t, 0, countLabel(res.Segments, LabelDailyReset))
}

func TestPlan_SingleFuelSplit(t *testing.T) {
	res, err := Plan(Input{
		DistanceMi:            1200,
		DurationHr:            24,
		CurrentCycleUsedHours: 0,
		StartAt:               mustStart(t),
	})
	require.NoError(t, err)

	fuelStops := stopsOf(res.Stops, StopFuel)
	require.Len(t, fuelStops, 1)

	drivenBeforeFuel := 0
	for _, seg := range res.Segments {
		if seg.Label == LabelFuel {
			break
		}
		if seg.Status == StatusDriving {
			drivenBeforeFuel += seg.DurationMin()
		}
	}
	assert.Equal(t, 1200, drivenBeforeFuel)

	assert.Equal(t, 1440, totalDriveMinutes(res.Segments))
}

func TestPlan_BreakAfter8hDriving(t *testing.T) {
	res, err := Plan(Input{
		DistanceMi:            500,
		DurationHr:            9,
		CurrentCycleUsedHours: 0,
		StartAt:               mustStart(t),
	})
	require.NoError(t, err)

	breaks := countLabel(res.Segments, LabelBreak)
	assert.Equal(t, 1, breaks)

	drivenBeforeBreak := 0
	for _, seg := range res.Segments {
		if seg.Label == LabelBreak {
			break
		}
		if seg.Status == StatusDriving {
			drivenBeforeBreak += seg.DurationMin()
		}
	}
	assert.Equal(t, 480, drivenBeforeBreak)
}

func TestPlan_DailyReset(t *testing.T) {
	res, err := Plan(Input{
		DistanceMi:            700,
		DurationHr:            14,
		CurrentCycleUsedHours: 0,
		StartAt:               mustStart(t),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countLabel(res.Segments, LabelDailyReset))
	require.Len(t, res.Days, 2)
	assert.Equal(t, 660, res.Days[0].DriveMinutes())
	assert.Equal(t, 180, res.Days[1].DriveMinutes())
}

func TestPlan_CycleRestart(t *testing.T) {
	res, err := Plan(Input{
		DistanceMi:            300,
		DurationHr:            6,
		CurrentCycleUsedHours: 69,
		StartAt:               mustStart(t),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countLabel(res.Segments, LabelCycleRestart))
	for _, seg := range res.Segments {
		if seg.Label == LabelCycleRestart {
			assert.Equal(t, CycleResetMin, seg.DurationMin())
		}
	}
}

func TestPlan_PickupBoundarySplit(t *testing.T) {
	res, err := Plan(Input{
		DistanceMi:            400,
		DurationHr:            8,
		CurrentCycleUsedHours: 0,
		PrePickupDriveMin:     120,
		StartAt:               mustStart(t),
	})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(res.Segments), 3)
	assert.Equal(t, StatusDriving, res.Segments[0].Status)
	assert.Equal(t, 120, res.Segments[0].DurationMin())
	assert.Equal(t, LabelPickup, res.Segments[1].Label)

	assert.Equal(t, 1, countLabel(res.Segments, LabelPickup))
	assert.Equal(t, 1, countLabel(res.Segments, LabelDrop))
	assert.Equal(t, LabelDrop, res.Segments[len(res.Segments)-1].Label)
}

func TestPlan_InvalidInput(t *testing.T) {
	cases := []Input{
		{DistanceMi: -1, DurationHr: 1},
		{DistanceMi: 1, DurationHr: -1},
		{DistanceMi: 1, DurationHr: 1, CurrentCycleUsedHours: 71},
	}
	for _, in := range cases {
		_, err := Plan(in)
		assert.Error(t, err)
	}
}

func TestPlan_Deterministic(t *testing.T) {
	in := Input{DistanceMi: 2300, DurationHr: 40, CurrentCycleUsedHours: 20, PrePickupDriveMin: 45, StartAt: mustStart(t)}
	a, err := Plan(in)
	require.NoError(t, err)
	b, err := Plan(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestPlan_Invariants sweeps a table of trips and checks quantified
// invariants 1-4, 6-8 and 10 from spec §8 against each; invariants 5 and 9
// are not checked here.
func TestPlan_Invariants(t *testing.T) {
	trips := []Input{
		{DistanceMi: 200, DurationHr: 4, CurrentCycleUsedHours: 10, StartAt: mustStart(t)},
		{DistanceMi: 1200, DurationHr: 24, CurrentCycleUsedHours: 0, StartAt: mustStart(t)},
		{DistanceMi: 500, DurationHr: 9, CurrentCycleUsedHours: 0, StartAt: mustStart(t)},
		{DistanceMi: 700, DurationHr: 14, CurrentCycleUsedHours: 0, StartAt: mustStart(t)},
		{DistanceMi: 300, DurationHr: 6, CurrentCycleUsedHours: 68, StartAt: mustStart(t)},
		{DistanceMi: 400, DurationHr: 8, CurrentCycleUsedHours: 0, PrePickupDriveMin: 120, StartAt: mustStart(t)},
		{DistanceMi: 300, DurationHr: 6, CurrentCycleUsedHours: 69, StartAt: mustStart(t)},
		{DistanceMi: 0, DurationHr: 0, CurrentCycleUsedHours: 0, StartAt: mustStart(t)},
	}

	for _, in := range trips {
		res, err := Plan(in)
		require.NoError(t, err)

		// 1. Strictly positive integer duration.
		for _, seg := range res.Segments {
			assert.Greater(t, seg.DurationMin(), 0)
		}

		// 2. Monotonically non-decreasing in time.
		for i := 1; i < len(res.Segments); i++ {
			assert.False(t, res.Segments[i].Start.Before(res.Segments[i-1].End))
		}

		// 3. Sum of DRIVING durations equals round(duration_hr*60).
		expectedDrive := int(in.DurationHr*60 + 0.5)
		assert.Equal(t, expectedDrive, totalDriveMinutes(res.Segments))

		// 4. No workday exceeds 660 driving minutes.
		for _, d := range res.Days {
			assert.LessOrEqual(t, d.DriveMinutes(), DayDriveMaxMin)
		}

		// 6. No driving segment ends with >480 min since the last
		// qualifying non-driving interval.
		sinceBreak := 0
		for _, seg := range res.Segments {
			if seg.Status == StatusDriving {
				sinceBreak += seg.DurationMin()
				assert.LessOrEqual(t, sinceBreak, BreakAfterDriveMin)
			} else if seg.DurationMin() >= 30 {
				sinceBreak = 0
			}
		}

		// 7. Fuel stop count equals floor(distance_mi/1000).
		expectedFuel := int(in.DistanceMi / FuelEveryMiles)
		assert.Equal(t, expectedFuel, countStops(res.Stops, StopFuel))

		// 8. Exactly one Pickup and one Drop; Pickup before any Drop;
		// Drop is final.
		assert.Equal(t, 1, countLabel(res.Segments, LabelPickup))
		assert.Equal(t, 1, countLabel(res.Segments, LabelDrop))
		assert.Equal(t, LabelDrop, res.Segments[len(res.Segments)-1].Label)

		// 10. Stops are ETA-ascending (the match against each originating
		// segment is not checked here).
		for i := 1; i < len(res.Stops); i++ {
			assert.False(t, res.Stops[i].ETA.Before(res.Stops[i-1].ETA))
		}
	}
}

func countLabel(segments []Segment, label string) int {
	n := 0
	for _, s := range segments {
		if s.Label == label {
			n++
		}
	}
	return n
}

func countStops(stops []Stop, t StopType) int {
	return len(stopsOf(stops, t))
}

func stopsOf(stops []Stop, t StopType) []Stop {
	var out []Stop
	for _, s := range stops {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}
