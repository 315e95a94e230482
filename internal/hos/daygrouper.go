package hos

import (
	"fmt"
	"time"
)

// DayPlan groups a contiguous run of one calendar day's segments, keyed by
// each segment's Start date (spec §4.6). Segments retain emission order,
// which is already chronological.
type DayPlan struct {
	Date     time.Time
	Segments []Segment
}

// GroupDays partitions an emitted segment sequence into DayPlans. A
// calendar day with no segments (skipped entirely by a restart spanning
// more than 24h) produces no DayPlan, which is consistent with the
// invariant that every DayPlan is non-empty.
func GroupDays(segments []Segment) []DayPlan {
	var days []DayPlan
	for _, seg := range segments {
		d := truncateToDay(seg.Start)
		if len(days) == 0 || !days[len(days)-1].Date.Equal(d) {
			days = append(days, DayPlan{Date: d})
		}
		last := &days[len(days)-1]
		last.Segments = append(last.Segments, seg)
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DriveMinutes sums the durations of this day's DRIVING segments.
func (d DayPlan) DriveMinutes() int {
	total := 0
	for _, s := range d.Segments {
		if s.Status == StatusDriving {
			total += s.DurationMin()
		}
	}
	return total
}

// WindowMinutes sums the durations of all this day's segments.
func (d DayPlan) WindowMinutes() int {
	total := 0
	for _, s := range d.Segments {
		total += s.DurationMin()
	}
	return total
}

// render projects a DayPlan into its external representation at the given
// 1-based day index (spec §4.7).
func (d DayPlan) render(index int) RenderedDay {
	segs := make([]DaySegment, 0, len(d.Segments))
	for _, s := range d.Segments {
		segs = append(segs, DaySegment{
			T0:     s.Start.Format("15:04"),
			T1:     s.End.Format("15:04"),
			Status: s.Status,
			Label:  s.Label,
		})
	}
	driveHr := float64(d.DriveMinutes()) / 60.0
	windowHr := float64(d.WindowMinutes()) / 60.0
	return RenderedDay{
		Index:    index,
		Date:     d.Date.Format("2006-01-02"),
		Segments: segs,
		Notes:    fmt.Sprintf("Day total: %.2fh driving; window used: %.2fh", driveHr, windowHr),
	}
}
