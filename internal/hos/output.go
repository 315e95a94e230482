package hos

import "math"

// RouteEcho is the rounded route summary echoed back to the caller (spec
// §4.7): distance to 1 decimal, duration to 2 decimals.
type RouteEcho struct {
	DistanceMi float64 `json:"distance_mi"`
	DurationHr float64 `json:"duration_hr"`
	Polyline   *string `json:"polyline,omitempty"`
}

// DaySegment is a Segment rendered for output: HH:MM local strings instead
// of instants.
type DaySegment struct {
	T0     string `json:"t0"`
	T1     string `json:"t1"`
	Status Status `json:"status"`
	Label  string `json:"label"`
}

// RenderedDay is a DayPlan rendered for output.
type RenderedDay struct {
	Index    int          `json:"index"`
	Date     string       `json:"date"`
	Segments []DaySegment `json:"segments"`
	Notes    string       `json:"notes"`
}

// PlanOutput is the fully assembled core output — route echo, ordered
// stops, and day plans — ready for a transport layer to marshal.
type PlanOutput struct {
	Route RouteEcho     `json:"route"`
	Stops []Stop        `json:"stops"`
	Days  []RenderedDay `json:"days"`
}

// Assemble packages a planning Result plus the route's distance (and an
// optional upstream polyline) into the external response shape (spec
// §4.7). It is the sole place rounding and HH:MM/date formatting happen;
// Stop.ETA is left as a time.Time for the transport layer to render as
// ISO-8601.
//
// The echoed duration_hr is derived from the plan's quantized total
// driving minutes (durationMin = round(duration_hr*60), spec §3), not
// from the raw input duration_hr, matching original_source's
// round(self.duration_min/60.0, 2) — for inputs where duration_hr*60
// isn't integral the two differ in the second decimal.
func Assemble(distanceMi float64, polyline *string, result *Result) PlanOutput {
	days := make([]RenderedDay, 0, len(result.Days))
	for i, d := range result.Days {
		days = append(days, d.render(i+1))
	}
	return PlanOutput{
		Route: RouteEcho{
			DistanceMi: roundTo(distanceMi, 1),
			DurationHr: roundTo(float64(totalDriveMinutes(result.Segments))/60.0, 2),
			Polyline:   polyline,
		},
		Stops: result.Stops,
		Days:  days,
	}
}

func totalDriveMinutes(segments []Segment) int {
	total := 0
	for _, seg := range segments {
		if seg.Status == StatusDriving {
			total += seg.DurationMin()
		}
	}
	return total
}

func roundTo(v float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(v*shift) / shift
}
