package hos

import (
	"sort"
	"time"
)

// StopType identifies the kind of operational stop (spec §3).
type StopType string

const (
	StopPickup StopType = "pickup"
	StopDrop   StopType = "drop"
	StopFuel   StopType = "fuel"
	StopBreak  StopType = "break"
)

// Stop is a labeled event derived from a segment as it is emitted. A Stop
// is never mutated after creation; only its position in the final
// ETA-sorted list changes.
type Stop struct {
	Type        StopType  `json:"type"`
	ETA         time.Time `json:"eta"`
	DurationMin int       `json:"duration_min"`
}

// StopsFromSegments derives the stop ledger as a pure mapping over the
// final segment sequence: filter by label, project to Stop, sort by ETA
// ascending (stable, per spec §3's ordering rule).
func StopsFromSegments(segments []Segment) []Stop {
	stops := make([]Stop, 0, len(segments))
	for _, seg := range segments {
		stopType, ok := stopTypeForLabel(seg.Label)
		if !ok {
			continue
		}
		stops = append(stops, Stop{Type: stopType, ETA: seg.Start, DurationMin: seg.DurationMin()})
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].ETA.Before(stops[j].ETA) })
	return stops
}

func stopTypeForLabel(label string) (StopType, bool) {
	switch label {
	case LabelPickup:
		return StopPickup, true
	case LabelDrop:
		return StopDrop, true
	case LabelFuel:
		return StopFuel, true
	case LabelBreak:
		return StopBreak, true
	default:
		return "", false
	}
}
