package hos

import "math"

// Mileage/operational constants.
const (
	FuelEveryMiles   = 1000.0
	FuelBlockMin     = 30
	PickupBlockMin   = 60
	DropBlockMin     = 60
	MinDriveChunkMin = 15
)

// MileagePlan holds the driving-minute thresholds computed once at planner
// start (spec §4.4): one threshold per fuel stop, spaced every
// FuelEveryMiles and expressed against the cumulative driven-minutes
// counter (not wall-clock time, so breaks and resets never shift fuel
// placement), plus the single pickup-split threshold.
type MileagePlan struct {
	FuelThresholdsMin  []int
	PickupThresholdMin int
	HasPickupSplit     bool
}

// PlanMileage computes the fuel and pickup thresholds for a trip of
// distanceMi total miles over durationMin total driving minutes. The
// pickup split applies only when prePickupDriveMin is nonzero.
func PlanMileage(distanceMi float64, durationMin int, prePickupDriveMin int) MileagePlan {
	var thresholds []int
	if distanceMi >= FuelEveryMiles {
		stopCount := int(math.Floor(distanceMi / FuelEveryMiles))
		for k := 1; k <= stopCount; k++ {
			miles := float64(k) * FuelEveryMiles
			thresholds = append(thresholds, roundHalfUp(miles/distanceMi*float64(durationMin)))
		}
	}
	return MileagePlan{
		FuelThresholdsMin:  thresholds,
		PickupThresholdMin: prePickupDriveMin,
		HasPickupSplit:     prePickupDriveMin > 0,
	}
}

// NextSplit reports the nearest remaining split threshold that falls
// strictly after drivenMin and at-or-before drivenMin+chunk — the smaller
// of the lowest qualifying fuel threshold and the pickup threshold (if not
// yet reached). ok is false when the chunk crosses no split.
func (m MileagePlan) NextSplit(drivenMin, chunk int, pickupDone bool) (thresholdMin int, isPickup bool, ok bool) {
	candidate := -1

	for _, t := range m.FuelThresholdsMin {
		if t <= drivenMin {
			continue
		}
		if t <= drivenMin+chunk {
			candidate = t
		}
		break // thresholds are ascending: the first one past drivenMin is nearest
	}

	pickupCandidate := false
	if !pickupDone && m.HasPickupSplit {
		t := m.PickupThresholdMin
		if t > drivenMin && t <= drivenMin+chunk && (candidate == -1 || t <= candidate) {
			candidate = t
			pickupCandidate = true
		}
	}

	if candidate == -1 {
		return 0, false, false
	}
	return candidate, pickupCandidate, true
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
