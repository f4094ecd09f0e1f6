package analysis

import (
	"time"

	"portcli/pkg/contracts/domain"
)

// Classify partitions the valid calls into the three window subsets. A call
// may land in several subsets at once (for example arriving and departing
// inside the same window). The caller is expected to have validated the
// window first.
func Classify(calls []domain.VesselCall, w Window) ClassifiedSets {
	var sets ClassifiedSets
	for _, c := range calls {
		if inWindow(c.Arrival, w) {
			sets.Arriving = append(sets.Arriving, c)
		}
		if inWindow(c.Departure, w) {
			sets.Departing = append(sets.Departing, c)
		}
		if c.Arrival.Before(w.End) && c.Departure.After(w.Start) {
			sets.InPort = append(sets.InPort, c)
		}
	}
	return sets
}

// inWindow is the inclusive membership test used for Arriving and Departing:
// Start <= t <= End.
func inWindow(t time.Time, w Window) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// PresentAt reports the calls berthed at the given instant, the strict
// point-in-time variant used to seed the deadweight series: arrival strictly
// before and departure strictly after the instant.
func PresentAt(calls []domain.VesselCall, at time.Time) []domain.VesselCall {
	var present []domain.VesselCall
	for _, c := range calls {
		if c.Arrival.Before(at) && c.Departure.After(at) {
			present = append(present, c)
		}
	}
	return present
}
