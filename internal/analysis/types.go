package analysis

import (
	"fmt"
	"time"

	"portcli/pkg/contracts/domain"
)

// Window is the analysis window [Start, End] selected by the caller.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate rejects windows that do not strictly move forward in time.
func (w Window) Validate() error {
	if !w.End.After(w.Start) {
		return fmt.Errorf("window end %s must be after start %s",
			w.End.Format(time.RFC3339), w.Start.Format(time.RFC3339))
	}
	return nil
}

// Days returns the whole number of days covered by the window.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}

// ClassifiedSets are the three possibly-overlapping subsets of the valid
// calls relative to a window. Recomputed on every analysis, never persisted.
type ClassifiedSets struct {
	Arriving  []domain.VesselCall `json:"arriving"`
	InPort    []domain.VesselCall `json:"in_port"`
	Departing []domain.VesselCall `json:"departing"`
}

// TotalOperations counts arrivals plus departures in the window.
func (s ClassifiedSets) TotalOperations() int {
	return len(s.Arriving) + len(s.Departing)
}

// SubsetTotals summarizes one classified subset.
type SubsetTotals struct {
	Vessels    int     `json:"vessels"`
	Deadweight float64 `json:"deadweight"`
}

// BerthSummary aggregates the In-Port subset for one berth.
type BerthSummary struct {
	Berth           string  `json:"berth"`
	Vessels         int     `json:"vessels"`
	TotalDeadweight float64 `json:"total_deadweight"`
	// AvgDockingHours is the mean of the actual docking hours that were
	// present; 0 when no vessel at the berth carried the value.
	AvgDockingHours float64 `json:"avg_docking_hours"`
}

// EventType marks a deadweight series event.
type EventType string

const (
	EventInitial   EventType = "Initial"
	EventArrival   EventType = "Arrival"
	EventDeparture EventType = "Departure"
	EventFinal     EventType = "Final"
)

// SeriesPoint is one point of the cumulative deadweight-in-port series.
type SeriesPoint struct {
	At     time.Time `json:"at"`
	DWT    float64   `json:"dwt_in_port"`
	Type   EventType `json:"type"`
	Vessel string    `json:"vessel,omitempty"`
}

// DeadweightSeries is the chronological deadweight-in-port trajectory over a
// window, seeded with the tonnage already present at the window start.
type DeadweightSeries struct {
	Initial float64       `json:"initial"`
	Points  []SeriesPoint `json:"points"`
}

// Stats computes summary statistics over the series values.
func (s DeadweightSeries) Stats() SeriesStats {
	stats := SeriesStats{Initial: s.Initial}
	if len(s.Points) == 0 {
		return stats
	}

	stats.Min = s.Points[0].DWT
	stats.Max = s.Points[0].DWT
	var sum float64
	for _, p := range s.Points {
		sum += p.DWT
		if p.DWT > stats.Max {
			stats.Max = p.DWT
		}
		if p.DWT < stats.Min {
			stats.Min = p.DWT
		}
	}
	stats.Mean = sum / float64(len(s.Points))
	return stats
}

// SeriesStats summarizes a deadweight series.
type SeriesStats struct {
	Initial float64 `json:"initial"`
	Mean    float64 `json:"mean"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
}

// OccupancySample is one step of the lookahead scan: how many vessels are
// present (or due within the lookahead horizon) per berth at an instant.
type OccupancySample struct {
	At     time.Time      `json:"at"`
	Berths map[string]int `json:"berths"`
}

// Total sums the per-berth counts of the sample.
func (s OccupancySample) Total() int {
	total := 0
	for _, n := range s.Berths {
		total += n
	}
	return total
}
