package analysis

import (
	"sort"

	"portcli/pkg/contracts/domain"
)

// Totals computes the vessel count and deadweight sum for one subset.
// Missing deadweight sums as 0, so an all-missing subset reports 0.
func Totals(calls []domain.VesselCall) SubsetTotals {
	t := SubsetTotals{Vessels: len(calls)}
	for _, c := range calls {
		t.Deadweight += c.DWT()
	}
	return t
}

// BerthOccupancy groups the In-Port subset by berth. Calls without a berth
// assignment are left out of the grouping. Summaries come back sorted by
// berth name for stable output.
func BerthOccupancy(inPort []domain.VesselCall) []BerthSummary {
	type acc struct {
		vessels      int
		dwt          float64
		dockingSum   float64
		dockingCount int
	}
	byBerth := make(map[string]*acc)

	for _, c := range inPort {
		if !c.HasBerth() {
			continue
		}
		a := byBerth[c.Berth]
		if a == nil {
			a = &acc{}
			byBerth[c.Berth] = a
		}
		a.vessels++
		a.dwt += c.DWT()
		if c.DockingHours != nil {
			a.dockingSum += *c.DockingHours
			a.dockingCount++
		}
	}

	summaries := make([]BerthSummary, 0, len(byBerth))
	for berth, a := range byBerth {
		s := BerthSummary{
			Berth:           berth,
			Vessels:         a.vessels,
			TotalDeadweight: a.dwt,
		}
		if a.dockingCount > 0 {
			s.AvgDockingHours = a.dockingSum / float64(a.dockingCount)
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Berth < summaries[j].Berth
	})
	return summaries
}

// ComputeDeadweightSeries builds the cumulative deadweight-in-port series
// over the window. The running sum is seeded with the tonnage of vessels
// already present at the window start; only calls that carry a deadweight
// value contribute arrival/departure events.
func ComputeDeadweightSeries(calls []domain.VesselCall, w Window) DeadweightSeries {
	var initial float64
	for _, c := range PresentAt(calls, w.Start) {
		initial += c.DWT()
	}

	type event struct {
		point SeriesPoint
		delta float64
	}
	var events []event
	for _, c := range calls {
		if c.Deadweight == nil {
			continue
		}
		if inWindow(c.Arrival, w) {
			events = append(events, event{
				point: SeriesPoint{At: c.Arrival, Type: EventArrival, Vessel: c.Ship},
				delta: *c.Deadweight,
			})
		}
		if inWindow(c.Departure, w) {
			events = append(events, event{
				point: SeriesPoint{At: c.Departure, Type: EventDeparture, Vessel: c.Ship},
				delta: -*c.Deadweight,
			})
		}
	}

	series := DeadweightSeries{Initial: initial}

	if len(events) == 0 {
		// Flat two-point series so consumers always get a plottable line.
		series.Points = []SeriesPoint{
			{At: w.Start, DWT: initial, Type: EventInitial},
			{At: w.End, DWT: initial, Type: EventFinal},
		}
		return series
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].point.At.Before(events[j].point.At)
	})

	series.Points = make([]SeriesPoint, 0, len(events)+1)
	series.Points = append(series.Points, SeriesPoint{At: w.Start, DWT: initial, Type: EventInitial})

	running := initial
	for _, e := range events {
		running += e.delta
		p := e.point
		p.DWT = running
		series.Points = append(series.Points, p)
	}

	return series
}
