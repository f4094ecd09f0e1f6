package analysis

import (
	"fmt"
	"sort"
	"time"

	"portcli/pkg/contracts/domain"
)

// LookaheadParams configure the point-in-time occupancy scan.
type LookaheadParams struct {
	// Lookahead is the forward-looking horizon applied at every instant.
	Lookahead time.Duration `json:"lookahead"`
	// Interval is the step between consecutive scan instants.
	Interval time.Duration `json:"interval"`
}

// Validate rejects non-positive scan parameters.
func (p LookaheadParams) Validate() error {
	if p.Lookahead <= 0 {
		return fmt.Errorf("lookahead must be positive, got %s", p.Lookahead)
	}
	if p.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", p.Interval)
	}
	return nil
}

// OccupancyAt counts, per berth, the vessels whose presence interval touches
// [at, at+lookahead]: arrival no later than the horizon and departure no
// earlier than the instant. Both bounds are inclusive; this deliberately
// differs from the range classifier's In-Port test.
func OccupancyAt(calls []domain.VesselCall, at time.Time, lookahead time.Duration) map[string]int {
	horizon := at.Add(lookahead)
	counts := make(map[string]int)
	for _, c := range calls {
		if !c.HasBerth() {
			continue
		}
		if !c.Arrival.After(horizon) && !c.Departure.Before(at) {
			counts[c.Berth]++
		}
	}
	return counts
}

// LookaheadScan walks a timeline from the earliest arrival to the latest
// departure in fixed steps and samples per-berth occupancy at each instant.
// An empty call set yields no samples.
func LookaheadScan(calls []domain.VesselCall, params LookaheadParams) []OccupancySample {
	if len(calls) == 0 {
		return nil
	}

	first := calls[0].Arrival
	last := calls[0].Departure
	for _, c := range calls[1:] {
		if c.Arrival.Before(first) {
			first = c.Arrival
		}
		if c.Departure.After(last) {
			last = c.Departure
		}
	}

	var samples []OccupancySample
	for t := first; !t.After(last); t = t.Add(params.Interval) {
		samples = append(samples, OccupancySample{
			At:     t,
			Berths: OccupancyAt(calls, t, params.Lookahead),
		})
	}
	return samples
}

// ScanBerths returns the sorted set of berth names appearing in any sample,
// the column order used by the occupancy matrix export.
func ScanBerths(samples []OccupancySample) []string {
	seen := make(map[string]bool)
	for _, s := range samples {
		for berth := range s.Berths {
			seen[berth] = true
		}
	}
	berths := make([]string, 0, len(seen))
	for berth := range seen {
		berths = append(berths, berth)
	}
	sort.Strings(berths)
	return berths
}
