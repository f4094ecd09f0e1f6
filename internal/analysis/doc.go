// Package analysis holds the pure computation core: interval classification
// of vessel calls against an analysis window, load aggregation (subset
// totals, per-berth occupancy, cumulative deadweight series), and the
// point-in-time lookahead occupancy scan.
//
// Everything here is a pure function of its inputs. There is no I/O, no
// shared state, and recomputation with the same inputs yields the same
// outputs.
//
// # Boundary semantics
//
// The window boundaries are deliberately asymmetric and must not be
// "fixed": Arriving and Departing membership is inclusive at both window
// edges, while In-Port membership uses strict inequalities (arrival before
// the window end AND departure after the window start). A vessel departing
// exactly at the window start is therefore Departing but not In-Port.
//
// The lookahead scan uses its own inclusive test (arrival <= horizon AND
// departure >= instant); the two query modes are intentionally not unified.
package analysis
