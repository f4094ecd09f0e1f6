// Package schedule ingests vessel schedule workbooks (Excel .xlsx) and turns
// them into VesselCall records ready for window analysis.
//
// # Architecture
//
// Two components cooperate:
//
// 1. Column resolution: header names are matched against ordered synonym
// lists per semantic field (ship, arrival day/time, departure day/time,
// berth, docking hours, estimated docking hours, deadweight). Exact match,
// first candidate wins.
//
// 2. Row parsing: each data row combines a date cell and a time cell into a
// single timestamp per endpoint. Rows whose arrival or departure cannot be
// parsed are dropped and only counted in aggregate.
//
// # Usage
//
//	sched, err := schedule.LoadFile(ctx, "buques.xlsx", logger)
//	if err != nil {
//	    // file unreadable or required columns missing
//	}
//	calls := sched.Calls // valid records only
//
// # Error Handling
//
// Missing required columns produce a *MissingColumnsError naming every
// absent field together with the headers actually found, so the caller can
// report a correctable input problem. Per-row parse failures are never
// errors; they only increment Schedule.Skipped.
package schedule
