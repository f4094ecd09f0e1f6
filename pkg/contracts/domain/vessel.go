package domain

import (
	"time"
)

// VesselCall represents a single vessel port call: one scheduled visit with an
// arrival and a departure. A call only exists once both timestamps parsed;
// rows without them are dropped at ingestion and never reach this type.
type VesselCall struct {
	Ship      string    `json:"ship" validate:"required"`
	Arrival   time.Time `json:"arrival"`
	Departure time.Time `json:"departure"`

	// Berth is empty when the sheet carries no berth assignment.
	Berth string `json:"berth,omitempty"`

	// Optional numeric fields are pointers so a missing cell is
	// distinguishable from an explicit zero.
	DockingHours    *float64 `json:"docking_hours,omitempty"`
	EstDockingHours *float64 `json:"est_docking_hours,omitempty"`
	Deadweight      *float64 `json:"deadweight,omitempty"`
}

// DWT returns the deadweight, treating a missing value as 0.
func (c VesselCall) DWT() float64 {
	if c.Deadweight == nil {
		return 0
	}
	return *c.Deadweight
}

// HasBerth reports whether the call carries a berth assignment.
func (c VesselCall) HasBerth() bool {
	return c.Berth != ""
}

// Duration returns the interval between arrival and departure. Departure is
// not required to follow arrival, so the result may be negative; callers that
// care must check.
func (c VesselCall) Duration() time.Duration {
	return c.Departure.Sub(c.Arrival)
}
