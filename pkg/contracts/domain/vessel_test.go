package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVesselCallDWT(t *testing.T) {
	dwt := 52300.0
	assert.Equal(t, 52300.0, VesselCall{Deadweight: &dwt}.DWT())
	assert.Equal(t, 0.0, VesselCall{}.DWT())

	zero := 0.0
	assert.Equal(t, 0.0, VesselCall{Deadweight: &zero}.DWT())
}

func TestVesselCallHasBerth(t *testing.T) {
	assert.True(t, VesselCall{Berth: "B1"}.HasBerth())
	assert.False(t, VesselCall{}.HasBerth())
}

func TestVesselCallDuration(t *testing.T) {
	arrival := time.Date(2025, 10, 14, 6, 0, 0, 0, time.UTC)

	c := VesselCall{Arrival: arrival, Departure: arrival.Add(36 * time.Hour)}
	assert.Equal(t, 36*time.Hour, c.Duration())

	// Swapped timestamps are kept as-is, so the duration goes negative.
	swapped := VesselCall{Arrival: arrival, Departure: arrival.Add(-2 * time.Hour)}
	assert.Equal(t, -2*time.Hour, swapped.Duration())
}
