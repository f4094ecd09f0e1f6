package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portcli/pkg/contracts/domain"
)

func TestLookaheadParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  LookaheadParams
		wantErr bool
	}{
		{"valid", LookaheadParams{Lookahead: 24 * time.Hour, Interval: 6 * time.Hour}, false},
		{"zero lookahead", LookaheadParams{Lookahead: 0, Interval: 6 * time.Hour}, true},
		{"negative interval", LookaheadParams{Lookahead: time.Hour, Interval: -time.Hour}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOccupancyAt(t *testing.T) {
	calls := []domain.VesselCall{
		call("A", ts(10, 8, 0), ts(12, 8, 0), "B1", 0),
		call("B", ts(11, 0, 0), ts(13, 0, 0), "B1", 0),
		call("C", ts(12, 0, 0), ts(14, 0, 0), "B2", 0),
		call("D", ts(20, 0, 0), ts(22, 0, 0), "B2", 0),
	}

	t.Run("counts vessels present or due within horizon", func(t *testing.T) {
		counts := OccupancyAt(calls, ts(11, 12, 0), 24*time.Hour)

		// Horizon reaches 12th 12:00: A and B are present, C arrives
		// within the horizon, D is far out.
		assert.Equal(t, 2, counts["B1"])
		assert.Equal(t, 1, counts["B2"])
	})

	t.Run("boundaries are inclusive", func(t *testing.T) {
		// A departs exactly at the instant and still counts; C arrives
		// exactly at the horizon and still counts.
		counts := OccupancyAt(calls, ts(12, 8, 0), 16*time.Hour)
		assert.Equal(t, 2, counts["B1"], "A departing at the instant counts")

		counts = OccupancyAt(calls, ts(11, 0, 0), 24*time.Hour)
		assert.Equal(t, 1, counts["B2"], "C arriving exactly at the horizon counts")
	})

	t.Run("vessels without berth are not counted", func(t *testing.T) {
		unberthed := []domain.VesselCall{
			{Ship: "X", Arrival: ts(10, 0, 0), Departure: ts(14, 0, 0)},
		}
		counts := OccupancyAt(unberthed, ts(11, 0, 0), time.Hour)
		assert.Empty(t, counts)
	})
}

func TestLookaheadScan(t *testing.T) {
	calls := []domain.VesselCall{
		call("A", ts(10, 0, 0), ts(11, 0, 0), "B1", 0),
		call("B", ts(10, 12, 0), ts(12, 0, 0), "B2", 0),
	}
	params := LookaheadParams{Lookahead: 24 * time.Hour, Interval: 6 * time.Hour}

	samples := LookaheadScan(calls, params)

	// Timeline runs from the earliest arrival (10th 00:00) to the latest
	// departure (12th 00:00) inclusive, in 6h steps.
	require.Len(t, samples, 9)
	assert.True(t, samples[0].At.Equal(ts(10, 0, 0)))
	assert.True(t, samples[len(samples)-1].At.Equal(ts(12, 0, 0)))

	// Every vessel is within a 24h lookahead at the first instant.
	assert.Equal(t, 1, samples[0].Berths["B1"])
	assert.Equal(t, 1, samples[0].Berths["B2"])
	assert.Equal(t, 2, samples[0].Total())

	// At the final instant only B remains (departing exactly then).
	last := samples[len(samples)-1]
	assert.Equal(t, 0, last.Berths["B1"])
	assert.Equal(t, 1, last.Berths["B2"])
}

func TestLookaheadScanEmpty(t *testing.T) {
	assert.Nil(t, LookaheadScan(nil, LookaheadParams{Lookahead: time.Hour, Interval: time.Hour}))
}

func TestScanBerths(t *testing.T) {
	samples := []OccupancySample{
		{Berths: map[string]int{"B2": 1}},
		{Berths: map[string]int{"B1": 2, "B3": 1}},
	}

	assert.Equal(t, []string{"B1", "B2", "B3"}, ScanBerths(samples))
}
