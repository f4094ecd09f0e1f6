package exporter

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portcli/internal/analysis"
	"portcli/pkg/contracts/domain"
)

func newTestWriter() *CSVWriter {
	return NewCSVWriter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func floatPtr(v float64) *float64 { return &v }

func TestWriteCalls(t *testing.T) {
	w := newTestWriter()
	path := filepath.Join(t.TempDir(), "arriving.csv")

	calls := []domain.VesselCall{
		{
			Ship:         "AURORA",
			Arrival:      time.Date(2025, 10, 14, 6, 0, 0, 0, time.UTC),
			Departure:    time.Date(2025, 10, 16, 18, 30, 0, 0, time.UTC),
			Berth:        "B1",
			Deadweight:   floatPtr(52300),
			DockingHours: floatPtr(60.5),
		},
		{
			Ship:      "BOREAS",
			Arrival:   time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			Departure: time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	require.NoError(t, w.WriteCalls(path, calls))

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Ship", "Arrival", "Departure", "Berth", "DWT", "DockingHours", "EstDockingHours"}, records[0])
	assert.Equal(t, []string{"AURORA", "10/14/2025 06:00", "10/16/2025 18:30", "B1", "52300", "60.5", ""}, records[1])
	// Missing numerics stay empty instead of becoming zeros.
	assert.Equal(t, []string{"BOREAS", "10/15/2025 00:00", "10/17/2025 00:00", "", "", "", ""}, records[2])
}

func TestWriteDeadweightSeries(t *testing.T) {
	w := newTestWriter()
	path := filepath.Join(t.TempDir(), "series.csv")

	series := analysis.DeadweightSeries{
		Initial: 50000,
		Points: []analysis.SeriesPoint{
			{At: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), DWT: 50000, Type: analysis.EventInitial},
			{At: time.Date(2025, 10, 14, 6, 0, 0, 0, time.UTC), DWT: 80000, Type: analysis.EventArrival, Vessel: "BOREAS"},
			{At: time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC), DWT: 30000, Type: analysis.EventDeparture, Vessel: "AURORA"},
		},
	}

	require.NoError(t, w.WriteDeadweightSeries(path, series))

	records := readCSV(t, path)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Date", "Type", "Vessel", "DWTInPort"}, records[0])
	assert.Equal(t, []string{"10/14/2025 06:00", string(analysis.EventArrival), "BOREAS", "80000"}, records[2])
}

func TestWriteOccupancyMatrix(t *testing.T) {
	w := newTestWriter()
	path := filepath.Join(t.TempDir(), "occupancy.csv")

	berths := []string{"B1", "B2"}
	samples := []analysis.OccupancySample{
		{At: time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC), Berths: map[string]int{"B1": 1, "B2": 2}},
		{At: time.Date(2025, 10, 10, 6, 0, 0, 0, time.UTC), Berths: map[string]int{"B1": 1}},
	}

	require.NoError(t, w.WriteOccupancyMatrix(path, berths, samples))

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Time", "B1", "B2"}, records[0])
	assert.Equal(t, []string{"2025-10-10 00:00", "1", "2"}, records[1])
	// Berths absent from a sample report zero.
	assert.Equal(t, []string{"2025-10-10 06:00", "1", "0"}, records[2])
}

func TestWriteCallsCreatesDirectories(t *testing.T) {
	w := newTestWriter()
	path := filepath.Join(t.TempDir(), "nested", "out", "calls.csv")

	require.NoError(t, w.WriteCalls(path, nil))
	assert.FileExists(t, path)
}
