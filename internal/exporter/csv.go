// Package exporter writes analysis output as CSV for downstream tooling:
// the classified subsets, the deadweight series, and the lookahead
// occupancy matrix.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"portcli/internal/analysis"
	"portcli/pkg/contracts/domain"
)

const timestampLayout = "01/02/2006 15:04"

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteCalls writes a classified subset to a CSV file.
func (w *CSVWriter) WriteCalls(path string, calls []domain.VesselCall) error {
	return w.writeFile(path, func(cw *csv.Writer) error {
		header := []string{"Ship", "Arrival", "Departure", "Berth", "DWT", "DockingHours", "EstDockingHours"}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, c := range calls {
			row := []string{
				c.Ship,
				c.Arrival.Format(timestampLayout),
				c.Departure.Format(timestampLayout),
				c.Berth,
				formatOptional(c.Deadweight, 0),
				formatOptional(c.DockingHours, 1),
				formatOptional(c.EstDockingHours, 1),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		return nil
	}, len(calls))
}

// WriteDeadweightSeries writes the cumulative deadweight series to a CSV file.
func (w *CSVWriter) WriteDeadweightSeries(path string, series analysis.DeadweightSeries) error {
	return w.writeFile(path, func(cw *csv.Writer) error {
		if err := cw.Write([]string{"Date", "Type", "Vessel", "DWTInPort"}); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, p := range series.Points {
			row := []string{
				p.At.Format(timestampLayout),
				string(p.Type),
				p.Vessel,
				strconv.FormatFloat(p.DWT, 'f', 0, 64),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		return nil
	}, len(series.Points))
}

// WriteOccupancyMatrix writes lookahead scan samples as a matrix of timeline
// rows by berth columns, the shape the occupancy plot consumes.
func (w *CSVWriter) WriteOccupancyMatrix(path string, berths []string, samples []analysis.OccupancySample) error {
	return w.writeFile(path, func(cw *csv.Writer) error {
		header := append([]string{"Time"}, berths...)
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, s := range samples {
			row := make([]string, 0, len(berths)+1)
			row = append(row, s.At.Format("2006-01-02 15:04"))
			for _, berth := range berths {
				row = append(row, strconv.Itoa(s.Berths[berth]))
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		return nil
	}, len(samples))
}

// writeFile handles file creation and flushing around a row-writing body.
func (w *CSVWriter) writeFile(path string, body func(*csv.Writer) error, records int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := w.writeTo(file, body); err != nil {
		return err
	}

	w.logger.Info("wrote CSV file",
		slog.String("path", path),
		slog.Int("record_count", records))
	return nil
}

func (w *CSVWriter) writeTo(out io.Writer, body func(*csv.Writer) error) error {
	cw := csv.NewWriter(out)
	if err := body(cw); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// formatOptional renders an optional numeric cell, leaving missing values
// empty rather than writing a fake zero.
func formatOptional(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}
