package schedule

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"portcli/pkg/contracts/domain"
)

// Schedule is the result of loading one workbook: the valid calls plus
// aggregate row accounting. Rows that failed to parse are only counted.
type Schedule struct {
	Calls   []domain.VesselCall
	Sheet   string
	Columns ColumnMap
	// TotalRows is the number of data rows seen (header excluded).
	TotalRows int
	// Skipped is the number of rows dropped for unparseable arrival or
	// departure timestamps.
	Skipped int
}

// LoadFile opens an Excel workbook and extracts the vessel schedule from the
// first sheet whose header row resolves all required columns.
func LoadFile(ctx context.Context, path string, logger *slog.Logger) (*Schedule, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return load(ctx, f, logger)
}

// LoadReader is LoadFile for an already-open stream, used by the upload
// handler so the workbook never touches disk.
func LoadReader(ctx context.Context, r io.Reader, logger *slog.Logger) (*Schedule, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return load(ctx, f, logger)
}

func load(ctx context.Context, f *excelize.File, logger *slog.Logger) (*Schedule, error) {
	var firstMissing *MissingColumnsError

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}

		cols, err := ResolveColumns(rows[0])
		if err != nil {
			if missErr, ok := err.(*MissingColumnsError); ok && firstMissing == nil {
				firstMissing = missErr
			}
			continue
		}

		logger.InfoContext(ctx, "resolved schedule sheet",
			slog.String("sheet", name),
			slog.Int("rows", len(rows)-1))

		sched := parseRows(ctx, rows[1:], cols, logger)
		sched.Sheet = name
		sched.Columns = cols
		return sched, nil
	}

	if firstMissing != nil {
		return nil, firstMissing
	}
	return nil, fmt.Errorf("workbook contains no usable sheet")
}

// parseRows converts data rows into vessel calls, dropping any row whose
// arrival or departure does not combine into a timestamp.
func parseRows(ctx context.Context, rows [][]string, cols ColumnMap, logger *slog.Logger) *Schedule {
	sched := &Schedule{TotalRows: len(rows)}

	for i, row := range rows {
		arrival, arrOK := CombineDateTime(cols.Cell(row, FieldArrivalDay), cols.Cell(row, FieldArrivalTime))
		departure, depOK := CombineDateTime(cols.Cell(row, FieldDepartureDay), cols.Cell(row, FieldDepartureTime))
		if !arrOK || !depOK {
			sched.Skipped++
			logger.DebugContext(ctx, "skipping row with unparseable timestamps",
				slog.Int("row", i+2),
				slog.Bool("arrival_ok", arrOK),
				slog.Bool("departure_ok", depOK))
			continue
		}

		sched.Calls = append(sched.Calls, domain.VesselCall{
			Ship:            cols.Cell(row, FieldShip),
			Arrival:         arrival,
			Departure:       departure,
			Berth:           cols.Cell(row, FieldBerth),
			DockingHours:    parseOptionalFloat(cols.Cell(row, FieldDocking)),
			EstDockingHours: parseOptionalFloat(cols.Cell(row, FieldEstDocking)),
			Deadweight:      parseOptionalFloat(cols.Cell(row, FieldDeadweight)),
		})
	}

	logger.InfoContext(ctx, "parsed schedule rows",
		slog.Int("total", sched.TotalRows),
		slog.Int("valid", len(sched.Calls)),
		slog.Int("skipped", sched.Skipped))

	return sched
}

// dateLayouts covers both the renderings excelize produces for date-styled
// cells and plain text dates. Text dates are interpreted day-first.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"01-02-06", // excelize default short date rendering
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"3:04:05 PM",
	"3:04 PM",
}

// CombineDateTime builds one timestamp from a date cell and a time cell.
// Either cell being empty, or failing every layout, yields ok=false; it never
// returns an error because a bad row is simply dropped upstream.
func CombineDateTime(dateCell, timeCell string) (time.Time, bool) {
	if dateCell == "" || timeCell == "" {
		return time.Time{}, false
	}

	datePart, ok := parseDateCell(dateCell)
	if !ok {
		return time.Time{}, false
	}
	timePart, ok := parseTimeCell(timeCell)
	if !ok {
		return time.Time{}, false
	}

	return time.Date(
		datePart.Year(), datePart.Month(), datePart.Day(),
		timePart.Hour(), timePart.Minute(), timePart.Second(),
		0, time.UTC,
	), true
}

// parseDateCell extracts the date portion of a cell. Cells that carry a full
// timestamp contribute only their date component.
func parseDateCell(cell string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseTimeCell extracts the time-of-day portion of a cell. A fractional
// seconds suffix is truncated at the dot before parsing, so "14:30:45.500"
// parses as 14:30:45.
func parseTimeCell(cell string) (time.Time, bool) {
	if idx := strings.Index(cell, "."); idx >= 0 {
		cell = cell[:idx]
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseOptionalFloat parses a numeric cell, tolerating thousands separators.
// Empty or unparseable cells are missing values, not errors.
func parseOptionalFloat(cell string) *float64 {
	if cell == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}
