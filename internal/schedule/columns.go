package schedule

import (
	"fmt"
	"strings"
)

// Field identifies a semantic column of the vessel schedule sheet.
type Field string

const (
	FieldShip          Field = "ship"
	FieldArrivalDay    Field = "arrival_day"
	FieldArrivalTime   Field = "arrival_time"
	FieldDepartureDay  Field = "departure_day"
	FieldDepartureTime Field = "departure_time"
	FieldBerth         Field = "berth"
	FieldDocking       Field = "docking_hours"
	FieldEstDocking    Field = "est_docking_hours"
	FieldDeadweight    Field = "deadweight"
)

// requiredFields must all resolve for a sheet to be usable.
var requiredFields = []Field{
	FieldShip,
	FieldArrivalDay,
	FieldArrivalTime,
	FieldDepartureDay,
	FieldDepartureTime,
}

// columnSynonyms lists the accepted header spellings per field, in priority
// order. The first header that matches wins. Note "Arrival" appearing as a
// berth synonym: the source sheets label the berth column that way.
var columnSynonyms = map[Field][]string{
	FieldShip:          {"SHIP", "Ship", "ship", "Buque", "BUQUE", "NOMBRE", "Vessel"},
	FieldArrivalDay:    {"Arrival day", "ArrivalDay", "arrivalDay", "Arrival_day", "ETA date", "Arrival date"},
	FieldArrivalTime:   {"Arrival time", "arrivalTime", "ArrivalTime", "ETA time", "ETA"},
	FieldDepartureDay:  {"Departure day", "DepartureDay", "depDay", "Departure_day", "ETD date", "Departure date"},
	FieldDepartureTime: {"Departure time", "departureTime", "ETD time", "ETD", "Departure_time"},
	FieldBerth:         {"Arrival", "Berth", "Pier", "Muelle", "muelle", "BERTH", "Terminal"},
	FieldDocking:       {"Docking time (h)", "DockingTime", "dockingTime", "Docking Time", "Docking"},
	FieldEstDocking:    {"Estimated Docking Time (h)", "EstDockingTime", "estDockingTime", "Est Docking Time", "EstDocking"},
	FieldDeadweight:    {"DWT", "dwt", "Deadweight", "DeadWeight"},
}

// fieldLabels are the user-facing names used when reporting missing columns.
var fieldLabels = map[Field]string{
	FieldShip:          "SHIP/Vessel",
	FieldArrivalDay:    "Arrival day",
	FieldArrivalTime:   "Arrival time",
	FieldDepartureDay:  "Departure day",
	FieldDepartureTime: "Departure time",
}

// ColumnMap maps resolved fields to their zero-based column index. Optional
// fields that did not match are simply absent from the map.
type ColumnMap map[Field]int

// Has reports whether the field resolved to a column.
func (m ColumnMap) Has(f Field) bool {
	_, ok := m[f]
	return ok
}

// Cell returns the trimmed cell value for the field in the given row, or ""
// when the field is unresolved or the row is too short.
func (m ColumnMap) Cell(row []string, f Field) string {
	idx, ok := m[f]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// MissingColumnsError reports required schedule columns that could not be
// resolved against any synonym, along with the headers actually present.
type MissingColumnsError struct {
	Missing []string
	Headers []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing critical columns: %s (headers found: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Headers, ", "))
}

// ResolveColumns matches a header row against the synonym lists. It returns
// the column map and, when any required field is unresolved, a
// *MissingColumnsError describing every one of them.
func ResolveColumns(header []string) (ColumnMap, error) {
	trimmed := make([]string, len(header))
	for i, h := range header {
		trimmed[i] = strings.TrimSpace(h)
	}

	cols := make(ColumnMap)
	for field, candidates := range columnSynonyms {
		if idx, ok := findColumn(trimmed, candidates); ok {
			cols[field] = idx
		}
	}

	var missing []string
	for _, field := range requiredFields {
		if !cols.Has(field) {
			missing = append(missing, fieldLabels[field])
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing, Headers: trimmed}
	}

	return cols, nil
}

// findColumn returns the index of the first candidate present in the header.
// Candidates are tried in order so earlier synonyms take priority even when a
// later one also appears in the sheet.
func findColumn(header []string, candidates []string) (int, bool) {
	for _, cand := range candidates {
		for i, h := range header {
			if h == cand {
				return i, true
			}
		}
	}
	return 0, false
}
