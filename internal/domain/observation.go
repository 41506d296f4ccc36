package domain

import "slices"

// Measurement column headers as they appear in the source spreadsheet.
const (
	ColumnTemperature   = "TEMPERATURA"
	ColumnTempMin       = "TEMP_MIN"
	ColumnTempMax       = "TEMP_MAX"
	ColumnPrecipitation = "PRECIPITACIONES"
)

// MeasurementColumns lists the measurement headers in hover order.
var MeasurementColumns = []string{
	ColumnTemperature,
	ColumnTempMin,
	ColumnTempMax,
	ColumnPrecipitation,
}

// IsMeasurementColumn reports whether name is one of the mappable measurement headers.
func IsMeasurementColumn(name string) bool {
	return slices.Contains(MeasurementColumns, name)
}

// Measurements holds the optional climate values of one observation.
// A nil field means the column was absent or the cell was blank.
type Measurements struct {
	Temperature   *float64 `json:"temperature"`
	TempMin       *float64 `json:"temp_min"`
	TempMax       *float64 `json:"temp_max"`
	Precipitation *float64 `json:"precipitation"`
}

// Value returns the measurement stored under a source column header.
func (m Measurements) Value(column string) *float64 {
	switch column {
	case ColumnTemperature:
		return m.Temperature
	case ColumnTempMin:
		return m.TempMin
	case ColumnTempMax:
		return m.TempMax
	case ColumnPrecipitation:
		return m.Precipitation
	default:
		return nil
	}
}

// Set stores v under a source column header. Unknown columns are ignored.
func (m *Measurements) Set(column string, v *float64) {
	switch column {
	case ColumnTemperature:
		m.Temperature = v
	case ColumnTempMin:
		m.TempMin = v
	case ColumnTempMax:
		m.TempMax = v
	case ColumnPrecipitation:
		m.Precipitation = v
	}
}

// Observation is one spreadsheet row: a region's measurements for a year.
type Observation struct {
	Region string `json:"region"`
	Year   int    `json:"year"`
	Measurements
}

// Table is the loaded observation dataset. It is immutable after construction
// and safe to share between goroutines.
type Table struct {
	columns map[string]struct{}
	rows    []Observation
}

// NewTable builds a table from the source headers and parsed rows.
// The rows slice is copied.
func NewTable(columns []string, rows []Observation) *Table {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return &Table{
		columns: set,
		rows:    slices.Clone(rows),
	}
}

// HasColumn reports whether the source contained a header named name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Columns returns the source headers in sorted order.
func (t *Table) Columns() []string {
	out := make([]string, 0, len(t.columns))
	for c := range t.columns {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of observations.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of all observations in source order.
func (t *Table) Rows() []Observation {
	return slices.Clone(t.rows)
}

// Regions returns the distinct region names in first-seen order.
func (t *Table) Regions() []string {
	seen := make(map[string]struct{}, len(t.rows))
	out := make([]string, 0, len(t.rows))
	for _, r := range t.rows {
		if _, ok := seen[r.Region]; ok {
			continue
		}
		seen[r.Region] = struct{}{}
		out = append(out, r.Region)
	}
	return out
}
