// Package mockdata builds small but realistic boundary and observation
// fixtures for local development and tests.
package mockdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/climate-map/internal/domain"
)

// File names match the ones the dashboard expects by default.
const (
	BoundariesFile   = "MUNICIPIOS.geojson"
	ObservationsFile = "CLIMA PRUEBAS 2020.xlsx"
	SheetName        = "CLIMA"
	YearColumn       = "AÑO"
)

// Municipality is a fixture region: its boundary name and the spelling used in
// the observation sheet. The two differ for POTOSÍ to exercise join diagnostics.
type Municipality struct {
	Boundary string
	Sheet    string
	Lon, Lat float64
}

// Municipalities are the fixture regions.
var Municipalities = []Municipality{
	{Boundary: "LA PAZ", Sheet: "LA PAZ", Lon: -68.15, Lat: -16.50},
	{Boundary: "COCHABAMBA", Sheet: "COCHABAMBA", Lon: -66.16, Lat: -17.39},
	{Boundary: "SANTA CRUZ DE LA SIERRA", Sheet: "SANTA CRUZ DE LA SIERRA", Lon: -63.18, Lat: -17.78},
	{Boundary: "POTOSÍ", Sheet: "POTOSI", Lon: -65.75, Lat: -19.58},
}

// Years are the fixture observation years.
var Years = []int{2018, 2019, 2020}

// Header is the fixture sheet header row.
func Header() []string {
	return []string{domain.DefaultJoinKey, YearColumn,
		domain.ColumnTemperature, domain.ColumnTempMin, domain.ColumnTempMax, domain.ColumnPrecipitation}
}

// Boundaries returns one square polygon per municipality, named under key.
func Boundaries(key string) *geojson.FeatureCollection {
	const half = 0.25
	fc := geojson.NewFeatureCollection()
	for _, m := range Municipalities {
		ring := orb.Ring{
			{m.Lon - half, m.Lat - half},
			{m.Lon + half, m.Lat - half},
			{m.Lon + half, m.Lat + half},
			{m.Lon - half, m.Lat + half},
			{m.Lon - half, m.Lat - half},
		}
		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties[key] = m.Boundary
		fc.Append(f)
	}
	return fc
}

// Observations returns one row per municipality and year. LA PAZ has no
// precipitation in 2020.
func Observations() []domain.Observation {
	rows := make([]domain.Observation, 0, len(Municipalities)*len(Years))
	for i, m := range Municipalities {
		for j, y := range Years {
			base := 8.0 + 4.5*float64(i) + 0.35*float64(j)
			temp := base + 0.123
			tmin := base - 6.2
			tmax := base + 7.4
			precip := 420.0 + 95.5*float64(i) - 12.25*float64(j)

			obs := domain.Observation{
				Region: m.Sheet,
				Year:   y,
				Measurements: domain.Measurements{
					Temperature:   &temp,
					TempMin:       &tmin,
					TempMax:       &tmax,
					Precipitation: &precip,
				},
			}
			if m.Sheet == "LA PAZ" && y == 2020 {
				obs.Precipitation = nil
			}
			rows = append(rows, obs)
		}
	}
	return rows
}

// WriteWorkbook writes rows under header as the only sheet of an .xlsx workbook.
// Columns not in header are skipped; nil measurements become empty cells.
func WriteWorkbook(w io.Writer, header []string, rows []domain.Observation) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := wb.SetSheetRow(SheetName, "A1", &head); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, o := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(header))
		for c, h := range header {
			values[c] = cellValue(o, h)
		}
		if err := wb.SetSheetRow(SheetName, ref, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := wb.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteCSV writes rows under header as comma-separated values.
func WriteCSV(w io.Writer, header []string, rows []domain.Observation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, o := range rows {
		rec := make([]string, len(header))
		for c, h := range header {
			switch v := cellValue(o, h).(type) {
			case string:
				rec[c] = v
			case int:
				rec[c] = strconv.Itoa(v)
			case float64:
				rec[c] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cellValue(o domain.Observation, column string) any {
	switch column {
	case domain.DefaultJoinKey:
		return o.Region
	case YearColumn:
		return o.Year
	}
	if v := o.Value(column); v != nil {
		return *v
	}
	return nil
}

// WriteFixtures writes the default boundary and workbook fixtures into dir and
// returns their paths.
func WriteFixtures(dir string) (boundaries, observations string, err error) {
	data, err := Boundaries(domain.DefaultJoinKey).MarshalJSON()
	if err != nil {
		return "", "", fmt.Errorf("marshal boundaries: %w", err)
	}
	boundaries = filepath.Join(dir, BoundariesFile)
	if err := os.WriteFile(boundaries, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write boundaries: %w", err)
	}

	observations = filepath.Join(dir, ObservationsFile)
	f, err := os.Create(observations)
	if err != nil {
		return "", "", fmt.Errorf("create workbook: %w", err)
	}
	defer f.Close()
	if err := WriteWorkbook(f, Header(), Observations()); err != nil {
		return "", "", err
	}
	return boundaries, observations, f.Close()
}
