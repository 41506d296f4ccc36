package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/climate-map/internal/domain"
)

// DefaultYearColumn is the header of the observation year.
const DefaultYearColumn = "AÑO"

// Options selects the sheet and the identifying columns.
type Options struct {
	// Sheet is the workbook sheet to read. Empty means the first sheet.
	Sheet      string
	JoinKey    string
	YearColumn string
}

func (o Options) withDefaults() Options {
	if o.JoinKey == "" {
		o.JoinKey = domain.DefaultJoinKey
	}
	if o.YearColumn == "" {
		o.YearColumn = DefaultYearColumn
	}
	return o
}

// Load reads an observation table from an .xlsx or .csv file, chosen by extension.
func Load(path string, opts Options, logger *slog.Logger) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open observations %s: %w", path, err)
	}
	defer f.Close()

	var table *domain.Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		table, err = ReadXLSX(f, opts)
	case ".csv":
		table, err = ReadCSV(f, opts)
	default:
		return nil, fmt.Errorf("observations %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("observations %s: %w", path, err)
	}

	opts = opts.withDefaults()
	logger.Info("observations loaded", "path", path, "rows", table.Len(), "columns", table.Columns())
	if !table.HasColumn(opts.JoinKey) {
		logger.Warn("observation table has no join column; every render will fail",
			"join_key", opts.JoinKey)
	}
	for _, c := range domain.MeasurementColumns {
		if !table.HasColumn(c) {
			logger.Info("measurement column absent, values will show as missing", "column", c)
		}
	}
	return table, nil
}

// ReadXLSX parses a workbook. Cell values are read raw so numbers keep full precision.
func ReadXLSX(r io.Reader, opts Options) (*domain.Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	name := opts.Sheet
	if name == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		name = sheets[0]
	} else if idx, err := wb.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", name)
	}

	records, err := wb.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return parseRecords(records, opts)
}

// ReadCSV parses a comma-separated file with a header row.
func ReadCSV(r io.Reader, opts Options) (*domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parseRecords(records, opts)
}

// parseRecords turns a header row plus data rows into a table. Data rows are
// numbered from 2 in error messages to match spreadsheet row numbers.
func parseRecords(records [][]string, opts Options) (*domain.Table, error) {
	opts = opts.withDefaults()
	if len(records) == 0 {
		return nil, errors.New("no header row")
	}

	header := make([]string, len(records[0]))
	index := make(map[string]int, len(header))
	for i, h := range records[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		if _, dup := index[h]; !dup && h != "" {
			index[h] = i
		}
	}

	yearIdx, ok := index[opts.YearColumn]
	if !ok {
		return nil, fmt.Errorf("year column %q not found", opts.YearColumn)
	}
	regionIdx, hasRegion := index[opts.JoinKey]

	rows := make([]domain.Observation, 0, len(records)-1)
	for n, rec := range records[1:] {
		line := n + 2
		if blank(rec) {
			continue
		}

		year, err := parseYear(cell(rec, yearIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d column %q: %w", line, opts.YearColumn, err)
		}

		obs := domain.Observation{Year: year}
		if hasRegion {
			obs.Region = cell(rec, regionIdx)
		}
		for _, col := range domain.MeasurementColumns {
			i, ok := index[col]
			if !ok {
				continue
			}
			v, err := parseMeasurement(cell(rec, i))
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", line, col, err)
			}
			obs.Set(col, v)
		}
		rows = append(rows, obs)
	}

	columns := make([]string, 0, len(header))
	for _, h := range header {
		if h != "" {
			columns = append(columns, h)
		}
	}
	return domain.NewTable(columns, rows), nil
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Calendar years accepted in the year column.
const (
	minYear = 1
	maxYear = 9999
)

// parseYear accepts integral numbers, including spreadsheet floats like "2019.0".
func parseYear(s string) (int, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("year %q is not a whole number", s)
	}
	if v < minYear || v > maxYear {
		return 0, fmt.Errorf("year %q outside %d..%d", s, minYear, maxYear)
	}
	return int(v), nil
}

// parseMeasurement returns nil for blank cells.
func parseMeasurement(s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := parseNumber(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseNumber accepts a decimal comma when no decimal point is present.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty value")
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
