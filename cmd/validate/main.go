// Command validate checks that a boundary file and an observation sheet can be
// joined before they are handed to the dashboard. It reports feature and row
// counts, available years, missing measurement columns, and region names that
// appear on only one side of the join.
//
// Usage:
//
//	go run ./cmd/validate \
//	  --boundaries MUNICIPIOS.geojson \
//	  --observations "CLIMA PRUEBAS 2020.xlsx" \
//	  --format json --strict
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/climate-map/internal/adapter/geojson"
	"github.com/couchcryptid/climate-map/internal/adapter/sheet"
	"github.com/couchcryptid/climate-map/internal/domain"
)

var validFormats = []string{"text", "json"}

var errJoinIncomplete = errors.New("join is incomplete")

type options struct {
	boundaries   string
	observations string
	sheet        string
	joinKey      string
	yearColumn   string
	format       string
	strict       bool
}

// report is the validation result, printed as text or JSON.
type report struct {
	Boundaries     string            `json:"boundaries"`
	Observations   string            `json:"observations"`
	Features       int               `json:"features"`
	Unnamed        int               `json:"unnamed_features"`
	Bounds         [4]float64        `json:"bounds"`
	Rows           int               `json:"rows"`
	Years          []int             `json:"years"`
	JoinKey        string            `json:"join_key"`
	JoinKeyPresent bool              `json:"join_key_present"`
	MissingColumns []string          `json:"missing_columns"`
	Join           domain.JoinReport `json:"join"`
}

func (r report) ok() bool {
	return r.JoinKeyPresent && r.Join.Clean()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that boundaries and observations join on the region column",
		Args:  cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if !slices.Contains(validFormats, opts.format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.format, validFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.boundaries, "boundaries", "MUNICIPIOS.geojson", "GeoJSON boundary file")
	f.StringVar(&opts.observations, "observations", "CLIMA PRUEBAS 2020.xlsx", "observation workbook or CSV")
	f.StringVar(&opts.sheet, "sheet", "", "workbook sheet (default first sheet)")
	f.StringVar(&opts.joinKey, "join-key", domain.DefaultJoinKey, "region column shared by both files")
	f.StringVar(&opts.yearColumn, "year-column", sheet.DefaultYearColumn, "observation year column")
	f.StringVar(&opts.format, "format", "text", "output format (text|json)")
	f.BoolVar(&opts.strict, "strict", false, "fail when any region is unmatched")

	return cmd
}

func run(opts *options, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	boundaries, err := geojson.Load(opts.boundaries, opts.joinKey, logger)
	if err != nil {
		return err
	}
	table, err := sheet.Load(opts.observations, sheet.Options{
		Sheet:      opts.sheet,
		JoinKey:    opts.joinKey,
		YearColumn: opts.yearColumn,
	}, logger)
	if err != nil {
		return err
	}

	r := buildReport(opts, boundaries, table)

	switch opts.format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	default:
		printText(stdout, r)
	}

	if opts.strict && !r.ok() {
		return errJoinIncomplete
	}
	return nil
}

func buildReport(opts *options, boundaries *geojson.Store, table *domain.Table) report {
	b := boundaries.Bound()
	r := report{
		Boundaries:     opts.boundaries,
		Observations:   opts.observations,
		Features:       boundaries.Len(),
		Unnamed:        boundaries.Unnamed(),
		Bounds:         [4]float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()},
		Rows:           table.Len(),
		Years:          domain.NewYearIndex(table).Years(),
		JoinKey:        opts.joinKey,
		JoinKeyPresent: table.HasColumn(opts.joinKey),
		MissingColumns: []string{},
	}
	for _, c := range domain.MeasurementColumns {
		if !table.HasColumn(c) {
			r.MissingColumns = append(r.MissingColumns, c)
		}
	}
	if r.JoinKeyPresent {
		r.Join = domain.MatchRegions(table.Regions(), boundaries.Names())
	}
	return r
}

func printText(w io.Writer, r report) {
	fmt.Fprintf(w, "Boundaries:   %s (%d features, %d unnamed)\n", r.Boundaries, r.Features, r.Unnamed)
	fmt.Fprintf(w, "  bounds:     [%.4f, %.4f, %.4f, %.4f]\n", r.Bounds[0], r.Bounds[1], r.Bounds[2], r.Bounds[3])
	fmt.Fprintf(w, "Observations: %s (%d rows)\n", r.Observations, r.Rows)
	fmt.Fprintf(w, "  years:      %s\n", joinInts(r.Years))
	if len(r.MissingColumns) > 0 {
		fmt.Fprintf(w, "  missing:    %s (shown as %s)\n", strings.Join(r.MissingColumns, ", "), domain.MissingValue)
	}

	if !r.JoinKeyPresent {
		fmt.Fprintf(w, "\nFAIL  column %q not found in observations\n", r.JoinKey)
		return
	}

	fmt.Fprintf(w, "\nJoin on %s: %d matched\n", r.JoinKey, r.Join.Matched)
	for _, name := range r.Join.MissingBoundary {
		if s, ok := r.Join.Suggestions[name]; ok {
			fmt.Fprintf(w, "  no boundary:     %q (did you mean %q?)\n", name, s)
			continue
		}
		fmt.Fprintf(w, "  no boundary:     %q\n", name)
	}
	for _, name := range r.Join.MissingData {
		fmt.Fprintf(w, "  no observations: %q\n", name)
	}

	if r.ok() {
		fmt.Fprintln(w, "\nPASS")
	} else {
		fmt.Fprintln(w, "\nWARN  some regions will not be shaded")
	}
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
