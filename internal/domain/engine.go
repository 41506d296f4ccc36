package domain

import (
	"fmt"
	"time"
)

// DefaultJoinKey is the header shared by the spreadsheet and the boundary properties.
const DefaultJoinKey = "MUNICIPIO"

// FrameRow is one observation prepared for the map.
type FrameRow struct {
	Observation
	// Value is the mapped variable for this row, nil when absent.
	Value *float64 `json:"value"`
	Hover string   `json:"hover"`
}

// Frame is everything the map needs for one year. Frames are rebuilt on every
// request and never cached.
type Frame struct {
	Year          int           `json:"year"`
	Variable      string        `json:"variable"`
	JoinKey       string        `json:"join_key"`
	ColorScale    ColorScale    `json:"color_scale"`
	HoverTemplate HoverTemplate `json:"hover_template"`
	Title         string        `json:"title"`
	Rows          []FrameRow    `json:"rows"`
	GeneratedAt   time.Time     `json:"generated_at"`
}

// Locations returns the join-key value of every row, in row order.
func (f Frame) Locations() []string {
	out := make([]string, len(f.Rows))
	for i, r := range f.Rows {
		out[i] = r.Region
	}
	return out
}

// EngineOptions configures what an Engine maps.
type EngineOptions struct {
	// Variable is the measurement column shaded on the map.
	Variable string
	// JoinKey is the table column matched against boundary properties.
	JoinKey string
	Hover   HoverTemplate
}

// Engine filters an observation table by year. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	table      *Table
	variable   string
	joinKey    string
	hover      HoverTemplate
	colorScale ColorScale
}

// NewEngine creates an engine over t. Empty options fall back to
// TEMPERATURA, MUNICIPIO and the default hover template.
func NewEngine(t *Table, opts EngineOptions) *Engine {
	if opts.Variable == "" {
		opts.Variable = ColumnTemperature
	}
	if opts.JoinKey == "" {
		opts.JoinKey = DefaultJoinKey
	}
	if len(opts.Hover.Fields) == 0 {
		opts.Hover = DefaultHoverTemplate()
	}
	return &Engine{
		table:      t,
		variable:   opts.Variable,
		joinKey:    opts.JoinKey,
		hover:      opts.Hover,
		colorScale: ColorScaleFor(opts.Variable),
	}
}

// Variable returns the mapped measurement column.
func (e *Engine) Variable() string {
	return e.variable
}

// JoinKey returns the region-identifier column.
func (e *Engine) JoinKey() string {
	return e.joinKey
}

// Render selects the observations for year and prepares them for the map.
// The year is not checked against the table; an unknown year yields an empty
// frame. It fails with a *ConfigurationError when the table has no join-key
// column.
func (e *Engine) Render(year int) (Frame, error) {
	if !e.table.HasColumn(e.joinKey) {
		return Frame{}, &ConfigurationError{Column: e.joinKey, Err: ErrMissingJoinColumn}
	}

	rows := make([]FrameRow, 0, len(e.table.rows)/4+1)
	for _, o := range e.table.rows {
		if o.Year != year {
			continue
		}
		rows = append(rows, FrameRow{
			Observation: o,
			Value:       o.Value(e.variable),
			Hover:       e.hover.Render(o),
		})
	}

	return Frame{
		Year:          year,
		Variable:      e.variable,
		JoinKey:       e.joinKey,
		ColorScale:    e.colorScale,
		HoverTemplate: e.hover,
		Title:         Title(e.variable, year),
		Rows:          rows,
		GeneratedAt:   clock.Now().UTC(),
	}, nil
}

// Title is the chart title for a variable and year.
func Title(variable string, year int) string {
	return fmt.Sprintf("%s en el año %d", variable, year)
}
