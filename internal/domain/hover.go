package domain

import (
	"html"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MissingValue is shown in hover text when a measurement is absent.
const MissingValue = "N/D"

// HoverField is one line of the hover tooltip.
type HoverField struct {
	Label    string `json:"label"`
	Column   string `json:"column"`
	Unit     string `json:"unit"`
	Decimals int32  `json:"decimals"`
}

// HoverTemplate describes the tooltip shown for each region: the region name in
// bold, the year, then one line per measurement.
type HoverTemplate struct {
	YearLabel string       `json:"year_label"`
	Fields    []HoverField `json:"fields"`
}

// DefaultHoverTemplate returns the tooltip layout used by the dashboard.
func DefaultHoverTemplate() HoverTemplate {
	return HoverTemplate{
		YearLabel: "Año",
		Fields: []HoverField{
			{Label: "Temperatura", Column: ColumnTemperature, Unit: "°C", Decimals: 2},
			{Label: "Temp Mín", Column: ColumnTempMin, Unit: "°C", Decimals: 2},
			{Label: "Temp Máx", Column: ColumnTempMax, Unit: "°C", Decimals: 2},
			{Label: "Precipitación", Column: ColumnPrecipitation, Unit: " mm", Decimals: 2},
		},
	}
}

// Render formats the tooltip for one observation. The output uses the <b> and
// <br> subset of HTML understood by Plotly; the region name is escaped.
func (h HoverTemplate) Render(o Observation) string {
	var b strings.Builder
	b.WriteString("<b>")
	b.WriteString(html.EscapeString(o.Region))
	b.WriteString("</b><br>")
	b.WriteString(h.YearLabel)
	b.WriteString(": ")
	b.WriteString(strconv.Itoa(o.Year))
	b.WriteString("<br>")

	for _, f := range h.Fields {
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(f.format(o.Value(f.Column)))
		b.WriteString("<br>")
	}
	return b.String()
}

func (f HoverField) format(v *float64) string {
	if v == nil {
		return MissingValue
	}
	return FormatFixed(*v, f.Decimals) + f.Unit
}

// FormatFixed rounds v half away from zero to the given number of decimals.
func FormatFixed(v float64, decimals int32) string {
	return decimal.NewFromFloat(v).StringFixed(decimals)
}
