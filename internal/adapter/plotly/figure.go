// Package plotly builds Plotly.js figure JSON for the climate choropleth.
package plotly

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/couchcryptid/climate-map/internal/domain"
)

// HoverTemplate tells Plotly to show the pre-rendered hover text verbatim and
// hide the secondary trace box.
const HoverTemplate = "%{text}<extra></extra>"

// MapSettings are the fixed map view parameters.
type MapSettings struct {
	// BoundariesURL is where the browser fetches the GeoJSON from.
	BoundariesURL string
	// FeatureIDKey is the GeoJSON path to the join property, e.g. "properties.MUNICIPIO".
	FeatureIDKey string
	Style        string
	CenterLat    float64
	CenterLon    float64
	Zoom         float64
	Opacity      float64
	// AccessToken is only needed for Mapbox-hosted styles.
	AccessToken string
}

// Figure is a Plotly figure: data traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a choroplethmapbox trace.
type Trace struct {
	Type          string             `json:"type"`
	Name          string             `json:"name"`
	GeoJSON       string             `json:"geojson"`
	FeatureIDKey  string             `json:"featureidkey"`
	Locations     []string           `json:"locations"`
	Z             []*float64         `json:"z"`
	Text          []string           `json:"text"`
	HoverTemplate string             `json:"hovertemplate"`
	ColorScale    []domain.ColorStop `json:"colorscale"`
	Marker        Marker             `json:"marker"`
	ColorBar      ColorBar           `json:"colorbar"`
}

// Marker styles the region polygons.
type Marker struct {
	Opacity float64 `json:"opacity"`
}

// ColorBar is the legend of the colour scale.
type ColorBar struct {
	Title Text `json:"title"`
}

// Text is a Plotly title object.
type Text struct {
	Text string `json:"text"`
}

// Layout is the figure layout.
type Layout struct {
	Title  Text   `json:"title"`
	Mapbox Mapbox `json:"mapbox"`
	Margin Margin `json:"margin"`
}

// Mapbox holds the base map settings.
type Mapbox struct {
	Style       string  `json:"style"`
	Center      Center  `json:"center"`
	Zoom        float64 `json:"zoom"`
	AccessToken string  `json:"accesstoken,omitempty"`
}

// Center is a map centre coordinate.
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	R int `json:"r"`
	T int `json:"t"`
	L int `json:"l"`
	B int `json:"b"`
}

// NewFigure turns a rendered frame into a choropleth figure.
func NewFigure(frame domain.Frame, settings MapSettings) Figure {
	z := make([]*float64, len(frame.Rows))
	text := make([]string, len(frame.Rows))
	for i, r := range frame.Rows {
		z[i] = r.Value
		text[i] = r.Hover
	}

	featureIDKey := settings.FeatureIDKey
	if featureIDKey == "" {
		featureIDKey = "properties." + frame.JoinKey
	}

	return Figure{
		Data: []Trace{{
			Type:          "choroplethmapbox",
			Name:          frame.Variable,
			GeoJSON:       settings.BoundariesURL,
			FeatureIDKey:  featureIDKey,
			Locations:     frame.Locations(),
			Z:             z,
			Text:          text,
			HoverTemplate: HoverTemplate,
			ColorScale:    frame.ColorScale.Stops,
			Marker:        Marker{Opacity: settings.Opacity},
			ColorBar:      ColorBar{Title: Text{Text: frame.Variable}},
		}},
		Layout: Layout{
			Title: Text{Text: frame.Title},
			Mapbox: Mapbox{
				Style:       settings.Style,
				Center:      Center{Lat: settings.CenterLat, Lon: settings.CenterLon},
				Zoom:        settings.Zoom,
				AccessToken: settings.AccessToken,
			},
		},
	}
}

// Encode writes fig as indented JSON. HTML is not escaped because the hover
// text carries Plotly's <b>/<br> markup.
func Encode(w io.Writer, fig Figure) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fig); err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}
	return nil
}
