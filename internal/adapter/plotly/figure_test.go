package plotly

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-map/internal/domain"
)

func f64(v float64) *float64 { return &v }

func testSettings() MapSettings {
	return MapSettings{
		BoundariesURL: "/api/boundaries",
		FeatureIDKey:  "properties.MUNICIPIO",
		Style:         "carto-positron",
		CenterLat:     -16.29,
		CenterLon:     -63.58,
		Zoom:          5,
		Opacity:       0.8,
	}
}

func testFrame() domain.Frame {
	return domain.Frame{
		Year:     2019,
		Variable: domain.ColumnTemperature,
		JoinKey:  domain.DefaultJoinKey,
		ColorScale: domain.ColorScale{
			Name:  domain.PaletteWarmCool,
			Stops: []domain.ColorStop{{Offset: 0, Color: "#313695"}, {Offset: 1, Color: "#a50026"}},
		},
		Title: "TEMPERATURA en el año 2019",
		Rows: []domain.FrameRow{
			{
				Observation: domain.Observation{Region: "LA PAZ", Year: 2019},
				Value:       f64(21.456),
				Hover:       "<b>LA PAZ</b><br>Año: 2019<br>Temperatura: 21.46°C<br>",
			},
			{
				Observation: domain.Observation{Region: "ORURO", Year: 2019},
				Hover:       "<b>ORURO</b><br>Año: 2019<br>Temperatura: N/D<br>",
			},
		},
	}
}

func TestEncodeGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, NewFigure(testFrame(), testSettings())))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "figure_temperatura_2019", buf.Bytes())
}

func TestNewFigure(t *testing.T) {
	t.Run("one trace per frame", func(t *testing.T) {
		fig := NewFigure(testFrame(), testSettings())

		require.Len(t, fig.Data, 1)
		tr := fig.Data[0]
		assert.Equal(t, "choroplethmapbox", tr.Type)
		assert.Equal(t, []string{"LA PAZ", "ORURO"}, tr.Locations)
		require.Len(t, tr.Z, 2)
		assert.Equal(t, 21.456, *tr.Z[0])
		assert.Nil(t, tr.Z[1])
		assert.Equal(t, HoverTemplate, tr.HoverTemplate)
		assert.Equal(t, 0.8, tr.Marker.Opacity)
		assert.Equal(t, "TEMPERATURA en el año 2019", fig.Layout.Title.Text)
	})

	t.Run("feature id key defaults to the join key", func(t *testing.T) {
		s := testSettings()
		s.FeatureIDKey = ""

		fig := NewFigure(testFrame(), s)
		assert.Equal(t, "properties.MUNICIPIO", fig.Data[0].FeatureIDKey)
	})

	t.Run("empty frame encodes empty arrays", func(t *testing.T) {
		frame := testFrame()
		frame.Rows = nil

		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, NewFigure(frame, testSettings())))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		trace := decoded["data"].([]any)[0].(map[string]any)
		assert.Equal(t, []any{}, trace["locations"])
		assert.Equal(t, []any{}, trace["z"])
	})

	t.Run("access token only when set", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, NewFigure(testFrame(), testSettings())))
		assert.NotContains(t, buf.String(), "accesstoken")

		s := testSettings()
		s.AccessToken = "pk.test-token"
		buf.Reset()
		require.NoError(t, Encode(&buf, NewFigure(testFrame(), s)))
		assert.Contains(t, buf.String(), `"accesstoken": "pk.test-token"`)
	})
}

func TestNewFigureFromEngine(t *testing.T) {
	v := 12.5
	table := domain.NewTable(
		[]string{domain.DefaultJoinKey, "AÑO", domain.ColumnPrecipitation},
		[]domain.Observation{{Region: "BENI", Year: 2020, Measurements: domain.Measurements{Precipitation: &v}}},
	)
	frame, err := domain.NewEngine(table, domain.EngineOptions{Variable: domain.ColumnPrecipitation}).Render(2020)
	require.NoError(t, err)

	fig := NewFigure(frame, testSettings())
	tr := fig.Data[0]
	assert.Equal(t, domain.ColorScaleFor(domain.ColumnPrecipitation).Stops, tr.ColorScale)
	assert.Equal(t, domain.ColumnPrecipitation, tr.ColorBar.Title.Text)
	assert.Contains(t, tr.Text[0], "Precipitación: 12.50 mm")
}
