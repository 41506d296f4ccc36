package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorScaleFor(t *testing.T) {
	tests := []struct {
		variable string
		want     string
	}{
		{ColumnTemperature, PaletteWarmCool},
		{ColumnTempMin, PaletteWarmCool},
		{"temperatura media", PaletteWarmCool},
		{ColumnPrecipitation, PaletteBlueGreen},
		{"HUMEDAD", PaletteBlueGreen},
		{"", PaletteBlueGreen},
	}
	for _, tt := range tests {
		t.Run(tt.variable, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorScaleFor(tt.variable).Name)
		})
	}
}

func TestColorScaleStops(t *testing.T) {
	for _, name := range []string{ColumnTemperature, ColumnPrecipitation} {
		scale := ColorScaleFor(name)
		require.GreaterOrEqual(t, len(scale.Stops), 2)
		assert.Equal(t, 0.0, scale.Stops[0].Offset)
		assert.Equal(t, 1.0, scale.Stops[len(scale.Stops)-1].Offset)
		for i := 1; i < len(scale.Stops); i++ {
			assert.Greater(t, scale.Stops[i].Offset, scale.Stops[i-1].Offset)
		}
	}

	warm := ColorScaleFor(ColumnTemperature)
	assert.Equal(t, "diverging", warm.Kind)
	assert.Equal(t, "#313695", warm.Stops[0].Color, "cool end first")
	assert.Equal(t, "#a50026", warm.Stops[len(warm.Stops)-1].Color)
}

func TestColorStopMarshalJSON(t *testing.T) {
	data, err := json.Marshal(ColorStop{Offset: 0.5, Color: "#ffffbf"})
	require.NoError(t, err)
	assert.JSONEq(t, `[0.5,"#ffffbf"]`, string(data))
}

func TestParsePalettesRejectsSingleColor(t *testing.T) {
	_, err := parsePalettes([]byte("palettes:\n  - name: X\n    colors: [\"#000000\"]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two colors")
}
