package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Palette names.
const (
	PaletteWarmCool   = "RdYlBu_r"
	PaletteBlueGreen  = "YlGnBu"
	temperatureMarker = "TEMP"
)

//go:embed palettes.yaml
var paletteYAML []byte

// palettes is parsed once from the embedded definitions.
var palettes = mustLoadPalettes(paletteYAML)

// ColorStop is one point of a continuous colour scale. It marshals to the
// [offset, color] pair Plotly expects.
type ColorStop struct {
	Offset float64
	Color  string
}

func (s ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Offset, s.Color})
}

func (s *ColorStop) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("color stop: want [offset, color], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &s.Offset); err != nil {
		return fmt.Errorf("color stop offset: %w", err)
	}
	if err := json.Unmarshal(pair[1], &s.Color); err != nil {
		return fmt.Errorf("color stop color: %w", err)
	}
	return nil
}

// ColorScale is a named continuous colour scale.
type ColorScale struct {
	Name  string      `json:"name"`
	Kind  string      `json:"kind"`
	Stops []ColorStop `json:"stops"`
}

type paletteFile struct {
	Palettes []struct {
		Name   string   `yaml:"name"`
		Kind   string   `yaml:"kind"`
		Colors []string `yaml:"colors"`
	} `yaml:"palettes"`
}

// ColorScaleFor picks the colour scale for a mapped variable. Temperature-like
// variables get the diverging warm/cool palette, everything else the
// sequential blue-green one.
func ColorScaleFor(variable string) ColorScale {
	if strings.Contains(strings.ToUpper(variable), temperatureMarker) {
		return palettes[PaletteWarmCool]
	}
	return palettes[PaletteBlueGreen]
}

func mustLoadPalettes(data []byte) map[string]ColorScale {
	out, err := parsePalettes(data)
	if err != nil {
		panic(err)
	}
	for _, name := range []string{PaletteWarmCool, PaletteBlueGreen} {
		if _, ok := out[name]; !ok {
			panic(fmt.Sprintf("palette %q not defined", name))
		}
	}
	return out
}

func parsePalettes(data []byte) (map[string]ColorScale, error) {
	var f paletteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse palettes: %w", err)
	}

	out := make(map[string]ColorScale, len(f.Palettes))
	for _, p := range f.Palettes {
		if len(p.Colors) < 2 {
			return nil, fmt.Errorf("palette %q needs at least two colors", p.Name)
		}
		stops := make([]ColorStop, len(p.Colors))
		last := float64(len(p.Colors) - 1)
		for i, c := range p.Colors {
			stops[i] = ColorStop{Offset: float64(i) / last, Color: c}
		}
		stops[len(stops)-1].Offset = 1
		out[p.Name] = ColorScale{Name: p.Name, Kind: p.Kind, Stops: stops}
	}
	return out, nil
}
