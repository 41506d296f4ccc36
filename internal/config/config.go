package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/couchcryptid/climate-map/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8050"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Data sources.
	BoundariesPath    string `env:"BOUNDARIES_PATH" envDefault:"MUNICIPIOS.geojson"`
	ObservationsPath  string `env:"OBSERVATIONS_PATH" envDefault:"CLIMA PRUEBAS 2020.xlsx"`
	ObservationsSheet string `env:"OBSERVATIONS_SHEET"`
	JoinKey           string `env:"JOIN_KEY" envDefault:"MUNICIPIO"`
	YearColumn        string `env:"YEAR_COLUMN" envDefault:"AÑO"`

	// Variable is the measurement column shaded on the map.
	Variable string `env:"MAP_VARIABLE" envDefault:"TEMPERATURA"`

	// Page text.
	PageTitle   string `env:"PAGE_TITLE" envDefault:"Mapa Climático Interactivo"`
	PageHeading string `env:"PAGE_HEADING" envDefault:"Mapa Climático por Municipio y Año"`

	// Map view.
	MapStyle     string  `env:"MAP_STYLE" envDefault:"carto-positron"`
	MapCenterLat float64 `env:"MAP_CENTER_LAT" envDefault:"-16.29"`
	MapCenterLon float64 `env:"MAP_CENTER_LON" envDefault:"-63.58"`
	MapZoom      float64 `env:"MAP_ZOOM" envDefault:"5"`
	MapOpacity   float64 `env:"MAP_OPACITY" envDefault:"0.8"`

	// MapboxToken is only required for Mapbox-hosted map styles.
	MapboxToken string `env:"MAPBOX_TOKEN"`
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.BoundariesPath == "" {
		return nil, errors.New("BOUNDARIES_PATH is required")
	}
	if cfg.ObservationsPath == "" {
		return nil, errors.New("OBSERVATIONS_PATH is required")
	}
	if strings.TrimSpace(cfg.JoinKey) == "" {
		return nil, errors.New("JOIN_KEY is required")
	}
	if strings.TrimSpace(cfg.YearColumn) == "" {
		return nil, errors.New("YEAR_COLUMN is required")
	}
	if !domain.IsMeasurementColumn(cfg.Variable) {
		return nil, fmt.Errorf("MAP_VARIABLE %q must be one of %v", cfg.Variable, domain.MeasurementColumns)
	}
	if cfg.MapOpacity < 0 || cfg.MapOpacity > 1 {
		return nil, errors.New("MAP_OPACITY must be between 0 and 1")
	}
	if cfg.MapZoom < 0 || cfg.MapZoom > 22 {
		return nil, errors.New("MAP_ZOOM must be between 0 and 22")
	}
	if cfg.MapCenterLat < -90 || cfg.MapCenterLat > 90 {
		return nil, errors.New("MAP_CENTER_LAT must be between -90 and 90")
	}
	if cfg.MapCenterLon < -180 || cfg.MapCenterLon > 180 {
		return nil, errors.New("MAP_CENTER_LON must be between -180 and 180")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("LOG_FORMAT %q must be json or text", cfg.LogFormat)
	}

	return cfg, nil
}
