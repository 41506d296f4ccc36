package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/climate-map/internal/adapter/geojson"
	"github.com/couchcryptid/climate-map/internal/adapter/plotly"
	"github.com/couchcryptid/climate-map/internal/adapter/sheet"
	"github.com/couchcryptid/climate-map/internal/config"
	"github.com/couchcryptid/climate-map/internal/domain"
	"github.com/couchcryptid/climate-map/internal/observability"
	"github.com/couchcryptid/climate-map/internal/render"
)

// BoundariesPath is the route serving the GeoJSON file.
const BoundariesPath = "/api/boundaries"

// Renderer produces frames for the selected year.
type Renderer interface {
	Render(ctx context.Context, year int) (domain.Frame, error)
	Years() domain.YearIndex
}

// Boundaries serves the boundary file to the browser.
type Boundaries interface {
	Raw() []byte
	FeatureIDKey() string
}

// App is the application context built once at startup. Every field is
// read-only afterwards, so handlers share it without locking.
type App struct {
	Renderer   Renderer
	Boundaries Boundaries
	Map        plotly.MapSettings
	Page       Page
}

// Loaded is the result of Bootstrap: the App plus the pieces main wires elsewhere.
type Loaded struct {
	App     *App
	Service *render.Service
	Join    domain.JoinReport
}

// Bootstrap loads both data sources, reports how well they join, and builds the
// application context. Any load failure is fatal to the caller.
func Bootstrap(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*Loaded, error) {
	boundaries, err := geojson.Load(cfg.BoundariesPath, cfg.JoinKey, logger)
	if err != nil {
		return nil, err
	}

	table, err := sheet.Load(cfg.ObservationsPath, sheet.Options{
		Sheet:      cfg.ObservationsSheet,
		JoinKey:    cfg.JoinKey,
		YearColumn: cfg.YearColumn,
	}, logger)
	if err != nil {
		return nil, err
	}

	years := domain.NewYearIndex(table)
	if years.Len() == 0 {
		return nil, fmt.Errorf("observations %s: no data rows", cfg.ObservationsPath)
	}

	metrics.ObservationsLoaded.Set(float64(table.Len()))
	metrics.RegionsLoaded.Set(float64(len(boundaries.Names())))
	metrics.YearsAvailable.Set(float64(years.Len()))

	var report domain.JoinReport
	if table.HasColumn(cfg.JoinKey) {
		report = domain.MatchRegions(table.Regions(), boundaries.Names())
		logJoinReport(logger, report)
		metrics.UnmatchedRegions.WithLabelValues("observations").Set(float64(len(report.MissingBoundary)))
		metrics.UnmatchedRegions.WithLabelValues("boundaries").Set(float64(len(report.MissingData)))
	}

	engine := domain.NewEngine(table, domain.EngineOptions{
		Variable: cfg.Variable,
		JoinKey:  cfg.JoinKey,
	})
	svc := render.New(engine, years, logger, metrics)

	page := DefaultPage()
	page.Title = cfg.PageTitle
	page.Heading = cfg.PageHeading

	app := &App{
		Renderer:   svc,
		Boundaries: boundaries,
		Map: plotly.MapSettings{
			BoundariesURL: BoundariesPath,
			FeatureIDKey:  boundaries.FeatureIDKey(),
			Style:         cfg.MapStyle,
			CenterLat:     cfg.MapCenterLat,
			CenterLon:     cfg.MapCenterLon,
			Zoom:          cfg.MapZoom,
			Opacity:       cfg.MapOpacity,
			AccessToken:   cfg.MapboxToken,
		},
		Page: page,
	}

	defaultYear, _ := years.Default()
	logger.Info("dashboard ready",
		"variable", engine.Variable(),
		"join_key", engine.JoinKey(),
		"years", years.Years(),
		"default_year", defaultYear,
	)
	return &Loaded{App: app, Service: svc, Join: report}, nil
}

func logJoinReport(logger *slog.Logger, r domain.JoinReport) {
	logger.Info("join checked",
		"matched", r.Matched,
		"missing_boundary", len(r.MissingBoundary),
		"missing_data", len(r.MissingData),
	)
	for _, name := range r.MissingBoundary {
		if s, ok := r.Suggestions[name]; ok {
			logger.Warn("observation region has no boundary", "region", name, "did_you_mean", s)
			continue
		}
		logger.Warn("observation region has no boundary", "region", name)
	}
	if len(r.MissingData) > 0 {
		logger.Info("boundary regions without observations", "regions", r.MissingData)
	}
}
