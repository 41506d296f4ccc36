package render

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/climate-map/internal/domain"
	"github.com/couchcryptid/climate-map/internal/observability"
)

// FrameEngine filters observations for a year.
type FrameEngine interface {
	Render(year int) (domain.Frame, error)
}

// Service renders frames on demand and records how it went.
type Service struct {
	engine  FrameEngine
	years   domain.YearIndex
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Service over an engine and the year index of the same table.
func New(engine FrameEngine, years domain.YearIndex, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		engine:  engine,
		years:   years,
		logger:  logger,
		metrics: metrics,
	}
}

// Years returns the selectable years.
func (s *Service) Years() domain.YearIndex {
	return s.years
}

// CheckReadiness returns nil once there is at least one year to show.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.years.Len() == 0 {
		return errors.New("observation table has no years")
	}
	return nil
}

// Render builds the frame for year. Configuration errors are logged and
// returned unchanged so callers can match them with errors.As.
func (s *Service) Render(ctx context.Context, year int) (domain.Frame, error) {
	if err := ctx.Err(); err != nil {
		return domain.Frame{}, err
	}

	start := domain.Clock().Now()
	frame, err := s.engine.Render(year)
	s.metrics.RenderDuration.Observe(domain.Clock().Since(start).Seconds())
	if err != nil {
		s.metrics.FramesRendered.WithLabelValues("error").Inc()
		s.logger.Error("render frame failed", "year", year, "error", err)
		return domain.Frame{}, err
	}

	s.metrics.FramesRendered.WithLabelValues("success").Inc()
	s.metrics.FrameRows.Observe(float64(len(frame.Rows)))
	s.logger.Debug("frame rendered", "year", year, "rows", len(frame.Rows), "variable", frame.Variable)
	return frame, nil
}
