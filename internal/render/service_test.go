package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-map/internal/domain"
	"github.com/couchcryptid/climate-map/internal/observability"
)

// --- mocks ---

type stubEngine struct {
	frame domain.Frame
	err   error
	calls []int
}

func (e *stubEngine) Render(year int) (domain.Frame, error) {
	e.calls = append(e.calls, year)
	if e.err != nil {
		return domain.Frame{}, e.err
	}
	f := e.frame
	f.Year = year
	return f, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testYears() domain.YearIndex {
	return domain.NewYearIndex(domain.NewTable(nil, []domain.Observation{{Year: 2019}, {Year: 2020}}))
}

// --- tests ---

func TestServiceRender_Success(t *testing.T) {
	engine := &stubEngine{frame: domain.Frame{Rows: make([]domain.FrameRow, 3)}}
	m := observability.NewMetricsForTesting()
	s := New(engine, testYears(), discardLogger(), m)

	frame, err := s.Render(context.Background(), 2019)
	require.NoError(t, err)

	assert.Equal(t, 2019, frame.Year)
	assert.Equal(t, []int{2019}, engine.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FramesRendered.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FramesRendered.WithLabelValues("error")))
}

func TestServiceRender_ConfigurationError(t *testing.T) {
	cfgErr := &domain.ConfigurationError{Column: "MUNICIPIO", Err: domain.ErrMissingJoinColumn}
	engine := &stubEngine{err: cfgErr}
	m := observability.NewMetricsForTesting()
	s := New(engine, testYears(), discardLogger(), m)

	_, err := s.Render(context.Background(), 2020)
	require.Error(t, err)

	var target *domain.ConfigurationError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FramesRendered.WithLabelValues("error")))
}

func TestServiceRender_CancelledContext(t *testing.T) {
	engine := &stubEngine{}
	s := New(engine, testYears(), discardLogger(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Render(ctx, 2019)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, engine.calls)
}

func TestServiceCheckReadiness(t *testing.T) {
	s := New(&stubEngine{}, testYears(), discardLogger(), observability.NewMetricsForTesting())
	assert.NoError(t, s.CheckReadiness(context.Background()))

	empty := New(&stubEngine{}, domain.NewYearIndex(domain.NewTable(nil, nil)), discardLogger(), observability.NewMetricsForTesting())
	err := empty.CheckReadiness(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no years")
}

func TestServiceYears(t *testing.T) {
	s := New(&stubEngine{}, testYears(), discardLogger(), observability.NewMetricsForTesting())
	assert.Equal(t, []int{2019, 2020}, s.Years().Years())
}
