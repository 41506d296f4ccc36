package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the dashboard.
type Metrics struct {
	// Data loaded at startup.
	ObservationsLoaded prometheus.Gauge
	RegionsLoaded      prometheus.Gauge
	YearsAvailable     prometheus.Gauge
	UnmatchedRegions   *prometheus.GaugeVec // labels: side={observations,boundaries}

	// Frame rendering.
	FramesRendered *prometheus.CounterVec // labels: outcome={success,error}
	RenderDuration prometheus.Histogram
	FrameRows      prometheus.Histogram

	HTTPRequests *prometheus.CounterVec // labels: method, code
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ObservationsLoaded,
		m.RegionsLoaded,
		m.YearsAvailable,
		m.UnmatchedRegions,
		m.FramesRendered,
		m.RenderDuration,
		m.FrameRows,
		m.HTTPRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ObservationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_map",
			Name:      "observations_loaded",
			Help:      "Rows in the observation table.",
		}),
		RegionsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_map",
			Name:      "regions_loaded",
			Help:      "Named boundary features.",
		}),
		YearsAvailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_map",
			Name:      "years_available",
			Help:      "Distinct years offered by the year selector.",
		}),
		UnmatchedRegions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "climate_map",
			Name:      "unmatched_regions",
			Help:      "Region names present on one side of the join only.",
		}, []string{"side"}),
		FramesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_map",
			Name:      "frames_rendered_total",
			Help:      "Frames rendered by outcome.",
		}, []string{"outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_map",
			Name:      "render_duration_seconds",
			Help:      "Time to filter the table and build a frame.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		FrameRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_map",
			Name:      "frame_rows",
			Help:      "Observations per rendered frame.",
			Buckets:   []float64{0, 10, 50, 100, 200, 350, 500},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_map",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}
}
