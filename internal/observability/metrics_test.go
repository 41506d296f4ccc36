package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsForTesting_Unregistered(t *testing.T) {
	m := NewMetricsForTesting()
	m.FramesRendered.WithLabelValues("success").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FramesRendered.WithLabelValues("success")))

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(m.FramesRendered))
	require.NoError(t, reg.Register(NewMetricsForTesting().RenderDuration))
}
