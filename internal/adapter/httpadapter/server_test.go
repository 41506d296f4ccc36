package httpadapter_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/climate-map/internal/adapter/httpadapter"
	"github.com/couchcryptid/climate-map/internal/observability"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type pingRoutes struct{}

func (pingRoutes) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("pong")) //nolint:errcheck // test handler
	})
}

func newTestServer(readyErr error) (*httpadapter.Server, *observability.Metrics) {
	m := observability.NewMetricsForTesting()
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, pingRoutes{}, slog.Default(), m), m
}

func serve(srv http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(fmt.Errorf("not ready yet"))
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestApplicationRoutesMounted(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestEmbeddingHeadersOnEveryResponse(t *testing.T) {
	srv, _ := newTestServer(fmt.Errorf("down"))

	for _, path := range []string{"/ping", "/healthz", "/readyz", "/metrics", "/no-such-page"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(srv, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, "ALLOWALL", rec.Header().Get("X-Frame-Options"))
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRequestID(t *testing.T) {
	srv, _ := newTestServer(nil)

	t.Run("generated", func(t *testing.T) {
		rec := serve(srv, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Len(t, rec.Header().Get(httpadapter.RequestIDHeader), 36)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(httpadapter.RequestIDHeader, "abc-123")
		rec := serve(srv, req)
		assert.Equal(t, "abc-123", rec.Header().Get(httpadapter.RequestIDHeader))
	})
}

func TestRequestsCounted(t *testing.T) {
	srv, m := newTestServer(nil)

	serve(srv, httptest.NewRequest(http.MethodGet, "/ping", nil))
	serve(srv, httptest.NewRequest(http.MethodGet, "/ping", nil))
	serve(srv, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.InDelta(t, 2, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "404")), 0)
}
