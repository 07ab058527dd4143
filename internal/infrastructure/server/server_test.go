package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calcdeck/backend/internal/infrastructure/config"
	"github.com/calcdeck/backend/internal/infrastructure/logging"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.RateLimit.Enabled = false

	srv, err := New(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func TestNewRegistersProviders(t *testing.T) {
	srv := newTestServer(t)

	stats := srv.Registry().Stats()
	assert.Equal(t, 2, stats["total_services"])

	_, ok := srv.Registry().Get("calc")
	assert.True(t, ok)
	_, ok = srv.Registry().Get("currency")
	assert.True(t, ok)
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/health", "/services", "/metrics/summary"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestPrometheusEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "calcdeck_uptime_seconds"))
}

func TestExecuteThroughRouter(t *testing.T) {
	srv := newTestServer(t)

	body := strings.NewReader(`{"tool_id":"currency.convert"}`)
	req := httptest.NewRequest(http.MethodPost, "/services/execute", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}
