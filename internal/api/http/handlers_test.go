package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calcdeck/backend/internal/infrastructure/monitoring"
	"github.com/calcdeck/backend/internal/providers/calc"
	"github.com/calcdeck/backend/internal/providers/currency"
	"github.com/calcdeck/backend/internal/service"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(calc.NewProvider(calc.DefaultHistoryLimit, nil)))
	require.NoError(t, registry.Register(currency.NewProvider(nil, nil)))

	h := NewHandlers(registry, monitoring.NewMetrics())

	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/services", h.ListServices)
	r.POST("/services/discover", h.DiscoverServices)
	r.POST("/services/execute", h.ExecuteService)
	r.GET("/metrics/summary", h.MetricsSummary)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])

	stats := body["service_registry"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_services"])
}

func TestListServices(t *testing.T) {
	r := setupRouter(t)

	t.Run("All", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/services", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body["services"], 2)
	})

	t.Run("Filtered by category", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/services?category=finance", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		services := body["services"].([]interface{})
		require.Len(t, services, 1)
		svc := services[0].(map[string]interface{})
		assert.Equal(t, "currency", svc["id"])
	})

	t.Run("Unknown category rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/services?category=bogus", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDiscoverServices(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/services/discover", map[string]string{
		"query": "currency conversion",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	services := body["services"].([]interface{})
	require.NotEmpty(t, services)
	first := services[0].(map[string]interface{})
	assert.Equal(t, "currency", first["id"])
}

func TestExecuteService(t *testing.T) {
	r := setupRouter(t)

	t.Run("Calculator round trip", func(t *testing.T) {
		for _, step := range []map[string]interface{}{
			{"tool_id": "calc.input", "params": map[string]interface{}{"value": "2"}},
			{"tool_id": "calc.operator", "params": map[string]interface{}{"value": "+"}},
			{"tool_id": "calc.input", "params": map[string]interface{}{"value": "3"}},
		} {
			w := doJSON(t, r, http.MethodPost, "/services/execute", step)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := doJSON(t, r, http.MethodPost, "/services/execute", map[string]interface{}{
			"tool_id": "calc.equals",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.Equal(t, true, result["success"])
		data := result["data"].(map[string]interface{})
		assert.Equal(t, "5", data["result"])
	})

	t.Run("Missing tool_id rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/services/execute", map[string]interface{}{
			"params": map[string]interface{}{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown service errors", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/services/execute", map[string]interface{}{
			"tool_id": "nope.tool",
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestMetricsSummary(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/metrics/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "uptime_seconds")
}
