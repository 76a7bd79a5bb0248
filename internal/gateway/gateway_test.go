package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecohealth/sentinel/internal/config"
	"github.com/ecohealth/sentinel/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echo answers every request with the path and query it received.
func echo(name string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"upstream": name, "path": r.URL.Path, "query": r.URL.RawQuery})
	}))
}

func get(t *testing.T, h http.Handler, path string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func TestRouting(t *testing.T) {
	api, ml, web := echo("api"), echo("fastapi"), echo("frontend")
	defer api.Close()
	defer ml.Close()
	defer web.Close()

	g, err := New(config.GatewayConfig{APIURL: api.URL, FastAPIURL: ml.URL, FrontendURL: web.URL})
	require.NoError(t, err)
	h := g.Handler(nil)

	cases := []struct{ in, upstream, path string }{
		{"/api/ml/agriculture/crop-disease-detection", "fastapi", "/agriculture/crop-disease-detection"},
		{"/api/ml", "fastapi", "/"},
		{"/api/predict/yield", "fastapi", "/predict/yield"},
		{"/api/healthcare/dashboard", "api", "/api/healthcare/dashboard"},
		{"/api/mlx", "api", "/api/mlx"},
		{"/dashboard", "frontend", "/dashboard"},
	}
	for _, tc := range cases {
		code, body := get(t, h, tc.in)
		require.Equal(t, http.StatusOK, code, tc.in)
		assert.Equal(t, tc.upstream, body["upstream"], tc.in)
		assert.Equal(t, tc.path, body["path"], tc.in)
	}

	_, body := get(t, h, "/api/environment/waste-management?limit=5")
	assert.Equal(t, "limit=5", body["query"])
}

func TestUnreachableUpstream(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	g, err := New(config.GatewayConfig{APIURL: deadURL, FastAPIURL: deadURL})
	require.NoError(t, err)
	before := testutil.ToFloat64(metrics.ProxyErrors.WithLabelValues("api"))

	code, body := get(t, g.Handler(nil), "/api/emergency/metrics")
	require.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "Service Unavailable", body["error"])
	assert.Equal(t, "Cannot reach "+deadURL, body["message"])
	assert.NotEmpty(t, body["timestamp"])
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ProxyErrors.WithLabelValues("api")))

	// without a frontend, non-api paths are not found
	code, _ = get(t, g.Handler(nil), "/index.html")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthServices(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer healthy.Close()
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	g, err := New(config.GatewayConfig{APIURL: healthy.URL, FastAPIURL: failing.URL})
	require.NoError(t, err)

	code, body := get(t, g.Handler(nil), "/health/services")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["gateway"])
	services := body["services"].(map[string]interface{})
	assert.Equal(t, "healthy", services["api"].(map[string]interface{})["status"])
	fast := services["fastapi"].(map[string]interface{})
	assert.Equal(t, "unhealthy", fast["status"])
	assert.NotEmpty(t, fast["error"])
	assert.NotContains(t, services, "frontend")
}

func TestHealthAndInfo(t *testing.T) {
	g, err := New(config.GatewayConfig{APIURL: "http://api:5000", FastAPIURL: "http://ml:8000"})
	require.NoError(t, err)
	h := g.Handler(nil)

	code, body := get(t, h, "/health")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "API Gateway", body["service"])

	code, body = get(t, h, "/info")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "http://ml:8000", body["backends"].(map[string]interface{})["fastapi"])
}

func TestNewRejectsBadURLs(t *testing.T) {
	_, err := New(config.GatewayConfig{APIURL: "", FastAPIURL: "http://ml:8000"})
	require.Error(t, err)
	_, err = New(config.GatewayConfig{APIURL: "api:5000", FastAPIURL: "http://ml:8000"})
	require.Error(t, err)
}

func TestMetricsExposeProxyErrors(t *testing.T) {
	var already prometheus.AlreadyRegisteredError
	if err := prometheus.Register(metrics.ProxyErrors); err != nil && !errors.As(err, &already) {
		require.NoError(t, err)
	}

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()
	g, err := New(config.GatewayConfig{APIURL: deadURL, FastAPIURL: deadURL})
	require.NoError(t, err)
	h := g.Handler(nil)

	code, _ := get(t, h, "/api/ml/predict")
	require.Equal(t, http.StatusServiceUnavailable, code)

	// served by the gateway itself, not forwarded upstream
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `ecohealth_gateway_proxy_errors_total{target="fastapi"}`)
}
