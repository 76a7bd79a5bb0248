package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSwaggerEndpoints(t *testing.T) {
	g := gin.New()
	RegisterSwagger(g)

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/swagger/index.html", nil))
	require.Equal(t, 200, w.Code)
	require.Contains(t, w.Body.String(), "swagger-ui")

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/swagger/doc.json", nil))
	require.Equal(t, 200, w.Code)

	var doc struct {
		OpenAPI string                                       `json:"openapi"`
		Paths   map[string]map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.Equal(t, "3.0.0", doc.OpenAPI)
	require.Contains(t, doc.Paths, "/api/chatbot")
	require.Contains(t, doc.Paths["/api/environment/waste-management"], "get")
	require.Contains(t, doc.Paths["/api/environment/waste-management"], "post")
	require.Contains(t, doc.Paths["/api/admin/users/{id}/status"]["patch"], "security")
	require.Contains(t, doc.Paths, "/health")
}

func TestAPIDocs(t *testing.T) {
	g := gin.New()
	RegisterDocs(g, "http://localhost:5000/api")

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/api/docs", nil))
	require.Equal(t, 200, w.Code)

	var doc APIDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.Equal(t, "EcoHealth Sentinel API", doc.Name)
	require.Equal(t, "2.0.0", doc.Version)
	require.Equal(t, "http://localhost:5000/api", doc.BaseURL)
	for _, d := range docOrder {
		require.NotEmpty(t, doc.Endpoints[d].Routes, d)
	}
	require.Equal(t, "20 requests per minute", doc.Endpoints["chatbot"].Routes[0].RateLimit)
}

func TestOpenAPIPath(t *testing.T) {
	require.Equal(t, "/healthcare/remote-monitoring/{patient_id}", openAPIPath("/healthcare/remote-monitoring/:patient_id"))
	require.Len(t, pathParams("/admin/users/:id/status"), 1)
}
