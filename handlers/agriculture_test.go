package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecohealth/sentinel/internal/agriculture"
	"github.com/ecohealth/sentinel/internal/jitter"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/ecohealth/sentinel/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgriRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.Use(middleware.ErrorHandler(false))
	svc := agriculture.NewService(repository.NewMemoryBackend(), jitter.Seeded(3))
	NewAgricultureHandler(svc).Register(r.Group("/api"))
	return r
}

func data(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	got := body(t, w)
	require.Equal(t, true, got["success"], w.Body.String())
	d, isMap := got["data"].(map[string]interface{})
	require.True(t, isMap, w.Body.String())
	return d
}

func TestAgriculture_MarketForecast(t *testing.T) {
	r := newAgriRouter(t)

	w := getPath(r, "/api/agriculture/market/forecast?crop_type=wheat&days=3")
	require.Equal(t, http.StatusOK, w.Code)
	d := data(t, w)
	assert.Equal(t, "wheat", d["crop_type"])
	assert.Len(t, d["forecast"], 3)

	w = getPath(r, "/api/agriculture/market/forecast")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data(t, w)["forecast"], 7)

	w = getPath(r, "/api/agriculture/market/forecast?days=31")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body(t, w)["success"])

	w = getPath(r, "/api/agriculture/market/forecast?days=soon")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "days must be an integer", body(t, w)["message"])
}

func TestAgriculture_Weather(t *testing.T) {
	r := newAgriRouter(t)
	w := getPath(r, "/api/agriculture/weather?location=Nashik&days=2")
	require.Equal(t, http.StatusOK, w.Code)
	d := data(t, w)
	assert.Equal(t, "Nashik", d["location"])
	assert.Len(t, d["forecast"], 2)

	require.Equal(t, http.StatusBadRequest, getPath(r, "/api/agriculture/weather?days=0").Code)
}

func TestAgriculture_DiseaseUpload(t *testing.T) {
	r := newAgriRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("cropType", "potato"))
	fw, err := mw.CreateFormFile("file", "leaf.jpg")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("not really a jpeg"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/agriculture/crop-disease-detection", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	d := data(t, w)
	assert.Equal(t, "potato", d["crop_type"])
	assert.Equal(t, "leaf.jpg", d["image_name"])
	assert.NotEmpty(t, d["disease_name"])

	w = getPath(r, "/api/agriculture/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	stats := data(t, w)["stats"].(map[string]interface{})
	assert.Equal(t, 1.0, stats["recent_detections"])
}

func TestAgriculture_Plans(t *testing.T) {
	r := newAgriRouter(t)

	w := postJSON(r, "/api/agriculture/irrigation/smart-schedule", `{"farm_id":"f1","crop_type":"maize","area_size":3}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1500.0, data(t, w)["total_weekly_water"])

	w = postJSON(r, "/api/agriculture/irrigation/smart-schedule", `{"crop_type":"maize"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", body(t, w)["message"])

	w = getPath(r, "/api/agriculture/irrigation/schedules?farm_id=f1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data(t, w)["schedules"], 1)

	w = postJSON(r, "/api/agriculture/fertilizer/recommendations", `{"crop_type":"maize","soil_type":"clay","area_size":10}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1500.0, data(t, w)["estimated_cost"])

	w = postJSON(r, "/api/agriculture/pest-control", `{"crop_type":"maize","pest_type":"Fall Armyworm"}`)
	require.Equal(t, http.StatusOK, w.Code)
	pests := data(t, w)["identified_pests"].([]interface{})
	assert.Equal(t, "Fall Armyworm", pests[0].(map[string]interface{})["name"])
}
