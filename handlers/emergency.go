package handlers

import (
	"github.com/ecohealth/sentinel/internal/emergency"
	"github.com/gin-gonic/gin"
)

type EmergencyHandler struct {
	svc *emergency.Service
}

func NewEmergencyHandler(svc *emergency.Service) *EmergencyHandler {
	return &EmergencyHandler{svc: svc}
}

// Register routes under /emergency
func (h *EmergencyHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/emergency")
	g.GET("/metrics", h.Metrics)
	g.POST("/metrics", h.RecordMetrics)
	g.GET("/predictions", h.Predictions)
	g.POST("/predictions", h.RecordPrediction)
	g.GET("/notifications", h.Notifications)
}

func (h *EmergencyHandler) Metrics(c *gin.Context) {
	m, err := h.svc.Metrics(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, m)
}

func (h *EmergencyHandler) RecordMetrics(c *gin.Context) {
	var in emergency.MetricsInput
	if !bind(c, &in) {
		return
	}
	m, err := h.svc.RecordMetrics(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	created(c, m)
}

func (h *EmergencyHandler) Predictions(c *gin.Context) {
	list, err := h.svc.Predictions(c.Request.Context(), c.Query("riskLevel"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, list)
}

func (h *EmergencyHandler) RecordPrediction(c *gin.Context) {
	var in emergency.PredictionInput
	if !bind(c, &in) {
		return
	}
	p, err := h.svc.RecordPrediction(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	created(c, p)
}

func (h *EmergencyHandler) Notifications(c *gin.Context) {
	list, err := h.svc.Notifications(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, list)
}
