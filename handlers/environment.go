package handlers

import (
	"net/http"

	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/ecohealth/sentinel/internal/environment"
	"github.com/gin-gonic/gin"
)

type EnvironmentHandler struct {
	svc *environment.Service
}

func NewEnvironmentHandler(svc *environment.Service) *EnvironmentHandler {
	return &EnvironmentHandler{svc: svc}
}

// Register routes under /environment
func (h *EnvironmentHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/environment")
	g.GET("/dashboard", h.Dashboard)
	g.POST("/carbon-calculator", h.CalculateCarbon)
	g.POST("/carbon-calculation", h.CalculateCarbon)
	g.POST("/disaster-prediction", h.PredictDisaster)
	g.POST("/waste-management", h.LogWaste)
	g.GET("/waste-management", h.WasteLogs)
	g.GET("/climate-predictions", h.ClimatePredictions)
	g.GET("/pollution-heatmap", h.PollutionHeatmap)
	g.GET("/renewable-energy", h.RenewableEnergy)
}

func (h *EnvironmentHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, d)
}

func (h *EnvironmentHandler) CalculateCarbon(c *gin.Context) {
	var in environment.CarbonInput
	if !bind(c, &in) {
		return
	}
	calc, err := h.svc.CalculateCarbon(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, calc)
}

// bindBodyOrQuery accepts a JSON body or, when there is none, query parameters.
func bindBodyOrQuery(c *gin.Context, v interface{}) bool {
	if c.Request.ContentLength > 0 {
		return bind(c, v)
	}
	if err := c.ShouldBindQuery(v); err != nil {
		_ = c.Error(apperr.Wrap(http.StatusBadRequest, "Invalid request parameters", err))
		return false
	}
	return true
}

func (h *EnvironmentHandler) PredictDisaster(c *gin.Context) {
	var in environment.DisasterInput
	if !bindBodyOrQuery(c, &in) {
		return
	}
	p, err := h.svc.PredictDisaster(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, p)
}

func (h *EnvironmentHandler) LogWaste(c *gin.Context) {
	var in environment.WasteInput
	if !bindBodyOrQuery(c, &in) {
		return
	}
	l, err := h.svc.LogWaste(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	created(c, l)
}

func (h *EnvironmentHandler) WasteLogs(c *gin.Context) {
	limit, valid := intQuery(c, "limit", 20)
	if !valid {
		return
	}
	logs, err := h.svc.WasteLogs(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, logs)
}

func (h *EnvironmentHandler) ClimatePredictions(c *gin.Context) {
	ok(c, environment.ClimatePredictionsFor(c.Query("location")))
}

func (h *EnvironmentHandler) PollutionHeatmap(c *gin.Context) {
	ok(c, h.svc.PollutionHeatmap(c.Query("pollutant")))
}

func (h *EnvironmentHandler) RenewableEnergy(c *gin.Context) {
	ok(c, environment.RenewableEnergy())
}
