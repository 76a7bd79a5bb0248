package handlers

import (
	"github.com/ecohealth/sentinel/internal/agriculture"
	"github.com/gin-gonic/gin"
)

type AgricultureHandler struct {
	svc *agriculture.Service
}

func NewAgricultureHandler(svc *agriculture.Service) *AgricultureHandler {
	return &AgricultureHandler{svc: svc}
}

// Register routes under /agriculture
func (h *AgricultureHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/agriculture")
	g.GET("/dashboard", h.Dashboard)
	g.POST("/crop-disease-detection", h.DetectDisease)
	g.GET("/market/forecast", h.MarketForecast)
	g.GET("/weather", h.Weather)
	g.POST("/irrigation/smart-schedule", h.SmartSchedule)
	g.GET("/irrigation/schedules", h.Schedules)
	g.POST("/fertilizer/recommendations", h.Fertilizer)
	g.POST("/pest-control", h.PestControl)
}

func (h *AgricultureHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, d)
}

// DetectDisease accepts an optional multipart "file" plus a cropType field.
func (h *AgricultureHandler) DetectDisease(c *gin.Context) {
	in := agriculture.DetectInput{CropType: c.PostForm("cropType")}
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			_ = c.Error(err)
			return
		}
		defer f.Close()
		in.Filename = fh.Filename
		in.ContentType = fh.Header.Get("Content-Type")
		in.Image = f
	}
	res, err := h.svc.DetectDisease(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, res)
}

func (h *AgricultureHandler) MarketForecast(c *gin.Context) {
	days, valid := intQuery(c, "days", 7)
	if !valid {
		return
	}
	f, err := h.svc.MarketForecast(c.Query("crop_type"), days)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, f)
}

func (h *AgricultureHandler) Weather(c *gin.Context) {
	days, valid := intQuery(c, "days", 7)
	if !valid {
		return
	}
	w, err := h.svc.Weather(c.Query("location"), days)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, w)
}

func (h *AgricultureHandler) SmartSchedule(c *gin.Context) {
	var in agriculture.ScheduleInput
	if !bind(c, &in) {
		return
	}
	res, err := h.svc.SmartSchedule(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	created(c, res)
}

func (h *AgricultureHandler) Schedules(c *gin.Context) {
	list, err := h.svc.Schedules(c.Request.Context(), c.Query("farm_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, gin.H{"schedules": list})
}

func (h *AgricultureHandler) Fertilizer(c *gin.Context) {
	var in agriculture.FertilizerInput
	if !bind(c, &in) {
		return
	}
	plan, err := h.svc.Fertilizer(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, plan)
}

func (h *AgricultureHandler) PestControl(c *gin.Context) {
	var in agriculture.PestInput
	if !bind(c, &in) {
		return
	}
	ok(c, h.svc.PestControl(in))
}
