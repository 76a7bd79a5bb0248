package handlers

import (
	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/ecohealth/sentinel/internal/healthcare"
	"github.com/gin-gonic/gin"
)

type HealthcareHandler struct {
	svc *healthcare.Service
}

func NewHealthcareHandler(svc *healthcare.Service) *HealthcareHandler {
	return &HealthcareHandler{svc: svc}
}

// Register routes under /healthcare
func (h *HealthcareHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/healthcare")
	g.GET("/dashboard", h.Dashboard)
	g.POST("/appointments", h.ScheduleAppointment)
	g.GET("/appointments", h.Appointments)
	g.GET("/appointments/:id", h.Appointment)
	g.POST("/patients", h.AddPatient)
	g.GET("/patients", h.Patients)
	g.POST("/remote-monitoring", h.RecordVitals)
	g.GET("/remote-monitoring/:patient_id", h.Vitals)
	g.POST("/diagnosis-assistant", h.Diagnose)
	g.GET("/emergency-prediction", h.EmergencyRisk)
}

func (h *HealthcareHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, d)
}

func (h *HealthcareHandler) ScheduleAppointment(c *gin.Context) {
	var in healthcare.AppointmentInput
	if !bind(c, &in) {
		return
	}
	a, err := h.svc.ScheduleAppointment(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	created(c, a)
}

func (h *HealthcareHandler) Appointments(c *gin.Context) {
	list, err := h.svc.Appointments(c.Request.Context(), healthcare.AppointmentFilter{
		PatientID: c.Query("patient_id"),
		DoctorID:  c.Query("doctor_id"),
		Status:    c.Query("status"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, list)
}

func (h *HealthcareHandler) Appointment(c *gin.Context) {
	a, err := h.svc.Appointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, a)
}

func (h *HealthcareHandler) AddPatient(c *gin.Context) {
	var in healthcare.PatientInput
	if !bind(c, &in) {
		return
	}
	p, err := h.svc.AddPatient(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	created(c, p)
}

func (h *HealthcareHandler) Patients(c *gin.Context) {
	limit, valid := intQuery(c, "limit", 50)
	if !valid {
		return
	}
	list, err := h.svc.Patients(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, list)
}

func (h *HealthcareHandler) RecordVitals(c *gin.Context) {
	var in healthcare.VitalsInput
	if !bind(c, &in) {
		return
	}
	res, err := h.svc.RecordVitals(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, res)
}

func (h *HealthcareHandler) Vitals(c *gin.Context) {
	limit, valid := intQuery(c, "limit", 20)
	if !valid {
		return
	}
	list, err := h.svc.Vitals(c.Request.Context(), c.Param("patient_id"), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, list)
}

func (h *HealthcareHandler) Diagnose(c *gin.Context) {
	var in healthcare.DiagnosisInput
	if !bind(c, &in) {
		return
	}
	ok(c, h.svc.Diagnose(c.Request.Context(), in))
}

func (h *HealthcareHandler) EmergencyRisk(c *gin.Context) {
	id := c.Query("patient_id")
	if id == "" {
		_ = c.Error(apperr.BadRequest("patient_id is required"))
		return
	}
	r, err := h.svc.EmergencyRisk(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, r)
}
