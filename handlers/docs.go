package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route documents one public endpoint. Path is relative to /api.
type Route struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Description string            `json:"description"`
	Body        map[string]string `json:"body,omitempty"`
	Query       map[string]string `json:"query,omitempty"`
	Auth        string            `json:"auth,omitempty"`
	RateLimit   string            `json:"rateLimit,omitempty"`
}

type DomainDoc struct {
	Description string  `json:"description"`
	Routes      []Route `json:"routes"`
}

type APIDoc struct {
	Name        string               `json:"name"`
	Version     string               `json:"version"`
	Description string               `json:"description"`
	BaseURL     string               `json:"baseUrl"`
	Endpoints   map[string]DomainDoc `json:"endpoints"`
}

const (
	apiName    = "EcoHealth Sentinel API"
	apiVersion = "2.0.0"
)

// docOrder fixes the order domains appear in generated documents.
var docOrder = []string{"chatbot", "agriculture", "environment", "healthcare", "emergency", "admin", "auth"}

var apiEndpoints = map[string]DomainDoc{
	"chatbot": {
		Description: "Domain-specific AI chatbot service",
		Routes: []Route{
			{Method: http.MethodPost, Path: "/chatbot", Description: "Ask a question; the domain comes from the body",
				Body:      map[string]string{"message": "string (required, 1-1000 chars)", "sessionId": "string (optional)", "domain": "string (optional: agriculture|healthcare|environment)", "location": "string (optional)"},
				RateLimit: "20 requests per minute"},
			{Method: http.MethodPost, Path: "/chatbot/:domain", Description: "Ask a question of one domain", RateLimit: "20 requests per minute"},
			{Method: http.MethodGet, Path: "/chatbot/history", Description: "Stored conversation turns",
				Query: map[string]string{"sessionId": "string (optional)", "domain": "string (optional)", "limit": "integer (optional)"}},
		},
	},
	"agriculture": {
		Description: "Agricultural monitoring and management",
		Routes: []Route{
			{Method: http.MethodGet, Path: "/agriculture/dashboard", Description: "Farm statistics and recent detections"},
			{Method: http.MethodPost, Path: "/agriculture/crop-disease-detection", Description: "Classify a crop image",
				Body: map[string]string{"file": "image (multipart, optional)", "cropType": "string"}},
			{Method: http.MethodGet, Path: "/agriculture/market/forecast", Description: "Market price forecast",
				Query: map[string]string{"crop_type": "string", "days": "integer 1-30"}},
			{Method: http.MethodGet, Path: "/agriculture/weather", Description: "Weather outlook",
				Query: map[string]string{"location": "string", "days": "integer 1-14"}},
			{Method: http.MethodPost, Path: "/agriculture/irrigation/smart-schedule", Description: "Create an irrigation schedule"},
			{Method: http.MethodGet, Path: "/agriculture/irrigation/schedules", Description: "Active irrigation schedules"},
			{Method: http.MethodPost, Path: "/agriculture/fertilizer/recommendations", Description: "Fertilizer plan for a field"},
			{Method: http.MethodPost, Path: "/agriculture/pest-control", Description: "Pest treatment plan"},
		},
	},
	"environment": {
		Description: "Environmental monitoring and carbon tracking",
		Routes: []Route{
			{Method: http.MethodGet, Path: "/environment/dashboard", Description: "Environmental statistics"},
			{Method: http.MethodPost, Path: "/environment/carbon-calculator", Description: "Carbon footprint of an activity",
				Body: map[string]string{"activity_type": "string (required)", "value": "number (required, >= 0)"}},
			{Method: http.MethodPost, Path: "/environment/carbon-calculation", Description: "Alias of carbon-calculator"},
			{Method: http.MethodPost, Path: "/environment/disaster-prediction", Description: "Disaster risk for a location"},
			{Method: http.MethodPost, Path: "/environment/waste-management", Description: "Log disposed waste"},
			{Method: http.MethodGet, Path: "/environment/waste-management", Description: "Recent waste logs"},
			{Method: http.MethodGet, Path: "/environment/climate-predictions", Description: "Climate outlook"},
			{Method: http.MethodGet, Path: "/environment/pollution-heatmap", Description: "Pollution readings by area"},
			{Method: http.MethodGet, Path: "/environment/renewable-energy", Description: "Renewable energy mix"},
		},
	},
	"healthcare": {
		Description: "Healthcare management and monitoring",
		Routes: []Route{
			{Method: http.MethodGet, Path: "/healthcare/dashboard", Description: "Dashboard statistics"},
			{Method: http.MethodPost, Path: "/healthcare/appointments", Description: "Book an appointment",
				Body: map[string]string{"patient_id": "string (required)", "doctor_id": "string (required)", "appointment_date": "RFC3339 (required)"}},
			{Method: http.MethodGet, Path: "/healthcare/appointments", Description: "List appointments"},
			{Method: http.MethodGet, Path: "/healthcare/appointments/:id", Description: "One appointment"},
			{Method: http.MethodPost, Path: "/healthcare/patients", Description: "Register a patient"},
			{Method: http.MethodGet, Path: "/healthcare/patients", Description: "List patients"},
			{Method: http.MethodPost, Path: "/healthcare/remote-monitoring", Description: "Submit vital signs"},
			{Method: http.MethodGet, Path: "/healthcare/remote-monitoring/:patient_id", Description: "Recent vital signs"},
			{Method: http.MethodPost, Path: "/healthcare/diagnosis-assistant", Description: "AI-assisted diagnosis"},
			{Method: http.MethodGet, Path: "/healthcare/emergency-prediction", Description: "Emergency risk for a patient"},
		},
	},
	"emergency": {
		Description: "Emergency services and SOS alerts",
		Routes: []Route{
			{Method: http.MethodGet, Path: "/emergency/metrics", Description: "Emergency metrics"},
			{Method: http.MethodPost, Path: "/emergency/metrics", Description: "Record metrics"},
			{Method: http.MethodGet, Path: "/emergency/predictions", Description: "Recent predictions"},
			{Method: http.MethodPost, Path: "/emergency/predictions", Description: "Record a prediction"},
			{Method: http.MethodGet, Path: "/emergency/notifications", Description: "Recent notifications"},
		},
	},
	"admin": {
		Description: "User administration and audit",
		Routes: []Route{
			{Method: http.MethodGet, Path: "/admin/users", Description: "List users", Auth: "admin"},
			{Method: http.MethodPatch, Path: "/admin/users/:id/status", Description: "Activate or suspend a user", Auth: "admin"},
			{Method: http.MethodDelete, Path: "/admin/users/:id", Description: "Delete a user", Auth: "admin"},
			{Method: http.MethodGet, Path: "/admin/logs", Description: "Security log", Auth: "admin"},
			{Method: http.MethodGet, Path: "/admin/reports/chat.xlsx", Description: "Chat history workbook", Auth: "admin"},
		},
	},
	"auth": {
		Description: "Authentication",
		Routes: []Route{
			{Method: http.MethodPost, Path: "/auth/register", Description: "Create an account", RateLimit: "5 attempts per 15 minutes"},
			{Method: http.MethodPost, Path: "/auth/login", Description: "Exchange credentials for tokens", RateLimit: "5 attempts per 15 minutes"},
			{Method: http.MethodPost, Path: "/auth/refresh", Description: "Refresh the access token"},
			{Method: http.MethodPost, Path: "/auth/logout", Description: "Revoke tokens"},
			{Method: http.MethodGet, Path: "/auth/me", Description: "Current user", Auth: "bearer"},
		},
	},
}

// Docs builds the route contract served at /api/docs.
func Docs(baseURL string) APIDoc {
	return APIDoc{
		Name:        apiName,
		Version:     apiVersion,
		Description: "AI-powered platform for Agriculture, Healthcare, and Environment monitoring",
		BaseURL:     baseURL,
		Endpoints:   apiEndpoints,
	}
}

// RegisterDocs serves the route table; baseURL is advertised to clients.
func RegisterDocs(r gin.IRoutes, baseURL string) {
	doc := Docs(baseURL)
	r.GET("/api/docs", func(c *gin.Context) {
		c.JSON(http.StatusOK, doc)
	})
}
