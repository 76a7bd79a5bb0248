package models

// Collection names.
const (
	ChatMessages        = "chat_messages"
	DiseaseDetections   = "disease_detections"
	IrrigationSchedules = "irrigation_schedules"
	FertilizerPlans     = "fertilizer_recommendations"
	CarbonCalculations  = "carbon_calculations"
	DisasterPredictions = "disaster_predictions"
	WasteLogs           = "waste_logs"
	Appointments        = "appointments"
	Patients            = "patients"
	VitalSignsReadings  = "vital_signs"
	PatientAlerts       = "patient_alerts"
	Notifications       = "notifications"
	Predictions         = "predictions"
	EmergencyMetricsLog = "emergency_metrics"
	Users               = "users"
	SecurityLogs        = "security_logs"
)
