package healthcare

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecohealth/sentinel/internal/jitter"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/ecohealth/sentinel/pkg/logger"
)

const (
	minHeartRate  = 60
	maxHeartRate  = 100
	feverCelsius  = 38.0
	minOxygenSat  = 95
	riskHigh      = 0.7
	riskMedium    = 0.4
	checkupPeriod = 30 * 24 * time.Hour
)

type VitalsInput struct {
	PatientID        string     `json:"patient_id" binding:"required"`
	HeartRate        float64    `json:"heart_rate" binding:"required"`
	BloodPressure    string     `json:"blood_pressure"`
	Temperature      float64    `json:"temperature" binding:"required"`
	OxygenSaturation float64    `json:"oxygen_saturation" binding:"required"`
	RespiratoryRate  float64    `json:"respiratory_rate"`
	Timestamp        *time.Time `json:"timestamp"`
}

type VitalsResult struct {
	ID         string   `json:"id"`
	Status     string   `json:"status"`
	Alerts     []string `json:"alerts"`
	Assessment string   `json:"assessment"`
}

// CheckVitals lists the readings outside their normal ranges.
func CheckVitals(heartRate, temperature, oxygen float64) []string {
	alerts := []string{}
	if heartRate < minHeartRate || heartRate > maxHeartRate {
		alerts = append(alerts, "Heart rate outside normal range")
	}
	if temperature > feverCelsius {
		alerts = append(alerts, "Elevated temperature detected")
	}
	if oxygen < minOxygenSat {
		alerts = append(alerts, "Low oxygen saturation")
	}
	return alerts
}

// RecordVitals stores a reading and raises a patient alert when any value is
// abnormal: high severity for more than one finding, medium otherwise.
func (s *Service) RecordVitals(ctx context.Context, in VitalsInput) (*VitalsResult, error) {
	ts := s.now().UTC()
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		ts = in.Timestamp.UTC()
	}
	v := &models.VitalSigns{
		PatientID:        in.PatientID,
		HeartRate:        in.HeartRate,
		BloodPressure:    in.BloodPressure,
		Temperature:      in.Temperature,
		OxygenSaturation: in.OxygenSaturation,
		RespiratoryRate:  in.RespiratoryRate,
		Timestamp:        ts,
	}
	if err := s.vitals.Insert(ctx, v); err != nil {
		return nil, fmt.Errorf("save vitals: %w", err)
	}

	res := &VitalsResult{ID: v.ID, Status: "recorded", Alerts: CheckVitals(in.HeartRate, in.Temperature, in.OxygenSaturation), Assessment: "Normal"}
	if len(res.Alerts) == 0 {
		return res, nil
	}
	res.Assessment = "Attention Required"
	severity := "medium"
	if len(res.Alerts) > 1 {
		severity = "high"
	}
	alert := &models.PatientAlert{
		PatientID: in.PatientID,
		AlertType: "vital_signs",
		Severity:  severity,
		Message:   strings.Join(res.Alerts, ", "),
		Status:    "active",
		CreatedAt: s.now().UTC(),
	}
	if err := s.alerts.Insert(ctx, alert); err != nil {
		return nil, fmt.Errorf("save alert: %w", err)
	}
	logger.Infof("vital sign alert for patient %s: %s", in.PatientID, alert.Message)
	return res, nil
}

// Vitals returns a patient's readings newest first.
func (s *Service) Vitals(ctx context.Context, patientID string, limit int) ([]models.VitalSigns, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.vitals.Find(ctx, repository.Query{
		Filters: []repository.Filter{repository.Where("patient_id", repository.Eq, patientID)},
		SortBy:  "timestamp",
		Desc:    true,
		Limit:   int64(limit),
	})
}

type DiagnosisInput struct {
	PatientID string   `json:"patient_id"`
	Symptoms  []string `json:"symptoms" binding:"required,min=1"`
	Duration  string   `json:"duration"`
	Severity  string   `json:"severity"`
}

type Condition struct {
	Condition       string   `json:"condition"`
	Confidence      float64  `json:"confidence"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

type Diagnosis struct {
	PossibleConditions []Condition `json:"possible_conditions"`
	RecommendedTests   []string    `json:"recommended_tests"`
	Urgency            string      `json:"urgency"`
	Disclaimer         string      `json:"disclaimer"`
}

var symptomRules = []struct {
	symptom string
	Condition
}{
	{"fever", Condition{"Viral Infection", 0.75, "Common viral infection causing fever and related symptoms", []string{"Rest", "Stay hydrated", "Monitor temperature"}}},
	{"cough", Condition{"Upper Respiratory Infection", 0.68, "Infection of upper respiratory tract", []string{"Warm fluids", "Steam inhalation", "Avoid cold exposure"}}},
}

var generalAssessment = Condition{"General Assessment Needed", 0.5, "Symptoms require professional medical evaluation", []string{"Consult a doctor", "Track symptoms", "Note any changes"}}

// Diagnose suggests conditions for the reported symptoms. The external model
// is tried first when configured; its failure falls back to the rules.
func (s *Service) Diagnose(ctx context.Context, in DiagnosisInput) *Diagnosis {
	d := &Diagnosis{
		RecommendedTests: []string{"Complete Blood Count", "Chest X-Ray"},
		Urgency:          "Medium",
		Disclaimer:       "AI-assisted suggestion only.",
	}
	if strings.EqualFold(in.Severity, "high") {
		d.Urgency = "High"
	}
	if s.scorer != nil {
		found, err := s.scorer.Diagnose(ctx, in.Symptoms)
		if err == nil && len(found) > 0 {
			for _, c := range found {
				d.PossibleConditions = append(d.PossibleConditions, Condition{
					Condition:       c.Name,
					Confidence:      c.Probability,
					Description:     c.Description,
					Recommendations: []string{"Consult a doctor"},
				})
			}
			return d
		}
		if err != nil {
			logger.Warnf("symptom model unavailable, using rules: %v", err)
		}
	}
	d.PossibleConditions = ruleConditions(in.Symptoms)
	return d
}

func ruleConditions(symptoms []string) []Condition {
	have := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}
	var out []Condition
	for _, r := range symptomRules {
		if have[r.symptom] {
			out = append(out, r.Condition)
		}
	}
	if len(out) == 0 {
		out = append(out, generalAssessment)
	}
	return out
}

type RiskAssessment struct {
	PatientID       string   `json:"patient_id"`
	RiskLevel       string   `json:"risk_level"`
	RiskScore       float64  `json:"risk_score"`
	RiskFactors     []string `json:"risk_factors"`
	Recommendations []string `json:"recommendations"`
	NextCheckup     string   `json:"next_checkup"`
}

// RiskLevel maps a score in [0,1] to Low, Medium (above 0.4) or High (above 0.7).
func RiskLevel(score float64) string {
	switch {
	case score > riskHigh:
		return "High"
	case score > riskMedium:
		return "Medium"
	}
	return "Low"
}

// EmergencyRisk scores a patient and names risk factors from the latest reading.
func (s *Service) EmergencyRisk(ctx context.Context, patientID string) (*RiskAssessment, error) {
	latest, err := s.Vitals(ctx, patientID, 1)
	if err != nil {
		return nil, err
	}
	score := jitter.Round2(s.rnd.Uniform(0, 1))

	var factors []string
	if len(latest) > 0 {
		if latest[0].HeartRate > maxHeartRate {
			factors = append(factors, "Elevated heart rate")
		}
		if latest[0].OxygenSaturation < minOxygenSat {
			factors = append(factors, "Low oxygen saturation")
		}
	}
	if len(factors) == 0 {
		factors = []string{"No significant risk factors"}
	}
	return &RiskAssessment{
		PatientID:   patientID,
		RiskLevel:   RiskLevel(score),
		RiskScore:   score,
		RiskFactors: factors,
		Recommendations: []string{
			"Continue regular monitoring",
			"Schedule follow-up appointment",
			"Maintain medication compliance",
		},
		NextCheckup: s.now().UTC().Add(checkupPeriod).Format("2006-01-02"),
	}, nil
}
