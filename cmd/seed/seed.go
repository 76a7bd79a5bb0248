package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ecohealth/sentinel/internal/emergency"
	"github.com/ecohealth/sentinel/internal/healthcare"
	"github.com/ecohealth/sentinel/internal/jitter"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/ecohealth/sentinel/internal/users"
)

func createAdmin(ctx context.Context, svc *users.Service, name, email, password string) (*models.User, error) {
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	return svc.Register(ctx, users.RegisterInput{Name: name, Email: email, Password: password, Role: models.RoleAdmin})
}

var demoOrder = []string{"patients", "appointments", "vitals", "metrics", "predictions"}

var demoPatients = []healthcare.PatientInput{
	{PatientID: "P-1001", Name: "Ravi Kumar", Age: 54, Gender: "male", Contact: "+91-98100-00001"},
	{PatientID: "P-1002", Name: "Meera Nair", Age: 37, Gender: "female", Contact: "+91-98100-00002"},
	{PatientID: "P-1003", Name: "Arjun Singh", Age: 68, Gender: "male", Contact: "+91-98100-00003"},
}

// seedDemo fills b through the domain services so demo data obeys the same
// rules as API traffic. It returns the number of records written per kind.
func seedDemo(ctx context.Context, b *repository.Backend, now time.Time) (map[string]int, error) {
	n := map[string]int{}
	health := healthcare.NewService(b, jitter.Seeded(uint64(now.Unix())))
	emerg := emergency.NewService(b)
	day := now.UTC().Truncate(24 * time.Hour)

	for i, p := range demoPatients {
		if _, err := health.AddPatient(ctx, p); err != nil {
			return n, fmt.Errorf("patient %s: %w", p.PatientID, err)
		}
		n["patients"]++

		_, err := health.ScheduleAppointment(ctx, healthcare.AppointmentInput{
			PatientID:       p.PatientID,
			PatientName:     p.Name,
			DoctorID:        "D-01",
			DoctorName:      "Dr. Sharma",
			AppointmentDate: day.Add(time.Duration(9+i) * time.Hour),
			Reason:          "Routine checkup",
		})
		if err != nil {
			return n, fmt.Errorf("appointment for %s: %w", p.PatientID, err)
		}
		n["appointments"]++

		if _, err := health.RecordVitals(ctx, healthcare.VitalsInput{
			PatientID:        p.PatientID,
			HeartRate:        float64(72 + 14*i),
			BloodPressure:    "120/80",
			Temperature:      36.8 + 0.6*float64(i),
			OxygenSaturation: float64(98 - 2*i),
		}); err != nil {
			return n, fmt.Errorf("vitals for %s: %w", p.PatientID, err)
		}
		n["vitals"]++
	}

	if _, err := emerg.RecordMetrics(ctx, emergency.MetricsInput{CurrentLoad: 23, PredictedPeak: 45, AvgResponseTime: 8.5, BedAvailability: 76}); err != nil {
		return n, fmt.Errorf("emergency metrics: %w", err)
	}
	n["metrics"]++

	for _, p := range []emergency.PredictionInput{
		{Type: "Heat Stroke Surge", RiskLevel: "High", Probability: 82, Timeframe: "Next 48 hours", Factors: []string{"Heat wave", "High humidity"}, RecommendedAction: "Increase ER staffing", Confidence: 0.86, AffectedArea: "Central District"},
		{Type: "Respiratory Cases", RiskLevel: "Medium", Probability: 55, Timeframe: "Next 7 days", Factors: []string{"Poor air quality"}, RecommendedAction: "Stock nebulizers", Confidence: 0.71, AffectedArea: "Industrial Zone"},
	} {
		if _, err := emerg.RecordPrediction(ctx, p); err != nil {
			return n, fmt.Errorf("prediction %s: %w", p.Type, err)
		}
		n["predictions"]++
	}
	return n, nil
}
