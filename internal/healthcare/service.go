// Package healthcare covers appointments, patient records, remote vital sign
// monitoring and the rule-based diagnosis and risk helpers.
package healthcare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/ecohealth/sentinel/internal/jitter"
	"github.com/ecohealth/sentinel/internal/mlclient"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
)

const availableDoctors = 25

var (
	ErrSlotTaken           = apperr.BadRequest("Time slot not available")
	ErrAppointmentNotFound = apperr.NotFound("Appointment not found")
)

// SymptomScorer ranks likely conditions for a symptom list.
type SymptomScorer interface {
	Diagnose(ctx context.Context, symptoms []string) ([]mlclient.Condition, error)
}

type Service struct {
	appointments repository.Collection[models.Appointment]
	patients     repository.Collection[models.Patient]
	vitals       repository.Collection[models.VitalSigns]
	alerts       repository.Collection[models.PatientAlert]
	rnd          *jitter.Source
	scorer       SymptomScorer
	now          func() time.Time
}

func NewService(b *repository.Backend, rnd *jitter.Source) *Service {
	return &Service{
		appointments: repository.For[models.Appointment](b, models.Appointments),
		patients:     repository.For[models.Patient](b, models.Patients),
		vitals:       repository.For[models.VitalSigns](b, models.VitalSignsReadings),
		alerts:       repository.For[models.PatientAlert](b, models.PatientAlerts),
		rnd:          rnd,
		now:          time.Now,
	}
}

// WithScorer consults an external model before the built-in symptom rules.
func (s *Service) WithScorer(sc SymptomScorer) *Service {
	s.scorer = sc
	return s
}

type Dashboard struct {
	Stats          map[string]int64         `json:"stats"`
	RecentActivity []map[string]interface{} `json:"recent_activity"`
	Alerts         []map[string]string      `json:"alerts"`
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	n := s.now().UTC()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)

	todays, err := s.appointments.Count(ctx, repository.Query{Filters: []repository.Filter{
		repository.Where("appointment_date", repository.Gte, today),
		repository.Where("appointment_date", repository.Lt, today.AddDate(0, 0, 1)),
	}})
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}
	patients, err := s.patients.Count(ctx, repository.Query{})
	if err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}
	critical, err := s.alerts.Count(ctx, repository.Query{Filters: []repository.Filter{
		repository.Where("severity", repository.Eq, "critical"),
		repository.Where("status", repository.Eq, "active"),
	}})
	if err != nil {
		return nil, fmt.Errorf("count alerts: %w", err)
	}
	recent, err := s.appointments.Find(ctx, repository.Query{SortBy: "created_at", Desc: true, Limit: 5})
	if err != nil {
		return nil, fmt.Errorf("recent appointments: %w", err)
	}
	active, err := s.alerts.Find(ctx, repository.Query{
		Filters: []repository.Filter{repository.Where("status", repository.Eq, "active")},
		SortBy:  "created_at",
		Desc:    true,
		Limit:   5,
	})
	if err != nil {
		return nil, fmt.Errorf("active alerts: %w", err)
	}

	d := &Dashboard{
		Stats: map[string]int64{
			"today_appointments": todays,
			"total_patients":     patients,
			"critical_alerts":    critical,
			"available_doctors":  availableDoctors,
		},
		RecentActivity: make([]map[string]interface{}, 0, len(recent)),
		Alerts:         make([]map[string]string, 0, len(active)),
	}
	for _, a := range recent {
		d.RecentActivity = append(d.RecentActivity, map[string]interface{}{
			"id":        a.ID,
			"type":      "appointment",
			"patient":   a.PatientID,
			"timestamp": a.CreatedAt,
		})
	}
	for _, a := range active {
		d.Alerts = append(d.Alerts, map[string]string{"type": a.AlertType, "message": a.Message, "severity": a.Severity})
	}
	return d, nil
}

type AppointmentInput struct {
	PatientID       string    `json:"patient_id" binding:"required"`
	PatientName     string    `json:"patient_name"`
	DoctorID        string    `json:"doctor_id" binding:"required"`
	DoctorName      string    `json:"doctor_name"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	Time            string    `json:"time"`
	Reason          string    `json:"reason"`
	Type            string    `json:"type"`
}

// ScheduleAppointment books a slot unless the doctor already has a
// non-cancelled appointment at the same instant.
func (s *Service) ScheduleAppointment(ctx context.Context, in AppointmentInput) (*models.Appointment, error) {
	_, err := s.appointments.FindOne(ctx, repository.Query{Filters: []repository.Filter{
		repository.Where("doctor_id", repository.Eq, in.DoctorID),
		repository.Where("appointment_date", repository.Eq, in.AppointmentDate.UTC()),
		repository.Where("status", repository.Ne, models.AppointmentCancelled),
	}})
	switch {
	case err == nil:
		return nil, ErrSlotTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("check slot: %w", err)
	}

	kind := in.Type
	if kind == "" {
		kind = "consultation"
	}
	a := &models.Appointment{
		PatientID:       in.PatientID,
		PatientName:     in.PatientName,
		DoctorID:        in.DoctorID,
		DoctorName:      in.DoctorName,
		AppointmentDate: in.AppointmentDate.UTC(),
		Time:            in.Time,
		Reason:          in.Reason,
		Type:            kind,
		Status:          models.AppointmentScheduled,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.appointments.Insert(ctx, a); err != nil {
		return nil, fmt.Errorf("save appointment: %w", err)
	}
	return a, nil
}

type AppointmentFilter struct {
	PatientID string
	DoctorID  string
	Status    string
}

// Appointments lists matches soonest first, at most 100.
func (s *Service) Appointments(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	q := repository.Query{SortBy: "appointment_date", Limit: 100}
	if f.PatientID != "" {
		q.Filters = append(q.Filters, repository.Where("patient_id", repository.Eq, f.PatientID))
	}
	if f.DoctorID != "" {
		q.Filters = append(q.Filters, repository.Where("doctor_id", repository.Eq, f.DoctorID))
	}
	if f.Status != "" {
		q.Filters = append(q.Filters, repository.Where("status", repository.Eq, f.Status))
	}
	return s.appointments.Find(ctx, q)
}

func (s *Service) Appointment(ctx context.Context, id string) (*models.Appointment, error) {
	a, err := s.appointments.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAppointmentNotFound
	}
	return a, err
}

type PatientInput struct {
	PatientID string `json:"patient_id"`
	Name      string `json:"name" binding:"required"`
	Age       int    `json:"age" binding:"gte=0,lte=150"`
	Gender    string `json:"gender"`
	Contact   string `json:"contact"`
}

func (s *Service) AddPatient(ctx context.Context, in PatientInput) (*models.Patient, error) {
	p := &models.Patient{
		PatientID: in.PatientID,
		Name:      in.Name,
		Age:       in.Age,
		Gender:    in.Gender,
		Contact:   in.Contact,
		CreatedAt: s.now().UTC(),
	}
	if err := s.patients.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("save patient: %w", err)
	}
	if p.PatientID == "" {
		p.PatientID = p.ID
		if err := s.patients.Update(ctx, p.ID, map[string]interface{}{"patient_id": p.ID}); err != nil {
			return nil, fmt.Errorf("assign patient id: %w", err)
		}
	}
	return p, nil
}

// Patients returns the newest records first; limit defaults to 50.
func (s *Service) Patients(ctx context.Context, limit int) ([]models.Patient, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.patients.Find(ctx, repository.Query{SortBy: "created_at", Desc: true, Limit: int64(limit)})
}
