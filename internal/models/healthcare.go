package models

import "time"

const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	Base            `bson:",inline"`
	PatientID       string    `bson:"patient_id" json:"patient_id"`
	PatientName     string    `bson:"patient_name,omitempty" json:"patient_name,omitempty"`
	DoctorID        string    `bson:"doctor_id" json:"doctor_id"`
	DoctorName      string    `bson:"doctor_name,omitempty" json:"doctor_name,omitempty"`
	AppointmentDate time.Time `bson:"appointment_date" json:"appointment_date"`
	Time            string    `bson:"time,omitempty" json:"time,omitempty"`
	Reason          string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Type            string    `bson:"type" json:"type"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

type Patient struct {
	Base      `bson:",inline"`
	PatientID string    `bson:"patient_id" json:"patient_id"`
	Name      string    `bson:"name" json:"name"`
	Age       int       `bson:"age,omitempty" json:"age,omitempty"`
	Gender    string    `bson:"gender,omitempty" json:"gender,omitempty"`
	Contact   string    `bson:"contact,omitempty" json:"contact,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type VitalSigns struct {
	Base             `bson:",inline"`
	PatientID        string    `bson:"patient_id" json:"patient_id"`
	HeartRate        float64   `bson:"heart_rate" json:"heart_rate"`
	BloodPressure    string    `bson:"blood_pressure,omitempty" json:"blood_pressure,omitempty"`
	Temperature      float64   `bson:"temperature" json:"temperature"`
	OxygenSaturation float64   `bson:"oxygen_saturation" json:"oxygen_saturation"`
	RespiratoryRate  float64   `bson:"respiratory_rate,omitempty" json:"respiratory_rate,omitempty"`
	Timestamp        time.Time `bson:"timestamp" json:"timestamp"`
}

type PatientAlert struct {
	Base      `bson:",inline"`
	PatientID string    `bson:"patient_id" json:"patient_id"`
	AlertType string    `bson:"alert_type" json:"alert_type"`
	Severity  string    `bson:"severity" json:"severity"`
	Message   string    `bson:"message" json:"message"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
