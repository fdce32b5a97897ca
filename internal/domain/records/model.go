package records

import "time"

// Kind identifica el tipo de registro clínico.
type Kind string

const (
	KindAppointment  Kind = "appointment"
	KindPrescription Kind = "prescription"
	KindVitals       Kind = "vitals"
	KindLabResult    Kind = "lab_result"
	KindNote         Kind = "note"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

type Appointment struct {
	ID        string
	PatientID string

	DoctorName      string
	Reason          string
	Location        string
	Status          AppointmentStatus
	ScheduledAt     time.Time
	DurationMinutes int
	Notes           string

	CreatedBy string
	CreatedAt time.Time
}

type Prescription struct {
	ID        string
	PatientID string

	Medication   string
	Dosage       string // "500 mg"
	Frequency    string // texto libre: "cada 8h"
	Instructions string
	PrescribedBy string

	StartDate time.Time
	EndDate   *time.Time

	CreatedBy string
	CreatedAt time.Time
}

// VitalsReading: todos los valores son opcionales, se registra lo que se midió.
type VitalsReading struct {
	ID        string
	PatientID string

	RecordedAt time.Time

	SystolicBP       *int
	DiastolicBP      *int
	HeartRate        *int
	RespiratoryRate  *int
	OxygenSaturation *int
	TemperatureC     *float64
	WeightKg         *float64
	HeightCm         *float64

	Notes string

	CreatedBy string
	CreatedAt time.Time
}

type LabStatus string

const (
	LabNormal   LabStatus = "normal"
	LabAbnormal LabStatus = "abnormal"
	LabCritical LabStatus = "critical"
	LabPending  LabStatus = "pending"
)

type LabResult struct {
	ID        string
	PatientID string

	TestName       string
	Value          string
	Unit           string
	ReferenceRange string
	Status         LabStatus
	Laboratory     string

	CollectedAt time.Time
	Notes       string

	CreatedBy string
	CreatedAt time.Time
}

type Note struct {
	ID        string
	PatientID string

	Title    string
	Body     string
	Category string // "progress", "consult", ...

	WrittenAt time.Time

	CreatedBy string
	CreatedAt time.Time
}
