package records

import (
	"context"
	"time"
)

// Range es inclusivo en ambos extremos.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

type AppointmentReader interface {
	ListAppointments(ctx context.Context, patientID string, r Range) ([]Appointment, error)
}

type PrescriptionReader interface {
	ListPrescriptions(ctx context.Context, patientID string, r Range) ([]Prescription, error)
}

type VitalsReader interface {
	ListVitals(ctx context.Context, patientID string, r Range) ([]VitalsReading, error)
}

type LabResultReader interface {
	ListLabResults(ctx context.Context, patientID string, r Range) ([]LabResult, error)
}

type NoteReader interface {
	ListNotes(ctx context.Context, patientID string, r Range) ([]Note, error)
}

type Repository interface {
	AppointmentReader
	PrescriptionReader
	VitalsReader
	LabResultReader
	NoteReader

	CreateAppointment(ctx context.Context, a Appointment) error
	CreatePrescription(ctx context.Context, p Prescription) error
	CreateVitals(ctx context.Context, v VitalsReading) error
	CreateLabResult(ctx context.Context, l LabResult) error
	CreateNote(ctx context.Context, n Note) error
}
