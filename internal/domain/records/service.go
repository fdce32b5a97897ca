package records

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinical-sharing/internal/domain/access"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = fmt.Errorf("invalid record: %w", access.ErrInvalidArgument)
)

// Gate lo implementa accessgrants.Evaluator.
type Gate interface {
	Require(ctx context.Context, subjectUserID, patientID string, action access.Action, now time.Time) (access.Decision, error)
}

// Service es la capa de escritura mínima; la lectura la hacen los adapters de timeline.
type Service struct {
	repo Repository
	gate Gate
	now  func() time.Time
}

func NewService(repo Repository, gate Gate) *Service {
	return &Service{
		repo: repo,
		gate: gate,
		now:  time.Now,
	}
}

// Cada tipo tiene su propia acción de escritura (todas exigen write).
var writeActions = map[Kind]access.Action{
	KindAppointment:  access.ActionWriteAppointment,
	KindPrescription: access.ActionWritePrescription,
	KindVitals:       access.ActionWriteVitals,
	KindLabResult:    access.ActionWriteLabResult,
	KindNote:         access.ActionWriteNote,
}

func (s *Service) authorize(ctx context.Context, kind Kind, actorID, patientID string) (time.Time, error) {
	if strings.TrimSpace(actorID) == "" || strings.TrimSpace(patientID) == "" {
		return time.Time{}, ErrInvalidInput
	}
	now := s.now()
	if _, err := s.gate.Require(ctx, actorID, patientID, writeActions[kind], now); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

type AppointmentInput struct {
	DoctorName      string
	Reason          string
	Location        string
	Status          AppointmentStatus
	ScheduledAt     time.Time
	DurationMinutes int
	Notes           string
}

func (s *Service) CreateAppointment(ctx context.Context, actorID, patientID string, in AppointmentInput) (Appointment, error) {
	if in.ScheduledAt.IsZero() || strings.TrimSpace(in.Reason) == "" || in.DurationMinutes < 0 {
		return Appointment{}, ErrInvalidInput
	}
	status := in.Status
	switch status {
	case "":
		status = AppointmentScheduled
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
	default:
		return Appointment{}, ErrInvalidInput
	}

	now, err := s.authorize(ctx, KindAppointment, actorID, patientID)
	if err != nil {
		return Appointment{}, err
	}

	a := Appointment{
		ID:              uuid.NewString(),
		PatientID:       strings.TrimSpace(patientID),
		DoctorName:      strings.TrimSpace(in.DoctorName),
		Reason:          strings.TrimSpace(in.Reason),
		Location:        strings.TrimSpace(in.Location),
		Status:          status,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: in.DurationMinutes,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedBy:       actorID,
		CreatedAt:       now,
	}
	if err := s.repo.CreateAppointment(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

type PrescriptionInput struct {
	Medication   string
	Dosage       string
	Frequency    string
	Instructions string
	PrescribedBy string
	StartDate    time.Time
	EndDate      *time.Time
}

func (s *Service) CreatePrescription(ctx context.Context, actorID, patientID string, in PrescriptionInput) (Prescription, error) {
	if strings.TrimSpace(in.Medication) == "" || in.StartDate.IsZero() {
		return Prescription{}, ErrInvalidInput
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return Prescription{}, ErrInvalidInput
	}

	now, err := s.authorize(ctx, KindPrescription, actorID, patientID)
	if err != nil {
		return Prescription{}, err
	}

	p := Prescription{
		ID:           uuid.NewString(),
		PatientID:    strings.TrimSpace(patientID),
		Medication:   strings.TrimSpace(in.Medication),
		Dosage:       strings.TrimSpace(in.Dosage),
		Frequency:    strings.TrimSpace(in.Frequency),
		Instructions: strings.TrimSpace(in.Instructions),
		PrescribedBy: strings.TrimSpace(in.PrescribedBy),
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		CreatedBy:    actorID,
		CreatedAt:    now,
	}
	if err := s.repo.CreatePrescription(ctx, p); err != nil {
		return Prescription{}, err
	}
	return p, nil
}

type VitalsInput struct {
	RecordedAt       time.Time
	SystolicBP       *int
	DiastolicBP      *int
	HeartRate        *int
	RespiratoryRate  *int
	OxygenSaturation *int
	TemperatureC     *float64
	WeightKg         *float64
	HeightCm         *float64
	Notes            string
}

func (in VitalsInput) empty() bool {
	return in.SystolicBP == nil && in.DiastolicBP == nil && in.HeartRate == nil &&
		in.RespiratoryRate == nil && in.OxygenSaturation == nil && in.TemperatureC == nil &&
		in.WeightKg == nil && in.HeightCm == nil
}

func (s *Service) CreateVitals(ctx context.Context, actorID, patientID string, in VitalsInput) (VitalsReading, error) {
	if in.RecordedAt.IsZero() || in.empty() {
		return VitalsReading{}, ErrInvalidInput
	}

	now, err := s.authorize(ctx, KindVitals, actorID, patientID)
	if err != nil {
		return VitalsReading{}, err
	}

	v := VitalsReading{
		ID:               uuid.NewString(),
		PatientID:        strings.TrimSpace(patientID),
		RecordedAt:       in.RecordedAt,
		SystolicBP:       in.SystolicBP,
		DiastolicBP:      in.DiastolicBP,
		HeartRate:        in.HeartRate,
		RespiratoryRate:  in.RespiratoryRate,
		OxygenSaturation: in.OxygenSaturation,
		TemperatureC:     in.TemperatureC,
		WeightKg:         in.WeightKg,
		HeightCm:         in.HeightCm,
		Notes:            strings.TrimSpace(in.Notes),
		CreatedBy:        actorID,
		CreatedAt:        now,
	}
	if err := s.repo.CreateVitals(ctx, v); err != nil {
		return VitalsReading{}, err
	}
	return v, nil
}

type LabResultInput struct {
	TestName       string
	Value          string
	Unit           string
	ReferenceRange string
	Status         LabStatus
	Laboratory     string
	CollectedAt    time.Time
	Notes          string
}

func (s *Service) CreateLabResult(ctx context.Context, actorID, patientID string, in LabResultInput) (LabResult, error) {
	if strings.TrimSpace(in.TestName) == "" || in.CollectedAt.IsZero() {
		return LabResult{}, ErrInvalidInput
	}
	status := in.Status
	switch status {
	case "":
		status = LabPending
	case LabNormal, LabAbnormal, LabCritical, LabPending:
	default:
		return LabResult{}, ErrInvalidInput
	}

	now, err := s.authorize(ctx, KindLabResult, actorID, patientID)
	if err != nil {
		return LabResult{}, err
	}

	l := LabResult{
		ID:             uuid.NewString(),
		PatientID:      strings.TrimSpace(patientID),
		TestName:       strings.TrimSpace(in.TestName),
		Value:          strings.TrimSpace(in.Value),
		Unit:           strings.TrimSpace(in.Unit),
		ReferenceRange: strings.TrimSpace(in.ReferenceRange),
		Status:         status,
		Laboratory:     strings.TrimSpace(in.Laboratory),
		CollectedAt:    in.CollectedAt,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedBy:      actorID,
		CreatedAt:      now,
	}
	if err := s.repo.CreateLabResult(ctx, l); err != nil {
		return LabResult{}, err
	}
	return l, nil
}

type NoteInput struct {
	Title     string
	Body      string
	Category  string
	WrittenAt time.Time
}

func (s *Service) CreateNote(ctx context.Context, actorID, patientID string, in NoteInput) (Note, error) {
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Body) == "" {
		return Note{}, ErrInvalidInput
	}

	now, err := s.authorize(ctx, KindNote, actorID, patientID)
	if err != nil {
		return Note{}, err
	}

	written := in.WrittenAt
	if written.IsZero() {
		written = now
	}

	n := Note{
		ID:        uuid.NewString(),
		PatientID: strings.TrimSpace(patientID),
		Title:     strings.TrimSpace(in.Title),
		Body:      strings.TrimSpace(in.Body),
		Category:  strings.TrimSpace(in.Category),
		WrittenAt: written,
		CreatedBy: actorID,
		CreatedAt: now,
	}
	if err := s.repo.CreateNote(ctx, n); err != nil {
		return Note{}, err
	}
	return n, nil
}
