package records

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"clinical-sharing/internal/domain/access"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGate struct {
	mock.Mock
}

func (m *mockGate) Require(ctx context.Context, subjectUserID, patientID string, action access.Action, now time.Time) (access.Decision, error) {
	args := m.Called(subjectUserID, patientID, action)
	return args.Get(0).(access.Decision), args.Error(1)
}

type memRepo struct {
	appointments  []Appointment
	prescriptions []Prescription
	vitals        []VitalsReading
	labs          []LabResult
	notes         []Note
}

func (r *memRepo) ListAppointments(ctx context.Context, patientID string, rg Range) ([]Appointment, error) {
	return r.appointments, nil
}
func (r *memRepo) ListPrescriptions(ctx context.Context, patientID string, rg Range) ([]Prescription, error) {
	return r.prescriptions, nil
}
func (r *memRepo) ListVitals(ctx context.Context, patientID string, rg Range) ([]VitalsReading, error) {
	return r.vitals, nil
}
func (r *memRepo) ListLabResults(ctx context.Context, patientID string, rg Range) ([]LabResult, error) {
	return r.labs, nil
}
func (r *memRepo) ListNotes(ctx context.Context, patientID string, rg Range) ([]Note, error) {
	return r.notes, nil
}
func (r *memRepo) CreateAppointment(ctx context.Context, a Appointment) error {
	r.appointments = append(r.appointments, a)
	return nil
}
func (r *memRepo) CreatePrescription(ctx context.Context, p Prescription) error {
	r.prescriptions = append(r.prescriptions, p)
	return nil
}
func (r *memRepo) CreateVitals(ctx context.Context, v VitalsReading) error {
	r.vitals = append(r.vitals, v)
	return nil
}
func (r *memRepo) CreateLabResult(ctx context.Context, l LabResult) error {
	r.labs = append(r.labs, l)
	return nil
}
func (r *memRepo) CreateNote(ctx context.Context, n Note) error {
	r.notes = append(r.notes, n)
	return nil
}

var granted = access.Decision{Granted: true, Level: access.LevelWrite, Reason: access.ReasonGrant}

func TestService_CreateAppointment_RequiresWrite(t *testing.T) {
	gate := &mockGate{}
	gate.On("Require", "user-b", "p1", access.ActionWriteAppointment).
		Return(access.Decision{Level: access.LevelRead, Reason: access.ReasonInsufficient},
			fmt.Errorf("%w: read only", access.ErrPermissionDenied)).Once()

	repo := &memRepo{}
	svc := NewService(repo, gate)

	_, err := svc.CreateAppointment(context.Background(), "user-b", "p1", AppointmentInput{
		Reason:      "Control",
		ScheduledAt: time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, access.ErrPermissionDenied))
	assert.Empty(t, repo.appointments)
	gate.AssertExpectations(t)
}

func TestService_CreateAppointment_DefaultsStatus(t *testing.T) {
	gate := &mockGate{}
	gate.On("Require", "user-a", "p1", access.ActionWriteAppointment).Return(granted, nil)

	repo := &memRepo{}
	svc := NewService(repo, gate)
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	a, err := svc.CreateAppointment(context.Background(), "user-a", "p1", AppointmentInput{
		Reason:      " Control anual ",
		ScheduledAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, AppointmentScheduled, a.Status)
	assert.Equal(t, "Control anual", a.Reason)
	assert.Equal(t, "user-a", a.CreatedBy)
	assert.Equal(t, now, a.CreatedAt)
	require.Len(t, repo.appointments, 1)
}

func TestService_Create_ValidatesBeforeAuthorizing(t *testing.T) {
	gate := &mockGate{}
	svc := NewService(&memRepo{}, gate)
	ctx := context.Background()

	_, err := svc.CreateVitals(ctx, "user-a", "p1", VitalsInput{RecordedAt: time.Now()})
	assert.True(t, errors.Is(err, access.ErrInvalidArgument), "vitals without values")

	_, err = svc.CreateLabResult(ctx, "user-a", "p1", LabResultInput{TestName: "HbA1c", CollectedAt: time.Now(), Status: "weird"})
	assert.True(t, errors.Is(err, access.ErrInvalidArgument), "unknown lab status")

	start := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)
	_, err = svc.CreatePrescription(ctx, "user-a", "p1", PrescriptionInput{Medication: "Amoxicilina", StartDate: start, EndDate: &end})
	assert.True(t, errors.Is(err, access.ErrInvalidArgument), "end before start")

	_, err = svc.CreateNote(ctx, "user-a", "p1", NoteInput{})
	assert.True(t, errors.Is(err, access.ErrInvalidArgument), "empty note")

	gate.AssertNotCalled(t, "Require", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateNote_DefaultsWrittenAt(t *testing.T) {
	gate := &mockGate{}
	gate.On("Require", "user-a", "p1", access.ActionWriteNote).Return(granted, nil)

	svc := NewService(&memRepo{}, gate)
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	n, err := svc.CreateNote(context.Background(), "user-a", "p1", NoteInput{Body: "Paciente estable"})
	require.NoError(t, err)
	assert.Equal(t, now, n.WrittenAt)
}

func TestService_CreateVitals_UsesVitalsWriteAction(t *testing.T) {
	gate := &mockGate{}
	gate.On("Require", "user-a", "p1", access.ActionWriteVitals).Return(granted, nil).Once()

	repo := &memRepo{}
	svc := NewService(repo, gate)

	hr := 72
	_, err := svc.CreateVitals(context.Background(), "user-a", "p1", VitalsInput{
		RecordedAt: time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
		HeartRate:  &hr,
	})
	require.NoError(t, err)
	gate.AssertExpectations(t)
}
