package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"clinical-sharing/internal/domain/records"
)

// recordRepo guarda cada tipo de registro en su propio mapa.
type recordRepo struct {
	mu sync.RWMutex

	appointments  map[string]records.Appointment
	prescriptions map[string]records.Prescription
	vitals        map[string]records.VitalsReading
	labResults    map[string]records.LabResult
	notes         map[string]records.Note
}

func NewRecordRepo() records.Repository {
	return &recordRepo{
		appointments:  make(map[string]records.Appointment),
		prescriptions: make(map[string]records.Prescription),
		vitals:        make(map[string]records.VitalsReading),
		labResults:    make(map[string]records.LabResult),
		notes:         make(map[string]records.Note),
	}
}

func insert[T any](mu *sync.RWMutex, m map[string]T, id string, v T) error {
	mu.Lock()
	defer mu.Unlock()

	if id == "" {
		return errors.New("record id required")
	}
	if _, exists := m[id]; exists {
		return errors.New("record already exists")
	}
	m[id] = v
	return nil
}

type recordKey struct {
	patientID string
	id        string
	at        time.Time
}

// list filtra por paciente y rango (occurred) y ordena por fecha desc, id asc.
func list[T any](ctx context.Context, mu *sync.RWMutex, m map[string]T, patientID string, r records.Range, key func(T) recordKey) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mu.RLock()
	defer mu.RUnlock()

	out := make([]T, 0)
	for _, v := range m {
		k := key(v)
		if k.patientID != patientID || !r.Contains(k.at) {
			continue
		}
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		ki, kj := key(out[i]), key(out[j])
		if !ki.at.Equal(kj.at) {
			return ki.at.After(kj.at)
		}
		return ki.id < kj.id
	})
	return out, nil
}

func (r *recordRepo) CreateAppointment(ctx context.Context, a records.Appointment) error {
	return insert(&r.mu, r.appointments, a.ID, a)
}

func (r *recordRepo) CreatePrescription(ctx context.Context, p records.Prescription) error {
	return insert(&r.mu, r.prescriptions, p.ID, p)
}

func (r *recordRepo) CreateVitals(ctx context.Context, v records.VitalsReading) error {
	return insert(&r.mu, r.vitals, v.ID, v)
}

func (r *recordRepo) CreateLabResult(ctx context.Context, l records.LabResult) error {
	return insert(&r.mu, r.labResults, l.ID, l)
}

func (r *recordRepo) CreateNote(ctx context.Context, n records.Note) error {
	return insert(&r.mu, r.notes, n.ID, n)
}

func (r *recordRepo) ListAppointments(ctx context.Context, patientID string, rng records.Range) ([]records.Appointment, error) {
	return list(ctx, &r.mu, r.appointments, patientID, rng, func(a records.Appointment) recordKey {
		return recordKey{a.PatientID, a.ID, a.ScheduledAt}
	})
}

func (r *recordRepo) ListPrescriptions(ctx context.Context, patientID string, rng records.Range) ([]records.Prescription, error) {
	return list(ctx, &r.mu, r.prescriptions, patientID, rng, func(p records.Prescription) recordKey {
		return recordKey{p.PatientID, p.ID, p.StartDate}
	})
}

func (r *recordRepo) ListVitals(ctx context.Context, patientID string, rng records.Range) ([]records.VitalsReading, error) {
	return list(ctx, &r.mu, r.vitals, patientID, rng, func(v records.VitalsReading) recordKey {
		return recordKey{v.PatientID, v.ID, v.RecordedAt}
	})
}

func (r *recordRepo) ListLabResults(ctx context.Context, patientID string, rng records.Range) ([]records.LabResult, error) {
	return list(ctx, &r.mu, r.labResults, patientID, rng, func(l records.LabResult) recordKey {
		return recordKey{l.PatientID, l.ID, l.CollectedAt}
	})
}

func (r *recordRepo) ListNotes(ctx context.Context, patientID string, rng records.Range) ([]records.Note, error) {
	return list(ctx, &r.mu, r.notes, patientID, rng, func(n records.Note) recordKey {
		return recordKey{n.PatientID, n.ID, n.WrittenAt}
	})
}
