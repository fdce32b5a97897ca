package timeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/domain/records"
)

// DateRange es inclusivo en ambos extremos.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// Gate lo implementa accessgrants.Evaluator.
type Gate interface {
	Check(ctx context.Context, subjectUserID, patientID string, action access.Action, now time.Time) (access.Decision, error)
}

type FetchRequest struct {
	PatientID     string
	SubjectUserID string
	Range         DateRange
	Now           time.Time

	// MultiPatient: el pedido abarca varios pacientes. En ese caso un paciente
	// inaccesible se omite (resultado vacío); con un solo paciente es PermissionDenied.
	MultiPatient bool
}

// Adapter normaliza un tipo de registro clínico a Event.
// No hace lógica entre tipos.
type Adapter interface {
	Type() EventType
	Fetch(ctx context.Context, req FetchRequest) ([]Event, error)
}

type sourceAdapter[R any] struct {
	typ       EventType
	action    access.Action
	gate      Gate
	read      func(ctx context.Context, patientID string, r records.Range) ([]R, error)
	normalize func(R) Event
}

func (a *sourceAdapter[R]) Type() EventType { return a.typ }

func (a *sourceAdapter[R]) Fetch(ctx context.Context, req FetchRequest) ([]Event, error) {
	// Acceso primero: nada se lee si el sujeto no puede ver este tipo.
	d, err := a.gate.Check(ctx, req.SubjectUserID, req.PatientID, a.action, req.Now)
	if err != nil {
		if req.MultiPatient && errors.Is(err, access.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !d.Granted {
		if req.MultiPatient {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s on patient %s (%s)", access.ErrPermissionDenied, a.action, req.PatientID, d.Reason)
	}

	rows, err := a.read(ctx, req.PatientID, records.Range{From: req.Range.From, To: req.Range.To})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s records: %v", access.ErrSourceUnavailable, a.typ, err)
	}

	out := make([]Event, 0, len(rows))
	for _, row := range rows {
		e := a.normalize(row)
		if e.PatientID != req.PatientID || !req.Range.Contains(e.Date) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func NewAppointmentAdapter(r records.AppointmentReader, gate Gate) Adapter {
	return &sourceAdapter[records.Appointment]{
		typ:       TypeAppointment,
		action:    access.ActionViewAppointment,
		gate:      gate,
		read:      r.ListAppointments,
		normalize: fromAppointment,
	}
}

func NewPrescriptionAdapter(r records.PrescriptionReader, gate Gate) Adapter {
	return &sourceAdapter[records.Prescription]{
		typ:       TypePrescription,
		action:    access.ActionViewPrescription,
		gate:      gate,
		read:      r.ListPrescriptions,
		normalize: fromPrescription,
	}
}

func NewVitalsAdapter(r records.VitalsReader, gate Gate) Adapter {
	return &sourceAdapter[records.VitalsReading]{
		typ:       TypeVitals,
		action:    access.ActionViewVitals,
		gate:      gate,
		read:      r.ListVitals,
		normalize: fromVitals,
	}
}

func NewLabResultAdapter(r records.LabResultReader, gate Gate) Adapter {
	return &sourceAdapter[records.LabResult]{
		typ:       TypeLabResult,
		action:    access.ActionViewLabResult,
		gate:      gate,
		read:      r.ListLabResults,
		normalize: fromLabResult,
	}
}

func NewNoteAdapter(r records.NoteReader, gate Gate) Adapter {
	return &sourceAdapter[records.Note]{
		typ:       TypeNote,
		action:    access.ActionViewNote,
		gate:      gate,
		read:      r.ListNotes,
		normalize: fromNote,
	}
}

// NewAdapters arma los cinco adapters sobre un mismo repositorio.
func NewAdapters(repo records.Repository, gate Gate) []Adapter {
	return []Adapter{
		NewAppointmentAdapter(repo, gate),
		NewPrescriptionAdapter(repo, gate),
		NewVitalsAdapter(repo, gate),
		NewLabResultAdapter(repo, gate),
		NewNoteAdapter(repo, gate),
	}
}

func fromAppointment(a records.Appointment) Event {
	title := a.Reason
	if a.DoctorName != "" {
		title = a.Reason + " (" + a.DoctorName + ")"
	}
	return Event{
		ID:          a.ID,
		PatientID:   a.PatientID,
		Type:        TypeAppointment,
		Date:        a.ScheduledAt,
		Title:       title,
		Description: a.Notes,
		Details: AppointmentDetails{
			DoctorName:      a.DoctorName,
			Location:        a.Location,
			Status:          string(a.Status),
			DurationMinutes: a.DurationMinutes,
		},
		CreatedAt: a.CreatedAt,
	}
}

func fromPrescription(p records.Prescription) Event {
	title := strings.TrimSpace(p.Medication + " " + p.Dosage)
	return Event{
		ID:          p.ID,
		PatientID:   p.PatientID,
		Type:        TypePrescription,
		Date:        p.StartDate,
		Title:       title,
		Description: p.Instructions,
		Details: PrescriptionDetails{
			Medication:   p.Medication,
			Dosage:       p.Dosage,
			Frequency:    p.Frequency,
			PrescribedBy: p.PrescribedBy,
			EndDate:      cloneTime(p.EndDate),
		},
		CreatedAt: p.CreatedAt,
	}
}

func fromVitals(v records.VitalsReading) Event {
	return Event{
		ID:          v.ID,
		PatientID:   v.PatientID,
		Type:        TypeVitals,
		Date:        v.RecordedAt,
		Title:       vitalsTitle(v),
		Description: v.Notes,
		Details: VitalsDetails{
			SystolicBP:       cloneInt(v.SystolicBP),
			DiastolicBP:      cloneInt(v.DiastolicBP),
			HeartRate:        cloneInt(v.HeartRate),
			RespiratoryRate:  cloneInt(v.RespiratoryRate),
			OxygenSaturation: cloneInt(v.OxygenSaturation),
			TemperatureC:     cloneFloat(v.TemperatureC),
			WeightKg:         cloneFloat(v.WeightKg),
			HeightCm:         cloneFloat(v.HeightCm),
		},
		CreatedAt: v.CreatedAt,
	}
}

func vitalsTitle(v records.VitalsReading) string {
	parts := make([]string, 0, 3)
	if v.SystolicBP != nil && v.DiastolicBP != nil {
		parts = append(parts, fmt.Sprintf("BP %d/%d", *v.SystolicBP, *v.DiastolicBP))
	}
	if v.HeartRate != nil {
		parts = append(parts, fmt.Sprintf("HR %d", *v.HeartRate))
	}
	if v.TemperatureC != nil {
		parts = append(parts, fmt.Sprintf("%.1f°C", *v.TemperatureC))
	}
	if len(parts) == 0 {
		return "Vital signs"
	}
	return "Vital signs: " + strings.Join(parts, ", ")
}

func fromLabResult(l records.LabResult) Event {
	title := l.TestName
	if l.Value != "" {
		title = strings.TrimSpace(l.TestName + ": " + l.Value + " " + l.Unit)
	}
	return Event{
		ID:          l.ID,
		PatientID:   l.PatientID,
		Type:        TypeLabResult,
		Date:        l.CollectedAt,
		Title:       title,
		Description: l.Notes,
		Details: LabResultDetails{
			TestName:       l.TestName,
			Value:          l.Value,
			Unit:           l.Unit,
			ReferenceRange: l.ReferenceRange,
			Status:         string(l.Status),
			Laboratory:     l.Laboratory,
		},
		CreatedAt: l.CreatedAt,
	}
}

const noteTitleMax = 60

func fromNote(n records.Note) Event {
	title := n.Title
	if title == "" {
		title = n.Body
		if r := []rune(title); len(r) > noteTitleMax {
			title = string(r[:noteTitleMax]) + "…"
		}
	}
	return Event{
		ID:          n.ID,
		PatientID:   n.PatientID,
		Type:        TypeNote,
		Date:        n.WrittenAt,
		Title:       title,
		Description: n.Body,
		Details: NoteDetails{
			Category: n.Category,
			AuthorID: n.CreatedBy,
		},
		CreatedAt: n.CreatedAt,
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
