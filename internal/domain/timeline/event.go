package timeline

import (
	"fmt"
	"strings"
	"time"

	"clinical-sharing/internal/domain/access"
)

type EventType string

const (
	TypeAppointment  EventType = "appointment"
	TypePrescription EventType = "prescription"
	TypeVitals       EventType = "vitals"
	TypeLabResult    EventType = "lab_result"
	TypeNote         EventType = "note"
)

// AllTypes en orden canónico; es el default del filtro de tipos.
var AllTypes = []EventType{
	TypeAppointment,
	TypePrescription,
	TypeVitals,
	TypeLabResult,
	TypeNote,
}

func ParseEventType(s string) (EventType, error) {
	t := EventType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown event type %q", access.ErrInvalidArgument, s)
}

// Event es la proyección normalizada y de solo lectura de un registro clínico.
// No se persiste: se construye en cada fetch. Nadie la modifica después de construida.
type Event struct {
	ID        string
	PatientID string

	Type EventType
	Date time.Time

	Title       string
	Description string

	Details Details

	CreatedAt time.Time
}

// Details es la variante etiquetada con el payload por tipo.
// Solo los tipos de este paquete la implementan.
type Details interface {
	Type() EventType
	isDetails()
}

type AppointmentDetails struct {
	DoctorName      string
	Location        string
	Status          string
	DurationMinutes int
}

type PrescriptionDetails struct {
	Medication   string
	Dosage       string
	Frequency    string
	PrescribedBy string
	EndDate      *time.Time
}

type VitalsDetails struct {
	SystolicBP       *int
	DiastolicBP      *int
	HeartRate        *int
	RespiratoryRate  *int
	OxygenSaturation *int
	TemperatureC     *float64
	WeightKg         *float64
	HeightCm         *float64
}

type LabResultDetails struct {
	TestName       string
	Value          string
	Unit           string
	ReferenceRange string
	Status         string
	Laboratory     string
}

type NoteDetails struct {
	Category string
	AuthorID string
}

func (AppointmentDetails) Type() EventType  { return TypeAppointment }
func (PrescriptionDetails) Type() EventType { return TypePrescription }
func (VitalsDetails) Type() EventType       { return TypeVitals }
func (LabResultDetails) Type() EventType    { return TypeLabResult }
func (NoteDetails) Type() EventType         { return TypeNote }

func (AppointmentDetails) isDetails()  {}
func (PrescriptionDetails) isDetails() {}
func (VitalsDetails) isDetails()       {}
func (LabResultDetails) isDetails()    {}
func (NoteDetails) isDetails()         {}

// Metadata stringifica el payload. Claves vacías se omiten.
// Lo usan la búsqueda y la respuesta HTTP.
func Metadata(d Details) map[string]string {
	out := map[string]string{}
	put := func(k, v string) {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}

	switch v := d.(type) {
	case AppointmentDetails:
		put("doctor_name", v.DoctorName)
		put("location", v.Location)
		put("status", v.Status)
		if v.DurationMinutes > 0 {
			put("duration_minutes", fmt.Sprintf("%d", v.DurationMinutes))
		}
	case PrescriptionDetails:
		put("medication", v.Medication)
		put("dosage", v.Dosage)
		put("frequency", v.Frequency)
		put("prescribed_by", v.PrescribedBy)
		if v.EndDate != nil {
			put("end_date", v.EndDate.UTC().Format("2006-01-02"))
		}
	case VitalsDetails:
		putInt(put, "systolic_bp", v.SystolicBP)
		putInt(put, "diastolic_bp", v.DiastolicBP)
		putInt(put, "heart_rate", v.HeartRate)
		putInt(put, "respiratory_rate", v.RespiratoryRate)
		putInt(put, "oxygen_saturation", v.OxygenSaturation)
		putFloat(put, "temperature_c", v.TemperatureC)
		putFloat(put, "weight_kg", v.WeightKg)
		putFloat(put, "height_cm", v.HeightCm)
	case LabResultDetails:
		put("test_name", v.TestName)
		put("value", v.Value)
		put("unit", v.Unit)
		put("reference_range", v.ReferenceRange)
		put("status", v.Status)
		put("laboratory", v.Laboratory)
	case NoteDetails:
		put("category", v.Category)
		put("author_id", v.AuthorID)
	case nil:
		// sin payload
	default:
		panic(fmt.Sprintf("timeline: unhandled details type %T", d))
	}
	return out
}

func putInt(put func(k, v string), k string, p *int) {
	if p != nil {
		put(k, fmt.Sprintf("%d", *p))
	}
}

func putFloat(put func(k, v string), k string, p *float64) {
	if p != nil {
		put(k, fmt.Sprintf("%g", *p))
	}
}
