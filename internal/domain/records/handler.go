package records

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"clinical-sharing/internal/middleware"
	"clinical-sharing/internal/platform/httpresp"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Alta de registros clínicos (owner o grant con write)
	r.Post("/patients/{patientID}/records/{kind}", createRecordHandler(svc))
}

// Fechas en RFC3339; end_date YYYY-MM-DD o RFC3339.
type appointmentRequest struct {
	DoctorName      string            `json:"doctor_name"`
	Reason          string            `json:"reason"`
	Location        string            `json:"location"`
	Status          AppointmentStatus `json:"status" enums:"scheduled,completed,cancelled,no_show"`
	ScheduledAt     string            `json:"scheduled_at"`
	DurationMinutes int               `json:"duration_minutes"`
	Notes           string            `json:"notes"`
}

type prescriptionRequest struct {
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Instructions string `json:"instructions"`
	PrescribedBy string `json:"prescribed_by"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

type vitalsRequest struct {
	RecordedAt       string   `json:"recorded_at"`
	SystolicBP       *int     `json:"systolic_bp"`
	DiastolicBP      *int     `json:"diastolic_bp"`
	HeartRate        *int     `json:"heart_rate"`
	RespiratoryRate  *int     `json:"respiratory_rate"`
	OxygenSaturation *int     `json:"oxygen_saturation"`
	TemperatureC     *float64 `json:"temperature_c"`
	WeightKg         *float64 `json:"weight_kg"`
	HeightCm         *float64 `json:"height_cm"`
	Notes            string   `json:"notes"`
}

type labResultRequest struct {
	TestName       string    `json:"test_name"`
	Value          string    `json:"value"`
	Unit           string    `json:"unit"`
	ReferenceRange string    `json:"reference_range"`
	Status         LabStatus `json:"status" enums:"normal,abnormal,critical,pending"`
	Laboratory     string    `json:"laboratory"`
	CollectedAt    string    `json:"collected_at"`
	Notes          string    `json:"notes"`
}

type noteRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Category  string `json:"category"`
	WrittenAt string `json:"written_at"` // opcional, default now
}

// recordResponse es la respuesta común de alta.
type recordResponse struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Kind      Kind      `json:"kind"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// createRecordHandler godoc
// @Summary Crear registro clínico
// @Description Crea una cita, receta, signos vitales, resultado de laboratorio o nota. Requiere owner o grant con nivel write. El cuerpo depende de {kind}.
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param kind path string true "appointment | prescription | vitals | lab_result | note"
// @Param payload body object true "Cuerpo según el tipo"
// @Success 201 {object} recordResponse
// @Failure 400 {object} httpresp.ErrorResponse
// @Failure 401 {object} httpresp.ErrorResponse
// @Failure 403 {object} httpresp.ErrorResponse
// @Failure 404 {object} httpresp.ErrorResponse
// @Router /patients/{patientID}/records/{kind} [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}

		patientID := chi.URLParam(r, "patientID")
		kind := Kind(strings.ToLower(chi.URLParam(r, "kind")))
		dec := json.NewDecoder(r.Body)

		var (
			id        string
			createdAt time.Time
			err       error
		)

		switch kind {
		case KindAppointment:
			var req appointmentRequest
			if dec.Decode(&req) != nil {
				httpresp.BadRequest(w, "invalid json")
				return
			}
			at, perr := parseInstant(req.ScheduledAt)
			if perr != nil {
				httpresp.BadRequest(w, "scheduled_at must be RFC3339")
				return
			}
			var a Appointment
			a, err = svc.CreateAppointment(r.Context(), userID, patientID, AppointmentInput{
				DoctorName:      req.DoctorName,
				Reason:          req.Reason,
				Location:        req.Location,
				Status:          req.Status,
				ScheduledAt:     at,
				DurationMinutes: req.DurationMinutes,
				Notes:           req.Notes,
			})
			id, createdAt = a.ID, a.CreatedAt

		case KindPrescription:
			var req prescriptionRequest
			if dec.Decode(&req) != nil {
				httpresp.BadRequest(w, "invalid json")
				return
			}
			start, perr := parseInstant(req.StartDate)
			if perr != nil {
				httpresp.BadRequest(w, "start_date must be RFC3339 or YYYY-MM-DD")
				return
			}
			var end *time.Time
			if strings.TrimSpace(req.EndDate) != "" {
				t, perr := parseInstant(req.EndDate)
				if perr != nil {
					httpresp.BadRequest(w, "end_date must be RFC3339 or YYYY-MM-DD")
					return
				}
				end = &t
			}
			var p Prescription
			p, err = svc.CreatePrescription(r.Context(), userID, patientID, PrescriptionInput{
				Medication:   req.Medication,
				Dosage:       req.Dosage,
				Frequency:    req.Frequency,
				Instructions: req.Instructions,
				PrescribedBy: req.PrescribedBy,
				StartDate:    start,
				EndDate:      end,
			})
			id, createdAt = p.ID, p.CreatedAt

		case KindVitals:
			var req vitalsRequest
			if dec.Decode(&req) != nil {
				httpresp.BadRequest(w, "invalid json")
				return
			}
			at, perr := parseInstant(req.RecordedAt)
			if perr != nil {
				httpresp.BadRequest(w, "recorded_at must be RFC3339")
				return
			}
			var v VitalsReading
			v, err = svc.CreateVitals(r.Context(), userID, patientID, VitalsInput{
				RecordedAt:       at,
				SystolicBP:       req.SystolicBP,
				DiastolicBP:      req.DiastolicBP,
				HeartRate:        req.HeartRate,
				RespiratoryRate:  req.RespiratoryRate,
				OxygenSaturation: req.OxygenSaturation,
				TemperatureC:     req.TemperatureC,
				WeightKg:         req.WeightKg,
				HeightCm:         req.HeightCm,
				Notes:            req.Notes,
			})
			id, createdAt = v.ID, v.CreatedAt

		case KindLabResult:
			var req labResultRequest
			if dec.Decode(&req) != nil {
				httpresp.BadRequest(w, "invalid json")
				return
			}
			at, perr := parseInstant(req.CollectedAt)
			if perr != nil {
				httpresp.BadRequest(w, "collected_at must be RFC3339")
				return
			}
			var l LabResult
			l, err = svc.CreateLabResult(r.Context(), userID, patientID, LabResultInput{
				TestName:       req.TestName,
				Value:          req.Value,
				Unit:           req.Unit,
				ReferenceRange: req.ReferenceRange,
				Status:         req.Status,
				Laboratory:     req.Laboratory,
				CollectedAt:    at,
				Notes:          req.Notes,
			})
			id, createdAt = l.ID, l.CreatedAt

		case KindNote:
			var req noteRequest
			if dec.Decode(&req) != nil {
				httpresp.BadRequest(w, "invalid json")
				return
			}
			var written time.Time
			if strings.TrimSpace(req.WrittenAt) != "" {
				t, perr := parseInstant(req.WrittenAt)
				if perr != nil {
					httpresp.BadRequest(w, "written_at must be RFC3339")
					return
				}
				written = t
			}
			var n Note
			n, err = svc.CreateNote(r.Context(), userID, patientID, NoteInput{
				Title:     req.Title,
				Body:      req.Body,
				Category:  req.Category,
				WrittenAt: written,
			})
			id, createdAt = n.ID, n.CreatedAt

		default:
			httpresp.BadRequest(w, "unknown record kind")
			return
		}

		if err != nil {
			httpresp.WriteError(w, err)
			return
		}

		httpresp.WriteJSON(w, http.StatusCreated, recordResponse{
			ID:        id,
			PatientID: patientID,
			Kind:      kind,
			CreatedBy: userID,
			CreatedAt: createdAt,
		})
	}
}

// parseInstant acepta RFC3339 o fecha simple (medianoche UTC).
func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
