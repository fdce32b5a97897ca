package patients

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/domain/accessgrants"
	"clinical-sharing/internal/middleware"
	"clinical-sharing/internal/platform/httpresp"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, grantsSvc *accessgrants.Service) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", createPatientHandler(svc))
		pr.Get("/", listPatientsHandler(svc))

		// Perfil (owner o grant con read)
		pr.Get("/{patientID}", getPatientHandler(svc, grantsSvc))
	})

	// Pacientes compartidos conmigo
	r.Get("/me/patients", listSharedWithMeHandler(svc, grantsSvc))
}

type createPatientRequest struct {
	TenantID  string `json:"tenant_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Sex       string `json:"sex" enums:"male,female,other,unknown"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

// patientResponse representa el perfil de un paciente.
type patientResponse struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"owner_user_id"`
	TenantID    string     `json:"tenant_id,omitempty"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	Sex         Sex        `json:"sex"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type sharedPatientResponse struct {
	Patient patientResponse `json:"patient"`
	Grant   sharedGrant     `json:"grant"`
}

type sharedGrant struct {
	ID           string       `json:"id"`
	Level        access.Level `json:"level"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
	ExpiringSoon bool         `json:"expiring_soon"`
}

// createPatientHandler godoc
// @Summary Crear paciente
// @Description Crea un paciente. El usuario autenticado queda como owner (admin implícito, no revocable).
// @Tags patients
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPatientRequest true "Datos del paciente; birth_date YYYY-MM-DD"
// @Success 201 {object} patientResponse
// @Failure 400 {object} httpresp.ErrorResponse
// @Failure 401 {object} httpresp.ErrorResponse
// @Router /patients [post]
func createPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}

		var req createPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpresp.BadRequest(w, "invalid json")
			return
		}

		var birth *time.Time
		if s := strings.TrimSpace(req.BirthDate); s != "" {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				httpresp.BadRequest(w, "birth_date must be YYYY-MM-DD")
				return
			}
			birth = &t
		}

		p, err := svc.Create(r.Context(), userID, CreateInput{
			TenantID:  req.TenantID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Sex:       req.Sex,
			BirthDate: birth,
			Email:     req.Email,
			Phone:     req.Phone,
			Notes:     req.Notes,
		})
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}
		httpresp.WriteJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

// listPatientsHandler godoc
// @Summary Mis pacientes
// @Description Pacientes cuyo owner es el usuario autenticado.
// @Tags patients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} patientResponse
// @Failure 401 {object} httpresp.ErrorResponse
// @Router /patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}

		items, err := svc.ListByOwner(r.Context(), userID)
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}
		out := make([]patientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPatientResponse(p))
		}
		httpresp.WriteJSON(w, http.StatusOK, out)
	}
}

// getPatientHandler godoc
// @Summary Ver paciente
// @Description Perfil del paciente. Owner o receptor de un grant activo (cualquier nivel).
// @Tags patients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Success 200 {object} patientResponse
// @Failure 401 {object} httpresp.ErrorResponse
// @Failure 403 {object} httpresp.ErrorResponse
// @Failure 404 {object} httpresp.ErrorResponse
// @Router /patients/{patientID} [get]
func getPatientHandler(svc *Service, grantsSvc *accessgrants.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}

		patientID := chi.URLParam(r, "patientID")
		if _, err := grantsSvc.Evaluator().Require(r.Context(), userID, patientID, access.ActionViewProfile, grantsSvc.Now()); err != nil {
			httpresp.WriteError(w, err)
			return
		}

		p, err := svc.GetByID(r.Context(), patientID)
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

// listSharedWithMeHandler godoc
// @Summary Pacientes compartidos conmigo
// @Description Pacientes a los que el usuario accede por un grant activo, con el resumen del grant.
// @Tags patients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} sharedPatientResponse
// @Failure 401 {object} httpresp.ErrorResponse
// @Router /me/patients [get]
func listSharedWithMeHandler(svc *Service, grantsSvc *accessgrants.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}

		grants, err := grantsSvc.ListReceivedBy(r.Context(), userID)
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}

		byPatient := make(map[string]accessgrants.ListedGrant, len(grants))
		ids := make([]string, 0, len(grants))
		for _, g := range grants {
			byPatient[g.PatientID] = g
			ids = append(ids, g.PatientID)
		}

		items, err := svc.ListByIDs(r.Context(), ids)
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}

		out := make([]sharedPatientResponse, 0, len(items))
		for _, p := range items {
			g := byPatient[p.ID]
			out = append(out, sharedPatientResponse{
				Patient: toPatientResponse(p),
				Grant: sharedGrant{
					ID:           g.ID,
					Level:        g.Level,
					ExpiresAt:    g.ExpiresAt,
					ExpiringSoon: g.ExpiringSoon,
				},
			})
		}
		httpresp.WriteJSON(w, http.StatusOK, out)
	}
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		TenantID:    p.TenantID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		FullName:    p.FullName(),
		Sex:         p.Sex,
		BirthDate:   p.BirthDate,
		Email:       p.Email,
		Phone:       p.Phone,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
