package accessgrants

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/middleware"
	"clinical-sharing/internal/platform/httpresp"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Acciones del owner/admin sobre un paciente
	r.Route("/patients/{patientID}/grants", func(gr chi.Router) {
		gr.Post("/", createGrantHandler(svc))
		gr.Get("/", listGrantsByPatientHandler(svc))
	})

	r.Route("/grants/{grantID}", func(gr chi.Router) {
		gr.Patch("/", reviseGrantHandler(svc))
		gr.Post("/revoke", revokeGrantHandler(svc))
	})

	// Receptor: grants que me dieron
	r.Get("/me/grants", listMyGrantsHandler(svc))
}

// createGrantRequest: exactamente uno de grantee_user_id / grantee_email.
type createGrantRequest struct {
	GranteeUserID string       `json:"grantee_user_id"`
	GranteeEmail  string       `json:"grantee_email"`
	Level         access.Level `json:"level" enums:"read,write,admin"`
	ExpiresAt     string       `json:"expires_at"` // RFC3339, opcional
}

type reviseGrantRequest struct {
	Level access.Level `json:"level" enums:"read,write,admin"`
}

// grantResponse representa un grant activo devuelto por la API.
type grantResponse struct {
	ID            string       `json:"id"`
	PatientID     string       `json:"patient_id"`
	GrantorUserID string       `json:"grantor_user_id"`
	GranteeUserID string       `json:"grantee_user_id"`
	Level         access.Level `json:"level"`
	Status        Status       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
	RevokedAt     *time.Time   `json:"revoked_at,omitempty"`
	ExpiringSoon  bool         `json:"expiring_soon"`
}

// createGrantHandler godoc
// @Summary Compartir paciente
// @Description Crea (o reemplaza) el grant del receptor sobre el paciente. Requiere admin u ownership. Si ya había un grant activo para el mismo receptor, queda superseded.
// @Tags grants
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param payload body createGrantRequest true "Receptor por user id o email; expires_at RFC3339 opcional"
// @Success 201 {object} grantResponse
// @Failure 400 {object} httpresp.ErrorResponse
// @Failure 401 {object} httpresp.ErrorResponse
// @Failure 403 {object} httpresp.ErrorResponse
// @Failure 404 {object} httpresp.ErrorResponse "email desconocido"
// @Router /patients/{patientID}/grants [post]
func createGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}

		var req createGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpresp.BadRequest(w, "invalid json")
			return
		}

		hasID := strings.TrimSpace(req.GranteeUserID) != ""
		hasEmail := strings.TrimSpace(req.GranteeEmail) != ""
		if hasID == hasEmail {
			httpresp.BadRequest(w, "exactly one of grantee_user_id or grantee_email is required")
			return
		}

		level, err := access.ParseLevel(string(req.Level))
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}

		var expiresAt *time.Time
		if strings.TrimSpace(req.ExpiresAt) != "" {
			t, err := time.Parse(time.RFC3339, req.ExpiresAt)
			if err != nil {
				httpresp.BadRequest(w, "expires_at must be RFC3339")
				return
			}
			expiresAt = &t
		}

		patientID := chi.URLParam(r, "patientID")

		var g Grant
		if hasEmail {
			g, err = svc.ShareByEmail(r.Context(), ShareByEmailInput{
				PatientID:     patientID,
				GrantorUserID: userID,
				GranteeEmail:  req.GranteeEmail,
				Level:         level,
				ExpiresAt:     expiresAt,
			})
		} else {
			g, err = svc.CreateOrReplace(r.Context(), CreateInput{
				PatientID:     patientID,
				GrantorUserID: userID,
				GranteeUserID: req.GranteeUserID,
				Level:         level,
				ExpiresAt:     expiresAt,
			})
		}
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}

		httpresp.WriteJSON(w, http.StatusCreated, toGrantResponse(annotate(g, svc.Now(), svc.expiringSoon)))
	}
}

// listGrantsByPatientHandler godoc
// @Summary Listar grants del paciente
// @Description Lista los grants activos (no revocados ni vencidos) del paciente. Requiere admin u ownership.
// @Tags grants
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Success 200 {array} grantResponse
// @Failure 401 {object} httpresp.ErrorResponse
// @Failure 403 {object} httpresp.ErrorResponse
// @Failure 404 {object} httpresp.ErrorResponse
// @Router /patients/{patientID}/grants [get]
func listGrantsByPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}

		items, err := svc.ListForPatientAs(r.Context(), userID, chi.URLParam(r, "patientID"))
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, toGrantResponses(items))
	}
}

// listMyGrantsHandler godoc
// @Summary Mis grants recibidos
// @Description Grants activos donde el usuario autenticado es el receptor.
// @Tags grants
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} grantResponse
// @Failure 401 {object} httpresp.ErrorResponse
// @Router /me/grants [get]
func listMyGrantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}

		items, err := svc.ListReceivedBy(r.Context(), userID)
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, toGrantResponses(items))
	}
}

// reviseGrantHandler godoc
// @Summary Cambiar nivel de un grant
// @Description Solo el grantor original o un admin del paciente. Un grant revocado o vencido devuelve 404.
// @Tags grants
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param grantID path string true "ID del grant"
// @Param payload body reviseGrantRequest true "Nuevo nivel"
// @Success 200 {object} grantResponse
// @Failure 400 {object} httpresp.ErrorResponse
// @Failure 401 {object} httpresp.ErrorResponse
// @Failure 403 {object} httpresp.ErrorResponse
// @Failure 404 {object} httpresp.ErrorResponse
// @Router /grants/{grantID} [patch]
func reviseGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}

		var req reviseGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpresp.BadRequest(w, "invalid json")
			return
		}
		level, err := access.ParseLevel(string(req.Level))
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}

		g, err := svc.ReviseLevel(r.Context(), chi.URLParam(r, "grantID"), level, userID)
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, toGrantResponse(annotate(g, svc.Now(), svc.expiringSoon)))
	}
}

// revokeGrantHandler godoc
// @Summary Revocar grant
// @Description Soft-delete. Revocar un grant ya revocado responde 204 igual.
// @Tags grants
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param grantID path string true "ID del grant"
// @Success 204 "revoked"
// @Failure 401 {object} httpresp.ErrorResponse
// @Failure 403 {object} httpresp.ErrorResponse
// @Failure 404 {object} httpresp.ErrorResponse
// @Router /grants/{grantID}/revoke [post]
func revokeGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpresp.Unauthorized(w)
			return
		}

		if err := svc.Revoke(r.Context(), chi.URLParam(r, "grantID"), userID); err != nil {
			httpresp.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toGrantResponses(items []ListedGrant) []grantResponse {
	out := make([]grantResponse, 0, len(items))
	for _, g := range items {
		out = append(out, toGrantResponse(g))
	}
	return out
}

func toGrantResponse(g ListedGrant) grantResponse {
	return grantResponse{
		ID:            g.ID,
		PatientID:     g.PatientID,
		GrantorUserID: g.GrantorUserID,
		GranteeUserID: g.GranteeUserID,
		Level:         g.Level,
		Status:        g.Status,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
		ExpiresAt:     g.ExpiresAt,
		RevokedAt:     g.RevokedAt,
		ExpiringSoon:  g.ExpiringSoon,
	}
}
